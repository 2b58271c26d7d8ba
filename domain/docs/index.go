package docs

import (
	"fmt"
	"sort"
	"strings"

	"vesseldocs-backend/pkg/errors"
)

// Lookups are the auxiliary id maps serialized alongside the documents.
// Every id they reference must exist in the primary document map.
type Lookups struct {
	BySystem       map[string][]string `json:"by_system"`
	ByManufacturer map[string][]string `json:"by_manufacturer"`
	ByFaultCode    map[string][]string `json:"by_fault_code"`
	ByKeyword      map[string][]string `json:"by_keyword"`
}

// BuildLookups derives the auxiliary maps from a document slice. Used by
// the corpus generator when writing the index artifact.
func BuildLookups(documents []*Document) Lookups {
	l := Lookups{
		BySystem:       make(map[string][]string),
		ByManufacturer: make(map[string][]string),
		ByFaultCode:    make(map[string][]string),
		ByKeyword:      make(map[string][]string),
	}
	for _, d := range documents {
		l.BySystem[d.System] = append(l.BySystem[d.System], d.ID)
		l.ByManufacturer[d.Manufacturer] = append(l.ByManufacturer[d.Manufacturer], d.ID)
		l.ByFaultCode[d.FaultCode] = append(l.ByFaultCode[d.FaultCode], d.ID)
		for _, kw := range d.Keywords {
			l.ByKeyword[kw] = append(l.ByKeyword[kw], d.ID)
		}
	}
	return l
}

// Index is the in-memory, query-optimized representation of the document
// corpus. It is rebuilt wholesale on load and never mutated afterwards, so
// it may be shared across concurrent requests without synchronization.
type Index struct {
	byID    map[string]*Document
	ordered []*Document // corpus iteration order, used for ranking tie-breaks
	lookups Lookups
}

// NewIndex builds an Index from documents plus their auxiliary maps and
// verifies referential integrity. Any dangling id fails construction so a
// malformed artifact never partially populates state.
func NewIndex(documents []*Document, lookups Lookups) (*Index, error) {
	byID := make(map[string]*Document, len(documents))
	for _, d := range documents {
		if d.ID == "" {
			return nil, errors.NewLoadError("document with empty id in corpus", nil)
		}
		if _, dup := byID[d.ID]; dup {
			return nil, errors.NewLoadError(fmt.Sprintf("duplicate document id %q in corpus", d.ID), nil)
		}
		byID[d.ID] = d
	}

	for name, m := range map[string]map[string][]string{
		"by_system":       lookups.BySystem,
		"by_manufacturer": lookups.ByManufacturer,
		"by_fault_code":   lookups.ByFaultCode,
		"by_keyword":      lookups.ByKeyword,
	} {
		for key, ids := range m {
			for _, id := range ids {
				if _, ok := byID[id]; !ok {
					return nil, errors.NewLoadError(
						fmt.Sprintf("lookup %s[%q] references unknown document %q", name, key, id), nil)
				}
			}
		}
	}

	return &Index{byID: byID, ordered: documents, lookups: lookups}, nil
}

// Len returns the number of documents in the corpus.
func (ix *Index) Len() int {
	return len(ix.ordered)
}

// Documents returns the corpus in iteration order. Callers must not
// modify the returned slice or the documents it points at.
func (ix *Index) Documents() []*Document {
	return ix.ordered
}

// GetByID looks up a single document.
func (ix *Index) GetByID(id string) (*Document, error) {
	d, ok := ix.byID[id]
	if !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("document %q", id))
	}
	return d, nil
}

// Systems returns the sorted set of top-level system categories.
func (ix *Index) Systems() []string {
	systems := make([]string, 0, len(ix.lookups.BySystem))
	for s := range ix.lookups.BySystem {
		systems = append(systems, s)
	}
	sort.Strings(systems)
	return systems
}

// IDsBySystem returns document ids for a system category.
func (ix *Index) IDsBySystem(system string) []string {
	return ix.lookups.BySystem[system]
}

// Browse mirrors a filesystem-style listing scoped under the corpus root.
// The root folder ("" or "/") lists the top-level system categories; a
// system folder lists its documents. With recursive set, a root browse
// returns each category folder followed by its files.
func (ix *Index) Browse(folder string, recursive bool) ([]BrowseEntry, error) {
	folder = strings.Trim(strings.TrimSpace(folder), "/")

	if folder == "" {
		entries := make([]BrowseEntry, 0)
		for _, system := range ix.Systems() {
			entries = append(entries, BrowseEntry{
				Kind: EntryKindFolder,
				Name: system,
				Path: system,
			})
			if recursive {
				entries = append(entries, ix.fileEntries(system)...)
			}
		}
		return entries, nil
	}

	if _, ok := ix.lookups.BySystem[folder]; !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("folder %q", folder))
	}
	return ix.fileEntries(folder), nil
}

func (ix *Index) fileEntries(system string) []BrowseEntry {
	ids := ix.lookups.BySystem[system]
	entries := make([]BrowseEntry, 0, len(ids))
	for _, id := range ids {
		d := ix.byID[id]
		entries = append(entries, BrowseEntry{
			Kind:       EntryKindFile,
			Name:       d.Title,
			Path:       d.FilePath,
			DocumentID: d.ID,
			SizeBytes:  d.SizeBytes,
			ModifiedAt: d.ModifiedAt,
		})
	}
	return entries
}
