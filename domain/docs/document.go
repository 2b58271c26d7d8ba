package docs

import "time"

// Document is one technical document in the corpus. Documents are created
// by the corpus generator at build time and are read-only from the serving
// process's point of view.
type Document struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	System       string    `json:"system"`
	Manufacturer string    `json:"manufacturer"`
	FaultCode    string    `json:"fault_code"`
	Keywords     []string  `json:"keywords"`
	BodyText     string    `json:"body_text"`
	FilePath     string    `json:"file_path"`
	SizeBytes    int64     `json:"size_bytes"`
	CreatedAt    time.Time `json:"created_at"`
	ModifiedAt   time.Time `json:"modified_at"`
}

// Excerpt returns the first n characters of the body for result payloads.
func (d *Document) Excerpt(n int) string {
	if n <= 0 || len(d.BodyText) <= n {
		return d.BodyText
	}
	return d.BodyText[:n] + "..."
}

// HasKeyword reports whether the document carries the exact keyword.
func (d *Document) HasKeyword(kw string) bool {
	for _, k := range d.Keywords {
		if k == kw {
			return true
		}
	}
	return false
}

// EntryKind distinguishes folders from files in browse listings.
type EntryKind string

const (
	EntryKindFolder EntryKind = "folder"
	EntryKindFile   EntryKind = "file"
)

// BrowseEntry is one row of a filesystem-style corpus listing. Folder
// entries carry no document metadata; file entries point back at their
// document by ID.
type BrowseEntry struct {
	Kind       EntryKind `json:"kind"`
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	DocumentID string    `json:"document_id,omitempty"`
	SizeBytes  int64     `json:"size_bytes,omitempty"`
	ModifiedAt time.Time `json:"modified_at,omitempty"`
}
