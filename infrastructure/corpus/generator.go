// Package corpus builds and loads the document corpus. The corpus is a
// build artifact, not a live store: the generator synthesizes labeled
// technical documents and writes a serialized index alongside per-document
// content files, and the loader rebuilds the in-memory index wholesale
// from that artifact.
package corpus

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"vesseldocs-backend/domain/docs"
	"vesseldocs-backend/pkg/errors"
)

// systemSpec describes one top-level system category of the corpus.
type systemSpec struct {
	name          string
	codePrefix    string
	manufacturers []string
	faults        []string
	keywords      [][]string
}

// corpusSystems is the fixed vocabulary the generator draws from. The
// keyword pools intentionally overlap across systems (HVAC carries
// "generator" for interlock faults) so ranking tests exercise cross-system
// term collisions.
var corpusSystems = []systemSpec{
	{
		name:          "Generators",
		codePrefix:    "GEN",
		manufacturers: []string{"Northern Lights", "Kohler", "Caterpillar"},
		faults: []string{
			"output voltage unstable under load",
			"automatic voltage regulator drift",
			"coolant temperature high shutdown",
			"fuel starvation at high demand",
			"exciter winding insulation breakdown",
		},
		keywords: [][]string{
			{"generator", "voltage", "regulation"},
			{"generator", "avr", "excitation"},
			{"generator", "coolant", "overheat"},
			{"generator", "fuel", "filter"},
			{"generator", "winding", "insulation"},
		},
	},
	{
		name:          "HVAC",
		codePrefix:    "HVAC",
		manufacturers: []string{"Dometic", "Marine Air", "Webasto"},
		faults: []string{
			"compressor fails to start on generator power",
			"refrigerant pressure low alarm",
			"condenser seawater flow restricted",
			"thermostat reading drifts in high humidity",
		},
		keywords: [][]string{
			{"compressor", "generator", "interlock"},
			{"refrigerant", "pressure", "charge"},
			{"condenser", "seawater", "strainer"},
			{"thermostat", "humidity", "calibration"},
		},
	},
	{
		name:          "Propulsion",
		codePrefix:    "PROP",
		manufacturers: []string{"MTU", "Caterpillar", "Volvo Penta"},
		faults: []string{
			"turbocharger boost pressure below target",
			"gearbox oil pressure fluctuation",
			"shaft seal water ingress",
			"injector timing fault at idle",
		},
		keywords: [][]string{
			{"turbocharger", "boost", "intake"},
			{"gearbox", "oil", "pressure"},
			{"shaft", "seal", "bilge"},
			{"injector", "timing", "idle"},
		},
	},
	{
		name:          "Navigation",
		codePrefix:    "NAV",
		manufacturers: []string{"Furuno", "Raymarine", "Garmin"},
		faults: []string{
			"radar array loses target lock in rain",
			"gps antenna signal degradation",
			"autopilot rudder feedback mismatch",
		},
		keywords: [][]string{
			{"radar", "target", "clutter"},
			{"gps", "antenna", "signal"},
			{"autopilot", "rudder", "feedback"},
		},
	},
	{
		name:          "Electrical",
		codePrefix:    "ELEC",
		manufacturers: []string{"Victron", "Mastervolt", "Blue Sea"},
		faults: []string{
			"inverter overload trip on startup surge",
			"battery bank cell imbalance",
			"shore power transfer relay chatter",
		},
		keywords: [][]string{
			{"inverter", "overload", "surge"},
			{"battery", "cell", "imbalance"},
			{"shore", "relay", "transfer"},
		},
	},
	{
		name:          "Water Systems",
		codePrefix:    "WTR",
		manufacturers: []string{"Sea Recovery", "Spectra", "Jabsco"},
		faults: []string{
			"watermaker membrane fouling",
			"fresh water pump cycling rapidly",
			"grey water tank level sensor stuck",
		},
		keywords: [][]string{
			{"watermaker", "membrane", "fouling"},
			{"pump", "accumulator", "cycling"},
			{"tank", "sensor", "level"},
		},
	},
}

// Generator synthesizes the labeled technical-document corpus.
type Generator struct {
	root   string
	rng    *rand.Rand
	now    func() time.Time
	logger *zap.Logger
}

// NewGenerator creates a generator writing under root. The same seed
// produces the same corpus.
func NewGenerator(root string, seed int64, logger *zap.Logger) *Generator {
	return &Generator{
		root:   root,
		rng:    rand.New(rand.NewSource(seed)),
		now:    time.Now,
		logger: logger,
	}
}

// Synthesize produces the document set without touching the filesystem.
// Each system contributes one document per fault, cycling through its
// manufacturers.
func (g *Generator) Synthesize() []*docs.Document {
	created := g.now().Add(-30 * 24 * time.Hour)
	modified := g.now().Add(-time.Duration(1+g.rng.Intn(72)) * time.Hour)

	var documents []*docs.Document
	for _, sys := range corpusSystems {
		for i, fault := range sys.faults {
			manufacturer := sys.manufacturers[i%len(sys.manufacturers)]
			code := fmt.Sprintf("%s-%03d", sys.codePrefix, i+1)
			title := fmt.Sprintf("%s %s: %s", manufacturer, strings.TrimSuffix(sys.name, "s"), fault)
			body := g.body(sys.name, manufacturer, code, fault, sys.keywords[i])

			documents = append(documents, &docs.Document{
				ID:           strings.ToLower(code),
				Title:        title,
				System:       sys.name,
				Manufacturer: manufacturer,
				FaultCode:    code,
				Keywords:     sys.keywords[i],
				BodyText:     body,
				FilePath:     filepath.Join(sys.name, code+".txt"),
				SizeBytes:    int64(len(body)),
				CreatedAt:    created,
				ModifiedAt:   modified,
			})
		}
	}
	return documents
}

// body renders the templated troubleshooting text for one document.
func (g *Generator) body(system, manufacturer, code, fault string, keywords []string) string {
	steps := []string{
		"Confirm the alarm against the control panel log before touching hardware.",
		"Isolate the unit and verify supply connections at the distribution board.",
		"Inspect serviceable components for wear, contamination or corrosion.",
		"Restore the unit and observe one full duty cycle before closing the job.",
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Fault %s reported on the %s system (%s equipment).\n\n", code, system, manufacturer)
	fmt.Fprintf(&b, "Symptom: %s. Crew reports intermittent occurrence, worse at sea state above 3.\n\n", fault)
	b.WriteString("Troubleshooting procedure:\n")
	for i, step := range steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	fmt.Fprintf(&b, "\nRelated terms: %s.\n", strings.Join(keywords, ", "))
	fmt.Fprintf(&b, "Escalate to the %s service agent if the fault recurs within 24 hours.\n", manufacturer)
	return b.String()
}

// artifact is the serialized index schema written next to the per-document
// content files.
type artifact struct {
	GeneratedAt   time.Time        `json:"generated_at"`
	DocumentCount int              `json:"document_count"`
	Documents     []*docs.Document `json:"documents"`
	Lookups       docs.Lookups     `json:"lookups"`
}

// Generate synthesizes the corpus and writes the per-document files plus
// the serialized index under the generator's root. Returns the number of
// documents written.
func (g *Generator) Generate() (int, error) {
	documents := g.Synthesize()

	for _, d := range documents {
		path := filepath.Join(g.root, d.FilePath)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return 0, fmt.Errorf("create corpus dir: %w", err)
		}
		if err := os.WriteFile(path, []byte(d.BodyText), 0o644); err != nil {
			return 0, fmt.Errorf("write document %s: %w", d.ID, err)
		}
	}

	art := artifact{
		GeneratedAt:   g.now(),
		DocumentCount: len(documents),
		Documents:     documents,
		Lookups:       docs.BuildLookups(documents),
	}
	data, err := json.MarshalIndent(art, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("marshal index artifact: %w", err)
	}
	if err := os.WriteFile(filepath.Join(g.root, "index.json"), data, 0o644); err != nil {
		return 0, fmt.Errorf("write index artifact: %w", err)
	}

	g.logger.Info("corpus generated",
		zap.String("root", g.root),
		zap.Int("documents", len(documents)),
	)
	return len(documents), nil
}

// LoadIndex parses a generated index artifact into the in-memory index.
// It fails fast with a LoadError on a missing or malformed artifact rather
// than partially populating state.
func LoadIndex(path string, logger *zap.Logger) (*docs.Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewLoadError("index artifact unreadable: "+path, err)
	}

	var art artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, errors.NewLoadError("index artifact malformed: "+path, err)
	}
	if art.DocumentCount != len(art.Documents) {
		return nil, errors.NewLoadError(
			fmt.Sprintf("index artifact inconsistent: header says %d documents, found %d",
				art.DocumentCount, len(art.Documents)), nil)
	}

	index, err := docs.NewIndex(art.Documents, art.Lookups)
	if err != nil {
		return nil, err
	}

	logger.Info("document index loaded",
		zap.String("path", path),
		zap.Int("documents", index.Len()),
		zap.Time("generatedAt", art.GeneratedAt),
	)
	return index, nil
}
