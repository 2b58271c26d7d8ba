package docs

import "strings"

// Filters are optional structured constraints on a search. A set filter is
// a hard gate: documents whose field does not match are excluded from the
// result set regardless of their text score.
type Filters struct {
	System       string `json:"system,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	FaultCode    string `json:"fault_code,omitempty"`
}

// Empty reports whether no filter is set.
func (f Filters) Empty() bool {
	return f.System == "" && f.Manufacturer == "" && f.FaultCode == ""
}

// SearchQuery is a transient, per-request search request.
type SearchQuery struct {
	Text    string  `json:"text"`
	Filters Filters `json:"filters"`
}

// Terms returns the lowercased whitespace-separated query terms. An empty
// query yields no terms, and therefore no substring matches.
func (q SearchQuery) Terms() []string {
	return strings.Fields(strings.ToLower(q.Text))
}

// ScoredResult is a document annotated with its relevance score and the
// fields that contributed to it. Ordered descending by Score; Relevance is
// a display-only normalization and plays no part in ordering.
type ScoredResult struct {
	Document      *Document `json:"document"`
	Score         float64   `json:"score"`
	Relevance     float64   `json:"relevance"`
	MatchedFields []string  `json:"matched_fields"`
}
