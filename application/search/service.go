// Package search implements the ranking engine over the loaded document
// index. Scoring is additive across weighted field matches; structured
// filters are hard gates applied after scoring. The compute-then-gate
// order is part of the service contract and must not be rewritten into
// pre-filtering. The package tests pin it down.
package search

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"vesseldocs-backend/domain/docs"
)

// Field match weights. Body text (the fault description) dominates, then
// system, title, manufacturer; every independently matching keyword adds
// its own contribution, so multiple keyword hits accumulate.
const (
	weightBody         = 10.0
	weightSystem       = 8.0
	weightTitle        = 7.0
	weightManufacturer = 6.0
	weightKeyword      = 5.0
)

// DefaultLimit bounds the result set when the caller does not ask for a
// specific size.
const DefaultLimit = 20

// Service scores documents against free-text queries with optional
// structured filters. The index is immutable, so the service is safe for
// concurrent use without locks.
type Service struct {
	index  *docs.Index
	logger *zap.Logger
}

// NewService creates a search service over a loaded index.
func NewService(index *docs.Index, logger *zap.Logger) *Service {
	return &Service{index: index, logger: logger}
}

// Search returns documents ordered by descending score, ties broken by
// corpus iteration order, truncated to limit. An empty query text yields
// no terms and therefore no matches, even when filters are set; that
// filters-only searches return nothing mirrors the existing behaviour the
// callers depend on.
func (s *Service) Search(query docs.SearchQuery, limit int) []docs.ScoredResult {
	if limit <= 0 {
		limit = DefaultLimit
	}
	terms := query.Terms()

	results := make([]docs.ScoredResult, 0)
	for _, d := range s.index.Documents() {
		score, matched := scoreDocument(d, terms)

		// Gate after scoring: a filter mismatch zeroes the document no
		// matter how well its text matched.
		if !filtersMatch(d, query.Filters) {
			score = 0
		}
		if score <= 0 {
			continue
		}

		relevance := score / weightBody
		if relevance > 1.0 {
			relevance = 1.0
		}

		results = append(results, docs.ScoredResult{
			Document:      d,
			Score:         score,
			Relevance:     relevance,
			MatchedFields: matched,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}

	s.logger.Debug("search executed",
		zap.String("query", query.Text),
		zap.Int("terms", len(terms)),
		zap.Int("results", len(results)),
	)
	return results
}

// scoreDocument accumulates weighted field matches for every query term.
func scoreDocument(d *docs.Document, terms []string) (float64, []string) {
	if len(terms) == 0 {
		return 0, nil
	}

	body := strings.ToLower(d.BodyText)
	system := strings.ToLower(d.System)
	title := strings.ToLower(d.Title)
	manufacturer := strings.ToLower(d.Manufacturer)

	var score float64
	matched := make(map[string]bool)

	for _, term := range terms {
		if strings.Contains(body, term) {
			score += weightBody
			matched["body"] = true
		}
		if strings.Contains(system, term) {
			score += weightSystem
			matched["system"] = true
		}
		if strings.Contains(title, term) {
			score += weightTitle
			matched["title"] = true
		}
		if strings.Contains(manufacturer, term) {
			score += weightManufacturer
			matched["manufacturer"] = true
		}
		for _, kw := range d.Keywords {
			if strings.Contains(strings.ToLower(kw), term) {
				score += weightKeyword
				matched["keywords"] = true
			}
		}
	}

	return score, orderedFields(matched)
}

// orderedFields renders the matched set in a fixed field order so repeated
// searches produce identical payloads.
func orderedFields(matched map[string]bool) []string {
	var fields []string
	for _, f := range []string{"body", "system", "title", "manufacturer", "keywords"} {
		if matched[f] {
			fields = append(fields, f)
		}
	}
	return fields
}

// filtersMatch applies the structured filters as case-insensitive equality
// gates.
func filtersMatch(d *docs.Document, f docs.Filters) bool {
	if f.System != "" && !strings.EqualFold(d.System, f.System) {
		return false
	}
	if f.Manufacturer != "" && !strings.EqualFold(d.Manufacturer, f.Manufacturer) {
		return false
	}
	if f.FaultCode != "" && !strings.EqualFold(d.FaultCode, f.FaultCode) {
		return false
	}
	return true
}
