package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vesseldocs-backend/domain/docs"
)

func testIndex(t *testing.T) *docs.Index {
	t.Helper()
	documents := []*docs.Document{
		{
			ID: "gen-001", Title: "Northern Lights Generator: output voltage unstable under load",
			System: "Generators", Manufacturer: "Northern Lights", FaultCode: "GEN-001",
			Keywords: []string{"generator", "voltage", "regulation"},
			BodyText: "Output voltage unstable under load. Check the automatic voltage regulator.",
		},
		{
			ID: "hvac-001", Title: "Dometic HVAC: compressor fails to start on generator power",
			System: "HVAC", Manufacturer: "Dometic", FaultCode: "HVAC-001",
			Keywords: []string{"compressor", "generator", "interlock"},
			BodyText: "Compressor fails to start when running on generator power.",
		},
		{
			ID: "nav-001", Title: "Furuno Navigation: radar loses target lock",
			System: "Navigation", Manufacturer: "Furuno", FaultCode: "NAV-001",
			Keywords: []string{"radar", "target", "clutter"},
			BodyText: "Radar array loses target lock in heavy rain.",
		},
		{
			ID: "nav-002", Title: "Raymarine Navigation: gps antenna degradation",
			System: "Navigation", Manufacturer: "Raymarine", FaultCode: "NAV-002",
			Keywords: []string{"gps", "antenna", "signal"},
			BodyText: "GPS antenna signal degrades near the radar mast.",
		},
	}
	index, err := docs.NewIndex(documents, docs.BuildLookups(documents))
	require.NoError(t, err)
	return index
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(testIndex(t), zap.NewNop())
}

func TestSearch_RanksKeywordRichDocumentFirst(t *testing.T) {
	svc := newTestService(t)

	results := svc.Search(docs.SearchQuery{Text: "generator voltage regulation"}, 0)
	require.NotEmpty(t, results)

	// The Generators document matches all three terms across body, title,
	// system and keywords; the unrelated Navigation documents share no
	// terms and must not outrank it.
	assert.Equal(t, "gen-001", results[0].Document.ID)
	for _, r := range results {
		assert.NotEqual(t, "nav-001", r.Document.ID)
		assert.NotEqual(t, "nav-002", r.Document.ID)
	}
}

func TestSearch_FilterGateExcludesRegardlessOfTextScore(t *testing.T) {
	svc := newTestService(t)

	// "generator" appears in the HVAC document's keywords and body, but
	// the system filter gates everything outside HVAC... and the HVAC
	// document itself survives.
	results := svc.Search(docs.SearchQuery{
		Text:    "generator",
		Filters: docs.Filters{System: "HVAC"},
	}, 0)

	require.Len(t, results, 1)
	assert.Equal(t, "hvac-001", results[0].Document.ID)

	// A filter naming a system whose documents never match the text
	// yields nothing even though the term scores elsewhere.
	results = svc.Search(docs.SearchQuery{
		Text:    "voltage",
		Filters: docs.Filters{System: "Navigation"},
	}, 0)
	assert.Empty(t, results)
}

func TestSearch_FilterOnManufacturerAndFaultCode(t *testing.T) {
	svc := newTestService(t)

	results := svc.Search(docs.SearchQuery{
		Text:    "radar",
		Filters: docs.Filters{Manufacturer: "Furuno"},
	}, 0)
	require.Len(t, results, 1)
	assert.Equal(t, "nav-001", results[0].Document.ID)

	results = svc.Search(docs.SearchQuery{
		Text:    "radar",
		Filters: docs.Filters{FaultCode: "nav-002"}, // case-insensitive gate
	}, 0)
	require.Len(t, results, 1)
	assert.Equal(t, "nav-002", results[0].Document.ID)
}

func TestSearch_EmptyQueryYieldsNothingEvenWithFilters(t *testing.T) {
	svc := newTestService(t)

	// No terms means no substring matches, so a filters-only search
	// returns zero results. Callers depend on this; do not special-case
	// it without a product decision.
	assert.Empty(t, svc.Search(docs.SearchQuery{}, 0))
	assert.Empty(t, svc.Search(docs.SearchQuery{
		Filters: docs.Filters{System: "Generators"},
	}, 0))
	assert.Empty(t, svc.Search(docs.SearchQuery{Text: "   "}, 0))
}

func TestSearch_ScoresMonotonicallyNonIncreasing(t *testing.T) {
	svc := newTestService(t)

	results := svc.Search(docs.SearchQuery{Text: "generator radar gps"}, 0)
	require.NotEmpty(t, results)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestSearch_DeterministicOrdering(t *testing.T) {
	svc := newTestService(t)
	query := docs.SearchQuery{Text: "generator radar"}

	first := svc.Search(query, 0)
	for i := 0; i < 5; i++ {
		again := svc.Search(query, 0)
		require.Len(t, again, len(first))
		for j := range first {
			assert.Equal(t, first[j].Document.ID, again[j].Document.ID)
			assert.Equal(t, first[j].Score, again[j].Score)
		}
	}
}

func TestSearch_TiesBreakByCorpusOrder(t *testing.T) {
	svc := newTestService(t)

	// Both navigation documents mention "radar" in the body only, scoring
	// identically; the stable sort keeps corpus order: nav-001 first.
	results := svc.Search(docs.SearchQuery{
		Text:    "radar",
		Filters: docs.Filters{System: "Navigation"},
	}, 0)
	require.Len(t, results, 2)
	assert.Equal(t, "nav-001", results[0].Document.ID)
	assert.Equal(t, "nav-002", results[1].Document.ID)
	assert.Equal(t, results[0].Score, results[1].Score)
}

func TestSearch_LimitBoundsResultSet(t *testing.T) {
	svc := newTestService(t)

	results := svc.Search(docs.SearchQuery{Text: "generator radar gps"}, 2)
	assert.LessOrEqual(t, len(results), 2)

	// Default limit applies when the caller passes zero.
	results = svc.Search(docs.SearchQuery{Text: "generator radar gps"}, 0)
	assert.LessOrEqual(t, len(results), DefaultLimit)
}

func TestSearch_KeywordHitsAccumulate(t *testing.T) {
	svc := newTestService(t)

	// One term hitting one keyword versus three terms hitting three
	// keywords: the accumulated keyword contribution must differ.
	one := svc.Search(docs.SearchQuery{Text: "regulation"}, 0)
	three := svc.Search(docs.SearchQuery{Text: "generator voltage regulation"}, 0)

	require.NotEmpty(t, one)
	require.NotEmpty(t, three)
	assert.Greater(t, three[0].Score, one[0].Score)
}

func TestSearch_RelevanceIsNormalizedForDisplayOnly(t *testing.T) {
	svc := newTestService(t)

	results := svc.Search(docs.SearchQuery{Text: "generator voltage regulation"}, 0)
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Relevance, 0.0)
		assert.LessOrEqual(t, r.Relevance, 1.0)
	}
	// A heavily-matched document saturates at 1.0 while its raw score
	// keeps growing.
	assert.Equal(t, 1.0, results[0].Relevance)
	assert.Greater(t, results[0].Score, weightBody)
}

func TestSearch_MatchedFieldsReported(t *testing.T) {
	svc := newTestService(t)

	results := svc.Search(docs.SearchQuery{Text: "northern"}, 0)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].MatchedFields, "title")
	assert.Contains(t, results[0].MatchedFields, "manufacturer")
	assert.NotContains(t, results[0].MatchedFields, "keywords")
}
