package handlers

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"vesseldocs-backend/application/search"
	"vesseldocs-backend/domain/docs"
	"vesseldocs-backend/pkg/common"
	"vesseldocs-backend/pkg/errors"
	"vesseldocs-backend/pkg/observability"
)

const excerptLength = 200

// SearchHandler handles corpus search requests.
type SearchHandler struct {
	service *search.Service
	metrics *observability.Collector
	logger  *zap.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(service *search.Service, metrics *observability.Collector, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		service: service,
		metrics: metrics,
		logger:  logger,
	}
}

// SearchResultItem is one scored hit in the response payload. The body is
// truncated to an excerpt; the full text is available via the document
// endpoint.
type SearchResultItem struct {
	DocumentID    string   `json:"document_id"`
	Title         string   `json:"title"`
	System        string   `json:"system"`
	Manufacturer  string   `json:"manufacturer"`
	FaultCode     string   `json:"fault_code"`
	FilePath      string   `json:"file_path"`
	Score         float64  `json:"score"`
	Relevance     float64  `json:"relevance"`
	MatchedFields []string `json:"matched_fields"`
	BodyExcerpt   string   `json:"body_excerpt"`
}

// SearchResponse wraps the hits with echo of the effective query.
type SearchResponse struct {
	Query     string             `json:"query"`
	Filters   docs.Filters       `json:"filters"`
	Limit     int                `json:"limit"`
	Total     int                `json:"total"`
	Results   []SearchResultItem `json:"results"`
	ElapsedMs float64            `json:"elapsed_ms"`
}

// Search handles GET /api/v1/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := search.DefaultLimit
	if raw := q.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			common.RespondAppError(w, errors.NewValidationError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	query := docs.SearchQuery{
		Text: q.Get("q"),
		Filters: docs.Filters{
			System:       q.Get("system"),
			Manufacturer: q.Get("manufacturer"),
			FaultCode:    q.Get("fault_code"),
		},
	}

	start := time.Now()
	results := h.service.Search(query, limit)
	elapsed := time.Since(start)

	h.metrics.SearchesExecuted.Inc()

	items := make([]SearchResultItem, 0, len(results))
	for _, res := range results {
		items = append(items, SearchResultItem{
			DocumentID:    res.Document.ID,
			Title:         res.Document.Title,
			System:        res.Document.System,
			Manufacturer:  res.Document.Manufacturer,
			FaultCode:     res.Document.FaultCode,
			FilePath:      res.Document.FilePath,
			Score:         res.Score,
			Relevance:     res.Relevance,
			MatchedFields: res.MatchedFields,
			BodyExcerpt:   res.Document.Excerpt(excerptLength),
		})
	}

	h.logger.Debug("search request served",
		zap.String("query", query.Text),
		zap.Int("results", len(items)),
		zap.Duration("elapsed", elapsed),
	)

	common.RespondJSON(w, http.StatusOK, SearchResponse{
		Query:     query.Text,
		Filters:   query.Filters,
		Limit:     limit,
		Total:     len(items),
		Results:   items,
		ElapsedMs: float64(elapsed.Microseconds()) / 1000.0,
	})
}
