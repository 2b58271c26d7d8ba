package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"vesseldocs-backend/domain/docs"
	"vesseldocs-backend/pkg/common"
	"vesseldocs-backend/pkg/errors"
)

// BrowseHandler serves filesystem-style corpus listings and individual
// document retrieval.
type BrowseHandler struct {
	index  *docs.Index
	logger *zap.Logger
}

// NewBrowseHandler creates a new browse handler
func NewBrowseHandler(index *docs.Index, logger *zap.Logger) *BrowseHandler {
	return &BrowseHandler{
		index:  index,
		logger: logger,
	}
}

// BrowseResponse lists the entries under one folder.
type BrowseResponse struct {
	Folder    string             `json:"folder"`
	Recursive bool               `json:"recursive"`
	Entries   []docs.BrowseEntry `json:"entries"`
}

// Browse handles GET /api/v1/browse
func (h *BrowseHandler) Browse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	folder := q.Get("folder")

	recursive := false
	if raw := q.Get("recursive"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			common.RespondAppError(w, errors.NewValidationError("recursive must be a boolean"))
			return
		}
		recursive = parsed
	}

	entries, err := h.index.Browse(folder, recursive)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, BrowseResponse{
		Folder:    folder,
		Recursive: recursive,
		Entries:   entries,
	})
}

// GetDocument handles GET /api/v1/documents/{documentID}
func (h *BrowseHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentID")
	if documentID == "" {
		common.RespondAppError(w, errors.NewValidationError("document ID is required"))
		return
	}

	doc, err := h.index.GetByID(documentID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, doc)
}
