package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"syntaxsheet/pkg/store"
)

// SearchHandler answers keyword queries over all examples.
type SearchHandler struct {
	store        store.SearchStore
	defaultLimit int
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(st store.SearchStore, defaultLimit int) *SearchHandler {
	return &SearchHandler{store: st, defaultLimit: defaultLimit}
}

// ServeHTTP handles GET /api/search?q=...&limit=...
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	limit := h.defaultLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	hits, err := h.store.Search(r.Context(), q, limit)
	if err != nil {
		slog.Error("Search failed", "query", q, "error", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	if hits == nil {
		hits = []store.Hit{}
	}
	writeJSON(w, http.StatusOK, hits)
}
