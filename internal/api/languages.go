package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"syntaxsheet/pkg/cache"
	"syntaxsheet/pkg/controller"
	"syntaxsheet/pkg/model"
	"syntaxsheet/pkg/render"
)

// LanguageHandler serves read-only catalog lookups.
type LanguageHandler struct {
	catalog  *model.Catalog
	renderer *render.Renderer
	cache    cache.Cacher
}

// NewLanguageHandler creates a new LanguageHandler. c may be nil to disable caching.
func NewLanguageHandler(cat *model.Catalog, r *render.Renderer, c cache.Cacher) *LanguageHandler {
	return &LanguageHandler{catalog: cat, renderer: r, cache: c}
}

// LanguageResponse lists the sections of one language.
type LanguageResponse struct {
	Name     string                   `json:"name"`
	Sections []controller.SectionItem `json:"sections"`
}

// SectionResponse is a rendered section.
type SectionResponse struct {
	*render.Document
	HTML string `json:"html"`
}

// HandleList returns the language names in selector order.
func (h *LanguageHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	names := h.catalog.Names()
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

// HandleLanguage returns the section list of a language.
func (h *LanguageHandler) HandleLanguage(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	def, ok := h.catalog.Get(name)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown language")
		return
	}

	keys := def.Sections.Keys()
	items := make([]controller.SectionItem, len(keys))
	for i, k := range keys {
		items[i] = controller.SectionItem{Key: k, Label: controller.Capitalize(k)}
	}
	writeJSON(w, http.StatusOK, LanguageResponse{Name: def.Name, Sections: items})
}

// HandleSection returns a rendered section as JSON with an HTML code area.
func (h *LanguageHandler) HandleSection(w http.ResponseWriter, r *http.Request) {
	name, key := r.PathValue("name"), r.PathValue("key")
	cacheKey := name + "\x00" + key

	if h.cache != nil {
		if body, ok := h.cache.GetCache(r.Context(), cacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			_, _ = w.Write(body)
			return
		}
	}

	sec, ok := h.catalog.Section(name, key)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown language or section")
		return
	}

	doc := h.renderer.Render(name, key, sec)
	html, err := render.HTMLString(doc)
	if err != nil {
		slog.Error("Failed to render section", "language", name, "section", key, "error", err)
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}

	body, err := json.Marshal(SectionResponse{Document: doc, HTML: html})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "encode failed")
		return
	}
	if h.cache != nil {
		_ = h.cache.SetCache(r.Context(), cacheKey, body)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	_, _ = w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
