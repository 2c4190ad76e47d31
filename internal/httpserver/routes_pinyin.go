// internal/httpserver/routes_pinyin.go
//
// JSON API over the catalog and the route table.
//   - GET /api/pinyin                 → flat catalog (optional ?category=)
//   - GET /api/pinyin/groups          → grouped catalog
//   - GET /api/pinyin/decompose?text= → Han characters split into entries
//   - GET /api/pinyin/{fileKey}       → single entry
//   - GET /api/routes                 → route table
//   - GET /api/routes/resolve?path=   → view for a path
//
// All data is read-only; handlers never mutate the catalog.

package httpserver

import (
	"encoding/json"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/pinyin-game/internal/pinyin"
	"github.com/robalobadob/pinyin-game/internal/route"
)

// maxDecomposeRunes bounds /api/pinyin/decompose input.
const maxDecomposeRunes = 200

// mountAPI registers /health and all /api routes.
func (s *Server) mountAPI(r chi.Router) {
	r.With(jsonContentType).Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(jsonContentType)
		r.Get("/pinyin", s.handleList)
		r.Get("/pinyin/groups", s.handleGroups)
		r.Get("/pinyin/decompose", s.handleDecompose)
		r.Get("/pinyin/{fileKey}", s.handleEntry)
		r.Get("/routes", s.handleRoutes)
		r.Get("/routes/resolve", s.handleResolve)
	})
}

// -----------------------------------------------------------------------------
// catalog

// listRes is returned by /api/pinyin.
type listRes struct {
	Count   int            `json:"count"`
	Entries []pinyin.Entry `json:"entries"`
}

// handleList returns the flat catalog, or one category of it.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	entries := s.cat.All()
	if c := r.URL.Query().Get("category"); c != "" {
		cat := pinyin.Category(c)
		if !cat.Valid() {
			writeError(w, http.StatusBadRequest, "unknown_category")
			return
		}
		entries = s.cat.Category(cat)
	}
	writeJSON(w, http.StatusOK, listRes{Count: len(entries), Entries: entries})
}

// handleGroups returns the grouped catalog.
func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cat.Groups())
}

// handleEntry returns the entry for one asset key.
func (s *Server) handleEntry(w http.ResponseWriter, r *http.Request) {
	e, ok := s.cat.Lookup(chi.URLParam(r, "fileKey"))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// decomposeRes is returned by /api/pinyin/decompose.
type decomposeRes struct {
	Text      string            `json:"text"`
	Syllables []pinyin.Syllable `json:"syllables"`
}

// handleDecompose splits each Han character of ?text= into catalog entries.
func (s *Server) handleDecompose(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if text == "" {
		writeError(w, http.StatusBadRequest, "missing_text")
		return
	}
	if utf8.RuneCountInString(text) > maxDecomposeRunes {
		writeError(w, http.StatusBadRequest, "text_too_long")
		return
	}
	syllables := s.decomp.Decompose(text)
	if syllables == nil {
		syllables = []pinyin.Syllable{}
	}
	writeJSON(w, http.StatusOK, decomposeRes{Text: text, Syllables: syllables})
}

// -----------------------------------------------------------------------------
// routes

// handleRoutes returns the route table.
func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, route.Table())
}

// resolveRes is returned by /api/routes/resolve.
type resolveRes struct {
	Path  string     `json:"path"`
	View  route.View `json:"view"`
	Found bool       `json:"found"`
}

// handleResolve reports which view a path maps to. Unmapped paths are a
// normal answer (found=false), not an error.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Query().Get("path")
	v := route.Resolve(p)
	writeJSON(w, http.StatusOK, resolveRes{Path: p, View: v, Found: v != route.ViewNotFound})
}

// -----------------------------------------------------------------------------
// helpers

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
