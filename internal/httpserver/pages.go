package httpserver

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pinyin-game/assets"
	"github.com/robalobadob/pinyin-game/internal/pinyin"
	"github.com/robalobadob/pinyin-game/internal/route"
)

// pages holds one parsed template set per view.
type pages struct {
	views map[route.View]*template.Template
}

// pageFiles maps each view to its content template; ViewNotFound has its own page.
var pageFiles = map[route.View]string{
	route.ViewIndex:    "index.html",
	route.ViewGame:     "game.html",
	route.ViewNotFound: "notfound.html",
}

func loadPages() (*pages, error) {
	fsys := assets.Pages()
	p := &pages{views: make(map[route.View]*template.Template, len(pageFiles))}
	for v, name := range pageFiles {
		t, err := template.New("layout.html").Funcs(sprig.FuncMap()).ParseFS(fsys, "layout.html", name)
		if err != nil {
			return nil, fmt.Errorf("unable to parse page %s: %w", name, err)
		}
		p.views[v] = t
	}
	return p, nil
}

// pageData is what every page template sees.
type pageData struct {
	Title    string
	BasePath string
	View     string
	Path     string
	Groups   []pinyin.Group
	Entries  []pinyin.Entry
}

// mountPages registers one GET route per route table entry.
func (s *Server) mountPages(r chi.Router) {
	for _, e := range route.Table() {
		r.Get(e.Path, s.handlePage)
	}
}

// handlePage resolves the request path and renders that view.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	view := route.Resolve(s.relPath(r))
	if view == route.ViewNotFound {
		s.renderNotFound(w, r)
		return
	}

	data := pageData{BasePath: s.opts.BasePath, View: view.String(), Path: r.URL.Path}
	switch view {
	case route.ViewIndex:
		data.Groups = s.cat.Groups()
	case route.ViewGame:
		data.Title = "拼音游戏 - 游戏"
		data.Entries = s.cat.All()
	}
	s.render(w, http.StatusOK, view, data)
}

func (s *Server) renderNotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusNotFound, route.ViewNotFound, pageData{
		Title:    "404",
		BasePath: s.opts.BasePath,
		View:     route.ViewNotFound.String(),
		Path:     r.URL.Path,
	})
}

// render executes into a buffer first so template errors become a clean 500.
func (s *Server) render(w http.ResponseWriter, status int, view route.View, data pageData) {
	var buf bytes.Buffer
	if err := s.pages.views[view].ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Error().Err(err).Str("view", view.String()).Msg("render page")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// mountAssets serves files from the assets directory (e.g. <fileKey>.mp3).
func (s *Server) mountAssets(r chi.Router) {
	if s.opts.AssetsDir == "" {
		return
	}
	prefix := strings.TrimSuffix(s.opts.BasePath, "/") + "/assets/"
	fileServer := http.StripPrefix(prefix, http.FileServer(http.Dir(s.opts.AssetsDir)))
	r.Get("/assets/*", fileServer.ServeHTTP)
}
