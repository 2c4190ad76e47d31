// internal/httpserver/server.go
//
// HTTP server wiring for the pinyin game.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, panic recovery, timeouts,
//     request logging, CORS).
//   - Page views: one route per route.Table() entry, dispatched through
//     route.Resolve; everything unmapped renders the not-found page.
//   - JSON API under /api: catalog (flat, grouped, by fileKey), syllable
//     decomposition, route table.
//   - Optional static audio/image assets from a directory under /assets.
//
// Everything is mounted under the configured base path (default
// /pinyin-game/), matching where the game is deployed.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/pinyin-game/internal/config"
	"github.com/robalobadob/pinyin-game/internal/pinyin"
)

// Options configures a Server.
type Options struct {
	BasePath       string        // URL prefix; normalised to "/" or "/prefix/"
	ClientOrigin   string        // CORS origin; defaults to http://localhost:5173
	AssetsDir      string        // served under <base>assets/ when set
	RequestTimeout time.Duration // per-request bound; defaults to 10s
}

// Server bundles the router and the read-only catalog it serves.
type Server struct {
	r      *chi.Mux
	cat    *pinyin.Catalog
	decomp *pinyin.Decomposer
	pages  *pages
	opts   Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(cat *pinyin.Catalog, opts Options) (*Server, error) {
	opts.BasePath = config.NormalizeBasePath(opts.BasePath)
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	p, err := loadPages()
	if err != nil {
		return nil, err
	}

	s := &Server{
		r:      chi.NewRouter(),
		cat:    cat,
		decomp: pinyin.NewDecomposer(cat),
		pages:  p,
		opts:   opts,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                    // add X-Request-ID
	s.r.Use(chimw.RealIP)                       // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                      // one log line per request
	s.r.Use(chimw.Recoverer)                    // recover from panics
	s.r.Use(chimw.Timeout(opts.RequestTimeout)) // bound handler time
	s.r.Use(s.cors)                             // credentials-friendly CORS

	app := chi.NewRouter()
	s.mountPages(app)
	s.mountAPI(app)
	s.mountAssets(app)
	app.NotFound(s.handleNotFound)

	if opts.BasePath == "/" {
		s.r.Mount("/", app)
	} else {
		s.r.Mount(strings.TrimSuffix(opts.BasePath, "/"), app)
		s.r.NotFound(s.handleNotFound)
	}
	return s, nil
}

// ServeHTTP makes the Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

// Run serves HTTP on addr until ctx is cancelled, then shuts down
// gracefully, giving in-flight requests up to shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		log.Info().Str("addr", addr).Str("base", s.opts.BasePath).Msg("http server listening")
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return hs.Shutdown(sctx)
	})
	return eg.Wait()
}

// relPath strips the base path: "/pinyin-game/game" -> "/game".
func (s *Server) relPath(r *http.Request) string {
	p := strings.TrimPrefix(r.URL.Path, strings.TrimSuffix(s.opts.BasePath, "/"))
	if p == "" {
		return "/"
	}
	return p
}

// handleNotFound answers JSON under /api and the not-found page elsewhere.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if rel := s.relPath(r); rel == "/api" || strings.HasPrefix(rel, "/api/") {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	s.renderNotFound(w, r)
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on API responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin
// (the dev server in development).
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.opts.ClientOrigin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger writes one zerolog line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			log.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("requestId", chimw.GetReqID(r.Context())).
				Msg("request")
		}()
		next.ServeHTTP(ww, r)
	})
}
