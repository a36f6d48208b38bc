// internal/httpserver/server.go
//
// HTTP server wiring for the Mystery Number backend.
// Responsibilities:
//   - Router + middleware (request IDs, panic recovery, timeouts, CORS, access log).
//   - Public endpoints: "/" (embedded page), "/health", "/api".
//   - Game endpoints: GET /game, POST /game/new, /game/difficulty, /game/guess, /game/reset.
//   - Sound endpoints: POST /sound/mute, GET /sound/stream (SSE).
//   - Player identity cookie and the per-player controller lookup.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the player cookie works).
//   - The SSE stream is mounted outside the timeout group; it lives until the
//     client goes away or the player's controller is closed.

package httpserver

import (
	"context"
	"encoding/json"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/robalobadob/mysterynumber/assets"
	"github.com/robalobadob/mysterynumber/internal/feedback"
	"github.com/robalobadob/mysterynumber/internal/play"
	"github.com/robalobadob/mysterynumber/internal/prefs"
	"github.com/robalobadob/mysterynumber/internal/random"
	"github.com/robalobadob/mysterynumber/internal/store"
	"github.com/robalobadob/mysterynumber/internal/telemetry"
)

var tracer = telemetry.Tracer("github.com/robalobadob/mysterynumber/internal/httpserver")

// Options carries the Server's collaborators and settings.
type Options struct {
	Store   store.Store
	Prefs   *prefs.Store // nil disables mute persistence
	Catalog *feedback.Catalog
	Random  *random.Source

	ClientOrigin   string
	PlayerSecret   string
	CookieSecure   bool
	SirenInterval  time.Duration
	RequestTimeout time.Duration // default 10s
	Logger         zerolog.Logger
}

// Server bundles the router and its dependencies.
type Server struct {
	r    *chi.Mux
	opts Options
	log  zerolog.Logger
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	s := &Server{r: chi.NewRouter(), opts: opts, log: opts.Logger}

	// --- middleware ---
	s.r.Use(chimw.RequestID)         // add X-Request-ID
	s.r.Use(chimw.RealIP)            // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger(s.log))    // one access line per request
	s.r.Use(chimw.Recoverer)         // recover from panics
	s.r.Use(cors(opts.ClientOrigin)) // credentials-friendly CORS
	s.r.Use(s.withPlayer)            // player cookie -> context

	// --- page ---
	s.r.Get("/", s.handleIndex)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(opts.RequestTimeout)) // bound handler time
		r.Use(jsonContentType)                    // default JSON responses

		// --- diagnostics ---
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/api", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"mysterynumber","endpoints":["/health","GET /game","POST /game/new","POST /game/difficulty","POST /game/guess","POST /game/reset","POST /sound/mute","GET /sound/stream"]}`))
		})
		// Debug: message pool sizes
		r.Get("/debug/taunts", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(s.opts.Catalog.Stats())
		})

		s.mountGame(r)
		s.mountSound(r)
	})

	// stream is long-lived: no timeout, no JSON header
	s.r.Get("/sound/stream", s.handleStream)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Handler exposes the router for http.Server and tests.
func (s *Server) Handler() http.Handler { return s.r }

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := fs.ReadFile(assets.Web(), "index.html")
	if err != nil {
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// controller returns the live controller for playerID, creating one (with the
// persisted mute flag) on first use.
func (s *Server) controller(ctx context.Context, playerID string) (*play.Controller, error) {
	return s.opts.Store.GetOrCreate(ctx, playerID, func() (*play.Controller, error) {
		rng, err := s.opts.Random.New()
		if err != nil {
			return nil, err
		}
		muted := s.loadMuted(ctx, playerID)
		logger := s.log.With().Str("player", playerID).Logger()
		return play.New(play.Options{
			Rand:          rng,
			Catalog:       s.opts.Catalog,
			Muted:         muted,
			SirenInterval: s.opts.SirenInterval,
			Logger:        &logger,
		}), nil
	})
}

func (s *Server) loadMuted(ctx context.Context, playerID string) bool {
	if s.opts.Prefs == nil {
		return false
	}
	muted, err := s.opts.Prefs.Muted(ctx, playerID)
	if err != nil {
		s.log.Warn().Err(err).Str("player", playerID).Msg("load mute preference")
		return false
	}
	return muted
}

func (s *Server) saveMuted(ctx context.Context, playerID string, muted bool) {
	if s.opts.Prefs == nil {
		return
	}
	if err := s.opts.Prefs.SetMuted(ctx, playerID, muted); err != nil {
		s.log.Warn().Err(err).Str("player", playerID).Msg("save mute preference")
	}
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the `{"error":code}` body used by every failing route.
func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
