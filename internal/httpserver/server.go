// internal/httpserver/server.go
//
// HTTP server wiring for the solver.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Solving endpoints: POST /suggest, POST /session/new, POST /session/feedback.
//   - Simulation endpoints: POST /simulate, POST /simulate/batch (requires auth),
//     GET /runs, GET /runs/{id}.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled for a single client origin.
//   - Domain errors map onto status codes in one place (writeError).
//   - Run history is optional; without a database the batch endpoint still
//     answers but nothing is stored and /runs reports 503.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/auth"
	"github.com/robalobadob/wordle/apps/solver/internal/constraint"
	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Options holds the Server's dependencies.
type Options struct {
	Solver       *solver.Solver
	Sessions     store.Store
	Runs         *store.DB // may be nil
	JWTSecret    string
	ClientOrigin string
	SuggestLimit int
	Workers      int           // batch simulation workers
	Timeout      time.Duration // per request; 0 means 10s
}

// Server bundles the router and its dependencies.
type Server struct {
	r        *chi.Mux
	solver   *solver.Solver
	sessions store.Store
	runs     *store.DB
	limit    int
	workers  int
}

// New constructs a Server, installs middleware, and registers routes.
func New(o Options) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		solver:   o.Solver,
		sessions: o.Sessions,
		runs:     o.Runs,
		limit:    o.SuggestLimit,
		workers:  o.Workers,
	}
	if s.sessions == nil {
		s.sessions = store.NewMemoryStore()
	}
	if s.workers <= 0 {
		s.workers = 1
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(timeout))
	s.r.Use(jsonContentType)
	s.r.Use(cors(o.ClientOrigin))

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "wordle-solver",
			"endpoints": []string{
				"/health", "/debug/words", "POST /suggest", "POST /session/new", "POST /session/feedback",
				"POST /simulate", "POST /simulate/batch", "/runs", "/runs/{id}",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/debug/words", s.handleDebugWords)

	s.mountSolve(s.r)
	s.mountSimulate(s.r, auth.Require(o.JWTSecret))

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) handleDebugWords(w http.ResponseWriter, r *http.Request) {
	out := map[string]any{
		"words":     len(s.solver.Tables.Words),
		"length":    s.solver.Tables.Length,
		"threshold": s.solver.Threshold,
	}
	if c := s.solver.Cache(); c != nil {
		hits, misses := c.Stats()
		out["cache"] = map[string]any{"entries": c.Len(), "hits": hits, "misses": misses}
	}
	writeJSON(w, http.StatusOK, out)
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------- responses ---------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

type errorRes struct {
	Error       string          `json:"error"`
	Message     string          `json:"message,omitempty"`
	Constraints *constraint.Set `json:"constraints,omitempty"`
}

// writeError maps domain errors onto status codes. conflict is the status
// used for contradictory constraints (400 for stateless input, 409 when
// feedback clashes with a session).
func writeError(w http.ResponseWriter, err error, conflict int) {
	var noCands *solver.NoCandidatesError
	switch {
	case errors.As(err, &noCands):
		c := noCands.Constraints
		writeJSON(w, http.StatusUnprocessableEntity, errorRes{Error: "no_candidates", Message: err.Error(), Constraints: &c})
	case errors.Is(err, constraint.ErrConflict):
		writeJSON(w, conflict, errorRes{Error: "conflict", Message: err.Error()})
	case errors.Is(err, constraint.ErrLengthMismatch),
		errors.Is(err, constraint.ErrInvalidInput),
		errors.Is(err, words.ErrInvalidWord),
		errors.Is(err, game.ErrNoAnswers),
		errors.Is(err, game.ErrFinished):
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "bad_request", Message: err.Error()})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorRes{Error: "not_found"})
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeJSON(w, http.StatusServiceUnavailable, errorRes{Error: "timeout"})
	default:
		log.Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorRes{Error: "internal"})
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "bad_json", Message: err.Error()})
		return false
	}
	return true
}
