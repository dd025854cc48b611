// internal/httpserver/routes_simulate.go
//
// Simulation endpoints:
//   - POST /simulate        → play one game against a posted answer
//   - POST /simulate/batch  → play many games, store the run (requires auth)
//   - GET  /runs            → most recent stored runs
//   - GET  /runs/{id}       → one stored run with its histogram

package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/auth"
	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
)

// maxBatchAnswers bounds one batch request so it fits the request timeout.
const maxBatchAnswers = 5000

func (s *Server) mountSimulate(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Post("/simulate", s.handleSimulate)
	r.With(requireAuth).Post("/simulate/batch", s.handleBatch)
	r.Get("/runs", s.handleListRuns)
	r.Get("/runs/{id}", s.handleGetRun)
}

type simulateReq struct {
	Answer     string   `json:"answer"`
	Answers    []string `json:"answers"`
	FirstGuess string   `json:"firstGuess"`
	MaxRounds  int      `json:"maxRounds"`
	Exact      bool     `json:"exact"`
	Workers    int      `json:"workers"`
}

func (req simulateReq) options() game.Options {
	return game.Options{FirstGuess: req.FirstGuess, MaxRounds: req.MaxRounds, Exact: req.Exact}
}

// handleSimulate plays one game. Running out of candidates is a result
// (failed=true), not an error.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateReq
	if !decode(w, r, &req) {
		return
	}
	res, err := game.Simulate(r.Context(), s.solver, req.Answer, req.options())
	if err != nil && !errors.Is(err, solver.ErrNoCandidates) {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type batchRes struct {
	store.Run
	Stored bool `json:"stored"`
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req simulateReq
	if !decode(w, r, &req) {
		return
	}
	if len(req.Answers) > maxBatchAnswers {
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "bad_request", Message: "too many answers (max " + strconv.Itoa(maxBatchAnswers) + ")"})
		return
	}
	workers := req.Workers
	if workers <= 0 || workers > s.workers {
		workers = s.workers
	}

	opts := req.options()
	res, err := game.RunBatch(r.Context(), s.solver, req.Answers, game.BatchOptions{Options: opts, Workers: workers})
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	run := store.NewRun(res, s.solver.Threshold, opts)
	if s.runs == nil {
		writeJSON(w, http.StatusOK, batchRes{Run: run})
		return
	}
	saved, err := s.runs.SaveRun(r.Context(), run)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	sub, _ := auth.Subject(r.Context())
	log.Info().Str("run", saved.ID).Str("by", sub).Int("games", saved.Games).Msg("batch stored")
	writeJSON(w, http.StatusCreated, batchRes{Run: saved, Stored: true})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorRes{Error: "runs_disabled"})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := s.runs.ListRuns(r.Context(), limit)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorRes{Error: "runs_disabled"})
		return
	}
	run, err := s.runs.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, run)
}
