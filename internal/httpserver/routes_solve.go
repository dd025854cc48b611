// internal/httpserver/routes_solve.go
//
// Solving endpoints:
//   - POST /suggest           → one-shot suggestion for the posted constraints
//   - POST /session/new       → start an assisted session (all unknown)
//   - POST /session/feedback  → merge one round's colours, get the next guess
//
// Constraints may be posted either in the compact textual forms the CLI
// accepts ("c....", "/a///", "eiou") or as per-position string arrays.

package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/robalobadob/wordle/apps/solver/internal/constraint"
	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
)

func (s *Server) mountSolve(r chi.Router) {
	r.Post("/suggest", s.handleSuggest)
	r.Route("/session", func(r chi.Router) {
		r.Post("/new", s.handleSessionNew)
		r.Post("/feedback", s.handleSessionFeedback)
	})
}

// textOrList decodes either a JSON string or an array of strings.
type textOrList struct {
	text   string
	list   []string
	isList bool
}

func (f *textOrList) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '[' {
		f.isList = true
		return json.Unmarshal(b, &f.list)
	}
	if string(b) == "null" {
		return nil
	}
	return json.Unmarshal(b, &f.text)
}

// fixed renders the value in the textual greens form.
func (f textOrList) fixed() (string, error) {
	if !f.isList {
		return f.text, nil
	}
	var b strings.Builder
	for i, e := range f.list {
		switch e = strings.TrimSpace(e); {
		case e == "" || e == ".":
			b.WriteByte('.')
		case len(e) == 1:
			b.WriteString(e)
		default:
			return "", fmt.Errorf("%w: fixed position %d holds %q, want one letter", constraint.ErrInvalidInput, i+1, e)
		}
	}
	return b.String(), nil
}

// present renders the value in the textual yellows form.
func (f textOrList) present() string {
	if !f.isList {
		return f.text
	}
	parts := make([]string, len(f.list))
	for i, e := range f.list {
		parts[i] = strings.ReplaceAll(strings.TrimSpace(e), ".", "")
	}
	return strings.Join(parts, "/")
}

func (f textOrList) absent() string {
	if !f.isList {
		return f.text
	}
	return strings.Join(f.list, "")
}

type suggestReq struct {
	Fixed   textOrList `json:"fixed"`
	Present textOrList `json:"present"`
	Absent  textOrList `json:"absent"`
	Limit   int        `json:"limit"`
}

type suggestRes struct {
	Constraints constraint.Set `json:"constraints"`
	solver.Suggestion
}

func (s *Server) suggestLimit(req int) int {
	if req > 0 {
		return req
	}
	return s.limit
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req suggestReq
	if !decode(w, r, &req) {
		return
	}
	fixed, err := req.Fixed.fixed()
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	c, err := constraint.Parse(fixed, req.Present.present(), req.Absent.absent(), s.solver.Tables.Length)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	sug, err := s.solver.Suggest(c, s.suggestLimit(req.Limit))
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, suggestRes{Constraints: c, Suggestion: sug})
}

type sessionReq struct {
	SessionID string `json:"sessionId"`
	Guess     string `json:"guess"`
	Code      string `json:"code"`
	Limit     int    `json:"limit"`
}

type sessionRes struct {
	*store.Session
	Solved     bool               `json:"solved"`
	Suggestion *solver.Suggestion `json:"suggestion,omitempty"`
}

func (s *Server) handleSessionNew(w http.ResponseWriter, r *http.Request) {
	var req sessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "bad_json", Message: err.Error()})
		return
	}
	sess := store.NewSession(uuid.NewString(), s.solver.Tables.Length)
	sug, err := s.solver.Suggest(sess.Constraints, s.suggestLimit(req.Limit))
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, sessionRes{Session: sess, Suggestion: &sug})
}

// handleSessionFeedback merges the colours observed for a guess. Nothing is
// stored when the merge conflicts or leaves no candidates, so the player can
// correct a mistyped code and resend.
func (s *Server) handleSessionFeedback(w http.ResponseWriter, r *http.Request) {
	var req sessionReq
	if !decode(w, r, &req) {
		return
	}
	sess, err := s.sessions.Get(r.Context(), req.SessionID)
	if err != nil {
		writeError(w, err, http.StatusConflict)
		return
	}
	delta, err := game.ParseFeedback(req.Guess, req.Code)
	if err != nil {
		writeError(w, err, http.StatusConflict)
		return
	}
	merged, err := constraint.Merge(sess.Constraints, delta)
	if err != nil {
		writeError(w, err, http.StatusConflict)
		return
	}
	turn := game.Turn{
		Guess: strings.ToLower(strings.TrimSpace(req.Guess)),
		Code:  strings.ToUpper(strings.TrimSpace(req.Code)),
	}

	res := sessionRes{Session: sess}
	if strings.Count(turn.Code, string(game.CodeGreen)) == len(turn.Code) {
		res.Solved = true
	} else {
		sug, err := s.solver.Suggest(merged, s.suggestLimit(req.Limit))
		if err != nil {
			writeError(w, err, http.StatusConflict)
			return
		}
		res.Suggestion = &sug
	}

	sess.Constraints = merged
	sess.Turns = append(sess.Turns, turn)
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
