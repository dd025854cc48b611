package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/auth"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T, withDB bool) *Server {
	t.Helper()
	tb, err := words.Load(words.Source{Length: 5})
	require.NoError(t, err)

	o := Options{
		Solver:       solver.New(tb, 0.05, solver.NewSortCache(256)),
		JWTSecret:    testSecret,
		SuggestLimit: 5,
		Workers:      2,
	}
	if withDB {
		db, err := store.OpenDB(filepath.Join(t.TempDir(), "solver.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		require.NoError(t, db.Migrate(context.Background()))
		o.Runs = db
	}
	return New(o)
}

func do(t *testing.T, s *Server, method, path string, body any, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthAndDebug(t *testing.T) {
	s := newTestServer(t, false)

	rec := do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	rec = do(t, s, http.MethodGet, "/debug/words", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[map[string]any](t, rec)
	assert.EqualValues(t, 5, got["length"])
	assert.Contains(t, got, "cache")

	rec = do(t, s, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, false)
	rec := do(t, s, http.MethodOptions, "/suggest", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

type suggestBody struct {
	Choice     string          `json:"choice"`
	Confident  bool            `json:"confident"`
	Candidates int             `json:"candidates"`
	Answers    []solver.Ranked `json:"answers"`
	Excluders  []string        `json:"excluders"`
}

func TestSuggest(t *testing.T) {
	s := newTestServer(t, false)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"textual", map[string]any{"fixed": "c....", "present": "", "absent": "a"}},
		{"lists", map[string]any{"fixed": []string{"c", "", "", "", ""}, "present": []string{}, "absent": []string{"a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/suggest", tt.body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			got := decodeBody[suggestBody](t, rec)
			assert.NotEmpty(t, got.Choice)
			assert.Positive(t, got.Candidates)
			assert.LessOrEqual(t, len(got.Answers), 5)
			for _, a := range got.Answers {
				assert.Equal(t, byte('c'), a.Word[0])
				assert.NotContains(t, a.Word, "a")
			}
		})
	}
}

func TestSuggest_Errors(t *testing.T) {
	s := newTestServer(t, false)

	tests := []struct {
		name string
		body any
		code int
		err  string
	}{
		{"bad json", "not an object", http.StatusBadRequest, "bad_json"},
		{"bad letter", map[string]any{"fixed": "c1..."}, http.StatusBadRequest, "bad_request"},
		{"fixed too long", map[string]any{"fixed": "cranes"}, http.StatusBadRequest, "bad_request"},
		{"known and absent", map[string]any{"fixed": "c....", "absent": "c"}, http.StatusOK, ""},
		{"present and absent", map[string]any{"present": "a", "absent": "a"}, http.StatusBadRequest, "conflict"},
		{"no candidates", map[string]any{"fixed": "qqqqq"}, http.StatusUnprocessableEntity, "no_candidates"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/suggest", tt.body)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
			if tt.err != "" {
				assert.Equal(t, tt.err, decodeBody[errorRes](t, rec).Error)
			}
		})
	}
}

type sessionBody struct {
	SessionID  string       `json:"sessionId"`
	Solved     bool         `json:"solved"`
	Turns      []any        `json:"turns"`
	Suggestion *suggestBody `json:"suggestion"`
}

func TestSessionFlow(t *testing.T) {
	s := newTestServer(t, false)

	rec := do(t, s, http.MethodPost, "/session/new", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sess := decodeBody[sessionBody](t, rec)
	require.NotEmpty(t, sess.SessionID)
	require.NotNil(t, sess.Suggestion)

	// answer "board"
	rec = do(t, s, http.MethodPost, "/session/feedback", map[string]any{
		"sessionId": sess.SessionID, "guess": "adieu", "code": "YY...",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	next := decodeBody[sessionBody](t, rec)
	assert.False(t, next.Solved)
	assert.Len(t, next.Turns, 1)
	require.NotNil(t, next.Suggestion)
	assert.Positive(t, next.Suggestion.Candidates)

	// gray 'd' contradicts the yellow 'd' from the previous round
	rec = do(t, s, http.MethodPost, "/session/feedback", map[string]any{
		"sessionId": sess.SessionID, "guess": "adieu", "code": "G....",
	})
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/session/feedback", map[string]any{
		"sessionId": sess.SessionID, "guess": "board", "code": "ggggg",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	done := decodeBody[sessionBody](t, rec)
	assert.True(t, done.Solved)
	assert.Len(t, done.Turns, 2)
	assert.Nil(t, done.Suggestion)
}

func TestSessionFeedback_Errors(t *testing.T) {
	s := newTestServer(t, false)

	rec := do(t, s, http.MethodPost, "/session/feedback", map[string]any{"sessionId": "missing", "guess": "adieu", "code": "....."})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	sess := decodeBody[sessionBody](t, do(t, s, http.MethodPost, "/session/new", nil))
	rec = do(t, s, http.MethodPost, "/session/feedback", map[string]any{"sessionId": sess.SessionID, "guess": "adieu", "code": "YY"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, s, http.MethodPost, "/session/feedback", map[string]any{"sessionId": sess.SessionID, "guess": "adieu", "code": "YYX.."})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSimulate(t *testing.T) {
	s := newTestServer(t, false)

	rec := do(t, s, http.MethodPost, "/simulate", map[string]any{"answer": "board"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decodeBody[map[string]any](t, rec)
	assert.Equal(t, true, res["solved"])
	assert.Equal(t, "board", res["answer"])

	rec = do(t, s, http.MethodPost, "/simulate", map[string]any{"answer": "board", "firstGuess": "board"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decodeBody[map[string]any](t, rec)["rounds"])

	rec = do(t, s, http.MethodPost, "/simulate", map[string]any{"answer": "boards"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func bearer(t *testing.T) []string {
	t.Helper()
	tok, _, err := auth.Sign(testSecret, "ops", time.Hour)
	require.NoError(t, err)
	return []string{"Authorization", "Bearer " + tok}
}

func TestBatch_RequiresAuth(t *testing.T) {
	s := newTestServer(t, true)
	rec := do(t, s, http.MethodPost, "/simulate/batch", map[string]any{"answers": []string{"board"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBatchAndRuns(t *testing.T) {
	s := newTestServer(t, true)

	rec := do(t, s, http.MethodPost, "/simulate/batch", map[string]any{
		"answers": []string{"board", "crane", "light", "youth"}, "workers": 4,
	}, bearer(t)...)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	run := decodeBody[store.Run](t, rec)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, 4, run.Games)
	assert.Equal(t, 4, run.Solved)

	rec = do(t, s, http.MethodGet, "/runs/"+run.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[store.Run](t, rec)
	assert.Equal(t, run.Histogram, got.Histogram)

	rec = do(t, s, http.MethodGet, "/runs?limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]store.Run](t, rec), 1)

	rec = do(t, s, http.MethodGet, "/runs/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPost, "/simulate/batch", map[string]any{"answers": []string{}}, bearer(t)...)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRuns_Disabled(t *testing.T) {
	s := newTestServer(t, false)
	rec := do(t, s, http.MethodGet, "/runs", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(t, s, http.MethodPost, "/simulate/batch", map[string]any{"answers": []string{"board"}}, bearer(t)...)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, false, decodeBody[map[string]any](t, rec)["stored"])
}
