package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradecv/gradecv/internal/config"
	"github.com/gradecv/gradecv/internal/domain"
	"github.com/gradecv/gradecv/internal/roles"
	"github.com/gradecv/gradecv/internal/scoring"
)

type fakeEngine struct {
	got    scoring.Request
	result domain.ScoreResult
	err    error
}

func (f *fakeEngine) Score(_ context.Context, req scoring.Request) (domain.ScoreResult, error) {
	f.got = req
	return f.result, f.err
}

type fakeRoles struct{}

func (fakeRoles) List() []roles.Entry {
	return []roles.Entry{{Role: "backend engineer", Levels: []string{"junior", "senior"}}}
}

func testServer(eng ScoreService) *Server {
	return NewServer(config.Config{MaxBodyBytes: 1 << 20}, eng, fakeRoles{}, nil)
}

func postScore(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/score", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ScoreHandler()(rec, req)
	return rec
}

func TestScoreHandler_Success(t *testing.T) {
	eng := &fakeEngine{result: domain.ScoreResult{
		Mode:         domain.ModeATS,
		OverallScore: 81.0,
		Breakdown:    domain.ScoreBreakdown{},
	}}
	srv := testServer(eng)

	rec := postScore(t, srv, `{
		"resume": {"contact": {"name": "Dana"}, "skills": ["go"], "metadata": {}},
		"jobDescription": "backend role",
		"role": "backend engineer",
		"level": "senior"
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ats_simulation", got["mode"])
	assert.Equal(t, 81.0, got["overallScore"])

	assert.Equal(t, "backend engineer", eng.got.Role)
	assert.Equal(t, "senior", eng.got.Level)
	assert.Equal(t, []string{"go"}, eng.got.Resume.Skills)
}

func TestScoreHandler_MissingResume(t *testing.T) {
	srv := testServer(&fakeEngine{})
	rec := postScore(t, srv, `{"jobDescription": "some role"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var env errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "INVALID_ARGUMENT", env.Error.Code)
}

func TestScoreHandler_InvalidMode(t *testing.T) {
	srv := testServer(&fakeEngine{})
	rec := postScore(t, srv, `{"resume": {"contact": {}, "metadata": {}}, "mode": "psychic"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var env errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "INVALID_ARGUMENT", env.Error.Code)
	assert.Contains(t, env.Error.Message, "psychic")
}

func TestScoreHandler_MalformedJSON(t *testing.T) {
	srv := testServer(&fakeEngine{})
	rec := postScore(t, srv, `{"resume": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScoreHandler_WrongContentType(t *testing.T) {
	srv := testServer(&fakeEngine{})
	req := httptest.NewRequest(http.MethodPost, "/v1/score", strings.NewReader("resume=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.ScoreHandler()(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScoreHandler_PayloadTooLarge(t *testing.T) {
	srv := NewServer(config.Config{MaxBodyBytes: 64}, &fakeEngine{}, fakeRoles{}, nil)
	body := `{"resume": {"contact": {}, "metadata": {}}, "jobDescription": "` +
		strings.Repeat("x", 256) + `"}`
	rec := postScore(t, srv, body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestScoreHandler_EngineError(t *testing.T) {
	eng := &fakeEngine{err: domain.ErrInternal}
	rec := postScore(t, testServer(eng), `{"resume": {"contact": {}, "metadata": {}}}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var env errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "INTERNAL", env.Error.Code)
}

func TestRolesHandler(t *testing.T) {
	srv := testServer(&fakeEngine{})
	rec := httptest.NewRecorder()
	srv.RolesHandler()(rec, httptest.NewRequest(http.MethodGet, "/v1/roles", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"roles": [{"role": "backend engineer", "levels": ["junior", "senior"]}]}`,
		rec.Body.String())
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	HealthzHandler()(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestReadyz(t *testing.T) {
	srv := testServer(&fakeEngine{})
	rec := httptest.NewRecorder()
	srv.ReadyzHandler()(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	notReady := &Server{Cfg: config.Config{}}
	rec = httptest.NewRecorder()
	notReady.ReadyzHandler()(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestScoreHandler_BuffersIndependentRequests(t *testing.T) {
	eng := &fakeEngine{result: domain.ScoreResult{Mode: domain.ModeQualityCoach, Breakdown: domain.ScoreBreakdown{}, CTA: "keep going"}}
	srv := testServer(eng)
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(map[string]any{
		"resume": domain.ResumeDocument{Skills: []string{"go"}},
	}))
	rec := postScore(t, srv, buf.String())
	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "quality_coach", got["mode"])
	assert.Equal(t, "keep going", got["cta"])
}
