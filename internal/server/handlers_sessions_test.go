package server

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/jonathan/resume-ats/internal/autosave"
	"github.com/jonathan/resume-ats/internal/config"
	"github.com/jonathan/resume-ats/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createSession creates a session through the API and returns its ID
func createSession(t *testing.T, h http.Handler) string {
	t.Helper()
	w := doRequest(t, h, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decodeBody[CreateSessionResponse](t, w)
	require.NotEmpty(t, resp.SessionID)
	return resp.SessionID
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()
	jobText := string(readTestdata(t, "valid", "job.txt"))

	id := createSession(t, h)

	w := doRequest(t, h, http.MethodGet, "/sessions/"+id+"/score", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "no report before the first run")

	w = doRequest(t, h, http.MethodPost, "/sessions/"+id+"/analyze", analyzeBody(t, jobText, "modern"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	analyzed := decodeBody[types.JobMatchReport](t, w)

	w = doRequest(t, h, http.MethodGet, "/sessions/"+id+"/score", nil)
	require.Equal(t, http.StatusOK, w.Code)
	latest := decodeBody[types.JobMatchReport](t, w)
	assert.Equal(t, analyzed, latest)

	w = doRequest(t, h, http.MethodDelete, "/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, h, http.MethodGet, "/sessions/"+id+"/score", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "session not found")
}

func TestSessionAnalyze_BlankKeepsLatest(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()
	jobText := string(readTestdata(t, "valid", "job.txt"))
	id := createSession(t, h)

	w := doRequest(t, h, http.MethodPost, "/sessions/"+id+"/analyze", analyzeBody(t, jobText, "classic"))
	require.Equal(t, http.StatusOK, w.Code)
	first := decodeBody[types.JobMatchReport](t, w)

	w = doRequest(t, h, http.MethodPost, "/sessions/"+id+"/analyze", analyzeBody(t, "   ", "classic"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doRequest(t, h, http.MethodGet, "/sessions/"+id+"/score", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, first, decodeBody[types.JobMatchReport](t, w))
}

func TestSessionAnalyze_UnknownSession(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s.Handler(), http.MethodPost, "/sessions/does-not-exist/analyze", analyzeBody(t, "Go developer", ""))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateSession_Limit(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	for i := 0; i < 3; i++ {
		createSession(t, h)
	}

	w := doRequest(t, h, http.MethodPost, "/sessions", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "too many sessions")
}

func TestCreateSession_ReclaimsIdleSessions(t *testing.T) {
	s := newTestServer(t, func(cfg *config.ServerConfig) {
		cfg.SessionIdleTimeout = 20 * time.Millisecond
		cfg.SessionCleanupInterval = time.Hour
	})
	h := s.Handler()

	idle := createSession(t, h)
	w := doRequest(t, h, http.MethodPut, "/sessions/"+idle+"/autosave", map[string]any{
		"resumeData": rawJSON(readTestdata(t, "valid", "resume.json")),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	createSession(t, h)
	createSession(t, h)

	time.Sleep(50 * time.Millisecond)

	fresh := createSession(t, h)
	assert.Equal(t, 1, s.sessions.Len())

	w = doRequest(t, h, http.MethodGet, "/sessions/"+idle+"/score", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "session not found")
	w = doRequest(t, h, http.MethodGet, "/sessions/"+fresh+"/score", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "no report yet, but the session exists")
	assert.Contains(t, w.Body.String(), "no completed analysis")

	_, err := s.store.Get(t.Context(), autosave.SessionKey(idle))
	assert.ErrorIs(t, err, autosave.ErrNotFound, "an expired session's autosave is cleared")
}

func TestSessionAutosave(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()
	id := createSession(t, h)

	w := doRequest(t, h, http.MethodGet, "/sessions/"+id+"/autosave", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "nothing saved yet")

	resume := readTestdata(t, "valid", "resume.json")
	w = doRequest(t, h, http.MethodPut, "/sessions/"+id+"/autosave", map[string]any{
		"resumeData":       rawJSON(resume),
		"selectedTemplate": "creative",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	saved := decodeBody[AutosaveResponse](t, w)
	assert.Equal(t, "saved", saved.Status)
	assert.Equal(t, autosave.SessionKey(id), saved.Key)

	w = doRequest(t, h, http.MethodGet, "/sessions/"+id+"/autosave", nil)
	require.Equal(t, http.StatusOK, w.Code)
	snapshot := decodeBody[autosave.Snapshot](t, w)
	assert.Equal(t, types.TemplateCreative, snapshot.SelectedTemplate)
	assert.Positive(t, snapshot.Timestamp)

	var want types.ResumeDocument
	require.NoError(t, json.Unmarshal(resume, &want))
	assert.Equal(t, &want, snapshot.ResumeData)

	w = doRequest(t, h, http.MethodDelete, "/sessions/"+id, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	_, err := s.store.Get(t.Context(), autosave.SessionKey(id))
	assert.ErrorIs(t, err, autosave.ErrNotFound, "deleting a session clears its autosave")
}

func TestSessionAutosave_Patch(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()
	id := createSession(t, h)

	w := doRequest(t, h, http.MethodPut, "/sessions/"+id+"/autosave", map[string]any{
		"resumeData":       rawJSON(readTestdata(t, "valid", "resume.json")),
		"selectedTemplate": "minimal",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, h, http.MethodPatch, "/sessions/"+id+"/autosave", AutosavePatchRequest{
		Skills: []types.SkillUpdate{
			{ID: "skill-2", Field: types.SkillFieldLevel, Value: "Expert"},
		},
		Projects: []types.ProjectUpdate{
			{ID: "proj-1", Field: types.ProjectFieldAddTechnology, Value: "gRPC"},
			{ID: "proj-1", Field: types.ProjectFieldRemoveTechnology, Value: "Kafka"},
		},
		RemoveSkills:         []string{"skill-4"},
		RemoveCertifications: []string{"cert-1"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, h, http.MethodGet, "/sessions/"+id+"/autosave", nil)
	require.Equal(t, http.StatusOK, w.Code)
	snapshot := decodeBody[autosave.Snapshot](t, w)

	assert.Equal(t, types.TemplateMinimal, snapshot.SelectedTemplate)
	doc := snapshot.ResumeData
	require.Len(t, doc.Skills, 3)
	assert.Equal(t, types.SkillExpert, doc.Skills[1].Level)
	assert.Equal(t, []string{"Go", "PostgreSQL", "gRPC"}, doc.Projects[0].Technologies)
	assert.Empty(t, doc.Certifications)
}

func TestSessionAutosave_PatchErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       AutosavePatchRequest
		wantStatus int
		wantError  string
	}{
		{
			name:       "unknown skill",
			body:       AutosavePatchRequest{Skills: []types.SkillUpdate{{ID: "nope", Field: types.SkillFieldName, Value: "Rust"}}},
			wantStatus: http.StatusNotFound,
			wantError:  "skill entry not found",
		},
		{
			name:       "unknown field",
			body:       AutosavePatchRequest{Skills: []types.SkillUpdate{{ID: "skill-1", Field: "years", Value: "5"}}},
			wantStatus: http.StatusBadRequest,
			wantError:  "unknown skill field",
		},
		{
			name:       "bad level",
			body:       AutosavePatchRequest{Skills: []types.SkillUpdate{{ID: "skill-1", Field: types.SkillFieldLevel, Value: "Guru"}}},
			wantStatus: http.StatusBadRequest,
			wantError:  "unknown skill level",
		},
		{
			name:       "remove unknown experience",
			body:       AutosavePatchRequest{RemoveExperience: []string{"exp-9"}},
			wantStatus: http.StatusNotFound,
			wantError:  "experience entry not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			h := s.Handler()
			id := createSession(t, h)

			w := doRequest(t, h, http.MethodPut, "/sessions/"+id+"/autosave", map[string]any{
				"resumeData": rawJSON(readTestdata(t, "valid", "resume.json")),
			})
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			w = doRequest(t, h, http.MethodPatch, "/sessions/"+id+"/autosave", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), tt.wantError)

			w = doRequest(t, h, http.MethodGet, "/sessions/"+id+"/autosave", nil)
			require.Equal(t, http.StatusOK, w.Code)
			snapshot := decodeBody[autosave.Snapshot](t, w)
			assert.Equal(t, types.SkillExpert, snapshot.ResumeData.Skills[0].Level, "a rejected patch saves nothing")
		})
	}
}

func TestSessionAutosave_PatchWithoutSave(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()
	id := createSession(t, h)

	w := doRequest(t, h, http.MethodPatch, "/sessions/"+id+"/autosave", AutosavePatchRequest{RemoveSkills: []string{"skill-1"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionAutosave_SessionsAreIsolated(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()
	a := createSession(t, h)
	b := createSession(t, h)

	w := doRequest(t, h, http.MethodPut, "/sessions/"+a+"/autosave", map[string]any{
		"resumeData": rawJSON(`{"personalInfo":{"fullName":"A"}}`),
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, h, http.MethodGet, "/sessions/"+b+"/autosave", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionAutosave_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{name: "missing resumeData", body: map[string]any{"selectedTemplate": "modern"}},
		{name: "unknown template", body: map[string]any{"resumeData": rawJSON(`{"personalInfo":{}}`), "selectedTemplate": "fancy"}},
		{name: "resume fails schema", body: map[string]any{"resumeData": rawJSON(`{"experience":[]}`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			h := s.Handler()
			id := createSession(t, h)

			w := doRequest(t, h, http.MethodPut, "/sessions/"+id+"/autosave", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}
