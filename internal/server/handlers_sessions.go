package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jonathan/resume-ats/internal/autosave"
	"github.com/jonathan/resume-ats/internal/server/middleware"
	"github.com/jonathan/resume-ats/internal/types"
)

// CreateSessionResponse is the response of POST /sessions
type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

// AutosaveRequest is the request body of PUT /sessions/{id}/autosave
type AutosaveRequest struct {
	ResumeData       json.RawMessage `json:"resumeData" validate:"required"`
	SelectedTemplate string          `json:"selectedTemplate" validate:"omitempty,oneof=modern classic creative minimal"`
}

// AutosaveResponse is the response of PUT /sessions/{id}/autosave
type AutosaveResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
}

// sessionManager returns the autosave manager of the session in the request context
func (s *Server) sessionManager(r *http.Request) (*autosave.Manager, error) {
	id, err := middleware.GetSessionID(r)
	if err != nil {
		return nil, err
	}
	return autosave.NewManager(s.store, autosave.WithKey(autosave.SessionKey(id))), nil
}

// clearSessionAutosave deletes the autosave of an expired session
func (s *Server) clearSessionAutosave(id string) {
	manager := autosave.NewManager(s.store, autosave.WithKey(autosave.SessionKey(id)))
	if err := manager.Clear(context.Background()); err != nil {
		log.Printf("[server] clearing autosave of expired session %s: %v", id, err)
	}
}

// handleCreateSession starts a new analysis session
func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	id, err := s.sessions.Create()
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	log.Printf("[server] session %s created (%d live)", id, s.sessions.Len())
	s.jsonResponse(w, http.StatusCreated, CreateSessionResponse{SessionID: id})
}

// handleDeleteSession ends a session and clears its autosave
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.GetSessionID(r)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	manager, err := s.sessionManager(r)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	if err := manager.Clear(r.Context()); err != nil {
		log.Printf("[server] clearing autosave of session %s: %v", id, err)
	}

	s.sessions.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

// handleSessionAnalyze runs an analysis within a session and publishes it as the latest result
func (s *Server) handleSessionAnalyze(w http.ResponseWriter, r *http.Request) {
	controller, err := middleware.GetSession(r)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	doc, jobDescription, template, err := s.parseAnalyzeRequest(w, r)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	report, err := controller.RunAnalysis(r.Context(), doc, jobDescription, template)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, report)
}

// handleSessionScore returns the latest published report of a session
func (s *Server) handleSessionScore(w http.ResponseWriter, r *http.Request) {
	controller, err := middleware.GetSession(r)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	report := controller.Latest()
	if report == nil {
		s.errorFromErr(w, ErrNoReport)
		return
	}

	s.jsonResponse(w, http.StatusOK, report)
}

// handlePutAutosave stores the session's editing state
func (s *Server) handlePutAutosave(w http.ResponseWriter, r *http.Request) {
	var req AutosaveRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.errorFromErr(w, err)
		return
	}

	doc, err := parseResume(req.ResumeData)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	manager, err := s.sessionManager(r)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	if err := manager.Save(r.Context(), doc, types.TemplateID(req.SelectedTemplate)); err != nil {
		s.errorFromErr(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, AutosaveResponse{Status: "saved", Key: manager.Key()})
}

// AutosavePatchRequest is the request body of PATCH /sessions/{id}/autosave.
// Field updates are applied first, then removals, each in list order.
type AutosavePatchRequest struct {
	Skills               []types.SkillUpdate   `json:"skills"`
	Projects             []types.ProjectUpdate `json:"projects"`
	RemoveExperience     []string              `json:"removeExperience"`
	RemoveEducation      []string              `json:"removeEducation"`
	RemoveSkills         []string              `json:"removeSkills"`
	RemoveProjects       []string              `json:"removeProjects"`
	RemoveCertifications []string              `json:"removeCertifications"`
}

// applyPatch edits doc in place. Unknown entry IDs are reported as
// *types.EntryNotFoundError and other rejected updates as *ErrValidation.
func applyPatch(doc *types.ResumeDocument, req *AutosavePatchRequest) error {
	for _, u := range req.Skills {
		if err := doc.ApplySkillUpdate(u); err != nil {
			return patchError("skills", err)
		}
	}
	for _, u := range req.Projects {
		if err := doc.ApplyProjectUpdate(u); err != nil {
			return patchError("projects", err)
		}
	}

	removals := []struct {
		kind   string
		ids    []string
		remove func(string) bool
	}{
		{"experience", req.RemoveExperience, doc.RemoveExperience},
		{"education", req.RemoveEducation, doc.RemoveEducation},
		{"skill", req.RemoveSkills, doc.RemoveSkill},
		{"project", req.RemoveProjects, doc.RemoveProject},
		{"certification", req.RemoveCertifications, doc.RemoveCertification},
	}
	for _, rm := range removals {
		for _, id := range rm.ids {
			if !rm.remove(id) {
				return &types.EntryNotFoundError{Kind: rm.kind, ID: id}
			}
		}
	}
	return nil
}

func patchError(field string, err error) error {
	var notFound *types.EntryNotFoundError
	var unknown *types.UnknownFieldError
	if errors.As(err, &notFound) || errors.As(err, &unknown) {
		return err
	}
	return &ErrValidation{Field: field, Message: err.Error()}
}

// handlePatchAutosave applies field updates and removals to the session's saved
// resume and saves the result
func (s *Server) handlePatchAutosave(w http.ResponseWriter, r *http.Request) {
	var req AutosavePatchRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.errorFromErr(w, err)
		return
	}

	manager, err := s.sessionManager(r)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	snapshot, ok := manager.Restore(r.Context())
	if !ok {
		s.errorFromErr(w, ErrNothingRestorable)
		return
	}

	doc := snapshot.ResumeData
	if doc == nil {
		doc = types.NewResumeDocument()
	}
	if err := applyPatch(doc, &req); err != nil {
		s.errorFromErr(w, err)
		return
	}

	// The patched document must still decode on restore.
	data, err := json.Marshal(doc)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	if _, err := parseResume(data); err != nil {
		s.errorFromErr(w, err)
		return
	}

	if err := manager.Save(r.Context(), doc, snapshot.SelectedTemplate); err != nil {
		s.errorFromErr(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, AutosaveResponse{Status: "saved", Key: manager.Key()})
}

// handleGetAutosave returns the session's saved state if it is within the restore window
func (s *Server) handleGetAutosave(w http.ResponseWriter, r *http.Request) {
	manager, err := s.sessionManager(r)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	snapshot, ok := manager.Restore(r.Context())
	if !ok {
		s.errorFromErr(w, ErrNothingRestorable)
		return
	}

	s.jsonResponse(w, http.StatusOK, snapshot)
}
