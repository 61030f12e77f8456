package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-ats/internal/ingestion"
	"github.com/jonathan/resume-ats/internal/schemas"
	"github.com/jonathan/resume-ats/internal/session"
	"github.com/jonathan/resume-ats/internal/types"
)

// AnalyzeRequest is the request body of /analyze and /sessions/{id}/analyze
type AnalyzeRequest struct {
	Resume         json.RawMessage `json:"resume" validate:"required"`
	JobDescription string          `json:"jobDescription"`
	Template       string          `json:"template,omitempty" validate:"omitempty,oneof=modern classic creative minimal"`
}

// TemplatesResponse is the response of /templates
type TemplatesResponse struct {
	Templates []types.TemplateRating `json:"templates"`
}

// newValidator returns a validator that reports JSON field names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeJSON reads a size-limited JSON body into dst and validates its struct tags
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if s.cfg.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &ErrBodyTooLarge{Limit: tooLarge.Limit}
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}

	if err := s.validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &ErrValidation{Field: fe.Field(), Message: fmt.Sprintf("failed %q check", fe.Tag())}
		}
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

// parseResume checks raw against the resume schema and decodes it
func parseResume(raw json.RawMessage) (*types.ResumeDocument, error) {
	doc, err := schemas.DecodeResume(raw)
	if err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return nil, validationErr
		}
		return nil, &ErrValidation{Field: "resume", Message: err.Error()}
	}
	return doc, nil
}

// parseAnalyzeRequest decodes the body and prepares its resume, job description and template
func (s *Server) parseAnalyzeRequest(w http.ResponseWriter, r *http.Request) (*types.ResumeDocument, string, types.TemplateID, error) {
	var req AnalyzeRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		return nil, "", "", err
	}

	doc, err := parseResume(req.Resume)
	if err != nil {
		return nil, "", "", err
	}

	jobDescription, err := ingestion.PrepareJobDescription(req.JobDescription)
	if err != nil {
		return nil, "", "", &ErrValidation{Field: "jobDescription", Message: err.Error()}
	}

	return doc, jobDescription, types.TemplateID(req.Template), nil
}

// handleAnalyze scores a resume against a job description without a session
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	doc, jobDescription, template, err := s.parseAnalyzeRequest(w, r)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	report, err := session.NewController(s.sessionOpts...).RunAnalysis(r.Context(), doc, jobDescription, template)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, report)
}

// handleListTemplates returns the template rating table, best rated first
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, TemplatesResponse{Templates: types.Templates()})
}

// handleGetTemplate returns one template rating
func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := types.ParseTemplateID(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	rating, ok := types.LookupTemplate(id)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, fmt.Sprintf("template not found: %s", id))
		return
	}

	s.jsonResponse(w, http.StatusOK, rating)
}
