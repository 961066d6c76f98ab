package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/resume-importer/internal/forms"
	"github.com/jonathan/resume-importer/internal/ingestion"
	"github.com/jonathan/resume-importer/internal/parsing"
	"github.com/jonathan/resume-importer/internal/rendering"
	"github.com/jonathan/resume-importer/internal/schemas"
	"github.com/jonathan/resume-importer/internal/types"
)

// ParseTextRequest represents the request body for /v1/parse/text
type ParseTextRequest struct {
	Text string `json:"text" validate:"required"`
}

// RenderResponse represents the response for /v1/render/text
type RenderResponse struct {
	Text string `json:"text"`
}

// ValidateResponse represents the response for /v1/validate
type ValidateResponse struct {
	Valid  bool                 `json:"valid"`
	Errors []schemas.FieldError `json:"errors"`
}

// ImportFailure is returned when an upload cannot be structured. The
// default structure is included so clients can fall back to an empty editor.
type ImportFailure struct {
	Error     string                `json:"error"`
	Structure types.ResumeStructure `json:"structure"`
}

// handleParseText structures pasted resume text
func (s *Server) handleParseText(w http.ResponseWriter, r *http.Request) {
	var req ParseTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validateRequest(req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	structure := parsing.ParseResume(req.Text)
	s.structureResponse(w, r, structure)
}

// handleParseFile structures an uploaded PDF, DOCX, HTML or text file
func (s *Server) handleParseFile(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.maxUploadBytes {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "file too large")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "file is required")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read file: "+err.Error())
		return
	}

	doc, err := ingestion.NewDocument(header.Filename, data)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	structure, err := parsing.ParseDocumentWith(doc, s.parsePDF)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"file":       doc.Name,
			"format":     doc.Format,
			"request_id": requestID(r),
		}).WithError(err).Warn("import failed")
		s.jsonResponse(w, HTTPStatus(err), ImportFailure{Error: err.Error(), Structure: structure})
		return
	}

	s.logger.WithFields(logrus.Fields{
		"file":       doc.Name,
		"format":     doc.Format,
		"hash":       doc.Metadata.Hash,
		"request_id": requestID(r),
	}).Debug("imported document")
	s.structureResponse(w, r, structure)
}

// handleStructureForm rebuilds a structure from a submitted editor form
func (s *Server) handleStructureForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseForm(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid form: "+err.Error())
		return
	}

	structure := forms.FromForm(r.PostForm)
	s.structureResponse(w, r, structure)
}

// handleRenderText renders a structure to plain text
func (s *Server) handleRenderText(w http.ResponseWriter, r *http.Request) {
	var structure types.ResumeStructure
	if err := json.NewDecoder(r.Body).Decode(&structure); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	text, err := rendering.RenderText(structure)
	if err != nil {
		s.logger.WithError(err).WithField("request_id", requestID(r)).Error("render failed")
		s.errorResponse(w, http.StatusInternalServerError, "Failed to render resume")
		return
	}
	s.jsonResponse(w, http.StatusOK, RenderResponse{Text: text})
}

// handleValidate checks a structure document against the schema and the
// structure invariants
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxUploadBytes))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), "Failed to read request body: "+err.Error())
		return
	}
	if !json.Valid(body) {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := schemas.ValidateStructureDocument(body); err != nil {
		s.validationResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, ValidateResponse{Valid: true, Errors: []schemas.FieldError{}})
}

// validationResponse reports schema problems as a 200 with valid=false;
// anything else is a server error.
func (s *Server) validationResponse(w http.ResponseWriter, err error) {
	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		s.jsonResponse(w, http.StatusOK, ValidateResponse{Valid: false, Errors: validationErr.Errors})
		return
	}
	s.logger.WithError(err).Error("schema validation failed to run")
	s.errorResponse(w, http.StatusInternalServerError, "Failed to validate structure")
}

// structureResponse writes a structure, checking it first when output
// validation is enabled.
func (s *Server) structureResponse(w http.ResponseWriter, r *http.Request, structure types.ResumeStructure) {
	structure.Normalize()
	if s.validateOutput {
		if err := schemas.ValidateStructure(structure); err != nil {
			s.logger.WithError(err).WithField("request_id", requestID(r)).Error("produced structure failed validation")
			s.errorResponse(w, http.StatusInternalServerError, "Produced structure failed validation")
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, structure)
}

// validateRequest runs struct tag validation and reports the first failing field.
func (s *Server) validateRequest(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ErrValidation{Field: fe.Field(), Message: fe.Tag()}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}
