package server

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/careervoice/internal/db"
	"github.com/jonathan/careervoice/internal/export"
	"github.com/jonathan/careervoice/internal/server/middleware"
)

// handleListCVs lists the authenticated user's saved CVs.
func (s *Server) handleListCVs(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	filters := db.CVFilters{CandidateName: r.URL.Query().Get("name")}
	if enhancedStr := r.URL.Query().Get("enhanced"); enhancedStr != "" {
		enhanced, err := strconv.ParseBool(enhancedStr)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "invalid enhanced filter")
			return
		}
		filters.Enhanced = &enhanced
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			s.errorResponse(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filters.Limit = limit
	}

	cvs, err := s.db.ListCVs(r.Context(), userID, filters)
	if err != nil {
		log.Printf("failed to list CVs: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to list CVs")
		return
	}
	if cvs == nil {
		cvs = []db.SavedCV{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"cvs":   cvs,
		"count": len(cvs),
	})
}

// handleGetCV returns one saved CV with its full payload.
func (s *Server) handleGetCV(w http.ResponseWriter, r *http.Request) {
	cv, ok := s.cvForRequest(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, cv)
}

// handleDeleteCV deletes a saved CV.
func (s *Server) handleDeleteCV(w http.ResponseWriter, r *http.Request) {
	cv, ok := s.cvForRequest(w, r)
	if !ok {
		return
	}

	if err := s.db.DeleteCV(r.Context(), cv.ID); err != nil {
		log.Printf("failed to delete CV %s: %v", cv.ID, err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to delete CV")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDownloadCV streams a saved CV as markdown, DOCX or PDF.
func (s *Server) handleDownloadCV(w http.ResponseWriter, r *http.Request) {
	cv, ok := s.cvForRequest(w, r)
	if !ok {
		return
	}
	if cv.Structured == nil {
		s.errorResponse(w, http.StatusInternalServerError, "saved CV has no structured payload")
		return
	}

	format := export.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = export.FormatMarkdown
	}
	if !format.Valid() {
		s.errorResponse(w, http.StatusBadRequest, "format must be one of md, docx, pdf")
		return
	}

	var payload []byte
	var err error
	switch format {
	case export.FormatDOCX:
		payload, err = export.DOCX(cv.Structured)
	case export.FormatPDF:
		payload, err = s.pdf.RenderPDF(r.Context(), cv.Structured)
	default:
		payload = export.Markdown(cv.Structured)
	}
	if err != nil {
		log.Printf("failed to export CV %s as %s: %v", cv.ID, format, err)
		s.errorResponse(w, http.StatusInternalServerError, fmt.Sprintf("failed to export CV as %s", format))
		return
	}

	filename := export.Filename(cv.CandidateName, format)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		log.Printf("failed to write export payload: %v", err)
	}
}

// cvForRequest resolves the {id} path parameter, loads the CV and enforces
// ownership. It writes the error response itself on failure.
func (s *Server) cvForRequest(w http.ResponseWriter, r *http.Request) (*db.SavedCV, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}

	cvID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid CV ID")
		return nil, false
	}

	cv, err := s.db.GetCV(r.Context(), cvID)
	if err != nil {
		log.Printf("failed to get CV %s: %v", cvID, err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to get CV")
		return nil, false
	}
	if cv == nil {
		s.errorResponse(w, http.StatusNotFound, "CV not found")
		return nil, false
	}
	if cv.UserID != userID {
		s.errorResponse(w, http.StatusForbidden, "forbidden")
		return nil, false
	}
	return cv, true
}
