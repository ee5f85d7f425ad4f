package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jonathan/careervoice/internal/db"
	"github.com/jonathan/careervoice/internal/server/middleware"
)

const (
	maxHeadlineLength = 200
	maxShowcaseSkills = 50
)

// handleGetProfile returns the authenticated user's account profile.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := s.userService.GetProfile(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	s.jsonResponse(w, http.StatusOK, user)
}

// handleGetShowcase returns the user's skills-showcase profile. Users who
// never saved one get an empty profile, not a 404.
func (s *Server) handleGetShowcase(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := s.db.GetUserProfile(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if profile == nil {
		profile = &db.Profile{UserID: userID, Skills: []string{}}
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

type showcaseRequest struct {
	Headline string   `json:"headline"`
	Skills   []string `json:"skills"`
}

// handlePutShowcase creates or replaces the user's skills-showcase profile.
func (s *Server) handlePutShowcase(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req showcaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Headline = strings.TrimSpace(req.Headline)
	if len(req.Headline) > maxHeadlineLength {
		s.errorResponse(w, http.StatusBadRequest, "headline too long")
		return
	}
	if len(req.Skills) > maxShowcaseSkills {
		s.errorResponse(w, http.StatusBadRequest, "too many skills")
		return
	}
	skills := make([]string, 0, len(req.Skills))
	for _, skill := range req.Skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		skills = append(skills, skill)
	}

	profile, err := s.db.UpsertUserProfile(r.Context(), userID, req.Headline, skills)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to save profile")
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}
