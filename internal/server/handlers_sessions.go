package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/careervoice/internal/db"
	"github.com/jonathan/careervoice/internal/generate"
	"github.com/jonathan/careervoice/internal/server/middleware"
	"github.com/jonathan/careervoice/internal/transcript"
)

// sessionResponse is the API view of an interview session.
type sessionResponse struct {
	*db.InterviewSession
	State   generate.State `json:"state,omitempty"`
	Notices []string       `json:"notices,omitempty"`
}

// handleCreateSession starts a new interview session.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sessionID, err := s.db.CreateSession(r.Context(), userID)
	if err != nil {
		log.Printf("failed to create session: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"id":     sessionID,
		"status": db.SessionActive,
	})
}

// handleListSessions lists the authenticated user's sessions.
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	filters := db.SessionFilters{Status: r.URL.Query().Get("status")}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			s.errorResponse(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filters.Limit = limit
	}

	sessions, err := s.db.ListSessions(r.Context(), userID, filters)
	if err != nil {
		log.Printf("failed to list sessions: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}
	if sessions == nil {
		sessions = []db.InterviewSession{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// handleGetSession returns one session with its live generation state.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, _, ok := s.sessionForRequest(w, r)
	if !ok {
		return
	}

	resp := sessionResponse{InterviewSession: session}
	if ls := s.registry.lookup(session.ID); ls != nil {
		resp.State = ls.gen.State()
		resp.Notices = ls.notices.All()
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleDeleteSession deletes a session and its saved CV.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	session, _, ok := s.sessionForRequest(w, r)
	if !ok {
		return
	}

	s.registry.remove(session.ID)
	if err := s.db.DeleteSession(r.Context(), session.ID); err != nil {
		log.Printf("failed to delete session %s: %v", session.ID, err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// appendLineRequest is one transcript utterance.
type appendLineRequest struct {
	Speaker transcript.Role `json:"speaker"`
	Text    string          `json:"text"`
}

// handleAppendLine records an utterance. Agent utterances that contain a
// concluding phrase start CV generation.
func (s *Server) handleAppendLine(w http.ResponseWriter, r *http.Request) {
	session, userID, ok := s.sessionForRequest(w, r)
	if !ok {
		return
	}

	var req appendLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Speaker != transcript.RoleAgent && req.Speaker != transcript.RoleUser {
		s.errorResponse(w, http.StatusBadRequest, "speaker must be \"agent\" or \"user\"")
		return
	}
	if req.Text == "" {
		s.errorResponse(w, http.StatusBadRequest, "text is required")
		return
	}

	// Fetch the live session before persisting so the rebuild from storage
	// cannot see the new line twice.
	ls, err := s.registry.get(r.Context(), s.db, session.ID)
	if err != nil || ls == nil {
		log.Printf("failed to load session %s: %v", session.ID, err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	line := transcript.Line{Speaker: req.Speaker, Text: req.Text}
	if err := s.db.AppendTranscriptLine(r.Context(), session.ID, line); err != nil {
		log.Printf("failed to append transcript line: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to record utterance")
		return
	}

	if req.Speaker == transcript.RoleAgent {
		ls.gen.HandleAgentMessage(r.Context(), req.Text)
	} else {
		ls.gen.HandleUserMessage(req.Text)
	}
	s.persistOutcome(r.Context(), session.ID, userID, ls)

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"line_count": ls.gen.TranscriptLen(),
		"state":      ls.gen.State(),
		"notices":    ls.notices.All(),
	})
}

// handleGetTranscript returns the stored transcript lines.
func (s *Server) handleGetTranscript(w http.ResponseWriter, r *http.Request) {
	session, _, ok := s.sessionForRequest(w, r)
	if !ok {
		return
	}

	logEntry, err := s.db.GetTranscript(r.Context(), session.ID)
	if err != nil || logEntry == nil {
		log.Printf("failed to get transcript for %s: %v", session.ID, err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to get transcript")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"lines": logEntry.Lines(),
		"text":  logEntry.FullText(),
	})
}

// endSessionRequest names why the interview ended.
type endSessionRequest struct {
	Reason string `json:"reason,omitempty"`
}

// handleEndSession ends the interview and triggers CV generation. The
// trigger is idempotent: repeated calls report the existing outcome.
func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	session, userID, ok := s.sessionForRequest(w, r)
	if !ok {
		return
	}

	var req endSessionRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req) // empty body means a normal end
	}

	ls, err := s.registry.get(r.Context(), s.db, session.ID)
	if err != nil || ls == nil {
		log.Printf("failed to load session %s: %v", session.ID, err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	var triggered bool
	switch req.Reason {
	case "transport_error":
		ls.gen.HandleTransportError(r.Context(), "reported by client")
	case "disconnect":
		ls.gen.HandleDisconnect(r.Context(), "reported by client")
	default:
		triggered = ls.gen.TriggerGeneration(r.Context(), generate.TriggerEndInterview)
	}
	s.persistOutcome(r.Context(), session.ID, userID, ls)

	cv, rendered := ls.gen.Result()
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"triggered": triggered,
		"state":     ls.gen.State(),
		"cv":        cv,
		"markdown":  rendered,
		"notices":   ls.notices.All(),
	})
}

// handleResetSession clears the transcript, drops any generated CV and
// returns the session to the active state so the interview can restart.
func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	session, _, ok := s.sessionForRequest(w, r)
	if !ok {
		return
	}

	s.registry.remove(session.ID)
	if err := s.db.ResetSession(r.Context(), session.ID); err != nil {
		log.Printf("failed to reset session %s: %v", session.ID, err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to reset session")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"id":     session.ID,
		"status": db.SessionActive,
		"state":  generate.StateIdle,
	})
}

// handleGetSessionCV returns the generated CV for a session, preferring the
// live result over the stored one.
func (s *Server) handleGetSessionCV(w http.ResponseWriter, r *http.Request) {
	session, _, ok := s.sessionForRequest(w, r)
	if !ok {
		return
	}

	if ls := s.registry.lookup(session.ID); ls != nil && ls.gen.State() == generate.StateGenerated {
		cv, rendered := ls.gen.Result()
		s.jsonResponse(w, http.StatusOK, map[string]any{
			"state":    ls.gen.State(),
			"cv":       cv,
			"markdown": rendered,
			"enhanced": ls.gen.Enhanced(),
			"notices":  ls.notices.All(),
		})
		return
	}

	saved, err := s.db.GetCVBySession(r.Context(), session.ID)
	if err != nil {
		log.Printf("failed to get CV for session %s: %v", session.ID, err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to get CV")
		return
	}
	if saved == nil {
		s.errorResponse(w, http.StatusNotFound, "no CV generated for this session")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"state":    generate.StateGenerated,
		"cv":       saved.Structured,
		"markdown": saved.Markdown,
		"enhanced": saved.Enhanced,
		"cv_id":    saved.ID,
	})
}

// persistOutcome mirrors a finished generation attempt into storage.
func (s *Server) persistOutcome(ctx context.Context, sessionID, userID uuid.UUID, ls *liveSession) {
	if !ls.gen.Attempted() {
		return
	}

	switch ls.gen.State() {
	case generate.StateGenerated:
		cv, rendered := ls.gen.Result()
		if _, err := s.db.SaveCV(ctx, sessionID, userID, cv, rendered, ls.gen.Enhanced()); err != nil {
			log.Printf("failed to save CV for session %s: %v", sessionID, err)
		}
		if err := s.db.UpdateSessionStatus(ctx, sessionID, db.SessionGenerated); err != nil {
			log.Printf("failed to update session status: %v", err)
		}
	case generate.StateFailed:
		if err := s.db.UpdateSessionStatus(ctx, sessionID, db.SessionFailed); err != nil {
			log.Printf("failed to update session status: %v", err)
		}
	}
}

// sessionForRequest resolves the {id} path parameter, loads the session and
// enforces ownership. It writes the error response itself on failure.
func (s *Server) sessionForRequest(w http.ResponseWriter, r *http.Request) (*db.InterviewSession, uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, uuid.Nil, false
	}

	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid session ID")
		return nil, uuid.Nil, false
	}

	session, err := s.db.GetSession(r.Context(), sessionID)
	if err != nil {
		log.Printf("failed to get session %s: %v", sessionID, err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to get session")
		return nil, uuid.Nil, false
	}
	if session == nil {
		s.errorResponse(w, http.StatusNotFound, "session not found")
		return nil, uuid.Nil, false
	}
	if session.UserID != userID {
		s.errorResponse(w, http.StatusForbidden, "forbidden")
		return nil, uuid.Nil, false
	}
	return session, userID, true
}
