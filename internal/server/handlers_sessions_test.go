package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careervoice/internal/assemble"
	"github.com/jonathan/careervoice/internal/config"
	"github.com/jonathan/careervoice/internal/db"
	"github.com/jonathan/careervoice/internal/types"
)

func newTestServer(t *testing.T, enhancer assemble.Enhancer) (*Server, *fakeStore) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret-key")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := &config.ServerConfig{
		Port:               8080,
		DatabaseURL:        "postgres://unused",
		AllowedOrigin:      "*",
		RateLimitPerMinute: 60,
	}
	store := newFakeStore()
	s, err := newServer(cfg, store, enhancer)
	require.NoError(t, err)
	s.registry.settleDelay = 0
	t.Cleanup(func() { s.rateLimiter.Stop() })
	return s, store
}

func doRequest(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func registerUser(t *testing.T, s *Server, email string) string {
	t.Helper()
	rec := doRequest(t, s, "POST", "/auth/register", "", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "secure-password-123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody(t, rec)["token"].(string)
}

func createSession(t *testing.T, s *Server, token string) string {
	t.Helper()
	rec := doRequest(t, s, "POST", "/sessions", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody(t, rec)["id"].(string)
}

func appendLine(t *testing.T, s *Server, token, sessionID, speaker, text string) *httptest.ResponseRecorder {
	t.Helper()
	return doRequest(t, s, "POST", "/sessions/"+sessionID+"/lines", token,
		map[string]string{"speaker": speaker, "text": text})
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := doRequest(t, s, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	s, _ := newTestServer(t, nil)

	token := registerUser(t, s, "jane@example.com")
	require.NotEmpty(t, token)

	// Duplicate email is rejected.
	rec := doRequest(t, s, "POST", "/auth/register", "", map[string]string{
		"name": "Jane", "email": "jane@example.com", "password": "secure-password-123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, s, "POST", "/auth/login", "", map[string]string{
		"email": "jane@example.com", "password": "secure-password-123",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, "POST", "/auth/login", "", map[string]string{
		"email": "jane@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ProtectedRoutesRequireToken(t *testing.T) {
	s, _ := newTestServer(t, nil)

	for _, path := range []string{"/sessions", "/cvs", "/jobs", "/users/me"} {
		rec := doRequest(t, s, "GET", path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "path %s", path)
	}
}

func TestGetProfile(t *testing.T) {
	s, _ := newTestServer(t, nil)
	token := registerUser(t, s, "jane@example.com")

	rec := doRequest(t, s, "GET", "/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "jane@example.com", body["email"])
	assert.NotContains(t, rec.Body.String(), "password_hash")
}

func TestSessionLifecycle_EndInterview(t *testing.T) {
	s, store := newTestServer(t, nil)
	token := registerUser(t, s, "john@example.com")
	sessionID := createSession(t, s, token)

	appendLine(t, s, token, sessionID, "agent", "Hello! Let's start with your name.")
	appendLine(t, s, token, sessionID, "user", "My name is John Smith and my email is john.smith@example.com")
	appendLine(t, s, token, sessionID, "agent", "Thanks John. What are your main skills?")
	appendLine(t, s, token, sessionID, "user", "My skills are C++, Python and Kubernetes")

	rec := doRequest(t, s, "POST", "/sessions/"+sessionID+"/end", token, map[string]string{})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["triggered"])
	assert.Equal(t, "generated", body["state"])
	assert.Contains(t, body["markdown"], "# John Smith")
	assert.Contains(t, body["markdown"], "- C++")

	// The outcome is persisted.
	session, err := store.GetSession(context.Background(), mustUUID(t, sessionID))
	require.NoError(t, err)
	assert.Equal(t, db.SessionGenerated, session.Status)

	saved, err := store.GetCVBySession(context.Background(), session.ID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "John Smith", saved.CandidateName)
	assert.False(t, saved.Enhanced)

	// A second end call does not regenerate.
	rec = doRequest(t, s, "POST", "/sessions/"+sessionID+"/end", token, map[string]string{})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["triggered"])
}

func TestSessionLifecycle_ConcludingPhraseTriggers(t *testing.T) {
	s, _ := newTestServer(t, nil)
	token := registerUser(t, s, "john@example.com")
	sessionID := createSession(t, s, token)

	appendLine(t, s, token, sessionID, "user", "My name is John Smith")
	rec := appendLine(t, s, token, sessionID, "agent", "Perfect, thank you for your time! I'll now generate your CV.")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "generated", decodeBody(t, rec)["state"])
}

func TestSessionLifecycle_DisconnectTriggers(t *testing.T) {
	s, _ := newTestServer(t, nil)
	token := registerUser(t, s, "john@example.com")
	sessionID := createSession(t, s, token)

	appendLine(t, s, token, sessionID, "user", "My name is John Smith")

	rec := doRequest(t, s, "POST", "/sessions/"+sessionID+"/end", token, map[string]string{"reason": "disconnect"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "generated", decodeBody(t, rec)["state"])
}

func TestEndSession_EmptyTranscript(t *testing.T) {
	s, _ := newTestServer(t, nil)
	token := registerUser(t, s, "john@example.com")
	sessionID := createSession(t, s, token)

	rec := doRequest(t, s, "POST", "/sessions/"+sessionID+"/end", token, map[string]string{})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["triggered"])
	assert.Equal(t, "idle", body["state"])
	require.Len(t, body["notices"], 1)
	assert.Contains(t, body["notices"].([]any)[0], "no interview transcript")
}

type stubServerEnhancer struct {
	cv  *types.StructuredCV
	err error
}

func (e *stubServerEnhancer) Enhance(_ context.Context, _ string) (*types.StructuredCV, error) {
	return e.cv, e.err
}

func TestEndSession_EnhancedResultPersisted(t *testing.T) {
	enhanced := types.NewStructuredCV()
	enhanced.PersonalInfo.Name = "John Smith"
	enhanced.JobTitle = "Principal Engineer"
	s, store := newTestServer(t, &stubServerEnhancer{cv: enhanced})

	token := registerUser(t, s, "john@example.com")
	sessionID := createSession(t, s, token)
	appendLine(t, s, token, sessionID, "user", "My name is John Smith")

	rec := doRequest(t, s, "POST", "/sessions/"+sessionID+"/end", token, map[string]string{})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "generated", body["state"])
	assert.Contains(t, body["markdown"], "**Principal Engineer**")

	saved, err := store.GetCVBySession(context.Background(), mustUUID(t, sessionID))
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.True(t, saved.Enhanced)
}

func TestEndSession_EnhancementFailureKeepsBasic(t *testing.T) {
	s, store := newTestServer(t, &stubServerEnhancer{err: fmt.Errorf("quota exceeded")})

	token := registerUser(t, s, "john@example.com")
	sessionID := createSession(t, s, token)
	appendLine(t, s, token, sessionID, "user", "My name is John Smith")

	rec := doRequest(t, s, "POST", "/sessions/"+sessionID+"/end", token, map[string]string{})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "generated", body["state"])
	assert.Contains(t, body["markdown"], "# John Smith")

	saved, err := store.GetCVBySession(context.Background(), mustUUID(t, sessionID))
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.False(t, saved.Enhanced)
}

func TestSessionOwnership(t *testing.T) {
	s, _ := newTestServer(t, nil)
	ownerToken := registerUser(t, s, "owner@example.com")
	otherToken := registerUser(t, s, "other@example.com")
	sessionID := createSession(t, s, ownerToken)

	rec := doRequest(t, s, "GET", "/sessions/"+sessionID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = appendLine(t, s, otherToken, sessionID, "user", "hello")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, s, "DELETE", "/sessions/"+sessionID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAppendLine_Validation(t *testing.T) {
	s, _ := newTestServer(t, nil)
	token := registerUser(t, s, "john@example.com")
	sessionID := createSession(t, s, token)

	rec := appendLine(t, s, token, sessionID, "narrator", "hello")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = appendLine(t, s, token, sessionID, "user", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = appendLine(t, s, token, "00000000-0000-0000-0000-000000000000", "user", "hello")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = appendLine(t, s, token, "not-a-uuid", "user", "hello")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTranscript(t *testing.T) {
	s, _ := newTestServer(t, nil)
	token := registerUser(t, s, "john@example.com")
	sessionID := createSession(t, s, token)

	appendLine(t, s, token, sessionID, "agent", "What is your name?")
	appendLine(t, s, token, sessionID, "user", "My name is John Smith")

	rec := doRequest(t, s, "GET", "/sessions/"+sessionID+"/transcript", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Len(t, body["lines"], 2)
	assert.Contains(t, body["text"], "Agent: What is your name?")
	assert.Contains(t, body["text"], "You: My name is John Smith")
}

func TestDeleteSession_RemovesCV(t *testing.T) {
	s, store := newTestServer(t, nil)
	token := registerUser(t, s, "john@example.com")
	sessionID := createSession(t, s, token)

	appendLine(t, s, token, sessionID, "user", "My name is John Smith")
	doRequest(t, s, "POST", "/sessions/"+sessionID+"/end", token, map[string]string{})

	rec := doRequest(t, s, "DELETE", "/sessions/"+sessionID, token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	saved, err := store.GetCVBySession(context.Background(), mustUUID(t, sessionID))
	require.NoError(t, err)
	assert.Nil(t, saved)

	rec = doRequest(t, s, "GET", "/sessions/"+sessionID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListSessions(t *testing.T) {
	s, _ := newTestServer(t, nil)
	token := registerUser(t, s, "john@example.com")
	createSession(t, s, token)
	createSession(t, s, token)

	rec := doRequest(t, s, "GET", "/sessions", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decodeBody(t, rec)["count"])
}

func TestGetSessionCV_FromStorage(t *testing.T) {
	s, _ := newTestServer(t, nil)
	token := registerUser(t, s, "john@example.com")
	sessionID := createSession(t, s, token)

	appendLine(t, s, token, sessionID, "user", "My name is John Smith")
	doRequest(t, s, "POST", "/sessions/"+sessionID+"/end", token, map[string]string{})

	// Evict the live session to force the storage path.
	s.registry.remove(mustUUID(t, sessionID))

	rec := doRequest(t, s, "GET", "/sessions/"+sessionID+"/cv", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "generated", body["state"])
	assert.Contains(t, body["markdown"], "# John Smith")
}

func TestGetSessionCV_NotGenerated(t *testing.T) {
	s, _ := newTestServer(t, nil)
	token := registerUser(t, s, "john@example.com")
	sessionID := createSession(t, s, token)

	rec := doRequest(t, s, "GET", "/sessions/"+sessionID+"/cv", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}

func TestResetSession(t *testing.T) {
	s, store := newTestServer(t, nil)
	token := registerUser(t, s, "jane@example.com")
	sessionID := createSession(t, s, token)

	appendLine(t, s, token, sessionID, "user", "My name is John Smith.")
	rec := doRequest(t, s, "POST", "/sessions/"+sessionID+"/end", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "generated", decodeBody(t, rec)["state"])

	rec = doRequest(t, s, "POST", "/sessions/"+sessionID+"/reset", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "idle", decodeBody(t, rec)["state"])

	// Transcript, status and saved CV are all cleared.
	session, err := store.GetSession(context.Background(), mustUUID(t, sessionID))
	require.NoError(t, err)
	assert.Equal(t, db.SessionActive, session.Status)
	assert.Equal(t, 0, session.LineCount)

	saved, err := store.GetCVBySession(context.Background(), mustUUID(t, sessionID))
	require.NoError(t, err)
	assert.Nil(t, saved)

	// A fresh interview can run to completion again.
	appendLine(t, s, token, sessionID, "user", "My name is Ada Lovelace.")
	rec = doRequest(t, s, "POST", "/sessions/"+sessionID+"/end", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["triggered"])
	assert.Contains(t, body["markdown"], "# Ada Lovelace")
}
