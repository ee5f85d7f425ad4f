package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/careervoice/internal/transcript"
)

// Session statuses mirror the generation lifecycle of an interview.
const (
	SessionActive    = "active"
	SessionGenerated = "generated"
	SessionFailed    = "failed"
)

// InterviewSession represents one voice interview and its transcript.
type InterviewSession struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Status    string    `json:"status"`
	LineCount int       `json:"line_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateSession creates a new interview session for a user and returns its ID.
func (db *DB) CreateSession(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO interview_sessions (user_id, status, transcript)
		 VALUES ($1, $2, '[]'::jsonb)
		 RETURNING id`,
		userID, SessionActive,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create session: %w", err)
	}
	return id, nil
}

// GetSession retrieves a session by ID. Returns (nil, nil) when no session
// exists.
func (db *DB) GetSession(ctx context.Context, sessionID uuid.UUID) (*InterviewSession, error) {
	var s InterviewSession
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, status, jsonb_array_length(transcript), created_at, updated_at
		 FROM interview_sessions WHERE id = $1`,
		sessionID,
	).Scan(&s.ID, &s.UserID, &s.Status, &s.LineCount, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &s, nil
}

// SessionFilters holds optional filters for listing sessions
type SessionFilters struct {
	Status string
	Limit  int
}

// ListSessions retrieves a user's sessions, newest first.
func (db *DB) ListSessions(ctx context.Context, userID uuid.UUID, filters SessionFilters) ([]InterviewSession, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT id, user_id, status, jsonb_array_length(transcript), created_at, updated_at
		FROM interview_sessions WHERE user_id = $1`
	args := []any{userID}
	argNum := 2

	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, filters.Status)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []InterviewSession
	for rows.Next() {
		var s InterviewSession
		if err := rows.Scan(&s.ID, &s.UserID, &s.Status, &s.LineCount, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// AppendTranscriptLine appends one utterance to the session transcript.
func (db *DB) AppendTranscriptLine(ctx context.Context, sessionID uuid.UUID, line transcript.Line) error {
	jsonBytes, err := json.Marshal(line)
	if err != nil {
		return fmt.Errorf("failed to marshal transcript line: %w", err)
	}

	result, err := db.pool.Exec(ctx,
		`UPDATE interview_sessions
		 SET transcript = transcript || $1::jsonb, updated_at = NOW()
		 WHERE id = $2`,
		jsonBytes, sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to append transcript line: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("session not found: %s", sessionID)
	}
	return nil
}

// GetTranscript retrieves the full transcript of a session as an ordered log.
// Returns (nil, nil) when the session does not exist.
func (db *DB) GetTranscript(ctx context.Context, sessionID uuid.UUID) (*transcript.Log, error) {
	var raw []byte
	err := db.pool.QueryRow(ctx,
		`SELECT transcript FROM interview_sessions WHERE id = $1`,
		sessionID,
	).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get transcript: %w", err)
	}

	var lines []transcript.Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("failed to decode transcript: %w", err)
	}

	log := transcript.NewLog()
	for _, line := range lines {
		log.Append(line)
	}
	return log, nil
}

// UpdateSessionStatus moves a session to a new lifecycle status.
func (db *DB) UpdateSessionStatus(ctx context.Context, sessionID uuid.UUID, status string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE interview_sessions SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("session not found: %s", sessionID)
	}
	return nil
}

// ResetSession clears the transcript, drops the saved CV and returns the
// session to the active status.
func (db *DB) ResetSession(ctx context.Context, sessionID uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE interview_sessions
		 SET transcript = '[]'::jsonb, status = $1, updated_at = NOW()
		 WHERE id = $2`,
		SessionActive, sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to reset session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("session not found: %s", sessionID)
	}
	if _, err := db.pool.Exec(ctx, `DELETE FROM saved_cvs WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("failed to drop saved CV: %w", err)
	}
	return nil
}

// DeleteSession deletes a session and its saved CVs (via cascade).
func (db *DB) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM interview_sessions WHERE id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("session not found: %s", sessionID)
	}
	return nil
}
