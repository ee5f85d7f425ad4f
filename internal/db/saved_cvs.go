package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/careervoice/internal/types"
)

// SavedCV represents a generated CV stored alongside its source session.
type SavedCV struct {
	ID            uuid.UUID           `json:"id"`
	SessionID     uuid.UUID           `json:"session_id"`
	UserID        uuid.UUID           `json:"user_id"`
	CandidateName string              `json:"candidate_name,omitempty"`
	Enhanced      bool                `json:"enhanced"`
	Markdown      string              `json:"markdown,omitempty"`
	Structured    *types.StructuredCV `json:"structured,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

// SaveCV stores a generated CV for a session, replacing any previous one.
// Returns the saved CV's ID.
func (db *DB) SaveCV(ctx context.Context, sessionID, userID uuid.UUID, cv *types.StructuredCV, markdown string, enhanced bool) (uuid.UUID, error) {
	jsonBytes, err := json.Marshal(cv)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal CV: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO saved_cvs (session_id, user_id, candidate_name, enhanced, markdown, structured)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (session_id) DO UPDATE
		 SET candidate_name = $3, enhanced = $4, markdown = $5, structured = $6, created_at = NOW()
		 RETURNING id`,
		sessionID, userID, cv.PersonalInfo.Name, enhanced, markdown, jsonBytes,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save CV: %w", err)
	}
	return id, nil
}

// GetCV retrieves a saved CV by ID. Returns (nil, nil) when no CV exists.
func (db *DB) GetCV(ctx context.Context, cvID uuid.UUID) (*SavedCV, error) {
	return db.getCV(ctx,
		`SELECT id, session_id, user_id, COALESCE(candidate_name, ''), enhanced, markdown, structured, created_at
		 FROM saved_cvs WHERE id = $1`,
		cvID,
	)
}

// GetCVBySession retrieves the saved CV for a session. Returns (nil, nil)
// when the session has no CV yet.
func (db *DB) GetCVBySession(ctx context.Context, sessionID uuid.UUID) (*SavedCV, error) {
	return db.getCV(ctx,
		`SELECT id, session_id, user_id, COALESCE(candidate_name, ''), enhanced, markdown, structured, created_at
		 FROM saved_cvs WHERE session_id = $1`,
		sessionID,
	)
}

func (db *DB) getCV(ctx context.Context, query string, arg any) (*SavedCV, error) {
	var cv SavedCV
	var structuredBytes []byte

	err := db.pool.QueryRow(ctx, query, arg).Scan(
		&cv.ID, &cv.SessionID, &cv.UserID, &cv.CandidateName, &cv.Enhanced,
		&cv.Markdown, &structuredBytes, &cv.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get CV: %w", err)
	}

	if len(structuredBytes) > 0 {
		var structured types.StructuredCV
		if err := json.Unmarshal(structuredBytes, &structured); err != nil {
			return nil, fmt.Errorf("failed to decode CV: %w", err)
		}
		cv.Structured = &structured
	}
	return &cv, nil
}

// CVFilters holds optional filters for listing saved CVs
type CVFilters struct {
	CandidateName string
	Enhanced      *bool
	Limit         int
}

// ListCVs retrieves a user's saved CVs, newest first, without the heavy
// markdown and structured payloads.
func (db *DB) ListCVs(ctx context.Context, userID uuid.UUID, filters CVFilters) ([]SavedCV, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT id, session_id, user_id, COALESCE(candidate_name, ''), enhanced, created_at
		FROM saved_cvs WHERE user_id = $1`
	args := []any{userID}
	argNum := 2

	if filters.CandidateName != "" {
		query += fmt.Sprintf(" AND candidate_name ILIKE $%d", argNum)
		args = append(args, "%"+filters.CandidateName+"%")
		argNum++
	}
	if filters.Enhanced != nil {
		query += fmt.Sprintf(" AND enhanced = $%d", argNum)
		args = append(args, *filters.Enhanced)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list CVs: %w", err)
	}
	defer rows.Close()

	var cvs []SavedCV
	for rows.Next() {
		var cv SavedCV
		if err := rows.Scan(&cv.ID, &cv.SessionID, &cv.UserID, &cv.CandidateName, &cv.Enhanced, &cv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan CV: %w", err)
		}
		cvs = append(cvs, cv)
	}
	return cvs, nil
}

// DeleteCV deletes a saved CV by ID.
func (db *DB) DeleteCV(ctx context.Context, cvID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM saved_cvs WHERE id = $1`, cvID)
	if err != nil {
		return fmt.Errorf("failed to delete CV: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("CV not found: %s", cvID)
	}
	return nil
}
