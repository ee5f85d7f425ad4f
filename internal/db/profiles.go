package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Profile is a user's public skills showcase.
type Profile struct {
	UserID    uuid.UUID `json:"user_id"`
	Headline  string    `json:"headline"`
	Skills    []string  `json:"skills"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetUserProfile retrieves a user's showcase profile. Returns (nil, nil)
// when the user has not saved one yet.
func (db *DB) GetUserProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	p := Profile{Skills: []string{}}
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, headline, skills, updated_at
		 FROM user_profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.Headline, &p.Skills, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return &p, nil
}

// UpsertUserProfile creates or replaces a user's showcase profile.
func (db *DB) UpsertUserProfile(ctx context.Context, userID uuid.UUID, headline string, skills []string) (*Profile, error) {
	if skills == nil {
		skills = []string{}
	}
	p := Profile{Skills: []string{}}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO user_profiles (user_id, headline, skills)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE
		 SET headline = EXCLUDED.headline, skills = EXCLUDED.skills, updated_at = NOW()
		 RETURNING user_id, headline, skills, updated_at`,
		userID, headline, skills,
	).Scan(&p.UserID, &p.Headline, &p.Skills, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user profile: %w", err)
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return &p, nil
}
