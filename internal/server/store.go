package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/careervoice/internal/db"
	"github.com/jonathan/careervoice/internal/transcript"
	"github.com/jonathan/careervoice/internal/types"
)

// DBClient is the storage surface the server depends on. *db.DB satisfies
// it; tests substitute an in-memory fake.
type DBClient interface {
	// Users
	CreateUser(ctx context.Context, name, email, phone string) (uuid.UUID, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	GetUserProfile(ctx context.Context, userID uuid.UUID) (*db.Profile, error)
	UpsertUserProfile(ctx context.Context, userID uuid.UUID, headline string, skills []string) (*db.Profile, error)

	// Interview sessions
	CreateSession(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	GetSession(ctx context.Context, sessionID uuid.UUID) (*db.InterviewSession, error)
	ListSessions(ctx context.Context, userID uuid.UUID, filters db.SessionFilters) ([]db.InterviewSession, error)
	AppendTranscriptLine(ctx context.Context, sessionID uuid.UUID, line transcript.Line) error
	GetTranscript(ctx context.Context, sessionID uuid.UUID) (*transcript.Log, error)
	UpdateSessionStatus(ctx context.Context, sessionID uuid.UUID, status string) error
	ResetSession(ctx context.Context, sessionID uuid.UUID) error
	DeleteSession(ctx context.Context, sessionID uuid.UUID) error

	// Saved CVs
	SaveCV(ctx context.Context, sessionID, userID uuid.UUID, cv *types.StructuredCV, markdown string, enhanced bool) (uuid.UUID, error)
	GetCV(ctx context.Context, cvID uuid.UUID) (*db.SavedCV, error)
	GetCVBySession(ctx context.Context, sessionID uuid.UUID) (*db.SavedCV, error)
	ListCVs(ctx context.Context, userID uuid.UUID, filters db.CVFilters) ([]db.SavedCV, error)
	DeleteCV(ctx context.Context, cvID uuid.UUID) error
}
