package server

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/careervoice/internal/db"
	"github.com/jonathan/careervoice/internal/transcript"
	"github.com/jonathan/careervoice/internal/types"
)

// fakeStore is an in-memory DBClient for handler tests.
type fakeStore struct {
	mu          sync.Mutex
	users       map[uuid.UUID]*db.User
	sessions    map[uuid.UUID]*db.InterviewSession
	transcripts map[uuid.UUID][]transcript.Line
	cvs         map[uuid.UUID]*db.SavedCV
	profiles    map[uuid.UUID]*db.Profile
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       make(map[uuid.UUID]*db.User),
		sessions:    make(map[uuid.UUID]*db.InterviewSession),
		transcripts: make(map[uuid.UUID][]transcript.Line),
		cvs:         make(map[uuid.UUID]*db.SavedCV),
		profiles:    make(map[uuid.UUID]*db.Profile),
	}
}

func (f *fakeStore) CreateUser(_ context.Context, name, email, phone string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	now := time.Now()
	f.users[id] = &db.User{ID: id, Name: name, Email: email, Phone: phone, CreatedAt: now, UpdatedAt: now}
	return id, nil
}

func (f *fakeStore) GetUser(_ context.Context, userID uuid.UUID) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	u, err := f.GetUserByEmail(ctx, email)
	return u != nil, err
}

func (f *fakeStore) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("user not found: %s", userID)
	}
	u.PasswordHash = passwordHash
	u.PasswordSet = true
	u.UpdatedAt = time.Now()
	return nil
}

func (f *fakeStore) GetUserProfile(_ context.Context, userID uuid.UUID) (*db.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	copied := *p
	copied.Skills = append([]string{}, p.Skills...)
	return &copied, nil
}

func (f *fakeStore) UpsertUserProfile(_ context.Context, userID uuid.UUID, headline string, skills []string) (*db.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if skills == nil {
		skills = []string{}
	}
	p := &db.Profile{UserID: userID, Headline: headline, Skills: skills, UpdatedAt: time.Now()}
	f.profiles[userID] = p
	copied := *p
	copied.Skills = append([]string{}, p.Skills...)
	return &copied, nil
}

func (f *fakeStore) CreateSession(_ context.Context, userID uuid.UUID) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	now := time.Now()
	f.sessions[id] = &db.InterviewSession{ID: id, UserID: userID, Status: db.SessionActive, CreatedAt: now, UpdatedAt: now}
	f.transcripts[id] = []transcript.Line{}
	return id, nil
}

func (f *fakeStore) GetSession(_ context.Context, sessionID uuid.UUID) (*db.InterviewSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	copied := *s
	copied.LineCount = len(f.transcripts[sessionID])
	return &copied, nil
}

func (f *fakeStore) ListSessions(_ context.Context, userID uuid.UUID, filters db.SessionFilters) ([]db.InterviewSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.InterviewSession
	for _, s := range f.sessions {
		if s.UserID != userID {
			continue
		}
		if filters.Status != "" && s.Status != filters.Status {
			continue
		}
		copied := *s
		copied.LineCount = len(f.transcripts[s.ID])
		out = append(out, copied)
	}
	return out, nil
}

func (f *fakeStore) AppendTranscriptLine(_ context.Context, sessionID uuid.UUID, line transcript.Line) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sessions[sessionID]; !ok {
		return fmt.Errorf("session not found: %s", sessionID)
	}
	f.transcripts[sessionID] = append(f.transcripts[sessionID], line)
	return nil
}

func (f *fakeStore) GetTranscript(_ context.Context, sessionID uuid.UUID) (*transcript.Log, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lines, ok := f.transcripts[sessionID]
	if !ok {
		return nil, nil
	}
	log := transcript.NewLog()
	for _, line := range lines {
		log.Append(line)
	}
	return log, nil
}

func (f *fakeStore) UpdateSessionStatus(_ context.Context, sessionID uuid.UUID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[sessionID]
	if !ok {
		return fmt.Errorf("session not found: %s", sessionID)
	}
	s.Status = status
	s.UpdatedAt = time.Now()
	return nil
}

func (f *fakeStore) ResetSession(_ context.Context, sessionID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[sessionID]
	if !ok {
		return fmt.Errorf("session not found: %s", sessionID)
	}
	s.Status = db.SessionActive
	s.UpdatedAt = time.Now()
	f.transcripts[sessionID] = []transcript.Line{}
	for id, cv := range f.cvs {
		if cv.SessionID == sessionID {
			delete(f.cvs, id)
		}
	}
	return nil
}

func (f *fakeStore) DeleteSession(_ context.Context, sessionID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sessions[sessionID]; !ok {
		return fmt.Errorf("session not found: %s", sessionID)
	}
	delete(f.sessions, sessionID)
	delete(f.transcripts, sessionID)
	for id, cv := range f.cvs {
		if cv.SessionID == sessionID {
			delete(f.cvs, id)
		}
	}
	return nil
}

func (f *fakeStore) SaveCV(_ context.Context, sessionID, userID uuid.UUID, cv *types.StructuredCV, markdown string, enhanced bool) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, existing := range f.cvs {
		if existing.SessionID == sessionID {
			existing.CandidateName = cv.PersonalInfo.Name
			existing.Enhanced = enhanced
			existing.Markdown = markdown
			existing.Structured = cv
			return id, nil
		}
	}
	id := uuid.New()
	f.cvs[id] = &db.SavedCV{
		ID:            id,
		SessionID:     sessionID,
		UserID:        userID,
		CandidateName: cv.PersonalInfo.Name,
		Enhanced:      enhanced,
		Markdown:      markdown,
		Structured:    cv,
		CreatedAt:     time.Now(),
	}
	return id, nil
}

func (f *fakeStore) GetCV(_ context.Context, cvID uuid.UUID) (*db.SavedCV, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cv, ok := f.cvs[cvID]
	if !ok {
		return nil, nil
	}
	copied := *cv
	return &copied, nil
}

func (f *fakeStore) GetCVBySession(_ context.Context, sessionID uuid.UUID) (*db.SavedCV, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, cv := range f.cvs {
		if cv.SessionID == sessionID {
			copied := *cv
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListCVs(_ context.Context, userID uuid.UUID, filters db.CVFilters) ([]db.SavedCV, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.SavedCV
	for _, cv := range f.cvs {
		if cv.UserID != userID {
			continue
		}
		if filters.CandidateName != "" && !strings.Contains(strings.ToLower(cv.CandidateName), strings.ToLower(filters.CandidateName)) {
			continue
		}
		if filters.Enhanced != nil && cv.Enhanced != *filters.Enhanced {
			continue
		}
		copied := *cv
		out = append(out, copied)
	}
	return out, nil
}

func (f *fakeStore) DeleteCV(_ context.Context, cvID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.cvs[cvID]; !ok {
		return fmt.Errorf("CV not found: %s", cvID)
	}
	delete(f.cvs, cvID)
	return nil
}
