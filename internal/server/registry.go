package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/careervoice/internal/assemble"
	"github.com/jonathan/careervoice/internal/generate"
)

// noticeLog collects user-visible notices emitted during generation so they
// can be returned in API responses. It implements generate.Notifier.
type noticeLog struct {
	mu       sync.Mutex
	messages []string
}

func (n *noticeLog) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

// All returns a copy of the collected notices.
func (n *noticeLog) All() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.messages))
	copy(out, n.messages)
	return out
}

// liveSession pairs a generation session with its notice buffer.
type liveSession struct {
	gen     *generate.Session
	notices *noticeLog
}

// sessionRegistry holds the in-memory generation sessions for interviews
// currently in progress. Sessions are rebuilt from the stored transcript
// when the server restarts mid-interview.
type sessionRegistry struct {
	mu          sync.Mutex
	live        map[uuid.UUID]*liveSession
	enhancer    assemble.Enhancer
	settleDelay time.Duration
}

func newSessionRegistry(enhancer assemble.Enhancer, settleDelay time.Duration) *sessionRegistry {
	return &sessionRegistry{
		live:        make(map[uuid.UUID]*liveSession),
		enhancer:    enhancer,
		settleDelay: settleDelay,
	}
}

// get returns the live session for an interview, rebuilding it from storage
// when absent. Returns (nil, nil) when the interview does not exist.
func (r *sessionRegistry) get(ctx context.Context, store DBClient, sessionID uuid.UUID) (*liveSession, error) {
	r.mu.Lock()
	if ls, ok := r.live[sessionID]; ok {
		r.mu.Unlock()
		return ls, nil
	}
	r.mu.Unlock()

	// Load outside the lock; transcript fetches can be slow.
	log, err := store.GetTranscript(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if log == nil {
		return nil, nil
	}

	notices := &noticeLog{}
	gen := generate.NewSession(generate.Config{
		Enhancer:    r.enhancer,
		Notifier:    notices,
		SettleDelay: r.settleDelay,
	})
	gen.Seed(log.Lines())

	r.mu.Lock()
	defer r.mu.Unlock()
	if ls, ok := r.live[sessionID]; ok {
		return ls, nil
	}
	ls := &liveSession{gen: gen, notices: notices}
	r.live[sessionID] = ls
	return ls, nil
}

// lookup returns the live session without rebuilding from storage.
func (r *sessionRegistry) lookup(sessionID uuid.UUID) *liveSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live[sessionID]
}

// remove evicts a session from the registry.
func (r *sessionRegistry) remove(sessionID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.live, sessionID)
}
