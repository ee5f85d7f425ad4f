// Package generate orchestrates when the CV pipeline runs: it guards
// against duplicate triggers, sequences basic-then-enhanced assembly, and
// exposes the generated result.
package generate

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/careervoice/internal/assemble"
	"github.com/jonathan/careervoice/internal/markdown"
	"github.com/jonathan/careervoice/internal/transcript"
	"github.com/jonathan/careervoice/internal/types"
)

// State is the generation state of a session.
type State string

// Session states.
const (
	StateIdle       State = "idle"
	StateGenerating State = "generating"
	StateGenerated  State = "generated"
	StateFailed     State = "failed"
)

// Trigger names the event that started a generation attempt. Triggers
// arrive from independent, possibly overlapping event sources; the
// attempted guard, not a lock, enforces at-most-once generation.
type Trigger string

// Generation triggers.
const (
	TriggerEndInterview     Trigger = "end_interview"
	TriggerConcludingPhrase Trigger = "concluding_phrase"
	TriggerTransportError   Trigger = "transport_error"
	TriggerDisconnect       Trigger = "disconnect"
)

// DefaultSettleDelay is the pause between a trigger and the transcript
// read, letting trailing transcript-append events land first. It is a
// debounce, not a correctness mechanism.
const DefaultSettleDelay = 500 * time.Millisecond

// Notifier receives user-visible, non-fatal notices.
type Notifier interface {
	Notify(message string)
}

// Config holds the session's collaborators.
type Config struct {
	// Enhancer optionally upgrades the basic CV. Nil disables enhancement.
	Enhancer assemble.Enhancer
	// Notifier receives user-visible notices. Nil discards them.
	Notifier Notifier
	// SettleDelay overrides DefaultSettleDelay; zero or negative disables
	// the debounce.
	SettleDelay time.Duration
}

// Session owns one interview's transcript and generation state. The
// attempted flag and result are mutated only by the session itself.
type Session struct {
	mu  sync.Mutex
	cfg Config

	log       *transcript.Log
	state     State
	attempted bool
	result    *types.StructuredCV
	rendered  string
	enhanced  bool

	// assembly hooks, replaceable in tests
	basicFn    func(*transcript.Log) (*types.StructuredCV, error)
	enhancedFn func(context.Context, *transcript.Log, assemble.Enhancer) (*types.StructuredCV, error)
}

// NewSession creates an idle session with an empty transcript.
func NewSession(cfg Config) *Session {
	return &Session{
		cfg:   cfg,
		log:   transcript.NewLog(),
		state: StateIdle,
		basicFn: func(l *transcript.Log) (*types.StructuredCV, error) {
			return assemble.Basic(l), nil
		},
		enhancedFn: assemble.Enhanced,
	}
}

// State returns the current generation state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Attempted reports whether a generation attempt has already been made.
func (s *Session) Attempted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempted
}

// Result returns the structured CV and rendered markdown, or nil/"" when
// nothing has been generated yet.
func (s *Session) Result() (*types.StructuredCV, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.rendered
}

// Enhanced reports whether the current result came from the enhancer.
func (s *Session) Enhanced() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enhanced
}

// TranscriptLen returns the number of transcript lines.
func (s *Session) TranscriptLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Len()
}

// TranscriptText returns the full transcript text.
func (s *Session) TranscriptText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.FullText()
}

// Seed replaces the transcript with previously recorded lines, for example
// when rebuilding a session from storage. It is ignored once a generation
// attempt has been made.
func (s *Session) Seed(lines []transcript.Line) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attempted {
		return
	}
	s.log.Reset()
	for _, line := range lines {
		s.log.Append(line)
	}
}

// HandleAgentMessage appends an agent utterance and, if it contains a
// concluding phrase, triggers generation.
func (s *Session) HandleAgentMessage(ctx context.Context, text string) {
	s.mu.Lock()
	s.log.AppendText(transcript.RoleAgent, text)
	s.mu.Unlock()

	if IsConcludingPhrase(text) {
		s.TriggerGeneration(ctx, TriggerConcludingPhrase)
	}
}

// HandleUserMessage appends a candidate utterance.
func (s *Session) HandleUserMessage(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.AppendText(transcript.RoleUser, text)
}

// HandleTransportError triggers generation so a partial transcript still
// yields a CV.
func (s *Session) HandleTransportError(ctx context.Context, detail string) {
	log.Printf("voice transport error: %s", detail)
	s.TriggerGeneration(ctx, TriggerTransportError)
}

// HandleDisconnect triggers generation when the voice transport drops.
func (s *Session) HandleDisconnect(ctx context.Context, reason string) {
	log.Printf("voice transport disconnected: %s", reason)
	s.TriggerGeneration(ctx, TriggerDisconnect)
}

// TriggerGeneration runs the pipeline once per session. The transition is
// refused (returning false) when an attempt was already made or the
// transcript is empty. Basic assembly failure moves the session to failed;
// enhancement failure is swallowed and the basic result stands.
func (s *Session) TriggerGeneration(ctx context.Context, trigger Trigger) bool {
	s.mu.Lock()
	if s.attempted {
		s.mu.Unlock()
		log.Printf("generation already attempted, ignoring trigger %q", trigger)
		return false
	}
	if s.log.Len() == 0 {
		s.mu.Unlock()
		s.notify("There is no interview transcript to generate a CV from.")
		return false
	}
	s.attempted = true
	s.state = StateGenerating
	delay := s.cfg.SettleDelay
	s.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	log.Printf("generating CV (trigger: %s, transcript lines: %d)", trigger, s.log.Len())

	cv, err := s.basicFn(s.log)
	if err != nil {
		log.Printf("basic CV assembly failed: %v", err)
		s.state = StateFailed
		s.notify("CV generation failed.")
		return true
	}
	s.result = cv
	s.rendered = markdown.Render(cv)
	s.state = StateGenerated

	if s.cfg.Enhancer != nil {
		enhanced, err := s.enhancedFn(ctx, s.log, s.cfg.Enhancer)
		if err != nil {
			log.Printf("CV enhancement unavailable, keeping basic result: %v", err)
			s.notify("Enhanced formatting was unavailable; using the basic CV format.")
		} else {
			s.result = enhanced
			s.rendered = markdown.Render(enhanced)
			s.enhanced = true
		}
	}
	return true
}

// Reset returns the session to idle, clearing the transcript, the result
// and the attempted guard.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.Reset()
	s.state = StateIdle
	s.attempted = false
	s.result = nil
	s.rendered = ""
	s.enhanced = false
}

func (s *Session) notify(message string) {
	if s.cfg.Notifier != nil {
		s.cfg.Notifier.Notify(message)
	}
}

// concludingCues are substrings of agent utterances that signal the
// interview is wrapping up and a CV is about to be produced.
var concludingCues = []string{
	"generate your cv",
	"generating your cv",
	"create your cv",
	"creating your cv",
	"prepare your cv",
	"preparing your cv",
	"generate your resume",
	"creating your resume",
	"preparing your resume",
	"thank you for your time",
	"have a great day",
	"that concludes our",
	"wraps up our interview",
	"goodbye",
}

// IsConcludingPhrase reports whether an agent utterance signals the end of
// the interview.
func IsConcludingPhrase(text string) bool {
	lower := strings.ToLower(text)
	for _, cue := range concludingCues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}
