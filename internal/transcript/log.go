// Package transcript provides the ordered, speaker-tagged utterance log that
// feeds the CV extraction pipeline.
package transcript

import (
	"fmt"
	"strings"
	"time"
)

// Role identifies who produced a transcript line.
type Role string

// Speaker roles for transcript lines.
const (
	RoleAgent Role = "agent"
	RoleUser  Role = "user"
)

// Line is a single speaker-tagged utterance.
type Line struct {
	Speaker Role      `json:"speaker"`
	Text    string    `json:"text"`
	At      time.Time `json:"at,omitempty"`
}

// Log is an append-only ordered sequence of transcript lines. It is owned by
// a single interview session; callers that share a Log across goroutines must
// serialize access themselves.
type Log struct {
	lines []Line
}

// NewLog returns an empty transcript log.
func NewLog() *Log {
	return &Log{lines: []Line{}}
}

// Append adds a line to the end of the log.
func (l *Log) Append(line Line) {
	l.lines = append(l.lines, line)
}

// AppendText adds a line with the given speaker and text.
func (l *Log) AppendText(speaker Role, text string) {
	l.Append(Line{Speaker: speaker, Text: text, At: time.Now()})
}

// Reset clears the log.
func (l *Log) Reset() {
	l.lines = l.lines[:0]
}

// Len returns the number of lines in the log.
func (l *Log) Len() int {
	return len(l.lines)
}

// Lines returns a copy of all lines in insertion order.
func (l *Log) Lines() []Line {
	out := make([]Line, len(l.lines))
	copy(out, l.lines)
	return out
}

// AgentText concatenates all agent utterances, newline separated. The
// interviewing agent usually restates key facts, so extractors search this
// text first.
func (l *Log) AgentText() string {
	var sb strings.Builder
	for _, line := range l.lines {
		if line.Speaker == RoleAgent {
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(line.Text)
		}
	}
	return sb.String()
}

// FullText renders the complete transcript as "Speaker: text" lines.
func (l *Log) FullText() string {
	return formatLines(l.lines)
}

// ContextWindow returns the last nAgent agent lines and last mUser user lines,
// interleaved in original transcript order, formatted as "Speaker: text".
func (l *Log) ContextWindow(nAgent, mUser int) string {
	agentSeen, userSeen := 0, 0
	keep := make([]bool, len(l.lines))
	for i := len(l.lines) - 1; i >= 0; i-- {
		switch l.lines[i].Speaker {
		case RoleAgent:
			if agentSeen < nAgent {
				keep[i] = true
				agentSeen++
			}
		case RoleUser:
			if userSeen < mUser {
				keep[i] = true
				userSeen++
			}
		}
	}

	var kept []Line
	for i, line := range l.lines {
		if keep[i] {
			kept = append(kept, line)
		}
	}
	return formatLines(kept)
}

func formatLines(lines []Line) string {
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		speaker := "Agent"
		if line.Speaker == RoleUser {
			speaker = "You"
		}
		sb.WriteString(fmt.Sprintf("%s: %s", speaker, line.Text))
	}
	return sb.String()
}
