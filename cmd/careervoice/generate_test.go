package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careervoice/internal/assemble"
	"github.com/jonathan/careervoice/internal/markdown"
	"github.com/jonathan/careervoice/internal/transcript"
)

func writeTranscript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "interview.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTranscript(t *testing.T) {
	path := writeTranscript(t, `Agent: Hello! What is your name?
You: My name is John Smith.

Agent: What do you do?
I work as a software engineer at Acme.
`)

	log, err := loadTranscript(path)
	require.NoError(t, err)
	require.Equal(t, 4, log.Len())

	lines := log.Lines()
	assert.Equal(t, transcript.RoleAgent, lines[0].Speaker)
	assert.Equal(t, "Hello! What is your name?", lines[0].Text)
	assert.Equal(t, transcript.RoleUser, lines[1].Speaker)
	assert.Equal(t, "My name is John Smith.", lines[1].Text)
	// Unprefixed lines count as candidate speech.
	assert.Equal(t, transcript.RoleUser, lines[3].Speaker)
	assert.Equal(t, "I work as a software engineer at Acme.", lines[3].Text)
}

func TestLoadTranscript_MissingFile(t *testing.T) {
	_, err := loadTranscript(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestSplitSpeaker(t *testing.T) {
	tests := []struct {
		line    string
		speaker transcript.Role
		text    string
	}{
		{"Agent: How are you?", transcript.RoleAgent, "How are you?"},
		{"You: Fine, thanks.", transcript.RoleUser, "Fine, thanks."},
		{"User: Also fine.", transcript.RoleUser, "Also fine."},
		{"Just talking.", transcript.RoleUser, "Just talking."},
	}
	for _, tt := range tests {
		speaker, text := splitSpeaker(tt.line)
		assert.Equal(t, tt.speaker, speaker, tt.line)
		assert.Equal(t, tt.text, text, tt.line)
	}
}

func TestTranscriptFileToMarkdown(t *testing.T) {
	path := writeTranscript(t, `Agent: What is your name?
You: My name is John Smith.
Agent: What are your main skills?
You: I know Go and PostgreSQL.
`)

	log, err := loadTranscript(path)
	require.NoError(t, err)

	rendered := markdown.Render(assemble.Basic(log))
	assert.Contains(t, rendered, "# John Smith")
	assert.Contains(t, rendered, "- Go")
}
