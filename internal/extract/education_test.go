package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEducation_Introducer(t *testing.T) {
	entries := ExtractEducation("I graduated from Stanford University in 2015.", "")
	require.NotEmpty(t, entries)
	assert.Equal(t, "Stanford University", entries[0].Text)
	assert.False(t, entries[0].LowConfidence)
}

func TestExtractEducation_BareInstitution(t *testing.T) {
	entries := ExtractEducation("He spent four years at the University of Toronto before moving abroad.", "")
	require.NotEmpty(t, entries)
	assert.Equal(t, "University of Toronto", entries[0].Text)
}

func TestExtractEducation_DegreePhrase(t *testing.T) {
	entries := ExtractEducation("She holds a bachelor's degree in computer science from way back.", "")
	require.NotEmpty(t, entries)
	assert.Contains(t, entries[0].Text, "bachelor's degree in computer science")
}

func TestExtractEducation_Dedupe(t *testing.T) {
	text := "I studied at MIT College. Yes, MIT College was great."
	entries := ExtractEducation(text, "")
	var texts []string
	for _, e := range entries {
		texts = append(texts, e.Text)
	}
	assert.Equal(t, dedupe(texts), texts)
}

func TestExtractEducation_KeywordContextFallback(t *testing.T) {
	// No pattern family fires, but a degree keyword is present; the fallback
	// returns a context window flagged low-confidence.
	text := "so anyway i finished my mba back then and moved on"
	entries := ExtractEducation(text, "")
	require.Len(t, entries, 1)
	assert.True(t, entries[0].LowConfidence)
	assert.Contains(t, entries[0].Text, "mba")
}

func TestExtractEducation_NoMatch(t *testing.T) {
	entries := ExtractEducation("We only talked about hobbies.", "")
	assert.Empty(t, entries)
}
