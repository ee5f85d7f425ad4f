package extract

import (
	"regexp"
	"strings"
)

// EducationEntry is one extracted education fact. LowConfidence marks
// entries recovered by the context-window fallback rather than a clean
// pattern match.
type EducationEntry struct {
	Text          string
	LowConfidence bool
}

// Education patterns, in four ordered families: institution via introducer,
// bare institution name, degree/diploma/certificate phrase, and a generic
// abbreviation "X of/in Y" phrase. Unlike scalar fields, every family that
// fires contributes entries.
var educationPatterns = []*regexp.Regexp{
	// family 1: institution named after an introducer phrase
	regexp.MustCompile(`(?i:graduated from|studied at|attended|alumnus of|alumna of|degree from)\s+((?:[A-Z][\w'&.-]*[ ]?)+)`),
	// family 2: bare institution name
	regexp.MustCompile(`\b([A-Z][\w'&.-]*(?:\s+(?:of|for|the|[A-Z][\w'&.-]*)){0,4}\s+(?:University|College|Institute|Academy))\b`),
	regexp.MustCompile(`\b((?:University|College|Institute|Academy)\s+of\s+[A-Z][\w'&.-]*(?:\s+[A-Z][\w'&.-]*)*)\b`),
	// family 3: degree, diploma or certificate phrase
	regexp.MustCompile(`(?i)\b((?:bachelor|master|doctorate|phd|associate)(?:'s)?(?:\s+(?:degree|diploma))?(?:\s+(?:of|in)\s+[A-Za-z][A-Za-z ]{1,40})?)\b`),
	regexp.MustCompile(`(?i)\b((?:diploma|certificate|certification)\s+(?:of|in)\s+[A-Za-z][A-Za-z ]{1,40})\b`),
	// family 4: generic abbreviation "X of/in Y"
	regexp.MustCompile(`\b((?:B\.?Sc?|B\.?A|M\.?Sc?|M\.?A|MBA|B\.?Eng|M\.?Eng)\.?\s+(?:of|in)\s+[A-Za-z][A-Za-z ]{1,40})\b`),
}

// degreeKeywords drives the low-confidence fallback scan.
var degreeKeywords = []string{
	"Bachelor", "Master", "PhD", "Ph.D", "Doctorate", "MBA", "BSc", "MSc",
	"B.S.", "M.S.", "B.A.", "M.A.", "Associate", "Diploma", "High School",
}

// contextRadius is the number of characters kept on each side of a degree
// keyword hit by the fallback scan.
const contextRadius = 50

// ExtractEducation pulls education entries from the agent text, falling back
// to the full transcript, de-duplicated by trimmed string equality. If no
// pattern family fires, a secondary pass scans for degree keywords and
// extracts a context window around the first hit as a low-confidence entry.
func ExtractEducation(agentText, fullTranscript string) []EducationEntry {
	for _, text := range []string{agentText, fullTranscript} {
		if text == "" {
			continue
		}
		if entries := educationFromPatterns(text); len(entries) > 0 {
			return entries
		}
	}
	for _, text := range []string{agentText, fullTranscript} {
		if text == "" {
			continue
		}
		if entry, ok := educationFromKeywordContext(text); ok {
			return []EducationEntry{entry}
		}
	}
	return []EducationEntry{}
}

func educationFromPatterns(text string) []EducationEntry {
	var found []string
	for _, re := range educationPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			found = append(found, strings.TrimSpace(m[1]))
		}
	}
	found = dedupe(found)

	entries := make([]EducationEntry, 0, len(found))
	for _, f := range found {
		entries = append(entries, EducationEntry{Text: f})
	}
	return entries
}

// educationFromKeywordContext returns a +/-50 character window around the
// first degree keyword found in text. The window can capture unrelated
// surrounding words, so the entry is flagged low-confidence.
func educationFromKeywordContext(text string) (EducationEntry, bool) {
	lower := strings.ToLower(text)
	for _, kw := range degreeKeywords {
		idx := strings.Index(lower, strings.ToLower(kw))
		if idx < 0 {
			continue
		}
		start := idx - contextRadius
		if start < 0 {
			start = 0
		}
		end := idx + len(kw) + contextRadius
		if end > len(text) {
			end = len(text)
		}
		return EducationEntry{Text: strings.TrimSpace(text[start:end]), LowConfidence: true}, true
	}
	return EducationEntry{}, false
}
