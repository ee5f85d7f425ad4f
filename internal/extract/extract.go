// Package extract provides heuristic pattern extractors that pull structured
// resume facts out of free-form interview transcript text. Extractors are
// total: they return documented defaults instead of failing when nothing
// matches, and they never error on malformed input text.
package extract

import (
	"regexp"
	"strings"
)

// Defaults substituted when an extractor finds no match.
const (
	DefaultName     = "Your Name"
	DefaultEmail    = "your.email@example.com"
	DefaultPhone    = "(555) 123-4567"
	DefaultJobTitle = "Professional"
)

// firstMatch tries each pattern in priority order. For every pattern the
// agent text is searched before the full transcript, because the agent
// usually restates key facts but a detail may only appear verbatim in the
// candidate's own turn. Returns the first capture group of the first
// pattern that fires, or "" when nothing matches.
func firstMatch(patterns []*regexp.Regexp, agentText, fullTranscript string) string {
	for _, re := range patterns {
		for _, text := range []string{agentText, fullTranscript} {
			if text == "" {
				continue
			}
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			if len(m) > 1 {
				return strings.TrimSpace(m[1])
			}
			return strings.TrimSpace(m[0])
		}
	}
	return ""
}

// dedupe removes duplicates by exact string equality, preserving the order
// in which entries were first seen.
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// stripLeadingArticle removes a leading "a", "an" or "the" left over from a
// loose capture.
func stripLeadingArticle(s string) string {
	lower := strings.ToLower(s)
	for _, art := range []string{"a ", "an ", "the "} {
		if strings.HasPrefix(lower, art) {
			return strings.TrimSpace(s[len(art):])
		}
	}
	return s
}
