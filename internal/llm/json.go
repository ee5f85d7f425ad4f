package llm

import "strings"

// CleanJSONBlock recovers a JSON payload from a model response. Models wrap
// JSON in ```json fences or surround it with conversational text even when
// instructed not to; this strips fences, preamble and trailing chatter.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if idx := strings.Index(text, "```json"); idx >= 0 {
		start := idx + len("```json")
		if end := strings.Index(text[start:], "```"); end >= 0 {
			text = text[start : start+end]
		}
	} else if idx := strings.Index(text, "```"); idx >= 0 {
		start := idx + len("```")
		if end := strings.Index(text[start:], "```"); end >= 0 {
			text = text[start : start+end]
		}
	}
	text = strings.TrimSpace(text)

	objIdx := strings.IndexByte(text, '{')
	arrIdx := strings.IndexByte(text, '[')
	switch {
	case objIdx >= 0 && (arrIdx < 0 || objIdx < arrIdx):
		if obj := extractJSONObject(text[objIdx:]); obj != "" {
			return obj
		}
	case arrIdx >= 0:
		if arr := extractJSONArray(text[arrIdx:]); arr != "" {
			return arr
		}
	}
	return text
}

// extractJSONObject returns the balanced {...} prefix of text, or "" when
// text does not start with an object.
func extractJSONObject(text string) string {
	if !strings.HasPrefix(text, "{") {
		return ""
	}
	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}
	return ""
}

// extractJSONArray returns the balanced [...] prefix of text, or "" when
// text does not start with an array.
func extractJSONArray(text string) string {
	if !strings.HasPrefix(text, "[") {
		return ""
	}
	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}
	return ""
}
