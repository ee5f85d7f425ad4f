package extract

import (
	"log"
	"regexp"
	"strings"
)

// skillKeywords is the fixed technology/process vocabulary used by the
// secondary skill-scan strategy. Entries may contain regex metacharacters
// (C++, C#, Node.js); patterns are built with QuoteMeta at compile time.
var skillKeywords = []string{
	"JavaScript", "TypeScript", "Python", "Java", "C++", "C#", "Go", "Rust",
	"Ruby", "PHP", "Swift", "Kotlin", "Scala", "SQL", "HTML", "CSS",
	"React", "Angular", "Vue", "Node.js", "Express", "Next.js", "Django",
	"Flask", "Spring", "Rails", "Laravel", ".NET", "jQuery", "Bootstrap",
	"Tailwind", "GraphQL", "REST",
	"MongoDB", "PostgreSQL", "MySQL", "Redis", "Elasticsearch", "SQLite",
	"Docker", "Kubernetes", "Terraform", "Ansible", "Jenkins", "Git",
	"AWS", "Azure", "Google Cloud", "Linux", "CI/CD",
	"Machine Learning", "Data Analysis", "Data Science", "TensorFlow",
	"Agile", "Scrum", "Kanban", "JIRA", "Figma", "Photoshop", "Excel",
	"Project Management", "Leadership", "Communication", "Public Speaking",
}

// keywordMatcher pairs a keyword with its compiled pattern. A nil pattern
// means compilation failed and matching falls back to a case-insensitive
// substring search.
type keywordMatcher struct {
	keyword string
	re      *regexp.Regexp
}

var keywordMatchers = compileKeywordMatchers(skillKeywords)

func compileKeywordMatchers(keywords []string) []keywordMatcher {
	matchers := make([]keywordMatcher, 0, len(keywords))
	for _, kw := range keywords {
		re, err := compileKeywordPattern(kw)
		if err != nil {
			log.Printf("skill keyword %q: pattern compile failed, using substring match: %v", kw, err)
			re = nil
		}
		matchers = append(matchers, keywordMatcher{keyword: kw, re: re})
	}
	return matchers
}

// compileKeywordPattern builds a case-insensitive pattern for a keyword.
// Word boundaries are only anchored against edges that are word characters;
// `\b` between two non-word characters never matches, so a keyword like
// "C++" gets a leading boundary only.
func compileKeywordPattern(keyword string) (*regexp.Regexp, error) {
	pattern := regexp.QuoteMeta(keyword)
	if isWordByte(keyword[0]) {
		pattern = `\b` + pattern
	}
	if isWordByte(keyword[len(keyword)-1]) {
		pattern += `\b`
	}
	return regexp.Compile(`(?i)` + pattern)
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// matches reports whether the keyword occurs in text.
func (m keywordMatcher) matches(text string) bool {
	if m.re != nil {
		return m.re.MatchString(text)
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(m.keyword))
}
