package extract

import (
	"regexp"
	"strings"
)

// skillsIntroducer locates the clause that enumerates skills.
var skillsIntroducer = regexp.MustCompile(`(?i)(?:my skills include|skills include|my skills are|skills are|i am proficient in|i'm proficient in|proficient in|skilled in|my expertise includes|technologies i (?:use|know)|my tech stack is)\s*:?\s*`)

// skillsBoundary marks where the skills clause ends: a section cue word, a
// speaker change, or a sentence break starting a new capitalized sentence.
var skillsBoundary = regexp.MustCompile(`(?i)(?:\b(?:my|our|the|his|her|their)\s+)?\b(?:education|experience|background|work history|projects)\b|\n(?:Agent|You): |[.!?]\s+[A-Z]`)

// skillsSeparator splits an enumerated skills clause into tokens.
var skillsSeparator = regexp.MustCompile(`\s*(?:,|;|\n|\s+and\s+|\s+/\s+)\s*`)

// maxSkillLength bounds individual skill tokens; anything 25 characters or
// longer is treated as prose, not a skill.
const maxSkillLength = 25

// ExtractSkills pulls an ordered, de-duplicated skill list from the agent
// text, falling back to the full transcript. The primary strategy parses an
// enumerated "skills include ..." clause; if it yields nothing, a secondary
// pass scans for known technology keywords.
func ExtractSkills(agentText, fullTranscript string) []string {
	for _, text := range []string{agentText, fullTranscript} {
		if text == "" {
			continue
		}
		if skills := skillsFromClause(text); len(skills) > 0 {
			return skills
		}
	}
	for _, text := range []string{agentText, fullTranscript} {
		if text == "" {
			continue
		}
		if skills := skillsFromKeywords(text); len(skills) > 0 {
			return skills
		}
	}
	return []string{}
}

// skillsFromClause finds a skills introducer, takes the text up to the next
// section boundary, and splits it on commas, "and", semicolons, newlines
// and slashes. Tokens must be shorter than maxSkillLength after trimming.
func skillsFromClause(text string) []string {
	loc := skillsIntroducer.FindStringIndex(text)
	if loc == nil {
		return nil
	}
	clause := text[loc[1]:]
	if b := skillsBoundary.FindStringIndex(clause); b != nil {
		clause = clause[:b[0]]
	}

	var skills []string
	for _, token := range skillsSeparator.Split(clause, -1) {
		token = strings.Trim(token, " \t.!?")
		if token == "" || len(token) >= maxSkillLength {
			continue
		}
		skills = append(skills, token)
	}
	return dedupe(skills)
}

// skillsFromKeywords collects every known keyword present in the text, in
// table order.
func skillsFromKeywords(text string) []string {
	var skills []string
	for _, m := range keywordMatchers {
		if m.matches(text) {
			skills = append(skills, m.keyword)
		}
	}
	return skills
}
