package extract

import (
	"regexp"
	"strings"
)

// ProfessionalInfo holds career facts extracted from transcript text.
type ProfessionalInfo struct {
	JobTitle          string
	YearsOfExperience string
	Company           string
}

// roleSuffix is the closed set of role nouns a job title must end with.
const roleSuffix = `(?:Developer|Engineer|Designer|Manager|Analyst|Consultant|Specialist|Director|Architect|Administrator|Coordinator|Executive|Officer|Lead|Head|Chief|Supervisor|Assistant|Technician|Programmer|Researcher)`

// titleWords matches up to three qualifier words before the role suffix
// ("senior software", "front end", "C++"). Qualifiers stay on the same
// line; a title never spans transcript lines.
const titleWords = `((?:[\w+#./-]+[ \t]+){0,3}` + roleSuffix + `)`

// Job-title patterns, most specific introducer first; the last is a bare
// role-suffix match anywhere in the text.
var jobTitlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:my (?:current )?(?:role|position|title) is|i work as|working as|work as)\s+(?:an?\s+)?` + titleWords + `\b`),
	regexp.MustCompile(`(?i)(?:i am|i'm)\s+(?:an?\s+)?` + titleWords + `\b`),
	regexp.MustCompile(`(?i)(?:position|role|job)\s+(?:of|as)\s+(?:an?\s+)?` + titleWords + `\b`),
	regexp.MustCompile(`(?i)\b((?:[\w+#./-]+[ \t]+){0,2}` + roleSuffix + `)\b`),
}

// Years of experience: a decimal integer immediately followed by "year(s)"
// and an experience/work cue word. Only the first matched integer is kept.
var yearsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(\d+)\s*\+?\s*years?\s+(?:of\s+)?(?:\w+\s+)?(?:experience|work|working)\b`),
	regexp.MustCompile(`(?i)\b(\d+)\s*\+?\s*years?\s+(?:in|at|doing)\b`),
}

// legalSuffix is the closed set of legal-entity suffixes a company name may
// carry.
const legalSuffix = `(?:Inc|LLC|Ltd|Corp|Corporation|Co|Company|Group|Technologies|Labs|Solutions|Systems)`

// companyName requires a capitalized candidate name, optionally followed by
// a legal-entity suffix. It never spans transcript lines.
const companyName = `([A-Z][\w&.-]*(?:[ \t]+[A-Z][\w&.-]*)*(?:[ \t]+` + legalSuffix + `\.?)?)`

var companyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i:work(?:ing|ed)? (?:at|for)|employed (?:at|by))\s+` + companyName),
	regexp.MustCompile(`(?i:company (?:is called|is named|is|called|named))\s+` + companyName),
}

// ExtractProfessionalInfo pulls job title, years of experience and company
// from the agent text, falling back to the full transcript per field.
func ExtractProfessionalInfo(agentText, fullTranscript string) ProfessionalInfo {
	info := ProfessionalInfo{
		JobTitle:          stripLeadingArticle(firstMatch(jobTitlePatterns, agentText, fullTranscript)),
		YearsOfExperience: firstMatch(yearsPatterns, agentText, fullTranscript),
		Company:           strings.TrimRight(firstMatch(companyPatterns, agentText, fullTranscript), "."),
	}
	if info.JobTitle == "" {
		info.JobTitle = DefaultJobTitle
	}
	return info
}
