package extract

import "regexp"

// PersonalInfo holds contact facts extracted from transcript text. Fields
// that could not be extracted carry their documented defaults.
type PersonalInfo struct {
	Name     string
	Email    string
	Phone    string
	Location string
}

// Name requires an introducer phrase followed by a 2-3 token run of
// capitalized words. A bare capitalized-word run without an introducer is
// deliberately not treated as a name; capitalized nouns are too common.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i:the candidate(?:'s)? name is|candidate is named|candidate is)\s+([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+){1,2})`),
	regexp.MustCompile(`(?i:my name is|name is|i am called|i'm called|they call me|this is)\s+([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+){1,2})`),
}

var emailPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-z]{2,})`),
}

// Phone tolerates an optional country code, parenthesized area code and
// ./-/space separators. The second pattern accepts bare 7-digit numbers.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:\+\d{1,3}[-.\s]?)?(?:\(\d{3}\)|\d{3})[-.\s]?\d{3}[-.\s]?\d{4}`),
	regexp.MustCompile(`\b\d{3}[-.\s]?\d{4}\b`),
}

var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i:based in|located in|i live in|living in|my location is)\s+([A-Z][a-zA-Z]+(?:,?[ \t]+[A-Z][a-zA-Z]+)*)`),
	regexp.MustCompile(`(?i:i am from|i'm from)\s+([A-Z][a-zA-Z]+(?:,?[ \t]+[A-Z][a-zA-Z]+)*)`),
}

// ExtractPersonalInfo pulls name, email, phone and location from the agent
// text, falling back to the full transcript per field.
func ExtractPersonalInfo(agentText, fullTranscript string) PersonalInfo {
	info := PersonalInfo{
		Name:  firstMatch(namePatterns, agentText, fullTranscript),
		Email: firstMatch(emailPatterns, agentText, fullTranscript),
		Phone: firstMatch(phonePatterns, agentText, fullTranscript),
	}
	info.Location = firstMatch(locationPatterns, agentText, fullTranscript)

	if info.Name == "" {
		info.Name = DefaultName
	}
	if info.Email == "" {
		info.Email = DefaultEmail
	}
	if info.Phone == "" {
		info.Phone = DefaultPhone
	}
	return info
}
