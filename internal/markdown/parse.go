package markdown

import (
	"regexp"
	"strings"

	"github.com/jonathan/careervoice/internal/types"
)

var (
	nameRe     = regexp.MustCompile(`(?m)^# (.+)$`)
	titleRe    = regexp.MustCompile(`(?m)^\*\*(.+)\*\*$`)
	contactRe  = regexp.MustCompile(`(?m)^Phone No: (.*?) \| Email: (.*)$`)
	locationRe = regexp.MustCompile(`(?m)^Location: (.+)$`)

	// expHeaderRe matches a "role - company | duration" experience header.
	// Non-greedy groups mean a role containing " - " will split at the first
	// separator; the grammar is lossy by design for such content.
	expHeaderRe = regexp.MustCompile(`^(.+?) - (.+?) \| (.+)$`)

	// eduDetailRe matches the indented "institution | [year]" line.
	eduDetailRe = regexp.MustCompile(`^(.+?) \| \[(.*)\]$`)
)

// Parse recovers a StructuredCV from a markdown document. It is a
// best-effort inverse of Render: it never fails, defaulting every field it
// cannot recover, but documents not produced by Render are not guaranteed
// to reconstruct exactly.
func Parse(doc string) *types.StructuredCV {
	cv := types.NewStructuredCV()

	if m := nameRe.FindStringSubmatch(doc); m != nil && !isPlaceholder(m[1]) {
		cv.PersonalInfo.Name = strings.TrimSpace(m[1])
	}
	if m := titleRe.FindStringSubmatch(doc); m != nil && !isPlaceholder(m[1]) {
		cv.JobTitle = strings.TrimSpace(m[1])
	}
	if m := contactRe.FindStringSubmatch(doc); m != nil {
		if !isPlaceholder(m[1]) {
			cv.PersonalInfo.Phone = strings.TrimSpace(m[1])
		}
		if !isPlaceholder(m[2]) {
			cv.PersonalInfo.Email = strings.TrimSpace(m[2])
		}
	}
	if m := locationRe.FindStringSubmatch(doc); m != nil && !isPlaceholder(m[1]) {
		cv.PersonalInfo.Location = strings.TrimSpace(m[1])
	}

	if body := sectionBody(doc, sectionSummary); body != "" && !isPlaceholder(body) {
		cv.ProfessionalSummary = body
	}
	cv.Skills = parseBulletList(sectionBody(doc, sectionSkills))
	cv.Experience = parseExperience(sectionBody(doc, sectionExperience))
	cv.Education = parseEducation(sectionBody(doc, sectionEducation))
	cv.Certifications = parseBulletList(sectionBody(doc, sectionCertifications))

	return cv
}

// sectionBody returns the trimmed text between a "## NAME" header and the
// next section header (or the trailing attribution rule, or end of input).
func sectionBody(doc, name string) string {
	re := regexp.MustCompile(`(?s)## ` + regexp.QuoteMeta(name) + `\n(.*?)(?:\n## |\n---|$)`)
	m := re.FindStringSubmatch(doc)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// parseBulletList collects "- item" lines, skipping placeholder entries.
func parseBulletList(body string) []string {
	items := []string{}
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "- ") {
			continue
		}
		item := strings.TrimSpace(strings.TrimPrefix(line, "- "))
		if item == "" || isPlaceholder(item) {
			continue
		}
		items = append(items, item)
	}
	return items
}

func parseExperience(body string) []types.ExperienceEntry {
	entries := []types.ExperienceEntry{}
	var current *types.ExperienceEntry

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "- ") {
			if current == nil {
				continue
			}
			resp := strings.TrimSpace(strings.TrimPrefix(line, "- "))
			if resp != "" && !isPlaceholder(resp) {
				current.Responsibilities = append(current.Responsibilities, resp)
			}
			continue
		}
		if m := expHeaderRe.FindStringSubmatch(line); m != nil {
			if isPlaceholder(m[1]) {
				current = nil
				continue
			}
			entries = append(entries, types.ExperienceEntry{
				Role:             strings.TrimSpace(m[1]),
				Company:          strings.TrimSpace(m[2]),
				Duration:         strings.TrimSpace(m[3]),
				Responsibilities: []string{},
			})
			current = &entries[len(entries)-1]
		}
	}
	return entries
}

// parseEducation consumes entries two lines at a time: a "- degree" line
// followed by an indented "institution | [year]" line.
func parseEducation(body string) []types.EducationEntry {
	entries := []types.EducationEntry{}
	lines := strings.Split(body, "\n")

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(line, "- ") {
			continue
		}
		degree := strings.TrimSpace(strings.TrimPrefix(line, "- "))
		if degree == "" || isPlaceholder(degree) {
			continue
		}

		entry := types.EducationEntry{Degree: degree}
		if i+1 < len(lines) {
			detail := strings.TrimSpace(lines[i+1])
			if m := eduDetailRe.FindStringSubmatch(detail); m != nil {
				if !isPlaceholder(m[1]) {
					entry.Institution = strings.TrimSpace(m[1])
				}
				entry.Year = strings.TrimSpace(m[2])
				i++
			}
		}
		entries = append(entries, entry)
	}
	return entries
}
