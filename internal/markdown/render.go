// Package markdown implements the canonical markdown codec for structured
// CVs. Render and Parse share one section grammar:
//
//	# <name>
//	**<job title>**
//
//	Phone No: <phone> | Email: <email>
//	Location: <location>            (line omitted when location is empty)
//
//	## PROFILE SUMMARY
//	<free text>
//
//	## SKILLS HIGHLIGHT
//	"- <skill>" lines, split into two halves by a blank line (cosmetic)
//
//	## WORK EXPERIENCE
//	"<role> - <company> | <duration>" header, blank line, "- <resp>" bullets
//
//	## EDUCATION
//	"- <degree>" then an indented "<institution> | [<year>]" line
//
//	## CERTIFICATIONS & TRAINING
//	"- <cert>" lines
//
//	---
//	attribution line
//
// Headers and delimiters are load-bearing for Parse; prose outside the
// grammar does not round-trip. Empty fields render bracketed placeholders so
// no section is ever omitted.
package markdown

import (
	"fmt"
	"strings"

	"github.com/jonathan/careervoice/internal/types"
)

// Section header names shared by Render and Parse.
const (
	sectionSummary        = "PROFILE SUMMARY"
	sectionSkills         = "SKILLS HIGHLIGHT"
	sectionExperience     = "WORK EXPERIENCE"
	sectionEducation      = "EDUCATION"
	sectionCertifications = "CERTIFICATIONS & TRAINING"
)

// Bracketed placeholders rendered when a field is empty.
const (
	placeholderName        = "[Your Name]"
	placeholderTitle       = "[Professional Title]"
	placeholderPhone       = "[Phone]"
	placeholderEmail       = "[Email]"
	placeholderSummary     = "[A brief professional summary highlighting your experience and strengths]"
	placeholderSkill       = "[Your key skills]"
	placeholderExpHeader   = "[Position Title] - [Company Name] | [Duration]"
	placeholderExpBullet   = "[Key responsibilities and achievements]"
	placeholderDegree      = "[Degree]"
	placeholderInstitution = "[Institution] | [Year]"
	placeholderCert        = "[Certifications or training courses]"
)

const attributionLine = "*Professional CV generated from a voice interview*"

// Render produces the canonical markdown document for a CV. Output is
// deterministic: same CV in, same document out.
func Render(cv *types.StructuredCV) string {
	var sb strings.Builder

	sb.WriteString("# " + orPlaceholder(cv.PersonalInfo.Name, placeholderName) + "\n")
	sb.WriteString("**" + orPlaceholder(cv.JobTitle, placeholderTitle) + "**\n\n")

	sb.WriteString(fmt.Sprintf("Phone No: %s | Email: %s\n",
		orPlaceholder(cv.PersonalInfo.Phone, placeholderPhone),
		orPlaceholder(cv.PersonalInfo.Email, placeholderEmail)))
	if cv.PersonalInfo.Location != "" {
		sb.WriteString("Location: " + cv.PersonalInfo.Location + "\n")
	}
	sb.WriteString("\n")

	sb.WriteString("## " + sectionSummary + "\n\n")
	sb.WriteString(orPlaceholder(strings.TrimSpace(cv.ProfessionalSummary), placeholderSummary) + "\n\n")

	sb.WriteString("## " + sectionSkills + "\n\n")
	renderSkills(&sb, cv.Skills)

	sb.WriteString("## " + sectionExperience + "\n\n")
	renderExperience(&sb, cv.Experience)

	sb.WriteString("## " + sectionEducation + "\n\n")
	renderEducation(&sb, cv.Education)

	sb.WriteString("## " + sectionCertifications + "\n\n")
	renderCertifications(&sb, cv.Certifications)

	sb.WriteString("---\n")
	sb.WriteString(attributionLine + "\n")
	return sb.String()
}

// renderSkills writes the skill bullets in two roughly equal halves
// separated by a blank line. The split is a presentation artifact only;
// Parse reads the halves back as one flat ordered list.
func renderSkills(sb *strings.Builder, skills []string) {
	if len(skills) == 0 {
		sb.WriteString("- " + placeholderSkill + "\n\n")
		return
	}

	half := (len(skills) + 1) / 2
	for _, s := range skills[:half] {
		sb.WriteString("- " + s + "\n")
	}
	if len(skills) > half {
		sb.WriteString("\n")
		for _, s := range skills[half:] {
			sb.WriteString("- " + s + "\n")
		}
	}
	sb.WriteString("\n")
}

func renderExperience(sb *strings.Builder, entries []types.ExperienceEntry) {
	if len(entries) == 0 {
		sb.WriteString(placeholderExpHeader + "\n\n")
		sb.WriteString("- " + placeholderExpBullet + "\n\n")
		return
	}

	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("%s - %s | %s\n\n", e.Role, e.Company, e.Duration))
		for _, r := range e.Responsibilities {
			sb.WriteString("- " + r + "\n")
		}
		sb.WriteString("\n")
	}
}

func renderEducation(sb *strings.Builder, entries []types.EducationEntry) {
	if len(entries) == 0 {
		sb.WriteString("- " + placeholderDegree + "\n")
		sb.WriteString("  " + placeholderInstitution + "\n\n")
		return
	}

	for _, e := range entries {
		sb.WriteString("- " + e.Degree + "\n")
		sb.WriteString(fmt.Sprintf("  %s | [%s]\n", e.Institution, e.Year))
	}
	sb.WriteString("\n")
}

func renderCertifications(sb *strings.Builder, certs []string) {
	if len(certs) == 0 {
		sb.WriteString("- " + placeholderCert + "\n\n")
		return
	}
	for _, c := range certs {
		sb.WriteString("- " + c + "\n")
	}
	sb.WriteString("\n")
}

func orPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}

// isPlaceholder reports whether a parsed value is a rendered placeholder
// rather than real content.
func isPlaceholder(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")
}
