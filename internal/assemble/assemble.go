// Package assemble combines extractor output into the canonical structured
// CV. Two strategies exist: Basic, which runs the heuristic extractors and
// substitutes template defaults for everything they miss (it never fails),
// and Enhanced, which seeds an external enhancement collaborator with the
// extracted facts and adopts its output when available.
package assemble

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/careervoice/internal/extract"
	"github.com/jonathan/careervoice/internal/transcript"
	"github.com/jonathan/careervoice/internal/types"
)

// Context window sizes used when building the extraction input from the
// transcript tail.
const (
	contextAgentLines = 10
	contextUserLines  = 10
)

// defaultSummary is the fixed-template professional summary.
const defaultSummary = "Dedicated professional with a strong track record of delivering quality work."

// Enhancer is the external text-generation collaborator that can upgrade a
// basic CV with inferred detail. Implementations may fail or return nil;
// callers treat any non-success as "use the basic result".
type Enhancer interface {
	Enhance(ctx context.Context, contextText string) (*types.StructuredCV, error)
}

// Template returns the fixed-template CV used when no transcript content is
// available. It matches what Basic produces for an empty transcript.
func Template() *types.StructuredCV {
	cv := types.NewStructuredCV()
	cv.PersonalInfo = types.PersonalInfo{
		Name:  extract.DefaultName,
		Email: extract.DefaultEmail,
		Phone: extract.DefaultPhone,
	}
	cv.JobTitle = extract.DefaultJobTitle
	cv.ProfessionalSummary = defaultSummary
	return cv
}

// Basic assembles a CV from the transcript using the heuristic extractors
// only. It never fails: for empty or minimal transcripts it degrades to the
// fixed-template defaults.
func Basic(log *transcript.Log) *types.StructuredCV {
	agentText := log.AgentText()
	window := log.ContextWindow(contextAgentLines, contextUserLines)

	personal := extract.ExtractPersonalInfo(agentText, window)
	professional := extract.ExtractProfessionalInfo(agentText, window)
	skills := extract.ExtractSkills(agentText, window)
	education := extract.ExtractEducation(agentText, window)

	cv := types.NewStructuredCV()
	cv.PersonalInfo = types.PersonalInfo{
		Name:     personal.Name,
		Email:    personal.Email,
		Phone:    personal.Phone,
		Location: personal.Location,
	}
	cv.JobTitle = professional.JobTitle
	cv.ProfessionalSummary = buildSummary(professional)
	cv.Skills = skills
	for _, entry := range education {
		cv.Education = append(cv.Education, types.EducationEntry{Degree: entry.Text})
	}
	return cv
}

// Enhanced runs Basic to extract seed facts, asks the enhancer to produce a
// richer CV from them, and backfills contact details the enhancer dropped.
// Any enhancer failure is returned to the caller, who keeps the basic
// result instead.
func Enhanced(ctx context.Context, log *transcript.Log, enhancer Enhancer) (*types.StructuredCV, error) {
	if enhancer == nil {
		return nil, fmt.Errorf("no enhancer configured")
	}

	base := Basic(log)
	cv, err := enhancer.Enhance(ctx, SeedContext(base, log))
	if err != nil {
		return nil, fmt.Errorf("enhancement failed: %w", err)
	}
	if cv == nil {
		return nil, fmt.Errorf("enhancer returned no result")
	}
	cv.Normalize()

	if cv.PersonalInfo.Name == "" {
		cv.PersonalInfo.Name = base.PersonalInfo.Name
	}
	if cv.PersonalInfo.Email == "" {
		cv.PersonalInfo.Email = base.PersonalInfo.Email
	}
	if cv.PersonalInfo.Phone == "" {
		cv.PersonalInfo.Phone = base.PersonalInfo.Phone
	}
	if cv.JobTitle == "" {
		cv.JobTitle = base.JobTitle
	}
	return cv, nil
}

// SeedContext renders the extracted facts plus a transcript tail into the
// text handed to the enhancement collaborator.
func SeedContext(base *types.StructuredCV, log *transcript.Log) string {
	var sb strings.Builder
	sb.WriteString("Extracted candidate facts:\n")
	sb.WriteString("Name: " + base.PersonalInfo.Name + "\n")
	sb.WriteString("Email: " + base.PersonalInfo.Email + "\n")
	sb.WriteString("Phone: " + base.PersonalInfo.Phone + "\n")
	if base.PersonalInfo.Location != "" {
		sb.WriteString("Location: " + base.PersonalInfo.Location + "\n")
	}
	sb.WriteString("Job title: " + base.JobTitle + "\n")
	if len(base.Skills) > 0 {
		sb.WriteString("Skills: " + strings.Join(base.Skills, ", ") + "\n")
	}
	if len(base.Education) > 0 {
		degrees := make([]string, len(base.Education))
		for i, e := range base.Education {
			degrees[i] = e.Degree
		}
		sb.WriteString("Education: " + strings.Join(degrees, "; ") + "\n")
	}
	sb.WriteString("Summary: " + base.ProfessionalSummary + "\n")

	sb.WriteString("\nRecent conversation:\n")
	sb.WriteString(log.ContextWindow(contextAgentLines, contextUserLines))
	return sb.String()
}

// buildSummary derives a professional summary sentence from the extracted
// career facts. Years of experience render in "N+" form.
func buildSummary(info extract.ProfessionalInfo) string {
	title := info.JobTitle
	if title == "" {
		title = extract.DefaultJobTitle
	}
	title = strings.ToUpper(title[:1]) + title[1:]

	switch {
	case info.YearsOfExperience != "" && info.Company != "":
		return fmt.Sprintf("%s with %s+ years of experience, currently at %s.", title, info.YearsOfExperience, info.Company)
	case info.YearsOfExperience != "":
		return fmt.Sprintf("%s with %s+ years of experience.", title, info.YearsOfExperience)
	case info.Company != "":
		return fmt.Sprintf("%s currently at %s.", title, info.Company)
	case title != extract.DefaultJobTitle:
		return fmt.Sprintf("%s ready to take on new challenges.", title)
	default:
		return defaultSummary
	}
}
