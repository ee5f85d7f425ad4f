// Package types provides type definitions for structured data used throughout the careervoice system.
package types

// PersonalInfo holds the candidate's contact details.
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location,omitempty"`
}

// ExperienceEntry is a single work history entry on a CV.
type ExperienceEntry struct {
	Role             string   `json:"role"`
	Company          string   `json:"company"`
	Duration         string   `json:"duration"`
	Responsibilities []string `json:"responsibilities"`
}

// EducationEntry is a single education entry on a CV.
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// StructuredCV is the canonical structured resume record. All slice fields
// are always present (possibly empty), never nil, so renderers can emit a
// placeholder section instead of omitting it.
type StructuredCV struct {
	PersonalInfo        PersonalInfo      `json:"personal_info"`
	ProfessionalSummary string            `json:"professional_summary"`
	JobTitle            string            `json:"job_title"`
	Skills              []string          `json:"skills"`
	Experience          []ExperienceEntry `json:"experience"`
	Education           []EducationEntry  `json:"education"`
	Certifications      []string          `json:"certifications"`
	Languages           []string          `json:"languages"`
}

// NewStructuredCV returns an empty CV with all slice fields initialized.
func NewStructuredCV() *StructuredCV {
	return &StructuredCV{
		Skills:         []string{},
		Experience:     []ExperienceEntry{},
		Education:      []EducationEntry{},
		Certifications: []string{},
		Languages:      []string{},
	}
}

// Normalize ensures all slice fields are non-nil, including nested
// responsibility lists. Safe to call on CVs decoded from external JSON.
func (cv *StructuredCV) Normalize() {
	if cv.Skills == nil {
		cv.Skills = []string{}
	}
	if cv.Experience == nil {
		cv.Experience = []ExperienceEntry{}
	}
	for i := range cv.Experience {
		if cv.Experience[i].Responsibilities == nil {
			cv.Experience[i].Responsibilities = []string{}
		}
	}
	if cv.Education == nil {
		cv.Education = []EducationEntry{}
	}
	if cv.Certifications == nil {
		cv.Certifications = []string{}
	}
	if cv.Languages == nil {
		cv.Languages = []string{}
	}
}
