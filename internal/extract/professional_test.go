package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractProfessionalInfo_JobTitle(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"i am", "I am a developer with a passion for tooling.", "developer"},
		{"work as with qualifiers", "I work as a senior software engineer at a startup.", "senior software engineer"},
		{"role is", "My current role is Product Manager for the platform team.", "Product Manager"},
		{"bare suffix fallback", "Speaking with an experienced data analyst today.", "experienced data analyst"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ExtractProfessionalInfo(tt.text, "")
			assert.Equal(t, tt.want, info.JobTitle)
		})
	}
}

func TestExtractProfessionalInfo_JobTitleRequiresRoleSuffix(t *testing.T) {
	info := ExtractProfessionalInfo("I am a wizard of spreadsheets.", "")
	assert.Equal(t, DefaultJobTitle, info.JobTitle)
}

func TestExtractProfessionalInfo_YearsOfExperience(t *testing.T) {
	info := ExtractProfessionalInfo("", "You: I have 8 years of experience in the field")
	assert.Equal(t, "8", info.YearsOfExperience)
}

func TestExtractProfessionalInfo_YearsFirstMatchWins(t *testing.T) {
	info := ExtractProfessionalInfo("You mentioned 5 years of experience, then 10 years of work before that.", "")
	assert.Equal(t, "5", info.YearsOfExperience)
}

func TestExtractProfessionalInfo_Company(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain", "I have been working at Google since 2019.", "Google"},
		{"legal suffix", "She is employed by Acme Corp and leads a small team.", "Acme Corp"},
		{"company is", "The company is called Initech Solutions and it builds reporting tools.", "Initech Solutions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ExtractProfessionalInfo(tt.text, "")
			assert.Equal(t, tt.want, info.Company)
		})
	}
}

func TestExtractProfessionalInfo_Defaults(t *testing.T) {
	info := ExtractProfessionalInfo("nothing to see here", "")
	assert.Equal(t, DefaultJobTitle, info.JobTitle)
	assert.Empty(t, info.YearsOfExperience)
	assert.Empty(t, info.Company)
}
