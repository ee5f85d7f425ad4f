package export

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careervoice/internal/types"
)

func exportCV() *types.StructuredCV {
	cv := types.NewStructuredCV()
	cv.PersonalInfo = types.PersonalInfo{
		Name:  "Jane Doe",
		Email: "jane@example.com",
		Phone: "(555) 123-4567",
	}
	cv.JobTitle = "Software Engineer"
	cv.ProfessionalSummary = "Engineer with 8+ years of experience."
	cv.Skills = []string{"Go", "PostgreSQL"}
	cv.Experience = []types.ExperienceEntry{
		{Role: "Engineer", Company: "Acme", Duration: "2019 - 2024", Responsibilities: []string{"Built APIs"}},
	}
	return cv
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		want   string
	}{
		{"Jane Doe", FormatPDF, "jane_doe_cv.pdf"},
		{"Jane Doe", FormatDOCX, "jane_doe_cv.docx"},
		{"  José  García ", FormatMarkdown, "josé_garcía_cv.md"},
		{"", FormatMarkdown, "professional_cv.md"},
		{"[Your Name]", FormatPDF, "your_name_cv.pdf"},
		{"!!!", FormatPDF, "professional_cv.pdf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Filename(tt.name, tt.format), "name %q", tt.name)
	}
}

func TestFormat_ContentType(t *testing.T) {
	assert.Equal(t, "text/markdown; charset=utf-8", FormatMarkdown.ContentType())
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	assert.Contains(t, FormatDOCX.ContentType(), "wordprocessingml")
}

func TestFormat_Valid(t *testing.T) {
	assert.True(t, FormatPDF.Valid())
	assert.True(t, FormatDOCX.Valid())
	assert.True(t, FormatMarkdown.Valid())
	assert.False(t, Format("exe").Valid())
}

func TestMarkdown(t *testing.T) {
	out := Markdown(exportCV())
	assert.Contains(t, string(out), "# Jane Doe")
	assert.Contains(t, string(out), "## PROFILE SUMMARY")
}

func TestDOCX_ProducesValidArchive(t *testing.T) {
	out, err := DOCX(exportCV())
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	assert.True(t, names["word/document.xml"])
	assert.True(t, names["[Content_Types].xml"])
}

func TestDOCX_SubstitutesContent(t *testing.T) {
	out, err := DOCX(exportCV())
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	require.NoError(t, err)

	var doc string
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		var buf bytes.Buffer
		_, err = buf.ReadFrom(rc)
		rc.Close()
		require.NoError(t, err)
		doc = buf.String()
	}
	require.NotEmpty(t, doc)
	assert.Contains(t, doc, "Jane Doe")
	assert.NotContains(t, doc, bodyPlaceholder)
}

func TestPlainText_Sections(t *testing.T) {
	text := plainText(exportCV())
	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "PROFILE SUMMARY")
	assert.Contains(t, text, "• Go")
	assert.Contains(t, text, "Engineer — Acme (2019 - 2024)")
}

func TestHTML_EscapesContent(t *testing.T) {
	cv := exportCV()
	cv.ProfessionalSummary = `Shipped <script>alert("x")</script> features`
	out, err := HTML(cv)
	require.NoError(t, err)

	html := string(out)
	assert.NotContains(t, html, "<script>alert")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "<h1>Jane Doe</h1>")
	assert.Contains(t, html, "PROFILE SUMMARY")
}
