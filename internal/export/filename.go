// Package export turns a structured CV into downloadable artifacts:
// markdown, DOCX and PDF.
package export

import (
	"strings"
	"unicode"
)

// Format identifies an export artifact type.
type Format string

// Supported export formats.
const (
	FormatMarkdown Format = "md"
	FormatDOCX     Format = "docx"
	FormatPDF      Format = "pdf"
)

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/markdown; charset=utf-8"
	}
}

// Valid reports whether the format is one of the supported values.
func (f Format) Valid() bool {
	switch f {
	case FormatMarkdown, FormatDOCX, FormatPDF:
		return true
	}
	return false
}

// Filename derives a download filename from the candidate name, e.g.
// "jane_doe_cv.pdf". Names that sanitize to nothing fall back to
// "professional".
func Filename(candidateName string, format Format) string {
	base := sanitizeName(candidateName)
	if base == "" {
		base = "professional"
	}
	return base + "_cv." + string(format)
}

// sanitizeName lowercases the name and keeps letters, digits, dashes and
// underscores, mapping whitespace runs to single underscores.
func sanitizeName(name string) string {
	var sb strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-':
			sb.WriteRune(r)
			lastUnderscore = false
		case unicode.IsSpace(r) || r == '_' || r == '.':
			if !lastUnderscore {
				sb.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(sb.String(), "_")
}
