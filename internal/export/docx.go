package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"github.com/jonathan/careervoice/internal/types"
)

// bodyPlaceholder is the marker the generated template carries; the CV text
// is substituted for it, with newlines becoming Word line breaks.
const bodyPlaceholder = "{{CV_BODY}}"

// DOCX renders the CV as a Word document. A minimal template is built in
// memory and the CV text is substituted into its single paragraph.
func DOCX(cv *types.StructuredCV) ([]byte, error) {
	tmpl, err := templateDocx()
	if err != nil {
		return nil, fmt.Errorf("failed to build docx template: %w", err)
	}

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(tmpl), int64(len(tmpl)))
	if err != nil {
		return nil, fmt.Errorf("failed to open docx template: %w", err)
	}
	defer doc.Close()

	editable := doc.Editable()
	if err := editable.Replace(bodyPlaceholder, plainText(cv), -1); err != nil {
		return nil, fmt.Errorf("failed to fill docx template: %w", err)
	}

	var buf bytes.Buffer
	if err := editable.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write docx: %w", err)
	}
	return buf.Bytes(), nil
}

// plainText renders the CV as plain text with bullet glyphs, one section
// per block.
func plainText(cv *types.StructuredCV) string {
	var sb strings.Builder

	sb.WriteString(cv.PersonalInfo.Name + "\n")
	sb.WriteString(cv.JobTitle + "\n")
	sb.WriteString("Phone: " + cv.PersonalInfo.Phone + "  Email: " + cv.PersonalInfo.Email + "\n")
	if cv.PersonalInfo.Location != "" {
		sb.WriteString("Location: " + cv.PersonalInfo.Location + "\n")
	}

	sb.WriteString("\nPROFILE SUMMARY\n")
	sb.WriteString(cv.ProfessionalSummary + "\n")

	if len(cv.Skills) > 0 {
		sb.WriteString("\nSKILLS\n")
		for _, s := range cv.Skills {
			sb.WriteString("• " + s + "\n")
		}
	}

	if len(cv.Experience) > 0 {
		sb.WriteString("\nWORK EXPERIENCE\n")
		for _, e := range cv.Experience {
			sb.WriteString(e.Role + " — " + e.Company + " (" + e.Duration + ")\n")
			for _, r := range e.Responsibilities {
				sb.WriteString("• " + r + "\n")
			}
		}
	}

	if len(cv.Education) > 0 {
		sb.WriteString("\nEDUCATION\n")
		for _, e := range cv.Education {
			line := e.Degree
			if e.Institution != "" {
				line += ", " + e.Institution
			}
			if e.Year != "" {
				line += " (" + e.Year + ")"
			}
			sb.WriteString("• " + line + "\n")
		}
	}

	if len(cv.Certifications) > 0 {
		sb.WriteString("\nCERTIFICATIONS\n")
		for _, c := range cv.Certifications {
			sb.WriteString("• " + c + "\n")
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// templateDocx assembles the smallest valid .docx archive: content types,
// package relationships and a document body holding the placeholder.
func templateDocx() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	files := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/document.xml", documentXML},
	}
	for _, f := range files {
		w, err := zw.Create(f.name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(f.content)); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"/>`

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t xml:space="preserve">` + bodyPlaceholder + `</w:t></w:r></w:p>
  </w:body>
</w:document>`
