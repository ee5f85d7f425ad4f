package export

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/jonathan/careervoice/internal/types"
)

// pdfRenderTimeout bounds a single headless-Chrome render.
const pdfRenderTimeout = 60 * time.Second

// PDFRenderer renders CVs to PDF through headless Chrome. The Chrome binary
// is resolved from PATH or the CHROME_PATH environment variable.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDF renderer.
func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

// RenderPDF renders the CV to an A4 PDF.
func (r *PDFRenderer) RenderPDF(ctx context.Context, cv *types.StructuredCV) ([]byte, error) {
	html, err := HTML(cv)
	if err != nil {
		return nil, err
	}
	return r.renderHTML(ctx, html)
}

func (r *PDFRenderer) renderHTML(ctx context.Context, html []byte) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p := os.Getenv("CHROME_PATH"); p != "" {
		opts = append(opts, chromedp.ExecPath(p))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, pdfRenderTimeout)
	defer cancelRun()

	// Chrome needs a file URL; data URLs break relative resource handling.
	tmpDir, err := os.MkdirTemp("", "careervoice-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "cv.html")
	if err := os.WriteFile(htmlPath, html, 0o644); err != nil {
		return nil, err
	}

	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm -> 8.27in x 11.69in
			pdfBuf, _, err = page.PrintToPDF().WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("pdf render failed: %w", err)
	}
	return pdfBuf, nil
}

// HTML renders the CV as a self-contained HTML page used for PDF printing.
func HTML(cv *types.StructuredCV) ([]byte, error) {
	var buf bytes.Buffer
	if err := cvTemplate.Execute(&buf, cv); err != nil {
		return nil, fmt.Errorf("failed to render cv html: %w", err)
	}
	return buf.Bytes(), nil
}

var cvTemplate = template.Must(template.New("cv").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.PersonalInfo.Name}} - CV</title>
<style>
  body { font-family: Georgia, serif; margin: 2.2cm; color: #1a1a1a; }
  h1 { margin: 0 0 0.1em; font-size: 26pt; }
  h2 { font-size: 12pt; letter-spacing: 0.08em; border-bottom: 1px solid #888; padding-bottom: 2px; margin-top: 1.4em; }
  .title { font-size: 13pt; font-style: italic; margin-bottom: 0.3em; }
  .contact { font-size: 10pt; color: #444; }
  ul { margin: 0.3em 0; padding-left: 1.2em; }
  li { margin-bottom: 0.15em; }
  .entry { margin-bottom: 0.6em; }
  .entry-head { font-weight: bold; }
</style>
</head>
<body>
<h1>{{.PersonalInfo.Name}}</h1>
<div class="title">{{.JobTitle}}</div>
<div class="contact">{{.PersonalInfo.Phone}} | {{.PersonalInfo.Email}}{{if .PersonalInfo.Location}} | {{.PersonalInfo.Location}}{{end}}</div>

<h2>PROFILE SUMMARY</h2>
<p>{{.ProfessionalSummary}}</p>

{{if .Skills}}<h2>SKILLS HIGHLIGHT</h2>
<ul>{{range .Skills}}<li>{{.}}</li>{{end}}</ul>{{end}}

{{if .Experience}}<h2>WORK EXPERIENCE</h2>
{{range .Experience}}<div class="entry">
  <div class="entry-head">{{.Role}} - {{.Company}} | {{.Duration}}</div>
  <ul>{{range .Responsibilities}}<li>{{.}}</li>{{end}}</ul>
</div>{{end}}{{end}}

{{if .Education}}<h2>EDUCATION</h2>
<ul>{{range .Education}}<li>{{.Degree}}{{if .Institution}}, {{.Institution}}{{end}}{{if .Year}} ({{.Year}}){{end}}</li>{{end}}</ul>{{end}}

{{if .Certifications}}<h2>CERTIFICATIONS &amp; TRAINING</h2>
<ul>{{range .Certifications}}<li>{{.}}</li>{{end}}</ul>{{end}}
</body>
</html>
`))
