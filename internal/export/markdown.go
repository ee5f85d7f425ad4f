package export

import (
	"github.com/jonathan/careervoice/internal/markdown"
	"github.com/jonathan/careervoice/internal/types"
)

// Markdown renders the CV as its canonical markdown document.
func Markdown(cv *types.StructuredCV) []byte {
	return []byte(markdown.Render(cv))
}
