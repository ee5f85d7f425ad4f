package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/jonathan/careervoice/internal/jobs"
)

const maxJobPages = 10

// jobResult is the API view of a job posting, with the HTML description
// flattened to text.
type jobResult struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Remote      bool     `json:"remote"`
	Tags        []string `json:"tags,omitempty"`
	URL         string   `json:"url"`
	Description string   `json:"description,omitempty"`
}

// handleSearchJobs proxies the public job board, filtered by the query.
func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	pages := 1
	if pagesStr := r.URL.Query().Get("pages"); pagesStr != "" {
		n, err := strconv.Atoi(pagesStr)
		if err != nil || n < 1 || n > maxJobPages {
			s.errorResponse(w, http.StatusBadRequest, "pages must be between 1 and 10")
			return
		}
		pages = n
	}

	matches, err := s.jobs.Search(r.Context(), query, pages)
	if err != nil {
		log.Printf("job board search failed: %v", err)
		s.errorResponse(w, http.StatusBadGateway, "job board unavailable")
		return
	}

	results := make([]jobResult, 0, len(matches))
	for _, job := range matches {
		results = append(results, jobResult{
			Title:       job.Title,
			Company:     job.CompanyName,
			Location:    job.Location,
			Remote:      job.Remote,
			Tags:        job.Tags,
			URL:         jobs.PostingURL(job),
			Description: jobs.DescriptionText(job.Description),
		})
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jobs":  results,
		"count": len(results),
	})
}
