package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careervoice/internal/config"
)

const jobBoardPage = `{
	"data": [
		{
			"slug": "backend-engineer-berlin",
			"company_name": "Acme GmbH",
			"title": "Backend Engineer",
			"description": "<p>Build APIs in Go</p>",
			"remote": true,
			"url": "https://www.arbeitnow.com/view/backend-engineer-berlin",
			"tags": ["golang", "postgresql"],
			"job_types": ["full-time"],
			"location": "Berlin"
		},
		{
			"slug": "product-designer",
			"company_name": "Design Co",
			"title": "Product Designer",
			"description": "<p>Design things</p>",
			"remote": false,
			"url": "",
			"tags": ["figma"],
			"job_types": ["full-time"],
			"location": "Munich"
		}
	],
	"links": {"next": ""},
	"meta": {"current_page": 1}
}`

func newJobsTestServer(t *testing.T) *Server {
	t.Helper()
	board := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(jobBoardPage))
	}))
	t.Cleanup(board.Close)

	t.Setenv("JWT_SECRET", "test-secret-key")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := &config.ServerConfig{
		Port:               8080,
		DatabaseURL:        "postgres://unused",
		JobsBaseURL:        board.URL,
		AllowedOrigin:      "*",
		RateLimitPerMinute: 60,
	}
	s, err := newServer(cfg, newFakeStore(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.rateLimiter.Stop() })
	return s
}

func TestSearchJobs(t *testing.T) {
	s := newJobsTestServer(t)
	token := registerUser(t, s, "jane@example.com")

	rec := doRequest(t, s, "GET", "/jobs?query=golang", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["count"])

	job := body["jobs"].([]any)[0].(map[string]any)
	assert.Equal(t, "Backend Engineer", job["title"])
	assert.Equal(t, "Acme GmbH", job["company"])
	assert.Equal(t, "Build APIs in Go", job["description"])
}

func TestSearchJobs_EmptyQueryReturnsAll(t *testing.T) {
	s := newJobsTestServer(t)
	token := registerUser(t, s, "jane@example.com")

	rec := doRequest(t, s, "GET", "/jobs", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decodeBody(t, rec)["count"])
}

func TestSearchJobs_InvalidPages(t *testing.T) {
	s := newJobsTestServer(t)
	token := registerUser(t, s, "jane@example.com")

	for _, pages := range []string{"0", "-1", "11", "abc"} {
		rec := doRequest(t, s, "GET", "/jobs?pages="+pages, token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "pages %q", pages)
	}
}
