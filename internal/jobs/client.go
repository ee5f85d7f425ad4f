// Package jobs provides a client for the Arbeitnow job-board API, used to
// suggest openings that match a generated CV.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"
)

// DefaultBaseURL is the public Arbeitnow job-board endpoint.
const DefaultBaseURL = "https://www.arbeitnow.com/api/job-board-api"

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for API requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; CareerVoice/1.0)"

// maxConcurrentPages bounds the page fan-out.
const maxConcurrentPages = 4

// Job is one posting from the job board.
type Job struct {
	Slug        string   `json:"slug"`
	CompanyName string   `json:"company_name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Remote      bool     `json:"remote"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
	JobTypes    []string `json:"job_types"`
	Location    string   `json:"location"`
	CreatedAt   int64    `json:"created_at"`
}

// Page is one page of the paginated listing.
type Page struct {
	Data  []Job `json:"data"`
	Links struct {
		Next string `json:"next"`
	} `json:"links"`
	Meta struct {
		CurrentPage int `json:"current_page"`
	} `json:"meta"`
}

// Error represents a job-board request failure.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("job board error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("job board error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// DefaultOptions returns production defaults.
func DefaultOptions() *Options {
	return &Options{
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Client fetches and filters job postings.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// NewClient creates a client; nil opts means DefaultOptions.
func NewClient(opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	return &Client{
		baseURL:   opts.BaseURL,
		userAgent: opts.UserAgent,
		http:      &http.Client{Timeout: opts.Timeout},
	}
}

// List fetches one page of postings. Pages start at 1.
func (c *Client) List(ctx context.Context, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	reqURL := fmt.Sprintf("%s?page=%d", c.baseURL, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &Error{URL: reqURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{URL: reqURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{URL: reqURL, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	var p Page
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, &Error{URL: reqURL, Message: "failed to decode response", Cause: err}
	}
	return &p, nil
}

// FetchPages fetches the first n pages concurrently and returns the
// postings in page order.
func (c *Client) FetchPages(ctx context.Context, n int) ([]Job, error) {
	if n < 1 {
		n = 1
	}

	pages := make([]*Page, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPages)

	for i := 0; i < n; i++ {
		g.Go(func() error {
			p, err := c.List(gctx, i+1)
			if err != nil {
				return err
			}
			pages[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var jobs []Job
	for _, p := range pages {
		jobs = append(jobs, p.Data...)
	}
	return jobs, nil
}

// Search fetches the first pages of postings and keeps those matching the
// query in title, company, location or tags. Matching is case-insensitive.
func (c *Client) Search(ctx context.Context, query string, pages int) ([]Job, error) {
	jobs, err := c.FetchPages(ctx, pages)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return jobs, nil
	}

	matched := make([]Job, 0, len(jobs))
	for _, job := range jobs {
		if jobMatches(job, query) {
			matched = append(matched, job)
		}
	}
	return matched, nil
}

func jobMatches(job Job, query string) bool {
	if strings.Contains(strings.ToLower(job.Title), query) ||
		strings.Contains(strings.ToLower(job.CompanyName), query) ||
		strings.Contains(strings.ToLower(job.Location), query) {
		return true
	}
	for _, tag := range job.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// DescriptionText strips the HTML markup the job board embeds in
// descriptions, returning readable plain text.
func DescriptionText(htmlDescription string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlDescription))
	if err != nil {
		return htmlDescription
	}

	var blocks []string
	doc.Find("p, li, h1, h2, h3, h4").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})
	if len(blocks) == 0 {
		return strings.TrimSpace(doc.Text())
	}
	return strings.Join(blocks, "\n")
}

// PostingURL returns the canonical URL for a job, deriving it from the slug
// when the feed omits one.
func PostingURL(job Job) string {
	if job.URL != "" {
		return job.URL
	}
	return "https://www.arbeitnow.com/view/" + url.PathEscape(job.Slug)
}
