package refs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// DefaultCrossrefURL is the public Crossref API endpoint.
const DefaultCrossrefURL = "https://api.crossref.org"

// doiRe matches a DOI anywhere inside a string, so pasted URLs like
// https://doi.org/10.1000/xyz resolve without cleanup.
var doiRe = regexp.MustCompile(`10\.\d{4,}/[^\s"'<>]+`)

// ExtractDOI pulls a DOI out of free text or a URL.
func ExtractDOI(s string) (string, bool) {
	m := doiRe.FindString(s)
	if m == "" {
		return "", false
	}
	return strings.TrimRight(m, ".,;)"), true
}

// Work is the bibliographic record for a reference.
type Work struct {
	Title    string   `json:"title"`
	Authors  []string `json:"authors"`
	Year     int      `json:"year"`
	Journal  string   `json:"journal,omitempty"`
	DOI      string   `json:"doi"`
	Abstract string   `json:"abstract,omitempty"`
}

// CrossrefClient looks up works by DOI.
type CrossrefClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewCrossrefClient returns a client against the public API with a
// request timeout.
func NewCrossrefClient() *CrossrefClient {
	return &CrossrefClient{
		BaseURL:    DefaultCrossrefURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type crossrefResponse struct {
	Message struct {
		Title          []string `json:"title"`
		ContainerTitle []string `json:"container-title"`
		DOI            string   `json:"DOI"`
		Abstract       string   `json:"abstract"`
		Author         []struct {
			Given  string `json:"given"`
			Family string `json:"family"`
		} `json:"author"`
		Issued struct {
			DateParts [][]int `json:"date-parts"`
		} `json:"issued"`
	} `json:"message"`
}

// Lookup fetches the work for a DOI.
func (c *CrossrefClient) Lookup(ctx context.Context, doi string) (*Work, error) {
	u := c.BaseURL + "/works/" + url.PathEscape(doi)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("crossref lookup %s: %w", doi, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("crossref lookup %s: DOI not found", doi)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("crossref lookup %s: unexpected status %s", doi, resp.Status)
	}

	var cr crossrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("crossref lookup %s: decode: %w", doi, err)
	}

	work := &Work{DOI: cr.Message.DOI, Abstract: stripJATS(cr.Message.Abstract)}
	if work.DOI == "" {
		work.DOI = doi
	}
	if len(cr.Message.Title) > 0 {
		work.Title = cr.Message.Title[0]
	}
	if len(cr.Message.ContainerTitle) > 0 {
		work.Journal = cr.Message.ContainerTitle[0]
	}
	for _, a := range cr.Message.Author {
		name := strings.TrimSpace(a.Given + " " + a.Family)
		if name != "" {
			work.Authors = append(work.Authors, name)
		}
	}
	if parts := cr.Message.Issued.DateParts; len(parts) > 0 && len(parts[0]) > 0 {
		work.Year = parts[0][0]
	}
	return work, nil
}

var jatsTagRe = regexp.MustCompile(`</?jats:[^>]*>`)

// stripJATS removes the JATS markup Crossref wraps abstracts in.
func stripJATS(s string) string {
	return strings.TrimSpace(jatsTagRe.ReplaceAllString(s, ""))
}
