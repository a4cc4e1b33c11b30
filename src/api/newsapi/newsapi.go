package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// NoResults is served when the provider answers with nothing usable.
	NoResults = "No detailed articles found for this query"
	// Unavailable replaces results when the provider cannot be reached.
	Unavailable = "Temporary data source unavailable - using demo mode"

	maxSnippets = 3
	pageSize    = 5
)

// DemoArticles is served when no API key is configured.
var DemoArticles = []string{
	"Breaking news: Sample article about the query",
	"Latest updates on the topic from various sources",
	"Verified information from trusted news outlets",
}

// Client queries the NewsAPI "everything" endpoint.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://newsapi.org/v2/everything"
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		// free-tier friendly: one request per second, small burst
		limiter: rate.NewLimiter(rate.Every(time.Second), 5),
	}
}

type searchResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"articles"`
}

// FetchSnippets returns short "title description" snippets for query.
// Provider failures are absorbed here: the caller always gets usable text,
// never an error.
func (c *Client) FetchSnippets(ctx context.Context, query string) []string {
	if c.apiKey == "" {
		return append([]string(nil), DemoArticles...)
	}
	snippets, err := c.search(ctx, query)
	if err != nil {
		log.Printf("newsapi: %v", err)
		return []string{Unavailable}
	}
	if len(snippets) == 0 {
		return []string{NoResults}
	}
	return snippets
}

func (c *Client) search(ctx context.Context, query string) ([]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s?q=%s&apiKey=%s&language=en&pageSize=%d",
		c.baseURL, url.QueryEscape(query), c.apiKey, pageSize)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	// Only the first few hits are worth scoring; entries without a title
	// carry no text to match against.
	var snippets []string
	for i, a := range body.Articles {
		if i == maxSnippets {
			break
		}
		if a.Title == "" {
			continue
		}
		snippets = append(snippets, strings.TrimSpace(a.Title+" "+a.Description))
	}
	return snippets, nil
}
