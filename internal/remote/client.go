// Package remote talks to the quote collection service: it fetches the
// latest post for the sync engine and publishes newly added quotes.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mrlokans/quotebook/internal/entities"
)

const (
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 512

	// publishUserID is the fixed author id the collection service expects.
	publishUserID = 1
)

// Client interfaces with the remote posts API
type Client struct {
	httpClient *http.Client
	syncURL    string
	publishURL string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient creates a client that fetches from syncURL and publishes to publishURL.
func NewClient(syncURL, publishURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		syncURL:    syncURL,
		publishURL: publishURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Post represents a post of the remote collection
type Post struct {
	ID     int    `json:"id,omitempty"`
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// FetchLatest retrieves the remote post and maps its title to a quote in the
// Server category.
func (c *Client) FetchLatest(ctx context.Context) (entities.Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.syncURL, nil)
	if err != nil {
		return entities.Quote{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return entities.Quote{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return entities.Quote{}, err
	}

	var post Post
	if err := json.NewDecoder(resp.Body).Decode(&post); err != nil {
		return entities.Quote{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if strings.TrimSpace(post.Title) == "" {
		return entities.Quote{}, ErrMissingTitle
	}

	return entities.Quote{Text: post.Title, Category: entities.CategoryServer}, nil
}

// PublishQuote posts q to the collection. The text becomes the title and the
// category the body. Returns the post as echoed by the server.
func (c *Client) PublishQuote(ctx context.Context, q entities.Quote) (*Post, error) {
	payload, err := json.Marshal(Post{
		Title:  q.Text,
		Body:   q.Category,
		UserID: publishUserID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode quote: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.publishURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var created Post
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &created, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}
