package infra_poster

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/humanbelnik/cinetally/internal/config"
	"github.com/humanbelnik/cinetally/internal/model"
)

// Client looks posters up in an OMDb-compatible title API. The API is treated
// as unreliable: a miss or a timeout yields an empty link, and callers are
// expected to carry on without one.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func New(cfg config.Poster, opts ...Option) *Client {
	c := &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type lookupResponse struct {
	Response string `json:"Response"`
	Poster   string `json:"Poster"`
}

// PosterLink resolves a poster URL for a title. An unknown title is not an
// error: the link comes back empty.
func (c *Client) PosterLink(ctx context.Context, title string, kind model.Kind) (string, error) {
	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("t", title)
	q.Set("type", string(kind))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build lookup request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("poster lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("poster API returned status: %d", resp.StatusCode)
	}

	var parsed lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode lookup response: %w", err)
	}

	if parsed.Response != "True" || parsed.Poster == "" || parsed.Poster == "N/A" {
		return "", nil
	}

	return parsed.Poster, nil
}
