// package client is a typed HTTP client for the recommendation API, used by the CLI and TUI
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/desertthunder/singme/internal/models"
	"github.com/desertthunder/singme/internal/services"
	"github.com/desertthunder/singme/internal/shared"
	"github.com/goccy/go-json"
)

const defaultBaseURL = "http://127.0.0.1:5000"

// Client provides typed access to a running server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for baseURL.
func New(baseURL string, client *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// BaseURL returns the server root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Response represents a raw API response with status and body.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// VoteResult is the body returned by the vote endpoints.
type VoteResult struct {
	models.Recommendation
	Removed bool `json:"removed"`
}

// StatusError is returned for non-2xx responses that are not a domain error.
type StatusError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", shared.ErrAPIRequest, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", shared.ErrAPIRequest, e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error { return shared.ErrAPIRequest }

// Do performs a request to path with an optional JSON body and returns the raw response.
func (c *Client) Do(ctx context.Context, method, path string, body []byte) (*Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Headers: resp.Header, Body: data}, nil
}

// call performs the request, maps error statuses and decodes a 2xx body into result when non-nil.
func (c *Client) call(ctx context.Context, method, path string, payload, result any) error {
	var body []byte
	if payload != nil {
		var err error
		if body, err = json.Marshal(payload); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	resp, err := c.Do(ctx, method, path, body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if result != nil && len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func decodeError(resp *Response) error {
	var body struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(resp.Body, &body)

	// Only typed error bodies map to domain errors; a bare 404 is an unknown route.
	switch {
	case resp.StatusCode == http.StatusConflict && body.Type == string(services.TypeConflict):
		return services.ConflictError(body.Message, shared.ErrAPIRequest)
	case resp.StatusCode == http.StatusNotFound && body.Type == string(services.TypeNotFound):
		return services.NotFoundError(body.Message, shared.ErrAPIRequest)
	}
	return &StatusError{StatusCode: resp.StatusCode, Type: body.Type, Message: body.Message}
}

// Create adds a recommendation.
func (c *Client) Create(ctx context.Context, name, link string) (*models.Recommendation, error) {
	var rec models.Recommendation
	payload := map[string]string{"name": name, "youtubeLink": link}
	if err := c.call(ctx, http.MethodPost, "/recommendations", payload, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Recent returns the newest recommendations.
func (c *Client) Recent(ctx context.Context) ([]*models.Recommendation, error) {
	var recs []*models.Recommendation
	if err := c.call(ctx, http.MethodGet, "/recommendations", nil, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// Top returns up to amount recommendations by score.
func (c *Client) Top(ctx context.Context, amount int) ([]*models.Recommendation, error) {
	var recs []*models.Recommendation
	if err := c.call(ctx, http.MethodGet, "/recommendations/top/"+strconv.Itoa(amount), nil, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// Random returns a weighted random recommendation.
func (c *Client) Random(ctx context.Context) (*models.Recommendation, error) {
	var rec models.Recommendation
	if err := c.call(ctx, http.MethodGet, "/recommendations/random", nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Get returns the recommendation with id.
func (c *Client) Get(ctx context.Context, id int64) (*models.Recommendation, error) {
	var rec models.Recommendation
	if err := c.call(ctx, http.MethodGet, "/recommendations/"+strconv.FormatInt(id, 10), nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Upvote adds one to the score of id.
func (c *Client) Upvote(ctx context.Context, id int64) (*VoteResult, error) {
	return c.vote(ctx, id, "upvote")
}

// Downvote subtracts one from the score of id.
func (c *Client) Downvote(ctx context.Context, id int64) (*VoteResult, error) {
	return c.vote(ctx, id, "downvote")
}

func (c *Client) vote(ctx context.Context, id int64, direction string) (*VoteResult, error) {
	var result VoteResult
	path := "/recommendations/" + strconv.FormatInt(id, 10) + "/" + direction
	if err := c.call(ctx, http.MethodPost, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Reset removes every recommendation. Only available when the server is not in production mode.
func (c *Client) Reset(ctx context.Context) error {
	return c.call(ctx, http.MethodPost, "/recommendations/reset", nil, nil)
}

// CreateScenario seeds amount recommendations. A nil score lets the server choose its default.
func (c *Client) CreateScenario(ctx context.Context, amount int, score *int) ([]*models.Recommendation, error) {
	path := "/scenarios/" + strconv.Itoa(amount)
	if score != nil {
		path += "?" + url.Values{"score": {strconv.Itoa(*score)}}.Encode()
	}

	var recs []*models.Recommendation
	if err := c.call(ctx, http.MethodPost, path, nil, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// Health checks that the server is reachable.
func (c *Client) Health(ctx context.Context) error {
	var body map[string]string
	if err := c.call(ctx, http.MethodGet, "/health", nil, &body); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrServiceUnavailable, err)
	}
	return nil
}
