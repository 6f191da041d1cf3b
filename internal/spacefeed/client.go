// Package spacefeed fetches the roster of people currently in space from
// the Open Notify astros endpoint.
package spacefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/crewwatch-io/crewwatch/internal/crew"
)

// DefaultBaseURL is the public Open Notify API root.
const DefaultBaseURL = "http://api.open-notify.org"

const defaultTimeout = 15 * time.Second

// Client calls the astros endpoint. It implements crew.Source.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// NewClient builds a feed client for baseURL. An empty baseURL selects the
// public Open Notify API.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// astrosResponse mirrors the astros.json body.
type astrosResponse struct {
	Message string `json:"message"`
	Number  int    `json:"number"`
	People  []struct {
		Name  string `json:"name"`
		Craft string `json:"craft"`
	} `json:"people"`
}

// Astronauts fetches the current roster. The returned slice preserves the
// feed's order.
func (c *Client) Astronauts(ctx context.Context) ([]crew.Member, error) {
	url := c.baseURL + "/astros.json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build astros request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch astros: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch astros: unexpected status %s", resp.Status)
	}

	var body astrosResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode astros response: %w", err)
	}
	if body.Message != "" && body.Message != "success" {
		return nil, fmt.Errorf("astros feed reported %q", body.Message)
	}

	members := make([]crew.Member, 0, len(body.People))
	for _, p := range body.People {
		members = append(members, crew.Member{Name: p.Name, Craft: p.Craft})
	}
	return members, nil
}
