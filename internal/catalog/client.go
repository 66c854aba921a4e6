package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client fetches the game catalog from the upstream third-party API. It holds
// no state beyond the HTTP client. Every call is a single bounded-timeout
// attempt; retry policy, if any, belongs to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog client for the given API base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchAllGames retrieves the full game list from upstream.
func (c *Client) FetchAllGames(ctx context.Context) ([]Game, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/games", nil)
	if err != nil {
		return nil, fmt.Errorf("fetch games: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch games: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch games: unexpected status %d", resp.StatusCode)
	}

	var games []Game
	if err := json.NewDecoder(resp.Body).Decode(&games); err != nil {
		return nil, fmt.Errorf("fetch games: decode response: %w", err)
	}
	return games, nil
}

// FetchGameByID retrieves a single game. A (nil, nil) return means the game
// does not exist upstream; that is an absence, not a failure.
func (c *Client) FetchGameByID(ctx context.Context, id int) (*Game, error) {
	url := fmt.Sprintf("%s/game?id=%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch game %d: %w", id, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch game %d: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch game %d: unexpected status %d", id, resp.StatusCode)
	}

	var game Game
	if err := json.NewDecoder(resp.Body).Decode(&game); err != nil {
		return nil, fmt.Errorf("fetch game %d: decode response: %w", id, err)
	}
	return &game, nil
}
