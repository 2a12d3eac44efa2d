package arcapi

//go:generate mockgen -package=mocks -destination=mocks/mock_client.go github.com/nairobininja/fina/internal/arcapi Client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ErrBadResponse is returned when the score API is unreachable or returns
// an unexpected shape
var ErrBadResponse = errors.New("unexpected score API response")

// RecentPlay is a user's most recent play record
type RecentPlay struct {
	SongKey    string `json:"song_id"`
	Tier       int    `json:"difficulty"`
	Score      int    `json:"score"`
	ShinyPures int    `json:"shiny_pure_count"`
}

// BestPlay is one entry of a user's best-plays list
type BestPlay struct {
	SongKey        string `json:"song_id"`
	Tier           int    `json:"difficulty"`
	Score          int    `json:"score"`
	ShinyPures     int    `json:"shiny_pure_count"`
	PotentialValue int    `json:"potential_value"`
}

// Client queries the external score API
type Client interface {
	// GetRecentPlay fetches a user's most recent play record
	GetRecentPlay(ctx context.Context, accountID string) (*RecentPlay, error)

	// GetBestPlays fetches a user's best-plays list
	GetBestPlays(ctx context.Context, accountID string) ([]BestPlay, error)
}

// Config holds configuration for the HTTP score API client
type Config struct {
	// BaseURL of the API, without a trailing slash
	BaseURL string

	// Token is the API authorization token
	Token string

	// Optional HTTP client; a 10s-timeout client is used when nil
	HTTPClient *http.Client

	// MinInterval is the politeness interval between requests
	MinInterval time.Duration
}

// HTTPClient implements Client against the live API
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client

	// Simple rate limiter
	mu          sync.Mutex
	lastRequest time.Time
	minInterval time.Duration
}

// New creates a new score API client
func New(cfg *Config) (*HTTPClient, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.BaseURL == "" {
		return nil, errors.New("base URL cannot be empty")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	minInterval := cfg.MinInterval
	if minInterval == 0 {
		minInterval = 50 * time.Millisecond
	}

	return &HTTPClient{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		token:       cfg.Token,
		httpClient:  httpClient,
		minInterval: minInterval,
	}, nil
}

// GetRecentPlay fetches a user's most recent play record
func (c *HTTPClient) GetRecentPlay(ctx context.Context, accountID string) (*RecentPlay, error) {
	var body struct {
		Data struct {
			LastPlayedSong *RecentPlay `json:"last_played_song"`
		} `json:"data"`
	}

	url := fmt.Sprintf("%s/api/v0/user/%s", c.baseURL, padAccountID(accountID))
	if err := c.get(ctx, url, &body); err != nil {
		return nil, err
	}

	if body.Data.LastPlayedSong == nil {
		return nil, fmt.Errorf("%w: no last played song for account %s", ErrBadResponse, accountID)
	}

	return body.Data.LastPlayedSong, nil
}

// GetBestPlays fetches a user's best-plays list
func (c *HTTPClient) GetBestPlays(ctx context.Context, accountID string) ([]BestPlay, error) {
	var body struct {
		Data []BestPlay `json:"data"`
	}

	url := fmt.Sprintf("%s/api/v0/user/%s/best", c.baseURL, padAccountID(accountID))
	if err := c.get(ctx, url, &body); err != nil {
		return nil, err
	}

	if body.Data == nil {
		return nil, fmt.Errorf("%w: no best plays for account %s", ErrBadResponse, accountID)
	}

	return body.Data, nil
}

// get performs a GET request and decodes the JSON response
func (c *HTTPClient) get(ctx context.Context, url string, result interface{}) error {
	// Simple rate limiting
	c.mu.Lock()
	elapsed := time.Since(c.lastRequest)
	if elapsed < c.minInterval {
		time.Sleep(c.minInterval - elapsed)
	}
	c.lastRequest = time.Now()
	c.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrBadResponse, resp.StatusCode, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	return nil
}

// padAccountID zero-pads an account code to the 9 digits the API expects.
func padAccountID(accountID string) string {
	if len(accountID) >= 9 {
		return accountID
	}
	return strings.Repeat("0", 9-len(accountID)) + accountID
}
