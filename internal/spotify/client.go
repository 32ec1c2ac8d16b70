// Package spotify provides a rate-limited Spotify Web API client using the
// client-credentials flow, plus a fetcher that collects Chinook album records.
package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	defaultTokenURL = "https://accounts.spotify.com/api/token"
	defaultBaseURL  = "https://api.spotify.com/v1"

	// maxAttempts bounds retries for a single request.
	maxAttempts = 3

	// The API tolerates short bursts; we stay under 10 requests per
	// rolling second.
	burstLimit = 10
	rateWindow = time.Second

	// maxSearchLimit is the API's per-request cap on search results.
	maxSearchLimit = 50
)

// ErrNoToken is returned when the token endpoint responds without an
// access token.
var ErrNoToken = errors.New("no access token in response")

// Retry classification for a single request.
var (
	errRateLimited  = errors.New("rate limited")
	errUnauthorized = errors.New("unauthorized")
)

// Client is a Spotify Web API client with rate limiting and retries.
// It is not safe for concurrent use; the seeding pipeline is sequential.
type Client struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client
	tokenURL     string
	baseURL      string

	// Bearer token; refreshed in place when a request hits a 401, so
	// callers must not cache request headers across calls.
	token string

	// Rolling rate-limit state.
	requestCount int
	lastRequest  time.Time

	// Injectable for tests.
	now   func() time.Time
	sleep func(time.Duration)
}

// NewClient creates a Spotify client from API credentials.
// Call Authenticate before issuing requests.
func NewClient(clientID, clientSecret string) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		tokenURL:     defaultTokenURL,
		baseURL:      defaultBaseURL,
		now:          time.Now,
		sleep:        time.Sleep,
	}
}

// Authenticate obtains a bearer token via the client-credentials grant:
// base64-encoded id:secret in a Basic auth header to the token endpoint.
func (c *Client) Authenticate(ctx context.Context) error {
	cfg := clientcredentials.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		TokenURL:     c.tokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := cfg.Token(ctx)
	if err != nil {
		return fmt.Errorf("getting Spotify token: %w", err)
	}
	if token.AccessToken == "" {
		return ErrNoToken
	}

	c.token = token.AccessToken
	return nil
}

// SearchAlbumsByYear searches the US market for albums released in year.
// limit is capped at the API's 50-result maximum.
func (c *Client) SearchAlbumsByYear(ctx context.Context, year, limit int) ([]spotify.SimpleAlbum, error) {
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	params := url.Values{
		"q":      {fmt.Sprintf("year:%d", year)},
		"type":   {"album"},
		"limit":  {strconv.Itoa(limit)},
		"market": {"US"},
	}

	var result spotify.SearchResult
	if err := c.get(ctx, "/search", params, &result); err != nil {
		return nil, fmt.Errorf("searching albums for %d: %w", year, err)
	}
	if result.Albums == nil {
		return nil, nil
	}
	return result.Albums.Albums, nil
}

// Album fetches full album detail, including tracks and the release date.
func (c *Client) Album(ctx context.Context, id spotify.ID) (*spotify.FullAlbum, error) {
	var album spotify.FullAlbum
	if err := c.get(ctx, "/albums/"+string(id), nil, &album); err != nil {
		return nil, fmt.Errorf("fetching album %s: %w", id, err)
	}
	return &album, nil
}

// Artist fetches full artist detail, including genre tags.
func (c *Client) Artist(ctx context.Context, id spotify.ID) (*spotify.FullArtist, error) {
	var artist spotify.FullArtist
	if err := c.get(ctx, "/artists/"+string(id), nil, &artist); err != nil {
		return nil, fmt.Errorf("fetching artist %s: %w", id, err)
	}
	return &artist, nil
}

// get issues a rate-limited GET against the API and decodes the JSON
// response into v. Failed requests are retried up to maxAttempts times:
// a 429 honors the Retry-After header, a 401 refreshes the token, and
// anything else backs off exponentially.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, v any) error {
	reqURL := c.baseURL + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		c.rateLimit()

		body, retryAfter, err := c.doRequest(ctx, reqURL)
		switch {
		case err == nil:
			if v == nil {
				return nil
			}
			if err := json.Unmarshal(body, v); err != nil {
				return fmt.Errorf("parsing %s response: %w", endpoint, err)
			}
			return nil

		case errors.Is(err, errRateLimited):
			c.sleep(retryAfter)

		case errors.Is(err, errUnauthorized):
			if authErr := c.Authenticate(ctx); authErr != nil {
				return fmt.Errorf("refreshing token for %s: %w", endpoint, authErr)
			}

		default:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if attempt < maxAttempts {
				c.sleep(time.Duration(1<<attempt) * time.Second)
			}
		}
	}

	return fmt.Errorf("request to %s failed after %d attempts", endpoint, maxAttempts)
}

// doRequest performs a single authenticated GET. A 429 or 401 is reported
// through the corresponding retry sentinel; the Retry-After duration
// accompanies errRateLimited.
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("reading response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, parseRetryAfter(resp.Header.Get("Retry-After")), errRateLimited
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, 0, errUnauthorized
	case resp.StatusCode != http.StatusOK:
		return nil, 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return body, 0, nil
}

// rateLimit enforces the rolling request budget: more than burstLimit
// requests inside the trailing window sleeps out the window's remainder.
// A full window of quiet resets the counter.
func (c *Client) rateLimit() {
	c.requestCount++

	sinceLast := c.now().Sub(c.lastRequest)
	if c.requestCount > burstLimit && sinceLast < rateWindow {
		c.sleep(rateWindow - sinceLast)
		c.requestCount = 0
	}
	if sinceLast >= rateWindow {
		c.requestCount = 0
	}

	c.lastRequest = c.now()
}

// parseRetryAfter reads a Retry-After header value in seconds.
// Absent or malformed values default to one second.
func parseRetryAfter(value string) time.Duration {
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return time.Second
	}
	return time.Duration(seconds) * time.Second
}
