// Package github provides a minimal client for the GitHub users API.
package github

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL   = "https://api.github.com"
	defaultUserAgent = "linkedin-lookup"
)

// ErrRateLimited is returned by SearchUsers when the client-side search
// budget is spent. No request is sent.
var ErrRateLimited = eris.New("github: search rate limit reached")

// Client defines the GitHub operations used for identity discovery.
type Client interface {
	// SearchUsers runs a user search; query uses GitHub search syntax.
	SearchUsers(ctx context.Context, query string) (*SearchUsersResponse, error)
	// GetUser fetches the public profile of a user by login.
	GetUser(ctx context.Context, login string) (*User, error)
}

// SearchUsersResponse is the /search/users response.
type SearchUsersResponse struct {
	TotalCount int          `json:"total_count"`
	Items      []UserResult `json:"items"`
}

// UserResult is a single user search hit.
type UserResult struct {
	Login   string `json:"login"`
	HTMLURL string `json:"html_url"`
}

// User is the public profile returned by /users/{login}.
type User struct {
	Login    string `json:"login"`
	Name     string `json:"name"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Bio      string `json:"bio"`
	Blog     string `json:"blog"`
	HTMLURL  string `json:"html_url"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithToken authenticates requests, which raises GitHub's rate limits.
func WithToken(token string) Option {
	return func(c *httpClient) {
		c.token = token
	}
}

// WithRequestsPerMinute caps user searches client-side. Searches over the
// cap fail fast with ErrRateLimited. Profile fetches are not throttled.
// Zero or negative disables the cap.
func WithRequestsPerMinute(n int) Option {
	return func(c *httpClient) {
		if n <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), n)
	}
}

type httpClient struct {
	baseURL string
	token   string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a GitHub API client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) SearchUsers(ctx context.Context, query string) (*SearchUsersResponse, error) {
	if c.limiter != nil && !c.limiter.Allow() {
		return nil, ErrRateLimited
	}

	reqURL := c.baseURL + "/search/users?" + url.Values{"q": {query}}.Encode()

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, eris.Wrap(err, "github: search users")
	}

	var result SearchUsersResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "github: unmarshal search response")
	}
	return &result, nil
}

func (c *httpClient) GetUser(ctx context.Context, login string) (*User, error) {
	reqURL := c.baseURL + "/users/" + url.PathEscape(login)

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, eris.Wrapf(err, "github: get user %s", login)
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, eris.Wrap(err, "github: unmarshal user")
	}
	return &user, nil
}

func (c *httpClient) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "create request")
	}

	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", defaultUserAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("unexpected status %d", resp.StatusCode)
	}

	return body, nil
}
