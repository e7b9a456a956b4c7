// Package gravatar provides a client for Gravatar public profiles.
package gravatar

import (
	"context"
	"crypto/md5" //nolint:gosec // Gravatar addresses profiles by MD5 hash.
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://en.gravatar.com"

// ErrNotFound is returned when no profile exists for the email hash.
var ErrNotFound = eris.New("gravatar: profile not found")

// Client defines the Gravatar operations used for identity discovery.
type Client interface {
	// Profile fetches the public profile for an email address.
	Profile(ctx context.Context, email string) (*Entry, error)
}

// ProfileResponse is the top-level JSON profile document.
type ProfileResponse struct {
	Entry []Entry `json:"entry"`
}

// Entry is a single Gravatar profile.
type Entry struct {
	Hash            string    `json:"hash"`
	DisplayName     string    `json:"displayName"`
	Name            Name      `json:"name"`
	AboutMe         string    `json:"aboutMe"`
	CurrentLocation string    `json:"currentLocation"`
	Accounts        []Account `json:"accounts"`
	URLs            []URL     `json:"urls"`
}

// Name holds the structured name of a profile.
type Name struct {
	Formatted string `json:"formatted"`
}

// Account is a verified external account.
type Account struct {
	Shortname string `json:"shortname"`
	URL       string `json:"url"`
}

// URL is a free-form link on the profile.
type URL struct {
	Value string `json:"value"`
	Title string `json:"title"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default base URL.
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

type httpClient struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Gravatar client. No credentials are needed.
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

// Hash returns the Gravatar hash of an email: MD5 of the trimmed,
// lower-cased address, hex encoded.
func Hash(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email)))) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

func (c *httpClient) Profile(ctx context.Context, email string) (*Entry, error) {
	reqURL := c.baseURL + "/" + Hash(email) + ".json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "gravatar: create request")
	}
	req.Header.Set("User-Agent", "linkedin-lookup")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "gravatar: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "gravatar: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("gravatar: unexpected status %d", resp.StatusCode)
	}

	var result ProfileResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "gravatar: unmarshal response")
	}

	if len(result.Entry) == 0 {
		return nil, ErrNotFound
	}
	return &result.Entry[0], nil
}
