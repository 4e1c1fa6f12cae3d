// Package directory queries the external user directory for profile data
// keyed by e-mail address. The directory is best-effort only: callers
// treat every failure as "no profile available".
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/smesner/contactsweb/internal/pkg/httpretry"
	"github.com/smesner/contactsweb/internal/pkg/logger"
)

const (
	// DefaultBaseURL points at the public JSONPlaceholder-compatible API.
	DefaultBaseURL = "https://jsonplaceholder.typicode.com"

	// DefaultTimeout bounds one lookup end to end. The pipeline must not
	// stall acceptance on a slow directory, so this stays independent of
	// the caller's deadline.
	DefaultTimeout = 10 * time.Second
)

// Client is the directory service API client.
type Client struct {
	baseURL    string
	httpClient httpretry.HTTPDoer
}

// NewClient creates a directory client. baseURL falls back to
// DefaultBaseURL; timeout falls back to DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		httpClient: httpretry.NewRetryClient(&http.Client{
			Timeout: timeout,
		}, 2),
	}
}

// FindByEmail returns the first directory profile whose e-mail matches
// exactly, or (nil, nil) when no profile matches. Transport and decoding
// failures are returned as errors; the caller decides whether they matter.
func (c *Client) FindByEmail(ctx context.Context, email string) (*Profile, error) {
	u := fmt.Sprintf("%s/users?email=%s", c.baseURL, url.QueryEscape(email))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build directory request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory returned status %d", resp.StatusCode)
	}

	var profiles []Profile
	if err := json.NewDecoder(resp.Body).Decode(&profiles); err != nil {
		return nil, fmt.Errorf("decode directory response: %w", err)
	}

	if len(profiles) == 0 {
		logger.Debug("no directory profile found", "email", email)
		return nil, nil
	}

	logger.Debug("directory profile found", "email", email, "profile_name", profiles[0].Name)
	return &profiles[0], nil
}
