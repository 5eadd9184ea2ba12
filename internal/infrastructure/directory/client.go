package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"captn.backend/internal/domain/entities"
	"captn.backend/pkg/logger"
)

// A slow directory must never hold up a whole page render.
const defaultTimeout = 5 * time.Second

// Profile is a public profile as served by the directory.
type Profile struct {
	RealName     string `json:"real_name"`
	ProfileImage string `json:"profile_image"`
	HTML         string `json:"html"`
}

// Client looks up public profiles in the external directory, keyed by the
// MD5 hex digest of an email address.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a client for the directory at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Lookup fetches the profile for email. Callers that render pages should go
// through a Resolver instead, which degrades failures to an empty profile.
func (c *Client) Lookup(ctx context.Context, email string) (Profile, error) {
	url := fmt.Sprintf("%s/profiles/%s.json", c.BaseURL, entities.EmailHash(email))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Profile{}, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Profile{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Profile{}, fmt.Errorf("directory: lookup failed status=%d", resp.StatusCode)
	}

	var p Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Resolver memoizes lookups for the duration of a single render so the same
// email is fetched at most once. It is scoped to one request and must not be
// shared across requests.
type Resolver struct {
	client *Client
	seen   map[string]Profile
}

// NewResolver returns a fresh per-render resolver.
func (c *Client) NewResolver() *Resolver {
	return &Resolver{client: c, seen: make(map[string]Profile)}
}

// Resolve returns the profile for email, or the zero Profile when the lookup
// fails for any reason. Failures are cached too, so a dead directory costs
// one round trip per distinct email per render.
func (r *Resolver) Resolve(ctx context.Context, email string) Profile {
	hash := entities.EmailHash(email)
	if p, ok := r.seen[hash]; ok {
		return p
	}

	p, err := r.client.Lookup(ctx, email)
	if err != nil {
		logger.Warn(ctx, "directory lookup failed", zap.String("hash", hash), zap.Error(err))
		p = Profile{}
	}
	r.seen[hash] = p
	return p
}
