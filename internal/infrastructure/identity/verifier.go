package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

// Verifier checks identity assertions against the external verification
// service and returns the verified email address. The application never
// inspects assertions itself.
type Verifier struct {
	URL        string
	Audience   string
	HTTPClient *http.Client
}

// NewVerifier returns a verifier posting assertions to url on behalf of
// audience.
func NewVerifier(url, audience string) *Verifier {
	return &Verifier{
		URL:        url,
		Audience:   audience,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

type verifyResponse struct {
	Status string `json:"status"`
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// Verify submits an assertion and returns the asserted email when the
// verifier accepts it.
func (v *Verifier) Verify(ctx context.Context, assertion string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"assertion": assertion,
		"audience":  v.Audience,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.URL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("identity: verifier returned status=%d", resp.StatusCode)
	}

	var vr verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return "", err
	}
	if vr.Status != "okay" || vr.Email == "" {
		return "", fmt.Errorf("identity: assertion rejected: %s", vr.Reason)
	}
	return vr.Email, nil
}
