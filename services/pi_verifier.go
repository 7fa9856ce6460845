package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pilinks/models"
)

// PiIdentity is the Pi platform's answer to a /v2/me call.
type PiIdentity struct {
	UID      string `json:"uid"`
	Username string `json:"username"`
}

// PiVerifier checks a Pi access token with the identity provider.
type PiVerifier interface {
	Verify(ctx context.Context, accessToken string) (*PiIdentity, error)
}

type piVerifier struct {
	baseURL string
	client  *http.Client
}

func NewPiVerifier(baseURL string) PiVerifier {
	return &piVerifier{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *piVerifier) Verify(ctx context.Context, accessToken string) (*PiIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/v2/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pi platform unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, models.ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pi platform returned status %d", resp.StatusCode)
	}

	var identity PiIdentity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("decode pi identity: %w", err)
	}
	if identity.UID == "" {
		return nil, fmt.Errorf("pi identity missing uid")
	}
	return &identity, nil
}

// sandboxVerifier stands in for the Pi platform when no API endpoint is
// configured. It accepts any token and answers with a fixed demo identity.
type sandboxVerifier struct{}

func NewSandboxVerifier() PiVerifier {
	return sandboxVerifier{}
}

func (sandboxVerifier) Verify(ctx context.Context, accessToken string) (*PiIdentity, error) {
	return &PiIdentity{UID: "uid_admin_777", Username: "Pioneer_Admin"}, nil
}
