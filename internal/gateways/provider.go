package gateways

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/drivemate/kyc-platform/internal/core/domain"
	"github.com/drivemate/kyc-platform/internal/core/ports"
	"github.com/drivemate/kyc-platform/pkg/http"
)

// ProviderBackendClient talks to the backend identity endpoints. The backend
// holds the provider credentials and performs the real provider round trips.
type ProviderBackendClient struct {
	conn    *http.Client
	baseURL string
}

// NewProviderBackendClient creates a backend identity endpoints client
func NewProviderBackendClient(conn *http.Client, baseURL string) ports.ProviderBackend {
	return &ProviderBackendClient{
		conn:    conn,
		baseURL: baseURL,
	}
}

type initiateAuthRequest struct {
	UserID      string `json:"userId"`
	CallbackURL string `json:"callbackUrl"`
}

type initiateAuthResponse struct {
	AuthorizationURL string `json:"authorizationUrl"`
}

type exchangeTokenRequest struct {
	Code  string `json:"code"`
	State string `json:"state"`
}

type legacyMatchRequest struct {
	SessionID string `json:"sessionId"`
}

type identityAttributesResponse struct {
	FullName         string `json:"fullName"`
	DateOfBirth      string `json:"dateOfBirth"`
	LicenseNumber    string `json:"licenseNumber,omitempty"`
	PANNumber        string `json:"panNumber,omitempty"`
	NationalIDNumber string `json:"nationalIdNumber,omitempty"`
}

// InitiateAuth asks the backend for a provider authorization URL
func (c *ProviderBackendClient) InitiateAuth(ctx context.Context, userID, callbackURL string) (string, error) {
	reqBody, err := json.Marshal(initiateAuthRequest{UserID: userID, CallbackURL: callbackURL})
	if err != nil {
		return "", errors.WithStack(err)
	}

	resp, err := c.conn.Post(ctx, c.baseURL+"/identity/auth/initiate", reqBody)
	if err != nil {
		return "", errors.WithStack(err)
	}

	var out initiateAuthResponse
	if err := json.Unmarshal(resp, &out); err != nil {
		return "", errors.WithStack(err)
	}
	if out.AuthorizationURL == "" {
		return "", errors.New("backend returned an empty authorization url")
	}
	return out.AuthorizationURL, nil
}

// ExchangeToken performs the backend mediated code exchange
func (c *ProviderBackendClient) ExchangeToken(ctx context.Context, code, state string) (*domain.ProviderIdentityAttributes, error) {
	reqBody, err := json.Marshal(exchangeTokenRequest{Code: code, State: state})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	resp, err := c.conn.Post(ctx, c.baseURL+"/identity/auth/exchange", reqBody)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return parseAttributes(resp)
}

// LegacyMatch resolves identity attributes by provider session id. Kept for
// backward compatibility with the previous integration generation.
func (c *ProviderBackendClient) LegacyMatch(ctx context.Context, sessionID string) (*domain.ProviderIdentityAttributes, error) {
	reqBody, err := json.Marshal(legacyMatchRequest{SessionID: sessionID})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	resp, err := c.conn.Post(ctx, c.baseURL+"/identity/legacy/match", reqBody)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return parseAttributes(resp)
}

func parseAttributes(raw []byte) (*domain.ProviderIdentityAttributes, error) {
	var out identityAttributesResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errors.WithStack(err)
	}
	return &domain.ProviderIdentityAttributes{
		FullName:         out.FullName,
		DateOfBirth:      out.DateOfBirth,
		LicenseNumber:    out.LicenseNumber,
		PANNumber:        out.PANNumber,
		NationalIDNumber: out.NationalIDNumber,
	}, nil
}
