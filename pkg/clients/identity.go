package clients

import (
	"context"
	"log/slog"
)

// Identity verification levels.
const (
	IdentityLevelBasic    = "basic"
	IdentityLevelEnhanced = "enhanced"
)

// IdentityClient talks to the identity verification service. KYC checks may
// legitimately take tens of seconds, so this client carries the long-timeout
// policy.
type IdentityClient struct {
	core *httpCore
}

// NewIdentityClient creates an identity service client.
func NewIdentityClient(logger *slog.Logger, baseURL string) *IdentityClient {
	return &IdentityClient{
		core: newHTTPCore("identity", baseURL, IdentityPolicy, logger),
	}
}

type identityVerifyRequest struct {
	UserID string `json:"user_id"`
	Level  string `json:"level"`
}

// IdentityVerification is the identity service verdict for a user.
type IdentityVerification struct {
	UserID    string `json:"user_id"`
	Level     string `json:"level"`
	Verified  bool   `json:"verified"`
	Reference string `json:"reference,omitempty"`
}

// Verify runs a KYC check for the user at the given level.
func (c *IdentityClient) Verify(ctx context.Context, userID, level string) (*IdentityVerification, error) {
	var result IdentityVerification

	err := c.core.postJSON(ctx, "Verify", "/api/v1/identity/verify",
		identityVerifyRequest{UserID: userID, Level: level}, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}
