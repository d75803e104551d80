package clients

import (
	"context"
	"log/slog"
	"net/url"
)

// UserClient talks to the user service for profile lookups.
type UserClient struct {
	core *httpCore
}

// NewUserClient creates a user service client.
func NewUserClient(logger *slog.Logger, baseURL string) *UserClient {
	return &UserClient{
		core: newHTTPCore("user", baseURL, BusinessPolicy, logger),
	}
}

// UserProfile is the user service view of a registered user.
type UserProfile struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	KYCLevel    string `json:"kyc_level,omitempty"`
}

// GetProfile retrieves a user profile by id.
func (c *UserClient) GetProfile(ctx context.Context, userID string) (*UserProfile, error) {
	var result UserProfile

	err := c.core.getJSON(ctx, "GetProfile", "/api/v1/users/"+url.PathEscape(userID)+"/profile", &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}
