// Package googleauth builds authenticated Google API clients from either a
// service account key or OAuth2 refresh-token credentials. The Sheets and
// Docs sinks share it so both speak to Google with the same identity.
package googleauth

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/sawara-dev/ryohi/internal/common"
)

// Credentials holds one of the two supported authentication methods.
type Credentials struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
}

// LoadFromEnv fills the credentials from the standard environment variables.
func (c *Credentials) LoadFromEnv() {
	c.ClientID = os.Getenv("GOOGLE_CLIENT_ID")
	c.ClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	c.RefreshToken = os.Getenv("GOOGLE_REFRESH_TOKEN")
	c.ServiceAccountPath = os.Getenv("GOOGLE_SERVICE_ACCOUNT_PATH")
}

// Validate checks that exactly one authentication method is configured.
func (c Credentials) Validate() error {
	hasOAuth := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	hasServiceAccount := c.ServiceAccountPath != ""

	if !hasOAuth && !hasServiceAccount {
		return fmt.Errorf("%w: no authentication method configured", common.ErrMissingConfig)
	}
	if hasOAuth && hasServiceAccount {
		return fmt.Errorf("%w: multiple authentication methods configured; use either OAuth2 or service account", common.ErrInvalidConfig)
	}
	return nil
}

// TokenSource builds an oauth2 token source for the given API scopes.
func (c Credentials) TokenSource(ctx context.Context, scopes ...string) (oauth2.TokenSource, error) {
	if c.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(c.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, scopes...)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		return jwtConfig.TokenSource(ctx), nil
	}

	oauthConfig := &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       scopes,
	}

	token := &oauth2.Token{
		RefreshToken: c.RefreshToken,
		TokenType:    "Bearer",
	}

	return oauthConfig.TokenSource(ctx, token), nil
}

// Client builds an authenticated HTTP client for the given API scopes.
func (c Credentials) Client(ctx context.Context, scopes ...string) (*http.Client, error) {
	ts, err := c.TokenSource(ctx, scopes...)
	if err != nil {
		return nil, err
	}
	return oauth2.NewClient(ctx, ts), nil
}
