package googletasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"todo/internal/config"
)

// TasksScope is the OAuth scope for Google Tasks.
const TasksScope = "https://www.googleapis.com/auth/tasks"

// tokenCheckTimeout bounds the refresh attempt in TokenValid.
const tokenCheckTimeout = 10 * time.Second

// OAuthConfig reads oauth_client.json from the config directory.
func OAuthConfig(cfg *config.Config) (*oauth2.Config, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}
	oauthConfig, err := google.ConfigFromJSON(clientJSON, TasksScope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}
	return oauthConfig, nil
}

// LoadToken reads a stored OAuth token.
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}
	return &token, nil
}

// SaveToken writes an OAuth token with mode 0600.
func SaveToken(path string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// TokenValid reports whether the stored token has a refresh token and
// can still be exchanged for an access token.
func TokenValid(ctx context.Context, cfg *config.Config) bool {
	token, err := LoadToken(cfg.TokenPath())
	if err != nil || token.RefreshToken == "" {
		return false
	}
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, tokenCheckTimeout)
	defer cancel()

	_, err = oauthConfig.TokenSource(ctx, token).Token()
	return err == nil
}
