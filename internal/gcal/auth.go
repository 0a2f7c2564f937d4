// Package gcal pushes planner events to a Google Calendar.
package gcal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	apperrors "paper2plan/internal/errors"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

// Scopes requested for the push
var Scopes = []string{calendar.CalendarEventsScope}

// LoadOAuthConfig reads the OAuth client downloaded from the Google Cloud console
func LoadOAuthConfig(credentialsFile string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, apperrors.NewUnavailableError("google calendar",
			fmt.Sprintf("unable to read client secret file %s: %v", credentialsFile, err))
	}

	cfg, err := google.ConfigFromJSON(b, Scopes...)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("credentials", credentialsFile, err.Error())
	}
	return cfg, nil
}

// AuthURL is the consent page the user opens to obtain an authorization code
func AuthURL(cfg *oauth2.Config) string {
	return cfg.AuthCodeURL("paper2plan", oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
}

// Exchange trades an authorization code for a token and stores it
func Exchange(ctx context.Context, cfg *oauth2.Config, code, tokenFile string) error {
	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return apperrors.NewUpstreamError("google oauth", err)
	}
	return SaveToken(tokenFile, tok)
}

// TokenFromFile reads a stored token
func TokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("failed to decode token from file %s: %w", path, err)
	}
	return tok, nil
}

// SaveToken writes a token readable by the owner only
func SaveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache OAuth token to %s: %w", path, err)
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(tok)
}
