// Package googleapi wraps the document, drive and calendar services the
// pipeline reads from. All clients share one offline-refresh-token
// source; no interactive auth flow is involved.
package googleapi

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/johnquangdev/meeting-autopilot/pkg/config"
)

var defaultScopes = []string{
	"https://www.googleapis.com/auth/drive",
	"https://www.googleapis.com/auth/documents",
	"https://www.googleapis.com/auth/calendar.readonly",
}

// NewTokenSource builds a self-refreshing token source from the offline
// refresh token minted for the pipeline
func NewTokenSource(ctx context.Context, cfg *config.GoogleConfig) (oauth2.TokenSource, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RefreshToken == "" {
		return nil, fmt.Errorf("missing google oauth secrets: client id, secret and refresh token are required")
	}
	oc := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scopes:       defaultScopes,
		Endpoint:     google.Endpoint,
	}
	base := &oauth2.Token{RefreshToken: cfg.RefreshToken}
	return oauth2.ReuseTokenSource(nil, oc.TokenSource(ctx, base)), nil
}
