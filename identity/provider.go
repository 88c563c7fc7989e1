// Package identity verifies credentials issued by the identity provider and
// manages login sessions.
package identity

import (
	"context"
	"time"
)

// Identity is what the provider vouches for about a caller.
type Identity struct {
	ExternalID string
	Email      string
	Name       *string
}

type Provider interface {
	// VerifyIDToken checks a short-lived ID token sent as a bearer token or
	// presented at login.
	VerifyIDToken(ctx context.Context, idToken string) (Identity, error)
	// CreateSession exchanges a verified ID token for a session cookie value.
	CreateSession(ctx context.Context, idToken string, ttl time.Duration) (string, error)
	// VerifySession checks a session cookie value.
	VerifySession(ctx context.Context, session string) (Identity, error)
	// Revoke invalidates the sessions of the user.
	Revoke(ctx context.Context, externalID string) error
}
