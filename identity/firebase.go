package identity

import (
	"context"
	"fmt"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"local_mart/apperr"
)

// FirebaseProvider delegates verification and session cookies to Firebase
// Authentication.
type FirebaseProvider struct {
	client *auth.Client
}

func NewFirebaseProvider(ctx context.Context, credentialsFile string) (*FirebaseProvider, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing firebase auth client: %w", err)
	}
	return &FirebaseProvider{client: client}, nil
}

func identityFromToken(token *auth.Token) (Identity, error) {
	email, _ := token.Claims["email"].(string)
	if token.UID == "" || email == "" {
		return Identity{}, apperr.Auth("credentials carry no verified email")
	}
	id := Identity{ExternalID: token.UID, Email: email}
	if name, ok := token.Claims["name"].(string); ok && name != "" {
		id.Name = &name
	}
	return id, nil
}

func (p *FirebaseProvider) VerifyIDToken(ctx context.Context, idToken string) (Identity, error) {
	token, err := p.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		logrus.Debugf("FirebaseProvider: rejected id token err = %v", err)
		return Identity{}, apperr.Auth("invalid or expired credentials")
	}
	return identityFromToken(token)
}

func (p *FirebaseProvider) CreateSession(ctx context.Context, idToken string, ttl time.Duration) (string, error) {
	if _, err := p.VerifyIDToken(ctx, idToken); err != nil {
		return "", err
	}
	cookie, err := p.client.SessionCookie(ctx, idToken, ttl)
	if err != nil {
		return "", apperr.Internal(err, "failed to create session")
	}
	return cookie, nil
}

func (p *FirebaseProvider) VerifySession(ctx context.Context, session string) (Identity, error) {
	token, err := p.client.VerifySessionCookieAndCheckRevoked(ctx, session)
	if err != nil {
		logrus.Debugf("FirebaseProvider: rejected session cookie err = %v", err)
		return Identity{}, apperr.Auth("invalid or expired session")
	}
	return identityFromToken(token)
}

func (p *FirebaseProvider) Revoke(ctx context.Context, externalID string) error {
	if err := p.client.RevokeRefreshTokens(ctx, externalID); err != nil {
		return apperr.Internal(err, "failed to revoke session")
	}
	return nil
}
