package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/sirupsen/logrus"

	"local_mart/apperr"
)

const (
	useID      = "id"
	useSession = "session"
	issuer     = "local_mart"
)

type claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Use   string `json:"use"`
	jwt.StandardClaims
}

// JWTProvider signs ID tokens and sessions with a shared HS256 secret. It is
// meant for local development and tests, where no external provider exists.
type JWTProvider struct {
	secret []byte
	now    func() time.Time
}

func NewJWTProvider(secret string) *JWTProvider {
	return &JWTProvider{secret: []byte(secret), now: time.Now}
}

// IssueIDToken mints an ID token for id, valid for ttl.
func (p *JWTProvider) IssueIDToken(id Identity, ttl time.Duration) (string, error) {
	return p.sign(id, useID, ttl)
}

func (p *JWTProvider) sign(id Identity, use string, ttl time.Duration) (string, error) {
	now := p.now()
	c := claims{
		Email: strings.ToLower(strings.TrimSpace(id.Email)),
		Use:   use,
		StandardClaims: jwt.StandardClaims{
			Subject:   id.ExternalID,
			Issuer:    issuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}
	if id.Name != nil {
		c.Name = *id.Name
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("signing %s token: %w", use, err)
	}
	return signed, nil
}

func (p *JWTProvider) parse(tokenString, use string) (Identity, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		logrus.Debugf("JWTProvider: rejected %s token err = %v", use, err)
		return Identity{}, apperr.Auth("invalid or expired credentials")
	}
	if c.Use != use || c.Subject == "" || c.Email == "" {
		return Identity{}, apperr.Auth("invalid or expired credentials")
	}
	id := Identity{ExternalID: c.Subject, Email: c.Email}
	if c.Name != "" {
		name := c.Name
		id.Name = &name
	}
	return id, nil
}

func (p *JWTProvider) VerifyIDToken(_ context.Context, idToken string) (Identity, error) {
	return p.parse(idToken, useID)
}

func (p *JWTProvider) CreateSession(_ context.Context, idToken string, ttl time.Duration) (string, error) {
	id, err := p.parse(idToken, useID)
	if err != nil {
		return "", err
	}
	return p.sign(id, useSession, ttl)
}

func (p *JWTProvider) VerifySession(_ context.Context, session string) (Identity, error) {
	return p.parse(session, useSession)
}

// Revoke is a no-op: signed sessions stay valid until they expire.
func (p *JWTProvider) Revoke(_ context.Context, externalID string) error {
	logrus.Debugf("JWTProvider: revoke requested for %s, sessions expire on their own", externalID)
	return nil
}
