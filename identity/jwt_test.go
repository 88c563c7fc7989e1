package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local_mart/apperr"
)

func TestJWTProviderSessionFlow(t *testing.T) {
	p := NewJWTProvider("0123456789abcdef")
	name := "Asha"
	idToken, err := p.IssueIDToken(Identity{ExternalID: "ext-1", Email: " Asha@Example.com ", Name: &name}, time.Hour)
	require.NoError(t, err)

	id, err := p.VerifyIDToken(context.Background(), idToken)
	require.NoError(t, err)
	assert.Equal(t, "ext-1", id.ExternalID)
	assert.Equal(t, "asha@example.com", id.Email)
	require.NotNil(t, id.Name)
	assert.Equal(t, "Asha", *id.Name)

	session, err := p.CreateSession(context.Background(), idToken, 24*time.Hour)
	require.NoError(t, err)
	fromSession, err := p.VerifySession(context.Background(), session)
	require.NoError(t, err)
	assert.Equal(t, id, fromSession)

	// tokens are not interchangeable
	_, err = p.VerifySession(context.Background(), idToken)
	assert.True(t, apperr.IsKind(err, apperr.KindAuth))
	_, err = p.VerifyIDToken(context.Background(), session)
	assert.True(t, apperr.IsKind(err, apperr.KindAuth))
}

func TestJWTProviderRejects(t *testing.T) {
	p := NewJWTProvider("0123456789abcdef")
	other := NewJWTProvider("fedcba9876543210")

	forged, err := other.IssueIDToken(Identity{ExternalID: "ext-1", Email: "a@example.com"}, time.Hour)
	require.NoError(t, err)
	_, err = p.VerifyIDToken(context.Background(), forged)
	assert.True(t, apperr.IsKind(err, apperr.KindAuth))

	p.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := p.IssueIDToken(Identity{ExternalID: "ext-1", Email: "a@example.com"}, time.Hour)
	require.NoError(t, err)
	p.now = time.Now
	_, err = p.VerifyIDToken(context.Background(), expired)
	assert.True(t, apperr.IsKind(err, apperr.KindAuth))

	_, err = p.VerifyIDToken(context.Background(), "not-a-token")
	assert.True(t, apperr.IsKind(err, apperr.KindAuth))

	noEmail, err := p.IssueIDToken(Identity{ExternalID: "ext-2"}, time.Hour)
	require.NoError(t, err)
	_, err = p.VerifyIDToken(context.Background(), noEmail)
	assert.True(t, apperr.IsKind(err, apperr.KindAuth))

	assert.NoError(t, p.Revoke(context.Background(), "ext-1"))
}
