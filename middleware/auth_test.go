package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local_mart/apperr"
	"local_mart/identity"
	"local_mart/model"
)

type fakeProvider struct {
	idTokens map[string]identity.Identity
	sessions map[string]identity.Identity
}

func (f *fakeProvider) VerifyIDToken(_ context.Context, token string) (identity.Identity, error) {
	if id, ok := f.idTokens[token]; ok {
		return id, nil
	}
	return identity.Identity{}, apperr.Auth("invalid id token")
}

func (f *fakeProvider) CreateSession(_ context.Context, token string, _ time.Duration) (string, error) {
	return "session-" + token, nil
}

func (f *fakeProvider) VerifySession(_ context.Context, session string) (identity.Identity, error) {
	if id, ok := f.sessions[session]; ok {
		return id, nil
	}
	return identity.Identity{}, apperr.Auth("invalid session")
}

func (f *fakeProvider) Revoke(context.Context, string) error { return nil }

type fakeUsers map[string]model.Principal

func (f fakeUsers) Resolve(_ context.Context, id identity.Identity) (model.Principal, error) {
	if p, ok := f[id.ExternalID]; ok {
		return p, nil
	}
	return model.Principal{}, apperr.Forbidden("account is disabled")
}

func principal(id int64, acc model.Account) model.Principal {
	return model.Principal{User: model.User{ID: id, Email: "u@example.com", IsActive: true}, Account: acc}
}

func newAuthenticator() *Authenticator {
	provider := &fakeProvider{
		idTokens: map[string]identity.Identity{"tok-admin": {ExternalID: "admin", Email: "a@example.com"}},
		sessions: map[string]identity.Identity{
			"sess-customer": {ExternalID: "customer", Email: "c@example.com"},
			"sess-seller":   {ExternalID: "seller", Email: "s@example.com"},
			"sess-pending":  {ExternalID: "pending", Email: "p@example.com"},
			"sess-disabled": {ExternalID: "disabled", Email: "d@example.com"},
		},
	}
	users := fakeUsers{
		"admin":    principal(1, model.AdminAccount{ID: 1}),
		"customer": principal(2, model.CustomerAccount{ID: 2}),
		"seller":   principal(3, model.SellerAccount{ID: 3, Approval: model.ApprovalApproved}),
		"pending":  principal(4, model.SellerAccount{ID: 4, Approval: model.ApprovalPending}),
	}
	return NewAuthenticator(provider, users, "__session")
}

func echoUser(t *testing.T, want int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := UserContextData(r)
		if want == 0 {
			assert.False(t, ok)
		} else {
			require.True(t, ok)
			assert.Equal(t, want, p.UserID())
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func withSession(r *http.Request, value string) *http.Request {
	r.AddCookie(&http.Cookie{Name: "__session", Value: value})
	return r
}

func withBearer(r *http.Request, token string) *http.Request {
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

func TestRequiredAcceptsCookieAndBearer(t *testing.T) {
	auth := newAuthenticator()

	rec := httptest.NewRecorder()
	auth.Required(echoUser(t, 2)).ServeHTTP(rec, withSession(httptest.NewRequest(http.MethodGet, "/api/me", nil), "sess-customer"))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	auth.Required(echoUser(t, 1)).ServeHTTP(rec, withBearer(httptest.NewRequest(http.MethodGet, "/api/me", nil), "tok-admin"))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequiredRejects(t *testing.T) {
	auth := newAuthenticator()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	basic := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	basic.SetBasicAuth("a", "b")

	cases := map[string]struct {
		req    *http.Request
		status int
	}{
		"no credential":  {httptest.NewRequest(http.MethodGet, "/api/me", nil), http.StatusUnauthorized},
		"bad session":    {withSession(httptest.NewRequest(http.MethodGet, "/api/me", nil), "forged"), http.StatusUnauthorized},
		"disabled user":  {withSession(httptest.NewRequest(http.MethodGet, "/api/me", nil), "sess-disabled"), http.StatusForbidden},
		"basic auth":     {basic, http.StatusUnauthorized},
		"unknown bearer": {withBearer(httptest.NewRequest(http.MethodGet, "/api/me", nil), "nope"), http.StatusUnauthorized},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			auth.Required(next).ServeHTTP(rec, tc.req)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestOptionalLetsGuestsThrough(t *testing.T) {
	auth := newAuthenticator()

	rec := httptest.NewRecorder()
	auth.Optional(echoUser(t, 0)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	auth.Optional(echoUser(t, 2)).ServeHTTP(rec, withSession(httptest.NewRequest(http.MethodGet, "/api/cart", nil), "sess-customer"))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	auth.Optional(echoUser(t, 0)).ServeHTTP(rec, withSession(httptest.NewRequest(http.MethodGet, "/api/cart", nil), "forged"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoleGates(t *testing.T) {
	auth := newAuthenticator()
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	cases := []struct {
		gate    func(http.Handler) http.Handler
		session string
		status  int
	}{
		{AdminMiddleware, "sess-customer", http.StatusForbidden},
		{SellerMiddleware, "sess-seller", http.StatusNoContent},
		{SellerMiddleware, "sess-pending", http.StatusForbidden},
		{DeliveryBoyMiddleware, "sess-seller", http.StatusForbidden},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		auth.Required(tc.gate(ok)).ServeHTTP(rec, withSession(httptest.NewRequest(http.MethodGet, "/", nil), tc.session))
		assert.Equal(t, tc.status, rec.Code, tc.session)
	}

	rec := httptest.NewRecorder()
	auth.Required(AdminMiddleware(ok)).ServeHTTP(rec, withBearer(httptest.NewRequest(http.MethodGet, "/api/admin/sellers", nil), "tok-admin"))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	AdminMiddleware(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
