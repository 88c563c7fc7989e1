package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"local_mart/apperr"
	"local_mart/identity"
	"local_mart/model"
	"local_mart/utils"
)

// PrincipalResolver maps a verified identity onto a stored user.
type PrincipalResolver interface {
	Resolve(ctx context.Context, id identity.Identity) (model.Principal, error)
}

type Authenticator struct {
	provider      identity.Provider
	users         PrincipalResolver
	sessionCookie string
}

func NewAuthenticator(provider identity.Provider, users PrincipalResolver, sessionCookie string) *Authenticator {
	return &Authenticator{
		provider:      provider,
		users:         users,
		sessionCookie: sessionCookie,
	}
}

// authenticate returns ok=false when the request carries no credential at all.
func (a *Authenticator) authenticate(r *http.Request) (model.Principal, bool, error) {
	var (
		id  identity.Identity
		err error
	)
	if header := r.Header.Get("Authorization"); header != "" {
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" || token == header {
			return model.Principal{}, true, apperr.Auth("authorization header must be a bearer token")
		}
		id, err = a.provider.VerifyIDToken(r.Context(), token)
	} else if cookie, cookieErr := r.Cookie(a.sessionCookie); cookieErr == nil && cookie.Value != "" {
		id, err = a.provider.VerifySession(r.Context(), cookie.Value)
	} else {
		return model.Principal{}, false, nil
	}
	if err != nil {
		return model.Principal{}, true, err
	}

	principal, err := a.users.Resolve(r.Context(), id)
	if err != nil {
		return model.Principal{}, true, err
	}
	return principal, true, nil
}

// Required rejects requests without a valid credential.
func (a *Authenticator) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok, err := a.authenticate(r)
		if err != nil {
			logrus.Debugf("Authenticator: rejected credential err = %v", err)
			utils.RespondError(w, err)
			return
		}
		if !ok {
			utils.RespondError(w, apperr.Auth("login required"))
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}

// Optional attaches the principal when a credential is present and lets
// anonymous requests through. An invalid credential is still rejected.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok, err := a.authenticate(r)
		if err != nil {
			utils.RespondError(w, err)
			return
		}
		if ok {
			r = r.WithContext(WithPrincipal(r.Context(), principal))
		}
		next.ServeHTTP(w, r)
	})
}
