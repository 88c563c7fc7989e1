package utils

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const guestSessionTTL = 30 * 24 * time.Hour

// GuestSessionID returns the guest session id carried by the request, if any.
func GuestSessionID(r *http.Request, cookieName string) string {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(cookie.Value); err != nil {
		return ""
	}
	return cookie.Value
}

// EnsureGuestSession returns the request's guest session id, issuing a new
// one in a cookie when missing.
func EnsureGuestSession(w http.ResponseWriter, r *http.Request, cookieName string, secure bool) string {
	if id := GuestSessionID(r, cookieName); id != "" {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(guestSessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// ClearCookie expires cookieName on the client.
func ClearCookie(w http.ResponseWriter, cookieName string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
