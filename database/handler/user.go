package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"local_mart/model"
	"local_mart/utils"
)

// Login exchanges a provider ID token for a session cookie, creating or
// linking the user and folding any guest cart into the user's cart.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body model.LoginRequestBody
	if err := utils.ParseAndValidate(r, &body); err != nil {
		utils.RespondError(w, err)
		return
	}

	id, err := h.Identity.VerifyIDToken(r.Context(), body.IDToken)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	user, err := h.Users.SignIn(r.Context(), id)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	session, err := h.Identity.CreateSession(r.Context(), body.IDToken, h.Auth.SessionTTL)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.Auth.SessionCookie,
		Value:    session,
		Path:     "/",
		MaxAge:   int(h.Auth.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.Auth.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	if guest := utils.GuestSessionID(r, h.Auth.GuestCookie); guest != "" {
		if err := h.Cart.MergeGuest(r.Context(), user.UserID(), guest); err != nil {
			logrus.Errorf("Login: failed to merge guest cart for user %d err = %v", user.UserID(), err)
		} else {
			utils.ClearCookie(w, h.Auth.GuestCookie, h.Auth.SecureCookies)
		}
	}

	utils.RespondJSON(w, http.StatusOK, user.View())
}

// Logout clears the session cookie. A session that still verifies is also
// revoked at the provider.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.Auth.SessionCookie); err == nil && cookie.Value != "" {
		if id, err := h.Identity.VerifySession(r.Context(), cookie.Value); err == nil {
			if err := h.Identity.Revoke(r.Context(), id.ExternalID); err != nil {
				logrus.Errorf("Logout: failed to revoke sessions of %s err = %v", id.ExternalID, err)
			}
		}
	}
	utils.ClearCookie(w, h.Auth.SessionCookie, h.Auth.SecureCookies)
	utils.RespondJSON(w, http.StatusOK, messageResponse{Message: "logged out"})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, p.View())
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	var body model.UpdateProfileRequest
	if err := utils.ParseAndValidate(r, &body); err != nil {
		utils.RespondError(w, err)
		return
	}

	updated, err := h.Users.UpdateProfile(r.Context(), p.UserID(), body)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, updated.View())
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userId")
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	user, err := h.Users.Get(r.Context(), userID)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, user)
}
