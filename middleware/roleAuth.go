package middleware

import (
	"context"
	"net/http"

	"local_mart/apperr"
	"local_mart/model"
	"local_mart/utils"
)

type ContextKeys string

const (
	UserContext ContextKeys = "principal"
)

func WithPrincipal(ctx context.Context, principal model.Principal) context.Context {
	return context.WithValue(ctx, UserContext, principal)
}

// UserContextData returns the authenticated caller, if any.
func UserContextData(r *http.Request) (model.Principal, bool) {
	principal, ok := r.Context().Value(UserContext).(model.Principal)
	return principal, ok
}

func requireAccount(allowed func(model.Account) bool, message string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := UserContextData(r)
			if !ok {
				utils.RespondError(w, apperr.Auth("login required"))
				return
			}
			if !allowed(principal.Account) {
				utils.RespondError(w, apperr.Forbidden(message))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

var AdminMiddleware = requireAccount(func(acc model.Account) bool {
	_, ok := acc.(model.AdminAccount)
	return ok
}, "admin access required")

var SellerMiddleware = requireAccount(func(acc model.Account) bool {
	seller, ok := acc.(model.SellerAccount)
	return ok && seller.CanSell()
}, "approved seller access required")

var DeliveryBoyMiddleware = requireAccount(func(acc model.Account) bool {
	rider, ok := acc.(model.DeliveryBoyAccount)
	return ok && rider.CanDeliver()
}, "approved delivery boy access required")
