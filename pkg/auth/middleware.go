package auth

import (
	"log"
	"net/http"
	"strings"

	apperrors "marketplace-web/pkg/errors"
)

const CookieName = "auth_token"

func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

// Optional attaches the user when a valid token is present and lets
// anonymous requests through.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := tokenFromRequest(r); raw != "" {
			if user, err := a.ValidateToken(raw); err == nil {
				r = r.WithContext(ContextWithUser(r.Context(), user))
			} else {
				log.Printf("⚠️ Ignoring invalid session token: %v", err)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// Required rejects requests without a valid token.
func (a *Authenticator) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := tokenFromRequest(r)
		if raw == "" {
			apperrors.HandleError(w, apperrors.New(apperrors.ErrUnauthorized, "Unauthorized", nil))
			return
		}
		user, err := a.ValidateToken(raw)
		if err != nil {
			log.Printf("❌ Rejected session token: %v", err)
			apperrors.HandleError(w, apperrors.New(apperrors.ErrUnauthorized, "Unauthorized", err))
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}
