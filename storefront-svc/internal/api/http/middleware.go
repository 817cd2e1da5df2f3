package httpapi

import (
	"net/http"
	"strings"

	"campus-storefront/storefront-svc/internal/domain"
	"campus-storefront/storefront-svc/internal/session"
)

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if token, found := strings.CutPrefix(header, "Bearer "); found {
		return strings.TrimSpace(token)
	}
	return ""
}

func (h *Handler) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, session.ErrUnauthenticated)
			return
		}
		identity, err := h.Auth.Verify(r.Context(), token)
		if err != nil {
			writeError(w, err)
			return
		}
		next(w, r.WithContext(session.WithIdentity(r.Context(), identity)))
	}
}

func (h *Handler) staff(next http.HandlerFunc) http.HandlerFunc {
	return h.authed(func(w http.ResponseWriter, r *http.Request) {
		identity, _ := session.IdentityFrom(r.Context())
		if identity.Role != domain.RoleStaff {
			writeMessage(w, http.StatusForbidden, "staff only")
			return
		}
		next(w, r)
	})
}

// currentUser must only be called behind authed.
func currentUser(r *http.Request) domain.Identity {
	identity, _ := session.IdentityFrom(r.Context())
	return identity
}
