package httpapi

import (
	"net/http"

	"campus-storefront/storefront-svc/internal/domain"
	"campus-storefront/storefront-svc/internal/session"
)

type signUpRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	CedulaRUC string `json:"cedula_ruc"`
	Phone     string `json:"phone"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if !decodeBody(w, r, &req) {
		return
	}
	sess, err := h.Auth.SignUp(r.Context(), req.Email, req.Password, domain.Profile{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CedulaRUC: req.CedulaRUC,
		Phone:     req.Phone,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if !decodeBody(w, r, &req) {
		return
	}
	sess, err := h.Auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// signOut always succeeds. A valid token is revoked and its cart dropped.
func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token != "" {
		if identity, err := h.Auth.Verify(r.Context(), token); err == nil {
			h.Carts.Drop(identity.UserID)
		}
		h.Auth.SignOut(r.Context(), token)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	profile, found, err := h.Profiles.GetProfile(r.Context(), currentUser(r).UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeMessage(w, http.StatusNotFound, "Profile not found")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var profile domain.Profile
	if !decodeBody(w, r, &profile) {
		return
	}
	profile.UserID = currentUser(r).UserID
	if err := h.Profiles.UpdateProfile(r.Context(), profile); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"complete": session.ProfileComplete(profile)})
}

func (h *Handler) getProfileComplete(w http.ResponseWriter, r *http.Request) {
	complete := h.Gate.CheckProfileComplete(r.Context(), currentUser(r).UserID)
	writeJSON(w, http.StatusOK, map[string]bool{"complete": complete})
}
