package http

import (
	"encoding/json"
	"net/http"

	"github.com/evenlines/storefront/internal/auth"
)

type AuthHandler struct {
	session *auth.Session
	tokens  *auth.TokenManager
}

func NewAuthHandler(session *auth.Session, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{session: session, tokens: tokens}
}

type CredentialsDTO struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

type SessionResponseDTO struct {
	Token string     `json:"token"`
	User  *auth.User `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if !h.session.Login(r.Context(), req.Email, req.Password) {
		// One generic message for every rejection cause
		respondError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
		return
	}

	h.respondSession(w)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if !h.session.Register(r.Context(), req.Email, req.Password, req.DisplayName) {
		respondError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
		return
	}

	h.respondSession(w)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.session.Logout(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req CredentialsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.session.ResetPassword(r.Context(), req.Email); err != nil {
		respondError(w, http.StatusBadRequest, "reset_failed", "could not send password reset")
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "reset email requested"})
}

type ProfileUpdateDTO struct {
	DisplayName string `json:"display_name"`
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if getSessionIDFromContext(r.Context()) == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req ProfileUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.session.UpdateUserProfile(r.Context(), req.DisplayName); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "profile update failed")
		return
	}
	respondJSON(w, http.StatusOK, h.session.User())
}

func (h *AuthHandler) respondSession(w http.ResponseWriter) {
	user := h.session.User()
	if user == nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "session not established")
		return
	}

	token, err := h.tokens.Issue(user.UID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to issue session token")
		return
	}

	respondJSON(w, http.StatusOK, SessionResponseDTO{Token: token, User: user})
}
