package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/tindi/chamaledger/internal/adapter/http/dto"
	"github.com/tindi/chamaledger/internal/adapter/http/middleware"
	"github.com/tindi/chamaledger/internal/domain"
	"github.com/tindi/chamaledger/internal/usecase"
)

// AuthService defines the behavior needed by AuthHandler.
type AuthService interface {
	Login(ctx context.Context, input usecase.LoginInput) (string, *domain.User, error)
	Logout(ctx context.Context, token string) error
	SessionTTL() time.Duration
}

// AuthHandler handles login and logout.
type AuthHandler struct {
	userUC AuthService
	secure bool
}

// NewAuthHandler creates a new AuthHandler. secure controls the cookie's
// Secure flag; it is off only for local development over plain HTTP.
func NewAuthHandler(userUC AuthService, secure bool) *AuthHandler {
	return &AuthHandler{userUC: userUC, secure: secure}
}

// Login verifies credentials and sets the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	token, user, err := h.userUC.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "login failed", "invalid credentials")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.userUC.SessionTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, dto.UserFromDomain(user))
}

// Logout destroys the session and clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.userUC.Logout(r.Context(), cookie.Value); err != nil {
			writeError(w, http.StatusInternalServerError, "logout failed", err.Error())
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me returns the authenticated session.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	writeJSON(w, http.StatusOK, dto.SessionFromDomain(session))
}
