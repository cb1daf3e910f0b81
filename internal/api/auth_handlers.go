package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/example/curated-storefront/internal/api/middleware"
	"github.com/example/curated-storefront/internal/auth"
	"github.com/example/curated-storefront/internal/command"
	"go.uber.org/zap"
)

// SessionResponse is returned whenever a session token is issued
type SessionResponse struct {
	SessionID string    `json:"sessionId"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AdminLoginRequest represents the admin login request body
type AdminLoginRequest struct {
	Password string `json:"password"`
}

// CreateSession starts a new shopper session with an empty cart
func (h *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	h.issueSession(w, r, http.StatusCreated, auth.NewSessionID(), auth.RoleShopper)
}

// EndSession clears the session's cart and its cookie
func (h *Handlers) EndSession(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())
	if err := h.cmdHandler.EndSession(r.Context(), command.EndSession{SessionID: sessionID}); err != nil {
		h.internalError(w, "failed to end session", err)
		return
	}

	clearSessionCookie(w)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Session ended"})
}

// AdminLogin upgrades the current session to the admin role
func (h *Handlers) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.admin.Authenticate(req.Password); err != nil {
		if errors.Is(err, auth.ErrAdminDisabled) {
			respondJSONError(w, "Admin login is disabled", http.StatusForbidden)
			return
		}
		h.logger.Warn("admin login failed", zap.String("remote_addr", r.RemoteAddr))
		respondJSONError(w, "Invalid password", http.StatusUnauthorized)
		return
	}

	h.issueSession(w, r, http.StatusOK, middleware.GetSessionID(r.Context()), auth.RoleAdmin)
}

// Helper methods

func (h *Handlers) issueSession(w http.ResponseWriter, r *http.Request, status int, sessionID, role string) {
	token, expiresAt, err := h.jwtService.GenerateSessionToken(sessionID, role)
	if err != nil {
		h.internalError(w, "failed to sign session token", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})

	respondJSON(w, status, SessionResponse{
		SessionID: sessionID,
		Role:      role,
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
