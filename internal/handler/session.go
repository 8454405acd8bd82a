package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/altiq/altiq/internal/auth"
	"github.com/altiq/altiq/internal/handler/dto"
	"github.com/altiq/altiq/internal/middleware"
)

// SessionHandler issues and clears session cookies.
type SessionHandler struct {
	codec      *auth.Codec
	logger     *slog.Logger
	production bool
}

// NewSessionHandler creates a new SessionHandler. When production is
// true the cookie is marked Secure with SameSite=None so browsers send
// it on cross-site requests over HTTPS; in development it falls back to
// SameSite=Lax over plain HTTP.
func NewSessionHandler(codec *auth.Codec, logger *slog.Logger, production bool) *SessionHandler {
	return &SessionHandler{
		codec:      codec,
		logger:     logger,
		production: production,
	}
}

// IssueToken handles POST /jwt.
// It signs a session token for the supplied identity and attaches it as
// an HTTP-only cookie.
func (h *SessionHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req dto.IssueTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		writeError(w, http.StatusBadRequest, "MISSING_EMAIL", "A valid email is required")
		return
	}

	token, err := h.codec.Issue(email)
	if err != nil {
		h.logger.Error("failed to issue session token", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	http.SetCookie(w, h.sessionCookie(token, int(h.codec.TTL().Seconds())))

	h.logger.Info("session_issued", "email", email)

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true})
}

// Logout handles POST /logout.
// It clears the session cookie; the token itself simply ages out.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", -1))

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Success: true})
}

// sessionCookie builds the session cookie with environment-appropriate
// attributes. maxAge < 0 expires the cookie immediately.
func (h *SessionHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
	}

	if h.production {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	} else {
		cookie.SameSite = http.SameSiteLaxMode
	}

	return cookie
}
