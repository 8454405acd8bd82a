package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/altiq/altiq/internal/auth"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "token"

// SessionConfig holds configuration for the session middleware.
type SessionConfig struct {
	Logger *slog.Logger
	Codec  *auth.Codec
}

// Session returns a middleware that authenticates requests from the
// session cookie. It verifies the token locally from its signature, so
// a 401 is produced before any store access. On success the decoded
// claims are injected into the request context.
func Session(cfg SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_cookie"),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeUnauthenticated(w)
				return
			}

			claims, err := cfg.Codec.Verify(cookie.Value)
			if err != nil {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "invalid_token"),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeUnauthenticated(w)
				return
			}

			ctx := auth.ContextWithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireOwner returns a middleware enforcing that the authenticated
// email equals the URL parameter named param. Must be applied after
// Session. A mismatch yields 403.
func RequireOwner(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := auth.ClaimsFromContext(r.Context())
			if claims == nil {
				writeUnauthenticated(w)
				return
			}

			requested := chi.URLParam(r, param)
			if requested == "" || requested != claims.Email {
				writeAuthzError(w, http.StatusForbidden, "FORBIDDEN", "You do not have access to this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeUnauthenticated(w http.ResponseWriter) {
	writeAuthzError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
}

func writeAuthzError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
		"code":  code,
	})
}
