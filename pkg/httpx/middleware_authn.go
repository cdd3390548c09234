package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/nightowlmedia/doorman/pkg/jwtx"
	"github.com/nightowlmedia/doorman/pkg/slogx"
)

// SessionChecker reports whether a session is still live. Tokens carry a
// sid claim precisely so logout can revoke them before expiry.
type SessionChecker interface {
	SessionExists(ctx context.Context, sid string) (bool, error)
}

// AuthnMiddleware verifies the bearer token and confirms its session has
// not been revoked, then injects identity into the request context.
func AuthnMiddleware(v jwtx.Verifier, sessions SessionChecker) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("session token verification failed", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			live, err := sessions.SessionExists(ctx, claims.SID)
			if err != nil {
				log.Error("session lookup failed", "err", err)
				WriteJSON(w, http.StatusInternalServerError, map[string]string{
					"error":             "server_error",
					"error_description": "Failed to validate session",
				})
				return
			}
			if !live {
				writeBearerError(w, "session revoked or expired")
				return
			}

			ctx = contextWithAuth(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithAuth(ctx context.Context, c *jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeySessionID, c.SID)
	ctx = context.WithValue(ctx, CtxKeyAdmin, c.Admin)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
