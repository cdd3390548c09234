package httpx

import "net/http"

// RequireAdmin rejects callers whose session does not carry the
// administrator flag. Must run after AuthnMiddleware.
func RequireAdmin() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !adminFromCtx(r.Context()) {
				WriteJSON(w, http.StatusForbidden, map[string]string{
					"error":             "forbidden",
					"error_description": "Administrator privileges required",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
