package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID    ctxKey = "user_id"
	CtxKeySessionID ctxKey = "session_id"
	CtxKeyAdmin     ctxKey = "admin"
	CtxKeyClaims    ctxKey = "claims"
)

// UserIDFromCtx returns the authenticated user's ID, or "" when the
// request was not authenticated.
func UserIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}

// SessionIDFromCtx returns the authenticated session's ID, or "".
func SessionIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeySessionID).(string); ok {
		return v
	}
	return ""
}

func adminFromCtx(ctx context.Context) bool {
	v, ok := ctx.Value(CtxKeyAdmin).(bool)
	return ok && v
}
