package http

import (
	"net/http"

	"github.com/nightowlmedia/doorman/internal/gate/service"
	"github.com/nightowlmedia/doorman/pkg/gatesdk"
	"github.com/nightowlmedia/doorman/pkg/httpx"
	"github.com/nightowlmedia/doorman/pkg/slogx"
)

type LogoutHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Logout Endpoint
//	@Description	Revoke the current session. The bearer token stops working immediately. Logging out twice is harmless.
//	@Tags			Auth
//	@Produce		json
//	@Success		204	"no content"
//	@Failure		401	{object}	gatesdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	gatesdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	sid := httpx.SessionIDFromCtx(ctx)
	if sid == "" {
		httpx.WriteJSON(w, http.StatusUnauthorized, gatesdk.ErrorResponse{
			Error:            gatesdk.ErrorCodeUnauthorized,
			ErrorDescription: "Authentication required",
		})
		return
	}

	if err := h.AuthService.Logout(ctx, sid); err != nil {
		log.Error("logout failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, gatesdk.ErrorResponse{
			Error:            gatesdk.ErrorCodeServerError,
			ErrorDescription: "Failed to log out",
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
