package http

import (
	"errors"
	"net/http"

	"github.com/nightowlmedia/doorman/internal/gate/service"
	"github.com/nightowlmedia/doorman/pkg/gatesdk"
	"github.com/nightowlmedia/doorman/pkg/httpx"
	"github.com/nightowlmedia/doorman/pkg/slogx"
)

type UserInfoHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		User Info Endpoint
//	@Description	Return the authenticated user's account details, including the remaining invite allowance and the users they invited.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	gatesdk.UserInfo		"id, username, is_admin, invite_count, invited_users"
//	@Failure		401	{object}	gatesdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	gatesdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/userinfo [get].
func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		httpx.WriteJSON(w, http.StatusUnauthorized, gatesdk.ErrorResponse{
			Error:            gatesdk.ErrorCodeUnauthorized,
			ErrorDescription: "Authentication required",
		})
		return
	}

	user, err := h.UserService.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			// The session outlived the account.
			httpx.WriteJSON(w, http.StatusUnauthorized, gatesdk.ErrorResponse{
				Error:            gatesdk.ErrorCodeUnauthorized,
				ErrorDescription: "Account no longer exists",
			})
			return
		}
		log.Error("failed to fetch user info", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, gatesdk.ErrorResponse{
			Error:            gatesdk.ErrorCodeServerError,
			ErrorDescription: "Failed to fetch user info",
		})
		return
	}

	invited, err := h.UserService.ListInvitedIDs(ctx, userID)
	if err != nil {
		log.Error("failed to list invited users", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, gatesdk.ErrorResponse{
			Error:            gatesdk.ErrorCodeServerError,
			ErrorDescription: "Failed to fetch user info",
		})
		return
	}

	info := toUserInfo(user)
	info.InvitedUsers = invited
	httpx.WriteJSON(w, http.StatusOK, info)
}
