package http

import (
	"net/http"

	"github.com/nightowlmedia/doorman/internal/gate/service"
	"github.com/nightowlmedia/doorman/pkg/gatesdk"
	"github.com/nightowlmedia/doorman/pkg/httpx"
	"github.com/nightowlmedia/doorman/pkg/slogx"
)

type InviteListHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Invite Listing Endpoint
//	@Description	List every invite the authenticated user has minted, newest first, including consumed ones.
//	@Tags			Invitations
//	@Produce		json
//	@Success		200	{object}	gatesdk.InviteListResponse	"invites"
//	@Failure		401	{object}	gatesdk.ErrorResponse		"error, error_description"
//	@Failure		500	{object}	gatesdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invites [get].
func (h *InviteListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	invites, err := h.InviteService.ListMine(ctx, userID)
	if err != nil {
		log.Error("failed to list invites", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, gatesdk.ErrorResponse{
			Error:            gatesdk.ErrorCodeServerError,
			ErrorDescription: "Failed to list invites",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, gatesdk.InviteListResponse{
		Invites: toInviteInfos(invites),
	})
}
