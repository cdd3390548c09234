package http

import (
	"errors"
	"net/http"

	"github.com/nightowlmedia/doorman/internal/gate/service"
	"github.com/nightowlmedia/doorman/pkg/gatesdk"
	"github.com/nightowlmedia/doorman/pkg/httpx"
	"github.com/nightowlmedia/doorman/pkg/slogx"
)

type InviteCreateHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Invite Minting Endpoint
//	@Description	Mint a new single-use invite code. Non-admins spend one unit of their invite allowance; admins mint freely.
//	@Tags			Invitations
//	@Produce		json
//	@Success		201	{object}	gatesdk.InviteInfo		"code, created_by, used, created_at"
//	@Failure		401	{object}	gatesdk.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	gatesdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	gatesdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invites [post].
func (h *InviteCreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	invite, err := h.InviteService.Mint(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrNoInvitesRemaining) {
			httpx.WriteJSON(w, http.StatusForbidden, gatesdk.ErrorResponse{
				Error:            gatesdk.ErrorCodeNoInvites,
				ErrorDescription: "No invites remaining",
			})
			return
		}
		log.Error("failed to mint invite", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, gatesdk.ErrorResponse{
			Error:            gatesdk.ErrorCodeServerError,
			ErrorDescription: "Failed to create invite",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toInviteInfo(invite))
}
