package http

import (
	"errors"
	"net/http"

	"github.com/nightowlmedia/doorman/internal/gate/service"
	"github.com/nightowlmedia/doorman/pkg/gatesdk"
	"github.com/nightowlmedia/doorman/pkg/httpx"
	"github.com/nightowlmedia/doorman/pkg/slogx"
)

type InviteLookupHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Invite Lookup Endpoint
//	@Description	Look an invite code up without authenticating. Registration pages use this to validate a code before the form is submitted.
//	@Tags			Invitations
//	@Produce		json
//	@Param			code	path		string					true	"Invite code"
//	@Success		200		{object}	gatesdk.InviteInfo		"code, created_by, used, created_at"
//	@Failure		404		{object}	gatesdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	gatesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/invites/{code} [get].
func (h *InviteLookupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	code := r.PathValue("code")

	invite, err := h.InviteService.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, service.ErrInviteNotFound) {
			httpx.WriteJSON(w, http.StatusNotFound, gatesdk.ErrorResponse{
				Error:            gatesdk.ErrorCodeNotFound,
				ErrorDescription: "Invite not found",
			})
			return
		}
		log.Error("failed to fetch invite", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, gatesdk.ErrorResponse{
			Error:            gatesdk.ErrorCodeServerError,
			ErrorDescription: "Failed to fetch invite",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toInviteInfo(invite))
}
