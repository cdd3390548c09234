package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nightowlmedia/doorman/internal/gate/domain"
	"github.com/nightowlmedia/doorman/internal/gate/service"
	"github.com/nightowlmedia/doorman/pkg/gatesdk"
	"github.com/nightowlmedia/doorman/pkg/httpx"
	"github.com/nightowlmedia/doorman/pkg/slogx"
)

type TicketRespondHandler struct {
	TicketService *service.TicketService
}

// ServeHTTP godoc
//
//	@Summary		Ticket Response Endpoint
//	@Description	Resolve a pending ticket as approved or rejected. Resolution is final; responding to an already resolved ticket fails with 409 regardless of the status it carries. This is an admin-only operation.
//	@Tags			Tickets
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Ticket ID"
//	@Param			request	body		gatesdk.TicketRespondRequest	true	"Resolution"
//	@Success		200		{object}	gatesdk.TicketInfo			"id, status, response, resolved_at"
//	@Failure		400		{object}	gatesdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	gatesdk.ErrorResponse		"error, error_description"
//	@Failure		403		{object}	gatesdk.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	gatesdk.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	gatesdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	gatesdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/tickets/{id}/respond [post].
func (h *TicketRespondHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	adminID := httpx.UserIDFromCtx(ctx)
	if adminID == "" {
		httpx.WriteJSON(w, http.StatusUnauthorized, gatesdk.ErrorResponse{
			Error:            gatesdk.ErrorCodeUnauthorized,
			ErrorDescription: "Authentication required",
		})
		return
	}

	var req gatesdk.TicketRespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, gatesdk.ErrorResponse{
			Error:            gatesdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	ticket, err := h.TicketService.Respond(ctx, adminID, r.PathValue("id"),
		domain.TicketStatus(req.Status), req.Response)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTicketStatus):
			httpx.WriteJSON(w, http.StatusBadRequest, gatesdk.ErrorResponse{
				Error:            gatesdk.ErrorCodeInvalidRequest,
				ErrorDescription: "status must be approved or rejected",
			})
		case errors.Is(err, service.ErrTicketNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, gatesdk.ErrorResponse{
				Error:            gatesdk.ErrorCodeNotFound,
				ErrorDescription: "Ticket not found",
			})
		case errors.Is(err, service.ErrTicketResolved):
			httpx.WriteJSON(w, http.StatusConflict, gatesdk.ErrorResponse{
				Error:            gatesdk.ErrorCodeTicketResolved,
				ErrorDescription: "Ticket has already been resolved",
			})
		default:
			log.Error("failed to respond to ticket", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, gatesdk.ErrorResponse{
				Error:            gatesdk.ErrorCodeServerError,
				ErrorDescription: "Failed to respond to ticket",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTicketInfo(ticket))
}
