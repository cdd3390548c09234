package http

import (
	"net/http"

	"github.com/nightowlmedia/doorman/internal/gate/service"
	"github.com/nightowlmedia/doorman/pkg/gatesdk"
	"github.com/nightowlmedia/doorman/pkg/httpx"
	"github.com/nightowlmedia/doorman/pkg/slogx"
)

type TicketListHandler struct {
	TicketService *service.TicketService
}

// ServeHTTP godoc
//
//	@Summary		Own Ticket Listing Endpoint
//	@Description	List the authenticated user's content requests, newest first.
//	@Tags			Tickets
//	@Produce		json
//	@Success		200	{object}	gatesdk.TicketListResponse	"tickets"
//	@Failure		401	{object}	gatesdk.ErrorResponse		"error, error_description"
//	@Failure		500	{object}	gatesdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/tickets [get].
func (h *TicketListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	tickets, err := h.TicketService.ListMine(ctx, userID)
	if err != nil {
		log.Error("failed to list tickets", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, gatesdk.ErrorResponse{
			Error:            gatesdk.ErrorCodeServerError,
			ErrorDescription: "Failed to list tickets",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, gatesdk.TicketListResponse{
		Tickets: toTicketInfos(tickets),
	})
}

type AdminTicketListHandler struct {
	TicketService *service.TicketService
}

// ServeHTTP godoc
//
//	@Summary		All Tickets Listing Endpoint
//	@Description	List every content request in the system, newest first. This is an admin-only operation.
//	@Tags			Tickets
//	@Produce		json
//	@Success		200	{object}	gatesdk.TicketListResponse	"tickets"
//	@Failure		401	{object}	gatesdk.ErrorResponse		"error, error_description"
//	@Failure		403	{object}	gatesdk.ErrorResponse		"error, error_description"
//	@Failure		500	{object}	gatesdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/admin/tickets [get].
func (h *AdminTicketListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	tickets, err := h.TicketService.ListAll(ctx)
	if err != nil {
		log.Error("failed to list all tickets", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, gatesdk.ErrorResponse{
			Error:            gatesdk.ErrorCodeServerError,
			ErrorDescription: "Failed to list tickets",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, gatesdk.TicketListResponse{
		Tickets: toTicketInfos(tickets),
	})
}
