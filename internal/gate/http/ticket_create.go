package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nightowlmedia/doorman/internal/gate/service"
	"github.com/nightowlmedia/doorman/pkg/gatesdk"
	"github.com/nightowlmedia/doorman/pkg/httpx"
	"github.com/nightowlmedia/doorman/pkg/slogx"
)

type TicketCreateHandler struct {
	TicketService *service.TicketService
}

// ServeHTTP godoc
//
//	@Summary		Ticket Creation Endpoint
//	@Description	Submit a content request. Tickets start in the pending state and stay visible to their creator.
//	@Tags			Tickets
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatesdk.TicketRequest	true	"Ticket request"
//	@Success		201		{object}	gatesdk.TicketInfo		"id, title, status, created_at"
//	@Failure		400		{object}	gatesdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	gatesdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	gatesdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/tickets [post].
func (h *TicketCreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	var req gatesdk.TicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, gatesdk.ErrorResponse{
			Error:            gatesdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	ticket, err := h.TicketService.Create(ctx, userID, req.Title, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrEmptyTitle) {
			httpx.WriteJSON(w, http.StatusBadRequest, gatesdk.ErrorResponse{
				Error:            gatesdk.ErrorCodeInvalidRequest,
				ErrorDescription: "title is required",
			})
			return
		}
		log.Error("failed to create ticket", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, gatesdk.ErrorResponse{
			Error:            gatesdk.ErrorCodeServerError,
			ErrorDescription: "Failed to create ticket",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toTicketInfo(ticket))
}
