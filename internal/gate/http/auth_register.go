package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/nightowlmedia/doorman/internal/gate/service"
	"github.com/nightowlmedia/doorman/pkg/gatesdk"
	"github.com/nightowlmedia/doorman/pkg/httpx"
	"github.com/nightowlmedia/doorman/pkg/slogx"
)

type RegisterHandler struct {
	AuthService *service.AuthService
	SessionTTL  time.Duration
}

// ServeHTTP godoc
//
//	@Summary		Registration Endpoint
//	@Description	Redeem a single-use invite code to create an account. The account is provisioned on the media server first; on success the response carries a bearer token, so no separate login is needed.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatesdk.RegisterRequest	true	"Registration request"
//	@Success		201		{object}	gatesdk.TokenResponse	"access_token, token_type, expires_in, user"
//	@Failure		400		{object}	gatesdk.ErrorResponse	"error, error_description"
//	@Failure		502		{object}	gatesdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	gatesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req gatesdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, gatesdk.ErrorResponse{
			Error:            gatesdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}
	if req.InviteCode == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, gatesdk.ErrorResponse{
			Error:            gatesdk.ErrorCodeInvalidRequest,
			ErrorDescription: "invite_code is required",
		})
		return
	}

	token, user, err := h.AuthService.Register(ctx, req.Username, req.Password, req.InviteCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRegistration):
			httpx.WriteJSON(w, http.StatusBadRequest, gatesdk.ErrorResponse{
				Error:            gatesdk.ErrorCodeInvalidRequest,
				ErrorDescription: "username and password are required",
			})
		case errors.Is(err, service.ErrInvalidInvite):
			httpx.WriteJSON(w, http.StatusBadRequest, gatesdk.ErrorResponse{
				Error:            gatesdk.ErrorCodeInvalidInvite,
				ErrorDescription: "Invite code is invalid or already used",
			})
		case errors.Is(err, service.ErrUsernameTaken):
			httpx.WriteJSON(w, http.StatusBadRequest, gatesdk.ErrorResponse{
				Error:            gatesdk.ErrorCodeUsernameTaken,
				ErrorDescription: "Username is already taken",
			})
		case errors.Is(err, service.ErrProvisioningFailed):
			httpx.WriteJSON(w, http.StatusBadGateway, gatesdk.ErrorResponse{
				Error:            gatesdk.ErrorCodeProvisioning,
				ErrorDescription: "Media server account creation failed, try again later",
			})
		default:
			log.Error("registration failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, gatesdk.ErrorResponse{
				Error:            gatesdk.ErrorCodeServerError,
				ErrorDescription: "Failed to register",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, gatesdk.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.SessionTTL.Seconds()),
		User:        toUserInfo(user),
	})
}
