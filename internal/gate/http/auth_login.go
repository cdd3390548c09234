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

type LoginHandler struct {
	AuthService *service.AuthService
	SessionTTL  time.Duration
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Authenticate with username and password. Returns a bearer token and the account details.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatesdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	gatesdk.TokenResponse	"access_token, token_type, expires_in, user"
//	@Failure		400		{object}	gatesdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	gatesdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	gatesdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req gatesdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, gatesdk.ErrorResponse{
			Error:            gatesdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}
	if req.Username == "" || req.Password == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, gatesdk.ErrorResponse{
			Error:            gatesdk.ErrorCodeInvalidRequest,
			ErrorDescription: "username and password are required",
		})
		return
	}

	token, user, err := h.AuthService.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteJSON(w, http.StatusUnauthorized, gatesdk.ErrorResponse{
				Error:            gatesdk.ErrorCodeInvalidCredentials,
				ErrorDescription: "Invalid username or password",
			})
			return
		}
		log.Error("login failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, gatesdk.ErrorResponse{
			Error:            gatesdk.ErrorCodeServerError,
			ErrorDescription: "Failed to log in",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, gatesdk.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.SessionTTL.Seconds()),
		User:        toUserInfo(user),
	})
}
