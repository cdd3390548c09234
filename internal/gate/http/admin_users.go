package http

import (
	"errors"
	"net/http"

	"github.com/nightowlmedia/doorman/internal/gate/service"
	"github.com/nightowlmedia/doorman/pkg/gatesdk"
	"github.com/nightowlmedia/doorman/pkg/httpx"
	"github.com/nightowlmedia/doorman/pkg/slogx"
)

type UserListHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		User Listing Endpoint
//	@Description	List every account, newest first. This is an admin-only operation.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	gatesdk.UserListResponse	"users"
//	@Failure		401	{object}	gatesdk.ErrorResponse		"error, error_description"
//	@Failure		403	{object}	gatesdk.ErrorResponse		"error, error_description"
//	@Failure		500	{object}	gatesdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/admin/users [get].
func (h *UserListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	users, err := h.UserService.ListAll(ctx)
	if err != nil {
		log.Error("failed to list users", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, gatesdk.ErrorResponse{
			Error:            gatesdk.ErrorCodeServerError,
			ErrorDescription: "Failed to list users",
		})
		return
	}

	out := make([]gatesdk.UserInfo, 0, len(users))
	for _, u := range users {
		out = append(out, toUserInfo(u))
	}
	httpx.WriteJSON(w, http.StatusOK, gatesdk.UserListResponse{Users: out})
}

type UserPromoteHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		User Promotion Endpoint
//	@Description	Grant a user the administrator flag. Promoting an existing admin is a no-op. This is an admin-only operation.
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		string					true	"User ID"
//	@Success		200	{object}	gatesdk.UserInfo		"id, username, is_admin"
//	@Failure		401	{object}	gatesdk.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	gatesdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	gatesdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	gatesdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/admin/users/{id}/promote [post].
func (h *UserPromoteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, err := h.UserService.Promote(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteJSON(w, http.StatusNotFound, gatesdk.ErrorResponse{
				Error:            gatesdk.ErrorCodeNotFound,
				ErrorDescription: "User not found",
			})
			return
		}
		log.Error("failed to promote user", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, gatesdk.ErrorResponse{
			Error:            gatesdk.ErrorCodeServerError,
			ErrorDescription: "Failed to promote user",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserInfo(user))
}
