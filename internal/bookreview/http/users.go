package http

import (
	"net/http"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/domain"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/service"
	"github.com/aussiebroadwan/bookreview/pkg/httpx"
)

// UsersHandler serves the admin user directory.
type UsersHandler struct {
	Users *service.UserService
}

//	@Summary	List users
//	@Tags		Users
//	@Security	BearerAuth
//	@Produce	json
//	@Param		limit	query		int	false	"Page size (max 100)"
//	@Param		offset	query		int	false	"Items to skip"
//	@Success	200		{array}		booksdk.User
//	@Failure	403		{object}	booksdk.ErrorResponse
//	@Router		/api/v1/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	p, err := page(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	users, err := h.Users.ListUsers(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, users)
}

//	@Summary	Get user
//	@Tags		Users
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"User ID"
//	@Success	200	{object}	booksdk.User
//	@Failure	404	{object}	booksdk.ErrorResponse
//	@Router		/api/v1/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.GetUser(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, user)
}

// HandleUpdate changes a user's role or active flag. Deactivation ends the
// user's sessions.
//
//	@Summary	Update user
//	@Tags		Users
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"User ID"
//	@Param		request	body		booksdk.UpdateUserRequest	true	"Role and/or active flag"
//	@Success	200		{object}	booksdk.User
//	@Failure	400		{object}	booksdk.ErrorResponse	"Unknown role"
//	@Failure	403		{object}	booksdk.ErrorResponse
//	@Failure	404		{object}	booksdk.ErrorResponse
//	@Router		/api/v1/users/{id} [patch].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var upd domain.UserUpdate
	if err := decode(w, r, &upd); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.Users.UpdateUser(r.Context(), actor(r), r.PathValue("id"), upd)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, user)
}

// HandleDelete removes an account. Superadmin only.
//
//	@Summary	Delete user
//	@Tags		Users
//	@Security	BearerAuth
//	@Param		id	path	string	true	"User ID"
//	@Success	204
//	@Failure	403	{object}	booksdk.ErrorResponse
//	@Failure	404	{object}	booksdk.ErrorResponse
//	@Router		/api/v1/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Users.DeleteUser(r.Context(), actor(r), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
