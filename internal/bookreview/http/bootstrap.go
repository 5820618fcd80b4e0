package http

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/domain"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/service"
	"github.com/aussiebroadwan/bookreview/pkg/booksdk"
	"github.com/aussiebroadwan/bookreview/pkg/httpx"
	"github.com/aussiebroadwan/bookreview/pkg/slogx"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP creates the first superadmin of an empty deployment.
//
//	@Summary		Bootstrap the service
//	@Description	Creates the first superadmin. Only available when a bootstrap token is configured and the user table is empty.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string						true	"Bootstrap token"
//	@Param			request				body		booksdk.SignupRequest		true	"Superadmin account"
//	@Success		201					{object}	booksdk.User
//	@Failure		400					{object}	booksdk.ErrorResponse	"Validation failed"
//	@Failure		401					{object}	booksdk.ErrorResponse	"Missing or invalid bootstrap token"
//	@Failure		404					{object}	booksdk.ErrorResponse	"Bootstrap not enabled"
//	@Failure		409					{object}	booksdk.ErrorResponse	"Already bootstrapped"
//	@Router			/api/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.BootstrapService.Token == "" {
		writeError(w, r, service.ErrBootstrapDisabled)
		return
	}

	var req booksdk.BootstrapRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.BootstrapService.Bootstrap(r.Context(), r.Header.Get("X-Bootstrap-Token"), domain.BootstrapData{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("bootstrapped superadmin",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, user)
}
