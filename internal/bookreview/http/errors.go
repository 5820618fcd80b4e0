package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/service"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/session"
	"github.com/aussiebroadwan/bookreview/pkg/booksdk"
	"github.com/aussiebroadwan/bookreview/pkg/httpx"
	"github.com/aussiebroadwan/bookreview/pkg/slogx"
)

var (
	errInvalidRequest = errors.New("invalid_request")
	errNotFound       = errors.New("not_found")
)

// apiError describes how one error kind is presented.
type apiError struct {
	kind       error
	status     int
	message    string
	resolution string
}

// errorTable is matched in order with errors.Is; the first hit wins.
var errorTable = []apiError{
	{session.ErrMissingCredentials, http.StatusUnauthorized,
		"Authentication credentials were not provided",
		"Send an Authorization: Bearer <token> header"},
	{session.ErrMalformedToken, http.StatusUnauthorized,
		"The bearer token is malformed",
		"Send the token exactly as it was issued"},
	{session.ErrInvalidOrExpiredToken, http.StatusUnauthorized,
		"The token is invalid or has expired",
		"Refresh your tokens or log in again"},
	{session.ErrTokenRevoked, http.StatusUnauthorized,
		"The token has been revoked",
		"Log in again"},
	{session.ErrWrongTokenKind, http.StatusUnauthorized,
		"This endpoint does not accept this kind of token",
		"Use the access token for API calls and the refresh token only for /auth/refresh"},
	{session.ErrInvalidCredentials, http.StatusBadRequest,
		"Invalid email or password",
		"Check your credentials and try again"},
	{session.ErrAccountInactive, http.StatusForbidden,
		"This account has been deactivated",
		"Contact an administrator"},
	{session.ErrAccountNotVerified, http.StatusForbidden,
		"This account's email address has not been verified",
		"Follow the link in the verification email or request a new one"},
	{session.ErrUserNotActive, http.StatusForbidden,
		"The user is no longer active",
		"Contact an administrator"},
	{session.ErrInsufficientPermissions, http.StatusForbidden,
		"You do not have permission to perform this action", ""},

	{service.ErrValidation, http.StatusBadRequest,
		"The request failed validation",
		"Correct the listed fields and try again"},
	{errInvalidRequest, http.StatusBadRequest,
		"The request body must be a single valid JSON object", ""},
	{service.ErrForbidden, http.StatusForbidden,
		"You do not have permission to perform this action", ""},
	{service.ErrUserNotFound, http.StatusNotFound, "User not found", ""},
	{service.ErrBookNotFound, http.StatusNotFound, "Book not found", ""},
	{service.ErrReviewNotFound, http.StatusNotFound, "Review not found", ""},
	{service.ErrTagNotFound, http.StatusNotFound, "Tag not found", ""},
	{service.ErrUserAlreadyExists, http.StatusConflict,
		"A user with this email or username already exists",
		"Log in, or reset your password if you have forgotten it"},
	{service.ErrTagAlreadyExists, http.StatusConflict, "A tag with this name already exists", ""},
	{service.ErrTokenInvalid, http.StatusBadRequest,
		"The link is invalid or has expired",
		"Request a new link"},
	{service.ErrPasswordMismatch, http.StatusBadRequest,
		"The passwords do not match", ""},

	{service.ErrBootstrapDisabled, http.StatusNotFound,
		"Bootstrap endpoint is not enabled", ""},
	{service.ErrBootstrapUnauthorized, http.StatusUnauthorized,
		"Invalid bootstrap token",
		"Send the configured token in the X-Bootstrap-Token header"},
	{service.ErrBootstrapAlready, http.StatusConflict,
		"System has already been bootstrapped", ""},
	{errNotFound, http.StatusNotFound, "Not found", ""},
}

var internalError = apiError{
	kind:    session.ErrInternal,
	status:  http.StatusInternalServerError,
	message: "An internal error occurred",
}

func classify(err error) apiError {
	for _, e := range errorTable {
		if errors.Is(err, e.kind) {
			return e
		}
	}
	return internalError
}

// writeError renders err as the service's error body. Unclassified errors
// are logged and hidden behind a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	e := classify(err)

	body := booksdk.ErrorResponse{
		Success:    false,
		Message:    e.message,
		ErrorCode:  e.kind.Error(),
		Resolution: e.resolution,
	}

	var ve *service.ValidationError
	if errors.As(err, &ve) {
		body.Fields = map[string]string{ve.Field: ve.Reason}
	}

	if e.status == http.StatusInternalServerError {
		slogx.FromContext(r.Context()).Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}
	if e.status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	}

	httpx.WriteJSON(w, e.status, body)
}
