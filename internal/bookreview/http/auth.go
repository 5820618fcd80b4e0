package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/domain"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/mail"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/revocation"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/service"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/session"
	"github.com/aussiebroadwan/bookreview/pkg/booksdk"
	"github.com/aussiebroadwan/bookreview/pkg/httpx"
)

// RevocationInspector is the read-only view of the revocation store used by
// the session endpoints.
type RevocationInspector interface {
	ActiveRefresh(ctx context.Context, uid string) ([]string, error)
	ListRevoked(ctx context.Context) ([]revocation.RevokedEntry, error)
}

type AuthHandler struct {
	Accounts    *service.AccountService
	Sessions    *session.Authority
	Revocations RevocationInspector

	// HomeURL is linked from the page shown after email verification.
	HomeURL string
}

// HandleSignup registers a new account.
//
//	@Summary		Sign up
//	@Description	Creates an account with the user role and emails a verification link.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		booksdk.SignupRequest	true	"Account details"
//	@Success		201		{object}	booksdk.User
//	@Failure		400		{object}	booksdk.ErrorResponse	"Validation failed"
//	@Failure		409		{object}	booksdk.ErrorResponse	"Email or username taken"
//	@Router			/api/v1/auth/signup [post].
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req booksdk.SignupRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.Accounts.Signup(r.Context(), domain.Signup{
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
	httpx.WriteJSON(w, http.StatusCreated, user)
}

// HandleLogin exchanges credentials for a token pair.
//
//	@Summary		Log in
//	@Description	Verifies the password and returns an access and a refresh token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		booksdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	booksdk.TokenPair
//	@Failure		400		{object}	booksdk.ErrorResponse	"Invalid credentials"
//	@Failure		403		{object}	booksdk.ErrorResponse	"Account inactive or not verified"
//	@Router			/api/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req booksdk.LoginRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	pair, err := h.Sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, pair)
}

// HandleRefresh rotates the presented refresh token.
//
//	@Summary		Refresh tokens
//	@Description	Consumes the refresh token in the Authorization header and returns a new pair. Each refresh token works once.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	booksdk.TokenPair
//	@Failure		401	{object}	booksdk.ErrorResponse	"Missing, invalid, revoked or wrong kind of token"
//	@Failure		403	{object}	booksdk.ErrorResponse	"User no longer active"
//	@Router			/api/v1/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	pair, err := h.Sessions.Refresh(r.Context(), claimsOf(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, pair)
}

// HandleLogout revokes the access token and all of the user's refresh tokens.
//
//	@Summary		Log out
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	booksdk.MessageResponse
//	@Failure		401	{object}	booksdk.ErrorResponse
//	@Router			/api/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	msg, err := h.Sessions.Logout(r.Context(), claimsOf(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, msg)
}

// HandleRevokeAll signs the user out of every device.
//
//	@Summary		Revoke all refresh tokens
//	@Description	The presented access token stays valid until it expires.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	booksdk.MessageResponse
//	@Failure		401	{object}	booksdk.ErrorResponse
//	@Router			/api/v1/auth/revoke-all [post].
func (h *AuthHandler) HandleRevokeAll(w http.ResponseWriter, r *http.Request) {
	msg, err := h.Sessions.RevokeAll(r.Context(), claimsOf(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, msg)
}

// HandleMe returns the caller's profile.
//
//	@Summary		Current user
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	booksdk.Profile
//	@Failure		401	{object}	booksdk.ErrorResponse
//	@Router			/api/v1/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Accounts.Me(r.Context(), actor(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, profile)
}

// HandleSessions counts the caller's live refresh tokens.
//
//	@Summary		Active sessions
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	booksdk.SessionsResponse
//	@Router			/api/v1/auth/sessions [get].
func (h *AuthHandler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	jtis, err := h.Revocations.ActiveRefresh(r.Context(), actor(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, booksdk.SessionsResponse{ActiveSessions: len(jtis)})
}

// HandleListRevoked dumps the revocation store.
//
//	@Summary		List revoked tokens
//	@Description	Debugging aid. Superadmin only.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		booksdk.RevokedEntry
//	@Failure		403	{object}	booksdk.ErrorResponse
//	@Router			/api/v1/auth/revoked [get].
func (h *AuthHandler) HandleListRevoked(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Revocations.ListRevoked(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]booksdk.RevokedEntry, len(entries))
	for i, e := range entries {
		out[i] = booksdk.RevokedEntry{Key: e.Key, Value: e.Value, TTLSeconds: int64(e.TTL.Seconds())}
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleVerifyEmail consumes a verification link and shows a confirmation
// page.
//
//	@Summary		Verify email
//	@Tags			Account
//	@Produce		html
//	@Param			token	path		string	true	"Token from the emailed link"
//	@Success		200		{string}	string	"Confirmation page"
//	@Failure		400		{object}	booksdk.ErrorResponse	"Invalid or expired link"
//	@Router			/api/v1/auth/verify/{token} [get].
func (h *AuthHandler) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	if err := h.Accounts.VerifyEmail(r.Context(), r.PathValue("token")); err != nil {
		writeError(w, r, err)
		return
	}

	page, err := mail.VerifiedPage(h.HomeURL)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(page))
}

// HandleResendVerification always answers 202 so the endpoint cannot be used
// to discover accounts.
//
//	@Summary		Resend verification email
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Param			request	body		booksdk.EmailRequest	true	"Account email"
//	@Success		202		{object}	booksdk.MessageResponse
//	@Router			/api/v1/auth/verify/resend [post].
func (h *AuthHandler) HandleResendVerification(w http.ResponseWriter, r *http.Request) {
	var req booksdk.EmailRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Accounts.ResendVerification(r.Context(), req.Email); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusAccepted, booksdk.MessageResponse{
		Message: "If the account exists and is unverified, a new link has been sent",
	})
}

// HandlePasswordReset answers 202 whether or not the account exists.
//
//	@Summary		Request password reset
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Param			request	body		booksdk.EmailRequest	true	"Account email"
//	@Success		202		{object}	booksdk.MessageResponse
//	@Router			/api/v1/auth/password-reset [post].
func (h *AuthHandler) HandlePasswordReset(w http.ResponseWriter, r *http.Request) {
	var req booksdk.EmailRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Accounts.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusAccepted, booksdk.MessageResponse{
		Message: "If the account exists, a password reset link has been sent",
	})
}

// HandleCheckResetToken lets a client validate an emailed reset link before
// asking for the new password.
//
//	@Summary		Check password reset link
//	@Tags			Account
//	@Produce		json
//	@Param			token	path		string	true	"Token from the emailed link"
//	@Success		200		{object}	booksdk.MessageResponse
//	@Failure		400		{object}	booksdk.ErrorResponse	"Invalid or expired link"
//	@Router			/api/v1/auth/password-reset/{token} [get].
func (h *AuthHandler) HandleCheckResetToken(w http.ResponseWriter, r *http.Request) {
	if err := h.Accounts.CheckResetToken(r.Context(), r.PathValue("token")); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, booksdk.MessageResponse{Message: "Reset link is valid"})
}

// HandleConfirmPasswordReset sets the new password and signs the account out
// everywhere.
//
//	@Summary		Confirm password reset
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Param			request	body		booksdk.PasswordResetConfirmRequest	true	"Token and new password"
//	@Success		200		{object}	booksdk.MessageResponse
//	@Failure		400		{object}	booksdk.ErrorResponse	"Invalid link, mismatch or weak password"
//	@Router			/api/v1/auth/password-reset/confirm [post].
func (h *AuthHandler) HandleConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req booksdk.PasswordResetConfirmRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Accounts.ResetPassword(r.Context(), req.Token, req.Password, req.ConfirmPassword); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, booksdk.MessageResponse{Message: "Password has been reset"})
}
