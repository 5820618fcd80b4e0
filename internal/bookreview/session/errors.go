package session

import (
	"errors"
	"fmt"
)

// Authentication failures. Messages double as the error_code on the wire.
var (
	ErrMissingCredentials    = errors.New("missing_credentials")
	ErrMalformedToken        = errors.New("malformed_token")
	ErrEmptyToken            = fmt.Errorf("empty token: %w", ErrMalformedToken)
	ErrInvalidOrExpiredToken = errors.New("invalid_token")
	ErrTokenRevoked          = errors.New("token_revoked")
	ErrWrongTokenKind        = errors.New("wrong_token_kind")

	ErrInvalidCredentials      = errors.New("invalid_credentials")
	ErrAccountInactive         = errors.New("account_inactive")
	ErrAccountNotVerified      = errors.New("account_not_verified")
	ErrUserNotActive           = errors.New("user_not_active")
	ErrInsufficientPermissions = errors.New("insufficient_permissions")

	// ErrInternal wraps faults in the directory or the revocation store.
	ErrInternal = errors.New("internal_error")
)

func internal(err error) error {
	return fmt.Errorf("%w: %w", ErrInternal, err)
}

// Reason returns the error_code for err, or "internal_error" when err is
// not one of this package's kinds.
func Reason(err error) string {
	for _, kind := range []error{
		ErrMissingCredentials,
		ErrMalformedToken,
		ErrInvalidOrExpiredToken,
		ErrTokenRevoked,
		ErrWrongTokenKind,
		ErrInvalidCredentials,
		ErrAccountInactive,
		ErrAccountNotVerified,
		ErrUserNotActive,
		ErrInsufficientPermissions,
	} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return ErrInternal.Error()
}
