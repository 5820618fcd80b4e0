package booksdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes returned in ErrorResponse.ErrorCode.
const (
	CodeMissingCredentials      = "missing_credentials"
	CodeMalformedToken          = "malformed_token"
	CodeInvalidToken            = "invalid_token"
	CodeTokenRevoked            = "token_revoked"
	CodeWrongTokenKind          = "wrong_token_kind"
	CodeInvalidCredentials      = "invalid_credentials"
	CodeAccountInactive         = "account_inactive"
	CodeAccountNotVerified      = "account_not_verified"
	CodeUserNotActive           = "user_not_active"
	CodeInsufficientPermissions = "insufficient_permissions"
	CodeInternalError           = "internal_error"

	CodeInvalidRequest      = "invalid_request"
	CodeValidationError     = "validation_error"
	CodeForbidden           = "forbidden"
	CodeNotFound            = "not_found"
	CodeUserAlreadyExists   = "user_already_exists"
	CodeInvalidLink         = "invalid_or_expired_link"
	CodePasswordMismatch    = "password_mismatch"
	CodeTagAlreadyExists    = "tag_already_exists"
	CodeAlreadyBootstrapped = "already_bootstrapped"
	CodeRateLimited         = "rate_limit_exceeded"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Resolution string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.StatusCode, e.Message)
}

// parseErrorResponse turns an error body into an *APIError. Bodies that are
// not in the service's format still yield an APIError keyed on the status.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.ErrorCode != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       errResp.ErrorCode,
			Message:    errResp.Message,
			Resolution: errResp.Resolution,
			Fields:     errResp.Fields,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       CodeInternalError,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
