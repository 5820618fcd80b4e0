package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation_error")
	ErrForbidden         = errors.New("forbidden")
	ErrUserNotFound      = errors.New("user_not_found")
	ErrUserAlreadyExists = errors.New("user_already_exists")
	ErrTokenInvalid      = errors.New("invalid_or_expired_link")
	ErrPasswordMismatch  = errors.New("password_mismatch")
	ErrBookNotFound      = errors.New("book_not_found")
	ErrReviewNotFound    = errors.New("review_not_found")
	ErrTagNotFound       = errors.New("tag_not_found")
	ErrTagAlreadyExists  = errors.New("tag_already_exists")
)

// ValidationError names the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
