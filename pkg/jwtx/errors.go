package jwtx

import (
	"errors"
	"fmt"
)

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrEmpty      = fmt.Errorf("jwtx: empty token: %w", ErrMalformed)
	ErrInvalidSig = errors.New("jwtx: invalid signature")

	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrAudience     = errors.New("jwtx: audience mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")

	ErrWeakSecret     = errors.New("jwtx: signing secret is empty")
	ErrUnsupportedAlg = errors.New("jwtx: unsupported signing algorithm")
	ErrInvalidTTL     = errors.New("jwtx: invalid token lifetime")
)
