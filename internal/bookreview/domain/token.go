package domain

import "time"

// TokenTypeBearer is the token_type returned with every token pair.
const TokenTypeBearer = "bearer"

// TokenPair is returned by login and refresh. RefreshToken is always set by
// both today, the field stays optional on the wire.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

// Message is the acknowledgement returned by logout and revoke-all.
type Message struct {
	Message string `json:"message"`
}

// TokenPurpose scopes a one-time token to a single flow.
type TokenPurpose string

const (
	PurposeEmailVerification TokenPurpose = "email_verification"
	PurposePasswordReset     TokenPurpose = "password_reset"
)

// OneTimeToken is the stored half of an emailed link. Only the fingerprint
// of the token is kept.
type OneTimeToken struct {
	ID        string
	UserID    string
	Purpose   TokenPurpose
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}
