package booksdk

import "time"

// ============================================================================
// Error and Health Types
// ============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Success bool `json:"success"`

	// Message is a human-readable description of the failure
	Message string `json:"message"`

	// ErrorCode is stable and machine readable, e.g. "token_revoked"
	ErrorCode string `json:"error_code"`

	// Resolution suggests what the caller can do about it
	Resolution string `json:"resolution,omitempty"`

	// Fields maps offending request fields to reasons on validation errors
	Fields map[string]string `json:"fields,omitempty"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports readiness of each dependency.
type HealthChecks struct {
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

// MessageResponse acknowledges operations without a richer result.
type MessageResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// Auth Types
// ============================================================================

// TokenPair is returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

// EmailRequest carries the address for resend-verification and
// password-reset requests.
type EmailRequest struct {
	Email string `json:"email"`
}

type PasswordResetConfirmRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// SessionsResponse counts the caller's live refresh tokens, one per
// signed-in device.
type SessionsResponse struct {
	ActiveSessions int `json:"active_sessions"`
}

// RevokedEntry is one key of the revocation store.
type RevokedEntry struct {
	Key        string `json:"key"`
	Value      string `json:"value"`
	TTLSeconds int64  `json:"ttl_seconds"`
}

// BootstrapRequest creates the first superadmin.
type BootstrapRequest = SignupRequest

// ============================================================================
// Resource Types
// ============================================================================

type User struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UpdateUserRequest changes a user's role or active flag. Nil fields are
// left untouched.
type UpdateUserRequest struct {
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// Profile is the signed-in user with their own books and reviews.
type Profile struct {
	User
	Books   []Book   `json:"books"`
	Reviews []Review `json:"reviews"`
}

type Book struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id,omitempty"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Publisher     string    `json:"publisher"`
	PublishedDate string    `json:"published_date"`
	PageCount     int       `json:"page_count"`
	Language      string    `json:"language"`
	Rating        int       `json:"rating"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type BookRequest struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Publisher     string `json:"publisher"`
	PublishedDate string `json:"published_date"`
	PageCount     int    `json:"page_count"`
	Language      string `json:"language"`
	Rating        int    `json:"rating"`
}

// UpdateBookRequest is a partial update; nil fields are unchanged.
type UpdateBookRequest struct {
	Title         *string `json:"title,omitempty"`
	Author        *string `json:"author,omitempty"`
	Publisher     *string `json:"publisher,omitempty"`
	PublishedDate *string `json:"published_date,omitempty"`
	PageCount     *int    `json:"page_count,omitempty"`
	Language      *string `json:"language,omitempty"`
	Rating        *int    `json:"rating,omitempty"`
}

// BookDetail is a book with its reviews and tags.
type BookDetail struct {
	Book
	Reviews []Review `json:"reviews"`
	Tags    []Tag    `json:"tags"`
}

type Review struct {
	ID         string    `json:"id"`
	BookID     string    `json:"book_id"`
	UserID     string    `json:"user_id,omitempty"`
	ReviewText string    `json:"review_text"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ReviewRequest struct {
	ReviewText string `json:"review_text"`
	Rating     int    `json:"rating"`
}

type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type TagRequest struct {
	Name string `json:"name"`
}

// TagBookRequest attaches tags to a book by name, creating missing ones.
type TagBookRequest struct {
	Tags []TagRequest `json:"tags"`
}

// Page bounds list requests. Zero values use the server defaults.
type Page struct {
	Limit  int
	Offset int
}
