package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	httpapi "github.com/aussiebroadwan/bookreview/internal/bookreview/http"
	"github.com/aussiebroadwan/bookreview/pkg/httpx"
	"github.com/aussiebroadwan/bookreview/pkg/jwtx"
)

var ErrMissingSecret = errors.New("JWT_SECRET_KEY is required")

type Config struct {
	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)
	Port      int    // HTTP server port (default: 8080)

	DatabaseURL       string // Optional: sqlite path or postgres:// URL (default: bookreview.db)
	RevocationBackend string // Optional: redis or memory (default: redis)
	RedisURL          string // Optional: redis:// URL (default: redis://localhost:6379/0)

	JWTSecret       string        // Required: HMAC signing key
	JWTAlgorithm    string        // Optional: HS256, HS384, HS512 (default: HS256)
	JWTIssuer       string        // Optional: iss claim (default: bookreview)
	JWTAudience     string        // Optional: aud claim
	AccessTokenTTL  time.Duration // Optional: (default: 15m)
	RefreshTokenTTL time.Duration // Optional: (default: 7 days)
	JTIExpiry       time.Duration // Optional: revocation marker lifetime when a token's expiry is unknown (default: 1h)

	PepperPath           string // Optional: file holding the password pepper
	RequireVerifiedEmail bool   // Optional: reject logins from unverified accounts (default: true)
	BootstrapToken       string // Optional: if set, enables POST /api/v1/bootstrap

	Domain               string        // Public base URL used in emailed links (default: http://localhost:8080)
	SMTPHost             string        // Optional: unset logs emails instead of sending them
	SMTPPort             int           // Optional: (default: 587)
	SMTPUsername         string        // Optional
	SMTPPassword         string        // Optional
	MailFrom             string        // Optional: (default: Book Review <no-reply@localhost>)
	MailQueueSize        int           // Optional: (default: 100)
	VerificationTokenTTL time.Duration // Optional: (default: 24h)
	ResetTokenTTL        time.Duration // Optional: (default: 30m)

	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)

	RateLimits     httpapi.RateLimits // RATELIMIT_{STRICT,MODERATE,LENIENT}_{REQUESTS,WINDOW,BURST}
	TrustedProxies string             // Optional: comma separated CIDRs whose X-Forwarded-For is believed
}

func LoadConfig() Config {
	cfg := Config{
		Env:       getEnvOrDefault("ENV", "dev"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
		Port:      getEnvIntOrDefault("PORT", 8080),

		DatabaseURL:       getEnvOrDefault("DATABASE_URL", "bookreview.db"),
		RevocationBackend: strings.ToLower(getEnvOrDefault("REVOCATION_BACKEND", "redis")),
		RedisURL:          getEnvOrDefault("REDIS_URL", "redis://localhost:6379/0"),

		JWTSecret:       os.Getenv("JWT_SECRET_KEY"),
		JWTAlgorithm:    getEnvOrDefault("JWT_ALGORITHM", "HS256"),
		JWTIssuer:       getEnvOrDefault("JWT_ISSUER", "bookreview"),
		JWTAudience:     os.Getenv("JWT_AUDIENCE"),
		AccessTokenTTL:  getEnvDurationOrDefault("ACCESS_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTokenTTL: getEnvDurationOrDefault("REFRESH_TOKEN_TTL", jwtx.DefaultRefreshTokenTTL),
		JTIExpiry:       getEnvDurationOrDefault("JTI_EXPIRY", time.Hour),

		PepperPath:           os.Getenv("PEPPER_PATH"),
		RequireVerifiedEmail: getEnvBoolOrDefault("REQUIRE_VERIFIED_EMAIL", true),
		BootstrapToken:       os.Getenv("BOOTSTRAP_TOKEN"),

		Domain:               getEnvOrDefault("DOMAIN", "http://localhost:8080"),
		SMTPHost:             os.Getenv("SMTP_HOST"),
		SMTPPort:             getEnvIntOrDefault("SMTP_PORT", 587),
		SMTPUsername:         os.Getenv("SMTP_USERNAME"),
		SMTPPassword:         os.Getenv("SMTP_PASSWORD"),
		MailFrom:             getEnvOrDefault("MAIL_FROM", "Book Review <no-reply@localhost>"),
		MailQueueSize:        getEnvIntOrDefault("MAIL_QUEUE_SIZE", 100),
		VerificationTokenTTL: getEnvDurationOrDefault("VERIFICATION_TOKEN_TTL", 24*time.Hour),
		ResetTokenTTL:        getEnvDurationOrDefault("RESET_TOKEN_TTL", 30*time.Minute),

		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),

		RateLimits: httpapi.RateLimits{
			Strict:   getEnvRateLimitOrDefault("RATELIMIT_STRICT", httpx.StrictLimit),
			Moderate: getEnvRateLimitOrDefault("RATELIMIT_MODERATE", httpx.ModerateLimit),
			Lenient:  getEnvRateLimitOrDefault("RATELIMIT_LENIENT", httpx.LenientLimit),
		},
		TrustedProxies: os.Getenv("TRUSTED_PROXIES"),
	}

	return cfg
}

// Validate reports settings the service cannot start without.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingSecret
	}
	if _, err := httpx.ParseTrustedProxies(c.TrustedProxies); err != nil {
		return fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

// getEnvRateLimitOrDefault reads <prefix>_REQUESTS, <prefix>_WINDOW and
// <prefix>_BURST. A zero request count disables the profile.
func getEnvRateLimitOrDefault(prefix string, defaultValue httpx.RateLimitConfig) httpx.RateLimitConfig {
	return httpx.RateLimitConfig{
		RequestsPerWindow: getEnvIntOrDefault(prefix+"_REQUESTS", defaultValue.RequestsPerWindow),
		Window:            getEnvDurationOrDefault(prefix+"_WINDOW", defaultValue.Window),
		Burst:             getEnvIntOrDefault(prefix+"_BURST", defaultValue.Burst),
	}
}
