package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/bookreview/internal/bookreview/http"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/mail"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/metrics"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/revocation"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/service"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/session"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/store"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/store/drivers/postgres"
	"github.com/aussiebroadwan/bookreview/internal/bookreview/store/drivers/sqlite"
	"github.com/aussiebroadwan/bookreview/pkg/cryptox"
	"github.com/aussiebroadwan/bookreview/pkg/httpx"
	"github.com/aussiebroadwan/bookreview/pkg/jwtx"
	"github.com/aussiebroadwan/bookreview/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Option customises an Application before its dependencies are built.
type Option func(*Application)

// WithMailer replaces the SMTP or log mailer chosen from the config.
func WithMailer(m mail.Mailer) Option {
	return func(app *Application) { app.mailer = m }
}

// WithLogger replaces the logger built from the config.
func WithLogger(l *slog.Logger) Option {
	return func(app *Application) { app.logger = l }
}

// Application encapsulates the book review service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db          store.Store
	revocations *revocation.Store
	codec       *jwtx.Codec
	hasher      *cryptox.Hasher
	metrics     *metrics.Metrics
	mailer      mail.Mailer
	outbox      *mail.Dispatcher

	// Session layer
	gate      *session.Gate
	authority *session.Authority

	// Services
	accountService      *service.AccountService
	userService         *service.UserService
	bookService         *service.BookService
	reviewService       *service.ReviewService
	tagService          *service.TagService
	bootstrapService    *service.BootstrapService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router

	started bool
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config, opts ...Option) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{cfg: cfg}
	for _, opt := range opts {
		opt(app)
	}
	if app.logger == nil {
		app.logger = slogx.New(slogx.Config{
			Service: "bookreview",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		})
	}

	ctx := context.Background()

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}
	if err := app.initRevocations(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	if err := app.initSecurity(); err != nil {
		app.closeStores()
		return nil, err
	}

	app.initMail()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler returns the fully wired HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Start launches the background workers. Run calls it; tests serving
// Handler directly call it themselves.
func (app *Application) Start() {
	if app.started {
		return
	}
	app.started = true
	app.outbox.Start()
	app.housekeepingService.Start()
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.Start()

	app.logger.Info("bookreview service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down bookreview service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	return app.Close()
}

// Close stops the background workers and releases the stores.
func (app *Application) Close() error {
	if app.started {
		app.housekeepingService.Stop()

		// Queued emails are delivered before the dispatcher returns
		app.outbox.Stop()
	}

	if err := app.revocations.Close(); err != nil {
		app.logger.Error("error closing revocation cache", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("bookreview service stopped")
	return nil
}

func (app *Application) closeStores() {
	_ = app.revocations.Close()
	_ = app.db.Close()
}

// initDatabase opens the store selected by DATABASE_URL and applies
// migrations.
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)
	url := app.cfg.DatabaseURL
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		db, err = postgres.NewStore(ctx, url)
	} else {
		db, err = sqlite.NewStore(url)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initRevocations connects the revocation cache.
func (app *Application) initRevocations(ctx context.Context) error {
	var cache revocation.Cache
	switch app.cfg.RevocationBackend {
	case "memory":
		cache = revocation.NewMemoryCache()
		app.logger.Warn("using in-memory revocation store; revocations are lost on restart")
	case "redis":
		rc, err := revocation.NewRedisCache(app.cfg.RedisURL)
		if err != nil {
			return err
		}
		if err := rc.Init(ctx); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		cache = rc
	default:
		return fmt.Errorf("unknown REVOCATION_BACKEND %q", app.cfg.RevocationBackend)
	}

	app.revocations = revocation.NewStore(cache, revocation.WithJTIExpiry(app.cfg.JTIExpiry))
	return nil
}

// initSecurity builds the token codec and password hasher.
func (app *Application) initSecurity() error {
	codec, err := jwtx.NewCodec(jwtx.CodecOptions{
		Secret:     []byte(app.cfg.JWTSecret),
		Algorithm:  app.cfg.JWTAlgorithm,
		Issuer:     app.cfg.JWTIssuer,
		Audience:   app.cfg.JWTAudience,
		AccessTTL:  app.cfg.AccessTokenTTL,
		RefreshTTL: app.cfg.RefreshTokenTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize token codec: %w", err)
	}
	app.codec = codec

	pepper, err := cryptox.LoadPepper(app.cfg.PepperPath)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}
	if pepper == "" {
		app.logger.Warn("no password pepper configured")
	}
	app.hasher = cryptox.NewHasher(pepper)
	app.metrics = metrics.New()
	return nil
}

// initMail picks SMTP delivery when a relay is configured, logging otherwise.
func (app *Application) initMail() {
	if app.mailer == nil {
		if app.cfg.SMTPHost != "" {
			app.mailer = &mail.SMTPMailer{
				Host:     app.cfg.SMTPHost,
				Port:     app.cfg.SMTPPort,
				Username: app.cfg.SMTPUsername,
				Password: app.cfg.SMTPPassword,
				From:     app.cfg.MailFrom,
			}
		} else {
			app.mailer = mail.LogMailer{Logger: app.logger}
		}
	}
	app.outbox = mail.NewDispatcher(app.mailer, app.logger, app.cfg.MailQueueSize)
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.gate = &session.Gate{
		Codec:       app.codec,
		Revocations: app.revocations,
		Metrics:     app.metrics,
	}
	app.authority = &session.Authority{
		Codec:           app.codec,
		Revocations:     app.revocations,
		Directory:       session.StoreDirectory{Store: app.db},
		Hasher:          app.hasher,
		RequireVerified: app.cfg.RequireVerifiedEmail,
		Metrics:         app.metrics,
	}

	app.accountService = &service.AccountService{
		Store:           app.db,
		Hasher:          app.hasher,
		Sessions:        app.authority,
		Outbox:          app.outbox,
		BaseURL:         app.cfg.Domain,
		VerificationTTL: app.cfg.VerificationTokenTTL,
		ResetTTL:        app.cfg.ResetTokenTTL,
	}
	app.userService = &service.UserService{Store: app.db, Sessions: app.authority}
	app.bookService = &service.BookService{Store: app.db}
	app.reviewService = &service.ReviewService{Store: app.db}
	app.tagService = &service.TagService{Store: app.db}
	app.bootstrapService = &service.BootstrapService{
		Store:  app.db,
		Hasher: app.hasher,
		Token:  app.cfg.BootstrapToken,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	limits := app.cfg.RateLimits
	// Validate has already rejected a malformed list
	limits.TrustedProxies, _ = httpx.ParseTrustedProxies(app.cfg.TrustedProxies)

	router := httpapi.NewRouter(
		app.gate,
		BuildVersion,
		app.db,
		app.revocations,
		app.metrics,
		limits,
		app.logger,
	)

	// Wire services to router
	router.Accounts = app.accountService
	router.Sessions = app.authority
	router.Revocations = app.revocations
	router.UserService = app.userService
	router.BookService = app.bookService
	router.ReviewService = app.reviewService
	router.TagService = app.tagService
	router.BootstrapService = app.bootstrapService
	router.HomeURL = app.cfg.Domain
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
