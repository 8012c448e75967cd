// @title Class Registration API
// @version 1.0
// @description Event listing, registration, payment and hosted checkout for the New Retirement Rules class.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"classregistration/config"
	_ "classregistration/docs"
	"classregistration/internal/adapters/auth"
	"classregistration/internal/adapters/email"
	"classregistration/internal/adapters/stripe"
	deliveryhttp "classregistration/internal/delivery/http"
	"classregistration/internal/delivery/http/controllers"
	"classregistration/internal/repository/postgres"
	"classregistration/internal/services"
	"classregistration/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := config.NewLogger(os.Stdout, cfg.Environment, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Connect(ctx, cfg.DBUrl, logger)
	switch {
	case errors.Is(err, postgres.ErrUnavailable):
		// Events fall back to the catalog until the database answers.
		logger.Warn("starting without database", "err", err)
		go func() {
			if err := postgres.MigrateWhenReady(ctx, db, logger, 5*time.Second); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("migrations failed", "err", err)
			}
		}()
	case err != nil:
		logger.Error("database connection failed", "err", err)
		os.Exit(1)
	default:
		if err := postgres.RunMigrations(ctx, db); err != nil {
			logger.Error("migrations failed", "err", err)
			os.Exit(1)
		}
	}
	defer db.Close()

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	reconciliationRepo := postgres.NewReconciliationRepository(db)

	// Adapters
	mailer := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AWSAccessKeyID,
			SecretAccessKey: cfg.Email.AWSSecretAccessKey,
		},
	}, logger)
	checkoutProvider := stripe.NewCheckoutProvider(cfg.StripeSecretKey)
	validator := validation.New()

	// Services
	timeout := cfg.DBQueryTimeout
	eventLookup := services.NewEventLookupService(eventRepo, logger, timeout)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	registrationService := services.NewRegistrationService(registrationRepo, eventLookup, validator, logger, timeout)
	paymentService := services.NewPaymentService(registrationRepo, paymentRepo, reconciliationRepo, eventLookup, emailService, validator, logger, timeout)
	checkoutService := services.NewCheckoutService(checkoutProvider, cfg.PublicBaseURL, logger, timeout)

	routerCfg := deliveryhttp.RouterConfig{
		Logger:             logger,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Events:             controllers.NewEventController(logger, eventLookup),
		Registrations:      controllers.NewRegistrationController(logger, registrationService),
		Payments:           controllers.NewPaymentController(logger, paymentService),
		Checkout:           controllers.NewCheckoutController(logger, checkoutService),
	}
	if cfg.AdminEnabled() {
		adminAuth := services.NewAdminAuthService(cfg.AdminPasswordHash, auth.NewBcryptVerifier(), auth.NewJWTIssuer(cfg.JWTSecret), cfg.AdminTokenTTL, logger)
		reconciliationService := services.NewReconciliationService(reconciliationRepo, registrationRepo, logger, timeout)
		routerCfg.Admin = controllers.NewAdminController(logger, adminAuth, reconciliationService)
		routerCfg.TokenVerifier = auth.NewJWTVerifier(cfg.JWTSecret)
	} else {
		logger.Info("operator endpoints disabled", "reason", "JWT_SECRET or ADMIN_PASSWORD_HASH not set")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           deliveryhttp.NewRouter(routerCfg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
	logger.Info("server stopped")
}
