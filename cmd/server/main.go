package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventinvite/config"
	"eventinvite/internal/adapters/email"
	httpdelivery "eventinvite/internal/delivery/http"
	"eventinvite/internal/delivery/http/controllers"
	"eventinvite/internal/delivery/http/middleware"
	"eventinvite/internal/idcodec"
	"eventinvite/internal/repository/filestore"
	"eventinvite/internal/services"
)

func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	ids, err := idcodec.New()
	if err != nil {
		logger.Error("failed to initialize id codec", "err", err)
		os.Exit(1)
	}

	store := filestore.New(cfg.DBFile, logger)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mailer.Provider,
		FromAddress: cfg.Mailer.FromAddress,
		FromName:    cfg.Mailer.FromName,
		SES: email.SESConfig{
			Region:             cfg.Mailer.SESRegion,
			AccessKeyID:        cfg.Mailer.SESAccessKeyID,
			SecretAccessKey:    cfg.Mailer.SESSecretAccessKey,
			InsecureSkipVerify: cfg.Mailer.InsecureSkipVerify,
		},
	})
	if err != nil {
		logger.Error("failed to initialize mailer", "err", err)
		os.Exit(1)
	}
	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer())

	eventSvc := services.NewEventService(store, ids, cfg.BaseURL)
	inviteSvc := services.NewInvitationService(store, ids, emailSvc, logger, cfg.BaseURL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	purger := services.NewPurger(store, logger, cfg.PurgePeriod, cfg.EventLifetime, cfg.PurgeRetry)
	go purger.Run(ctx)

	eventCtrl := controllers.NewEventController(logger, eventSvc)
	inviteCtrl := controllers.NewInviteController(logger, inviteSvc)

	var handler http.Handler = httpdelivery.NewRouter(eventCtrl, inviteCtrl)
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.RequestID(handler)
	if len(cfg.CORSAllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment, "db_file", cfg.DBFile)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
