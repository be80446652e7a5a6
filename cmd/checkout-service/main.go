package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/est-ai/checkout-service/internal/api"
	"github.com/est-ai/checkout-service/internal/auth"
	"github.com/est-ai/checkout-service/internal/catalog"
	stripeclient "github.com/est-ai/checkout-service/internal/client/stripe"
	"github.com/est-ai/checkout-service/internal/config"
	"github.com/est-ai/checkout-service/internal/db"
	"github.com/est-ai/checkout-service/internal/mail"
	"github.com/est-ai/checkout-service/internal/service"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	cat := catalog.New(config.PriceRefs())
	if err := cat.Validate(); err != nil {
		// Checkout for the affected course fails with a configuration error;
		// everything else keeps working.
		logger.Warn("incomplete catalog configuration", zap.Error(err))
	}

	store, err := db.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}

	payments := stripeclient.NewClient(stripeclient.ClientConfig{
		SecretKey: cfg.Stripe.SecretKey,
	}, logger)

	var mailer mail.Mailer
	if cfg.MailEnabled() {
		mailer = mail.NewSendGridMailer(cfg.Mail, logger)
	} else {
		logger.Warn("mail provider not configured, confirmation emails disabled")
	}

	fulfillment := service.NewFulfillment(store, mailer, logger)

	var accounts api.AccountService
	if cfg.AuthEnabled() {
		authService, err := auth.NewService(context.Background(), cfg.Auth, logger)
		if err != nil {
			logger.Fatal("failed to initialize auth service", zap.Error(err))
		}
		defer func() { _ = authService.Close() }()
		accounts = authService
	}

	handlers := api.New(api.Config{
		WebhookSecret: cfg.Stripe.WebhookSecret,
		PublicOrigin:  cfg.Server.PublicOrigin,
	}, cat, payments, fulfillment, store, accounts, logger)

	router := mux.NewRouter()
	handlers.Configure(router)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","service":"checkout-service"}`))
	}).Methods(http.MethodGet)

	router.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.Server.StaticDir))))

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet, http.MethodOptions, http.MethodPatch,
			http.MethodDelete, http.MethodPost, http.MethodPut,
		},
		AllowedHeaders: []string{
			"X-CSRF-Token", "X-Requested-With", "Accept", "Accept-Version",
			"Content-Length", "Content-MD5", "Content-Type", "Date",
			"X-Api-Version", "Stripe-Signature", "Authorization",
		},
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: corsMiddleware.Handler(router),
	}

	go func() {
		logger.Info("checkout service starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
