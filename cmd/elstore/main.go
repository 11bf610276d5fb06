package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"elstore/internal/config"
	"elstore/internal/handler"
	"elstore/internal/mw"
	"elstore/internal/notify"
	"elstore/internal/service"
	"elstore/internal/store"
	"elstore/internal/worker"
)

func main() {
	cfg := config.New()

	orderStore, closeStore, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to connect to DB", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	var mailer notify.Mailer
	if cfg.SMTPConfigured() {
		mailer = notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	} else {
		slog.Info("SMTP not configured, email notifications disabled")
	}

	// Services
	notifyWorker := worker.NewNotifyWorker(mailer, 64)
	authSvc := service.NewAuthService(cfg)
	orderSvc := service.NewOrderService(orderStore, notifyWorker)

	// Router
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public routes
	r.Post("/api/auth/login", handler.LoginHandler(authSvc))
	r.Post("/api/orders", handler.CreateOrderHandler(orderSvc))
	r.Get("/api/orders", handler.ListOrdersHandler(orderSvc))
	r.Post("/api/webhook/payment", handler.PaymentWebhookHandler(orderSvc))
	r.Get("/api/health", handler.HealthHandler(orderStore))

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(mw.AdminAuth(authSvc))

		r.Post("/api/orders/verify", handler.VerifyOrderHandler(orderSvc))
	})

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go notifyWorker.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	slog.Info("starting server", "addr", cfg.RunAddress)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-quit
	slog.Info("shutting down...")

	cancel() // stop worker
	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	slog.Info("server stopped")
}

func openStore(cfg *config.Config) (store.OrderStore, func(), error) {
	if strings.HasPrefix(cfg.DatabaseURI, "mongodb") {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		db, err := store.ConnectMongo(ctx, cfg.DatabaseURI, cfg.DatabaseName)
		if err != nil {
			return nil, nil, err
		}

		closeFn := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := db.Client().Disconnect(ctx); err != nil {
				slog.Error("failed to disconnect MongoDB", "error", err)
			}
		}
		return store.NewMongoStore(db), closeFn, nil
	}

	db, err := store.ConnectPostgres(cfg.DatabaseURI)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		if err := db.Close(); err != nil {
			slog.Error("failed to close DB", "error", err)
		}
	}
	return store.NewPostgresStore(db), closeFn, nil
}
