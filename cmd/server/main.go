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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/bookworm/book-inventory/internal/config"
	"github.com/bookworm/book-inventory/internal/handlers"
	"github.com/bookworm/book-inventory/internal/logging"
	mwauth "github.com/bookworm/book-inventory/internal/middleware/auth"
	loggingmw "github.com/bookworm/book-inventory/internal/middleware/logging"
	"github.com/bookworm/book-inventory/internal/mykafka"
	"github.com/bookworm/book-inventory/internal/repo"
	"github.com/bookworm/book-inventory/internal/service"
	"github.com/bookworm/book-inventory/internal/tokens"
	httpserver "github.com/bookworm/book-inventory/internal/transport/http"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	if cfg.UsingDevSecret {
		logger.Warn("JWT_SECRET is not set, using the insecure development fallback")
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	producer := mykafka.NewProducer(cfg.KafkaBrokers)

	gormRepo := &repo.GormRepo{DB: db}
	tokenSvc := tokens.NewService(cfg.JWTSecret)
	authSvc := &service.AuthService{Users: gormRepo, Tokens: tokenSvc}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &handlers.AuthHandler{Svc: authSvc, Producer: producer},
		BookHandler: &handlers.BookHandler{Repo: gormRepo, Producer: producer},
		Gate:        mwauth.NewGate(tokenSvc, gormRepo),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
