package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"

	"github.com/smesner/contactsweb/internal/api"
	"github.com/smesner/contactsweb/internal/config"
	"github.com/smesner/contactsweb/internal/directory"
	"github.com/smesner/contactsweb/internal/notify"
	"github.com/smesner/contactsweb/internal/pkg/logger"
	"github.com/smesner/contactsweb/internal/ratelimit"
	"github.com/smesner/contactsweb/internal/repository/postgres"
	"github.com/smesner/contactsweb/internal/service/contact"
)

func main() {
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger.SetLevel(logger.ParseLevel(cfg.Logging.Level))
	if cfg.Logging.RedactPII != nil {
		logger.SetRedactPII(*cfg.Logging.RedactPII)
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = db.PingContext(pingCtx)
	cancel()
	if err != nil {
		log.Fatalf("ping database: %v", err)
	}
	logger.Info("database connected")

	repo := postgres.NewContactRepo(db)

	var limiter contact.RateLimiter
	switch cfg.RateLimit.Backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RateLimit.RedisAddr})
		defer rdb.Close()
		limiter = ratelimit.NewRedisLimiter(rdb, cfg.RateLimit.Window())
		logger.Info("rate limiter ready", "backend", "redis", "addr", cfg.RateLimit.RedisAddr)
	default:
		limiter = contact.NewHistoryLimiter(repo, cfg.RateLimit.Window())
		logger.Info("rate limiter ready", "backend", "history")
	}

	lookup := directory.NewClient(cfg.Directory.BaseURL,
		time.Duration(cfg.Directory.TimeoutSeconds)*time.Second)

	mailer := notify.NewMailer(notify.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		StartTLS: cfg.SMTP.StartTLS,
		From:     notify.Identity(cfg.SMTP.From),
		To:       notify.Identity(cfg.SMTP.To),
		Timeout:  time.Duration(cfg.SMTP.TimeoutSeconds) * time.Second,
	})

	svc := contact.NewService(repo, limiter, lookup, mailer, cfg.Contacts.BizSuffix)
	srv := api.NewServer(cfg.Server, api.NewHandlers(svc))

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("server: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("shutdown signal received", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown incomplete", "error", err)
	}
	logger.Info("server stopped")
}
