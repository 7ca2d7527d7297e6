package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vacation-menu-api/ai"
	"vacation-menu-api/config"
	"vacation-menu-api/handlers"
	"vacation-menu-api/logging"
	"vacation-menu-api/middleware"
	"vacation-menu-api/repository"
	"vacation-menu-api/routes"
	"vacation-menu-api/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "token" {
		if err := runToken(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "token:", err)
			os.Exit(1)
		}
		return
	}

	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// runToken prints a bearer token signed with JWT_SECRET.
func runToken(args []string) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	subject := fs.String("subject", "household", "token subject")
	ttl := fs.Duration("ttl", 30*24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	token, err := middleware.GenerateToken(cfg.JWTSecret, *subject, *ttl)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := logging.Setup(cfg.LogLevel)

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	if err := handlers.RegisterValidators(); err != nil {
		return fmt.Errorf("register validators: %w", err)
	}

	db, err := config.OpenDatabase(cfg.DBPath)
	if err != nil {
		return err
	}
	defer config.CloseDatabase(db)
	logger.Info("database ready", "path", cfg.DBPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen, err := ai.NewGenerator(ctx, cfg.LLM)
	if err != nil {
		logger.Warn("AI suggestions disabled", "provider", cfg.LLM.Provider, "reason", err)
		gen = ai.DisabledGenerator{Reason: err}
	} else {
		logger.Info("AI provider configured", "provider", cfg.LLM.Provider)
	}
	if closer, ok := gen.(ai.Closer); ok {
		defer closer.Close()
	}

	gateway := ai.NewGateway(gen, logger.With("component", "ai_gateway"))
	svc := services.New(repository.NewGorm(db), gateway, logger)

	limiter := middleware.NewRateLimiter(cfg.AIRateLimitPerMinute)
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				limiter.Cleanup(10 * time.Minute)
			}
		}
	}()

	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET not set, API is unauthenticated")
	}

	router := routes.NewRouter(handlers.New(svc), routes.Options{
		JWTSecret: cfg.JWTSecret,
		AILimiter: limiter,
	},
		cors.New(corsConfig(cfg.CORSOrigins)),
		middleware.RequestLogger(logger),
		middleware.ErrorHandler(logger),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}
