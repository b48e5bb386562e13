// @title           Todo App
// @version         1.0
// @description     Per-user todo lists behind a session login.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name session_id
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todoapp/internal/app"
	"todoapp/internal/config"
	"todoapp/internal/logging"

	_ "todoapp/docs"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server run into an error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	level := logging.ParseLevel(cfg.Log.Level)
	logs := logging.NewZapLogger("todoapp", level)
	defer func() { _ = logs.Sync() }()
	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Auth.PasswordScheme == config.PasswordSchemePlain {
		logs.Warnw("passwords are stored in plain text; set AUTH_PASSWORD_SCHEME=bcrypt to hash them")
	}
	logs.Infow("config loaded, connecting to DB and Redis", "env", cfg.App.Env, "version", cfg.App.Version)

	application, err := app.New(cfg, logs)
	if err != nil {
		logs.Errorw("app init failed", "error", err)
		return err
	}
	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.HTTP.Port,
		Handler:      application.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout.Duration(),
		WriteTimeout: cfg.HTTP.WriteTimeout.Duration(),
		IdleTimeout:  cfg.HTTP.IdleTimeout.Duration(),
	}

	errChan := make(chan error, 1)
	go func() {
		logs.Infow("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var serveErr error
	select {
	case sig := <-quit:
		logs.Infow("shutting down", "signal", sig.String())
	case serveErr = <-errChan:
		logs.Errorw("HTTP server error", "error", serveErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if err := application.Close(ctx); err != nil {
		return fmt.Errorf("app close: %w", err)
	}
	return serveErr
}

