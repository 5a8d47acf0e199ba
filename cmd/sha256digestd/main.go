// Package main runs the SHA-256 digest HTTP service.
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

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/JakeFAU/sha256digest/internal/api"
	"github.com/JakeFAU/sha256digest/internal/app"
	"github.com/JakeFAU/sha256digest/internal/clock/system"
	"github.com/JakeFAU/sha256digest/internal/config"
	"github.com/JakeFAU/sha256digest/internal/digest"
	"github.com/JakeFAU/sha256digest/internal/id/uuid"
)

const shutdownTimeout = 10 * time.Second

func main() {
	flags := pflag.NewFlagSet("sha256digestd", pflag.ExitOnError)
	cfgPath := flags.String("config", "", "Path to config file")
	flags.Int("port", 8080, "HTTP listen port")
	flags.Bool("dev", false, "Use development logging")
	flags.IntP("concurrency", "c", 0, "Digests computed in parallel per batch")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(*cfgPath, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	application, err := app.NewApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "app init failed: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()
	logger := application.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	apiServer := api.NewServer(
		application.NewDispatcher(digest.SourceAPI),
		uuid.New(),
		system.New(),
		cfg,
		logger.Named("api"),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server started", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
