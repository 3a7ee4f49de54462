// Command api runs the job board HTTP server.
package main

import (
	"JobBoard-backend/internal/config"
	"JobBoard-backend/internal/server"
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
)

func gracefulShutdown(apiServer *http.Server, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info("shutting down gracefully, press Ctrl+C again to force")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}

	done <- true
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	apiServer, s, err := server.NewServer(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
	defer s.Close()

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, done)

	log.WithField("addr", apiServer.Addr).Info("server listening")
	if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("http server error")
		return
	}

	<-done
	log.Info("graceful shutdown complete")
}
