package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/api/handler"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/api/handler/router"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/config"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/scheduler"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/usecases/catalog"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/usecases/reporting"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/usecases/syncing"
	"github.com/yardenfarag/Full-Stack-Assignment/pkg/metrics"
	"github.com/yardenfarag/Full-Stack-Assignment/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

// Services agrupa os casos de uso expostos pela API
type Services struct {
	Reporter  reporting.Reporter
	Syncer    syncing.Syncer
	Catalog   catalog.Cataloger
	Scheduler *scheduler.SyncScheduler
	Metrics   *metrics.Metrics
}

func NewHandler(cfg *config.Config, services Services) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Metrics(services.Metrics)...),
		router.WithRoutes(handler.Reports(services.Reporter)...),
		router.WithRoutes(handler.Sync(services.Syncer, scheduleStatus(services.Scheduler))...),
		router.WithRoutes(handler.Catalog(services.Catalog)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Server.AllowedOrigins),
	}

	return alice.New(middlewares...).Then(rt)
}

func scheduleStatus(s *scheduler.SyncScheduler) handler.ScheduleStatusProvider {
	if s == nil {
		return nil
	}
	return s
}

func New(cfg *config.Config, services Services) (*Server, error) {
	// Streams SSE usam o contexto base e são encerrados quando o desligamento começa
	baseCtx, cancelStreams := context.WithCancel(context.Background())

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg, services),
			ReadHeaderTimeout: 2 * time.Second,
			BaseContext:       func(net.Listener) context.Context { return baseCtx },
		},
	}
	srv.httpServer.RegisterOnShutdown(cancelStreams)

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("server: starting")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("server: listen failed")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("server: interrupt signal received")
	case <-ctx.Done():
		logrus.Info("server: application context cancelled")
	}

	// Define timeout para desligamento
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Log de início do desligamento
	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("server: starting graceful shutdown")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("server: shutdown failed")
		return err
	}

	logrus.Info("server: stopped")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	logrus.Info("server: shutting down")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("server: http listener closed")
	return nil
}
