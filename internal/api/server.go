package api

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/detailing-dashboard/internal/api/handler"
	"github.com/vfg2006/detailing-dashboard/internal/api/handler/router"
	"github.com/vfg2006/detailing-dashboard/internal/config"
	"github.com/vfg2006/detailing-dashboard/internal/metrics"
	"github.com/vfg2006/detailing-dashboard/internal/scheduler"
	"github.com/vfg2006/detailing-dashboard/internal/usecases/dashboarding"
	"github.com/vfg2006/detailing-dashboard/pkg/apiErrors"
	"github.com/vfg2006/detailing-dashboard/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	dashboardService dashboarding.Dashboarder,
	m *metrics.Metrics,
	notes template.HTML,
	sourceWatchService *scheduler.SourceWatchService,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		SourceWatchService: sourceWatchService,
	}

	pageConfig := handler.PageConfig{
		Title:    config.Dashboard.Title,
		Notes:    notes,
		PageSize: config.Dashboard.PageSize,
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           NewHandler(config, dashboardService, m, pageConfig, cronServices),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// NewHandler assembles the routes and the global middleware chain
func NewHandler(
	config *config.Config,
	dashboardService dashboarding.Dashboarder,
	m *metrics.Metrics,
	pageConfig handler.PageConfig,
	cronServices handler.CronJobServices,
) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Page(dashboardService, pageConfig)...),
		router.WithRoutes(handler.Dashboard(dashboardService, config.Dashboard.PageSize)...),
		router.WithRoutes(handler.Charts(dashboardService)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
		router.WithRoutes(handler.Metrics(m.Handler())...),
		router.WithRouteWrapper(func(route router.Route, next http.Handler) http.Handler {
			return m.Instrument(route.Path, next)
		}),
		router.WithNotFound(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiErrors.WriteError(w, apiErrors.ErrRouteNotFound, "route not found", map[string]string{"path": r.URL.Path})
		})),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
		middleware.Compress(),
	}

	return alice.New(middlewares...).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("server starting")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("server stopped unexpectedly")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("interrupt signal received")
	case <-ctx.Done():
		logrus.Info("application context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("shutting down server")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("error during server shutdown")
		return err
	}

	logrus.Info("server stopped")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
