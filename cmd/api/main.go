package main

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/detailing-dashboard/infrastructure/database/postgres"
	"github.com/vfg2006/detailing-dashboard/infrastructure/repository"
	"github.com/vfg2006/detailing-dashboard/infrastructure/source/csvfile"
	"github.com/vfg2006/detailing-dashboard/internal/api"
	"github.com/vfg2006/detailing-dashboard/internal/config"
	"github.com/vfg2006/detailing-dashboard/internal/metrics"
	"github.com/vfg2006/detailing-dashboard/internal/scheduler"
	"github.com/vfg2006/detailing-dashboard/internal/usecases/dashboarding"
	"github.com/vfg2006/detailing-dashboard/internal/usecases/loading"
	"github.com/vfg2006/detailing-dashboard/pkg/markdown"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("invalid log level %q, using info", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("log level set to %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source, closeSource := newSource(ctx, cfg)
	defer closeSource()

	loader := loading.NewLoader(loading.Options{
		Columns: loading.Columns{
			City:        cfg.Dataset.CityColumn,
			ServiceDate: cfg.Dataset.ServiceDateColumn,
			Service:     cfg.Dataset.ServiceColumn,
			Amount:      cfg.Dataset.AmountColumn,
		},
		DateLayouts: cfg.Dataset.DateLayouts,
	})

	dataset, err := loader.Load(ctx, source)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load dataset")
	}

	baseline, err := source.Fingerprint(ctx)
	if err != nil {
		logrus.WithError(err).Warn("could not fingerprint dataset source, drift will always be reported")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetrics(registry)

	dashboardService := dashboarding.NewDashboardService(dataset, m)

	sourceWatchService := scheduler.NewSourceWatchService(source, baseline, m, cfg.SourceWatch)
	if err := sourceWatchService.Start(ctx); err != nil {
		logrus.WithError(err).Error("failed to start source watch")
	}

	notes, err := markdown.RenderFile(cfg.Dashboard.NotesPath)
	if err != nil {
		logrus.WithError(err).Warn("dashboard notes not rendered")
	}

	server, err := api.New(cfg, dashboardService, m, notes, sourceWatchService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// newSource picks the dataset source from DATASET_SOURCE
func newSource(ctx context.Context, cfg *config.Config) (loading.Source, func()) {
	switch cfg.Dataset.Source {
	case config.SourcePostgres:
		conn := pgconn(ctx, cfg.Database)
		return repository.NewTransactionTable(conn, cfg.Dataset.Table), func() { _ = conn.Close() }
	default:
		return csvfile.NewSource(cfg.Dataset.Path), func() {}
	}
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to PostgreSQL")
	}

	logrus.Info("connected to PostgreSQL")
	return conn
}
