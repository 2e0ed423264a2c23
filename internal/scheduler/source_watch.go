package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/detailing-dashboard/internal/config"
	"github.com/vfg2006/detailing-dashboard/internal/metrics"
)

// Fingerprinter identifies the current content of a dataset source
type Fingerprinter interface {
	Name() string
	Fingerprint(ctx context.Context) (string, error)
}

// SourceWatchService periodically fingerprints the dataset source and warns
// when it no longer matches what was loaded at startup. The dataset itself
// is never reloaded; a restart picks up the new content.
type SourceWatchService struct {
	scheduler *gocron.Scheduler
	config    config.SourceWatch
	source    Fingerprinter
	baseline  string
	metrics   *metrics.Metrics

	mu                  sync.Mutex
	checkRunning        bool
	drifted             bool
	lastFingerprint     string
	lastError           string
	lastCheckStartedAt  time.Time
	lastCheckFinishedAt time.Time
}

func NewSourceWatchService(
	source Fingerprinter,
	baseline string,
	m *metrics.Metrics,
	cfg config.SourceWatch,
) *SourceWatchService {
	logrus.WithFields(logrus.Fields{
		"cron_schedule": cfg.CronSchedule,
		"enabled":       cfg.Enabled,
		"source":        source.Name(),
	}).Info("source watch configured")

	return &SourceWatchService{
		scheduler:       gocron.NewScheduler(time.UTC),
		config:          cfg,
		source:          source,
		baseline:        baseline,
		metrics:         m,
		lastFingerprint: baseline,
	}
}

func (s *SourceWatchService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("source watch disabled by configuration")
		return nil
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runCheck(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule source watch: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("stopping source watch")
		s.scheduler.Stop()
	}()

	return nil
}

// Check fingerprints the source once and reports whether it drifted from the
// loaded dataset.
func (s *SourceWatchService) Check(ctx context.Context) (bool, error) {
	s.mu.Lock()
	s.lastCheckStartedAt = time.Now()
	s.mu.Unlock()

	fingerprint, err := s.source.Fingerprint(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastCheckFinishedAt = time.Now()
	if err != nil {
		s.lastError = err.Error()
		return s.drifted, err
	}

	s.lastError = ""
	s.lastFingerprint = fingerprint
	s.drifted = fingerprint != s.baseline
	s.metrics.SetSourceDrift(s.drifted)

	return s.drifted, nil
}

func (s *SourceWatchService) runCheck(ctx context.Context) {
	s.mu.Lock()
	if s.checkRunning {
		s.mu.Unlock()
		logrus.Info("source watch already running, skipping")
		return
	}
	s.checkRunning = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.checkRunning = false
		s.mu.Unlock()
	}()

	logger := logrus.WithField("source", s.source.Name())

	drifted, err := s.Check(ctx)
	if err != nil {
		logger.WithError(err).Error("source watch failed")
		return
	}

	if drifted {
		logger.Warn("dataset source changed since startup; restart to load the new data")
		return
	}

	logger.Debug("dataset source unchanged")
}

// TriggerManualSync runs one check in the background
func (s *SourceWatchService) TriggerManualSync() {
	logrus.Info("manual source watch requested")
	go s.runCheck(context.Background())
}

func (s *SourceWatchService) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]any{
		"enabled":                s.config.Enabled,
		"cron":                   s.config.CronSchedule,
		"source":                 s.source.Name(),
		"running":                s.checkRunning,
		"drifted":                s.drifted,
		"baseline_fingerprint":   s.baseline,
		"last_fingerprint":       s.lastFingerprint,
		"last_error":             s.lastError,
		"last_check_started_at":  s.lastCheckStartedAt,
		"last_check_finished_at": s.lastCheckFinishedAt,
	}
}
