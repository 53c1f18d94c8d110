package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/credalab/credence/internal/domain"
	"go.uber.org/zap"
)

const (
	defaultRunnerInterval   = 1 * time.Minute
	defaultSnapshotInterval = 15 * time.Minute
	runnerTimeout           = 30 * time.Second
)

// RunnerService drives scheduled fusion runs and periodic forecaster weight
// snapshots. Manual runs through the API are unaffected; this only keeps
// beliefs moving while nobody is asking.
type RunnerService struct {
	fusion   *FusionService
	forecast *ForecastService
	logger   *zap.Logger

	interval     time.Duration
	snapInterval time.Duration
	stopCh       chan struct{}
	wg           sync.WaitGroup
}

func NewRunnerService(fusion *FusionService, forecast *ForecastService, logger *zap.Logger) *RunnerService {
	return &RunnerService{
		fusion:       fusion,
		forecast:     forecast,
		logger:       logger,
		interval:     defaultRunnerInterval,
		snapInterval: defaultSnapshotInterval,
		stopCh:       make(chan struct{}),
	}
}

func (s *RunnerService) SetInterval(d time.Duration) {
	s.interval = d
}

func (s *RunnerService) SetSnapshotInterval(d time.Duration) {
	s.snapInterval = d
}

// Start runs scheduled fusion in a background goroutine until Stop.
func (s *RunnerService) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		snapTicker := time.NewTicker(s.snapInterval)
		defer snapTicker.Stop()

		s.logger.Info("fusion runner started",
			zap.Duration("interval", s.interval),
			zap.Duration("snapshot_interval", s.snapInterval))

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), runnerTimeout)
				s.runOnce(ctx)
				cancel()
			case <-snapTicker.C:
				ctx, cancel := context.WithTimeout(context.Background(), runnerTimeout)
				s.forecast.SnapshotAll(ctx)
				cancel()
			case <-s.stopCh:
				s.logger.Info("fusion runner stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the runner.
func (s *RunnerService) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}

func (s *RunnerService) runOnce(ctx context.Context) {
	_, err := s.fusion.Run(ctx, domain.TriggerScheduled)
	switch {
	case err == nil:
	case errors.Is(err, ErrNoEvidence):
		s.logger.Debug("no evidence to fuse")
	default:
		s.logger.Error("scheduled fusion failed", zap.Error(err))
	}
}
