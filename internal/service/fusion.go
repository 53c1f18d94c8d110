package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/credalab/credence/internal/domain"
	"github.com/credalab/credence/internal/dst"
	"go.uber.org/zap"
)

const (
	DefaultFusionCapacity = 8

	StrategyTopN      = "topn"
	StrategySummarize = "summarize"
)

var (
	ErrNoEvidence  = errors.New("no evidence to fuse")
	ErrNoFusionYet = errors.New("no fusion has run yet")
	ErrBadStrategy = errors.New("unknown approximation strategy")
	ErrBadCapacity = errors.New("fusion capacity must be positive")
)

// ParseStrategy maps a configured strategy name to the engine strategy.
func ParseStrategy(name string) (dst.Strategy[dst.Bits], error) {
	switch name {
	case StrategyTopN:
		return dst.TopN[dst.Bits]{}, nil
	case StrategySummarize:
		return dst.Summarize[dst.Bits]{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrBadStrategy, name)
}

// FusionService folds the current evidence into one bounded assignment and
// answers belief queries against it. The fused assignment lives only in
// memory; runs leave an audit row behind.
type FusionService struct {
	evidence *EvidenceService
	forecast *ForecastService
	runs     domain.RunStore
	frame    *domain.Frame
	capacity int
	stratNm  string
	strat    dst.Strategy[dst.Bits]
	logger   *zap.Logger

	mu      sync.RWMutex
	latest  *dst.Assignment[dst.Bits]
	lastRun *domain.FusionRun
}

func NewFusionService(
	evidence *EvidenceService,
	forecast *ForecastService,
	runs domain.RunStore,
	frame *domain.Frame,
	capacity int,
	strategy string,
	logger *zap.Logger,
) (*FusionService, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBadCapacity, capacity)
	}
	strat, err := ParseStrategy(strategy)
	if err != nil {
		return nil, err
	}
	return &FusionService{
		evidence: evidence,
		forecast: forecast,
		runs:     runs,
		frame:    frame,
		capacity: capacity,
		stratNm:  strategy,
		strat:    strat,
		logger:   logger,
	}, nil
}

// Run fuses whatever evidence is currently live. The fused assignment
// replaces the previous one, watches observe the new belief values, and an
// audit row records the fold's conflict profile.
func (s *FusionService) Run(ctx context.Context, trigger domain.FusionTrigger) (*domain.FusionRun, error) {
	sources := s.evidence.Snapshot()
	if len(sources) == 0 {
		return nil, ErrNoEvidence
	}

	start := time.Now()
	fused, conflicts, err := dst.FuseTrace(s.capacity, s.strat, sources...)
	if err != nil {
		s.logger.Warn("fusion failed",
			zap.Int("sources", len(sources)),
			zap.Error(err))
		return nil, fmt.Errorf("fuse evidence: %w", err)
	}

	var maxK, lastK float32
	for _, k := range conflicts {
		if k > maxK {
			maxK = k
		}
	}
	if len(conflicts) > 0 {
		lastK = conflicts[len(conflicts)-1]
	}

	run := &domain.FusionRun{
		Trigger:      trigger,
		Sources:      len(sources),
		Capacity:     s.capacity,
		Strategy:     s.stratNm,
		MaxConflict:  maxK,
		LastConflict: lastK,
		DurationMS:   time.Since(start).Milliseconds(),
	}
	if err := s.runs.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("record fusion run: %w", err)
	}

	s.mu.Lock()
	s.latest = fused
	s.lastRun = run
	s.mu.Unlock()

	if s.forecast != nil {
		s.forecast.Observe(fused)
	}

	s.logger.Info("evidence fused",
		zap.String("trigger", string(trigger)),
		zap.Int("sources", run.Sources),
		zap.Float32("max_conflict", run.MaxConflict),
		zap.Int64("duration_ms", run.DurationMS))
	return run, nil
}

// Query answers bel and pl for a set of hypothesis names against the latest
// fused assignment.
func (s *FusionService) Query(names []string) (*domain.BeliefResult, error) {
	q, err := s.frame.Resolve(names)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return nil, ErrNoFusionYet
	}
	return &domain.BeliefResult{
		Hypotheses: s.frame.Render(q),
		Bel:        s.latest.Bel(q),
		Pl:         s.latest.Pl(q),
		FusedAt:    s.lastRun.CreatedAt,
		Sources:    s.lastRun.Sources,
	}, nil
}

// RecentRuns lists the newest audit rows.
func (s *FusionService) RecentRuns(ctx context.Context, limit int) ([]domain.FusionRun, error) {
	return s.runs.ListRecent(ctx, limit)
}
