package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/credalab/credence/internal/domain"
	"github.com/credalab/credence/internal/dst"
	"github.com/credalab/credence/internal/forecast"
	"github.com/credalab/credence/internal/store"
	"github.com/credalab/credence/internal/track"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// One expert per view of the series: the last value, an alpha-beta trend
	// extrapolation, and the long-run mean.
	watchExpertCount = 3

	DefaultTrendAlpha = 0.5
	DefaultTrendBeta  = 0.1
)

var (
	ErrWatchNotFound = errors.New("watch not found")
	ErrWatchConflict = errors.New("watch with this name already exists")
	ErrNoForecastYet = errors.New("watch has not observed a fusion run yet")
)

// ForecastService tracks the belief value of each watch across fusion runs
// and predicts the next run's value with a forecaster over three experts.
// Expert weights are periodically snapshotted for regime comparison; the
// series itself is never stored.
type ForecastService struct {
	watches domain.WatchStore
	snaps   domain.SnapshotStore
	frame   *domain.Frame
	logger  *zap.Logger

	mu     sync.RWMutex
	states map[uuid.UUID]*watchState
}

type watchState struct {
	watch   domain.Watch
	query   dst.Bits
	fc      *forecast.Forecaster
	trend   *track.AlphaBeta
	mean    float64
	lastBel float64
	preds   []float64
	runs    int
}

func NewForecastService(watches domain.WatchStore, snaps domain.SnapshotStore, frame *domain.Frame, logger *zap.Logger) *ForecastService {
	return &ForecastService{
		watches: watches,
		snaps:   snaps,
		frame:   frame,
		logger:  logger,
		states:  make(map[uuid.UUID]*watchState),
	}
}

// Load hydrates watch registrations from the store. Forecaster state starts
// fresh: the belief series is ephemeral, like the evidence it derives from.
func (s *ForecastService) Load(ctx context.Context) error {
	watches, err := s.watches.List(ctx)
	if err != nil {
		return fmt.Errorf("list watches: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range watches {
		st, err := s.buildState(w)
		if err != nil {
			return fmt.Errorf("watch %s: %w", w.ID, err)
		}
		s.states[w.ID] = st
	}
	s.logger.Info("watches loaded", zap.Int("count", len(watches)))
	return nil
}

func (s *ForecastService) buildState(w domain.Watch) (*watchState, error) {
	query, err := s.frame.Resolve(w.Hypotheses)
	if err != nil {
		return nil, err
	}
	trend, err := track.NewAlphaBeta(DefaultTrendAlpha, DefaultTrendBeta, 1.0)
	if err != nil {
		return nil, err
	}
	var fc *forecast.Forecaster
	if w.Horizon > 0 {
		fc = forecast.NewWithHorizon(watchExpertCount, forecast.L2{}, w.Horizon)
	} else {
		fc = forecast.New(watchExpertCount, forecast.L2{})
	}
	return &watchState{watch: w, query: query, fc: fc, trend: trend}, nil
}

// CreateWatch validates the hypotheses against the frame, persists the watch
// and starts tracking it immediately.
func (s *ForecastService) CreateWatch(ctx context.Context, name string, hypotheses []string, horizon int) (*domain.Watch, error) {
	w := domain.Watch{Name: name, Hypotheses: hypotheses, Horizon: horizon}
	st, err := s.buildState(w)
	if err != nil {
		return nil, err
	}
	if err := s.watches.Create(ctx, &w); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrWatchConflict
		}
		return nil, fmt.Errorf("create watch: %w", err)
	}
	st.watch = w

	s.mu.Lock()
	s.states[w.ID] = st
	s.mu.Unlock()

	s.logger.Info("watch created", zap.String("name", name), zap.Strings("hypotheses", hypotheses))
	return &w, nil
}

func (s *ForecastService) ListWatches(ctx context.Context) ([]domain.Watch, error) {
	return s.watches.List(ctx)
}

func (s *ForecastService) DeleteWatch(ctx context.Context, id uuid.UUID) error {
	if err := s.watches.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrWatchNotFound
		}
		return err
	}
	s.mu.Lock()
	delete(s.states, id)
	s.mu.Unlock()
	return nil
}

// Observe reveals the fused belief value to every watch: pending expert
// predictions are scored against it, then fresh predictions are laid down
// for the next run.
func (s *ForecastService) Observe(fused *dst.Assignment[dst.Bits]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range s.states {
		bel := float64(fused.Bel(st.query))
		if st.preds != nil {
			st.fc.Update(st.preds, bel)
		}
		st.trend.Update(bel)
		st.runs++
		st.mean += (bel - st.mean) / float64(st.runs)
		st.lastBel = bel

		trendPos, _ := st.trend.Predict()
		st.preds = []float64{bel, clamp01(trendPos), st.mean}
	}
}

// Forecast predicts the watch's belief value for the next fusion run.
func (s *ForecastService) Forecast(id uuid.UUID) (*domain.Forecast, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.states[id]
	if !ok {
		return nil, ErrWatchNotFound
	}
	if st.preds == nil {
		return nil, ErrNoForecastYet
	}
	return &domain.Forecast{
		WatchID:   st.watch.ID,
		WatchName: st.watch.Name,
		Predicted: float32(clamp01(st.fc.Predict(st.preds))),
		LastBel:   float32(st.lastBel),
		Runs:      st.runs,
	}, nil
}

// SnapshotAll persists the current expert weights of every watch that has
// observed at least one run.
func (s *ForecastService) SnapshotAll(ctx context.Context) {
	s.mu.RLock()
	type pending struct {
		watchID uuid.UUID
		weights []float32
	}
	var batch []pending
	for id, st := range s.states {
		if st.runs == 0 {
			continue
		}
		w64 := st.fc.Weights()
		w32 := make([]float32, len(w64))
		for i, v := range w64 {
			w32[i] = float32(v)
		}
		batch = append(batch, pending{watchID: id, weights: w32})
	}
	s.mu.RUnlock()

	for _, p := range batch {
		snap := &domain.WeightSnapshot{WatchID: p.watchID, Weights: p.weights}
		if err := s.snaps.Create(ctx, snap); err != nil {
			s.logger.Error("weight snapshot failed",
				zap.String("watch_id", p.watchID.String()),
				zap.Error(err))
		}
	}
}

// SimilarRegimes finds past snapshots whose expert weights resemble the
// watch's current ones. Similar weight profiles mean the experts were
// succeeding and failing in the same pattern at the time.
func (s *ForecastService) SimilarRegimes(ctx context.Context, id uuid.UUID, limit int) ([]domain.SnapshotWithScore, error) {
	s.mu.RLock()
	st, ok := s.states[id]
	if !ok {
		s.mu.RUnlock()
		return nil, ErrWatchNotFound
	}
	w64 := st.fc.Weights()
	s.mu.RUnlock()

	w32 := make([]float32, len(w64))
	for i, v := range w64 {
		w32[i] = float32(v)
	}
	return s.snaps.FindSimilar(ctx, id, w32, limit)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
