package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/credalab/credence/internal/domain"
	"github.com/credalab/credence/internal/dst"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type mockRunStore struct {
	mu   sync.Mutex
	runs []domain.FusionRun
	err  error
}

func (m *mockRunStore) Create(ctx context.Context, r *domain.FusionRun) error {
	if m.err != nil {
		return m.err
	}
	r.ID = uuid.New()
	r.CreatedAt = time.Now().UTC()
	m.mu.Lock()
	m.runs = append(m.runs, *r)
	m.mu.Unlock()
	return nil
}

func (m *mockRunStore) ListRecent(ctx context.Context, limit int) ([]domain.FusionRun, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.FusionRun, 0, limit)
	for i := len(m.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.runs[i])
	}
	return out, nil
}

func newTestFusion(t *testing.T, evidence *EvidenceService, runs *mockRunStore) *FusionService {
	t.Helper()
	svc, err := NewFusionService(evidence, nil, runs, testFrame(t), 8, StrategyTopN, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	return svc
}

func TestNewFusionServiceValidation(t *testing.T) {
	evidence := NewEvidenceService(testFrame(t), time.Minute, zap.NewNop())

	if _, err := NewFusionService(evidence, nil, &mockRunStore{}, testFrame(t), 0, StrategyTopN, zap.NewNop()); !errors.Is(err, ErrBadCapacity) {
		t.Errorf("capacity 0 error = %v, want ErrBadCapacity", err)
	}
	if _, err := NewFusionService(evidence, nil, &mockRunStore{}, testFrame(t), 4, "median", zap.NewNop()); !errors.Is(err, ErrBadStrategy) {
		t.Errorf("bad strategy error = %v, want ErrBadStrategy", err)
	}
}

func TestRunWithNoEvidence(t *testing.T) {
	evidence := NewEvidenceService(testFrame(t), time.Minute, zap.NewNop())
	svc := newTestFusion(t, evidence, &mockRunStore{})

	if _, err := svc.Run(context.Background(), domain.TriggerManual); !errors.Is(err, ErrNoEvidence) {
		t.Errorf("error = %v, want ErrNoEvidence", err)
	}
}

func TestQueryBeforeFirstRun(t *testing.T) {
	evidence := NewEvidenceService(testFrame(t), time.Minute, zap.NewNop())
	svc := newTestFusion(t, evidence, &mockRunStore{})

	if _, err := svc.Query([]string{"ok"}); !errors.Is(err, ErrNoFusionYet) {
		t.Errorf("error = %v, want ErrNoFusionYet", err)
	}
}

func TestRunFusesAndRecords(t *testing.T) {
	evidence := NewEvidenceService(testFrame(t), time.Minute, zap.NewNop())
	runs := &mockRunStore{}
	svc := newTestFusion(t, evidence, runs)

	// Two sensors lean the same way, a third hedges.
	mustSubmit(t, evidence, testSensor("thermal", 0.9), []domain.Observation{
		{Hypotheses: []string{"failed"}, Mass: 0.7},
		{Hypotheses: []string{"degraded", "failed"}, Mass: 0.3},
	})
	mustSubmit(t, evidence, testSensor("acoustic", 0.8), []domain.Observation{
		{Hypotheses: []string{"failed"}, Mass: 0.6},
		{Hypotheses: []string{"ok"}, Mass: 0.1},
	})
	mustSubmit(t, evidence, testSensor("visual", 0.5), []domain.Observation{
		{Hypotheses: []string{"ok", "degraded", "failed"}, Mass: 1.0},
	})

	run, err := svc.Run(context.Background(), domain.TriggerManual)
	if err != nil {
		t.Fatal(err)
	}
	if run.Sources != 3 || run.Trigger != domain.TriggerManual {
		t.Errorf("run = %+v, want 3 manual sources", run)
	}
	if run.ID == uuid.Nil {
		t.Error("run was not persisted")
	}
	if run.MaxConflict <= 0 || run.MaxConflict >= 1 {
		t.Errorf("max conflict = %v, want a real partial conflict", run.MaxConflict)
	}
	if len(runs.runs) != 1 {
		t.Fatalf("store holds %d runs, want 1", len(runs.runs))
	}

	res, err := svc.Query([]string{"failed"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Bel <= 0.5 {
		t.Errorf("bel(failed) = %v, want the agreeing sensors to dominate", res.Bel)
	}
	if res.Bel > res.Pl {
		t.Errorf("bel %v exceeds pl %v", res.Bel, res.Pl)
	}
	if res.Sources != 3 {
		t.Errorf("result sources = %d, want 3", res.Sources)
	}
}

func TestRunPropagatesContradiction(t *testing.T) {
	evidence := NewEvidenceService(testFrame(t), time.Minute, zap.NewNop())
	svc := newTestFusion(t, evidence, &mockRunStore{})

	mustSubmit(t, evidence, testSensor("thermal", 1.0), []domain.Observation{
		{Hypotheses: []string{"ok"}, Mass: 1.0},
	})
	mustSubmit(t, evidence, testSensor("acoustic", 1.0), []domain.Observation{
		{Hypotheses: []string{"failed"}, Mass: 1.0},
	})

	_, err := svc.Run(context.Background(), domain.TriggerManual)
	if !errors.Is(err, dst.ErrFullContradiction) {
		t.Errorf("error = %v, want dst.ErrFullContradiction", err)
	}
}

func TestQueryRejectsUnknownNames(t *testing.T) {
	evidence := NewEvidenceService(testFrame(t), time.Minute, zap.NewNop())
	svc := newTestFusion(t, evidence, &mockRunStore{})

	if _, err := svc.Query([]string{"haunted"}); !errors.Is(err, domain.ErrUnknownName) {
		t.Errorf("error = %v, want domain.ErrUnknownName", err)
	}
}
