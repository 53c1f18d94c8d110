package domain

import (
	"context"

	"github.com/google/uuid"
)

type SensorStore interface {
	Create(ctx context.Context, s *Sensor) error
	GetByID(ctx context.Context, id uuid.UUID) (*Sensor, error)
	GetByAPIKeyHash(ctx context.Context, apiKeyHash string) (*Sensor, error)
	List(ctx context.Context) ([]Sensor, error)
}

type RunStore interface {
	Create(ctx context.Context, r *FusionRun) error
	ListRecent(ctx context.Context, limit int) ([]FusionRun, error)
}

type WatchStore interface {
	Create(ctx context.Context, w *Watch) error
	GetByID(ctx context.Context, id uuid.UUID) (*Watch, error)
	List(ctx context.Context) ([]Watch, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type SnapshotStore interface {
	Create(ctx context.Context, s *WeightSnapshot) error
	ListByWatch(ctx context.Context, watchID uuid.UUID, limit int) ([]WeightSnapshot, error)
	FindSimilar(ctx context.Context, watchID uuid.UUID, weights []float32, limit int) ([]SnapshotWithScore, error)
}
