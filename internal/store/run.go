package store

import (
	"context"

	"github.com/credalab/credence/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RunStore struct {
	db *pgxpool.Pool
}

func NewRunStore(db *pgxpool.Pool) *RunStore {
	return &RunStore{db: db}
}

func (s *RunStore) Create(ctx context.Context, r *domain.FusionRun) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO fusion_runs (triggered_by, sources, capacity, strategy, max_conflict, last_conflict, duration_ms)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		r.Trigger, r.Sources, r.Capacity, r.Strategy, r.MaxConflict, r.LastConflict, r.DurationMS,
	).Scan(&r.ID, &r.CreatedAt)
}

func (s *RunStore) ListRecent(ctx context.Context, limit int) ([]domain.FusionRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, triggered_by, sources, capacity, strategy, max_conflict, last_conflict, duration_ms, created_at
		 FROM fusion_runs ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []domain.FusionRun
	for rows.Next() {
		var r domain.FusionRun
		if err := rows.Scan(&r.ID, &r.Trigger, &r.Sources, &r.Capacity, &r.Strategy,
			&r.MaxConflict, &r.LastConflict, &r.DurationMS, &r.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
