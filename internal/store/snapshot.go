package store

import (
	"context"

	"github.com/credalab/credence/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
)

type SnapshotStore struct {
	db *pgxpool.Pool
}

func NewSnapshotStore(db *pgxpool.Pool) *SnapshotStore {
	return &SnapshotStore{db: db}
}

func (s *SnapshotStore) Create(ctx context.Context, snap *domain.WeightSnapshot) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO weight_snapshots (watch_id, weights)
		 VALUES ($1, $2)
		 RETURNING id, taken_at`,
		snap.WatchID, pgvector.NewVector(snap.Weights),
	).Scan(&snap.ID, &snap.TakenAt)
}

func (s *SnapshotStore) ListByWatch(ctx context.Context, watchID uuid.UUID, limit int) ([]domain.WeightSnapshot, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, watch_id, weights, taken_at
		 FROM weight_snapshots WHERE watch_id = $1
		 ORDER BY taken_at DESC
		 LIMIT $2`,
		watchID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []domain.WeightSnapshot
	for rows.Next() {
		var snap domain.WeightSnapshot
		var vec pgvector.Vector
		if err := rows.Scan(&snap.ID, &snap.WatchID, &vec, &snap.TakenAt); err != nil {
			return nil, err
		}
		snap.Weights = vec.Slice()
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

func (s *SnapshotStore) FindSimilar(ctx context.Context, watchID uuid.UUID, weights []float32, limit int) ([]domain.SnapshotWithScore, error) {
	if limit <= 0 {
		limit = 10
	}

	vec := pgvector.NewVector(weights)

	rows, err := s.db.Query(ctx,
		`SELECT id, watch_id, weights, taken_at,
			1 - (weights <=> $1) AS score
		 FROM weight_snapshots
		 WHERE watch_id = $2
		 ORDER BY score DESC
		 LIMIT $3`,
		vec, watchID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []domain.SnapshotWithScore
	for rows.Next() {
		var snap domain.SnapshotWithScore
		var vec pgvector.Vector
		if err := rows.Scan(&snap.ID, &snap.WatchID, &vec, &snap.TakenAt, &snap.Score); err != nil {
			return nil, err
		}
		snap.Weights = vec.Slice()
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}
