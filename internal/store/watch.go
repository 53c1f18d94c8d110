package store

import (
	"context"
	"errors"

	"github.com/credalab/credence/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WatchStore struct {
	db *pgxpool.Pool
}

func NewWatchStore(db *pgxpool.Pool) *WatchStore {
	return &WatchStore{db: db}
}

func (s *WatchStore) Create(ctx context.Context, w *domain.Watch) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO watches (name, hypotheses, horizon)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		w.Name, w.Hypotheses, w.Horizon,
	).Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *WatchStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Watch, error) {
	w := &domain.Watch{}
	err := s.db.QueryRow(ctx,
		`SELECT id, name, hypotheses, horizon, created_at
		 FROM watches WHERE id = $1`,
		id,
	).Scan(&w.ID, &w.Name, &w.Hypotheses, &w.Horizon, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return w, nil
}

func (s *WatchStore) List(ctx context.Context) ([]domain.Watch, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, hypotheses, horizon, created_at
		 FROM watches ORDER BY created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var watches []domain.Watch
	for rows.Next() {
		var w domain.Watch
		if err := rows.Scan(&w.ID, &w.Name, &w.Hypotheses, &w.Horizon, &w.CreatedAt); err != nil {
			return nil, err
		}
		watches = append(watches, w)
	}
	return watches, rows.Err()
}

func (s *WatchStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM watches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
