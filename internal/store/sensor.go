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

type SensorStore struct {
	db *pgxpool.Pool
}

func NewSensorStore(db *pgxpool.Pool) *SensorStore {
	return &SensorStore{db: db}
}

func (s *SensorStore) Create(ctx context.Context, sensor *domain.Sensor) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO sensors (name, reliability, api_key_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		sensor.Name, sensor.Reliability, sensor.APIKeyHash,
	).Scan(&sensor.ID, &sensor.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *SensorStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sensor, error) {
	sensor := &domain.Sensor{}
	err := s.db.QueryRow(ctx,
		`SELECT id, name, reliability, api_key_hash, created_at
		 FROM sensors WHERE id = $1`,
		id,
	).Scan(&sensor.ID, &sensor.Name, &sensor.Reliability, &sensor.APIKeyHash, &sensor.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sensor, nil
}

func (s *SensorStore) GetByAPIKeyHash(ctx context.Context, apiKeyHash string) (*domain.Sensor, error) {
	sensor := &domain.Sensor{}
	err := s.db.QueryRow(ctx,
		`SELECT id, name, reliability, api_key_hash, created_at
		 FROM sensors WHERE api_key_hash = $1`,
		apiKeyHash,
	).Scan(&sensor.ID, &sensor.Name, &sensor.Reliability, &sensor.APIKeyHash, &sensor.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sensor, nil
}

func (s *SensorStore) List(ctx context.Context) ([]domain.Sensor, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, reliability, api_key_hash, created_at
		 FROM sensors ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sensors []domain.Sensor
	for rows.Next() {
		var sensor domain.Sensor
		if err := rows.Scan(&sensor.ID, &sensor.Name, &sensor.Reliability, &sensor.APIKeyHash, &sensor.CreatedAt); err != nil {
			return nil, err
		}
		sensors = append(sensors, sensor)
	}
	return sensors, rows.Err()
}
