package domain

import (
	"time"

	"github.com/google/uuid"
)

// Watch names a belief query whose value is tracked across fusion runs and
// forecast one run ahead. Horizon tunes the forecaster's learning rate; zero
// means the run count is open-ended.
type Watch struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Hypotheses []string  `json:"hypotheses"`
	Horizon    int       `json:"horizon"`
	CreatedAt  time.Time `json:"created_at"`
}

// WeightSnapshot preserves a watch's expert weights at a point in time.
// Snapshots are the only forecaster state that is persisted; they exist for
// regime comparison, not for restoring the forecaster.
type WeightSnapshot struct {
	ID      uuid.UUID `json:"id"`
	WatchID uuid.UUID `json:"watch_id"`
	Weights []float32 `json:"weights"`
	TakenAt time.Time `json:"taken_at"`
}

type SnapshotWithScore struct {
	WeightSnapshot
	Score float32 `json:"score"`
}

// Forecast is the next-run prediction for a watch.
type Forecast struct {
	WatchID   uuid.UUID `json:"watch_id"`
	WatchName string    `json:"watch_name"`
	Predicted float32   `json:"predicted"`
	LastBel   float32   `json:"last_bel"`
	Runs      int       `json:"runs"`
}
