package domain

import (
	"time"

	"github.com/google/uuid"
)

type FusionTrigger string

const (
	TriggerManual    FusionTrigger = "manual"
	TriggerScheduled FusionTrigger = "scheduled"
)

// FusionRun is the audit record of one fold over the current evidence.
// Conflict values are the per-combination K masses observed during the fold,
// summarized as the largest and the final step's value.
type FusionRun struct {
	ID           uuid.UUID     `json:"id"`
	Trigger      FusionTrigger `json:"trigger"`
	Sources      int           `json:"sources"`
	Capacity     int           `json:"capacity"`
	Strategy     string        `json:"strategy"`
	MaxConflict  float32       `json:"max_conflict"`
	LastConflict float32       `json:"last_conflict"`
	DurationMS   int64         `json:"duration_ms"`
	CreatedAt    time.Time     `json:"created_at"`
}

// BeliefResult answers one query against the latest fused assignment.
type BeliefResult struct {
	Hypotheses []string  `json:"hypotheses"`
	Bel        float32   `json:"bel"`
	Pl         float32   `json:"pl"`
	FusedAt    time.Time `json:"fused_at"`
	Sources    int       `json:"sources"`
}
