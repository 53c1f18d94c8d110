package domain

import (
	"time"

	"github.com/google/uuid"
)

// Sensor is a registered evidence source. Reliability is the classical
// discounting factor: the fraction of each report's mass the fusion layer
// actually trusts, the rest moving to the whole frame.
type Sensor struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Reliability float32   `json:"reliability"`
	APIKeyHash  string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// Observation is one focal element as reported: hypothesis names and the
// mass committed to exactly that set of names.
type Observation struct {
	Hypotheses []string `json:"hypotheses"`
	Mass       float32  `json:"mass"`
}

// EvidenceReport is a sensor's current view. Only the newest report per
// sensor takes part in fusion, and reports expire after the evidence TTL.
type EvidenceReport struct {
	SensorID     uuid.UUID     `json:"sensor_id"`
	SensorName   string        `json:"sensor_name"`
	Observations []Observation `json:"observations"`
	ReceivedAt   time.Time     `json:"received_at"`
	ExpiresAt    time.Time     `json:"expires_at"`
}
