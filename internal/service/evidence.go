package service

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/credalab/credence/internal/domain"
	"github.com/credalab/credence/internal/dst"
	"go.uber.org/zap"
)

const (
	DefaultEvidenceTTL = 5 * time.Minute
	// massSlack absorbs float32 rounding when a report's masses are summed.
	massSlack = 1e-3
)

var (
	ErrNoObservations = errors.New("report has no observations")
	ErrBadMass        = errors.New("observation masses must lie in (0, 1]")
	ErrMassOverflow   = errors.New("observation masses exceed 1")
)

// EvidenceService keeps the newest report per sensor, already validated
// against the frame, discounted by sensor reliability and converted to focal
// elements. Evidence is deliberately ephemeral: it times out after the TTL
// and is never persisted.
type EvidenceService struct {
	frame  *domain.Frame
	ttl    time.Duration
	logger *zap.Logger

	mu      sync.RWMutex
	current map[string]*evidenceEntry // keyed by sensor name for stable fold order
}

type evidenceEntry struct {
	report *domain.EvidenceReport
	focals []dst.Focal[dst.Bits]
}

func NewEvidenceService(frame *domain.Frame, ttl time.Duration, logger *zap.Logger) *EvidenceService {
	if ttl <= 0 {
		ttl = DefaultEvidenceTTL
	}
	return &EvidenceService{
		frame:   frame,
		ttl:     ttl,
		logger:  logger,
		current: make(map[string]*evidenceEntry),
	}
}

// Submit validates and converts a sensor's observations, replacing whatever
// the sensor reported before. Mass left unassigned goes to the whole frame
// as ignorance, and the sensor's reliability discounts everything but the
// frame itself.
func (s *EvidenceService) Submit(sensor *domain.Sensor, obs []domain.Observation) (*domain.EvidenceReport, error) {
	if len(obs) == 0 {
		return nil, ErrNoObservations
	}

	var sum float32
	for _, o := range obs {
		if o.Mass <= 0 || o.Mass > 1 {
			return nil, fmt.Errorf("%w: got %v", ErrBadMass, o.Mass)
		}
		sum += o.Mass
	}
	if sum > 1+massSlack {
		return nil, fmt.Errorf("%w: sum %v", ErrMassOverflow, sum)
	}

	universe := s.frame.Universe()
	focals := make([]dst.Focal[dst.Bits], 0, len(obs)+1)
	var committed float32
	for _, o := range obs {
		hyp, err := s.frame.Resolve(o.Hypotheses)
		if err != nil {
			return nil, err
		}
		if hyp == universe {
			continue
		}
		// Reliability discounting: only the trusted fraction stays on the
		// reported set, the rest becomes ignorance.
		m := sensor.Reliability * o.Mass
		committed += m
		merged := false
		for i := range focals {
			if focals[i].Hyp == hyp {
				focals[i].Mass += m
				merged = true
				break
			}
		}
		if !merged {
			focals = append(focals, dst.Focal[dst.Bits]{Hyp: hyp, Mass: m})
		}
	}
	// Whatever is not committed to a strict subset of the frame, whether
	// reported on the whole frame, left unassigned, or shaved off by the
	// discount, lands on the frame itself.
	focals = append(focals, dst.Focal[dst.Bits]{Hyp: universe, Mass: 1 - committed})

	now := time.Now().UTC()
	report := &domain.EvidenceReport{
		SensorID:     sensor.ID,
		SensorName:   sensor.Name,
		Observations: obs,
		ReceivedAt:   now,
		ExpiresAt:    now.Add(s.ttl),
	}

	s.mu.Lock()
	s.current[sensor.Name] = &evidenceEntry{report: report, focals: focals}
	s.mu.Unlock()

	s.logger.Debug("evidence accepted",
		zap.String("sensor", sensor.Name),
		zap.Int("observations", len(obs)),
		zap.Float32("reliability", sensor.Reliability))
	return report, nil
}

// Snapshot returns the live focal sets in sensor-name order, so repeated
// folds over unchanged evidence see the same sequence.
func (s *EvidenceService) Snapshot() [][]dst.Focal[dst.Bits] {
	now := time.Now().UTC()

	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.current))
	for name, e := range s.current {
		if e.report.ExpiresAt.After(now) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	out := make([][]dst.Focal[dst.Bits], 0, len(names))
	for _, name := range names {
		out = append(out, s.current[name].focals)
	}
	return out
}

// Current lists the live reports, newest first.
func (s *EvidenceService) Current() []domain.EvidenceReport {
	now := time.Now().UTC()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.EvidenceReport, 0, len(s.current))
	for _, e := range s.current {
		if e.report.ExpiresAt.After(now) {
			out = append(out, *e.report)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReceivedAt.After(out[j].ReceivedAt) })
	return out
}

// ExpireStale drops reports past their expiry and returns how many went.
func (s *EvidenceService) ExpireStale(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var dropped int
	for name, e := range s.current {
		if !e.report.ExpiresAt.After(now) {
			delete(s.current, name)
			dropped++
		}
	}
	return dropped
}
