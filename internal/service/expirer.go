package service

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultExpirerInterval = 30 * time.Second

// ExpirerService sweeps stale evidence on a periodic schedule so sensors
// that stop reporting fall out of fusion instead of pinning old beliefs.
type ExpirerService struct {
	evidence *EvidenceService
	logger   *zap.Logger

	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func NewExpirerService(evidence *EvidenceService, logger *zap.Logger) *ExpirerService {
	return &ExpirerService{
		evidence: evidence,
		logger:   logger,
		interval: defaultExpirerInterval,
		stopCh:   make(chan struct{}),
	}
}

func (s *ExpirerService) SetInterval(d time.Duration) {
	s.interval = d
}

// Start runs the sweep in a background goroutine until Stop.
func (s *ExpirerService) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.logger.Info("evidence expirer started", zap.Duration("interval", s.interval))

		for {
			select {
			case <-ticker.C:
				if dropped := s.evidence.ExpireStale(time.Now().UTC()); dropped > 0 {
					s.logger.Info("expired stale evidence", zap.Int("count", dropped))
				}
			case <-s.stopCh:
				s.logger.Info("evidence expirer stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the expirer.
func (s *ExpirerService) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}
