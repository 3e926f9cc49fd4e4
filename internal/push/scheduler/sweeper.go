package scheduler

import (
	"context"
	"log"
	"time"

	"section-notify-server/internal/push/repository"
)

// Sweeper periodically deactivates stale device tokens and purges
// long-dead rows.
type Sweeper struct {
	tokens   repository.TokenRepository
	interval time.Duration
	stopChan chan struct{}
}

// NewSweeper creates a new Sweeper
func NewSweeper(tokens repository.TokenRepository, interval time.Duration) *Sweeper {
	return &Sweeper{
		tokens:   tokens,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start runs one sweep immediately, then loops on the configured interval
func (s *Sweeper) Start() {
	log.Printf("[Sweeper] Started, interval: %v", s.interval)
	go func() {
		s.sweep()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stopChan:
				log.Println("[Sweeper] Stopped")
				return
			}
		}
	}()
}

// Stop stops the sweeper loop
func (s *Sweeper) Stop() {
	close(s.stopChan)
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deactivated, purged, err := s.tokens.SweepExpired(ctx)
	if err != nil {
		log.Printf("[Sweeper] Sweep failed: %v", err)
		return
	}
	if deactivated > 0 || purged > 0 {
		log.Printf("[Sweeper] Deactivated %d stale tokens, purged %d dead rows", deactivated, purged)
	}
}
