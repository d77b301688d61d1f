package training

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

// Scheduler periodically retrains every product's model.
type Scheduler struct {
	trainer  *Trainer
	interval time.Duration
}

// NewScheduler constructs a Scheduler.
func NewScheduler(trainer *Trainer, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	return &Scheduler{
		trainer:  trainer,
		interval: interval,
	}
}

// Start runs a training pass immediately and then on every tick until ctx
// is canceled.
func (s *Scheduler) Start(ctx context.Context) {
	log.Info().Dur("interval", s.interval).Msg("Starting training scheduler")

	s.run(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Training scheduler stopped")
			return
		}
	}
}

func (s *Scheduler) run(ctx context.Context) {
	_, err := s.trainer.Run(ctx, SourceScheduled)
	switch {
	case errors.Is(err, ErrRunInProgress):
		log.Info().Msg("Skipping scheduled training, a run is already in progress")
	case err != nil && ctx.Err() == nil:
		log.Error().Err(err).Msg("Scheduled training failed")
	}
}
