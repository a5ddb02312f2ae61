package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pulsefeed/social-api/internal/api/metrics"
	"github.com/pulsefeed/social-api/internal/core/domain"
	"github.com/pulsefeed/social-api/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService that persists events to the
// audit trail.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

// Record persists a single activity event.
func (s *activityService) Record(ctx context.Context, in ports.ActivityInput) error {
	event := &domain.ActivityEvent{
		Type:      in.Type,
		Actor:     in.Actor,
		Post:      in.Post,
		Timestamp: in.Timestamp,
	}

	if err := s.repo.Insert(ctx, event); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}

	metrics.ActivityProcessedTotal.WithLabelValues(string(in.Type)).Inc()
	s.log.Debug().
		Str("type", string(in.Type)).
		Str("actor", in.Actor).
		Str("post", in.Post).
		Msg("activity recorded")

	return nil
}
