package ports

import (
	"context"
	"time"

	"github.com/pulsefeed/social-api/internal/core/domain"
)

// ActivityInput is the DTO handed to the dispatcher for async recording.
type ActivityInput struct {
	Type      domain.ActivityType
	Actor     string
	Post      string
	Timestamp time.Time
}

// ActivitySink accepts activity events for asynchronous processing. The
// dispatcher implements it; services enqueue through it without blocking the
// request path.
type ActivitySink interface {
	Enqueue(event ActivityInput)
}

// ActivityService persists activity events to the audit trail.
type ActivityService interface {
	Record(ctx context.Context, event ActivityInput) error
}

// ActivityRepository handles audit-trail persistence.
type ActivityRepository interface {
	Insert(ctx context.Context, event *domain.ActivityEvent) error
	// ListByPost returns the audit entries for one post, oldest first.
	ListByPost(ctx context.Context, postID string, limit int) ([]*domain.ActivityEvent, error)
}
