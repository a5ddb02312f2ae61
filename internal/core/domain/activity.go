package domain

import "time"

// ActivityType labels an entry in the activity audit trail.
type ActivityType string

const (
	ActivityPostCreated ActivityType = "post_created"
	ActivityPostUpdated ActivityType = "post_updated"
	ActivityPostDeleted ActivityType = "post_deleted"
	ActivityPostLiked   ActivityType = "post_liked"
	ActivityPostUnliked ActivityType = "post_unliked"
)

// ActivityEvent records one user action on a post for the audit trail.
// Actor and Post are public IDs.
type ActivityEvent struct {
	Type      ActivityType
	Actor     string
	Post      string
	Timestamp time.Time
}
