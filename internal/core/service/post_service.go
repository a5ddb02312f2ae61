package service

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/pulsefeed/social-api/internal/api/metrics"
	"github.com/pulsefeed/social-api/internal/core/domain"
	"github.com/pulsefeed/social-api/internal/core/policy"
	"github.com/pulsefeed/social-api/internal/core/ports"
)

// PostService implements post CRUD and the like/unlike interaction.
type PostService struct {
	posts    ports.PostRepository
	users    ports.UserRepository
	activity ports.ActivitySink
	log      zerolog.Logger
}

func NewPostService(posts ports.PostRepository, users ports.UserRepository, activity ports.ActivitySink, log zerolog.Logger) *PostService {
	return &PostService{posts: posts, users: users, activity: activity, log: log}
}

// Create stores a new post. The submitted author public ID must resolve to
// the authenticated caller; the policy layer blocks anonymous callers before
// this point, and the check here re-validates at creation time.
func (s *PostService) Create(ctx context.Context, caller *domain.Caller, in ports.CreatePostInput) (*ports.PostDetail, error) {
	if caller == nil {
		return nil, domain.ErrUnauthorized
	}
	if in.Body == "" {
		return nil, domain.NewValidationError("body", "must not be empty")
	}

	authorID, err := domain.NormalizePublicID(in.Author)
	if err != nil || authorID != caller.PublicID {
		return nil, domain.NewValidationError("author", "cannot create a post for another user")
	}

	// Resolve the author once; also guards against tokens for deleted users.
	author, err := s.users.FindByPublicID(ctx, authorID)
	if err != nil {
		return nil, domain.NewValidationError("author", "unknown author")
	}

	now := time.Now().UTC()
	post := &domain.Post{
		PublicID: domain.NewPublicID(),
		Author:   author.PublicID,
		Body:     in.Body,
		LikedBy:  []string{},
		Created:  now,
		Updated:  now,
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create post")
		return nil, err
	}

	metrics.PostsCreatedTotal.Inc()
	s.record(ports.ActivityInput{Type: domain.ActivityPostCreated, Actor: caller.PublicID, Post: created.PublicID, Timestamp: now})
	s.log.Info().Str("post_id", created.PublicID).Str("author", author.PublicID).Msg("post created")

	return &ports.PostDetail{Post: created, Author: author}, nil
}

// Get returns the post with the given public ID and its resolved author.
// Malformed identifiers are indistinguishable from absent ones.
func (s *PostService) Get(ctx context.Context, publicID string) (*ports.PostDetail, error) {
	post, err := s.lookup(ctx, publicID)
	if err != nil {
		return nil, err
	}
	return s.withAuthor(ctx, post)
}

// List returns a page of posts, newest first, with authors resolved.
func (s *PostService) List(ctx context.Context, page, limit int) ([]*ports.PostDetail, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	posts, total, err := s.posts.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	// Authors repeat across a page; resolve each public ID once.
	authors := make(map[string]*domain.User, len(posts))
	details := make([]*ports.PostDetail, 0, len(posts))
	for _, p := range posts {
		author, ok := authors[p.Author]
		if !ok {
			author, err = s.users.FindByPublicID(ctx, p.Author)
			if err != nil {
				return nil, 0, err
			}
			authors[p.Author] = author
		}
		details = append(details, &ports.PostDetail{Post: p, Author: author})
	}
	return details, total, nil
}

// Update replaces the post body. Owner-only; the first successful update sets
// the edited flag in the same atomic storage update.
func (s *PostService) Update(ctx context.Context, caller *domain.Caller, publicID string, in ports.UpdatePostInput) (*ports.PostDetail, error) {
	post, err := s.lookup(ctx, publicID)
	if err != nil {
		return nil, err
	}

	if err := policy.CheckObject(caller, policy.PostItem, http.MethodPut, post.Author); err != nil {
		return nil, err
	}
	if in.Body == "" {
		return nil, domain.NewValidationError("body", "must not be empty")
	}
	// A submitted author must still resolve to the owner; ownership is never
	// reassignable.
	if in.Author != "" {
		authorID, err := domain.NormalizePublicID(in.Author)
		if err != nil || authorID != post.Author {
			return nil, domain.NewValidationError("author", "author cannot be changed")
		}
	}

	updated, err := s.posts.UpdateBody(ctx, post.PublicID, in.Body, !post.Edited)
	if err != nil {
		return nil, err
	}

	s.record(ports.ActivityInput{Type: domain.ActivityPostUpdated, Actor: caller.PublicID, Post: post.PublicID, Timestamp: time.Now().UTC()})
	s.log.Info().Str("post_id", post.PublicID).Msg("post updated")
	return s.withAuthor(ctx, updated)
}

// Delete removes a post. Owner-only.
func (s *PostService) Delete(ctx context.Context, caller *domain.Caller, publicID string) error {
	post, err := s.lookup(ctx, publicID)
	if err != nil {
		return err
	}

	if err := policy.CheckObject(caller, policy.PostItem, http.MethodDelete, post.Author); err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, post.PublicID); err != nil {
		return err
	}

	s.record(ports.ActivityInput{Type: domain.ActivityPostDeleted, Actor: caller.PublicID, Post: post.PublicID, Timestamp: time.Now().UTC()})
	s.log.Info().Str("post_id", post.PublicID).Msg("post deleted")
	return nil
}

// Like adds the caller to the post's liked-by set. The storage operation is
// an atomic set insert, so concurrent likes and repeated likes by the same
// user converge to a single membership.
func (s *PostService) Like(ctx context.Context, caller *domain.Caller, publicID string) (*ports.PostDetail, error) {
	return s.toggleLike(ctx, caller, publicID, true)
}

// Unlike removes the caller from the liked-by set. Removing an absent like is
// a silent no-op.
func (s *PostService) Unlike(ctx context.Context, caller *domain.Caller, publicID string) (*ports.PostDetail, error) {
	return s.toggleLike(ctx, caller, publicID, false)
}

func (s *PostService) toggleLike(ctx context.Context, caller *domain.Caller, publicID string, like bool) (*ports.PostDetail, error) {
	post, err := s.lookup(ctx, publicID)
	if err != nil {
		return nil, err
	}

	if err := policy.CheckObject(caller, policy.PostLike, http.MethodPost, post.Author); err != nil {
		return nil, err
	}

	action := "like"
	activityType := domain.ActivityPostLiked
	if like {
		err = s.posts.AddLike(ctx, post.PublicID, caller.PublicID)
	} else {
		action = "unlike"
		activityType = domain.ActivityPostUnliked
		err = s.posts.RemoveLike(ctx, post.PublicID, caller.PublicID)
	}
	if err != nil {
		return nil, err
	}

	metrics.LikesTotal.WithLabelValues(action).Inc()
	s.record(ports.ActivityInput{Type: activityType, Actor: caller.PublicID, Post: post.PublicID, Timestamp: time.Now().UTC()})

	// Re-read so the response reflects the membership change.
	fresh, err := s.posts.FindByPublicID(ctx, post.PublicID)
	if err != nil {
		return nil, err
	}
	return s.withAuthor(ctx, fresh)
}

func (s *PostService) lookup(ctx context.Context, publicID string) (*domain.Post, error) {
	id, err := domain.NormalizePublicID(publicID)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}
	return s.posts.FindByPublicID(ctx, id)
}

func (s *PostService) withAuthor(ctx context.Context, post *domain.Post) (*ports.PostDetail, error) {
	author, err := s.users.FindByPublicID(ctx, post.Author)
	if err != nil {
		return nil, err
	}
	return &ports.PostDetail{Post: post, Author: author}, nil
}

func (s *PostService) record(event ports.ActivityInput) {
	if s.activity != nil {
		s.activity.Enqueue(event)
	}
}
