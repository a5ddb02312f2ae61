package service

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/pulsefeed/social-api/internal/core/domain"
	"github.com/pulsefeed/social-api/internal/core/ports"
)

// --- user repository stub ---

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // keyed by public ID
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	copy.ID = "row-" + copy.PublicID
	r.users[copy.PublicID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByPublicID(_ context.Context, publicID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[publicID]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, includeSuperusers bool) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		if u.IsSuperuser && !includeSuperusers {
			continue
		}
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, publicID string, fields ports.UserUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[publicID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if fields.Username != nil {
		u.Username = *fields.Username
	}
	if fields.FirstName != nil {
		u.FirstName = *fields.FirstName
	}
	if fields.LastName != nil {
		u.LastName = *fields.LastName
	}
	if fields.Bio != nil {
		u.Bio = *fields.Bio
	}
	if fields.Avatar != nil {
		u.Avatar = *fields.Avatar
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) MarkSuperuser(_ context.Context, publicID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[publicID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.IsSuperuser = true
	return cloneUser(u), nil
}

// --- post repository stub ---

type stubPostRepo struct {
	mu    sync.Mutex
	posts map[string]*domain.Post
	order []string
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post)}
}

func clonePost(p *domain.Post) *domain.Post {
	if p == nil {
		return nil
	}
	clone := *p
	clone.LikedBy = append([]string(nil), p.LikedBy...)
	return &clone
}

func (r *stubPostRepo) Create(_ context.Context, post *domain.Post) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := clonePost(post)
	copy.ID = "row-" + copy.PublicID
	r.posts[copy.PublicID] = clonePost(copy)
	r.order = append(r.order, copy.PublicID)
	return clonePost(copy), nil
}

func (r *stubPostRepo) FindByPublicID(_ context.Context, publicID string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.posts[publicID]; ok {
		return clonePost(p), nil
	}
	return nil, domain.ErrPostNotFound
}

func (r *stubPostRepo) List(_ context.Context, page, limit int) ([]*domain.Post, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Post, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		out = append(out, clonePost(r.posts[r.order[i]]))
	}
	return out, int64(len(out)), nil
}

func (r *stubPostRepo) UpdateBody(_ context.Context, publicID, body string, markEdited bool) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[publicID]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	p.Body = body
	if markEdited {
		p.Edited = true
	}
	return clonePost(p), nil
}

func (r *stubPostRepo) Delete(_ context.Context, publicID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[publicID]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, publicID)
	for i, id := range r.order {
		if id == publicID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *stubPostRepo) AddLike(_ context.Context, publicID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[publicID]
	if !ok {
		return domain.ErrPostNotFound
	}
	for _, id := range p.LikedBy {
		if id == userID {
			return nil
		}
	}
	p.LikedBy = append(p.LikedBy, userID)
	return nil
}

func (r *stubPostRepo) RemoveLike(_ context.Context, publicID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[publicID]
	if !ok {
		return domain.ErrPostNotFound
	}
	for i, id := range p.LikedBy {
		if id == userID {
			p.LikedBy = append(p.LikedBy[:i], p.LikedBy[i+1:]...)
			return nil
		}
	}
	return nil
}

// --- refresh token store stub ---

type stubTokenStore struct {
	mu     sync.Mutex
	seq    int
	tokens map[string]string
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{tokens: make(map[string]string)}
}

func (s *stubTokenStore) Issue(_ context.Context, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	token := "refresh-" + userID + "-" + strconv.Itoa(s.seq)
	s.tokens[token] = userID
	return token, nil
}

func (s *stubTokenStore) Redeem(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.tokens[token]
	if !ok {
		return "", domain.ErrInvalidToken
	}
	delete(s.tokens, token)
	return userID, nil
}

// --- activity sink stub ---

type stubSink struct {
	mu     sync.Mutex
	events []ports.ActivityInput
}

func (s *stubSink) Enqueue(event ports.ActivityInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *stubSink) count(t domain.ActivityType) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// --- activity repository stub ---

type stubActivityRepo struct {
	mu     sync.Mutex
	events []*domain.ActivityEvent
}

func (r *stubActivityRepo) Insert(_ context.Context, event *domain.ActivityEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := *event
	r.events = append(r.events, &copy)
	return nil
}

func (r *stubActivityRepo) ListByPost(_ context.Context, postID string, limit int) ([]*domain.ActivityEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.ActivityEvent, 0)
	for _, e := range r.events {
		if e.Post == postID {
			copy := *e
			out = append(out, &copy)
		}
	}
	return out, nil
}
