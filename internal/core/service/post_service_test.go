package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pulsefeed/social-api/internal/core/domain"
	"github.com/pulsefeed/social-api/internal/core/ports"
)

type postFixture struct {
	svc   *PostService
	posts *stubPostRepo
	users *stubUserRepo
	sink  *stubSink
	alice *domain.User
	bob   *domain.User
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()
	users := newStubUserRepo()
	posts := newStubPostRepo()
	sink := &stubSink{}

	now := time.Now().UTC()
	alice := &domain.User{PublicID: domain.NewPublicID(), Username: "alice", Email: "alice@example.com", IsActive: true, Created: now, Updated: now}
	bob := &domain.User{PublicID: domain.NewPublicID(), Username: "bob", Email: "bob@example.com", IsActive: true, Created: now, Updated: now}
	if _, err := users.Create(context.Background(), alice); err != nil {
		t.Fatalf("seed alice: %v", err)
	}
	if _, err := users.Create(context.Background(), bob); err != nil {
		t.Fatalf("seed bob: %v", err)
	}

	return &postFixture{
		svc:   NewPostService(posts, users, sink, zerolog.Nop()),
		posts: posts,
		users: users,
		sink:  sink,
		alice: alice,
		bob:   bob,
	}
}

func caller(u *domain.User) *domain.Caller {
	return &domain.Caller{PublicID: u.PublicID, Username: u.Username, Superuser: u.IsSuperuser}
}

func (f *postFixture) createPost(t *testing.T, author *domain.User, body string) *ports.PostDetail {
	t.Helper()
	detail, err := f.svc.Create(context.Background(), caller(author), ports.CreatePostInput{Author: author.PublicID, Body: body})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	return detail
}

func TestPostService_Create_AuthorMustBeCaller(t *testing.T) {
	f := newPostFixture(t)

	// Submitting another user's public ID as author is a validation error.
	_, err := f.svc.Create(context.Background(), caller(f.alice), ports.CreatePostInput{Author: f.bob.PublicID, Body: "hi"})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != "author" {
		t.Fatalf("expected author field error, got %q", ve.Field)
	}
}

func TestPostService_Create_Success(t *testing.T) {
	f := newPostFixture(t)

	detail := f.createPost(t, f.alice, "first post")
	if detail.Post.Author != f.alice.PublicID {
		t.Fatalf("author mismatch: %q", detail.Post.Author)
	}
	if detail.Post.Edited {
		t.Fatalf("new post must not be edited")
	}
	if detail.Post.LikesCount() != 0 {
		t.Fatalf("new post must have zero likes")
	}
	if detail.Author.PublicID != f.alice.PublicID {
		t.Fatalf("expected resolved author")
	}
	if f.sink.count(domain.ActivityPostCreated) != 1 {
		t.Fatalf("expected one post_created activity event")
	}
}

func TestPostService_Create_DashedAuthorIDAccepted(t *testing.T) {
	f := newPostFixture(t)

	// Public IDs are accepted in dashed UUID form and normalized.
	dashed := f.alice.PublicID[:8] + "-" + f.alice.PublicID[8:12] + "-" + f.alice.PublicID[12:16] + "-" + f.alice.PublicID[16:20] + "-" + f.alice.PublicID[20:]
	detail, err := f.svc.Create(context.Background(), caller(f.alice), ports.CreatePostInput{Author: dashed, Body: "hi"})
	if err != nil {
		t.Fatalf("dashed author rejected: %v", err)
	}
	if detail.Post.Author != f.alice.PublicID {
		t.Fatalf("expected canonical author id, got %q", detail.Post.Author)
	}
}

func TestPostService_Get_MalformedIDIsNotFound(t *testing.T) {
	f := newPostFixture(t)

	if _, err := f.svc.Get(context.Background(), "not-a-uuid"); err != domain.ErrPostNotFound {
		t.Fatalf("expected ErrPostNotFound for malformed id, got %v", err)
	}
	if _, err := f.svc.Get(context.Background(), domain.NewPublicID()); err != domain.ErrPostNotFound {
		t.Fatalf("expected ErrPostNotFound for absent id, got %v", err)
	}
}

func TestPostService_Update_EditedIsMonotonic(t *testing.T) {
	f := newPostFixture(t)
	detail := f.createPost(t, f.alice, "v1")

	first, err := f.svc.Update(context.Background(), caller(f.alice), detail.Post.PublicID, ports.UpdatePostInput{Body: "v2"})
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	if !first.Post.Edited {
		t.Fatalf("edited must be true after first update")
	}

	second, err := f.svc.Update(context.Background(), caller(f.alice), detail.Post.PublicID, ports.UpdatePostInput{Body: "v3"})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if !second.Post.Edited {
		t.Fatalf("edited must stay true")
	}
	if second.Post.Body != "v3" {
		t.Fatalf("body not updated: %q", second.Post.Body)
	}
}

func TestPostService_Update_NonOwnerForbidden(t *testing.T) {
	f := newPostFixture(t)
	detail := f.createPost(t, f.alice, "mine")

	if _, err := f.svc.Update(context.Background(), caller(f.bob), detail.Post.PublicID, ports.UpdatePostInput{Body: "hijack"}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestPostService_Delete_OwnerOnly(t *testing.T) {
	f := newPostFixture(t)
	detail := f.createPost(t, f.alice, "to delete")

	if err := f.svc.Delete(context.Background(), caller(f.bob), detail.Post.PublicID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
	if err := f.svc.Delete(context.Background(), caller(f.alice), detail.Post.PublicID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if _, err := f.svc.Get(context.Background(), detail.Post.PublicID); err != domain.ErrPostNotFound {
		t.Fatalf("expected post gone, got %v", err)
	}
}

func TestPostService_Like_Idempotent(t *testing.T) {
	f := newPostFixture(t)
	detail := f.createPost(t, f.alice, "likeable")

	first, err := f.svc.Like(context.Background(), caller(f.bob), detail.Post.PublicID)
	if err != nil {
		t.Fatalf("like failed: %v", err)
	}
	if first.Post.LikesCount() != 1 {
		t.Fatalf("expected 1 like, got %d", first.Post.LikesCount())
	}

	second, err := f.svc.Like(context.Background(), caller(f.bob), detail.Post.PublicID)
	if err != nil {
		t.Fatalf("second like failed: %v", err)
	}
	if second.Post.LikesCount() != 1 {
		t.Fatalf("liking twice must not double-count, got %d", second.Post.LikesCount())
	}
	if !second.Post.LikedByUser(f.bob.PublicID) {
		t.Fatalf("expected bob in liked-by set")
	}
}

func TestPostService_Unlike_RemovesMembership(t *testing.T) {
	f := newPostFixture(t)
	detail := f.createPost(t, f.alice, "likeable")

	if _, err := f.svc.Like(context.Background(), caller(f.bob), detail.Post.PublicID); err != nil {
		t.Fatalf("like failed: %v", err)
	}
	after, err := f.svc.Unlike(context.Background(), caller(f.bob), detail.Post.PublicID)
	if err != nil {
		t.Fatalf("unlike failed: %v", err)
	}
	if after.Post.LikesCount() != 0 {
		t.Fatalf("expected 0 likes, got %d", after.Post.LikesCount())
	}
}

func TestPostService_Unlike_AbsentLikeIsNoOp(t *testing.T) {
	f := newPostFixture(t)
	detail := f.createPost(t, f.alice, "never liked")

	after, err := f.svc.Unlike(context.Background(), caller(f.bob), detail.Post.PublicID)
	if err != nil {
		t.Fatalf("unlike of absent like must succeed, got %v", err)
	}
	if after.Post.LikesCount() != 0 {
		t.Fatalf("expected 0 likes, got %d", after.Post.LikesCount())
	}
}

func TestPostService_List_NewestFirstWithAuthors(t *testing.T) {
	f := newPostFixture(t)
	f.createPost(t, f.alice, "older")
	f.createPost(t, f.bob, "newer")

	details, total, err := f.svc.List(context.Background(), 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(details) != 2 {
		t.Fatalf("expected 2 posts, got %d (total %d)", len(details), total)
	}
	if details[0].Post.Body != "newer" {
		t.Fatalf("expected newest first, got %q", details[0].Post.Body)
	}
	if details[0].Author.Username != "bob" || details[1].Author.Username != "alice" {
		t.Fatalf("authors not resolved correctly")
	}
}
