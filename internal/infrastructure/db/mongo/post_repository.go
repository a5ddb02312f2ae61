package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pulsefeed/social-api/internal/core/domain"
)

const postsCollection = "posts"

type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{coll: db.Collection(postsCollection)}
}

type mongoPost struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	PublicID string             `bson:"public_id"`
	Author   string             `bson:"author"`
	Body     string             `bson:"body"`
	Edited   bool               `bson:"edited"`
	LikedBy  []string           `bson:"liked_by"`
	Created  int64              `bson:"created"`
	Updated  int64              `bson:"updated"`
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoPost{
		PublicID: post.PublicID,
		Author:   post.Author,
		Body:     post.Body,
		Edited:   post.Edited,
		LikedBy:  []string{},
		Created:  post.Created.Unix(),
		Updated:  post.Updated.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	return r.FindByPublicID(ctx, post.PublicID)
}

func (r *PostRepository) FindByPublicID(ctx context.Context, publicID string) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPost
	if err := r.coll.FindOne(ctx, bson.M{"public_id": publicID}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *PostRepository) List(ctx context.Context, page, limit int) ([]*domain.Post, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []*domain.Post
	for cursor.Next(ctx) {
		var mp mongoPost
		if err := cursor.Decode(&mp); err != nil {
			return nil, 0, fmt.Errorf("decode post: %w", err)
		}
		posts = append(posts, mp.toDomain())
	}
	return posts, total, cursor.Err()
}

// UpdateBody sets the body and, on the first mutation, the edited flag — both
// in a single update document so the transition is atomic.
func (r *PostRepository) UpdateBody(ctx context.Context, publicID, body string, markEdited bool) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"body":    body,
		"updated": time.Now().UTC().Unix(),
	}
	if markEdited {
		set["edited"] = true
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mp mongoPost
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"public_id": publicID}, bson.M{"$set": set}, opts).Decode(&mp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *PostRepository) Delete(ctx context.Context, publicID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"public_id": publicID})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// AddLike inserts userID into the liked-by set. $addToSet is atomic and keeps
// membership unique, so concurrent and repeated likes cannot double-count.
func (r *PostRepository) AddLike(ctx context.Context, publicID, userID string) error {
	return r.updateLikes(ctx, publicID, bson.M{"$addToSet": bson.M{"liked_by": userID}})
}

// RemoveLike pulls userID from the liked-by set; pulling an absent member
// matches the document and changes nothing.
func (r *PostRepository) RemoveLike(ctx context.Context, publicID, userID string) error {
	return r.updateLikes(ctx, publicID, bson.M{"$pull": bson.M{"liked_by": userID}})
}

func (r *PostRepository) updateLikes(ctx context.Context, publicID string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"public_id": publicID}, update)
	if err != nil {
		return fmt.Errorf("update likes: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing post lookups.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "public_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "author", Value: 1}}},
		{Keys: bson.D{{Key: "created", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (mp *mongoPost) toDomain() *domain.Post {
	likedBy := mp.LikedBy
	if likedBy == nil {
		likedBy = []string{}
	}
	return &domain.Post{
		ID:       mp.ID.Hex(),
		PublicID: mp.PublicID,
		Author:   mp.Author,
		Body:     mp.Body,
		Edited:   mp.Edited,
		LikedBy:  likedBy,
		Created:  unixToTime(mp.Created),
		Updated:  unixToTime(mp.Updated),
	}
}
