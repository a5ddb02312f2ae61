package handler

import (
	"github.com/pulsefeed/social-api/internal/core/domain"
	"github.com/pulsefeed/social-api/internal/core/ports"
)

// toUserResponse shapes a user for output. Pure function: storage access has
// already happened by the time it runs.
func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.PublicID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Avatar:    u.Avatar,
		Email:     u.Email,
		IsActive:  u.IsActive,
		Created:   u.Created,
		Updated:   u.Updated,
	}
}

// toPostResponse shapes a post for output, embedding the resolved author and
// computing the caller-dependent fields: liked is always false for anonymous
// callers, likes_count is the liked-by set cardinality.
func toPostResponse(d *ports.PostDetail, caller *domain.Caller) postResponse {
	liked := caller != nil && d.Post.LikedByUser(caller.PublicID)
	return postResponse{
		ID:         d.Post.PublicID,
		Author:     toUserResponse(d.Author),
		Body:       d.Post.Body,
		Edited:     d.Post.Edited,
		Liked:      liked,
		LikesCount: d.Post.LikesCount(),
		Created:    d.Post.Created,
		Updated:    d.Post.Updated,
	}
}

func toPostListResponse(details []*ports.PostDetail, total int64, caller *domain.Caller) postListResponse {
	results := make([]postResponse, 0, len(details))
	for _, d := range details {
		results = append(results, toPostResponse(d, caller))
	}
	return postListResponse{Count: total, Results: results}
}

func toUserListResponse(users []*domain.User) userListResponse {
	results := make([]userResponse, 0, len(users))
	for _, u := range users {
		results = append(results, toUserResponse(u))
	}
	return userListResponse{Count: len(results), Results: results}
}
