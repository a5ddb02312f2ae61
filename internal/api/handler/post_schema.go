package handler

import "time"

// --- Post request / response types ---

type createPostRequest struct {
	// Author is the public ID the client posts as; it must resolve to the
	// authenticated caller.
	Author string `json:"author" validate:"required"`
	Body   string `json:"body" validate:"required"`
}

type updatePostRequest struct {
	Author string `json:"author"`
	Body   string `json:"body" validate:"required"`
}

// postResponse is the public representation of a post. The author appears as
// a full nested profile, not a bare identifier. Liked and LikesCount are
// derived per caller at representation time.
type postResponse struct {
	ID         string       `json:"id"`
	Author     userResponse `json:"author"`
	Body       string       `json:"body"`
	Edited     bool         `json:"edited"`
	Liked      bool         `json:"liked"`
	LikesCount int          `json:"likes_count"`
	Created    time.Time    `json:"created"`
	Updated    time.Time    `json:"updated"`
}

type postListResponse struct {
	Count   int64          `json:"count"`
	Results []postResponse `json:"results"`
}
