package domain

import "time"

// Post is a single piece of user-authored content. Author holds the public ID
// of the owning user and is set exactly once, at creation. Edited flips to
// true on the first successful update and never goes back.
type Post struct {
	ID       string
	PublicID string
	Author   string
	Body     string
	Edited   bool
	LikedBy  []string
	Created  time.Time
	Updated  time.Time
}

// LikedByUser reports whether the user with the given public ID currently
// likes the post.
func (p *Post) LikedByUser(publicID string) bool {
	for _, id := range p.LikedBy {
		if id == publicID {
			return true
		}
	}
	return false
}

// LikesCount returns the number of distinct users liking the post.
func (p *Post) LikesCount() int {
	return len(p.LikedBy)
}
