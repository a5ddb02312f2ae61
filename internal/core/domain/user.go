package domain

import "time"

// User models an account in the system. PublicID is the only identifier that
// ever leaves the server; the storage key stays internal.
type User struct {
	ID           string    `json:"-"`
	PublicID     string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Bio          string    `json:"bio,omitempty"`
	Avatar       string    `json:"avatar,omitempty"`
	IsActive     bool      `json:"is_active"`
	IsSuperuser  bool      `json:"-"`
	Created      time.Time `json:"created"`
	Updated      time.Time `json:"updated"`
}

// Name returns the user's display name.
func (u *User) Name() string {
	return u.FirstName + " " + u.LastName
}

// Caller identifies the authenticated actor behind a request. A nil *Caller
// means the request is anonymous.
type Caller struct {
	PublicID  string
	Username  string
	Superuser bool
}

// Is reports whether the caller is the user with the given public ID.
func (c *Caller) Is(publicID string) bool {
	return c != nil && c.PublicID == publicID
}
