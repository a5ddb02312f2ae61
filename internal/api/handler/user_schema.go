package handler

import "time"

// --- Auth request / response types ---

type registerRequest struct {
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Avatar    string `json:"avatar"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type authResponse struct {
	Access  string        `json:"access,omitempty"`
	Refresh string        `json:"refresh,omitempty"`
	User    *userResponse `json:"user,omitempty"`
}

// --- User request / response types ---

// userResponse is the public representation of a user. ID carries the public
// identifier; the storage key never appears. is_active is read-only for
// clients.
type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Bio       string    `json:"bio"`
	Avatar    string    `json:"avatar"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	Created   time.Time `json:"created"`
	Updated   time.Time `json:"updated"`
}

// updateUserRequest carries the client-writable profile fields. Pointer
// fields distinguish "absent" from "set to empty".
type updateUserRequest struct {
	Username  *string `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Avatar    *string `json:"avatar"`
}

type userListResponse struct {
	Count   int            `json:"count"`
	Results []userResponse `json:"results"`
}
