// Package policy decides, per request, whether an operation is permitted.
//
// Authorization happens in two stages. CheckRequest runs before the target
// object is loaded and only looks at the verb and the caller's state, so
// obviously-disallowed requests never trigger a fetch. CheckObject runs after
// the load and adds the ownership dimension. Handlers call the first; services
// call the second after resolving the target.
package policy

import (
	"net/http"

	"github.com/pulsefeed/social-api/internal/core/domain"
)

// Resource identifies what kind of target a request addresses.
type Resource int

const (
	PostCollection Resource = iota
	PostItem
	PostLike
	UserCollection
	UserItem
)

// safeMethod reports whether the verb is read-only.
func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// CheckRequest is the coarse, pre-load check. It returns ErrUnauthorized when
// an anonymous caller needs authentication and ErrForbidden when an
// authenticated caller is denied at the verb level.
func CheckRequest(caller *domain.Caller, res Resource, method string) error {
	switch res {
	case PostCollection, PostItem:
		if safeMethod(method) {
			return nil
		}
		if caller == nil {
			return domain.ErrUnauthorized
		}
		return nil
	case PostLike:
		if caller == nil {
			return domain.ErrUnauthorized
		}
		return nil
	case UserCollection, UserItem:
		// User data requires authentication even for reads.
		if caller == nil {
			return domain.ErrUnauthorized
		}
		if safeMethod(method) || method == http.MethodPatch {
			return nil
		}
		return domain.ErrForbidden
	}
	return domain.ErrForbidden
}

// CheckObject is the fine, post-load check. ownerID is the public ID of the
// user owning the target: the post's author, or the user record itself.
func CheckObject(caller *domain.Caller, res Resource, method string, ownerID string) error {
	if safeMethod(method) && (res == PostCollection || res == PostItem) {
		return nil
	}
	if caller == nil {
		return domain.ErrUnauthorized
	}

	switch res {
	case PostCollection, PostLike:
		// Any authenticated user may create posts and toggle likes.
		return nil
	case PostItem:
		// Item-level mutation is owner-only.
		if caller.Is(ownerID) {
			return nil
		}
		return domain.ErrForbidden
	case UserItem:
		if safeMethod(method) {
			return nil
		}
		// Self-service only: PATCH requires caller == target.
		if caller.Is(ownerID) {
			return nil
		}
		return domain.ErrForbidden
	case UserCollection:
		return nil
	}
	return domain.ErrForbidden
}
