package domain

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// NewPublicID generates a fresh public identifier: a random UUID rendered as
// 32 lowercase hex characters, with no dashes.
func NewPublicID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// NormalizePublicID parses caller-supplied identifier input (dashed or
// undashed UUID forms) into the canonical undashed hex form. A malformed
// identifier is reported as ErrPostNotFound or ErrUserNotFound by the caller,
// never as a distinct error: externally, malformed and absent are the same.
func NormalizePublicID(s string) (string, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(u[:]), nil
}
