package utils

import "github.com/google/uuid"

// NewToken returns a random opaque token.
func NewToken() string {
	return uuid.NewString()
}
