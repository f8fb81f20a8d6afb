package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a random UUID; every stored entity is keyed by one
func GenerateID() string {
	return uuid.NewString()
}
