package util

import (
	"github.com/google/uuid"
)

// NewID returns a random identifier suitable for seats and hands
func NewID() string {
	return uuid.New().String()
}
