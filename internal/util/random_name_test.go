package util

import (
	"github.com/stretchr/testify/assert"
	"math/rand"
	"strings"
	"testing"
)

func TestGetRandomName(t *testing.T) {
	random = rand.New(rand.NewSource(0)) // nolint:gosec
	first := GetRandomName()

	random = rand.New(rand.NewSource(0)) // nolint:gosec
	assert.Equal(t, first, GetRandomName(), "same seed, same name")

	parts := strings.Split(first, " ")
	if assert.Len(t, parts, 2) {
		assert.Contains(t, adjectives, parts[0])
		assert.Contains(t, animals, parts[1])
	}
}
