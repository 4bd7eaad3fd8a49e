package util

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestNewID(t *testing.T) {
	id1 := NewID()
	id2 := NewID()

	assert.Len(t, id1, 36)
	assert.NotEqual(t, id1, id2)
}
