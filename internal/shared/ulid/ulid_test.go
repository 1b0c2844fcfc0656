package ulid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewULID(t *testing.T) {
	t.Parallel()

	first := NewULID()
	second := NewULID()

	assert.Len(t, first, 26)
	assert.NotEqual(t, first, second)
	assert.True(t, IsULID(first))
}

func TestIsULID(t *testing.T) {
	t.Parallel()

	assert.True(t, IsULID("01ARZ3NDEKTSV4RRFFQ69G5FAV"))
	assert.False(t, IsULID(""))
	assert.False(t, IsULID("ada"))
	assert.False(t, IsULID("01ARZ3NDEKTSV4RRFFQ69G5FA"))
	assert.False(t, IsULID("01ARZ3NDEKTSV4RRFFQ69G5FA!"))
}
