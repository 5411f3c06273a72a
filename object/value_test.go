package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthiness(t *testing.T) {
	assert.False(t, Truthy(nil))
	assert.False(t, Truthy(false))
	assert.True(t, Truthy(true))
	assert.True(t, Truthy(0.0))
	assert.True(t, Truthy(""))
}

func TestEqualAcrossDistinctKinds(t *testing.T) {
	assert.False(t, Equal(1.0, "1"))
	assert.False(t, Equal(nil, false))
	assert.True(t, Equal(nil, nil))
	assert.True(t, Equal(1.0, 1.0))
	assert.True(t, Equal("a", "a"))
}

func TestStringifyLiterals(t *testing.T) {
	assert.Equal(t, "nil", Stringify(nil))
	assert.Equal(t, "true", Stringify(true))
	assert.Equal(t, "3", Stringify(3.0))
	assert.Equal(t, "hello", Stringify("hello"))
}
