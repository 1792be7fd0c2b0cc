package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomSourceBytes(t *testing.T) {
	rs := NewRandomSource()

	buf := rs.Bytes(32)
	assert.Len(t, buf, 32)
	assert.NotEqual(t, make([]byte, 32), buf, "32 random bytes should not be all zero")

	other := rs.Bytes(32)
	assert.False(t, bytes.Equal(buf, other), "consecutive reads should differ")
}

func TestRandomSourceZeroLength(t *testing.T) {
	rs := NewRandomSource()
	assert.Empty(t, rs.Bytes(0))
}

func TestRandomSourceNotDegradedByDefault(t *testing.T) {
	// With a working system CSPRNG the fallback path is never taken.
	rs := NewRandomSource()
	rs.Bytes(16)
	assert.False(t, rs.Degraded())
}
