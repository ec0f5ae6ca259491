package setops

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vchainplus/core/internal/vchainerr"
)

func TestSetOps(t *testing.T) {
	assert := require.New(t)
	a := New(1, 2, 3)
	b := New(2, 3, 4)

	assert.True(a.Union(b).Equal(New(1, 2, 3, 4)))
	assert.True(a.Intersect(b).Equal(New(2, 3)))
	assert.True(a.Difference(b).Equal(New(1)))
	assert.False(a.Equal(b))
}

func TestSetValidateOutOfUniverse(t *testing.T) {
	assert := require.New(t)
	s := New(0, 5)
	assert.ErrorIs(s.Validate(5), vchainerr.ErrOutOfUniverse)
	assert.NoError(s.Validate(6))
}

func TestSetCloneIsIndependent(t *testing.T) {
	assert := require.New(t)
	a := New(1, 2)
	b := a.Clone()
	b[99] = struct{}{}
	assert.False(a.Contains(99))
	assert.True(b.Contains(99))
}

func TestEmptySetIsIdentityForUnion(t *testing.T) {
	assert := require.New(t)
	a := New(1, 2, 3)
	assert.True(a.Union(New()).Equal(a))
	assert.Equal(0, a.Intersect(New()).Len())
	assert.True(a.Difference(New()).Equal(a))
}
