package precompute

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vchainplus/core/internal/algebra"
)

func TestScalarPowersSequential(t *testing.T) {
	assert := require.New(t)
	x, err := algebra.RandomScalar(rand.Reader)
	assert.NoError(err)

	pows := ScalarPowers(x, 5)
	assert.Len(pows, 5)

	var one algebra.Scalar
	one.SetOne()
	assert.True(pows[0].Equal(&one))

	var want algebra.Scalar
	want.SetOne()
	for i := 1; i < 5; i++ {
		want.Mul(&want, &x)
		assert.True(pows[i].Equal(&want))
	}
}

func TestScalarPowersParallelMatchesSequential(t *testing.T) {
	assert := require.New(t)
	x, err := algebra.RandomScalar(rand.Reader)
	assert.NoError(err)

	const n = minParallelChunk*2 + 7
	pows := ScalarPowers(x, n)
	assert.Len(pows, n)

	var want algebra.Scalar
	want.SetOne()
	assert.True(pows[0].Equal(&want))
	for i := 1; i < n; i++ {
		want.Mul(&want, &x)
		assert.True(pows[i].Equal(&want))
	}
}

func TestFixedBaseTableMatchesScalarMul(t *testing.T) {
	assert := require.New(t)
	g := algebra.GenG1()
	tbl := NewFixedBaseTableG1(g, 4)

	k, err := algebra.RandomScalar(rand.Reader)
	assert.NoError(err)

	got := tbl.Pow(k)
	want := algebra.ScalarMulG1(g, &k)
	assert.True(got.Equal(&want))
}

func TestFixedBaseTableG2MatchesScalarMul(t *testing.T) {
	assert := require.New(t)
	h := algebra.GenH2()
	tbl := NewFixedBaseTableG2(h, 8)

	k, err := algebra.RandomScalar(rand.Reader)
	assert.NoError(err)

	got := tbl.Pow(k)
	want := algebra.ScalarMulG2(h, &k)
	assert.True(got.Equal(&want))
}

func TestFixedBaseTableZero(t *testing.T) {
	assert := require.New(t)
	g := algebra.GenG1()
	tbl := NewFixedBaseTableG1(g, 4)

	var zero algebra.Scalar
	got := tbl.Pow(zero)
	identity := algebra.IdentityG1()
	assert.True(got.Equal(&identity))
}
