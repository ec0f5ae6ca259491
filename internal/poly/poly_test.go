package poly

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vchainplus/core/internal/algebra"
	"github.com/vchainplus/core/internal/setops"
)

func scalar(v int64) algebra.Scalar {
	var s algebra.Scalar
	s.SetInt64(v)
	return s
}

func TestPolyASingleTermPerElement(t *testing.T) {
	assert := require.New(t)
	p := PolyA(setops.New(1, 3))
	assert.Equal(2, p.Len())
	c, ok := p[Term{0, 1}]
	assert.True(ok)
	assert.True(c.Equal(scalarPtr(1)))
	_, ok = p[Term{0, 3}]
	assert.True(ok)
}

func scalarPtr(v int64) *algebra.Scalar {
	s := scalar(v)
	return &s
}

func TestPolyBIndexing(t *testing.T) {
	assert := require.New(t)
	p := PolyB(setops.New(2), 8)
	c, ok := p[Term{2, 6}]
	assert.True(ok)
	assert.True(c.Equal(scalarPtr(1)))
}

func TestMulIsCauchyProduct(t *testing.T) {
	assert := require.New(t)
	// p = S^1 (coeff 1 at (0,1)); q = R^2 S^3 (coeff 1 at (2,3))
	p := New()
	p.Set(0, 1, scalar(1))
	q := New()
	q.Set(2, 3, scalar(1))

	prod := p.Mul(q)
	assert.Equal(1, prod.Len())
	c, ok := prod[Term{2, 4}]
	assert.True(ok)
	assert.True(c.Equal(scalarPtr(1)))
}

func TestMulDistributesOverMultipleTerms(t *testing.T) {
	assert := require.New(t)
	p := PolyA(setops.New(0, 1))     // S^0 + S^1
	q := PolyB(setops.New(1), 4)     // R^1 S^3
	prod := p.Mul(q)
	assert.Equal(2, prod.Len())
	_, ok := prod[Term{1, 3}]
	assert.True(ok)
	_, ok = prod[Term{1, 4}]
	assert.True(ok)
}

func TestRemoveSliceSplitsByJ(t *testing.T) {
	assert := require.New(t)
	p := New()
	p.Set(0, 8, scalar(1))
	p.Set(1, 8, scalar(2))
	p.Set(2, 5, scalar(3))

	rest, slice := p.RemoveSlice(8)
	assert.Equal(1, rest.Len())
	_, ok := rest[Term{2, 5}]
	assert.True(ok)

	assert.Len(slice, 2)
	assert.True(slice[0].Equal(scalarPtr(1)))
	assert.True(slice[1].Equal(scalarPtr(2)))
}

func TestAddSubRoundTrip(t *testing.T) {
	assert := require.New(t)
	p := PolyA(setops.New(0, 1))
	q := PolyA(setops.New(1, 2))

	sum := p.Add(q)
	back := sum.Sub(q)
	assert.Equal(p.Len(), back.Len())
	for term, c := range p {
		bc, ok := back[term]
		assert.True(ok)
		assert.True(c.Equal(&bc))
	}
}

func TestCoeffIterWithIndexIsSorted(t *testing.T) {
	assert := require.New(t)
	p := New()
	p.Set(1, 0, scalar(1))
	p.Set(0, 5, scalar(2))
	p.Set(0, 1, scalar(3))

	terms := p.CoeffIterWithIndex()
	assert.Len(terms, 3)
	assert.Equal(Term{0, 1}, terms[0].Term)
	assert.Equal(Term{0, 5}, terms[1].Term)
	assert.Equal(Term{1, 0}, terms[2].Term)
}
