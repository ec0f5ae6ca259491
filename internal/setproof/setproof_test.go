package setproof

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vchainplus/core/internal/accumulator"
	"github.com/vchainplus/core/internal/index"
	"github.com/vchainplus/core/internal/keys"
	"github.com/vchainplus/core/internal/setops"
)

func testLeaf(t *testing.T, pk *keys.PublicKey, set setops.Set) index.Leaf {
	t.Helper()
	acc, err := accumulator.Accumulate(pk, set)
	require.NoError(t, err)
	br2, err := index.ComputeBR2(pk, set)
	require.NoError(t, err)
	return index.Leaf{Set: set, Acc: acc, BR2: br2}
}

func TestProveVerifyIntersection(t *testing.T) {
	assert := require.New(t)
	_, pk, err := keys.GenKeys(8, rand.Reader)
	assert.NoError(err)

	left := testLeaf(t, pk, setops.New(0, 1, 2, 3))
	right := testLeaf(t, pk, setops.New(2, 3, 4, 5))

	y, accY, proof, err := ProveOp(Intersection, left, right, pk)
	assert.NoError(err)
	assert.True(y.Equal(setops.New(2, 3)))

	err = VerifyOp(Intersection, left.Acc, right.Acc, accY, right.BR2, proof, pk)
	assert.NoError(err)
}

func TestProveVerifyUnion(t *testing.T) {
	assert := require.New(t)
	_, pk, err := keys.GenKeys(8, rand.Reader)
	assert.NoError(err)

	left := testLeaf(t, pk, setops.New(0, 1))
	right := testLeaf(t, pk, setops.New(1, 2))

	y, accY, proof, err := ProveOp(Union, left, right, pk)
	assert.NoError(err)
	assert.True(y.Equal(setops.New(0, 1, 2)))

	err = VerifyOp(Union, left.Acc, right.Acc, accY, right.BR2, proof, pk)
	assert.NoError(err)
}

func TestProveVerifyDifference(t *testing.T) {
	assert := require.New(t)
	_, pk, err := keys.GenKeys(8, rand.Reader)
	assert.NoError(err)

	left := testLeaf(t, pk, setops.New(0, 1, 2))
	right := testLeaf(t, pk, setops.New(1))

	y, accY, proof, err := ProveOp(Difference, left, right, pk)
	assert.NoError(err)
	assert.True(y.Equal(setops.New(0, 2)))

	err = VerifyOp(Difference, left.Acc, right.Acc, accY, right.BR2, proof, pk)
	assert.NoError(err)
}

func TestVerifyRejectsTamperedResult(t *testing.T) {
	for _, op := range []Op{Intersection, Union, Difference} {
		op := op
		t.Run(op.String(), func(t *testing.T) {
			assert := require.New(t)
			_, pk, err := keys.GenKeys(8, rand.Reader)
			assert.NoError(err)

			left := testLeaf(t, pk, setops.New(0, 1, 2, 3))
			right := testLeaf(t, pk, setops.New(2, 3, 4, 5))

			_, accY, proof, err := ProveOp(op, left, right, pk)
			assert.NoError(err)

			// A verifier checking a claimed result accumulator that does not
			// match what the proof actually attests to must reject, no
			// matter which operator is in play.
			bogus, err := accumulator.Accumulate(pk, setops.New(6, 7))
			assert.NoError(err)

			err = VerifyOp(op, left.Acc, right.Acc, bogus, right.BR2, proof, pk)
			assert.Error(err)
			_ = accY
		})
	}
}

func TestVerifyRejectsForgedIntersectionWitness(t *testing.T) {
	for _, op := range []Op{Intersection, Union, Difference} {
		op := op
		t.Run(op.String(), func(t *testing.T) {
			assert := require.New(t)
			_, pk, err := keys.GenKeys(8, rand.Reader)
			assert.NoError(err)

			left := testLeaf(t, pk, setops.New(0, 1, 2, 3))
			right := testLeaf(t, pk, setops.New(2, 3, 4, 5))

			_, accY, proof, err := ProveOp(op, left, right, pk)
			assert.NoError(err)

			// Substituting a well-formed but wrong AccI (the attested
			// intersection witness) must be rejected by the step-4
			// recombination check even though AccI alone is well-formed.
			forged, err := accumulator.Accumulate(pk, setops.New(0))
			assert.NoError(err)
			tampered := proof
			tampered.AccI = forged

			err = VerifyOp(op, left.Acc, right.Acc, accY, right.BR2, tampered, pk)
			assert.Error(err)
		})
	}
}

func TestVerifyRejectsWrongOpTag(t *testing.T) {
	assert := require.New(t)
	_, pk, err := keys.GenKeys(8, rand.Reader)
	assert.NoError(err)

	left := testLeaf(t, pk, setops.New(0, 1, 2, 3))
	right := testLeaf(t, pk, setops.New(2, 3, 4, 5))

	_, accY, proof, err := ProveOp(Intersection, left, right, pk)
	assert.NoError(err)

	err = VerifyOp(Union, left.Acc, right.Acc, accY, right.BR2, proof, pk)
	assert.Error(err)
}

func TestOpString(t *testing.T) {
	assert := require.New(t)
	assert.Equal("intersection", Intersection.String())
	assert.Equal("union", Union.String())
	assert.Equal("difference", Difference.String())
	assert.Equal("unknown", Op(99).String())
}
