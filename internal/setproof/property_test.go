package setproof

import (
	"crypto/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/vchainplus/core/internal/accumulator"
	"github.com/vchainplus/core/internal/index"
	"github.com/vchainplus/core/internal/keys"
	"github.com/vchainplus/core/internal/setops"
)

// subsetGen generates a random Set drawn from [0,qmax) by filtering a fixed
// candidate pool through a random boolean mask, the approach §8 describes
// for "random sets L, R".
func subsetGen(qmax int) gopter.Gen {
	return gen.SliceOfN(qmax, gen.Bool()).Map(func(mask []bool) setops.Set {
		s := setops.New()
		for id, include := range mask {
			if include {
				s[uint32(id)] = struct{}{}
			}
		}
		return s
	})
}

// TestPropertySetOpsRoundTrip checks, for random subsets L and R of a small
// universe, that ProveOp's claimed result set matches the corresponding
// plain-set operation and that VerifyOp accepts the proof it produced.
func TestPropertySetOpsRoundTrip(t *testing.T) {
	const qmax = 6
	_, pk, err := keys.GenKeys(qmax, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 40
	properties := gopter.NewProperties(parameters)

	for _, op := range []Op{Intersection, Union, Difference} {
		op := op
		properties.Property(op.String()+" proves and verifies", prop.ForAll(
			func(left, right setops.Set) bool {
				leftLeaf, err := buildLeaf(pk, left)
				if err != nil {
					return false
				}
				rightLeaf, err := buildLeaf(pk, right)
				if err != nil {
					return false
				}

				y, accY, proof, err := ProveOp(op, leftLeaf, rightLeaf, pk)
				if err != nil {
					return false
				}

				var want setops.Set
				switch op {
				case Intersection:
					want = left.Intersect(right)
				case Union:
					want = left.Union(right)
				case Difference:
					want = left.Difference(right)
				}
				if !y.Equal(want) {
					return false
				}

				return VerifyOp(op, leftLeaf.Acc, rightLeaf.Acc, accY, rightLeaf.BR2, proof, pk) == nil
			},
			subsetGen(qmax),
			subsetGen(qmax),
		))
	}

	properties.TestingRun(t)
}

// TestPropertyTamperedProofRejected checks, for random subsets L and R, that
// substituting a forged AccI (the proof's attested intersection witness)
// causes VerifyOp to reject — for all three operators, per §8 property 4's
// "no false accepts" requirement.
func TestPropertyTamperedProofRejected(t *testing.T) {
	const qmax = 6
	_, pk, err := keys.GenKeys(qmax, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 40
	properties := gopter.NewProperties(parameters)

	for _, op := range []Op{Intersection, Union, Difference} {
		op := op
		properties.Property(op.String()+" rejects a forged intersection witness", prop.ForAll(
			func(left, right, forgedSet setops.Set) bool {
				leftLeaf, err := buildLeaf(pk, left)
				if err != nil {
					return false
				}
				rightLeaf, err := buildLeaf(pk, right)
				if err != nil {
					return false
				}

				_, accY, proof, err := ProveOp(op, leftLeaf, rightLeaf, pk)
				if err != nil {
					return false
				}

				forged, err := accumulator.Accumulate(pk, forgedSet)
				if err != nil {
					return false
				}
				if accumulator.Equal(proof.AccI, forged) {
					// Forged set happens to equal the true intersection;
					// not a counterexample to soundness.
					return true
				}
				tampered := proof
				tampered.AccI = forged

				return VerifyOp(op, leftLeaf.Acc, rightLeaf.Acc, accY, rightLeaf.BR2, tampered, pk) != nil
			},
			subsetGen(qmax),
			subsetGen(qmax),
			subsetGen(qmax),
		))
	}

	properties.TestingRun(t)
}

func buildLeaf(pk *keys.PublicKey, set setops.Set) (index.Leaf, error) {
	acc, err := accumulator.Accumulate(pk, set)
	if err != nil {
		return index.Leaf{}, err
	}
	br2, err := index.ComputeBR2(pk, set)
	if err != nil {
		return index.Leaf{}, err
	}
	return index.Leaf{Set: set, Acc: acc, BR2: br2}, nil
}
