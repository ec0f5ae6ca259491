// Copyright 2020 ConsenSys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package accumulator implements C6: a constant-size cryptographic
// commitment to a Set.
package accumulator

import (
	"github.com/vchainplus/core/internal/algebra"
	"github.com/vchainplus/core/internal/keys"
	"github.com/vchainplus/core/internal/setops"
	"github.com/vchainplus/core/internal/vchainerr"
)

// Value is the accumulator commitment pair of §3, A = (A1, A2). AccR is a
// deliberate third, unexported field (see DESIGN.md "Open Question
// decisions"): the r-indexed commitment to the same set, Σ_{x∈X} Gr[x].
// It never crosses the wire (Serialize round-trips A1/A2 only) and is
// populated only by Accumulate, called on a party that holds the actual
// Set — never reconstructed from an opaque, externally-supplied Value.
type Value struct {
	A1 algebra.G1
	A2 algebra.G2

	accR    algebra.G1
	hasAccR bool
}

// AccR returns the r-indexed commitment, if this Value was produced by
// Accumulate (as opposed to deserialized from the wire).
func (v Value) AccR() (algebra.G1, bool) { return v.accR, v.hasAccR }

// Identity is the accumulator of the empty set: the identity element of
// each group (§4.4 tie-break: "its accumulator is the identity element").
func Identity() Value {
	return Value{A1: algebra.IdentityG1(), A2: algebra.IdentityG2(), accR: algebra.IdentityG1(), hasAccR: true}
}

// Accumulate computes cal_acc_pk(PK, X): a parallel sum (conceptually; set
// sizes here rarely warrant spawning goroutines, so this runs sequentially
// and lets MSM/keygen carry the heavy parallelism per §5) of G_s[x] and
// H_s[x] for x in X, plus the r-indexed AccR.
func Accumulate(pk *keys.PublicKey, x setops.Set) (Value, error) {
	if err := x.Validate(uint32(pk.Qmax)); err != nil {
		return Value{}, err
	}
	ids := x.Elements()
	g1Points := make([]algebra.G1, len(ids))
	rPoints := make([]algebra.G1, len(ids))
	g2Points := make([]algebra.G2, len(ids))
	ones := make([]algebra.Scalar, len(ids))
	for i, id := range ids {
		if int(id) >= len(pk.Gs) {
			return Value{}, vchainerr.ErrIncompleteKey
		}
		g1Points[i] = pk.Gs[id]
		g2Points[i] = pk.Hs[id]
		rPoints[i] = pk.Gr[id]
		ones[i].SetOne()
	}
	a1, err := algebra.MSM(g1Points, ones)
	if err != nil {
		return Value{}, err
	}
	a2, err := algebra.MSMG2(g2Points, ones)
	if err != nil {
		return Value{}, err
	}
	accR, err := algebra.MSM(rPoints, ones)
	if err != nil {
		return Value{}, err
	}
	return Value{A1: a1, A2: a2, accR: accR, hasAccR: true}, nil
}

// WellFormed checks the §3 invariant e(A1,h) = e(g,A2), i.e. that A1 and A2
// commit to the same exponent.
func WellFormed(v Value) (bool, error) {
	g := algebra.GenG1()
	h := algebra.GenH2()
	return algebra.PairingCheck([]algebra.G1{v.A1, g}, []algebra.G2{h, negG2(v.A2)})
}

func negG2(a algebra.G2) algebra.G2 {
	var out algebra.G2
	out.Neg(&a)
	return out
}

// Add returns the component-wise group sum of two accumulators: used for
// the disjoint-union homomorphism (§8 property 2) and for the linear
// recombination union/difference proofs rely on (§4.4).
func Add(a, b Value) Value {
	out := Value{A1: algebra.AddG1(a.A1, b.A1), A2: algebra.AddG2(a.A2, b.A2)}
	if a.hasAccR && b.hasAccR {
		out.accR = algebra.AddG1(a.accR, b.accR)
		out.hasAccR = true
	}
	return out
}

// Sub returns the component-wise group difference a - b.
func Sub(a, b Value) Value {
	out := Value{A1: algebra.SubG1(a.A1, b.A1), A2: algebra.SubG2(a.A2, b.A2)}
	if a.hasAccR && b.hasAccR {
		out.accR = algebra.SubG1(a.accR, b.accR)
		out.hasAccR = true
	}
	return out
}

// Equal compares the public (A1,A2) components only.
func Equal(a, b Value) bool {
	return a.A1.Equal(&b.A1) && a.A2.Equal(&b.A2)
}
