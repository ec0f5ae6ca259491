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

// Package algebra is the field/curve/pairing facade (C1): every other
// component goes through here rather than importing gnark-crypto's bn254
// package directly, so the curve choice is a single compile-time swap.
package algebra

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

type (
	// Scalar is an element of F_r, the scalar field of BN254.
	Scalar = fr.Element
	// G1 is a point on the first pairing group, in affine coordinates.
	G1 = bn254.G1Affine
	// G2 is a point on the second pairing group, in affine coordinates.
	G2 = bn254.G2Affine
	// GT is an element of the target group of the pairing.
	GT = bn254.GT
)

// RandomScalar samples a uniformly random, non-zero scalar from r,
// resampling on zero per §4.2.
func RandomScalar(r io.Reader) (Scalar, error) {
	if r == nil {
		r = rand.Reader
	}
	var s Scalar
	// 48 bytes reduced mod the field order keeps the modular bias negligible.
	var buf [48]byte
	var v big.Int
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return s, err
		}
		s.SetBigInt(v.SetBytes(buf[:]))
		if !s.IsZero() {
			return s, nil
		}
	}
}

// GenG1 and GenH2 are the canonical fixed generators g ∈ G1, h ∈ G2.
func GenG1() G1 {
	_, _, g1, _ := bn254.Generators()
	return g1
}

func GenH2() G2 {
	_, _, _, g2 := bn254.Generators()
	return g2
}

// IdentityG1 and IdentityG2 are the identity elements of the two groups.
func IdentityG1() G1 {
	var p G1
	return p
}

func IdentityG2() G2 {
	var p G2
	return p
}

// AddG1 and AddG2 perform group addition in affine coordinates via Jacobian.
func AddG1(a, b G1) G1 {
	var aj, bj bn254.G1Jac
	aj.FromAffine(&a)
	bj.FromAffine(&b)
	aj.AddAssign(&bj)
	var out G1
	out.FromJacobian(&aj)
	return out
}

func SubG1(a, b G1) G1 {
	var aj, bj bn254.G1Jac
	aj.FromAffine(&a)
	bj.FromAffine(&b)
	bj.Neg(&bj)
	aj.AddAssign(&bj)
	var out G1
	out.FromJacobian(&aj)
	return out
}

func AddG2(a, b G2) G2 {
	var aj, bj bn254.G2Jac
	aj.FromAffine(&a)
	bj.FromAffine(&b)
	aj.AddAssign(&bj)
	var out G2
	out.FromJacobian(&aj)
	return out
}

func SubG2(a, b G2) G2 {
	var aj, bj bn254.G2Jac
	aj.FromAffine(&a)
	bj.FromAffine(&b)
	bj.Neg(&bj)
	aj.AddAssign(&bj)
	var out G2
	out.FromJacobian(&aj)
	return out
}

// ScalarMulG1 and ScalarMulG2 compute B^k (written additively: k·B).
func ScalarMulG1(b G1, k *Scalar) G1 {
	var bj bn254.G1Jac
	bj.FromAffine(&b)
	var kBig big.Int
	k.BigInt(&kBig)
	bj.ScalarMultiplication(&bj, &kBig)
	var out G1
	out.FromJacobian(&bj)
	return out
}

func ScalarMulG2(b G2, k *Scalar) G2 {
	var bj bn254.G2Jac
	bj.FromAffine(&b)
	var kBig big.Int
	k.BigInt(&kBig)
	bj.ScalarMultiplication(&bj, &kBig)
	var out G2
	out.FromJacobian(&bj)
	return out
}

// Pair computes e(a,b) for a single pair.
func Pair(a G1, b G2) (GT, error) {
	return bn254.Pair([]bn254.G1Affine{a}, []bn254.G2Affine{b})
}

// PairingCheck reports whether the product of e(a_i,b_i) equals 1, batching
// the Miller loop across all terms (grounded on other_examples' "go-kzg-4844"
// curve.PairingCheck usage).
func PairingCheck(a []G1, b []G2) (bool, error) {
	return bn254.PairingCheck(a, b)
}

// MSM computes the multi-scalar-multiplication Σ scalars[i]·points[i].
func MSM(points []G1, scalars []Scalar) (G1, error) {
	var out G1
	if len(points) == 0 {
		return IdentityG1(), nil
	}
	if _, err := out.MultiExp(points, scalars, ecc.MultiExpConfig{}); err != nil {
		return out, err
	}
	return out, nil
}

// MSMG2 is the G2 analogue of MSM.
func MSMG2(points []G2, scalars []Scalar) (G2, error) {
	var out G2
	if len(points) == 0 {
		return IdentityG2(), nil
	}
	if _, err := out.MultiExp(points, scalars, ecc.MultiExpConfig{}); err != nil {
		return out, err
	}
	return out, nil
}
