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

package precompute

import (
	"math/big"

	"github.com/vchainplus/core/internal/algebra"
)

// scalarBits is the bit length of BN254's scalar field, rounded up; window
// chunking is sized against this constant.
const scalarBits = 254

// FixedBaseTable is a windowed precompute table for exponentiating a single
// fixed base B, per §4.1: for window size w it precomputes B^(2^(w*k)*d) for
// every digit d in [0, 2^w) and every chunk k, so that Pow costs
// ceil(scalarBits/w) lookups and adds instead of scalarBits doublings.
//
// T is algebra.G1 or algebra.G2; add/identity/scalarMul are injected so the
// same windowing logic serves both groups without duplicating it.
type FixedBaseTable[T any] struct {
	w        uint
	nbChunks int
	table    [][]T // table[chunk][digit]

	add      func(a, b T) T
	identity func() T
}

// NewFixedBaseTableG1 builds a table for base in G1.
func NewFixedBaseTableG1(base algebra.G1, w uint) *FixedBaseTable[algebra.G1] {
	return newFixedBaseTable(base, w, algebra.AddG1, algebra.IdentityG1, algebra.ScalarMulG1)
}

// NewFixedBaseTableG2 builds a table for base in G2.
func NewFixedBaseTableG2(base algebra.G2, w uint) *FixedBaseTable[algebra.G2] {
	return newFixedBaseTable(base, w, algebra.AddG2, algebra.IdentityG2, algebra.ScalarMulG2)
}

func newFixedBaseTable[T any](base T, w uint, add func(a, b T) T, identity func() T, scalarMul func(T, *algebra.Scalar) T) *FixedBaseTable[T] {
	if w == 0 {
		w = 8
	}
	nbChunks := (scalarBits + int(w) - 1) / int(w)
	digits := 1 << w

	table := make([][]T, nbChunks)
	// chunkBase[k] = base^(2^(w*k)), computed by repeated doubling of the
	// previous chunk's base raised to 2^w.
	chunkBase := base
	for k := 0; k < nbChunks; k++ {
		row := make([]T, digits)
		row[0] = identity()
		row[1] = chunkBase
		for d := 2; d < digits; d++ {
			row[d] = add(row[d-1], chunkBase)
		}
		table[k] = row

		// advance chunkBase to base^(2^(w*(k+1))) by doubling w times
		var two big.Int
		two.SetInt64(1 << w)
		var s algebra.Scalar
		s.SetBigInt(&two)
		chunkBase = scalarMul(chunkBase, &s)
	}

	return &FixedBaseTable[T]{w: w, nbChunks: nbChunks, table: table, add: add, identity: identity}
}

// Pow returns base^k (written additively, k·base) by decomposing k into
// w-bit digits and summing the corresponding table entries.
func (t *FixedBaseTable[T]) Pow(k algebra.Scalar) T {
	var kBig big.Int
	k.BigInt(&kBig)

	result := t.identity()
	mask := big.NewInt((1 << t.w) - 1)
	var tmp big.Int
	for c := 0; c < t.nbChunks; c++ {
		tmp.Rsh(&kBig, uint(c)*t.w)
		tmp.And(&tmp, mask)
		digit := tmp.Int64()
		if digit == 0 {
			continue
		}
		result = t.add(result, t.table[c][digit])
	}
	return result
}
