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

// Package index defines the boundary between the cryptographic core and an
// authenticated data structure (B+-tree/ID-tree/trie-tree) that resolves
// query literals to sets. The ADS implementation itself is out of scope;
// this package only fixes the contract and ships an in-memory reference
// resolver for tests and the CLI demo path.
package index

import (
	"context"
	"encoding/binary"

	"golang.org/x/crypto/blake2b"

	"github.com/vchainplus/core/internal/accumulator"
	"github.com/vchainplus/core/internal/algebra"
	"github.com/vchainplus/core/internal/keys"
	"github.com/vchainplus/core/internal/setops"
)

// Leaf is everything a DAG leaf node carries after resolution: the set
// itself (needed only by the prover, which holds it locally), its
// accumulator, its poly_b commitment in G2 (BR2, consumed by
// setproof.VerifyOp's product-identity check), and an opaque digest
// linking it back to the chain the leaf was resolved against.
type Leaf struct {
	Set    setops.Set
	Acc    accumulator.Value
	BR2    algebra.G2
	Digest []byte
}

// Resolver is the external contract a real authenticated data structure
// must satisfy for internal/dag to evaluate queries against it.
type Resolver interface {
	ResolveLiteral(ctx context.Context, block uint64, word string) (Leaf, error)
	ResolveUniverse(ctx context.Context, block uint64) (Leaf, error)
	// Probe returns a cheap cardinality hint for the cost estimator; it
	// need not be exact, only monotone with the true set size.
	Probe(ctx context.Context, block uint64, word string) (int, error)
}

// UniverseLiteral is the sentinel literal name a Not(Literal) query node
// resolves its left (universe) child against.
const UniverseLiteral = "\x00universe"

// ComputeBR2 commits poly.PolyB(set, pk.Qmax) in G2 against the Hrs table:
// Σ_{(i,j)} coeff·Hrs[i][j]. Shared by MemResolver and by any real ADS
// implementation's leaf construction.
func ComputeBR2(pk *keys.PublicKey, set setops.Set) (algebra.G2, error) {
	ids := set.Elements()
	points := make([]algebra.G2, len(ids))
	ones := make([]algebra.Scalar, len(ids))
	for k, id := range ids {
		i, j := int(id), pk.Qmax-int(id)
		h, err := pk.HRS(i, j)
		if err != nil {
			return algebra.IdentityG2(), err
		}
		points[k] = h
		ones[k].SetOne()
	}
	return algebra.MSMG2(points, ones)
}

// Digest hashes a block id and set into an opaque chain-link value. A real
// ADS replaces this with its actual Merkle/accumulator digest; this is
// reference plumbing for MemResolver only.
func Digest(block uint64, set setops.Set) []byte {
	h, _ := blake2b.New256(nil)
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], block)
	h.Write(buf[:])
	for _, id := range set.Elements() {
		binary.LittleEndian.PutUint32(buf[:4], id)
		h.Write(buf[:4])
	}
	return h.Sum(nil)
}
