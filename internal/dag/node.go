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

package dag

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"

	"github.com/vchainplus/core/internal/setproof"
)

// Node is a plan graph vertex: either a Leaf (resolved through
// index.Resolver) or a BinaryOp combining two already-resolved children
// via setproof.ProveOp.
type Node struct {
	Kind    NodeKind
	Op      setproof.Op
	BlockID uint64
	Literal string
	Negate  bool
}

// structuralHash returns a content hash of n combined with the hashes of
// its children, so two structurally identical subtrees within one Plan
// call (e.g. a literal repeated in the same block) collide and are folded
// by that call's CSE memo. BlockID is part of the hash, so the same literal
// in two different blocks yields two distinct leaves.
func structuralHash(n Node, childHashes ...[32]byte) [32]byte {
	h, _ := blake2b.New256(nil)
	h.Write([]byte{byte(n.Kind), byte(n.Op)})
	var blockBuf [8]byte
	binary.LittleEndian.PutUint64(blockBuf[:], n.BlockID)
	h.Write(blockBuf[:])
	h.Write([]byte(n.Literal))
	if n.Negate {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	for _, c := range childHashes {
		h.Write(c[:])
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
