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
	"context"

	"github.com/vchainplus/core/internal/index"
	"github.com/vchainplus/core/internal/query"
	"github.com/vchainplus/core/internal/setproof"
)

// planBuilder tracks the structural-hash memo CSE folding relies on across
// one Plan call.
type planBuilder struct {
	d      *DAG
	memo   map[[32]byte]int
	hashes map[int][32]byte
}

func newPlanBuilder(capacity int) *planBuilder {
	return &planBuilder{
		d:      New(capacity),
		memo:   make(map[[32]byte]int, capacity),
		hashes: make(map[int][32]byte, capacity),
	}
}

func (b *planBuilder) addLeaf(n Node) int {
	h := structuralHash(n)
	if id, ok := b.memo[h]; ok {
		return id
	}
	id := b.d.AddNode(n)
	b.memo[h] = id
	b.hashes[id] = h
	return id
}

func (b *planBuilder) addBinary(op setproof.Op, left, right int) int {
	n := Node{Kind: NodeBinaryOp, Op: op}
	h := structuralHash(n, b.hashes[left], b.hashes[right])
	if id, ok := b.memo[h]; ok {
		return id
	}
	id := b.d.AddNode(n)
	b.d.AddEdges(id, []int{left, right})
	b.memo[h] = id
	b.hashes[id] = h
	return id
}

// Plan lowers a QuerySpec into a DAG: one subtree per block in
// [StartBlk,EndBlk], combined pairwise in a left-deep chain by the block
// range's implicit union (queries span a range of blocks, each evaluated
// independently and then unioned). optimize runs query.ToDNF and keeps
// whichever of the normalized/DNF forms EstimateCost, probed against
// resolve, scores lower — resolve may be nil when optimize is false, since
// no cost comparison is then needed. The returned DAG has passed Validate.
func Plan(ctx context.Context, spec query.QuerySpec, qmax int, resolve index.Resolver, optimize bool) (*DAG, error) {
	normalized := query.Normalize(spec.Keyword)
	if optimize {
		dnf := query.ToDNF(normalized)
		b1 := newPlanBuilder(64)
		n1, err := b1.buildBlockRange(ctx, normalized, spec.StartBlk, spec.EndBlk)
		if err != nil {
			return nil, err
		}
		b2 := newPlanBuilder(64)
		n2, err := b2.buildBlockRange(ctx, dnf, spec.StartBlk, spec.EndBlk)
		if err != nil {
			return nil, err
		}
		c1 := totalCost(ctx, b1.d, n1, resolve)
		c2 := totalCost(ctx, b2.d, n2, resolve)
		if c2 < c1 {
			b2.d.Root = n2
			if err := b2.d.Validate(); err != nil {
				return nil, err
			}
			return b2.d, nil
		}
		b1.d.Root = n1
		if err := b1.d.Validate(); err != nil {
			return nil, err
		}
		return b1.d, nil
	}

	b := newPlanBuilder(64)
	root, err := b.buildBlockRange(ctx, normalized, spec.StartBlk, spec.EndBlk)
	if err != nil {
		return nil, err
	}
	b.d.Root = root
	if err := b.d.Validate(); err != nil {
		return nil, err
	}
	return b.d, nil
}

// buildBlockRange emits one subtree per block and folds them with Union,
// left-deep, then returns the id of the final (root) node.
func (b *planBuilder) buildBlockRange(ctx context.Context, e query.Expr, start, end uint64) (int, error) {
	acc := -1
	for block := start; block <= end; block++ {
		id, err := b.buildExpr(e, block)
		if err != nil {
			return -1, err
		}
		if acc == -1 {
			acc = id
		} else {
			acc = b.addBinary(setproof.Union, acc, id)
		}
	}
	return acc, nil
}

// buildExpr lowers a normalized boolean expression for a single block into
// a subtree rooted at a single node id. And -> Intersection, Or -> Union,
// both folded pairwise left-deep (deterministic across repeated Plan calls
// over the same input, required for the plan cache to behave as a cache).
func (b *planBuilder) buildExpr(e query.Expr, block uint64) (int, error) {
	switch e.Kind {
	case query.KindLiteral:
		return b.addLeaf(Node{Kind: NodeLeaf, BlockID: block, Literal: e.Word}), nil
	case query.KindNot:
		lit := e.Children[0]
		universe := b.addLeaf(Node{Kind: NodeLeaf, BlockID: block, Literal: index.UniverseLiteral})
		word := b.addLeaf(Node{Kind: NodeLeaf, BlockID: block, Literal: lit.Word, Negate: true})
		return b.addBinary(setproof.Difference, universe, word), nil
	case query.KindAnd:
		return b.foldChildren(e.Children, block, setproof.Intersection)
	case query.KindOr:
		return b.foldChildren(e.Children, block, setproof.Union)
	}
	return b.addLeaf(Node{Kind: NodeLeaf, BlockID: block, Literal: e.Word}), nil
}

func (b *planBuilder) foldChildren(children []query.Expr, block uint64, op setproof.Op) (int, error) {
	acc := -1
	for _, c := range children {
		id, err := b.buildExpr(c, block)
		if err != nil {
			return -1, err
		}
		if acc == -1 {
			acc = id
			continue
		}
		acc = b.addBinary(op, acc, id)
	}
	return acc, nil
}
