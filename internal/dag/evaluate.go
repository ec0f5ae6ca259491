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

	"golang.org/x/sync/errgroup"

	"github.com/vchainplus/core/internal/accumulator"
	"github.com/vchainplus/core/internal/algebra"
	"github.com/vchainplus/core/internal/index"
	"github.com/vchainplus/core/internal/keys"
	"github.com/vchainplus/core/internal/setops"
	"github.com/vchainplus/core/internal/setproof"
	"github.com/vchainplus/core/internal/vchainerr"
)

// nodeResult is the resolved value carried at one DAG node: its set (only
// ever inspected when prune is enabled, or for the final Result), its
// accumulator, its G2 poly_b commitment (leaves only, feeds a parent's
// product-identity check), and the proof that produced it (nil at leaves).
type nodeResult struct {
	set   setops.Set
	acc   accumulator.Value
	br2   algebra.G2
	proof *setproof.Proof
}

// Result is the outcome of evaluating a DAG's root node: the final result
// set, its accumulator, and the proof chain needed to audit it (one Proof
// per BinaryOp node that was proven, in node id order; a node short-circuited
// by prune contributes none).
type Result struct {
	Set   setops.Set
	Acc   accumulator.Value
	Chain []setproof.Proof
}

// Evaluate walks dag.Levels() bottom-up, resolving Leaf nodes via resolve
// and BinaryOp nodes via setproof.ProveOp, one goroutine per node within a
// level (siblings are independent by construction). prune enables the §9
// empty-set short-circuits: an empty Intersection operand annihilates the
// node without needing the other operand's proof, an empty Union operand
// is dropped (identity), and ctx is checked between levels so a caller can
// cancel a long query.
func Evaluate(ctx context.Context, d *DAG, resolve index.Resolver, pk *keys.PublicKey, prune bool) (*Result, error) {
	if d.Root < 0 {
		return &Result{Set: setops.New()}, nil
	}

	results := make([]nodeResult, len(d.Nodes))

	for _, level := range d.Levels() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		level := level
		g, gctx := errgroup.WithContext(ctx)
		for _, id := range level.Nodes {
			id := id
			g.Go(func() error {
				n := d.Nodes[id]
				switch n.Kind {
				case NodeLeaf:
					r, err := evalLeaf(gctx, resolve, n)
					if err != nil {
						return err
					}
					results[id] = r
					return nil
				case NodeBinaryOp:
					parents := d.Parents(id)
					left, right := results[parents[0]], results[parents[1]]
					r, err := evalBinary(n, left, right, pk, prune)
					if err != nil {
						return err
					}
					results[id] = r
					return nil
				default:
					return vchainerr.ErrInternalArithmetic
				}
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	root := results[d.Root]
	chain := make([]setproof.Proof, 0, len(d.Nodes))
	for id, n := range d.Nodes {
		if n.Kind == NodeBinaryOp && results[id].proof != nil {
			chain = append(chain, *results[id].proof)
		}
	}
	return &Result{Set: root.set, Acc: root.acc, Chain: chain}, nil
}

func evalLeaf(ctx context.Context, resolve index.Resolver, n Node) (nodeResult, error) {
	var leaf index.Leaf
	var err error
	if n.Literal == index.UniverseLiteral {
		leaf, err = resolve.ResolveUniverse(ctx, n.BlockID)
	} else {
		leaf, err = resolve.ResolveLiteral(ctx, n.BlockID, n.Literal)
	}
	if err != nil {
		return nodeResult{}, err
	}
	return nodeResult{set: leaf.Set, acc: leaf.Acc, br2: leaf.BR2}, nil
}

func evalBinary(n Node, left, right nodeResult, pk *keys.PublicKey, prune bool) (nodeResult, error) {
	if prune {
		if short, ok := pruneShortCircuit(n.Op, left, right); ok {
			// A passed-through operand keeps its own proof at its own node.
			short.proof = nil
			return short, nil
		}
	}

	leftLeaf := index.Leaf{Set: left.set, Acc: left.acc, BR2: left.br2}
	rightLeaf := index.Leaf{Set: right.set, Acc: right.acc, BR2: right.br2}

	y, accY, proof, err := setproof.ProveOp(n.Op, leftLeaf, rightLeaf, pk)
	if err != nil {
		return nodeResult{}, err
	}

	if err := setproof.VerifyOp(n.Op, left.acc, right.acc, accY, right.br2, proof, pk); err != nil {
		return nodeResult{}, err
	}

	br2, err := index.ComputeBR2(pk, y)
	if err != nil {
		return nodeResult{}, err
	}

	return nodeResult{set: y, acc: accY, br2: br2, proof: &proof}, nil
}

// pruneShortCircuit implements the §9 empty-side identities: an empty
// Intersection operand annihilates the result, an empty Union operand is
// the identity and is dropped, and Difference with an empty right operand
// passes the left operand through unchanged.
func pruneShortCircuit(op setproof.Op, left, right nodeResult) (nodeResult, bool) {
	switch op {
	case setproof.Intersection:
		if left.set.Len() == 0 || right.set.Len() == 0 {
			return nodeResult{set: setops.New(), acc: accumulator.Identity()}, true
		}
	case setproof.Union:
		if left.set.Len() == 0 {
			return right, true
		}
		if right.set.Len() == 0 {
			return left, true
		}
	case setproof.Difference:
		if right.set.Len() == 0 {
			return left, true
		}
		if left.set.Len() == 0 {
			return nodeResult{set: setops.New(), acc: accumulator.Identity()}, true
		}
	}
	return nodeResult{}, false
}
