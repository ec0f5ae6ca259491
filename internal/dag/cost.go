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
	"github.com/vchainplus/core/internal/setproof"
)

// unionWeight/intersectWeight bias the cost sum so Intersection (which
// only ever shrinks its operands) is preferred over Union when ToDNF's
// distributive rewrite and the un-rewritten form would otherwise tie: the
// estimator only needs to be monotone in true set sizes, not precise.
const (
	intersectWeight = 1
	unionWeight     = 2
)

// EstimateCost recursively sums memoized per-node cardinality hints,
// weighted by operator: a leaf costs its Probe'd cardinality (0 when
// resolve is nil or Probe returns an error), a BinaryOp costs its own
// weight plus its children's.
func EstimateCost(ctx context.Context, d *DAG, nodeID int, resolve index.Resolver, memo map[int]int) int {
	if c, ok := memo[nodeID]; ok {
		return c
	}
	n := d.Nodes[nodeID]
	var cost int
	switch n.Kind {
	case NodeLeaf:
		if resolve != nil {
			if c, err := resolve.Probe(ctx, n.BlockID, n.Literal); err == nil {
				cost = c
			}
		}
	case NodeBinaryOp:
		w := intersectWeight
		if n.Op == setproof.Union {
			w = unionWeight
		}
		cost = w
		for _, p := range d.Parents(nodeID) {
			cost += EstimateCost(ctx, d, p, resolve, memo)
		}
	}
	memo[nodeID] = cost
	return cost
}

// totalCost sums EstimateCost over every node in d, rooted from root: used
// to compare the normalized-but-unfactored plan against ToDNF's rewrite.
func totalCost(ctx context.Context, d *DAG, root int, resolve index.Resolver) int {
	if root < 0 {
		return 0
	}
	memo := make(map[int]int, len(d.Nodes))
	total := 0
	for i := range d.Nodes {
		total += EstimateCost(ctx, d, i, resolve, memo)
	}
	return total
}
