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

// Package dag implements C8b: the query plan graph and its leveled,
// parallel evaluator.
package dag

import (
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/vchainplus/core/internal/vchainerr"
)

// NodeKind tags whether a Node is a leaf (resolved via index.Resolver) or
// a binary set operation (resolved via setproof.ProveOp).
type NodeKind int

const (
	NodeLeaf NodeKind = iota
	NodeBinaryOp
)

// DAG is a parents/children adjacency-list graph of Nodes: nodeID is the
// index into Nodes, parents[id] are the dependencies that must be solved
// before id, children[id] are the nodes that depend on id.
type DAG struct {
	Nodes    []Node
	Root     int // id of the final result node, -1 for an empty plan
	parents  [][]int
	children [][]int
	visited  []int64
}

// New allocates a DAG with room for nbNodes.
func New(nbNodes int) *DAG {
	return &DAG{
		Nodes:    make([]Node, 0, nbNodes),
		Root:     -1,
		parents:  make([][]int, 0, nbNodes),
		children: make([][]int, 0, nbNodes),
	}
}

// AddNode appends node and returns its id.
func (d *DAG) AddNode(node Node) int {
	id := len(d.Nodes)
	d.Nodes = append(d.Nodes, node)
	d.parents = append(d.parents, nil)
	d.children = append(d.children, nil)
	return id
}

// AddEdges records that nodeID depends on each of parents.
func (d *DAG) AddEdges(nodeID int, parents []int) {
	d.parents[nodeID] = append([]int(nil), parents...)
	for _, p := range parents {
		d.children[p] = append(d.children[p], nodeID)
	}
}

// Parents returns the dependency ids of nodeID.
func (d *DAG) Parents(nodeID int) []int { return d.parents[nodeID] }

// Level is one batch of node ids whose dependencies are all already solved.
type Level struct {
	Nodes []int
}

// Levels buckets nodes into dependency-ordered levels: every node in level
// l has all its parents in levels < l. Leveling runs a worker pool sized
// to runtime.NumCPU(), one goroutine per chunk of the current frontier;
// siblings within a level have no ordering constraint between them and are
// the unit of parallel evaluation (Evaluate dispatches one goroutine per
// node within a level via errgroup).
func (d *DAG) Levels() []Level {
	n := len(d.Nodes)
	current := make([]int, 0, n)
	solved := make([]bool, n)

	var level0 []int
	for i, p := range d.parents {
		if len(p) == 0 {
			solved[i] = true
			level0 = append(level0, i)
			current = append(current, d.children[i]...)
		}
	}
	sort.Ints(level0)
	levels := []Level{{Nodes: level0}}

	d.visited = make([]int64, n)
	var lvl int64

	nbWorkers := runtime.NumCPU()
	if nbWorkers < 1 {
		nbWorkers = 1
	}

	for len(current) > 0 {
		lvl++
		type task struct{ ids []int }
		chunkSize := (len(current) + nbWorkers - 1) / nbWorkers
		if chunkSize < 1 {
			chunkSize = 1
		}
		var tasks []task
		for start := 0; start < len(current); start += chunkSize {
			end := start + chunkSize
			if end > len(current) {
				end = len(current)
			}
			tasks = append(tasks, task{ids: current[start:end]})
		}

		var mu sync.Mutex
		var wg sync.WaitGroup
		var thisLevel, next []int
		wg.Add(len(tasks))
		for _, t := range tasks {
			t := t
			go func() {
				defer wg.Done()
				var localLevel, localNext []int
				for _, nodeID := range t.ids {
					prev := atomic.SwapInt64(&d.visited[nodeID], lvl)
					if prev == lvl {
						continue
					}
					ready := true
					for _, p := range d.parents[nodeID] {
						if !solved[p] {
							ready = false
							break
						}
					}
					if !ready {
						localNext = append(localNext, nodeID)
						continue
					}
					localLevel = append(localLevel, nodeID)
					localNext = append(localNext, d.children[nodeID]...)
				}
				mu.Lock()
				thisLevel = append(thisLevel, localLevel...)
				next = append(next, localNext...)
				mu.Unlock()
			}()
		}
		wg.Wait()

		// No node became ready: whatever is left waits on a cycle. Stop
		// here so those nodes are simply absent from every level.
		if len(thisLevel) == 0 {
			break
		}

		sort.Ints(thisLevel)
		levels = append(levels, Level{Nodes: thisLevel})
		for _, id := range thisLevel {
			solved[id] = true
		}
		current = next
	}

	return levels
}

// Validate confirms every node lands in some level of Levels: a node on a
// cycle (or depending on one) never becomes ready, so Levels leaves it out
// of every level, and Validate turns that silent omission into
// ErrInternalArithmetic.
func (d *DAG) Validate() error {
	levels := d.Levels()
	seen := make([]bool, len(d.Nodes))
	for _, l := range levels {
		for _, id := range l.Nodes {
			seen[id] = true
		}
	}
	for _, ok := range seen {
		if !ok {
			return vchainerr.ErrInternalArithmetic
		}
	}
	return nil
}
