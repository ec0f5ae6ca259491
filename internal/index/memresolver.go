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

package index

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/vchainplus/core/internal/accumulator"
	"github.com/vchainplus/core/internal/keys"
	"github.com/vchainplus/core/internal/setops"
	"github.com/vchainplus/core/internal/vchainerr"
)

// MemResolver is an in-memory Resolver: every block maps to a fixed
// universe set plus a map of literal word to its member set. It computes
// Acc/BR2/Digest on the fly from pk, rather than persisting them, since
// nothing here is meant to survive process exit.
//
// This is reference plumbing for build_chain's toy dataset loader and for
// tests; a real authenticated data structure persists and authenticates
// its own leaves.
type MemResolver struct {
	pk *keys.PublicKey

	mu       sync.RWMutex
	blocks   map[uint64]map[string]setops.Set
	universe map[uint64]setops.Set
}

// NewMemResolver builds an empty resolver bound to pk.
func NewMemResolver(pk *keys.PublicKey) *MemResolver {
	return &MemResolver{
		pk:       pk,
		blocks:   make(map[uint64]map[string]setops.Set),
		universe: make(map[uint64]setops.Set),
	}
}

// Blocks returns the sorted ids of every block currently loaded, without
// exposing the internal map the loader mutates under lock.
func (m *MemResolver) Blocks() []uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := maps.Keys(m.blocks)
	slices.Sort(ids)
	return ids
}

// PutBlock installs (or replaces) the set of object ids for word within
// block, folding them into that block's universe.
func (m *MemResolver) PutBlock(block uint64, word string, ids setops.Set) {
	m.mu.Lock()
	defer m.mu.Unlock()
	words, ok := m.blocks[block]
	if !ok {
		words = make(map[string]setops.Set)
		m.blocks[block] = words
	}
	words[word] = ids

	u, ok := m.universe[block]
	if !ok {
		u = setops.New()
	}
	m.universe[block] = u.Union(ids)
}

func (m *MemResolver) leafFor(block uint64, set setops.Set) (Leaf, error) {
	acc, err := accumulator.Accumulate(m.pk, set)
	if err != nil {
		return Leaf{}, err
	}
	br2, err := ComputeBR2(m.pk, set)
	if err != nil {
		return Leaf{}, err
	}
	return Leaf{Set: set, Acc: acc, BR2: br2, Digest: Digest(block, set)}, nil
}

// ResolveLiteral implements Resolver.
func (m *MemResolver) ResolveLiteral(ctx context.Context, block uint64, word string) (Leaf, error) {
	if err := ctx.Err(); err != nil {
		return Leaf{}, err
	}
	m.mu.RLock()
	words, ok := m.blocks[block]
	var set setops.Set
	if ok {
		set = words[word]
	}
	m.mu.RUnlock()
	if !ok {
		return Leaf{}, fmt.Errorf("block %d: %w", block, vchainerr.ErrMalformedInput)
	}
	if set == nil {
		set = setops.New()
	}
	return m.leafFor(block, set)
}

// ResolveUniverse implements Resolver.
func (m *MemResolver) ResolveUniverse(ctx context.Context, block uint64) (Leaf, error) {
	if err := ctx.Err(); err != nil {
		return Leaf{}, err
	}
	m.mu.RLock()
	u, ok := m.universe[block]
	m.mu.RUnlock()
	if !ok {
		u = setops.New()
	}
	return m.leafFor(block, u)
}

// Probe implements Resolver.
func (m *MemResolver) Probe(ctx context.Context, block uint64, word string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	words, ok := m.blocks[block]
	if !ok {
		return 0, nil
	}
	return words[word].Len(), nil
}
