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

// Package setops implements C5: a finite set of non-negative integer
// element ids, each < qmax.
package setops

import (
	"sort"

	"github.com/vchainplus/core/internal/vchainerr"
)

// Set is a mathematical set of object ids. Ordering is irrelevant; only
// membership and cardinality are observable.
type Set map[uint32]struct{}

// New builds a Set from a list of ids, deduplicating.
func New(ids ...uint32) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Validate reports vchainerr.ErrOutOfUniverse if any element is >= qmax.
func (s Set) Validate(qmax uint32) error {
	for id := range s {
		if id >= qmax {
			return vchainerr.ErrOutOfUniverse
		}
	}
	return nil
}

// Len returns the cardinality of s.
func (s Set) Len() int { return len(s) }

// Contains reports whether id is a member of s.
func (s Set) Contains(id uint32) bool {
	_, ok := s[id]
	return ok
}

// Elements returns the sorted members of s, for deterministic iteration.
func (s Set) Elements() []uint32 {
	out := make([]uint32, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone returns a shallow copy of s.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Union returns s ∪ other.
func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	for id := range s {
		out[id] = struct{}{}
	}
	for id := range other {
		out[id] = struct{}{}
	}
	return out
}

// Intersect returns s ∩ other.
func (s Set) Intersect(other Set) Set {
	small, big := s, other
	if len(big) < len(small) {
		small, big = big, small
	}
	out := make(Set, len(small))
	for id := range small {
		if _, ok := big[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// Difference returns s ∖ other.
func (s Set) Difference(other Set) Set {
	out := make(Set, len(s))
	for id := range s {
		if _, ok := other[id]; !ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// Equal reports whether s and other contain exactly the same elements.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if _, ok := other[id]; !ok {
			return false
		}
	}
	return true
}
