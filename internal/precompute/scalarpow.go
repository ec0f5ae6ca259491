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

// Package precompute holds the two fixed-base caches of §4.1: a scalar
// power sequence cache, and a windowed fixed-base group exponentiation
// cache.
package precompute

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vchainplus/core/internal/algebra"
)

// minParallelChunk is the smallest per-goroutine slice worth spawning a
// goroutine for; below it the sequential loop is faster than the
// scheduling overhead.
const minParallelChunk = 1024

// ScalarPowers returns [x^0, x^1, ..., x^(n-1)] in O(n) time, O(1) lookup
// thereafter (the caller just indexes the returned slice).
func ScalarPowers(x algebra.Scalar, n int) []algebra.Scalar {
	out := make([]algebra.Scalar, n)
	if n == 0 {
		return out
	}
	out[0].SetOne()
	if n <= minParallelChunk {
		for i := 1; i < n; i++ {
			out[i].Mul(&out[i-1], &x)
		}
		return out
	}

	// Parallel build: split into contiguous chunks, seed each chunk with
	// x^(chunkStart) computed independently, then fill sequentially within
	// the chunk. Chunk seeds are computed via repeated squaring so no
	// chunk depends on another's result (§5: "independent fills").
	nbWorkers := runtime.NumCPU()
	chunkSize := (n + nbWorkers - 1) / nbWorkers
	var g errgroup.Group
	for start := 0; start < n; start += chunkSize {
		start := start
		end := start + chunkSize
		if end > n {
			end = n
		}
		g.Go(func() error {
			out[start] = powInt(x, start)
			for i := start + 1; i < end; i++ {
				out[i].Mul(&out[i-1], &x)
			}
			return nil
		})
	}
	_ = g.Wait() // pure arithmetic, no goroutine can fail
	return out
}

// powInt computes x^e via square-and-multiply.
func powInt(x algebra.Scalar, e int) algebra.Scalar {
	var result algebra.Scalar
	result.SetOne()
	base := x
	for e > 0 {
		if e&1 == 1 {
			result.Mul(&result, &base)
		}
		base.Mul(&base, &base)
		e >>= 1
	}
	return result
}
