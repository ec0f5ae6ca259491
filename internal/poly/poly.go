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

// Package poly implements C4: a sparse bivariate polynomial
// P(S,R) = Σ c_{i,j} R^i S^j over F_r, representing accumulated sets as
// exponent sequences fed into MSM.
package poly

import (
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vchainplus/core/internal/algebra"
	"github.com/vchainplus/core/internal/setops"
)

// Term indexes a monomial by (i, j): the R-exponent and S-exponent
// respectively, matching the public-key table convention G_rs[i][j] =
// g^(r^i s^j).
type Term struct {
	I, J int
}

// Poly is a sparse bivariate polynomial: zero-valued coefficients are never
// stored, so Len() is the number of non-zero terms.
type Poly map[Term]algebra.Scalar

// New returns the zero polynomial.
func New() Poly { return make(Poly) }

// Len reports the number of non-zero terms.
func (p Poly) Len() int { return len(p) }

// Set assigns c to term (i,j), dropping the entry if c is zero.
func (p Poly) Set(i, j int, c algebra.Scalar) {
	if c.IsZero() {
		delete(p, Term{i, j})
		return
	}
	p[Term{i, j}] = c
}

// PolyA builds Σ_{x∈X} S^x, the univariate accumulator-style form of §3:
// stored with I=0 (the polynomial has no R component).
func PolyA(x setops.Set) Poly {
	p := make(Poly, x.Len())
	var one algebra.Scalar
	one.SetOne()
	for _, id := range x.Elements() {
		p.Set(0, int(id), one)
	}
	return p
}

// PolyB builds Σ_{x∈X} R^x S^(qmax-x), the bivariate form of §3 used inside
// set-operation proofs.
func PolyB(x setops.Set, qmax int) Poly {
	p := make(Poly, x.Len())
	var one algebra.Scalar
	one.SetOne()
	for _, id := range x.Elements() {
		p.Set(int(id), qmax-int(id), one)
	}
	return p
}

// Add returns p+q.
func (p Poly) Add(q Poly) Poly {
	out := make(Poly, p.Len()+q.Len())
	for t, c := range p {
		out[t] = c
	}
	for t, c := range q {
		cur := out[t]
		cur.Add(&cur, &c)
		out.Set(t.I, t.J, cur)
	}
	return out
}

// Sub returns p-q.
func (p Poly) Sub(q Poly) Poly {
	out := make(Poly, p.Len()+q.Len())
	for t, c := range p {
		out[t] = c
	}
	for t, c := range q {
		cur := out[t]
		cur.Sub(&cur, &c)
		out.Set(t.I, t.J, cur)
	}
	return out
}

// ScalarMul returns k*p.
func (p Poly) ScalarMul(k algebra.Scalar) Poly {
	out := make(Poly, p.Len())
	for t, c := range p {
		var r algebra.Scalar
		r.Mul(&c, &k)
		out.Set(t.I, t.J, r)
	}
	return out
}

// Mul returns the Cauchy-product convolution p*q: each pair of terms
// (i1,j1,c1) from the larger operand and (i2,j2,c2) from the smaller
// contributes c1*c2 to term (i1+i2, j1+j2). Partitioned across goroutines by
// outer-term index when the larger operand is non-trivially sized (§5).
func (p Poly) Mul(q Poly) Poly {
	big, small := p, q
	if len(small) > len(big) {
		big, small = small, big
	}
	if len(small) == 0 {
		return New()
	}

	bigTerms := make([]Term, 0, len(big))
	for t := range big {
		bigTerms = append(bigTerms, t)
	}

	if len(bigTerms) < 256 {
		out := New()
		mulInto(out, bigTerms, big, small)
		return out
	}

	nbWorkers := runtime.NumCPU()
	chunkSize := (len(bigTerms) + nbWorkers - 1) / nbWorkers
	partials := make([]Poly, 0, nbWorkers)
	var g errgroup.Group
	var mu sync.Mutex
	for start := 0; start < len(bigTerms); start += chunkSize {
		start := start
		end := start + chunkSize
		if end > len(bigTerms) {
			end = len(bigTerms)
		}
		g.Go(func() error {
			local := New()
			mulInto(local, bigTerms[start:end], big, small)
			mu.Lock()
			partials = append(partials, local)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	out := New()
	for _, part := range partials {
		out = out.Add(part)
	}
	return out
}

func mulInto(out Poly, terms []Term, big, small Poly) {
	for _, t1 := range terms {
		c1 := big[t1]
		for t2, c2 := range small {
			var prod algebra.Scalar
			prod.Mul(&c1, &c2)
			key := Term{t1.I + t2.I, t1.J + t2.J}
			cur := out[key]
			cur.Add(&cur, &prod)
			out.Set(key.I, key.J, cur)
		}
	}
}

// RemoveSlice pulls out every term whose S-exponent (J) equals j, returning
// the remainder and the removed terms reindexed by their R-exponent (I) —
// the general form of §4.4's remove_intersected_term. Used with j = qmax to
// extract the intersection witness Δ(I) from a product poly_a(L)*poly_b(R).
func (p Poly) RemoveSlice(j int) (rest Poly, slice map[int]algebra.Scalar) {
	rest = make(Poly, p.Len())
	slice = make(map[int]algebra.Scalar)
	for t, c := range p {
		if t.J == j {
			slice[t.I] = c
			continue
		}
		rest[t] = c
	}
	return rest, slice
}

// CoeffIterWithIndex returns the polynomial's terms sorted by (i,j)
// ascending, for deterministic MSM input: prover and verifier (and repeated
// runs in tests) must build the same vectors from the same polynomial.
func (p Poly) CoeffIterWithIndex() []struct {
	Term Term
	Coef algebra.Scalar
} {
	out := make([]struct {
		Term Term
		Coef algebra.Scalar
	}, 0, len(p))
	for t, c := range p {
		out = append(out, struct {
			Term Term
			Coef algebra.Scalar
		}{t, c})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Term.I != out[b].Term.I {
			return out[a].Term.I < out[b].Term.I
		}
		return out[a].Term.J < out[b].Term.J
	})
	return out
}
