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

// Package keys implements C3: secret key material (never serialized) and
// the public key tables shared, read-only, by every prover and verifier.
package keys

import (
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vchainplus/core/internal/algebra"
	"github.com/vchainplus/core/internal/precompute"
	"github.com/vchainplus/core/internal/vchainerr"
	"github.com/vchainplus/core/logger"
)

// SecretKey holds the three random scalars sampled at setup. Never
// serialized; kept only by the gen_key offline tool (§5).
type SecretKey struct {
	S, R, Beta algebra.Scalar
}

// PublicKey holds every table a prover or verifier needs, per §3's "Public
// key" and SPEC_FULL.md §5's resolution of the G_rs-shape open question.
//
// Grs/Grsb/Hrs are stored as dense q×2q grids rather than the
// triangular/sparse variant §9 allows: simpler code, at the cost of the
// O(q²) memory the spec calls out as dominant (see DESIGN.md).
type PublicKey struct {
	Qmax int

	Gs  []algebra.G1 // g^(s^i), i in [0,q)
	Hs  []algebra.G2 // h^(s^i), i in [0,q)
	Hbs []algebra.G2 // h^(β s^i), i in [0,q)
	Gr  []algebra.G1 // g^(r^i), i in [0,q)

	Grs  [][]algebra.G1 // g^(r^i s^j), i in [0,q), j in [0,2q)
	Grsb [][]algebra.G1 // g^(β r^i s^j)
	Hrs  [][]algebra.G2 // h^(r^i s^j)

	Hb algebra.G2 // h^β
	Gb algebra.G1 // g^β
}

// GRS, GRSb, HRS give O(1) retrieval of a single table entry, erroring with
// vchainerr.ErrIncompleteKey if the requested index falls outside what was
// generated (§4.2: "any pair requested by §4.4 must be retrievable in
// O(1)").
func (pk *PublicKey) GRS(i, j int) (algebra.G1, error) {
	if i < 0 || i >= pk.Qmax || j < 0 || j >= 2*pk.Qmax {
		return algebra.IdentityG1(), fmt.Errorf("Grs[%d][%d]: %w", i, j, vchainerr.ErrIncompleteKey)
	}
	return pk.Grs[i][j], nil
}

func (pk *PublicKey) GRSb(i, j int) (algebra.G1, error) {
	if i < 0 || i >= pk.Qmax || j < 0 || j >= 2*pk.Qmax {
		return algebra.IdentityG1(), fmt.Errorf("Grsb[%d][%d]: %w", i, j, vchainerr.ErrIncompleteKey)
	}
	return pk.Grsb[i][j], nil
}

func (pk *PublicKey) HRS(i, j int) (algebra.G2, error) {
	if i < 0 || i >= pk.Qmax || j < 0 || j >= 2*pk.Qmax {
		return algebra.IdentityG2(), fmt.Errorf("Hrs[%d][%d]: %w", i, j, vchainerr.ErrIncompleteKey)
	}
	return pk.Hrs[i][j], nil
}

// GenKeys runs §4.2's key generation algorithm.
func GenKeys(qmax int, rng io.Reader) (*SecretKey, *PublicKey, error) {
	if qmax <= 0 {
		return nil, nil, fmt.Errorf("qmax must be > 0: %w", vchainerr.ErrMalformedInput)
	}
	log := logger.Logger().With().Int("qmax", qmax).Logger()
	log.Debug().Msg("generating keys")

	s, err := algebra.RandomScalar(rng)
	if err != nil {
		return nil, nil, err
	}
	r, err := algebra.RandomScalar(rng)
	if err != nil {
		return nil, nil, err
	}
	beta, err := algebra.RandomScalar(rng)
	if err != nil {
		return nil, nil, err
	}
	sk := &SecretKey{S: s, R: r, Beta: beta}

	sPow := precompute.ScalarPowers(s, 2*qmax) // up to 2q: witness exponents reach 2q-1
	rPow := precompute.ScalarPowers(r, qmax)

	g := algebra.GenG1()
	h := algebra.GenH2()
	gTbl := precompute.NewFixedBaseTableG1(g, 8)
	hTbl := precompute.NewFixedBaseTableG2(h, 8)

	pk := &PublicKey{
		Qmax: qmax,
		Gs:   make([]algebra.G1, qmax),
		Hs:   make([]algebra.G2, qmax),
		Hbs:  make([]algebra.G2, qmax),
		Gr:   make([]algebra.G1, qmax),
		Grs:  make([][]algebra.G1, qmax),
		Grsb: make([][]algebra.G1, qmax),
		Hrs:  make([][]algebra.G2, qmax),
	}

	var g1 errgroup.Group
	g1.Go(func() error {
		for i := 0; i < qmax; i++ {
			pk.Gs[i] = gTbl.Pow(sPow[i])
		}
		return nil
	})
	g1.Go(func() error {
		for i := 0; i < qmax; i++ {
			pk.Hs[i] = hTbl.Pow(sPow[i])
		}
		return nil
	})
	g1.Go(func() error {
		for i := 0; i < qmax; i++ {
			var bs algebra.Scalar
			bs.Mul(&beta, &sPow[i])
			pk.Hbs[i] = hTbl.Pow(bs)
		}
		return nil
	})
	g1.Go(func() error {
		for i := 0; i < qmax; i++ {
			pk.Gr[i] = gTbl.Pow(rPow[i])
		}
		return nil
	})
	if err := g1.Wait(); err != nil {
		return nil, nil, err
	}

	// Grs/Grsb/Hrs: q rows of 2q entries each, one goroutine per row capped
	// at runtime.NumCPU() in flight (§4.2 step 5, §5 "independent fills").
	sem := make(chan struct{}, runtime.NumCPU())
	var g2 errgroup.Group
	for i := 0; i < qmax; i++ {
		i := i
		sem <- struct{}{}
		g2.Go(func() error {
			defer func() { <-sem }()
			rowG := make([]algebra.G1, 2*qmax)
			rowGb := make([]algebra.G1, 2*qmax)
			rowH := make([]algebra.G2, 2*qmax)
			for j := 0; j < 2*qmax; j++ {
				var ris algebra.Scalar
				ris.Mul(&rPow[i], &sPow[j])
				rowG[j] = gTbl.Pow(ris)
				rowH[j] = hTbl.Pow(ris)
				var bris algebra.Scalar
				bris.Mul(&beta, &ris)
				rowGb[j] = gTbl.Pow(bris)
			}
			pk.Grs[i] = rowG
			pk.Grsb[i] = rowGb
			pk.Hrs[i] = rowH
			return nil
		})
	}
	if err := g2.Wait(); err != nil {
		return nil, nil, err
	}

	pk.Hb = hTbl.Pow(beta)
	pk.Gb = gTbl.Pow(beta)

	log.Debug().Msg("key generation complete")
	return sk, pk, nil
}
