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

package codec

import (
	"fmt"
	"io"

	"github.com/vchainplus/core/internal/setproof"
	"github.com/vchainplus/core/internal/vchainerr"
)

// EncodeProof writes a setproof.Proof, stamping qmax for symmetry with
// the other codec entry points (the proof's own bytes carry no qmax
// dependence, but a verifier always needs the matching PublicKey's qmax
// alongside it).
func EncodeProof(w io.Writer, qmax int, p setproof.Proof) error {
	if err := writeHeader(w, uint32(qmax)); err != nil {
		return err
	}
	var opBuf [1]byte
	opBuf[0] = byte(p.Op)
	if _, err := w.Write(opBuf[:]); err != nil {
		return err
	}
	if err := writeG1(w, p.WG); err != nil {
		return err
	}
	if err := writeG1(w, p.WGb); err != nil {
		return err
	}
	if err := writeG1(w, p.AccRI); err != nil {
		return err
	}
	return writeValueBody(w, p.AccI)
}

// DecodeProof reads a Proof previously written by EncodeProof.
func DecodeProof(r io.Reader) (qmax int, p setproof.Proof, err error) {
	q, err := readHeader(r)
	if err != nil {
		return 0, setproof.Proof{}, err
	}
	var opBuf [1]byte
	if _, err := io.ReadFull(r, opBuf[:]); err != nil {
		return 0, setproof.Proof{}, fmt.Errorf("reading op: %w", vchainerr.ErrMalformedInput)
	}
	p.Op = setproof.Op(opBuf[0])
	if p.Op > setproof.Difference {
		return 0, setproof.Proof{}, fmt.Errorf("op %d out of range: %w", p.Op, vchainerr.ErrMalformedInput)
	}
	if p.WG, err = readG1(r); err != nil {
		return 0, setproof.Proof{}, err
	}
	if p.WGb, err = readG1(r); err != nil {
		return 0, setproof.Proof{}, err
	}
	if p.AccRI, err = readG1(r); err != nil {
		return 0, setproof.Proof{}, err
	}
	if p.AccI, err = readValueBody(r); err != nil {
		return 0, setproof.Proof{}, err
	}
	return int(q), p, nil
}
