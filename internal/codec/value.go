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
	"io"

	"github.com/vchainplus/core/internal/accumulator"
)

// EncodeValue writes an accumulator.Value's public (A1,A2) components;
// qmax is the universe size the accumulator was built under, carried for
// symmetry with the other codec entry points even though Value itself
// doesn't store it. The unexported accR leg never crosses the wire — see
// DESIGN.md and accumulator.Value's doc comment.
func EncodeValue(w io.Writer, qmax int, v accumulator.Value) error {
	if err := writeHeader(w, uint32(qmax)); err != nil {
		return err
	}
	return writeValueBody(w, v)
}

// DecodeValue reads a Value previously written by EncodeValue, along with
// the qmax it was stamped with.
func DecodeValue(r io.Reader) (qmax int, v accumulator.Value, err error) {
	q, err := readHeader(r)
	if err != nil {
		return 0, accumulator.Value{}, err
	}
	if v, err = readValueBody(r); err != nil {
		return 0, accumulator.Value{}, err
	}
	return int(q), v, nil
}

// writeValueBody/readValueBody write just the (A1,A2) pair, with no header
// of their own, for embedding a Value inside a larger framed message (e.g.
// setproof.Proof.AccI inside EncodeProof).
func writeValueBody(w io.Writer, v accumulator.Value) error {
	if err := writeG1(w, v.A1); err != nil {
		return err
	}
	return writeG2(w, v.A2)
}

func readValueBody(r io.Reader) (accumulator.Value, error) {
	var v accumulator.Value
	var err error
	if v.A1, err = readG1(r); err != nil {
		return accumulator.Value{}, err
	}
	if v.A2, err = readG2(r); err != nil {
		return accumulator.Value{}, err
	}
	return v, nil
}
