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

	"github.com/vchainplus/core/internal/keys"
)

// EncodePublicKey writes pk in the canonical format.
func EncodePublicKey(w io.Writer, pk *keys.PublicKey) error {
	if err := writeHeader(w, uint32(pk.Qmax)); err != nil {
		return err
	}
	if err := writeG1Slice(w, pk.Gs); err != nil {
		return err
	}
	if err := writeG2Slice(w, pk.Hs); err != nil {
		return err
	}
	if err := writeG2Slice(w, pk.Hbs); err != nil {
		return err
	}
	if err := writeG1Slice(w, pk.Gr); err != nil {
		return err
	}
	if err := writeG1Grid(w, pk.Grs); err != nil {
		return err
	}
	if err := writeG1Grid(w, pk.Grsb); err != nil {
		return err
	}
	if err := writeG2Grid(w, pk.Hrs); err != nil {
		return err
	}
	if err := writeG2(w, pk.Hb); err != nil {
		return err
	}
	return writeG1(w, pk.Gb)
}

// DecodePublicKey reads a PublicKey previously written by EncodePublicKey.
func DecodePublicKey(r io.Reader) (*keys.PublicKey, error) {
	qmax, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	pk := &keys.PublicKey{Qmax: int(qmax)}
	if pk.Gs, err = readG1Slice(r); err != nil {
		return nil, err
	}
	if pk.Hs, err = readG2Slice(r); err != nil {
		return nil, err
	}
	if pk.Hbs, err = readG2Slice(r); err != nil {
		return nil, err
	}
	if pk.Gr, err = readG1Slice(r); err != nil {
		return nil, err
	}
	if pk.Grs, err = readG1Grid(r); err != nil {
		return nil, err
	}
	if pk.Grsb, err = readG1Grid(r); err != nil {
		return nil, err
	}
	if pk.Hrs, err = readG2Grid(r); err != nil {
		return nil, err
	}
	if pk.Hb, err = readG2(r); err != nil {
		return nil, err
	}
	if pk.Gb, err = readG1(r); err != nil {
		return nil, err
	}
	return pk, nil
}
