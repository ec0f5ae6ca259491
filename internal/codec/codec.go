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

// Package codec implements C9: the canonical binary wire format for
// PublicKey, accumulator.Value and setproof.Proof. DAG plans use a
// separate CBOR format (internal/dag's SavePlan/LoadPlan) since that
// cache never needs to be this format's bit-exact, cross-version contract.
package codec

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/blang/semver/v4"

	"github.com/vchainplus/core/internal/vchainerr"
)

var magic = [4]byte{'V', 'C', 'H', '+'}

// Version is the canonical format version stamped into every encoded
// value. Only the major component gates compatibility: DecodeXxx rejects
// an unsupported major version but tolerates a higher minor/patch.
var Version = semver.MustParse("1.0.0")

func writeHeader(w io.Writer, qmax uint32) error {
	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	var verBuf [6]byte
	binary.LittleEndian.PutUint16(verBuf[0:2], uint16(Version.Major))
	binary.LittleEndian.PutUint16(verBuf[2:4], uint16(Version.Minor))
	binary.LittleEndian.PutUint16(verBuf[4:6], uint16(Version.Patch))
	if _, err := w.Write(verBuf[:]); err != nil {
		return err
	}
	var qmaxBuf [4]byte
	binary.LittleEndian.PutUint32(qmaxBuf[:], qmax)
	_, err := w.Write(qmaxBuf[:])
	return err
}

// readHeader validates the magic and major version, returning the
// embedded qmax. Any short read or mismatch is ErrMalformedInput.
func readHeader(r io.Reader) (qmax uint32, err error) {
	var got [4]byte
	if _, err := io.ReadFull(r, got[:]); err != nil {
		return 0, fmt.Errorf("reading magic: %w", vchainerr.ErrMalformedInput)
	}
	if got != magic {
		return 0, fmt.Errorf("bad magic %x: %w", got, vchainerr.ErrMalformedInput)
	}
	var verBuf [6]byte
	if _, err := io.ReadFull(r, verBuf[:]); err != nil {
		return 0, fmt.Errorf("reading version: %w", vchainerr.ErrMalformedInput)
	}
	major := binary.LittleEndian.Uint16(verBuf[0:2])
	if uint64(major) != Version.Major {
		return 0, fmt.Errorf("unsupported major version %d: %w", major, vchainerr.ErrMalformedInput)
	}
	var qmaxBuf [4]byte
	if _, err := io.ReadFull(r, qmaxBuf[:]); err != nil {
		return 0, fmt.Errorf("reading qmax: %w", vchainerr.ErrMalformedInput)
	}
	return binary.LittleEndian.Uint32(qmaxBuf[:]), nil
}

func writeCount(w io.Writer, n int) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(n))
	_, err := w.Write(buf[:])
	return err
}

func readCount(r io.Reader) (int, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("reading count: %w", vchainerr.ErrMalformedInput)
	}
	return int(binary.LittleEndian.Uint32(buf[:])), nil
}
