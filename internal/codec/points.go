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

	"github.com/vchainplus/core/internal/algebra"
	"github.com/vchainplus/core/internal/vchainerr"
)

func writeG1(w io.Writer, p algebra.G1) error {
	b := p.Bytes()
	_, err := w.Write(b[:])
	return err
}

func readG1(r io.Reader) (algebra.G1, error) {
	var p algebra.G1
	var buf [32]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return p, fmt.Errorf("reading G1 point: %w", vchainerr.ErrMalformedInput)
	}
	if _, err := p.SetBytes(buf[:]); err != nil {
		return p, fmt.Errorf("decoding G1 point: %w: %v", vchainerr.ErrMalformedInput, err)
	}
	return p, nil
}

func writeG2(w io.Writer, p algebra.G2) error {
	b := p.Bytes()
	_, err := w.Write(b[:])
	return err
}

func readG2(r io.Reader) (algebra.G2, error) {
	var p algebra.G2
	var buf [64]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return p, fmt.Errorf("reading G2 point: %w", vchainerr.ErrMalformedInput)
	}
	if _, err := p.SetBytes(buf[:]); err != nil {
		return p, fmt.Errorf("decoding G2 point: %w: %v", vchainerr.ErrMalformedInput, err)
	}
	return p, nil
}

func writeG1Slice(w io.Writer, pts []algebra.G1) error {
	if err := writeCount(w, len(pts)); err != nil {
		return err
	}
	for _, p := range pts {
		if err := writeG1(w, p); err != nil {
			return err
		}
	}
	return nil
}

func readG1Slice(r io.Reader) ([]algebra.G1, error) {
	n, err := readCount(r)
	if err != nil {
		return nil, err
	}
	out := make([]algebra.G1, n)
	for i := range out {
		out[i], err = readG1(r)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func writeG2Slice(w io.Writer, pts []algebra.G2) error {
	if err := writeCount(w, len(pts)); err != nil {
		return err
	}
	for _, p := range pts {
		if err := writeG2(w, p); err != nil {
			return err
		}
	}
	return nil
}

func readG2Slice(r io.Reader) ([]algebra.G2, error) {
	n, err := readCount(r)
	if err != nil {
		return nil, err
	}
	out := make([]algebra.G2, n)
	for i := range out {
		out[i], err = readG2(r)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func writeG1Grid(w io.Writer, grid [][]algebra.G1) error {
	if err := writeCount(w, len(grid)); err != nil {
		return err
	}
	for _, row := range grid {
		if err := writeG1Slice(w, row); err != nil {
			return err
		}
	}
	return nil
}

func readG1Grid(r io.Reader) ([][]algebra.G1, error) {
	n, err := readCount(r)
	if err != nil {
		return nil, err
	}
	out := make([][]algebra.G1, n)
	for i := range out {
		out[i], err = readG1Slice(r)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func writeG2Grid(w io.Writer, grid [][]algebra.G2) error {
	if err := writeCount(w, len(grid)); err != nil {
		return err
	}
	for _, row := range grid {
		if err := writeG2Slice(w, row); err != nil {
			return err
		}
	}
	return nil
}

func readG2Grid(r io.Reader) ([][]algebra.G2, error) {
	n, err := readCount(r)
	if err != nil {
		return nil, err
	}
	out := make([][]algebra.G2, n)
	for i := range out {
		out[i], err = readG2Slice(r)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
