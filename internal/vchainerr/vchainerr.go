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

// Package vchainerr defines the typed error kinds shared by every core
// component (§7 of the specification).
package vchainerr

import "errors"

// Sentinel kinds. Wrap with fmt.Errorf("...: %w", ErrX) to attach context
// while keeping errors.Is(err, ErrX) working.
var (
	// ErrOutOfUniverse: a set element id is >= qmax. Terminates the current
	// operation; it is a contract violation, not a recoverable condition.
	ErrOutOfUniverse = errors.New("vchainerr: element outside universe [0, qmax)")

	// ErrIncompleteKey: the prover needs a public-key table entry that is
	// absent. Terminates the current operation.
	ErrIncompleteKey = errors.New("vchainerr: incomplete public key")

	// ErrMalformedInput: deserialization failure, unknown version, or a
	// length mismatch. Recoverable at the call site.
	ErrMalformedInput = errors.New("vchainerr: malformed input")

	// ErrProofInvalid: a pairing equation failed to verify. Recoverable at
	// the call site.
	ErrProofInvalid = errors.New("vchainerr: proof invalid")

	// ErrInternalArithmetic: a bug (e.g. inversion of zero, a cyclic DAG
	// that should be structurally impossible).
	ErrInternalArithmetic = errors.New("vchainerr: internal arithmetic error")
)

// Kind returns which sentinel err wraps, or nil if it isn't one of ours.
func Kind(err error) error {
	for _, k := range []error{ErrOutOfUniverse, ErrIncompleteKey, ErrMalformedInput, ErrProofInvalid, ErrInternalArithmetic} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// Recoverable reports whether err is of a kind the verifier/query loop may
// report and continue past, rather than abort the whole run (§7).
func Recoverable(err error) bool {
	return errors.Is(err, ErrMalformedInput) || errors.Is(err, ErrProofInvalid)
}
