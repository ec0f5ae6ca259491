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

// Command genkey runs the offline key-generation tool: gen_key(q, out).
package main

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vchainplus/core/internal/codec"
	"github.com/vchainplus/core/internal/keys"
	"github.com/vchainplus/core/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	var qmax int
	var out string

	cmd := &cobra.Command{
		Use:   "genkey",
		Short: "Generate a (secret key, public key) pair for a given universe size",
		RunE: func(cmd *cobra.Command, args []string) error {
			sk, pk, err := keys.GenKeys(qmax, rand.Reader)
			if err != nil {
				return err
			}

			pkFile, err := os.Create(out + ".pk")
			if err != nil {
				return err
			}
			defer pkFile.Close()
			if err := codec.EncodePublicKey(pkFile, pk); err != nil {
				return err
			}

			skFile, err := os.Create(out + ".sk")
			if err != nil {
				return err
			}
			defer skFile.Close()
			if err := writeSecretKey(skFile, sk); err != nil {
				return err
			}

			logger.Logger().Info().Int("qmax", qmax).Str("out", out).Msg("keys written")
			return nil
		},
	}
	cmd.Flags().IntVarP(&qmax, "q", "q", 0, "universe size (q_max)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file prefix (writes <out>.pk and <out>.sk)")
	_ = cmd.MarkFlagRequired("q")
	_ = cmd.MarkFlagRequired("out")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// writeSecretKey persists the three raw scalars. Unlike PublicKey/Value/
// Proof this never crosses the prover/verifier boundary and carries no
// canonical-format guarantee: the spec's versioned wire format (§11) is
// scoped to values third parties consume.
func writeSecretKey(w *os.File, sk *keys.SecretKey) error {
	sBytes := sk.S.Bytes()
	rBytes := sk.R.Bytes()
	betaBytes := sk.Beta.Bytes()
	if _, err := w.Write(sBytes[:]); err != nil {
		return err
	}
	if _, err := w.Write(rBytes[:]); err != nil {
		return err
	}
	_, err := w.Write(betaBytes[:])
	return err
}
