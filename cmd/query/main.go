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

// Command query plans and evaluates a batch of queries against a toy
// on-disk dataset, verifying every set-operation proof produced along the
// way. Exit code 0 means every query evaluated and verified; 1 is a usage
// or I/O error; 2 means at least one proof failed verification.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vchainplus/core/internal/codec"
	"github.com/vchainplus/core/internal/config"
	"github.com/vchainplus/core/internal/dag"
	"github.com/vchainplus/core/internal/index"
	"github.com/vchainplus/core/internal/profiling"
	"github.com/vchainplus/core/internal/query"
	"github.com/vchainplus/core/internal/vchainerr"
	"github.com/vchainplus/core/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	var optimize, prune bool
	var pkPath, dbDir, queriesPath, timeJSON, cpuProfile string
	var verifierThreads int

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Plan, evaluate, and verify a batch of keyword queries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cpuProfile != "" {
				sess, err := profiling.Start(cpuProfile)
				if err != nil {
					return err
				}
				defer sess.Stop()
			}

			pkFile, err := os.Open(pkPath)
			if err != nil {
				return err
			}
			defer pkFile.Close()
			pk, err := codec.DecodePublicKey(pkFile)
			if err != nil {
				return err
			}

			resolver, err := index.LoadDir(pk, dbDir)
			if err != nil {
				return err
			}

			if timeJSON != "" {
				if _, err := os.Stat(timeJSON); err != nil {
					return fmt.Errorf("time-json %q: %w", timeJSON, err)
				}
			}

			data, err := os.ReadFile(queriesPath)
			if err != nil {
				return err
			}
			var specs []query.QuerySpec
			if err := json.Unmarshal(data, &specs); err != nil {
				return err
			}

			pool := config.Default().PoolSize(verifierThreads)
			log := logger.Logger()
			log.Info().Int("queries", len(specs)).Int("verifier_threads", pool).
				Bool("optimize", optimize).Bool("prune", prune).Msg("starting query batch")

			ctx := context.Background()
			invalid := 0
			for i, spec := range specs {
				plan, err := dag.Plan(ctx, spec, pk.Qmax, resolver, optimize)
				if err != nil {
					return fmt.Errorf("query %d: plan: %w", i, err)
				}

				result, err := dag.Evaluate(ctx, plan, resolver, pk, prune)
				if err != nil {
					if errors.Is(err, vchainerr.ErrProofInvalid) {
						invalid++
						log.Error().Int("query", i).Err(err).Msg("proof rejected")
						continue
					}
					return fmt.Errorf("query %d: evaluate: %w", i, err)
				}

				log.Info().Int("query", i).Int("result_size", result.Set.Len()).
					Int("chain_len", len(result.Chain)).Msg("query verified")
			}

			if invalid > 0 {
				return fmt.Errorf("%d of %d queries failed verification: %w", invalid, len(specs), vchainerr.ErrProofInvalid)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&optimize, "e", "e", false, "optimize: compare normalized vs DNF plan cost and keep the cheaper")
	cmd.Flags().BoolVarP(&prune, "n", "n", false, "prune empty-set subtrees during evaluation")
	cmd.Flags().StringVarP(&pkPath, "k", "k", "", "public key file (.pk)")
	cmd.Flags().StringVarP(&dbDir, "i", "i", "", "dataset directory (as written by buildchain)")
	cmd.Flags().StringVarP(&queriesPath, "q", "q", "", "queries JSON file ([]query.QuerySpec)")
	cmd.Flags().StringVarP(&timeJSON, "r", "r", "", "time range JSON (out of scope beyond existence check)")
	cmd.Flags().IntVarP(&verifierThreads, "v", "v", 0, "verifier thread count (0 = runtime.NumCPU())")
	cmd.Flags().StringVar(&cpuProfile, "cpuprofile", "", "write a CPU profile to this path")
	_ = cmd.MarkFlagRequired("k")
	_ = cmd.MarkFlagRequired("i")
	_ = cmd.MarkFlagRequired("q")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, vchainerr.ErrProofInvalid) {
			return 2
		}
		return 1
	}
	return 0
}
