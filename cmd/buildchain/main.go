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

// Command buildchain is the minimal dataset loader needed to exercise
// query end to end: it does not implement real block assembly (out of
// scope), only the JSON-blocks-on-disk shape internal/index.MemResolver
// reads back.
package main

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vchainplus/core/internal/codec"
	"github.com/vchainplus/core/internal/index"
	"github.com/vchainplus/core/logger"
)

// datasetEntry is the toy input dataset shape: one literal's membership in
// one block.
type datasetEntry struct {
	Block uint64   `json:"block"`
	Word  string   `json:"word"`
	IDs   []uint32 `json:"ids"`
}

func main() {
	os.Exit(run())
}

func run() int {
	var windows []string
	var idFanout, nbBlocks, maxID, dims int
	var pkPath, dataset, timeJSON, outDir string

	cmd := &cobra.Command{
		Use:   "buildchain",
		Short: "Build a toy on-disk dataset consumable by the query command",
		RunE: func(cmd *cobra.Command, args []string) error {
			pkFile, err := os.Open(pkPath)
			if err != nil {
				return err
			}
			defer pkFile.Close()
			pk, err := codec.DecodePublicKey(pkFile)
			if err != nil {
				return err
			}

			var entries []datasetEntry
			if dataset != "" {
				data, err := os.ReadFile(dataset)
				if err != nil {
					return err
				}
				if err := json.Unmarshal(data, &entries); err != nil {
					return err
				}
			} else {
				entries, err = synthesize(nbBlocks, dims, idFanout, maxID)
				if err != nil {
					return err
				}
			}

			if timeJSON != "" {
				if _, err := os.Stat(timeJSON); err != nil {
					return fmt.Errorf("time-json %q: %w", timeJSON, err)
				}
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			if err := writeBlocks(outDir, entries); err != nil {
				return err
			}

			logger.Logger().Info().
				Int("qmax", pk.Qmax).
				Int("entries", len(entries)).
				Strs("windows", windows).
				Str("out", outDir).
				Msg("chain built")
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&windows, "t", "t", nil, "time windows (out of scope beyond bookkeeping)")
	cmd.Flags().IntVar(&idFanout, "id-fanout", 8, "ids per literal when synthesizing")
	cmd.Flags().IntVarP(&nbBlocks, "b", "b", 1, "number of blocks")
	cmd.Flags().IntVarP(&maxID, "m", "m", 1<<10, "max object id")
	cmd.Flags().IntVarP(&dims, "d", "d", 4, "number of literal dimensions per block")
	cmd.Flags().StringVarP(&pkPath, "k", "k", "", "public key file (.pk)")
	cmd.Flags().StringVarP(&dataset, "i", "i", "", "input dataset JSON ([]datasetEntry); if empty, synthesize")
	cmd.Flags().StringVarP(&timeJSON, "r", "r", "", "time range JSON (out of scope beyond existence check)")
	cmd.Flags().StringVarP(&outDir, "o", "o", "", "output directory (the toy db)")
	_ = cmd.MarkFlagRequired("k")
	_ = cmd.MarkFlagRequired("o")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func synthesize(nbBlocks, dims, idFanout, maxID int) ([]datasetEntry, error) {
	var entries []datasetEntry
	for b := 0; b < nbBlocks; b++ {
		for d := 0; d < dims; d++ {
			ids := make([]uint32, 0, idFanout)
			seen := make(map[uint32]struct{}, idFanout)
			for len(ids) < idFanout {
				n, err := rand.Int(rand.Reader, big.NewInt(int64(maxID)))
				if err != nil {
					return nil, err
				}
				id := uint32(n.Int64())
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
			entries = append(entries, datasetEntry{
				Block: uint64(b),
				Word:  fmt.Sprintf("word%d", d),
				IDs:   ids,
			})
		}
	}
	return entries, nil
}

func writeBlocks(outDir string, entries []datasetEntry) error {
	blocks := make(map[uint64]*index.BlockFile)
	for _, e := range entries {
		bf, ok := blocks[e.Block]
		if !ok {
			bf = &index.BlockFile{Words: make(map[string][]uint32)}
			blocks[e.Block] = bf
		}
		bf.Words[e.Word] = e.IDs
	}
	for block, bf := range blocks {
		data, err := json.MarshalIndent(bf, "", "  ")
		if err != nil {
			return err
		}
		path := filepath.Join(outDir, fmt.Sprintf("%d.json", block))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
	}
	return nil
}
