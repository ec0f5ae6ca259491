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

// Package config loads the small set of tunables shared by every command:
// the fixed-base window size, a default universe size, and worker pool
// sizes. No command in cmd/ loads a config file; cmd/query only calls
// Default().PoolSize.
package config

import (
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config is the layered-config shape: a file provides defaults, flags
// override them at the call site.
type Config struct {
	// FixedBaseWindow is a bit-width w for precompute.FixedBaseTable;
	// keys.GenKeys does not read it and always builds its tables with w = 8.
	FixedBaseWindow uint `yaml:"fixed_base_window"`
	// DefaultQmax is a default universe size; genkey does not read it (its
	// -q flag is required).
	DefaultQmax int `yaml:"default_qmax"`
	// ProverPoolSize/VerifierPoolSize are worker pool sizes, 0 meaning
	// "use runtime.NumCPU()". No command reads these fields, and no
	// proof generation or checking is bounded by them.
	ProverPoolSize   int `yaml:"prover_pool_size"`
	VerifierPoolSize int `yaml:"verifier_pool_size"`
}

// Default returns the built-in defaults, used when no config file is
// given.
func Default() Config {
	return Config{
		FixedBaseWindow:  8,
		DefaultQmax:      1 << 16,
		ProverPoolSize:   runtime.NumCPU(),
		VerifierPoolSize: runtime.NumCPU(),
	}
}

// Load reads a YAML config file at path, starting from Default() and
// overwriting only the fields the file sets.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// PoolSize returns n if n > 0, else runtime.NumCPU() — the "0 means auto"
// convention both pool-size fields share.
func (c Config) PoolSize(n int) int {
	if n > 0 {
		return n
	}
	return runtime.NumCPU()
}
