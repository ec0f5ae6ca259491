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

// Package profiling wires the query CLI's --cpuprofile flag: capture via
// runtime/pprof, summarize via google/pprof's profile package rather than
// asking a user to reach for a separate `go tool pprof` invocation.
package profiling

import (
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"sort"

	"github.com/google/pprof/profile"

	"github.com/vchainplus/core/logger"
)

// Session wraps a runtime/pprof CPU profile capture from Start to Stop.
type Session struct {
	f *os.File
}

// Start begins CPU profiling, writing the raw profile to path on Stop.
func Start(path string) (*Session, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, err
	}
	return &Session{f: f}, nil
}

// Stop ends the capture, closes the file, and logs a short top-cumulative
// summary parsed back out of the profile it just wrote.
func (s *Session) Stop() error {
	pprof.StopCPUProfile()
	path := s.f.Name()
	if err := s.f.Close(); err != nil {
		return err
	}
	return summarize(path)
}

func summarize(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	prof, err := profile.Parse(f)
	if err != nil {
		return err
	}
	summarizeProfile(os.Stderr, prof)
	return nil
}

func summarizeProfile(w io.Writer, prof *profile.Profile) {
	type entry struct {
		name string
		cum  int64
	}
	totals := make(map[string]int64)
	for _, s := range prof.Sample {
		var cum int64
		for _, v := range s.Value {
			cum += v
		}
		for _, loc := range s.Location {
			for _, line := range loc.Line {
				if line.Function == nil {
					continue
				}
				totals[line.Function.Name] += cum
			}
		}
	}
	entries := make([]entry, 0, len(totals))
	for name, cum := range totals {
		entries = append(entries, entry{name, cum})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].cum > entries[j].cum })

	log := logger.Logger()
	n := len(entries)
	if n > 10 {
		n = 10
	}
	fmt.Fprintln(w, "cpu profile: top cumulative samples")
	for i := 0; i < n; i++ {
		log.Info().Str("function", entries[i].name).Int64("cumulative", entries[i].cum).Msg("profile sample")
	}
}
