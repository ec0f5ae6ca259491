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

// Package logger provides a single, process-global zerolog.Logger used
// throughout the core so that call sites don't have to thread a logger
// through every function signature.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	lock sync.RWMutex
	log  = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, NoColor: false}).With().Timestamp().Logger()
)

// Logger returns the global logger.
func Logger() zerolog.Logger {
	lock.RLock()
	defer lock.RUnlock()
	return log
}

// SetOutput redirects the global logger's output.
func SetOutput(w io.Writer) {
	lock.Lock()
	defer lock.Unlock()
	log = log.Output(w)
}

// SetLevel sets the minimum level the global logger emits.
func SetLevel(lvl zerolog.Level) {
	lock.Lock()
	defer lock.Unlock()
	log = log.Level(lvl)
}

// Disable silences the global logger entirely.
func Disable() {
	SetLevel(zerolog.Disabled)
}
