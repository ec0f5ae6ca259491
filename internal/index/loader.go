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

package index

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vchainplus/core/internal/keys"
	"github.com/vchainplus/core/internal/setops"
)

// BlockFile is the on-disk shape of one block: a JSON object mapping
// literal word to its member object ids. buildchain writes one such file
// per block (named "<blockID>.json"); LoadDir reads a directory of them
// back into a MemResolver.
type BlockFile struct {
	Words map[string][]uint32 `json:"words"`
}

// LoadDir reads every "<id>.json" file in dir into a fresh MemResolver
// bound to pk. Non-numeric or non-JSON files are skipped.
func LoadDir(pk *keys.PublicKey, dir string) (*MemResolver, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	r := NewMemResolver(pk)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		blockID, err := strconv.ParseUint(strings.TrimSuffix(e.Name(), ".json"), 10, 64)
		if err != nil {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		var bf BlockFile
		if err := json.Unmarshal(data, &bf); err != nil {
			return nil, err
		}
		for word, ids := range bf.Words {
			r.PutBlock(blockID, word, setops.New(ids...))
		}
	}
	return r, nil
}
