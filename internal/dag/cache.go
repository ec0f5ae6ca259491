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

package dag

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

// wireDAG is the CBOR-serializable shadow of DAG: Plan's internal fields
// (parents/children/visited) are unexported since nothing outside this
// package should mutate them directly, so the cache format is a separate,
// explicit type rather than relying on reflection over unexported fields
// (which encoding/cbor, like encoding/json, cannot see anyway).
type wireDAG struct {
	Nodes    []Node
	Root     int
	Parents  [][]int
	Children [][]int
}

// SavePlan encodes d as CBOR into w: the internal plan-cache format,
// distinct from internal/codec's canonical wire format for
// PublicKey/Value/Proof, which never needs to round-trip graph adjacency.
func SavePlan(w io.Writer, d *DAG) error {
	wd := wireDAG{Nodes: d.Nodes, Root: d.Root, Parents: d.parents, Children: d.children}
	return cbor.NewEncoder(w).Encode(wd)
}

// LoadPlan decodes a DAG previously written by SavePlan. The caller is
// responsible for matching it against the query it was planned for; the
// plan carries no record of its query, qmax or optimize flag.
func LoadPlan(r io.Reader) (*DAG, error) {
	var wd wireDAG
	if err := cbor.NewDecoder(r).Decode(&wd); err != nil {
		return nil, err
	}
	d := &DAG{Nodes: wd.Nodes, Root: wd.Root, parents: wd.Parents, children: wd.Children}
	return d, nil
}
