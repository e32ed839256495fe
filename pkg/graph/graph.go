// Package graph assembles the per-method context graph: the flattened
// statement list, the statement-level CFG, and the reaching-definitions DFG,
// in a form suitable for one-shot JSON emission.
package graph

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/refactorhq/java-context-graph/pkg/stmt"
)

// Adjacency is an id → successor-ids relation. It marshals as a JSON object
// with keys in ascending numeric order so emitted documents are
// deterministic, which plain Go map marshaling (lexicographic keys) is not.
type Adjacency map[int][]int

// MarshalJSON implements json.Marshaler with numerically ordered keys.
func (a Adjacency) MarshalJSON() ([]byte, error) {
	ids := make([]int, 0, len(a))
	for id := range a {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strconv.Itoa(id))
		buf.WriteString(`":`)
		succ, err := json.Marshal(a[id])
		if err != nil {
			return nil, err
		}
		buf.Write(succ)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Adjacency) UnmarshalJSON(data []byte) error {
	raw := make(map[string][]int)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Adjacency, len(raw))
	for k, v := range raw {
		id, err := strconv.Atoi(k)
		if err != nil {
			return err
		}
		out[id] = v
	}
	*a = out
	return nil
}

// ContextGraph is the complete analysis result for one method: the ordered
// statement list plus the CFG and DFG successor relations over statement ids.
// One instance is produced per analyzed method and never reused.
type ContextGraph struct {
	MethodName string            `json:"method_name,omitempty"`
	Stmts      []*stmt.Statement `json:"statements"`
	CFGSucc    Adjacency         `json:"cfg_succ"`
	DFGSucc    Adjacency         `json:"dfg_succ"`
}

// Empty reports whether the graph has no statements (e.g. an abstract or
// native method with no body).
func (g *ContextGraph) Empty() bool {
	return len(g.Stmts) == 0
}
