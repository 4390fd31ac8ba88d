// Package automaton implements nondeterministic finite automata with epsilon
// transitions: state identities, the union and concatenation operators used by
// the Thompson construction, and subset simulation for acceptance queries.
package automaton

import (
	"encoding/binary"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
)

const idWidth = 8

// State is an opaque automaton state identity. A simple state carries one
// generated id; a composite state produced by Merge carries the sorted,
// deduplicated ids of the states it was merged from.
//
// States are comparable and may be used as map keys; two states are equal
// exactly when their id sets are equal.
type State struct {
	key string // big-endian ids, idWidth bytes each, ascending
}

func stateOf(ids []uint64) State {
	buf := make([]byte, 0, len(ids)*idWidth)
	for _, id := range ids {
		buf = binary.BigEndian.AppendUint64(buf, id)
	}
	return State{key: string(buf)}
}

// IDs returns the identity set of s in ascending order.
func (s State) IDs() []uint64 {
	ids := make([]uint64, 0, len(s.key)/idWidth)
	for i := 0; i+idWidth <= len(s.key); i += idWidth {
		ids = append(ids, binary.BigEndian.Uint64([]byte(s.key[i:i+idWidth])))
	}
	return ids
}

// IsZero reports whether s is the zero State, which no generator produces.
func (s State) IsZero() bool { return s.key == "" }

// IsComposite reports whether s was produced by merging distinct states.
func (s State) IsComposite() bool { return len(s.key) > idWidth }

// Less orders states by their id sequences. Fixed-width big-endian encoding
// makes byte order agree with numeric order.
func (s State) Less(o State) bool { return s.key < o.key }

func (s State) String() string {
	ids := s.IDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return "S(" + strings.Join(parts, ", ") + ")"
}

// Merge returns the product of a and b: a itself when a == b, otherwise a
// composite state identified by the sorted union of both id sets.
func Merge(a, b State) State {
	if a == b {
		return a
	}
	seen := make(map[uint64]struct{})
	var ids []uint64
	for _, id := range append(a.IDs(), b.IDs()...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return stateOf(ids)
}

/* ----------- Identifier generator ----------- */

// Generator hands out state identities. It is safe for concurrent use; every
// call to Generate returns a value strictly greater than all values it
// returned before.
type Generator struct {
	last atomic.Uint64
}

// NewGenerator returns a generator whose first id is 1.
func NewGenerator() *Generator { return &Generator{} }

// Generate returns a fresh id.
func (g *Generator) Generate() uint64 { return g.last.Add(1) }

// NewState returns a simple state with a fresh id.
func (g *Generator) NewState() State { return stateOf([]uint64{g.Generate()}) }
