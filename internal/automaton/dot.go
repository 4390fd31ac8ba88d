package automaton

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DOTOptions controls Graphviz output.
type DOTOptions struct {
	RankDir string // LR when empty
	Label   string // graph caption, omitted when empty
}

func nodeName(s State) string {
	ids := s.IDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(id, 10)
	}
	return "s" + strings.Join(parts, "_")
}

// WriteDOT writes a Graphviz rendering of a to w. Initial states hang off
// point-shaped start nodes, accepting states are double circles and epsilon
// edges are dashed.
func WriteDOT(w io.Writer, a *Automaton, opts DOTOptions) error {
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "LR"
	}
	ew := &errWriter{w: w}
	ew.printf("digraph NFA {\n")
	ew.printf("    rankdir=%s;\n", rankdir)
	if opts.Label != "" {
		ew.printf("    label=%q;\n", opts.Label)
	}

	for _, s := range a.states.Sorted() {
		shape := "circle"
		if a.acceptable.Has(s) {
			shape = "doublecircle"
		}
		ew.printf("    %s [shape=%s, label=%q];\n", nodeName(s), shape, s.String())
	}
	for i, s := range a.initial.Sorted() {
		ew.printf("    _start%d [shape=point]; _start%d -> %s;\n", i, i, nodeName(s))
	}
	for _, t := range a.Transitions() {
		style := ""
		if t.Epsilon {
			style = ", style=dashed"
		}
		for _, to := range t.To {
			ew.printf("    %s -> %s [label=%q%s];\n", nodeName(t.From), nodeName(to), dotLabel(t), style)
		}
	}
	ew.printf("}\n")
	return ew.err
}

// dotLabel prints printable ASCII as is and any other byte as \xNN.
func dotLabel(t Transition) string {
	if t.Epsilon {
		return "ε"
	}
	if t.Symbol < utf8.RuneSelf && strconv.IsPrint(rune(t.Symbol)) {
		return string(rune(t.Symbol))
	}
	return fmt.Sprintf(`\x%02x`, t.Symbol)
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
