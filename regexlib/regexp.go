// Package regexlib compiles regular expressions over literal bytes, grouping,
// alternation (|) and Kleene star (*) into Thompson NFAs and matches whole
// strings against them.
package regexlib

import (
	"fmt"
	"io"
	"log/slog"

	"thompson/internal/automaton"
	"thompson/internal/syntax"
)

// CompileError wraps a parse fault with the pattern that caused it.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %q: %v", e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

/* ----------- Options ----------- */

type options struct {
	gen    *automaton.Generator
	logger *slog.Logger
}

// Option configures Compile.
type Option func(*options)

// WithGenerator draws state ids from gen instead of a generator private to
// the compilation. Share one generator when automata from separate patterns
// are later combined with automaton.Union or automaton.Concatenate.
func WithGenerator(gen *automaton.Generator) Option {
	return func(o *options) { o.gen = gen }
}

// WithLogger sets the logger for compile diagnostics (debug level). A nil
// logger discards them.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = discard
		}
		o.logger = l
	}
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

/* ----------- Compile ----------- */

// Regex is a compiled pattern. It is immutable and safe for concurrent use.
type Regex struct {
	pattern string
	tree    syntax.Node
	nfa     *automaton.Automaton
}

// Compile parses pattern and builds its automaton.
func Compile(pattern string, opts ...Option) (*Regex, error) {
	o := options{logger: discard}
	for _, opt := range opts {
		opt(&o)
	}
	if o.gen == nil {
		o.gen = automaton.NewGenerator()
	}

	tree, err := syntax.Parse(pattern)
	if err != nil {
		o.logger.Debug("parse failed", "pattern", pattern, "err", err)
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	nfa := syntax.Compile(tree, o.gen)
	o.logger.Debug("compiled pattern",
		"pattern", pattern,
		"tree", tree.String(),
		"states", nfa.Len(),
		"alphabet", string(nfa.Alphabet()),
	)
	return &Regex{pattern: pattern, tree: tree, nfa: nfa}, nil
}

func MustCompile(pattern string) *Regex {
	r, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return r
}

// Matches reports whether the whole of input is in the pattern's language.
func (r *Regex) Matches(input string) bool { return r.nfa.Accepts(input) }

// String returns the source pattern.
func (r *Regex) String() string { return r.pattern }

// Tree returns the parsed syntax tree.
func (r *Regex) Tree() syntax.Node { return r.tree }

// NFA returns the compiled automaton.
func (r *Regex) NFA() *automaton.Automaton { return r.nfa }

// WriteDOT renders the automaton as Graphviz. An empty opts.Label defaults to
// the pattern.
func (r *Regex) WriteDOT(w io.Writer, opts automaton.DOTOptions) error {
	if opts.Label == "" {
		opts.Label = r.pattern
	}
	return automaton.WriteDOT(w, r.nfa, opts)
}
