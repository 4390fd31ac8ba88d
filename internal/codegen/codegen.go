// Package codegen emits standalone Go source for a compiled automaton: the
// states are renumbered densely, every per-byte successor set is closed under
// epsilon ahead of time, and the generated function runs subset simulation
// over those tables.
package codegen

import (
	"fmt"
	"go/token"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/dave/jennifer/jen"

	"thompson/internal/automaton"
)

// Config names the generated code.
type Config struct {
	Package string // package clause of the generated file
	Name    string // exported prefix; the matcher is <Name>Matches
	Pattern string // source pattern, used in comments only
}

func (c Config) validate() error {
	if !token.IsIdentifier(c.Package) {
		return fmt.Errorf("codegen: invalid package name %q", c.Package)
	}
	if !token.IsIdentifier(c.Name) {
		return fmt.Errorf("codegen: invalid name %q", c.Name)
	}
	if r, _ := utf8.DecodeRuneInString(c.Name); !unicode.IsUpper(r) {
		return fmt.Errorf("codegen: name %q must be exported", c.Name)
	}
	return nil
}

// tables is the dense form of an automaton.
type tables struct {
	n      int
	start  []int
	accept []bool
	next   []map[byte][]int
}

func buildTables(a *automaton.Automaton) tables {
	states := a.States().Sorted()
	index := make(map[automaton.State]int, len(states))
	for i, s := range states {
		index[s] = i
	}
	toIndexes := func(set automaton.StateSet) []int {
		sorted := set.Sorted()
		out := make([]int, len(sorted))
		for i, s := range sorted {
			out[i] = index[s]
		}
		return out
	}

	acceptable := a.Acceptable()
	t := tables{
		n:      len(states),
		start:  toIndexes(a.EpsilonClosure(a.Initial())),
		accept: make([]bool, len(states)),
		next:   make([]map[byte][]int, len(states)),
	}
	alphabet := a.Alphabet()
	for i, s := range states {
		t.accept[i] = acceptable.Has(s)
		t.next[i] = map[byte][]int{}
		for _, c := range alphabet {
			if succ := a.Step(automaton.NewStateSet(s), c); succ.Len() > 0 {
				t.next[i][c] = toIndexes(succ)
			}
		}
	}
	return t
}

func ints(xs []int) *jen.Statement {
	vals := make([]jen.Code, len(xs))
	for i, x := range xs {
		vals[i] = jen.Lit(x)
	}
	return jen.Values(vals...)
}

// Generate builds the Go file for a.
func Generate(a *automaton.Automaton, cfg Config) (*jen.File, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	t := buildTables(a)

	first, size := utf8.DecodeRuneInString(cfg.Name)
	prefix := string(unicode.ToLower(first)) + cfg.Name[size:]
	startName, acceptName, nextName := prefix+"Start", prefix+"Accept", prefix+"Next"
	funcName := cfg.Name + "Matches"

	f := jen.NewFile(cfg.Package)
	f.HeaderComment("Code generated by regexviz. DO NOT EDIT.")

	f.Var().Id(startName).Op("=").Index().Int().Add(ints(t.start))

	accepts := make([]jen.Code, t.n)
	for i, ok := range t.accept {
		accepts[i] = jen.Lit(ok)
	}
	f.Var().Id(acceptName).Op("=").Index().Bool().Values(accepts...)

	rows := make([]jen.Code, t.n)
	for i, row := range t.next {
		d := jen.Dict{}
		for c, succ := range row {
			d[jen.LitByte(c)] = ints(succ)
		}
		rows[i] = jen.Values(d)
	}
	f.Var().Id(nextName).Op("=").Index().Map(jen.Byte()).Index().Int().Values(rows...)

	f.Commentf("%s reports whether the whole of input matches %q.", funcName, cfg.Pattern)
	f.Func().Id(funcName).Params(jen.Id("input").String()).Bool().Block(
		jen.Id("active").Op(":=").Make(jen.Index().Bool(), jen.Lit(t.n)),
		jen.For(jen.List(jen.Id("_"), jen.Id("s")).Op(":=").Range().Id(startName)).Block(
			jen.Id("active").Index(jen.Id("s")).Op("=").True(),
		),
		jen.For(jen.Id("i").Op(":=").Lit(0), jen.Id("i").Op("<").Len(jen.Id("input")), jen.Id("i").Op("++")).Block(
			jen.Id("next").Op(":=").Make(jen.Index().Bool(), jen.Lit(t.n)),
			jen.Id("alive").Op(":=").False(),
			jen.For(jen.List(jen.Id("s"), jen.Id("on")).Op(":=").Range().Id("active")).Block(
				jen.If(jen.Op("!").Id("on")).Block(jen.Continue()),
				jen.For(jen.List(jen.Id("_"), jen.Id("to")).Op(":=").Range().Id(nextName).Index(jen.Id("s")).Index(jen.Id("input").Index(jen.Id("i")))).Block(
					jen.Id("next").Index(jen.Id("to")).Op("=").True(),
					jen.Id("alive").Op("=").True(),
				),
			),
			jen.If(jen.Op("!").Id("alive")).Block(jen.Return(jen.False())),
			jen.Id("active").Op("=").Id("next"),
		),
		jen.For(jen.List(jen.Id("s"), jen.Id("on")).Op(":=").Range().Id("active")).Block(
			jen.If(jen.Id("on").Op("&&").Id(acceptName).Index(jen.Id("s"))).Block(jen.Return(jen.True())),
		),
		jen.Return(jen.False()),
	)
	return f, nil
}

// Write renders the generated file for a to w.
func Write(w io.Writer, a *automaton.Automaton, cfg Config) error {
	f, err := Generate(a, cfg)
	if err != nil {
		return err
	}
	return f.Render(w)
}
