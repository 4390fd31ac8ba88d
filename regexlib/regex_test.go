package regexlib

import (
	"bytes"
	"errors"
	"log/slog"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"thompson/internal/automaton"
	"thompson/internal/syntax"
)

// ------------------------------------------------------------------- helpers

func acc(t *testing.T, re *Regex, in string, want bool) {
	t.Helper()
	if got := re.Matches(in); got != want {
		t.Fatalf("pattern %q on %q want %v got %v", re.pattern, in, want, got)
	}
}

func newRE(t *testing.T, pat string) *Regex {
	t.Helper()
	re, err := Compile(pat)
	if err != nil {
		t.Fatalf("compile %q: %v", pat, err)
	}
	return re
}

// words returns every string over alphabet of length at most n.
func words(alphabet string, n int) []string {
	out := []string{""}
	layer := []string{""}
	for i := 0; i < n; i++ {
		var next []string
		for _, w := range layer {
			for _, c := range alphabet {
				next = append(next, w+string(c))
			}
		}
		out = append(out, next...)
		layer = next
	}
	return out
}

// ------------------------------------------------------------------- basics

func TestEmptyPattern(t *testing.T) {
	re := newRE(t, "")
	acc(t, re, "", true)
	for _, in := range []string{"x", "a", " ", "aa"} {
		acc(t, re, in, false)
	}
}

func TestExactConsumption(t *testing.T) {
	re := newRE(t, "ab")
	acc(t, re, "ab", true)
	acc(t, re, "a", false)
	acc(t, re, "abc", false)
	acc(t, re, "", false)
}

func TestStar(t *testing.T) {
	re := newRE(t, "a*")
	acc(t, re, "", true)
	acc(t, re, "aaaa", true)
	acc(t, re, "aaab", false)
}

func TestParserPrecedence(t *testing.T) {
	re := newRE(t, "a|bc*")
	acc(t, re, "a", true)
	acc(t, re, "b", true)
	acc(t, re, "bccc", true)
	acc(t, re, "ab", false)
	acc(t, re, "bcbc", false)
}

func TestGroupedStar(t *testing.T) {
	re := newRE(t, "a(b|c)*d")
	acc(t, re, "abcbcd", true)
	acc(t, re, "ad", true)
	acc(t, re, "abce", false)
	acc(t, re, "abc", false)
}

func TestLeadingAndTrailingBar(t *testing.T) {
	re := newRE(t, "|a")
	acc(t, re, "", true)
	acc(t, re, "a", true)
	acc(t, re, "aa", false)

	re = newRE(t, "a|")
	acc(t, re, "", true)
	acc(t, re, "a", true)
}

func TestMalformed(t *testing.T) {
	for _, pat := range []string{"(a", "a)", "*a", "a**", "(", ")("} {
		re, err := Compile(pat)
		if err == nil {
			t.Fatalf("compile %q: want error, got %v", pat, re)
		}
		var ce *CompileError
		if !errors.As(err, &ce) || ce.Pattern != pat {
			t.Errorf("compile %q: error %v is not a *CompileError for the pattern", pat, err)
		}
		var se *syntax.SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("compile %q: error %v does not carry a position", pat, err)
		}
	}
	_, err := Compile("(ab")
	if !errors.Is(err, syntax.ErrMissingParen) {
		t.Errorf("want ErrMissingParen, got %v", err)
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustCompile did not panic")
		}
	}()
	MustCompile("*")
}

// ------------------------------------------------------------------- properties

func TestUnionIsDisjunction(t *testing.T) {
	patterns := []string{"", "a", "b*", "ab", "a*b", "(ab)*", "a|b", "(a|b)*a", "|b", "(a|)b", "(|a)a"}
	inputs := words("ab", 4)
	for _, p1 := range patterns {
		for _, p2 := range patterns {
			u := newRE(t, p1+"|"+p2)
			r1, r2 := newRE(t, p1), newRE(t, p2)
			for _, s := range inputs {
				if want := r1.Matches(s) || r2.Matches(s); u.Matches(s) != want {
					t.Errorf("%q|%q on %q: got %v want %v", p1, p2, s, !want, want)
				}
			}
		}
	}
}

// An optional prefix must be taken at most once.
func TestOptionalPrefix(t *testing.T) {
	tests := []struct {
		pattern string
		accept  []string
		reject  []string
	}{
		{"(a|)b", []string{"b", "ab"}, []string{"aab", "a", ""}},
		{"(|a)a", []string{"a", "aa"}, []string{"aaa", ""}},
		{"(b|)a", []string{"a", "ba"}, []string{"bba"}},
		{"x(a|)(b|)y", []string{"xy", "xay", "xby", "xaby"}, []string{"xaay", "xbay", "xabby"}},
	}
	for _, tt := range tests {
		re := newRE(t, tt.pattern)
		for _, in := range tt.accept {
			acc(t, re, in, true)
		}
		for _, in := range tt.reject {
			acc(t, re, in, false)
		}
	}
}

func TestMatchesIsRepeatable(t *testing.T) {
	re := newRE(t, "a(b|c)*d")
	inputs := []string{"abcd", "abce", "ad", "", "abcd", "d"}
	want := []bool{true, false, true, false, true, false}
	for round := 0; round < 3; round++ {
		for i, in := range inputs {
			if got := re.Matches(in); got != want[i] {
				t.Fatalf("round %d: %q got %v", round, in, got)
			}
		}
	}
}

func TestConcurrentMatches(t *testing.T) {
	re := newRE(t, "(ab|c)*d|e*")
	testCases := []struct {
		input    string
		expected bool
	}{
		{"abcd", true},
		{"ababccd", true},
		{"", true},
		{"eee", true},
		{"abce", false},
		{"d", true},
		{"ed", false},
	}

	const numGoroutines = 50
	const numIterations = 100

	var wg sync.WaitGroup
	var failures atomic.Int64
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < numIterations; j++ {
				tc := testCases[(i+j)%len(testCases)]
				if re.Matches(tc.input) != tc.expected {
					failures.Add(1)
				}
			}
		}(i)
	}
	wg.Wait()

	if n := failures.Load(); n != 0 {
		t.Fatalf("%d concurrent matches disagreed with the sequential result", n)
	}
}

func TestConcurrentCompileSharedGenerator(t *testing.T) {
	gen := automaton.NewGenerator()
	patterns := []string{"a*b", "(a|b)*", "abc", "a|b|c"}

	var wg sync.WaitGroup
	res := make([]*Regex, 40)
	for i := range res {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res[i] = compileWith(t, patterns[i%len(patterns)], WithGenerator(gen))
		}(i)
	}
	wg.Wait()

	seen := map[automaton.State]bool{}
	for _, re := range res {
		for _, s := range re.NFA().States().Sorted() {
			if seen[s] {
				t.Fatalf("state %v appears in two automata", s)
			}
			seen[s] = true
		}
	}
}

func compileWith(t *testing.T, pat string, opts ...Option) *Regex {
	re, err := Compile(pat, opts...)
	if err != nil {
		t.Errorf("compile %q: %v", pat, err)
	}
	return re
}

// ------------------------------------------------------------------- stdlib differential

func randPattern(r *rand.Rand, depth int) string {
	if depth == 0 {
		return []string{"a", "b", "c", "", "()"}[r.Intn(5)]
	}
	switch r.Intn(6) {
	case 0:
		return randPattern(r, depth-1) + randPattern(r, depth-1)
	case 1:
		return randPattern(r, depth-1) + "|" + randPattern(r, depth-1)
	case 2:
		return "(" + randPattern(r, depth-1) + ")*"
	case 3:
		return "(" + randPattern(r, depth-1) + ")"
	case 4:
		// optional prefix followed by more pattern
		return "(" + randPattern(r, depth-1) + "|)" + randPattern(r, depth-1)
	default:
		return randPattern(r, depth-1) + "a*"
	}
}

// agree checks re against Go's regexp on every input.
func agree(t *testing.T, re *Regex, inputs []string) {
	t.Helper()
	std := regexp.MustCompile(`^(?:` + re.String() + `)$`)
	for _, s := range inputs {
		if got, want := re.Matches(s), std.MatchString(s); got != want {
			t.Fatalf("pattern %q on %q: got %v, regexp says %v\n%s", re.String(), s, got, want, re.NFA())
		}
	}
}

func TestAgreesWithStdlib(t *testing.T) {
	n, maxDepth := 1000, 5
	if testing.Short() {
		n, maxDepth = 200, 4
	}
	r := rand.New(rand.NewSource(1))
	inputs := words("abc", 4)
	for i := 0; i < n; i++ {
		agree(t, newRE(t, randPattern(r, 1+r.Intn(maxDepth))), inputs)
	}
}

// Every string over ab()|* up to the length limit parses in both engines or
// in neither, and the valid ones match the same short inputs.
func TestAgreesWithStdlibExhaustive(t *testing.T) {
	maxLen := 6
	if testing.Short() {
		maxLen = 5
	}
	inputs := words("ab", 4)
	for _, pat := range words("ab()|*", maxLen) {
		re, err := Compile(pat)
		_, stdErr := regexp.Compile(pat)
		if (err == nil) != (stdErr == nil) {
			t.Fatalf("pattern %q: compile error %v, regexp error %v", pat, err, stdErr)
		}
		if err == nil {
			agree(t, re, inputs)
		}
	}
}

// ------------------------------------------------------------------- diagnostics

func TestTreeRoundTrip(t *testing.T) {
	re := newRE(t, "a(b|c)*d")
	if got := re.Tree().String(); got != re.String() {
		t.Errorf("Tree().String() = %q", got)
	}
}

func TestWriteDOTLabel(t *testing.T) {
	var buf bytes.Buffer
	if err := newRE(t, "ab*").WriteDOT(&buf, automaton.DOTOptions{RankDir: "TB"}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `label="ab*";`) || !strings.Contains(out, "rankdir=TB;") {
		t.Errorf("unexpected DOT output:\n%s", out)
	}
}

func TestDeterministicNumbering(t *testing.T) {
	a, b := newRE(t, "a(b|c)*d"), newRE(t, "a(b|c)*d")
	if a.NFA().String() != b.NFA().String() {
		t.Errorf("two compilations rendered differently:\n%s\n---\n%s", a.NFA(), b.NFA())
	}
}

func TestCompileLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if _, err := Compile("ab*", WithLogger(logger)); err != nil {
		t.Fatal(err)
	}
	if out := buf.String(); !strings.Contains(out, "compiled pattern") || !strings.Contains(out, "states=4") {
		t.Errorf("unexpected log output: %s", out)
	}
}

func TestCompileNilLogger(t *testing.T) {
	re, err := Compile("(a", WithLogger(nil))
	if err == nil {
		t.Fatalf("compile \"(a\": want error, got %v", re)
	}
	re, err = Compile("ab*", WithLogger(nil))
	if err != nil {
		t.Fatal(err)
	}
	acc(t, re, "abb", true)
}

// ------------------------------------------------------------------- Bench (quick)

func BenchmarkMillionAs(b *testing.B) {
	re := MustCompile("(a|b)*ab*")
	txt := strings.Repeat("a", 1_000_000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = re.Matches(txt)
	}
}
