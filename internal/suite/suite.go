// Package suite reads pattern test suites and checks them against the
// compiler.
//
// A suite file lists patterns with the inputs they must accept or reject:
//
//	# comments run to the end of the line
//	pattern "a(b|c)*d" {
//	    accept "ad" "abcbcd"
//	    reject "abce" ""
//	}
//	pattern "(a" invalid
package suite

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

type Suite struct {
	Cases []*Case `parser:"@@*"`
}

// Case is one pattern. Invalid cases expect a compile fault and carry no
// checks.
type Case struct {
	Pos lexer.Position

	Pattern string   `parser:"'pattern' @String"`
	Invalid bool     `parser:"@'invalid'?"`
	Checks  []*Check `parser:"( '{' @@* '}' )?"`
}

type Check struct {
	Pos lexer.Position

	Verdict string   `parser:"@( 'accept' | 'reject' )"`
	Inputs  []string `parser:"@String+"`
}

// Want is the expected Matches result for the check's inputs.
func (c *Check) Want() bool { return c.Verdict == "accept" }

var suiteLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Ident", Pattern: `[a-zA-Z_]\w*`},
	{Name: "Punct", Pattern: `[{}]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var parser = participle.MustBuild[Suite](
	participle.Lexer(suiteLexer),
	participle.Unquote("String"),
	participle.Elide("Comment", "Whitespace"),
)

// Parse parses suite source; name is used in positions.
func Parse(name, src string) (*Suite, error) {
	s, err := parser.ParseString(name, src)
	if err != nil {
		return nil, err
	}
	for _, c := range s.Cases {
		if c.Invalid && len(c.Checks) > 0 {
			return nil, fmt.Errorf("%s: pattern %q is marked invalid but has checks", c.Pos, c.Pattern)
		}
	}
	return s, nil
}

func ParseFile(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, string(data))
}
