package syntax

import (
	"errors"
	"fmt"
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

type tokenType int

const (
	tChar   tokenType = iota // literal byte
	tLParen                  // (
	tRParen                  // )
	tUnion                   // |
	tStar                    // *
)

func (t tokenType) String() string {
	switch t {
	case tChar:
		return "char"
	case tLParen:
		return "("
	case tRParen:
		return ")"
	case tUnion:
		return "|"
	case tStar:
		return "*"
	default:
		return fmt.Sprintf("token(%d)", int(t))
	}
}

type token struct {
	typ tokenType
	ch  byte // for tChar
	pos int  // byte offset in the pattern
}

// Every byte is a token on its own; metacharacters get their own types and
// anything else is a literal.
var patternLexer = sync.OnceValues(func() (*lexmachine.Lexer, error) {
	lex := lexmachine.NewLexer()
	lex.Add([]byte(`[(]`), tokAction(tLParen))
	lex.Add([]byte(`[)]`), tokAction(tRParen))
	lex.Add([]byte(`[|]`), tokAction(tUnion))
	lex.Add([]byte(`[*]`), tokAction(tStar))
	lex.Add([]byte(`[^()|*]`), tokAction(tChar))
	if err := lex.Compile(); err != nil {
		return nil, err
	}
	return lex, nil
})

func tokAction(typ tokenType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		tok := token{typ: typ, pos: m.TC}
		if typ == tChar {
			tok.ch = m.Bytes[0]
		}
		return tok, nil
	}
}

// tokenize splits pattern into tokens.
func tokenize(pattern string) ([]token, error) {
	lex, err := patternLexer()
	if err != nil {
		return nil, fmt.Errorf("build pattern lexer: %w", err)
	}
	scanner, err := lex.Scanner([]byte(pattern))
	if err != nil {
		return nil, fmt.Errorf("scan pattern: %w", err)
	}

	toks := make([]token, 0, len(pattern))
	for {
		tok, err, eof := scanner.Next()
		if eof {
			return toks, nil
		}
		if err != nil {
			var ui *machines.UnconsumedInput
			if errors.As(err, &ui) {
				return nil, &SyntaxError{Pattern: pattern, Pos: ui.FailTC, Err: ErrInvalidToken}
			}
			return nil, err
		}
		toks = append(toks, tok.(token))
	}
}
