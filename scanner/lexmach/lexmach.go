/*
Package lexmach provides a DFA-backed Newick tokenizer, built on lexmachine.

It produces the same token stream as the default scanner for well-formed
input. Diagnostics for malformed input are coarser: pattern failures are
reported as unexpected input at the failure position, without the default
scanner's distinction between unterminated strings, unterminated comments
and stray characters.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/phylotree"
	"github.com/npillmayer/phylotree/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'phylotree.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("phylotree.scanner")
}

// LMAdapter is a lexmachine adapter implementing the scanner.Tokenizer
// interface. The compiled DFA is reusable across inputs.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// New creates a lexmachine adapter with the Newick token patterns.
// Whitespace and bracketed comments are skipped. New will return an error if
// compiling the DFA failed.
func New() (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	adapter.Lexer.Add([]byte(`( |\t|\n|\r)+`), skip)
	adapter.Lexer.Add([]byte(`\[[^\]]*\]`), skip)
	adapter.Lexer.Add([]byte(`\(`), makeToken(phylotree.LParen))
	adapter.Lexer.Add([]byte(`\)`), makeToken(phylotree.RParen))
	adapter.Lexer.Add([]byte(`:`), makeToken(phylotree.Colon))
	adapter.Lexer.Add([]byte(`,`), makeToken(phylotree.Comma))
	adapter.Lexer.Add([]byte(`;`), makeToken(phylotree.Semicolon))
	adapter.Lexer.Add([]byte(`'[^']*'`), makeString)
	adapter.Lexer.Add([]byte(`"[^"]*"`), makeString)
	adapter.Lexer.Add([]byte(`[0-9.][0-9e.]*`), makeFloat)
	adapter.Lexer.Add([]byte(`[a-zA-Z][a-zA-Z0-9._]*`), makeToken(phylotree.Label))
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Scanner creates a scanner for a given input. The scanner will implement
// the Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s}, nil
}

// Tokenize scans the complete input and returns all tokens, excluding the
// trailing EOF. The first lexical error aborts the scan.
func (lm *LMAdapter) Tokenize(input string) ([]phylotree.Token, error) {
	s, err := lm.Scanner(input)
	if err != nil {
		return nil, err
	}
	tokens := make([]phylotree.Token, 0, 32)
	for {
		token, err := s.NextToken()
		if err != nil {
			return nil, err
		}
		if token.Typ == phylotree.EOF {
			return tokens, nil
		}
		tokens = append(tokens, token)
	}
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// NextToken is part of the Tokenizer interface.
func (lms *LMScanner) NextToken() (phylotree.Token, error) {
	tok, err, eos := lms.scanner.Next()
	if err != nil {
		if ui, is := err.(*machines.UnconsumedInput); is {
			lexerr := &scanner.LexError{
				Pos: phylotree.Pos{Line: ui.FailLine, Col: ui.FailColumn},
				Msg: "unexpected input",
			}
			tracer().Errorf(lexerr.Error())
			return phylotree.Token{}, lexerr
		}
		return phylotree.Token{}, err
	}
	if eos {
		return phylotree.Token{Typ: phylotree.EOF}, nil
	}
	token := tok.(*lexmachine.Token)
	tracer().Debugf("tok is %T | %v", tok, tok)
	return phylotree.Token{
		Typ:    phylotree.TokType(token.Type),
		Lexeme: token.Value.(string),
		Pos:    phylotree.Pos{Line: token.StartLine, Col: token.StartColumn},
	}, nil
}

// ---------------------------------------------------------------------------

// skip is an action which ignores the scanned match.
func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// makeToken is an action constructor which wraps a scanned match into a
// token of the given type.
func makeToken(typ phylotree.TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(typ), string(m.Bytes), m), nil
	}
}

// makeString wraps a quoted match into a String token, stripping the quotes.
// Quoted labels carry no escape sequences, the content is taken verbatim.
func makeString(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	return s.Token(int(phylotree.String), string(m.Bytes[1:len(m.Bytes)-1]), m), nil
}

// makeFloat wraps a numeric match into a Float token, verifying that the
// lexeme parses as a floating point number.
func makeFloat(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	text := string(m.Bytes)
	if _, err := strconv.ParseFloat(text, 64); err != nil {
		return nil, &scanner.LexError{
			Pos: phylotree.Pos{Line: m.StartLine, Col: m.StartColumn},
			Msg: fmt.Sprintf("invalid float '%s'", text),
		}
	}
	return s.Token(int(phylotree.Float), text, m), nil
}
