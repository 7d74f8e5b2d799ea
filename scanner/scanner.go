/*
Package scanner tokenizes Newick-formatted tree text.

The default implementation is a hand-written single-pass scanner with one
rune of pushback. A DFA-backed alternative, built on lexmachine, lives in
sub-package `lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/phylotree"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'phylotree.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("phylotree.scanner")
}

// Tokenizer is a scanner interface. Implementations deliver one token per
// call, with a zero EOF token at the end of the input. Errors are terminal:
// after a non-nil error the token stream is exhausted.
type Tokenizer interface {
	NextToken() (phylotree.Token, error)
}

// LexError is a lexical error, carrying the 1-based line/column of the
// offending input position.
type LexError struct {
	Pos phylotree.Pos
	Msg string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("newick lexer error line %d, col %d: %s",
		e.Pos.Line, e.Pos.Col, e.Msg)
}

// Scanner is the default Tokenizer implementation. Create one with New.
type Scanner struct {
	input        string
	pos          int // byte offset of the next rune
	line         int // 1-based line of the next rune
	col          int // 1-based column of the next rune
	prev         prevState
	emitComments bool
}

// state to restore on pushback
type prevState struct {
	pos, line, col int
}

var _ Tokenizer = (*Scanner)(nil)

// Option configures a Scanner.
type Option func(s *Scanner)

// EmitComments sets or clears the emission of Comment tokens. By default
// bracketed comments are consumed silently and never surfaced.
func EmitComments(b bool) Option {
	return func(s *Scanner) {
		s.emitComments = b
	}
}

// New creates a Scanner for the given input.
func New(input string, opts ...Option) *Scanner {
	s := &Scanner{
		input: input,
		line:  1,
		col:   1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tokenize scans the complete input and returns all tokens, excluding the
// trailing EOF. The first lexical error aborts the scan.
func Tokenize(input string) ([]phylotree.Token, error) {
	s := New(input)
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

// getc returns the next rune of the input, advancing the scanner.
// ok is false at the end of the input.
func (s *Scanner) getc() (r rune, ok bool) {
	if s.pos >= len(s.input) {
		s.prev = prevState{s.pos, s.line, s.col}
		return 0, false
	}
	r, width := utf8.DecodeRuneInString(s.input[s.pos:])
	s.prev = prevState{s.pos, s.line, s.col}
	s.pos += width
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return r, true
}

// ungetc steps back one rune. May be called only once per call of getc.
func (s *Scanner) ungetc() {
	s.pos = s.prev.pos
	s.line = s.prev.line
	s.col = s.prev.col
}

// here is the position of the rune getc would deliver next.
func (s *Scanner) here() phylotree.Pos {
	return phylotree.Pos{Line: s.line, Col: s.col}
}

func (s *Scanner) errorf(pos phylotree.Pos, format string, values ...interface{}) error {
	err := &LexError{Pos: pos, Msg: fmt.Sprintf(format, values...)}
	tracer().Errorf(err.Error())
	return err
}

// NextToken is part of the Tokenizer interface. It skips whitespace between
// tokens and returns an EOF token at the end of the input.
func (s *Scanner) NextToken() (phylotree.Token, error) {
	for {
		r, ok := s.getc()
		for ok && unicode.IsSpace(r) {
			r, ok = s.getc()
		}
		pos := phylotree.Pos{Line: s.prev.line, Col: s.prev.col}
		if !ok {
			return phylotree.Token{Typ: phylotree.EOF, Pos: pos}, nil
		}
		switch r {
		case '(':
			return phylotree.Token{Typ: phylotree.LParen, Lexeme: "(", Pos: pos}, nil
		case ')':
			return phylotree.Token{Typ: phylotree.RParen, Lexeme: ")", Pos: pos}, nil
		case ':':
			return phylotree.Token{Typ: phylotree.Colon, Lexeme: ":", Pos: pos}, nil
		case ',':
			return phylotree.Token{Typ: phylotree.Comma, Lexeme: ",", Pos: pos}, nil
		case ';':
			return phylotree.Token{Typ: phylotree.Semicolon, Lexeme: ";", Pos: pos}, nil
		case '\'', '"':
			return s.scanString(pos, r)
		case '[':
			token, err := s.scanComment(pos)
			if err != nil {
				return token, err
			}
			if s.emitComments {
				return token, nil
			}
			continue // comments are dropped between tokens
		}
		if r == '.' || isDigit(r) {
			return s.scanFloat(pos, r)
		}
		if unicode.IsLetter(r) {
			return s.scanLabel(pos, r)
		}
		return phylotree.Token{}, s.errorf(pos, "unexpected character '%c'", r)
	}
}

// scanString consumes a quoted label verbatim, without escape processing,
// until the matching closing quote.
func (s *Scanner) scanString(pos phylotree.Pos, quote rune) (phylotree.Token, error) {
	lexeme := make([]rune, 0, 16)
	for {
		r, ok := s.getc()
		if !ok {
			return phylotree.Token{}, s.errorf(pos, "unterminated quoted string")
		}
		if r == quote {
			break
		}
		lexeme = append(lexeme, r)
	}
	return phylotree.Token{Typ: phylotree.String, Lexeme: string(lexeme), Pos: pos}, nil
}

// scanComment consumes a bracketed comment verbatim up to the closing ']'.
// The brackets are not part of the lexeme.
func (s *Scanner) scanComment(pos phylotree.Pos) (phylotree.Token, error) {
	lexeme := make([]rune, 0, 16)
	for {
		r, ok := s.getc()
		if !ok {
			return phylotree.Token{}, s.errorf(pos, "unterminated comment")
		}
		if r == ']' {
			break
		}
		lexeme = append(lexeme, r)
	}
	return phylotree.Token{Typ: phylotree.Comment, Lexeme: string(lexeme), Pos: pos}, nil
}

// scanFloat greedily consumes [0-9e.] and verifies that the result parses as
// a floating point number. The first rune which cannot extend the literal is
// pushed back. Note that a literal cannot start with 'e'.
func (s *Scanner) scanFloat(pos phylotree.Pos, first rune) (phylotree.Token, error) {
	lexeme := []rune{first}
	for {
		r, ok := s.getc()
		if !ok {
			break
		}
		if !isFloatChar(r) {
			s.ungetc()
			break
		}
		lexeme = append(lexeme, r)
	}
	text := string(lexeme)
	if _, err := strconv.ParseFloat(text, 64); err != nil {
		return phylotree.Token{}, s.errorf(pos, "invalid float '%s'", text)
	}
	return phylotree.Token{Typ: phylotree.Float, Lexeme: text, Pos: pos}, nil
}

// scanLabel consumes a bare label: a leading letter, continued over letters,
// digits, '.' and '_'.
func (s *Scanner) scanLabel(pos phylotree.Pos, first rune) (phylotree.Token, error) {
	lexeme := []rune{first}
	for {
		r, ok := s.getc()
		if !ok {
			break
		}
		if !isLabelChar(r) {
			s.ungetc()
			break
		}
		lexeme = append(lexeme, r)
	}
	return phylotree.Token{Typ: phylotree.Label, Lexeme: string(lexeme), Pos: pos}, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isFloatChar(r rune) bool {
	return isDigit(r) || r == 'e' || r == '.'
}

func isLabelChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_'
}
