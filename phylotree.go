package phylotree

import "fmt"

// --- A shared data model for Newick tokens ---------------------------------

// TokType is a category type for a Token. The constants below cover every
// lexical category occurring in Newick input.
type TokType int8

// Token types occurring in Newick lexical analysis.
const (
	Invalid TokType = iota
	EOF
	LParen
	RParen
	Colon
	Comma
	Semicolon
	String
	Float
	Comment
	Label
)

func (typ TokType) String() string {
	switch typ {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case Colon:
		return "':'"
	case Comma:
		return "','"
	case Semicolon:
		return "';'"
	case String:
		return "String"
	case Float:
		return "Float"
	case Comment:
		return "Comment"
	case Label:
		return "Label"
	}
	panic(fmt.Sprintf("BUG: unknown token type %d", typ))
}

// --- Positions --------------------------------------------------------------

// Pos is a position within the input text, used for diagnostics.
// Line and Col are 1-based.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// --- Tokens -----------------------------------------------------------------

// Token represents an input token. Tokens are produced by a scanner and
// consumed by the parser.
//
// An example would be a token for an edge length:
//
//    Typ    = Float       // lexical category
//    Lexeme = "0.597492"  // lexeme as it appeared in the input stream
//    Pos    = 1:14        // line and column where the lexeme started
//
type Token struct {
	Typ    TokType
	Lexeme string
	Pos    Pos
}

func (t Token) String() string {
	return fmt.Sprintf("(%s %q)", t.Typ, t.Lexeme)
}
