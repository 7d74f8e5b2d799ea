/*
Package parser builds phylogenetic trees from Newick token streams.

The builder runs a single left-to-right pass over the tokens and maintains
an explicit stack of open "slots", one slot per eventual tree node,
recorded in three parallel lists (label, parent slot, edge length). No
language-level recursion is involved, so input nesting depth is not bounded
by the call stack. After the pass the slots are realized into a tree.Tree
and validated; on any error the slot lists are discarded wholesale and the
caller never observes a partially constructed tree.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parser

import (
	"fmt"
	"strconv"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/phylotree"
	"github.com/npillmayer/phylotree/scanner"
	"github.com/npillmayer/phylotree/tree"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'phylotree.parser'.
func tracer() tracing.Trace {
	return tracing.Select("phylotree.parser")
}

// ParseError is a syntactic error, carrying the position of the offending
// token.
type ParseError struct {
	Pos phylotree.Pos
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("newick parse error at %s: %s", e.Pos, e.Msg)
}

// Parse tokenizes the input and builds a validated tree from it. It either
// returns a complete tree or an error, never both.
func Parse(input string) (*tree.Tree, error) {
	tokens, err := scanner.Tokenize(input)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens)
}

// noSlot marks the absence of a parent slot (the root position).
const noSlot = -1

// builder holds the single-pass construction state. Slots are indices into
// the three parallel lists; the stack holds the indices of currently open
// descendant groups, with noSlot as bottom sentinel.
type builder struct {
	tokens    []phylotree.Token
	next      int // index of the next token to consume
	stack     *arraystack.Stack
	labels    []string
	parents   []int
	lengths   []*float64
	positions []phylotree.Pos // token position which opened each slot
}

// ParseTokens builds a validated tree from a token sequence. The sequence
// must contain exactly one semicolon, as its final token.
func ParseTokens(tokens []phylotree.Token) (*tree.Tree, error) {
	b := &builder{
		tokens: tokens,
		stack:  arraystack.New(),
	}
	b.stack.Push(noSlot)
	if err := b.pass(); err != nil {
		return nil, err
	}
	return b.realize()
}

// pass consumes all tokens and fills the slot lists.
func (b *builder) pass() error {
	for {
		token := b.getNext()
		tracer().Debugf("token %d/%d, depth %d: %v",
			b.next, len(b.tokens), b.stack.Size(), token)
		switch token.Typ {

		case phylotree.Semicolon:
			// must close the pass: depth zero and nothing following
			if b.stack.Size() != 1 || b.next != len(b.tokens) {
				return &ParseError{token.Pos, "unexpected semicolon"}
			}
			b.traceSlots()
			return nil

		case phylotree.LParen:
			// open a descendant group; its label/length follow its ')'
			slot := b.newSlot(token.Pos)
			b.stack.Push(slot)

		case phylotree.RParen:
			if prev, ok := b.lookback(); ok && prev.Typ == phylotree.Comma {
				b.newSlot(prev.Pos) // trailing empty element, e.g. "(A,)"
			}
			if b.stack.Size() <= 1 {
				return &ParseError{token.Pos, "unexpected token ')'"}
			}
			popped, _ := b.stack.Pop()
			slot := popped.(int)
			label, length, err := b.labelAndLength()
			if err != nil {
				return err
			}
			b.labels[slot] = label
			b.lengths[slot] = length

		case phylotree.Comma:
			if prev, ok := b.lookback(); ok &&
				(prev.Typ == phylotree.Comma || prev.Typ == phylotree.LParen) {
				b.newSlot(prev.Pos) // empty element, e.g. "(,A)"
			}

		case phylotree.Colon:
			// anonymous leaf carrying only a length, e.g. "(:0.1,:0.2)"
			length, err := b.lengthAfterColon(token)
			if err != nil {
				return err
			}
			slot := b.newSlot(token.Pos)
			b.lengths[slot] = length

		case phylotree.Label, phylotree.String:
			slot := b.newSlot(token.Pos)
			b.labels[slot] = token.Lexeme
			length, err := b.optionalLength()
			if err != nil {
				return err
			}
			b.lengths[slot] = length

		default:
			return &ParseError{token.Pos,
				fmt.Sprintf("unexpected token %s", token.Typ)}
		}
	}
}

// realize turns the slot lists into a validated tree: phase 1 inserts every
// slot as a node, phase 2 connects children to parents in slot order and
// registers the root.
func (b *builder) realize() (*tree.Tree, error) {
	if len(b.labels) == 0 {
		return nil, &ParseError{b.lastPos(), "empty tree"}
	}
	t := tree.New()
	ids := make([]int, len(b.labels))
	for i := range b.labels {
		parent := tree.NoParent
		if b.parents[i] != noSlot {
			parent = ids[b.parents[i]]
		}
		id, err := t.Insert(b.labels[i], parent, b.lengths[i])
		if err != nil {
			return nil, &ParseError{b.positions[i], err.Error()}
		}
		ids[i] = id
	}
	root := tree.NoParent
	for i := range b.labels {
		if b.parents[i] == noSlot {
			if root != tree.NoParent {
				return nil, &ParseError{b.positions[i], "multiple root nodes"}
			}
			root = ids[i]
			continue
		}
		if err := t.Connect(ids[b.parents[i]], ids[i]); err != nil {
			return nil, &ParseError{b.positions[i], err.Error()}
		}
	}
	if err := t.SetRoot(root); err != nil {
		return nil, &ParseError{b.lastPos(), err.Error()}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// --- Slot and token plumbing ------------------------------------------------

// newSlot appends an empty slot under the currently open group and returns
// its index.
func (b *builder) newSlot(pos phylotree.Pos) int {
	slot := len(b.labels)
	b.labels = append(b.labels, "")
	b.parents = append(b.parents, b.top())
	b.lengths = append(b.lengths, nil)
	b.positions = append(b.positions, pos)
	return slot
}

// top returns the currently open group slot without popping it.
func (b *builder) top() int {
	v, ok := b.stack.Peek()
	if !ok {
		return noSlot
	}
	return v.(int)
}

// getNext consumes the next token, delivering synthetic EOF tokens once the
// input is exhausted.
func (b *builder) getNext() phylotree.Token {
	if b.next == len(b.tokens) {
		return phylotree.Token{Typ: phylotree.EOF, Pos: b.lastPos()}
	}
	token := b.tokens[b.next]
	b.next++
	return token
}

// pending returns the next token without consuming it.
func (b *builder) pending() phylotree.Token {
	if b.next == len(b.tokens) {
		return phylotree.Token{Typ: phylotree.EOF, Pos: b.lastPos()}
	}
	return b.tokens[b.next]
}

// lookback returns the token before the most recently consumed one.
func (b *builder) lookback() (phylotree.Token, bool) {
	if b.next-2 < 0 {
		return phylotree.Token{}, false
	}
	return b.tokens[b.next-2], true
}

func (b *builder) lastPos() phylotree.Pos {
	if len(b.tokens) == 0 {
		return phylotree.Pos{Line: 1, Col: 1}
	}
	return b.tokens[len(b.tokens)-1].Pos
}

// labelAndLength reads the optional label and optional ':' length which may
// follow a closing parenthesis, belonging to the just-closed group.
func (b *builder) labelAndLength() (string, *float64, error) {
	label := ""
	if pend := b.pending(); pend.Typ == phylotree.Label || pend.Typ == phylotree.String {
		label = pend.Lexeme
		b.next++
	}
	length, err := b.optionalLength()
	return label, length, err
}

// optionalLength reads ':' followed by a float, if pending.
func (b *builder) optionalLength() (*float64, error) {
	if b.pending().Typ != phylotree.Colon {
		return nil, nil
	}
	colon := b.getNext()
	return b.lengthAfterColon(colon)
}

// lengthAfterColon reads the float which must follow a consumed colon.
func (b *builder) lengthAfterColon(colon phylotree.Token) (*float64, error) {
	token := b.getNext()
	if token.Typ != phylotree.Float {
		return nil, &ParseError{colon.Pos,
			fmt.Sprintf("expected edge length after colon, got %s", token.Typ)}
	}
	value, err := strconv.ParseFloat(token.Lexeme, 64)
	if err != nil {
		return nil, &ParseError{token.Pos,
			fmt.Sprintf("invalid edge length '%s'", token.Lexeme)}
	}
	return &value, nil
}

// traceSlots dumps the slot lists, in the manner of a node table.
func (b *builder) traceSlots() {
	for i := range b.labels {
		label := b.labels[i]
		if label == "" {
			label = "."
		}
		parent := "<ROOT>"
		if b.parents[i] != noSlot {
			parent = strconv.Itoa(b.parents[i])
		}
		length := ""
		if b.lengths[i] != nil {
			length = fmt.Sprintf(" -> %g", *b.lengths[i])
		}
		tracer().Debugf("slot %5d  %-8s %s%s", i, label, parent, length)
	}
}
