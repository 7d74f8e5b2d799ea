package tree

import (
	"strconv"
	"strings"
	"unicode"
)

// Newick serializes the tree in Newick notation, terminated by ';'. Each
// node renders as `(child1,child2,…)label:length`, with the parentheses
// omitted for leaves and label/`:length` omitted when absent. Children
// appear in declaration order.
//
// Re-parsing the result yields a structurally identical tree: same shape,
// labels and edge lengths. Ids may differ, and lengths are rendered with
// the shortest representation that survives a float64 round trip.
//
// Serialization is driven by an explicit work stack, so very deep trees do
// not exhaust the call stack.
func (t *Tree) Newick() string {
	if _, ok := t.nodes[t.root]; !ok {
		return ""
	}
	var sb strings.Builder
	type frame struct {
		id   int
		next int // index of the next child to render
	}
	stack := make([]frame, 0, 32)
	stack = append(stack, frame{id: t.root})
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		node := t.nodes[top.id]
		if top.next == len(node.Children) {
			if len(node.Children) > 0 {
				sb.WriteByte(')')
			}
			sb.WriteString(renderLabel(node.Label))
			if node.Length != nil {
				sb.WriteByte(':')
				sb.WriteString(strconv.FormatFloat(*node.Length, 'g', -1, 64))
			}
			stack = stack[:len(stack)-1]
			continue
		}
		if top.next == 0 {
			sb.WriteByte('(')
		} else {
			sb.WriteByte(',')
		}
		child := node.Children[top.next]
		top.next++
		stack = append(stack, frame{id: child})
	}
	sb.WriteByte(';')
	return sb.String()
}

func (t *Tree) String() string {
	return t.Newick()
}

// renderLabel quotes a label which could not be re-read as a bare label,
// i.e. anything not of the shape letter{letter|digit|.|_}.
func renderLabel(label string) string {
	if label == "" {
		return ""
	}
	for i, r := range label {
		if i == 0 && !unicode.IsLetter(r) {
			return "'" + label + "'"
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '_' {
			return "'" + label + "'"
		}
	}
	return label
}
