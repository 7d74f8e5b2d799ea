/*
Package tree implements an arena-backed model for phylogenetic trees.

Nodes live in an id-indexed arena which is exclusively owned by one Tree.
Integer ids, not pointers, are the addressing mechanism: ids are assigned
monotonically starting at 0 and stay valid for the lifetime of the Tree,
which allows the arena to be sparse. A Tree is typically produced wholesale
by one parse (package parser); there is no node deletion.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree

import (
	"fmt"
	"sort"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'phylotree.tree'.
func tracer() tracing.Trace {
	return tracing.Select("phylotree.tree")
}

// NoParent marks a node without a parent, i.e. the root.
const NoParent = -1

// Node is a single tree node. A zero-length Children list makes it a leaf.
// Label is empty for anonymous nodes. Length is the length of the edge from
// this node to its parent, or nil if no length was given. The root may carry
// a length too, if the input provided one.
type Node struct {
	ID       int
	Parent   int // NoParent for the root
	Children []int
	Label    string
	Length   *float64
}

// IsLeaf is true for nodes without children.
func (node *Node) IsLeaf() bool {
	return len(node.Children) == 0
}

// Tree is an arena of nodes keyed by stable integer id, together with an
// index of node labels. Unrooted trees are represented by assigning an
// arbitrary node to be the pseudo-root: Newick does not distinguish rooted
// from unrooted, the Rooted flag is advisory only.
type Tree struct {
	nodes      map[int]*Node
	labelIndex map[string]int
	root       int
	rooted     bool
	nextID     int
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{
		nodes:      make(map[int]*Node),
		labelIndex: make(map[string]int),
		root:       NoParent,
		rooted:     true,
	}
}

// ValidationError reports a violated referential invariant. It indicates a
// defect in the code which assembled the tree, not an input error.
type ValidationError struct {
	NodeID int
	Msg    string
}

func (e *ValidationError) Error() string {
	if e.NodeID == NoParent {
		return fmt.Sprintf("tree validation: %s", e.Msg)
	}
	return fmt.Sprintf("tree validation: node %d: %s", e.NodeID, e.Msg)
}

// Insert creates a new node and returns its id. An empty label means no
// label. parent must be an existing node id or NoParent; labels must be
// unique within the tree. Insert records the parent on the node but does not
// link it into the parent's children list, that is Connect's job.
func (t *Tree) Insert(label string, parent int, length *float64) (int, error) {
	if parent != NoParent {
		if _, ok := t.nodes[parent]; !ok {
			return NoParent, fmt.Errorf("no node with id %d", parent)
		}
	}
	if label != "" {
		if _, ok := t.labelIndex[label]; ok {
			return NoParent, fmt.Errorf("duplicate label '%s'", label)
		}
	}
	id := t.nextID
	t.nextID++
	node := &Node{
		ID:     id,
		Parent: parent,
		Label:  label,
		Length: length,
	}
	t.nodes[id] = node
	if label != "" {
		t.labelIndex[label] = id
	}
	tracer().Debugf("insert node %d, label=%q, parent=%d", id, label, parent)
	return id, nil
}

// Connect establishes parent as the parent of child and appends child to the
// parent's children list. It fails for duplicate edges and for children
// which already have a different parent.
func (t *Tree) Connect(parent, child int) error {
	parentNode, ok := t.nodes[parent]
	if !ok {
		return fmt.Errorf("no node with id %d", parent)
	}
	childNode, ok := t.nodes[child]
	if !ok {
		return fmt.Errorf("no node with id %d", child)
	}
	if childNode.Parent != NoParent && childNode.Parent != parent {
		return fmt.Errorf("node %d already has parent %d", child, childNode.Parent)
	}
	for _, id := range parentNode.Children {
		if id == child {
			return fmt.Errorf("node %d is already a child of %d", child, parent)
		}
	}
	childNode.Parent = parent
	parentNode.Children = append(parentNode.Children, child)
	return nil
}

// SetRoot declares the root node. The node must exist and must not have a
// parent.
func (t *Tree) SetRoot(id int) error {
	node, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("no node with id %d", id)
	}
	if node.Parent != NoParent {
		return fmt.Errorf("node %d has a parent, cannot be root", id)
	}
	t.root = id
	return nil
}

// Root returns the id of the root node, or NoParent for an empty tree.
func (t *Tree) Root() int {
	return t.root
}

// Rooted reflects whether the root is a true root or a Newick pseudo-root.
// The flag is advisory: Newick input cannot distinguish the two cases.
func (t *Tree) Rooted() bool {
	return t.rooted
}

// SetRooted marks the tree as rooted or unrooted.
func (t *Tree) SetRooted(b bool) {
	t.rooted = b
}

// NodeByID returns the node with the given id, or nil.
func (t *Tree) NodeByID(id int) *Node {
	return t.nodes[id]
}

// IDByLabel looks up a node id by its label.
func (t *Tree) IDByLabel(label string) (int, bool) {
	id, ok := t.labelIndex[label]
	return id, ok
}

// IDs returns all node ids in ascending order.
func (t *Tree) IDs() []int {
	ids := make([]int, 0, len(t.nodes))
	for id := range t.nodes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Validate checks the referential invariants of the tree:
//
//  1. exactly one node has no parent, and it is the registered root
//  2. for every node n with parent p, n is contained in p's children
//  3. every id referenced in a children list exists in the arena
//  4. every label is indexed exactly once, pointing back at its node
//  5. ids are non-negative and below the id watermark
//
// Validation is run once per construction. A violation means the assembling
// code is defective.
func (t *Tree) Validate() error {
	parentless := 0
	labeled := 0
	for id, node := range t.nodes {
		if id < 0 || id >= t.nextID {
			return &ValidationError{id, "id outside of assigned range"}
		}
		if node.ID != id {
			return &ValidationError{id, fmt.Sprintf("arena key does not match node id %d", node.ID)}
		}
		for _, child := range node.Children {
			if _, ok := t.nodes[child]; !ok {
				return &ValidationError{id, fmt.Sprintf("dangling child id %d", child)}
			}
		}
		if node.Parent == NoParent {
			parentless++
		} else {
			parent, ok := t.nodes[node.Parent]
			if !ok {
				return &ValidationError{id, fmt.Sprintf("dangling parent id %d", node.Parent)}
			}
			found := false
			for _, child := range parent.Children {
				if child == id {
					found = true
					break
				}
			}
			if !found {
				return &ValidationError{id, fmt.Sprintf("not linked as child of parent %d", node.Parent)}
			}
		}
		if node.Label != "" {
			labeled++
			if indexed, ok := t.labelIndex[node.Label]; !ok || indexed != id {
				return &ValidationError{id, fmt.Sprintf("label '%s' not indexed for this node", node.Label)}
			}
		}
	}
	if parentless != 1 {
		return &ValidationError{NoParent, fmt.Sprintf("%d nodes without parent, want exactly 1", parentless)}
	}
	if rootNode, ok := t.nodes[t.root]; !ok || rootNode.Parent != NoParent {
		return &ValidationError{t.root, "registered root is not the parentless node"}
	}
	if labeled != len(t.labelIndex) {
		return &ValidationError{NoParent, "label index contains stale entries"}
	}
	tracer().Debugf("tree validated, %d nodes", len(t.nodes))
	return nil
}
