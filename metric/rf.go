/*
Package metric computes leaf-label bipartitions of phylogenetic trees and
the Robinson–Foulds topological distance between two trees.

Every node of a tree induces a partition: the set of leaf labels reachable
below it. The Robinson–Foulds distance is the number of partitions present
in exactly one of the two compared trees. It is only meaningful when both
trees are built over the same leaf-label universe; by default no such check
is performed and unrelated trees silently yield a number. Pass the
SameLeafUniverse option to turn a universe mismatch into an error.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package metric

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/phylotree/tree"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'phylotree.metric'.
func tracer() tracing.Trace {
	return tracing.Select("phylotree.metric")
}

// Partition is a canonical set of leaf labels: sorted ascending, free of
// duplicates. A leaf without a label contributes the empty string, so all
// anonymous leaves collapse into one singleton partition.
type Partition []string

// key returns a digest identifying the partition. Since the label slice is
// canonical, equal partitions hash equally.
func (p Partition) key() string {
	h, err := structhash.Hash(struct{ Labels []string }{p}, 1)
	if err != nil {
		// structhash cannot fail on this shape, but have a fallback anyway
		return strings.Join(p, "\x1f")
	}
	return h
}

func (p Partition) String() string {
	return "{" + strings.Join(p, ",") + "}"
}

// LeafSet computes the partition induced by the given node: the labels of
// all leaves reachable from it. A leaf's own leaf set is the singleton of
// its label. Traversal uses an explicit stack.
func LeafSet(t *tree.Tree, id int) Partition {
	set := treeset.NewWith(utils.StringComparator)
	stack := []int{id}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := t.NodeByID(top)
		if node == nil {
			continue
		}
		if node.IsLeaf() {
			set.Add(node.Label)
			continue
		}
		stack = append(stack, node.Children...)
	}
	labels := make(Partition, 0, set.Size())
	for _, v := range set.Values() {
		labels = append(labels, v.(string))
	}
	return labels
}

// PartitionSet is the set of distinct partitions of one tree. Partitions
// occurring at several nodes collapse into one entry.
type PartitionSet struct {
	parts map[string]Partition
}

// Partitions computes the partition set of a tree, covering every node:
// the root's full leaf set and each leaf's singleton set included.
func Partitions(t *tree.Tree) *PartitionSet {
	ps := &PartitionSet{parts: make(map[string]Partition)}
	for _, id := range t.IDs() {
		part := LeafSet(t, id)
		ps.parts[part.key()] = part
	}
	tracer().Debugf("%d nodes collapse into %d partitions", len(t.IDs()), ps.Len())
	return ps
}

// Len returns the number of distinct partitions.
func (ps *PartitionSet) Len() int {
	return len(ps.parts)
}

// Contains reports whether an equal partition is present in the set.
func (ps *PartitionSet) Contains(p Partition) bool {
	_, ok := ps.parts[p.key()]
	return ok
}

// Values returns the partitions in unspecified order.
func (ps *PartitionSet) Values() []Partition {
	values := make([]Partition, 0, len(ps.parts))
	for _, p := range ps.parts {
		values = append(values, p)
	}
	return values
}

// diffCount counts the partitions of ps which are absent from other.
func (ps *PartitionSet) diffCount(other *PartitionSet) int {
	n := 0
	for key := range ps.parts {
		if _, ok := other.parts[key]; !ok {
			n++
		}
	}
	return n
}

// Result carries the outcome of a Robinson–Foulds comparison.
type Result struct {
	Raw        int     // partitions present in exactly one tree
	Normalized float64 // Raw / (Parts1 + Parts2), in [0,1]
	OnlyIn1    int     // partitions of the first tree absent from the second
	OnlyIn2    int     // partitions of the second tree absent from the first
	Parts1     int     // number of distinct partitions of the first tree
	Parts2     int     // number of distinct partitions of the second tree
}

// Option configures a Robinson–Foulds comparison.
type Option func(*config)

type config struct {
	sameUniverse bool
}

// SameLeafUniverse makes the comparison fail when the two trees are not
// built over the same set of leaf labels.
func SameLeafUniverse() Option {
	return func(cfg *config) {
		cfg.sameUniverse = true
	}
}

// RobinsonFoulds compares the partition sets of two trees. Both trees must
// be fully constructed; they are only read.
func RobinsonFoulds(t1, t2 *tree.Tree, opts ...Option) (Result, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.sameUniverse {
		u1 := LeafSet(t1, t1.Root())
		u2 := LeafSet(t2, t2.Root())
		if u1.key() != u2.key() {
			return Result{}, fmt.Errorf("leaf-label universes differ: %v vs %v", u1, u2)
		}
	}
	p1 := Partitions(t1)
	p2 := Partitions(t2)
	result := Result{
		OnlyIn1: p1.diffCount(p2),
		OnlyIn2: p2.diffCount(p1),
		Parts1:  p1.Len(),
		Parts2:  p2.Len(),
	}
	result.Raw = result.OnlyIn1 + result.OnlyIn2
	if total := result.Parts1 + result.Parts2; total > 0 {
		result.Normalized = float64(result.Raw) / float64(total)
	}
	return result, nil
}
