package tree

// Structural queries. All of them are side-effect free and run in O(|nodes|).
//
// For every tree
//
//    NodeCount() == LeafCount() + BinaryInternalNodeCount() +
//                   NonBinaryInternalNodeCount()
//
// since an internal node has either exactly 2 children or some other
// non-zero child count.

// NodeCount returns the total number of nodes.
func (t *Tree) NodeCount() int {
	return len(t.nodes)
}

// LeafCount returns the number of nodes without children.
func (t *Tree) LeafCount() int {
	n := 0
	for _, node := range t.nodes {
		if node.IsLeaf() {
			n++
		}
	}
	return n
}

// BinaryInternalNodeCount returns the number of nodes with exactly 2
// children.
func (t *Tree) BinaryInternalNodeCount() int {
	n := 0
	for _, node := range t.nodes {
		if len(node.Children) == 2 {
			n++
		}
	}
	return n
}

// NonBinaryInternalNodeCount returns the number of internal nodes which are
// not binary, i.e. have 1 or more than 2 children.
func (t *Tree) NonBinaryInternalNodeCount() int {
	n := 0
	for _, node := range t.nodes {
		if k := len(node.Children); k != 0 && k != 2 {
			n++
		}
	}
	return n
}
