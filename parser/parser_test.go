package parser

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestParseCaterpillar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylotree.parser")
	defer teardown()
	//
	tree, err := Parse("(A,(B,C));")
	if err != nil {
		t.Fatal(err)
	}
	if n := tree.NodeCount(); n != 5 {
		t.Errorf("expected 5 nodes, got %d", n)
	}
	if n := tree.LeafCount(); n != 3 {
		t.Errorf("expected 3 leaves, got %d", n)
	}
	if n := tree.BinaryInternalNodeCount(); n != 2 {
		t.Errorf("expected 2 binary internal nodes, got %d", n)
	}
	if n := tree.NonBinaryInternalNodeCount(); n != 0 {
		t.Errorf("expected 0 non-binary internal nodes, got %d", n)
	}
}

func TestParseTernary(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylotree.parser")
	defer teardown()
	//
	tree, err := Parse("(A,B,C);")
	if err != nil {
		t.Fatal(err)
	}
	if n := tree.NodeCount(); n != 4 {
		t.Errorf("expected 4 nodes, got %d", n)
	}
	if n := tree.LeafCount(); n != 3 {
		t.Errorf("expected 3 leaves, got %d", n)
	}
	if n := tree.BinaryInternalNodeCount(); n != 0 {
		t.Errorf("expected 0 binary internal nodes, got %d", n)
	}
	if n := tree.NonBinaryInternalNodeCount(); n != 1 {
		t.Errorf("expected 1 non-binary internal node, got %d", n)
	}
}

func TestParseInternalLabels(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylotree.parser")
	defer teardown()
	//
	tree, err := Parse("(A,B,(X,Y)C)ROOT;")
	if err != nil {
		t.Fatal(err)
	}
	rootID := tree.Root()
	root := tree.NodeByID(rootID)
	if root == nil || root.Label != "ROOT" {
		t.Fatalf("expected root labeled ROOT, got %v", root)
	}
	id, ok := tree.IDByLabel("C")
	if !ok {
		t.Fatal("no node labeled C")
	}
	if n := len(tree.NodeByID(id).Children); n != 2 {
		t.Errorf("expected C to have 2 children, got %d", n)
	}
}

func TestParseEdgeLengths(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylotree.parser")
	defer teardown()
	//
	tree, err := Parse("(A:0.1,B:0.2,(C:0.3,D:0.4):0.5);")
	if err != nil {
		t.Fatal(err)
	}
	id, ok := tree.IDByLabel("D")
	if !ok {
		t.Fatal("no node labeled D")
	}
	node := tree.NodeByID(id)
	if node.Length == nil || *node.Length != 0.4 {
		t.Errorf("expected D to have edge length 0.4, got %v", node.Length)
	}
	// the inner group node carries :0.5 and is the unlabeled non-leaf child
	parent := tree.NodeByID(node.Parent)
	if parent.Length == nil || *parent.Length != 0.5 {
		t.Errorf("expected inner node to have edge length 0.5, got %v", parent.Length)
	}
}

func TestParseEmptyElements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylotree.parser")
	defer teardown()
	//
	tree, err := Parse("(,,(,));")
	if err != nil {
		t.Fatal(err)
	}
	if n := tree.NodeCount(); n != 6 {
		t.Errorf("expected 6 nodes, got %d", n)
	}
	if n := tree.LeafCount(); n != 4 {
		t.Errorf("expected 4 leaves, got %d", n)
	}
}

func TestParseAnonymousLengths(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylotree.parser")
	defer teardown()
	//
	tree, err := Parse("(:0.1,:0.2,(:0.3,:0.4):0.5);")
	if err != nil {
		t.Fatal(err)
	}
	if n := tree.NodeCount(); n != 6 {
		t.Errorf("expected 6 nodes, got %d", n)
	}
	if n := tree.LeafCount(); n != 4 {
		t.Errorf("expected 4 leaves, got %d", n)
	}
}

func TestParseQuotedLabel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylotree.parser")
	defer teardown()
	//
	tree, err := Parse("('Homo sapiens',B);")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tree.IDByLabel("Homo sapiens"); !ok {
		t.Error("expected a node labeled 'Homo sapiens'")
	}
}

func TestParseComments(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylotree.parser")
	defer teardown()
	//
	tree, err := Parse("(A[ignore me],B[and me]);")
	if err != nil {
		t.Fatal(err)
	}
	if n := tree.NodeCount(); n != 3 {
		t.Errorf("expected 3 nodes, got %d", n)
	}
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylotree.parser")
	defer teardown()
	//
	inputs := []string{
		"(A,A);",    // duplicate label
		"(A,(B,C;",  // missing closing parenthesis
		"(A,B);;",   // second semicolon
		"(A,B)",     // missing semicolon
		"A B;",      // two top-level nodes
		"(A,B));",   // unbalanced close
		";",         // empty tree
		"(A:x,B);",  // length is not a float -- lexes as label
		"(A:,B);",   // colon without length
	}
	for i, input := range inputs {
		tree, err := Parse(input)
		if err == nil {
			t.Errorf("input #%d (%q): expected a parse error, got none", i, input)
			continue
		}
		if tree != nil {
			t.Errorf("input #%d: got a tree alongside an error", i)
		}
		if _, ok := err.(*ParseError); !ok {
			t.Errorf("input #%d: expected a *ParseError, got %T: %v", i, err, err)
		}
		t.Logf("input #%d: %v", i, err)
	}
}

func TestParseRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylotree.parser")
	defer teardown()
	//
	inputs := []string{
		"(A,B,(C,D)E)F;",
		"(A,(B,C));",
		"((A,B),C);",
		"(A:0.1,B:0.2,(C:0.3,D:0.4):0.5);",
		"((d1qbea_:0.597492,d1dwna_:0.632208):0.162939,d1gav0_:0.526213);",
		"((X,Y)C)ROOT;",
		"(,,(,));",
	}
	for i, input := range inputs {
		first, err := Parse(input)
		if err != nil {
			t.Fatalf("input #%d: %v", i, err)
		}
		out := first.Newick()
		if stripped := strings.ReplaceAll(input, " ", ""); out != stripped {
			t.Errorf("input #%d: serialized to %q, expected %q", i, out, stripped)
		}
		second, err := Parse(out)
		if err != nil {
			t.Fatalf("re-parse #%d: %v", i, err)
		}
		if second.Newick() != out {
			t.Errorf("input #%d: round trip not stable: %q vs %q",
				i, second.Newick(), out)
		}
		if first.NodeCount() != second.NodeCount() ||
			first.LeafCount() != second.LeafCount() {
			t.Errorf("input #%d: round trip changed the shape", i)
		}
	}
}
