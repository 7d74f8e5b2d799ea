package tree

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestNewickManual(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylotree.tree")
	defer teardown()
	//
	tr := New()
	length := 0.5
	root, _ := tr.Insert("F", NoParent, nil)
	a, _ := tr.Insert("A", root, nil)
	inner, _ := tr.Insert("E", root, &length)
	b, _ := tr.Insert("B", inner, nil)
	c, _ := tr.Insert("C", inner, nil)
	for _, pair := range [][2]int{{root, a}, {root, inner}, {inner, b}, {inner, c}} {
		if err := tr.Connect(pair[0], pair[1]); err != nil {
			t.Fatal(err)
		}
	}
	if err := tr.SetRoot(root); err != nil {
		t.Fatal(err)
	}
	if err := tr.Validate(); err != nil {
		t.Fatal(err)
	}
	expected := "(A,(B,C)E:0.5)F;"
	if out := tr.Newick(); out != expected {
		t.Errorf("expected %q, got %q", expected, out)
	}
}

func TestNewickLeafOnly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylotree.tree")
	defer teardown()
	//
	tr := New()
	root, _ := tr.Insert("solo", NoParent, nil)
	if err := tr.SetRoot(root); err != nil {
		t.Fatal(err)
	}
	if out := tr.Newick(); out != "solo;" {
		t.Errorf("expected %q, got %q", "solo;", out)
	}
}

func TestNewickQuotedLabel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylotree.tree")
	defer teardown()
	//
	tr := New()
	root, _ := tr.Insert("", NoParent, nil)
	a, _ := tr.Insert("Homo sapiens", root, nil)
	b, _ := tr.Insert("B", root, nil)
	for _, pair := range [][2]int{{root, a}, {root, b}} {
		if err := tr.Connect(pair[0], pair[1]); err != nil {
			t.Fatal(err)
		}
	}
	if err := tr.SetRoot(root); err != nil {
		t.Fatal(err)
	}
	expected := "('Homo sapiens',B);"
	if out := tr.Newick(); out != expected {
		t.Errorf("expected %q, got %q", expected, out)
	}
}

// Deep nesting must not exhaust the call stack: serialization is driven by
// an explicit work list.
func TestNewickDeep(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylotree.tree")
	defer teardown()
	//
	tr := New()
	parent := NoParent
	const depth = 200000
	for i := 0; i < depth; i++ {
		id, err := tr.Insert("", parent, nil)
		if err != nil {
			t.Fatal(err)
		}
		if parent != NoParent {
			if err := tr.Connect(parent, id); err != nil {
				t.Fatal(err)
			}
		} else {
			if err := tr.SetRoot(id); err != nil {
				t.Fatal(err)
			}
		}
		parent = id
	}
	out := tr.Newick()
	// depth-1 nested groups around a single anonymous leaf, plus ';'
	if len(out) != 2*(depth-1)+1 {
		t.Errorf("unexpected serialization length %d", len(out))
	}
}
