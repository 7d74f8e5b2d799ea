package tree

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestInsertAndConnect(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylotree.tree")
	defer teardown()
	//
	tr := New()
	ids := make(map[string]int)
	for _, label := range []string{"root", "A", "B", "C"} {
		id, err := tr.Insert(label, NoParent, nil)
		if err != nil {
			t.Fatal(err)
		}
		ids[label] = id
	}
	for _, label := range []string{"A", "B", "C"} {
		if err := tr.Connect(ids["root"], ids[label]); err != nil {
			t.Fatal(err)
		}
	}
	if err := tr.SetRoot(ids["root"]); err != nil {
		t.Fatal(err)
	}
	if err := tr.Validate(); err != nil {
		t.Fatal(err)
	}
	if n := tr.NodeCount(); n != 4 {
		t.Errorf("expected 4 nodes, got %d", n)
	}
	if n := tr.NonBinaryInternalNodeCount(); n != 1 {
		t.Errorf("expected 1 non-binary internal node, got %d", n)
	}
	id, ok := tr.IDByLabel("B")
	if !ok || id != ids["B"] {
		t.Errorf("label index broken for B: got %d, %v", id, ok)
	}
}

func TestInsertErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylotree.tree")
	defer teardown()
	//
	tr := New()
	if _, err := tr.Insert("A", 99, nil); err == nil {
		t.Error("expected an error for an unknown parent id")
	}
	if _, err := tr.Insert("A", NoParent, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.Insert("A", NoParent, nil); err == nil {
		t.Error("expected an error for a duplicate label")
	}
}

func TestConnectErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylotree.tree")
	defer teardown()
	//
	tr := New()
	root, _ := tr.Insert("root", NoParent, nil)
	other, _ := tr.Insert("other", NoParent, nil)
	child, _ := tr.Insert("child", NoParent, nil)
	if err := tr.Connect(root, child); err != nil {
		t.Fatal(err)
	}
	if err := tr.Connect(root, child); err == nil {
		t.Error("expected an error for a duplicate edge")
	}
	if err := tr.Connect(other, child); err == nil {
		t.Error("expected an error for reparenting")
	}
	if err := tr.Connect(99, root); err == nil {
		t.Error("expected an error for an unknown parent id")
	}
}

func TestSetRootErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylotree.tree")
	defer teardown()
	//
	tr := New()
	root, _ := tr.Insert("root", NoParent, nil)
	child, _ := tr.Insert("child", NoParent, nil)
	if err := tr.Connect(root, child); err != nil {
		t.Fatal(err)
	}
	if err := tr.SetRoot(child); err == nil {
		t.Error("expected an error: child has a parent")
	}
	if err := tr.SetRoot(99); err == nil {
		t.Error("expected an error for an unknown id")
	}
}

func TestValidateCorruption(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylotree.tree")
	defer teardown()
	//
	tr := New()
	root, _ := tr.Insert("root", NoParent, nil)
	child, _ := tr.Insert("child", NoParent, nil)
	if err := tr.Connect(root, child); err != nil {
		t.Fatal(err)
	}
	if err := tr.SetRoot(root); err != nil {
		t.Fatal(err)
	}
	if err := tr.Validate(); err != nil {
		t.Fatal(err)
	}
	// corrupt the arena through the node alias
	tr.NodeByID(root).Children = append(tr.NodeByID(root).Children, 99)
	err := tr.Validate()
	if err == nil {
		t.Fatal("expected a validation error for a dangling child id")
	}
	if _, ok := err.(*ValidationError); !ok {
		t.Errorf("expected a *ValidationError, got %T", err)
	}
	t.Logf("%v", err)
}

func TestCountIdentity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylotree.tree")
	defer teardown()
	//
	tr := New()
	root, _ := tr.Insert("r", NoParent, nil)
	a, _ := tr.Insert("a", root, nil)
	b, _ := tr.Insert("b", root, nil)
	c, _ := tr.Insert("c", a, nil)
	d, _ := tr.Insert("d", a, nil)
	e, _ := tr.Insert("e", b, nil)
	for _, pair := range [][2]int{{root, a}, {root, b}, {a, c}, {a, d}, {b, e}} {
		if err := tr.Connect(pair[0], pair[1]); err != nil {
			t.Fatal(err)
		}
	}
	sum := tr.LeafCount() + tr.BinaryInternalNodeCount() + tr.NonBinaryInternalNodeCount()
	if sum != tr.NodeCount() {
		t.Errorf("count identity violated: %d != %d", sum, tr.NodeCount())
	}
}
