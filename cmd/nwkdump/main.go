/*
Package nwkdump/main provides a command line tool which reads a tree in
Newick format and dumps a summary of it: a table of all nodes (id, parent,
edge length, label, children), the tree shape, and a one-line structural
summary.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/phylotree/parser"
	"github.com/npillmayer/phylotree/tree"
)

// tracer traces with key 'phylotree.cli'.
func tracer() tracing.Trace {
	return tracing.Select("phylotree.cli")
}

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	short := flag.Bool("short", false, "show short summary only")
	flag.Parse()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	if flag.NArg() != 1 {
		pterm.Error.Println("usage: nwkdump [-short] [-trace level] <file>")
		os.Exit(1)
	}
	filename := flag.Arg(0)
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	t, err := parser.Parse(string(data))
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	if !*short {
		printNodeTable(t)
		printShape(t)
	}
	pterm.Info.Println(filename)
	fmt.Printf("%d nodes, %d leaves, %d binary nodes, %d non-binary internal nodes\n",
		t.NodeCount(), t.LeafCount(), t.BinaryInternalNodeCount(),
		t.NonBinaryInternalNodeCount())
}

// printNodeTable writes one row per node, in id order.
func printNodeTable(t *tree.Tree) {
	fmt.Printf("%5s  %6s  %8s  %-10s  %s\n", "idx", "parent", "length", "label", "children")
	for _, id := range t.IDs() {
		node := t.NodeByID(id)
		parent := "(ROOT)"
		if node.Parent != tree.NoParent {
			parent = strconv.Itoa(node.Parent)
		}
		length := "-"
		if node.Length != nil {
			length = fmt.Sprintf("%8.8s", fmt.Sprintf("%g", *node.Length))
		}
		label := node.Label
		if label == "" {
			label = "-"
		}
		children := "-"
		if len(node.Children) > 0 {
			kids := make([]string, len(node.Children))
			for i, child := range node.Children {
				kids[i] = strconv.Itoa(child)
			}
			children = strings.Join(kids, ", ")
		}
		fmt.Printf("%5d  %6s  %8s  %-10s  %s\n", id, parent, length, label, children)
	}
}

// printShape renders the tree shape with pterm. Traversal is an explicit
// stack of (id, level) pairs, children pushed in reverse to keep their
// declaration order.
func printShape(t *tree.Tree) {
	ll := pterm.LeveledList{}
	type item struct {
		id    int
		level int
	}
	stack := []item{{t.Root(), 0}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := t.NodeByID(top.id)
		if node == nil {
			continue
		}
		text := node.Label
		if text == "" {
			text = "N/A"
		}
		if node.Length != nil {
			text += fmt.Sprintf(" (%g)", *node.Length)
		}
		ll = append(ll, pterm.LeveledListItem{Level: top.level, Text: text})
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{node.Children[i], top.level + 1})
		}
	}
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
