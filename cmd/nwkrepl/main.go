/*
Package nwkrepl/main provides an interactive command line tool for
experiments with Newick trees. Users paste a Newick string and get the
structural summary and the canonical serialization of the resulting tree;
commands allow inspecting its partitions and comparing it against a second
tree.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/phylotree/metric"
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
	flag.Parse()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	pterm.Info.Println("Welcome to the Newick REPL")
	repl, err := readline.New("nwk> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl}
	input := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if input != "" {
		intp.eval(input)
	}
	tracer().Infof("Quit with <ctrl>D")
	intp.REPL()
}

// Intp is our interpreter object.
type Intp struct {
	repl *readline.Instance
	tree *tree.Tree // most recently parsed tree
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if quit := intp.eval(line); quit {
			break
		}
	}
	println("Good bye!")
}

// eval handles a single input line: either a command or a Newick string.
func (intp *Intp) eval(line string) bool {
	args := strings.Fields(line)
	switch args[0] {
	case "quit", "exit":
		return true
	case "parts":
		intp.printPartitions()
		return false
	case "rf":
		intp.rf(strings.TrimSpace(strings.TrimPrefix(line, "rf")))
		return false
	case "help":
		pterm.Info.Println("enter a Newick string, or: parts | rf <newick> | quit")
		return false
	}
	t, err := parser.Parse(line)
	if err != nil {
		pterm.Error.Println(err.Error())
		return false
	}
	intp.tree = t
	pterm.Info.Println(t.Newick())
	fmt.Printf("%d nodes, %d leaves, %d binary nodes, %d non-binary internal nodes\n",
		t.NodeCount(), t.LeafCount(), t.BinaryInternalNodeCount(),
		t.NonBinaryInternalNodeCount())
	return false
}

// printPartitions lists the distinct partitions of the current tree.
func (intp *Intp) printPartitions() {
	if intp.tree == nil {
		pterm.Error.Println("no tree parsed yet")
		return
	}
	for _, part := range metric.Partitions(intp.tree).Values() {
		pterm.Println(part.String())
	}
}

// rf compares the current tree against a second Newick string.
func (intp *Intp) rf(input string) {
	if intp.tree == nil {
		pterm.Error.Println("no tree parsed yet")
		return
	}
	if input == "" {
		pterm.Error.Println("usage: rf <newick>")
		return
	}
	other, err := parser.Parse(input)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	result, err := metric.RobinsonFoulds(intp.tree, other)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	fmt.Printf("R-F metric distance = %d\n", result.Raw)
	fmt.Printf("Normalized distance (range 0 to 1) = %6.4g\n", result.Normalized)
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
