/*
Package rfdist/main provides a command line tool which calculates the
Robinson–Foulds distance between two trees in Newick format.

See https://en.wikipedia.org/wiki/Robinson%E2%80%93Foulds_metric

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
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	strict := flag.Bool("strict", false, "reject trees with differing leaf-label sets")
	flag.Parse()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	if flag.NArg() != 2 {
		pterm.Error.Println("usage: rfdist [-strict] [-trace level] <file1> <file2>")
		os.Exit(1)
	}
	t1 := mustParse(flag.Arg(0))
	t2 := mustParse(flag.Arg(1))
	var opts []metric.Option
	if *strict {
		opts = append(opts, metric.SameLeafUniverse())
	}
	result, err := metric.RobinsonFoulds(t1, t2, opts...)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	fmt.Printf("tree1 %s\n", flag.Arg(0))
	fmt.Printf("tree2 %s\n", flag.Arg(1))
	fmt.Printf("%d partitions in 1\n", result.Parts1)
	fmt.Printf("%d partitions in 2\n", result.Parts2)
	fmt.Printf("%d partitions in 1 not in 2\n", result.OnlyIn1)
	fmt.Printf("%d partitions in 2 not in 1\n", result.OnlyIn2)
	fmt.Printf("R-F metric distance = %d\n", result.Raw)
	fmt.Printf("Normalized distance (range 0 to 1) = %6.4g\n", result.Normalized)
}

func mustParse(filename string) *tree.Tree {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	t, err := parser.Parse(string(data))
	if err != nil {
		pterm.Error.Printf("%s: %v\n", filename, err)
		os.Exit(2)
	}
	return t
}
