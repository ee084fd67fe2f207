// Command alethecheck reads an Alethe proof script, parses it, and
// checks every step against its stated rule (spec.md §1). Modeled on
// the teacher's cmd/kanso-cli/main.go: read file, parse, run, report
// success/failure with colored output.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"

	"github.com/alethecheck/alethecheck/internal/checker"
	"github.com/alethecheck/alethecheck/internal/printer"
	"github.com/alethecheck/alethecheck/internal/sexpr"
	"github.com/alethecheck/alethecheck/internal/stats"
)

func main() {
	skipUnknown := flag.Bool("skip-unknown-rules", false, "treat unrecognized rule names as success")
	testMode := flag.Bool("test", false, "accept every top-level assume unconditionally (no premise set required)")
	verbose := flag.Int("verbose", 0, "commonlog verbosity (0-3)")
	showStats := flag.Bool("stats", false, "print per-rule timing statistics after a successful check")
	printSteps := flag.Bool("print", false, "echo the parsed proof's steps before checking")
	flag.Parse()

	commonlog.Configure(*verbose, nil)

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: alethecheck [flags] <proof-file>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("could not read %s: %s", path, err)
		os.Exit(1)
	}

	p, pf, err := sexpr.ParseProof(path, string(source))
	if err != nil {
		// sexpr already printed a diagnostic (caret-style for a syntax
		// error).
		os.Exit(1)
	}

	if *printSteps {
		_ = printer.New(p, os.Stdout).WriteProof(pf)
	}

	var sink *stats.Sink
	if *showStats {
		sink = stats.NewSink()
	}

	c := checker.New(p, checker.Config{
		SkipUnknownRules: *skipUnknown,
		IsRunningTest:    *testMode,
		FileName:         path,
		Statistics:       sink,
	})

	if err := c.Check(pf); err != nil {
		color.Red("FAIL: %s", err)
		os.Exit(1)
	}

	color.Green("OK: %s checked successfully (%d top-level commands)", path, len(pf.Commands))

	if sink != nil {
		printStats(sink)
	}
}

func printStats(sink *stats.Sink) {
	fmt.Println("\nstep time by rule:")
	for _, rule := range sink.ByRule.Keys() {
		fmt.Printf("  %-20s %6d steps  total %s  mean %s\n",
			rule, sink.ByRule.Count(rule), sink.ByRule.Total(rule), sink.ByRule.Mean(rule))
	}
}
