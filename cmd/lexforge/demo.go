package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lexforge/automata/determinize"
	"github.com/lexforge/automata/scantable"
)

func demo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	stage := fs.String("stage", "all", "Stage to dump: nfa, dfa, table, or all")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: lexforge demo [options]

Build the sample rule set (identifiers, integers, whitespace, and the
keyword "if") and dump the requested construction stage.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	nfa := sampleRules()
	if *stage == "nfa" || *stage == "all" {
		nfa.Dump(os.Stdout)
	}

	dfa, err := determinize.Determinize(nfa)
	if err != nil {
		return fmt.Errorf("determinize: %w", err)
	}
	if *stage == "dfa" || *stage == "all" {
		dfa.Dump(os.Stdout)
	}

	table, err := scantable.FromMachine(dfa)
	if err != nil {
		return fmt.Errorf("flatten: %w", err)
	}
	if *stage == "table" || *stage == "all" {
		table.Dump(os.Stdout)
	}

	fmt.Fprintf(os.Stderr, "%d NFA states -> %d DFA states -> %d table records\n",
		nfa.StateCount(), dfa.StateCount(), table.StateCount())
	return nil
}
