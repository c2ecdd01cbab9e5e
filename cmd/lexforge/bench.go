package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lexforge/automata/determinize"
	"github.com/lexforge/automata/scantable"
)

func bench(args []string) error {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	rules := fs.Int("rules", 100, "Number of synthetic rules to build")
	repeat := fs.Int("repeat", 3, "Number of timed repetitions")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: lexforge bench [options]

Time each construction phase over a synthetic rule set: NFA assembly,
subset construction, and table flattening.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	for run := 1; run <= *repeat; run++ {
		t0 := time.Now()
		nfa := syntheticRules(*rules)
		tBuild := time.Since(t0)

		t1 := time.Now()
		dfa, err := determinize.Determinize(nfa)
		if err != nil {
			return fmt.Errorf("determinize: %w", err)
		}
		tConvert := time.Since(t1)

		t2 := time.Now()
		table, err := scantable.FromMachine(dfa)
		if err != nil {
			return fmt.Errorf("flatten: %w", err)
		}
		tFlatten := time.Since(t2)

		fmt.Printf("run %d: build %v (%d states), determinize %v (%d states), flatten %v (%d records)\n",
			run, tBuild, nfa.StateCount(), tConvert, dfa.StateCount(), tFlatten, table.StateCount())
	}
	return nil
}
