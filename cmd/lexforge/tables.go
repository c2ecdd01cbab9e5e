package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/lexforge/automata/determinize"
	"github.com/lexforge/automata/scantable"
	"github.com/lexforge/automata/tablestore"
)

func save(args []string) error {
	fs := flag.NewFlagSet("save", flag.ExitOnError)
	dbPath := fs.String("db", "tables.db", "Path to the table store database")
	name := fs.String("name", "sample", "Name to store the compiled table under")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: lexforge save [options]

Compile the sample rule set and persist its scan table.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	dfa, err := determinize.Determinize(sampleRules())
	if err != nil {
		return fmt.Errorf("determinize: %w", err)
	}
	table, err := scantable.FromMachine(dfa)
	if err != nil {
		return fmt.Errorf("flatten: %w", err)
	}

	store, err := tablestore.Open(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.Save(context.Background(), *name, table)
	if err != nil {
		return err
	}
	fmt.Printf("saved %q (build %s, %d states)\n", *name, id, table.StateCount())
	return nil
}

func list(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	dbPath := fs.String("db", "tables.db", "Path to the table store database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: lexforge list [options]

List stored scan tables.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := tablestore.Open(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(context.Background())
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no tables stored")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%-20s %4d states  %s  %s\n", e.Name, e.States, e.ID, e.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
