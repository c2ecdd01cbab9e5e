package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "demo":
		if err := demo(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "bench":
		if err := bench(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "save":
		if err := save(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "list":
		if err := list(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`lexforge - lexical-analyser automaton toolkit

Usage:
  lexforge <command> [options]

Commands:
  demo       Build a sample rule set and dump NFA, DFA, and scan table
  bench      Time NFA construction, determinization, and flattening
  save       Compile the sample rule set and store its scan table
  list       List stored scan tables
  help       Show this help message

Examples:
  # Dump every construction stage of the sample rules
  lexforge demo

  # Time construction over a synthetic rule set
  lexforge bench --rules 200 --repeat 5

  # Persist the compiled table
  lexforge save --db tables.db --name sample

For command-specific help, run:
  lexforge <command> --help`)
}
