package main

import (
	"github.com/lexforge/automata/machine"
)

// tokenAction is the action payload used by the CLI rule sets.
type tokenAction string

func (a tokenAction) Name() string {
	return string(a)
}

// sampleRules hand-assembles a small lexer NFA: identifiers, integers,
// whitespace, and the keyword "if" outranking the identifier rule.
func sampleRules() *machine.Machine {
	m := machine.New()
	start := m.NewInitialState("")

	// identifier: [a-z_][a-z0-9_]*
	identHead := m.NewState()
	identTail := m.NewState()
	start.LinkTo(identHead)
	identHead.AddTransition(machine.Range{Lo: 'a', Hi: 'z' + 1}, identTail)
	identHead.AddTransition(machine.Range{Lo: '_', Hi: '_' + 1}, identTail)
	identTail.AddTransition(machine.Range{Lo: 'a', Hi: 'z' + 1}, identTail)
	identTail.AddTransition(machine.Range{Lo: '0', Hi: '9' + 1}, identTail)
	identTail.AddTransition(machine.Range{Lo: '_', Hi: '_' + 1}, identTail)
	identTail.SetAction(tokenAction("IDENT"), 1)

	// integer: [0-9]+
	intState := m.NewState()
	start.LinkTo(intState)
	intLoop := m.NewState()
	intState.AddTransition(machine.Range{Lo: '0', Hi: '9' + 1}, intLoop)
	intLoop.AddTransition(machine.Range{Lo: '0', Hi: '9' + 1}, intLoop)
	intLoop.SetAction(tokenAction("INT"), 1)

	// whitespace: [ \t\n]+
	wsHead := m.NewState()
	wsLoop := m.NewState()
	start.LinkTo(wsHead)
	for _, c := range []rune{' ', '\t', '\n'} {
		wsHead.AddTransition(machine.Range{Lo: c, Hi: c + 1}, wsLoop)
		wsLoop.AddTransition(machine.Range{Lo: c, Hi: c + 1}, wsLoop)
	}
	wsLoop.SetAction(tokenAction("SPACE"), 1)

	// keyword "if", outranking IDENT where both match
	kw1 := m.NewState()
	kw2 := m.NewState()
	start.LinkTo(kw1)
	kw3 := m.NewState()
	kw1.AddTransition(machine.Range{Lo: 'i', Hi: 'i' + 1}, kw2)
	kw2.AddTransition(machine.Range{Lo: 'f', Hi: 'f' + 1}, kw3)
	kw3.SetAction(tokenAction("IF"), 2)

	return m
}

// syntheticRules builds an NFA with n chained-range rules for benchmarks.
func syntheticRules(n int) *machine.Machine {
	m := machine.New()
	start := m.NewInitialState("")
	for i := 0; i < n; i++ {
		lo := rune('a' + i%20)
		head := m.NewState()
		tail := m.NewState()
		start.LinkTo(head)
		head.AddTransition(machine.Range{Lo: lo, Hi: lo + 5}, tail)
		tail.AddTransition(machine.Range{Lo: lo, Hi: lo + 5}, tail)
		tail.SetAction(tokenAction("T"+string(rune('A'+i%26))), i+1)
	}
	return m
}
