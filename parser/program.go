package parser

import (
	"io"

	"redfa/graph"
)

// Program holds every artifact of one compilation run. All fields are built
// once by Compile and read-only afterwards.
type Program struct {
	Regex     string
	Augmented string
	Tree      *Node
	Symbols   []rune // position -> symbol; index 0 unused
	Follow    []graph.PosSet
	Alphabet  []rune
	DFA       *graph.Automaton
	Min       *graph.Automaton
}

// graph.Expression implementation.

func (p *Program) RootFirst() graph.PosSet {
	return p.Tree.First
}

func (p *Program) FollowSet(pos int) graph.PosSet {
	return p.Follow[pos]
}

func (p *Program) PosSymbol(pos int) rune {
	return p.Symbols[pos]
}

func (p *Program) PosCount() int {
	return len(p.Symbols) - 1
}

func (p *Program) SymbolSet() []rune {
	return p.Alphabet
}

// Automaton selects the minimized automaton when available, falling back to
// the constructed one.
func (p *Program) Automaton(minimized bool) (*graph.Automaton, error) {
	if minimized && p.Min != nil {
		return p.Min, nil
	}
	if p.DFA != nil {
		return p.DFA, nil
	}
	return nil, graph.ErrUnbuiltAutomaton
}

// Match simulates the input string over the chosen automaton.
func (p *Program) Match(input string, minimized bool) (bool, error) {
	a, err := p.Automaton(minimized)
	if err != nil {
		return false, err
	}
	return a.Match(input), nil
}

func (p *Program) WriteDFADotGraph(writer io.Writer) error {
	a, err := p.Automaton(false)
	if err != nil {
		return err
	}
	graph.WriteDotGraph(writer, a, "DFA")
	return nil
}

func (p *Program) WriteMinDFADotGraph(writer io.Writer) error {
	a, err := p.Automaton(true)
	if err != nil {
		return err
	}
	graph.WriteDotGraph(writer, a, "MinDFA")
	return nil
}
