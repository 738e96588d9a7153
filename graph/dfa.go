package graph

import (
	"slices"
)

// Expression is the view of a compiled syntax tree that DFA construction
// needs: the root's firstpos, the finalized followpos table, and the
// position-to-symbol mapping.
type Expression interface {
	RootFirst() PosSet
	FollowSet(pos int) PosSet
	PosSymbol(pos int) rune
	PosCount() int
	SymbolSet() []rune
}

// BuildDfa Syntax tree -> DFA, by direct construction.
// DFA states are sets of syntax-tree positions; no NFA is materialized.
// A state is final iff it contains the end-marker position. An empty move is
// simply absent from the transition table.
func BuildDfa(x Expression) (*Automaton, error) {
	endPos := findEndPos(x)
	if endPos == 0 {
		return nil, ErrMissingEndMarker
	}
	b := dfaBuilder{
		expr:   x,
		endPos: endPos,
		tab:    make(map[string]int),
	}

	// The DFA start state is the root's firstpos. Recall it has index 0.
	b.get(x.RootFirst())

	a := &Automaton{
		Final:    make(map[int]bool),
		Alphabet: slices.Clone(x.SymbolSet()),
	}
	for len(b.todo) > 0 {
		v := b.nextTodo()
		st := b.states[v]
		if st.Has(endPos) {
			a.Final[v] = true
		}
		for _, r := range a.Alphabet {
			next := b.move(st, r)
			if next.Empty() {
				continue
			}
			b.trans[v][r] = b.get(next)
		}
	}

	a.Trans = b.trans
	return a, nil
}

func findEndPos(x Expression) int {
	for p := 1; p <= x.PosCount(); p++ {
		if x.PosSymbol(p) == EndMarker {
			return p
		}
	}
	return 0
}

type dfaBuilder struct {
	expr   Expression
	endPos int
	tab    map[string]int
	states []PosSet
	trans  []map[rune]int
	todo   []int
}

// move unions followpos over the state's positions mapped to the symbol.
func (b *dfaBuilder) move(st PosSet, r rune) PosSet {
	next := make(PosSet, len(st))
	for _, p := range st.Positions() {
		if b.expr.PosSymbol(p) == r {
			next.UnionWith(b.expr.FollowSet(p))
		}
	}
	return next
}

// get interns a position set, assigning the next dense id and queueing it for
// expansion on first sight.
func (b *dfaBuilder) get(st PosSet) int {
	key := st.Key()
	id, found := b.tab[key]
	if !found {
		id = len(b.states)
		b.tab[key] = id
		b.states = append(b.states, st)
		b.trans = append(b.trans, make(map[rune]int))
		b.todo = append(b.todo, id)
	}
	return id
}

func (b *dfaBuilder) nextTodo() int {
	v := b.todo[len(b.todo)-1]
	b.todo = b.todo[:len(b.todo)-1]
	return v
}
