package graph

import (
	"errors"
	"fmt"
	"io"
	"math/bits"
	"slices"
	"strconv"
)

// EndMarker is the augmentation symbol appended to every compiled expression.
// Its syntax-tree position marks the accepting states of the constructed DFA.
const EndMarker = '#'

var (
	ErrMissingEndMarker = errors.New("no position assigned to the end marker")
	ErrUnbuiltAutomaton = errors.New("automaton has not been constructed")
)

// PosSet is a fixed-width bitset over syntax-tree positions 1..N.
// Position sets double as DFA state identity: two states are the same state
// iff their sets are equal, so Key() must be canonical.
type PosSet []uint64

// NewPosSet returns an empty set able to hold positions 1..max.
func NewPosSet(max int) PosSet {
	return make(PosSet, max/64+1)
}

func (s PosSet) Add(pos int) {
	s[pos/64] |= 1 << (pos % 64)
}

func (s PosSet) Has(pos int) bool {
	w := pos / 64
	return w < len(s) && s[w]&(1<<(pos%64)) != 0
}

func (s PosSet) Empty() bool {
	for _, w := range s {
		if w != 0 {
			return false
		}
	}
	return true
}

func (s PosSet) Clone() PosSet {
	return slices.Clone(s)
}

// UnionWith adds all positions of o into s.
func (s PosSet) UnionWith(o PosSet) {
	for i, w := range o {
		s[i] |= w
	}
}

// Union returns a new set holding the positions of both s and o.
func (s PosSet) Union(o PosSet) PosSet {
	u := s.Clone()
	u.UnionWith(o)
	return u
}

// Positions lists the members in increasing order.
func (s PosSet) Positions() []int {
	var res []int
	for i, w := range s {
		for ; w != 0; w &= w - 1 {
			res = append(res, i*64+bits.TrailingZeros64(w))
		}
	}
	return res
}

// Key renders the set as a canonical '0'/'1' string for state interning.
func (s PosSet) Key() string {
	buf := make([]byte, len(s)*64)
	for i := range buf {
		if s[i/64]&(1<<(i%64)) != 0 {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}

// Automaton is the single exported artifact of DFA construction and
// minimization: dense state ids, an initial state, the final-state set, and a
// partial transition function. A missing transition entry means no move,
// which the simulator treats as rejection.
type Automaton struct {
	Initial  int
	Final    map[int]bool
	Trans    []map[rune]int
	Alphabet []rune
}

func (a *Automaton) StateCount() int {
	return len(a.Trans)
}

func (a *Automaton) IsFinal(state int) bool {
	return a.Final[state]
}

// FinalStates lists the final state ids in increasing order.
func (a *Automaton) FinalStates() []int {
	res := make([]int, 0, len(a.Final))
	for s := range a.Final {
		res = append(res, s)
	}
	slices.Sort(res)
	return res
}

// Step returns the destination of (state, symbol), if any.
func (a *Automaton) Step(state int, symbol rune) (int, bool) {
	dst, ok := a.Trans[state][symbol]
	return dst, ok
}

// Match walks the input over the automaton and reports acceptance.
// A character outside the alphabet, or a state with no move for the current
// character, rejects immediately.
func (a *Automaton) Match(input string) bool {
	state := a.Initial
	for _, r := range input {
		if !slices.Contains(a.Alphabet, r) {
			return false
		}
		dst, ok := a.Trans[state][r]
		if !ok {
			return false
		}
		state = dst
	}
	return a.Final[state]
}

// WriteDotGraph Print an automaton in DOT format.
//
//	$ dot -Tps input.dot -o output.ps
func WriteDotGraph(out io.Writer, a *Automaton, id string) {
	_, _ = fmt.Fprintf(out, "digraph %v {\n  %d[shape=box];\n", id, a.Initial)
	for _, s := range a.FinalStates() {
		_, _ = fmt.Fprintf(out, "  %v[style=filled,color=green];\n", s)
	}
	for src, row := range a.Trans {
		for _, r := range a.Alphabet {
			dst, ok := row[r]
			if !ok {
				continue
			}
			_, _ = fmt.Fprintf(out, "  %v -> %v[label=%q];\n", src, dst, runeToDot(r))
		}
	}
	_, _ = fmt.Fprintln(out, "}")
}

func runeToDot(r rune) string {
	if strconv.IsPrint(r) {
		return string(r)
	}
	return fmt.Sprintf("U+%X", int(r))
}
