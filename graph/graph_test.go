package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPosSet(t *testing.T) {
	s := NewPosSet(100)
	require.True(t, s.Empty())
	s.Add(1)
	s.Add(64)
	s.Add(100)
	require.False(t, s.Empty())
	require.True(t, s.Has(64))
	require.False(t, s.Has(2))
	require.False(t, s.Has(1000))
	require.Equal(t, []int{1, 64, 100}, s.Positions())

	o := NewPosSet(100)
	o.Add(2)
	require.Equal(t, []int{1, 2, 64, 100}, s.Union(o).Positions())
	// Union must not mutate its receiver.
	require.Equal(t, []int{1, 64, 100}, s.Positions())

	s.UnionWith(o)
	require.Equal(t, []int{1, 2, 64, 100}, s.Positions())
}

func TestPosSetKey(t *testing.T) {
	a := NewPosSet(70)
	b := NewPosSet(70)
	require.Equal(t, a.Key(), b.Key())
	a.Add(3)
	a.Add(70)
	require.NotEqual(t, a.Key(), b.Key())
	b.Add(70)
	b.Add(3)
	require.Equal(t, a.Key(), b.Key())
}

// endsInB accepts every string over {a, b} whose last character is b.
func endsInB() *Automaton {
	return &Automaton{
		Initial: 0,
		Final:   map[int]bool{1: true},
		Trans: []map[rune]int{
			{'a': 0, 'b': 1},
			{'a': 0, 'b': 1},
		},
		Alphabet: []rune{'a', 'b'},
	}
}

func TestMatch(t *testing.T) {
	a := endsInB()
	require.False(t, a.Match(""))
	require.True(t, a.Match("b"))
	require.True(t, a.Match("aab"))
	require.False(t, a.Match("ba"))
	// Characters outside the alphabet reject immediately.
	require.False(t, a.Match("bc"))
}

func TestMatchMissingTransition(t *testing.T) {
	a := &Automaton{
		Initial:  0,
		Final:    map[int]bool{1: true},
		Trans:    []map[rune]int{{'a': 1}, {}},
		Alphabet: []rune{'a'},
	}
	require.True(t, a.Match("a"))
	require.False(t, a.Match("aa"))
}

func TestAutomatonView(t *testing.T) {
	a := endsInB()
	require.Equal(t, 2, a.StateCount())
	require.Equal(t, []int{1}, a.FinalStates())
	require.True(t, a.IsFinal(1))
	require.False(t, a.IsFinal(0))
	dst, ok := a.Step(0, 'b')
	require.True(t, ok)
	require.Equal(t, 1, dst)
	_, ok = a.Step(1, 'c')
	require.False(t, ok)
}

func TestWriteDotGraph(t *testing.T) {
	var sb strings.Builder
	WriteDotGraph(&sb, endsInB(), "DFA")
	out := sb.String()
	require.Contains(t, out, "digraph DFA {")
	require.Contains(t, out, "0[shape=box];")
	require.Contains(t, out, "1[style=filled,color=green];")
	require.Contains(t, out, `0 -> 1[label="b"];`)
	require.Contains(t, out, `1 -> 0[label="a"];`)
}
