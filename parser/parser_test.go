package parser

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInsertConcat(t *testing.T) {
	for _, x := range []struct {
		in, out string
	}{
		{"ab", "a·b"},
		{"a|b", "a|b"},
		{"(a|b)*abb", "(a|b)*·a·b·b"},
		{"a*b", "a*·b"},
		{"a?b+c", "a?·b+·c"},
		{"(ab)(cd)", "(a·b)·(c·d)"},
		{"", ""},
		{"a", "a"},
	} {
		t.Run(x.in, func(t *testing.T) {
			require.Equal(t, x.out, string(insertConcat([]rune(x.in))))
		})
	}
}

func TestInfixToPostfix(t *testing.T) {
	for _, x := range []struct {
		in, out string
	}{
		{"((a|b)*abb)#", "ab|*a·b·b·#·"},
		{"(a)#", "a#·"},
		{"(a|b)#", "ab|#·"},
		{"(ab*)#", "ab*·#·"},
		{"(a?)#", "a?#·"},
	} {
		t.Run(x.in, func(t *testing.T) {
			require.Equal(t, x.out, string(infixToPostfix(x.in)))
		})
	}
}

func TestAlphabetOf(t *testing.T) {
	require.Equal(t, []rune{'a', 'b'}, alphabetOf("(a|b)*abb"))
	require.Equal(t, []rune{'a'}, alphabetOf("a?"))
	require.Empty(t, alphabetOf("ε"))
	require.Equal(t, []rune{'0', '1'}, alphabetOf("(0|1)*1"))
}

func TestPositionBijection(t *testing.T) {
	// Positions must be a bijection from 1..N to leaf occurrences,
	// in postfix-consumption order.
	p, err := Compile("(a|b)*abb")
	require.NoError(t, err)
	require.Equal(t, 6, p.PosCount())
	require.Equal(t, "ab|*a·b·b·#·", string(infixToPostfix(p.Augmented)))
	require.Equal(t, []rune{0, 'a', 'b', 'a', 'b', 'b', '#'}, p.Symbols)
}

func TestCompileScenarios(t *testing.T) {
	for _, x := range []struct {
		regex   string
		accepts []string
		rejects []string
	}{
		{"a", []string{"a"}, []string{"", "aa", "b"}},
		{"a|b", []string{"a", "b"}, []string{"", "ab"}},
		{"ab*", []string{"a", "ab", "abbb"}, []string{"", "b", "ba"}},
		{"(a|b)*abb", []string{"abb", "aabb", "babb", "ababb"}, []string{"", "ab", "abbb", "abba"}},
		{"a?", []string{"", "a"}, []string{"aa"}},
		{"a+", []string{"a", "aaa"}, []string{"", "b"}},
		{"ε", []string{""}, []string{"a"}},
		{"a|ε", []string{"", "a"}, []string{"aa"}},
	} {
		t.Run(x.regex, func(t *testing.T) {
			p, err := Compile(x.regex)
			require.NoError(t, err)
			for _, minimized := range []bool{false, true} {
				for _, w := range x.accepts {
					got, err := p.Match(w, minimized)
					require.NoError(t, err)
					require.Truef(t, got, "%q should be accepted (minimized=%v)", w, minimized)
				}
				for _, w := range x.rejects {
					got, err := p.Match(w, minimized)
					require.NoError(t, err)
					require.Falsef(t, got, "%q should be rejected (minimized=%v)", w, minimized)
				}
			}
		})
	}
}

func TestMalformedExpressions(t *testing.T) {
	for _, regex := range []string{"", "a|", "|a", "*", "a||b", "()"} {
		t.Run(fmt.Sprintf("%q", regex), func(t *testing.T) {
			_, err := Compile(regex)
			require.ErrorIs(t, err, ErrMalformedExpression)
		})
	}
}

func TestStateCounts(t *testing.T) {
	// The classic example yields four states both before and after
	// minimization.
	p, err := Compile("(a|b)*abb")
	require.NoError(t, err)
	require.Equal(t, 4, p.DFA.StateCount())
	require.Equal(t, 4, p.Min.StateCount())

	// a*|a builds two accepting states that minimization must merge.
	p, err = Compile("a*|a")
	require.NoError(t, err)
	require.Equal(t, 2, p.DFA.StateCount())
	require.Equal(t, 1, p.Min.StateCount())
	require.LessOrEqual(t, p.Min.StateCount(), p.DFA.StateCount())
}

func TestRejectsOutsideAlphabet(t *testing.T) {
	p, err := Compile("(a|b)*abb")
	require.NoError(t, err)
	got, err := p.Match("abcabb", true)
	require.NoError(t, err)
	require.False(t, got)
}

// enumerate lists every string over the alphabet up to maxLen, shortest first.
func enumerate(alphabet []rune, maxLen int) []string {
	words := []string{""}
	prev := []string{""}
	for i := 0; i < maxLen; i++ {
		var next []string
		for _, w := range prev {
			for _, r := range alphabet {
				next = append(next, w+string(r))
			}
		}
		words = append(words, next...)
		prev = next
	}
	return words
}

// TestLanguageEquivalence checks the constructed and minimized automata
// against the stdlib regexp engine over all short strings.
func TestLanguageEquivalence(t *testing.T) {
	for _, regex := range []string{
		"a",
		"a|b",
		"ab*",
		"a?",
		"a+b?",
		"(a|b)*abb",
		"(a|b)*b(a|b)",
		"a*|a",
		"(ab|b)*",
		"((a|b)(a|b))*",
	} {
		t.Run(regex, func(t *testing.T) {
			p, err := Compile(regex)
			require.NoError(t, err)
			oracle := regexp.MustCompile("^(?:" + regex + ")$")
			for _, w := range enumerate([]rune{'a', 'b'}, 5) {
				want := oracle.MatchString(w)
				got, err := p.Match(w, false)
				require.NoError(t, err)
				require.Equalf(t, want, got, "constructed automaton on %q", w)
				got, err = p.Match(w, true)
				require.NoError(t, err)
				require.Equalf(t, want, got, "minimized automaton on %q", w)
			}
		})
	}
}
