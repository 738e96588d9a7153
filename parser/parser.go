package parser

import (
	"errors"
	"slices"
	"strings"

	"redfa/graph"
)

// Epsilon is the empty-string marker. It is the one leaf symbol that never
// receives a position.
const Epsilon = 'ε'

// concatOp is the explicit concatenation operator inserted by the translator;
// regex syntax has no visible token for it.
const concatOp = '·'

// metaChars are never part of the alphabet.
const metaChars = "()*|+?·#"

var ErrMalformedExpression = errors.New("malformed expression")

// Compile runs the full pipeline on one regular expression: augmentation,
// infix-to-postfix translation, syntax-tree construction, attribute and
// followpos evaluation, direct DFA construction, then minimization.
// Each call builds its own tables, so concurrent compilations never interfere.
func Compile(regex string) (*Program, error) {
	p := &Program{
		Regex:     regex,
		Augmented: "(" + regex + ")" + string(graph.EndMarker),
		Alphabet:  alphabetOf(regex),
	}

	t := treeBuilder{}
	root, err := t.build(infixToPostfix(p.Augmented))
	if err != nil {
		return nil, err
	}
	t.computeAttrs(root)
	t.initFollow()
	t.fillFollow(root)

	p.Tree = root
	p.Symbols = t.symbols
	p.Follow = t.follow

	if p.DFA, err = graph.BuildDfa(p); err != nil {
		return nil, err
	}
	if p.Min, err = graph.Minimize(p.DFA); err != nil {
		return nil, err
	}
	return p, nil
}

// alphabetOf derives the alphabet from the original, unaugmented expression:
// every character that is not a metacharacter or the empty-string marker.
func alphabetOf(regex string) []rune {
	alphabet := make(map[rune]any)
	for _, r := range regex {
		if r != Epsilon && !strings.ContainsRune(metaChars, r) {
			alphabet[r] = nil
		}
	}
	return sortedRunes(alphabet)
}

func sortedRunes(set map[rune]any) []rune {
	runes := make([]rune, 0, len(set))
	for r := range set {
		runes = append(runes, r)
	}
	slices.Sort(runes)
	return runes
}

// infixToPostfix linearizes an augmented expression with the shunting-yard
// algorithm, after making concatenation explicit. It does not validate
// parenthesization; malformed structure surfaces in the tree builder.
func infixToPostfix(regex string) []rune {
	explicit := insertConcat([]rune(regex))

	var output, stack []rune
	for _, r := range explicit {
		switch {
		case !isOperator(r) && r != '(' && r != ')':
			output = append(output, r)
		case r == '(':
			stack = append(stack, r)
		case r == ')':
			for len(stack) > 0 && stack[len(stack)-1] != '(' {
				output = append(output, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1] // Discard the '('.
			}
		default:
			for len(stack) > 0 && stack[len(stack)-1] != '(' &&
				precedence(stack[len(stack)-1]) >= precedence(r) {
				output = append(output, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, r)
		}
	}
	for i := len(stack) - 1; i >= 0; i-- {
		output = append(output, stack[i])
	}
	return output
}

// insertConcat inserts the explicit concatenation operator between adjacent
// characters, except where one of them makes concatenation impossible.
func insertConcat(regex []rune) []rune {
	if len(regex) == 0 {
		return regex
	}
	explicit := make([]rune, 0, 2*len(regex))
	for i := 0; i < len(regex)-1; i++ {
		explicit = append(explicit, regex[i])
		if !strings.ContainsRune("(|", regex[i]) && !strings.ContainsRune(")|*+?", regex[i+1]) {
			explicit = append(explicit, concatOp)
		}
	}
	return append(explicit, regex[len(regex)-1])
}

// Precedence, low to high: alternation < concatenation < the unary postfix
// operators, which share one tier.
func precedence(r rune) int {
	switch r {
	case '|':
		return 1
	case concatOp:
		return 2
	case '*', '+', '?':
		return 3
	}
	return 0
}

func isOperator(r rune) bool {
	return precedence(r) > 0
}

func isUnaryOp(r rune) bool {
	return r == '*' || r == '+' || r == '?'
}

func isBinaryOp(r rune) bool {
	return r == '|' || r == concatOp
}
