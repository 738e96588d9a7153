package parser

import (
	"fmt"

	"redfa/graph"
)

// Syntax tree node kinds.
const (
	KLeaf = iota
	KConcat
	KAlternate
	KStar
	KPlus
	KOptional
)

// Node is one syntax-tree node. Unary operators keep their child in Left.
// A leaf with Pos == 0 is the empty-string marker; every other leaf owns a
// unique position. The three attributes are computed once, bottom-up, and
// never mutated afterwards.
type Node struct {
	Kind  int
	Left  *Node
	Right *Node
	Sym   rune
	Pos   int

	Nullable bool
	First    graph.PosSet
	Last     graph.PosSet
}

type treeBuilder struct {
	symbols []rune // position -> symbol; index 0 unused
	follow  []graph.PosSet
}

func (t *treeBuilder) posCount() int {
	return len(t.symbols) - 1
}

// build consumes a postfix token sequence with an explicit node stack.
// Exactly one node must remain at the end; anything else means the original
// expression was malformed.
func (t *treeBuilder) build(postfix []rune) (*Node, error) {
	t.symbols = []rune{0}
	var stack []*Node
	for _, r := range postfix {
		switch {
		case isUnaryOp(r):
			if len(stack) < 1 {
				return nil, fmt.Errorf("%q: %w", string(postfix), ErrMalformedExpression)
			}
			n := &Node{Kind: unaryKind(r), Sym: r, Left: stack[len(stack)-1]}
			stack[len(stack)-1] = n
		case isBinaryOp(r):
			if len(stack) < 2 {
				return nil, fmt.Errorf("%q: %w", string(postfix), ErrMalformedExpression)
			}
			n := &Node{Kind: binaryKind(r), Sym: r}
			n.Right = stack[len(stack)-1]
			n.Left = stack[len(stack)-2]
			stack = stack[:len(stack)-1]
			stack[len(stack)-1] = n
		default:
			n := &Node{Kind: KLeaf, Sym: r}
			if r != Epsilon {
				n.Pos = len(t.symbols)
				t.symbols = append(t.symbols, r)
			}
			stack = append(stack, n)
		}
	}
	if len(stack) != 1 {
		return nil, fmt.Errorf("%q: %w", string(postfix), ErrMalformedExpression)
	}
	return stack[0], nil
}

func unaryKind(r rune) int {
	switch r {
	case '*':
		return KStar
	case '+':
		return KPlus
	}
	return KOptional
}

func binaryKind(r rune) int {
	if r == '|' {
		return KAlternate
	}
	return KConcat
}

// computeAttrs fills nullable, firstpos and lastpos in a single post-order
// pass. Every rule is a pure function of the children's attributes.
func (t *treeBuilder) computeAttrs(n *Node) {
	if n == nil {
		return
	}
	t.computeAttrs(n.Left)
	t.computeAttrs(n.Right)

	switch n.Kind {
	case KLeaf:
		n.First = graph.NewPosSet(t.posCount())
		n.Last = graph.NewPosSet(t.posCount())
		if n.Pos == 0 {
			n.Nullable = true
		} else {
			n.First.Add(n.Pos)
			n.Last.Add(n.Pos)
		}
	case KAlternate:
		n.Nullable = n.Left.Nullable || n.Right.Nullable
		n.First = n.Left.First.Union(n.Right.First)
		n.Last = n.Left.Last.Union(n.Right.Last)
	case KConcat:
		n.Nullable = n.Left.Nullable && n.Right.Nullable
		if n.Left.Nullable {
			n.First = n.Left.First.Union(n.Right.First)
		} else {
			n.First = n.Left.First
		}
		if n.Right.Nullable {
			n.Last = n.Left.Last.Union(n.Right.Last)
		} else {
			n.Last = n.Right.Last
		}
	case KStar, KOptional:
		n.Nullable = true
		n.First = n.Left.First
		n.Last = n.Left.Last
	case KPlus:
		n.Nullable = n.Left.Nullable
		n.First = n.Left.First
		n.Last = n.Left.Last
	}
}

// fillFollow accumulates the followpos table. Only concatenation and the
// repetition operators contribute; accumulation is union-only, so any
// traversal order yields the same table.
func (t *treeBuilder) fillFollow(n *Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case KConcat:
		for _, p := range n.Left.Last.Positions() {
			t.follow[p].UnionWith(n.Right.First)
		}
	case KStar, KPlus:
		for _, p := range n.Last.Positions() {
			t.follow[p].UnionWith(n.First)
		}
	}
	t.fillFollow(n.Left)
	t.fillFollow(n.Right)
}

func (t *treeBuilder) initFollow() {
	t.follow = make([]graph.PosSet, t.posCount()+1)
	for p := 1; p <= t.posCount(); p++ {
		t.follow[p] = graph.NewPosSet(t.posCount())
	}
}
