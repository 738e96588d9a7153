package graph

import (
	"slices"
)

// Minimize collapses indistinguishable states of a constructed automaton via
// partition refinement. The seed partition separates final from non-final
// states, so blocks stay homogeneous with respect to finality throughout.
func Minimize(a *Automaton) (*Automaton, error) {
	if a == nil || len(a.Trans) == 0 {
		return nil, ErrUnbuiltAutomaton
	}
	b := minBuilder{a: a}
	b.seed()
	b.refine()
	return b.rebuild(), nil
}

type block struct {
	members map[int]bool
	pending bool
}

type minBuilder struct {
	a     *Automaton
	parts []*block
	work  []*block
}

func (b *minBuilder) seed() {
	final := &block{members: make(map[int]bool)}
	nonFinal := &block{members: make(map[int]bool)}
	for s := range b.a.Trans {
		if b.a.Final[s] {
			final.members[s] = true
		} else {
			nonFinal.members[s] = true
		}
	}
	for _, blk := range []*block{nonFinal, final} {
		if len(blk.members) == 0 {
			continue
		}
		b.parts = append(b.parts, blk)
		b.enqueue(blk)
	}
}

func (b *minBuilder) enqueue(blk *block) {
	blk.pending = true
	b.work = append(b.work, blk)
}

func (b *minBuilder) refine() {
	for len(b.work) > 0 {
		x := b.work[0]
		b.work = b.work[1:]
		x.pending = false

		// x.members stays a valid splitter snapshot even if x itself is
		// split below: splitting allocates fresh blocks.
		for _, r := range b.a.Alphabet {
			pred := b.predecessors(x.members, r)
			if len(pred) > 0 {
				b.splitAll(pred)
			}
		}
	}
}

// predecessors collects the states whose move on r lands inside the target set.
func (b *minBuilder) predecessors(target map[int]bool, r rune) map[int]bool {
	pred := make(map[int]bool)
	for q, row := range b.a.Trans {
		if dst, ok := row[r]; ok && target[dst] {
			pred[q] = true
		}
	}
	return pred
}

// splitAll replaces every block that straddles pred with its two pieces.
// A pending block is replaced in the worklist by both pieces; otherwise only
// the smaller piece is enqueued.
func (b *minBuilder) splitAll(pred map[int]bool) {
	var parts []*block
	for _, blk := range b.parts {
		inter := &block{members: make(map[int]bool)}
		diff := &block{members: make(map[int]bool)}
		for s := range blk.members {
			if pred[s] {
				inter.members[s] = true
			} else {
				diff.members[s] = true
			}
		}
		if len(inter.members) == 0 || len(diff.members) == 0 {
			parts = append(parts, blk)
			continue
		}
		parts = append(parts, inter, diff)

		if blk.pending {
			b.replacePending(blk, inter, diff)
		} else if len(inter.members) <= len(diff.members) {
			b.enqueue(inter)
		} else {
			b.enqueue(diff)
		}
	}
	b.parts = parts
}

func (b *minBuilder) replacePending(old, inter, diff *block) {
	i := slices.Index(b.work, old)
	inter.pending = true
	b.work[i] = inter
	b.enqueue(diff)
}

// rebuild maps every original transition's endpoints through the block
// assignment. Duplicate inserts after the remap are consistent, so a plain
// overwrite is fine. Blocks are numbered by their smallest member for a
// deterministic result.
func (b *minBuilder) rebuild() *Automaton {
	slices.SortFunc(b.parts, func(x, y *block) int {
		return minMember(x) - minMember(y)
	})

	blockOf := make([]int, len(b.a.Trans))
	for i, blk := range b.parts {
		for s := range blk.members {
			blockOf[s] = i
		}
	}

	m := &Automaton{
		Initial:  blockOf[b.a.Initial],
		Final:    make(map[int]bool),
		Trans:    make([]map[rune]int, len(b.parts)),
		Alphabet: slices.Clone(b.a.Alphabet),
	}
	for i := range m.Trans {
		m.Trans[i] = make(map[rune]int)
	}
	for src, row := range b.a.Trans {
		for r, dst := range row {
			m.Trans[blockOf[src]][r] = blockOf[dst]
		}
	}
	for s := range b.a.Final {
		m.Final[blockOf[s]] = true
	}
	return m
}

func minMember(blk *block) int {
	res := -1
	for s := range blk.members {
		if res < 0 || s < res {
			res = s
		}
	}
	return res
}
