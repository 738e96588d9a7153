// Package writer renders an automaton for external consumers: a minimal
// textual description with a CSV transition table, and a generated Go
// matcher. The core packages never perform file I/O themselves.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"redfa/graph"
)

// WriteDescription emits the minimal textual description of an automaton:
// a line enumerating all state ids, the initial state, the final state ids,
// and a CSV table of every (source, symbol, destination) transition triple.
func WriteDescription(out io.Writer, a *graph.Automaton) error {
	if a == nil || len(a.Trans) == 0 {
		return graph.ErrUnbuiltAutomaton
	}

	if _, err := fmt.Fprintf(out, "states:\n%s\n\n", joinInts(allStates(a))); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "initial:\n%d\n\n", a.Initial); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "final:\n%s\n\n", joinInts(a.FinalStates())); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, "transitions:"); err != nil {
		return err
	}

	w := csv.NewWriter(out)
	if err := w.Write([]string{"source", "symbol", "destination"}); err != nil {
		return err
	}
	for src := range a.Trans {
		for _, r := range a.Alphabet {
			dst, ok := a.Step(src, r)
			if !ok {
				continue
			}
			record := []string{strconv.Itoa(src), string(r), strconv.Itoa(dst)}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

func allStates(a *graph.Automaton) []int {
	states := make([]int, a.StateCount())
	for i := range states {
		states[i] = i
	}
	return states
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
