package writer

import (
	"bufio"
	"bytes"
	"fmt"
	"go/format"

	"golang.org/x/tools/imports"

	"redfa/graph"
)

// MatcherBuilder generates a standalone, table-driven Go matcher for an
// automaton.
type MatcherBuilder struct {
	// Package is the generated package name. Defaults to "main".
	Package string
	// Prefix replaces the default "Match" name prefix in generated
	// identifiers, allowing several matchers in one package.
	Prefix string
}

// DumpFormattedMatcher generates the matcher source and formats it the same
// way generated lexers are: go/format followed by goimports.
func (b *MatcherBuilder) DumpFormattedMatcher(a *graph.Automaton, regex string) ([]byte, error) {
	if a == nil || len(a.Trans) == 0 {
		return nil, graph.ErrUnbuiltAutomaton
	}

	var buf bytes.Buffer
	out := bufio.NewWriter(&buf)
	b.writeMatcher(out, a, regex)
	if err := out.Flush(); err != nil {
		return nil, err
	}
	return formatCode(buf.Bytes())
}

func (b *MatcherBuilder) packageName() string {
	if b.Package != "" {
		return b.Package
	}
	return "main"
}

func (b *MatcherBuilder) funcName() string {
	if b.Prefix != "" {
		return b.Prefix
	}
	return "Match"
}

func (b *MatcherBuilder) writeMatcher(out *bufio.Writer, a *graph.Automaton, regex string) {
	name := b.funcName()
	w := func(f string, args ...any) {
		_, _ = fmt.Fprintf(out, f, args...)
	}

	w("// Code generated by redfa --- DO NOT EDIT.\n")
	w("// Matcher for the regular expression %q.\n\n", regex)
	w("package %s\n\n", b.packageName())

	w("var %sDfa = []struct {\n", name)
	w("\tfinal bool\n")
	w("\tstep  func(rune) int\n")
	w("}{\n")
	for src := range a.Trans {
		w("\t{final: %v, step: func(r rune) int {\n", a.IsFinal(src))
		w("\t\tswitch r {\n")
		for _, r := range a.Alphabet {
			dst, ok := a.Step(src, r)
			if !ok {
				continue
			}
			w("\t\tcase %q:\n\t\t\treturn %d\n", r, dst)
		}
		w("\t\t}\n\t\treturn -1\n\t}},\n")
	}
	w("}\n\n")

	w("func %s(input string) bool {\n", name)
	w("\tst := %d\n", a.Initial)
	w("\tfor _, r := range input {\n")
	w("\t\tst = %sDfa[st].step(r)\n", name)
	w("\t\tif st < 0 {\n\t\t\treturn false\n\t\t}\n")
	w("\t}\n")
	w("\treturn %sDfa[st].final\n", name)
	w("}\n")
}

func formatCode(src []byte) ([]byte, error) {
	src, err := format.Source(src)
	if err != nil {
		return src, err
	}
	return imports.Process("main.go", src, &imports.Options{
		TabWidth:  8,
		TabIndent: true,
		Comments:  true,
		Fragment:  true,
	})
}
