package exec

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"redfa/parser"
	"redfa/writer"
)

type Params struct {
	Regex                 string
	Inputs                []string
	CustomPrefix          string
	DescOutputFilename    string
	MatcherOutputFilename string
	DfaDotOutputFilename  string
	MinDotOutputFilename  string
	Interactive           bool
	Direct                bool
	Stdin                 io.Reader
	Stdout                io.Writer
	Stderr                io.Writer
}

func ParseParams(name string, args ...string) (*Params, error) {
	f := flag.NewFlagSet(name, flag.ExitOnError)
	p := &Params{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	f.StringVar(&p.CustomPrefix, "p", "", `name prefix to use in generated code`)
	f.StringVar(&p.MatcherOutputFilename, "o", "", `generated Go matcher output file`)
	f.StringVar(&p.DescOutputFilename, "csv", "", `write the automaton description (CSV transitions)`)
	f.StringVar(&p.DfaDotOutputFilename, "dfadot", "", `show constructed DFA graph in DOT format`)
	f.StringVar(&p.MinDotOutputFilename, "mindot", "", `show minimized DFA graph in DOT format`)
	f.BoolVar(&p.Interactive, "i", false, `read candidate strings from stdin`)
	f.BoolVar(&p.Direct, "direct", false, `match with the unminimized automaton`)

	// Ignore errors; CommandLine is set for ExitOnError.
	_ = f.Parse(args)

	if f.NArg() == 0 {
		return nil, fmt.Errorf("missing regular expression argument")
	}
	p.Regex = f.Arg(0)
	p.Inputs = f.Args()[1:]
	return p, nil
}

func Execute(name string, args ...string) error {
	p, err := ParseParams(name, args...)
	if err != nil {
		return fmt.Errorf("parse-params: %w", err)
	}
	return ExecuteWithParams(p)
}

func ExecuteWithParams(p *Params) error {
	program, err := parser.Compile(p.Regex)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	if err = writeWithWriter(p.DfaDotOutputFilename, program.WriteDFADotGraph); err != nil {
		return err
	}
	if err = writeWithWriter(p.MinDotOutputFilename, program.WriteMinDFADotGraph); err != nil {
		return err
	}
	if err = p.writeDescription(program); err != nil {
		return err
	}
	if err = p.writeMatcher(program); err != nil {
		return err
	}

	for _, input := range p.Inputs {
		if err = p.report(program, input); err != nil {
			return err
		}
	}
	if p.Interactive {
		return p.matchLoop(program)
	}
	return nil
}

func (p *Params) report(program *parser.Program, input string) error {
	accepted, err := program.Match(input, !p.Direct)
	if err != nil {
		return fmt.Errorf("match: %w", err)
	}
	if accepted {
		_, err = fmt.Fprintf(p.Stdout, "%q: accepted\n", input)
	} else {
		_, err = fmt.Fprintf(p.Stdout, "%q: rejected\n", input)
	}
	return err
}

func (p *Params) matchLoop(program *parser.Program) error {
	sc := bufio.NewScanner(p.Stdin)
	for sc.Scan() {
		if err := p.report(program, sc.Text()); err != nil {
			return err
		}
	}
	return sc.Err()
}

func (p *Params) writeDescription(program *parser.Program) error {
	if p.DescOutputFilename == "" {
		return nil
	}
	a, err := program.Automaton(!p.Direct)
	if err != nil {
		return fmt.Errorf("describe: %w", err)
	}
	return writeWithWriter(p.DescOutputFilename, func(out io.Writer) error {
		return writer.WriteDescription(out, a)
	})
}

func (p *Params) writeMatcher(program *parser.Program) error {
	if p.MatcherOutputFilename == "" {
		return nil
	}
	a, err := program.Automaton(!p.Direct)
	if err != nil {
		return fmt.Errorf("matcher: %w", err)
	}
	b := &writer.MatcherBuilder{Prefix: p.CustomPrefix}
	code, err := b.DumpFormattedMatcher(a, program.Regex)
	if err != nil {
		return fmt.Errorf("dump matcher: %w", err)
	}
	if err := os.WriteFile(p.MatcherOutputFilename, code, 0666); err != nil {
		return fmt.Errorf("write matcher: %w", err)
	}
	return nil
}

func closeFile(f *os.File) {
	_ = f.Close()
}

func writeWithWriter(filepath string, writer func(io.Writer) error) error {
	if filepath == "" {
		return nil
	}
	f, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("write graph: %w", err)
	}
	defer closeFile(f)
	return writer(f)
}
