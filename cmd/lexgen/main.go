// Command lexgen compiles a token specification file into a table-driven C
// lexer: "<basename>.h" and "<basename>.c" (spec.md §6).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/coregx/brzlex/cgen"
	"github.com/coregx/brzlex/dfa"
	"github.com/coregx/brzlex/tokenspec"
	"github.com/coregx/brzlex/vector"
)

func main() {
	verbose := flag.Bool("v", false, "log a one-line summary of the compiled DFA")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <spec-file> <output-basename>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	specPath := flag.Arg(0)
	outBase := flag.Arg(1)

	if err := run(specPath, outBase, *verbose); err != nil {
		log.Println("lexgen:", err)
		os.Exit(1)
	}
}

func run(specPath, outBase string, verbose bool) error {
	tokens, err := tokenspec.ReadFile(specPath)
	if err != nil {
		return fmt.Errorf("reading token spec: %w", err)
	}
	if len(tokens) == 0 {
		return fmt.Errorf("token spec %q declares no patterns", specPath)
	}

	entries := make([]vector.Entry, len(tokens))
	for i, t := range tokens {
		entries[i] = vector.Entry{Name: t.Name, Regex: t.Pattern}
	}
	seed := vector.New(entries)

	d, err := dfa.Compile(seed)
	if err != nil {
		return fmt.Errorf("compiling DFA: %w", err)
	}

	if verbose {
		log.Printf("lexgen: compiled %d states, %d accepting, error_state=%v",
			d.NumStates, len(d.Accepting), errorStateLabel(d))
	}

	dir := filepath.Dir(outBase)
	base := filepath.Base(outBase)
	if err := cgen.Write(dir, base, d); err != nil {
		return fmt.Errorf("emitting C source: %w", err)
	}

	return nil
}

func errorStateLabel(d *dfa.DFA) string {
	if !d.HasErrorState {
		return "none (language covers Σ*)"
	}
	return fmt.Sprintf("%d", d.ErrorState)
}
