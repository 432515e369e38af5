// Package cgen emits a table-driven C scanner from a compiled dfa.DFA:
// a header declaring the lexer ABI (spec.md §6) and a source file
// implementing it with a two-stage per-character switch (spec.md §4.6).
package cgen

import (
	"embed"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/coregx/brzlex/dfa"
)

//go:embed templates/header.tmpl templates/source.tmpl
var templatesFS embed.FS

var (
	headerTmpl = template.Must(template.ParseFS(templatesFS, "templates/header.tmpl"))
	sourceTmpl = template.Must(template.ParseFS(templatesFS, "templates/source.tmpl"))
)

type cTransition struct {
	Begin int
	End   int
	Next  int
}

type cState struct {
	Num         int
	Transitions []cTransition
}

type cAccept struct {
	State int
	Name  string
}

type headerData struct {
	Guard      string
	TokenTypes []string
}

type sourceData struct {
	BaseName      string
	States        []cState
	Accepting     []cAccept
	HasErrorState bool
	ErrorState    int
	TokenTypes    []string
}

// Write emits "<basename>.h" and "<basename>.c" for d into dir.
func Write(dir, basename string, d *dfa.DFA) error {
	header, err := renderHeader(basename, d)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, basename+".h"), []byte(header), 0o644); err != nil {
		return err
	}

	source, err := renderSource(basename, d)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, basename+".c"), []byte(source), 0o644)
}

func renderHeader(basename string, d *dfa.DFA) (string, error) {
	data := headerData{
		Guard:      strings.ToUpper(sanitize(basename)) + "_H",
		TokenTypes: d.TokenTypes,
	}
	var b strings.Builder
	if err := headerTmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderSource(basename string, d *dfa.DFA) (string, error) {
	states := make([]int, 0, len(d.Transitions))
	for s := range d.Transitions {
		states = append(states, int(s))
	}
	sort.Ints(states)

	cStates := make([]cState, 0, len(states))
	for _, s := range states {
		trs := d.Transitions[dfa.StateID(s)]
		cts := make([]cTransition, 0, len(trs))
		for _, t := range trs {
			for _, r := range t.Class.Ranges() {
				cts = append(cts, cTransition{Begin: int(r.Begin), End: int(r.End), Next: int(t.Target)})
			}
		}
		cStates = append(cStates, cState{Num: s, Transitions: cts})
	}

	acceptStates := make([]int, 0, len(d.Accepting))
	for s := range d.Accepting {
		acceptStates = append(acceptStates, int(s))
	}
	sort.Ints(acceptStates)
	accepts := make([]cAccept, 0, len(acceptStates))
	for _, s := range acceptStates {
		names := d.Accepting[dfa.StateID(s)]
		accepts = append(accepts, cAccept{State: s, Name: names[0]})
	}

	data := sourceData{
		BaseName:      basename,
		States:        cStates,
		Accepting:     accepts,
		HasErrorState: d.HasErrorState,
		ErrorState:    int(d.ErrorState),
		TokenTypes:    d.TokenTypes,
	}

	var b strings.Builder
	if err := sourceTmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
