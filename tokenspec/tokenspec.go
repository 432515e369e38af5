// Package tokenspec reads a token specification file: a prioritized,
// line-oriented list of "NAME : PATTERN" declarations (spec.md §6).
package tokenspec

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/coregx/brzlex/rx"
	"github.com/coregx/brzlex/rxsyntax"
)

// Token is one declared pattern: a name and its compiled regex.
type Token struct {
	Name    string
	Pattern rx.Regex
}

// SpecError reports a malformed line in a token specification, carrying the
// 1-based line number the problem was found on. I/O errors from ReadFile and
// Read are returned as they are, not wrapped in a SpecError.
type SpecError struct {
	Line    int
	Message string
	Cause   error
}

func (e *SpecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("token spec line %d: %s: %v", e.Line, e.Message, e.Cause)
	}
	return fmt.Sprintf("token spec line %d: %s", e.Line, e.Message)
}

func (e *SpecError) Unwrap() error {
	return e.Cause
}

// ReadFile reads and parses the token specification at path.
func ReadFile(path string) ([]Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses a token specification from r.
//
// Lines whose first non-whitespace character is '#' are comments. Blank
// lines are ignored. Every other line must match "NAME : PATTERN"; NAME is
// trimmed, PATTERN is everything after the first ':' trimmed. Declaration
// order is priority, highest first.
func Read(r io.Reader) ([]Token, error) {
	var tokens []Token
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if strings.HasPrefix(text, "#") {
			continue
		}

		idx := strings.Index(text, ":")
		if idx < 0 {
			return nil, &SpecError{Line: line, Message: "missing ':' separating name from pattern"}
		}

		name := strings.TrimSpace(text[:idx])
		patternText := strings.TrimSpace(text[idx+1:])

		pattern, err := rxsyntax.Parse(patternText)
		if err != nil {
			return nil, &SpecError{Line: line, Message: "invalid pattern", Cause: err}
		}

		tokens = append(tokens, Token{Name: name, Pattern: pattern})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}
