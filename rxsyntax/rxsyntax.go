// Package rxsyntax parses the restricted regex concrete syntax spec.md §6
// defines into a rx.Regex. It is deliberately not built on regexp/syntax:
// this language is its own thing — adjacency means concatenation, there is
// no alternation operator, and `{...}` is a reserved, unimplemented
// metacharacter that must be reported as a parse error rather than panicking
// or silently falling through to a different engine's semantics.
package rxsyntax

import (
	"fmt"

	"github.com/coregx/brzlex/rx"
)

// ParseError reports a malformed pattern, with the rune index (not byte
// offset — the parser walks patterns rune-at-a-time, like the grammar it
// implements) at which the problem was found.
type ParseError struct {
	Message string
	Index   int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("regex syntax error at %d: %s", e.Index, e.Message)
}

// Parse converts a pattern string in the spec.md §6 concrete syntax into a
// rx.Regex.
//
// Metacharacters are `[ ] ( ) * + . ! \`; everything else is a literal.
// Adjacent elements concatenate; there is no surface alternation operator
// (use a character class, or build an Alt programmatically). `{...}` is
// reserved and always reported as an error.
func Parse(pattern string) (rx.Regex, error) {
	p := &parser{runes: []rune(pattern)}
	expr, err := p.parseSequence()
	if err != nil {
		return rx.Regex{}, err
	}
	if p.peek() != nil {
		return rx.Regex{}, p.errorf("unexpected %q", *p.peek())
	}
	return expr, nil
}

type parser struct {
	runes []rune
	index int
}

// parseSequence parses a maximal run of adjacent elements, concatenating
// them left to right. It stops at end of input or at a ')' belonging to an
// enclosing group.
func (p *parser) parseSequence() (rx.Regex, error) {
	expr, err := p.parseOne()
	if err != nil {
		return rx.Regex{}, err
	}
	for {
		c := p.peek()
		if c == nil || *c == ')' {
			return expr, nil
		}
		next, err := p.parseOne()
		if err != nil {
			return rx.Regex{}, err
		}
		expr = rx.Concat(expr, next)
	}
}

// parseOne parses a single element plus an optional postfix quantifier.
func (p *parser) parseOne() (rx.Regex, error) {
	expr, err := p.parseElement()
	if err != nil {
		return rx.Regex{}, err
	}
	return p.parsePostfix(expr)
}

func (p *parser) parseElement() (rx.Regex, error) {
	c, err := p.next()
	if err != nil {
		return rx.Regex{}, err
	}
	switch c {
	case '[':
		return p.parseCharClass()
	case '(':
		inner, err := p.parseSequence()
		if err != nil {
			return rx.Regex{}, err
		}
		if err := p.expect(')'); err != nil {
			return rx.Regex{}, err
		}
		return inner, nil
	case '!':
		inner, err := p.parseElement()
		if err != nil {
			return rx.Regex{}, err
		}
		return rx.Not(inner), nil
	case '.':
		return rx.Sigma(), nil
	case '\\':
		ec, err := p.next()
		if err != nil {
			return rx.Regex{}, err
		}
		return rx.Symbol(escapeChar(ec)), nil
	case '{':
		return rx.Regex{}, p.errorf("'{...}' repetition is reserved and not implemented")
	case ']', ')', '*', '+':
		return rx.Regex{}, p.errorf("unexpected %q", c)
	default:
		return rx.Symbol(c), nil
	}
}

func (p *parser) parseCharClass() (rx.Regex, error) {
	inverted := p.consumeIf('^')

	var pairs [][2]rune

	for {
		start, err := p.nextEscaped()
		if err != nil {
			return rx.Regex{}, err
		}
		end := start
		if p.consumeIf('-') {
			end, err = p.nextEscaped()
			if err != nil {
				return rx.Regex{}, err
			}
		}
		pairs = append(pairs, [2]rune{start, end})

		c := p.peek()
		if c != nil && *c == ']' {
			break
		}
	}

	if err := p.expect(']'); err != nil {
		return rx.Regex{}, err
	}

	var class rx.Regex
	for i, pair := range pairs {
		r := rx.SymbolRange(pair[0], pair[1])
		if i == 0 {
			class = r
		} else {
			class = rx.Alt(class, r)
		}
	}

	if inverted {
		class = rx.Not(class)
	}
	return class, nil
}

func (p *parser) parsePostfix(expr rx.Regex) (rx.Regex, error) {
	c := p.peek()
	if c == nil {
		return expr, nil
	}
	switch *c {
	case '*':
		p.index++
		return rx.Star(expr), nil
	case '+':
		p.index++
		return rx.Plus(expr), nil
	case '{':
		return rx.Regex{}, p.errorf("'{...}' repetition is reserved and not implemented")
	default:
		return expr, nil
	}
}

func escapeChar(c rune) rune {
	switch c {
	case 'n':
		return '\n'
	default:
		return c
	}
}

func (p *parser) nextEscaped() (rune, error) {
	c, err := p.next()
	if err != nil {
		return 0, err
	}
	if c == '\\' {
		ec, err := p.next()
		if err != nil {
			return 0, err
		}
		return escapeChar(ec), nil
	}
	return c, nil
}

func (p *parser) peek() *rune {
	if p.index >= len(p.runes) {
		return nil
	}
	return &p.runes[p.index]
}

func (p *parser) consumeIf(c rune) bool {
	if peeked := p.peek(); peeked != nil && *peeked == c {
		p.index++
		return true
	}
	return false
}

func (p *parser) next() (rune, error) {
	if p.index >= len(p.runes) {
		return 0, p.errorf("unexpected end of pattern")
	}
	c := p.runes[p.index]
	p.index++
	return c, nil
}

func (p *parser) expect(c rune) error {
	got, err := p.next()
	if err != nil {
		return err
	}
	if got != c {
		return p.errorf("expected %q, got %q", c, got)
	}
	return nil
}

func (p *parser) errorf(format string, args ...any) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...), Index: p.index}
}
