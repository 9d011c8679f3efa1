package template

import (
	"fmt"
	"strings"

	"github.com/vvka-141/pathkit/pkg/pathkit"
)

// Parser turns template strings into Templates. It is stateless apart from
// its configuration and safe for concurrent use.
type Parser struct {
	separator string
}

// NewParser creates a parser whose bare %C directive joins ancestors with
// defaultSeparator.
func NewParser(defaultSeparator string) *Parser {
	return &Parser{separator: defaultSeparator}
}

// Parse parses s with the default separator.
func Parse(s string) (*Template, error) {
	return NewParser(pathkit.DefaultSeparator).Parse(s)
}

// CheckSeparator rejects default separators that a %C[...] directive cannot
// spell, so every parsed template renders back to an equivalent source.
func CheckSeparator(sep string) error {
	if strings.Contains(sep, "]") {
		return fmt.Errorf("%w: separator %q must not contain ']'", pathkit.ErrInvalidConfig, sep)
	}
	return nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) *Template {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Parse scans s left to right. Offsets in errors are byte offsets of the
// offending %.
func (p *Parser) Parse(s string) (*Template, error) {
	if err := CheckSeparator(p.separator); err != nil {
		return nil, err
	}
	var tokens []Token
	var literal strings.Builder

	flush := func() {
		if literal.Len() > 0 {
			tokens = append(tokens, Literal{Text: literal.String()})
			literal.Reset()
		}
	}
	fail := func(offset int, err error) (*Template, error) {
		return nil, &pathkit.ParseError{Template: s, Offset: offset, Err: err}
	}

	i := 0
	for i < len(s) {
		if s[i] != '%' {
			literal.WriteByte(s[i])
			i++
			continue
		}
		if i+1 >= len(s) {
			return fail(i, pathkit.ErrInvalidDirective)
		}

		switch s[i+1] {
		case '%':
			literal.WriteByte('%')
			i += 2

		case 'B':
			flush()
			tokens = append(tokens, BaseName{})
			i += 2

		case 'E':
			flush()
			tokens = append(tokens, Extension{})
			i += 2

		case 'C':
			flush()
			if i+2 < len(s) && s[i+2] == '[' {
				end := strings.IndexByte(s[i+3:], ']')
				if end < 0 {
					return fail(i, pathkit.ErrUnterminatedCollapsedToken)
				}
				tokens = append(tokens, CollapsedAncestors{Separator: s[i+3 : i+3+end]})
				i += 3 + end + 1
			} else {
				tokens = append(tokens, CollapsedAncestors{Separator: p.separator})
				i += 2
			}

		case 'T':
			if i+2 >= len(s) {
				return fail(i, pathkit.ErrInvalidDirective)
			}
			kind, ok := pathkit.TimestampKindFromLetter(s[i+2])
			if !ok {
				return fail(i, pathkit.ErrInvalidDirective)
			}
			flush()
			start := i + 3
			end := nextDirective(s, start)
			tokens = append(tokens, Timestamp{Kind: kind, Format: s[start:end]})
			i = end

		default:
			return fail(i, pathkit.ErrInvalidDirective)
		}
	}
	flush()

	return &Template{source: s, tokens: tokens}, nil
}

// nextDirective returns the offset of the first recognized directive at or
// after from, or len(s).
func nextDirective(s string, from int) int {
	for j := from; j < len(s)-1; j++ {
		if s[j] == '%' && isDirective(s[j+1]) {
			return j
		}
	}
	return len(s)
}

func isDirective(c byte) bool {
	switch c {
	case '%', 'B', 'E', 'C', 'T':
		return true
	}
	return false
}
