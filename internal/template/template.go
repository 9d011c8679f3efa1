package template

import (
	"slices"
	"strings"

	"github.com/vvka-141/pathkit/pkg/pathkit"
)

// Token is one element of a parsed template.
type Token interface {
	// render writes the canonical template spelling of the token
	render(b *strings.Builder)
}

// Literal is text copied verbatim.
type Literal struct {
	Text string
}

// BaseName resolves to the file name without extension.
type BaseName struct{}

// Extension resolves to the file extension including the leading dot.
type Extension struct{}

// CollapsedAncestors resolves to the ancestor chain joined with Separator.
type CollapsedAncestors struct {
	Separator string
}

// Timestamp resolves to a formatted timestamp of the file.
type Timestamp struct {
	Kind   pathkit.TimestampKind
	Format string
}

func (t Literal) render(b *strings.Builder) {
	b.WriteString(strings.ReplaceAll(t.Text, "%", "%%"))
}

func (BaseName) render(b *strings.Builder)  { b.WriteString("%B") }
func (Extension) render(b *strings.Builder) { b.WriteString("%E") }

func (t CollapsedAncestors) render(b *strings.Builder) {
	b.WriteString("%C[")
	b.WriteString(t.Separator)
	b.WriteString("]")
}

func (t Timestamp) render(b *strings.Builder) {
	b.WriteString("%T")
	b.WriteByte(t.Kind.Letter())
	b.WriteString(t.Format)
}

// Template is an immutable, parsed rename template.
type Template struct {
	source string
	tokens []Token
}

// Source returns the text the template was parsed from.
func (t *Template) Source() string { return t.source }

// Tokens returns a copy of the token sequence.
func (t *Template) Tokens() []Token {
	return slices.Clone(t.tokens)
}

// String renders the template in canonical form. Parsing the result yields
// an equivalent template.
func (t *Template) String() string {
	var b strings.Builder
	for _, tok := range t.tokens {
		tok.render(&b)
	}
	return b.String()
}

// UsesAncestors reports whether the template contains a %C directive.
func (t *Template) UsesAncestors() bool {
	for _, tok := range t.tokens {
		if _, ok := tok.(CollapsedAncestors); ok {
			return true
		}
	}
	return false
}

// UsesTimestamps reports whether the template contains a %T directive.
func (t *Template) UsesTimestamps() bool {
	for _, tok := range t.tokens {
		if _, ok := tok.(Timestamp); ok {
			return true
		}
	}
	return false
}
