package template

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/vvka-141/pathkit/internal/files/entity"
	"github.com/vvka-141/pathkit/pkg/pathkit"
)

// Subject is the file a template is evaluated against. *entity.File
// implements it.
type Subject interface {
	Path() string
	Name() string
	Extension() string
	Timestamp(kind pathkit.TimestampKind) (time.Time, error)
}

// Evaluate resolves the template for subject. ancestors is the chain of
// folder names between the collapse root and the subject's original parent,
// outermost first, captured before anything moved. Evaluation never touches
// the filesystem except to read timestamps.
func (t *Template) Evaluate(subject Subject, ancestors []string) (string, error) {
	var b strings.Builder

	for _, tok := range t.tokens {
		switch tok := tok.(type) {
		case Literal:
			b.WriteString(tok.Text)
		case BaseName:
			b.WriteString(subject.Name())
		case Extension:
			b.WriteString(subject.Extension())
		case CollapsedAncestors:
			b.WriteString(strings.Join(ancestors, tok.Separator))
		case Timestamp:
			s, err := evaluateTimestamp(subject, tok)
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		default:
			return "", fmt.Errorf("unsupported token %T", tok)
		}
	}

	name := b.String()
	if err := entity.ValidateName(name); err != nil {
		return "", &pathkit.PathError{Op: "evaluate", Path: subject.Path(), Destination: name, Err: err}
	}
	return name, nil
}

func evaluateTimestamp(subject Subject, tok Timestamp) (string, error) {
	ts, err := subject.Timestamp(tok.Kind)
	if err != nil {
		var tsErr *pathkit.TimestampError
		if errors.As(err, &tsErr) {
			return "", err
		}
		return "", &pathkit.TimestampError{Path: subject.Path(), Kind: tok.Kind, Err: err}
	}

	s, err := FormatTimestamp(ts, tok.Format)
	if err != nil {
		return "", &pathkit.TimestampError{Path: subject.Path(), Kind: tok.Kind, Format: tok.Format, Err: err}
	}
	return s, nil
}

// FormatTimestamp formats t with a template timestamp format: the format is
// passed to strftime with a leading percent sign.
func FormatTimestamp(t time.Time, format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: empty format", pathkit.ErrInvalidTimestampFormat)
	}
	s, err := strftime.Format("%"+format, t)
	if err != nil {
		return "", fmt.Errorf("%w: %v", pathkit.ErrInvalidTimestampFormat, err)
	}
	return s, nil
}
