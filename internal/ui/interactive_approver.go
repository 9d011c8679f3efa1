package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vvka-141/pathkit/internal/tui"
	"github.com/vvka-141/pathkit/pkg/pathkit"
)

// InteractiveApprover implements the Approver interface for console-based
// interactive confirmation. It lists the planned changes and asks for a
// yes/no answer, through a terminal prompt when one is available and a
// plain line read otherwise.
type InteractiveApprover struct {
	verbose bool
	input   io.Reader
	output  io.Writer
	// prompt runs the terminal prompt; nil falls back to reading a line
	prompt func(ctx context.Context, question, details string) (bool, error)
}

// NewInteractiveApprover creates a new InteractiveApprover.
func NewInteractiveApprover(verbose bool) pathkit.Approver {
	a := &InteractiveApprover{
		verbose: verbose,
		input:   os.Stdin,
		output:  os.Stderr,
	}
	if tui.IsInteractive() {
		a.prompt = tui.RunConfirm
	}
	return a
}

// RequestApproval shows summary and asks whether to apply it.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, root string, summary string) (bool, error) {
	question := fmt.Sprintf("Apply these changes to %s?", root)

	if a.prompt != nil {
		approved, err := a.prompt(ctx, question, summary)
		if err != nil {
			return false, err
		}
		a.report(approved)
		return approved, nil
	}

	fmt.Fprintf(a.output, "\nPlanned changes in %s:\n%s\n", root, summary)
	fmt.Fprintf(a.output, "\n%s [y/N]: ", question)

	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		input, err := reader.ReadString('\n')
		if err != nil && !(err == io.EOF && input != "") {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		approved := strings.EqualFold(input, "y") || strings.EqualFold(input, "yes")
		a.report(approved)
		return approved, nil
	}
}

func (a *InteractiveApprover) report(approved bool) {
	if approved {
		fmt.Fprintln(a.output, "✓ Confirmed. Applying changes...")
	} else {
		fmt.Fprintln(a.output, "✗ Operation cancelled.")
	}
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ pathkit.Approver = (*InteractiveApprover)(nil)
