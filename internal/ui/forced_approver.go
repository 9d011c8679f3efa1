package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/vvka-141/pathkit/pkg/pathkit"
)

// ForcedApprover implements the Approver interface for forced (non-interactive)
// approval. It prints the planned changes and a short countdown, then
// approves. Used when the --force flag is provided.
type ForcedApprover struct {
	verbose   bool
	output    io.Writer
	sleepFn   func(time.Duration)
	countdown time.Duration
}

// NewForcedApprover creates a new ForcedApprover.
func NewForcedApprover(verbose bool) pathkit.Approver {
	return &ForcedApprover{
		verbose:   verbose,
		output:    os.Stderr,
		sleepFn:   time.Sleep,
		countdown: pathkit.DefaultForceApprovalCountdown,
	}
}

// RequestApproval counts down and approves unless ctx is cancelled first.
func (a *ForcedApprover) RequestApproval(ctx context.Context, root string, summary string) (bool, error) {
	fmt.Fprintf(a.output, "\nChanges to %s:\n", root)
	if a.verbose {
		fmt.Fprintln(a.output, summary)
	} else {
		fmt.Fprintf(a.output, "%d change(s), run with --verbose or --dry-run to list them\n", strings.Count(summary, "\n")+1)
	}

	for i := int(a.countdown.Seconds()); i > 0; i-- {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
			fmt.Fprintf(a.output, "\rApplying in: %d seconds... (Press Ctrl+C to cancel)", i)
			a.sleepFn(time.Second)
		}
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	fmt.Fprintf(a.output, "\r✓ Applying changes...                                        \n")
	return true, nil
}

// Verify ForcedApprover implements the Approver interface at compile time
var _ pathkit.Approver = (*ForcedApprover)(nil)
