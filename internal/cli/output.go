package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/vvka-141/pathkit/internal/files/collapse"
	"github.com/vvka-141/pathkit/internal/tui"
)

// printPlan writes the planned changes, styled on interactive terminals.
func printPlan(w io.Writer, plan *collapse.Plan, styled bool) {
	for _, line := range strings.Split(plan.Summary(), "\n") {
		if styled {
			switch {
			case strings.HasPrefix(line, "move"):
				line = tui.MoveStyle.Render(line)
			case strings.HasPrefix(line, "remove"):
				line = tui.RemoveStyle.Render(line)
			}
		}
		fmt.Fprintln(w, line)
	}
}

// printResult writes a one-line outcome of a completed operation.
func printResult(w io.Writer, verb string, result *collapse.Result, styled bool) {
	line := fmt.Sprintf("%s %s: %d file(s) moved", tui.SymbolCheck, verb, len(result.Moved))
	if len(result.Removed) > 0 {
		line += fmt.Sprintf(", %d folder(s) removed", len(result.Removed))
	}
	if styled {
		line = tui.SuccessStyle.Render(line)
	}
	fmt.Fprintln(w, line)
}
