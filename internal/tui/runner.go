package tui

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/pathkit/internal/tui/components"
)

// RunConfirm shows a yes/no prompt on the terminal and returns the answer.
// A cancelled prompt counts as "no".
func RunConfirm(ctx context.Context, question, details string) (bool, error) {
	km := DefaultKeyMap()
	model := components.NewConfirm(question, details, components.ConfirmKeys{
		Yes:    km.Yes,
		No:     km.No,
		Toggle: km.Toggle,
		Submit: km.Submit,
		Quit:   km.Quit,
	}).WithStyles(components.ConfirmStyles{
		Title:      TitleStyle,
		Details:    MoveStyle,
		Selected:   SelectedStyle,
		Unselected: UnselectedStyle,
		Help:       HelpStyle,
	}).WithHelp(km.HelpText())

	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		return false, fmt.Errorf("confirmation prompt: %w", err)
	}

	answer := final.(components.Confirm)
	return answer.Confirmed(), nil
}
