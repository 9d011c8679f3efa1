package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmKeys are the bindings a Confirm reacts to.
type ConfirmKeys struct {
	Yes    key.Binding
	No     key.Binding
	Toggle key.Binding
	Submit key.Binding
	Quit   key.Binding
}

// ConfirmStyles are the styles a Confirm renders with.
type ConfirmStyles struct {
	Title      lipgloss.Style
	Details    lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Help       lipgloss.Style
}

func defaultConfirmStyles() ConfirmStyles {
	return ConfirmStyles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginBottom(1),
		Details:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Selected:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true).Padding(0, 1),
		Unselected: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
		Help:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1),
	}
}

// Confirm is a yes/no prompt. The answer defaults to "no".
type Confirm struct {
	question  string
	details   string
	help      string
	yes       bool
	keys      ConfirmKeys
	styles    ConfirmStyles
	submitted bool
	cancelled bool
}

// NewConfirm creates a prompt asking question, with details shown below it.
func NewConfirm(question, details string, keys ConfirmKeys) Confirm {
	return Confirm{
		question: question,
		details:  details,
		keys:     keys,
		styles:   defaultConfirmStyles(),
	}
}

// WithStyles replaces the default styles.
func (c Confirm) WithStyles(styles ConfirmStyles) Confirm {
	c.styles = styles
	return c
}

// WithHelp sets the help line shown at the bottom. Empty hides it.
func (c Confirm) WithHelp(help string) Confirm {
	c.help = help
	return c
}

// Init implements tea.Model.
func (c Confirm) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (c Confirm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch {
	case key.Matches(keyMsg, c.keys.Yes):
		c.yes = true
		c.submitted = true
		return c, tea.Quit
	case key.Matches(keyMsg, c.keys.No):
		c.yes = false
		c.submitted = true
		return c, tea.Quit
	case key.Matches(keyMsg, c.keys.Toggle):
		c.yes = !c.yes
	case key.Matches(keyMsg, c.keys.Submit):
		c.submitted = true
		return c, tea.Quit
	case key.Matches(keyMsg, c.keys.Quit):
		c.cancelled = true
		return c, tea.Quit
	}
	return c, nil
}

// View implements tea.Model.
func (c Confirm) View() string {
	if c.submitted || c.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(c.styles.Title.Render(c.question))
	b.WriteString("\n")
	if c.details != "" {
		b.WriteString(c.styles.Details.Render(c.details))
		b.WriteString("\n\n")
	}

	yes, no := c.styles.Unselected, c.styles.Selected
	if c.yes {
		yes, no = c.styles.Selected, c.styles.Unselected
	}
	b.WriteString(yes.Render("Yes"))
	b.WriteString(" ")
	b.WriteString(no.Render("No"))
	b.WriteString("\n")

	if c.help != "" {
		b.WriteString(c.styles.Help.Render(c.help))
	}
	return b.String()
}

// Confirmed returns true if the user answered yes.
func (c Confirm) Confirmed() bool {
	return c.submitted && c.yes
}

// Cancelled returns true if the user left the prompt without answering.
func (c Confirm) Cancelled() bool {
	return c.cancelled
}
