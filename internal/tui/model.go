// Package tui renders the portfolio hero in a terminal, typewriter and
// all.
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shreyaw333/portfolio/internal/content"
	"github.com/shreyaw333/portfolio/internal/typewriter"
)

// stateMsg carries a typewriter state into the bubbletea loop.
type stateMsg struct {
	state typewriter.State
}

// closedMsg is sent when the driver's subscription ends.
type closedMsg struct{}

type styles struct {
	greeting lipgloss.Style
	name     lipgloss.Style
	role     lipgloss.Style
	caret    lipgloss.Style
	hint     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		greeting: lipgloss.NewStyle().Foreground(lipgloss.Color("#93c5fd")),
		name:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")),
		role:     lipgloss.NewStyle().Foreground(lipgloss.Color("#3b82f6")),
		caret:    lipgloss.NewStyle().Foreground(lipgloss.Color("#2563eb")).Bold(true),
		hint:     lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")).Italic(true),
	}
}

// Model is the bubbletea model for the preview. It only reads typewriter
// states; the driver is owned by the caller.
type Model struct {
	profile content.Profile
	updates <-chan typewriter.State
	state   typewriter.State
	width   int
	styles  styles
}

// NewModel returns a model that shows profile and follows updates.
func NewModel(profile content.Profile, updates <-chan typewriter.State) Model {
	return Model{
		profile: profile,
		updates: updates,
		state:   typewriter.Initial(profile.Roles),
		styles:  defaultStyles(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return listenForState(m.updates)
}

// listenForState blocks until the driver publishes, then delivers the
// state as a message.
func listenForState(updates <-chan typewriter.State) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		state, ok := <-updates
		if !ok {
			return closedMsg{}
		}
		return stateMsg{state: state}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case stateMsg:
		m.state = msg.state
		return m, listenForState(m.updates)
	case closedMsg:
		return m, tea.Quit
	}
	return m, nil
}

// Text is the typewriter text currently shown.
func (m Model) Text() string {
	return m.state.Text
}

// View implements tea.Model.
func (m Model) View() string {
	lines := []string{
		m.styles.greeting.Render(m.profile.Greeting),
		m.styles.name.Render(m.profile.Name),
		m.styles.role.Render(m.state.Text) + m.styles.caret.Render(typewriter.Caret),
		"",
		m.styles.hint.Render("q to quit"),
	}
	block := strings.Join(lines, "\n")
	if m.width > 0 {
		block = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, block)
	}
	return "\n" + block + "\n"
}
