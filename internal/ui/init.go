package ui

import (
	"tether/internal/client"
	"tether/internal/config"
	"tether/internal/session"
	"tether/internal/stream"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Deps carries everything the program needs; main wires it together.
type Deps struct {
	Client  *client.Client
	Store   *session.Store
	Manager *session.Manager
	State   *session.State
	Gate    *stream.Gate
	Cfg     config.Config
	Secret  string
}

func InitialModel(deps Deps) Model {
	ti := textarea.New()
	ti.Placeholder = "Type a message..."
	ti.Prompt = "❯ "
	ti.ShowLineNumbers = false
	ti.CharLimit = 0
	ti.MaxHeight = MaxInputHeight
	ti.SetHeight(2)
	ti.SetWidth(80)
	ti.FocusedStyle.Prompt = lipgloss.NewStyle().Foreground(lipgloss.Color("#B39DDB")).Bold(true)
	ti.BlurredStyle.Prompt = lipgloss.NewStyle().Foreground(lipgloss.Color("#B39DDB")).Bold(true)
	ti.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(lipgloss.Color("#545454"))
	ti.BlurredStyle.Placeholder = lipgloss.NewStyle().Foreground(lipgloss.Color("#545454"))
	ti.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ti.BlurredStyle.CursorLine = lipgloss.NewStyle()
	ti.Focus()

	prompt := textinput.New()
	prompt.Prompt = "❯ "
	prompt.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#B39DDB"))

	vp := viewport.New(60, 15)

	return Model{
		TextInput: ti,
		Prompt:    prompt,
		Viewport:  vp,
		Spinner:   sp,
		Client:    deps.Client,
		Store:     deps.Store,
		Manager:   deps.Manager,
		State:     deps.State,
		Gate:      deps.Gate,
		Cfg:       deps.Cfg,
		Secret:    deps.Secret,
		Messages:  []string{},
		cardsByID: map[string]*ToolCard{},
		Phase:     PhaseIdle,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.TextInput.Cursor.BlinkCmd(),
		m.Spinner.Tick,
	)
}

func NewProgram(deps Deps) *tea.Program {
	m := InitialModel(deps)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	m.Program = p
	return p
}
