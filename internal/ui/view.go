package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"tether/internal/styles"

	"github.com/charmbracelet/lipgloss"
)

func GetWelcomeScreen(width, height int) string {
	art := `
 ╭─────────────────────────────────────────────╮
 │                                             │
 │   ▀█▀ █▀▀ ▀█▀ █ █ █▀▀ █▀▄                   │
 │    █  █▀▀  █  █▀█ █▀▀ █▀▄                   │
 │    ▀  ▀▀▀  ▀  ▀ ▀ ▀▀▀ ▀ ▀                   │
 │                                             │
 │   terminal client for your agent daemon     │
 │                                             │
 ╰─────────────────────────────────────────────╯
`
	subtitle := "Enter: send • Ctrl+B: models • Ctrl+H: sessions • Ctrl+G: help"

	styledArt := styles.WelcomeArtStyle.Render(art)
	styledSubtitle := styles.WelcomeSubtitleStyle.Render(subtitle)

	content := lipgloss.JoinVertical(lipgloss.Center, styledArt, "", styledSubtitle)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// FormatCard renders one tool card for the transcript.
func FormatCard(card *ToolCard) string {
	state := card.State
	tag := lipgloss.NewStyle().
		Foreground(styles.CardStateColor(state)).
		Bold(true).
		Render("[" + state + "]")

	var lines []string
	name := card.Call.Name
	if name == "" {
		name = card.Call.ID
	}
	lines = append(lines, fmt.Sprintf("%s %s", styles.ToolNameStyle.Render("⚙ "+name), tag))

	if len(card.Call.Input) > 0 {
		lines = append(lines, styles.ToolInputStyle.Render(TruncateRunes(string(card.Call.Input), CardInputPreview)))
	}
	if card.Result != "" {
		lines = append(lines, styles.ToolResultStyle.Render("└ "+TruncateRunes(strings.TrimSpace(card.Result), CardResultPreview)))
	}
	if card.Note != "" {
		lines = append(lines, styles.ErrorStyle.Render(TruncateRunes(card.Note, CardInputPreview)))
	}
	if state == CardPending && !card.ReadOnly {
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.HintColor).Render("Ctrl+T: allow or deny"))
	}

	return styles.ToolCardStyle.Render(strings.Join(lines, "\n"))
}

// renderActiveTurn composes the in-progress assistant turn from its blocks.
func (m *Model) renderActiveTurn() string {
	if len(m.Turn) == 0 {
		return ""
	}

	parts := []string{styles.AgentLabelStyle.Render("AGENT")}
	for _, block := range m.Turn {
		switch {
		case block.Card != nil:
			parts = append(parts, FormatCard(block.Card))
		case block.Rendered != "":
			parts = append(parts, block.Rendered)
		case block.Text != "":
			parts = append(parts, styles.AgentMsgStyle.Render(block.Text))
		}
	}
	return strings.Join(parts, "\n")
}

func (m *Model) UpdateViewport() {
	if len(m.Messages) == 0 && len(m.Turn) == 0 && m.Phase != PhaseStreaming {
		m.Viewport.SetContent(GetWelcomeScreen(m.Viewport.Width, m.Viewport.Height))
		return
	}

	content := strings.Join(m.Messages, "\n\n")
	if turn := m.renderActiveTurn(); turn != "" {
		if content != "" {
			content += "\n\n"
		}
		content += turn
	}
	if m.Phase == PhaseStreaming {
		loading := fmt.Sprintf("%s Streaming...", m.Spinner.View())
		if content != "" {
			content += "\n\n"
		}
		content += loading
	}

	m.Viewport.SetContent(content)
	m.Viewport.GotoBottom()
}

func (m *Model) RenderStatusBar() string {
	phase := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(styles.StatusColor(m.Phase)).
		Padding(0, 1).
		Render(strings.ToUpper(m.Phase))

	target := m.State.Provider
	if m.State.Model != "" {
		target += "/" + m.State.Model
	}
	if target == "" {
		target = "no provider"
	}
	model := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#B39DDB")).
		Render(TruncateRunes(target, 30))

	wd := m.State.WorkingDir
	if home, err := os.UserHomeDir(); err == nil && strings.HasPrefix(wd, home) {
		wd = "~" + wd[len(home):]
	}
	cwd := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		Render(TruncateRunes(wd, 30))

	sess := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666666")).
		Render(TruncateRunes(m.State.SessionID, 24))

	var right []string
	if m.ErrLine != "" {
		right = append(right, styles.ErrorStyle.Render(TruncateRunes(m.ErrLine, 48)))
	}
	right = append(right, lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")).Render("Help: ^G"))

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, phase, "  ", model, "  ", cwd, "  ", sess)
	rightSide := strings.Join(right, "  ")

	availableWidth := m.WindowWidth - lipgloss.Width(leftSide) - lipgloss.Width(rightSide) - 2
	if availableWidth < 0 {
		availableWidth = 0
	}
	spacer := strings.Repeat(" ", availableWidth)

	bar := lipgloss.JoinHorizontal(lipgloss.Center, leftSide, spacer, rightSide)
	return lipgloss.NewStyle().
		Width(m.WindowWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Current.Border).
		Padding(0, 1).
		Render(bar)
}

func (m *Model) RenderSessionList() string {
	title := styles.ModalTitleStyle.Render(fmt.Sprintf("Sessions (%d)", len(m.SessionItems)))

	var body string
	switch {
	case m.SessionsErr != nil:
		body = styles.ModalItemStyle.Render(styles.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.SessionsErr)))
	case len(m.SessionItems) == 0:
		body = styles.ModalItemStyle.Render(lipgloss.NewStyle().Foreground(styles.HintColor).Render("No saved sessions"))
	default:
		items := make([]string, 0, len(m.SessionItems))
		for i, item := range m.SessionItems {
			cursor := "  "
			if i == m.SessionIdx {
				cursor = "> "
			}
			label := item.Name
			if label == "" {
				label = SessionPreview(item)
			}
			if item.ID == m.State.SessionID {
				label = "● " + label
			}
			timeStr := RelativeTime(time.UnixMilli(item.Timestamp))
			availableWidth := styles.ContentWidth - 2 - len(cursor) - 1 - len(timeStr)
			label = TruncateRunes(label, availableWidth)

			line := fmt.Sprintf("%s%s %s", cursor, label, lipgloss.NewStyle().Foreground(styles.HintColor).Render(timeStr))
			if m.DeleteArmed == item.ID && i == m.SessionIdx {
				line = fmt.Sprintf("%s%s", cursor, styles.ErrorStyle.Render("delete active session? press d again"))
			}
			if i == m.SessionIdx {
				items = append(items, styles.ModalSelectedStyle.Render(line))
			} else {
				items = append(items, styles.ModalItemStyle.Render(line))
			}
		}
		body = lipgloss.JoinVertical(lipgloss.Left, items...)
	}

	hint := lipgloss.NewStyle().
		Foreground(styles.HintColor).
		Width(styles.ContentWidth).
		PaddingTop(1).
		Render("↑/↓: navigate • Enter: load • d: delete • Esc: close")

	return lipgloss.JoinVertical(lipgloss.Left, title, body, hint)
}

func (m *Model) RenderProviderSelector() string {
	title := styles.ModalTitleStyle.Render("Select Provider / Model")

	var body string
	switch {
	case m.ProvidersErr != nil:
		body = styles.ModalItemStyle.Render(styles.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.ProvidersErr)))
	case m.ProviderRows == nil:
		body = styles.ModalItemStyle.Render(lipgloss.NewStyle().Foreground(styles.HintColor).Render("Fetching providers..."))
	case len(m.ProviderRows) == 0:
		body = styles.ModalItemStyle.Render(lipgloss.NewStyle().Foreground(styles.HintColor).Render("No configured providers"))
	default:
		var items []string
		var lastProvider string
		for i, row := range m.ProviderRows {
			if row.Provider.Name != lastProvider {
				if lastProvider != "" {
					items = append(items, "")
				}
				name := row.Provider.DisplayName
				if name == "" {
					name = row.Provider.Name
				}
				if !row.Provider.Configured {
					name += "  (not configured)"
				}
				items = append(items, styles.ModalHeaderStyle.Render(name))
				lastProvider = row.Provider.Name
			}

			display := row.Model
			if m.State.Provider == row.Provider.Name && m.State.Model == row.Model {
				display = "● " + display
			} else {
				display = "  " + display
			}

			if i == m.ProviderIdx {
				items = append(items, styles.ModalSelectedStyle.Render(display))
			} else {
				items = append(items, styles.ModalItemStyle.Render(display))
			}
		}
		body = lipgloss.JoinVertical(lipgloss.Left, items...)
	}

	hint := lipgloss.NewStyle().
		Foreground(styles.HintColor).
		Width(styles.ContentWidth).
		PaddingTop(1).
		Render("↑/↓: navigate • Enter: select • Esc: close")

	return lipgloss.JoinVertical(lipgloss.Left, title, body, hint)
}

func (m *Model) RenderConfirmModal() string {
	title := styles.ModalTitleStyle.Render("Tool Calls Awaiting Confirmation")

	cards := m.unconfirmedCards()
	var body string
	if len(cards) == 0 {
		body = styles.ModalItemStyle.Render(lipgloss.NewStyle().Foreground(styles.HintColor).Render("Nothing pending"))
	} else {
		items := make([]string, 0, len(cards))
		for i, card := range cards {
			cursor := "  "
			if i == m.ConfirmIdx {
				cursor = "> "
			}
			line := fmt.Sprintf("%s%s %s", cursor,
				styles.ToolNameStyle.Render(card.Call.Name),
				styles.ToolInputStyle.Render(TruncateRunes(string(card.Call.Input), styles.ContentWidth-len(card.Call.Name)-8)))
			if i == m.ConfirmIdx {
				items = append(items, styles.ModalSelectedStyle.Render(line))
			} else {
				items = append(items, styles.ModalItemStyle.Render(line))
			}
		}
		body = lipgloss.JoinVertical(lipgloss.Left, items...)
	}

	hint := lipgloss.NewStyle().
		Foreground(styles.HintColor).
		Width(styles.ContentWidth).
		PaddingTop(1).
		Render("a: allow once • d: deny • ↑/↓: navigate • Esc: later")

	return lipgloss.JoinVertical(lipgloss.Left, title, body, hint)
}

func (m *Model) RenderNamePrompt() string {
	title := styles.ModalTitleStyle.Render("Save Session As")
	input := styles.ModalItemStyle.Render(m.Prompt.View())
	hint := lipgloss.NewStyle().
		Foreground(styles.HintColor).
		Width(styles.ContentWidth).
		PaddingTop(1).
		Render("Enter: save • Esc: cancel")
	return lipgloss.JoinVertical(lipgloss.Left, title, input, hint)
}

func (m *Model) RenderSettings() string {
	title := styles.ModalTitleStyle.Render("Settings")

	items := make([]string, 0, len(SettingsFields)+2)
	for i, field := range SettingsFields {
		cursor := "  "
		if i == m.SettingsIdx {
			cursor = "> "
		}
		line := cursor + field
		if i == m.SettingsIdx {
			items = append(items, styles.ModalSelectedStyle.Render(line))
		} else {
			items = append(items, styles.ModalItemStyle.Render(line))
		}
	}

	if m.SettingsEditing {
		items = append(items, "", styles.ModalItemStyle.Render(m.Prompt.View()))
	}
	if m.SettingsStatus != "" {
		items = append(items, "", styles.ModalItemStyle.Render(
			lipgloss.NewStyle().Foreground(styles.HintColor).Render(m.SettingsStatus)))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, items...)
	hint := lipgloss.NewStyle().
		Foreground(styles.HintColor).
		Width(styles.ContentWidth).
		PaddingTop(1).
		Render("Enter: edit • ↑/↓: navigate • Esc: close")

	return lipgloss.JoinVertical(lipgloss.Left, title, body, hint)
}

func (m *Model) RenderShortcuts() string {
	title := styles.ModalTitleStyle.Render("Keyboard Shortcuts")

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Ctrl+C", "Quit"},
		{"Esc", "Cancel stream / quit"},
		{"Ctrl+N", "New session"},
		{"Ctrl+H", "Session list"},
		{"Ctrl+S", "Save session as"},
		{"Ctrl+B", "Provider / model"},
		{"Ctrl+O", "Settings"},
		{"Ctrl+T", "Review tool calls"},
		{"Ctrl+G", "This help"},
	}

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFCC80")).
		Bold(true).
		Width(12)
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#E0E0E0"))

	var items []string
	for _, s := range shortcuts {
		items = append(items, styles.ModalItemStyle.Render(fmt.Sprintf("%s %s", keyStyle.Render(s.key), descStyle.Render(s.desc))))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, items...)
	hint := lipgloss.NewStyle().
		Foreground(styles.HintColor).
		Width(styles.ContentWidth).
		PaddingTop(1).
		Render("Esc/Enter: close")

	return lipgloss.JoinVertical(lipgloss.Left, title, body, hint)
}

func (m *Model) overlay(modal string) string {
	framed := styles.ModalStyle.Width(ModalWidth).Render(modal)
	return lipgloss.Place(
		m.WindowWidth,
		m.WindowHeight,
		lipgloss.Center,
		lipgloss.Center,
		framed,
	)
}

func (m *Model) View() string {
	inputWidth := m.WindowWidth - 4
	inputBox := styles.InputBoxStyle.Width(inputWidth).Render(m.TextInput.View())

	chatContent := lipgloss.JoinVertical(lipgloss.Center,
		styles.TitleStyle.Render("TETHER"),
		"",
		m.Viewport.View(),
		"",
		inputBox,
	)
	chatArea := lipgloss.PlaceHorizontal(m.WindowWidth, lipgloss.Center, chatContent)
	content := lipgloss.JoinVertical(lipgloss.Left, chatArea, m.RenderStatusBar())

	switch {
	case m.SessionsOpen:
		return m.overlay(m.RenderSessionList())
	case m.ProvidersOpen:
		return m.overlay(m.RenderProviderSelector())
	case m.ConfirmOpen:
		return m.overlay(m.RenderConfirmModal())
	case m.NameOpen:
		return m.overlay(m.RenderNamePrompt())
	case m.SettingsOpen:
		return m.overlay(m.RenderSettings())
	case m.ShortcutsOpen:
		return m.overlay(m.RenderShortcuts())
	}

	return content
}
