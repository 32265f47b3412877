package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tether/internal/client"
	"tether/internal/config"
	"tether/internal/models"
	"tether/internal/session"
	"tether/internal/stream"
	"tether/internal/styles"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// programSurface forwards stream side effects into the bubbletea loop. The
// coordinator runs on a command goroutine; Program.Send keeps all model
// mutation on the update loop.
type programSurface struct {
	p *tea.Program
}

func (s *programSurface) AppendText(text string) {
	s.p.Send(TextDeltaMsg{Text: text})
}

func (s *programSurface) ShowToolCall(call models.PendingToolCall) {
	s.p.Send(ToolCallMsg{Call: call})
}

func (s *programSurface) ShowToolResult(toolUseID, content string) {
	s.p.Send(ToolResultMsg{ToolUseID: toolUseID, Content: content})
}

func (s *programSurface) ShowError(message string) {
	s.p.Send(StreamErrMsg{Message: message})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case spinner.TickMsg:
		m.Spinner, spCmd = m.Spinner.Update(msg)
		if m.Phase == PhaseStreaming {
			m.UpdateViewport()
		}
		return m, spCmd

	case tea.KeyMsg:
		if m.SessionsOpen {
			return m.handleSessionsKey(msg)
		}
		if m.ProvidersOpen {
			return m.handleProvidersKey(msg)
		}
		if m.ConfirmOpen {
			return m.handleConfirmKey(msg)
		}
		if m.NameOpen {
			return m.handleNameKey(msg)
		}
		if m.SettingsOpen {
			return m.handleSettingsKey(msg)
		}
		if m.ShortcutsOpen {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc", "enter", "ctrl+g":
				m.ShortcutsOpen = false
			}
			return m, nil
		}

		if isNewlineShortcut(msg) {
			m.TextInput.InsertString("\n")
			m.updateInputLayout()
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit

		case tea.KeyEsc:
			if m.cancelStream != nil {
				m.cancelStream()
				return m, nil
			}
			return m, tea.Quit

		case tea.KeyCtrlN:
			if m.Phase == PhaseStreaming {
				return m, nil
			}
			m.Manager.StartNew()
			m.resetDisplay()
			return m, nil

		case tea.KeyCtrlH:
			m.SessionsOpen = true
			m.SessionIdx = 0
			m.DeleteArmed = ""
			m.refreshSessions()
			return m, nil

		case tea.KeyCtrlB:
			m.ProvidersOpen = true
			m.ProviderRows = nil
			m.ProvidersErr = nil
			m.ProviderIdx = 0
			return m, m.fetchProvidersCmd()

		case tea.KeyCtrlS:
			m.NameOpen = true
			m.Prompt.Placeholder = "Session name"
			m.Prompt.EchoMode = textinput.EchoNormal
			m.Prompt.SetValue("")
			m.Prompt.Focus()
			return m, nil

		case tea.KeyCtrlO:
			m.SettingsOpen = true
			m.SettingsIdx = 0
			m.SettingsEditing = false
			m.SettingsKeyName = ""
			m.SettingsStatus = ""
			return m, nil

		case tea.KeyCtrlG:
			m.ShortcutsOpen = true
			return m, nil

		case tea.KeyCtrlT:
			if len(m.unconfirmedCards()) > 0 {
				m.ConfirmOpen = true
				m.ConfirmIdx = 0
			}
			return m, nil

		case tea.KeyEnter:
			return m.handleSend()
		}

	case TextDeltaMsg:
		m.appendTurnText(msg.Text)
		m.UpdateViewport()
		return m, nil

	case ToolCallMsg:
		if _, ok := m.cardsByID[msg.Call.ID]; !ok {
			card := &ToolCard{Call: msg.Call, State: CardPending}
			m.cardsByID[msg.Call.ID] = card
			m.Turn = append(m.Turn, &Block{Card: card})
		}
		m.UpdateViewport()
		return m, nil

	case ToolResultMsg:
		if card, ok := m.cardsByID[msg.ToolUseID]; ok {
			card.State = CardDone
			card.Result = msg.Content
		} else {
			// Result for a call this turn never announced; render it alone.
			card := &ToolCard{
				Call:     models.PendingToolCall{ID: msg.ToolUseID},
				State:    CardDone,
				Result:   msg.Content,
				ReadOnly: true,
			}
			m.Turn = append(m.Turn, &Block{Card: card})
		}
		m.UpdateViewport()
		return m, nil

	case StreamErrMsg:
		m.ErrLine = msg.Message
		m.Turn = append(m.Turn, &Block{
			Rendered: styles.ErrorStyle.Render(fmt.Sprintf("Error: %s", msg.Message)),
		})
		m.UpdateViewport()
		return m, nil

	case StreamDoneMsg:
		m.cancelStream = nil
		m.Reason = msg.Reason
		switch {
		case msg.Err != nil && !errors.Is(msg.Err, context.Canceled):
			m.Phase = PhaseError
			m.ErrLine = msg.Err.Error()
		case m.State.Unconfirmed() > 0:
			m.Phase = PhaseWaiting
			m.ConfirmOpen = true
			m.ConfirmIdx = 0
		default:
			m.Phase = PhaseIdle
		}
		m.renderTurnMarkdown()
		m.UpdateViewport()
		return m, nil

	case ProvidersMsg:
		if msg.Err != nil {
			m.ProvidersErr = msg.Err
			return m, nil
		}
		m.ProviderRows = flattenProviders(msg.Providers)
		m.ProviderIdx = 0
		return m, nil

	case ProviderSetMsg:
		if msg.Err != nil {
			m.ProvidersErr = msg.Err
			return m, nil
		}
		m.State.SetProviderModel(msg.Provider, msg.Model)
		if err := m.Store.Set(session.KeyLastProvider, msg.Provider); err != nil {
			slog.Warn("persist provider", "err", err)
		}
		if err := m.Store.Set(session.KeyLastModel, msg.Model); err != nil {
			slog.Warn("persist model", "err", err)
		}
		m.ProvidersOpen = false
		return m, nil

	case ConfirmResultMsg:
		card := m.cardsByID[msg.ID]
		if msg.Err != nil {
			// Daemon rejected the decision; put the controls back.
			if card != nil {
				card.State = CardPending
				card.Note = msg.Err.Error()
			}
			m.ErrLine = msg.Err.Error()
			m.UpdateViewport()
			return m, nil
		}
		if card != nil {
			card.Note = ""
		}
		m.Gate.Resolve(msg.ID)
		// A turn may complete asynchronously relative to confirmation, so
		// this save does not wait on stream completion.
		if err := m.Manager.AutoSave(); err != nil {
			slog.Warn("auto-save after confirmation", "err", err)
		}
		if m.Phase == PhaseWaiting && m.State.Unconfirmed() == 0 {
			m.Phase = PhaseIdle
			m.ConfirmOpen = false
		}
		m.UpdateViewport()
		return m, nil

	case SettingSavedMsg:
		if msg.Err != nil {
			m.SettingsStatus = fmt.Sprintf("%s: %v", msg.Label, msg.Err)
		} else {
			m.SettingsStatus = fmt.Sprintf("%s saved", msg.Label)
		}
		return m, nil

	case ErrMsg:
		m.ErrLine = msg.Error()
		m.UpdateViewport()
		return m, nil

	case tea.WindowSizeMsg:
		m.WindowWidth = msg.Width
		m.WindowHeight = msg.Height

		ModalWidth = msg.Width - 10
		if ModalWidth > 60 {
			ModalWidth = 60
		}
		if ModalWidth < 30 {
			ModalWidth = 30
		}
		styles.ContentWidth = ModalWidth - 6

		chatWidth := msg.Width - 2
		m.Viewport.Width = chatWidth - 2

		m.updateInputLayout()
		glamourStyle := "dark"
		if !lipgloss.HasDarkBackground() {
			glamourStyle = "light"
		}
		m.Renderer, _ = glamour.NewTermRenderer(
			glamour.WithStylePath(glamourStyle),
			glamour.WithWordWrap(chatWidth-6),
		)
		m.UpdateViewport()
		return m, tea.Batch(tiCmd, vpCmd)
	}

	m.TextInput, tiCmd = m.TextInput.Update(msg)
	m.updateInputLayout()

	// Filter terminal background color query responses that leak into input.
	val := m.TextInput.Value()
	if strings.Contains(val, "]11;rgb:") || strings.Contains(val, "1;rgb:") || strings.Contains(val, "[1;1R") {
		m.TextInput.Reset()
	}

	m.Viewport, vpCmd = m.Viewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd)
}

func isNewlineShortcut(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "shift+enter", "shift+return", "ctrl+j", "ctrl+enter", "alt+enter":
		return true
	default:
		return false
	}
}

func (m *Model) handleSend() (tea.Model, tea.Cmd) {
	if m.Phase == PhaseStreaming {
		return m, nil
	}
	if m.Phase == PhaseWaiting {
		m.ErrLine = "resolve pending tool calls before sending"
		m.UpdateViewport()
		return m, nil
	}

	input := strings.TrimSpace(m.TextInput.Value())
	if input == "" {
		return m, nil
	}
	if input == "/clear" || input == "/reset" {
		m.Manager.StartNew()
		m.resetDisplay()
		m.TextInput.Reset()
		m.updateInputLayout()
		return m, nil
	}
	if m.State.Provider == "" || m.State.Model == "" {
		m.ErrLine = "select a provider and model first (Ctrl+B)"
		m.UpdateViewport()
		return m, nil
	}

	m.flattenTurn()
	m.State.Commit(models.ConversationTurn{
		Role:    models.RoleUser,
		Content: []models.ContentSegment{models.TextSegment(input)},
		Created: time.Now().Unix(),
	})
	m.Messages = append(m.Messages, FormatUserMessage(input, m.Viewport.Width, len(m.Messages) == 0))

	m.TextInput.Reset()
	m.updateInputLayout()
	m.Phase = PhaseStreaming
	m.ErrLine = ""
	m.Reason = ""
	m.UpdateViewport()

	return m, tea.Batch(m.startReplyCmd(), m.Spinner.Tick)
}

// startReplyCmd opens the reply stream and runs the coordinator to
// exhaustion on the command goroutine. Side effects arrive back through
// Program.Send; the command's own return value marks the end of the stream.
func (m *Model) startReplyCmd() tea.Cmd {
	history := make([]models.ConversationTurn, 0, len(m.State.History))
	for _, turn := range m.State.History {
		history = append(history, turn.Clone())
	}
	req := client.ReplyRequest{
		Messages:          history,
		SessionID:         m.State.SessionID,
		SessionWorkingDir: m.State.WorkingDir,
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelStream = cancel

	cli := m.Client
	state := m.State
	gate := m.Gate
	save := m.Manager.AutoSave
	prog := m.Program

	return func() tea.Msg {
		defer cancel()

		body, err := cli.Reply(ctx, req)
		if err != nil {
			return StreamDoneMsg{Err: err}
		}
		defer body.Close()

		coord := stream.NewCoordinator(state, gate, &programSurface{p: prog}, save, slog.Default())
		if err := coord.Run(ctx, body); err != nil {
			return StreamDoneMsg{Reason: coord.FinishReason(), Err: err}
		}
		return StreamDoneMsg{Reason: coord.FinishReason()}
	}
}

func (m *Model) fetchProvidersCmd() tea.Cmd {
	cli := m.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), client.DefaultTimeout)
		defer cancel()
		providers, err := cli.Providers(ctx)
		return ProvidersMsg{Providers: providers, Err: err}
	}
}

func (m *Model) setProviderCmd(provider, model string) tea.Cmd {
	cli := m.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), client.DefaultTimeout)
		defer cancel()
		err := cli.SetProvider(ctx, provider, model)
		return ProviderSetMsg{Provider: provider, Model: model, Err: err}
	}
}

func (m *Model) confirmCmd(id, action string) tea.Cmd {
	cli := m.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), client.DefaultTimeout)
		defer cancel()
		err := cli.Confirm(ctx, id, action)
		return ConfirmResultMsg{ID: id, Action: action, Err: err}
	}
}

func (m *Model) upsertConfigCmd(key, value string, isSecret bool) tea.Cmd {
	cli := m.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), client.DefaultTimeout)
		defer cancel()
		err := cli.UpsertConfig(ctx, key, value, isSecret)
		return SettingSavedMsg{Label: key, Err: err}
	}
}

func (m *Model) addExtensionCmd(ext client.ExtensionConfig) tea.Cmd {
	cli := m.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), client.DefaultTimeout)
		defer cancel()
		err := cli.AddExtension(ctx, ext)
		return SettingSavedMsg{Label: "extension " + ext.Name, Err: err}
	}
}

func (m *Model) handleSessionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "ctrl+h":
		m.SessionsOpen = false
		m.SessionsErr = nil
		m.DeleteArmed = ""
		return m, nil
	case "up", "k":
		if len(m.SessionItems) == 0 {
			return m, nil
		}
		m.DeleteArmed = ""
		m.SessionIdx--
		if m.SessionIdx < 0 {
			m.SessionIdx = len(m.SessionItems) - 1
		}
		return m, nil
	case "down", "j":
		if len(m.SessionItems) == 0 {
			return m, nil
		}
		m.DeleteArmed = ""
		m.SessionIdx++
		if m.SessionIdx >= len(m.SessionItems) {
			m.SessionIdx = 0
		}
		return m, nil
	case "enter":
		if len(m.SessionItems) == 0 {
			return m, nil
		}
		item := m.SessionItems[m.SessionIdx]
		loaded, err := m.Manager.Load(item.ID)
		if err != nil {
			// Unknown id fell back to a fresh session already.
			m.SessionsErr = err
			m.resetDisplay()
			m.refreshSessions()
			return m, nil
		}
		m.resetDisplay()
		m.replayHistory(loaded.History)
		m.SessionsOpen = false
		m.UpdateViewport()
		return m, nil
	case "d", "x":
		if len(m.SessionItems) == 0 {
			return m, nil
		}
		item := m.SessionItems[m.SessionIdx]
		active := item.ID == m.State.SessionID && len(m.State.History) > 0
		if active && m.DeleteArmed != item.ID {
			m.DeleteArmed = item.ID
			return m, nil
		}
		m.DeleteArmed = ""
		if err := m.Manager.Delete(item.ID); err != nil {
			m.SessionsErr = err
			return m, nil
		}
		if active {
			m.resetDisplay()
		}
		m.refreshSessions()
		if m.SessionIdx >= len(m.SessionItems) && m.SessionIdx > 0 {
			m.SessionIdx = len(m.SessionItems) - 1
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleProvidersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "ctrl+b":
		m.ProvidersOpen = false
		m.ProvidersErr = nil
		return m, nil
	case "up", "k":
		if len(m.ProviderRows) == 0 {
			return m, nil
		}
		m.ProviderIdx--
		if m.ProviderIdx < 0 {
			m.ProviderIdx = len(m.ProviderRows) - 1
		}
		return m, nil
	case "down", "j":
		if len(m.ProviderRows) == 0 {
			return m, nil
		}
		m.ProviderIdx++
		if m.ProviderIdx >= len(m.ProviderRows) {
			m.ProviderIdx = 0
		}
		return m, nil
	case "enter":
		if len(m.ProviderRows) == 0 {
			return m, nil
		}
		row := m.ProviderRows[m.ProviderIdx]
		return m, m.setProviderCmd(row.Provider.Name, row.Model)
	}
	return m, nil
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cards := m.unconfirmedCards()
	if len(cards) == 0 {
		m.ConfirmOpen = false
		return m, nil
	}
	if m.ConfirmIdx >= len(cards) {
		m.ConfirmIdx = len(cards) - 1
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.ConfirmOpen = false
		return m, nil
	case "up", "k":
		m.ConfirmIdx--
		if m.ConfirmIdx < 0 {
			m.ConfirmIdx = len(cards) - 1
		}
		return m, nil
	case "down", "j":
		m.ConfirmIdx++
		if m.ConfirmIdx >= len(cards) {
			m.ConfirmIdx = 0
		}
		return m, nil
	case "a", "y":
		card := cards[m.ConfirmIdx]
		card.State = CardAllowed
		m.UpdateViewport()
		return m, m.confirmCmd(card.Call.ID, client.ActionAllowOnce)
	case "d", "n":
		card := cards[m.ConfirmIdx]
		card.State = CardDenied
		m.UpdateViewport()
		return m, m.confirmCmd(card.Call.ID, client.ActionDeny)
	}
	return m, nil
}

func (m *Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.NameOpen = false
		m.Prompt.Blur()
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.Prompt.Value())
		m.NameOpen = false
		m.Prompt.Blur()
		if name == "" {
			return m, nil
		}
		if err := m.Manager.SaveAs(name); err != nil {
			m.ErrLine = err.Error()
			m.UpdateViewport()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.Prompt, cmd = m.Prompt.Update(msg)
	return m, cmd
}

func (m *Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.SettingsEditing {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.SettingsEditing = false
			m.SettingsKeyName = ""
			m.Prompt.Blur()
			return m, nil
		case "enter":
			return m.applySetting(strings.TrimSpace(m.Prompt.Value()))
		}
		var cmd tea.Cmd
		m.Prompt, cmd = m.Prompt.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "ctrl+o":
		m.SettingsOpen = false
		return m, nil
	case "up", "k":
		m.SettingsIdx--
		if m.SettingsIdx < 0 {
			m.SettingsIdx = len(SettingsFields) - 1
		}
		return m, nil
	case "down", "j":
		m.SettingsIdx++
		if m.SettingsIdx >= len(SettingsFields) {
			m.SettingsIdx = 0
		}
		return m, nil
	case "enter":
		m.beginSettingEdit()
		return m, nil
	}
	return m, nil
}

func (m *Model) beginSettingEdit() {
	m.SettingsEditing = true
	m.SettingsStatus = ""
	m.Prompt.EchoMode = textinput.EchoNormal
	m.Prompt.SetValue("")

	switch m.SettingsIdx {
	case 0:
		m.Prompt.Placeholder = "http://127.0.0.1:3000"
		m.Prompt.SetValue(m.Client.BaseURL())
	case 1:
		m.Prompt.Placeholder = "secret key (empty clears)"
		m.Prompt.EchoMode = textinput.EchoPassword
	case 2:
		m.Prompt.Placeholder = "working directory"
		m.Prompt.SetValue(m.State.WorkingDir)
	case 3:
		m.Prompt.Placeholder = "config key name"
	case 4:
		m.Prompt.Placeholder = "name command [args...]"
	}
	m.Prompt.Focus()
}

// applySetting commits one edited value. Each field saves independently;
// a failure leaves earlier saves in place.
func (m *Model) applySetting(value string) (tea.Model, tea.Cmd) {
	finish := func() {
		m.SettingsEditing = false
		m.Prompt.Blur()
	}

	switch m.SettingsIdx {
	case 0:
		finish()
		if value == "" {
			return m, nil
		}
		if err := m.Store.Set(session.KeyBaseURL, value); err != nil {
			m.SettingsStatus = err.Error()
			return m, nil
		}
		m.Client = client.New(value, m.Secret).WithLogger(slog.Default())
		m.SettingsStatus = "daemon URL saved"
		return m, nil

	case 1:
		finish()
		if value == "" {
			switch err := config.DeleteSecretKey(); {
			case errors.Is(err, config.ErrNoSecret):
				m.SettingsStatus = "no secret key stored"
			case err != nil:
				m.SettingsStatus = err.Error()
			default:
				m.Secret = ""
				m.Client = client.New(m.Client.BaseURL(), "").WithLogger(slog.Default())
				m.SettingsStatus = "secret key cleared"
			}
			return m, nil
		}
		if err := config.SetSecretKey(value); err != nil {
			m.SettingsStatus = err.Error()
			return m, nil
		}
		m.Secret = value
		m.Client = client.New(m.Client.BaseURL(), value).WithLogger(slog.Default())
		m.SettingsStatus = "secret key saved"
		return m, nil

	case 2:
		finish()
		if value != "" {
			m.State.WorkingDir = value
			m.SettingsStatus = "working directory saved"
		}
		return m, nil

	case 3:
		if m.SettingsKeyName == "" {
			if value == "" {
				finish()
				return m, nil
			}
			// Second step: prompt for the value of the named key.
			m.SettingsKeyName = value
			m.Prompt.Placeholder = "value for " + value
			m.Prompt.EchoMode = textinput.EchoPassword
			m.Prompt.SetValue("")
			return m, nil
		}
		key := m.SettingsKeyName
		m.SettingsKeyName = ""
		finish()
		if value == "" {
			return m, nil
		}
		return m, m.upsertConfigCmd(key, value, true)

	case 4:
		finish()
		fields := strings.Fields(value)
		if len(fields) < 2 {
			m.SettingsStatus = "expected: name command [args...]"
			return m, nil
		}
		ext := client.ExtensionConfig{
			Type: "stdio",
			Name: fields[0],
			Cmd:  fields[1],
			Args: fields[2:],
		}
		return m, m.addExtensionCmd(ext)
	}

	finish()
	return m, nil
}

func (m *Model) refreshSessions() {
	m.SessionsErr = nil
	items, err := m.Manager.List()
	if err != nil {
		m.SessionsErr = err
		m.SessionItems = nil
		return
	}
	m.SessionItems = items
}

// resetDisplay clears the transcript back to the welcome screen. Session
// state itself is the manager's business.
func (m *Model) resetDisplay() {
	m.Messages = []string{}
	m.Turn = nil
	m.cardsByID = map[string]*ToolCard{}
	m.Phase = PhaseIdle
	m.ErrLine = ""
	m.Reason = ""
	m.ConfirmOpen = false
	m.Viewport.GotoTop()
	m.UpdateViewport()
}

func (m *Model) updateInputLayout() {
	if m.WindowWidth == 0 || m.WindowHeight == 0 {
		return
	}

	inputWidth := m.WindowWidth - 6
	if inputWidth < 20 {
		inputWidth = 20
	}
	contentWidth := inputWidth - 2
	if contentWidth < 1 {
		contentWidth = 1
	}

	lineCount := WrappedLineCount(m.TextInput.Value(), contentWidth)
	if lineCount < 1 {
		lineCount = 1
	}
	if lineCount > MaxInputHeight {
		lineCount = MaxInputHeight
	}

	m.TextInput.MaxHeight = MaxInputHeight
	m.TextInput.SetWidth(inputWidth)
	m.TextInput.SetHeight(lineCount)

	inputBoxHeight := m.TextInput.Height() + 2
	reserved := inputBoxHeight + 5
	viewportHeight := m.WindowHeight - reserved
	if viewportHeight < 5 {
		viewportHeight = 5
	}
	m.Viewport.Height = viewportHeight
}
