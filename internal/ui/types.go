package ui

import (
	"context"

	"tether/internal/client"
	"tether/internal/config"
	"tether/internal/models"
	"tether/internal/session"
	"tether/internal/stream"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

var ModalWidth = 60

const (
	MaxInputHeight = 6

	// CardInputPreview caps how much of a tool call's input JSON is shown.
	CardInputPreview = 120
	// CardResultPreview caps how much of a tool result is shown inline.
	CardResultPreview = 400
)

// Conversation phases shown in the status line.
const (
	PhaseIdle      = "idle"
	PhaseStreaming = "streaming"
	PhaseWaiting   = "waiting"
	PhaseError     = "error"
)

// Tool card display states.
const (
	CardPending = "pending"
	CardAllowed = "allowed"
	CardDenied  = "denied"
	CardDone    = "done"
)

type ErrMsg error

// Messages forwarded from the streaming goroutine via Program.Send.
type (
	TextDeltaMsg  struct{ Text string }
	ToolCallMsg   struct{ Call models.PendingToolCall }
	ToolResultMsg struct{ ToolUseID, Content string }
	StreamErrMsg  struct{ Message string }
	StreamDoneMsg struct {
		Reason string
		Err    error
	}
)

// Messages from request/response commands.
type (
	ProvidersMsg struct {
		Providers []models.Provider
		Err       error
	}
	ProviderSetMsg struct {
		Provider string
		Model    string
		Err      error
	}
	ConfirmResultMsg struct {
		ID     string
		Action string
		Err    error
	}
	SettingSavedMsg struct {
		Label string
		Err   error
	}
)

// ToolCard is the rendered state of one tool call in the active turn.
type ToolCard struct {
	Call     models.PendingToolCall
	State    string
	Result   string
	Note     string
	ReadOnly bool
}

// Block is one part of the in-progress assistant turn, either accumulated
// text or a tool card. Blocks only grow; earlier blocks are never replaced.
type Block struct {
	Text     string
	Rendered string
	Card     *ToolCard
}

// ProviderRow is one selectable model in the provider selector.
type ProviderRow struct {
	Provider models.Provider
	Model    string
}

// Settings modal entries, in display order.
var SettingsFields = []string{
	"Daemon URL",
	"Secret key",
	"Working directory",
	"Provider API key",
	"Add extension (stdio)",
}

type Model struct {
	Viewport  viewport.Model
	TextInput textarea.Model
	Prompt    textinput.Model
	Spinner   spinner.Model

	Client  *client.Client
	Store   *session.Store
	Manager *session.Manager
	State   *session.State
	Gate    *stream.Gate
	Cfg     config.Config
	Secret  string

	Renderer *glamour.TermRenderer
	Program  *tea.Program

	// Committed display lines and the live assistant turn.
	Messages  []string
	Turn      []*Block
	cardsByID map[string]*ToolCard

	Phase   string
	Reason  string
	ErrLine string

	WindowWidth  int
	WindowHeight int

	// Session list modal.
	SessionsOpen bool
	SessionItems []models.Session
	SessionIdx   int
	SessionsErr  error
	DeleteArmed  string

	// Provider/model selector modal.
	ProvidersOpen bool
	ProviderRows  []ProviderRow
	ProviderIdx   int
	ProvidersErr  error

	// Tool confirmation modal.
	ConfirmOpen bool
	ConfirmIdx  int

	// Save-as name prompt.
	NameOpen bool

	// Settings modal.
	SettingsOpen    bool
	SettingsIdx     int
	SettingsEditing bool
	SettingsKeyName string
	SettingsStatus  string

	ShortcutsOpen bool

	cancelStream context.CancelFunc
}
