package session

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"tether/internal/models"

	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *State) {
	t.Helper()
	store, err := OpenStoreAt(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	state := NewState(t.TempDir())
	return NewManager(store, state), state
}

func sampleHistory() []models.ConversationTurn {
	return []models.ConversationTurn{
		{
			Role:    models.RoleUser,
			Content: []models.ContentSegment{models.TextSegment("run ls for me")},
			Created: 100,
		},
		{
			Role: models.RoleAssistant,
			Content: []models.ContentSegment{
				models.TextSegment("Sure."),
				models.ToolUseSegment("call-1", "shell", json.RawMessage(`{"cmd":"ls"}`)),
				models.ToolResultSegment("call-1", "main.go"),
			},
			Created: 101,
		},
	}
}

func TestManager_SaveLoadRoundTrip(t *testing.T) {
	m, state := newTestManager(t)
	state.History = sampleHistory()
	state.Provider = "anthropic"
	state.Model = "claude-sonnet-4"
	id := state.SessionID

	require.NoError(t, m.AutoSave())

	// Mutating the live state must not affect the stored snapshot.
	state.History[0].Content[0].Text = "mutated"

	loaded, err := m.Load(id)
	require.NoError(t, err)
	require.Equal(t, id, loaded.ID)
	require.Equal(t, "anthropic", loaded.Provider)
	require.Equal(t, "claude-sonnet-4", loaded.Model)

	want := sampleHistory()
	require.Equal(t, want, loaded.History)
	require.Equal(t, want, state.History, "load must replace active history with the snapshot")
}

func TestManager_AutoSaveEmptyHistoryIsNoop(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.AutoSave())

	sessions, err := m.List()
	require.NoError(t, err)
	require.Empty(t, sessions)
	require.Empty(t, m.Selected)
}

func TestManager_AutoSavePreservesName(t *testing.T) {
	m, state := newTestManager(t)
	state.History = sampleHistory()

	require.NoError(t, m.SaveAs("my review session"))
	require.NoError(t, m.AutoSave())

	sessions, err := m.List()
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Equal(t, "my review session", sessions[0].Name)
}

func TestManager_AutoSaveSelectsOnlyWhenUnselected(t *testing.T) {
	m, state := newTestManager(t)
	state.History = sampleHistory()

	m.Selected = "some-other-session"
	require.NoError(t, m.AutoSave())
	require.Equal(t, "some-other-session", m.Selected)

	m.Selected = ""
	require.NoError(t, m.AutoSave())
	require.Equal(t, state.SessionID, m.Selected)
}

func TestManager_SaveAsRequiresName(t *testing.T) {
	m, state := newTestManager(t)
	state.History = sampleHistory()

	require.Error(t, m.SaveAs(""))
}

func TestManager_LoadUnknownFallsBackToNewSession(t *testing.T) {
	m, state := newTestManager(t)
	state.History = sampleHistory()
	oldID := state.SessionID

	_, err := m.Load("tether-0-missing")
	require.ErrorIs(t, err, ErrUnknownSession)
	require.Empty(t, state.History)
	require.NotEqual(t, oldID, state.SessionID)
}

func TestManager_DeleteActiveStartsNew(t *testing.T) {
	m, state := newTestManager(t)
	state.History = sampleHistory()
	id := state.SessionID

	require.NoError(t, m.AutoSave())
	require.NoError(t, m.Delete(id))

	sessions, err := m.List()
	require.NoError(t, err)
	require.Empty(t, sessions)
	require.NotEqual(t, id, state.SessionID)
	require.Empty(t, state.History)
	require.Empty(t, m.Selected)
}

func TestManager_DeleteUnknown(t *testing.T) {
	m, _ := newTestManager(t)
	require.ErrorIs(t, m.Delete("nope"), ErrUnknownSession)
}

func TestManager_ListMostRecentFirst(t *testing.T) {
	m, state := newTestManager(t)

	state.History = sampleHistory()
	first := state.SessionID
	require.NoError(t, m.AutoSave())

	time.Sleep(2 * time.Millisecond)
	m.StartNew()
	state.History = sampleHistory()
	second := state.SessionID
	require.NoError(t, m.AutoSave())

	sessions, err := m.List()
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	require.Equal(t, second, sessions[0].ID)
	require.Equal(t, first, sessions[1].ID)
}

func TestNewSessionID_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewSessionID()
		require.False(t, seen[id], "duplicate session id %s", id)
		seen[id] = true
	}
}

func TestState_ResetClearsPending(t *testing.T) {
	state := NewState(t.TempDir())
	state.Pending["call-1"] = &models.PendingToolCall{ID: "call-1"}
	state.History = sampleHistory()
	state.Status = StatusWaitingConfirmation

	state.Reset(NewSessionID())

	require.Empty(t, state.Pending)
	require.Empty(t, state.History)
	require.Equal(t, StatusIdle, state.Status)
}
