package stream

import (
	"encoding/json"
	"testing"

	"tether/internal/session"

	"github.com/stretchr/testify/require"
)

func TestGate_ResolveOnce(t *testing.T) {
	state := session.NewState(t.TempDir())
	gate := NewGate(state)

	gate.Register("call-1", "shell", json.RawMessage(`{"cmd":"ls"}`))

	require.True(t, gate.Resolve("call-1"))
	require.False(t, gate.Resolve("call-1"), "second resolution must be a no-op")

	call, ok := gate.Pending("call-1")
	require.True(t, ok)
	require.True(t, call.Confirmed)
}

func TestGate_ResolveUnknownID(t *testing.T) {
	state := session.NewState(t.TempDir())
	gate := NewGate(state)

	require.False(t, gate.Resolve("never-registered"))
	require.Empty(t, state.Pending)
}

func TestGate_RegisterIsIdempotent(t *testing.T) {
	state := session.NewState(t.TempDir())
	gate := NewGate(state)

	gate.Register("call-1", "shell", nil)
	require.True(t, gate.Resolve("call-1"))

	again := gate.Register("call-1", "other-name", nil)
	require.Equal(t, "shell", again.Name)
	require.True(t, again.Confirmed, "re-registering must not reset the entry")
	require.Len(t, state.Pending, 1)
}

func TestGate_AllConfirmed(t *testing.T) {
	state := session.NewState(t.TempDir())
	gate := NewGate(state)
	require.True(t, gate.AllConfirmed())

	gate.Register("a", "shell", nil)
	gate.Register("b", "fetch", nil)
	require.False(t, gate.AllConfirmed())

	// Resolutions may land in any order.
	gate.Resolve("b")
	require.False(t, gate.AllConfirmed())
	gate.Resolve("a")
	require.True(t, gate.AllConfirmed())
}
