package stream

import (
	"encoding/json"

	"tether/internal/models"
	"tether/internal/session"
)

// Gate tracks tool calls awaiting a user allow/deny decision or a result
// arriving on the stream. Resolutions may land in any order and may race a
// user decision; confirming is idempotent either way. The coordinator
// registers calls from its command goroutine while the update loop resolves
// them, so the gate returns copies and leaves locking to the state.
type Gate struct {
	state *session.State
}

func NewGate(state *session.State) *Gate {
	return &Gate{state: state}
}

// Register records a tool call as pending. Re-registering an id returns the
// existing entry unchanged.
func (g *Gate) Register(id, name string, input json.RawMessage) models.PendingToolCall {
	return g.state.RegisterPending(id, name, input)
}

// Resolve marks the call confirmed. It reports whether this resolution
// changed anything: false for an unknown id (a stale turn's result) or one
// already confirmed.
func (g *Gate) Resolve(id string) bool {
	return g.state.ResolvePending(id)
}

// Pending looks up a tracked call by id.
func (g *Gate) Pending(id string) (models.PendingToolCall, bool) {
	return g.state.PendingCall(id)
}

// AllConfirmed reports whether no tracked call is still waiting.
func (g *Gate) AllConfirmed() bool {
	return g.state.Unconfirmed() == 0
}
