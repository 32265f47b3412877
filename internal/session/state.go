package session

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"tether/internal/models"

	"github.com/google/uuid"
)

// Status is the turn-level readiness of the conversation.
type Status int

const (
	StatusIdle Status = iota
	StatusStreaming
	// StatusWaitingConfirmation persists after stream end until every pending
	// tool call in the active turn has been confirmed.
	StatusWaitingConfirmation
)

const sessionIDPrefix = "tether-"

// NewSessionID returns a fresh time-based session identifier. The uuid
// suffix keeps concurrent clients from colliding on the same millisecond.
func NewSessionID() string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("%s%d-%s", sessionIDPrefix, time.Now().UnixMilli(), suffix)
}

// State owns the mutable conversation for one active session. It is passed
// by reference to the stream coordinator and the confirmation gate; nothing
// here is package-level.
type State struct {
	SessionID  string
	WorkingDir string
	Provider   string
	Model      string
	History    []models.ConversationTurn
	Pending    map[string]*models.PendingToolCall
	Status     Status

	// mu guards History, Pending and Status. The stream coordinator writes
	// them from the reply command goroutine while the update loop resolves
	// confirmations and snapshots the session.
	mu sync.Mutex
}

func NewState(workingDir string) *State {
	return &State{
		SessionID:  NewSessionID(),
		WorkingDir: workingDir,
		Pending:    map[string]*models.PendingToolCall{},
	}
}

// Reset clears history and pending calls and assigns the given session id.
// Pending calls from the previous turn are abandoned, not cancelled.
func (s *State) Reset(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SessionID = id
	s.History = nil
	s.Pending = map[string]*models.PendingToolCall{}
	s.Status = StatusIdle
}

// Restore replaces the active conversation with a stored snapshot.
func (s *State) Restore(id string, history []models.ConversationTurn, provider, model string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SessionID = id
	s.History = history
	s.Provider = provider
	s.Model = model
	s.Pending = map[string]*models.PendingToolCall{}
	s.Status = StatusIdle
}

// SetProviderModel records the active provider and model.
func (s *State) SetProviderModel(provider, model string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Provider = provider
	s.Model = model
}

// BeginTurn marks the start of a reply stream. Pending calls from the
// previous turn are abandoned, not cancelled.
func (s *State) BeginTurn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Pending = map[string]*models.PendingToolCall{}
	s.Status = StatusStreaming
}

// Settle moves the state out of streaming: waiting while unresolved tool
// calls remain, idle otherwise.
func (s *State) Settle() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unconfirmed() > 0 {
		s.Status = StatusWaitingConfirmation
	} else {
		s.Status = StatusIdle
	}
	return s.Status
}

// Commit appends a completed turn to history.
func (s *State) Commit(turn models.ConversationTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.History = append(s.History, turn.Clone())
}

// RegisterPending records a tool call awaiting confirmation. Re-registering
// an id returns the existing entry unchanged.
func (s *State) RegisterPending(id, name string, input json.RawMessage) models.PendingToolCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	if call, ok := s.Pending[id]; ok {
		return *call
	}
	call := &models.PendingToolCall{ID: id, Name: name, Input: input}
	s.Pending[id] = call
	return *call
}

// ResolvePending marks the call confirmed. It reports whether this
// resolution changed anything: false for an unknown id (a stale turn's
// result) or one already confirmed.
func (s *State) ResolvePending(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	call, ok := s.Pending[id]
	if !ok || call.Confirmed {
		return false
	}
	call.Confirmed = true
	return true
}

// PendingCall returns a copy of a tracked call.
func (s *State) PendingCall(id string) (models.PendingToolCall, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	call, ok := s.Pending[id]
	if !ok {
		return models.PendingToolCall{}, false
	}
	return *call, true
}

// Unconfirmed counts pending tool calls still awaiting resolution.
func (s *State) Unconfirmed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unconfirmed()
}

func (s *State) unconfirmed() int {
	n := 0
	for _, call := range s.Pending {
		if !call.Confirmed {
			n++
		}
	}
	return n
}

// Snapshot returns a deep-copied persistable view of the state.
func (s *State) Snapshot() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.Session{
		ID:        s.SessionID,
		Timestamp: time.Now().UnixMilli(),
		History:   models.Session{History: s.History}.Clone().History,
		Provider:  s.Provider,
		Model:     s.Model,
	}
}
