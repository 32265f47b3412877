package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"tether/internal/models"
)

// ErrUnknownSession indicates a load or delete referenced a session id that
// is not in the store.
var ErrUnknownSession = errors.New("unknown session")

// Manager owns session persistence: auto-save, named save, load, delete.
// The session map is read-modify-written as one serialized value under
// KeySessions.
type Manager struct {
	store *Store
	state *State

	// mu serializes the read-modify-write of the stored session map. The
	// coordinator's auto-save hook runs on the reply command goroutine while
	// the update loop saves, loads and deletes.
	mu sync.Mutex

	// Selected is the session id highlighted in the session list. Auto-save
	// leaves it alone unless nothing is selected yet.
	Selected string
}

func NewManager(store *Store, state *State) *Manager {
	return &Manager{store: store, state: state}
}

// StartNew abandons the active conversation and assigns a fresh session id.
func (m *Manager) StartNew() {
	m.state.Reset(NewSessionID())
}

// AutoSave upserts a snapshot of the active session. Empty history is a
// no-op. A stored name is preserved across auto-saves.
func (m *Manager) AutoSave() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.state.Snapshot()
	if len(snap.History) == 0 {
		return nil
	}

	sessions, err := m.loadMap()
	if err != nil {
		return err
	}

	if prev, ok := sessions[snap.ID]; ok {
		snap.Name = prev.Name
	}
	sessions[snap.ID] = snap

	if err := m.saveMap(sessions); err != nil {
		return err
	}
	if m.Selected == "" {
		m.Selected = snap.ID
	}
	return nil
}

// SaveAs stores a named snapshot and selects it.
func (m *Manager) SaveAs(name string) error {
	if name == "" {
		return errors.New("session name required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sessions, err := m.loadMap()
	if err != nil {
		return err
	}

	snap := m.state.Snapshot()
	snap.Name = name
	sessions[snap.ID] = snap

	if err := m.saveMap(sessions); err != nil {
		return err
	}
	m.Selected = snap.ID
	return nil
}

// Load replaces the active conversation with the stored snapshot. An unknown
// id falls back to a fresh session and reports ErrUnknownSession; replaying
// the returned history into the display is the caller's job.
func (m *Manager) Load(id string) (models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sessions, err := m.loadMap()
	if err != nil {
		return models.Session{}, err
	}

	stored, ok := sessions[id]
	if !ok {
		m.StartNew()
		return models.Session{}, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}

	loaded := stored.Clone()
	m.state.Restore(loaded.ID, loaded.History, loaded.Provider, loaded.Model)
	m.Selected = loaded.ID
	return loaded, nil
}

// Delete removes a stored session. Deleting the active session starts a new
// one; confirming the delete with the user happens before this call.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sessions, err := m.loadMap()
	if err != nil {
		return err
	}
	if _, ok := sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	delete(sessions, id)

	if err := m.saveMap(sessions); err != nil {
		return err
	}
	if m.Selected == id {
		m.Selected = ""
	}
	if m.state.SessionID == id {
		m.StartNew()
	}
	return nil
}

// List returns stored sessions, most recent first.
func (m *Manager) List() ([]models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sessions, err := m.loadMap()
	if err != nil {
		return nil, err
	}

	out := make([]models.Session, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp > out[j].Timestamp
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *Manager) loadMap() (map[string]models.Session, error) {
	raw, ok, err := m.store.Get(KeySessions)
	if err != nil {
		return nil, fmt.Errorf("read sessions: %w", err)
	}
	sessions := map[string]models.Session{}
	if !ok || raw == "" {
		return sessions, nil
	}
	if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
		return nil, fmt.Errorf("parse sessions: %w", err)
	}
	return sessions, nil
}

func (m *Manager) saveMap(sessions map[string]models.Session) error {
	raw, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("serialize sessions: %w", err)
	}
	return m.store.Set(KeySessions, string(raw))
}
