package stream

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"tether/internal/models"
)

// Event types carried in reply frames.
const (
	EventMessage = "Message"
	EventError   = "Error"
	EventFinish  = "Finish"
)

// Event is one decoded reply event. Type selects the payload: Message carries
// a turn delta, Error a user-facing message, Finish a completion reason.
type Event struct {
	Type    string                   `json:"type"`
	Message *models.ConversationTurn `json:"message,omitempty"`
	Error   string                   `json:"error,omitempty"`
	Reason  string                   `json:"reason,omitempty"`
}

var dataPrefix = []byte("data:")

// ErrNoDataPrefix marks a frame that does not carry the expected event
// marker. Such frames are logged and dropped, not treated as stream failures.
var ErrNoDataPrefix = errors.New("frame missing data prefix")

// DecodeEvent parses one complete frame into an Event.
func DecodeEvent(frame []byte) (Event, error) {
	frame = bytes.TrimSpace(frame)
	if !bytes.HasPrefix(frame, dataPrefix) {
		return Event{}, ErrNoDataPrefix
	}
	payload := bytes.TrimSpace(frame[len(dataPrefix):])

	var ev Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	return ev, nil
}
