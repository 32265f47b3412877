package models

import "encoding/json"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Content segment types as they appear on the wire.
const (
	SegmentText       = "text"
	SegmentToolUse    = "tool_use"
	SegmentToolResult = "tool_result"
)

// ContentSegment is one entry in a turn's content. The Type field selects
// which of the remaining fields are meaningful: Text for "text", ID/Name/Input
// for "tool_use", ToolUseID/Content for "tool_result".
type ContentSegment struct {
	Type      string          `json:"type"`
	Text      string          `json:"text,omitempty"`
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Input     json.RawMessage `json:"input,omitempty"`
	ToolUseID string          `json:"tool_use_id,omitempty"`
	Content   string          `json:"content,omitempty"`
}

func TextSegment(text string) ContentSegment {
	return ContentSegment{Type: SegmentText, Text: text}
}

func ToolUseSegment(id, name string, input json.RawMessage) ContentSegment {
	return ContentSegment{Type: SegmentToolUse, ID: id, Name: name, Input: input}
}

func ToolResultSegment(toolUseID, content string) ContentSegment {
	return ContentSegment{Type: SegmentToolResult, ToolUseID: toolUseID, Content: content}
}

// ConversationTurn is one message attributed to a single role. Turns are
// immutable once committed to history; only the in-progress assistant turn
// is appended to while a reply streams.
type ConversationTurn struct {
	Role    string           `json:"role"`
	Content []ContentSegment `json:"content"`
	Created int64            `json:"created"`
}

// Clone returns a deep copy of the turn.
func (t ConversationTurn) Clone() ConversationTurn {
	out := ConversationTurn{Role: t.Role, Created: t.Created}
	if t.Content != nil {
		out.Content = make([]ContentSegment, len(t.Content))
		for i, seg := range t.Content {
			out.Content[i] = seg
			if seg.Input != nil {
				out.Content[i].Input = append(json.RawMessage(nil), seg.Input...)
			}
		}
	}
	return out
}

// TextContent concatenates the turn's text segments in append order.
func (t ConversationTurn) TextContent() string {
	var s string
	for _, seg := range t.Content {
		if seg.Type == SegmentText {
			s += seg.Text
		}
	}
	return s
}

// PendingToolCall is a tool invocation awaiting a user allow/deny decision
// or an asynchronous result from the daemon.
type PendingToolCall struct {
	ID        string
	Name      string
	Input     json.RawMessage
	Confirmed bool
}

// Session is a persisted conversation snapshot keyed by a time-based id.
type Session struct {
	ID        string             `json:"id"`
	Name      string             `json:"name,omitempty"`
	Timestamp int64              `json:"timestamp"`
	History   []ConversationTurn `json:"history"`
	Provider  string             `json:"provider"`
	Model     string             `json:"model"`
}

// Clone returns a deep copy of the session.
func (s Session) Clone() Session {
	out := s
	if s.History != nil {
		out.History = make([]ConversationTurn, len(s.History))
		for i, turn := range s.History {
			out.History[i] = turn.Clone()
		}
	}
	return out
}

// Provider describes an LLM provider as reported by the daemon.
type Provider struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name,omitempty"`
	Models      []string `json:"models,omitempty"`
	Configured  bool     `json:"configured,omitempty"`
}
