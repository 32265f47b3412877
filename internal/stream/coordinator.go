package stream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"tether/internal/models"
	"tether/internal/session"
)

// Surface is the rendering contract the coordinator drives. Side effects are
// issued 1:1 with event data, in arrival order.
type Surface interface {
	AppendText(text string)
	ShowToolCall(call models.PendingToolCall)
	ShowToolResult(toolUseID, content string)
	ShowError(message string)
}

// Coordinator consumes one reply stream and applies it to the session state:
// it assembles the in-progress assistant turn, drives render side effects,
// and registers/reconciles pending tool calls through the gate.
type Coordinator struct {
	state   *session.State
	gate    *Gate
	surface Surface
	save    func() error
	log     *slog.Logger

	buffer   models.ConversationTurn
	finished bool
	reason   string
}

// NewCoordinator wires a coordinator to the given state. save is the
// auto-save hook invoked after a completed turn is committed; it may be nil.
func NewCoordinator(state *session.State, gate *Gate, surface Surface, save func() error, log *slog.Logger) *Coordinator {
	if log == nil {
		log = slog.Default()
	}
	return &Coordinator{state: state, gate: gate, surface: surface, save: save, log: log}
}

// Run reads the reply body to exhaustion, decoding and applying frames as
// they complete. Iteration ends only on end-of-stream; Error and Finish
// events do not terminate it early.
func (c *Coordinator) Run(ctx context.Context, body io.Reader) error {
	c.buffer = models.ConversationTurn{Role: models.RoleAssistant, Created: time.Now().Unix()}
	c.finished = false
	c.reason = ""
	// A new turn abandons the previous turn's pending calls.
	c.state.BeginTurn()

	var dec FrameDecoder
	buf := make([]byte, 4096)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := body.Read(buf)
		if n > 0 {
			for _, frame := range dec.Feed(buf[:n]) {
				c.handleFrame(frame)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read reply stream: %w", err)
		}
	}

	if rest := bytes.TrimSpace(dec.Rest()); len(rest) > 0 {
		c.log.Warn("reply stream ended mid-frame", "bytes", len(rest))
	}
	return c.finish()
}

func (c *Coordinator) handleFrame(frame []byte) {
	ev, err := DecodeEvent(frame)
	if errors.Is(err, ErrNoDataPrefix) {
		c.log.Debug("ignoring unmarked frame", "frame", string(frame))
		return
	}
	if err != nil {
		c.log.Warn("skipping malformed frame", "err", err)
		return
	}
	c.apply(ev)
}

func (c *Coordinator) apply(ev Event) {
	switch ev.Type {
	case EventMessage:
		if ev.Message == nil {
			c.log.Warn("message event without payload")
			return
		}
		for _, seg := range ev.Message.Content {
			c.appendSegment(seg)
		}
	case EventError:
		c.surface.ShowError(ev.Error)
	case EventFinish:
		c.finished = true
		c.reason = ev.Reason
	default:
		c.log.Warn("unknown event type", "type", ev.Type)
	}
}

// appendSegment extends the in-progress buffer. Segments are only ever
// appended; nothing already rendered is replaced or reordered.
func (c *Coordinator) appendSegment(seg models.ContentSegment) {
	c.buffer.Content = append(c.buffer.Content, seg)

	switch seg.Type {
	case models.SegmentText:
		c.surface.AppendText(seg.Text)
	case models.SegmentToolUse:
		c.surface.ShowToolCall(c.gate.Register(seg.ID, seg.Name, seg.Input))
	case models.SegmentToolResult:
		// A result for an id the gate never saw (stale turn) still renders.
		c.gate.Resolve(seg.ToolUseID)
		c.surface.ShowToolResult(seg.ToolUseID, seg.Content)
	default:
		c.log.Warn("unknown content segment type", "type", seg.Type)
	}
}

// finish commits the assembled turn when the stream declared completion and
// produced content, then settles the terminal status: idle, or waiting for
// confirmation while unresolved tool calls remain.
func (c *Coordinator) finish() error {
	var saveErr error
	if c.finished && len(c.buffer.Content) > 0 {
		c.state.Commit(c.buffer)
		if c.save != nil {
			saveErr = c.save()
		}
	}

	c.state.Settle()

	if saveErr != nil {
		return fmt.Errorf("auto-save: %w", saveErr)
	}
	return nil
}

// FinishReason reports the reason carried by the Finish event, if any.
func (c *Coordinator) FinishReason() string {
	return c.reason
}

// Turn returns the assembled assistant turn.
func (c *Coordinator) Turn() models.ConversationTurn {
	return c.buffer
}
