package ui

import (
	"fmt"
	"strings"
	"time"

	"tether/internal/models"
	"tether/internal/styles"

	"github.com/mattn/go-runewidth"
)

// appendTurnText grows the last text block, or opens one after a card.
func (m *Model) appendTurnText(text string) {
	if text == "" {
		return
	}
	if n := len(m.Turn); n > 0 && m.Turn[n-1].Card == nil && m.Turn[n-1].Rendered == "" {
		m.Turn[n-1].Text += text
		return
	}
	m.Turn = append(m.Turn, &Block{Text: text})
}

// renderTurnMarkdown runs glamour over the turn's raw text blocks once the
// stream has settled. Streaming shows raw text; this upgrades it in place.
func (m *Model) renderTurnMarkdown() {
	if m.Renderer == nil {
		return
	}
	for _, block := range m.Turn {
		if block.Card != nil || block.Rendered != "" || block.Text == "" {
			continue
		}
		rendered, err := m.Renderer.Render(block.Text)
		if err != nil {
			continue
		}
		block.Rendered = strings.TrimSpace(rendered)
	}
}

// flattenTurn freezes the active turn into the committed transcript before
// the next user message starts a new one.
func (m *Model) flattenTurn() {
	if len(m.Turn) == 0 {
		return
	}
	m.renderTurnMarkdown()
	if turn := m.renderActiveTurn(); turn != "" {
		m.Messages = append(m.Messages, turn)
	}
	m.Turn = nil
	m.cardsByID = map[string]*ToolCard{}
}

// unconfirmedCards lists the live cards still awaiting an allow/deny, in
// arrival order.
func (m *Model) unconfirmedCards() []*ToolCard {
	var cards []*ToolCard
	for _, block := range m.Turn {
		if block.Card != nil && block.Card.State == CardPending && !block.Card.ReadOnly {
			cards = append(cards, block.Card)
		}
	}
	return cards
}

// replayHistory rebuilds the transcript from a loaded session. Tool cards
// replay read-only: a stored turn's confirmations are already settled.
func (m *Model) replayHistory(history []models.ConversationTurn) {
	resolved := map[string]string{}
	for _, turn := range history {
		for _, seg := range turn.Content {
			if seg.Type == models.SegmentToolResult {
				resolved[seg.ToolUseID] = seg.Content
			}
		}
	}

	for _, turn := range history {
		switch turn.Role {
		case models.RoleUser:
			m.Messages = append(m.Messages, FormatUserMessage(turn.TextContent(), m.Viewport.Width, len(m.Messages) == 0))
		case models.RoleAssistant:
			parts := []string{styles.AgentLabelStyle.Render("AGENT")}
			for _, seg := range turn.Content {
				switch seg.Type {
				case models.SegmentText:
					display := seg.Text
					if m.Renderer != nil {
						if rendered, err := m.Renderer.Render(seg.Text); err == nil {
							display = strings.TrimSpace(rendered)
						}
					}
					parts = append(parts, styles.AgentMsgStyle.Render(display))
				case models.SegmentToolUse:
					card := &ToolCard{
						Call:     models.PendingToolCall{ID: seg.ID, Name: seg.Name, Input: seg.Input},
						State:    CardPending,
						ReadOnly: true,
					}
					if result, ok := resolved[seg.ID]; ok {
						card.State = CardDone
						card.Result = result
					}
					parts = append(parts, FormatCard(card))
				}
			}
			m.Messages = append(m.Messages, strings.Join(parts, "\n"))
		}
	}
}

func flattenProviders(providers []models.Provider) []ProviderRow {
	rows := []ProviderRow{}
	for _, p := range providers {
		if len(p.Models) == 0 {
			rows = append(rows, ProviderRow{Provider: p, Model: ""})
			continue
		}
		for _, model := range p.Models {
			rows = append(rows, ProviderRow{Provider: p, Model: model})
		}
	}
	return rows
}

func FormatUserMessage(content string, width int, isFirst bool) string {
	label := styles.UserLabelStyle.Render("YOU")
	msg := styles.UserMsgStyle.Width(width - 4).Render(content)
	if isFirst {
		return fmt.Sprintf("\n%s\n%s", label, msg)
	}
	return fmt.Sprintf("%s\n%s", label, msg)
}

// SessionPreview derives a list label from the first user message.
func SessionPreview(s models.Session) string {
	for _, turn := range s.History {
		if turn.Role == models.RoleUser {
			text := strings.Join(strings.Fields(turn.TextContent()), " ")
			if text != "" {
				return text
			}
		}
	}
	return s.ID
}

func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}

func WrappedLineCount(value string, width int) int {
	if width <= 0 {
		return 1
	}
	lines := strings.Split(value, "\n")
	if len(lines) == 0 {
		return 1
	}
	count := 0
	for _, line := range lines {
		w := runewidth.StringWidth(line)
		if w == 0 {
			count++
			continue
		}
		count += (w-1)/width + 1
	}
	return count
}

func RelativeTime(t time.Time) string {
	d := time.Since(t)
	if d < 0 {
		d = -d
	}
	if d < time.Minute {
		return "just now"
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 min ago"
		}
		return fmt.Sprintf("%d mins ago", mins)
	}
	if d < 24*time.Hour {
		hrs := int(d.Hours())
		if hrs == 1 {
			return "1 hr ago"
		}
		return fmt.Sprintf("%d hrs ago", hrs)
	}
	days := int(d.Hours() / 24)
	if days < 14 {
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	}
	weeks := days / 7
	if weeks == 1 {
		return "1 week ago"
	}
	return fmt.Sprintf("%d weeks ago", weeks)
}
