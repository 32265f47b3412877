package ui

import (
	"testing"

	"tether/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendTurnText_CoalescesRuns(t *testing.T) {
	m := Model{cardsByID: map[string]*ToolCard{}}

	m.appendTurnText("Hello, ")
	m.appendTurnText("world")
	require.Len(t, m.Turn, 1)
	assert.Equal(t, "Hello, world", m.Turn[0].Text)

	card := &ToolCard{Call: models.PendingToolCall{ID: "call-1", Name: "shell"}, State: CardPending}
	m.Turn = append(m.Turn, &Block{Card: card})

	m.appendTurnText("after")
	require.Len(t, m.Turn, 3)
	assert.Equal(t, "after", m.Turn[2].Text)
}

func TestUnconfirmedCards_SkipsSettledAndReadOnly(t *testing.T) {
	pending := &ToolCard{Call: models.PendingToolCall{ID: "a"}, State: CardPending}
	done := &ToolCard{Call: models.PendingToolCall{ID: "b"}, State: CardDone}
	replayed := &ToolCard{Call: models.PendingToolCall{ID: "c"}, State: CardPending, ReadOnly: true}

	m := Model{Turn: []*Block{
		{Card: pending},
		{Text: "some text"},
		{Card: done},
		{Card: replayed},
	}}

	cards := m.unconfirmedCards()
	require.Len(t, cards, 1)
	assert.Equal(t, "a", cards[0].Call.ID)
}

func TestFlattenProviders(t *testing.T) {
	rows := flattenProviders([]models.Provider{
		{Name: "anthropic", Models: []string{"m1", "m2"}},
		{Name: "bare"},
	})

	require.Len(t, rows, 3)
	assert.Equal(t, "anthropic", rows[0].Provider.Name)
	assert.Equal(t, "m1", rows[0].Model)
	assert.Equal(t, "m2", rows[1].Model)
	assert.Equal(t, "bare", rows[2].Provider.Name)
	assert.Empty(t, rows[2].Model)
}

func TestSessionPreview(t *testing.T) {
	tests := []struct {
		name    string
		session models.Session
		want    string
	}{
		{
			name: "first user text",
			session: models.Session{
				ID: "tether-1-abc",
				History: []models.ConversationTurn{
					{Role: models.RoleAssistant, Content: []models.ContentSegment{models.TextSegment("hi")}},
					{Role: models.RoleUser, Content: []models.ContentSegment{models.TextSegment("  list   my files ")}},
				},
			},
			want: "list my files",
		},
		{
			name:    "empty history falls back to id",
			session: models.Session{ID: "tether-2-def"},
			want:    "tether-2-def",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SessionPreview(tt.session))
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 4, "hel…"},
		{"hello", 1, "…"},
		{"hello", 0, ""},
		{"héllo", 4, "hél…"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TruncateRunes(tt.in, tt.max))
	}
}

func TestWrappedLineCount(t *testing.T) {
	tests := []struct {
		name  string
		value string
		width int
		want  int
	}{
		{"empty", "", 10, 1},
		{"single line", "hello", 10, 1},
		{"wraps once", "0123456789abc", 10, 2},
		{"explicit newlines", "a\nb\nc", 10, 3},
		{"zero width", "anything", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WrappedLineCount(tt.value, tt.width))
		})
	}
}
