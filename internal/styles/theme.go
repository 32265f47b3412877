package styles

import "github.com/charmbracelet/lipgloss"

// Theme groups the semantic colors the views draw from.
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color

	TextPrimary lipgloss.Color
	TextMuted   lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	Border lipgloss.Color
}

var DarkTheme = Theme{
	Primary:   lipgloss.Color("#818CF8"),
	Secondary: lipgloss.Color("#22D3EE"),

	TextPrimary: lipgloss.Color("#F1F5F9"),
	TextMuted:   lipgloss.Color("#64748B"),

	Success: lipgloss.Color("#34D399"),
	Warning: lipgloss.Color("#FBBF24"),
	Error:   lipgloss.Color("#FB7185"),
	Info:    lipgloss.Color("#60A5FA"),

	Border: lipgloss.Color("#27272A"),
}

var LightTheme = Theme{
	Primary:   lipgloss.Color("#4F46E5"),
	Secondary: lipgloss.Color("#0891B2"),

	TextPrimary: lipgloss.Color("#18181B"),
	TextMuted:   lipgloss.Color("#A1A1AA"),

	Success: lipgloss.Color("#10B981"),
	Warning: lipgloss.Color("#F59E0B"),
	Error:   lipgloss.Color("#EF4444"),
	Info:    lipgloss.Color("#3B82F6"),

	Border: lipgloss.Color("#E4E4E7"),
}

// Current holds the active theme, set once at startup from the terminal
// background.
var Current = DarkTheme

func InitTheme() {
	if lipgloss.HasDarkBackground() {
		Current = DarkTheme
	} else {
		Current = LightTheme
	}
}
