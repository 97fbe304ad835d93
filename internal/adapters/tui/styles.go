package tui

import "github.com/charmbracelet/lipgloss"

// Palette follows the original app: purple-to-orange background, green
// flip button, red failures.
var (
	Purple = lipgloss.Color("#9333ea")
	Pink   = lipgloss.Color("#ec4899")
	Orange = lipgloss.Color("#fb923c")
	Green  = lipgloss.Color("#4ade80")
	Blue   = lipgloss.Color("#3b82f6")
	Red    = lipgloss.Color("#ef4444")
	Gray   = lipgloss.Color("#9ca3af")
	Gold   = lipgloss.Color("#f59e0b")
	White  = lipgloss.Color("#ffffff")
)

// Styles holds the styled components of the flip screen.
type Styles struct {
	Title    lipgloss.Style
	Panel    lipgloss.Style
	Heading  lipgloss.Style
	Coin     lipgloss.Style
	CoinEdge lipgloss.Style
	Result   lipgloss.Style
	Dimmed   lipgloss.Style
	Button   lipgloss.Style
	Disabled lipgloss.Style
	Error    lipgloss.Style
	Image    lipgloss.Style
	Greeting lipgloss.Style
	Muted    lipgloss.Style
	Help     lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(White).
			Background(Purple).
			Bold(true).
			Padding(0, 2).
			MarginBottom(1),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Pink).
			Padding(1, 2).
			Width(44),

		Heading: lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1),

		Coin: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(Gold).
			Bold(true).
			Align(lipgloss.Center),

		CoinEdge: lipgloss.NewStyle().
			Background(lipgloss.Color("#b45309")),

		Result: lipgloss.NewStyle().
			Foreground(White).
			Background(Blue).
			Bold(true).
			Padding(0, 2),

		Dimmed: lipgloss.NewStyle().
			Foreground(Gray).
			Padding(0, 2),

		Button: lipgloss.NewStyle().
			Foreground(White).
			Background(Green).
			Bold(true).
			Padding(0, 3),

		Disabled: lipgloss.NewStyle().
			Foreground(White).
			Background(Gray).
			Padding(0, 3),

		Error: lipgloss.NewStyle().
			Foreground(Red).
			Bold(true),

		Image: lipgloss.NewStyle().
			Foreground(Blue).
			Underline(true),

		Greeting: lipgloss.NewStyle().
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(Gray),

		Help: lipgloss.NewStyle().
			Foreground(Orange).
			MarginTop(1),
	}
}
