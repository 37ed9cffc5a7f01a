package styles

import "github.com/charmbracelet/lipgloss"

// ── Palette ──────────────────────────────────
var (
	colorAccent  = lipgloss.Color("#7b2fff")
	colorAccentH = lipgloss.Color("#c084fc")
	colorDim     = lipgloss.Color("#626262")
	colorNeutral = lipgloss.Color("#3a3a5c")
	colorLit     = lipgloss.Color("#1e6bff")
	colorFail    = lipgloss.Color("#ff2d55")
	colorCursor  = lipgloss.Color("#f0e040")
	colorErr     = lipgloss.Color("#F25D94")
)

var (
	Base = lipgloss.NewStyle()

	Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFDF5")).
		Background(colorAccent).
		Bold(true).
		Padding(0, 2).
		MarginBottom(1)

	Subtle = lipgloss.NewStyle().Foreground(colorDim)
	Err    = lipgloss.NewStyle().Foreground(colorErr).Bold(true)
	Score  = lipgloss.NewStyle().Foreground(colorCursor).Bold(true)

	ItemFocused = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(colorAccentH).
			Bold(true)
	ItemBlurred = lipgloss.NewStyle().Foreground(colorDim)

	PopupBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccentH).
			Padding(1, 3).
			Align(lipgloss.Center)

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1)
)

// Cards are drawn as fixed-size blocks whose background carries the state.
var (
	cellBase = lipgloss.NewStyle().
			Width(9).
			Height(3).
			Margin(0, 1).
			Align(lipgloss.Center, lipgloss.Center).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorNeutral)

	Cell         = cellBase.Background(colorNeutral)
	CellLit      = cellBase.Background(colorLit).BorderForeground(colorLit)
	CellFail     = cellBase.Background(colorFail).BorderForeground(colorFail)
	CellSelected = cellBase.Background(colorNeutral).BorderForeground(colorCursor)
	CellNumber   = lipgloss.NewStyle().Foreground(colorDim)
)
