package ui

import (
	"fmt"
	"strings"

	"github.com/ccspalanca/BuntasPalanca-PREFINAL/internal/grid"
	"github.com/ccspalanca/BuntasPalanca-PREFINAL/internal/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const nameWidth = 16

func (m Model) View() string {
	// Global Popup
	if m.PopupActive {
		var box string
		if m.PopupType == PopupGameOver {
			content := lipgloss.JoinVertical(lipgloss.Center,
				styles.Title.Render("GAME OVER"),
				fmt.Sprintf("You reached round %s", styles.Score.Render(fmt.Sprint(m.FinalRound))),
				"\n",
				lipgloss.JoinHorizontal(lipgloss.Center,
					styles.ItemFocused.Render("[R] Restart"),
					"  ",
					styles.ItemBlurred.Render("[M] Menu"),
					"  ",
					styles.ItemBlurred.Render("[Q] Quit"),
				),
			)
			box = styles.PopupBox.Render(content)
			// Keep the board visible so the failure flash shows with the dialog.
			if m.State == StateGame {
				box = lipgloss.JoinVertical(lipgloss.Center, renderGame(m), "\n", box)
			}
		} else {
			box = styles.PopupBox.Render(
				"Leave this game?\n(Your progress will be lost)\n\n[Y] Yes    [N] No",
			)
		}
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, box)
	}

	var content string
	var helpText string

	switch m.State {
	case StateNameInput:
		content = lipgloss.JoinVertical(lipgloss.Center,
			"\n",
			styles.Title.Render("MEMORY GRID"),
			"Welcome to the Memory Training Game!",
			styles.Subtle.Render("by Gabriel Nicholas O. Buntas & Carl Chester S. Palanca"),
			"\n",
			m.TextInput.View(),
			"\n",
		)
		helpText = "Enter: Confirm • Ctrl+C: Quit"

	case StateMenu:
		var renderedOpts []string
		for i, opt := range menuOptions {
			if i == m.MenuIndex {
				renderedOpts = append(renderedOpts, styles.ItemFocused.Render(" "+opt+" "))
			} else {
				renderedOpts = append(renderedOpts, styles.ItemBlurred.Render(" "+opt+" "))
			}
		}
		list := lipgloss.JoinVertical(lipgloss.Left, renderedOpts...)
		content = lipgloss.JoinVertical(lipgloss.Center,
			styles.Title.Render("MAIN MENU"),
			fmt.Sprintf("Hi, %s", truncate.StringWithTail(m.MyName, nameWidth, "...")),
			"\n",
			list,
		)
		helpText = "↑/↓: Navigate • Enter: Select"

	case StateHelp:
		content = lipgloss.JoinVertical(lipgloss.Center,
			styles.Title.Render("HOW TO PLAY"),
			styles.Panel.Render(strings.Join([]string{
				"Watch the cards light up one after another.",
				"When it is your turn, pick the same cards",
				"in the same order.",
				"",
				"Every round adds one more card to the end.",
				"One wrong card ends the game.",
			}, "\n")),
		)
		helpText = "Esc: Back"

	case StateGame:
		content = renderGame(m)
		helpText = "Arrows/HJKL: Move • Space: Pick • 1-9: Pick card • Q: Quit"
	}

	finalView := lipgloss.JoinVertical(lipgloss.Center,
		content,
		"\n",
		styles.Subtle.Render(helpText),
	)

	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, finalView)
}

func renderGame(m Model) string {
	s := m.ctl.Snapshot()

	name := truncate.StringWithTail(m.MyName, nameWidth, "...")
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		name,
		"   ",
		styles.Subtle.Render("ROUND "), styles.Score.Render(fmt.Sprint(s.Round)),
		"   ",
		styles.Subtle.Render("BEST "), styles.Score.Render(fmt.Sprint(s.Best)),
	)

	status := m.Status
	if m.Notice != "" {
		status = styles.Score.Render(m.Notice) + "  " + status
	}
	if m.Err != nil {
		status = lipgloss.JoinVertical(lipgloss.Center, status, styles.Err.Render(m.Err.Error()))
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		styles.Title.Render("MEMORY GRID"),
		header,
		"\n",
		renderBoard(m),
		"\n",
		status,
	)
}

// renderBoard draws the 3x3 cards. A failure flash paints every card.
func renderBoard(m Model) string {
	var rows []string
	for r := 0; r < grid.Size; r++ {
		var cols []string
		for c := 0; c < grid.Size; c++ {
			idx := grid.Index(r, c)
			style := styles.Cell
			switch {
			case m.Failing:
				style = styles.CellFail
			case m.Cards[idx]:
				style = styles.CellLit
			case m.InputEnabled && r == m.CursorR && c == m.CursorC:
				style = styles.CellSelected
			}
			cols = append(cols, style.Render(styles.CellNumber.Render(fmt.Sprint(idx+1))))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}
