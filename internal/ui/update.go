package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/ccspalanca/BuntasPalanca-PREFINAL/internal/grid"
	"github.com/ccspalanca/BuntasPalanca-PREFINAL/internal/memory"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// 1. Controller output (never blocked by popups)
	switch msg := msg.(type) {
	case feedMsg:
		var cmds []tea.Cmd
		for _, ev := range msg {
			if c := m.apply(ev); c != nil {
				cmds = append(cmds, c)
			}
		}
		cmds = append(cmds, m.feed.Wait())
		return m, tea.Batch(cmds...)

	case flashDoneMsg:
		// A newer flash may have started since this tick was scheduled.
		if msg.id == m.flashID {
			m.Failing = false
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	if m.PopupActive {
		if key, ok := msg.(tea.KeyMsg); ok {
			return m.updatePopup(key)
		}
		return m, nil
	}

	// State Machine
	switch m.State {
	case StateNameInput:
		m, cmd = updateName(m, msg)
	case StateMenu:
		m, cmd = updateMenu(m, msg)
	case StateHelp:
		m, cmd = updateHelp(m, msg)
	case StateGame:
		m, cmd = updateGame(m, msg)
	}

	return m, cmd
}

// apply renders one controller command onto the model.
func (m *Model) apply(ev tea.Msg) tea.Cmd {
	switch ev := ev.(type) {
	case cardLitMsg:
		if grid.Valid(ev.index) {
			m.Cards[ev.index] = true
		}
	case cardResetMsg:
		if grid.Valid(ev.index) {
			m.Cards[ev.index] = false
		}
		m.Failing = false
	case failFlashMsg:
		m.Failing = true
		m.flashID++
		id := m.flashID
		return tea.Tick(ev.d, func(time.Time) tea.Msg { return flashDoneMsg{id: id} })
	case statusMsg:
		m.Status = string(ev)
	case roundCompleteMsg:
		m.Notice = fmt.Sprintf("Round %d completed!", ev.round)
	case gameOverMsg:
		m.FinalRound = ev.round
		m.Notice = ""
		switch {
		case m.State != StateGame:
		case m.PopupActive && m.PopupType == PopupLeave:
			// Shown once the player decides to stay.
			m.gameOverPending = true
		default:
			m.PopupActive = true
			m.PopupType = PopupGameOver
		}
	case inputMsg:
		m.InputEnabled = bool(ev)
		if m.InputEnabled {
			m.Notice = ""
		}
	}
	return nil
}

func (m Model) updatePopup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.PopupType == PopupGameOver {
		switch msg.String() {
		case "r", "enter":
			m.PopupActive = false
			if err := m.ctl.Restart(); err != nil {
				m.Err = err
				m.log.Warn("Restart refused", "err", err)
			}
		case "m", "esc":
			m.PopupActive = false
			m.leaveGame()
		case "q":
			return m, tea.Quit
		}
		return m, nil
	}

	// Leave Popup
	switch msg.String() {
	case "y", "enter":
		m.PopupActive = false
		m.leaveGame()
	case "n", "esc":
		m.PopupActive = false
		if m.gameOverPending {
			m.gameOverPending = false
			m.PopupActive = true
			m.PopupType = PopupGameOver
		}
	}
	return m, nil
}

// leaveGame drops the running game and returns to the menu.
func (m *Model) leaveGame() {
	m.ctl.Abandon()
	m.gameOverPending = false
	m.State = StateMenu
	m.AwaitingStart = false
	m.Status = ""
	m.Notice = ""
	m.Err = nil
}

// --- 1. Name Input Logic ---
func updateName(m Model, msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter {
			val := strings.TrimSpace(m.TextInput.Value())
			if len(val) > 0 {
				m.MyName = val
				m.State = StateMenu
				m.log.Info("Player joined", "name", val)
				return m, nil
			}
		}
	}
	m.TextInput, cmd = m.TextInput.Update(msg)
	return m, cmd
}

// --- 2. Main Menu Logic ---
func updateMenu(m Model, msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.MenuIndex > 0 {
				m.MenuIndex--
			}
		case "down", "j":
			if m.MenuIndex < len(menuOptions)-1 {
				m.MenuIndex++
			}
		case "enter":
			switch m.MenuIndex {
			case 0:
				m.State = StateGame
				m.AwaitingStart = true
				m.Cards = [grid.Cards]bool{}
				m.Failing = false
				m.Status = "Press ENTER to start"
			case 1:
				m.State = StateHelp
			default:
				return m, tea.Quit
			}
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

// --- 3. How to Play ---
func updateHelp(m Model, msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "enter", "q":
			m.State = StateMenu
		}
	}
	return m, nil
}

// --- 4. Game ---
func updateGame(m Model, msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	k := key.String()
	if k == "q" || k == "esc" {
		m.PopupActive = true
		m.PopupType = PopupLeave
		return m, nil
	}

	if m.AwaitingStart {
		if k == "enter" || k == " " {
			if err := m.ctl.Start(); err != nil {
				m.Err = err
				m.log.Warn("Start refused", "err", err)
				return m, nil
			}
			m.AwaitingStart = false
			m.Err = nil
		}
		return m, nil
	}

	if idx, ok := grid.CardForKey(k); ok {
		m.CursorR, m.CursorC = grid.Pos(idx)
		m.click(idx)
		return m, nil
	}

	switch k {
	case " ", "enter":
		m.click(grid.Index(m.CursorR, m.CursorC))
	default:
		m.CursorR, m.CursorC = grid.Move(m.CursorR, m.CursorC, k)
	}
	return m, nil
}

func (m *Model) click(idx int) {
	out := m.ctl.CardClicked(idx)
	if out != memory.OutcomeIgnored {
		m.log.Debug("Card clicked", "card", idx, "outcome", out)
	}
}
