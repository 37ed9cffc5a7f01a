package ui

import (
	"strings"
	"sync"

	"github.com/ccspalanca/BuntasPalanca-PREFINAL/internal/grid"
	"github.com/ccspalanca/BuntasPalanca-PREFINAL/internal/memory"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	gossh "golang.org/x/crypto/ssh"
)

type SessionState int

const (
	StateNameInput SessionState = iota
	StateMenu
	StateHelp
	StateGame
)

const (
	PopupLeave = iota
	PopupGameOver
)

var menuOptions = []string{"Start Game", "How to Play", "Quit"}

// CleanupState is shared with the SSH handler so it can stop the game when
// the connection drops.
type CleanupState struct {
	SessionID  string
	Controller *memory.Controller
	Feed       *Feed
	Mu         sync.Mutex
}

type Model struct {
	Width, Height int
	SessionID     string
	Err           error

	Cleanup *CleanupState

	State       SessionState
	TextInput   textinput.Model
	MenuIndex   int
	PopupActive bool
	PopupType   int

	MyName string

	CursorR int
	CursorC int

	// Game screen
	AwaitingStart bool
	Cards         [grid.Cards]bool
	Failing       bool
	InputEnabled  bool
	Status        string
	Notice        string
	FinalRound    int
	flashID       int

	gameOverPending bool

	ctl  *memory.Controller
	feed *Feed
	log  *log.Logger
}

// InitialModel builds the UI for one SSH session together with the round
// controller it drives. A nil logger means the package default. opts are
// applied to the controller after the UI's own options.
func InitialModel(s ssh.Session, cleanup *CleanupState, logger *log.Logger, opts ...memory.Option) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter Name"
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 24
	ti.Width = 20

	id := sessionID(s)
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.With("session", id)

	feed := NewFeed()
	ctl := memory.NewController(feed, append([]memory.Option{memory.WithLogger(logger)}, opts...)...)

	cleanup.Mu.Lock()
	cleanup.SessionID = id
	cleanup.Controller = ctl
	cleanup.Feed = feed
	cleanup.Mu.Unlock()

	return Model{
		State:     StateNameInput,
		TextInput: ti,
		SessionID: id,
		Cleanup:   cleanup,
		CursorR:   1,
		CursorC:   1,
		ctl:       ctl,
		feed:      feed,
		log:       logger,
	}
}

func sessionID(s ssh.Session) string {
	id := "local"
	if s != nil {
		if key := s.PublicKey(); key != nil {
			id = gossh.FingerprintSHA256(key)
		} else {
			id = s.RemoteAddr().String()
		}
	}
	return strings.NewReplacer(
		":", "_", "/", "_", ".", "_", "+", "-",
		"=", "", "[", "", "]", "",
	).Replace(id)
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.feed.Wait())
}
