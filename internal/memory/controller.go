// Package memory implements the round logic of the memory grid game: a
// sequence of cards grows by one each round and the player has to repeat it.
//
// A Controller owns the game session. Every transition, whether caused by a
// click or by a playback timer, happens under one mutex, and every delayed
// step carries the session epoch it was scheduled in so that steps left over
// from an earlier round are dropped instead of applied.
package memory

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/ccspalanca/BuntasPalanca-PREFINAL/internal/clock"
	"github.com/ccspalanca/BuntasPalanca-PREFINAL/internal/grid"
	"github.com/charmbracelet/log"
)

var (
	ErrAlreadyRunning = errors.New("memory: game already running")
	ErrGameOver       = errors.New("memory: game over, restart required")
	ErrNotGameOver    = errors.New("memory: game still running")
	ErrNotStarted     = errors.New("memory: game not started")
	ErrClosed         = errors.New("memory: controller closed")
)

// Presenter renders what the controller decides. Its methods are called with
// the controller lock held, so they must return promptly and must not call
// back into the controller.
type Presenter interface {
	HighlightCard(index int, d time.Duration)
	ResetCard(index int)
	FlashFailure(d time.Duration)
	ShowMessage(text string)
	ShowRoundComplete(round int)
	ShowGameOver(finalRound int)
	EnableInput()
	DisableInput()
}

// Timings are the fixed delays of sequence playback.
type Timings struct {
	PreRoll      time.Duration // before the first card lights up
	Highlight    time.Duration // how long a card stays lit
	Gap          time.Duration // between two cards
	FailFlash    time.Duration
	RestartDelay time.Duration
}

func DefaultTimings() Timings {
	return Timings{
		PreRoll:      2 * time.Second,
		Highlight:    500 * time.Millisecond,
		Gap:          200 * time.Millisecond,
		FailFlash:    time.Second,
		RestartDelay: 500 * time.Millisecond,
	}
}

// Controller is the round state machine. It is safe for concurrent use.
type Controller struct {
	mu      sync.Mutex
	s       Session
	view    Presenter
	clock   clock.Clock
	rng     *rand.Rand
	timings Timings
	log     *log.Logger

	timers         []clock.Timer
	gameOver       bool
	restartPending bool
	closed         bool
}

type Option func(*Controller)

func WithClock(c clock.Clock) Option {
	return func(ctl *Controller) { ctl.clock = c }
}

func WithRand(r *rand.Rand) Option {
	return func(ctl *Controller) { ctl.rng = r }
}

func WithTimings(t Timings) Option {
	return func(ctl *Controller) { ctl.timings = t }
}

func WithLogger(l *log.Logger) Option {
	return func(ctl *Controller) { ctl.log = l }
}

// NewController creates an idle controller that reports to view.
func NewController(view Presenter, opts ...Option) *Controller {
	c := &Controller{
		s:       newSession(),
		view:    view,
		clock:   clock.Real{},
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		timings: DefaultTimings(),
		log:     log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.view == nil {
		c.view = nopPresenter{}
	}
	return c
}

// Start begins the first round of a fresh session.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.recoverFault("start")

	switch {
	case c.closed:
		return ErrClosed
	case c.s.Running || c.restartPending:
		return ErrAlreadyRunning
	case c.gameOver:
		return ErrGameOver
	}

	c.s.Running = true
	c.log.Info("Game started")
	c.beginRound()
	return nil
}

// CardClicked feeds one click into the session. Clicks are only evaluated
// while the controller waits for input; anything else is ignored.
func (c *Controller) CardClicked(index int) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.recoverFault("click")

	if !grid.Valid(index) {
		c.log.Warn("Ignoring click outside the grid", "index", index)
		return OutcomeIgnored
	}
	if c.closed || c.s.Phase != PhaseAwaitingInput {
		return OutcomeIgnored
	}

	c.s.Input = append(c.s.Input, index)
	if !c.s.inputMatches() {
		c.fail()
		return OutcomeGameOver
	}
	if len(c.s.Input) == len(c.s.Sequence) {
		c.succeed()
		return OutcomeRoundComplete
	}
	return OutcomeAccepted
}

// Restart resets a finished game and schedules its first round after the
// restart delay. Calling it again while that round is pending does nothing.
func (c *Controller) Restart() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.recoverFault("restart")

	if c.closed {
		return ErrClosed
	}
	if c.restartPending {
		return nil
	}
	if !c.gameOver {
		if c.s.Running {
			return ErrNotGameOver
		}
		return ErrNotStarted
	}

	c.newEpoch()
	c.gameOver = false
	c.restartPending = true
	c.s.Round = 1
	c.s.Sequence = nil
	c.s.Input = nil
	c.s.Phase = PhaseIdle
	c.s.Running = true
	for i := 0; i < grid.Cards; i++ {
		c.view.ResetCard(i)
	}

	c.log.Debug("Restart scheduled", "delay", c.timings.RestartDelay)
	c.after(c.timings.RestartDelay, func() {
		c.restartPending = false
		c.beginRound()
	})
	return nil
}

// Abandon drops the current game, if any, and returns to a fresh idle
// session. The best round is kept.
func (c *Controller) Abandon() {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.recoverFault("abandon")

	if c.closed {
		return
	}
	c.newEpoch()
	epoch, best := c.s.Epoch, c.s.Best
	c.s = newSession()
	c.s.Epoch, c.s.Best = epoch, best
	c.gameOver = false
	c.restartPending = false

	c.view.DisableInput()
	for i := 0; i < grid.Cards; i++ {
		c.view.ResetCard(i)
	}
}

// Close cancels pending playback. The controller ignores everything after.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.newEpoch()
	c.closed = true
}

// Snapshot returns a copy of the session.
func (c *Controller) Snapshot() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.clone()
}

// beginRound is the entry action of PhaseShowingSequence. Callers hold mu.
func (c *Controller) beginRound() {
	c.newEpoch()
	c.s.Phase = PhaseShowingSequence
	c.s.Input = nil
	c.s.Sequence = append(c.s.Sequence, c.rng.Intn(grid.Cards))

	c.view.DisableInput()
	c.view.ShowMessage(fmt.Sprintf("Round %d: watch closely", c.s.Round))
	c.log.Debug("Round started", "round", c.s.Round, "length", len(c.s.Sequence), "epoch", c.s.Epoch)

	c.after(c.timings.PreRoll, func() { c.playStep(0) })
}

// playStep lights card i of the sequence, turns it off after the highlight
// time and moves on after the gap. Past the last card it hands over to the
// player.
func (c *Controller) playStep(i int) {
	if i >= len(c.s.Sequence) {
		c.s.Phase = PhaseAwaitingInput
		c.view.EnableInput()
		c.view.ShowMessage("Your turn")
		return
	}

	card := c.s.Sequence[i]
	c.view.HighlightCard(card, c.timings.Highlight)
	c.after(c.timings.Highlight, func() {
		c.view.ResetCard(card)
		c.after(c.timings.Gap, func() { c.playStep(i + 1) })
	})
}

func (c *Controller) succeed() {
	c.s.Phase = PhaseRoundSuccess
	c.view.ShowRoundComplete(c.s.Round)
	c.log.Debug("Round complete", "round", c.s.Round)

	c.s.Round++
	c.beginRound()
}

func (c *Controller) fail() {
	c.s.Phase = PhaseRoundFailure
	c.newEpoch()
	c.view.DisableInput()
	c.view.FlashFailure(c.timings.FailFlash)

	c.s.Running = false
	c.gameOver = true
	if c.s.Round > c.s.Best {
		c.s.Best = c.s.Round
	}
	c.view.ShowGameOver(c.s.Round)
	c.log.Info("Game over", "round", c.s.Round, "best", c.s.Best)

	c.s.Phase = PhaseIdle
}

// after schedules step to run under mu once d has passed, unless the epoch
// has moved on by then. Callers hold mu.
func (c *Controller) after(d time.Duration, step func()) {
	epoch := c.s.Epoch
	var t clock.Timer
	t = c.clock.AfterFunc(d, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		defer c.recoverFault("playback")

		if c.closed || c.s.Epoch != epoch {
			c.log.Debug("Dropping stale step", "epoch", epoch, "current", c.s.Epoch)
			return
		}
		c.forget(t)
		step()
	})
	c.timers = append(c.timers, t)
}

func (c *Controller) forget(t clock.Timer) {
	for i, x := range c.timers {
		if x == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}

// newEpoch invalidates and stops everything scheduled so far.
func (c *Controller) newEpoch() {
	c.s.Epoch++
	for _, t := range c.timers {
		t.Stop()
	}
	c.timers = nil
}

// recoverFault turns a panic in a transition or in the presenter into a
// finished game, so the player is offered a restart instead of losing the
// session. A fault while abandoning leaves a fresh session instead, since the
// player has already left the game. It runs deferred with mu held.
func (c *Controller) recoverFault(op string) {
	r := recover()
	if r == nil {
		return
	}
	c.log.Error("Recovered from fault", "op", op, "panic", r, "round", c.s.Round)

	c.newEpoch()
	c.restartPending = false
	if op == "abandon" {
		epoch, best := c.s.Epoch, c.s.Best
		c.s = newSession()
		c.s.Epoch, c.s.Best = epoch, best
		c.gameOver = false
		return
	}
	c.gameOver = true
	c.s.Running = false
	c.s.Input = nil
	c.s.Phase = PhaseIdle

	defer func() {
		if r := recover(); r != nil {
			c.log.Error("Presenter failed while reporting fault", "panic", r)
		}
	}()
	c.view.ShowGameOver(c.s.Round)
}

type nopPresenter struct{}

func (nopPresenter) HighlightCard(int, time.Duration) {}
func (nopPresenter) ResetCard(int)                    {}
func (nopPresenter) FlashFailure(time.Duration)       {}
func (nopPresenter) ShowMessage(string)               {}
func (nopPresenter) ShowRoundComplete(int)            {}
func (nopPresenter) ShowGameOver(int)                 {}
func (nopPresenter) EnableInput()                     {}
func (nopPresenter) DisableInput()                    {}
