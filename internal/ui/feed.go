package ui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Messages produced by the round controller through the Feed.
type cardLitMsg struct {
	index int
	d     time.Duration
}
type cardResetMsg struct{ index int }
type failFlashMsg struct{ d time.Duration }
type statusMsg string
type roundCompleteMsg struct{ round int }
type gameOverMsg struct{ round int }
type inputMsg bool

// feedMsg carries everything the controller emitted since the last delivery,
// oldest first.
type feedMsg []tea.Msg

// flashDoneMsg ends the failure flash with the same id.
type flashDoneMsg struct{ id int }

// Feed is the controller's Presenter for a bubbletea program. The controller
// calls it with its lock held, so every method only appends to a queue; the
// program picks the queue up through Wait.
type Feed struct {
	mu    sync.Mutex
	queue []tea.Msg

	wake      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func NewFeed() *Feed {
	return &Feed{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

func (f *Feed) push(msg tea.Msg) {
	f.mu.Lock()
	f.queue = append(f.queue, msg)
	f.mu.Unlock()

	select {
	case f.wake <- struct{}{}:
	default:
	}
}

func (f *Feed) drain() []tea.Msg {
	f.mu.Lock()
	defer f.mu.Unlock()
	batch := f.queue
	f.queue = nil
	return batch
}

// Wait blocks until the controller has emitted something and returns it as a
// single feedMsg. Only one Wait should be outstanding; the model issues the
// next one after handling a batch.
func (f *Feed) Wait() tea.Cmd {
	return func() tea.Msg {
		for {
			if batch := f.drain(); len(batch) > 0 {
				return feedMsg(batch)
			}
			select {
			case <-f.wake:
			case <-f.done:
				return nil
			}
		}
	}
}

// Close releases a blocked Wait.
func (f *Feed) Close() {
	f.closeOnce.Do(func() { close(f.done) })
}

func (f *Feed) HighlightCard(index int, d time.Duration) { f.push(cardLitMsg{index: index, d: d}) }
func (f *Feed) ResetCard(index int)                      { f.push(cardResetMsg{index: index}) }
func (f *Feed) FlashFailure(d time.Duration)             { f.push(failFlashMsg{d: d}) }
func (f *Feed) ShowMessage(text string)                  { f.push(statusMsg(text)) }
func (f *Feed) ShowRoundComplete(round int)              { f.push(roundCompleteMsg{round: round}) }
func (f *Feed) ShowGameOver(finalRound int)              { f.push(gameOverMsg{round: finalRound}) }
func (f *Feed) EnableInput()                             { f.push(inputMsg(true)) }
func (f *Feed) DisableInput()                            { f.push(inputMsg(false)) }
