package memory

import "fmt"

// Phase is the controller's position in the round lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseShowingSequence
	PhaseAwaitingInput
	PhaseRoundSuccess
	PhaseRoundFailure
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseShowingSequence:
		return "showing"
	case PhaseAwaitingInput:
		return "awaiting"
	case PhaseRoundSuccess:
		return "success"
	case PhaseRoundFailure:
		return "failure"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Session is the state of one game. The controller owns it; callers only ever
// see copies returned by Snapshot.
type Session struct {
	Sequence []int
	Input    []int
	Round    int
	Phase    Phase
	Running  bool

	// Epoch tags scheduled callbacks. A callback whose epoch no longer
	// matches is dropped.
	Epoch uint64

	// Best is the highest round a game in this session ended on.
	Best int
}

func newSession() Session {
	return Session{Round: 1, Phase: PhaseIdle}
}

func (s Session) clone() Session {
	c := s
	c.Sequence = append([]int(nil), s.Sequence...)
	c.Input = append([]int(nil), s.Input...)
	return c
}

// inputMatches reports whether every entered card so far equals the card at
// the same position of the sequence. The whole prefix is checked on every
// click, not just the newest entry.
func (s Session) inputMatches() bool {
	if len(s.Input) > len(s.Sequence) {
		return false
	}
	for i := range s.Input {
		if s.Input[i] != s.Sequence[i] {
			return false
		}
	}
	return true
}

// Outcome is what a click did to the session.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeAccepted
	OutcomeRoundComplete
	OutcomeGameOver
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeAccepted:
		return "accepted"
	case OutcomeRoundComplete:
		return "round complete"
	case OutcomeGameOver:
		return "game over"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}
