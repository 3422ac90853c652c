package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/younisbosefi/younosomy/internal/actions"
	"github.com/younisbosefi/younosomy/internal/decisions"
	"github.com/younisbosefi/younosomy/internal/state"
)

// Errors returned for transitions the session is not in a state to make.
var (
	ErrNoPendingDecision = errors.New("engine: no pending decision")
	ErrInvalidChoice     = decisions.ErrInvalidChoice
	ErrNoUprising        = errors.New("engine: no uprising in progress")
	ErrNoWarResult       = errors.New("engine: no war result to acknowledge")
	ErrGameOver          = errors.New("engine: game is over")
	ErrInvalidSpeed      = errors.New("engine: speed must be 1 or 3")
)

// Phase is where a session stands between ticks.
type Phase int

const (
	// Running games advance whenever they are not paused.
	Running Phase = iota
	// AwaitingDecision blocks the clock until the head decision is answered.
	AwaitingDecision
	// Uprising blocks the clock until the host fights or surrenders.
	Uprising
	// Finished games accept no further input.
	Finished
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case AwaitingDecision:
		return "awaiting-decision"
	case Uprising:
		return "uprising"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// PhaseOf derives the phase of s.
func PhaseOf(s *state.WorldState) Phase {
	switch {
	case s.Over():
		return Finished
	case s.UprisingTriggered:
		return Uprising
	case len(s.PendingDecisions) > 0:
		return AwaitingDecision
	}
	return Running
}

// Session owns one game. All reads and writes go through it, one at a time.
type Session struct {
	mu  sync.Mutex
	s   state.WorldState
	env *state.Env
}

// NewSession takes over s. The env's id sequence is restarted after the
// last id s handed out so a resumed game never repeats one.
func NewSession(s state.WorldState, env *state.Env) *Session {
	env.IDs = state.NewSequence(s.LastSequence)
	return &Session{s: s, env: env}
}

// State returns a copy of the current snapshot.
func (x *Session) State() state.WorldState {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.s.Clone()
}

// Phase reports the current phase.
func (x *Session) Phase() Phase {
	x.mu.Lock()
	defer x.mu.Unlock()
	return PhaseOf(&x.s)
}

// Step advances one tick if the game is running and not paused. It
// reports whether the clock moved.
func (x *Session) Step() (bool, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	before := PhaseOf(&x.s)
	if before == Finished {
		return false, ErrGameOver
	}
	if before != Running || !x.s.IsPlaying {
		return false, nil
	}

	prev := x.s
	x.s = AdvanceOneDay(prev, x.env)

	slog.Debug("day advanced",
		"game", x.s.GameID,
		"day", x.s.CurrentDay,
		"gdp", fmt.Sprintf("%.2f", x.s.GDP),
		"happiness", x.s.Happiness,
		"score", x.s.Score,
	)
	if n := len(x.s.PendingDecisions); n > len(prev.PendingDecisions) {
		slog.Info("decision queued", "game", x.s.GameID, "day", x.s.CurrentDay, "title", x.s.PendingDecisions[n-1].Title)
	}
	if r := x.s.PendingWarResult; r != nil && prev.PendingWarResult == nil {
		slog.Info("war resolved", "game", x.s.GameID, "enemy", r.EnemyID, "won", r.PlayerWon, "odds", r.WinProbability)
	}
	if x.s.UprisingTriggered && !prev.UprisingTriggered {
		slog.Info("uprising", "game", x.s.GameID, "day", x.s.CurrentDay, "happiness", x.s.Happiness)
	}
	x.logOver(prev)
	return true, nil
}

// Execute runs a player command against the current state. Commands are
// accepted whether or not the game is paused.
func (x *Session) Execute(cmd actions.Command) (actions.Result, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.s.Over() {
		return actions.Result{}, ErrGameOver
	}
	prev := x.s
	res := cmd(&prev, x.env)
	x.commit(res.Changes, res.Events...)
	slog.Debug("command", "game", x.s.GameID, "success", res.Success, "message", res.Message)
	x.logOver(prev)
	return res, nil
}

// ResolveDecision answers the decision at the head of the queue.
func (x *Session) ResolveDecision(choice int) (decisions.Result, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.s.Over() {
		return decisions.Result{}, ErrGameOver
	}
	if len(x.s.PendingDecisions) == 0 {
		return decisions.Result{}, ErrNoPendingDecision
	}
	prev := x.s
	head := prev.PendingDecisions[0]
	res, err := decisions.Choose(&prev, head, choice, x.env)
	if err != nil {
		return decisions.Result{}, fmt.Errorf("resolve %q: %w", head.Title, err)
	}

	ev := x.env.PlayerEvent(&prev, state.CategoryDomestic, res.Message)
	if !res.Success {
		ev = x.env.CriticalEvent(&prev, state.CategoryDomestic, res.Message)
	}
	ev.Icon = head.Icon

	d := res.Changes
	d.PendingDecisions = state.Ptr(slices.Clone(prev.PendingDecisions[1:]))
	x.commit(d, ev)

	slog.Info("decision resolved", "game", x.s.GameID, "title", head.Title, "choice", head.Choices[choice].Label, "success", res.Success)
	x.logOver(prev)
	return res, nil
}

// FightUprising sends in the security forces on a coin flip.
func (x *Session) FightUprising() (actions.Result, error) {
	return x.uprising(actions.RepressUprising())
}

// CrackDownUprising crushes the uprising with odds set by military strength
// and security.
func (x *Session) CrackDownUprising() (actions.Result, error) {
	return x.uprising(actions.CrackDown())
}

// SurrenderUprising steps down.
func (x *Session) SurrenderUprising() (actions.Result, error) {
	return x.uprising(actions.Surrender())
}

func (x *Session) uprising(cmd actions.Command) (actions.Result, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.s.Over() {
		return actions.Result{}, ErrGameOver
	}
	if !x.s.UprisingTriggered {
		return actions.Result{}, ErrNoUprising
	}
	prev := x.s
	res := cmd(&prev, x.env)
	x.commit(res.Changes, res.Events...)
	slog.Info("uprising answered", "game", x.s.GameID, "success", res.Success, "message", res.Message)
	x.logOver(prev)
	return res, nil
}

// AcknowledgeWarResult clears the surfaced war result so the next finished
// war can be resolved.
func (x *Session) AcknowledgeWarResult() (state.WarResult, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	r := x.s.PendingWarResult
	if r == nil {
		return state.WarResult{}, ErrNoWarResult
	}
	x.commit(state.StateDelta{ClearPendingWarResult: true})
	return *r, nil
}

// SetPlaying pauses or resumes the clock.
func (x *Session) SetPlaying(playing bool) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.s.Over() {
		return ErrGameOver
	}
	x.commit(state.StateDelta{IsPlaying: state.Ptr(playing)})
	return nil
}

// SetSpeed switches between normal and triple speed.
func (x *Session) SetSpeed(speed int) error {
	if speed != 1 && speed != 3 {
		return fmt.Errorf("%w: got %d", ErrInvalidSpeed, speed)
	}
	x.mu.Lock()
	defer x.mu.Unlock()

	x.commit(state.StateDelta{GameSpeed: state.Ptr(speed)})
	return nil
}

// commit applies d and appends evs to the log. Callers hold mu.
func (x *Session) commit(d state.StateDelta, evs ...state.Event) {
	if len(evs) > 0 {
		d.Events = state.Ptr(state.AppendEvents(x.s.Events, evs...))
	}
	if d.IsZero() {
		return
	}
	x.s = state.Apply(x.s, d)
	x.s.LastSequence = x.env.IDs.Last()
}

func (x *Session) logOver(prev state.WorldState) {
	if x.s.Over() && !prev.Over() {
		slog.Info("game over",
			"game", x.s.GameID,
			"outcome", x.s.Outcome,
			"day", x.s.CurrentDay,
			"score", x.s.Score,
		)
	}
}
