package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/younisbosefi/younosomy/internal/state"
)

// DefaultInterval is the wall-clock length of a tick at normal speed.
const DefaultInterval = time.Second

// idlePoll is how often a paused or blocked driver checks back.
const idlePoll = 100 * time.Millisecond

// Driver runs a session in real time. The callbacks are the host's hooks
// into the loop; any of them may be nil. They run on the driver goroutine
// without the session lock held, so they may call back into the session.
type Driver struct {
	Session  *Session
	Interval time.Duration // Tick length at speed 1; zero runs flat out.

	OnDay       func(s state.WorldState) // After every tick
	OnDecision  func(d state.Decision)   // Head of queue is waiting
	OnUprising  func(s state.WorldState) // Uprising is waiting
	OnWarResult func(r state.WarResult)  // A war result is waiting
	OnFinish    func(s state.WorldState) // Once, when the game ends
}

// NewDriver creates a driver for sess with the default interval.
func NewDriver(sess *Session) *Driver {
	return &Driver{Session: sess, Interval: DefaultInterval}
}

// TickInterval is the wall-clock delay between ticks at speed: 1000ms at
// normal speed, 333ms at triple speed.
func TickInterval(base time.Duration, speed int) time.Duration {
	if speed < 1 {
		speed = 1
	}
	return (base / time.Duration(speed)).Truncate(time.Millisecond)
}

// Run drives the session until the game finishes or ctx is cancelled.
func (d *Driver) Run(ctx context.Context) error {
	start := d.Session.State()
	slog.Info("driver started", "game", start.GameID, "day", start.CurrentDay, "speed", start.Speed())

	for {
		if err := ctx.Err(); err != nil {
			slog.Info("driver stopped", "game", start.GameID, "day", d.Session.State().CurrentDay)
			return err
		}

		s := d.Session.State()
		if r := s.PendingWarResult; r != nil && d.OnWarResult != nil {
			d.OnWarResult(*r)
		}

		switch PhaseOf(&s) {
		case Finished:
			if d.OnFinish != nil {
				d.OnFinish(s)
			}
			return nil
		case AwaitingDecision:
			if d.OnDecision != nil {
				d.OnDecision(s.PendingDecisions[0])
			}
			if err := d.wait(ctx, AwaitingDecision); err != nil {
				return err
			}
			continue
		case Uprising:
			if d.OnUprising != nil {
				d.OnUprising(s)
			}
			if err := d.wait(ctx, Uprising); err != nil {
				return err
			}
			continue
		}

		began := time.Now()
		moved, err := d.Session.Step()
		if errors.Is(err, ErrGameOver) {
			continue
		}
		if !moved {
			if err := sleep(ctx, idlePoll); err != nil {
				return err
			}
			continue
		}
		if d.OnDay != nil {
			d.OnDay(d.Session.State())
		}

		// Sleep for the remainder of the tick, adjusted for speed.
		target := TickInterval(d.Interval, s.Speed())
		if elapsed := time.Since(began); elapsed < target {
			if err := sleep(ctx, target-elapsed); err != nil {
				return err
			}
		}
	}
}

// wait backs off while the session is still blocked in phase.
func (d *Driver) wait(ctx context.Context, phase Phase) error {
	if d.Session.Phase() != phase {
		return nil
	}
	return sleep(ctx, idlePoll)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
