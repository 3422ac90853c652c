// Package actions resolves player commands. A command reads the current
// state and returns a Result describing the change; it never modifies its
// input. Rejected commands carry an empty delta.
package actions

import (
	"maps"

	"github.com/younisbosefi/younosomy/internal/atlas"
	"github.com/younisbosefi/younosomy/internal/state"
)

// Result is the outcome of a command.
type Result struct {
	Success bool
	Message string
	Events  []state.Event
	Changes state.StateDelta
}

// Command is a player command bound to its arguments.
type Command func(s *state.WorldState, env *state.Env) Result

func reject(msg string) Result {
	return Result{Message: msg}
}

// rejectLoudly is a rejection that also explains itself in the log.
func rejectLoudly(s *state.WorldState, env *state.Env, cat state.Category, msg, detail string) Result {
	return Result{
		Message: msg,
		Events:  []state.Event{env.CriticalEvent(s, cat, detail)},
	}
}

func done(msg string, ev state.Event, d state.StateDelta) Result {
	return Result{Success: true, Message: msg, Events: []state.Event{ev}, Changes: d}
}

func withIcon(ev state.Event, icon string) state.Event {
	ev.Icon = icon
	return ev
}

// foreign looks up a country the player may act on.
func foreign(s *state.WorldState, id string) (atlas.Country, bool) {
	c, ok := atlas.Lookup(id)
	if !ok || id == s.Country.ID {
		return atlas.Country{}, false
	}
	return c, true
}

func cloneLevels(levels map[atlas.Sector]float64) map[atlas.Sector]float64 {
	if levels == nil {
		return make(map[atlas.Sector]float64)
	}
	return maps.Clone(levels)
}
