// Package statetest provides fixtures for tests that need a running game.
package statetest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/younisbosefi/younosomy/internal/atlas"
	"github.com/younisbosefi/younosomy/internal/entropy"
	"github.com/younisbosefi/younosomy/internal/state"
)

// Epoch is the wall clock every fixture environment reports.
var Epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// Env returns an environment drawing from src with a frozen clock.
func Env(src entropy.Source) *state.Env {
	env := state.NewEnv(src)
	env.Now = func() time.Time { return Epoch }
	return env
}

// Seeded returns a frozen-clock environment over a seeded source.
func Seeded(seed int64) *state.Env {
	return Env(entropy.NewSeeded(seed))
}

// Game starts a five-year game as the given country.
func Game(t testing.TB, countryID string) state.WorldState {
	t.Helper()
	c, ok := atlas.Lookup(countryID)
	require.True(t, ok, "unknown country %q", countryID)
	s, err := state.NewGame(c, 5, Seeded(1))
	require.NoError(t, err)
	return s
}

// With applies d to a fresh game, for tests that need a specific setup.
func With(t testing.TB, countryID string, d state.StateDelta) state.WorldState {
	t.Helper()
	return state.Apply(Game(t, countryID), d)
}
