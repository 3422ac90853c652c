// Package decisions produces blocking presidential dilemmas and turns a
// chosen answer into a state change.
package decisions

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/younisbosefi/younosomy/internal/atlas"
	"github.com/younisbosefi/younosomy/internal/diplomacy"
	"github.com/younisbosefi/younosomy/internal/entropy"
	"github.com/younisbosefi/younosomy/internal/state"
)

// Chance is the daily probability that a dilemma is attempted.
const Chance = 0.05

// WarDuration is how long a war started by a decision lasts, in days.
const WarDuration = 180

// ErrInvalidChoice is returned for a choice index the decision does not have.
var ErrInvalidChoice = errors.New("decisions: invalid choice")

type generator func(s *state.WorldState, env *state.Env) (state.Decision, bool)

var pool = []generator{
	enemyDeclaresWar,
	aiBreakthrough,
	assassinationPlot,
	debtUltimatum,
	naturalDisaster,
	tradeDealOffer,
	refugeeCrisis,
	corruptionScandal,
	investmentBoom,
	militaryCoup,
	borderDispute,
	ethnicConflict,
	brainDrain,
	infrastructureFailure,
}

// Generate rolls for a new dilemma. On a hit it tries the generators in a
// random order and returns the first whose conditions hold.
func Generate(s *state.WorldState, env *state.Env) (state.Decision, bool) {
	if !env.Chance(Chance) {
		return state.Decision{}, false
	}
	gens := slices.Clone(pool)
	entropy.Shuffle(env.Rand, gens)
	for _, gen := range gens {
		if d, ok := gen(s, env); ok {
			d.ID = env.NextID("decision")
			return d, true
		}
	}
	return state.Decision{}, false
}

// Result is the outcome of answering a decision.
type Result struct {
	Success bool
	Message string
	Changes state.StateDelta
}

// Choose rolls the chosen answer of d and returns its effect on s. It does
// not touch the pending queue.
func Choose(s *state.WorldState, d state.Decision, choice int, env *state.Env) (Result, error) {
	if choice < 0 || choice >= len(d.Choices) {
		return Result{}, fmt.Errorf("%w: %d of %d", ErrInvalidChoice, choice, len(d.Choices))
	}
	c := d.Choices[choice]
	success := env.Rand.Float() < c.SuccessChance
	branch := c.OnSuccess
	if !success && c.OnFailure != nil {
		branch = *c.OnFailure
	}
	return Result{
		Success: success,
		Message: branch.Message,
		Changes: Materialize(s, branch.Effect),
	}, nil
}

// Materialize resolves a relative effect against s.
func Materialize(s *state.WorldState, e state.Effect) state.StateDelta {
	var d state.StateDelta

	if e.GDPFactor != 0 {
		d.GDP = state.Ptr(s.GDP * e.GDPFactor)
	}
	if e.Treasury != 0 || e.TreasuryFactor != 0 {
		t := s.Treasury + e.Treasury
		if e.TreasuryFactor != 0 {
			t *= e.TreasuryFactor
		}
		d.Treasury = state.Ptr(t)
	}
	if e.DebtFactor != 0 {
		d.Debt = state.Ptr(s.Debt * e.DebtFactor)
	}
	if e.RevenueFactor != 0 {
		d.Revenue = state.Ptr(s.Revenue * e.RevenueFactor)
	}
	if e.GDPGrowth != 0 {
		d.GDPGrowthRate = state.Ptr(s.GDPGrowthRate + e.GDPGrowth)
	}
	if e.Happiness != 0 {
		d.Happiness = state.Ptr(s.Happiness + e.Happiness)
	}
	if e.Unemployment != 0 {
		d.UnemploymentRate = state.Ptr(s.UnemploymentRate + e.Unemployment)
	}
	if e.Reputation != 0 {
		d.GlobalReputation = state.Ptr(s.GlobalReputation + e.Reputation)
	}
	if e.Military != 0 {
		d.MilitaryStrength = state.Ptr(s.MilitaryStrength + e.Military)
	}
	if len(e.Sectors) > 0 {
		levels := maps.Clone(s.SectorLevels)
		if levels == nil {
			levels = make(map[atlas.Sector]float64)
		}
		for k, v := range e.Sectors {
			levels[k] = max(0, levels[k]+v)
		}
		d.SectorLevels = &levels
	}
	if len(e.Relationships) > 0 {
		rel := s.Relationships
		for id, delta := range e.Relationships {
			rel = diplomacy.Change(rel, id, delta)
		}
		d.Relationships = &rel
	}
	if w := e.War; w != nil {
		war := state.War{
			ID:               fmt.Sprintf("war-%d-%s", s.CurrentDay, w.Enemy),
			StartDay:         s.CurrentDay,
			Duration:         WarDuration,
			IsPlayerInvolved: true,
			IsPlayerAttacker: w.PlayerAttacker,
		}
		if w.PlayerAttacker {
			war.Attacker, war.Defender = s.Country.ID, w.Enemy
			war.AttackerStrength, war.DefenderStrength = s.MilitaryStrength, 50
		} else {
			war.Attacker, war.Defender = w.Enemy, s.Country.ID
			war.AttackerStrength, war.DefenderStrength = 50, s.MilitaryStrength
		}
		wars := append(slices.Clone(s.ActiveWars), war)
		d.ActiveWars = &wars
		if !slices.Contains(s.WarredCountries, w.Enemy) {
			warred := append(slices.Clone(s.WarredCountries), w.Enemy)
			d.WarredCountries = &warred
		}
	}
	if e.Defaults {
		d.HasDefaulted = state.Ptr(true)
	}
	if e.Fatal {
		d.Happiness = state.Ptr(0.0)
		d.IsPlaying = state.Ptr(false)
		d.Outcome = state.Ptr(state.OutcomeRemoved)
	}
	return d
}
