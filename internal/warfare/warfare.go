// Package warfare computes military power, validates war declarations and
// resolves finished wars.
package warfare

import (
	"fmt"
	"math"

	"github.com/younisbosefi/younosomy/internal/atlas"
	"github.com/younisbosefi/younosomy/internal/entropy"
	"github.com/younisbosefi/younosomy/internal/state"
)

// Win probability bounds, in percent.
const (
	MinWinProbability = 10.0
	MaxWinProbability = 90.0
)

// Assessment is the balance of power against one opponent.
type Assessment struct {
	PlayerPower    float64
	EnemyPower     float64
	WinProbability float64
}

// allyPower is the half share of an ally's strength that joins a war.
func allyPower(id string) float64 {
	c, ok := atlas.Lookup(id)
	if !ok {
		return 0
	}
	return 0.5 * (0.8*c.Stats.Stability + c.Stats.GDP/1000)
}

// PlayerPower is the player's fighting strength including current allies.
func PlayerPower(s *state.WorldState) float64 {
	p := 2*s.MilitaryStrength + s.Sector(atlas.Military) + s.GDP/1000
	for _, id := range s.Allies {
		p += allyPower(id)
	}
	return p
}

// EnemyPower is the strength of target including the allies it starts the
// game with.
func EnemyPower(targetID string) float64 {
	c, ok := atlas.Lookup(targetID)
	if !ok {
		return 0
	}
	p := 2*c.Stats.Stability + c.Stats.GDP/1000
	allies, _ := atlas.InitialRelations(targetID)
	for _, id := range allies {
		p += allyPower(id)
	}
	return p
}

// WinProbability is the player's chance of winning, in percent, clamped to
// [MinWinProbability, MaxWinProbability].
func WinProbability(player, enemy float64) float64 {
	switch {
	case player <= 0 || math.IsNaN(player):
		return MinWinProbability
	case enemy <= 0 || math.IsNaN(enemy):
		return MaxWinProbability
	}
	p := 100 * player / (player + enemy)
	return max(MinWinProbability, min(MaxWinProbability, p))
}

// Assess weighs the player against targetID.
func Assess(s *state.WorldState, targetID string) Assessment {
	a := Assessment{
		PlayerPower: PlayerPower(s),
		EnemyPower:  EnemyPower(targetID),
	}
	a.WinProbability = WinProbability(a.PlayerPower, a.EnemyPower)
	return a
}

// Requirements are the minimums for declaring war.
type Requirements struct {
	Military      float64
	Security      float64
	MilitaryLevel float64
	CostShare     float64 // of GDP
	Cooldown      int     // days
}

var (
	againstEnemy   = Requirements{Military: 20, Security: 20, MilitaryLevel: 15, CostShare: 0.02, Cooldown: 90}
	againstNeutral = Requirements{Military: 40, Security: 35, MilitaryLevel: 30, CostShare: 0.08, Cooldown: 180}
)

// RequirementsFor returns the requirements for attacking a country. Wars on
// existing enemies are cheaper.
func RequirementsFor(enemy bool) Requirements {
	if enemy {
		return againstEnemy
	}
	return againstNeutral
}

// Validation is the verdict on a proposed war declaration.
type Validation struct {
	Allowed      bool
	Reasons      []string
	Target       atlas.Country
	IsEnemy      bool
	Cost         float64
	Requirements Requirements
	Assessment
}

// Validate checks whether the player may declare war on targetID.
func Validate(s *state.WorldState, targetID string) Validation {
	target, ok := atlas.Lookup(targetID)
	if !ok || targetID == s.Country.ID {
		return Validation{Reasons: []string{"Invalid target country"}}
	}
	v := Validation{Target: target, IsEnemy: s.IsEnemy(targetID)}

	if s.IsAlly(targetID) {
		v.Reasons = append(v.Reasons, fmt.Sprintf("Cannot declare war on ally %s! Impose sanctions first to make them an enemy.", target.Name))
		return v
	}
	for _, w := range s.WarredCountries {
		if w == targetID {
			v.Reasons = append(v.Reasons, fmt.Sprintf("You have already fought %s. They will never face you again.", target.Name))
			return v
		}
	}

	v.Requirements = RequirementsFor(v.IsEnemy)
	v.Cost = s.GDP * v.Requirements.CostShare
	v.Assessment = Assess(s, targetID)

	if s.Cooldowns.DeclareWar > 0 {
		v.Reasons = append(v.Reasons, fmt.Sprintf("Military on cooldown for %d more days", s.Cooldowns.DeclareWar))
	}
	req := v.Requirements
	if s.MilitaryStrength < req.Military {
		v.Reasons = append(v.Reasons, fmt.Sprintf("Military strength too low: %.0f%% (need %.0f%%)", s.MilitaryStrength, req.Military))
	}
	if s.Security < req.Security {
		v.Reasons = append(v.Reasons, fmt.Sprintf("Domestic security too low: %.0f%% (need %.0f%%)", s.Security, req.Security))
	}
	if lvl := s.Sector(atlas.Military); lvl < req.MilitaryLevel {
		v.Reasons = append(v.Reasons, fmt.Sprintf("Military infrastructure insufficient: level %.0f (need level %.0f)", lvl, req.MilitaryLevel))
	}
	if s.Treasury < v.Cost {
		v.Reasons = append(v.Reasons, fmt.Sprintf("Insufficient treasury: $%.2fB (need %.0f%% of GDP: $%.2fB)", s.Treasury, req.CostShare*100, v.Cost))
	}

	v.Allowed = len(v.Reasons) == 0
	return v
}

// Resolve decides a finished war against the player's current strength.
// It draws once from src.
func Resolve(s *state.WorldState, war state.War, src entropy.Source) (state.WarResult, state.StateDelta) {
	enemyID := war.Opponent()
	a := Assess(s, enemyID)
	won := src.Float()*100 < a.WinProbability

	result := state.WarResult{
		PlayerWon:      won,
		EnemyID:        enemyID,
		EnemyName:      atlas.Name(enemyID),
		Day:            s.CurrentDay,
		WinProbability: a.WinProbability,
	}
	if won {
		return result, Victory(s)
	}
	return result, Defeat(s)
}

// Victory is the spoils of a won war.
func Victory(s *state.WorldState) state.StateDelta {
	return state.StateDelta{
		GDP:              state.Ptr(s.GDP * 1.15),
		MilitaryStrength: state.Ptr(min(100, s.MilitaryStrength+20)),
		GlobalReputation: state.Ptr(s.GlobalReputation + 30),
		Treasury:         state.Ptr(s.Treasury + s.GDP*0.10),
		Happiness:        state.Ptr(max(0, s.Happiness-5)),
	}
}

// Defeat is the price of a lost war.
func Defeat(s *state.WorldState) state.StateDelta {
	return state.StateDelta{
		GDP:              state.Ptr(s.GDP * 0.75),
		MilitaryStrength: state.Ptr(max(10, s.MilitaryStrength-40)),
		Security:         state.Ptr(max(10, s.Security-30)),
		Happiness:        state.Ptr(max(0, s.Happiness-20)),
		Treasury:         state.Ptr(max(0, s.Treasury-s.GDP*0.20)),
		Debt:             state.Ptr(s.Debt + s.GDP*0.30),
		GlobalReputation: state.Ptr(max(0, s.GlobalReputation-40)),
	}
}
