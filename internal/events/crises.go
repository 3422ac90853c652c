package events

import (
	"github.com/younisbosefi/younosomy/internal/atlas"
	"github.com/younisbosefi/younosomy/internal/state"
)

// CrisisChance is the daily chance, at normal speed, that a neglected
// sector breaks down.
const CrisisChance = 0.03

// neglectMargin is how far below its starting level a sector must fall
// before it can break down.
const neglectMargin = 10

type crisis struct {
	sector    atlas.Sector
	message   string
	gdpShare  float64
	happiness float64
}

var crises = []crisis{
	{atlas.Health, "DISEASE OUTBREAK! A neglected health system lets an epidemic spread.", 0.10, 8},
	{atlas.Security, "CRIME WAVE! Underfunded police lose control of the streets.", 0.05, 6},
	{atlas.Infrastructure, "INFRASTRUCTURE COLLAPSE! Bridges and power grids fail after years of neglect.", 0.08, 10},
}

// Crises rolls a breakdown for each sector that has fallen well below its
// starting level.
func Crises(s *state.WorldState, env *state.Env) []state.Event {
	p := CrisisChance * float64(s.Speed())
	var out []state.Event
	for _, c := range crises {
		if s.InitialStats.SectorLevels[c.sector]-s.Sector(c.sector) <= neglectMargin {
			continue
		}
		if !env.Chance(p) {
			continue
		}
		ev := env.CriticalEvent(s, state.CategoryDomestic, c.message)
		ev.Icon = "crisis"
		ev.Impact = &state.Impact{GDP: -s.GDP * c.gdpShare, Happiness: -c.happiness}
		out = append(out, ev)
	}
	return out
}

// Collapses reports sectors that decayed across the collapse line between
// before and after.
func Collapses(s *state.WorldState, env *state.Env, before, after map[atlas.Sector]float64) []state.Event {
	const line = 20
	var out []state.Event
	for _, sector := range atlas.Sectors {
		if before[sector] >= line && after[sector] < line {
			ev := env.CriticalEvent(s, state.CategoryDomestic,
				string(sector)+" sector is collapsing from neglect! Invest before it triggers a crisis.")
			ev.Icon = "warning"
			out = append(out, ev)
		}
	}
	return out
}
