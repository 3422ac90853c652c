package events

import (
	"github.com/younisbosefi/younosomy/internal/state"
)

type shock struct {
	weight  float64
	message string
	impact  func(s *state.WorldState) state.Impact
}

// shocks is the global economic news table. Weights sum to 0.9; the rest is
// a quiet day.
var shocks = []shock{
	{0.10, "Global oil prices surge, squeezing economies worldwide.", func(s *state.WorldState) state.Impact {
		return state.Impact{GDPGrowth: -0.5, Inflation: 0.5, Happiness: -2}
	}},
	{0.10, "A major stock market rally boosts investor confidence.", func(s *state.WorldState) state.Impact {
		return state.Impact{GDPGrowth: 0.5, Treasury: s.GDP * 0.002, Happiness: 1}
	}},
	{0.08, "New international trade agreements lift exports.", func(s *state.WorldState) state.Impact {
		return state.Impact{GDPGrowth: 0.3, Revenue: s.GDP * 0.000005}
	}},
	{0.06, "A global economic forum debates climate policy.", func(s *state.WorldState) state.Impact {
		return state.Impact{}
	}},
	{0.07, "A major tech breakthrough sparks an investment wave.", func(s *state.WorldState) state.Impact {
		return state.Impact{GDPGrowth: 0.4, Unemployment: -0.2}
	}},
	{0.07, "A natural disaster abroad disrupts global supply chains.", func(s *state.WorldState) state.Impact {
		return state.Impact{GDPGrowth: -0.3, Inflation: 0.3}
	}},
	{0.07, "Currency markets swing wildly, unsettling trade.", func(s *state.WorldState) state.Impact {
		return state.Impact{GDPGrowth: -0.2, Treasury: -s.GDP * 0.001}
	}},
	{0.07, "Global tourism reports record numbers.", func(s *state.WorldState) state.Impact {
		return state.Impact{Revenue: s.GDP * 0.00001, Happiness: 1}
	}},
	{0.06, "A banking scare spreads through global markets.", func(s *state.WorldState) state.Impact {
		return state.Impact{GDPGrowth: -0.5, Unemployment: 0.5, Happiness: -3}
	}},
	{0.06, "Commodity prices fall, easing costs for consumers.", func(s *state.WorldState) state.Impact {
		return state.Impact{Inflation: -0.3, Happiness: 1}
	}},
	{0.06, "A wave of layoffs hits multinational manufacturers.", func(s *state.WorldState) state.Impact {
		return state.Impact{Unemployment: 0.4, Happiness: -1}
	}},
	{0.05, "Foreign investors pour capital into emerging markets.", func(s *state.WorldState) state.Impact {
		return state.Impact{GDPGrowth: 0.2, Treasury: s.GDP * 0.001}
	}},
	{0.05, "Shipping lanes are blocked, delaying global trade.", func(s *state.WorldState) state.Impact {
		return state.Impact{GDPGrowth: -0.2, Inflation: 0.2, Revenue: -s.GDP * 0.000005}
	}},
}

// Shock draws one entry from the economic news table. It reports false on a
// quiet day.
func Shock(s *state.WorldState, env *state.Env) (state.Event, bool) {
	r := env.Rand.Float()
	acc := 0.0
	for _, sh := range shocks {
		acc += sh.weight
		if r >= acc {
			continue
		}
		ev := env.WorldEvent(s, state.CategoryEconomic, sh.message)
		ev.Icon = "economy"
		if imp := sh.impact(s); !imp.IsZero() {
			ev.Impact = &imp
		}
		return ev, true
	}
	return state.Event{}, false
}
