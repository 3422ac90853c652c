package events

import (
	"fmt"

	"github.com/younisbosefi/younosomy/internal/state"
)

// WarningCooldown is the minimum number of days between two warnings of the
// same kind.
const WarningCooldown = 90

type warning struct {
	kind    state.WarningKind
	applies func(s *state.WorldState) bool
	message func(s *state.WorldState) string
}

var warnings = []warning{
	{
		kind:    state.WarnLowHappiness,
		applies: func(s *state.WorldState) bool { return s.Happiness < 15 },
		message: func(s *state.WorldState) string {
			return fmt.Sprintf("UPRISING RISK: Public happiness at %.0f%%! Citizens may rise up at any moment.", s.Happiness)
		},
	},
	{
		kind:    state.WarnDebtRatio,
		applies: func(s *state.WorldState) bool { return s.DebtToGDPRatio > 150 },
		message: func(s *state.WorldState) string {
			return fmt.Sprintf("CRITICAL: Debt-to-GDP ratio at %.0f%%! Economic collapse risk!", s.DebtToGDPRatio)
		},
	},
	{
		kind:    state.WarnInflation,
		applies: func(s *state.WorldState) bool { return s.InflationRate > 10 },
		message: func(s *state.WorldState) string {
			return fmt.Sprintf("CRITICAL: Hyperinflation detected at %.1f%%! Economy at risk!", s.InflationRate)
		},
	},
	{
		kind:    state.WarnUnemployment,
		applies: func(s *state.WorldState) bool { return s.UnemploymentRate > 15 },
		message: func(s *state.WorldState) string {
			return fmt.Sprintf("CRITICAL: Unemployment at %.1f%%! Social unrest growing!", s.UnemploymentRate)
		},
	},
	{
		kind:    state.WarnHighInterest,
		applies: func(s *state.WorldState) bool { return s.InterestRate > 8 },
		message: func(s *state.WorldState) string {
			return fmt.Sprintf("WARNING: Interest rate at %.1f%%! High rates slow growth and raise debt costs.", s.InterestRate)
		},
	},
	{
		kind:    state.WarnLowTreasury,
		applies: func(s *state.WorldState) bool { return s.Treasury < s.InitialStats.Treasury()*0.25 },
		message: func(s *state.WorldState) string {
			return fmt.Sprintf("ALERT: Treasury critically low at $%.2fB! You started with $%.2fB. Replenish funds soon!",
				s.Treasury, s.InitialStats.Treasury())
		},
	},
}

// Warnings returns the threshold alerts due today and the kinds it emitted,
// so the caller can record them in LastWarningDay. An ongoing uprising is
// always reported.
func Warnings(s *state.WorldState, env *state.Env) ([]state.Event, []state.WarningKind) {
	var (
		out   []state.Event
		kinds []state.WarningKind
	)
	if s.UprisingTriggered {
		ev := env.CriticalEvent(s, state.CategoryDomestic,
			"UPRISING: Citizens have taken to the streets! Restore order or step down.")
		ev.Icon = "uprising"
		out = append(out, ev)
	}
	for _, w := range warnings {
		if !w.applies(s) || !due(s, w.kind) {
			continue
		}
		ev := env.CriticalEvent(s, domainOf(w.kind), w.message(s))
		ev.Icon = "warning"
		out = append(out, ev)
		kinds = append(kinds, w.kind)
	}
	return out, kinds
}

func due(s *state.WorldState, kind state.WarningKind) bool {
	last, ok := s.LastWarningDay[kind]
	return !ok || last < 0 || s.CurrentDay-last >= WarningCooldown
}

func domainOf(kind state.WarningKind) state.Category {
	if kind == state.WarnLowHappiness {
		return state.CategoryDomestic
	}
	return state.CategoryEconomic
}
