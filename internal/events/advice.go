package events

import (
	"fmt"

	"github.com/younisbosefi/younosomy/internal/atlas"
	"github.com/younisbosefi/younosomy/internal/state"
)

// MaxAdvice is how many tips one review may produce.
const MaxAdvice = 2

type tip struct {
	category state.Category
	advise   func(s *state.WorldState) (string, bool)
}

// tips are listed in priority order.
var tips = []tip{
	{state.CategoryEconomic, func(s *state.WorldState) (string, bool) {
		return fmt.Sprintf("ECONOMIC ADVISOR: Your debt-to-GDP ratio is %.0f%%! Pay down debt before it triggers a collapse.",
			s.DebtToGDPRatio), s.DebtToGDPRatio > 100
	}},
	{state.CategoryEconomic, func(s *state.WorldState) (string, bool) {
		return fmt.Sprintf("ECONOMIC ADVISOR: Inflation at %.1f%%! Raise interest rates and stop printing money.",
			s.InflationRate), s.InflationRate > 7
	}},
	{state.CategoryEconomic, func(s *state.WorldState) (string, bool) {
		return fmt.Sprintf("ECONOMIC ADVISOR: GDP growth is stagnant at %.1f%%. Invest in infrastructure and education.",
			s.GDPGrowthRate), s.GDPGrowthRate < 1 && s.DebtToGDPRatio < 80
	}},
	{state.CategoryDomestic, func(s *state.WorldState) (string, bool) {
		return fmt.Sprintf("ECONOMIC ADVISOR: Unemployment at %.1f%%! Education, health and infrastructure create jobs.",
			s.UnemploymentRate), s.UnemploymentRate > 12
	}},
	{state.CategoryDomestic, func(s *state.WorldState) (string, bool) {
		return fmt.Sprintf("SOCIAL ADVISOR: Happiness at %.0f%%! Invest in health, education, housing and sports.",
			s.Happiness), s.Happiness < 35
	}},
	{state.CategoryMilitary, func(s *state.WorldState) (string, bool) {
		n := len(s.PlayerWars())
		return fmt.Sprintf("DEFENSE ADVISOR: You are fighting %d wars at once. Each one costs more than the last; seek peace.",
			n), n >= 2
	}},
	{state.CategoryDiplomatic, func(s *state.WorldState) (string, bool) {
		n := len(s.WarredCountries)
		return fmt.Sprintf("DIPLOMATIC ADVISOR: %d wars have left your reputation at %.0f. Rebuild trust with aid and exchanges.",
			n, s.GlobalReputation), n >= 2 && s.GlobalReputation < 40
	}},
	{state.CategoryDiplomatic, func(s *state.WorldState) (string, bool) {
		switch {
		case len(s.Allies) == 0:
			return "DIPLOMATIC ADVISOR: You have no allies. Propose alliances or send aid to build friendships.", true
		case len(s.Allies) >= 6:
			return fmt.Sprintf("DIPLOMATIC ADVISOR: %d allies stand with you. Their trade and tourism are lifting your economy.",
				len(s.Allies)), true
		}
		return "", false
	}},
	{state.CategoryDomestic, func(s *state.WorldState) (string, bool) {
		for _, sector := range atlas.Sectors {
			if atlas.PotentialOf(s.Country.ID, sector) == atlas.VeryLow && s.Sector(sector) > 25 {
				return fmt.Sprintf("SECTOR ADVISOR: %s has very low potential in %s. Money spent there is wasted.",
					sector, s.Country.Name), true
			}
		}
		return "", false
	}},
	{state.CategoryEconomic, func(s *state.WorldState) (string, bool) {
		start := s.InitialStats.Treasury()
		return fmt.Sprintf("FISCAL ADVISOR: Treasury is low at $%.2fB against $%.2fB at the start. Revenue sectors or careful borrowing can help.",
			s.Treasury, start), s.Treasury < start*0.3 && s.Debt < s.GDP*0.5
	}},
	{state.CategoryMilitary, func(s *state.WorldState) (string, bool) {
		return fmt.Sprintf("DEFENSE ADVISOR: You have enemies but military strength is only %.0f%%! Invest in military and security.",
			s.MilitaryStrength), len(s.Enemies) > 0 && s.MilitaryStrength < 30
	}},
}

// Advice reviews the economy once a month after the first ten days and
// returns at most MaxAdvice tips.
func Advice(s *state.WorldState, env *state.Env) []state.Event {
	if s.CurrentDay < 10 || s.CurrentDay%30 != 0 {
		return nil
	}
	var out []state.Event
	for _, t := range tips {
		msg, ok := t.advise(s)
		if !ok {
			continue
		}
		ev := env.AdviceEvent(s, t.category, msg)
		ev.Icon = "advice"
		out = append(out, ev)
		if len(out) == MaxAdvice {
			break
		}
	}
	return out
}
