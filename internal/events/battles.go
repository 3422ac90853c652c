package events

import (
	"fmt"

	"github.com/younisbosefi/younosomy/internal/atlas"
	"github.com/younisbosefi/younosomy/internal/entropy"
	"github.com/younisbosefi/younosomy/internal/state"
)

// BattleChance is the daily chance of a report from each war.
const BattleChance = 0.2

var battleLines = struct {
	attack, defend, casualties, victories []string
}{
	attack: []string{
		"launched a devastating missile strike",
		"captured strategic positions",
		"destroyed enemy supply lines",
		"bombed military installations",
		"launched a successful offensive",
		"seized key infrastructure",
		"conducted precision airstrikes",
		"breached enemy defenses",
	},
	defend: []string{
		"repelled enemy advances",
		"fortified defensive positions",
		"shot down enemy aircraft",
		"intercepted enemy missiles",
		"held the frontlines",
		"evacuated civilians from combat zones",
		"reinforced strategic locations",
		"countered the enemy offensive",
	},
	casualties: []string{
		"heavy casualties reported",
		"military forces diminished",
		"significant losses sustained",
		"troops decimated in fierce battle",
		"a devastating blow to military strength",
	},
	victories: []string{
		"achieved a tactical victory",
		"gained a strategic advantage",
		"broke through enemy lines",
		"secured a major win",
		"dominated the battlefield",
	},
}

// Battles narrates the player's wars. Reports are flavor only.
func Battles(s *state.WorldState, env *state.Env) []state.Event {
	var out []state.Event
	for _, w := range s.PlayerWars() {
		if !env.Chance(BattleChance) {
			continue
		}
		enemy := atlas.Name(w.Opponent())
		elapsed := max(0, s.CurrentDay-w.StartDay)
		progress := 100.0
		if total := elapsed + max(0, w.Duration); total > 0 {
			progress = float64(elapsed) / float64(total) * 100
		}

		var ev state.Event
		switch {
		case progress < 25 && w.IsPlayerAttacker:
			ev = env.PlayerEvent(s, state.CategoryMilitary,
				fmt.Sprintf("Your forces %s against %s!", entropy.Pick(env.Rand, battleLines.attack), enemy))
		case progress < 25:
			ev = env.CriticalEvent(s, state.CategoryMilitary,
				fmt.Sprintf("%s attacks! Your forces %s.", enemy, entropy.Pick(env.Rand, battleLines.defend)))
		case progress < 75 && w.PlayerAhead():
			ev = env.PlayerEvent(s, state.CategoryMilitary,
				fmt.Sprintf("Your forces %s against %s!", entropy.Pick(env.Rand, battleLines.victories), enemy))
		case progress < 75:
			line := entropy.Pick(env.Rand, battleLines.casualties)
			ev = env.CriticalEvent(s, state.CategoryMilitary,
				fmt.Sprintf("%s counterattacks! %s, %d%% of the front line lost.", enemy, line, entropy.IntBetween(env.Rand, 10, 24)))
		default:
			if !env.Chance(0.1) {
				continue
			}
			ev = env.PlayerEvent(s, state.CategoryMilitary,
				fmt.Sprintf("War with %s nearing conclusion. Final battles underway.", enemy))
		}
		ev.Icon = "battle"
		out = append(out, ev)
	}
	return out
}
