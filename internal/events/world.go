// Package events generates the log entries the simulation produces on its
// own: news from abroad, threshold warnings, advisor tips, battle reports
// and domestic crises. Generators only describe what happened; the engine
// applies any attached Impact.
package events

import (
	"fmt"
	"slices"

	"github.com/younisbosefi/younosomy/internal/atlas"
	"github.com/younisbosefi/younosomy/internal/diplomacy"
	"github.com/younisbosefi/younosomy/internal/entropy"
	"github.com/younisbosefi/younosomy/internal/state"
)

// Daily probabilities at normal speed.
const (
	WarChance      = 0.007
	AllianceChance = 0.01
	SanctionChance = 0.005
	ShockChance    = 0.015
	AllyAidChance  = 0.008

	// SanctionPlayerChance is the share of hostile sanctioners that turn on
	// the player instead of a third country.
	SanctionPlayerChance = 0.25
)

var (
	warReasons = []string{
		"over territorial disputes",
		"citing border violations",
		"following failed diplomatic negotiations",
		"over resource access",
		"in response to military buildups",
	}
	allianceReasons = []string{
		"to strengthen mutual defense",
		"for economic cooperation",
		"to counter regional threats",
		"following successful trade negotiations",
		"to promote shared interests",
	}
	sanctionReasons = []string{
		"due to human rights concerns",
		"over nuclear program development",
		"following trade violations",
		"in response to military aggression",
		"over democratic backsliding",
	}
)

// World rolls each kind of foreign event once. Probabilities scale with game
// speed so the expected rate per simulated day is constant.
func World(s *state.WorldState, env *state.Env) []state.Event {
	speed := float64(s.Speed())
	var out []state.Event

	if env.Chance(WarChance * speed) {
		if ev, ok := foreignWar(s, env); ok {
			out = append(out, ev)
		}
	}
	if env.Chance(AllianceChance * speed) {
		if ev, ok := alliance(s, env); ok {
			out = append(out, ev)
		}
	}
	if env.Chance(SanctionChance * speed) {
		if ev, ok := sanction(s, env); ok {
			out = append(out, ev)
		}
	}
	if env.Chance(ShockChance * speed) {
		if ev, ok := Shock(s, env); ok {
			out = append(out, ev)
		}
	}
	if env.Chance(AllyAidChance * speed) {
		if ev, ok := allyAid(s, env); ok {
			out = append(out, ev)
		}
	}
	return out
}

// pair picks two distinct foreign countries.
func pair(s *state.WorldState, src entropy.Source) (atlas.Country, atlas.Country, bool) {
	others := atlas.Others(s.Country.ID)
	if len(others) < 2 {
		return atlas.Country{}, atlas.Country{}, false
	}
	i := entropy.Intn(src, len(others))
	a := others[i]
	rest := slices.Delete(slices.Clone(others), i, i+1)
	return a, entropy.Pick(src, rest), true
}

func foreignWar(s *state.WorldState, env *state.Env) (state.Event, bool) {
	attacker, defender, ok := pair(s, env.Rand)
	if !ok {
		return state.Event{}, false
	}
	reason := entropy.Pick(env.Rand, warReasons)

	var impact string
	switch aAlly, dAlly, aEnemy, dEnemy := s.IsAlly(attacker.ID), s.IsAlly(defender.ID), s.IsEnemy(attacker.ID), s.IsEnemy(defender.ID); {
	case aAlly && dEnemy:
		impact = "Your ally fights your enemy. This benefits you!"
	case dAlly && aEnemy:
		impact = "Your ally is under attack by your enemy. Consider supporting them!"
	case aAlly || dAlly:
		impact = "Your ally is at war. This may affect trade and your security."
	case aEnemy || dEnemy:
		impact = "Your enemy is distracted by war. An opportunity for you."
	default:
		impact = "Regional instability may affect global markets."
	}

	ev := env.WorldEvent(s, state.CategoryMilitary,
		fmt.Sprintf("%s declared war on %s %s. %s", attacker.Name, defender.Name, reason, impact))
	ev.Icon = "war"
	return ev, true
}

func alliance(s *state.WorldState, env *state.Env) (state.Event, bool) {
	a, b, ok := pair(s, env.Rand)
	if !ok {
		return state.Event{}, false
	}
	reason := entropy.Pick(env.Rand, allianceReasons)

	var impact string
	switch aAlly, bAlly, aEnemy, bEnemy := s.IsAlly(a.ID), s.IsAlly(b.ID), s.IsEnemy(a.ID), s.IsEnemy(b.ID); {
	case aAlly && bAlly:
		impact = "Both are your allies. Your alliance network grows stronger!"
	case aEnemy && bEnemy:
		impact = "Your enemies unite. You should strengthen your military!"
	case (aAlly && bEnemy) || (bAlly && aEnemy):
		impact = "Your ally partnered with your enemy. Diplomacy is shifting!"
	case aAlly || bAlly:
		impact = "Your ally gains a new partner. This may benefit you."
	case aEnemy || bEnemy:
		impact = "Your enemy gains a new ally. Monitor this carefully."
	default:
		impact = "This reshapes regional power dynamics."
	}

	ev := env.WorldEvent(s, state.CategoryDiplomatic,
		fmt.Sprintf("%s and %s formed an alliance %s. %s", a.Name, b.Name, reason, impact))
	ev.Icon = "alliance"

	sa, sb := diplomacy.Score(s.Relationships, a.ID), diplomacy.Score(s.Relationships, b.ID)
	switch {
	case sa >= diplomacy.FriendlyMin && sb >= diplomacy.FriendlyMin:
		ev.Impact = &state.Impact{RelationshipChanges: map[string]float64{a.ID: 2, b.ID: 2}}
	case sa <= diplomacy.HostileMax && sb <= diplomacy.HostileMax:
		ev.Impact = &state.Impact{RelationshipChanges: map[string]float64{a.ID: -2, b.ID: -2}}
	}
	return ev, true
}

func sanction(s *state.WorldState, env *state.Env) (state.Event, bool) {
	sanctioner, sanctioned, ok := pair(s, env.Rand)
	if !ok {
		return state.Event{}, false
	}
	reason := entropy.Pick(env.Rand, sanctionReasons)

	hostile := diplomacy.Score(s.Relationships, sanctioner.ID) <= diplomacy.HostileMax
	if hostile && !slices.Contains(s.SanctionsOnUs, sanctioner.ID) && env.Chance(SanctionPlayerChance) {
		ev := env.CriticalEvent(s, state.CategoryDiplomatic,
			fmt.Sprintf("%s imposed sanctions on %s %s. Trade and growth will suffer until relations improve.",
				sanctioner.Name, s.Country.Name, reason))
		ev.Icon = "sanction"
		ev.Impact = &state.Impact{SanctionedBy: sanctioner.ID}
		return ev, true
	}

	var impact string
	switch rAlly, tAlly, rEnemy, tEnemy := s.IsAlly(sanctioner.ID), s.IsAlly(sanctioned.ID), s.IsEnemy(sanctioner.ID), s.IsEnemy(sanctioned.ID); {
	case tAlly && !rEnemy:
		impact = "Your ally is sanctioned. This may hurt your economy too."
	case tEnemy && rAlly:
		impact = "Your ally sanctions your enemy. This weakens your adversary!"
	case tEnemy:
		impact = "Your enemy is weakened by sanctions. An advantage for you."
	case rAlly:
		impact = "Your ally takes strong diplomatic action."
	default:
		impact = "International tensions rise, affecting global trade."
	}

	ev := env.WorldEvent(s, state.CategoryDiplomatic,
		fmt.Sprintf("%s imposed sanctions on %s %s. %s", sanctioner.Name, sanctioned.Name, reason, impact))
	ev.Icon = "sanction"
	return ev, true
}

func allyAid(s *state.WorldState, env *state.Env) (state.Event, bool) {
	if len(s.Allies) == 0 {
		return state.Event{}, false
	}
	donor := entropy.Pick(env.Rand, s.Allies)
	amount := s.GDP * entropy.Between(env.Rand, 0.05, 0.15)

	ev := env.WorldEvent(s, state.CategoryDiplomatic,
		fmt.Sprintf("%s sent $%.2fB in aid to support your economy.", atlas.Name(donor), amount))
	ev.Icon = "aid"
	ev.Impact = &state.Impact{Treasury: amount, Happiness: 3}
	return ev, true
}

// LiftSanctions drops sanctions imposed by countries whose relationship has
// recovered to neutral. It returns the sanctions still in force.
func LiftSanctions(s *state.WorldState, env *state.Env) ([]string, []state.Event) {
	var (
		kept []string
		out  []state.Event
	)
	for _, id := range s.SanctionsOnUs {
		if diplomacy.Score(s.Relationships, id) < diplomacy.NeutralMin {
			kept = append(kept, id)
			continue
		}
		ev := env.WorldEvent(s, state.CategoryDiplomatic,
			fmt.Sprintf("%s lifted its sanctions as relations improved.", atlas.Name(id)))
		ev.Icon = "sanction"
		out = append(out, ev)
	}
	if kept == nil {
		kept = []string{}
	}
	return kept, out
}
