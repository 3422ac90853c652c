package actions

import (
	"fmt"

	"github.com/younisbosefi/younosomy/internal/diplomacy"
	"github.com/younisbosefi/younosomy/internal/state"
)

// EspionageOdds is the chance a spy mission goes unnoticed.
const EspionageOdds = 0.6

// gesture is a small diplomatic action paid from the treasury.
type gesture struct {
	name         string
	icon         string
	cost         float64 // share of treasury
	relationship float64
	happiness    float64
	military     float64
	security     float64
	minScore     float64
	done         string // %s is the target name
}

var (
	culturalExchange = gesture{
		name: "Cultural exchange", icon: "culture", cost: 0.01, relationship: 5,
		done: "Cultural exchange program launched with %s.",
	}
	tradeAgreement = gesture{
		name: "Trade agreement", icon: "trade", cost: 0.02, relationship: 8,
		done: "Trade agreement signed with %s.",
	}
	militaryCooperation = gesture{
		name: "Military cooperation", icon: "military", cost: 0.03, relationship: 10, military: 2, minScore: 70,
		done: "Joint military exercises held with %s.",
	}
	denouncement = gesture{
		name: "Public denouncement", icon: "denounce", cost: 0.01, relationship: -10, happiness: 2,
		done: "You publicly denounced %s. Your people cheer.",
	}
	borderAgreement = gesture{
		name: "Border agreement", icon: "border", cost: 0.02, relationship: 6, security: 3,
		done: "Border agreement signed with %s.",
	}
)

func (g gesture) run(s *state.WorldState, env *state.Env, targetID string) Result {
	target, ok := foreign(s, targetID)
	if !ok {
		return reject("Invalid target country")
	}
	if s.Treasury <= 0 {
		return reject("Insufficient treasury funds")
	}
	if score := diplomacy.Score(s.Relationships, targetID); score < g.minScore {
		return rejectLoudly(s, env, state.CategoryDiplomatic,
			fmt.Sprintf("%s requires a relationship of %.0f", g.name, g.minScore),
			fmt.Sprintf("%s with %s is not possible: relationship %.0f (need %.0f).", g.name, target.Name, score, g.minScore))
	}

	cost := s.Treasury * g.cost
	rel := diplomacy.Change(s.Relationships, targetID, g.relationship)
	d := state.StateDelta{
		Treasury:      state.Ptr(s.Treasury - cost),
		Relationships: &rel,
	}
	if g.happiness != 0 {
		d.Happiness = state.Ptr(s.Happiness + g.happiness)
	}
	if g.military != 0 {
		d.MilitaryStrength = state.Ptr(s.MilitaryStrength + g.military)
	}
	if g.security != 0 {
		d.Security = state.Ptr(s.Security + g.security)
	}
	msg := fmt.Sprintf(g.done, target.Name)
	return done(msg, withIcon(env.PlayerEvent(s, state.CategoryDiplomatic, msg), g.icon), d)
}

// CulturalExchange improves relations with targetID for 1% of the treasury.
func CulturalExchange(targetID string) Command {
	return func(s *state.WorldState, env *state.Env) Result {
		return culturalExchange.run(s, env, targetID)
	}
}

// TradeAgreement improves relations with targetID for 2% of the treasury.
func TradeAgreement(targetID string) Command {
	return func(s *state.WorldState, env *state.Env) Result {
		return tradeAgreement.run(s, env, targetID)
	}
}

// MilitaryCooperation needs an already friendly partner.
func MilitaryCooperation(targetID string) Command {
	return func(s *state.WorldState, env *state.Env) Result {
		return militaryCooperation.run(s, env, targetID)
	}
}

// DenouncePublicly trades a relationship for a little domestic support.
func DenouncePublicly(targetID string) Command {
	return func(s *state.WorldState, env *state.Env) Result {
		return denouncement.run(s, env, targetID)
	}
}

// BorderAgreement improves relations and domestic security.
func BorderAgreement(targetID string) Command {
	return func(s *state.WorldState, env *state.Env) Result {
		return borderAgreement.run(s, env, targetID)
	}
}

// EspionageMission spends 5% of the treasury on spying on targetID. A
// caught spy costs relations, reputation and some public support.
func EspionageMission(targetID string) Command {
	return func(s *state.WorldState, env *state.Env) Result {
		target, ok := foreign(s, targetID)
		if !ok {
			return reject("Invalid target country")
		}
		if s.Treasury <= 0 {
			return reject("Insufficient treasury funds")
		}
		treasury := state.Ptr(s.Treasury * 0.95)

		if env.Chance(EspionageOdds) {
			msg := fmt.Sprintf("Espionage mission in %s succeeded. Valuable intelligence gathered.", target.Name)
			return done(msg, withIcon(env.PlayerEvent(s, state.CategoryMilitary, msg), "spy"), state.StateDelta{
				Treasury: treasury,
				Security: state.Ptr(s.Security + 3),
			})
		}

		rel := diplomacy.Change(s.Relationships, targetID, -20)
		msg := fmt.Sprintf("Your spies were caught in %s! An international scandal erupts.", target.Name)
		return Result{
			Message: msg,
			Events:  []state.Event{withIcon(env.CriticalEvent(s, state.CategoryDiplomatic, msg), "spy")},
			Changes: state.StateDelta{
				Treasury:         treasury,
				Relationships:    &rel,
				GlobalReputation: state.Ptr(s.GlobalReputation - 10),
				Happiness:        state.Ptr(s.Happiness - 3),
			},
		}
	}
}
