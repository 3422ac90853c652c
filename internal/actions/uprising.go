package actions

import (
	"github.com/younisbosefi/younosomy/internal/economy"
	"github.com/younisbosefi/younosomy/internal/state"
)

// RepressOdds is the chance security forces put down an uprising.
const RepressOdds = 0.5

// RepressUprising sends in the security forces. Success restores the
// happiness the country had before unrest broke out; failure ends the
// government.
func RepressUprising() Command {
	return func(s *state.WorldState, env *state.Env) Result {
		if !s.UprisingTriggered {
			return reject("No uprising to repress")
		}
		if env.Chance(RepressOdds) {
			msg := "You suppressed the uprising. Order is restored, but at what cost?"
			return done(msg, withIcon(env.PlayerEvent(s, state.CategoryDomestic, msg), "shield"), state.StateDelta{
				UprisingTriggered: state.Ptr(false),
				Happiness:         state.Ptr(s.PreviousHappiness),
			})
		}
		msg := "Repression failed! The people have overthrown the government."
		return Result{
			Message: msg,
			Events:  []state.Event{withIcon(env.CriticalEvent(s, state.CategoryDomestic, msg), "uprising")},
			Changes: overthrown(),
		}
	}
}

// CrackDown puts the uprising down by force. The odds depend on military
// strength and security; even success leaves scars at home and abroad.
func CrackDown() Command {
	return func(s *state.WorldState, env *state.Env) Result {
		if !s.UprisingTriggered {
			return reject("No uprising to crack down on")
		}
		if env.Chance(economy.RepressChance(s.MilitaryStrength, s.Security)) {
			msg := "Security forces crushed the uprising. Peace restored, but the world is watching."
			return done(msg, withIcon(env.PlayerEvent(s, state.CategoryDomestic, msg), "shield"), state.StateDelta{
				UprisingTriggered: state.Ptr(false),
				Happiness:         state.Ptr(s.Happiness - 5),
				GlobalReputation:  state.Ptr(s.GlobalReputation - 10),
			})
		}
		msg := "The crackdown failed! Soldiers joined the protesters and the government has fallen."
		d := overthrown()
		d.MilitaryStrength = state.Ptr(s.MilitaryStrength * 0.7)
		return Result{
			Message: msg,
			Events:  []state.Event{withIcon(env.CriticalEvent(s, state.CategoryDomestic, msg), "uprising")},
			Changes: d,
		}
	}
}

// Surrender hands power to the protesters.
func Surrender() Command {
	return func(s *state.WorldState, env *state.Env) Result {
		if !s.UprisingTriggered {
			return reject("No uprising to surrender to")
		}
		msg := "You stepped down. The people have taken power."
		return Result{
			Message: msg,
			Events:  []state.Event{withIcon(env.CriticalEvent(s, state.CategoryDomestic, msg), "uprising")},
			Changes: overthrown(),
		}
	}
}

func overthrown() state.StateDelta {
	return state.StateDelta{
		UprisingTriggered: state.Ptr(false),
		IsPlaying:         state.Ptr(false),
		Outcome:           state.Ptr(state.OutcomeOverthrown),
	}
}
