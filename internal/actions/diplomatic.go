package actions

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/younisbosefi/younosomy/internal/atlas"
	"github.com/younisbosefi/younosomy/internal/diplomacy"
	"github.com/younisbosefi/younosomy/internal/entropy"
	"github.com/younisbosefi/younosomy/internal/state"
	"github.com/younisbosefi/younosomy/internal/warfare"
)

// RequestAidCooldown applies whether or not the request is granted.
const RequestAidCooldown = 100

// War lengths in days for wars the player declares.
const (
	MinWarDays = 20
	MaxWarDays = 50
)

// Aid thresholds as a share of the player's GDP.
const (
	AidToNeutral = 0.02
	AidToAlly    = 0.05
)

// requestAidOdds by relationship.
var requestAidOdds = map[diplomacy.Level]float64{
	diplomacy.Allied:  0.20,
	diplomacy.Neutral: 0.10,
	diplomacy.Hostile: 0.005,
}

// hostile pins a score at or below the enemy line.
func hostile(rel map[string]float64, id string) map[string]float64 {
	if diplomacy.Score(rel, id) <= diplomacy.HostileMax {
		return rel
	}
	return diplomacy.Set(rel, id, diplomacy.HostileMax)
}

// atLeast raises a score to floor if it sits below it.
func atLeast(rel map[string]float64, id string, floor float64) map[string]float64 {
	if diplomacy.Score(rel, id) >= floor {
		return rel
	}
	return diplomacy.Set(rel, id, floor)
}

// DeclareWar attacks targetID. Allies must be sanctioned first and a
// country can only be fought once.
func DeclareWar(targetID string) Command {
	return func(s *state.WorldState, env *state.Env) Result {
		v := warfare.Validate(s, targetID)
		if !v.Allowed {
			name := v.Target.Name
			if name == "" {
				return reject(v.Reasons[0])
			}
			return rejectLoudly(s, env, state.CategoryMilitary, v.Reasons[0],
				fmt.Sprintf("Cannot declare war on %s! %s", name, strings.Join(v.Reasons, ". ")))
		}

		score := diplomacy.Score(s.Relationships, targetID)
		prov := diplomacy.Provoke(score)
		req := v.Requirements

		war := state.War{
			ID:               env.NextID("war"),
			Attacker:         s.Country.ID,
			Defender:         targetID,
			StartDay:         s.CurrentDay,
			Duration:         entropy.IntBetween(env.Rand, MinWarDays, MaxWarDays),
			AttackerStrength: s.MilitaryStrength,
			DefenderStrength: v.Target.Stats.Stability,
			IsPlayerInvolved: true,
			IsPlayerAttacker: true,
		}
		wars := append(slices.Clone(s.ActiveWars), war)
		warred := append(slices.Clone(s.WarredCountries), targetID)
		rel := hostile(diplomacy.Change(s.Relationships, targetID, -40), targetID)

		repBase, happyBase := 25.0, 10.0
		if v.IsEnemy {
			repBase, happyBase = 10, 3
		}
		reputation := repBase + 5*float64(len(s.WarredCountries)) + prov.Reputation
		happiness := happyBase + prov.Happiness

		levels := cloneLevels(s.SectorLevels)
		levels[atlas.Tourism] *= 1 - prov.TourismShare
		cd := s.Cooldowns
		cd.DeclareWar = req.Cooldown

		reaction := "Your people support this war against a known enemy."
		if !v.IsEnemy {
			reaction = "Your people are shocked by this unprovoked aggression!"
		}
		ev := withIcon(env.PlayerEvent(s, state.CategoryMilitary, fmt.Sprintf(
			"You declared war on %s! The war will last %d days. %s Win chance: %.0f%%.",
			v.Target.Name, war.Duration, reaction, v.WinProbability)), "war")

		return done(fmt.Sprintf("War declared against %s!", v.Target.Name), ev, state.StateDelta{
			Treasury:         state.Ptr(s.Treasury - v.Cost),
			ActiveWars:       &wars,
			WarredCountries:  &warred,
			Relationships:    &rel,
			GlobalReputation: state.Ptr(s.GlobalReputation - reputation),
			Happiness:        state.Ptr(s.Happiness - happiness),
			SectorLevels:     &levels,
			Cooldowns:        &cd,
		})
	}
}

// ImposeSanction sanctions targetID, turning it into an enemy. Sanctioning
// an ally breaks the alliance and costs more at home and abroad.
func ImposeSanction(targetID string) Command {
	return func(s *state.WorldState, env *state.Env) Result {
		target, ok := foreign(s, targetID)
		if !ok {
			return reject("Invalid target country")
		}
		if s.IsEnemy(targetID) {
			return rejectLoudly(s, env, state.CategoryDiplomatic, "Already sanctioning this country",
				fmt.Sprintf("%s is already under your sanctions.", target.Name))
		}

		wasAlly := s.IsAlly(targetID)
		prov := diplomacy.Provoke(diplomacy.Score(s.Relationships, targetID))
		reputation := 5 + prov.Reputation/2
		happiness := prov.Happiness / 2
		msg := fmt.Sprintf("You imposed economic sanctions on %s.", target.Name)
		if wasAlly {
			reputation += 10
			happiness += 5
			msg += fmt.Sprintf(" This breaks your alliance with %s! They are now your enemy.", target.Name)
		}
		rel := hostile(diplomacy.Change(s.Relationships, targetID, -20), targetID)

		d := state.StateDelta{
			Relationships:    &rel,
			GlobalReputation: state.Ptr(s.GlobalReputation - reputation),
		}
		if happiness > 0 {
			d.Happiness = state.Ptr(s.Happiness - happiness)
		}
		return done(fmt.Sprintf("Sanctions imposed on %s", target.Name),
			withIcon(env.PlayerEvent(s, state.CategoryDiplomatic, msg), "sanction"), d)
	}
}

// ProposeAlliance asks targetID for an alliance. Acceptance is as likely as
// the player's global reputation.
func ProposeAlliance(targetID string) Command {
	return func(s *state.WorldState, env *state.Env) Result {
		target, ok := foreign(s, targetID)
		if !ok {
			return reject("Invalid target country")
		}
		if s.IsAlly(targetID) {
			return reject("Already allied with this country")
		}
		if s.IsEnemy(targetID) {
			return rejectLoudly(s, env, state.CategoryDiplomatic, "Cannot ally with an enemy",
				fmt.Sprintf("%s will not consider an alliance while relations are hostile.", target.Name))
		}

		if !env.Chance(s.GlobalReputation / 100) {
			return Result{
				Message: fmt.Sprintf("%s rejected your alliance proposal", target.Name),
				Events: []state.Event{withIcon(env.PlayerEvent(s, state.CategoryDiplomatic, fmt.Sprintf(
					"%s rejected your alliance proposal. Try improving your global reputation.", target.Name)), "rejected")},
				Changes: state.StateDelta{GlobalReputation: state.Ptr(s.GlobalReputation - 2)},
			}
		}
		rel := atLeast(s.Relationships, targetID, diplomacy.AlliedMin)
		return done(fmt.Sprintf("Alliance formed with %s!", target.Name),
			withIcon(env.PlayerEvent(s, state.CategoryDiplomatic,
				fmt.Sprintf("%s accepted your alliance proposal!", target.Name)), "alliance"),
			state.StateDelta{
				Relationships:    &rel,
				GlobalReputation: state.Ptr(s.GlobalReputation + 10),
			})
	}
}

// SendAid gives amount to targetID. Aid accumulates: enough of it turns an
// enemy neutral and a neutral country into an ally.
func SendAid(targetID string, amount float64) Command {
	return func(s *state.WorldState, env *state.Env) Result {
		if amount <= 0 || amount > s.Treasury {
			return reject("Invalid amount or insufficient treasury funds")
		}
		target, ok := foreign(s, targetID)
		if !ok {
			return reject("Invalid target country")
		}

		total := s.CumulativeAid[targetID] + amount
		aid := maps.Clone(s.CumulativeAid)
		if aid == nil {
			aid = make(map[string]float64, 1)
		}
		aid[targetID] = total
		share := 0.0
		if s.GDP > 0 {
			share = total / s.GDP
		}

		reputation := 5.0
		d := state.StateDelta{
			Treasury:      state.Ptr(s.Treasury - amount),
			CumulativeAid: &aid,
		}
		msg := fmt.Sprintf("Sent $%.2fB in aid to %s", amount, target.Name)
		icon := "aid"

		switch {
		case s.IsEnemy(targetID) && share >= AidToNeutral:
			rel := atLeast(s.Relationships, targetID, diplomacy.NeutralMin)
			d.Relationships = &rel
			msg += fmt.Sprintf(". %s is now NEUTRAL with you! (Total aid: $%.2fB)", target.Name, total)
			icon = "alliance"
		case s.IsEnemy(targetID):
			msg += fmt.Sprintf(". They remain hostile. (Need $%.2fB more for neutral relations)", s.GDP*AidToNeutral-total)
		case s.IsAlly(targetID):
			reputation += 10
			msg += fmt.Sprintf(". Alliance strengthened! (Total aid: $%.2fB)", total)
		case share >= AidToAlly:
			rel := atLeast(s.Relationships, targetID, diplomacy.AlliedMin)
			d.Relationships = &rel
			reputation += 15
			msg += fmt.Sprintf(". %s has become your ALLY! (Total aid: $%.2fB)", target.Name, total)
			icon = "alliance"
		default:
			msg += fmt.Sprintf(". Relations improving. (Need $%.2fB more for alliance)", s.GDP*AidToAlly-total)
		}
		d.GlobalReputation = state.Ptr(s.GlobalReputation + reputation)

		return done(msg, withIcon(env.PlayerEvent(s, state.CategoryDiplomatic, msg), icon), d)
	}
}

// RequestAid asks targetID for money. Allies are the most generous; the
// cooldown applies either way.
func RequestAid(targetID string) Command {
	return func(s *state.WorldState, env *state.Env) Result {
		if s.Cooldowns.RequestAid > 0 {
			return reject(fmt.Sprintf("Cannot request aid again yet! Wait %d more days.", s.Cooldowns.RequestAid))
		}
		target, ok := foreign(s, targetID)
		if !ok {
			return reject("Invalid target country")
		}

		odds := requestAidOdds[diplomacy.Neutral]
		switch {
		case s.IsAlly(targetID):
			odds = requestAidOdds[diplomacy.Allied]
		case s.IsEnemy(targetID):
			odds = requestAidOdds[diplomacy.Hostile]
		}
		cd := s.Cooldowns
		cd.RequestAid = RequestAidCooldown

		if !env.Chance(odds) {
			msg := fmt.Sprintf("%s declined your request for aid.", target.Name)
			return Result{
				Message: msg,
				Events:  []state.Event{withIcon(env.PlayerEvent(s, state.CategoryDiplomatic, msg), "rejected")},
				Changes: state.StateDelta{
					GlobalReputation: state.Ptr(s.GlobalReputation - 1),
					Cooldowns:        &cd,
				},
			}
		}

		amount := s.GDP * entropy.Between(env.Rand, 0.05, 0.15)
		msg := fmt.Sprintf("%s sent $%.2fB in aid!", target.Name, amount)
		return done(msg, withIcon(env.PlayerEvent(s, state.CategoryDiplomatic, msg), "aid"), state.StateDelta{
			Treasury:         state.Ptr(s.Treasury + amount),
			Happiness:        state.Ptr(s.Happiness + 5),
			GlobalReputation: state.Ptr(s.GlobalReputation + 3),
			Cooldowns:        &cd,
		})
	}
}
