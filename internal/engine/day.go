// Package engine advances a game one simulated day at a time and serializes
// the host's interactions with it.
package engine

import (
	"fmt"
	"maps"
	"slices"

	"github.com/younisbosefi/younosomy/internal/atlas"
	"github.com/younisbosefi/younosomy/internal/decisions"
	"github.com/younisbosefi/younosomy/internal/diplomacy"
	"github.com/younisbosefi/younosomy/internal/economy"
	"github.com/younisbosefi/younosomy/internal/events"
	"github.com/younisbosefi/younosomy/internal/state"
	"github.com/younisbosefi/younosomy/internal/warfare"
)

const (
	// SectorDecay is the share of each sector level lost per day.
	SectorDecay = 0.003
	// PrintDecayDays is how often the print-money tally forgets one print.
	PrintDecayDays = 60
	// PaymentDays is the interval between loan payments.
	PaymentDays = 30
	// UprisingLine is the happiness below which uprisings can break out.
	UprisingLine = 15
)

// AdvanceOneDay returns the world one tick after prev. A tick covers
// GameSpeed simulated days. Finished or paused games are returned as is.
//
// Every random draw comes from env, in a fixed order: crises, world
// events, battle reports, the uprising roll, the decision roll, then war
// resolution.
func AdvanceOneDay(prev state.WorldState, env *state.Env) state.WorldState {
	if prev.Over() || !prev.IsPlaying {
		return prev
	}
	s := &prev
	speed := s.Speed()
	fs := float64(speed)
	day := s.CurrentDay + speed

	growth := economy.GrowthRate(s)
	gdp := s.GDP * (1 + growth/100/365*fs)

	withGDP := *s
	withGDP.GDP = gdp
	withGDP.GDPGrowthRate = growth
	revenue := economy.DailyRevenue(&withGDP)
	treasury := s.Treasury + revenue*0.1*fs

	inflation := economy.Inflation(s, 0)
	unemployment := economy.Unemployment(s)
	happiness := economy.Happiness(s)
	gdp *= 1 - economy.HappinessDrag(happiness)/100*fs

	printed := s.RecentPrintMoneyCount
	if s.CurrentDay/PrintDecayDays != day/PrintDecayDays {
		printed = max(0, printed-1)
	}

	// view is the world as the generators see it today.
	view := *s
	view.CurrentDay = day

	var log []state.Event

	levels := make(map[atlas.Sector]float64, len(s.SectorLevels))
	for k, v := range s.SectorLevels {
		levels[k] = max(0, v*(1-SectorDecay*fs))
	}
	log = append(log, events.Collapses(&view, env, s.SectorLevels, levels)...)

	view.SectorLevels = levels
	view.GDP = gdp
	crises := events.Crises(&view, env)
	hit := events.Total(crises)
	gdp = max(0, gdp+hit.GDP)
	happiness = max(0, happiness+hit.Happiness)
	log = append(log, crises...)

	pay := serviceLoans(s, speed, treasury, revenue, gdp)
	treasury = pay.treasury
	ratio := 0.0
	if gdp > 0 {
		ratio = pay.debt / gdp * 100
	}

	view.GDP = gdp
	view.GDPGrowthRate = growth
	view.Debt = pay.debt
	view.DebtToGDPRatio = ratio
	view.InflationRate = inflation
	view.UnemploymentRate = unemployment
	view.Happiness = happiness
	view.Treasury = treasury
	view.Revenue = revenue
	view.Reserves = pay.reserves

	world := events.World(&view, env)
	kept, lifted := events.LiftSanctions(&view, env)
	for _, id := range events.Sanctioners(world) {
		if !slices.Contains(kept, id) {
			kept = append(kept, id)
		}
	}
	log = append(log, world...)
	log = append(log, lifted...)
	log = append(log, events.Battles(&view, env)...)
	log = append(log, events.Advice(&view, env)...)

	warnings, warned := events.Warnings(&view, env)
	log = append(log, warnings...)
	lastWarning := maps.Clone(s.LastWarningDay)
	if lastWarning == nil {
		lastWarning = make(map[state.WarningKind]int)
	}
	for _, k := range warned {
		lastWarning[k] = day
	}

	previous := s.PreviousHappiness
	if happiness < UprisingLine && s.Happiness >= UprisingLine {
		previous = s.Happiness
	}
	uprising := s.UprisingTriggered
	if !uprising && riot(happiness, env) {
		uprising = true
		ev := env.CriticalEvent(&view, state.CategoryDomestic,
			"UPRISING! Mass protests demand your resignation. Crush the revolt or step down.")
		ev.Icon = "uprising"
		log = append(log, ev)
	}

	pending := slices.Clone(s.PendingDecisions)
	if d, ok := decisions.Generate(&view, env); ok {
		pending = append(pending, d)
		ev := env.CriticalEvent(&view, state.CategoryDomestic, "DECISION REQUIRED: "+d.Title)
		ev.Icon = d.Icon
		log = append(log, ev)
	}

	imp := events.Total(world)
	rel := s.Relationships
	for id, change := range imp.RelationshipChanges {
		rel = diplomacy.Change(rel, id, change)
	}

	d := state.StateDelta{
		CurrentDay:            state.Ptr(day),
		Cooldowns:             state.Ptr(s.Cooldowns.Tick(speed)),
		GDP:                   state.Ptr(gdp),
		GDPGrowthRate:         state.Ptr(growth + imp.GDPGrowth),
		Debt:                  state.Ptr(pay.debt),
		DebtToGDPRatio:        state.Ptr(economy.Round(ratio, 2)),
		InflationRate:         state.Ptr(inflation + imp.Inflation),
		UnemploymentRate:      state.Ptr(unemployment + imp.Unemployment),
		Treasury:              state.Ptr(treasury + imp.Treasury),
		Revenue:               state.Ptr(revenue + imp.Revenue),
		Reserves:              state.Ptr(pay.reserves),
		BorrowedMoney:         state.Ptr(pay.loans),
		Happiness:             state.Ptr(happiness + imp.Happiness),
		GlobalReputation:      state.Ptr(s.GlobalReputation + imp.Reputation),
		Relationships:         state.Ptr(rel),
		SanctionsOnUs:         state.Ptr(kept),
		SectorLevels:          state.Ptr(levels),
		UprisingTriggered:     state.Ptr(uprising),
		PreviousHappiness:     state.Ptr(previous),
		RecentPrintMoneyCount: state.Ptr(printed),
		PendingDecisions:      state.Ptr(pending),
		LastWarningDay:        state.Ptr(lastWarning),
	}

	if pay.defaulted {
		d.HasDefaulted = state.Ptr(true)
		if !s.HasDefaulted {
			ev := env.CriticalEvent(&view, state.CategoryEconomic,
				"ECONOMIC COLLAPSE! Your government has defaulted on its debt. Markets are in freefall.")
			ev.Icon = "default"
			log = append(log, ev)
		}
	}

	wars, result, spoils := matureWars(s, speed, env)
	d.ActiveWars = state.Ptr(wars)
	if result != nil {
		d = d.Merge(spoils)
		d.PendingWarResult = result
		log = append(log, warEvent(&view, env, *result))
	}

	if day >= s.TotalDays {
		d.Outcome = state.Ptr(state.OutcomeCompleted)
		d.IsPlaying = state.Ptr(false)
		ev := env.NewEvent(day, state.EventWorld, state.CategorySystem, fmt.Sprintf(
			"Your term is over. %s survived %d days under your leadership.", s.Country.Name, s.TotalDays))
		ev.Icon = "complete"
		log = append(log, ev)
	}

	d.Events = state.Ptr(state.AppendEvents(s.Events, log...))

	next := state.Apply(prev, d)
	next.PreviousScore = prev.Score
	next.Score = economy.Round(prev.Score+economy.ScoreDelta(&prev, &next), 1)
	next.LastSequence = env.IDs.Last()
	return next
}

// riot rolls for an uprising at happiness h.
func riot(h float64, env *state.Env) bool {
	return h < UprisingLine && env.Chance(economy.UprisingChance(h))
}

// repayment is the books after a day of loan servicing.
type repayment struct {
	loans     []state.Loan
	treasury  float64
	reserves  float64
	debt      float64
	defaulted bool
}

// serviceLoans accrues reserves, advances every loan's payment clock and
// collects the payments that fell due, from the treasury first and then
// the reserves. A missed payment leaves the loan untouched.
func serviceLoans(s *state.WorldState, speed int, treasury, revenue, gdp float64) repayment {
	r := repayment{
		loans:    make([]state.Loan, 0, len(s.BorrowedMoney)),
		treasury: treasury,
		reserves: min(gdp*0.05, s.Reserves+revenue*0.01*float64(speed)),
		debt:     s.Debt,
	}

	for _, loan := range s.BorrowedMoney {
		loan.DaysUntilNextPayment -= speed
		if loan.DaysUntilNextPayment > 0 {
			r.loans = append(r.loans, loan)
			continue
		}
		loan.DaysUntilNextPayment = PaymentDays
		due := loan.MonthlyPayment
		switch {
		case r.treasury >= due:
			r.treasury -= due
		case r.reserves >= due:
			r.reserves -= due
		default:
			r.defaulted = true
			r.loans = append(r.loans, loan)
			continue
		}
		principal := min(due*0.8, loan.Remaining)
		loan.Remaining -= principal
		r.debt = max(0, r.debt-principal)
		if loan.Remaining > 1e-9 {
			r.loans = append(r.loans, loan)
		}
	}
	r.reserves = max(0, r.reserves)
	return r
}

// matureWars counts every war down by speed days. The first finished player
// war is resolved against the pre-tick state when no earlier result is
// still waiting; other finished player wars stay listed at zero days until
// the host acknowledges.
func matureWars(s *state.WorldState, speed int, env *state.Env) ([]state.War, *state.WarResult, state.StateDelta) {
	var (
		out    = make([]state.War, 0, len(s.ActiveWars))
		result *state.WarResult
		spoils state.StateDelta
	)
	for _, w := range s.ActiveWars {
		w.Duration -= speed
		if w.Duration > 0 {
			out = append(out, w)
			continue
		}
		if !w.IsPlayerInvolved {
			continue
		}
		if s.PendingWarResult == nil && result == nil {
			r, d := warfare.Resolve(s, w, env.Rand)
			result, spoils = &r, d
			continue
		}
		w.Duration = 0
		out = append(out, w)
	}
	return out, result, spoils
}

func warEvent(s *state.WorldState, env *state.Env, r state.WarResult) state.Event {
	if r.PlayerWon {
		ev := env.PlayerEvent(s, state.CategoryMilitary, fmt.Sprintf(
			"VICTORY! Your forces defeated %s. The nation celebrates as the spoils of war pour in.", r.EnemyName))
		ev.Icon = "victory"
		return ev
	}
	ev := env.CriticalEvent(s, state.CategoryMilitary, fmt.Sprintf(
		"DEFEAT! %s has beaten your armies. The country pays a heavy price.", r.EnemyName))
	ev.Icon = "defeat"
	return ev
}
