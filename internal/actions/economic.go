package actions

import (
	"fmt"
	"math"
	"slices"

	"github.com/younisbosefi/younosomy/internal/atlas"
	"github.com/younisbosefi/younosomy/internal/economy"
	"github.com/younisbosefi/younosomy/internal/state"
)

// Cooldowns, in days.
const (
	PrintMoneyCooldown = 30
	BorrowCooldown     = 90
)

// IMFRate is the annual interest on IMF loans, in percent.
const IMFRate = 4.5

// printPenalty is the public reaction to printing money again while
// earlier printing is still remembered.
type printPenalty struct {
	Happiness  float64
	Reputation float64
	GDPFactor  float64
}

func printPenaltyFor(prior int) printPenalty {
	switch {
	case prior <= 0:
		return printPenalty{GDPFactor: 1}
	case prior == 1:
		return printPenalty{Happiness: 5, GDPFactor: 1}
	case prior == 2:
		return printPenalty{Happiness: 10, Reputation: 10, GDPFactor: 1}
	default:
		return printPenalty{Happiness: 15, Reputation: 20, GDPFactor: 0.95}
	}
}

// AdjustInterestRate sets the central bank rate.
func AdjustInterestRate(rate float64) Command {
	return func(s *state.WorldState, env *state.Env) Result {
		rate := max(0, min(10, rate))
		verb := "decreased"
		if rate > s.InterestRate {
			verb = "increased"
		}
		msg := fmt.Sprintf("You %s the interest rate by %.1f%% to %.1f%%", verb, math.Abs(rate-s.InterestRate), rate)
		return done(
			fmt.Sprintf("Interest rate adjusted to %.1f%%", rate),
			withIcon(env.PlayerEvent(s, state.CategoryEconomic, msg), "interest"),
			state.StateDelta{InterestRate: state.Ptr(rate)},
		)
	}
}

// PrintMoney adds amount to the treasury at the cost of inflation. Each
// print while earlier ones are remembered is more inflationary and less
// popular than the last.
func PrintMoney(amount float64) Command {
	return func(s *state.WorldState, env *state.Env) Result {
		if s.Cooldowns.PrintMoney > 0 {
			return reject(fmt.Sprintf("Action on cooldown! Wait %d more days.", s.Cooldowns.PrintMoney))
		}
		if amount <= 0 || s.GDP <= 0 {
			return reject("Invalid amount")
		}

		prior := s.RecentPrintMoneyCount
		escalation := 1 + 0.5*float64(prior)
		inflation := amount / s.GDP * 10 * escalation
		pen := printPenaltyFor(prior)

		cd := s.Cooldowns
		cd.PrintMoney = PrintMoneyCooldown
		d := state.StateDelta{
			Treasury:              state.Ptr(s.Treasury + amount),
			InflationRate:         state.Ptr(s.InflationRate + inflation),
			RecentPrintMoneyCount: state.Ptr(prior + 1),
			Cooldowns:             &cd,
		}
		if pen.Happiness > 0 {
			d.Happiness = state.Ptr(s.Happiness - pen.Happiness)
		}
		if pen.Reputation > 0 {
			d.GlobalReputation = state.Ptr(s.GlobalReputation - pen.Reputation)
		}
		if pen.GDPFactor != 1 {
			d.GDP = state.Ptr(s.GDP * pen.GDPFactor)
		}

		msg := fmt.Sprintf("You printed $%.2fB. Inflation spiked by %.1f%%!", amount, inflation)
		if prior > 0 {
			msg += fmt.Sprintf(" Markets remember the last %d prints.", prior)
		}
		return done("Printed money but inflation increased significantly!",
			withIcon(env.PlayerEvent(s, state.CategoryEconomic, msg), "print"), d)
	}
}

// BorrowFromIMF takes a ten-year IMF loan of up to half of GDP.
func BorrowFromIMF(amount float64) Command {
	return func(s *state.WorldState, env *state.Env) Result {
		if s.Cooldowns.BorrowIMF > 0 {
			return reject(fmt.Sprintf("Cannot borrow again yet! Wait %d more days.", s.Cooldowns.BorrowIMF))
		}
		if amount <= 0 || amount > s.GDP*0.5 {
			return reject("Invalid amount (maximum 50% of GDP)")
		}

		loan := state.Loan{
			ID:                   env.NextID("imf"),
			Amount:               amount,
			Remaining:            amount,
			InterestRate:         IMFRate,
			MonthlyPayment:       economy.LoanPayment(amount, IMFRate),
			DaysUntilNextPayment: 30,
			Source:               "IMF",
		}
		loans := append(slices.Clone(s.BorrowedMoney), loan)
		cd := s.Cooldowns
		cd.BorrowIMF = BorrowCooldown

		return done(fmt.Sprintf("Borrowed from IMF at %.1f%% interest", IMFRate),
			withIcon(env.PlayerEvent(s, state.CategoryEconomic, fmt.Sprintf(
				"You borrowed $%.2fB from the IMF. Monthly payment: $%.2fB.", amount, loan.MonthlyPayment)), "bank"),
			state.StateDelta{
				Treasury:      state.Ptr(s.Treasury + amount),
				Debt:          state.Ptr(s.Debt + amount),
				BorrowedMoney: &loans,
				Cooldowns:     &cd,
			})
	}
}

// AddToReserves moves money from the treasury into emergency reserves.
func AddToReserves(amount float64) Command {
	return func(s *state.WorldState, env *state.Env) Result {
		if amount <= 0 || amount > s.Treasury {
			return reject("Invalid amount or insufficient treasury funds")
		}
		return done("Moved to reserves",
			withIcon(env.PlayerEvent(s, state.CategoryEconomic,
				fmt.Sprintf("You added $%.2fB to emergency reserves", amount)), "reserves"),
			state.StateDelta{
				Treasury: state.Ptr(s.Treasury - amount),
				Reserves: state.Ptr(s.Reserves + amount),
			})
	}
}

// PayOffDebt repays debt from the treasury. Paying more than is owed only
// spends what is owed.
func PayOffDebt(amount float64) Command {
	return func(s *state.WorldState, env *state.Env) Result {
		if amount <= 0 || amount > s.Treasury {
			return reject("Invalid amount or insufficient treasury funds")
		}
		if s.Debt <= 0 {
			return reject("No debt to pay off")
		}
		paid := min(amount, s.Debt)
		return done("Paid off debt",
			withIcon(env.PlayerEvent(s, state.CategoryEconomic,
				fmt.Sprintf("You paid off $%.2fB of debt. Debt-to-GDP ratio improved!", paid)), "debt"),
			state.StateDelta{
				Treasury:         state.Ptr(s.Treasury - paid),
				Debt:             state.Ptr(s.Debt - paid),
				GlobalReputation: state.Ptr(s.GlobalReputation + 2),
				Happiness:        state.Ptr(s.Happiness + 1),
			})
	}
}

// SpendOnSector invests amount in sector. Returns depend on the country's
// potential in that sector.
func SpendOnSector(sector atlas.Sector, amount float64) Command {
	return func(s *state.WorldState, env *state.Env) Result {
		if !sector.Valid() {
			return reject(fmt.Sprintf("Unknown sector %q", sector))
		}
		if amount <= 0 || amount > s.Treasury {
			return reject("Invalid amount or insufficient treasury funds")
		}

		eff := economy.SectorSpending(s.Country.ID, sector, amount, s.Sector(sector))
		levels := cloneLevels(s.SectorLevels)
		levels[sector] += eff.LevelIncrease

		d := state.StateDelta{
			Treasury:         state.Ptr(s.Treasury - amount),
			SectorLevels:     &levels,
			Happiness:        state.Ptr(s.Happiness + eff.Happiness),
			GDPGrowthRate:    state.Ptr(s.GDPGrowthRate + eff.GDPGrowth),
			Revenue:          state.Ptr(s.Revenue + eff.Revenue),
			UnemploymentRate: state.Ptr(max(1, s.UnemploymentRate-eff.UnemploymentReduction)),
		}
		if eff.Military > 0 {
			d.MilitaryStrength = state.Ptr(min(100, s.MilitaryStrength+eff.Military))
		}
		if eff.Security > 0 {
			d.Security = state.Ptr(min(100, s.Security+eff.Security))
		}

		return done(eff.Message,
			withIcon(env.PlayerEvent(s, state.CategoryDomestic,
				fmt.Sprintf("Spent $%.2fB on %s. %s", amount, sector, eff.Message)), "construction"),
			d)
	}
}
