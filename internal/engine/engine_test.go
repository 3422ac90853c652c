package engine

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younisbosefi/younosomy/internal/atlas"
	"github.com/younisbosefi/younosomy/internal/economy"
	"github.com/younisbosefi/younosomy/internal/entropy"
	"github.com/younisbosefi/younosomy/internal/state"
	"github.com/younisbosefi/younosomy/internal/state/statetest"
)

// quiet draws high enough that no event, crisis, decision or uprising fires.
func quiet() *state.Env {
	return statetest.Env(entropy.NewFixed(0.999))
}

func tickN(s state.WorldState, env *state.Env, n int) state.WorldState {
	for range n {
		s = AdvanceOneDay(s, env)
	}
	return s
}

func TestCalendar(t *testing.T) {
	assert.Equal(t, "Year 1, Day 1", Calendar(0))
	assert.Equal(t, "Year 1, Day 365", Calendar(364))
	assert.Equal(t, "Year 2, Day 1", Calendar(365))
	assert.Equal(t, "Year 6, Day 1", Calendar(5*365))
}

func TestTickInterval(t *testing.T) {
	assert.Equal(t, time.Second, TickInterval(time.Second, 1))
	assert.Equal(t, 333*time.Millisecond, TickInterval(time.Second, 3))
	assert.Equal(t, time.Second, TickInterval(time.Second, 0))
}

func TestAdvanceMovesTheCalendar(t *testing.T) {
	s := statetest.Game(t, "usa")
	next := AdvanceOneDay(s, quiet())
	assert.Equal(t, 1, next.CurrentDay)

	fast := statetest.With(t, "usa", state.StateDelta{GameSpeed: state.Ptr(3)})
	next = AdvanceOneDay(fast, quiet())
	assert.Equal(t, 3, next.CurrentDay)
	assert.Equal(t, s.Score, next.PreviousScore)
}

func TestAdvanceLeavesPausedAndFinishedGamesAlone(t *testing.T) {
	paused := statetest.With(t, "usa", state.StateDelta{IsPlaying: state.Ptr(false)})
	env := quiet()
	assert.Equal(t, paused, AdvanceOneDay(paused, env))

	over := statetest.With(t, "usa", state.StateDelta{Outcome: state.Ptr(state.OutcomeOverthrown)})
	assert.Equal(t, over, AdvanceOneDay(over, env))
	assert.Zero(t, env.Rand.(*entropy.Fixed).Draws())
}

func TestAdvanceDoesNotTouchItsInput(t *testing.T) {
	s := statetest.Game(t, "usa")
	before := s.Clone()
	AdvanceOneDay(s, statetest.Seeded(7))
	assert.Equal(t, before, s)
}

func TestCooldownsDecayBySpeed(t *testing.T) {
	s := statetest.With(t, "usa", state.StateDelta{
		GameSpeed: state.Ptr(3),
		Cooldowns: &state.Cooldowns{PrintMoney: 100, DeclareWar: 10, RequestAid: 15},
	})
	next := tickN(s, quiet(), 5)

	assert.Equal(t, 85, next.Cooldowns.PrintMoney)
	assert.Equal(t, 0, next.Cooldowns.DeclareWar)
	assert.Equal(t, 0, next.Cooldowns.RequestAid)
	assert.Equal(t, 0, next.Cooldowns.BorrowIMF)
}

func TestSectorsDecay(t *testing.T) {
	s := statetest.Game(t, "usa")
	next := AdvanceOneDay(s, quiet())
	for _, sector := range atlas.Sectors {
		assert.InDelta(t, s.Sector(sector)*(1-SectorDecay), next.Sector(sector), 1e-9, sector)
	}
}

func TestPrintTallyForgetsEverySixtyDays(t *testing.T) {
	s := statetest.With(t, "usa", state.StateDelta{
		CurrentDay:            state.Ptr(58),
		RecentPrintMoneyCount: state.Ptr(3),
	})
	env := quiet()

	s = AdvanceOneDay(s, env)
	assert.Equal(t, 3, s.RecentPrintMoneyCount)
	s = AdvanceOneDay(s, env)
	assert.Equal(t, 2, s.RecentPrintMoneyCount)
}

func TestLoanIsPaidOff(t *testing.T) {
	s := statetest.Game(t, "usa")
	s = state.Apply(s, state.StateDelta{
		Debt: state.Ptr(s.Debt + 10),
		BorrowedMoney: &[]state.Loan{{
			ID: "imf-1", Amount: 10, Remaining: 10, InterestRate: 4.5,
			MonthlyPayment: 2.5, DaysUntilNextPayment: PaymentDays, Source: "IMF",
		}},
	})
	startDebt := s.Debt
	env := quiet()

	s = tickN(s, env, 4*PaymentDays)
	require.Len(t, s.BorrowedMoney, 1)
	assert.InDelta(t, 2, s.BorrowedMoney[0].Remaining, 1e-9)
	assert.InDelta(t, startDebt-8, s.Debt, 1e-9)

	s = tickN(s, env, PaymentDays)
	assert.Empty(t, s.BorrowedMoney)
	assert.InDelta(t, startDebt-10, s.Debt, 1e-9)
	assert.False(t, s.HasDefaulted)
}

func TestLoanFallsBackOnReserves(t *testing.T) {
	s := statetest.With(t, "usa", state.StateDelta{
		Treasury: state.Ptr(0.0),
		Reserves: state.Ptr(500.0),
		BorrowedMoney: &[]state.Loan{{
			ID: "imf-1", Amount: 100, Remaining: 100, MonthlyPayment: 50, DaysUntilNextPayment: 1,
		}},
	})
	next := AdvanceOneDay(s, quiet())

	assert.False(t, next.HasDefaulted)
	assert.Less(t, next.Reserves, 460.0)
	assert.InDelta(t, 60, next.BorrowedMoney[0].Remaining, 1e-9)
}

func TestMissedPaymentDefaults(t *testing.T) {
	s := statetest.With(t, "usa", state.StateDelta{
		Treasury: state.Ptr(0.0),
		Reserves: state.Ptr(0.0),
		BorrowedMoney: &[]state.Loan{{
			ID: "imf-1", Amount: 5000, Remaining: 5000, MonthlyPayment: 1000, DaysUntilNextPayment: 1,
		}},
	})
	next := AdvanceOneDay(s, quiet())

	assert.True(t, next.HasDefaulted)
	require.Len(t, next.BorrowedMoney, 1)
	assert.Equal(t, 5000.0, next.BorrowedMoney[0].Remaining)
	assert.Equal(t, s.Debt, next.Debt)
	assert.Contains(t, next.Events[len(next.Events)-1].Message, "defaulted")
	assert.Less(t, next.Score, s.Score-400)
}

func TestWarWonAtTheEndOfItsTerm(t *testing.T) {
	s := statetest.With(t, "usa", state.StateDelta{
		ActiveWars: &[]state.War{{
			ID: "war-1", Attacker: "usa", Defender: "russia", Duration: 1,
			AttackerStrength: 70, DefenderStrength: 50,
			IsPlayerInvolved: true, IsPlayerAttacker: true,
		}},
	})
	require.True(t, s.IsInWar)

	next := AdvanceOneDay(s, statetest.Env(entropy.NewFixed(0)))

	assert.InDelta(t, s.GDP*1.15, next.GDP, 1e-6)
	assert.Equal(t, min(100, s.MilitaryStrength+20), next.MilitaryStrength)
	require.NotNil(t, next.PendingWarResult)
	assert.True(t, next.PendingWarResult.PlayerWon)
	assert.Equal(t, "Russia", next.PendingWarResult.EnemyName)
	assert.Empty(t, next.ActiveWars)
	assert.False(t, next.IsInWar)
}

func TestWarLostAtTheEndOfItsTerm(t *testing.T) {
	s := statetest.With(t, "usa", state.StateDelta{
		ActiveWars: &[]state.War{{
			ID: "war-1", Attacker: "usa", Defender: "russia", Duration: 1,
			IsPlayerInvolved: true, IsPlayerAttacker: true,
		}},
	})
	next := AdvanceOneDay(s, quiet())

	require.NotNil(t, next.PendingWarResult)
	assert.False(t, next.PendingWarResult.PlayerWon)
	assert.InDelta(t, s.GDP*0.75, next.GDP, 1e-6)
	assert.InDelta(t, s.Debt+s.GDP*0.30, next.Debt, 1e-6)
}

func TestSecondWarWaitsForAcknowledgement(t *testing.T) {
	war := func(id, enemy string) state.War {
		return state.War{ID: id, Attacker: "usa", Defender: enemy, Duration: 1, IsPlayerInvolved: true, IsPlayerAttacker: true}
	}
	s := statetest.With(t, "usa", state.StateDelta{
		ActiveWars: &[]state.War{war("war-1", "russia"), war("war-2", "iran")},
	})
	env := quiet()

	s = AdvanceOneDay(s, env)
	require.NotNil(t, s.PendingWarResult)
	assert.Equal(t, "russia", s.PendingWarResult.EnemyID)
	require.Len(t, s.ActiveWars, 1)
	assert.Equal(t, 0, s.ActiveWars[0].Duration)

	s = AdvanceOneDay(s, env)
	assert.Equal(t, "russia", s.PendingWarResult.EnemyID)
	require.Len(t, s.ActiveWars, 1)

	s = state.Apply(s, state.StateDelta{ClearPendingWarResult: true})
	s = AdvanceOneDay(s, env)
	require.NotNil(t, s.PendingWarResult)
	assert.Equal(t, "iran", s.PendingWarResult.EnemyID)
	assert.Empty(t, s.ActiveWars)
}

func TestGameCompletes(t *testing.T) {
	s := statetest.Game(t, "usa")
	s = state.Apply(s, state.StateDelta{CurrentDay: state.Ptr(s.TotalDays - 1)})

	next := AdvanceOneDay(s, quiet())
	assert.Equal(t, state.OutcomeCompleted, next.Outcome)
	assert.False(t, next.IsPlaying)
	assert.Equal(t, s.TotalDays, next.CurrentDay)
	assert.Equal(t, next, AdvanceOneDay(next, quiet()))
}

func TestUprisingRate(t *testing.T) {
	const (
		runs      = 4000
		ticks     = 50
		happiness = 5.0
	)
	env := statetest.Seeded(42)
	hits := 0
	for range runs {
		for range ticks {
			if riot(happiness, env) {
				hits++
				break
			}
		}
	}
	want := 1 - math.Pow(1-(15-happiness)/15*0.02, ticks)
	assert.InDelta(t, want, float64(hits)/runs, 0.04)
}

func TestNoUprisingAboveTheLine(t *testing.T) {
	env := statetest.Env(entropy.NewFixed(0))
	assert.False(t, riot(UprisingLine, env))
	assert.True(t, riot(UprisingLine-1, env))
}

func TestSeededRunsReplay(t *testing.T) {
	a := tickN(statetest.Game(t, "brazil"), statetest.Seeded(99), 200)
	b := tickN(statetest.Game(t, "brazil"), statetest.Seeded(99), 200)
	assert.Equal(t, a, b)
}

func TestInvariantsHold(t *testing.T) {
	for _, id := range []string{"usa", "brazil", "northkorea"} {
		t.Run(id, func(t *testing.T) {
			s := statetest.Game(t, id)
			env := statetest.Seeded(int64(len(id)))
			for range 1500 {
				if s.Over() {
					break
				}
				s = AdvanceOneDay(s, env)

				for _, v := range []float64{s.Happiness, s.Security, s.MilitaryStrength, s.GlobalReputation} {
					require.GreaterOrEqual(t, v, 0.0)
					require.LessOrEqual(t, v, 100.0)
				}
				require.GreaterOrEqual(t, s.InflationRate, 0.0)
				require.LessOrEqual(t, s.InflationRate, 25.0)
				require.GreaterOrEqual(t, s.UnemploymentRate, 1.0)
				require.LessOrEqual(t, s.UnemploymentRate, 40.0)
				require.GreaterOrEqual(t, s.Treasury, 0.0)
				require.GreaterOrEqual(t, s.GDP, 0.0)
				for other, v := range s.Relationships {
					require.True(t, v >= 0 && v <= 100, "%s at %v", other, v)
				}
				c := s.Cooldowns
				require.True(t, c.PrintMoney >= 0 && c.BorrowIMF >= 0 && c.DeclareWar >= 0 && c.AdjustTaxes >= 0 && c.RequestAid >= 0)
				require.LessOrEqual(t, len(s.Events), state.MaxEvents)
				require.Equal(t, len(s.ActiveWars) > 0, s.IsInWar)
			}
		})
	}
}

func TestHappinessDragsGDP(t *testing.T) {
	s := statetest.Game(t, "usa")
	calm := AdvanceOneDay(s, quiet())

	unhappy := state.Apply(s, state.StateDelta{InflationRate: state.Ptr(20.0), UnemploymentRate: state.Ptr(30.0)})
	h := economy.Happiness(&unhappy)
	require.Less(t, h, 30.0)
	angry := AdvanceOneDay(unhappy, quiet())

	assert.Less(t, angry.GDP/s.GDP, calm.GDP/s.GDP)
}
