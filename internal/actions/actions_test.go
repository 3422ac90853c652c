package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younisbosefi/younosomy/internal/atlas"
	"github.com/younisbosefi/younosomy/internal/economy"
	"github.com/younisbosefi/younosomy/internal/entropy"
	"github.com/younisbosefi/younosomy/internal/state"
	"github.com/younisbosefi/younosomy/internal/state/statetest"
)

func fixedEnv(vals ...float64) *state.Env {
	return statetest.Env(entropy.NewFixed(vals...))
}

func run(t *testing.T, s state.WorldState, cmd Command, env *state.Env) (Result, state.WorldState) {
	t.Helper()
	res := cmd(&s, env)
	return res, state.Apply(s, res.Changes)
}

func TestRejectionsLeaveStateAlone(t *testing.T) {
	fresh := statetest.Game(t, "usa")
	onCooldown := statetest.With(t, "usa", state.StateDelta{Cooldowns: &state.Cooldowns{
		PrintMoney: 5, BorrowIMF: 5, DeclareWar: 5, RequestAid: 5,
	}})
	broke := statetest.With(t, "usa", state.StateDelta{Treasury: state.Ptr(0.0)})

	tests := []struct {
		name string
		s    state.WorldState
		cmd  Command
	}{
		{"print on cooldown", onCooldown, PrintMoney(10)},
		{"print nothing", fresh, PrintMoney(0)},
		{"borrow on cooldown", onCooldown, BorrowFromIMF(10)},
		{"borrow too much", fresh, BorrowFromIMF(fresh.GDP * 0.6)},
		{"reserves beyond treasury", fresh, AddToReserves(fresh.Treasury + 1)},
		{"repay beyond treasury", fresh, PayOffDebt(fresh.Treasury + 1)},
		{"unknown sector", fresh, SpendOnSector("space", 10)},
		{"spend nothing", fresh, SpendOnSector(atlas.Health, -1)},
		{"war on ally", fresh, DeclareWar("uk")},
		{"war on cooldown", onCooldown, DeclareWar("russia")},
		{"war on self", fresh, DeclareWar("usa")},
		{"sanction enemy twice", fresh, ImposeSanction("russia")},
		{"ally twice", fresh, ProposeAlliance("uk")},
		{"ally an enemy", fresh, ProposeAlliance("russia")},
		{"aid unknown", fresh, SendAid("atlantis", 1)},
		{"aid beyond treasury", fresh, SendAid("brazil", fresh.Treasury + 1)},
		{"request on cooldown", onCooldown, RequestAid("uk")},
		{"cooperate with a stranger", fresh, MilitaryCooperation("brazil")},
		{"gesture while broke", broke, CulturalExchange("brazil")},
		{"spy while broke", broke, EspionageMission("russia")},
		{"repress without uprising", fresh, RepressUprising()},
		{"surrender without uprising", fresh, Surrender()},
		{"crack down without uprising", fresh, CrackDown()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := entropy.NewFixed(0)
			s := tt.s
			res := tt.cmd(&s, statetest.Env(src))
			assert.False(t, res.Success)
			assert.NotEmpty(t, res.Message)
			assert.True(t, res.Changes.IsZero(), "rejected command changed state")
			assert.Zero(t, src.Draws(), "rejected command consumed randomness")
			assert.Equal(t, tt.s, s, "input state mutated")
			for _, ev := range res.Events {
				assert.Equal(t, state.EventCritical, ev.Type)
			}
		})
	}
}

func TestAdjustInterestRate(t *testing.T) {
	s := statetest.Game(t, "usa")
	res, next := run(t, s, AdjustInterestRate(6), fixedEnv())
	assert.True(t, res.Success)
	assert.Equal(t, 6.0, next.InterestRate)
	require.Len(t, res.Events, 1)
	assert.Contains(t, res.Events[0].Message, "increased")

	_, next = run(t, s, AdjustInterestRate(40), fixedEnv())
	assert.Equal(t, 10.0, next.InterestRate)
}

func TestPrintMoneyEscalates(t *testing.T) {
	s := statetest.Game(t, "usa")
	amount := s.GDP * 0.01

	var res Result
	var before state.WorldState
	for range 4 {
		s.Cooldowns.PrintMoney = 0
		before = s
		res, s = run(t, s, PrintMoney(amount), fixedEnv())
		require.True(t, res.Success)
	}

	assert.Equal(t, 4, s.RecentPrintMoneyCount)
	assert.Equal(t, PrintMoneyCooldown, s.Cooldowns.PrintMoney)
	d := res.Changes
	assert.InDelta(t, before.Happiness-15, *d.Happiness, 1e-9)
	assert.InDelta(t, before.GlobalReputation-20, *d.GlobalReputation, 1e-9)
	assert.InDelta(t, before.GDP*0.95, *d.GDP, 1e-9)
	assert.InDelta(t, before.Treasury+amount, *d.Treasury, 1e-9)
	// escalation 1 + 0.5*3
	assert.InDelta(t, before.InflationRate+amount/before.GDP*10*2.5, *d.InflationRate, 1e-9)
}

func TestFirstPrintIsFree(t *testing.T) {
	s := statetest.Game(t, "usa")
	res, _ := run(t, s, PrintMoney(10), fixedEnv())
	require.True(t, res.Success)
	assert.Nil(t, res.Changes.Happiness)
	assert.Nil(t, res.Changes.GlobalReputation)
	assert.Nil(t, res.Changes.GDP)
}

func TestBorrowFromIMF(t *testing.T) {
	s := statetest.Game(t, "usa")
	res, next := run(t, s, BorrowFromIMF(1200), fixedEnv())
	require.True(t, res.Success)

	require.Len(t, next.BorrowedMoney, 1)
	loan := next.BorrowedMoney[0]
	assert.Equal(t, IMFRate, loan.InterestRate)
	assert.Equal(t, economy.LoanPayment(1200, IMFRate), loan.MonthlyPayment)
	assert.Equal(t, 30, loan.DaysUntilNextPayment)
	assert.InDelta(t, s.Debt+1200, next.Debt, 1e-9)
	assert.InDelta(t, s.Treasury+1200, next.Treasury, 1e-9)
	assert.Equal(t, BorrowCooldown, next.Cooldowns.BorrowIMF)
}

func TestReservesAndDebt(t *testing.T) {
	s := statetest.Game(t, "usa")
	_, next := run(t, s, AddToReserves(100), fixedEnv())
	assert.InDelta(t, s.Treasury-100, next.Treasury, 1e-9)
	assert.InDelta(t, s.Reserves+100, next.Reserves, 1e-9)

	s = statetest.With(t, "usa", state.StateDelta{Debt: state.Ptr(50.0)})
	res, next := run(t, s, PayOffDebt(80), fixedEnv())
	require.True(t, res.Success)
	assert.Zero(t, next.Debt)
	assert.InDelta(t, s.Treasury-50, next.Treasury, 1e-9)
	assert.Equal(t, s.GlobalReputation+2, next.GlobalReputation)
	assert.Equal(t, s.Happiness+1, next.Happiness)

	s = statetest.With(t, "usa", state.StateDelta{Debt: state.Ptr(0.0)})
	res, _ = run(t, s, PayOffDebt(10), fixedEnv())
	assert.False(t, res.Success)
}

func TestSpendOnMilitaryRaisesStrength(t *testing.T) {
	s := statetest.With(t, "usa", state.StateDelta{MilitaryStrength: state.Ptr(50.0)})
	res, next := run(t, s, SpendOnSector(atlas.Military, 100), fixedEnv())
	require.True(t, res.Success)

	gain := next.Sector(atlas.Military) - s.Sector(atlas.Military)
	assert.Greater(t, gain, 0.0)
	assert.InDelta(t, 50+gain*0.5, next.MilitaryStrength, 1e-9)
	assert.InDelta(t, s.Treasury-100, next.Treasury, 1e-9)
}

func TestSpendOnSecurityRaisesSecurity(t *testing.T) {
	s := statetest.Game(t, "usa")
	_, next := run(t, s, SpendOnSector(atlas.Security, 100), fixedEnv())
	assert.Greater(t, next.Security, s.Security)
	assert.Equal(t, s.MilitaryStrength, next.MilitaryStrength)
}

func TestWarOnAllyNeedsSanctionsFirst(t *testing.T) {
	s := statetest.Game(t, "usa")
	require.Equal(t, 90.0, s.Relationships["uk"])

	res, _ := run(t, s, DeclareWar("uk"), fixedEnv())
	assert.False(t, res.Success)
	assert.True(t, res.Changes.IsZero())
	assert.Contains(t, res.Message, "sanctions first")
	require.Len(t, res.Events, 1)
	assert.Equal(t, state.EventCritical, res.Events[0].Type)
}

func TestWarOnEnemyWithMinimalForces(t *testing.T) {
	levels := atlas.StartingLevels()
	levels[atlas.Military] = 15
	s := statetest.With(t, "usa", state.StateDelta{
		MilitaryStrength: state.Ptr(20.0),
		Security:         state.Ptr(20.0),
		SectorLevels:     &levels,
	})
	require.True(t, s.IsEnemy("russia"))
	require.GreaterOrEqual(t, s.Treasury, s.GDP*0.02)

	res, next := run(t, s, DeclareWar("russia"), fixedEnv(0.5))
	require.True(t, res.Success, res.Message)

	assert.Equal(t, max(0, s.Relationships["russia"]-40), next.Relationships["russia"])
	assert.Contains(t, next.WarredCountries, "russia")
	assert.Contains(t, next.Enemies, "russia")
	assert.Equal(t, 90, next.Cooldowns.DeclareWar)
	assert.InDelta(t, s.Treasury-s.GDP*0.02, next.Treasury, 1e-6)
	assert.True(t, next.IsInWar)

	require.Len(t, next.ActiveWars, 1)
	w := next.ActiveWars[0]
	assert.True(t, w.IsPlayerAttacker)
	assert.True(t, w.IsPlayerInvolved)
	assert.GreaterOrEqual(t, w.Duration, MinWarDays)
	assert.LessOrEqual(t, w.Duration, MaxWarDays)
	// an enemy provokes no extra backlash
	assert.Equal(t, s.GlobalReputation-10, next.GlobalReputation)
	assert.Equal(t, s.Happiness-3, next.Happiness)
}

func TestWarOnNeutralHurtsTourism(t *testing.T) {
	levels := atlas.StartingLevels()
	levels[atlas.Military] = 40
	s := statetest.With(t, "usa", state.StateDelta{
		Security:        state.Ptr(50.0),
		Treasury:        state.Ptr(5000.0),
		SectorLevels:    &levels,
		WarredCountries: &[]string{"iran"},
	})

	res, next := run(t, s, DeclareWar("brazil"), fixedEnv(0))
	require.True(t, res.Success, res.Message)

	// neutral base 25, one prior war, neutral provocation 5
	assert.Equal(t, s.GlobalReputation-35, next.GlobalReputation)
	assert.Equal(t, s.Happiness-13, next.Happiness)
	assert.InDelta(t, s.Sector(atlas.Tourism)*0.95, next.Sector(atlas.Tourism), 1e-9)
	assert.Equal(t, 180, next.Cooldowns.DeclareWar)
	assert.LessOrEqual(t, next.Relationships["brazil"], 30.0)
	assert.Equal(t, MinWarDays, next.ActiveWars[0].Duration)
}

func TestSanctioningAnAllyBreaksTheAlliance(t *testing.T) {
	s := statetest.Game(t, "usa")
	res, next := run(t, s, ImposeSanction("uk"), fixedEnv())
	require.True(t, res.Success)

	assert.NotContains(t, next.Allies, "uk")
	assert.Contains(t, next.Enemies, "uk")
	// allied provocation 25/2 + 5 + 10, happiness 15/2 + 5
	assert.InDelta(t, s.GlobalReputation-27.5, next.GlobalReputation, 1e-9)
	assert.InDelta(t, s.Happiness-12.5, next.Happiness, 1e-9)
}

func TestSanctioningANeutral(t *testing.T) {
	s := statetest.Game(t, "usa")
	res, next := run(t, s, ImposeSanction("brazil"), fixedEnv())
	require.True(t, res.Success)
	assert.Contains(t, next.Enemies, "brazil")
	assert.InDelta(t, s.GlobalReputation-7.5, next.GlobalReputation, 1e-9)
	assert.InDelta(t, s.Happiness-1.5, next.Happiness, 1e-9)
}

func TestProposeAlliance(t *testing.T) {
	s := statetest.Game(t, "usa")

	res, next := run(t, s, ProposeAlliance("brazil"), fixedEnv(0))
	require.True(t, res.Success)
	assert.Contains(t, next.Allies, "brazil")
	assert.Equal(t, s.GlobalReputation+10, next.GlobalReputation)

	res, next = run(t, s, ProposeAlliance("brazil"), fixedEnv(0.99))
	assert.False(t, res.Success)
	assert.NotContains(t, next.Allies, "brazil")
	assert.Equal(t, s.GlobalReputation-2, next.GlobalReputation)
}

func TestAidBuysAnAlliance(t *testing.T) {
	s := statetest.With(t, "usa", state.StateDelta{Treasury: state.Ptr(10000.0)})
	amount := s.GDP * 0.02

	for call := 1; call <= 3; call++ {
		before := s
		var res Result
		res, s = run(t, s, SendAid("brazil", amount), fixedEnv())
		require.True(t, res.Success)

		gained := *res.Changes.GlobalReputation - before.GlobalReputation
		if call < 3 {
			assert.NotContains(t, s.Allies, "brazil", "call %d", call)
			assert.Equal(t, 5.0, gained, "call %d", call)
			continue
		}
		assert.Contains(t, s.Allies, "brazil")
		assert.Equal(t, 20.0, gained)
	}
	assert.InDelta(t, amount*3, s.CumulativeAid["brazil"], 1e-9)
}

func TestAidTurnsEnemyNeutral(t *testing.T) {
	s := statetest.With(t, "usa", state.StateDelta{Treasury: state.Ptr(10000.0)})
	res, next := run(t, s, SendAid("russia", s.GDP*0.01), fixedEnv())
	require.True(t, res.Success)
	assert.Contains(t, next.Enemies, "russia")

	_, next = run(t, next, SendAid("russia", s.GDP*0.015), fixedEnv())
	assert.NotContains(t, next.Enemies, "russia")
	assert.GreaterOrEqual(t, next.Relationships["russia"], 51.0)
}

func TestRequestAid(t *testing.T) {
	s := statetest.Game(t, "usa")

	res, next := run(t, s, RequestAid("uk"), fixedEnv(0, 0))
	require.True(t, res.Success)
	assert.InDelta(t, s.Treasury+s.GDP*0.05, next.Treasury, 1e-9)
	assert.Equal(t, s.Happiness+5, next.Happiness)
	assert.Equal(t, RequestAidCooldown, next.Cooldowns.RequestAid)

	res, next = run(t, s, RequestAid("uk"), fixedEnv(0.5))
	assert.False(t, res.Success)
	assert.Equal(t, s.Treasury, next.Treasury)
	assert.Equal(t, s.GlobalReputation-1, next.GlobalReputation)
	assert.Equal(t, RequestAidCooldown, next.Cooldowns.RequestAid)
}

func TestGestures(t *testing.T) {
	s := statetest.Game(t, "usa")

	_, next := run(t, s, TradeAgreement("brazil"), fixedEnv())
	assert.Equal(t, 68.0, next.Relationships["brazil"])
	assert.InDelta(t, s.Treasury*0.98, next.Treasury, 1e-9)

	_, next = run(t, s, MilitaryCooperation("uk"), fixedEnv())
	assert.Equal(t, 100.0, next.Relationships["uk"])
	assert.Equal(t, s.MilitaryStrength+2, next.MilitaryStrength)

	_, next = run(t, s, DenouncePublicly("brazil"), fixedEnv())
	assert.Equal(t, 50.0, next.Relationships["brazil"])
	assert.Equal(t, s.Happiness+2, next.Happiness)

	_, next = run(t, s, BorderAgreement("brazil"), fixedEnv())
	assert.Equal(t, 66.0, next.Relationships["brazil"])
	assert.Equal(t, s.Security+3, next.Security)
}

func TestEspionage(t *testing.T) {
	s := statetest.Game(t, "usa")

	res, next := run(t, s, EspionageMission("brazil"), fixedEnv(0))
	require.True(t, res.Success)
	assert.Equal(t, s.Security+3, next.Security)
	assert.Equal(t, 60.0, next.Relationships["brazil"])

	res, next = run(t, s, EspionageMission("brazil"), fixedEnv(0.9))
	assert.False(t, res.Success)
	assert.Equal(t, 40.0, next.Relationships["brazil"])
	assert.Equal(t, s.GlobalReputation-10, next.GlobalReputation)
	assert.InDelta(t, s.Treasury*0.95, next.Treasury, 1e-9)
}

func TestUprising(t *testing.T) {
	s := statetest.With(t, "usa", state.StateDelta{
		UprisingTriggered: state.Ptr(true),
		Happiness:         state.Ptr(8.0),
		PreviousHappiness: state.Ptr(40.0),
	})

	res, next := run(t, s, RepressUprising(), fixedEnv(0.1))
	require.True(t, res.Success)
	assert.False(t, next.UprisingTriggered)
	assert.Equal(t, 40.0, next.Happiness)
	assert.False(t, next.Over())

	res, next = run(t, s, RepressUprising(), fixedEnv(0.7))
	assert.False(t, res.Success)
	assert.Equal(t, state.OutcomeOverthrown, next.Outcome)
	assert.False(t, next.IsPlaying)

	_, next = run(t, s, Surrender(), fixedEnv())
	assert.Equal(t, state.OutcomeOverthrown, next.Outcome)
}

func TestCrackDown(t *testing.T) {
	s := statetest.With(t, "usa", state.StateDelta{
		UprisingTriggered: state.Ptr(true),
		Happiness:         state.Ptr(8.0),
		MilitaryStrength:  state.Ptr(70.0),
		Security:          state.Ptr(60.0),
	})

	// odds are 0.64
	res, next := run(t, s, CrackDown(), fixedEnv(0.6))
	require.True(t, res.Success)
	assert.False(t, next.UprisingTriggered)
	assert.Equal(t, 3.0, next.Happiness)
	assert.Equal(t, s.GlobalReputation-10, next.GlobalReputation)

	res, next = run(t, s, CrackDown(), fixedEnv(0.65))
	assert.False(t, res.Success)
	assert.Equal(t, state.OutcomeOverthrown, next.Outcome)
	assert.InDelta(t, 49.0, next.MilitaryStrength, 1e-9)
}
