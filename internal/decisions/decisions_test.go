package decisions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younisbosefi/younosomy/internal/atlas"
	"github.com/younisbosefi/younosomy/internal/entropy"
	"github.com/younisbosefi/younosomy/internal/state"
	"github.com/younisbosefi/younosomy/internal/state/statetest"
)

func fixedEnv(vals ...float64) *state.Env {
	return statetest.Env(entropy.NewFixed(vals...))
}

func TestGenerateMissesDailyRoll(t *testing.T) {
	s := statetest.Game(t, "usa")
	src := entropy.NewFixed(0.99)
	_, ok := Generate(&s, statetest.Env(src))
	assert.False(t, ok)
	assert.Equal(t, 1, src.Draws())
}

func TestGenerateProducesPlayableDecision(t *testing.T) {
	s := statetest.Game(t, "usa")
	d, ok := Generate(&s, fixedEnv(0))
	require.True(t, ok)
	assert.NotEmpty(t, d.ID)
	assert.NotEmpty(t, d.Title)
	require.GreaterOrEqual(t, len(d.Choices), 2)
	for _, c := range d.Choices {
		assert.NotEmpty(t, c.Label)
		assert.Greater(t, c.SuccessChance, 0.0)
		assert.LessOrEqual(t, c.SuccessChance, 1.0)
		if c.SuccessChance < 1 {
			assert.NotNil(t, c.OnFailure, "gamble %q needs a failure branch", c.Label)
		}
	}
}

func TestGeneratorGuards(t *testing.T) {
	tests := []struct {
		name string
		gen  generator
		d    state.StateDelta
	}{
		{"war needs low reputation", enemyDeclaresWar, state.StateDelta{GlobalReputation: state.Ptr(80.0)}},
		{"ai needs education", aiBreakthrough, state.StateDelta{}},
		{"assassination needs unrest", assassinationPlot, state.StateDelta{Happiness: state.Ptr(90.0)}},
		{"ultimatum needs debt", debtUltimatum, state.StateDelta{DebtToGDPRatio: state.Ptr(60.0)}},
		{"coup needs weak military", militaryCoup, state.StateDelta{MilitaryStrength: state.Ptr(90.0)}},
		{"boom needs growth", investmentBoom, state.StateDelta{GDPGrowthRate: state.Ptr(0.5)}},
		{"infrastructure needs decline", infrastructureFailure, state.StateDelta{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := statetest.With(t, "usa", tt.d)
			src := entropy.NewFixed(0)
			_, ok := tt.gen(&s, statetest.Env(src))
			assert.False(t, ok)
			assert.Zero(t, src.Draws(), "guard must not consume randomness")
		})
	}
}

func TestTradeDealNeedsAllies(t *testing.T) {
	s := statetest.Game(t, "somalia")
	_, ok := tradeDealOffer(&s, fixedEnv(0))
	assert.False(t, ok)

	s = statetest.Game(t, "usa")
	d, ok := tradeDealOffer(&s, fixedEnv(0))
	require.True(t, ok)
	walkaway := d.Choices[2].OnFailure
	require.NotNil(t, walkaway)
	assert.Len(t, walkaway.Effect.Relationships, 1)
}

func TestEnemyWarTargetsAnEnemy(t *testing.T) {
	s := statetest.With(t, "usa", state.StateDelta{
		GlobalReputation: state.Ptr(30.0),
		MilitaryStrength: state.Ptr(10.0),
	})
	d, ok := enemyDeclaresWar(&s, fixedEnv(0))
	require.True(t, ok)
	assert.Equal(t, state.UrgencyCritical, d.Urgency)
	require.NotNil(t, d.Choices[0].OnSuccess.Effect.War)
	assert.True(t, s.IsEnemy(d.Choices[0].OnSuccess.Effect.War.Enemy))
}

func TestChooseRejectsUnknownChoice(t *testing.T) {
	s := statetest.Game(t, "usa")
	d := state.Decision{Choices: []state.Choice{{Label: "only", SuccessChance: 1}}}
	for _, i := range []int{-1, 1, 5} {
		_, err := Choose(&s, d, i, fixedEnv(0))
		assert.ErrorIs(t, err, ErrInvalidChoice)
	}
}

func TestChooseUsesOneDraw(t *testing.T) {
	s := statetest.Game(t, "usa")
	d := state.Decision{Choices: []state.Choice{
		gamble("coin", "", 0.5,
			state.Branch{Message: "heads", Effect: state.Effect{Happiness: 10}},
			state.Branch{Message: "tails", Effect: state.Effect{Happiness: -10}}),
	}}

	src := entropy.NewFixed(0.2)
	res, err := Choose(&s, d, 0, statetest.Env(src))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "heads", res.Message)
	assert.Equal(t, s.Happiness+10, *res.Changes.Happiness)
	assert.Equal(t, 1, src.Draws())

	res, err = Choose(&s, d, 0, fixedEnv(0.7))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "tails", res.Message)
	assert.Equal(t, s.Happiness-10, *res.Changes.Happiness)
}

func TestChooseSureThingAlwaysSucceeds(t *testing.T) {
	s := statetest.Game(t, "usa")
	d := state.Decision{Choices: []state.Choice{sure("pay", "", "paid", state.Effect{Treasury: -1})}}
	res, err := Choose(&s, d, 0, fixedEnv(0.999))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "paid", res.Message)
}

func TestMaterializeIsRelative(t *testing.T) {
	s := statetest.Game(t, "usa")
	d := Materialize(&s, state.Effect{
		GDPFactor:      1.1,
		Treasury:       -10,
		TreasuryFactor: 0.5,
		DebtFactor:     0.7,
		Sectors:        levels{atlas.Health: -100, atlas.Education: 5},
	})

	assert.InDelta(t, s.GDP*1.1, *d.GDP, 1e-9)
	assert.InDelta(t, (s.Treasury-10)*0.5, *d.Treasury, 1e-9)
	assert.InDelta(t, s.Debt*0.7, *d.Debt, 1e-9)
	require.NotNil(t, d.SectorLevels)
	assert.Zero(t, (*d.SectorLevels)[atlas.Health])
	assert.Equal(t, s.Sector(atlas.Education)+5, (*d.SectorLevels)[atlas.Education])
	assert.Equal(t, 20.0, s.Sector(atlas.Health), "source state must not change")
	assert.Nil(t, d.Happiness)
}

func TestMaterializeWar(t *testing.T) {
	s := statetest.Game(t, "usa")
	d := Materialize(&s, state.Effect{War: &state.WarOrder{Enemy: "russia"}})

	require.NotNil(t, d.ActiveWars)
	require.Len(t, *d.ActiveWars, 1)
	w := (*d.ActiveWars)[0]
	assert.Equal(t, "russia", w.Attacker)
	assert.Equal(t, "usa", w.Defender)
	assert.Equal(t, WarDuration, w.Duration)
	assert.True(t, w.IsPlayerInvolved)
	assert.False(t, w.IsPlayerAttacker)
	assert.Equal(t, 50.0, w.AttackerStrength)
	assert.Equal(t, []string{"russia"}, *d.WarredCountries)

	next := state.Apply(s, d)
	assert.True(t, next.IsInWar)
}

func TestMaterializeRelationships(t *testing.T) {
	s := statetest.Game(t, "usa")
	d := Materialize(&s, state.Effect{Relationships: map[string]float64{"uk": -30}})
	require.NotNil(t, d.Relationships)
	assert.Equal(t, 60.0, (*d.Relationships)["uk"])
	assert.Equal(t, 90.0, s.Relationships["uk"])

	next := state.Apply(s, d)
	assert.False(t, next.IsAlly("uk"))
}

func TestMaterializeFatal(t *testing.T) {
	s := statetest.Game(t, "usa")
	next := state.Apply(s, Materialize(&s, state.Effect{Fatal: true}))
	assert.Zero(t, next.Happiness)
	assert.False(t, next.IsPlaying)
	assert.Equal(t, state.OutcomeRemoved, next.Outcome)
}

func TestDebtDefaultBranch(t *testing.T) {
	s := statetest.With(t, "usa", state.StateDelta{DebtToGDPRatio: state.Ptr(150.0)})
	d, ok := debtUltimatum(&s, fixedEnv(0))
	require.True(t, ok)

	res, err := Choose(&s, d, 1, fixedEnv(0.9))
	require.NoError(t, err)
	assert.False(t, res.Success)
	require.NotNil(t, res.Changes.HasDefaulted)
	assert.True(t, *res.Changes.HasDefaulted)
	assert.InDelta(t, s.GDP*0.85, *res.Changes.GDP, 1e-9)
}
