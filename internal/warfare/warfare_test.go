package warfare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younisbosefi/younosomy/internal/atlas"
	"github.com/younisbosefi/younosomy/internal/entropy"
	"github.com/younisbosefi/younosomy/internal/state"
	"github.com/younisbosefi/younosomy/internal/state/statetest"
)

func TestWinProbabilityBounds(t *testing.T) {
	assert.Equal(t, MinWinProbability, WinProbability(0, 100))
	assert.Equal(t, MinWinProbability, WinProbability(-5, 100))
	assert.Equal(t, MaxWinProbability, WinProbability(100, 0))
	assert.Equal(t, MinWinProbability, WinProbability(1, 1e9))
	assert.Equal(t, MaxWinProbability, WinProbability(1e9, 1))
	assert.InDelta(t, 50.0, WinProbability(100, 100), 1e-9)
}

func TestWinProbabilityMonotonic(t *testing.T) {
	prev := WinProbability(0, 200)
	for p := 1.0; p <= 2000; p += 7 {
		got := WinProbability(p, 200)
		assert.GreaterOrEqual(t, got, prev)
		assert.GreaterOrEqual(t, got, MinWinProbability)
		assert.LessOrEqual(t, got, MaxWinProbability)
		prev = got
	}
}

func TestEnemyPowerIncludesAllies(t *testing.T) {
	russia, _ := atlas.Lookup("russia")
	alone := 2*russia.Stats.Stability + russia.Stats.GDP/1000
	assert.Greater(t, EnemyPower("russia"), alone)
	assert.Zero(t, EnemyPower("atlantis"))
}

func TestPlayerPowerCountsAllies(t *testing.T) {
	s := statetest.Game(t, "usa")
	require.NotEmpty(t, s.Allies)
	base := 2*s.MilitaryStrength + s.Sector(atlas.Military) + s.GDP/1000
	assert.Greater(t, PlayerPower(&s), base)
}

func TestValidateRejectsAlly(t *testing.T) {
	s := statetest.With(t, "usa", state.StateDelta{
		Relationships: state.Ptr(map[string]float64{"uk": 90}),
	})
	v := Validate(&s, "uk")
	assert.False(t, v.Allowed)
	require.Len(t, v.Reasons, 1)
	assert.Contains(t, v.Reasons[0], "sanctions")
}

func TestValidateRejectsWarredCountry(t *testing.T) {
	s := statetest.With(t, "usa", state.StateDelta{
		WarredCountries: state.Ptr([]string{"russia"}),
	})
	v := Validate(&s, "russia")
	assert.False(t, v.Allowed)
	assert.Contains(t, v.Reasons[0], "never")
}

func TestValidateEnemyThresholds(t *testing.T) {
	s := statetest.Game(t, "usa")
	s = state.Apply(s, state.StateDelta{
		MilitaryStrength: state.Ptr(20.0),
		Security:         state.Ptr(20.0),
		SectorLevels:     state.Ptr(map[atlas.Sector]float64{atlas.Military: 15}),
		Treasury:         state.Ptr(s.GDP * 0.02),
	})
	require.True(t, s.IsEnemy("russia"))

	v := Validate(&s, "russia")
	assert.True(t, v.Allowed, v.Reasons)
	assert.Equal(t, 90, v.Requirements.Cooldown)
	assert.InDelta(t, s.GDP*0.02, v.Cost, 1e-9)

	neutral := Validate(&s, "brazil")
	assert.False(t, neutral.Allowed)
	assert.Len(t, neutral.Reasons, 4)
	assert.Equal(t, 180, neutral.Requirements.Cooldown)
}

func TestValidateCooldown(t *testing.T) {
	s := statetest.With(t, "usa", state.StateDelta{
		Cooldowns: &state.Cooldowns{DeclareWar: 12},
	})
	v := Validate(&s, "russia")
	assert.False(t, v.Allowed)
	assert.Contains(t, v.Reasons[0], "12 more days")
}

func TestResolveVictory(t *testing.T) {
	s := statetest.Game(t, "usa")
	war := state.War{Attacker: "usa", Defender: "russia", IsPlayerInvolved: true, IsPlayerAttacker: true}

	res, d := Resolve(&s, war, entropy.NewFixed(0))
	assert.True(t, res.PlayerWon)
	assert.Equal(t, "russia", res.EnemyID)
	assert.Equal(t, "Russia", res.EnemyName)

	next := state.Apply(s, d)
	assert.InDelta(t, s.GDP*1.15, next.GDP, 1e-6)
	assert.Equal(t, min(100, s.MilitaryStrength+20), next.MilitaryStrength)
	assert.InDelta(t, s.Treasury+s.GDP*0.10, next.Treasury, 1e-6)
}

func TestResolveDefeat(t *testing.T) {
	s := statetest.Game(t, "usa")
	war := state.War{Attacker: "russia", Defender: "usa", IsPlayerInvolved: true}

	res, d := Resolve(&s, war, entropy.NewFixed(0.999))
	assert.False(t, res.PlayerWon)

	next := state.Apply(s, d)
	assert.InDelta(t, s.GDP*0.75, next.GDP, 1e-6)
	assert.Equal(t, max(10, s.MilitaryStrength-40), next.MilitaryStrength)
	assert.Equal(t, max(10, s.Security-30), next.Security)
	assert.InDelta(t, s.Debt+s.GDP*0.30, next.Debt, 1e-6)
	assert.GreaterOrEqual(t, next.Treasury, 0.0)
}
