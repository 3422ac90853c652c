package economy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younisbosefi/younosomy/internal/atlas"
	"github.com/younisbosefi/younosomy/internal/state"
)

// neutral is a state where every growth adjustment is zero.
func neutral(t *testing.T) *state.WorldState {
	t.Helper()
	c, ok := atlas.Lookup("usa")
	assert.True(t, ok)
	return &state.WorldState{
		Country:          c,
		InterestRate:     2,
		InflationRate:    2,
		UnemploymentRate: 4,
		Happiness:        50,
		InitialStats: state.InitialStats{
			GDP:          1000,
			Happiness:    50,
			Unemployment: 4,
			Inflation:    2,
		},
		GDP: 1000,
	}
}

func TestGrowthRateBaseline(t *testing.T) {
	assert.Equal(t, 2.0, GrowthRate(neutral(t)))
}

func TestGrowthRateInterestPenalty(t *testing.T) {
	tests := []struct {
		rate float64
		want float64
	}{
		{2, 2.0},
		{5, 1.5},
		{8, 1.2},
		{0.5, 1.85},
	}
	for _, tt := range tests {
		s := neutral(t)
		s.InterestRate = tt.rate
		assert.InDelta(t, tt.want, GrowthRate(s), 1e-9, "rate %v", tt.rate)
	}
}

func TestGrowthRateWarsEscalate(t *testing.T) {
	s := neutral(t)
	s.ActiveWars = []state.War{{ID: "a"}, {ID: "b"}}
	assert.InDelta(t, -3.0, GrowthRate(s), 1e-9)
}

func TestGrowthRateDefaultAndSanctions(t *testing.T) {
	s := neutral(t)
	s.HasDefaulted = true
	s.SanctionsOnUs = []string{"china", "russia"}
	assert.InDelta(t, -2.0, GrowthRate(s), 1e-9)
}

func TestGrowthRateSectorBoost(t *testing.T) {
	s := neutral(t)
	s.SectorLevels = map[atlas.Sector]float64{atlas.Education: 10}
	// very-high potential: 10 * 2.0 * 0.02
	assert.InDelta(t, 2.4, GrowthRate(s), 1e-9)
}

func TestDailyRevenue(t *testing.T) {
	s := neutral(t)
	s.GDP = 10000
	s.GDPGrowthRate = 2
	s.SanctionsOnUs = []string{"china"}
	assert.InDelta(t, 0.1+0.02-0.01, DailyRevenue(s), 1e-9)
}

func TestInflation(t *testing.T) {
	s := neutral(t)
	s.UnemploymentRate = 5
	assert.InDelta(t, 2.0, Inflation(s, 0), 1e-9)
	assert.InDelta(t, 2.1, Inflation(s, 10), 1e-9)

	s.InflationRate = 40
	assert.Equal(t, 25.0, Inflation(s, 0))

	s.InflationRate = 0
	s.InterestRate = 10
	assert.Equal(t, 0.0, Inflation(s, 0))
}

func TestUnemploymentRevertsToBaseline(t *testing.T) {
	s := neutral(t)
	assert.InDelta(t, 4.0, Unemployment(s), 1e-9)

	s.UnemploymentRate = 14
	assert.InDelta(t, 13.8, Unemployment(s), 1e-9)

	s.UnemploymentRate = 60
	assert.Equal(t, 40.0, Unemployment(s))
}

func TestUnemploymentInfrastructureDecline(t *testing.T) {
	s := neutral(t)
	s.InitialStats.SectorLevels = map[atlas.Sector]float64{atlas.Infrastructure: 20}
	s.SectorLevels = map[atlas.Sector]float64{atlas.Infrastructure: 10}
	// 10 points of decline, partly offset by the remaining level.
	assert.InDelta(t, 4+0.8-0.1, Unemployment(s), 1e-9)
}

func TestHappinessFromBaseline(t *testing.T) {
	s := neutral(t)
	// no allied or friendly countries costs 5, easy decay costs 0.02
	assert.InDelta(t, 45.0, Happiness(s), 0.05)

	s.HasDefaulted = true
	assert.InDelta(t, 20.0, Happiness(s), 0.05)
}

func TestHappinessWarsEscalate(t *testing.T) {
	s := neutral(t)
	s.ActiveWars = []state.War{{IsPlayerInvolved: true}, {IsPlayerInvolved: true}}
	assert.InDelta(t, 45.0-10-12, Happiness(s), 0.05)
}

func TestHappinessClamped(t *testing.T) {
	s := neutral(t)
	s.GDP = 100
	s.UnemploymentRate = 40
	s.InflationRate = 25
	assert.Equal(t, 0.0, Happiness(s))
}

func TestHappinessDrag(t *testing.T) {
	assert.Equal(t, 0.0, HappinessDrag(60))
	assert.InDelta(t, 0.2, HappinessDrag(40), 1e-9)
	assert.InDelta(t, 1.0+0.9+0.5, HappinessDrag(0), 1e-9)
}

func TestUprisingChance(t *testing.T) {
	assert.Equal(t, 0.0, UprisingChance(15))
	assert.Equal(t, 0.0, UprisingChance(80))
	assert.InDelta(t, 0.02*10/15, UprisingChance(5), 1e-12)
	assert.InDelta(t, 0.02, UprisingChance(0), 1e-12)
}

func TestRepressChance(t *testing.T) {
	assert.Equal(t, 0.5, RepressChance(50, 50))
	assert.Equal(t, 0.64, RepressChance(70, 60))
	assert.Equal(t, 1.0, RepressChance(200, 200))
	assert.Equal(t, 0.0, RepressChance(0, 0))
}

func TestLoanPayment(t *testing.T) {
	assert.InDelta(t, 14.5, LoanPayment(1200, 4.5), 1e-9)
}

func TestScoreDelta(t *testing.T) {
	prev := neutral(t)
	next := neutral(t)
	next.GDPGrowthRate = 1
	assert.InDelta(t, 10.0, ScoreDelta(prev, next), 1e-9)

	next.HasDefaulted = true
	assert.InDelta(t, -490.0, ScoreDelta(prev, next), 1e-9)

	prev.HasDefaulted = true
	next.Allies = []string{"uk"}
	next.InflationRate = 7
	assert.InDelta(t, 10+20-4, ScoreDelta(prev, next), 1e-9)
}

func TestSectorSpending(t *testing.T) {
	t.Run("long term", func(t *testing.T) {
		e := SectorSpending("usa", atlas.Education, 100, 20)
		assert.Equal(t, 20.0, e.LevelIncrease)
		assert.Equal(t, 6.0, e.Happiness)
		assert.Equal(t, 1.0, e.UnemploymentReduction)
		assert.InDelta(t, 0.06, e.GDPGrowth, 1e-9)
	})

	t.Run("diminishing returns", func(t *testing.T) {
		e := SectorSpending("usa", atlas.Education, 100, 60)
		assert.Equal(t, 10.0, e.LevelIncrease)
		assert.Equal(t, 3.0, e.Happiness)
	})

	t.Run("security raises military", func(t *testing.T) {
		e := SectorSpending("usa", atlas.Military, 100, 20)
		assert.Equal(t, 20.0, e.LevelIncrease)
		assert.Equal(t, 10.0, e.Military)
		assert.Zero(t, e.Security)
	})

	t.Run("revenue", func(t *testing.T) {
		e := SectorSpending("usa", atlas.Tourism, 100, 10)
		assert.Equal(t, 3.0, e.Revenue)
		assert.Equal(t, 1.0, e.Happiness)
	})

	t.Run("wasted", func(t *testing.T) {
		e := SectorSpending("somalia", atlas.Health, 100, 20)
		assert.Zero(t, e.LevelIncrease)
		assert.Equal(t, -3.0, e.Happiness)
		assert.Zero(t, e.Revenue)
		assert.Contains(t, e.Message, "Wasted")
	})
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1.23, Round(1.234, 2))
	assert.Equal(t, 1.3, Round(1.26, 1))
}
