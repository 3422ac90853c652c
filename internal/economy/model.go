// Package economy implements the economic model: pure functions from a
// world snapshot to next-day indicators. Nothing here mutates state or
// draws randomness.
package economy

import (
	"math"

	"github.com/younisbosefi/younosomy/internal/atlas"
	"github.com/younisbosefi/younosomy/internal/diplomacy"
	"github.com/younisbosefi/younosomy/internal/state"
)

// Round rounds v to places decimals.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// GrowthRate returns the annual GDP growth rate, in percent, implied by s.
func GrowthRate(s *state.WorldState) float64 {
	g := 2.0

	switch r := s.InterestRate; {
	case r > 7:
		g -= 0.8 * (r - 7)
	case r >= 4:
		g -= 0.5 * (r - 4)
	case r < 1:
		g -= 0.3 * (1 - r)
	}

	if ratio := s.DebtToGDPRatio; ratio > 100 {
		g -= 2 * math.Pow((ratio-100)/100, 1.5)
	}
	if ratio := s.DebtToGDPRatio; ratio > 60 {
		g -= 0.01 * (ratio - 60)
	}

	switch inf := s.InflationRate; {
	case inf > 10:
		g -= 0.5 * math.Pow(inf-10, 1.3)
	case inf > 5:
		g -= 0.4 * (inf - 5)
	}

	g -= 0.1 * (s.UnemploymentRate - 4)
	g += 0.03 * (s.Happiness - 50)

	n := float64(len(s.ActiveWars))
	g -= 2*n + 0.5*n*(n-1)

	g -= 0.5 * float64(len(s.SanctionsOnUs))
	if s.HasDefaulted {
		g -= 3
	}

	g += SectorBoost(s)
	g += diplomacy.TradeBoost(s.Relationships)
	return Round(g, 2)
}

// SectorBoost is the growth contributed by sector levels weighted by the
// country's potential in each.
func SectorBoost(s *state.WorldState) float64 {
	boost := 0.0
	for _, sector := range atlas.Sectors {
		boost += s.SectorLevels[sector] * atlas.PotentialOf(s.Country.ID, sector).Multiplier() * 0.02
	}
	return boost
}

// DailyRevenue returns the revenue collected in one day.
func DailyRevenue(s *state.WorldState) float64 {
	r := s.GDP*0.00001 + s.GDPGrowthRate*0.01
	r -= 0.01 * float64(len(s.SanctionsOnUs))
	r += diplomacy.TourismBoost(s.Relationships)
	return r
}

// Inflation returns the next inflation rate. printed is money created since
// the last tick.
func Inflation(s *state.WorldState, printed float64) float64 {
	inf := s.InflationRate

	switch {
	case inf > 10:
		inf += (5 - inf) * 0.01
	case inf > 5:
		inf += (3 - inf) * 0.03
	default:
		inf += (2 - inf) * 0.05
	}

	effectiveness := 0.5
	if s.InflationRate > 10 {
		effectiveness = 0.3
	}
	inf -= (s.InterestRate - 2) * effectiveness

	unemploymentEffect := 0.05
	if s.InflationRate > 10 {
		unemploymentEffect = 0.02
	}
	inf -= (s.UnemploymentRate - 5) * unemploymentEffect

	if printed > 0 && s.GDP > 0 {
		inf += printed / s.GDP * 10
	}
	if s.DebtToGDPRatio > 150 {
		inf += 0.1
	}
	return Round(clamp(inf, 0, 25), 2)
}

// Unemployment returns the next unemployment rate.
func Unemployment(s *state.WorldState) float64 {
	u := s.UnemploymentRate
	baseline := s.Country.Difficulty.Params().UnemploymentBaseline
	u += (baseline - u) * 0.02

	u -= s.GDPGrowthRate * 0.2
	u -= (s.Sector(atlas.Infrastructure) + s.Sector(atlas.Education)) * 0.01

	switch r := s.InterestRate; {
	case r > 6:
		u += 0.4 * (r - 6)
	case r < 0.5 && s.InflationRate > 5:
		u += 0.3
	}

	if decline := s.InitialStats.SectorLevels[atlas.Infrastructure] - s.Sector(atlas.Infrastructure); decline > 0 {
		u += 0.08 * decline
	}

	u -= float64(len(s.ActiveWars)) * 0.3
	return Round(clamp(u, 1, 40), 2)
}

type sectorWeight struct {
	sector atlas.Sector
	weight float64
}

var happinessSectors = []sectorWeight{
	{atlas.Health, 0.5},
	{atlas.Education, 0.4},
	{atlas.Housing, 0.6},
	{atlas.Security, 0.5},
	{atlas.Infrastructure, 0.6},
}

// Happiness returns the population's happiness. It is computed from the
// starting baseline each day: people judge the present against what they
// are used to.
func Happiness(s *state.WorldState) float64 {
	init := s.InitialStats
	h := init.Happiness

	if init.GDP > 0 {
		h += (s.GDP - init.GDP) / init.GDP * 100 * 0.3
	}
	h -= (s.UnemploymentRate - init.Unemployment) * 2
	h -= (s.InflationRate - init.Inflation) * 1.5
	h += (s.Security - init.Security) * 0.5
	h += (s.MilitaryStrength - init.MilitaryStrength) * 0.2

	if s.GDP < init.GDP*0.5 {
		h -= 20
	}
	if s.InflationRate > 15 {
		h -= 2 * (s.InflationRate - 15)
	}
	if s.UnemploymentRate > 20 {
		h -= 1.5 * (s.UnemploymentRate - 20)
	}
	switch r := s.InterestRate; {
	case r > 7:
		h -= 3 * (r - 7)
	case r < 1 && s.InflationRate > 5:
		h -= 5
	}

	for i := range s.PlayerWars() {
		h -= 10 + 2*float64(i)
	}
	h -= 3 * float64(len(s.SanctionsOnUs))

	for _, sw := range happinessSectors {
		delta := s.Sector(sw.sector) - init.SectorLevels[sw.sector]
		switch {
		case delta < 0:
			h += delta * sw.weight
		case delta > 30:
			h += (delta - 30) * sw.weight * 0.1
		}
	}

	if s.HasDefaulted {
		h -= 25
	}
	h += diplomacy.Happiness(s.Relationships)
	h -= s.Country.Difficulty.Params().HappinessDecay

	return Round(clamp(h, 0, 100), 1)
}

// HappinessDrag is the share of GDP, in percent, lost per day to unrest at
// happiness h.
func HappinessDrag(h float64) float64 {
	drag := 0.0
	if h < 50 {
		drag += (50 - h) * 0.02
	}
	if h < 30 {
		drag += (30 - h) * 0.03
	}
	if h < 10 {
		drag += 0.5
	}
	return drag
}

// ScoreDelta is the score earned between prev and next.
func ScoreDelta(prev, next *state.WorldState) float64 {
	d := next.GDPGrowthRate * 10
	d += (prev.DebtToGDPRatio - next.DebtToGDPRatio) * 100
	d += (next.Happiness - prev.Happiness) * 5
	if next.InflationRate > 5 {
		d -= 2 * (next.InflationRate - 5)
	}
	d += 20 * float64(len(next.Allies)-len(prev.Allies))
	d -= 20 * float64(len(next.Enemies)-len(prev.Enemies))
	if next.HasDefaulted && !prev.HasDefaulted {
		d -= 500
	}
	return Round(d, 1)
}

// LoanPayment is the monthly payment on amount at annualRate percent,
// amortized over ten years.
func LoanPayment(amount, annualRate float64) float64 {
	return amount*(annualRate/100)/12 + amount/120
}

// RepressChance is the probability, in [0, 1], that security forces put
// down an uprising by force.
func RepressChance(military, security float64) float64 {
	return Round(clamp((0.4*military+0.6*security)/100, 0, 1), 2)
}

// UprisingChance is the daily probability of an uprising at happiness h.
// It rises linearly from zero at 15 to 2% at 0.
func UprisingChance(h float64) float64 {
	if h >= 15 {
		return 0
	}
	return (15 - max(0, h)) / 15 * 0.02
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
