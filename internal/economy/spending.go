package economy

import (
	"fmt"

	"github.com/younisbosefi/younosomy/internal/atlas"
)

// SpendingEffect is what an investment in one sector buys.
type SpendingEffect struct {
	LevelIncrease         float64
	Happiness             float64
	GDPGrowth             float64
	Revenue               float64
	UnemploymentReduction float64
	Military              float64
	Security              float64
	Message               string
}

// SectorSpending returns the effect of investing amount in sector for the
// given country, whose sector currently sits at level. Returns halve above
// level 50; sectors with negative potential are wasted money.
func SectorSpending(countryID string, sector atlas.Sector, amount, level float64) SpendingEffect {
	mult := atlas.PotentialOf(countryID, sector).Multiplier()
	strong := mult > 1
	e := SpendingEffect{LevelIncrease: amount / 10 * mult}

	switch sector.Class() {
	case atlas.ClassRevenue:
		e.Revenue = amount * 0.02 * mult
		e.GDPGrowth = mult * 0.05
		if strong {
			e.Happiness = 1
			e.Message = fmt.Sprintf("%s investment generating revenue.", sector)
		} else {
			e.Message = fmt.Sprintf("%s investment has limited potential in your country.", sector)
		}
	case atlas.ClassLongTerm:
		e.Happiness = mult * 3
		e.UnemploymentReduction = mult * 0.5
		e.GDPGrowth = mult * 0.03
		if strong {
			e.Message = fmt.Sprintf("Excellent %s investment! Citizens happier, unemployment falling.", sector)
		} else {
			e.Message = fmt.Sprintf("%s investment showing modest results.", sector)
		}
	case atlas.ClassInfrastructure:
		e.GDPGrowth = mult * 0.15
		e.UnemploymentReduction = mult * 0.3
		e.Happiness = 1
		if strong {
			e.Happiness = 2
			e.Message = fmt.Sprintf("%s development accelerating economic growth.", sector)
		} else {
			e.Message = fmt.Sprintf("%s development proceeding.", sector)
		}
	case atlas.ClassSecurity:
		if strong {
			e.Happiness = 1
		}
		e.Message = fmt.Sprintf("%s capabilities strengthened.", sector)
	}

	if mult < 0 {
		e.Happiness = -3
		e.GDPGrowth = 0
		e.Revenue = 0
		e.LevelIncrease = 0
		e.UnemploymentReduction = 0
		e.Message = fmt.Sprintf("Wasted money on %s. Your country has no potential here!", sector)
	}

	if level > 50 {
		e.LevelIncrease *= 0.5
		e.Happiness *= 0.5
		e.GDPGrowth *= 0.5
		e.Revenue *= 0.5
	}

	switch sector {
	case atlas.Military:
		e.Military = e.LevelIncrease * 0.5
	case atlas.Security:
		e.Security = e.LevelIncrease * 0.5
	}

	e.LevelIncrease = Round(e.LevelIncrease, 1)
	e.Happiness = Round(e.Happiness, 1)
	e.GDPGrowth = Round(e.GDPGrowth, 2)
	e.Revenue = Round(e.Revenue, 2)
	e.UnemploymentReduction = Round(e.UnemploymentReduction, 2)
	return e
}
