package state

import (
	"fmt"
	"maps"

	"github.com/google/uuid"

	"github.com/younisbosefi/younosomy/internal/atlas"
	"github.com/younisbosefi/younosomy/internal/diplomacy"
	"github.com/younisbosefi/younosomy/internal/entropy"
)

// GameLengths are the selectable game lengths in years.
var GameLengths = []int{5, 10, 25}

// ValidYears reports whether years is a selectable game length.
func ValidYears(years int) bool {
	for _, y := range GameLengths {
		if y == years {
			return true
		}
	}
	return false
}

// NewGame creates the opening snapshot for country over a game of years.
func NewGame(c atlas.Country, years int, env *Env) (WorldState, error) {
	if !ValidYears(years) {
		return WorldState{}, fmt.Errorf("game length %d years: must be one of %v", years, GameLengths)
	}
	id, err := uuid.NewRandomFromReader(entropy.Reader(env.Rand))
	if err != nil {
		return WorldState{}, fmt.Errorf("game id: %w", err)
	}

	p := c.Difficulty.Params()
	gdp := c.Stats.GDP
	debt := gdp * 0.6
	sectors := atlas.StartingLevels()

	s := WorldState{
		GameID:     id.String(),
		Country:    c,
		CurrentDay: 0,
		TotalDays:  years * 365,
		IsPlaying:  true,
		GameSpeed:  1,
		InitialStats: InitialStats{
			GDP:              gdp,
			Happiness:        c.Stats.Happiness,
			Unemployment:     p.Unemployment,
			Inflation:        p.Inflation,
			Security:         c.Stats.Stability,
			MilitaryStrength: p.Military,
			Debt:             debt,
			DebtToGDPRatio:   60,
			SectorLevels:     maps.Clone(sectors),
		},
		GDP:               gdp,
		GDPGrowthRate:     p.GrowthRate,
		Debt:              debt,
		DebtToGDPRatio:    60,
		InflationRate:     p.Inflation,
		UnemploymentRate:  p.Unemployment,
		InterestRate:      2.5,
		Treasury:          gdp * 0.05,
		Revenue:           gdp * 0.0001,
		Reserves:          gdp * 0.02,
		BorrowedMoney:     []Loan{},
		Happiness:         c.Stats.Happiness,
		Security:          c.Stats.Stability,
		MilitaryStrength:  p.Military,
		GlobalReputation:  p.Reputation,
		Relationships:     diplomacy.Initialize(c.ID),
		SanctionsOnUs:     []string{},
		CumulativeAid:     map[string]float64{},
		WarredCountries:   []string{},
		SectorLevels:      sectors,
		ActiveWars:        []War{},
		PreviousHappiness: c.Stats.Happiness,
		PendingDecisions:  []Decision{},
		LastWarningDay:    map[WarningKind]int{},
	}
	for _, k := range WarningKinds {
		s.LastWarningDay[k] = -999
	}

	start := env.NewEvent(0, EventWorld, CategorySystem, fmt.Sprintf(
		"Game started! You are now leading %s. Your goal: survive %d years and maximize your score.", c.Name, years))
	s.Events = []Event{start}

	normalize(&s)
	s.LastSequence = env.IDs.Last()
	return s, nil
}
