package state

import (
	"maps"
	"math"
	"slices"

	"github.com/younisbosefi/younosomy/internal/atlas"
	"github.com/younisbosefi/younosomy/internal/diplomacy"
)

// StateDelta is a sparse change to a WorldState. A nil field is absent; a
// non-nil field overwrites the corresponding state field when applied (last
// writer wins). The zero value changes nothing.
//
// Allies, Enemies and IsInWar are not part of a delta: Apply derives them
// from Relationships and ActiveWars.
type StateDelta struct {
	CurrentDay *int
	IsPlaying  *bool
	GameSpeed  *int
	Cooldowns  *Cooldowns

	GDP              *float64
	GDPGrowthRate    *float64
	Debt             *float64
	DebtToGDPRatio   *float64
	InflationRate    *float64
	UnemploymentRate *float64
	InterestRate     *float64
	Treasury         *float64
	Revenue          *float64
	Reserves         *float64
	BorrowedMoney    *[]Loan

	Happiness        *float64
	Security         *float64
	MilitaryStrength *float64
	GlobalReputation *float64

	Score         *float64
	PreviousScore *float64

	Relationships   *map[string]float64
	SanctionsOnUs   *[]string
	CumulativeAid   *map[string]float64
	WarredCountries *[]string

	SectorLevels *map[atlas.Sector]float64

	ActiveWars            *[]War
	UprisingTriggered     *bool
	PreviousHappiness     *float64
	HasDefaulted          *bool
	PendingWarResult      *WarResult
	ClearPendingWarResult bool
	RecentPrintMoneyCount *int
	PendingDecisions      *[]Decision

	LastWarningDay *map[WarningKind]int
	Events         *[]Event

	Outcome *Outcome
}

// IsZero reports whether every field of d is absent.
func (d StateDelta) IsZero() bool {
	return d.CurrentDay == nil && d.IsPlaying == nil && d.GameSpeed == nil && d.Cooldowns == nil &&
		d.GDP == nil && d.GDPGrowthRate == nil && d.Debt == nil && d.DebtToGDPRatio == nil &&
		d.InflationRate == nil && d.UnemploymentRate == nil && d.InterestRate == nil &&
		d.Treasury == nil && d.Revenue == nil && d.Reserves == nil && d.BorrowedMoney == nil &&
		d.Happiness == nil && d.Security == nil && d.MilitaryStrength == nil && d.GlobalReputation == nil &&
		d.Score == nil && d.PreviousScore == nil &&
		d.Relationships == nil && d.SanctionsOnUs == nil && d.CumulativeAid == nil && d.WarredCountries == nil &&
		d.SectorLevels == nil &&
		d.ActiveWars == nil && d.UprisingTriggered == nil && d.PreviousHappiness == nil &&
		d.HasDefaulted == nil && d.PendingWarResult == nil && !d.ClearPendingWarResult &&
		d.RecentPrintMoneyCount == nil && d.PendingDecisions == nil &&
		d.LastWarningDay == nil && d.Events == nil && d.Outcome == nil
}

// Ptr returns a pointer to v, for filling delta fields.
func Ptr[T any](v T) *T {
	return &v
}

// Merge returns d with every field present in next overwriting it.
func (d StateDelta) Merge(next StateDelta) StateDelta {
	out := d
	setIf(&out.CurrentDay, next.CurrentDay)
	setIf(&out.IsPlaying, next.IsPlaying)
	setIf(&out.GameSpeed, next.GameSpeed)
	setIf(&out.Cooldowns, next.Cooldowns)
	setIf(&out.GDP, next.GDP)
	setIf(&out.GDPGrowthRate, next.GDPGrowthRate)
	setIf(&out.Debt, next.Debt)
	setIf(&out.DebtToGDPRatio, next.DebtToGDPRatio)
	setIf(&out.InflationRate, next.InflationRate)
	setIf(&out.UnemploymentRate, next.UnemploymentRate)
	setIf(&out.InterestRate, next.InterestRate)
	setIf(&out.Treasury, next.Treasury)
	setIf(&out.Revenue, next.Revenue)
	setIf(&out.Reserves, next.Reserves)
	setIf(&out.BorrowedMoney, next.BorrowedMoney)
	setIf(&out.Happiness, next.Happiness)
	setIf(&out.Security, next.Security)
	setIf(&out.MilitaryStrength, next.MilitaryStrength)
	setIf(&out.GlobalReputation, next.GlobalReputation)
	setIf(&out.Score, next.Score)
	setIf(&out.PreviousScore, next.PreviousScore)
	setIf(&out.Relationships, next.Relationships)
	setIf(&out.SanctionsOnUs, next.SanctionsOnUs)
	setIf(&out.CumulativeAid, next.CumulativeAid)
	setIf(&out.WarredCountries, next.WarredCountries)
	setIf(&out.SectorLevels, next.SectorLevels)
	setIf(&out.ActiveWars, next.ActiveWars)
	setIf(&out.UprisingTriggered, next.UprisingTriggered)
	setIf(&out.PreviousHappiness, next.PreviousHappiness)
	setIf(&out.HasDefaulted, next.HasDefaulted)
	if next.PendingWarResult != nil {
		out.PendingWarResult, out.ClearPendingWarResult = next.PendingWarResult, false
	} else if next.ClearPendingWarResult {
		out.PendingWarResult, out.ClearPendingWarResult = nil, true
	}
	setIf(&out.RecentPrintMoneyCount, next.RecentPrintMoneyCount)
	setIf(&out.PendingDecisions, next.PendingDecisions)
	setIf(&out.LastWarningDay, next.LastWarningDay)
	setIf(&out.Events, next.Events)
	setIf(&out.Outcome, next.Outcome)
	return out
}

func setIf[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

func assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Apply returns a new state with d merged over s, then normalized so every
// range invariant holds and derived views are consistent. s is not modified.
func Apply(s WorldState, d StateDelta) WorldState {
	out := s.Clone()

	assign(&out.CurrentDay, d.CurrentDay)
	assign(&out.IsPlaying, d.IsPlaying)
	assign(&out.GameSpeed, d.GameSpeed)
	assign(&out.Cooldowns, d.Cooldowns)

	assign(&out.GDP, d.GDP)
	assign(&out.GDPGrowthRate, d.GDPGrowthRate)
	assign(&out.Debt, d.Debt)
	assign(&out.DebtToGDPRatio, d.DebtToGDPRatio)
	assign(&out.InflationRate, d.InflationRate)
	assign(&out.UnemploymentRate, d.UnemploymentRate)
	assign(&out.InterestRate, d.InterestRate)
	assign(&out.Treasury, d.Treasury)
	assign(&out.Revenue, d.Revenue)
	assign(&out.Reserves, d.Reserves)
	if d.BorrowedMoney != nil {
		out.BorrowedMoney = slices.Clone(*d.BorrowedMoney)
	}

	assign(&out.Happiness, d.Happiness)
	assign(&out.Security, d.Security)
	assign(&out.MilitaryStrength, d.MilitaryStrength)
	assign(&out.GlobalReputation, d.GlobalReputation)
	assign(&out.Score, d.Score)
	assign(&out.PreviousScore, d.PreviousScore)

	if d.Relationships != nil {
		out.Relationships = maps.Clone(*d.Relationships)
	}
	if d.SanctionsOnUs != nil {
		out.SanctionsOnUs = slices.Clone(*d.SanctionsOnUs)
	}
	if d.CumulativeAid != nil {
		out.CumulativeAid = maps.Clone(*d.CumulativeAid)
	}
	if d.WarredCountries != nil {
		out.WarredCountries = slices.Clone(*d.WarredCountries)
	}
	if d.SectorLevels != nil {
		out.SectorLevels = maps.Clone(*d.SectorLevels)
	}
	if d.ActiveWars != nil {
		out.ActiveWars = slices.Clone(*d.ActiveWars)
	}
	assign(&out.UprisingTriggered, d.UprisingTriggered)
	assign(&out.PreviousHappiness, d.PreviousHappiness)
	assign(&out.HasDefaulted, d.HasDefaulted)
	switch {
	case d.PendingWarResult != nil:
		r := *d.PendingWarResult
		out.PendingWarResult = &r
	case d.ClearPendingWarResult:
		out.PendingWarResult = nil
	}
	assign(&out.RecentPrintMoneyCount, d.RecentPrintMoneyCount)
	if d.PendingDecisions != nil {
		out.PendingDecisions = cloneDecisions(*d.PendingDecisions)
	}
	if d.LastWarningDay != nil {
		out.LastWarningDay = maps.Clone(*d.LastWarningDay)
	}
	if d.Events != nil {
		out.Events = cloneEvents(*d.Events)
	}
	assign(&out.Outcome, d.Outcome)

	normalize(&out)
	return out
}

// normalize enforces range invariants and recomputes derived views.
func normalize(s *WorldState) {
	s.Happiness = clamp(s.Happiness, 0, 100)
	s.Security = clamp(s.Security, 0, 100)
	s.MilitaryStrength = clamp(s.MilitaryStrength, 0, 100)
	s.GlobalReputation = clamp(s.GlobalReputation, 0, 100)
	s.InflationRate = clamp(s.InflationRate, 0, 25)
	s.UnemploymentRate = clamp(s.UnemploymentRate, 1, 40)
	s.InterestRate = clamp(s.InterestRate, 0, 10)
	s.GDP = max(0, s.GDP)
	s.Treasury = max(0, s.Treasury)
	s.Reserves = max(0, s.Reserves)
	s.Debt = max(0, s.Debt)
	s.Cooldowns = s.Cooldowns.floor()
	s.RecentPrintMoneyCount = max(0, s.RecentPrintMoneyCount)

	for id, v := range s.Relationships {
		s.Relationships[id] = clamp(v, 0, 100)
	}
	for k, v := range s.SectorLevels {
		s.SectorLevels[k] = max(0, v)
	}
	s.Allies, s.Enemies = diplomacy.Derive(s.Relationships)
	s.IsInWar = len(s.ActiveWars) > 0

	if len(s.Events) > MaxEvents {
		s.Events = slices.Clone(s.Events[len(s.Events)-MaxEvents:])
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return max(lo, min(hi, v))
}
