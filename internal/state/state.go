// Package state defines the world snapshot the simulation advances, the
// sparse StateDelta every component produces, and the single Apply reducer
// that merges one into the other.
package state

import (
	"maps"
	"slices"

	"github.com/younisbosefi/younosomy/internal/atlas"
)

// MaxEvents is the length of the retained event log.
const MaxEvents = 100

// Cooldowns are the days remaining before each rate-limited command may be
// used again.
type Cooldowns struct {
	PrintMoney  int `json:"printMoney"`
	BorrowIMF   int `json:"borrowIMF"`
	DeclareWar  int `json:"declareWar"`
	AdjustTaxes int `json:"adjustTaxes"`
	RequestAid  int `json:"requestAid"`
}

// Tick returns the cooldowns decremented by days, floored at zero.
func (c Cooldowns) Tick(days int) Cooldowns {
	dec := func(v int) int { return max(0, v-days) }
	return Cooldowns{
		PrintMoney:  dec(c.PrintMoney),
		BorrowIMF:   dec(c.BorrowIMF),
		DeclareWar:  dec(c.DeclareWar),
		AdjustTaxes: dec(c.AdjustTaxes),
		RequestAid:  dec(c.RequestAid),
	}
}

func (c Cooldowns) floor() Cooldowns { return c.Tick(0) }

// InitialStats is the baseline captured at game start. It is never mutated.
type InitialStats struct {
	GDP              float64                  `json:"gdp"`
	Happiness        float64                  `json:"happiness"`
	Unemployment     float64                  `json:"unemployment"`
	Inflation        float64                  `json:"inflation"`
	Security         float64                  `json:"security"`
	MilitaryStrength float64                  `json:"militaryStrength"`
	Debt             float64                  `json:"debt"`
	DebtToGDPRatio   float64                  `json:"debtToGdpRatio"`
	SectorLevels     map[atlas.Sector]float64 `json:"sectorLevels"`
}

// Treasury is the treasury baseline used by warnings and advice: 5% of the
// starting GDP.
func (i InitialStats) Treasury() float64 { return i.GDP * 0.05 }

// Loan is an outstanding borrowing.
type Loan struct {
	ID                   string  `json:"id"`
	Amount               float64 `json:"amount"`
	Remaining            float64 `json:"remaining"`
	InterestRate         float64 `json:"interestRate"`
	MonthlyPayment       float64 `json:"monthlyPayment"`
	DaysUntilNextPayment int     `json:"daysUntilNextPayment"`
	Source               string  `json:"source"`
}

// War is an armed conflict. Duration counts down to zero.
type War struct {
	ID               string  `json:"id"`
	Attacker         string  `json:"attacker"`
	Defender         string  `json:"defender"`
	StartDay         int     `json:"startDay"`
	Duration         int     `json:"duration"`
	AttackerStrength float64 `json:"attackerStrength"`
	DefenderStrength float64 `json:"defenderStrength"`
	IsPlayerInvolved bool    `json:"isPlayerInvolved"`
	IsPlayerAttacker bool    `json:"isPlayerAttacker"`
}

// Opponent returns the id of the side the player is fighting.
func (w War) Opponent() string {
	if w.IsPlayerAttacker {
		return w.Defender
	}
	return w.Attacker
}

// PlayerAhead reports whether the player's side had the stronger army when
// the war started.
func (w War) PlayerAhead() bool {
	if w.IsPlayerAttacker {
		return w.AttackerStrength > w.DefenderStrength
	}
	return w.DefenderStrength > w.AttackerStrength
}

// WarResult is a resolved war awaiting acknowledgement by the host.
type WarResult struct {
	PlayerWon      bool    `json:"playerWon"`
	EnemyID        string  `json:"enemyId"`
	EnemyName      string  `json:"enemyName"`
	Day            int     `json:"day"`
	WinProbability float64 `json:"winProbability"`
}

// WarningKind names a throttled warning.
type WarningKind string

const (
	WarnLowHappiness WarningKind = "lowHappiness"
	WarnDebtRatio    WarningKind = "debtRatio"
	WarnInflation    WarningKind = "inflation"
	WarnUnemployment WarningKind = "unemployment"
	WarnHighInterest WarningKind = "highInterest"
	WarnLowTreasury  WarningKind = "lowTreasury"
)

// WarningKinds lists every throttled warning.
var WarningKinds = []WarningKind{
	WarnLowHappiness, WarnDebtRatio, WarnInflation, WarnUnemployment, WarnHighInterest, WarnLowTreasury,
}

// Outcome is how a finished game ended.
type Outcome string

const (
	OutcomeNone       Outcome = ""
	OutcomeCompleted  Outcome = "completed"
	OutcomeOverthrown Outcome = "overthrown"
	OutcomeRemoved    Outcome = "removed"
)

// WorldState is the complete simulation snapshot. Components treat it as
// immutable and describe changes with a StateDelta.
type WorldState struct {
	GameID  string        `json:"gameId"`
	Country atlas.Country `json:"country"`

	CurrentDay int       `json:"currentDay"`
	TotalDays  int       `json:"totalDays"`
	IsPlaying  bool      `json:"isPlaying"`
	GameSpeed  int       `json:"gameSpeed"`
	Cooldowns  Cooldowns `json:"cooldowns"`

	InitialStats InitialStats `json:"initialStats"`

	GDP              float64 `json:"gdp"`
	GDPGrowthRate    float64 `json:"gdpGrowthRate"`
	Debt             float64 `json:"debt"`
	DebtToGDPRatio   float64 `json:"debtToGdpRatio"`
	InflationRate    float64 `json:"inflationRate"`
	UnemploymentRate float64 `json:"unemploymentRate"`
	InterestRate     float64 `json:"interestRate"`
	Treasury         float64 `json:"treasury"`
	Revenue          float64 `json:"revenue"`
	Reserves         float64 `json:"reserves"`
	BorrowedMoney    []Loan  `json:"borrowedMoney"`

	Happiness        float64 `json:"happiness"`
	Security         float64 `json:"security"`
	MilitaryStrength float64 `json:"militaryStrength"`
	GlobalReputation float64 `json:"globalReputation"`

	Score         float64 `json:"score"`
	PreviousScore float64 `json:"previousScore"`

	// Relationships is canonical; Allies and Enemies are derived from it by
	// Apply and must not be edited directly.
	Relationships   map[string]float64 `json:"relationships"`
	Allies          []string           `json:"allies"`
	Enemies         []string           `json:"enemies"`
	SanctionsOnUs   []string           `json:"sanctionsOnUs"`
	CumulativeAid   map[string]float64 `json:"cumulativeAid"`
	WarredCountries []string           `json:"warredCountries"`

	SectorLevels map[atlas.Sector]float64 `json:"sectorLevels"`

	IsInWar               bool       `json:"isInWar"`
	ActiveWars            []War      `json:"activeWars"`
	UprisingTriggered     bool       `json:"uprisingTriggered"`
	PreviousHappiness     float64    `json:"previousHappiness"`
	HasDefaulted          bool       `json:"hasDefaulted"`
	PendingWarResult      *WarResult `json:"pendingWarResult,omitempty"`
	RecentPrintMoneyCount int        `json:"recentPrintMoneyCount"`
	PendingDecisions      []Decision `json:"pendingDecisions"`

	LastWarningDay map[WarningKind]int `json:"lastWarningDay"`
	Events         []Event             `json:"events"`

	// LastSequence is the last id handed out, so a resumed game keeps
	// issuing unique ids.
	LastSequence uint64  `json:"lastSequence"`
	Outcome      Outcome `json:"outcome,omitempty"`
}

// Clone returns a deep copy of s.
func (s WorldState) Clone() WorldState {
	out := s
	out.InitialStats.SectorLevels = maps.Clone(s.InitialStats.SectorLevels)
	out.BorrowedMoney = slices.Clone(s.BorrowedMoney)
	out.Relationships = maps.Clone(s.Relationships)
	out.Allies = slices.Clone(s.Allies)
	out.Enemies = slices.Clone(s.Enemies)
	out.SanctionsOnUs = slices.Clone(s.SanctionsOnUs)
	out.CumulativeAid = maps.Clone(s.CumulativeAid)
	out.WarredCountries = slices.Clone(s.WarredCountries)
	out.SectorLevels = maps.Clone(s.SectorLevels)
	out.ActiveWars = slices.Clone(s.ActiveWars)
	if s.PendingWarResult != nil {
		r := *s.PendingWarResult
		out.PendingWarResult = &r
	}
	out.PendingDecisions = cloneDecisions(s.PendingDecisions)
	out.LastWarningDay = maps.Clone(s.LastWarningDay)
	out.Events = cloneEvents(s.Events)
	return out
}

// Speed returns the game speed, treating an unset speed as 1.
func (s *WorldState) Speed() int {
	if s.GameSpeed < 1 {
		return 1
	}
	return s.GameSpeed
}

// IsAlly reports whether id is currently allied.
func (s *WorldState) IsAlly(id string) bool { return slices.Contains(s.Allies, id) }

// IsEnemy reports whether id is currently an enemy.
func (s *WorldState) IsEnemy(id string) bool { return slices.Contains(s.Enemies, id) }

// PlayerWars returns the active wars the player is part of.
func (s *WorldState) PlayerWars() []War {
	var out []War
	for _, w := range s.ActiveWars {
		if w.IsPlayerInvolved {
			out = append(out, w)
		}
	}
	return out
}

// Over reports whether the game has ended.
func (s *WorldState) Over() bool {
	return s.Outcome != OutcomeNone
}

// Sector returns the level of sector, zero when absent.
func (s *WorldState) Sector(sector atlas.Sector) float64 {
	return s.SectorLevels[sector]
}
