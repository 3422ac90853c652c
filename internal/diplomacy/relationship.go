// Package diplomacy maintains relationship scores with foreign countries and
// the economic and social effects that follow from them.
package diplomacy

import (
	"maps"
	"slices"

	"github.com/younisbosefi/younosomy/internal/atlas"
)

// Level is the qualitative band of a relationship score.
type Level int

const (
	Hostile Level = iota
	Cold
	Neutral
	Friendly
	Allied
)

// Score thresholds.
const (
	AlliedMin    = 86.0
	FriendlyMin  = 71.0
	NeutralMin   = 51.0
	ColdMin      = 31.0
	HostileMax   = 30.0
	DefaultScore = 60.0
)

func (l Level) String() string {
	switch l {
	case Allied:
		return "Allied"
	case Friendly:
		return "Friendly"
	case Neutral:
		return "Neutral"
	case Cold:
		return "Cold"
	default:
		return "Hostile"
	}
}

// LevelOf classifies a score.
func LevelOf(score float64) Level {
	switch {
	case score >= AlliedMin:
		return Allied
	case score >= FriendlyMin:
		return Friendly
	case score >= NeutralMin:
		return Neutral
	case score >= ColdMin:
		return Cold
	default:
		return Hostile
	}
}

// Score returns the relationship with id, defaulting to DefaultScore.
func Score(rel map[string]float64, id string) float64 {
	if v, ok := rel[id]; ok {
		return v
	}
	return DefaultScore
}

// Change returns a copy of rel with id shifted by delta and clamped to
// [0, 100]. The input map is not modified.
func Change(rel map[string]float64, id string, delta float64) map[string]float64 {
	out := maps.Clone(rel)
	if out == nil {
		out = make(map[string]float64, 1)
	}
	out[id] = clamp(Score(rel, id)+delta, 0, 100)
	return out
}

// Set returns a copy of rel with id pinned to score.
func Set(rel map[string]float64, id string, score float64) map[string]float64 {
	return Change(rel, id, score-Score(rel, id))
}

// Derive splits rel into allies (score >= 86) and enemies (score <= 30),
// both sorted.
func Derive(rel map[string]float64) (allies, enemies []string) {
	allies, enemies = []string{}, []string{}
	for id, score := range rel {
		switch {
		case score >= AlliedMin:
			allies = append(allies, id)
		case score <= HostileMax:
			enemies = append(enemies, id)
		}
	}
	slices.Sort(allies)
	slices.Sort(enemies)
	return allies, enemies
}

// Initialize builds the starting scores of countryID towards every other
// country: 90 for initial allies, 20 for initial enemies, 60 otherwise.
func Initialize(countryID string) map[string]float64 {
	allies, enemies := atlas.InitialRelations(countryID)
	rel := make(map[string]float64)
	for _, c := range atlas.Others(countryID) {
		switch {
		case slices.Contains(allies, c.ID):
			rel[c.ID] = 90
		case slices.Contains(enemies, c.ID):
			rel[c.ID] = 20
		default:
			rel[c.ID] = DefaultScore
		}
	}
	return rel
}

// TourismBoost is the daily revenue contributed by visitors from friendly
// and allied countries, weighted by their economy.
func TourismBoost(rel map[string]float64) float64 {
	boost := 0.0
	for id, score := range rel {
		c, ok := atlas.Lookup(id)
		if !ok || score < FriendlyMin {
			continue
		}
		boost += (score - 70) * (c.Stats.GDP / 1000) * 0.001
	}
	return boost
}

// TradeBoost is the growth-rate adjustment from trading partners.
func TradeBoost(rel map[string]float64) float64 {
	boost := 0.0
	for _, score := range rel {
		switch {
		case score >= FriendlyMin:
			boost += (score - 70) * 0.0005
		case score <= HostileMax:
			boost -= (30 - score) * 0.0008
		}
	}
	return boost
}

// Happiness is how the population feels about the country's standing abroad.
func Happiness(rel map[string]float64) float64 {
	var allied, friendly, hostile int
	for _, score := range rel {
		switch LevelOf(score) {
		case Allied:
			allied++
		case Friendly:
			friendly++
		case Hostile:
			hostile++
		}
	}
	h := float64(allied)*2 + float64(friendly)*0.5 - float64(hostile)*1.5
	if allied == 0 && friendly == 0 {
		h -= 5
	}
	return h
}

// Provocation is the domestic and international fallout of attacking or
// sanctioning a country the public likes.
type Provocation struct {
	Happiness    float64
	TourismShare float64 // fraction of the tourism sector lost
	Reputation   float64
}

// Provoke returns the fallout of provoking a country at score.
func Provoke(score float64) Provocation {
	switch LevelOf(score) {
	case Allied:
		return Provocation{Happiness: 15, TourismShare: 0.20, Reputation: 25}
	case Friendly:
		return Provocation{Happiness: 10, TourismShare: 0.12, Reputation: 15}
	case Neutral:
		return Provocation{Happiness: 3, TourismShare: 0.05, Reputation: 5}
	default:
		return Provocation{}
	}
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
