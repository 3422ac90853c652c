// Package atlas holds the static reference data of the game: playable
// countries, their sector potentials and the initial diplomatic graph.
// Everything here is read-only after process start.
package atlas

import "slices"

// Difficulty is the tier a country is played at.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Stats are a country's baseline figures. GDP is in billions, population in
// millions, stability and happiness on a 0-100 scale.
type Stats struct {
	GDP        float64 `json:"gdp"`
	Population float64 `json:"population"`
	Stability  float64 `json:"stability"`
	Happiness  float64 `json:"happiness"`
}

// Country is a playable nation.
type Country struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Code       string     `json:"code"`
	Difficulty Difficulty `json:"difficulty"`
	Stats      Stats      `json:"stats"`
}

// Params are the starting parameters derived from a difficulty tier.
type Params struct {
	Inflation            float64
	Unemployment         float64
	Military             float64
	Reputation           float64
	GrowthRate           float64
	UnemploymentBaseline float64
	HappinessDecay       float64
}

// Params returns the starting parameters for d. Unknown tiers play as medium.
func (d Difficulty) Params() Params {
	switch d {
	case Easy:
		return Params{Inflation: 2, Unemployment: 4, Military: 70, Reputation: 70, GrowthRate: 2.5, UnemploymentBaseline: 4, HappinessDecay: 0.02}
	case Hard:
		return Params{Inflation: 6, Unemployment: 12, Military: 30, Reputation: 30, GrowthRate: 0.5, UnemploymentBaseline: 10, HappinessDecay: 0.08}
	default:
		return Params{Inflation: 3.5, Unemployment: 6, Military: 50, Reputation: 50, GrowthRate: 1.5, UnemploymentBaseline: 6, HappinessDecay: 0.05}
	}
}

var countries = []Country{
	{ID: "usa", Name: "United States", Code: "US", Difficulty: Easy, Stats: Stats{GDP: 27000, Population: 335, Stability: 75, Happiness: 70}},
	{ID: "china", Name: "China", Code: "CN", Difficulty: Medium, Stats: Stats{GDP: 17700, Population: 1410, Stability: 80, Happiness: 60}},
	{ID: "russia", Name: "Russia", Code: "RU", Difficulty: Medium, Stats: Stats{GDP: 2000, Population: 144, Stability: 60, Happiness: 50}},
	{ID: "india", Name: "India", Code: "IN", Difficulty: Medium, Stats: Stats{GDP: 3700, Population: 1430, Stability: 65, Happiness: 55}},
	{ID: "uk", Name: "United Kingdom", Code: "GB", Difficulty: Easy, Stats: Stats{GDP: 3300, Population: 68, Stability: 78, Happiness: 68}},
	{ID: "france", Name: "France", Code: "FR", Difficulty: Easy, Stats: Stats{GDP: 3000, Population: 68, Stability: 74, Happiness: 66}},
	{ID: "germany", Name: "Germany", Code: "DE", Difficulty: Easy, Stats: Stats{GDP: 4400, Population: 84, Stability: 82, Happiness: 70}},
	{ID: "japan", Name: "Japan", Code: "JP", Difficulty: Easy, Stats: Stats{GDP: 4200, Population: 124, Stability: 85, Happiness: 65}},
	{ID: "brazil", Name: "Brazil", Code: "BR", Difficulty: Medium, Stats: Stats{GDP: 2100, Population: 216, Stability: 58, Happiness: 60}},
	{ID: "mexico", Name: "Mexico", Code: "MX", Difficulty: Medium, Stats: Stats{GDP: 1800, Population: 128, Stability: 52, Happiness: 62}},
	{ID: "southafrica", Name: "South Africa", Code: "ZA", Difficulty: Hard, Stats: Stats{GDP: 380, Population: 60, Stability: 48, Happiness: 45}},
	{ID: "somalia", Name: "Somalia", Code: "SO", Difficulty: Hard, Stats: Stats{GDP: 8, Population: 18, Stability: 15, Happiness: 35}},
	{ID: "canada", Name: "Canada", Code: "CA", Difficulty: Easy, Stats: Stats{GDP: 2100, Population: 40, Stability: 85, Happiness: 72}},
	{ID: "australia", Name: "Australia", Code: "AU", Difficulty: Easy, Stats: Stats{GDP: 1700, Population: 27, Stability: 84, Happiness: 72}},
	{ID: "southkorea", Name: "South Korea", Code: "KR", Difficulty: Easy, Stats: Stats{GDP: 1700, Population: 52, Stability: 76, Happiness: 60}},
	{ID: "northkorea", Name: "North Korea", Code: "KP", Difficulty: Hard, Stats: Stats{GDP: 18, Population: 26, Stability: 70, Happiness: 25}},
	{ID: "iran", Name: "Iran", Code: "IR", Difficulty: Hard, Stats: Stats{GDP: 400, Population: 89, Stability: 45, Happiness: 40}},
	{ID: "pakistan", Name: "Pakistan", Code: "PK", Difficulty: Hard, Stats: Stats{GDP: 340, Population: 240, Stability: 40, Happiness: 45}},
	{ID: "poland", Name: "Poland", Code: "PL", Difficulty: Medium, Stats: Stats{GDP: 810, Population: 37, Stability: 72, Happiness: 62}},
	{ID: "argentina", Name: "Argentina", Code: "AR", Difficulty: Hard, Stats: Stats{GDP: 640, Population: 46, Stability: 50, Happiness: 55}},
	{ID: "ethiopia", Name: "Ethiopia", Code: "ET", Difficulty: Hard, Stats: Stats{GDP: 160, Population: 126, Stability: 35, Happiness: 40}},
	{ID: "kenya", Name: "Kenya", Code: "KE", Difficulty: Hard, Stats: Stats{GDP: 110, Population: 55, Stability: 50, Happiness: 50}},
	{ID: "israel", Name: "Israel", Code: "IL", Difficulty: Medium, Stats: Stats{GDP: 520, Population: 10, Stability: 60, Happiness: 68}},
	{ID: "chile", Name: "Chile", Code: "CL", Difficulty: Medium, Stats: Stats{GDP: 330, Population: 20, Stability: 65, Happiness: 60}},
	{ID: "eritrea", Name: "Eritrea", Code: "ER", Difficulty: Hard, Stats: Stats{GDP: 2.3, Population: 3.7, Stability: 30, Happiness: 30}},
	{ID: "syria", Name: "Syria", Code: "SY", Difficulty: Hard, Stats: Stats{GDP: 9, Population: 23, Stability: 15, Happiness: 20}},
	{ID: "lebanon", Name: "Lebanon", Code: "LB", Difficulty: Hard, Stats: Stats{GDP: 18, Population: 5.4, Stability: 25, Happiness: 30}},
}

var byID = func() map[string]Country {
	m := make(map[string]Country, len(countries))
	for _, c := range countries {
		m[c.ID] = c
	}
	return m
}()

// Countries returns every playable country in a stable order.
func Countries() []Country {
	return slices.Clone(countries)
}

// Lookup finds a country by id.
func Lookup(id string) (Country, bool) {
	c, ok := byID[id]
	return c, ok
}

// Name returns the display name of id, or id itself when unknown.
func Name(id string) string {
	if c, ok := byID[id]; ok {
		return c.Name
	}
	return id
}

// Others returns every country except id, in stable order.
func Others(id string) []Country {
	out := make([]Country, 0, len(countries))
	for _, c := range countries {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}
