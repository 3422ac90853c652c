package atlas

// Sector is one of the ten domestic investment areas.
type Sector string

const (
	Health         Sector = "health"
	Education      Sector = "education"
	Military       Sector = "military"
	Infrastructure Sector = "infrastructure"
	Housing        Sector = "housing"
	Agriculture    Sector = "agriculture"
	Transportation Sector = "transportation"
	Security       Sector = "security"
	Tourism        Sector = "tourism"
	Sports         Sector = "sports"
)

// Sectors lists every sector in display order.
var Sectors = []Sector{
	Health, Education, Military, Infrastructure, Housing,
	Agriculture, Transportation, Security, Tourism, Sports,
}

// Valid reports whether s is a known sector.
func (s Sector) Valid() bool {
	for _, v := range Sectors {
		if v == s {
			return true
		}
	}
	return false
}

// Class groups sectors by how spending on them pays off.
type Class int

const (
	ClassRevenue Class = iota
	ClassLongTerm
	ClassInfrastructure
	ClassSecurity
)

// Class returns the spending class of s.
func (s Sector) Class() Class {
	switch s {
	case Education, Health:
		return ClassLongTerm
	case Infrastructure, Agriculture:
		return ClassInfrastructure
	case Military, Security:
		return ClassSecurity
	default:
		return ClassRevenue
	}
}

// StartingLevels returns the sector levels every game starts from.
func StartingLevels() map[Sector]float64 {
	return map[Sector]float64{
		Health: 20, Education: 20, Military: 20, Infrastructure: 20, Housing: 15,
		Agriculture: 15, Transportation: 15, Security: 20, Tourism: 10, Sports: 10,
	}
}

// Potential rates how well a country converts investment in a sector.
type Potential string

const (
	VeryHigh Potential = "very-high"
	High     Potential = "high"
	Mid      Potential = "mid"
	Low      Potential = "low"
	VeryLow  Potential = "very-low"
)

// Multiplier is the investment multiplier of p. Very-low potential is
// negative: money spent there is wasted.
func (p Potential) Multiplier() float64 {
	switch p {
	case VeryHigh:
		return 2.0
	case High:
		return 1.5
	case Low:
		return 0.3
	case VeryLow:
		return -0.5
	default:
		return 1.0
	}
}

type potentials map[Sector]Potential

func row(h, e, m, i, ho, a, tr, s, to, sp Potential) potentials {
	return potentials{
		Health: h, Education: e, Military: m, Infrastructure: i, Housing: ho,
		Agriculture: a, Transportation: tr, Security: s, Tourism: to, Sports: sp,
	}
}

// Columns: health, education, military, infrastructure, housing,
// agriculture, transportation, security, tourism, sports.
var sectorPotentials = map[string]potentials{
	"usa":         row(High, VeryHigh, VeryHigh, High, Mid, High, High, High, High, VeryHigh),
	"china":       row(Mid, High, High, VeryHigh, High, High, VeryHigh, High, Mid, Mid),
	"russia":      row(Low, Mid, VeryHigh, Mid, Low, Mid, Mid, High, Low, Mid),
	"india":       row(Mid, High, High, High, Mid, High, Mid, Mid, High, Mid),
	"uk":          row(High, VeryHigh, High, Mid, Mid, Low, High, High, VeryHigh, VeryHigh),
	"france":      row(VeryHigh, High, High, High, Mid, High, High, Mid, VeryHigh, High),
	"germany":     row(High, VeryHigh, Mid, VeryHigh, High, Mid, VeryHigh, High, High, High),
	"japan":       row(VeryHigh, VeryHigh, Mid, VeryHigh, Mid, Low, VeryHigh, VeryHigh, High, High),
	"brazil":      row(Mid, Mid, Mid, Mid, Mid, VeryHigh, Mid, Low, High, VeryHigh),
	"mexico":      row(Mid, Mid, Low, Mid, Mid, High, Mid, Low, VeryHigh, High),
	"southafrica": row(Low, Mid, Mid, Mid, Low, Mid, Mid, Low, High, High),
	"somalia":     row(VeryLow, Low, Low, Low, Low, Low, VeryLow, VeryLow, VeryLow, Low),
	"canada":      row(High, High, Mid, High, Mid, High, High, High, High, High),
	"australia":   row(High, High, Mid, High, Mid, High, Mid, High, VeryHigh, VeryHigh),
	"southkorea":  row(High, VeryHigh, High, VeryHigh, Mid, Low, VeryHigh, High, Mid, Mid),
	"northkorea":  row(VeryLow, Low, High, Low, VeryLow, Low, Low, High, VeryLow, Low),
	"iran":        row(Mid, Mid, High, Mid, Low, Mid, Mid, High, Low, Mid),
	"pakistan":    row(Low, Low, High, Low, Low, High, Low, Mid, Low, High),
	"poland":      row(Mid, High, High, High, Mid, High, High, High, Mid, Mid),
	"argentina":   row(Mid, High, Low, Mid, Mid, VeryHigh, Mid, Low, High, VeryHigh),
	"ethiopia":    row(Low, Low, Mid, Mid, Low, High, Low, Low, Mid, High),
	"kenya":       row(Low, Mid, Low, Mid, Low, High, Mid, Low, VeryHigh, High),
	"israel":      row(VeryHigh, VeryHigh, VeryHigh, High, Mid, Mid, Mid, VeryHigh, Mid, Low),
	"chile":       row(Mid, High, Low, Mid, Mid, High, Mid, Mid, High, Mid),
	"eritrea":     row(VeryLow, Low, Mid, VeryLow, VeryLow, Low, VeryLow, Low, VeryLow, Low),
	"syria":       row(VeryLow, Low, Mid, VeryLow, VeryLow, Low, VeryLow, Low, VeryLow, Low),
	"lebanon":     row(Mid, High, Low, Low, Low, Mid, Low, Low, High, Low),
}

// PotentialOf returns the potential of sector s for country id. Unknown
// combinations rate as mid.
func PotentialOf(id string, s Sector) Potential {
	if p, ok := sectorPotentials[id][s]; ok {
		return p
	}
	return Mid
}
