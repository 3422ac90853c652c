package state

import (
	"maps"
	"slices"

	"github.com/younisbosefi/younosomy/internal/atlas"
)

// Urgency ranks how pressing a decision is.
type Urgency string

const (
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// Decision is a blocking dilemma. While any decision is pending the
// simulation clock does not advance.
type Decision struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon,omitempty"`
	Urgency     Urgency  `json:"urgency"`
	Choices     []Choice `json:"choices"`
}

// Choice is one answer to a decision. OnSuccess applies when a roll lands
// under SuccessChance; otherwise OnFailure applies, if any.
type Choice struct {
	Label         string  `json:"label"`
	Description   string  `json:"description"`
	SuccessChance float64 `json:"successChance"`
	OnSuccess     Branch  `json:"onSuccess"`
	OnFailure     *Branch `json:"onFailure,omitempty"`
}

// Branch is the narrated effect of one side of a choice.
type Branch struct {
	Message string `json:"message"`
	Effect  Effect `json:"effect"`
}

// Effect describes a decision outcome relative to the state at the moment
// the choice is made, so commands issued while the decision waits are not
// overwritten. Factors of zero mean "unchanged".
type Effect struct {
	GDPFactor      float64                  `json:"gdpFactor,omitempty"`
	Treasury       float64                  `json:"treasury,omitempty"`
	TreasuryFactor float64                  `json:"treasuryFactor,omitempty"`
	DebtFactor     float64                  `json:"debtFactor,omitempty"`
	RevenueFactor  float64                  `json:"revenueFactor,omitempty"`
	GDPGrowth      float64                  `json:"gdpGrowth,omitempty"`
	Happiness      float64                  `json:"happiness,omitempty"`
	Unemployment   float64                  `json:"unemployment,omitempty"`
	Reputation     float64                  `json:"reputation,omitempty"`
	Military       float64                  `json:"military,omitempty"`
	Sectors        map[atlas.Sector]float64 `json:"sectors,omitempty"`
	Relationships  map[string]float64       `json:"relationships,omitempty"`
	War            *WarOrder                `json:"war,omitempty"`
	Defaults       bool                     `json:"defaults,omitempty"`
	// Fatal ends the game: happiness drops to zero and the leader is gone.
	Fatal bool `json:"fatal,omitempty"`
}

// WarOrder starts a war with Enemy when an effect is applied.
type WarOrder struct {
	Enemy          string `json:"enemy"`
	PlayerAttacker bool   `json:"playerAttacker"`
}

func (e Effect) clone() Effect {
	out := e
	out.Sectors = maps.Clone(e.Sectors)
	out.Relationships = maps.Clone(e.Relationships)
	if e.War != nil {
		w := *e.War
		out.War = &w
	}
	return out
}

func cloneDecisions(ds []Decision) []Decision {
	out := slices.Clone(ds)
	for i := range out {
		choices := slices.Clone(out[i].Choices)
		for j := range choices {
			choices[j].OnSuccess.Effect = choices[j].OnSuccess.Effect.clone()
			if f := choices[j].OnFailure; f != nil {
				b := Branch{Message: f.Message, Effect: f.Effect.clone()}
				choices[j].OnFailure = &b
			}
		}
		out[i].Choices = choices
	}
	return out
}
