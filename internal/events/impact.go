package events

import (
	"slices"

	"github.com/younisbosefi/younosomy/internal/state"
)

// Total sums the impacts attached to evs.
func Total(evs []state.Event) state.Impact {
	var t state.Impact
	for _, ev := range evs {
		imp := ev.Impact
		if imp == nil {
			continue
		}
		t.GDP += imp.GDP
		t.Treasury += imp.Treasury
		t.Happiness += imp.Happiness
		t.Revenue += imp.Revenue
		t.Unemployment += imp.Unemployment
		t.Inflation += imp.Inflation
		t.GDPGrowth += imp.GDPGrowth
		t.Reputation += imp.Reputation
		for id, d := range imp.RelationshipChanges {
			if t.RelationshipChanges == nil {
				t.RelationshipChanges = make(map[string]float64)
			}
			t.RelationshipChanges[id] += d
		}
	}
	return t
}

// Sanctioners returns the countries that sanctioned the player in evs, in
// order and without repeats.
func Sanctioners(evs []state.Event) []string {
	var out []string
	for _, ev := range evs {
		if ev.Impact == nil || ev.Impact.SanctionedBy == "" || slices.Contains(out, ev.Impact.SanctionedBy) {
			continue
		}
		out = append(out, ev.Impact.SanctionedBy)
	}
	return out
}
