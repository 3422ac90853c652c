package state

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/younisbosefi/younosomy/internal/entropy"
)

// EventType classifies a log entry for display.
type EventType string

const (
	EventWorld    EventType = "world"
	EventPlayer   EventType = "player"
	EventCritical EventType = "critical"
	EventAdvice   EventType = "advice"
)

// Category is the subject area of an event.
type Category string

const (
	CategoryEconomic   Category = "economic"
	CategoryMilitary   Category = "military"
	CategoryDiplomatic Category = "diplomatic"
	CategoryDomestic   Category = "domestic"
	CategorySystem     Category = "system"
)

// Impact is the effect a world event has on the player's country. All
// fields are additive.
type Impact struct {
	GDP                 float64            `json:"gdp,omitempty"`
	Treasury            float64            `json:"treasury,omitempty"`
	Happiness           float64            `json:"happiness,omitempty"`
	Revenue             float64            `json:"revenue,omitempty"`
	Unemployment        float64            `json:"unemployment,omitempty"`
	Inflation           float64            `json:"inflation,omitempty"`
	GDPGrowth           float64            `json:"gdpGrowth,omitempty"`
	Reputation          float64            `json:"reputation,omitempty"`
	RelationshipChanges map[string]float64 `json:"relationshipChanges,omitempty"`
	SanctionedBy        string             `json:"sanctionedBy,omitempty"`
}

// IsZero reports whether i changes nothing.
func (i Impact) IsZero() bool {
	return i.GDP == 0 && i.Treasury == 0 && i.Happiness == 0 && i.Revenue == 0 &&
		i.Unemployment == 0 && i.Inflation == 0 && i.GDPGrowth == 0 && i.Reputation == 0 &&
		len(i.RelationshipChanges) == 0 && i.SanctionedBy == ""
}

// Event is one entry of the game log.
type Event struct {
	ID        string    `json:"id"`
	Day       int       `json:"day"`
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Category  Category  `json:"category"`
	Message   string    `json:"message"`
	Icon      string    `json:"icon,omitempty"`
	Impact    *Impact   `json:"impact,omitempty"`
}

func cloneEvents(evs []Event) []Event {
	out := slices.Clone(evs)
	for i := range out {
		if out[i].Impact != nil {
			imp := *out[i].Impact
			imp.RelationshipChanges = maps.Clone(imp.RelationshipChanges)
			out[i].Impact = &imp
		}
	}
	return out
}

// AppendEvents returns the log with evs appended, trimmed to the last
// MaxEvents entries.
func AppendEvents(log []Event, evs ...Event) []Event {
	out := make([]Event, 0, len(log)+len(evs))
	out = append(out, log...)
	out = append(out, evs...)
	if len(out) > MaxEvents {
		out = slices.Clone(out[len(out)-MaxEvents:])
	}
	return out
}

// Sequence hands out monotonically increasing ids. It is owned by one game
// session so ids replay identically under a seeded source.
type Sequence struct {
	mu   sync.Mutex
	last uint64
}

// NewSequence starts a sequence after last.
func NewSequence(last uint64) *Sequence {
	return &Sequence{last: last}
}

// Next returns the next value.
func (q *Sequence) Next() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.last++
	return q.last
}

// Last returns the most recently issued value.
func (q *Sequence) Last() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.last
}

// Env carries the collaborators every probabilistic or id-producing
// operation draws from.
type Env struct {
	Rand entropy.Source
	IDs  *Sequence
	Now  func() time.Time
}

// NewEnv builds an Env with a fresh sequence and the wall clock in UTC.
func NewEnv(src entropy.Source) *Env {
	return &Env{
		Rand: src,
		IDs:  NewSequence(0),
		Now:  func() time.Time { return time.Now().UTC() },
	}
}

// NextID returns a fresh id such as "event-12".
func (e *Env) NextID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, e.IDs.Next())
}

// Chance rolls once against p.
func (e *Env) Chance(p float64) bool {
	return entropy.Chance(e.Rand, p)
}

func (e *Env) now() time.Time {
	if e.Now == nil {
		return time.Time{}
	}
	return e.Now()
}

// NewEvent stamps a log entry for day.
func (e *Env) NewEvent(day int, typ EventType, cat Category, msg string) Event {
	return Event{
		ID:        e.NextID("event"),
		Day:       day,
		Timestamp: e.now(),
		Type:      typ,
		Category:  cat,
		Message:   msg,
	}
}

// PlayerEvent records something the player did.
func (e *Env) PlayerEvent(s *WorldState, cat Category, msg string) Event {
	return e.NewEvent(s.CurrentDay, EventPlayer, cat, msg)
}

// CriticalEvent records an alert or a rejected command.
func (e *Env) CriticalEvent(s *WorldState, cat Category, msg string) Event {
	return e.NewEvent(s.CurrentDay, EventCritical, cat, msg)
}

// WorldEvent records something that happened abroad.
func (e *Env) WorldEvent(s *WorldState, cat Category, msg string) Event {
	return e.NewEvent(s.CurrentDay, EventWorld, cat, msg)
}

// AdviceEvent records an advisor's tip.
func (e *Env) AdviceEvent(s *WorldState, cat Category, msg string) Event {
	return e.NewEvent(s.CurrentDay, EventAdvice, cat, msg)
}
