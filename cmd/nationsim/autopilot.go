package main

import (
	"log/slog"

	"github.com/younisbosefi/younosomy/internal/actions"
	"github.com/younisbosefi/younosomy/internal/atlas"
	"github.com/younisbosefi/younosomy/internal/economy"
	"github.com/younisbosefi/younosomy/internal/engine"
	"github.com/younisbosefi/younosomy/internal/state"
)

// reviewDays is how often the autopilot revisits economic policy.
const reviewDays = 30

// autopilot plays a session without a human: it answers every prompt the
// driver raises and runs a cautious monthly policy review.
type autopilot struct {
	sess       *engine.Session
	lastReview int
}

func (a *autopilot) attach(d *engine.Driver) {
	d.OnDecision = a.decide
	d.OnUprising = a.quell
	d.OnWarResult = a.acknowledge
}

// decide takes the answer most likely to go as planned.
func (a *autopilot) decide(d state.Decision) {
	best := 0
	for i, c := range d.Choices {
		if c.SuccessChance > d.Choices[best].SuccessChance {
			best = i
		}
	}
	res, err := a.sess.ResolveDecision(best)
	if err != nil {
		slog.Error("resolve decision", "title", d.Title, "error", err)
		return
	}
	slog.Info("autopilot decided", "title", d.Title, "choice", d.Choices[best].Label, "success", res.Success)
}

// quell cracks down when the security forces are likely to win and takes
// the coin flip otherwise.
func (a *autopilot) quell(s state.WorldState) {
	fight := a.sess.FightUprising
	if economy.RepressChance(s.MilitaryStrength, s.Security) > actions.RepressOdds {
		fight = a.sess.CrackDownUprising
	}
	res, err := fight()
	if err != nil {
		slog.Error("quell uprising", "error", err)
		return
	}
	slog.Info("autopilot answered uprising", "success", res.Success)
}

func (a *autopilot) acknowledge(r state.WarResult) {
	if _, err := a.sess.AcknowledgeWarResult(); err != nil {
		slog.Error("acknowledge war", "error", err)
		return
	}
	slog.Info("war over", "enemy", r.EnemyName, "won", r.PlayerWon)
}

// review runs the monthly policy pass.
func (a *autopilot) review(s state.WorldState) {
	if s.CurrentDay-a.lastReview < reviewDays {
		return
	}
	a.lastReview = s.CurrentDay

	var cmds []actions.Command
	switch {
	case s.InflationRate > 8 && s.InterestRate < 10:
		cmds = append(cmds, actions.AdjustInterestRate(min(10, s.InterestRate+0.5)))
	case s.InflationRate < 2 && s.InterestRate > 1:
		cmds = append(cmds, actions.AdjustInterestRate(s.InterestRate-0.5))
	}
	if sector, gap := neediest(s); gap > 0 && s.Treasury > s.GDP*0.02 {
		cmds = append(cmds, actions.SpendOnSector(sector, s.GDP*0.005))
	}
	if s.DebtToGDPRatio > 100 && s.Treasury > s.GDP*0.04 {
		cmds = append(cmds, actions.PayOffDebt(s.GDP*0.01))
	}

	for _, cmd := range cmds {
		res, err := a.sess.Execute(cmd)
		if err != nil {
			slog.Error("autopilot command", "error", err)
			return
		}
		slog.Debug("autopilot command", "success", res.Success, "message", res.Message)
	}
}

// neediest returns the sector furthest below its starting level.
func neediest(s state.WorldState) (atlas.Sector, float64) {
	var (
		pick atlas.Sector
		gap  float64
	)
	for _, sector := range atlas.Sectors {
		if g := s.InitialStats.SectorLevels[sector] - s.Sector(sector); g > gap {
			pick, gap = sector, g
		}
	}
	return pick, gap
}
