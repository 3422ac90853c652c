package api

import (
	"fmt"

	"github.com/younisbosefi/younosomy/internal/actions"
	"github.com/younisbosefi/younosomy/internal/atlas"
)

// commandRequest is the body of POST /api/v1/command. Which fields matter
// depends on Action.
type commandRequest struct {
	Action string  `json:"action"`
	Target string  `json:"target,omitempty"`
	Sector string  `json:"sector,omitempty"`
	Amount float64 `json:"amount,omitempty"`
	Rate   float64 `json:"rate,omitempty"`
}

type commandFactory func(req commandRequest) actions.Command

func targeted(f func(string) actions.Command) commandFactory {
	return func(req commandRequest) actions.Command { return f(req.Target) }
}

func sized(f func(float64) actions.Command) commandFactory {
	return func(req commandRequest) actions.Command { return f(req.Amount) }
}

func adjustInterestRate(req commandRequest) actions.Command {
	return actions.AdjustInterestRate(req.Rate)
}

func spendOnSector(req commandRequest) actions.Command {
	return actions.SpendOnSector(atlas.Sector(req.Sector), req.Amount)
}

func sendAid(req commandRequest) actions.Command {
	return actions.SendAid(req.Target, req.Amount)
}

var commands = map[string]commandFactory{
	"adjustInterestRate":  adjustInterestRate,
	"printMoney":          sized(actions.PrintMoney),
	"borrowFromIMF":       sized(actions.BorrowFromIMF),
	"addToReserves":       sized(actions.AddToReserves),
	"payOffDebt":          sized(actions.PayOffDebt),
	"spendOnSector":       spendOnSector,
	"declareWar":          targeted(actions.DeclareWar),
	"imposeSanction":      targeted(actions.ImposeSanction),
	"proposeAlliance":     targeted(actions.ProposeAlliance),
	"sendAid":             sendAid,
	"requestAid":          targeted(actions.RequestAid),
	"culturalExchange":    targeted(actions.CulturalExchange),
	"tradeAgreement":      targeted(actions.TradeAgreement),
	"militaryCooperation": targeted(actions.MilitaryCooperation),
	"denouncePublicly":    targeted(actions.DenouncePublicly),
	"borderAgreement":     targeted(actions.BorderAgreement),
	"espionageMission":    targeted(actions.EspionageMission),
}

func commandFor(req commandRequest) (actions.Command, error) {
	f, ok := commands[req.Action]
	if !ok {
		return nil, fmt.Errorf("unknown action %q", req.Action)
	}
	return f(req), nil
}
