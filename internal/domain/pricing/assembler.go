package pricing

import (
	"errors"
	"time"

	"repair_quotes/internal/domain/entities"

	"github.com/shopspring/decimal"
)

const (
	QuoteValidity  = 7 * 24 * time.Hour
	WarrantyMonths = 6
	Guarantee      = "No fix, no fee"
)

var (
	ErrNegativeFinalCost = errors.New("final cost is negative")

	depositThreshold = decimal.NewFromInt(200)
	depositRate      = decimal.RequireFromString("0.30")
)

// Assembly carries everything the assembler needs from the earlier steps.
type Assembly struct {
	ID          string
	Now         time.Time
	Device      entities.Device
	Breakdown   []entities.IssueBreakdown
	Service     entities.ServiceParams
	BaseCost    decimal.Decimal
	Adjustments []entities.AppliedAdjustment
	Timing      Timing
}

// RoundMoney rounds to the currency minor unit, half away from zero.
func RoundMoney(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

// DepositFor returns 30% of final cost when it exceeds the threshold, else 0.
func DepositFor(finalCost decimal.Decimal) decimal.Decimal {
	if finalCost.GreaterThan(depositThreshold) {
		return RoundMoney(finalCost.Mul(depositRate))
	}
	return decimal.Zero
}

// AssembleQuote builds the immutable quote. A negative final cost is treated as
// an internal defect and no quote is produced.
//
// Base cost and every adjustment are rounded first and the final cost is their
// sum, so FinalCost == BaseCost + sum(Adjustments) holds exactly on the quote.
func AssembleQuote(a Assembly) (entities.Quote, error) {
	base := RoundMoney(a.BaseCost)
	final := base
	adjustments := make([]entities.AppliedAdjustment, len(a.Adjustments))
	for i, adj := range a.Adjustments {
		adj.Amount = RoundMoney(adj.Amount)
		final = final.Add(adj.Amount)
		adjustments[i] = adj
	}
	if final.IsNegative() {
		return entities.Quote{}, ErrNegativeFinalCost
	}

	savings := base.Sub(final)
	if savings.IsNegative() {
		savings = decimal.Zero
	}
	breakdown := make([]entities.IssueBreakdown, len(a.Breakdown))
	for i, line := range a.Breakdown {
		line.Cost = RoundMoney(line.Cost)
		breakdown[i] = line
	}

	return entities.Quote{
		ID:                  a.ID,
		Device:              a.Device,
		DeviceAgeYears:      a.Device.AgeYears(a.Now),
		Issues:              breakdown,
		Service:             a.Service,
		BaseCost:            base,
		FinalCost:           final,
		Currency:            entities.CurrencyGBP,
		Adjustments:         adjustments,
		Savings:             savings,
		EstimatedHours:      a.Timing.EstimatedHours,
		EstimatedCompletion: a.Timing.EstimatedCompletion,
		GeneratedAt:         a.Now,
		ValidUntil:          a.Now.Add(QuoteValidity),
		DepositRequired:     DepositFor(final),
		WarrantyMonths:      WarrantyMonths,
		Guarantee:           Guarantee,
	}, nil
}
