package pricing

import (
	"errors"

	"repair_quotes/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var ErrUnknownServiceType = errors.New("unknown service type")

// ServiceLevel scales both price and turnaround for a service type.
type ServiceLevel struct {
	Type           entities.ServiceType
	Label          string
	CostMultiplier decimal.Decimal
	TimeMultiplier decimal.Decimal
}

var serviceLevels = map[entities.ServiceType]ServiceLevel{
	entities.ServiceTypeStandard: {
		Type:           entities.ServiceTypeStandard,
		Label:          "Standard service",
		CostMultiplier: decimal.NewFromInt(1),
		TimeMultiplier: decimal.NewFromInt(1),
	},
	entities.ServiceTypeExpress: {
		Type:           entities.ServiceTypeExpress,
		Label:          "Express service",
		CostMultiplier: decimal.RequireFromString("1.5"),
		TimeMultiplier: decimal.RequireFromString("0.6"),
	},
	entities.ServiceTypeSameDay: {
		Type:           entities.ServiceTypeSameDay,
		Label:          "Same-day service",
		CostMultiplier: decimal.NewFromInt(2),
		TimeMultiplier: decimal.RequireFromString("0.3"),
	},
}

// ServiceLevelFor resolves a service type; empty means standard.
func ServiceLevelFor(t entities.ServiceType) (ServiceLevel, error) {
	if t == "" {
		t = entities.ServiceTypeStandard
	}
	level, ok := serviceLevels[t]
	if !ok {
		return ServiceLevel{}, ErrUnknownServiceType
	}
	return level, nil
}

// ServiceSurcharge prices the turnaround speed against the ORIGINAL base cost,
// not the rule-adjusted one. ok is false when there is nothing to charge.
func ServiceSurcharge(base decimal.Decimal, level ServiceLevel) (entities.AppliedAdjustment, bool) {
	surcharge := base.Mul(level.CostMultiplier.Sub(decimal.NewFromInt(1)))
	if surcharge.IsZero() {
		return entities.AppliedAdjustment{}, false
	}
	return entities.AppliedAdjustment{
		Name:        level.Label,
		Type:        entities.AdjustmentTypeServiceLevel,
		Amount:      surcharge,
		Method:      entities.CalculationMethodMultiplier,
		Description: level.Label + " surcharge (" + level.CostMultiplier.String() + "x base cost)",
	}, true
}
