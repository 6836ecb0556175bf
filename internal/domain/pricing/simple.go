package pricing

import (
	"errors"
	"strings"
	"time"

	"repair_quotes/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var (
	ErrNoPricingRule  = errors.New("no pricing rule for device type")
	ErrUnknownUrgency = errors.New("unknown urgency level")
)

const fallbackRepairType = "unknown_issue"

// Urgency is the single knob of the simple quote.
type Urgency string

const (
	UrgencyLow       Urgency = "low"
	UrgencyStandard  Urgency = "standard"
	UrgencyHigh      Urgency = "high"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyEmergency Urgency = "emergency"
)

var urgencyMultipliers = map[Urgency]decimal.Decimal{
	UrgencyLow:       decimal.RequireFromString("0.9"),
	UrgencyStandard:  decimal.NewFromInt(1),
	UrgencyHigh:      decimal.RequireFromString("1.2"),
	UrgencyUrgent:    decimal.RequireFromString("1.5"),
	UrgencyEmergency: decimal.NewFromInt(2),
}

var urgencyPriorities = map[Urgency]entities.Priority{
	UrgencyLow:       entities.PriorityLow,
	UrgencyStandard:  entities.PriorityMedium,
	UrgencyHigh:      entities.PriorityHigh,
	UrgencyUrgent:    entities.PriorityUrgent,
	UrgencyEmergency: entities.PriorityUrgent,
}

// simpleBasePrices is keyed by device type, then repair type.
var simpleBasePrices = map[string]map[string]int64{
	"smartphone": {
		"screen_damage":       120,
		"battery_issues":      80,
		"water_damage":        150,
		"audio_problems":      90,
		"performance_issues":  60,
		"connectivity_issues": 70,
		"unknown_issue":       80,
	},
	"tablet": {
		"screen_damage":       180,
		"battery_issues":      120,
		"water_damage":        200,
		"audio_problems":      100,
		"performance_issues":  80,
		"connectivity_issues": 90,
		"unknown_issue":       120,
	},
	"laptop": {
		"screen_damage":       250,
		"battery_issues":      150,
		"water_damage":        300,
		"audio_problems":      120,
		"performance_issues":  100,
		"connectivity_issues": 110,
		"unknown_issue":       150,
	},
	"desktop": {
		"screen_damage":       200,
		"battery_issues":      100,
		"water_damage":        250,
		"audio_problems":      100,
		"performance_issues":  120,
		"connectivity_issues": 100,
		"unknown_issue":       120,
	},
}

type simpleRepair struct {
	name     string
	category string
	minutes  int
}

var simpleRepairs = map[string]simpleRepair{
	"screen_damage":       {"Screen damage", "screen", 90},
	"battery_issues":      {"Battery issues", "battery", 60},
	"water_damage":        {"Water damage", "hardware", 180},
	"audio_problems":      {"Audio problems", "audio", 75},
	"performance_issues":  {"Performance issues", "software", 60},
	"connectivity_issues": {"Connectivity issues", "connectivity", 60},
	"unknown_issue":       {"Diagnostic assessment", "unknown", 90},
}

var brandUplifts = map[string]decimal.Decimal{
	"apple":   decimal.RequireFromString("1.2"),
	"samsung": decimal.RequireFromString("1.1"),
	"google":  decimal.RequireFromString("1.1"),
}

// SimpleInput is the device type / repair type / urgency triple.
type SimpleInput struct {
	DeviceType string
	Brand      string
	RepairType string
	Urgency    Urgency
	Now        time.Time
}

// CalculateSimple prices from the static table instead of the catalog and rule
// list, then goes through the same assembler as the full engine.
func (e *Engine) CalculateSimple(in SimpleInput) (entities.Quote, error) {
	deviceType := strings.ToLower(strings.TrimSpace(in.DeviceType))
	prices, ok := simpleBasePrices[deviceType]
	if !ok {
		return entities.Quote{}, ErrNoPricingRule
	}

	urgency := in.Urgency
	if urgency == "" {
		urgency = UrgencyStandard
	}
	multiplier, ok := urgencyMultipliers[urgency]
	if !ok {
		return entities.Quote{}, ErrUnknownUrgency
	}

	repairType := strings.ToLower(strings.TrimSpace(in.RepairType))
	price, ok := prices[repairType]
	if !ok {
		repairType = fallbackRepairType
		price = prices[fallbackRepairType]
	}
	repair := simpleRepairs[repairType]
	tablePrice := decimal.NewFromInt(price)
	aggregated := AggregateBaseCost([]entities.Issue{{
		ID:            repairType,
		Name:          repair.name,
		Category:      repair.category,
		Difficulty:    "standard",
		MinCost:       &tablePrice,
		MaxCost:       &tablePrice,
		TimeMinutes:   repair.minutes,
		PartsRequired: []string{},
	}})
	base := aggregated.Total

	running := base
	adjustments := make([]entities.AppliedAdjustment, 0, 2)
	brand := strings.TrimSpace(in.Brand)
	if uplift, ok := brandUplifts[strings.ToLower(brand)]; ok {
		delta := running.Mul(uplift.Sub(decimal.NewFromInt(1)))
		running = running.Add(delta)
		adjustments = append(adjustments, entities.AppliedAdjustment{
			Name:        brand + " parts",
			Type:        entities.AdjustmentTypeBrand,
			Amount:      delta,
			Method:      entities.CalculationMethodMultiplier,
			Description: "Brand parts uplift (" + uplift.String() + "x)",
		})
	}
	if delta := running.Mul(multiplier.Sub(decimal.NewFromInt(1))); !delta.IsZero() {
		running = running.Add(delta)
		adjustments = append(adjustments, entities.AppliedAdjustment{
			Name:        "Urgency: " + string(urgency),
			Type:        entities.AdjustmentTypeUrgency,
			Amount:      delta,
			Method:      entities.CalculationMethodMultiplier,
			Description: "Urgency multiplier (" + multiplier.String() + "x)",
		})
	}

	standard, _ := ServiceLevelFor(entities.ServiceTypeStandard)
	return AssembleQuote(Assembly{
		ID:  e.newID(),
		Now: in.Now,
		Device: entities.Device{
			Name:     deviceType,
			Brand:    brand,
			Category: deviceType,
		},
		Breakdown: aggregated.Breakdown,
		Service: entities.ServiceParams{
			Type:         entities.ServiceTypeStandard,
			Priority:     urgencyPriorities[urgency],
			CustomerType: entities.CustomerTypeIndividual,
		},
		BaseCost:    base,
		Adjustments: adjustments,
		Timing:      EstimateCompletion(aggregated.TimeMinutes, standard, in.Now),
	})
}
