// Package pricing is the repair quote calculation engine.
//
// Every function here is pure: the caller resolves the catalog and rule list
// and passes a point-in-time snapshot, so the engine holds no state and is
// safe for concurrent use.
package pricing

import (
	"errors"
	"time"

	"repair_quotes/internal/domain/entities"

	"github.com/google/uuid"
)

var ErrNoValidIssues = errors.New("no valid issues")

// QuoteInput is the point-in-time snapshot a quote is computed from.
type QuoteInput struct {
	Device  entities.Device
	Issues  []entities.Issue
	Rules   []entities.PricingRule
	Service entities.ServiceParams
	Now     time.Time
}

// Engine runs the full pipeline. It only carries the quote id generator.
type Engine struct {
	newID func() string
}

func NewEngine() *Engine {
	return &Engine{newID: uuid.NewString}
}

// NewEngineWithIDGenerator is used by tests that need stable quote ids.
func NewEngineWithIDGenerator(newID func() string) *Engine {
	return &Engine{newID: newID}
}

// Calculate runs aggregation, rules, service level, timing and assembly.
func (e *Engine) Calculate(in QuoteInput) (entities.Quote, error) {
	service := normalizeService(in.Service)
	level, err := ServiceLevelFor(service.Type)
	if err != nil {
		return entities.Quote{}, err
	}

	base := AggregateBaseCost(in.Issues)
	if len(base.Breakdown) == 0 {
		return entities.Quote{}, ErrNoValidIssues
	}

	ctx := RuleContext{
		DeviceCategory:   in.Device.Category,
		DeviceBrand:      in.Device.Brand,
		DeviceAgeYears:   in.Device.AgeYears(in.Now),
		DeviceAgeUnknown: !in.Device.AgeKnown(in.Now),
		ServiceType:      service.Type,
		CustomerType:     service.CustomerType,
		IssueCategories:  issueCategories(base.Breakdown),
	}
	outcome := EvaluateRules(base.Total, ctx, in.Rules, in.Now)

	adjustments := outcome.Adjustments
	if surcharge, ok := ServiceSurcharge(base.Total, level); ok {
		adjustments = append(adjustments, surcharge)
	}

	return AssembleQuote(Assembly{
		ID:          e.newID(),
		Now:         in.Now,
		Device:      in.Device,
		Breakdown:   base.Breakdown,
		Service:     service,
		BaseCost:    base.Total,
		Adjustments: adjustments,
		Timing:      EstimateCompletion(base.TimeMinutes, level, in.Now),
	})
}

func normalizeService(s entities.ServiceParams) entities.ServiceParams {
	if s.Type == "" {
		s.Type = entities.ServiceTypeStandard
	}
	if s.CustomerType == "" {
		s.CustomerType = entities.CustomerTypeIndividual
	}
	if s.Priority == "" {
		s.Priority = entities.PriorityMedium
	}
	return s
}

func issueCategories(lines []entities.IssueBreakdown) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.Category)
	}
	return out
}
