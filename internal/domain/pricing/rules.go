package pricing

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"repair_quotes/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RuleContext is what pricing rule conditions are matched against.
// DeviceAgeUnknown makes every age-bounded rule fail to match.
type RuleContext struct {
	DeviceCategory   string
	DeviceBrand      string
	DeviceAgeYears   int
	DeviceAgeUnknown bool
	ServiceType      entities.ServiceType
	CustomerType     entities.CustomerType
	IssueCategories  []string
}

// RuleOutcome is the result of folding the rule list over a running cost.
type RuleOutcome struct {
	FinalCost   decimal.Decimal
	Adjustments []entities.AppliedAdjustment
}

// adjuster is the tagged form of a rule's calculation method.
type adjuster interface {
	amount(running decimal.Decimal) decimal.Decimal
	describe(ruleName string) string
	method() entities.CalculationMethod
}

type fixedAdjuster struct{ value decimal.Decimal }

type percentageAdjuster struct{ pct decimal.Decimal }

// multiplierAdjuster compounds on the running cost, which already includes
// every adjustment applied before it.
type multiplierAdjuster struct{ pct decimal.Decimal }

func (a fixedAdjuster) amount(decimal.Decimal) decimal.Decimal { return a.value }

func (a fixedAdjuster) describe(ruleName string) string {
	return fmt.Sprintf("%s: fixed adjustment of %s", ruleName, a.value.StringFixed(2))
}

func (a fixedAdjuster) method() entities.CalculationMethod { return entities.CalculationMethodFixed }

func (a percentageAdjuster) amount(running decimal.Decimal) decimal.Decimal {
	return running.Mul(a.pct).Div(hundred)
}

func (a percentageAdjuster) describe(ruleName string) string {
	return fmt.Sprintf("%s: %s%% of running cost", ruleName, a.pct.String())
}

func (a percentageAdjuster) method() entities.CalculationMethod {
	return entities.CalculationMethodPercentage
}

func (a multiplierAdjuster) amount(running decimal.Decimal) decimal.Decimal {
	return running.Mul(a.pct).Div(hundred)
}

func (a multiplierAdjuster) describe(ruleName string) string {
	return fmt.Sprintf("%s: %s%% compounded on running cost", ruleName, a.pct.String())
}

func (a multiplierAdjuster) method() entities.CalculationMethod {
	return entities.CalculationMethodMultiplier
}

func adjusterFor(rule entities.PricingRule) (adjuster, bool) {
	switch rule.Method {
	case entities.CalculationMethodFixed:
		return fixedAdjuster{value: rule.Amount}, true
	case entities.CalculationMethodPercentage:
		return percentageAdjuster{pct: rule.Percentage}, true
	case entities.CalculationMethodMultiplier:
		return multiplierAdjuster{pct: rule.Percentage}, true
	default:
		return nil, false
	}
}

// OrderRules keeps the rules valid at now, sorted by ascending priority.
// Equal priorities keep creation order, then input order.
func OrderRules(rules []entities.PricingRule, now time.Time) []entities.PricingRule {
	out := make([]entities.PricingRule, 0, len(rules))
	for _, r := range rules {
		if r.ValidAt(now) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Matches AND-combines every condition present on the rule.
func Matches(c entities.RuleConditions, ctx RuleContext) bool {
	if c.Category != nil && !sameText(*c.Category, ctx.DeviceCategory) {
		return false
	}
	if c.Brand != nil && !sameText(*c.Brand, ctx.DeviceBrand) {
		return false
	}
	if c.ServiceType != nil && !sameText(string(*c.ServiceType), string(ctx.ServiceType)) {
		return false
	}
	if (c.MinAgeYears != nil || c.MaxAgeYears != nil) && ctx.DeviceAgeUnknown {
		return false
	}
	if c.MinAgeYears != nil && ctx.DeviceAgeYears < *c.MinAgeYears {
		return false
	}
	if c.MaxAgeYears != nil && ctx.DeviceAgeYears > *c.MaxAgeYears {
		return false
	}
	if c.CustomerType != nil && !sameText(string(*c.CustomerType), string(ctx.CustomerType)) {
		return false
	}
	if c.IssueCategory != nil {
		found := false
		for _, category := range ctx.IssueCategories {
			if sameText(*c.IssueCategory, category) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// EvaluateRules folds the valid, priority-ordered rules over base.
//
// Every step computes its adjustment against the running total at the start
// of that step and then adds it, so percentage and multiplier rules see the
// effect of all earlier rules. Rules with an unknown method are skipped.
func EvaluateRules(base decimal.Decimal, ctx RuleContext, rules []entities.PricingRule, now time.Time) RuleOutcome {
	running := base
	applied := make([]entities.AppliedAdjustment, 0)

	for _, rule := range OrderRules(rules, now) {
		if !Matches(rule.Conditions, ctx) {
			continue
		}
		adj, ok := adjusterFor(rule)
		if !ok {
			continue
		}

		delta := adj.amount(running)
		running = running.Add(delta)
		applied = append(applied, entities.AppliedAdjustment{
			Name:        rule.Name,
			Type:        rule.RuleType,
			Amount:      delta,
			Method:      adj.method(),
			Description: adj.describe(rule.Name),
		})
	}

	return RuleOutcome{FinalCost: running, Adjustments: applied}
}

func sameText(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
