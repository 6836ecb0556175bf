package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalculationMethod tells the rule evaluator how a rule turns into an amount.
type CalculationMethod string

const (
	CalculationMethodFixed      CalculationMethod = "fixed"
	CalculationMethodPercentage CalculationMethod = "percentage"
	CalculationMethodMultiplier CalculationMethod = "multiplier"
)

func (m CalculationMethod) IsValid() bool {
	switch m {
	case CalculationMethodFixed, CalculationMethodPercentage, CalculationMethodMultiplier:
		return true
	}
	return false
}

// RuleConditions holds the optional predicates of a pricing rule.
//
// A nil field means "no constraint"; every non-nil field must match.
type RuleConditions struct {
	Category      *string       `json:"category,omitempty"`
	Brand         *string       `json:"brand,omitempty"`
	ServiceType   *ServiceType  `json:"service_type,omitempty"`
	MinAgeYears   *int          `json:"min_age_years,omitempty"`
	MaxAgeYears   *int          `json:"max_age_years,omitempty"`
	CustomerType  *CustomerType `json:"customer_type,omitempty"`
	IssueCategory *string       `json:"issue_category,omitempty"`
}

// PricingRule is a conditional adjustment authored outside this service.
//
// Storage model (DynamoDB):
//   - PK: id
//   - conditions are stored as a nested map
//
// Amount is used by fixed rules, Percentage by percentage and multiplier rules.
// Lower Priority values are applied first.
type PricingRule struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	RuleType   string            `json:"rule_type"`
	Method     CalculationMethod `json:"calculation_method"`
	Amount     decimal.Decimal   `json:"amount"`
	Percentage decimal.Decimal   `json:"percentage"`
	Conditions RuleConditions    `json:"conditions"`
	Priority   int               `json:"priority"`
	Active     bool              `json:"active"`
	ValidFrom  *time.Time        `json:"valid_from,omitempty"`
	ValidUntil *time.Time        `json:"valid_until,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// ValidAt reports whether the rule is active and its validity window contains now.
func (r PricingRule) ValidAt(now time.Time) bool {
	if !r.Active {
		return false
	}
	if r.ValidFrom != nil && now.Before(*r.ValidFrom) {
		return false
	}
	if r.ValidUntil != nil && now.After(*r.ValidUntil) {
		return false
	}
	return true
}
