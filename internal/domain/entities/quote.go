package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceType is the requested turnaround speed.
type ServiceType string

const (
	ServiceTypeStandard ServiceType = "standard"
	ServiceTypeExpress  ServiceType = "express"
	ServiceTypeSameDay  ServiceType = "same_day"
)

// CustomerType is informational unless a pricing rule matches on it.
type CustomerType string

const (
	CustomerTypeIndividual CustomerType = "individual"
	CustomerTypeBusiness   CustomerType = "business"
	CustomerTypeEducation  CustomerType = "education"
)

// Priority is informational only.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

const (
	CurrencyGBP = "GBP"

	AdjustmentTypeServiceLevel = "service_level"
	AdjustmentTypeUrgency      = "urgency"
	AdjustmentTypeBrand        = "brand"
)

// IssueBreakdown is the priced line of one resolved issue.
type IssueBreakdown struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Difficulty    string          `json:"difficulty"`
	Cost          decimal.Decimal `json:"base_cost"`
	TimeMinutes   int             `json:"time_minutes"`
	PartsRequired []string        `json:"parts_required"`
}

// AppliedAdjustment records one rule (or surcharge) that changed the price.
type AppliedAdjustment struct {
	Name        string            `json:"name"`
	Type        string            `json:"type"`
	Amount      decimal.Decimal   `json:"adjustment"`
	Method      CalculationMethod `json:"method"`
	Description string            `json:"description"`
}

// ServiceParams are the contextual parameters of a quote request.
type ServiceParams struct {
	Type         ServiceType  `json:"type"`
	Priority     Priority     `json:"priority"`
	CustomerType CustomerType `json:"customer_type"`
}

// Quote is a priced, time-bounded repair estimate.
//
// A quote is never mutated after assembly. Invariant:
//
//	FinalCost == BaseCost + sum(Adjustments[i].Amount)  (before rounding)
//
// Storage model (DynamoDB archive):
//   - PK: id
//   - snapshot: JSON of the whole quote
type Quote struct {
	ID                  string              `json:"id"`
	Device              Device              `json:"device"`
	DeviceAgeYears      int                 `json:"device_age_years"`
	Issues              []IssueBreakdown    `json:"issues"`
	Service             ServiceParams       `json:"service"`
	BaseCost            decimal.Decimal     `json:"base_cost"`
	FinalCost           decimal.Decimal     `json:"final_cost"`
	Currency            string              `json:"currency"`
	Adjustments         []AppliedAdjustment `json:"adjustments"`
	Savings             decimal.Decimal     `json:"savings"`
	EstimatedHours      int                 `json:"estimated_hours"`
	EstimatedCompletion time.Time           `json:"estimated_completion"`
	GeneratedAt         time.Time           `json:"generated_at"`
	ValidUntil          time.Time           `json:"valid_until"`
	DepositRequired     decimal.Decimal     `json:"deposit_required"`
	WarrantyMonths      int                 `json:"warranty_months"`
	Guarantee           string              `json:"guarantee"`
}

// Expired reports whether the validity window has closed at now.
func (q Quote) Expired(now time.Time) bool {
	return now.After(q.ValidUntil)
}

// RequiresDeposit is true when an upfront payment must be taken.
func (q Quote) RequiresDeposit() bool {
	return q.DepositRequired.IsPositive()
}
