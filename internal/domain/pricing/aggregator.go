package pricing

import (
	"strings"

	"repair_quotes/internal/domain/entities"

	"github.com/shopspring/decimal"
)

const unknownCategory = "unknown"

// categoryDefaultCosts is used when the catalog has no cost range for an issue.
var categoryDefaultCosts = map[string]decimal.Decimal{
	"screen":       decimal.NewFromInt(120),
	"battery":      decimal.NewFromInt(80),
	"charging":     decimal.NewFromInt(60),
	"camera":       decimal.NewFromInt(100),
	"audio":        decimal.NewFromInt(70),
	"hardware":     decimal.NewFromInt(90),
	"software":     decimal.NewFromInt(40),
	"connectivity": decimal.NewFromInt(50),
}

var unknownCategoryCost = decimal.NewFromInt(75)

// BaseCost is the output of the base cost aggregation step.
type BaseCost struct {
	Total       decimal.Decimal
	TimeMinutes int
	Breakdown   []entities.IssueBreakdown
}

// CategoryDefaultCost returns the fallback price for an issue category.
func CategoryDefaultCost(category string) decimal.Decimal {
	if cost, ok := categoryDefaultCosts[strings.ToLower(strings.TrimSpace(category))]; ok {
		return cost
	}
	return unknownCategoryCost
}

// IssueCost prices a single issue: the midpoint of the catalog range when both
// bounds exist, the single bound when only one does, else the category default.
func IssueCost(issue entities.Issue) decimal.Decimal {
	switch {
	case issue.MinCost != nil && issue.MaxCost != nil:
		return issue.MinCost.Add(*issue.MaxCost).Div(decimal.NewFromInt(2))
	case issue.MinCost != nil:
		return *issue.MinCost
	case issue.MaxCost != nil:
		return *issue.MaxCost
	default:
		return CategoryDefaultCost(issue.Category)
	}
}

// AggregateBaseCost sums cost and repair time over the resolved issues.
//
// Issues are expected to be catalog-resolved already; ids that did not resolve
// are dropped upstream rather than rejected. Repeated ids are priced once, in
// first-seen order.
func AggregateBaseCost(issues []entities.Issue) BaseCost {
	out := BaseCost{Total: decimal.Zero, Breakdown: make([]entities.IssueBreakdown, 0, len(issues))}
	seen := make(map[string]struct{}, len(issues))

	for _, issue := range issues {
		if issue.ID == "" {
			continue
		}
		if _, dup := seen[issue.ID]; dup {
			continue
		}
		seen[issue.ID] = struct{}{}

		cost := IssueCost(issue)
		category := strings.ToLower(strings.TrimSpace(issue.Category))
		if category == "" {
			category = unknownCategory
		}
		parts := issue.PartsRequired
		if parts == nil {
			parts = []string{}
		}

		out.Total = out.Total.Add(cost)
		out.TimeMinutes += issue.TimeMinutes
		out.Breakdown = append(out.Breakdown, entities.IssueBreakdown{
			ID:            issue.ID,
			Name:          issue.Name,
			Category:      category,
			Difficulty:    issue.Difficulty,
			Cost:          cost,
			TimeMinutes:   issue.TimeMinutes,
			PartsRequired: parts,
		})
	}
	return out
}
