package interfaces

import (
	"context"

	"repair_quotes/internal/domain/entities"
)

// IPricingRuleRepository provides the rule list snapshot for one quote.
type IPricingRuleRepository interface {
	ListActive(ctx context.Context) ([]entities.PricingRule, error)
}
