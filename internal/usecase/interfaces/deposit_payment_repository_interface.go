package interfaces

import (
	"context"

	"repair_quotes/internal/domain/entities"
)

// IDepositPaymentRepository abstracts DynamoDB persistence for DepositPayment.
//
// ReserveQuote claims the single deposit slot of a quote and returns false when
// another charge already holds it. ReleaseQuote frees the slot again.

type IDepositPaymentRepository interface {
	Create(ctx context.Context, p entities.DepositPayment) (entities.DepositPayment, error)
	ListByQuoteID(ctx context.Context, quoteID string) ([]entities.DepositPayment, error)
	ReserveQuote(ctx context.Context, quoteID string) (bool, error)
	ReleaseQuote(ctx context.Context, quoteID string) error
}
