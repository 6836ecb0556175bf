package interfaces

import (
	"context"

	"repair_quotes/internal/domain/entities"
)

// IQuoteRepository archives issued quotes so they can be fetched back and paid.

type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
}
