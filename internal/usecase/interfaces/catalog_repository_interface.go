package interfaces

import (
	"context"

	"repair_quotes/internal/domain/entities"
)

// ICatalogRepository is the read-only device and issue catalog.
//
// Lookups that find nothing are not errors:
//   - GetDevice returns a zero Device (empty ID)
//   - GetIssues returns only the issues that exist, in no particular order
type ICatalogRepository interface {
	GetDevice(ctx context.Context, id string) (entities.Device, error)
	GetIssues(ctx context.Context, ids []string) ([]entities.Issue, error)
}
