package entities

import "github.com/shopspring/decimal"

// Issue is a repairable fault as described by the catalog.
//
// Storage model (DynamoDB):
//   - PK: id
//
// MinCost/MaxCost are optional; when the catalog has no specific estimate the
// pricing engine falls back to the per-category default table.
type Issue struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Category      string           `json:"category"`
	Difficulty    string           `json:"difficulty"`
	MinCost       *decimal.Decimal `json:"min_cost,omitempty"`
	MaxCost       *decimal.Decimal `json:"max_cost,omitempty"`
	TimeMinutes   int              `json:"time_minutes"`
	PartsRequired []string         `json:"parts_required"`
}
