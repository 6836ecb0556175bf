package response

import (
	"time"

	"repair_quotes/internal/domain/entities"
)

type DepositPaymentResponse struct {
	ID              string                 `json:"id"`
	QuoteID         string                 `json:"quote_id"`
	Amount          float64                `json:"amount"`
	Currency        string                 `json:"currency"`
	Date            time.Time              `json:"date"`
	Status          string                 `json:"status"`
	ProviderPayload map[string]interface{} `json:"provider_payload,omitempty"`
}

func FromDepositPayment(p entities.DepositPayment) DepositPaymentResponse {
	return DepositPaymentResponse{
		ID:              p.ID,
		QuoteID:         p.QuoteID,
		Amount:          p.Amount.InexactFloat64(),
		Currency:        entities.CurrencyGBP,
		Date:            p.Date,
		Status:          string(p.Status),
		ProviderPayload: p.ProviderPayload,
	}
}
