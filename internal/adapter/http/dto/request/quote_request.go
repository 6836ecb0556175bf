package request

import (
	"strings"

	"repair_quotes/internal/domain/entities"
	"repair_quotes/internal/domain/pricing"
)

// IssueRef points at one catalog issue.
type IssueRef struct {
	ID string `json:"id" binding:"required"`
}

// QuoteRequest is the body of POST /pricing/calculate.
//
// Issues that do not resolve in the catalog are dropped, not rejected.
type QuoteRequest struct {
	DeviceID     string     `json:"device_id" binding:"required,uuid"`
	Issues       []IssueRef `json:"issues" binding:"required,min=1,dive"`
	ServiceType  string     `json:"service_type" binding:"omitempty,oneof=standard express same_day"`
	Priority     string     `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	CustomerType string     `json:"customer_type" binding:"omitempty,oneof=individual business education"`
}

func (r QuoteRequest) IssueIDs() []string {
	ids := make([]string, 0, len(r.Issues))
	for _, i := range r.Issues {
		ids = append(ids, i.ID)
	}
	return ids
}

// ServiceParams leaves empty fields empty; the engine applies the defaults.
func (r QuoteRequest) ServiceParams() entities.ServiceParams {
	return entities.ServiceParams{
		Type:         entities.ServiceType(r.ServiceType),
		Priority:     entities.Priority(r.Priority),
		CustomerType: entities.CustomerType(r.CustomerType),
	}
}

// SimpleQuoteRequest is the body of POST /pricing/simple.
//
// device_type is free text: an unpriced type is a 404, not a validation error.
type SimpleQuoteRequest struct {
	DeviceType string `json:"device_type" binding:"required"`
	Brand      string `json:"brand"`
	RepairType string `json:"repair_type" binding:"required"`
	Urgency    string `json:"urgency" binding:"omitempty,oneof=low standard high urgent emergency"`
}

func (r SimpleQuoteRequest) UrgencyLevel() pricing.Urgency {
	u := strings.TrimSpace(r.Urgency)
	if u == "" {
		return pricing.UrgencyStandard
	}
	return pricing.Urgency(u)
}
