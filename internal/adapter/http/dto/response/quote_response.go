package response

import (
	"time"

	"repair_quotes/internal/domain/entities"
	"repair_quotes/internal/domain/pricing"
)

type QuoteResponse struct {
	QuoteID  string           `json:"quote_id"`
	Device   DeviceResponse   `json:"device"`
	Issues   []IssueResponse  `json:"issues"`
	Service  ServiceResponse  `json:"service"`
	Pricing  PricingResponse  `json:"pricing"`
	Timing   TimingResponse   `json:"timing"`
	Validity ValidityResponse `json:"validity"`
	Terms    TermsResponse    `json:"terms"`
}

type DeviceResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Category string `json:"category"`
	Year     int    `json:"year"`
	AgeYears int    `json:"age_years"`
}

type IssueResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Difficulty    string   `json:"difficulty"`
	BaseCost      float64  `json:"base_cost"`
	TimeMinutes   int      `json:"time_minutes"`
	PartsRequired []string `json:"parts_required"`
}

type ServiceResponse struct {
	Type         string `json:"type"`
	Priority     string `json:"priority"`
	CustomerType string `json:"customer_type"`
}

type AdjustmentResponse struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Adjustment  float64 `json:"adjustment"`
	Method      string  `json:"method"`
	Description string  `json:"description"`
}

type PricingResponse struct {
	BaseCost    float64              `json:"base_cost"`
	FinalCost   float64              `json:"final_cost"`
	Currency    string               `json:"currency"`
	Adjustments []AdjustmentResponse `json:"adjustments"`
	Savings     float64              `json:"savings"`
}

type TimingResponse struct {
	EstimatedHours      int       `json:"estimated_hours"`
	EstimatedCompletion time.Time `json:"estimated_completion"`
	ServiceLevel        string    `json:"service_level"`
}

type ValidityResponse struct {
	ValidUntil  time.Time `json:"valid_until"`
	GeneratedAt time.Time `json:"generated_at"`
}

type TermsResponse struct {
	DepositRequired float64 `json:"deposit_required"`
	WarrantyMonths  int     `json:"warranty_months"`
	Guarantee       string  `json:"guarantee"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	issues := make([]IssueResponse, 0, len(q.Issues))
	for _, i := range q.Issues {
		parts := i.PartsRequired
		if parts == nil {
			parts = []string{}
		}
		issues = append(issues, IssueResponse{
			ID:            i.ID,
			Name:          i.Name,
			Category:      i.Category,
			Difficulty:    i.Difficulty,
			BaseCost:      i.Cost.InexactFloat64(),
			TimeMinutes:   i.TimeMinutes,
			PartsRequired: parts,
		})
	}

	adjustments := make([]AdjustmentResponse, 0, len(q.Adjustments))
	for _, a := range q.Adjustments {
		adjustments = append(adjustments, AdjustmentResponse{
			Name:        a.Name,
			Type:        a.Type,
			Adjustment:  a.Amount.InexactFloat64(),
			Method:      string(a.Method),
			Description: a.Description,
		})
	}

	return QuoteResponse{
		QuoteID: q.ID,
		Device: DeviceResponse{
			ID:       q.Device.ID,
			Name:     q.Device.Name,
			Brand:    q.Device.Brand,
			Category: q.Device.Category,
			Year:     q.Device.Year,
			AgeYears: q.DeviceAgeYears,
		},
		Issues: issues,
		Service: ServiceResponse{
			Type:         string(q.Service.Type),
			Priority:     string(q.Service.Priority),
			CustomerType: string(q.Service.CustomerType),
		},
		Pricing: PricingResponse{
			BaseCost:    q.BaseCost.InexactFloat64(),
			FinalCost:   q.FinalCost.InexactFloat64(),
			Currency:    q.Currency,
			Adjustments: adjustments,
			Savings:     q.Savings.InexactFloat64(),
		},
		Timing: TimingResponse{
			EstimatedHours:      q.EstimatedHours,
			EstimatedCompletion: q.EstimatedCompletion,
			ServiceLevel:        serviceLevelLabel(q.Service.Type),
		},
		Validity: ValidityResponse{
			ValidUntil:  q.ValidUntil,
			GeneratedAt: q.GeneratedAt,
		},
		Terms: TermsResponse{
			DepositRequired: q.DepositRequired.InexactFloat64(),
			WarrantyMonths:  q.WarrantyMonths,
			Guarantee:       q.Guarantee,
		},
	}
}

func serviceLevelLabel(t entities.ServiceType) string {
	level, err := pricing.ServiceLevelFor(t)
	if err != nil {
		return string(t)
	}
	return level.Label
}
