package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"repair_quotes/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

func TestFromIssueItem(t *testing.T) {
	raw := map[string]types.AttributeValue{
		"id":             &types.AttributeValueMemberS{Value: "iss-1"},
		"name":           &types.AttributeValueMemberS{Value: "Cracked screen"},
		"category":       &types.AttributeValueMemberS{Value: "screen"},
		"difficulty":     &types.AttributeValueMemberS{Value: "moderate"},
		"min_cost":       &types.AttributeValueMemberS{Value: "89.99"},
		"time_minutes":   &types.AttributeValueMemberN{Value: "90"},
		"parts_required": &types.AttributeValueMemberL{Value: []types.AttributeValue{&types.AttributeValueMemberS{Value: "lcd"}}},
	}

	var it issueItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	issue := fromIssueItem(it)

	if issue.ID != "iss-1" || issue.TimeMinutes != 90 || len(issue.PartsRequired) != 1 {
		t.Fatalf("unexpected issue: %+v", issue)
	}
	if issue.MinCost == nil || issue.MinCost.String() != "89.99" {
		t.Fatalf("unexpected min cost: %v", issue.MinCost)
	}
	if issue.MaxCost != nil {
		t.Fatalf("expected no max cost, got %v", issue.MaxCost)
	}
}

func TestFromPricingRuleItem(t *testing.T) {
	raw := map[string]types.AttributeValue{
		"id":                 &types.AttributeValueMemberS{Value: "r-1"},
		"name":               &types.AttributeValueMemberS{Value: "Business discount"},
		"rule_type":          &types.AttributeValueMemberS{Value: "discount"},
		"calculation_method": &types.AttributeValueMemberS{Value: "percentage"},
		"percentage":         &types.AttributeValueMemberS{Value: "-10"},
		"priority":           &types.AttributeValueMemberN{Value: "3"},
		"is_active":          &types.AttributeValueMemberBOOL{Value: true},
		"valid_until":        &types.AttributeValueMemberS{Value: "2026-12-31T23:59:59Z"},
		"created_at":         &types.AttributeValueMemberS{Value: "2026-01-01T00:00:00Z"},
		"conditions": &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
			"customer_type": &types.AttributeValueMemberS{Value: "business"},
			"min_age_years": &types.AttributeValueMemberN{Value: "2"},
		}},
	}

	var it pricingRuleItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	rule := fromPricingRuleItem(it)

	if rule.Method != entities.CalculationMethodPercentage || !rule.Percentage.Equal(decimal.NewFromInt(-10)) || !rule.Amount.IsZero() {
		t.Fatalf("unexpected rule values: %+v", rule)
	}
	if rule.Priority != 3 || !rule.Active {
		t.Fatalf("unexpected rule flags: %+v", rule)
	}
	if rule.Conditions.CustomerType == nil || *rule.Conditions.CustomerType != entities.CustomerTypeBusiness {
		t.Fatalf("unexpected customer type condition: %+v", rule.Conditions)
	}
	if rule.Conditions.MinAgeYears == nil || *rule.Conditions.MinAgeYears != 2 {
		t.Fatalf("unexpected age condition: %+v", rule.Conditions)
	}
	if rule.Conditions.Category != nil || rule.Conditions.ServiceType != nil {
		t.Fatalf("expected absent conditions to stay nil: %+v", rule.Conditions)
	}
	if rule.ValidFrom != nil || rule.ValidUntil == nil || rule.ValidUntil.Year() != 2026 {
		t.Fatalf("unexpected validity window: %v %v", rule.ValidFrom, rule.ValidUntil)
	}
	if !rule.CreatedAt.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected created_at: %s", rule.CreatedAt)
	}
}

func TestQuoteItemSnapshot(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	q := entities.Quote{
		ID:              "q-1",
		Device:          entities.Device{ID: "dev-1", Brand: "Apple"},
		BaseCost:        decimal.RequireFromString("120.00"),
		FinalCost:       decimal.RequireFromString("250.50"),
		DepositRequired: decimal.RequireFromString("75.15"),
		GeneratedAt:     now,
		ValidUntil:      now.Add(7 * 24 * time.Hour),
		Adjustments: []entities.AppliedAdjustment{
			{Name: "Express service", Amount: decimal.RequireFromString("60"), Method: entities.CalculationMethodMultiplier},
		},
	}

	it, err := toQuoteItem(q)
	if err != nil {
		t.Fatalf("toQuoteItem: %v", err)
	}
	if it.DeviceID != "dev-1" || it.FinalCost != "250.5" || it.ValidUntil != "2026-04-08T12:00:00Z" {
		t.Fatalf("unexpected item: %+v", it)
	}

	back, err := fromQuoteItem(it)
	if err != nil {
		t.Fatalf("fromQuoteItem: %v", err)
	}
	if back.ID != "q-1" || !back.FinalCost.Equal(q.FinalCost) || !back.DepositRequired.Equal(q.DepositRequired) {
		t.Fatalf("unexpected quote: %+v", back)
	}
	if !back.ValidUntil.Equal(q.ValidUntil) || len(back.Adjustments) != 1 {
		t.Fatalf("unexpected quote: %+v", back)
	}

	if _, err := fromQuoteItem(quoteItem{Snapshot: "{"}); err == nil {
		t.Fatalf("expected error for corrupt snapshot")
	}
}

func TestDepositPaymentItem(t *testing.T) {
	p := entities.DepositPayment{
		ID:                 "mp-1",
		QuoteID:            "q-1",
		Amount:             decimal.RequireFromString("75.15"),
		Date:               time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC),
		Status:             entities.PaymentStatusApproved,
		ProviderPayloadRaw: json.RawMessage(`{"id":"mp-1"}`),
		ProviderPayload:    map[string]interface{}{"id": "mp-1"},
	}

	it := toDepositPaymentItem(p)
	if it.Amount != "75.15" || it.Status != "approved" || it.ProviderPayloadRaw != `{"id":"mp-1"}` {
		t.Fatalf("unexpected item: %+v", it)
	}

	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded depositPaymentItem
	if err := attributevalue.UnmarshalMap(av, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	back := fromDepositPaymentItem(decoded)
	if back.QuoteID != "q-1" || !back.Amount.Equal(p.Amount) || !back.Date.Equal(p.Date) {
		t.Fatalf("unexpected payment: %+v", back)
	}
}

func TestDepositReservationItem(t *testing.T) {
	av, err := attributevalue.MarshalMap(depositReservationItem{ID: depositReservationID("q-1"), ReservedAt: "2026-04-01T12:00:00Z"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if id, ok := av["id"].(*types.AttributeValueMemberS); !ok || id.Value != "reservation#q-1" {
		t.Fatalf("unexpected reservation id: %#v", av["id"])
	}
	if _, ok := av["quote_id"]; ok {
		t.Fatalf("reservation must stay out of the quote_id index")
	}

	var decoded depositPaymentItem
	if err := attributevalue.UnmarshalMap(av, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.QuoteID != "" {
		t.Fatalf("reservation leaked a quote id: %+v", decoded)
	}
}

func TestIsConditionalCheckFailed(t *testing.T) {
	wrapped := fmt.Errorf("operation error DynamoDB: PutItem: %w", &types.ConditionalCheckFailedException{})
	if !isConditionalCheckFailed(wrapped) {
		t.Fatalf("expected wrapped conditional check failure to match")
	}
	if isConditionalCheckFailed(errors.New("throttled")) || isConditionalCheckFailed(nil) {
		t.Fatalf("unexpected match")
	}
}

func TestHelpers(t *testing.T) {
	if tableOrDefault("", "quotes") != "quotes" || tableOrDefault("prod_quotes", "quotes") != "prod_quotes" {
		t.Fatalf("unexpected table name resolution")
	}
	if !parseDecimal("oops").IsZero() {
		t.Fatalf("invalid decimal must parse as zero")
	}
	if parseOptionalDecimal("") != nil || parseOptionalDecimal("x") != nil {
		t.Fatalf("expected nil optional decimals")
	}
	if formatTime(time.Time{}) != "" {
		t.Fatalf("zero time must format as empty")
	}
	if parseOptionalTime("") != nil || parseOptionalTime("yesterday") != nil {
		t.Fatalf("expected nil optional times")
	}
}
