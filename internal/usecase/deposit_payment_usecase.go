package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"repair_quotes/internal/domain/entities"
	"repair_quotes/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrDepositPaymentNotFound         = errors.New("deposit payment not found")
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrDepositNotRequired             = errors.New("quote does not require a deposit")
	ErrDepositAlreadyPaid             = errors.New("deposit already paid")
	ErrQuoteExpired                   = errors.New("quote expired")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// IDepositPaymentUseCase takes the upfront deposit of a quote.
//
// Requested behavior:
//   - Charge quote.deposit_required through the gateway and store the outcome.
//   - Refuse quotes without a deposit, expired quotes and already paid deposits.

type IDepositPaymentUseCase interface {
	PayDeposit(ctx context.Context, quoteID string, mpPayload json.RawMessage) (entities.DepositPayment, error)
	GetLatestByQuoteID(ctx context.Context, quoteID string) (entities.DepositPayment, error)
}

type DepositPaymentUseCase struct {
	repo     interfaces.IDepositPaymentRepository
	quotes   interfaces.IQuoteRepository
	gateway  interfaces.IPaymentGateway
	mockMode bool
	now      func() time.Time
}

var _ IDepositPaymentUseCase = (*DepositPaymentUseCase)(nil)

func NewDepositPaymentUseCase(repo interfaces.IDepositPaymentRepository, quotes interfaces.IQuoteRepository, gateway interfaces.IPaymentGateway, mockMode bool) *DepositPaymentUseCase {
	return &DepositPaymentUseCase{
		repo:     repo,
		quotes:   quotes,
		gateway:  gateway,
		mockMode: mockMode,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (u *DepositPaymentUseCase) PayDeposit(ctx context.Context, quoteID string, mpPayload json.RawMessage) (entities.DepositPayment, error) {
	log.Printf("[deposit][usecase] pay start raw_quote_id=%q payload_len=%d", quoteID, len(mpPayload))
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.DepositPayment{}, ErrInvalidQuoteID
	}
	if len(mpPayload) == 0 || !json.Valid(mpPayload) {
		if !u.mockMode {
			log.Printf("[deposit][usecase] invalid payload quote_id=%s", quoteID)
			return entities.DepositPayment{}, ErrInvalidMPPayload
		}
		mpPayload = json.RawMessage("{}")
	}
	if !u.mockMode && u.gateway == nil {
		return entities.DepositPayment{}, errors.New("payment gateway not configured")
	}
	if u.quotes == nil || u.repo == nil {
		return entities.DepositPayment{}, errors.New("deposit repositories not configured")
	}

	q, err := u.quotes.GetByID(ctx, quoteID)
	if err != nil {
		log.Printf("[deposit][usecase] failed loading quote quote_id=%s err=%v", quoteID, err)
		return entities.DepositPayment{}, err
	}
	if q.ID == "" {
		return entities.DepositPayment{}, ErrQuoteNotFound
	}
	if !q.RequiresDeposit() {
		log.Printf("[deposit][usecase] deposit not required quote_id=%s final=%s", quoteID, q.FinalCost.StringFixed(2))
		return entities.DepositPayment{}, ErrDepositNotRequired
	}
	now := u.now()
	if q.Expired(now) {
		log.Printf("[deposit][usecase] quote expired quote_id=%s valid_until=%s", quoteID, q.ValidUntil.Format(time.RFC3339))
		return entities.DepositPayment{}, ErrQuoteExpired
	}

	existing, err := u.repo.ListByQuoteID(ctx, quoteID)
	if err != nil {
		return entities.DepositPayment{}, err
	}
	for _, p := range existing {
		if p.Status == entities.PaymentStatusApproved {
			log.Printf("[deposit][usecase] deposit already paid quote_id=%s payment_id=%s", quoteID, p.ID)
			return entities.DepositPayment{}, ErrDepositAlreadyPaid
		}
	}

	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err != nil || reqMap == nil {
		if !u.mockMode {
			return entities.DepositPayment{}, ErrInvalidMPPayload
		}
		reqMap = map[string]any{}
	}
	if !u.mockMode && (!hasNonEmptyString(reqMap, "payment_method_id") || !hasPayer(reqMap)) {
		log.Printf("[deposit][usecase] missing payment_method_id or payer quote_id=%s", quoteID)
		return entities.DepositPayment{}, ErrInvalidMPPayload
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Repair quote %s deposit", quoteID)
	}
	// The quote is the source of truth for amount and reference.
	reqMap["external_reference"] = quoteID
	reqMap["transaction_amount"] = q.DepositRequired.InexactFloat64()
	mpPayload, err = json.Marshal(reqMap)
	if err != nil {
		return entities.DepositPayment{}, err
	}

	// Concurrent charges can all pass the listing above. The reservation serializes them.
	reserved, err := u.repo.ReserveQuote(ctx, quoteID)
	if err != nil {
		log.Printf("[deposit][usecase] reserve failed quote_id=%s err=%v", quoteID, err)
		return entities.DepositPayment{}, err
	}
	if !reserved {
		log.Printf("[deposit][usecase] deposit already reserved quote_id=%s", quoteID)
		return entities.DepositPayment{}, ErrDepositAlreadyPaid
	}

	var (
		providerPaymentID string
		providerStatus    string
		providerResp      json.RawMessage
	)
	if u.mockMode {
		log.Printf("[deposit][usecase] mock mode enabled; skipping external payment gateway quote_id=%s", quoteID)
		providerPaymentID, providerStatus, providerResp, err = mockProviderResponse(reqMap, now)
		if err != nil {
			u.releaseQuote(ctx, quoteID)
			return entities.DepositPayment{}, err
		}
	} else {
		providerPaymentID, providerStatus, providerResp, err = u.gateway.CreatePayment(ctx, mpPayload)
		if err != nil {
			log.Printf("[deposit][usecase] payment gateway failed quote_id=%s err=%v", quoteID, err)
			u.releaseQuote(ctx, quoteID)
			return entities.DepositPayment{}, classifyGatewayError(err)
		}
	}
	log.Printf("[deposit][usecase] payment gateway success quote_id=%s provider_payment_id=%s provider_status=%s", quoteID, providerPaymentID, providerStatus)

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Printf("[deposit][usecase] provider response unmarshal failed quote_id=%s err=%v", quoteID, err)
	}

	p := entities.DepositPayment{
		ID:                 providerPaymentID,
		QuoteID:            quoteID,
		Amount:             q.DepositRequired,
		Date:               now,
		Status:             entities.PaymentStatusFromProvider(providerStatus),
		ProviderPayloadRaw: providerResp,
		ProviderPayload:    parsed,
	}
	// A rejected charge took no money, so the quote may be paid again.
	// Approved and pending charges keep the reservation.
	if p.Status == entities.PaymentStatusRejected {
		defer u.releaseQuote(ctx, quoteID)
	}
	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[deposit][usecase] repository create failed quote_id=%s payment_id=%s err=%v", quoteID, p.ID, err)
		return entities.DepositPayment{}, err
	}
	log.Printf("[deposit][usecase] pay success quote_id=%s payment_id=%s status=%s amount=%s", quoteID, created.ID, created.Status, created.Amount.StringFixed(2))
	return created, nil
}

func (u *DepositPaymentUseCase) GetLatestByQuoteID(ctx context.Context, quoteID string) (entities.DepositPayment, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.DepositPayment{}, ErrInvalidQuoteID
	}

	payments, err := u.repo.ListByQuoteID(ctx, quoteID)
	if err != nil {
		return entities.DepositPayment{}, err
	}
	if len(payments) == 0 {
		return entities.DepositPayment{}, ErrDepositPaymentNotFound
	}
	latest := payments[0]
	for _, p := range payments[1:] {
		if p.Date.After(latest.Date) {
			latest = p
		}
	}
	return latest, nil
}

func (u *DepositPaymentUseCase) releaseQuote(ctx context.Context, quoteID string) {
	if err := u.repo.ReleaseQuote(context.WithoutCancel(ctx), quoteID); err != nil {
		log.Printf("[deposit][usecase] release failed quote_id=%s err=%v", quoteID, err)
	}
}

func mockProviderResponse(req map[string]any, now time.Time) (string, string, json.RawMessage, error) {
	id := uuid.NewString()
	resp := make(map[string]any, len(req)+5)
	for k, v := range req {
		resp[k] = v
	}
	ts := now.Format(time.RFC3339Nano)
	resp["id"] = id
	resp["status"] = "approved"
	resp["status_detail"] = "accredited"
	resp["date_created"] = ts
	resp["date_approved"] = ts

	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	return id, "approved", b, nil
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	if hasNonEmptyString(payer, "email") {
		return true
	}
	id, ok := payer["id"]
	if !ok || id == nil {
		return false
	}
	return strings.TrimSpace(fmt.Sprintf("%v", id)) != ""
}

func classifyGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002"):
		return ErrPaymentGatewayCustomerNotFound
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034"):
		return ErrPaymentGatewayInvalidUsers
	case strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401"):
		return ErrPaymentGatewayUnauthorized
	case strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400"):
		return ErrPaymentGatewayBadRequest
	default:
		return err
	}
}
