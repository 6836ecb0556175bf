package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"repair_quotes/internal/domain/entities"
	"repair_quotes/internal/domain/pricing"
	"repair_quotes/internal/usecase/interfaces"

	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidDeviceID = errors.New("invalid device_id")
	ErrInvalidQuoteID  = errors.New("invalid quote_id")
	ErrDeviceNotFound  = errors.New("device not found")
	ErrQuoteNotFound   = errors.New("quote not found")
	ErrUpstream        = errors.New("upstream lookup failed")

	ErrNoValidIssues  = pricing.ErrNoValidIssues
	ErrNoPricingRule  = pricing.ErrNoPricingRule
	ErrUnknownUrgency = pricing.ErrUnknownUrgency
)

// IQuoteUseCase prices repair quotes and serves archived ones.
//
// Issue ids that are not in the catalog are dropped from the quote instead of
// failing the request; only when none resolve is ErrNoValidIssues returned.

type IQuoteUseCase interface {
	CalculateQuote(ctx context.Context, deviceID string, issueIDs []string, service entities.ServiceParams) (entities.Quote, error)
	CalculateSimpleQuote(ctx context.Context, deviceType, brand, repairType string, urgency pricing.Urgency) (entities.Quote, error)
	GetQuote(ctx context.Context, id string) (entities.Quote, error)
}

type QuoteUseCase struct {
	catalog      interfaces.ICatalogRepository
	rules        interfaces.IPricingRuleRepository
	quotes       interfaces.IQuoteRepository
	engine       *pricing.Engine
	retryBackoff time.Duration
	now          func() time.Time
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(catalog interfaces.ICatalogRepository, rules interfaces.IPricingRuleRepository, quotes interfaces.IQuoteRepository, engine *pricing.Engine, retryBackoff time.Duration) *QuoteUseCase {
	if engine == nil {
		engine = pricing.NewEngine()
	}
	if retryBackoff <= 0 {
		retryBackoff = defaultRetryBackoff
	}
	return &QuoteUseCase{
		catalog:      catalog,
		rules:        rules,
		quotes:       quotes,
		engine:       engine,
		retryBackoff: retryBackoff,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (u *QuoteUseCase) CalculateQuote(ctx context.Context, deviceID string, issueIDs []string, service entities.ServiceParams) (entities.Quote, error) {
	deviceID = strings.TrimSpace(deviceID)
	log.Printf("[quote][usecase] calculate start device_id=%q issues=%d service_type=%s", deviceID, len(issueIDs), service.Type)
	if deviceID == "" {
		return entities.Quote{}, ErrInvalidDeviceID
	}
	ids := cleanIDs(issueIDs)
	if len(ids) == 0 {
		log.Printf("[quote][usecase] no issue ids after cleanup device_id=%s", deviceID)
		return entities.Quote{}, ErrNoValidIssues
	}

	var (
		device entities.Device
		issues []entities.Issue
		rules  []entities.PricingRule
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		device, err = withRetry(gctx, "get device", u.retryBackoff, func(ctx context.Context) (entities.Device, error) {
			return u.catalog.GetDevice(ctx, deviceID)
		})
		return err
	})
	g.Go(func() error {
		var err error
		issues, err = withRetry(gctx, "get issues", u.retryBackoff, func(ctx context.Context) ([]entities.Issue, error) {
			return u.catalog.GetIssues(ctx, ids)
		})
		return err
	})
	g.Go(func() error {
		var err error
		rules, err = withRetry(gctx, "list pricing rules", u.retryBackoff, u.rules.ListActive)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Printf("[quote][usecase] catalog lookup failed device_id=%s err=%v", deviceID, err)
		return entities.Quote{}, err
	}

	if device.ID == "" {
		log.Printf("[quote][usecase] device not found device_id=%s", deviceID)
		return entities.Quote{}, ErrDeviceNotFound
	}

	resolved, dropped := orderIssues(ids, issues)
	if len(dropped) > 0 {
		log.Printf("[quote][usecase] dropping unknown issues device_id=%s dropped=%d ids=%s", deviceID, len(dropped), strings.Join(dropped, ","))
	}
	if len(resolved) == 0 {
		return entities.Quote{}, ErrNoValidIssues
	}

	q, err := u.engine.Calculate(pricing.QuoteInput{
		Device:  device,
		Issues:  resolved,
		Rules:   rules,
		Service: service,
		Now:     u.now(),
	})
	if err != nil {
		log.Printf("[quote][usecase] pricing failed device_id=%s err=%v", deviceID, err)
		return entities.Quote{}, err
	}

	u.archive(ctx, q)
	log.Printf("[quote][usecase] calculate success quote_id=%s base=%s final=%s adjustments=%d", q.ID, q.BaseCost.StringFixed(2), q.FinalCost.StringFixed(2), len(q.Adjustments))
	return q, nil
}

func (u *QuoteUseCase) CalculateSimpleQuote(ctx context.Context, deviceType, brand, repairType string, urgency pricing.Urgency) (entities.Quote, error) {
	log.Printf("[quote][usecase] simple start device_type=%q repair_type=%q urgency=%q", deviceType, repairType, urgency)
	q, err := u.engine.CalculateSimple(pricing.SimpleInput{
		DeviceType: deviceType,
		Brand:      brand,
		RepairType: repairType,
		Urgency:    urgency,
		Now:        u.now(),
	})
	if err != nil {
		log.Printf("[quote][usecase] simple pricing failed device_type=%q err=%v", deviceType, err)
		return entities.Quote{}, err
	}

	u.archive(ctx, q)
	log.Printf("[quote][usecase] simple success quote_id=%s final=%s", q.ID, q.FinalCost.StringFixed(2))
	return q, nil
}

func (u *QuoteUseCase) GetQuote(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	if u.quotes == nil {
		return entities.Quote{}, errors.New("quote repository not configured")
	}

	q, err := u.quotes.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

// archive stores the quote for later lookup and deposit. Failures are logged
// only; the caller still gets the quote.
func (u *QuoteUseCase) archive(ctx context.Context, q entities.Quote) {
	if u.quotes == nil {
		return
	}
	if _, err := u.quotes.Create(ctx, q); err != nil {
		log.Printf("[quote][usecase] archive failed quote_id=%s err=%v", q.ID, err)
	}
}

func cleanIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// orderIssues puts the catalog results back in request order and reports the
// requested ids the catalog did not return.
func orderIssues(requested []string, found []entities.Issue) ([]entities.Issue, []string) {
	byID := make(map[string]entities.Issue, len(found))
	for _, issue := range found {
		byID[issue.ID] = issue
	}

	resolved := make([]entities.Issue, 0, len(requested))
	dropped := make([]string, 0)
	for _, id := range requested {
		issue, ok := byID[id]
		if !ok {
			dropped = append(dropped, id)
			continue
		}
		resolved = append(resolved, issue)
	}
	return resolved, dropped
}
