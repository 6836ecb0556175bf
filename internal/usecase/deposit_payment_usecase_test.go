package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"repair_quotes/internal/domain/entities"
	mock_interfaces "repair_quotes/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

type depositMocks struct {
	repo    *mock_interfaces.MockIDepositPaymentRepository
	quotes  *mock_interfaces.MockIQuoteRepository
	gateway *mock_interfaces.MockIPaymentGateway
}

func newTestDepositUseCase(ctrl *gomock.Controller, mockMode bool) (*DepositPaymentUseCase, depositMocks) {
	m := depositMocks{
		repo:    mock_interfaces.NewMockIDepositPaymentRepository(ctrl),
		quotes:  mock_interfaces.NewMockIQuoteRepository(ctrl),
		gateway: mock_interfaces.NewMockIPaymentGateway(ctrl),
	}
	uc := NewDepositPaymentUseCase(m.repo, m.quotes, m.gateway, mockMode)
	uc.now = func() time.Time { return fixedNow }
	return uc, m
}

func payableQuote() entities.Quote {
	return entities.Quote{
		ID:              "q-1",
		FinalCost:       decimal.NewFromInt(250),
		DepositRequired: decimal.NewFromInt(75),
		ValidUntil:      fixedNow.Add(24 * time.Hour),
	}
}

const validMPPayload = `{"payment_method_id":"visa","token":"tok","payer":{"email":"buyer@example.com"}}`

func TestDepositPaymentUseCase_PayDeposit_Validations(t *testing.T) {
	t.Run("empty quote id", func(t *testing.T) {
		uc := NewDepositPaymentUseCase(nil, nil, nil, false)
		_, err := uc.PayDeposit(context.Background(), " ", json.RawMessage(validMPPayload))
		if !errors.Is(err, ErrInvalidQuoteID) {
			t.Fatalf("expected ErrInvalidQuoteID, got %v", err)
		}
	})

	t.Run("empty payload", func(t *testing.T) {
		uc := NewDepositPaymentUseCase(nil, nil, nil, false)
		_, err := uc.PayDeposit(context.Background(), "q-1", nil)
		if !errors.Is(err, ErrInvalidMPPayload) {
			t.Fatalf("expected ErrInvalidMPPayload, got %v", err)
		}
	})

	t.Run("invalid json payload", func(t *testing.T) {
		uc := NewDepositPaymentUseCase(nil, nil, nil, false)
		_, err := uc.PayDeposit(context.Background(), "q-1", json.RawMessage(`{`))
		if !errors.Is(err, ErrInvalidMPPayload) {
			t.Fatalf("expected ErrInvalidMPPayload, got %v", err)
		}
	})

	t.Run("gateway not configured", func(t *testing.T) {
		uc := NewDepositPaymentUseCase(nil, nil, nil, false)
		_, err := uc.PayDeposit(context.Background(), "q-1", json.RawMessage(validMPPayload))
		if err == nil || err.Error() != "payment gateway not configured" {
			t.Fatalf("expected gateway not configured error, got %v", err)
		}
	})
}

func TestDepositPaymentUseCase_PayDeposit_QuoteChecks(t *testing.T) {
	cases := []struct {
		name    string
		quote   entities.Quote
		wantErr error
	}{
		{name: "quote not found", quote: entities.Quote{}, wantErr: ErrQuoteNotFound},
		{name: "no deposit required", quote: entities.Quote{ID: "q-1", FinalCost: decimal.NewFromInt(150), ValidUntil: fixedNow.Add(time.Hour)}, wantErr: ErrDepositNotRequired},
		{name: "quote expired", quote: func() entities.Quote {
			q := payableQuote()
			q.ValidUntil = fixedNow.Add(-time.Second)
			return q
		}(), wantErr: ErrQuoteExpired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc, m := newTestDepositUseCase(ctrl, false)
			m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(tc.quote, nil)

			_, err := uc.PayDeposit(context.Background(), "q-1", json.RawMessage(validMPPayload))
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}

	t.Run("quote repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newTestDepositUseCase(ctrl, false)
		m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{}, errors.New("db"))

		_, err := uc.PayDeposit(context.Background(), "q-1", json.RawMessage(validMPPayload))
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("already paid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newTestDepositUseCase(ctrl, false)
		m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(payableQuote(), nil)
		m.repo.EXPECT().ListByQuoteID(gomock.Any(), "q-1").Return([]entities.DepositPayment{
			{ID: "p-0", Status: entities.PaymentStatusRejected},
			{ID: "p-1", Status: entities.PaymentStatusApproved},
		}, nil)

		_, err := uc.PayDeposit(context.Background(), "q-1", json.RawMessage(validMPPayload))
		if !errors.Is(err, ErrDepositAlreadyPaid) {
			t.Fatalf("expected ErrDepositAlreadyPaid, got %v", err)
		}
	})

	t.Run("charge in flight for the same quote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newTestDepositUseCase(ctrl, false)
		m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(payableQuote(), nil)
		m.repo.EXPECT().ListByQuoteID(gomock.Any(), "q-1").Return(nil, nil)
		m.repo.EXPECT().ReserveQuote(gomock.Any(), "q-1").Return(false, nil)
		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Times(0)
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

		_, err := uc.PayDeposit(context.Background(), "q-1", json.RawMessage(validMPPayload))
		if !errors.Is(err, ErrDepositAlreadyPaid) {
			t.Fatalf("expected ErrDepositAlreadyPaid, got %v", err)
		}
	})

	t.Run("concurrent payments charge once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newTestDepositUseCase(ctrl, false)
		var held atomic.Bool
		m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(payableQuote(), nil).Times(2)
		m.repo.EXPECT().ListByQuoteID(gomock.Any(), "q-1").Return(nil, nil).Times(2)
		m.repo.EXPECT().ReserveQuote(gomock.Any(), "q-1").DoAndReturn(
			func(context.Context, string) (bool, error) { return held.CompareAndSwap(false, true), nil },
		).Times(2)
		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("mp-1", "approved", json.RawMessage(`{}`), nil).Times(1)
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.DepositPayment) (entities.DepositPayment, error) { return p, nil },
		).Times(1)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i := range errs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, errs[i] = uc.PayDeposit(context.Background(), "q-1", json.RawMessage(validMPPayload))
			}()
		}
		wg.Wait()

		paid, refused := 0, 0
		for _, err := range errs {
			switch {
			case err == nil:
				paid++
			case errors.Is(err, ErrDepositAlreadyPaid):
				refused++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if paid != 1 || refused != 1 {
			t.Fatalf("expected one charge and one refusal, got paid=%d refused=%d", paid, refused)
		}
	})

	t.Run("missing payment method", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newTestDepositUseCase(ctrl, false)
		m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(payableQuote(), nil)
		m.repo.EXPECT().ListByQuoteID(gomock.Any(), "q-1").Return(nil, nil)

		_, err := uc.PayDeposit(context.Background(), "q-1", json.RawMessage(`{"payer":{"email":"a@b.c"}}`))
		if !errors.Is(err, ErrInvalidMPPayload) {
			t.Fatalf("expected ErrInvalidMPPayload, got %v", err)
		}
	})
}

func TestDepositPaymentUseCase_PayDeposit_Gateway(t *testing.T) {
	t.Run("success charges the quote deposit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newTestDepositUseCase(ctrl, false)
		m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(payableQuote(), nil)
		m.repo.EXPECT().ListByQuoteID(gomock.Any(), "q-1").Return(nil, nil)
		m.repo.EXPECT().ReserveQuote(gomock.Any(), "q-1").Return(true, nil)
		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, payload json.RawMessage) (string, string, json.RawMessage, error) {
				var req map[string]any
				if err := json.Unmarshal(payload, &req); err != nil {
					t.Fatalf("payload is not json: %v", err)
				}
				if req["transaction_amount"] != 75.0 || req["external_reference"] != "q-1" {
					t.Fatalf("unexpected payload: %s", payload)
				}
				return "mp-123", "approved", json.RawMessage(`{"id":"mp-123","status":"approved"}`), nil
			},
		)
		m.repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.DepositPayment{})).DoAndReturn(
			func(_ context.Context, p entities.DepositPayment) (entities.DepositPayment, error) {
				if p.ID != "mp-123" || p.QuoteID != "q-1" || p.Status != entities.PaymentStatusApproved {
					t.Fatalf("unexpected payment: %+v", p)
				}
				if !p.Amount.Equal(decimal.NewFromInt(75)) || !p.Date.Equal(fixedNow) {
					t.Fatalf("unexpected amount/date: %+v", p)
				}
				if p.ProviderPayload["status"] != "approved" {
					t.Fatalf("expected parsed provider payload")
				}
				return p, nil
			},
		)

		p, err := uc.PayDeposit(context.Background(), " q-1 ", json.RawMessage(validMPPayload))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ID != "mp-123" {
			t.Fatalf("unexpected payment id: %s", p.ID)
		}
	})

	t.Run("pending provider status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newTestDepositUseCase(ctrl, false)
		m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(payableQuote(), nil)
		m.repo.EXPECT().ListByQuoteID(gomock.Any(), "q-1").Return(nil, nil)
		m.repo.EXPECT().ReserveQuote(gomock.Any(), "q-1").Return(true, nil)
		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("mp-9", "in_process", json.RawMessage(`{}`), nil)
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.DepositPayment) (entities.DepositPayment, error) { return p, nil },
		)

		p, err := uc.PayDeposit(context.Background(), "q-1", json.RawMessage(validMPPayload))
		if err != nil || p.Status != entities.PaymentStatusPending {
			t.Fatalf("unexpected result: %+v err=%v", p, err)
		}
	})

	gatewayErrors := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"bad request", errors.New(`{"status":400,"error":"bad_request"}`), ErrPaymentGatewayBadRequest},
		{"unauthorized", errors.New(`{"status":401,"error":"unauthorized"}`), ErrPaymentGatewayUnauthorized},
		{"invalid users", errors.New(`{"cause":[{"code":2034,"description":"Invalid users involved"}]}`), ErrPaymentGatewayInvalidUsers},
		{"customer not found", errors.New(`{"cause":[{"code":2002,"description":"Customer not found"}]}`), ErrPaymentGatewayCustomerNotFound},
	}
	for _, tc := range gatewayErrors {
		t.Run("gateway "+tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc, m := newTestDepositUseCase(ctrl, false)
			m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(payableQuote(), nil)
			m.repo.EXPECT().ListByQuoteID(gomock.Any(), "q-1").Return(nil, nil)
			m.repo.EXPECT().ReserveQuote(gomock.Any(), "q-1").Return(true, nil)
			m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("", "", nil, tc.err)
			m.repo.EXPECT().ReleaseQuote(gomock.Any(), "q-1").Return(nil)

			_, err := uc.PayDeposit(context.Background(), "q-1", json.RawMessage(validMPPayload))
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}

	t.Run("mock mode skips gateway", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newTestDepositUseCase(ctrl, true)
		m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(payableQuote(), nil)
		m.repo.EXPECT().ListByQuoteID(gomock.Any(), "q-1").Return(nil, nil)
		m.repo.EXPECT().ReserveQuote(gomock.Any(), "q-1").Return(true, nil)
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.DepositPayment) (entities.DepositPayment, error) { return p, nil },
		)

		p, err := uc.PayDeposit(context.Background(), "q-1", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ID == "" || p.Status != entities.PaymentStatusApproved {
			t.Fatalf("unexpected payment: %+v", p)
		}
		if p.ProviderPayload["external_reference"] != "q-1" || p.ProviderPayload["transaction_amount"] != 75.0 {
			t.Fatalf("unexpected mock provider payload: %+v", p.ProviderPayload)
		}
	})

	t.Run("rejected charge releases the reservation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newTestDepositUseCase(ctrl, false)
		m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(payableQuote(), nil)
		m.repo.EXPECT().ListByQuoteID(gomock.Any(), "q-1").Return(nil, nil)
		m.repo.EXPECT().ReserveQuote(gomock.Any(), "q-1").Return(true, nil)
		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("mp-7", "rejected", json.RawMessage(`{}`), nil)
		gomock.InOrder(
			m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, p entities.DepositPayment) (entities.DepositPayment, error) { return p, nil },
			),
			m.repo.EXPECT().ReleaseQuote(gomock.Any(), "q-1").Return(errors.New("ddb down")),
		)

		p, err := uc.PayDeposit(context.Background(), "q-1", json.RawMessage(validMPPayload))
		if err != nil || p.Status != entities.PaymentStatusRejected {
			t.Fatalf("unexpected result: %+v err=%v", p, err)
		}
	})

	t.Run("reservation error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newTestDepositUseCase(ctrl, false)
		m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(payableQuote(), nil)
		m.repo.EXPECT().ListByQuoteID(gomock.Any(), "q-1").Return(nil, nil)
		m.repo.EXPECT().ReserveQuote(gomock.Any(), "q-1").Return(false, errors.New("db"))

		_, err := uc.PayDeposit(context.Background(), "q-1", json.RawMessage(validMPPayload))
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("repository create error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newTestDepositUseCase(ctrl, true)
		m.quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(payableQuote(), nil)
		m.repo.EXPECT().ListByQuoteID(gomock.Any(), "q-1").Return(nil, nil)
		m.repo.EXPECT().ReserveQuote(gomock.Any(), "q-1").Return(true, nil)
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.DepositPayment{}, errors.New("db"))

		_, err := uc.PayDeposit(context.Background(), "q-1", json.RawMessage(`{}`))
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}

func TestDepositPaymentUseCase_GetLatestByQuoteID(t *testing.T) {
	t.Run("invalid quote id", func(t *testing.T) {
		uc := NewDepositPaymentUseCase(nil, nil, nil, false)
		_, err := uc.GetLatestByQuoteID(context.Background(), "")
		if !errors.Is(err, ErrInvalidQuoteID) {
			t.Fatalf("expected ErrInvalidQuoteID, got %v", err)
		}
	})

	t.Run("none", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newTestDepositUseCase(ctrl, false)
		m.repo.EXPECT().ListByQuoteID(gomock.Any(), "q-1").Return([]entities.DepositPayment{}, nil)

		_, err := uc.GetLatestByQuoteID(context.Background(), "q-1")
		if !errors.Is(err, ErrDepositPaymentNotFound) {
			t.Fatalf("expected ErrDepositPaymentNotFound, got %v", err)
		}
	})

	t.Run("latest by date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newTestDepositUseCase(ctrl, false)
		m.repo.EXPECT().ListByQuoteID(gomock.Any(), "q-1").Return([]entities.DepositPayment{
			{ID: "old", Date: fixedNow.Add(-2 * time.Hour)},
			{ID: "new", Date: fixedNow},
			{ID: "mid", Date: fixedNow.Add(-time.Hour)},
		}, nil)

		p, err := uc.GetLatestByQuoteID(context.Background(), "q-1")
		if err != nil || p.ID != "new" {
			t.Fatalf("unexpected result: %+v err=%v", p, err)
		}
	})
}
