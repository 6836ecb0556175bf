package routes

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"repair_quotes/internal/adapter/http/handlers"
	"repair_quotes/internal/adapter/http/handlers/mocks"
	"repair_quotes/internal/config"
	"repair_quotes/internal/domain/entities"
	"repair_quotes/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestNewRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	quoteUC := mocks.NewMockIQuoteUseCase(ctrl)
	depositUC := mocks.NewMockIDepositPaymentUseCase(ctrl)
	cfg := config.Config{CORSAllowedOrigins: []string{"https://shop.example.com"}}
	router := newRouter(cfg, apiHandlers{
		quote:   handlers.NewQuoteHandler(quoteUC, time.Second),
		deposit: handlers.NewDepositPaymentHandler(depositUC),
	})

	t.Run("ping", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("quote route is wired", func(t *testing.T) {
		quoteUC.EXPECT().GetQuote(gomock.Any(), "q-404").Return(entities.Quote{}, usecase.ErrQuoteNotFound)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/pricing/quotes/q-404", nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("deposit route is wired", func(t *testing.T) {
		depositUC.EXPECT().GetLatestByQuoteID(gomock.Any(), "q-1").Return(entities.DepositPayment{}, usecase.ErrDepositPaymentNotFound)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/pricing/quotes/q-1/deposit", nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("calculate validates before reaching the use case", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/pricing/calculate", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("cors preflight", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/v1/pricing/calculate", nil)
		req.Header.Set("Origin", "https://shop.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		router.ServeHTTP(w, req)
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.example.com" {
			t.Fatalf("unexpected allow origin %q", got)
		}
	})

	t.Run("unknown route", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/unknown", nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
