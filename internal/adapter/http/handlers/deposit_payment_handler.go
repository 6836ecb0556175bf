package handlers

import (
	"errors"
	"log"
	"net/http"

	request "repair_quotes/internal/adapter/http/dto/request"
	response "repair_quotes/internal/adapter/http/dto/response"
	"repair_quotes/internal/usecase"
	"repair_quotes/pkg"

	"github.com/gin-gonic/gin"
)

// DepositPaymentHandler handles quote deposit payments.
type DepositPaymentHandler struct {
	usecase usecase.IDepositPaymentUseCase
}

func NewDepositPaymentHandler(uc usecase.IDepositPaymentUseCase) *DepositPaymentHandler {
	return &DepositPaymentHandler{usecase: uc}
}

// PayDeposit godoc
// @Summary      Pay a quote deposit
// @Description  Charges the quote's deposit through Mercado Pago. The body is a Mercado Pago payment request, raw or wrapped in mp_payload.
// @Tags         deposits
// @Accept       json
// @Produce      json
// @Param        quote_id  path      string  true  "Quote ID"
// @Success      200       {object}  response.DepositPaymentResponse
// @Failure      400       {object}  pkg.HTTPError
// @Failure      404       {object}  pkg.HTTPError
// @Failure      409       {object}  pkg.HTTPError
// @Router       /pricing/quotes/{quote_id}/deposit [post]
func (h *DepositPaymentHandler) PayDeposit(c *gin.Context) {
	quoteID := c.Param("quote_id")
	log.Printf("[deposit][handler] pay start quote_id=%s", quoteID)

	raw, err := c.GetRawData()
	if err != nil {
		log.Printf("[deposit][handler] read body failed quote_id=%s err=%v", quoteID, err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	mpPayload, err := request.DecodeDepositPayload(raw)
	if err != nil {
		log.Printf("[deposit][handler] invalid payload quote_id=%s err=%v", quoteID, err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest).
			WithDetails(map[string]string{"body": err.Error()})
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	created, err := h.usecase.PayDeposit(c.Request.Context(), quoteID, mpPayload)
	if err != nil {
		log.Printf("[deposit][handler] pay failed quote_id=%s err=%v", quoteID, err)
		appErr := mapDepositError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[deposit][handler] pay success quote_id=%s payment_id=%s status=%s", quoteID, created.ID, created.Status)

	c.JSON(http.StatusOK, response.FromDepositPayment(created))
}

// GetDeposit returns the latest deposit payment of a quote.
// @Summary      Get the latest deposit payment
// @Tags         deposits
// @Produce      json
// @Param        quote_id  path      string  true  "Quote ID"
// @Success      200       {object}  response.DepositPaymentResponse
// @Failure      404       {object}  pkg.HTTPError
// @Router       /pricing/quotes/{quote_id}/deposit [get]
func (h *DepositPaymentHandler) GetDeposit(c *gin.Context) {
	quoteID := c.Param("quote_id")

	latest, err := h.usecase.GetLatestByQuoteID(c.Request.Context(), quoteID)
	if err != nil {
		log.Printf("[deposit][handler] get failed quote_id=%s err=%v", quoteID, err)
		appErr := mapDepositError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromDepositPayment(latest))
}

func mapDepositError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidQuoteID), errors.Is(err, usecase.ErrInvalidMPPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrDepositPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrDepositNotRequired):
		return pkg.NewDomainErrorSimple("DEPOSIT_NOT_REQUIRED", "Quote does not require a deposit", http.StatusConflict)
	case errors.Is(err, usecase.ErrQuoteExpired):
		return pkg.NewDomainErrorSimple("QUOTE_EXPIRED", "Quote validity has expired", http.StatusConflict)
	case errors.Is(err, usecase.ErrDepositAlreadyPaid):
		return pkg.NewDomainErrorSimple("DEPOSIT_ALREADY_PAID", "Deposit already paid", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
