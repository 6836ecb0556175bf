package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	request "repair_quotes/internal/adapter/http/dto/request"
	response "repair_quotes/internal/adapter/http/dto/response"
	"repair_quotes/internal/domain/pricing"
	"repair_quotes/internal/usecase"
	"repair_quotes/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidQuotePayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)

// QuoteHandler serves the pricing endpoints.
type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
	timeout time.Duration
}

// NewQuoteHandler bounds every use case call by timeout; zero disables it.
func NewQuoteHandler(uc usecase.IQuoteUseCase, timeout time.Duration) *QuoteHandler {
	return &QuoteHandler{usecase: uc, timeout: timeout}
}

// CalculateQuote godoc
// @Summary      Calculate a repair quote
// @Description  Prices a device and its issues against the catalog and the active pricing rules. Issues missing from the catalog are dropped.
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        request  body      request.QuoteRequest  true  "Quote request"
// @Success      200      {object}  response.QuoteResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Failure      500      {object}  pkg.HTTPError
// @Router       /pricing/calculate [post]
func (h *QuoteHandler) CalculateQuote(c *gin.Context) {
	var payload request.QuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[quote][handler] invalid payload err=%v", err)
		appErr := errInvalidQuotePayload.WithDetails(request.FieldErrors(err))
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	quote, err := h.usecase.CalculateQuote(ctx, payload.DeviceID, payload.IssueIDs(), payload.ServiceParams())
	if err != nil {
		log.Printf("[quote][handler] calculate failed device_id=%s err=%v", payload.DeviceID, err)
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(quote))
}

// CalculateSimpleQuote godoc
// @Summary      Calculate a simple repair quote
// @Description  Prices one device type and repair type from the static table, scaled by urgency.
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        request  body      request.SimpleQuoteRequest  true  "Simple quote request"
// @Success      200      {object}  response.QuoteResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Router       /pricing/simple [post]
func (h *QuoteHandler) CalculateSimpleQuote(c *gin.Context) {
	var payload request.SimpleQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := errInvalidQuotePayload.WithDetails(request.FieldErrors(err))
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	quote, err := h.usecase.CalculateSimpleQuote(ctx, payload.DeviceType, payload.Brand, payload.RepairType, payload.UrgencyLevel())
	if err != nil {
		log.Printf("[quote][handler] simple failed device_type=%s repair_type=%s err=%v", payload.DeviceType, payload.RepairType, err)
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(quote))
}

// GetQuote godoc
// @Summary      Get an archived quote
// @Tags         pricing
// @Produce      json
// @Param        quote_id  path      string  true  "Quote ID"
// @Success      200       {object}  response.QuoteResponse
// @Failure      404       {object}  pkg.HTTPError
// @Router       /pricing/quotes/{quote_id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quoteID := c.Param("quote_id")

	ctx, cancel := h.requestContext(c)
	defer cancel()

	quote, err := h.usecase.GetQuote(ctx, quoteID)
	if err != nil {
		log.Printf("[quote][handler] get failed quote_id=%s err=%v", quoteID, err)
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(quote))
}

func (h *QuoteHandler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidDeviceID), errors.Is(err, usecase.ErrInvalidQuoteID),
		errors.Is(err, pricing.ErrUnknownServiceType), errors.Is(err, usecase.ErrUnknownUrgency):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrDeviceNotFound):
		return pkg.NewDomainErrorSimple("DEVICE_NOT_FOUND", "Device not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrNoValidIssues):
		return pkg.NewDomainErrorSimple("NO_VALID_ISSUES", "None of the requested issues exist in the catalog", http.StatusNotFound)
	case errors.Is(err, usecase.ErrNoPricingRule):
		return pkg.NewDomainErrorSimple("NO_PRICING_RULE", "No pricing available for this device type", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
