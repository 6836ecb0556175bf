package routes

import (
	"repair_quotes/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPricing = "/pricing"
)

func addPricingRoutes(rg *gin.RouterGroup, quoteHandler *handlers.QuoteHandler, depositHandler *handlers.DepositPaymentHandler) {
	pricing := rg.Group(PathPricing)
	{
		pricing.POST("/calculate", quoteHandler.CalculateQuote)
		pricing.POST("/simple", quoteHandler.CalculateSimpleQuote)
		pricing.GET("/quotes/:quote_id", quoteHandler.GetQuote)

		pricing.POST("/quotes/:quote_id/deposit", depositHandler.PayDeposit)
		pricing.GET("/quotes/:quote_id/deposit", depositHandler.GetDeposit)
	}
}
