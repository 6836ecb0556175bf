package routes

import (
	"log"
	"net/http"
	"time"

	_ "repair_quotes/docs" // This will be auto-generated
	catalogcache "repair_quotes/internal/adapter/cache"
	request "repair_quotes/internal/adapter/http/dto/request"
	"repair_quotes/internal/adapter/http/handlers"
	"repair_quotes/internal/adapter/persistence/repository"
	"repair_quotes/internal/config"
	"repair_quotes/internal/domain/pricing"
	"repair_quotes/internal/infrastructure/cache"
	"repair_quotes/internal/infrastructure/database"
	"repair_quotes/internal/infrastructure/payments"
	"repair_quotes/internal/usecase"
	"repair_quotes/internal/usecase/interfaces"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type apiHandlers struct {
	quote   *handlers.QuoteHandler
	deposit *handlers.DepositPaymentHandler
}

// Run will start the server
func Run() {
	cfg := config.Load()
	router := newRouter(cfg, buildHandlers(cfg))

	err := router.Run(":" + cfg.Port)
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func newRouter(cfg config.Config, h apiHandlers) *gin.Engine {
	request.RegisterValidation()

	router := gin.New()
	setMiddlewares(router, cfg)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPricingRoutes(v1, h.quote, h.deposit)
	return router
}

func buildHandlers(cfg config.Config) apiHandlers {
	ddb := database.ConnectDynamoDB(cfg)

	var catalog interfaces.ICatalogRepository = repository.NewCatalogDynamoRepository(ddb, cfg.DevicesTable, cfg.IssuesTable)
	if rdb := cache.ConnectRedis(cfg); rdb != nil {
		catalog = catalogcache.NewCachedCatalogRepository(catalog, rdb, cfg.CatalogCacheTTL)
	}
	rulesRepo := repository.NewPricingRuleDynamoRepository(ddb, cfg.PricingRulesTable)
	quoteRepo := repository.NewQuoteDynamoRepository(ddb, cfg.QuotesTable)
	depositRepo := repository.NewDepositPaymentDynamoRepository(ddb, cfg.DepositPaymentsTable)

	quoteUseCase := usecase.NewQuoteUseCase(catalog, rulesRepo, quoteRepo, pricing.NewEngine(), cfg.UpstreamRetryBackoff)

	var paymentGateway interfaces.IPaymentGateway
	if cfg.PaymentGatewayMock {
		log.Printf("[deposit][routes] payment gateway mock mode enabled")
	} else if mpGateway, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken); err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}
	depositUseCase := usecase.NewDepositPaymentUseCase(depositRepo, quoteRepo, paymentGateway, cfg.PaymentGatewayMock)

	return apiHandlers{
		quote:   handlers.NewQuoteHandler(quoteUseCase, cfg.RequestTimeout),
		deposit: handlers.NewDepositPaymentHandler(depositUseCase),
	}
}

func setMiddlewares(router *gin.Engine, cfg config.Config) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))
}
