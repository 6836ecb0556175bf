package config

import (
	"log"
	"os"
	"strings"
	"time"
)

// Config holds application configuration read from the environment.
type Config struct {
	Port string

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	DynamoDBEndpoint   string

	DevicesTable         string
	IssuesTable          string
	PricingRulesTable    string
	QuotesTable          string
	DepositPaymentsTable string

	// RedisAddr empty disables the catalog cache.
	RedisAddr       string
	RedisPassword   string
	CatalogCacheTTL time.Duration

	UpstreamRetryBackoff time.Duration
	RequestTimeout       time.Duration

	CORSAllowedOrigins []string

	MercadoPagoAccessToken string
	PaymentGatewayMock     bool
}

// Load reads the configuration. Invalid durations fall back to their default
// with a warning.
func Load() Config {
	return Config{
		Port: getEnv("PORT", "8080"),

		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", "local"),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", "local"),
		DynamoDBEndpoint:   os.Getenv("DYNAMODB_ENDPOINT"),

		DevicesTable:         getEnv("DEVICES_TABLE", "devices"),
		IssuesTable:          getEnv("ISSUES_TABLE", "issues"),
		PricingRulesTable:    getEnv("PRICING_RULES_TABLE", "pricing_rules"),
		QuotesTable:          getEnv("QUOTES_TABLE", "quotes"),
		DepositPaymentsTable: getEnv("DEPOSIT_PAYMENTS_TABLE", "deposit_payments"),

		RedisAddr:       strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		CatalogCacheTTL: getEnvDuration("CATALOG_CACHE_TTL", 5*time.Minute),

		UpstreamRetryBackoff: getEnvDuration("UPSTREAM_RETRY_BACKOFF", 100*time.Millisecond),
		RequestTimeout:       getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		MercadoPagoAccessToken: strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")),
		PaymentGatewayMock:     getEnvBool("PAYMENT_GATEWAY_MOCK", false) || getEnvBool("MERCADOPAGO_MOCK", false),
	}
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "":
		return def
	case "1", "true", "yes", "on", "mock":
		return true
	default:
		return false
	}
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		log.Printf("[config] invalid duration, using default key=%s value=%q default=%s", key, v, def)
		return def
	}
	return d
}

func getEnvList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	out := make([]string, 0)
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
