// Package config enumerates every recognized option as a typed struct.
// Nothing in the service reads the environment outside of Load.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// IdentityConfig mirrors the identity provider's client configuration.
// All values default to placeholders; the stub provider only logs them.
type IdentityConfig struct {
	APIKey            string
	AuthDomain        string
	ProjectID         string
	StorageBucket     string
	MessagingSenderID string
	AppID             string

	SignInOptions    []string
	SignInFlow       string
	SignInSuccessURL string
	TOSURL           string
	PrivacyPolicyURL string
}

type InstallmentsConfig struct {
	Enabled  bool
	MaxCount int
}

// PaymentConfig carries the provider settings both gateway adapters read.
type PaymentConfig struct {
	PublishableKey string
	Currency       string
	Country        string
	PaymentMethods []string
	Installments   InstallmentsConfig
	Mode           string
	SuccessURL     string
	CancelURL      string
	ShopDomain     string
}

type Config struct {
	HTTPPort           string
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64

	CartStore     string // "memory" or "redis"
	RedisAddr     string
	RedisPassword string

	CatalogDBPath  string
	MigrationsPath string

	Gateway             string // "stripe" or "shoppay"
	GatewayLatency      time.Duration
	SubmitDelay         time.Duration
	ConfirmDisplayDelay time.Duration

	JWTSecret  string
	SessionTTL time.Duration

	LoginRateLimit  int
	LoginRateWindow time.Duration

	Identity IdentityConfig
	Payment  PaymentConfig
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	return &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		RequestTimeout:     getDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout:    getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		MaxRequestBodySize: 1 << 20, // 1MB

		CartStore:     getEnv("CART_STORE", "memory"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		CatalogDBPath:  getEnv("CATALOG_DB_PATH", "catalog.db"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),

		Gateway:             getEnv("PAYMENT_GATEWAY", "stripe"),
		GatewayLatency:      getDuration("GATEWAY_LATENCY", 1500*time.Millisecond),
		SubmitDelay:         getDuration("ORDER_SUBMIT_DELAY", 2*time.Second),
		ConfirmDisplayDelay: getDuration("CONFIRM_DISPLAY_DELAY", 3*time.Second),

		JWTSecret:  getEnv("JWT_SECRET", "dev-only-secret"),
		SessionTTL: getDuration("SESSION_TTL", 24*time.Hour),

		LoginRateLimit:  getInt("LOGIN_RATE_LIMIT", 5),
		LoginRateWindow: getDuration("LOGIN_RATE_WINDOW", time.Minute),

		Identity: IdentityConfig{
			APIKey:            getEnv("IDENTITY_API_KEY", "your-api-key"),
			AuthDomain:        getEnv("IDENTITY_AUTH_DOMAIN", "your-project.firebaseapp.com"),
			ProjectID:         getEnv("IDENTITY_PROJECT_ID", "your-project-id"),
			StorageBucket:     getEnv("IDENTITY_STORAGE_BUCKET", "your-project.appspot.com"),
			MessagingSenderID: getEnv("IDENTITY_MESSAGING_SENDER_ID", "123456789"),
			AppID:             getEnv("IDENTITY_APP_ID", "your-app-id"),
			SignInOptions:     getList("IDENTITY_SIGN_IN_OPTIONS", []string{"password", "emailLink"}),
			SignInFlow:        getEnv("IDENTITY_SIGN_IN_FLOW", "popup"),
			SignInSuccessURL:  getEnv("IDENTITY_SIGN_IN_SUCCESS_URL", "/"),
			TOSURL:            getEnv("IDENTITY_TOS_URL", "/terms"),
			PrivacyPolicyURL:  getEnv("IDENTITY_PRIVACY_POLICY_URL", "/privacy"),
		},

		Payment: PaymentConfig{
			PublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", "your-stripe-publishable-key"),
			Currency:       getEnv("PAYMENT_CURRENCY", "cad"),
			Country:        getEnv("PAYMENT_COUNTRY", "CA"),
			PaymentMethods: getList("PAYMENT_METHODS", []string{"card", "apple_pay", "google_pay", "link"}),
			Installments: InstallmentsConfig{
				Enabled:  getBool("PAYMENT_INSTALLMENTS_ENABLED", true),
				MaxCount: getInt("PAYMENT_INSTALLMENTS_MAX", 4),
			},
			Mode:       getEnv("PAYMENT_MODE", "payment"),
			SuccessURL: getEnv("PAYMENT_SUCCESS_URL", "http://localhost:3000/success"),
			CancelURL:  getEnv("PAYMENT_CANCEL_URL", "http://localhost:3000/cart"),
			ShopDomain: getEnv("SHOP_DOMAIN", "even-lines.myshopify.com"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("invalid duration for %s: %v, using default %v", key, err, defaultValue)
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("invalid integer for %s: %v, using default %d", key, err, defaultValue)
		return defaultValue
	}
	return n
}

func getBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("invalid boolean for %s: %v, using default %t", key, err, defaultValue)
		return defaultValue
	}
	return b
}

func getList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
