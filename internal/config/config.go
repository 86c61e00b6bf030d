package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	MerchantKey        string
	MerchantSalt       string
	APIToken           string
	GatewayPaymentURL  string
	GatewayInfoURL     string
	SuccessRedirectURL string
	FailureRedirectURL string
	StoreTimeout       time.Duration
	ReconcileInterval  time.Duration
	ReconcileBatch     int
	ReconcileGrace     time.Duration
	WorkerPoolSize     int
	ShutdownTimeout    time.Duration
}

const (
	defaultRunAddress        = ":8080"
	defaultGatewayPaymentURL = "https://secure.payu.in/_payment"
	defaultGatewayInfoURL    = "https://info.payu.in/merchant/postservice?form=2"
	defaultStoreTimeout      = 5 * time.Second
	defaultReconcileInterval = time.Minute
	defaultReconcileBatch    = 32
	defaultReconcileGrace    = 15 * time.Minute
	defaultWorkerPoolSize    = 4
	defaultShutdownTimeout   = 10 * time.Second
)

// Load parses configuration from an optional .env file, environment variables and flags.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		MerchantKey:        getString(lookup, "MERCHANT_KEY", ""),
		MerchantSalt:       getString(lookup, "MERCHANT_SALT", ""),
		APIToken:           getString(lookup, "API_TOKEN", ""),
		GatewayPaymentURL:  getString(lookup, "GATEWAY_PAYMENT_URL", defaultGatewayPaymentURL),
		GatewayInfoURL:     getString(lookup, "GATEWAY_INFO_URL", defaultGatewayInfoURL),
		SuccessRedirectURL: getString(lookup, "SUCCESS_REDIRECT_URL", ""),
		FailureRedirectURL: getString(lookup, "FAILURE_REDIRECT_URL", ""),
		StoreTimeout:       getDuration(lookup, "STORE_TIMEOUT", defaultStoreTimeout),
		ReconcileInterval:  getDuration(lookup, "RECONCILE_INTERVAL", defaultReconcileInterval),
		ReconcileBatch:     getInt(lookup, "RECONCILE_BATCH", defaultReconcileBatch),
		ReconcileGrace:     getDuration(lookup, "RECONCILE_GRACE", defaultReconcileGrace),
		WorkerPoolSize:     getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("paygate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		storeTimeoutStr    = cfg.StoreTimeout.String()
		reconcileIntStr    = cfg.ReconcileInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.GatewayPaymentURL, "payment-url", cfg.GatewayPaymentURL, "Gateway payment endpoint")
	fs.StringVar(&cfg.GatewayInfoURL, "info-url", cfg.GatewayInfoURL, "Gateway transaction status endpoint")
	fs.StringVar(&cfg.SuccessRedirectURL, "success-url", cfg.SuccessRedirectURL, "Storefront success page URL")
	fs.StringVar(&cfg.FailureRedirectURL, "failure-url", cfg.FailureRedirectURL, "Storefront failure page URL")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reconcile workers")
	fs.IntVar(&cfg.ReconcileBatch, "reconcile-batch", cfg.ReconcileBatch, "Maximum orders per reconcile batch")
	fs.StringVar(&storeTimeoutStr, "store-timeout", storeTimeoutStr, "Timeout for settlement store writes")
	fs.StringVar(&reconcileIntStr, "reconcile-interval", reconcileIntStr, "Interval between reconcile polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.StoreTimeout, err = time.ParseDuration(storeTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid store timeout: %w", err)
	}

	if cfg.ReconcileInterval, err = time.ParseDuration(reconcileIntStr); err != nil {
		return nil, fmt.Errorf("invalid reconcile interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if saltFile, ok := lookup("MERCHANT_SALT_FILE"); ok && saltFile != "" {
		content, err := os.ReadFile(saltFile)
		if err != nil {
			return nil, fmt.Errorf("read merchant salt file: %w", err)
		}
		cfg.MerchantSalt = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ReconcileBatch <= 0 {
		cfg.ReconcileBatch = defaultReconcileBatch
	}

	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = defaultReconcileInterval
	}

	if cfg.ReconcileGrace <= 0 {
		cfg.ReconcileGrace = defaultReconcileGrace
	}

	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = defaultStoreTimeout
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	// An empty key or salt would make every digest trivially forgeable,
	// so absence is fatal at startup rather than a per-request error.
	if cfg.MerchantKey == "" {
		return nil, fmt.Errorf("merchant key must be provided")
	}

	if cfg.MerchantSalt == "" {
		return nil, fmt.Errorf("merchant salt must be provided")
	}

	if cfg.SuccessRedirectURL == "" || cfg.FailureRedirectURL == "" {
		return nil, fmt.Errorf("success and failure redirect URLs must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
