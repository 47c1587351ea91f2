package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel  string
	LogFormat string // console | json

	CatalogDriver    string // memory | sqlite
	CatalogSQLiteDSN string
	SearchCacheSize  int

	PaymentSuccessRate float64
	PaymentSeed        int64

	LowStockThreshold int

	RabbitURL    string // vacío = eventos deshabilitados
	ExchangeName string
}

// Load reads an optional .env file and then the environment. Variables
// already set in the environment win over the file.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	cfg := Config{
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "console"),
		CatalogDriver:    getEnv("CATALOG_DRIVER", "memory"),
		CatalogSQLiteDSN: getEnv("CATALOG_SQLITE_DSN", ":memory:"),
		RabbitURL:        getEnv("RABBITMQ_URL", ""),
		ExchangeName:     getEnv("EVENTS_EXCHANGE", "mybookstore.events"),
	}

	var err error
	if cfg.SearchCacheSize, err = getInt("SEARCH_CACHE_SIZE", 128); err != nil { return Config{}, err }
	if cfg.LowStockThreshold, err = getInt("LOW_STOCK_THRESHOLD", 2); err != nil { return Config{}, err }
	if cfg.PaymentSuccessRate, err = getFloat("PAYMENT_SUCCESS_RATE", 0.8); err != nil { return Config{}, err }
	seed, err := getInt("PAYMENT_SEED", 0)
	if err != nil { return Config{}, err }
	cfg.PaymentSeed = int64(seed)

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.CatalogDriver {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("CATALOG_DRIVER: unknown driver %q", c.CatalogDriver)
	}
	if c.PaymentSuccessRate < 0 || c.PaymentSuccessRate > 1 {
		return fmt.Errorf("PAYMENT_SUCCESS_RATE: %v not in [0,1]", c.PaymentSuccessRate)
	}
	if c.SearchCacheSize < 0 {
		return fmt.Errorf("SEARCH_CACHE_SIZE: must be >= 0")
	}
	return nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" { return def, nil }
	n, err := strconv.Atoi(v)
	if err != nil { return 0, fmt.Errorf("%s: %w", k, err) }
	return n, nil
}

func getFloat(k string, def float64) (float64, error) {
	v := os.Getenv(k)
	if v == "" { return def, nil }
	f, err := strconv.ParseFloat(v, 64)
	if err != nil { return 0, fmt.Errorf("%s: %w", k, err) }
	return f, nil
}
