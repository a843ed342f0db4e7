package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // LEDGER_TIMEZONE must resolve without a system zoneinfo

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	defaultAppName      = "BankingLedger"
	defaultLogLevel     = "warn"
	defaultLogFormat    = "text"
	defaultInterestRate = "0.015"
	defaultMonthlyFee   = "2"
	defaultTimezone     = "Europe/Paris"
	defaultCurrency     = "€"
	envFileEnvVar       = "LEDGER_ENV_FILE"
	defaultEnvFile      = ".env"
)

// Config captures runtime configuration loaded from an optional .env file
// and the environment.
type Config struct {
	AppName      string
	LogLevel     string
	LogFormat    string
	InterestRate decimal.Decimal
	MonthlyFee   decimal.Decimal
	Location     *time.Location
	Currency     string
}

// Load reads the .env file named by LEDGER_ENV_FILE (default ".env") if it
// exists, then populates a Config from the environment. Variables already
// set in the environment win over the file.
func Load() (Config, error) {
	envFile := getEnv(envFileEnvVar, defaultEnvFile)
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := Config{
		AppName:   getEnv("APP_NAME", defaultAppName),
		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", defaultLogFormat)),
		Currency:  getEnv("LEDGER_CURRENCY", defaultCurrency),
	}

	rate, err := decimal.NewFromString(getEnv("LEDGER_INTEREST_RATE", defaultInterestRate))
	if err != nil {
		return Config{}, fmt.Errorf("invalid LEDGER_INTEREST_RATE: %w", err)
	}
	if rate.IsNegative() {
		return Config{}, fmt.Errorf("invalid LEDGER_INTEREST_RATE: must not be negative")
	}
	cfg.InterestRate = rate

	fee, err := decimal.NewFromString(getEnv("LEDGER_MONTHLY_FEE", defaultMonthlyFee))
	if err != nil {
		return Config{}, fmt.Errorf("invalid LEDGER_MONTHLY_FEE: %w", err)
	}
	if !fee.IsPositive() {
		return Config{}, fmt.Errorf("invalid LEDGER_MONTHLY_FEE: must be positive")
	}
	cfg.MonthlyFee = fee

	loc, err := time.LoadLocation(getEnv("LEDGER_TIMEZONE", defaultTimezone))
	if err != nil {
		return Config{}, fmt.Errorf("invalid LEDGER_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	return cfg, nil
}

// Default returns the configuration Load produces with an empty
// environment.
func Default() Config {
	loc, err := time.LoadLocation(defaultTimezone)
	if err != nil {
		loc = time.UTC
	}
	return Config{
		AppName:      defaultAppName,
		LogLevel:     defaultLogLevel,
		LogFormat:    defaultLogFormat,
		InterestRate: decimal.RequireFromString(defaultInterestRate),
		MonthlyFee:   decimal.RequireFromString(defaultMonthlyFee),
		Location:     loc,
		Currency:     defaultCurrency,
	}
}

// Now returns the current time in the configured location.
func (c Config) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
