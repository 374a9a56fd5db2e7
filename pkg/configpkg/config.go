// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingExchangeAPIKey indicates that no exchange rate API credential is configured.
var ErrMissingExchangeAPIKey = errors.New("EXCHANGE_RATES_API_KEY is required")

// Config stores all configuration of the application.
//
// The values are read by viper from a config file or environement variables.
type Config struct {
	DBDriver      string `mapstructure:"DB_DRIVER"`
	DBSource      string `mapstructure:"DB_SOURCE"`
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	Environement  string `mapstructure:"GO_ENV"`

	ExchangeRatesURL      string        `mapstructure:"EXCHANGE_RATES_URL"`
	ExchangeRatesAPIKey   string        `mapstructure:"EXCHANGE_RATES_API_KEY"`
	ExchangeRatesCacheTTL time.Duration `mapstructure:"EXCHANGE_RATES_CACHE_TTL"`
	ExchangeRatesTimeout  time.Duration `mapstructure:"EXCHANGE_RATES_TIMEOUT"`

	ConversionSpread      string `mapstructure:"CONVERSION_SPREAD"`
	AccountInitialBalance string `mapstructure:"ACCOUNT_INITIAL_BALANCE"`
	RequireSameCurrency   bool   `mapstructure:"TRANSFER_REQUIRE_SAME_CURRENCY"`
	TransfersPerMinute    int    `mapstructure:"TRANSFERS_PER_MINUTE"`
}

// Load reads configuration from file or environment variables.
//
// A missing exchange rate credential is a startup error, not a per-request one.
func Load(path string) (Config, error) {
	var c Config

	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = viper.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	if c.ExchangeRatesAPIKey == "" {
		return c, ErrMissingExchangeAPIKey
	}

	return c, nil
}
