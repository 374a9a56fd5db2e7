package configpkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	config, err := Load("../../configs")
	require.NoError(t, err)

	require.Equal(t, "postgres", config.DBDriver)
	require.NotEmpty(t, config.DBSource)
	require.NotEmpty(t, config.ServerAddress)
	require.NotEmpty(t, config.ExchangeRatesURL)
	require.Equal(t, 2*time.Minute, config.ExchangeRatesCacheTTL)
	require.Equal(t, 2*time.Second, config.ExchangeRatesTimeout)
	require.Equal(t, "0.01", config.ConversionSpread)
	require.Equal(t, "10000", config.AccountInitialBalance)
	require.False(t, config.RequireSameCurrency)
	require.Equal(t, 10, config.TransfersPerMinute)
}

func TestLoadMissingPath(t *testing.T) {
	_, err := Load("./nonexistent")
	require.Error(t, err)
}
