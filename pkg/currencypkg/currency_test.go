package currencypkg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsSupportedCurrency(t *testing.T) {
	t.Parallel()

	for _, c := range SupportedCurrencies {
		require.True(t, IsSupportedCurrency(c))
	}

	require.False(t, IsSupportedCurrency("XXX"))
	require.False(t, IsSupportedCurrency("usd"))
	require.False(t, IsSupportedCurrency(""))
}
