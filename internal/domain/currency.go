package domain

import (
	"errors"
	"time"
)

var (
	// ErrCurrencyNotFound indicates that the currency is not found.
	ErrCurrencyNotFound = errors.New("currency not found")
	// ErrUnsupportedCurrency indicates a currency outside the supported set.
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	// ErrRateSourceUnavailable indicates that the exchange rate source call did not succeed.
	ErrRateSourceUnavailable = errors.New("exchange rate source unavailable")
	// ErrRateNotFound indicates that the rate source response misses the requested base currency.
	ErrRateNotFound = errors.New("exchange rate not found")
)

// Currency is seeded reference data. Conversion rates are not stored here;
// they are fetched live and cached by the exchange rates client.
type Currency struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Symbol    string    `json:"symbol"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
