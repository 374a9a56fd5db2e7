// Package currencyservice manages business logic layer of currency conversion.
package currencyservice

import (
	"context"

	"github.com/go-petr/savings-bank/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// moneyPlaces is the decimal precision for all supported currencies.
const moneyPlaces = 2

// RatesProvider provides the rate source interface needed by the conversion engine.
//
//go:generate mockgen -source service.go -destination service_mock.go -package currencyservice
type RatesProvider interface {
	GetRates(ctx context.Context, baseCurrency string) (map[string]decimal.Decimal, error)
}

// Service converts amounts between currencies using live rates and a fixed spread.
type Service struct {
	provider RatesProvider
	spread   decimal.Decimal
}

// New returns a conversion service retaining the given spread fraction
// (e.g. 0.01 keeps 1%) on every cross-currency conversion.
func New(provider RatesProvider, spread decimal.Decimal) *Service {
	return &Service{
		provider: provider,
		spread:   spread,
	}
}

// Convert returns amount expressed in toCurrency.
//
// Same-currency conversion returns the amount unchanged without contacting
// the rate provider and without spread. Otherwise the rate is applied first
// and the spread haircut after, then the result is rounded to currency
// precision. All arithmetic is exact decimal.
func (s *Service) Convert(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string) (decimal.Decimal, error) {
	l := zerolog.Ctx(ctx)

	if fromCurrency == toCurrency {
		return amount, nil
	}

	rates, err := s.provider.GetRates(ctx, fromCurrency)
	if err != nil {
		return decimal.Decimal{}, err
	}

	rate, ok := rates[toCurrency]
	if !ok {
		l.Info().Str("to_currency", toCurrency).Msg("rate table misses requested currency")
		return decimal.Decimal{}, domain.ErrUnsupportedCurrency
	}

	converted := amount.Mul(rate)
	retained := decimal.NewFromInt(1).Sub(s.spread)

	return converted.Mul(retained).Round(moneyPlaces), nil
}
