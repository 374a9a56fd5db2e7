// Package exchangerates fetches and caches currency conversion rates
// from an external rate source.
package exchangerates

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-petr/savings-bank/internal/domain"
	"github.com/go-petr/savings-bank/pkg/configpkg"
	"github.com/go-petr/savings-bank/pkg/currencypkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	defaultCacheTTL = 2 * time.Minute
	defaultTimeout  = 2 * time.Second
)

type cacheEntry struct {
	rates     map[string]decimal.Decimal
	fetchedAt time.Time
}

// Client calls the external exchange rate source and caches responses
// per base currency for a short TTL.
//
// The upstream is a single point of failure and latency; the cache bounds
// both at the cost of a briefly stale rate.
type Client struct {
	url        string
	apiKey     string
	cacheTTL   time.Duration
	httpClient *http.Client

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

// New returns a rate source client.
//
// An empty API key is a configuration error surfaced at construction time.
func New(config configpkg.Config) (*Client, error) {
	if config.ExchangeRatesAPIKey == "" {
		return nil, configpkg.ErrMissingExchangeAPIKey
	}

	cacheTTL := config.ExchangeRatesCacheTTL
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}

	timeout := config.ExchangeRatesTimeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		url:        config.ExchangeRatesURL,
		apiKey:     config.ExchangeRatesAPIKey,
		cacheTTL:   cacheTTL,
		httpClient: &http.Client{Timeout: timeout},
		cache:      make(map[string]cacheEntry),
	}, nil
}

type ratesResponse struct {
	Success bool                       `json:"success"`
	Rates   map[string]decimal.Decimal `json:"rates"`
}

// GetRates returns conversion rates for the given base currency.
//
// A cache hit returns without contacting the upstream. On a miss the
// upstream response is rebased so every rate is relative to baseCurrency,
// since the free tier of the source fixes its own base.
func (c *Client) GetRates(ctx context.Context, baseCurrency string) (map[string]decimal.Decimal, error) {
	l := zerolog.Ctx(ctx)

	c.mu.RLock()
	entry, ok := c.cache[baseCurrency]
	c.mu.RUnlock()

	if ok && time.Since(entry.fetchedAt) < c.cacheTTL {
		return entry.rates, nil
	}

	rates, err := c.fetch(ctx, baseCurrency)
	if err != nil {
		l.Error().Err(err).Str("base_currency", baseCurrency).Msg("exchange rates fetch failed")
		return nil, err
	}

	c.mu.Lock()
	c.cache[baseCurrency] = cacheEntry{rates: rates, fetchedAt: time.Now()}
	c.mu.Unlock()

	return rates, nil
}

func (c *Client) fetch(ctx context.Context, baseCurrency string) (map[string]decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, domain.ErrRateSourceUnavailable
	}

	q := url.Values{}
	q.Set("access_key", c.apiKey)
	q.Set("symbols", strings.Join(currencypkg.SupportedCurrencies, ","))
	q.Set("format", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}

		return nil, domain.ErrRateSourceUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.ErrRateSourceUnavailable
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, domain.ErrRateSourceUnavailable
	}

	base, ok := body.Rates[baseCurrency]
	if !ok || base.IsZero() {
		return nil, domain.ErrRateNotFound
	}

	rebased := make(map[string]decimal.Decimal, len(body.Rates))
	for code, rate := range body.Rates {
		rebased[code] = rate.Div(base)
	}

	return rebased, nil
}
