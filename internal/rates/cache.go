// Package rates fetches, caches, and converts currency exchange rates.
//
// One snapshot is cached per base currency with a 30-minute TTL. Refresh
// failures fall back first to the stale snapshot and then to a hardcoded
// table, so callers never see an error.
package rates

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mkhattak/paisa/internal/model"
)

// TTL is how long a cached snapshot stays fresh.
const TTL = 30 * time.Minute

// Fetcher retrieves a rate table for a base currency.
type Fetcher interface {
	Fetch(ctx context.Context, baseCurrency string) (*model.RateSnapshot, error)
}

// Cache holds one rate snapshot per base currency. Construct once per
// process and share by reference; all methods are safe for concurrent use.
type Cache struct {
	now       func() time.Time
	fetcher   Fetcher
	snapshots map[string]*model.RateSnapshot
	mu        sync.Mutex
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithCacheClock overrides the cache's time source, mainly for tests.
func WithCacheClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		c.now = now
	}
}

// NewCache creates a rate cache backed by the given fetcher.
func NewCache(fetcher Fetcher, opts ...CacheOption) *Cache {
	c := &Cache{
		now:       time.Now,
		fetcher:   fetcher,
		snapshots: make(map[string]*model.RateSnapshot),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetRates returns the rate snapshot for a base currency. A fresh cached
// snapshot is returned as-is; otherwise a refresh is attempted. On refresh
// failure the stale snapshot is reused if one exists, else the hardcoded
// fallback table is returned. GetRates never fails.
func (c *Cache) GetRates(ctx context.Context, baseCurrency string) *model.RateSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	cached, ok := c.snapshots[baseCurrency]
	if ok && now.Sub(cached.FetchedAt) < TTL {
		return cached
	}

	snapshot, err := c.fetcher.Fetch(ctx, baseCurrency)
	if err != nil {
		slog.Warn("exchange rate refresh failed",
			"base_currency", baseCurrency,
			"error", err)
		if ok {
			return cached
		}
		return fallbackSnapshot(baseCurrency, now)
	}

	snapshot.FetchedAt = now
	c.snapshots[baseCurrency] = snapshot
	return snapshot
}

// Convert converts an amount between currencies using the from-currency's
// rate table. Conversion is best effort: identical currencies or a missing
// rate return the amount unchanged.
func (c *Cache) Convert(ctx context.Context, amount float64, from, to string) float64 {
	if from == to {
		return amount
	}

	snapshot := c.GetRates(ctx, from)
	rate, ok := snapshot.Rate(to)
	if !ok {
		slog.Debug("no conversion rate available",
			"from", from,
			"to", to)
		return amount
	}
	return amount * rate
}

// fallbackSnapshot is the hardcoded rate table used when no live or stale
// data is available, stamped with today's date.
func fallbackSnapshot(baseCurrency string, now time.Time) *model.RateSnapshot {
	pkr := 280.0
	if baseCurrency == "PKR" {
		pkr = 1
	}
	usd := 0.0036
	if baseCurrency == "USD" {
		usd = 1
	}

	return &model.RateSnapshot{
		BaseCurrency: baseCurrency,
		AsOfDate:     now.Format("2006-01-02"),
		FetchedAt:    now,
		Rates: map[string]float64{
			"PKR": pkr,
			"USD": usd,
			"EUR": 0.85,
			"GBP": 0.73,
			"JPY": 110,
		},
	}
}

// currencySymbols maps common currency codes to display symbols.
var currencySymbols = map[string]string{
	"USD": "$",
	"PKR": "Rs",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"INR": "₹",
	"AED": "د.إ",
	"SAR": "﷼",
	"CAD": "C$",
	"AUD": "A$",
}

// Symbol returns the display symbol for a currency code, or the code itself
// when no symbol is known.
func Symbol(code string) string {
	if symbol, ok := currencySymbols[code]; ok {
		return symbol
	}
	return code
}
