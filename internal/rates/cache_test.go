package rates

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkhattak/paisa/internal/model"
)

// fakeFetcher counts calls and can be flipped to failing mid-test.
type fakeFetcher struct {
	calls int
	fail  bool
	rates map[string]float64
}

func (f *fakeFetcher) Fetch(ctx context.Context, baseCurrency string) (*model.RateSnapshot, error) {
	f.calls++
	if f.fail {
		return nil, fmt.Errorf("upstream down")
	}
	rates := f.rates
	if rates == nil {
		rates = map[string]float64{"PKR": 278.5, "EUR": 0.9}
	}
	return &model.RateSnapshot{
		BaseCurrency: baseCurrency,
		AsOfDate:     "2024-06-01",
		Rates:        rates,
	}, nil
}

// fakeClock advances manually.
type fakeClock struct {
	current time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time          { return c.current }
func (c *fakeClock) advance(d time.Duration) { c.current = c.current.Add(d) }

func TestGetRates_CachesWithinTTL(t *testing.T) {
	clock := newFakeClock()
	fetcher := &fakeFetcher{}
	cache := NewCache(fetcher, WithCacheClock(clock.now))
	ctx := context.Background()

	first := cache.GetRates(ctx, "USD")
	require.NotNil(t, first)
	assert.Equal(t, "USD", first.BaseCurrency)
	assert.Equal(t, 1, fetcher.calls)

	clock.advance(TTL - time.Second)
	second := cache.GetRates(ctx, "USD")
	assert.Same(t, first, second)
	assert.Equal(t, 1, fetcher.calls)
}

func TestGetRates_RefreshesAfterTTL(t *testing.T) {
	clock := newFakeClock()
	fetcher := &fakeFetcher{}
	cache := NewCache(fetcher, WithCacheClock(clock.now))
	ctx := context.Background()

	cache.GetRates(ctx, "USD")
	clock.advance(TTL)
	cache.GetRates(ctx, "USD")

	assert.Equal(t, 2, fetcher.calls)
}

func TestGetRates_SeparateEntriesPerBase(t *testing.T) {
	clock := newFakeClock()
	fetcher := &fakeFetcher{}
	cache := NewCache(fetcher, WithCacheClock(clock.now))
	ctx := context.Background()

	usd := cache.GetRates(ctx, "USD")
	pkr := cache.GetRates(ctx, "PKR")

	assert.Equal(t, "USD", usd.BaseCurrency)
	assert.Equal(t, "PKR", pkr.BaseCurrency)
	assert.Equal(t, 2, fetcher.calls)
}

func TestGetRates_StaleSnapshotReusedOnFailure(t *testing.T) {
	clock := newFakeClock()
	fetcher := &fakeFetcher{}
	cache := NewCache(fetcher, WithCacheClock(clock.now))
	ctx := context.Background()

	first := cache.GetRates(ctx, "USD")

	fetcher.fail = true
	clock.advance(2 * TTL)
	second := cache.GetRates(ctx, "USD")

	assert.Same(t, first, second)
}

func TestGetRates_FallbackTableWhenNothingCached(t *testing.T) {
	clock := newFakeClock()
	cache := NewCache(&fakeFetcher{fail: true}, WithCacheClock(clock.now))

	got := cache.GetRates(context.Background(), "USD")

	require.NotNil(t, got)
	assert.Equal(t, "USD", got.BaseCurrency)
	assert.Equal(t, "2024-06-01", got.AsOfDate)

	pkr, ok := got.Rate("PKR")
	require.True(t, ok)
	assert.InDelta(t, 280, pkr, 1e-9)

	usd, ok := got.Rate("USD")
	require.True(t, ok)
	assert.InDelta(t, 1, usd, 1e-9)
}

func TestGetRates_FallbackTableSelfRateIsOne(t *testing.T) {
	clock := newFakeClock()
	cache := NewCache(&fakeFetcher{fail: true}, WithCacheClock(clock.now))

	got := cache.GetRates(context.Background(), "PKR")

	pkr, ok := got.Rate("PKR")
	require.True(t, ok)
	assert.InDelta(t, 1, pkr, 1e-9)

	usd, ok := got.Rate("USD")
	require.True(t, ok)
	assert.InDelta(t, 0.0036, usd, 1e-9)
}

func TestConvert(t *testing.T) {
	clock := newFakeClock()
	fetcher := &fakeFetcher{rates: map[string]float64{"PKR": 280, "EUR": 0.9}}
	cache := NewCache(fetcher, WithCacheClock(clock.now))
	ctx := context.Background()

	tests := []struct {
		name   string
		from   string
		to     string
		amount float64
		want   float64
	}{
		{name: "converts through the rate table", amount: 10, from: "USD", to: "PKR", want: 2800},
		{name: "identical currencies pass through", amount: 42.5, from: "USD", to: "USD", want: 42.5},
		{name: "identity holds for zero", amount: 0, from: "PKR", to: "PKR", want: 0},
		{name: "identity holds for negative amounts", amount: -99.9, from: "EUR", to: "EUR", want: -99.9},
		{name: "missing rate passes the amount through", amount: 10, from: "USD", to: "XXX", want: 10},
		{name: "negative amounts convert like positive ones", amount: -10, from: "USD", to: "EUR", want: -9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, cache.Convert(ctx, tt.amount, tt.from, tt.to), 1e-9)
		})
	}
}

func TestConvert_IdenticalCurrenciesSkipFetch(t *testing.T) {
	fetcher := &fakeFetcher{fail: true}
	cache := NewCache(fetcher, WithCacheClock(newFakeClock().now))

	got := cache.Convert(context.Background(), 123.45, "USD", "USD")

	assert.InDelta(t, 123.45, got, 1e-9)
	assert.Equal(t, 0, fetcher.calls)
}

func TestClient_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/USD", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"base": "USD",
			"date": "2024-06-01",
			"rates": {"PKR": 278.5, "EUR": 0.92}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	got, err := client.Fetch(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, "USD", got.BaseCurrency)
	assert.Equal(t, "2024-06-01", got.AsOfDate)

	rate, ok := got.Rate("PKR")
	require.True(t, ok)
	assert.InDelta(t, 278.5, rate, 1e-9)
}

func TestClient_Fetch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantErr: "returned 500"},
		{name: "not json", status: http.StatusOK, body: "<html>", wantErr: "decode"},
		{name: "missing base", status: http.StatusOK, body: `{"rates":{"PKR":278}}`, wantErr: "missing base or rates"},
		{name: "empty rates", status: http.StatusOK, body: `{"base":"USD","rates":{}}`, wantErr: "missing base or rates"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewClient(server.URL).Fetch(context.Background(), "USD")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSymbol(t *testing.T) {
	assert.Equal(t, "$", Symbol("USD"))
	assert.Equal(t, "Rs", Symbol("PKR"))
	assert.Equal(t, "CHF", Symbol("CHF"))
}
