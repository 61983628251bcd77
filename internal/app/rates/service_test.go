package rates

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldbook/internal/app/ledger"
)

// fakeRateStore records upserted rates.
type fakeRateStore struct {
	mu    sync.Mutex
	rates map[string]float64
}

func newFakeRateStore() *fakeRateStore {
	return &fakeRateStore{rates: make(map[string]float64)}
}

func (f *fakeRateStore) UpsertRate(ctx context.Context, from, to string, rate float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rates[from+"/"+to] = rate
	return nil
}

func staticFetcher(rate float64, source string) Fetcher {
	return FetcherFunc(func(ctx context.Context) (float64, string, error) {
		return rate, source, nil
	})
}

func failingFetcher() Fetcher {
	return FetcherFunc(func(ctx context.Context) (float64, string, error) {
		return 0, "", errors.New("source unreachable")
	})
}

func TestRefresh(t *testing.T) {
	store := newFakeRateStore()
	svc := NewServiceWithFetchers(
		staticFetcher(0.73, "exchangerate.host"),
		staticFetcher(41000, "priceto.day"),
		store, time.Minute,
	)

	quote := svc.Refresh(context.Background())

	assert.InDelta(t, 0.73, quote.USDPerCAD, 1e-9)
	assert.InDelta(t, 41000, quote.IRRPerCAD, 1e-9)
	assert.Equal(t, "exchangerate.host", quote.Sources[ledger.CurrencyUSD])
	assert.Equal(t, "priceto.day", quote.Sources[ledger.CurrencyIRR])
	assert.False(t, quote.FetchedAt.IsZero())

	assert.InDelta(t, 0.73, store.rates["CAD/USD"], 1e-9)
	assert.InDelta(t, 41000, store.rates["CAD/IRR"], 1e-9)
}

func TestRefreshPartialFailureFallsBack(t *testing.T) {
	svc := NewServiceWithFetchers(
		failingFetcher(),
		staticFetcher(41000, "priceto.day"),
		newFakeRateStore(), time.Minute,
	)

	quote := svc.Refresh(context.Background())

	assert.InDelta(t, ledger.FallbackUSDPerCAD, quote.USDPerCAD, 1e-9)
	assert.Equal(t, "fallback", quote.Sources[ledger.CurrencyUSD])
	assert.InDelta(t, 41000, quote.IRRPerCAD, 1e-9)
	assert.Equal(t, "priceto.day", quote.Sources[ledger.CurrencyIRR])
}

func TestRefreshTotalFailureFallsBack(t *testing.T) {
	svc := NewServiceWithFetchers(failingFetcher(), failingFetcher(), nil, time.Minute)

	quote := svc.Refresh(context.Background())

	assert.InDelta(t, ledger.FallbackUSDPerCAD, quote.USDPerCAD, 1e-9)
	assert.InDelta(t, ledger.FallbackIRRPerCAD, quote.IRRPerCAD, 1e-9)
}

func TestCurrentServesFromCache(t *testing.T) {
	calls := 0
	counting := FetcherFunc(func(ctx context.Context) (float64, string, error) {
		calls++
		return 0.73, "exchangerate.host", nil
	})
	svc := NewServiceWithFetchers(counting, staticFetcher(41000, "priceto.day"), nil, time.Minute)

	first := svc.Current(context.Background())
	second := svc.Current(context.Background())

	require.Equal(t, 1, calls)
	assert.Equal(t, first.FetchedAt, second.FetchedAt)
}

func TestCurrentRefetchesAfterTTL(t *testing.T) {
	calls := 0
	counting := FetcherFunc(func(ctx context.Context) (float64, string, error) {
		calls++
		return 0.73, "exchangerate.host", nil
	})
	svc := NewServiceWithFetchers(counting, staticFetcher(41000, "priceto.day"), nil, time.Minute)

	base := time.Now()
	svc.now = func() time.Time { return base }
	svc.Current(context.Background())

	svc.now = func() time.Time { return base.Add(2 * time.Minute) }
	svc.Current(context.Background())

	assert.Equal(t, 2, calls)
}

func TestQuoteRates(t *testing.T) {
	quote := Quote{USDPerCAD: 0.73, IRRPerCAD: 41000}
	rates := quote.Rates()

	assert.InDelta(t, 0.73, rates.USDPerCAD, 1e-9)
	assert.InDelta(t, 41000, rates.IRRPerCAD, 1e-9)
}
