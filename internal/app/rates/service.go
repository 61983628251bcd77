package rates

import (
	"context"
	"sync"
	"time"

	"goldbook/internal/app/ledger"
	"goldbook/internal/pkg/logx"
)

// RateStore persists fetched rates for the page layer and for conversions that run
// when no fresh quote is in memory.
type RateStore interface {
	UpsertRate(ctx context.Context, from, to string, rate float64) error
}

// Quote is one timestamped snapshot of the CAD cross rates.
type Quote struct {
	USDPerCAD float64           `json:"usd_per_cad"`
	IRRPerCAD float64           `json:"irr_per_cad"`
	Sources   map[string]string `json:"sources"`
	FetchedAt time.Time         `json:"fetched_at"`
}

// Rates converts a quote into the ledger's conversion table.
func (q Quote) Rates() ledger.Rates {
	return ledger.Rates{USDPerCAD: q.USDPerCAD, IRRPerCAD: q.IRRPerCAD}
}

// Service fetches, caches, and persists exchange rates. A quote is served from cache
// until cacheTTL passes; each fetcher failure degrades independently to its fallback
// rate, so a partial outage still yields a complete quote.
type Service struct {
	usd   Fetcher
	irr   Fetcher
	store RateStore

	cacheTTL     time.Duration
	fetchTimeout time.Duration

	mu     sync.Mutex
	cached Quote

	now func() time.Time
}

// NewService constructs a rate Service with the default sources.
func NewService(store RateStore, cacheTTL time.Duration) *Service {
	return &Service{
		usd:          &USDFetcher{},
		irr:          &IRRFetcher{},
		store:        store,
		cacheTTL:     cacheTTL,
		fetchTimeout: 10 * time.Second,
		now:          time.Now,
	}
}

// NewServiceWithFetchers constructs a rate Service over explicit fetchers, for tests
// and alternative sources.
func NewServiceWithFetchers(usd, irr Fetcher, store RateStore, cacheTTL time.Duration) *Service {
	s := NewService(store, cacheTTL)
	s.usd = usd
	s.irr = irr
	return s
}

// Current returns the cached quote when fresh, fetching otherwise.
func (s *Service) Current(ctx context.Context) Quote {
	s.mu.Lock()
	cached := s.cached
	s.mu.Unlock()

	if !cached.FetchedAt.IsZero() && s.now().Sub(cached.FetchedAt) < s.cacheTTL {
		return cached
	}

	return s.Refresh(ctx)
}

// Refresh fetches both rates, falling back per currency on failure, persists the
// result, and replaces the cache. Refresh never fails; the worst outcome is a quote
// made entirely of fallback rates.
func (s *Service) Refresh(ctx context.Context) Quote {
	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	quote := Quote{
		Sources:   map[string]string{},
		FetchedAt: s.now(),
	}

	usd, source, err := s.usd.Fetch(fetchCtx)
	if err != nil {
		logx.Warn("USD rate fetch failed, using fallback", "error", err)
		usd, source = ledger.FallbackUSDPerCAD, "fallback"
	}
	quote.USDPerCAD = usd
	quote.Sources[ledger.CurrencyUSD] = source

	irr, source, err := s.irr.Fetch(fetchCtx)
	if err != nil {
		logx.Warn("IRR rate fetch failed, using fallback", "error", err)
		irr, source = ledger.FallbackIRRPerCAD, "fallback"
	}
	quote.IRRPerCAD = irr
	quote.Sources[ledger.CurrencyIRR] = source

	if s.store != nil {
		if err := s.store.UpsertRate(ctx, ledger.CurrencyCAD, ledger.CurrencyUSD, quote.USDPerCAD); err != nil {
			logx.Error(err, "Failed to persist USD rate")
		}
		if err := s.store.UpsertRate(ctx, ledger.CurrencyCAD, ledger.CurrencyIRR, quote.IRRPerCAD); err != nil {
			logx.Error(err, "Failed to persist IRR rate")
		}
	}

	s.mu.Lock()
	s.cached = quote
	s.mu.Unlock()

	logx.Info("Exchange rates refreshed",
		"usd_per_cad", quote.USDPerCAD,
		"irr_per_cad", quote.IRRPerCAD,
		"usd_source", quote.Sources[ledger.CurrencyUSD],
		"irr_source", quote.Sources[ledger.CurrencyIRR],
	)

	return quote
}
