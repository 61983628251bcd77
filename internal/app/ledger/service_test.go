package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldbook/internal/app/db"
	"goldbook/internal/pkg/errs"
)

// fakeTradeStore keeps trades in memory in insertion order.
type fakeTradeStore struct {
	purchases []db.Purchase
	sales     []db.Sale
	nextID    int64
}

func (f *fakeTradeStore) CreatePurchase(ctx context.Context, p db.Purchase) (db.Purchase, error) {
	f.nextID++
	p.ID = f.nextID
	f.purchases = append(f.purchases, p)
	return p, nil
}

func (f *fakeTradeStore) CreateSale(ctx context.Context, s db.Sale) (db.Sale, error) {
	f.nextID++
	s.ID = f.nextID
	f.sales = append(f.sales, s)
	return s, nil
}

func (f *fakeTradeStore) ListPurchases(ctx context.Context, limit int) ([]db.Purchase, error) {
	return f.purchases, nil
}

func (f *fakeTradeStore) ListSales(ctx context.Context, limit int) ([]db.Sale, error) {
	return f.sales, nil
}

func (f *fakeTradeStore) RecentPurchases(ctx context.Context, limit int) ([]db.Purchase, error) {
	if limit > 0 && len(f.purchases) > limit {
		return f.purchases[len(f.purchases)-limit:], nil
	}
	return f.purchases, nil
}

func (f *fakeTradeStore) RecentSales(ctx context.Context, limit int) ([]db.Sale, error) {
	if limit > 0 && len(f.sales) > limit {
		return f.sales[len(f.sales)-limit:], nil
	}
	return f.sales, nil
}

func TestRecordPurchase(t *testing.T) {
	store := &fakeTradeStore{}
	svc := NewService(store)

	p, customErr := svc.RecordPurchase(context.Background(), 1, PurchaseInput{
		Seller:    "Tehran Gold Exchange",
		Date:      "2026-08-01",
		GoldGrams: 100,
		UnitPrice: 80,
		Currency:  "cad",
	})

	require.Nil(t, customErr)
	assert.Equal(t, "Tehran Gold Exchange", p.Seller)
	assert.Equal(t, CurrencyCAD, p.Currency)
	assert.InDelta(t, 8000, p.TotalCost, 1e-9)
	assert.Equal(t, int64(1), p.CreatedBy)
}

func TestRecordPurchaseDefaultsToCAD(t *testing.T) {
	svc := NewService(&fakeTradeStore{})

	p, customErr := svc.RecordPurchase(context.Background(), 1, PurchaseInput{
		Seller:    "Local dealer",
		Date:      "2026-08-01",
		GoldGrams: 10,
		UnitPrice: 80,
	})

	require.Nil(t, customErr)
	assert.Equal(t, CurrencyCAD, p.Currency)
}

func TestRecordPurchaseValidation(t *testing.T) {
	svc := NewService(&fakeTradeStore{})

	tests := []struct {
		name     string
		input    PurchaseInput
		wantCode int
	}{
		{
			name:     "missing seller",
			input:    PurchaseInput{Date: "2026-08-01", GoldGrams: 10, UnitPrice: 80},
			wantCode: errs.ErrInvalidTradeInput,
		},
		{
			name:     "zero grams",
			input:    PurchaseInput{Seller: "x", Date: "2026-08-01", UnitPrice: 80},
			wantCode: errs.ErrInvalidTradeInput,
		},
		{
			name:     "negative price",
			input:    PurchaseInput{Seller: "x", Date: "2026-08-01", GoldGrams: 10, UnitPrice: -1},
			wantCode: errs.ErrInvalidTradeInput,
		},
		{
			name:     "bad date",
			input:    PurchaseInput{Seller: "x", Date: "01/08/2026", GoldGrams: 10, UnitPrice: 80},
			wantCode: errs.ErrInvalidTradeDate,
		},
		{
			name:     "unsupported currency",
			input:    PurchaseInput{Seller: "x", Date: "2026-08-01", GoldGrams: 10, UnitPrice: 80, Currency: "EUR"},
			wantCode: errs.ErrInvalidCurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, customErr := svc.RecordPurchase(context.Background(), 1, tt.input)
			require.NotNil(t, customErr)
			assert.Equal(t, tt.wantCode, customErr.Code)
		})
	}
}

func TestRecordSale(t *testing.T) {
	store := &fakeTradeStore{}
	svc := NewService(store)

	_, customErr := svc.RecordPurchase(context.Background(), 1, PurchaseInput{
		Seller: "x", Date: "2026-08-01", GoldGrams: 100, UnitPrice: 80,
	})
	require.Nil(t, customErr)

	sale, customErr := svc.RecordSale(context.Background(), 1, SaleInput{
		Date: "2026-08-10", GoldGrams: 40, UnitPrice: 100,
	}, FallbackRates())

	require.Nil(t, customErr)
	assert.InDelta(t, 4000, sale.TotalRevenue, 1e-9)
}

func TestRecordSaleInsufficientInventory(t *testing.T) {
	store := &fakeTradeStore{}
	svc := NewService(store)

	_, customErr := svc.RecordPurchase(context.Background(), 1, PurchaseInput{
		Seller: "x", Date: "2026-08-01", GoldGrams: 10, UnitPrice: 80,
	})
	require.Nil(t, customErr)

	_, customErr = svc.RecordSale(context.Background(), 1, SaleInput{
		Date: "2026-08-10", GoldGrams: 50, UnitPrice: 100,
	}, FallbackRates())

	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrInsufficientInventory, customErr.Code)
	assert.Empty(t, store.sales)
}

func TestRecordSaleConsumesInventoryAcrossCalls(t *testing.T) {
	store := &fakeTradeStore{}
	svc := NewService(store)

	_, customErr := svc.RecordPurchase(context.Background(), 1, PurchaseInput{
		Seller: "x", Date: "2026-08-01", GoldGrams: 100, UnitPrice: 80,
	})
	require.Nil(t, customErr)

	_, customErr = svc.RecordSale(context.Background(), 1, SaleInput{
		Date: "2026-08-10", GoldGrams: 60, UnitPrice: 100,
	}, FallbackRates())
	require.Nil(t, customErr)

	_, customErr = svc.RecordSale(context.Background(), 1, SaleInput{
		Date: "2026-08-11", GoldGrams: 60, UnitPrice: 100,
	}, FallbackRates())

	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrInsufficientInventory, customErr.Code)
}

func TestStats(t *testing.T) {
	store := &fakeTradeStore{}
	svc := NewService(store)

	_, customErr := svc.RecordPurchase(context.Background(), 1, PurchaseInput{
		Seller: "x", Date: "2026-08-01", GoldGrams: 100, UnitPrice: 80,
	})
	require.Nil(t, customErr)

	_, customErr = svc.RecordSale(context.Background(), 1, SaleInput{
		Date: "2026-08-10", GoldGrams: 50, UnitPrice: 100,
	}, FallbackRates())
	require.Nil(t, customErr)

	stats, customErr := svc.Stats(context.Background(), FallbackRates())

	require.Nil(t, customErr)
	assert.InDelta(t, 50, stats.RemainingInventory, 1e-9)
	assert.InDelta(t, 50*100-50*80.0, stats.ProfitCAD, 1e-9)
}
