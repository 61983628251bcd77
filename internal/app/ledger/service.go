package ledger

import (
	"context"
	"strings"
	"time"

	"goldbook/internal/app/db"
	"goldbook/internal/pkg/errs"
	"goldbook/internal/pkg/logx"
)

// TradeStore is the slice of the database store the ledger service needs.
type TradeStore interface {
	CreatePurchase(ctx context.Context, p db.Purchase) (db.Purchase, error)
	CreateSale(ctx context.Context, s db.Sale) (db.Sale, error)
	ListPurchases(ctx context.Context, limit int) ([]db.Purchase, error)
	ListSales(ctx context.Context, limit int) ([]db.Sale, error)
	RecentPurchases(ctx context.Context, limit int) ([]db.Purchase, error)
	RecentSales(ctx context.Context, limit int) ([]db.Sale, error)
}

// Service validates and records trades and produces the dashboard summary.
type Service struct {
	trades TradeStore
}

// NewService constructs a ledger Service.
func NewService(trades TradeStore) *Service {
	return &Service{trades: trades}
}

// tradeDateLayout is the wire format for trade dates.
const tradeDateLayout = "2006-01-02"

// PurchaseInput carries a purchase form submission.
type PurchaseInput struct {
	Seller    string  `json:"seller"`
	Date      string  `json:"date"`
	GoldGrams float64 `json:"gold_amount"`
	UnitPrice float64 `json:"unit_price"`
	Currency  string  `json:"currency"`
}

// RecordPurchase validates and persists a purchase made by the given user.
func (s *Service) RecordPurchase(ctx context.Context, userID int64, input PurchaseInput) (db.Purchase, *errs.CustomError) {
	seller := strings.TrimSpace(input.Seller)
	if seller == "" || input.GoldGrams <= 0 || input.UnitPrice <= 0 || input.Date == "" {
		return db.Purchase{}, errs.NewError(errs.ErrInvalidTradeInput)
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = CurrencyCAD
	}
	if currency != CurrencyCAD && currency != CurrencyIRR {
		return db.Purchase{}, errs.NewError(errs.ErrInvalidCurrency)
	}

	tradeDate, err := time.Parse(tradeDateLayout, input.Date)
	if err != nil {
		return db.Purchase{}, errs.NewError(errs.ErrInvalidTradeDate)
	}

	purchase, err := s.trades.CreatePurchase(ctx, db.Purchase{
		Seller:    seller,
		TradeDate: tradeDate,
		GoldGrams: input.GoldGrams,
		UnitPrice: input.UnitPrice,
		Currency:  currency,
		TotalCost: input.GoldGrams * input.UnitPrice,
		CreatedBy: userID,
	})
	if err != nil {
		logx.Error(err, "Failed to record purchase", "user_id", userID)
		return db.Purchase{}, errs.NewError(errs.ErrUnknown)
	}

	logx.Info("Purchase recorded",
		"user_id", userID,
		"seller", seller,
		"gold_grams", purchase.GoldGrams,
		"currency", currency,
	)

	return purchase, nil
}

// SaleInput carries a sale form submission. Sales are always priced in CAD.
type SaleInput struct {
	Date      string  `json:"date"`
	GoldGrams float64 `json:"gold_amount"`
	UnitPrice float64 `json:"unit_price"`
}

// RecordSale validates and persists a sale. The sale is rejected when it exceeds the
// remaining FIFO inventory computed from the full trade history at current rates.
func (s *Service) RecordSale(ctx context.Context, userID int64, input SaleInput, rates Rates) (db.Sale, *errs.CustomError) {
	if input.GoldGrams <= 0 || input.UnitPrice <= 0 || input.Date == "" {
		return db.Sale{}, errs.NewError(errs.ErrInvalidTradeInput)
	}

	tradeDate, err := time.Parse(tradeDateLayout, input.Date)
	if err != nil {
		return db.Sale{}, errs.NewError(errs.ErrInvalidTradeDate)
	}

	stats, statsErr := s.Stats(ctx, rates)
	if statsErr != nil {
		return db.Sale{}, statsErr
	}

	if input.GoldGrams > stats.RemainingInventory {
		return db.Sale{}, errs.NewError(errs.ErrInsufficientInventory, input.GoldGrams, stats.RemainingInventory)
	}

	sale, err := s.trades.CreateSale(ctx, db.Sale{
		TradeDate:    tradeDate,
		GoldGrams:    input.GoldGrams,
		UnitPrice:    input.UnitPrice,
		TotalRevenue: input.GoldGrams * input.UnitPrice,
		CreatedBy:    userID,
	})
	if err != nil {
		logx.Error(err, "Failed to record sale", "user_id", userID)
		return db.Sale{}, errs.NewError(errs.ErrUnknown)
	}

	logx.Info("Sale recorded",
		"user_id", userID,
		"gold_grams", sale.GoldGrams,
		"total_revenue", sale.TotalRevenue,
	)

	return sale, nil
}

// Purchases returns the purchase history in trade order. A zero limit returns everything.
func (s *Service) Purchases(ctx context.Context, limit int) ([]db.Purchase, *errs.CustomError) {
	purchases, err := s.trades.ListPurchases(ctx, limit)
	if err != nil {
		logx.Error(err, "Failed to list purchases")
		return nil, errs.NewError(errs.ErrUnknown)
	}
	return purchases, nil
}

// Sales returns the sale history in trade order. A zero limit returns everything.
func (s *Service) Sales(ctx context.Context, limit int) ([]db.Sale, *errs.CustomError) {
	sales, err := s.trades.ListSales(ctx, limit)
	if err != nil {
		logx.Error(err, "Failed to list sales")
		return nil, errs.NewError(errs.ErrUnknown)
	}
	return sales, nil
}

// Stats computes the FIFO inventory and profit summary from the full trade history.
func (s *Service) Stats(ctx context.Context, rates Rates) (Stats, *errs.CustomError) {
	purchases, err := s.trades.ListPurchases(ctx, 0)
	if err != nil {
		logx.Error(err, "Failed to list purchases for stats")
		return Stats{}, errs.NewError(errs.ErrUnknown)
	}

	sales, err := s.trades.ListSales(ctx, 0)
	if err != nil {
		logx.Error(err, "Failed to list sales for stats")
		return Stats{}, errs.NewError(errs.ErrUnknown)
	}

	return CalculateInventoryAndProfit(purchases, sales, rates), nil
}

// Recent returns the newest purchases and sales for the dashboard.
func (s *Service) Recent(ctx context.Context, limit int) ([]db.Purchase, []db.Sale, *errs.CustomError) {
	purchases, err := s.trades.RecentPurchases(ctx, limit)
	if err != nil {
		logx.Error(err, "Failed to list recent purchases")
		return nil, nil, errs.NewError(errs.ErrUnknown)
	}

	sales, err := s.trades.RecentSales(ctx, limit)
	if err != nil {
		logx.Error(err, "Failed to list recent sales")
		return nil, nil, errs.NewError(errs.ErrUnknown)
	}

	return purchases, sales, nil
}
