package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// Purchase is a recorded gold acquisition. Unit price is per gram in the stated currency.
type Purchase struct {
	ID        int64
	Seller    string
	TradeDate time.Time
	GoldGrams float64
	UnitPrice float64
	Currency  string
	TotalCost float64
	CreatedBy int64
	CreatedAt time.Time
}

// Sale is a recorded gold disposal. Revenue is always in CAD.
type Sale struct {
	ID           int64
	TradeDate    time.Time
	GoldGrams    float64
	UnitPrice    float64
	TotalRevenue float64
	CreatedBy    int64
	CreatedAt    time.Time
}

const purchaseColumns = `id, seller, trade_date, gold_grams, unit_price, currency, total_cost, created_by, created_at`

func scanPurchase(row pgx.Row) (Purchase, error) {
	var p Purchase
	err := row.Scan(&p.ID, &p.Seller, &p.TradeDate, &p.GoldGrams, &p.UnitPrice,
		&p.Currency, &p.TotalCost, &p.CreatedBy, &p.CreatedAt)
	if err == pgx.ErrNoRows {
		return Purchase{}, ErrNotFound
	}
	return p, err
}

const saleColumns = `id, trade_date, gold_grams, unit_price, total_revenue, created_by, created_at`

func scanSale(row pgx.Row) (Sale, error) {
	var s Sale
	err := row.Scan(&s.ID, &s.TradeDate, &s.GoldGrams, &s.UnitPrice,
		&s.TotalRevenue, &s.CreatedBy, &s.CreatedAt)
	if err == pgx.ErrNoRows {
		return Sale{}, ErrNotFound
	}
	return s, err
}

// CreatePurchase inserts a purchase row and returns it with generated fields populated.
func (s *Store) CreatePurchase(ctx context.Context, p Purchase) (Purchase, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO purchases (seller, trade_date, gold_grams, unit_price, currency, total_cost, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+purchaseColumns,
		p.Seller, p.TradeDate, p.GoldGrams, p.UnitPrice, p.Currency, p.TotalCost, p.CreatedBy)
	return scanPurchase(row)
}

// CreateSale inserts a sale row and returns it with generated fields populated.
func (s *Store) CreateSale(ctx context.Context, sale Sale) (Sale, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO sales (trade_date, gold_grams, unit_price, total_revenue, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+saleColumns,
		sale.TradeDate, sale.GoldGrams, sale.UnitPrice, sale.TotalRevenue, sale.CreatedBy)
	return scanSale(row)
}

// ListPurchases returns purchases in trade order (oldest first), the order the
// FIFO inventory calculation consumes them in. A limit of 0 means no limit.
func (s *Store) ListPurchases(ctx context.Context, limit int) ([]Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases ORDER BY trade_date, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

// ListSales returns sales in trade order (oldest first). A limit of 0 means no limit.
func (s *Store) ListSales(ctx context.Context, limit int) ([]Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY trade_date, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []Sale
	for rows.Next() {
		sl, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sl)
	}
	return sales, rows.Err()
}

// RecentPurchases returns the newest purchases first, for the dashboard.
func (s *Store) RecentPurchases(ctx context.Context, limit int) ([]Purchase, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+purchaseColumns+` FROM purchases ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

// RecentSales returns the newest sales first, for the dashboard.
func (s *Store) RecentSales(ctx context.Context, limit int) ([]Sale, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+saleColumns+` FROM sales ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []Sale
	for rows.Next() {
		sl, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sl)
	}
	return sales, rows.Err()
}
