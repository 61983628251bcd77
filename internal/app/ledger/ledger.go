/*
Package ledger implements the gold book-keeping rules: recording purchases and sales,
currency conversion, and the FIFO inventory and profit calculation.

All internal accounting is done in CAD. Purchases may be priced in IRR and are
converted at the current CAD rate before entering the inventory queue.
*/
package ledger

import (
	"fmt"

	"goldbook/internal/app/db"
)

// Supported trade currencies.
const (
	CurrencyCAD = "CAD"
	CurrencyUSD = "USD"
	CurrencyIRR = "IRR"
)

// Fallback conversion rates, used when no fetched rate is available.
// Same constants the rate fetchers fall back to.
const (
	FallbackUSDPerCAD = 0.74
	FallbackIRRPerCAD = 42000.0
)

// Rates carries the current CAD cross rates used for conversion.
type Rates struct {
	USDPerCAD float64
	IRRPerCAD float64
}

// FallbackRates returns the hard-coded rates used when live fetching is unavailable.
func FallbackRates() Rates {
	return Rates{USDPerCAD: FallbackUSDPerCAD, IRRPerCAD: FallbackIRRPerCAD}
}

// Convert converts an amount between CAD, USD, and IRR using the carried rates.
// Unknown pairs return the amount unchanged, matching the permissive behavior the
// rest of the calculation expects from partial rate data.
func (r Rates) Convert(amount float64, from, to string) float64 {
	if from == to {
		return amount
	}

	usd := r.USDPerCAD
	if usd == 0 {
		usd = FallbackUSDPerCAD
	}
	irr := r.IRRPerCAD
	if irr == 0 {
		irr = FallbackIRRPerCAD
	}

	switch {
	case from == CurrencyCAD && to == CurrencyUSD:
		return amount * usd
	case from == CurrencyCAD && to == CurrencyIRR:
		return amount * irr
	case from == CurrencyUSD && to == CurrencyCAD:
		return amount / usd
	case from == CurrencyIRR && to == CurrencyCAD:
		return amount / irr
	default:
		return amount
	}
}

// Stats is the inventory and profit summary shown on the dashboard.
type Stats struct {
	RemainingInventory        float64 `json:"remaining_inventory"`
	RemainingInventoryValueCAD float64 `json:"remaining_inventory_value_cad"`
	TotalPurchasesCAD         float64 `json:"total_purchases_cad"`
	TotalSalesCAD             float64 `json:"total_sales_cad"`
	ProfitCAD                 float64 `json:"profit_cad"`
	ProfitUSD                 float64 `json:"profit_usd"`
	ProfitIRR                 float64 `json:"profit_irr"`
	TotalPurchased            float64 `json:"total_purchased"`
	TotalSold                 float64 `json:"total_sold"`
}

type batch struct {
	grams       float64
	costPerGram float64
}

// CalculateInventoryAndProfit computes the remaining inventory and realized profit
// using the FIFO method. Purchases and sales must be in trade order (oldest first).
// IRR-priced purchases are converted to CAD before entering the queue; sales revenue
// is already CAD.
func CalculateInventoryAndProfit(purchases []db.Purchase, sales []db.Sale, rates Rates) Stats {
	queue := make([]batch, 0, len(purchases))

	var stats Stats

	for _, p := range purchases {
		costPerGram := p.UnitPrice
		if p.Currency == CurrencyIRR {
			costPerGram = rates.Convert(p.UnitPrice, CurrencyIRR, CurrencyCAD)
		}

		queue = append(queue, batch{grams: p.GoldGrams, costPerGram: costPerGram})
		stats.TotalPurchasesCAD += p.GoldGrams * costPerGram
		stats.TotalPurchased += p.GoldGrams
	}

	var costOfGoodsSold float64

	for _, s := range sales {
		stats.TotalSalesCAD += s.TotalRevenue
		stats.TotalSold += s.GoldGrams

		remaining := s.GoldGrams
		for remaining > 0 && len(queue) > 0 {
			head := &queue[0]

			if head.grams <= remaining {
				costOfGoodsSold += head.grams * head.costPerGram
				remaining -= head.grams
				queue = queue[1:]
			} else {
				costOfGoodsSold += remaining * head.costPerGram
				head.grams -= remaining
				remaining = 0
			}
		}
	}

	for _, b := range queue {
		stats.RemainingInventory += b.grams
		stats.RemainingInventoryValueCAD += b.grams * b.costPerGram
	}

	stats.ProfitCAD = stats.TotalSalesCAD - costOfGoodsSold
	stats.ProfitUSD = rates.Convert(stats.ProfitCAD, CurrencyCAD, CurrencyUSD)
	stats.ProfitIRR = rates.Convert(stats.ProfitCAD, CurrencyCAD, CurrencyIRR)

	return stats
}

// FormatGoldQuantity renders a gram amount in the short form used across the UI:
// 1500 → "1.5k", 2000 → "2k", 750.5 → "750.5", 0 → "0".
func FormatGoldQuantity(amount float64) string {
	if amount == 0 {
		return "0"
	}

	if amount >= 1000 {
		k := amount / 1000
		if k == float64(int64(k)) {
			return fmt.Sprintf("%dk", int64(k))
		}
		return fmt.Sprintf("%.1fk", k)
	}

	if amount == float64(int64(amount)) {
		return fmt.Sprintf("%d", int64(amount))
	}
	return fmt.Sprintf("%.1f", amount)
}
