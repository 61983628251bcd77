package handler

import (
	"net/http"

	"goldbook/internal/app/db"
	"goldbook/internal/app/ledger"
	"goldbook/internal/pkg/req"
	"goldbook/internal/pkg/resp"
)

// HandleCreatePurchase records a gold purchase for the authenticated user.
func HandleCreatePurchase(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, customErr := currentSession(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input ledger.PurchaseInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		purchase, customErr := deps.Ledger.RecordPurchase(r.Context(), sess.UserID, input)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"purchase": toPurchaseResponse(purchase),
		})
	}
}

// HandleCreateSale records a gold sale, rejecting amounts above the remaining inventory.
func HandleCreateSale(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, customErr := currentSession(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input ledger.SaleInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		quote := deps.Rates.Current(r.Context())

		sale, customErr := deps.Ledger.RecordSale(r.Context(), sess.UserID, input, quote.Rates())
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"sale": toSaleResponse(sale),
		})
	}
}

// HandleListPurchases returns the full purchase history.
func HandleListPurchases(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, customErr := currentSession(deps, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		purchases, customErr := deps.Ledger.Purchases(r.Context(), 0)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		views := make([]map[string]any, 0, len(purchases))
		for _, p := range purchases {
			views = append(views, toPurchaseResponse(p))
		}

		resp.RespondSuccess(w, r, map[string]any{"purchases": views})
	}
}

// HandleListSales returns the full sale history.
func HandleListSales(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, customErr := currentSession(deps, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		sales, customErr := deps.Ledger.Sales(r.Context(), 0)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		views := make([]map[string]any, 0, len(sales))
		for _, s := range sales {
			views = append(views, toSaleResponse(s))
		}

		resp.RespondSuccess(w, r, map[string]any{"sales": views})
	}
}

// HandleDashboard returns the inventory summary, current rates, and recent trades.
func HandleDashboard(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, customErr := currentSession(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		quote := deps.Rates.Current(r.Context())

		stats, customErr := deps.Ledger.Stats(r.Context(), quote.Rates())
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		purchases, sales, customErr := deps.Ledger.Recent(r.Context(), 5)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		purchaseViews := make([]map[string]any, 0, len(purchases))
		for _, p := range purchases {
			purchaseViews = append(purchaseViews, toPurchaseResponse(p))
		}
		saleViews := make([]map[string]any, 0, len(sales))
		for _, s := range sales {
			saleViews = append(saleViews, toSaleResponse(s))
		}

		resp.RespondSuccess(w, r, map[string]any{
			"session": toSessionResponse(sess),
			"stats":   stats,
			"rates": map[string]any{
				"USD":        quote.USDPerCAD,
				"IRR":        quote.IRRPerCAD,
				"fetched_at": quote.FetchedAt,
			},
			"inventory_display": ledger.FormatGoldQuantity(stats.RemainingInventory),
			"recent_purchases":  purchaseViews,
			"recent_sales":      saleViews,
		})
	}
}

const tradeDateDisplay = "2006-01-02"

func toPurchaseResponse(p db.Purchase) map[string]any {
	return map[string]any{
		"id":           p.ID,
		"seller":       p.Seller,
		"date":         p.TradeDate.Format(tradeDateDisplay),
		"gold_amount":  p.GoldGrams,
		"gold_display": ledger.FormatGoldQuantity(p.GoldGrams),
		"unit_price":   p.UnitPrice,
		"currency":     p.Currency,
		"total_cost":   p.TotalCost,
	}
}

func toSaleResponse(s db.Sale) map[string]any {
	return map[string]any{
		"id":            s.ID,
		"date":          s.TradeDate.Format(tradeDateDisplay),
		"gold_amount":   s.GoldGrams,
		"gold_display":  ledger.FormatGoldQuantity(s.GoldGrams),
		"unit_price":    s.UnitPrice,
		"total_revenue": s.TotalRevenue,
	}
}
