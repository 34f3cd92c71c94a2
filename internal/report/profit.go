package report

import (
	"github.com/shopspring/decimal"

	"backoffice/backend/internal/domain"
)

// EstimatedMarginRate is applied to records that predate profit tracking.
var EstimatedMarginRate = decimal.RequireFromString("0.30")

// ProfitOf returns the recorded profit, or the estimated margin of saleAmount
// when no profit was recorded or it is exactly zero. Every profit figure in a
// report goes through this function so totals and per-product numbers agree.
func ProfitOf(saleAmount decimal.Decimal, profit *domain.Number) decimal.Decimal {
	if profit == nil || *profit == 0 {
		return saleAmount.Mul(EstimatedMarginRate)
	}
	return profit.Decimal()
}

func InvoiceProfit(inv domain.Invoice) decimal.Decimal {
	return ProfitOf(inv.Total.Decimal(), inv.Profit)
}

func LineProfit(item domain.LineItem) decimal.Decimal {
	return ProfitOf(item.LineTotal.Decimal(), item.Profit)
}
