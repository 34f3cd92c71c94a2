package report

import (
	"github.com/shopspring/decimal"

	"backoffice/backend/internal/domain"
)

// WithComparison fills the previous* fields of current from the period one
// unit before p. Only the summary is recomputed for the previous period;
// chart, ranking and detail rows are never built for it.
func WithComparison(current domain.ReportSummary, p Period, snap Snapshot) domain.ReportSummary {
	prev := p.Previous()
	t := summarize(
		Filter(activeInvoices(snap.Invoices), prev),
		Filter(snap.DamagedItems, prev),
		Filter(snap.Expenses, prev),
	)

	current.PreviousTotalSales = money(t.sales)
	current.PreviousTotalProfit = money(t.profit)
	current.PreviousTotalDamages = money(t.damages)
	current.PreviousSalesCount = t.salesCount
	current.SalesChangePercent = changePercent(decimal.NewFromFloat(current.TotalSales), t.sales)
	current.ProfitChangePercent = changePercent(decimal.NewFromFloat(current.TotalProfit), t.profit)
	return current
}

// changePercent is 100% growth from a zero baseline and 0% when both are zero.
func changePercent(current decimal.Decimal, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		if current.IsZero() {
			return 0
		}
		return 100
	}
	return money(current.Sub(previous).Div(previous.Abs()).Mul(hundred))
}
