// Package report turns raw back-office records into period reports: summary
// totals, a chart series, a product ranking and itemized rows, compared with
// the preceding period.
package report

import (
	"backoffice/backend/internal/domain"
)

// Snapshot is the set of records a report is computed from.
type Snapshot struct {
	Invoices     []domain.Invoice
	DamagedItems []domain.DamagedItem
	Expenses     []domain.Expense
}

// Build computes the report for p over snap. Deleted invoices are dropped
// before any bucketing so they can never reach an aggregate.
func Build(snap Snapshot, p Period) domain.ReportResult {
	snap.Invoices = activeInvoices(snap.Invoices)

	result := Aggregate(p,
		Filter(snap.Invoices, p),
		Filter(snap.DamagedItems, p),
		Filter(snap.Expenses, p),
	)
	result.Summary = WithComparison(result.Summary, p, snap)
	return result
}

func activeInvoices(invoices []domain.Invoice) []domain.Invoice {
	out := make([]domain.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv.IsDeleted {
			continue
		}
		out = append(out, inv)
	}
	return out
}
