package report

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"backoffice/backend/internal/domain"
)

// TopProductLimit is the size of the product ranking.
const TopProductLimit = 5

var hundred = decimal.NewFromInt(100)

type totals struct {
	sales        decimal.Decimal
	profit       decimal.Decimal
	damages      decimal.Decimal
	expenses     decimal.Decimal
	salesCount   int
	damageCount  int
	expenseCount int
}

func summarize(invoices []domain.Invoice, damaged []domain.DamagedItem, expenses []domain.Expense) totals {
	t := totals{
		sales:        decimal.Zero,
		profit:       decimal.Zero,
		damages:      decimal.Zero,
		expenses:     decimal.Zero,
		salesCount:   len(invoices),
		damageCount:  len(damaged),
		expenseCount: len(expenses),
	}
	for _, inv := range invoices {
		t.sales = t.sales.Add(inv.Total.Decimal())
		t.profit = t.profit.Add(InvoiceProfit(inv))
	}
	for _, d := range damaged {
		t.damages = t.damages.Add(d.ValueLoss.Decimal())
	}
	for _, e := range expenses {
		t.expenses = t.expenses.Add(e.Amount.Decimal())
	}
	return t
}

func (t totals) summary() domain.ReportSummary {
	s := domain.ReportSummary{
		TotalSales:    money(t.sales),
		TotalProfit:   money(t.profit),
		TotalDamages:  money(t.damages),
		TotalExpenses: money(t.expenses),
		NetProfit:     money(t.profit.Sub(t.damages).Sub(t.expenses)),
		SalesCount:    t.salesCount,
		DamageCount:   t.damageCount,
		ExpenseCount:  t.expenseCount,
	}
	if t.salesCount > 0 {
		s.AverageSale = money(t.sales.Div(decimal.NewFromInt(int64(t.salesCount))))
	}
	if !t.sales.IsZero() {
		s.ProfitMargin = money(t.profit.Div(t.sales).Mul(hundred))
	}
	return s
}

// Summarize computes only the scalar totals of an already filtered period.
func Summarize(invoices []domain.Invoice, damaged []domain.DamagedItem, expenses []domain.Expense) domain.ReportSummary {
	return summarize(invoices, damaged, expenses).summary()
}

// Aggregate builds the full report for records already filtered to p.
func Aggregate(p Period, invoices []domain.Invoice, damaged []domain.DamagedItem, expenses []domain.Expense) domain.ReportResult {
	lines := make([][]domain.LineItem, len(invoices))
	for i, inv := range invoices {
		lines[i] = DecodeLineItems(inv)
	}
	t := summarize(invoices, damaged, expenses)

	return domain.ReportResult{
		Period:          p.Info(),
		Summary:         t.summary(),
		ChartData:       buildChart(p.Kind, invoices),
		TopProducts:     rankProducts(lines, TopProductLimit),
		DetailedReports: detailedRows(invoices, lines, damaged, expenses, t),
	}
}

func buildChart(kind Kind, invoices []domain.Invoice) []domain.ChartPoint {
	series := newChartSeries(kind)
	for _, inv := range invoices {
		slot, ok := chartSlot(kind, inv)
		if !ok {
			continue
		}
		series.add(slot, inv.Total.Decimal(), InvoiceProfit(inv))
	}
	return series.points()
}

type productTotals struct {
	id       string
	name     string
	quantity decimal.Decimal
	revenue  decimal.Decimal
	profit   decimal.Decimal
}

// TopProducts ranks the products sold across invoices by revenue.
func TopProducts(invoices []domain.Invoice, limit int) []domain.TopProduct {
	lines := make([][]domain.LineItem, len(invoices))
	for i, inv := range invoices {
		lines[i] = DecodeLineItems(inv)
	}
	return rankProducts(lines, limit)
}

func rankProducts(lines [][]domain.LineItem, limit int) []domain.TopProduct {
	byKey := make(map[string]*productTotals)
	ordered := make([]*productTotals, 0, 16)

	for _, items := range lines {
		for _, item := range items {
			key := productKey(item)
			if key == "" {
				continue
			}
			acc := byKey[key]
			if acc == nil {
				acc = &productTotals{
					id:       item.ProductID,
					name:     item.ProductName,
					quantity: decimal.Zero,
					revenue:  decimal.Zero,
					profit:   decimal.Zero,
				}
				byKey[key] = acc
				ordered = append(ordered, acc)
			}
			if acc.name == "" {
				acc.name = item.ProductName
			}
			acc.quantity = acc.quantity.Add(item.Quantity.Decimal())
			acc.revenue = acc.revenue.Add(item.LineTotal.Decimal())
			acc.profit = acc.profit.Add(LineProfit(item))
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].revenue.GreaterThan(ordered[j].revenue)
	})
	if limit > 0 && len(ordered) > limit {
		ordered = ordered[:limit]
	}

	out := make([]domain.TopProduct, 0, len(ordered))
	for _, acc := range ordered {
		profit := ProfitOf(acc.revenue, domain.NumberPtr(acc.profit.InexactFloat64()))
		out = append(out, domain.TopProduct{
			ProductID:    acc.id,
			ProductName:  defaultString(acc.name, acc.id),
			SoldQuantity: acc.quantity.InexactFloat64(),
			Revenue:      money(acc.revenue),
			Profit:       money(profit),
		})
	}
	return out
}

func productKey(item domain.LineItem) string {
	if item.ProductID != "" {
		return "id:" + item.ProductID
	}
	if name := strings.ToLower(strings.TrimSpace(item.ProductName)); name != "" {
		return "name:" + name
	}
	return ""
}

func detailedRows(invoices []domain.Invoice, lines [][]domain.LineItem, damaged []domain.DamagedItem, expenses []domain.Expense, t totals) []domain.DetailedReport {
	rows := make([]domain.DetailedReport, 0, len(invoices)+len(damaged)+4)

	for i, inv := range invoices {
		profit := money(InvoiceProfit(inv))
		rows = append(rows, domain.DetailedReport{
			Type:          domain.RowTypeSale,
			ID:            inv.ID,
			Date:          rowDate(inv),
			Amount:        money(inv.Total.Decimal()),
			Profit:        &profit,
			Customer:      defaultString(inv.CustomerName, inv.CustomerID),
			PaymentMethod: inv.PaymentMethod,
			PaymentStatus: inv.PaymentStatus,
			ItemCount:     len(lines[i]),
		})
	}

	for _, d := range damaged {
		rows = append(rows, domain.DetailedReport{
			Type:        domain.RowTypeDamage,
			ID:          d.ID,
			Date:        rowDate(d),
			Amount:      money(d.ValueLoss.Decimal()),
			ProductID:   d.ProductID,
			ProductName: defaultString(d.ProductName, d.ProductID),
			Quantity:    d.Quantity.Float64(),
		})
	}

	rows = append(rows, domain.DetailedReport{
		Type:   domain.RowTypeSummary,
		Label:  "Total Damages",
		Amount: money(t.damages),
		Count:  t.damageCount,
	})

	type expenseGroup struct {
		label  string
		amount decimal.Decimal
		count  int
	}
	groups := make(map[string]*expenseGroup)
	order := make([]*expenseGroup, 0, 4)
	for _, e := range expenses {
		label := defaultString(e.ExpenseType, "other")
		g := groups[label]
		if g == nil {
			g = &expenseGroup{label: label, amount: decimal.Zero}
			groups[label] = g
			order = append(order, g)
		}
		g.amount = g.amount.Add(e.Amount.Decimal())
		g.count++
	}
	for _, g := range order {
		rows = append(rows, domain.DetailedReport{
			Type:   domain.RowTypeSummary,
			Label:  "Expenses: " + g.label,
			Amount: money(g.amount),
			Count:  g.count,
		})
	}

	return rows
}

func rowDate(r Dated) string {
	day, ok := EffectiveDate(r)
	if !ok {
		return ""
	}
	return day.Format(dateLayout)
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func defaultString(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
