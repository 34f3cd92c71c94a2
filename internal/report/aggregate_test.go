package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/backend/internal/domain"
)

func TestChartDataKeepsFixedSlotCount(t *testing.T) {
	cases := map[Kind]int{Daily: 6, Weekly: 7, Monthly: 5, Yearly: 12}
	for kind, slots := range cases {
		p := Period{Kind: kind, Anchor: day("2024-05-15")}
		result := Aggregate(p, nil, nil, nil)
		require.Len(t, result.ChartData, slots, kind)
		for _, point := range result.ChartData {
			assert.Zero(t, point.Revenue)
			assert.Zero(t, point.Profit)
		}
	}
}

func TestChartDataPlacesInvoicesInSlots(t *testing.T) {
	weekly := Period{Kind: Weekly, Anchor: day("2024-01-17")}
	invoices := []domain.Invoice{
		{ID: "sun", Date: "2024-01-14", Total: 100, Profit: domain.NumberPtr(10)},
		{ID: "wed", Date: "2024-01-17", Total: 50},
		{ID: "wed2", Date: "2024-01-17", Total: 30, Profit: domain.NumberPtr(6)},
	}
	chart := Aggregate(weekly, invoices, nil, nil).ChartData
	assert.Equal(t, "Sun", chart[0].Label)
	assert.Equal(t, 100.0, chart[0].Revenue)
	assert.Equal(t, 10.0, chart[0].Profit)
	assert.Equal(t, "Wed", chart[3].Label)
	assert.Equal(t, 80.0, chart[3].Revenue)
	assert.Equal(t, 21.0, chart[3].Profit)

	daily := Period{Kind: Daily, Anchor: day("2024-01-17")}
	chart = Aggregate(daily, []domain.Invoice{
		{Date: "2024-01-17", CreatedAt: "2024-01-17T13:45:00+07:00", Total: 40},
		{Date: "2024-01-17", Total: 10},
	}, nil, nil).ChartData
	assert.Equal(t, 10.0, chart[0].Revenue)
	assert.Equal(t, "12:00", chart[3].Label)
	assert.Equal(t, 40.0, chart[3].Revenue)

	monthly := Period{Kind: Monthly, Anchor: day("2024-01-01")}
	chart = Aggregate(monthly, []domain.Invoice{{Date: "2024-01-31", Total: 5}}, nil, nil).ChartData
	assert.Equal(t, "Week 5", chart[4].Label)
	assert.Equal(t, 5.0, chart[4].Revenue)
}

func TestSummaryTotals(t *testing.T) {
	p := Period{Kind: Monthly, Anchor: day("2024-01-01")}
	invoices := []domain.Invoice{
		{Date: "2024-01-02", Total: 100, Profit: domain.NumberPtr(20)},
		{Date: "2024-01-03", Total: 200, Profit: domain.NumberPtr(0)},
	}
	damaged := []domain.DamagedItem{{Date: "2024-01-05", ValueLoss: 12.5}}
	expenses := []domain.Expense{{Date: "2024-01-06", Amount: 7.5, ExpenseType: "utilities"}}

	s := Aggregate(p, invoices, damaged, expenses).Summary
	assert.Equal(t, 300.0, s.TotalSales)
	assert.Equal(t, 80.0, s.TotalProfit)
	assert.Equal(t, 12.5, s.TotalDamages)
	assert.Equal(t, 7.5, s.TotalExpenses)
	assert.Equal(t, 60.0, s.NetProfit)
	assert.Equal(t, 2, s.SalesCount)
	assert.Equal(t, 150.0, s.AverageSale)
	assert.Equal(t, 26.67, s.ProfitMargin)
}

func TestTopProductsRanksByRevenueStable(t *testing.T) {
	invoices := []domain.Invoice{
		{ProductIDs: "a,b,c", ProductNames: "A|B|C", Quantities: "1,1,1", Prices: "10,30,10"},
		{ProductsData: `[{"productId":"d","productName":"D","quantity":1,"price":50,"profit":20},
			{"productId":"a","productName":"A","quantity":2,"price":10}]`},
		{Products: []domain.LineItem{
			{ProductID: "e", ProductName: "E", Quantity: 1, LineTotal: 10},
			{ProductID: "f", ProductName: "F", Quantity: 1, LineTotal: 1},
		}},
	}

	top := TopProducts(invoices, TopProductLimit)
	require.Len(t, top, 5)

	ids := make([]string, 0, len(top))
	for _, p := range top {
		ids = append(ids, p.ProductID)
	}
	// c and e tie on revenue and keep their encounter order.
	assert.Equal(t, []string{"d", "a", "b", "c", "e"}, ids)

	assert.Equal(t, 50.0, top[0].Revenue)
	assert.Equal(t, 20.0, top[0].Profit)
	assert.Equal(t, 3.0, top[1].SoldQuantity)
	assert.Equal(t, 30.0, top[1].Revenue)
	assert.Equal(t, 9.0, top[1].Profit)
}

func TestTopProductsFallsBackToNameKey(t *testing.T) {
	invoices := []domain.Invoice{
		{Products: []domain.LineItem{{ProductName: "Es Teh", Quantity: 2, LineTotal: 8}}},
		{Products: []domain.LineItem{{ProductName: "es teh", Quantity: 1, LineTotal: 4}}},
		{Products: []domain.LineItem{{Quantity: 1, LineTotal: 100}}},
	}
	top := TopProducts(invoices, TopProductLimit)
	require.Len(t, top, 1)
	assert.Equal(t, "Es Teh", top[0].ProductName)
	assert.Equal(t, 12.0, top[0].Revenue)
}

func TestDetailedReportsRowShapes(t *testing.T) {
	p := Period{Kind: Daily, Anchor: day("2024-01-15")}
	invoices := []domain.Invoice{{
		ID: "inv-1", Date: "2024-01-15", Total: 100, CustomerName: "Budi",
		PaymentMethod: "cash", PaymentStatus: "paid",
		ProductIDs: "a", ProductNames: "A", Quantities: "1", Prices: "100",
	}}
	damaged := []domain.DamagedItem{{ID: "dmg-1", Date: "2024-01-15", ProductID: "a", Quantity: 2, ValueLoss: 15}}
	expenses := []domain.Expense{
		{Date: "2024-01-15", Amount: 10, ExpenseType: "rent"},
		{Date: "2024-01-15", Amount: 5},
		{Date: "2024-01-15", Amount: 2, ExpenseType: "rent"},
	}

	rows := Aggregate(p, invoices, damaged, expenses).DetailedReports
	require.Len(t, rows, 5)

	sale := rows[0]
	assert.Equal(t, domain.RowTypeSale, sale.Type)
	assert.Equal(t, "Budi", sale.Customer)
	assert.Equal(t, "paid", sale.PaymentStatus)
	assert.Equal(t, 1, sale.ItemCount)
	require.NotNil(t, sale.Profit)
	assert.Equal(t, 30.0, *sale.Profit)

	dmg := rows[1]
	assert.Equal(t, domain.RowTypeDamage, dmg.Type)
	assert.Equal(t, "a", dmg.ProductName)
	assert.Equal(t, 2.0, dmg.Quantity)
	assert.Equal(t, 15.0, dmg.Amount)

	assert.Equal(t, domain.DetailedReport{Type: domain.RowTypeSummary, Label: "Total Damages", Amount: 15, Count: 1}, rows[2])
	assert.Equal(t, domain.DetailedReport{Type: domain.RowTypeSummary, Label: "Expenses: rent", Amount: 12, Count: 2}, rows[3])
	assert.Equal(t, domain.DetailedReport{Type: domain.RowTypeSummary, Label: "Expenses: other", Amount: 5, Count: 1}, rows[4])
}
