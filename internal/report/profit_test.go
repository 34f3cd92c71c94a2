package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"backoffice/backend/internal/domain"
)

func TestProfitOfFallsBackToEstimatedMargin(t *testing.T) {
	sale := decimal.NewFromInt(200)

	assert.Equal(t, 60.0, ProfitOf(sale, nil).InexactFloat64())
	assert.Equal(t, 60.0, ProfitOf(sale, domain.NumberPtr(0)).InexactFloat64())
	assert.Equal(t, 42.5, ProfitOf(sale, domain.NumberPtr(42.5)).InexactFloat64())
	assert.Equal(t, -3.0, ProfitOf(sale, domain.NumberPtr(-3)).InexactFloat64())
}

func TestProfitOfIsDeterministic(t *testing.T) {
	item := domain.LineItem{LineTotal: 33.3}
	first := LineProfit(item)
	second := LineProfit(item)
	assert.True(t, first.Equal(second))
	assert.Equal(t, 9.99, first.InexactFloat64())
}

func TestInvoiceProfitUsesTotal(t *testing.T) {
	inv := domain.Invoice{Total: 200, Subtotal: 250, Profit: domain.NumberPtr(0)}
	assert.Equal(t, 60.0, InvoiceProfit(inv).InexactFloat64())
}
