package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Number is a loosely typed numeric field. Legacy documents store amounts
// either as JSON numbers or as numeric strings; both decode to the same value.
// Empty strings and null decode to zero.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*n = 0
			return nil
		}
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("number %q: %w", raw, err)
		}
		if math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return fmt.Errorf("number %q is not finite", raw)
		}
		*n = Number(parsed)
		return nil
	}
	var parsed float64
	if err := json.Unmarshal(data, &parsed); err != nil {
		return err
	}
	*n = Number(parsed)
	return nil
}

func (n Number) Float64() float64 {
	return float64(n)
}

func (n Number) Decimal() decimal.Decimal {
	return decimal.NewFromFloat(float64(n))
}

// NumberPtr is a convenience for building optional profit fields.
func NumberPtr(v float64) *Number {
	n := Number(v)
	return &n
}

// Invoice is a sale record as stored in the document store. Product lines are
// carried in exactly one of three legacy encodings: parallel delimited lists
// (ProductIDs..Totals), a JSON blob (ProductsData) or a materialized array
// (Products).
type Invoice struct {
	ID            string  `json:"id"`
	Date          string  `json:"date,omitempty"`
	CreatedAt     string  `json:"createdAt,omitempty"`
	Total         Number  `json:"total"`
	Subtotal      Number  `json:"subtotal"`
	Discount      Number  `json:"discount"`
	Profit        *Number `json:"profit,omitempty"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
	PaymentStatus string  `json:"paymentStatus,omitempty"`
	CustomerID    string  `json:"customerId,omitempty"`
	CustomerName  string  `json:"customerName,omitempty"`
	IsDeleted     bool    `json:"isDeleted,omitempty"`

	ProductIDs   string `json:"productIds,omitempty"`
	ProductNames string `json:"productNames,omitempty"`
	Quantities   string `json:"quantities,omitempty"`
	Prices       string `json:"prices,omitempty"`
	Discounts    string `json:"discounts,omitempty"`
	Totals       string `json:"totals,omitempty"`

	ProductsData string     `json:"productsData,omitempty"`
	Products     []LineItem `json:"products,omitempty"`
}

func (i Invoice) DateFields() (string, string) {
	return i.Date, i.CreatedAt
}

// LineItem is one product entry reconstructed from an invoice. It is never
// persisted on its own.
type LineItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    Number  `json:"quantity"`
	UnitPrice   Number  `json:"unitPrice"`
	Discount    Number  `json:"discount"`
	LineTotal   Number  `json:"lineTotal"`
	Profit      *Number `json:"profit,omitempty"`
}

// UnmarshalJSON accepts the field aliases found in older line item payloads.
func (l *LineItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		ProductID   json.RawMessage `json:"productId"`
		ID          json.RawMessage `json:"id"`
		ProductName string          `json:"productName"`
		Name        string          `json:"name"`
		Quantity    *Number         `json:"quantity"`
		Qty         *Number         `json:"qty"`
		UnitPrice   *Number         `json:"unitPrice"`
		Price       *Number         `json:"price"`
		Discount    Number          `json:"discount"`
		LineTotal   *Number         `json:"lineTotal"`
		Total       *Number         `json:"total"`
		Profit      *Number         `json:"profit"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id, err := scalarString(raw.ProductID)
	if err != nil {
		return err
	}
	if id == "" {
		if id, err = scalarString(raw.ID); err != nil {
			return err
		}
	}

	*l = LineItem{
		ProductID:   id,
		ProductName: firstNonEmpty(raw.ProductName, raw.Name),
		Quantity:    firstNumber(raw.Quantity, raw.Qty),
		UnitPrice:   firstNumber(raw.UnitPrice, raw.Price),
		Discount:    raw.Discount,
		LineTotal:   firstNumber(raw.LineTotal, raw.Total),
		Profit:      raw.Profit,
	}
	return nil
}

type DamagedItem struct {
	ID          string `json:"id"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName,omitempty"`
	Quantity    Number `json:"quantity"`
	ValueLoss   Number `json:"valueLoss"`
	Reason      string `json:"reason,omitempty"`
	Date        string `json:"date,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

func (d DamagedItem) DateFields() (string, string) {
	return d.Date, d.CreatedAt
}

type Expense struct {
	ID          string `json:"id"`
	Amount      Number `json:"amount"`
	ExpenseType string `json:"expenseType,omitempty"`
	Details     string `json:"details,omitempty"`
	Date        string `json:"date,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

func (e Expense) DateFields() (string, string) {
	return e.Date, e.CreatedAt
}

type ReportRequest struct {
	Type string `json:"type" validate:"required,oneof=daily weekly monthly yearly"`
	Date string `json:"date"`
}

type ReportPeriodInfo struct {
	Type               string `json:"type"`
	AnchorDate         string `json:"anchorDate"`
	StartDate          string `json:"startDate"`
	EndDate            string `json:"endDate"`
	PreviousAnchorDate string `json:"previousAnchorDate"`
}

type ReportSummary struct {
	TotalSales    float64 `json:"totalSales"`
	TotalProfit   float64 `json:"totalProfit"`
	TotalDamages  float64 `json:"totalDamages"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetProfit     float64 `json:"netProfit"`
	SalesCount    int     `json:"salesCount"`
	DamageCount   int     `json:"damageCount"`
	ExpenseCount  int     `json:"expenseCount"`
	AverageSale   float64 `json:"averageSale"`
	ProfitMargin  float64 `json:"profitMargin"`

	PreviousTotalSales   float64 `json:"previousTotalSales"`
	PreviousTotalProfit  float64 `json:"previousTotalProfit"`
	PreviousTotalDamages float64 `json:"previousTotalDamages"`
	PreviousSalesCount   int     `json:"previousSalesCount"`
	SalesChangePercent   float64 `json:"salesChangePercent"`
	ProfitChangePercent  float64 `json:"profitChangePercent"`
}

type ChartPoint struct {
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

type TopProduct struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	SoldQuantity float64 `json:"soldQuantity"`
	Revenue      float64 `json:"revenue"`
	Profit       float64 `json:"profit"`
}

// DetailedReport is one row of the itemized listing. Type tells which of the
// optional fields are populated.
type DetailedReport struct {
	Type          string   `json:"type"`
	ID            string   `json:"id,omitempty"`
	Date          string   `json:"date,omitempty"`
	Label         string   `json:"label,omitempty"`
	Amount        float64  `json:"amount"`
	Profit        *float64 `json:"profit,omitempty"`
	Customer      string   `json:"customer,omitempty"`
	PaymentMethod string   `json:"paymentMethod,omitempty"`
	PaymentStatus string   `json:"paymentStatus,omitempty"`
	ItemCount     int      `json:"itemCount,omitempty"`
	ProductID     string   `json:"productId,omitempty"`
	ProductName   string   `json:"productName,omitempty"`
	Quantity      float64  `json:"quantity,omitempty"`
	Count         int      `json:"count,omitempty"`
}

type ReportResult struct {
	Period          ReportPeriodInfo `json:"period"`
	Summary         ReportSummary    `json:"summary"`
	ChartData       []ChartPoint     `json:"chartData"`
	TopProducts     []TopProduct     `json:"topProducts"`
	DetailedReports []DetailedReport `json:"detailedReports"`
	GeneratedAt     string           `json:"generatedAt"`
}

const (
	ReportTypeDaily   = "daily"
	ReportTypeWeekly  = "weekly"
	ReportTypeMonthly = "monthly"
	ReportTypeYearly  = "yearly"
)

const (
	RowTypeSale    = "sale"
	RowTypeDamage  = "damage"
	RowTypeSummary = "summary"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	ExpiresAt   string `json:"expires_at"`
}

type Actor struct {
	Username string
	Role     string
}

// UserAccount is the stored credential document of the users collection.
// Password holds a bcrypt hash.
type UserAccount struct {
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

func scalarString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("product id: %w", err)
	}
	return n.String(), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func firstNumber(values ...*Number) Number {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}
