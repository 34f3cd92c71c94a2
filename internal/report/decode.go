package report

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"backoffice/backend/internal/domain"
)

type lineDecoder struct {
	name   string
	decode func(domain.Invoice) ([]domain.LineItem, bool)
}

// lineDecoders are tried in order; the first one whose preconditions hold wins.
var lineDecoders = []lineDecoder{
	{name: "parallel", decode: decodeParallelLists},
	{name: "blob", decode: decodeProductsBlob},
	{name: "embedded", decode: decodeEmbeddedProducts},
}

// DecodeLineItems reconstructs the product lines of an invoice. It never
// fails: an invoice whose lines cannot be recovered yields an empty slice.
func DecodeLineItems(inv domain.Invoice) []domain.LineItem {
	for _, d := range lineDecoders {
		if items, ok := d.decode(inv); ok {
			return items
		}
	}
	return []domain.LineItem{}
}

func decodeParallelLists(inv domain.Invoice) ([]domain.LineItem, bool) {
	ids := splitList(inv.ProductIDs, ",")
	names := splitNames(inv.ProductNames)
	quantities, ok := parseNumbers(splitList(inv.Quantities, ","))
	if !ok {
		return nil, false
	}
	prices, ok := parseNumbers(splitList(inv.Prices, ","))
	if !ok {
		return nil, false
	}

	n := len(ids)
	if n == 0 || len(names) != n || len(quantities) != n || len(prices) != n {
		return nil, false
	}

	discounts := optionalNumbers(inv.Discounts)
	totals := optionalNumbers(inv.Totals)

	items := make([]domain.LineItem, 0, n)
	for i := 0; i < n; i++ {
		item := domain.LineItem{
			ProductID:   ids[i],
			ProductName: names[i],
			Quantity:    quantities[i],
			UnitPrice:   prices[i],
		}
		if i < len(discounts) && discounts[i] != nil {
			item.Discount = *discounts[i]
		}
		if i < len(totals) && totals[i] != nil {
			item.LineTotal = *totals[i]
		} else {
			item.LineTotal = domain.Number(prices[i].Decimal().Mul(quantities[i].Decimal()).InexactFloat64())
		}
		items = append(items, item)
	}
	return items, true
}

func decodeProductsBlob(inv domain.Invoice) ([]domain.LineItem, bool) {
	raw := strings.TrimSpace(inv.ProductsData)
	if raw == "" {
		return nil, false
	}
	var items []domain.LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, false
	}
	if len(items) == 0 {
		return nil, false
	}
	for i := range items {
		if items[i].LineTotal == 0 {
			items[i].LineTotal = domain.Number(items[i].UnitPrice.Decimal().Mul(items[i].Quantity.Decimal()).InexactFloat64())
		}
	}
	return items, true
}

func decodeEmbeddedProducts(inv domain.Invoice) ([]domain.LineItem, bool) {
	if len(inv.Products) == 0 {
		return nil, false
	}
	items := make([]domain.LineItem, len(inv.Products))
	copy(items, inv.Products)
	return items, true
}

func splitList(raw string, sep string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// splitNames prefers "|" so product names may contain commas.
func splitNames(raw string) []string {
	if strings.Contains(raw, "|") {
		return splitList(raw, "|")
	}
	return splitList(raw, ",")
}

func parseNumbers(parts []string) ([]domain.Number, bool) {
	out := make([]domain.Number, 0, len(parts))
	for _, p := range parts {
		v, ok := parseFinite(p)
		if !ok {
			return nil, false
		}
		out = append(out, domain.Number(v))
	}
	return out, true
}

// optionalNumbers parses an optional list; blank or malformed entries are nil.
func optionalNumbers(raw string) []*domain.Number {
	parts := splitList(raw, ",")
	out := make([]*domain.Number, len(parts))
	for i, p := range parts {
		if v, ok := parseFinite(p); ok {
			out[i] = domain.NumberPtr(v)
		}
	}
	return out
}

func parseFinite(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
