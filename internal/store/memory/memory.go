package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"backoffice/backend/internal/domain"
	"backoffice/backend/internal/store"
	"backoffice/backend/internal/xid"
)

// Store keeps every collection as a list of raw JSON documents in insertion
// order.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]json.RawMessage
}

func New() *Store {
	return &Store{collections: make(map[string][]json.RawMessage)}
}

func (s *Store) All(_ context.Context, collection string) ([]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := s.collections[collection]
	out := make([]json.RawMessage, len(docs))
	for i, doc := range docs {
		out[i] = append(json.RawMessage(nil), doc...)
	}
	return out, nil
}

// Put appends a document, marshalling it when it is not already raw JSON.
func (s *Store) Put(collection string, doc any) error {
	var raw json.RawMessage
	switch v := doc.(type) {
	case json.RawMessage:
		raw = append(json.RawMessage(nil), v...)
	case []byte:
		raw = append(json.RawMessage(nil), v...)
	case string:
		raw = json.RawMessage(v)
	default:
		payload, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal %s document: %w", collection, err)
		}
		raw = payload
	}
	if !json.Valid(raw) {
		return fmt.Errorf("%s document is not valid JSON", collection)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = append(s.collections[collection], raw)
	return nil
}

// seedUsers builds the initial user documents for dev/demo mode.
// Credentials are read from SEED_ADMIN_PASSWORD and SEED_CASHIER_PASSWORD
// environment variables. If unset, hardcoded dev defaults are used with a
// warning.
func seedUsers(now time.Time, logger *zap.Logger) []domain.UserAccount {
	adminPwd := envOr("SEED_ADMIN_PASSWORD", "admin123")
	cashierPwd := envOr("SEED_CASHIER_PASSWORD", "cashier123")
	if os.Getenv("SEED_ADMIN_PASSWORD") == "" || os.Getenv("SEED_CASHIER_PASSWORD") == "" {
		logger.Warn("using default dev credentials, set SEED_ADMIN_PASSWORD and SEED_CASHIER_PASSWORD to override")
	}

	users := make([]domain.UserAccount, 0, 2)
	for _, u := range []struct {
		username string
		password string
		role     string
	}{
		{"admin", adminPwd, "admin"},
		{"cashier", cashierPwd, "cashier"},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			panic(fmt.Sprintf("hash seed password for %s: %v", u.username, err))
		}
		users = append(users, domain.UserAccount{
			Username:  u.username,
			Password:  string(hash),
			Role:      u.role,
			Active:    true,
			CreatedAt: now,
		})
	}
	return users
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// NewSeeded returns a store with demo users and a few days of sales around
// today, covering every legacy product encoding.
func NewSeeded(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	now := time.Now().UTC()
	s := New()

	for _, u := range seedUsers(now, logger) {
		mustPut(s, store.CollectionUsers, u)
	}

	date := func(daysAgo int) string {
		return now.AddDate(0, 0, -daysAgo).Format("2006-01-02")
	}
	stamp := func(daysAgo int, hour int) string {
		d := now.AddDate(0, 0, -daysAgo)
		return time.Date(d.Year(), d.Month(), d.Day(), hour, 15, 0, 0, time.UTC).Format(time.RFC3339)
	}

	invoices := []domain.Invoice{
		{
			ID: xid.New("inv"), Date: date(0), CreatedAt: stamp(0, 9),
			Total: 60900, Subtotal: 63900, Discount: 3000, Profit: domain.NumberPtr(11800),
			PaymentMethod: "cash", PaymentStatus: "paid", CustomerName: "Walk-in",
			ProductIDs: "SKU-MIE-01,SKU-TELUR-01,SKU-KOPI-01", ProductNames: "Mie Goreng Instan|Telur 10 Butir|Kopi Sachet",
			Quantities: "4,1,9", Prices: "3500,26500,2600", Discounts: "0,3000,0", Totals: "14000,23500,23400",
		},
		{
			ID: xid.New("inv"), Date: date(0), CreatedAt: stamp(0, 14),
			Total: 36700, Subtotal: 36700, PaymentMethod: "qris", PaymentStatus: "paid",
			CustomerID: "cust-001", CustomerName: "Ibu Sari",
			ProductsData: `[{"productId":"SKU-ROTI-01","productName":"Roti Tawar","quantity":1,"price":17800},` +
				`{"productId":"SKU-SUSU-01","productName":"Susu UHT 1L","quantity":1,"price":18900,"profit":5300}]`,
		},
		{
			ID: xid.New("inv"), Date: date(1), CreatedAt: stamp(1, 18),
			Total: 25600, Subtotal: 25600, Profit: domain.NumberPtr(0), PaymentMethod: "card", PaymentStatus: "unpaid",
			CustomerID: "cust-002", CustomerName: "Pak Budi",
			Products: []domain.LineItem{
				{ProductID: "SKU-KERIPIK-01", ProductName: "Keripik Singkong", Quantity: 2, UnitPrice: 12800, LineTotal: 25600},
			},
		},
		{
			ID: xid.New("inv"), Date: date(8), CreatedAt: stamp(8, 11),
			Total: 17400, Subtotal: 17400, PaymentMethod: "cash", PaymentStatus: "paid",
			ProductIDs: "SKU-GULA-01", ProductNames: "Gula 1kg", Quantities: "1", Prices: "17400",
		},
		{
			ID: xid.New("inv"), Date: date(0), CreatedAt: stamp(0, 16),
			Total: 99000, Subtotal: 99000, PaymentMethod: "cash", PaymentStatus: "paid", IsDeleted: true,
			ProductIDs: "SKU-SABUN-01", ProductNames: "Sabun Mandi", Quantities: "10", Prices: "9900",
		},
	}
	for _, inv := range invoices {
		mustPut(s, store.CollectionInvoices, inv)
	}

	damaged := []domain.DamagedItem{
		{ID: xid.New("dmg"), ProductID: "SKU-TELUR-01", ProductName: "Telur 10 Butir", Quantity: 1, ValueLoss: 26500, Reason: "cracked", Date: date(0)},
		{ID: xid.New("dmg"), ProductID: "SKU-ROTI-01", ProductName: "Roti Tawar", Quantity: 2, ValueLoss: 35600, Reason: "expired", Date: date(3)},
	}
	for _, d := range damaged {
		mustPut(s, store.CollectionDamagedItems, d)
	}

	expenses := []domain.Expense{
		{ID: xid.New("exp"), Amount: 150000, ExpenseType: "utilities", Details: "electricity", Date: date(0)},
		{ID: xid.New("exp"), Amount: 50000, ExpenseType: "supplies", Details: "plastic bags", CreatedAt: stamp(2, 10)},
	}
	for _, e := range expenses {
		mustPut(s, store.CollectionExpenses, e)
	}

	logger.Info("seeded demo data",
		zap.Int("invoices", len(invoices)),
		zap.Int("damagedItems", len(damaged)),
		zap.Int("expenses", len(expenses)),
	)
	return s
}

func mustPut(s *Store, collection string, doc any) {
	if err := s.Put(collection, doc); err != nil {
		panic(fmt.Sprintf("seed %s: %v", collection, err))
	}
}
