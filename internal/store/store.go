package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"backoffice/backend/internal/domain"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrMissingID = errors.New("document has no id")
)

const (
	CollectionInvoices     = "invoices"
	CollectionDamagedItems = "damagedItems"
	CollectionExpenses     = "expenses"
	CollectionUsers        = "users"
)

// Collections is a schemaless document store: every backend only has to
// return the raw JSON documents of a collection.
type Collections interface {
	All(ctx context.Context, collection string) ([]json.RawMessage, error)
}

// Documents decodes raw collections into domain records. A document that
// does not decode is skipped and logged rather than failing the whole read.
type Documents struct {
	src    Collections
	logger *zap.Logger
}

func NewDocuments(src Collections, logger *zap.Logger) *Documents {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Documents{src: src, logger: logger}
}

func (d *Documents) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	return decodeAll[domain.Invoice](ctx, d, CollectionInvoices)
}

func (d *Documents) ListDamagedItems(ctx context.Context) ([]domain.DamagedItem, error) {
	return decodeAll[domain.DamagedItem](ctx, d, CollectionDamagedItems)
}

func (d *Documents) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	return decodeAll[domain.Expense](ctx, d, CollectionExpenses)
}

func (d *Documents) ListUsers(ctx context.Context) ([]domain.UserAccount, error) {
	return decodeAll[domain.UserAccount](ctx, d, CollectionUsers)
}

func decodeAll[T any](ctx context.Context, d *Documents, collection string) ([]T, error) {
	docs, err := d.src.All(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}

	out := make([]T, 0, len(docs))
	for i, raw := range docs {
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			d.logger.Warn("skipping undecodable document",
				zap.String("collection", collection),
				zap.Int("index", i),
				zap.Error(err),
			)
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// DocumentID reads the "id" field of a raw document. Numeric ids are kept in
// their JSON spelling.
func DocumentID(raw []byte) (string, error) {
	var head struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return "", fmt.Errorf("read document id: %w", err)
	}
	if len(head.ID) == 0 || string(head.ID) == "null" {
		return "", ErrMissingID
	}
	var id string
	if err := json.Unmarshal(head.ID, &id); err == nil {
		if id == "" {
			return "", ErrMissingID
		}
		return id, nil
	}
	return string(head.ID), nil
}
