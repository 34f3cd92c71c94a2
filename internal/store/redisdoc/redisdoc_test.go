package redisdoc

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/backend/internal/domain"
	"backoffice/backend/internal/store"
)

func TestCollectionKey(t *testing.T) {
	assert.Equal(t, "backoffice:docs:invoices", collectionKey(store.CollectionInvoices))
}

func TestPutRejectsDocumentWithoutID(t *testing.T) {
	s := New("127.0.0.1:0", "", 0)
	t.Cleanup(func() { _ = s.Close() })

	err := s.Put(context.Background(), store.CollectionExpenses, domain.Expense{Amount: 1})
	assert.ErrorIs(t, err, store.ErrMissingID)
}

func TestDocumentsRoundTrip(t *testing.T) {
	addr := os.Getenv("BACKOFFICE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set BACKOFFICE_TEST_REDIS_ADDR to run redis integration test")
	}

	ctx := context.Background()
	s := New(addr, "", 0)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Ping(ctx))

	collection := fmt.Sprintf("it-expenses-%d", time.Now().UnixNano())
	t.Cleanup(func() { _ = s.Drop(ctx, collection) })

	require.NoError(t, s.Put(ctx, collection, domain.Expense{ID: "b", Amount: 2}))
	require.NoError(t, s.Put(ctx, collection, domain.Expense{ID: "a", Amount: 1}))
	require.NoError(t, s.Put(ctx, collection, domain.Expense{ID: "b", Amount: 3}))

	docs, err := s.All(ctx, collection)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	var got []domain.Expense
	for _, raw := range docs {
		var e domain.Expense
		require.NoError(t, json.Unmarshal(raw, &e))
		got = append(got, e)
	}
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, domain.Number(3), got[1].Amount)

	empty, err := s.All(ctx, collection+"-missing")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
