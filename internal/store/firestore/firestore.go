// Package firestore reads collections straight from Cloud Firestore, which is
// where the legacy back-office records were first written.
package firestore

import (
	"context"
	"encoding/json"
	"fmt"

	gcfirestore "cloud.google.com/go/firestore"
)

type Store struct {
	client *gcfirestore.Client
}

// New connects to the project. FIRESTORE_EMULATOR_HOST is honoured by the
// client library.
func New(ctx context.Context, projectID string) (*Store, error) {
	client, err := gcfirestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) All(ctx context.Context, collection string) ([]json.RawMessage, error) {
	snaps, err := s.client.Collection(collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	docs := make([]json.RawMessage, 0, len(snaps))
	for _, snap := range snaps {
		raw, err := encodeSnapshot(snap.Ref.ID, snap.Data())
		if err != nil {
			return nil, fmt.Errorf("encode %s/%s: %w", collection, snap.Ref.ID, err)
		}
		docs = append(docs, raw)
	}
	return docs, nil
}

// encodeSnapshot turns document fields into JSON, using the document name as
// id when the body has none.
func encodeSnapshot(docID string, data map[string]any) (json.RawMessage, error) {
	if data == nil {
		data = map[string]any{}
	}
	if id, ok := data["id"]; !ok || id == nil || id == "" {
		data["id"] = docID
	}
	return json.Marshal(data)
}

// Put writes the document under its own name.
func (s *Store) Put(ctx context.Context, collection, id string, doc map[string]any) error {
	_, err := s.client.Collection(collection).Doc(id).Set(ctx, doc)
	return err
}
