// Package redisdoc stores each collection as one Redis hash of id -> JSON body.
package redisdoc

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	redis "github.com/redis/go-redis/v9"

	"backoffice/backend/internal/store"
)

const keyPrefix = "backoffice:docs:"

type Store struct {
	client *redis.Client
}

func New(addr string, password string, db int) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &Store{client: client}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}

func collectionKey(collection string) string {
	return keyPrefix + collection
}

// All returns the documents ordered by id; hashes carry no insertion order.
func (s *Store) All(ctx context.Context, collection string) ([]json.RawMessage, error) {
	fields, err := s.client.HGetAll(ctx, collectionKey(collection)).Result()
	if err == redis.Nil {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(fields))
	for id := range fields {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	docs := make([]json.RawMessage, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, json.RawMessage(fields[id]))
	}
	return docs, nil
}

func (s *Store) Put(ctx context.Context, collection string, doc any) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s document: %w", collection, err)
	}
	id, err := store.DocumentID(payload)
	if err != nil {
		return err
	}
	return s.client.HSet(ctx, collectionKey(collection), id, payload).Err()
}

// Drop removes a whole collection.
func (s *Store) Drop(ctx context.Context, collection string) error {
	return s.client.Del(ctx, collectionKey(collection)).Err()
}
