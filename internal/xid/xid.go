// Package xid issues document ids. Ids are UUIDv7, so sorting them by string
// follows creation time, which the hash-backed store relies on for ordering.
package xid

import (
	"fmt"

	"github.com/google/uuid"
)

func New(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	if prefix == "" {
		return id.String()
	}
	return fmt.Sprintf("%s-%s", prefix, id)
}
