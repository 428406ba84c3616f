package repository

import (
	"context"

	"github.com/juliocesarjcrs/investment-compare/internal/models"
)

// Batch lists the writes applied in the same atomic step as an Update.
type Batch struct {
	Sets    map[string][]byte
	Deletes []string
}

// UpdateFunc receives the current value of the updated key and returns its
// new value plus the batch to apply with it. A nil value deletes the key.
// It may run more than once when a backend retries a conflicting update.
type UpdateFunc func(current []byte, found bool) ([]byte, Batch, error)

// KVStore is the minimal key-value contract the comparison store needs.
// Get reports a missing key with found == false and a nil error.
// Update serializes read-modify-write cycles on a key across every client of
// the backend, including other processes sharing it.
type KVStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	Update(ctx context.Context, key string, fn UpdateFunc) error
}

// ComparisonRepository defines the interface for saved comparison access
type ComparisonRepository interface {
	Save(ctx context.Context, comparison *models.ComparisonData) error
	Get(ctx context.Context, id string) (*models.ComparisonData, error)
	ListRecentIDs(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id string) error
	ClearAll(ctx context.Context) (int, error)
}
