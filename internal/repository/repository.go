package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/juliocesarjcrs/investment-compare/internal/models"
)

const (
	// ComparisonKeyPrefix prefixes every stored comparison record.
	ComparisonKeyPrefix = "comparison:"

	// RecentIndexKey holds the recency index as a JSON array of ids.
	RecentIndexKey = "comparisons:recent"

	// DefaultRecentMax caps the recency index.
	DefaultRecentMax = 10
)

// ComparisonStore persists comparisons in a KVStore and keeps a bounded,
// most-recent-first index of their ids. Every mutation writes the records and
// the index in one KVStore.Update, so concurrent writers, including other
// processes on a shared backend, never lose index entries and a failed write
// leaves neither half behind.
type ComparisonStore struct {
	kv        KVStore
	recentMax int
}

// NewComparisonStore creates a store over kv. A non-positive recentMax uses DefaultRecentMax.
func NewComparisonStore(kv KVStore, recentMax int) *ComparisonStore {
	if recentMax <= 0 {
		recentMax = DefaultRecentMax
	}
	return &ComparisonStore{kv: kv, recentMax: recentMax}
}

func comparisonKey(id string) string {
	return ComparisonKeyPrefix + id
}

// Save writes the comparison and moves its id to the front of the recency index.
func (s *ComparisonStore) Save(ctx context.Context, comparison *models.ComparisonData) error {
	if err := models.ValidateID(comparison.ID); err != nil {
		return err
	}

	payload, err := json.Marshal(comparison)
	if err != nil {
		return fmt.Errorf("failed to encode comparison %s: %w", comparison.ID, err)
	}

	key := comparisonKey(comparison.ID)
	err = s.kv.Update(ctx, RecentIndexKey, func(current []byte, found bool) ([]byte, Batch, error) {
		ids, err := decodeIndex(current, found)
		if err != nil {
			return nil, Batch{}, err
		}
		index, err := encodeIndex(pushFront(ids, comparison.ID, s.recentMax))
		if err != nil {
			return nil, Batch{}, err
		}
		return index, Batch{Sets: map[string][]byte{key: payload}}, nil
	})
	if err != nil {
		return fmt.Errorf("failed to save comparison %s: %w", comparison.ID, err)
	}
	return nil
}

// Get returns the stored comparison or models.ErrNotFound.
func (s *ComparisonStore) Get(ctx context.Context, id string) (*models.ComparisonData, error) {
	if err := models.ValidateID(id); err != nil {
		return nil, err
	}

	payload, found, err := s.kv.Get(ctx, comparisonKey(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get comparison %s: %w", id, err)
	}
	if !found {
		return nil, models.ErrNotFound
	}

	var comparison models.ComparisonData
	if err := json.Unmarshal(payload, &comparison); err != nil {
		return nil, fmt.Errorf("failed to decode comparison %s: %w", id, err)
	}
	return &comparison, nil
}

// ListRecentIDs returns the most recently saved ids, newest first.
func (s *ComparisonStore) ListRecentIDs(ctx context.Context) ([]string, error) {
	payload, found, err := s.kv.Get(ctx, RecentIndexKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read recent index: %w", err)
	}
	ids, err := decodeIndex(payload, found)
	if err != nil {
		return nil, err
	}
	// Normalize in case an older writer left a malformed index behind.
	return dedupe(ids, s.recentMax), nil
}

// Delete removes the comparison and its index entry. Deleting a missing id is not an error.
func (s *ComparisonStore) Delete(ctx context.Context, id string) error {
	if err := models.ValidateID(id); err != nil {
		return err
	}

	err := s.kv.Update(ctx, RecentIndexKey, func(current []byte, found bool) ([]byte, Batch, error) {
		ids, err := decodeIndex(current, found)
		if err != nil {
			return nil, Batch{}, err
		}
		index, err := encodeIndex(remove(ids, id))
		if err != nil {
			return nil, Batch{}, err
		}
		return index, Batch{Deletes: []string{comparisonKey(id)}}, nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete comparison %s: %w", id, err)
	}
	return nil
}

// ClearAll removes every comparison and the recency index, returning how many records were removed.
// Ids saved after the records were listed stay indexed.
func (s *ComparisonStore) ClearAll(ctx context.Context) (int, error) {
	keys, err := s.kv.Keys(ctx, ComparisonKeyPrefix)
	if err != nil {
		return 0, fmt.Errorf("failed to list comparisons: %w", err)
	}

	cleared := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		cleared[key] = struct{}{}
	}

	err = s.kv.Update(ctx, RecentIndexKey, func(current []byte, found bool) ([]byte, Batch, error) {
		ids, err := decodeIndex(current, found)
		if err != nil {
			return nil, Batch{}, err
		}
		remaining := make([]string, 0, len(ids))
		for _, id := range ids {
			if _, ok := cleared[comparisonKey(id)]; !ok {
				remaining = append(remaining, id)
			}
		}
		batch := Batch{Deletes: keys}
		if len(remaining) == 0 {
			return nil, batch, nil
		}
		index, err := encodeIndex(remaining)
		return index, batch, err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to clear comparisons: %w", err)
	}
	return len(keys), nil
}

func decodeIndex(payload []byte, found bool) ([]string, error) {
	if !found {
		return []string{}, nil
	}
	var ids []string
	if err := json.Unmarshal(payload, &ids); err != nil {
		return nil, fmt.Errorf("failed to decode recent index: %w", err)
	}
	return ids, nil
}

func encodeIndex(ids []string) ([]byte, error) {
	payload, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to encode recent index: %w", err)
	}
	return payload, nil
}

func pushFront(ids []string, id string, limit int) []string {
	return dedupe(append([]string{id}, ids...), limit)
}

func remove(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

// dedupe keeps the first occurrence of each id, up to limit entries.
func dedupe(ids []string, limit int) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, min(len(ids), limit))
	for _, id := range ids {
		if len(out) == limit {
			break
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
