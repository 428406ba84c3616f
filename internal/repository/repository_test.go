package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/juliocesarjcrs/investment-compare/internal/models"
)

// MockKVStore is a testify mock of KVStore.
type MockKVStore struct {
	mock.Mock
}

func (m *MockKVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	value, _ := args.Get(0).([]byte)
	return value, args.Bool(1), args.Error(2)
}

func (m *MockKVStore) Set(ctx context.Context, key string, value []byte) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *MockKVStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockKVStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(ctx, prefix)
	keys, _ := args.Get(0).([]string)
	return keys, args.Error(1)
}

// Update reads the current value through the "Update" expectation, runs fn
// and hands its result to the "Commit" expectation.
func (m *MockKVStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	args := m.Called(ctx, key)
	current, _ := args.Get(0).([]byte)
	if err := args.Error(2); err != nil {
		return err
	}
	value, batch, err := fn(current, args.Bool(1))
	if err != nil {
		return err
	}
	return m.MethodCalled("Commit", ctx, key, value, batch).Error(0)
}

// latencyKV slows every read and write so interleaved writers overlap.
type latencyKV struct {
	*MemoryKV
	delay time.Duration
}

func (l *latencyKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	time.Sleep(l.delay)
	return l.MemoryKV.Get(ctx, key)
}

func (l *latencyKV) Set(ctx context.Context, key string, value []byte) error {
	time.Sleep(l.delay)
	return l.MemoryKV.Set(ctx, key, value)
}

func (l *latencyKV) Update(ctx context.Context, key string, fn UpdateFunc) error {
	return l.MemoryKV.Update(ctx, key, func(current []byte, found bool) ([]byte, Batch, error) {
		time.Sleep(l.delay)
		return fn(current, found)
	})
}

func sampleComparison(id string) *models.ComparisonData {
	savings := models.SavingsConfig{
		Mode:             models.SavingsModeRecurring,
		InitialCapital:   10000000,
		AnnualRate:       8.25,
		HorizonMonths:    12,
		ApplyWithholding: true,
	}
	existing := models.ExistingPropertyConfig{
		CurrentValue:        300000000,
		MonthlyRent:         2000000,
		MonthsRentedPerYear: 12,
		HorizonYears:        5,
		CompareWithSale:     true,
		CDTRate:             9,
	}
	return &models.ComparisonData{
		ID:   id,
		Name: "Apartamento vs CDT",
		UserProfile: models.UserProfile{
			RiskProfile: models.RiskModerate,
			Priorities:  []models.Priority{models.PriorityCashFlow, models.PrioritySecurity},
			TimeHorizon: models.HorizonMedium,
		},
		Scenarios: models.Scenarios{Savings: &savings, ExistingProperty: &existing},
		CreatedAt: time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC),
	}
}

func TestComparisonStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewComparisonStore(NewMemoryKV(), 0)
	original := sampleComparison("cmp-1")

	require.NoError(t, store.Save(ctx, original))

	loaded, err := store.Get(ctx, "cmp-1")
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestComparisonStoreGetMissing(t *testing.T) {
	store := NewComparisonStore(NewMemoryKV(), 0)

	loaded, err := store.Get(context.Background(), "missing")

	assert.Nil(t, loaded)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestComparisonStoreRejectsInvalidID(t *testing.T) {
	ctx := context.Background()
	store := NewComparisonStore(NewMemoryKV(), 0)

	assert.ErrorIs(t, store.Save(ctx, sampleComparison("")), models.ErrInvalidID)
	_, err := store.Get(ctx, "  ")
	assert.ErrorIs(t, err, models.ErrInvalidID)
	assert.ErrorIs(t, store.Delete(ctx, ""), models.ErrInvalidID)
}

func TestComparisonStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewComparisonStore(NewMemoryKV(), 0)
	require.NoError(t, store.Save(ctx, sampleComparison("cmp-1")))
	require.NoError(t, store.Save(ctx, sampleComparison("cmp-2")))

	require.NoError(t, store.Delete(ctx, "cmp-1"))

	_, err := store.Get(ctx, "cmp-1")
	assert.ErrorIs(t, err, models.ErrNotFound)
	ids, err := store.ListRecentIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"cmp-2"}, ids)

	assert.NoError(t, store.Delete(ctx, "cmp-1"), "deleting twice is not an error")
}

func TestComparisonStoreRecentIDs(t *testing.T) {
	ctx := context.Background()
	store := NewComparisonStore(NewMemoryKV(), 0)

	for i := 0; i < 15; i++ {
		require.NoError(t, store.Save(ctx, sampleComparison(fmt.Sprintf("cmp-%02d", i))))
	}
	// re-saving moves an id to the front instead of duplicating it
	require.NoError(t, store.Save(ctx, sampleComparison("cmp-10")))

	ids, err := store.ListRecentIDs(ctx)
	require.NoError(t, err)
	require.Len(t, ids, DefaultRecentMax)
	assert.Equal(t, "cmp-10", ids[0])
	assert.Equal(t, "cmp-14", ids[1])
	assert.ElementsMatch(t, ids, dedupe(ids, len(ids)), "ids must be unique")
}

func TestComparisonStoreRecentIDsEmpty(t *testing.T) {
	ids, err := NewComparisonStore(NewMemoryKV(), 0).ListRecentIDs(context.Background())

	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestComparisonStoreClearAll(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	store := NewComparisonStore(kv, 0)
	require.NoError(t, store.Save(ctx, sampleComparison("cmp-1")))
	require.NoError(t, store.Save(ctx, sampleComparison("cmp-2")))
	require.NoError(t, kv.Set(ctx, "unrelated", []byte(`"keep"`)))

	removed, err := store.ClearAll(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	ids, err := store.ListRecentIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
	_, found, err := kv.Get(ctx, "unrelated")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestComparisonStoreConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	store := NewComparisonStore(NewMemoryKV(), 100)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, store.Save(ctx, sampleComparison(fmt.Sprintf("cmp-%d", i))))
		}(i)
	}
	wg.Wait()

	ids, err := store.ListRecentIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 50)
}

func TestComparisonStoreWritersSharingBackend(t *testing.T) {
	ctx := context.Background()
	kv := &latencyKV{MemoryKV: NewMemoryKV(), delay: time.Millisecond}
	stores := []*ComparisonStore{NewComparisonStore(kv, 100), NewComparisonStore(kv, 100)}

	var wg sync.WaitGroup
	for s, store := range stores {
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(store *ComparisonStore, id string) {
				defer wg.Done()
				assert.NoError(t, store.Save(ctx, sampleComparison(id)))
			}(store, fmt.Sprintf("cmp-%d-%d", s, i))
		}
	}
	wg.Wait()

	ids, err := stores[0].ListRecentIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 100)
	keys, err := kv.Keys(ctx, ComparisonKeyPrefix)
	require.NoError(t, err)
	assert.Len(t, keys, 100)
	for _, id := range ids {
		_, err := stores[1].Get(ctx, id)
		assert.NoError(t, err, id)
	}
}

func TestComparisonStoreClearAllKeepsConcurrentSave(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	store := NewComparisonStore(kv, 0)
	require.NoError(t, store.Save(ctx, sampleComparison("cmp-1")))

	// cmp-2 lands between listing the records and committing the clear.
	racing := &racingSaveKV{MemoryKV: kv, store: NewComparisonStore(kv, 0), id: "cmp-2"}
	removed, err := NewComparisonStore(racing, 0).ClearAll(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	ids, err := store.ListRecentIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"cmp-2"}, ids)
	_, err = store.Get(ctx, "cmp-2")
	assert.NoError(t, err)
}

// racingSaveKV saves one comparison right after the first Keys call.
type racingSaveKV struct {
	*MemoryKV
	store *ComparisonStore
	id    string
	once  sync.Once
}

func (r *racingSaveKV) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys, err := r.MemoryKV.Keys(ctx, prefix)
	r.once.Do(func() {
		err = errors.Join(err, r.store.Save(ctx, sampleComparison(r.id)))
	})
	return keys, err
}

func TestComparisonStorePropagatesStorageErrors(t *testing.T) {
	ctx := context.Background()
	storageErr := errors.New("connection reset")

	t.Run("save read", func(t *testing.T) {
		kv := new(MockKVStore)
		kv.On("Update", ctx, RecentIndexKey).Return(nil, false, storageErr)

		err := NewComparisonStore(kv, 0).Save(ctx, sampleComparison("cmp-1"))

		assert.ErrorIs(t, err, storageErr)
		kv.AssertExpectations(t)
	})

	t.Run("save commit", func(t *testing.T) {
		kv := new(MockKVStore)
		kv.On("Update", ctx, RecentIndexKey).Return([]byte(`["cmp-0"]`), true, nil)
		kv.On("Commit", ctx, RecentIndexKey, []byte(`["cmp-1","cmp-0"]`), mock.MatchedBy(func(b Batch) bool {
			_, ok := b.Sets["comparison:cmp-1"]
			return ok && len(b.Sets) == 1 && len(b.Deletes) == 0
		})).Return(storageErr)

		err := NewComparisonStore(kv, 0).Save(ctx, sampleComparison("cmp-1"))

		assert.ErrorIs(t, err, storageErr)
		kv.AssertExpectations(t)
		kv.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("save malformed index", func(t *testing.T) {
		kv := new(MockKVStore)
		kv.On("Update", ctx, RecentIndexKey).Return([]byte(`{`), true, nil)

		err := NewComparisonStore(kv, 0).Save(ctx, sampleComparison("cmp-1"))

		assert.ErrorContains(t, err, "failed to decode recent index")
		kv.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("delete commit", func(t *testing.T) {
		kv := new(MockKVStore)
		kv.On("Update", ctx, RecentIndexKey).Return([]byte(`["cmp-1","cmp-0"]`), true, nil)
		kv.On("Commit", ctx, RecentIndexKey, []byte(`["cmp-0"]`),
			Batch{Deletes: []string{"comparison:cmp-1"}}).Return(storageErr)

		err := NewComparisonStore(kv, 0).Delete(ctx, "cmp-1")

		assert.ErrorIs(t, err, storageErr)
		kv.AssertExpectations(t)
	})

	t.Run("get", func(t *testing.T) {
		kv := new(MockKVStore)
		kv.On("Get", ctx, "comparison:cmp-1").Return(nil, false, storageErr)

		_, err := NewComparisonStore(kv, 0).Get(ctx, "cmp-1")

		assert.ErrorIs(t, err, storageErr)
		assert.NotErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("list", func(t *testing.T) {
		kv := new(MockKVStore)
		kv.On("Get", ctx, RecentIndexKey).Return(nil, false, storageErr)

		_, err := NewComparisonStore(kv, 0).ListRecentIDs(ctx)

		assert.ErrorIs(t, err, storageErr)
	})

	t.Run("clear", func(t *testing.T) {
		kv := new(MockKVStore)
		kv.On("Keys", ctx, ComparisonKeyPrefix).Return([]string{"comparison:a", "comparison:b"}, nil)
		kv.On("Update", ctx, RecentIndexKey).Return([]byte(`["b","a"]`), true, nil)
		kv.On("Commit", ctx, RecentIndexKey, []byte(nil),
			Batch{Deletes: []string{"comparison:a", "comparison:b"}}).Return(storageErr)

		removed, err := NewComparisonStore(kv, 0).ClearAll(ctx)

		assert.ErrorIs(t, err, storageErr)
		assert.Zero(t, removed)
		kv.AssertExpectations(t)
		kv.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestComparisonStoreFailedSaveLeavesNothing(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	store := NewComparisonStore(kv, 0)
	require.NoError(t, kv.Set(ctx, RecentIndexKey, []byte(`not json`)))

	err := store.Save(ctx, sampleComparison("cmp-1"))

	require.Error(t, err)
	_, found, err := kv.Get(ctx, comparisonKey("cmp-1"))
	require.NoError(t, err)
	assert.False(t, found, "record must not outlive a failed index write")
}

func TestComparisonStoreNormalizesMalformedIndex(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, RecentIndexKey, []byte(`["a","b","a","c"]`)))

	ids, err := NewComparisonStore(kv, 2).ListRecentIDs(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestDedupe(t *testing.T) {
	tests := []struct {
		name  string
		ids   []string
		limit int
		want  []string
	}{
		{"empty", nil, 10, []string{}},
		{"keeps first occurrence", []string{"a", "b", "a"}, 10, []string{"a", "b"}},
		{"caps", []string{"a", "b", "c"}, 2, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dedupe(tt.ids, tt.limit))
		})
	}
}
