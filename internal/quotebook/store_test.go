package quotebook

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/quotebook/internal/entities"
	"github.com/mrlokans/quotebook/internal/storage"
)

func loadedStore(t *testing.T, persistent storage.Store) *Store {
	t.Helper()
	store := NewStore(persistent)
	require.NoError(t, store.Load(context.Background()))
	return store
}

func TestStore_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds and persists defaults when nothing is stored", func(t *testing.T) {
		persistent := storage.NewMemoryStore()
		store := loadedStore(t, persistent)

		assert.Equal(t, entities.SeedQuotes(), store.All())

		raw, err := persistent.Get(ctx, entities.SettingKeyQuotes)
		require.NoError(t, err)
		assert.Contains(t, string(raw), "The journey of a thousand miles")
	})

	t.Run("reads previously stored quotes", func(t *testing.T) {
		persistent := storage.NewMemoryStore()
		require.NoError(t, persistent.Set(ctx, entities.SettingKeyQuotes, []byte(`[{"text":"A","category":"B"}]`)))

		store := loadedStore(t, persistent)
		assert.Equal(t, []entities.Quote{{Text: "A", Category: "B"}}, store.All())
	})

	t.Run("empty stored list stays empty", func(t *testing.T) {
		persistent := storage.NewMemoryStore()
		require.NoError(t, persistent.Set(ctx, entities.SettingKeyQuotes, []byte(`[]`)))

		store := loadedStore(t, persistent)
		assert.Equal(t, 0, store.Len())
	})

	malformed := map[string]string{
		"not json": `{{{`,
		"object":   `{"text":"A","category":"B"}`,
		"null":     `null`,
	}
	for name, raw := range malformed {
		t.Run("falls back to seeds on "+name, func(t *testing.T) {
			persistent := storage.NewMemoryStore()
			require.NoError(t, persistent.Set(ctx, entities.SettingKeyQuotes, []byte(raw)))

			store := loadedStore(t, persistent)
			assert.Equal(t, entities.SeedQuotes(), store.All())
		})
	}

	t.Run("drops invalid entries from a valid list", func(t *testing.T) {
		persistent := storage.NewMemoryStore()
		require.NoError(t, persistent.Set(ctx, entities.SettingKeyQuotes,
			[]byte(`[{"text":"A","category":"B"},{"text":"","category":"B"},{"text":"C"}]`)))

		store := loadedStore(t, persistent)
		assert.Equal(t, []entities.Quote{{Text: "A", Category: "B"}}, store.All())
	})

	t.Run("wrongly typed entry does not discard its neighbours", func(t *testing.T) {
		persistent := storage.NewMemoryStore()
		require.NoError(t, persistent.Set(ctx, entities.SettingKeyQuotes,
			[]byte(`[{"text":5,"category":"x"},{"text":"A","category":"B"},"junk",{"text":"C","category":"D"}]`)))

		store := loadedStore(t, persistent)
		assert.Equal(t, []entities.Quote{{Text: "A", Category: "B"}, {Text: "C", Category: "D"}}, store.All())
	})

	t.Run("propagates storage failures", func(t *testing.T) {
		store := NewStore(&brokenStore{getErr: errors.New("disk on fire")})
		err := store.Load(ctx)
		assert.ErrorContains(t, err, "disk on fire")
	})
}

func TestStore_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("valid input grows the store by one and survives reload", func(t *testing.T) {
		persistent := storage.NewMemoryStore()
		store := loadedStore(t, persistent)

		q, err := store.Add(ctx, "  Stay hungry.  ", " Motivation ")
		require.NoError(t, err)
		assert.Equal(t, entities.Quote{Text: "Stay hungry.", Category: "Motivation"}, q)
		assert.Equal(t, 4, store.Len())

		reloaded := loadedStore(t, persistent)
		assert.Equal(t, store.All(), reloaded.All())
		assert.Equal(t, q, reloaded.All()[3])
	})

	tests := []struct {
		name     string
		text     string
		category string
		fields   []string
	}{
		{"empty text", "", "Life", []string{"text"}},
		{"empty category", "Something", "", []string{"category"}},
		{"whitespace text", "   ", "Life", []string{"text"}},
		{"whitespace category", "Something", "\t\n", []string{"category"}},
		{"both empty", "", " ", []string{"text", "category"}},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			persistent := storage.NewMemoryStore()
			store := loadedStore(t, persistent)

			_, err := store.Add(ctx, tt.text, tt.category)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			var fields []string
			for _, f := range vErr.Fields {
				fields = append(fields, f.Field)
			}
			assert.Equal(t, tt.fields, fields)
			assert.Equal(t, 3, store.Len())
		})
	}

	t.Run("user adds are not deduplicated", func(t *testing.T) {
		store := loadedStore(t, storage.NewMemoryStore())

		_, err := store.Add(ctx, "Twice", "Echo")
		require.NoError(t, err)
		_, err = store.Add(ctx, "Twice", "Echo")
		require.NoError(t, err)

		assert.Equal(t, 5, store.Len())
	})

	t.Run("storage failure leaves the store unchanged", func(t *testing.T) {
		broken := &brokenStore{MemoryStore: storage.NewMemoryStore()}
		store := loadedStore(t, broken)

		broken.setErr = errors.New("read-only")
		_, err := store.Add(ctx, "Lost", "Void")
		assert.ErrorContains(t, err, "read-only")
		assert.Equal(t, 3, store.Len())
	})
}

func TestStore_BulkAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("appends valid entries and skips malformed ones", func(t *testing.T) {
		persistent := storage.NewMemoryStore()
		store := loadedStore(t, persistent)

		result, err := store.BulkAdd(ctx, []entities.Quote{
			{Text: "X", Category: "Y"},
			{Text: "", Category: "Y"},
			{Text: "Z", Category: "  "},
			{Text: "W", Category: "V"},
		})
		require.NoError(t, err)
		assert.Equal(t, BulkResult{Added: 2, Skipped: 2}, result)
		assert.Equal(t, 5, store.Len())

		reloaded := loadedStore(t, persistent)
		assert.Equal(t, store.All(), reloaded.All())
	})

	t.Run("batch with nothing valid does not touch storage", func(t *testing.T) {
		broken := &brokenStore{MemoryStore: storage.NewMemoryStore()}
		store := loadedStore(t, broken)
		broken.setErr = errors.New("should not be called")

		result, err := store.BulkAdd(ctx, []entities.Quote{{}})
		require.NoError(t, err)
		assert.Equal(t, BulkResult{Skipped: 1}, result)
	})

	t.Run("persists once per batch", func(t *testing.T) {
		counting := &countingStore{MemoryStore: storage.NewMemoryStore()}
		store := loadedStore(t, counting)
		counting.sets = 0

		_, err := store.BulkAdd(ctx, []entities.Quote{{Text: "A", Category: "B"}, {Text: "C", Category: "D"}})
		require.NoError(t, err)
		assert.Equal(t, 1, counting.sets)
	})
}

func TestStore_MergeOne(t *testing.T) {
	ctx := context.Background()

	t.Run("is idempotent", func(t *testing.T) {
		store := loadedStore(t, storage.NewMemoryStore())
		q := entities.Quote{Text: "Remote quote", Category: entities.CategoryServer}

		inserted, err := store.MergeOne(ctx, q)
		require.NoError(t, err)
		assert.True(t, inserted)

		inserted, err = store.MergeOne(ctx, q)
		require.NoError(t, err)
		assert.False(t, inserted)

		count := 0
		for _, existing := range store.All() {
			if existing.Equal(q) {
				count++
			}
		}
		assert.Equal(t, 1, count)
		assert.Equal(t, 4, store.Len())
	})

	t.Run("same text in another category is a different quote", func(t *testing.T) {
		store := loadedStore(t, storage.NewMemoryStore())
		seed := entities.SeedQuotes()[0]

		inserted, err := store.MergeOne(ctx, entities.Quote{Text: seed.Text, Category: entities.CategoryServer})
		require.NoError(t, err)
		assert.True(t, inserted)
	})

	t.Run("rejects blank quotes", func(t *testing.T) {
		store := loadedStore(t, storage.NewMemoryStore())

		inserted, err := store.MergeOne(ctx, entities.Quote{Text: " ", Category: entities.CategoryServer})
		assert.ErrorIs(t, err, ErrValidation)
		assert.False(t, inserted)
		assert.Equal(t, 3, store.Len())
	})
}

func TestStore_Filter(t *testing.T) {
	store := loadedStore(t, storage.NewMemoryStore())

	assert.Len(t, store.Filter(entities.CategoryAll), 3)
	assert.Equal(t, []entities.Quote{entities.SeedQuotes()[1]}, store.Filter("Life"))
	assert.Empty(t, store.Filter("Unknown"))
}

func TestStore_AllReturnsCopy(t *testing.T) {
	store := loadedStore(t, storage.NewMemoryStore())

	all := store.All()
	all[0].Text = "mutated"

	assert.NotEqual(t, "mutated", store.All()[0].Text)
}

// brokenStore wraps a MemoryStore and fails on demand.
type brokenStore struct {
	*storage.MemoryStore
	getErr error
	setErr error
}

func (b *brokenStore) Get(ctx context.Context, key string) ([]byte, error) {
	if b.getErr != nil {
		return nil, b.getErr
	}
	return b.MemoryStore.Get(ctx, key)
}

func (b *brokenStore) Set(ctx context.Context, key string, value []byte) error {
	if b.setErr != nil {
		return b.setErr
	}
	return b.MemoryStore.Set(ctx, key, value)
}

type countingStore struct {
	*storage.MemoryStore
	sets int
}

func (c *countingStore) Set(ctx context.Context, key string, value []byte) error {
	c.sets++
	return c.MemoryStore.Set(ctx, key, value)
}
