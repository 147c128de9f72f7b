package quotebook

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/quotebook/internal/entities"
	"github.com/mrlokans/quotebook/internal/storage"
)

func newTestBook(t *testing.T, opts ...SelectorOption) (*Book, *storage.MemoryStore, *storage.MemoryStore) {
	t.Helper()
	persistent := storage.NewMemoryStore()
	session := storage.NewMemoryStore()
	book := New(persistent, session, opts...)
	require.NoError(t, book.Load(context.Background()))
	return book, persistent, session
}

func TestCategoryIndex_Categories(t *testing.T) {
	ctx := context.Background()

	t.Run("seed store", func(t *testing.T) {
		book, _, _ := newTestBook(t)
		assert.Equal(t, []string{"all", "Motivation", "Life", "Programming"}, book.Categories.Categories())
	})

	t.Run("adding to an existing category keeps the list", func(t *testing.T) {
		book, _, _ := newTestBook(t)

		_, err := book.Store.Add(ctx, "Stay hungry.", "Motivation")
		require.NoError(t, err)

		assert.Equal(t, 4, book.Store.Len())
		assert.Equal(t, []string{"all", "Motivation", "Life", "Programming"}, book.Categories.Categories())
	})

	t.Run("new categories appear in first-seen order without duplicates", func(t *testing.T) {
		book, _, _ := newTestBook(t)

		_, err := book.Store.BulkAdd(ctx, []entities.Quote{
			{Text: "1", Category: "Zen"},
			{Text: "2", Category: "Life"},
			{Text: "3", Category: "Art"},
			{Text: "4", Category: "Zen"},
		})
		require.NoError(t, err)

		categories := book.Categories.Categories()
		assert.Equal(t, []string{"all", "Motivation", "Life", "Programming", "Zen", "Art"}, categories)

		counts := map[string]int{}
		for _, c := range categories {
			counts[c]++
		}
		for c, n := range counts {
			assert.Equal(t, 1, n, "category %s listed more than once", c)
		}
	})

	t.Run("empty store still lists all", func(t *testing.T) {
		persistent := storage.NewMemoryStore()
		require.NoError(t, persistent.Set(ctx, entities.SettingKeyQuotes, []byte(`[]`)))
		book := New(persistent, storage.NewMemoryStore())
		require.NoError(t, book.Load(ctx))

		assert.Equal(t, []string{"all"}, book.Categories.Categories())
	})

	t.Run("category literally named all is not listed twice", func(t *testing.T) {
		book, _, _ := newTestBook(t)
		_, err := book.Store.Add(ctx, "Everything", "all")
		require.NoError(t, err)

		categories := book.Categories.Categories()
		assert.Equal(t, "all", categories[0])
		assert.Equal(t, 4, len(categories))
	})
}

func TestCategoryIndex_ActiveCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to all", func(t *testing.T) {
		book, _, _ := newTestBook(t)

		active, err := book.Categories.ActiveCategory(ctx)
		require.NoError(t, err)
		assert.Equal(t, entities.CategoryAll, active)
	})

	t.Run("returns the persisted selection", func(t *testing.T) {
		book, persistent, _ := newTestBook(t)
		require.NoError(t, book.Categories.SelectCategory(ctx, "Life"))

		active, err := book.Categories.ActiveCategory(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Life", active)

		raw, err := persistent.Get(ctx, entities.SettingKeySelectedCategory)
		require.NoError(t, err)
		assert.Equal(t, "Life", string(raw))
	})

	t.Run("falls back to all for unknown categories", func(t *testing.T) {
		book, persistent, _ := newTestBook(t)
		require.NoError(t, persistent.Set(ctx, entities.SettingKeySelectedCategory, []byte("Gone")))

		active, err := book.Categories.ActiveCategory(ctx)
		require.NoError(t, err)
		assert.Equal(t, entities.CategoryAll, active)
	})

	t.Run("blank selection is stored as all", func(t *testing.T) {
		book, persistent, _ := newTestBook(t)
		require.NoError(t, book.Categories.SelectCategory(ctx, "  "))

		raw, err := persistent.Get(ctx, entities.SettingKeySelectedCategory)
		require.NoError(t, err)
		assert.Equal(t, entities.CategoryAll, string(raw))
	})
}
