package quotebook

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/quotebook/internal/entities"
	"github.com/mrlokans/quotebook/internal/storage"
)

// fixedRandom always returns idx and counts draws.
type fixedRandom struct {
	idx   int
	calls int
}

func (f *fixedRandom) IntN(n int) int {
	f.calls++
	if f.idx >= n {
		return n - 1
	}
	return f.idx
}

func TestSelector_Pick(t *testing.T) {
	ctx := context.Background()

	t.Run("draws from the filtered view and remembers the index", func(t *testing.T) {
		rnd := &fixedRandom{idx: 1}
		book, _, session := newTestBook(t, WithRandom(rnd.IntN))
		_, err := book.Store.Add(ctx, "Stay hungry.", "Motivation")
		require.NoError(t, err)

		sel, err := book.Selector.Pick(ctx, "Motivation")
		require.NoError(t, err)
		assert.Equal(t, "Stay hungry.", sel.Quote.Text)
		assert.Equal(t, 1, sel.Index)
		assert.Equal(t, "Motivation", sel.Category)
		assert.False(t, sel.Restored)

		raw, err := session.Get(ctx, entities.SessionKeyLastQuoteIndex)
		require.NoError(t, err)
		assert.Equal(t, "1", string(raw))
		raw, err = session.Get(ctx, entities.SessionKeyLastQuoteCategory)
		require.NoError(t, err)
		assert.Equal(t, "Motivation", string(raw))
	})

	t.Run("all uses the whole store", func(t *testing.T) {
		rnd := &fixedRandom{idx: 2}
		book, _, _ := newTestBook(t, WithRandom(rnd.IntN))

		sel, err := book.Selector.Pick(ctx, entities.CategoryAll)
		require.NoError(t, err)
		assert.Equal(t, entities.SeedQuotes()[2], sel.Quote)
	})

	t.Run("empty filter reports no quotes without drawing", func(t *testing.T) {
		rnd := &fixedRandom{}
		persistent := storage.NewMemoryStore()
		require.NoError(t, persistent.Set(ctx, entities.SettingKeyQuotes, []byte(`[{"text":"A","category":"Life"}]`)))
		book := New(persistent, storage.NewMemoryStore(), WithRandom(rnd.IntN))
		require.NoError(t, book.Load(ctx))

		_, err := book.Selector.Pick(ctx, "Motivation")
		assert.ErrorIs(t, err, ErrNoQuotesAvailable)
		assert.Equal(t, 0, rnd.calls)
	})

	t.Run("default random source stays in range", func(t *testing.T) {
		book, _, _ := newTestBook(t)
		for i := 0; i < 50; i++ {
			sel, err := book.Selector.Pick(ctx, entities.CategoryAll)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, sel.Index, 0)
			assert.Less(t, sel.Index, 3)
		}
	})
}

func TestSelector_RestoreOrPick(t *testing.T) {
	ctx := context.Background()

	t.Run("restores the last shown quote within the session", func(t *testing.T) {
		rnd := &fixedRandom{idx: 2}
		book, _, _ := newTestBook(t, WithRandom(rnd.IntN))

		first, err := book.Selector.Pick(ctx, entities.CategoryAll)
		require.NoError(t, err)

		restored, err := book.Selector.RestoreOrPick(ctx)
		require.NoError(t, err)
		assert.True(t, restored.Restored)
		assert.Equal(t, first.Quote, restored.Quote)
		assert.Equal(t, 1, rnd.calls)
	})

	t.Run("picks when the session has nothing", func(t *testing.T) {
		rnd := &fixedRandom{idx: 0}
		book, _, _ := newTestBook(t, WithRandom(rnd.IntN))

		sel, err := book.Selector.RestoreOrPick(ctx)
		require.NoError(t, err)
		assert.False(t, sel.Restored)
		assert.Equal(t, 1, rnd.calls)
	})

	t.Run("stale index under a narrower filter triggers a new pick", func(t *testing.T) {
		rnd := &fixedRandom{idx: 2}
		book, _, _ := newTestBook(t, WithRandom(rnd.IntN))

		_, err := book.Selector.Pick(ctx, entities.CategoryAll)
		require.NoError(t, err)
		require.NoError(t, book.Categories.SelectCategory(ctx, "Life"))

		sel, err := book.Selector.RestoreOrPick(ctx)
		require.NoError(t, err)
		assert.False(t, sel.Restored)
		assert.Equal(t, "Life", sel.Category)
		assert.Equal(t, entities.SeedQuotes()[1], sel.Quote)
	})

	t.Run("index drawn under another filter is not restored", func(t *testing.T) {
		rnd := &fixedRandom{idx: 0}
		book, _, _ := newTestBook(t, WithRandom(rnd.IntN))

		shown, err := book.Selector.Pick(ctx, "Life")
		require.NoError(t, err)
		require.Equal(t, entities.SeedQuotes()[1], shown.Quote)

		sel, err := book.Selector.RestoreOrPick(ctx)
		require.NoError(t, err)
		assert.False(t, sel.Restored)
		assert.Equal(t, entities.CategoryAll, sel.Category)
		assert.Equal(t, 2, rnd.calls)
	})

	t.Run("index without a recorded category triggers a new pick", func(t *testing.T) {
		rnd := &fixedRandom{idx: 0}
		book, _, session := newTestBook(t, WithRandom(rnd.IntN))
		require.NoError(t, session.Set(ctx, entities.SessionKeyLastQuoteIndex, []byte("2")))

		sel, err := book.Selector.RestoreOrPick(ctx)
		require.NoError(t, err)
		assert.False(t, sel.Restored)
		assert.Equal(t, entities.SeedQuotes()[0], sel.Quote)
	})

	t.Run("garbage index triggers a new pick", func(t *testing.T) {
		book, _, session := newTestBook(t)
		require.NoError(t, session.Set(ctx, entities.SessionKeyLastQuoteIndex, []byte("abc")))
		require.NoError(t, session.Set(ctx, entities.SessionKeyLastQuoteCategory, []byte(entities.CategoryAll)))

		sel, err := book.Selector.RestoreOrPick(ctx)
		require.NoError(t, err)
		assert.False(t, sel.Restored)
	})
}

func TestSelection_Render(t *testing.T) {
	sel := Selection{Quote: entities.Quote{Text: "Stay hungry.", Category: "Motivation"}}
	assert.Equal(t, `"Stay hungry." — Motivation`, sel.Render())
}
