package quotebook

import (
	"context"

	"github.com/mrlokans/quotebook/internal/storage"
)

// Book bundles the store with its derived views.
type Book struct {
	Store      *Store
	Categories *CategoryIndex
	Selector   *Selector
}

// New builds a Book over the given persistent and session-scoped stores.
// Call Load before use.
func New(persistent, session storage.Store, opts ...SelectorOption) *Book {
	store := NewStore(persistent)
	categories := NewCategoryIndex(store, persistent)
	return &Book{
		Store:      store,
		Categories: categories,
		Selector:   NewSelector(store, categories, session, opts...),
	}
}

// Load reads the quotes from persistent storage.
func (b *Book) Load(ctx context.Context) error {
	return b.Store.Load(ctx)
}
