package quotebook

import (
	"context"
	"strings"

	"github.com/mrlokans/quotebook/internal/entities"
	"github.com/mrlokans/quotebook/internal/storage"
)

// CategoryIndex lists the categories present in the store and tracks the
// user's selected filter.
type CategoryIndex struct {
	store      *Store
	persistent storage.Store
}

func NewCategoryIndex(store *Store, persistent storage.Store) *CategoryIndex {
	return &CategoryIndex{store: store, persistent: persistent}
}

// Categories returns "all" followed by each distinct category in first-seen order.
func (i *CategoryIndex) Categories() []string {
	quotes := i.store.All()

	seen := map[string]struct{}{entities.CategoryAll: {}}
	categories := []string{entities.CategoryAll}
	for _, q := range quotes {
		if _, ok := seen[q.Category]; ok {
			continue
		}
		seen[q.Category] = struct{}{}
		categories = append(categories, q.Category)
	}
	return categories
}

// Has reports whether category is "all" or present in the store.
func (i *CategoryIndex) Has(category string) bool {
	for _, c := range i.Categories() {
		if c == category {
			return true
		}
	}
	return false
}

// ActiveCategory returns the persisted selection, or "all" when nothing was
// selected or the selected category no longer has quotes.
func (i *CategoryIndex) ActiveCategory(ctx context.Context) (string, error) {
	selected, ok, err := storage.GetString(ctx, i.persistent, entities.SettingKeySelectedCategory)
	if err != nil {
		return "", err
	}
	if !ok || !i.Has(selected) {
		return entities.CategoryAll, nil
	}
	return selected, nil
}

// SelectCategory persists the user's filter. Blank selects "all".
func (i *CategoryIndex) SelectCategory(ctx context.Context, category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		category = entities.CategoryAll
	}
	return storage.SetString(ctx, i.persistent, entities.SettingKeySelectedCategory, category)
}
