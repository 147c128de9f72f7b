package quotebook

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/mrlokans/quotebook/internal/entities"
	"github.com/mrlokans/quotebook/internal/storage"
)

// NoQuotesMessage is shown instead of a quote when the filtered view is empty.
const NoQuotesMessage = "No quotes available for this category."

// Selection is a quote chosen for display.
type Selection struct {
	Quote    entities.Quote `json:"quote"`
	Index    int            `json:"index"`    // Position within the filtered view
	Category string         `json:"category"` // Filter the index refers to
	Restored bool           `json:"restored"` // Taken from the session instead of drawn
}

// Render formats the selection the way the page displays it.
func (s Selection) Render() string {
	return fmt.Sprintf("\"%s\" — %s", s.Quote.Text, s.Quote.Category)
}

// Selector draws random quotes and remembers the last one per session.
type Selector struct {
	store      *Store
	categories *CategoryIndex
	session    storage.Store
	intn       func(n int) int
}

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

// WithRandom replaces the random source; intn must return a value in [0, n).
func WithRandom(intn func(n int) int) SelectorOption {
	return func(s *Selector) {
		s.intn = intn
	}
}

func NewSelector(store *Store, categories *CategoryIndex, session storage.Store, opts ...SelectorOption) *Selector {
	s := &Selector{
		store:      store,
		categories: categories,
		session:    session,
		intn:       rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pick draws a quote uniformly at random from category and records its index
// and category in the session. Returns ErrNoQuotesAvailable without drawing when the
// filtered view is empty.
func (s *Selector) Pick(ctx context.Context, category string) (Selection, error) {
	if category == "" {
		category = entities.CategoryAll
	}

	working := s.store.Filter(category)
	if len(working) == 0 {
		return Selection{Category: category}, ErrNoQuotesAvailable
	}

	idx := s.intn(len(working))
	if err := storage.SetString(ctx, s.session, entities.SessionKeyLastQuoteIndex, strconv.Itoa(idx)); err != nil {
		return Selection{}, fmt.Errorf("remember last quote: %w", err)
	}
	if err := storage.SetString(ctx, s.session, entities.SessionKeyLastQuoteCategory, category); err != nil {
		return Selection{}, fmt.Errorf("remember last quote: %w", err)
	}

	return Selection{
		Quote:    working[idx],
		Index:    idx,
		Category: category,
	}, nil
}

// RestoreOrPick shows the session's last quote again when it was drawn under
// the active category and its index is still valid there, and draws a new one
// otherwise.
func (s *Selector) RestoreOrPick(ctx context.Context) (Selection, error) {
	category, err := s.categories.ActiveCategory(ctx)
	if err != nil {
		return Selection{}, err
	}

	if sel, ok, err := s.restore(ctx, category); err != nil || ok {
		return sel, err
	}
	return s.Pick(ctx, category)
}

func (s *Selector) restore(ctx context.Context, category string) (Selection, bool, error) {
	raw, ok, err := storage.GetString(ctx, s.session, entities.SessionKeyLastQuoteIndex)
	if err != nil || !ok {
		return Selection{}, false, err
	}
	shownUnder, ok, err := storage.GetString(ctx, s.session, entities.SessionKeyLastQuoteCategory)
	if err != nil {
		return Selection{}, false, err
	}
	if !ok || shownUnder != category {
		log.Debugf("Last quote was shown under %q, active category is %s", shownUnder, category)
		return Selection{}, false, nil
	}

	working := s.store.Filter(category)
	idx, convErr := strconv.Atoi(raw)
	if convErr != nil || idx < 0 || idx >= len(working) {
		log.Debugf("Discarding stale last quote index %q for category %s", raw, category)
		return Selection{}, false, nil
	}
	return Selection{
		Quote:    working[idx],
		Index:    idx,
		Category: category,
		Restored: true,
	}, true, nil
}
