// Package quotebook holds the quote list and the views derived from it.
//
// Store owns the ordered quote sequence and mirrors it to persistent storage
// after every mutation. CategoryIndex and Selector are read-side views over
// the same Store; all three are built together by New.
package quotebook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/quotebook/internal/entities"
	"github.com/mrlokans/quotebook/internal/storage"
)

// BulkResult summarises a BulkAdd call.
type BulkResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// Store is the ordered, persisted quote list. Safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	quotes     []entities.Quote
	persistent storage.Store
	validate   *validator.Validate
}

func NewStore(persistent storage.Store) *Store {
	return &Store{
		persistent: persistent,
		validate:   newValidator(),
	}
}

// Load reads the persisted quotes. Missing data, or data whose top level is
// not a JSON array, is replaced by the seed quotes, which are persisted
// immediately. Invalid entries inside the array are dropped one by one.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.persistent.Get(ctx, entities.SettingKeyQuotes)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		log.Infof("No stored quotes found, seeding %d defaults", len(entities.SeedQuotes()))
		return s.commit(ctx, entities.SeedQuotes())
	case err != nil:
		return fmt.Errorf("load quotes: %w", err)
	}

	stored, malformed, err := entities.DecodeQuoteArray(raw)
	if err != nil {
		log.Warnf("Stored quotes are malformed (%v), reseeding defaults", err)
		return s.commit(ctx, entities.SeedQuotes())
	}

	quotes := make([]entities.Quote, 0, len(stored))
	for _, q := range stored {
		if q.IsValid() {
			quotes = append(quotes, q)
		}
	}
	if dropped := len(stored) - len(quotes) + malformed; dropped > 0 {
		log.Warnf("Dropped %d invalid stored quotes", dropped)
	}

	s.quotes = quotes
	log.Debugf("Loaded %d quotes", len(quotes))
	return nil
}

// Add trims and validates the input, then appends and persists it.
func (s *Store) Add(ctx context.Context, text, category string) (entities.Quote, error) {
	q, err := normalize(s.validate, text, category)
	if err != nil {
		return entities.Quote{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commit(ctx, s.appended(q)); err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

// BulkAdd appends every record whose text and category are non-blank and
// skips the rest. The batch is persisted once.
func (s *Store) BulkAdd(ctx context.Context, records []entities.Quote) (BulkResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := BulkResult{}
	next := s.appended()
	for _, q := range records {
		if !q.IsValid() {
			result.Skipped++
			continue
		}
		next = append(next, q)
		result.Added++
	}

	if result.Added == 0 {
		return result, nil
	}
	if err := s.commit(ctx, next); err != nil {
		return BulkResult{}, err
	}
	return result, nil
}

// MergeOne appends q unless a structurally equal quote already exists.
// Reports whether q was inserted.
func (s *Store) MergeOne(ctx context.Context, q entities.Quote) (bool, error) {
	if !q.IsValid() {
		return false, errInvalidQuote
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.quotes {
		if existing.Equal(q) {
			return false, nil
		}
	}

	if err := s.commit(ctx, s.appended(q)); err != nil {
		return false, err
	}
	return true, nil
}

// All returns a copy of the quotes in insertion order.
func (s *Store) All() []entities.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Quote(nil), s.quotes...)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.quotes)
}

// Filter returns the quotes in category, or every quote for CategoryAll.
func (s *Store) Filter(category string) []entities.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if category == entities.CategoryAll {
		return append([]entities.Quote(nil), s.quotes...)
	}

	var filtered []entities.Quote
	for _, q := range s.quotes {
		if q.Category == category {
			filtered = append(filtered, q)
		}
	}
	return filtered
}

// appended returns a fresh slice holding the current quotes followed by extra.
func (s *Store) appended(extra ...entities.Quote) []entities.Quote {
	next := make([]entities.Quote, 0, len(s.quotes)+len(extra))
	next = append(next, s.quotes...)
	return append(next, extra...)
}

// commit persists next and only then makes it the current list.
// Caller must hold the write lock.
func (s *Store) commit(ctx context.Context, next []entities.Quote) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode quotes: %w", err)
	}
	if err := s.persistent.Set(ctx, entities.SettingKeyQuotes, data); err != nil {
		return fmt.Errorf("save quotes: %w", err)
	}
	s.quotes = next
	return nil
}
