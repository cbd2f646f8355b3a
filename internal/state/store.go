// Package state holds the current settings snapshot and the working quote.
package state

import (
	"sync"

	"github.com/quotekit/backend/internal/model"
)

// Store is the application's single state container.
//
// Snapshots returned by Get and Quote share their slices with the store.
// Callers must treat them as read-only and build new collections for every
// change; a snapshot handed out earlier is never modified afterwards.
type Store struct {
	mu       sync.RWMutex
	settings model.AppSettings
	quote    model.WorkingQuote
}

// NewStore creates a Store holding settings and an empty working quote.
func NewStore(settings model.AppSettings) *Store {
	return &Store{
		settings: settings,
		quote:    model.WorkingQuote{Items: []model.QuoteItem{}},
	}
}

// Get returns the current settings snapshot.
func (s *Store) Get() model.AppSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Apply shallow-merges p into the current settings and returns the new snapshot.
func (s *Store) Apply(p model.SettingsPatch) model.AppSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = s.settings.Merge(p)
	return s.settings
}

// Quote returns the working quote.
func (s *Store) Quote() model.WorkingQuote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quote
}

// SetQuote replaces the working quote.
func (s *Store) SetQuote(q model.WorkingQuote) model.WorkingQuote {
	if q.Items == nil {
		q.Items = []model.QuoteItem{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quote = q
	return q
}
