// Package state holds the single, process-lifetime Selection and hands out
// immutable snapshots of it.
package state

import (
	"sync"

	"github.com/auctionpost/auctionpost/pkg/models"
)

// Listener receives every new Selection revision
type Listener func(models.Selection)

// Store owns the current Selection. Every mutation produces a new revision
// and notifies subscribers with a snapshot.
type Store struct {
	mu        sync.Mutex
	current   models.Selection
	listeners map[int]Listener
	nextID    int
}

// NewStore returns a store in the all-empty state
func NewStore() *Store {
	return &Store{listeners: make(map[int]Listener)}
}

// Snapshot returns the latest revision
func (s *Store) Snapshot() models.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// SelectPlayer sets the player. The record is copied.
func (s *Store) SelectPlayer(p models.Player) models.Selection {
	return s.update(func(sel *models.Selection) { sel.Player = &p })
}

// ClearPlayer removes the player
func (s *Store) ClearPlayer() models.Selection {
	return s.update(func(sel *models.Selection) { sel.Player = nil })
}

// SelectTeam sets the team. The record is copied.
func (s *Store) SelectTeam(t models.Team) models.Selection {
	return s.update(func(sel *models.Selection) { sel.Team = &t })
}

// ClearTeam removes the team
func (s *Store) ClearTeam() models.Selection {
	return s.update(func(sel *models.Selection) { sel.Team = nil })
}

// SetPrice stores the raw price text as typed
func (s *Store) SetPrice(text string) models.Selection {
	return s.update(func(sel *models.Selection) { sel.PriceText = text })
}

// Reset returns to the all-empty state
func (s *Store) Reset() models.Selection {
	return s.update(func(sel *models.Selection) {
		sel.Player = nil
		sel.Team = nil
		sel.PriceText = ""
	})
}

func (s *Store) update(mutate func(*models.Selection)) models.Selection {
	s.mu.Lock()
	next := s.current
	mutate(&next)
	next.Revision = s.current.Revision + 1
	s.current = next

	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
	return next
}
