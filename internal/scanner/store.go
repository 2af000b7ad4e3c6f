package scanner

import (
	"sync"
	"time"

	"github.com/RiaanWest/whatsapp-fpv-groups/internal/models"
)

// Store holds detected listings for the life of the process. State is
// deliberately in-memory and ephemeral: a restart loses listings and
// any pending sold-removal timers.
//
// Listings are immutable after insert except for the sold flip. Sold
// listings are removed automatically after the retention period,
// counted from the moment they were marked sold.
type Store struct {
	mu        sync.RWMutex
	retention time.Duration
	listings  map[string]*models.Listing
	order     []string // insertion order, for stable reads
	timers    map[string]*time.Timer
}

// NewStore creates an empty store with the given sold retention period.
func NewStore(retention time.Duration) *Store {
	return &Store{
		retention: retention,
		listings:  make(map[string]*models.Listing),
		timers:    make(map[string]*time.Timer),
	}
}

// Upsert inserts a listing or replaces the one with the same ID, so
// re-processing a message is a no-op rather than a duplicate. The sold
// flag of an existing listing is preserved: re-detection must not
// resurrect a sold item.
func (s *Store) Upsert(l models.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.listings[l.ID]; ok {
		l.IsSold = existing.IsSold
		s.listings[l.ID] = &l
		return
	}
	s.listings[l.ID] = &l
	s.order = append(s.order, l.ID)
}

// Get returns the listing with the given ID.
func (s *Store) Get(id string) (models.Listing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.listings[id]
	if !ok {
		return models.Listing{}, false
	}
	return *l, true
}

// MarkSold flips the listing to sold and schedules its removal after
// the retention period. It reports whether the flag was newly flipped;
// unknown IDs and already-sold listings return false.
func (s *Store) MarkSold(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.listings[id]
	if !ok || l.IsSold {
		return false
	}
	l.IsSold = true
	s.timers[id] = time.AfterFunc(s.retention, func() {
		s.Remove(id)
	})
	return true
}

// Remove deletes a listing and cancels any pending removal timer.
// Removing an unknown or already-removed ID is a no-op, which also
// makes a late timer fire harmless.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
	if _, ok := s.listings[id]; !ok {
		return
	}
	delete(s.listings, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Active returns all listings not yet sold, oldest detection first.
func (s *Store) Active() []models.Listing {
	return s.filter(false)
}

// Sold returns all listings marked sold and not yet removed.
func (s *Store) Sold() []models.Listing {
	return s.filter(true)
}

func (s *Store) filter(sold bool) []models.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Listing, 0, len(s.order))
	for _, id := range s.order {
		if l := s.listings[id]; l != nil && l.IsSold == sold {
			out = append(out, *l)
		}
	}
	return out
}

// CountByGroup returns how many tracked listings each group produced.
func (s *Store) CountByGroup() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int)
	for _, l := range s.listings {
		counts[l.GroupID]++
	}
	return counts
}
