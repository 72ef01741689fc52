package ops

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/jacksmith/hp/internal/model"
	"github.com/jacksmith/hp/internal/storage"
)

var (
	// ErrNotFound is returned when a prospect is not in the collection.
	ErrNotFound = errors.New("prospect not found")

	// ErrDuplicateID is returned by Add when the ID is already in use.
	ErrDuplicateID = errors.New("prospect ID already in use")

	// ErrInvalidID is returned by Add for a prospect without an ID.
	ErrInvalidID = errors.New("prospect has no ID")

	// ErrNotPersisted wraps a save failure after a mutation. The mutation
	// itself has been applied in memory.
	ErrNotPersisted = errors.New("change not saved")
)

// Observer receives the collection after every change.
type Observer func(people []model.Prospect)

// Store owns the prospect collection. Every change is applied, announced to
// observers, and written through to the adapter as one step; concurrent
// callers are serialized.
//
// Observers run while the store is locked. They get their own copy of the
// collection and must not call back into the store.
type Store struct {
	mu        sync.RWMutex
	adapter   storage.Adapter
	logger    *slog.Logger
	people    []model.Prospect
	index     map[uuid.UUID]int
	observers map[int]Observer
	nextObs   int
}

// NewStore loads the collection from adapter. Load failures are logged and
// the store starts empty; the adapter is never read again.
func NewStore(adapter storage.Adapter, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Store{
		adapter:   adapter,
		logger:    logger,
		index:     make(map[uuid.UUID]int),
		observers: make(map[int]Observer),
	}

	people, err := adapter.Load()
	if err != nil {
		logger.Warn("could not load prospects, starting empty", "err", err)
		people = nil
	}
	for _, p := range people {
		if _, dup := s.index[p.ID]; dup || p.ID == uuid.Nil {
			logger.Warn("could not load prospects, starting empty", "err", fmt.Errorf("duplicate or missing id %s", p.ID))
			s.people = nil
			s.index = make(map[uuid.UUID]int)
			break
		}
		s.index[p.ID] = len(s.people)
		s.people = append(s.people, p)
	}
	logger.Debug("loaded prospects", "count", len(s.people))
	return s
}

// Add appends p as the most recent prospect.
func (s *Store) Add(p model.Prospect) error {
	if p.ID == uuid.Nil {
		return ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[p.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
	}
	s.index[p.ID] = len(s.people)
	s.people = append(s.people, p)
	s.logger.Debug("added prospect", "id", p.ID, "name", p.Name)

	s.notifyLocked()
	return s.persistLocked()
}

// ToggleContacted flips the contacted flag of the prospect with id and
// returns its new state.
func (s *Store) ToggleContacted(id uuid.UUID) (model.Prospect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return model.Prospect{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.people[i].Contacted = !s.people[i].Contacted
	p := s.people[i]
	s.logger.Debug("toggled prospect", "id", id, "contacted", p.Contacted)

	s.notifyLocked()
	return p, s.persistLocked()
}

// Get returns a copy of the prospect with id.
func (s *Store) Get(id uuid.UUID) (model.Prospect, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return model.Prospect{}, false
	}
	return s.people[i], true
}

// Resolve finds a prospect by full ID or unique ID prefix.
func (s *Store) Resolve(ref string) (model.Prospect, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]uuid.UUID, len(s.people))
	for i, p := range s.people {
		ids[i] = p.ID
	}
	id, err := model.MatchID(ref, ids)
	if err != nil {
		return model.Prospect{}, err
	}
	return s.people[s.index[id]], nil
}

// Len returns the number of prospects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.people)
}

// Snapshot returns a copy of the collection in arrival order.
func (s *Store) Snapshot() []model.Prospect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// View returns the filtered, sorted projection of the current collection.
func (s *Store) View(filter model.Filter, sort model.Sort) []model.Prospect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.Project(s.people, filter, sort)
}

// Subscribe registers fn to be called after every change. The returned
// function removes it.
func (s *Store) Subscribe(fn Observer) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.observers, id)
		})
	}
}

func (s *Store) snapshotLocked() []model.Prospect {
	out := make([]model.Prospect, len(s.people))
	copy(out, s.people)
	return out
}

func (s *Store) notifyLocked() {
	for _, fn := range s.observers {
		fn(s.snapshotLocked())
	}
}

func (s *Store) persistLocked() error {
	if err := s.adapter.Save(s.people); err != nil {
		s.logger.Warn("failed to save prospects", "err", err)
		return fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}
	return nil
}
