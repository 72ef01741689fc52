package ops

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jacksmith/hp/internal/model"
	"github.com/jacksmith/hp/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memAdapter is an in-memory storage.Adapter with failure injection.
type memAdapter struct {
	mu      sync.Mutex
	saved   []model.Prospect
	saves   int
	loadErr error
	saveErr error
}

func (m *memAdapter) Load() ([]model.Prospect, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return []model.Prospect{}, m.loadErr
	}
	return append([]model.Prospect(nil), m.saved...), nil
}

func (m *memAdapter) Save(people []model.Prospect) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append([]model.Prospect(nil), people...)
	return nil
}

func ids(people []model.Prospect) []uuid.UUID {
	out := make([]uuid.UUID, len(people))
	for i, p := range people {
		out[i] = p.ID
	}
	return out
}

func TestNewStore(t *testing.T) {
	t.Run("starts empty with no saved data", func(t *testing.T) {
		s := NewStore(&memAdapter{}, nil)
		assert.Equal(t, 0, s.Len())
		assert.Empty(t, s.Snapshot())
	})

	t.Run("loads saved data", func(t *testing.T) {
		people := []model.Prospect{model.NewProspect("a", ""), model.NewProspect("b", "")}
		s := NewStore(&memAdapter{saved: people}, nil)
		assert.Equal(t, people, s.Snapshot())
	})

	t.Run("starts empty when load fails", func(t *testing.T) {
		s := NewStore(&memAdapter{loadErr: errors.New("disk on fire")}, nil)
		assert.Equal(t, 0, s.Len())
	})

	t.Run("starts empty when saved data repeats an id", func(t *testing.T) {
		p := model.NewProspect("a", "")
		s := NewStore(&memAdapter{saved: []model.Prospect{p, p}}, nil)
		assert.Equal(t, 0, s.Len())
	})

	t.Run("never reads the adapter again", func(t *testing.T) {
		a := &memAdapter{}
		s := NewStore(a, nil)
		a.saved = []model.Prospect{model.NewProspect("late", "")}
		assert.Equal(t, 0, s.Len())
	})
}

func TestStoreAdd(t *testing.T) {
	t.Run("appends and persists", func(t *testing.T) {
		a := &memAdapter{}
		s := NewStore(a, nil)

		p1 := model.NewProspect("first", "")
		p2 := model.NewProspect("second", "")
		require.NoError(t, s.Add(p1))
		require.NoError(t, s.Add(p2))

		assert.Equal(t, []uuid.UUID{p1.ID, p2.ID}, ids(s.Snapshot()))
		assert.Equal(t, s.Snapshot(), a.saved)
		assert.Equal(t, 2, a.saves)
	})

	t.Run("duplicate id changes nothing", func(t *testing.T) {
		a := &memAdapter{}
		s := NewStore(a, nil)
		p := model.NewProspect("a", "")
		require.NoError(t, s.Add(p))

		err := s.Add(p)
		assert.True(t, errors.Is(err, ErrDuplicateID))
		assert.Equal(t, 1, s.Len())
		assert.Equal(t, 1, a.saves)
	})

	t.Run("nil id is rejected", func(t *testing.T) {
		s := NewStore(&memAdapter{}, nil)
		err := s.Add(model.Prospect{Name: "no id"})
		assert.True(t, errors.Is(err, ErrInvalidID))
		assert.Equal(t, 0, s.Len())
	})

	t.Run("save failure keeps the change in memory", func(t *testing.T) {
		diskErr := errors.New("disk full")
		a := &memAdapter{saveErr: diskErr}
		s := NewStore(a, nil)

		p := model.NewProspect("a", "")
		err := s.Add(p)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotPersisted))
		assert.True(t, errors.Is(err, diskErr))

		got, ok := s.Get(p.ID)
		require.True(t, ok)
		assert.Equal(t, p, got)

		// A later successful save writes everything.
		a.saveErr = nil
		require.NoError(t, s.Add(model.NewProspect("b", "")))
		assert.Len(t, a.saved, 2)
	})
}

func TestStoreToggleContacted(t *testing.T) {
	t.Run("flips in place and persists", func(t *testing.T) {
		a := &memAdapter{}
		s := NewStore(a, nil)
		p1 := model.NewProspect("a", "")
		p2 := model.NewProspect("b", "")
		require.NoError(t, s.Add(p1))
		require.NoError(t, s.Add(p2))

		got, err := s.ToggleContacted(p1.ID)
		require.NoError(t, err)
		assert.True(t, got.Contacted)

		snap := s.Snapshot()
		assert.Equal(t, []uuid.UUID{p1.ID, p2.ID}, ids(snap))
		assert.True(t, snap[0].Contacted)
		assert.False(t, snap[1].Contacted)
		assert.True(t, a.saved[0].Contacted)
	})

	t.Run("toggling twice restores state and order", func(t *testing.T) {
		s := NewStore(&memAdapter{}, nil)
		var added []model.Prospect
		for _, n := range []string{"a", "b", "c"} {
			p := model.NewProspect(n, "")
			require.NoError(t, s.Add(p))
			added = append(added, p)
		}
		before := s.Snapshot()

		_, err := s.ToggleContacted(added[1].ID)
		require.NoError(t, err)
		_, err = s.ToggleContacted(added[1].ID)
		require.NoError(t, err)

		assert.Equal(t, before, s.Snapshot())
	})

	t.Run("unknown prospect is an error", func(t *testing.T) {
		a := &memAdapter{}
		s := NewStore(a, nil)
		_, err := s.ToggleContacted(uuid.New())
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.Equal(t, 0, a.saves)
	})
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	s := NewStore(&memAdapter{}, nil)
	p := model.NewProspect("a", "")
	require.NoError(t, s.Add(p))

	snap := s.Snapshot()
	snap[0].Contacted = true
	snap[0].Name = "changed"

	got, ok := s.Get(p.ID)
	require.True(t, ok)
	assert.False(t, got.Contacted)
	assert.Equal(t, "a", got.Name)
}

func TestStoreView(t *testing.T) {
	s := NewStore(&memAdapter{}, nil)
	a := model.NewProspect("zed", "")
	b := model.NewProspect("amy", "")
	c := model.NewProspect("max", "")
	for _, p := range []model.Prospect{a, b, c} {
		require.NoError(t, s.Add(p))
	}
	_, err := s.ToggleContacted(b.ID)
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{c.ID, b.ID, a.ID}, ids(s.View(model.FilterAll, model.SortByRecency)))
	assert.Equal(t, []uuid.UUID{b.ID, c.ID, a.ID}, ids(s.View(model.FilterAll, model.SortByName)))
	assert.Equal(t, []uuid.UUID{b.ID}, ids(s.View(model.FilterContacted, model.SortByName)))
	assert.Equal(t, []uuid.UUID{c.ID, a.ID}, ids(s.View(model.FilterUncontacted, model.SortByRecency)))
}

func TestStoreResolve(t *testing.T) {
	s := NewStore(&memAdapter{}, nil)
	p := model.NewProspect("a", "")
	require.NoError(t, s.Add(p))

	got, err := s.Resolve(model.ShortID(p.ID))
	require.NoError(t, err)
	assert.Equal(t, p, got)

	_, err = s.Resolve(uuid.New().String())
	assert.True(t, errors.Is(err, model.ErrUnknownID))
}

func TestStoreSubscribe(t *testing.T) {
	s := NewStore(&memAdapter{}, nil)

	var got [][]model.Prospect
	cancel := s.Subscribe(func(people []model.Prospect) {
		got = append(got, people)
	})

	p := model.NewProspect("a", "")
	require.NoError(t, s.Add(p))
	_, err := s.ToggleContacted(p.ID)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Len(t, got[0], 1)
	assert.False(t, got[0][0].Contacted)
	assert.True(t, got[1][0].Contacted)

	// Observers get their own copies.
	got[1][0].Name = "changed"
	stored, _ := s.Get(p.ID)
	assert.Equal(t, "a", stored.Name)

	cancel()
	cancel()
	require.NoError(t, s.Add(model.NewProspect("b", "")))
	assert.Len(t, got, 2)
}

func TestStoreObserverSeesStateBeforeSave(t *testing.T) {
	a := &memAdapter{saveErr: errors.New("nope")}
	s := NewStore(a, nil)

	notified := 0
	s.Subscribe(func([]model.Prospect) { notified++ })

	err := s.Add(model.NewProspect("a", ""))
	assert.True(t, errors.Is(err, ErrNotPersisted))
	assert.Equal(t, 1, notified)
}

func TestStoreConcurrentWriters(t *testing.T) {
	a := &memAdapter{}
	s := NewStore(a, nil)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Add(model.NewProspect("p", "")))
			_ = s.View(model.FilterAll, model.SortByName)
		}()
	}
	wg.Wait()

	assert.Equal(t, n, s.Len())
	assert.Equal(t, s.Snapshot(), a.saved)
}

func TestStoreRoundTripThroughFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prospects.json")

	s := NewStore(storage.NewFileAdapter(path), nil)
	p1 := model.NewProspect("Paul Hudson", "paul@hackingwithswift.com")
	p2 := model.NewProspect("Taylor", "")
	require.NoError(t, s.Add(p1))
	require.NoError(t, s.Add(p2))
	_, err := s.ToggleContacted(p2.ID)
	require.NoError(t, err)

	reopened := NewStore(storage.NewFileAdapter(path), nil)
	assert.Equal(t, s.Snapshot(), reopened.Snapshot())
}

func TestAddScanned(t *testing.T) {
	s := NewStore(&memAdapter{}, nil)

	p, added, err := AddScanned(s, "Paul Hudson\npaul@hackingwithswift.com")
	require.NoError(t, err)
	require.True(t, added)
	assert.Equal(t, "Paul Hudson", p.Name)
	assert.Equal(t, "paul@hackingwithswift.com", p.EmailAddress)
	assert.False(t, p.Contacted)

	for _, payload := range []string{"", "just a name", "a\nb\nc"} {
		_, added, err := AddScanned(s, payload)
		require.NoError(t, err)
		assert.False(t, added)
	}
	assert.Equal(t, 1, s.Len())
}
