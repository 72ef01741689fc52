package notify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/jacksmith/hp/internal/storage"
	"gopkg.in/yaml.v3"
)

// Authorizer asks the user whether hp may send reminders.
type Authorizer interface {
	Authorize(ctx context.Context, opts Options) (bool, error)
}

// AuthorizerFunc adapts a function to Authorizer.
type AuthorizerFunc func(ctx context.Context, opts Options) (bool, error)

// Authorize calls f.
func (f AuthorizerFunc) Authorize(ctx context.Context, opts Options) (bool, error) {
	return f(ctx, opts)
}

// centerState is the on-disk form of a LocalCenter.
type centerState struct {
	Status  Status    `yaml:"status"`
	Options *Options  `yaml:"options,omitempty"`
	Pending []Request `yaml:"pending,omitempty"`
}

// LocalCenter is a Center backed by a YAML file. It remembers the
// authorization decision and holds submitted reminders until they are taken
// for delivery.
//
// Writes replace the file atomically. Concurrent use from several processes
// is not coordinated.
type LocalCenter struct {
	mu         sync.Mutex
	path       string
	authorizer Authorizer
}

// NewLocalCenter returns a center stored at path. authorizer is asked when
// authorization has not been determined yet; a nil authorizer never grants
// and leaves the status undetermined.
func NewLocalCenter(path string, authorizer Authorizer) *LocalCenter {
	return &LocalCenter{path: path, authorizer: authorizer}
}

// AuthorizationStatus returns the recorded decision, or StatusNotDetermined.
func (c *LocalCenter) AuthorizationStatus(ctx context.Context) (Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, err := c.load()
	if err != nil {
		return StatusUnknown, err
	}
	return st.Status, nil
}

// RequestAuthorization asks the authorizer once and records the answer.
// When a decision already exists it is returned without asking again.
func (c *LocalCenter) RequestAuthorization(ctx context.Context, opts Options) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, err := c.load()
	if err != nil {
		return false, err
	}
	if st.Status != StatusNotDetermined {
		return st.Status == StatusAuthorized, nil
	}
	if c.authorizer == nil {
		return false, nil
	}

	granted, err := c.authorizer.Authorize(ctx, opts)
	if err != nil {
		return false, err
	}
	st.Status = StatusDenied
	if granted {
		st.Status = StatusAuthorized
		st.Options = &opts
	}
	if err := c.save(st); err != nil {
		return false, err
	}
	return granted, nil
}

// SetStatus records a decision directly. StatusNotDetermined resets it.
func (c *LocalCenter) SetStatus(status Status) error {
	switch status {
	case StatusAuthorized, StatusDenied, StatusNotDetermined:
	default:
		return fmt.Errorf("invalid authorization status %q", status)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	st, err := c.load()
	if err != nil {
		return err
	}
	st.Status = status
	st.Options = nil
	if status == StatusAuthorized {
		opts := AllOptions
		st.Options = &opts
	}
	return c.save(st)
}

// Submit queues r until it is due.
func (c *LocalCenter) Submit(ctx context.Context, r Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	st, err := c.load()
	if err != nil {
		return err
	}
	st.Pending = append(st.Pending, r)
	return c.save(st)
}

// Pending returns queued reminders ordered by fire time.
func (c *LocalCenter) Pending() ([]Request, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, err := c.load()
	if err != nil {
		return nil, err
	}
	sortRequests(st.Pending)
	return st.Pending, nil
}

// TakeDue removes and returns the reminders whose fire time is not after now.
func (c *LocalCenter) TakeDue(now time.Time) ([]Request, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, err := c.load()
	if err != nil {
		return nil, err
	}

	var due, rest []Request
	for _, r := range st.Pending {
		if r.FireAt.After(now) {
			rest = append(rest, r)
		} else {
			due = append(due, r)
		}
	}
	if len(due) == 0 {
		return nil, nil
	}

	st.Pending = rest
	if err := c.save(st); err != nil {
		return nil, err
	}
	sortRequests(due)
	return due, nil
}

func (c *LocalCenter) load() (*centerState, error) {
	st := &centerState{Status: StatusNotDetermined}
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return st, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", c.path, err)
	}
	if err := yaml.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", c.path, err)
	}
	if st.Status == StatusUnknown {
		st.Status = StatusNotDetermined
	}
	return st, nil
}

func (c *LocalCenter) save(st *centerState) error {
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode notifications: %w", err)
	}
	return storage.WriteFileAtomic(c.path, data, 0644)
}

func sortRequests(rs []Request) {
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].FireAt.Before(rs[j].FireAt)
	})
}
