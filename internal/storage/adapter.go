package storage

import "github.com/jacksmith/hp/internal/model"

// Adapter reads and writes the whole prospect collection.
//
// Load returns (nil, nil) when nothing has been saved yet. When stored data
// cannot be read or decoded it returns an empty collection along with the
// reason; callers may ignore the error and treat the data as absent.
//
// Save replaces the stored collection atomically: a later Load sees either
// the previous collection or the new one, never a mix.
type Adapter interface {
	Load() ([]model.Prospect, error)
	Save(people []model.Prospect) error
}
