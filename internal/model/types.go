// Package model defines the core data structures for hp.
package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// DefaultName is the name given to prospects created without one.
const DefaultName = "Anonymous"

// Prospect is a person the user intends to contact.
//
// ID is assigned once by NewProspect and never changes. Contacted is only
// changed by the store; values handed out by the store are copies.
type Prospect struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	EmailAddress string    `json:"emailAddress"`
	Contacted    bool      `json:"isContacted"`
}

// NewProspect returns an uncontacted prospect with a fresh ID.
// An empty name becomes DefaultName.
func NewProspect(name, email string) Prospect {
	if name == "" {
		name = DefaultName
	}
	return Prospect{
		ID:           uuid.New(),
		Name:         name,
		EmailAddress: email,
	}
}

// ErrMalformed is returned when stored prospect data does not have the
// expected shape.
var ErrMalformed = errors.New("malformed prospect")

// prospectWire mirrors Prospect with pointer fields so that missing keys
// can be told apart from zero values.
type prospectWire struct {
	ID           *uuid.UUID `json:"id"`
	Name         *string    `json:"name"`
	EmailAddress *string    `json:"emailAddress"`
	Contacted    *bool      `json:"isContacted"`
}

// UnmarshalJSON requires every field to be present.
func (p *Prospect) UnmarshalJSON(data []byte) error {
	var w prospectWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	switch {
	case w.ID == nil:
		return fmt.Errorf("%w: missing id", ErrMalformed)
	case w.Name == nil:
		return fmt.Errorf("%w: missing name", ErrMalformed)
	case w.EmailAddress == nil:
		return fmt.Errorf("%w: missing emailAddress", ErrMalformed)
	case w.Contacted == nil:
		return fmt.Errorf("%w: missing isContacted", ErrMalformed)
	}
	*p = Prospect{
		ID:           *w.ID,
		Name:         *w.Name,
		EmailAddress: *w.EmailAddress,
		Contacted:    *w.Contacted,
	}
	return nil
}

// DecodeProspects parses a serialized collection. Anything other than a JSON
// array of complete prospect objects is rejected.
func DecodeProspects(data []byte) ([]Prospect, error) {
	var people []Prospect
	if err := json.Unmarshal(data, &people); err != nil {
		return nil, err
	}
	if people == nil {
		// "null" is valid JSON but not an array.
		return nil, fmt.Errorf("%w: expected array", ErrMalformed)
	}
	return people, nil
}

// EncodeProspects serializes a collection as a JSON array.
func EncodeProspects(people []Prospect) ([]byte, error) {
	if people == nil {
		people = []Prospect{}
	}
	return json.Marshal(people)
}

// Card returns the two-line payload that identifies this prospect, the same
// format ParseScan accepts.
func Card(name, email string) string {
	return name + "\n" + email
}
