package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// MinIDPrefix is the shortest ID prefix accepted on the command line.
const MinIDPrefix = 4

var (
	// ErrInvalidID is returned when an ID reference cannot be parsed.
	ErrInvalidID = errors.New("invalid ID")

	// ErrAmbiguousID is returned when an ID prefix matches several prospects.
	ErrAmbiguousID = errors.New("ambiguous ID")

	// ErrUnknownID is returned when no prospect matches an ID reference.
	ErrUnknownID = errors.New("unknown ID")
)

// ShortID returns the first eight hex digits of id, enough to tell
// prospects apart in listings.
func ShortID(id uuid.UUID) string {
	return id.String()[:8]
}

// MatchID resolves ref against ids. ref may be a full UUID or a unique
// prefix of at least MinIDPrefix characters; dashes and case are ignored.
func MatchID(ref string, ids []uuid.UUID) (uuid.UUID, error) {
	if full, err := uuid.Parse(ref); err == nil {
		for _, id := range ids {
			if id == full {
				return id, nil
			}
		}
		return uuid.Nil, fmt.Errorf("%w: %s", ErrUnknownID, ref)
	}

	prefix := normalizeID(ref)
	if len(prefix) < MinIDPrefix || strings.Trim(prefix, "0123456789abcdef") != "" {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidID, ref)
	}

	var matches []uuid.UUID
	for _, id := range ids {
		if strings.HasPrefix(normalizeID(id.String()), prefix) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return uuid.Nil, fmt.Errorf("%w: %s", ErrUnknownID, ref)
	case 1:
		return matches[0], nil
	default:
		short := make([]string, len(matches))
		for i, m := range matches {
			short[i] = ShortID(m)
		}
		return uuid.Nil, fmt.Errorf("%w %q matches: %s", ErrAmbiguousID, ref, strings.Join(short, ", "))
	}
}

func normalizeID(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "-", ""))
}
