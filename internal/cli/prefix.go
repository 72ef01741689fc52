// Package cli provides CLI infrastructure for hp.
package cli

import (
	"fmt"
	"strings"
)

// MatchChoice finds a unique choice from a prefix, so `--sort=n` means
// "name". Matching is case-insensitive and an exact match always wins.
func MatchChoice(what, prefix string, choices []string) (string, error) {
	prefix = strings.ToLower(prefix)

	for _, c := range choices {
		if strings.ToLower(c) == prefix {
			return c, nil
		}
	}

	var matches []string
	for _, c := range choices {
		if prefix != "" && strings.HasPrefix(strings.ToLower(c), prefix) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return "", &ValidationError{
			Field:   what,
			Message: fmt.Sprintf("%q (want %s)", prefix, strings.Join(choices, ", ")),
		}
	case 1:
		return matches[0], nil
	default:
		return "", &ValidationError{
			Field:   what,
			Message: fmt.Sprintf("%q is ambiguous: %s", prefix, strings.Join(matches, ", ")),
		}
	}
}
