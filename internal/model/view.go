package model

import (
	"fmt"
	"sort"
	"strings"
)

// Filter selects which prospects a view shows.
type Filter string

const (
	FilterAll         Filter = "everyone"
	FilterContacted   Filter = "contacted"
	FilterUncontacted Filter = "uncontacted"
)

// Sort selects the order of a view.
type Sort string

const (
	// SortByName orders by name, ascending, comparing bytes (case-sensitive,
	// not locale-aware). Equal names keep collection order.
	SortByName Sort = "name"
	// SortByRecency shows the most recently added prospect first.
	SortByRecency Sort = "recent"
)

// Title returns the heading used for a filtered view.
func (f Filter) Title() string {
	switch f {
	case FilterContacted:
		return "Contacted People"
	case FilterUncontacted:
		return "Uncontacted People"
	default:
		return "Everyone"
	}
}

// ParseFilter parses a filter name. The empty string means FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch Filter(strings.ToLower(s)) {
	case "", FilterAll, "all", "none":
		return FilterAll, nil
	case FilterContacted:
		return FilterContacted, nil
	case FilterUncontacted:
		return FilterUncontacted, nil
	}
	return "", fmt.Errorf("unknown filter %q (want everyone, contacted or uncontacted)", s)
}

// ParseSort parses a sort name. The empty string means SortByRecency.
func ParseSort(s string) (Sort, error) {
	switch Sort(strings.ToLower(s)) {
	case "", SortByRecency, "date":
		return SortByRecency, nil
	case SortByName:
		return SortByName, nil
	}
	return "", fmt.Errorf("unknown sort %q (want name or recent)", s)
}

// Matches reports whether p passes the filter.
func (f Filter) Matches(p *Prospect) bool {
	switch f {
	case FilterContacted:
		return p.Contacted
	case FilterUncontacted:
		return !p.Contacted
	default:
		return true
	}
}

// Project returns the prospects passing filter, ordered by s.
// The input is never modified; the result is always a new slice.
func Project(people []Prospect, filter Filter, s Sort) []Prospect {
	result := make([]Prospect, 0, len(people))
	for i := range people {
		if filter.Matches(&people[i]) {
			result = append(result, people[i])
		}
	}

	if s == SortByName {
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Name < result[j].Name
		})
		return result
	}

	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result
}
