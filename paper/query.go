package paper

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bobinette/raddaran/errors"
)

type SortKey string

const (
	SortByDateAdded SortKey = "date"
	SortByTitle     SortKey = "title"
	SortByAuthor    SortKey = "author"
)

// ParseSortKey maps the labels used by clients to a sort key. An empty label
// sorts by date.
func ParseSortKey(s string) (SortKey, error) {
	switch compact(s) {
	case "", "date", "dateadded":
		return SortByDateAdded, nil
	case "title":
		return SortByTitle, nil
	case "author":
		return SortByAuthor, nil
	}
	return "", errors.New(fmt.Sprintf("invalid sort key %q", s), errors.BadRequest())
}

// Matches returns true if term is a case-insensitive substring of the title,
// the author or the description. The empty term matches everything.
func (p Paper) Matches(term string) bool {
	if term == "" {
		return true
	}

	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.Author), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

// Search returns the papers matching term, in their original order.
func Search(papers []Paper, term string) []Paper {
	res := make([]Paper, 0, len(papers))
	for _, p := range papers {
		if p.Matches(term) {
			res = append(res, p)
		}
	}
	return res
}

// Sort returns a sorted copy of papers. Papers are sorted from the newest to
// the oldest for SortByDateAdded and in ascending order otherwise. Ties keep
// their relative order.
func Sort(papers []Paper, key SortKey) []Paper {
	res := make([]Paper, len(papers))
	copy(res, papers)

	var less func(a, b Paper) bool
	switch key {
	case SortByTitle:
		less = func(a, b Paper) bool { return a.Title < b.Title }
	case SortByAuthor:
		less = func(a, b Paper) bool { return a.Author < b.Author }
	default:
		less = func(a, b Paper) bool { return a.DateAdded.After(b.DateAdded.Time) }
	}

	sort.SliceStable(res, func(i, j int) bool { return less(res[i], res[j]) })
	return res
}
