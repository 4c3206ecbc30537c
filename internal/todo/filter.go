package todo

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Match reports whether t belongs in the view for filter f and query.
//
// The filter tabs take precedence over search: under active, completed
// and favorites the query is ignored. Search only narrows the "all" view,
// using a substring match after lower-casing both sides. Lower-casing
// is not full case folding: "STRASSE" does not find "Straße".
func Match(t Task, f Filter, query string) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	case FilterFavorites:
		return t.Favorite
	}
	if query == "" {
		return true
	}
	lower := cases.Lower(language.Und)
	return strings.Contains(lower.String(t.Text), lower.String(query))
}

// Apply returns the tasks that Match f and query, in list order.
// The result never aliases tasks.
func Apply(tasks []Task, f Filter, query string) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if Match(t, f, query) {
			out = append(out, t)
		}
	}
	return out
}

// Count summarizes tasks.
func Count(tasks []Task) Counts {
	c := Counts{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			c.Completed++
		} else {
			c.Active++
		}
		if t.Favorite {
			c.Favorites++
		}
	}
	return c
}
