package todo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ID identifies a task. It is assigned at creation and never changes.
type ID string

// UnmarshalJSON accepts both string ids and the numeric timestamp ids
// written by older versions.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("task id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Task is a single entry in the list.
type Task struct {
	ID        ID        `json:"id" validate:"required"`
	Text      string    `json:"text" validate:"required,trimmed"`
	Completed bool      `json:"completed"`
	Favorite  bool      `json:"favorite"`
	CreatedAt time.Time `json:"createdAt"`
}

// Filter selects which tasks the view shows.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
	FilterFavorites Filter = "favorites"
)

// Filters returns every filter in tab order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterActive, FilterCompleted, FilterFavorites}
}

// ParseFilter parses a filter name, case-insensitively.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FilterAll, FilterActive, FilterCompleted, FilterFavorites:
		return f, nil
	case "":
		return FilterAll, nil
	}
	return "", fmt.Errorf("invalid filter %q, must be one of: all, active, completed, favorites", s)
}

// Title returns the label shown on the filter tab.
func (f Filter) Title() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	case FilterFavorites:
		return "Favorites"
	default:
		return "All"
	}
}

// Counts summarizes the full, unfiltered list.
// Total always equals Active + Completed.
type Counts struct {
	Total     int `json:"total" yaml:"total"`
	Active    int `json:"active" yaml:"active"`
	Completed int `json:"completed" yaml:"completed"`
	Favorites int `json:"favorites" yaml:"favorites"`
}

func (f Filter) String() string { return string(f) }
