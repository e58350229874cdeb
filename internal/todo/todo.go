// Package todo holds the task record and the pure view logic around it:
// filtering, the placeholder/persisted distinction and inline editing.
package todo

import (
	"fmt"
	"strings"
)

// Task is a single todo record as exchanged with the API.
type Task struct {
	ID        int    `json:"id"`
	UserID    int    `json:"userId"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type Filter int

const (
	FilterAll Filter = iota
	FilterActive
	FilterCompleted
)

var filterNames = []string{"all", "active", "completed"}

func (f Filter) String() string {
	if f < 0 || int(f) >= len(filterNames) {
		return fmt.Sprintf("filter(%d)", int(f))
	}
	return filterNames[f]
}

// ParseFilter accepts the spelling used in config files and flags.
func ParseFilter(s string) (Filter, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return FilterAll, nil
	}
	for i, name := range filterNames {
		if name == v {
			return Filter(i), nil
		}
	}
	return FilterAll, fmt.Errorf("unknown filter %q (want all, active or completed)", s)
}

// Filters lists every mode in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterActive, FilterCompleted}
}

// Apply returns the tasks visible under f, preserving input order.
// The result never aliases tasks.
func Apply(tasks []Task, f Filter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		switch f {
		case FilterActive:
			if t.Completed {
				continue
			}
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// AllCompleted reports whether every task is completed. It is true for an
// empty list.
func AllCompleted(tasks []Task) bool {
	for _, t := range tasks {
		if !t.Completed {
			return false
		}
	}
	return true
}

// ActiveCount returns the number of tasks not yet completed.
func ActiveCount(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// Index returns the position of the task with id, or -1.
func Index(tasks []Task, id int) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
