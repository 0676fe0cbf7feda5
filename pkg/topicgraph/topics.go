package topicgraph

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// Topic is one entry of the [Registry].
type Topic struct {
	ID   string
	Name string
}

// Registry maps topic IDs to display names.
//
// The first name registered for an ID wins; later registrations with a
// different name are ignored.
type Registry struct {
	names map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]string)}
}

// Register records name for topicID unless topicID is already known.
// Reports whether the entry was added.
func (r *Registry) Register(topicID, name string) bool {
	if _, ok := r.names[topicID]; ok {
		return false
	}
	r.names[topicID] = name
	return true
}

// Name returns the registered name for topicID.
func (r *Registry) Name(topicID string) (string, bool) {
	n, ok := r.names[topicID]
	return n, ok
}

// Len returns the number of registered topics.
func (r *Registry) Len() int { return len(r.names) }

// Sorted returns all topics ordered by [CompareTopicIDs].
func (r *Registry) Sorted() []Topic {
	out := make([]Topic, 0, len(r.names))
	for id, name := range r.names {
		out = append(out, Topic{ID: id, Name: name})
	}
	slices.SortFunc(out, func(a, b Topic) int { return CompareTopicIDs(a.ID, b.ID) })
	return out
}

// CompareTopicIDs orders topic IDs numerically ascending. Non-numeric IDs
// sort after every numeric ID, lexicographically among themselves.
// Numerically equal IDs ("7" and "07") fall back to string order.
func CompareTopicIDs(a, b string) int {
	na, errA := strconv.ParseInt(strings.TrimSpace(a), 10, 64)
	nb, errB := strconv.ParseInt(strings.TrimSpace(b), 10, 64)
	switch {
	case errA == nil && errB == nil:
		if c := cmp.Compare(na, nb); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
