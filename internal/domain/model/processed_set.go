package model

import "sort"

// ProcessedSet holds the submission IDs that were already handled.
// It is not safe for concurrent use; the observer session guards it.
type ProcessedSet struct {
	ids map[string]struct{}
}

// NewProcessedSet builds a set seeded with ids.
func NewProcessedSet(ids ...string) *ProcessedSet {
	s := &ProcessedSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Has reports membership.
func (s *ProcessedSet) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Add inserts id. Empty ids are ignored.
func (s *ProcessedSet) Add(id string) {
	if id == "" {
		return
	}
	s.ids[id] = struct{}{}
}

// Len returns the number of ids.
func (s *ProcessedSet) Len() int {
	return len(s.ids)
}

// IDs returns the members in sorted order.
func (s *ProcessedSet) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
