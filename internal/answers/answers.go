// Package answers maintains the case-insensitive set of canonical answers
// used to keep generated quizzes from repeating themselves, both within a
// single generation batch and across every quiz ever generated.
package answers

import (
	"sort"

	"github.com/akale/trivio/internal/match"
)

// Set is a set of normalized (trimmed, lower-cased) answer strings.
// Entries only accumulate; there is no removal operation. Deleting a quiz
// does not free its answers, which keeps future generations diverse.
type Set struct {
	members map[string]struct{}
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{members: make(map[string]struct{})}
}

// FromMembers builds a Set from raw answer strings, normalizing each.
// Used when loading the persisted set from storage.
func FromMembers(raw []string) *Set {
	s := NewSet()
	for _, m := range raw {
		s.Add(m)
	}
	return s
}

// Contains reports whether the normalized form of rawAnswer is a member.
func (s *Set) Contains(rawAnswer string) bool {
	n := match.Normalize(rawAnswer)
	if n == "" {
		return false
	}
	_, ok := s.members[n]
	return ok
}

// Add inserts the normalized form of rawAnswer. Empty-after-trim strings
// are ignored.
func (s *Set) Add(rawAnswer string) {
	n := match.Normalize(rawAnswer)
	if n == "" {
		return
	}
	s.members[n] = struct{}{}
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.members)
}

// Copy returns an independent snapshot. Mutating the copy never affects
// the original; a generation run works on a copy and merges back only on
// success.
func (s *Set) Copy() *Set {
	c := NewSet()
	for m := range s.members {
		c.members[m] = struct{}{}
	}
	return c
}

// Merge inserts all of other's members.
func (s *Set) Merge(other *Set) {
	if other == nil {
		return
	}
	for m := range other.members {
		s.members[m] = struct{}{}
	}
}

// Members returns the members in sorted order, for persistence and for
// deterministic prompt construction.
func (s *Set) Members() []string {
	out := make([]string, 0, len(s.members))
	for m := range s.members {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
