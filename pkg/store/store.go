// Package store holds the fetched users and the filtered, sorted view of them
// that is shown to the user.
package store

import (
	"fmt"

	"github.com/byxorna/roster/pkg/query"
	"github.com/byxorna/roster/pkg/types/v1"
)

// Ticket identifies a fetch. Only the result of the most recently issued
// ticket may replace the store contents.
type Ticket uint64

type Store struct {
	engine query.Engine

	// original is replaced wholesale on each fetch and never modified in place
	original []v1.User
	filtered []v1.User

	query string
	rules []v1.SortRule

	issued  Ticket
	applied Ticket
}

func New(engine query.Engine) *Store {
	return &Store{
		engine:   engine,
		original: []v1.User{},
		filtered: []v1.User{},
	}
}

// BeginFetch issues a ticket for a new fetch, superseding any fetch in flight.
func (s *Store) BeginFetch() Ticket {
	s.issued++
	return s.issued
}

// Replace swaps in a freshly fetched list of users and recomputes the filtered
// view. Results for a ticket older than the latest one are dropped and Replace
// returns false.
func (s *Store) Replace(t Ticket, users []v1.User) bool {
	if t != s.issued || t <= s.applied {
		return false
	}
	s.applied = t

	original := make([]v1.User, len(users))
	copy(original, users)
	s.original = original
	s.recompute()
	return true
}

// Search sets the name filter and returns the recomputed view.
func (s *Store) Search(q string) []v1.User {
	s.query = q
	s.recompute()
	return s.Filtered()
}

// ToggleSort adds or flips the sort rule for column.
func (s *Store) ToggleSort(column string) error {
	rules, err := query.ToggleColumnSort(s.rules, column)
	if err != nil {
		return err
	}
	s.rules = rules
	s.recompute()
	return nil
}

// SetRules replaces the sort rules wholesale. Rules must name sortable columns,
// at most once each.
func (s *Store) SetRules(rules []v1.SortRule) error {
	seen := map[string]bool{}
	for _, r := range rules {
		if !v1.IsColumn(r.Column) {
			return fmt.Errorf("%w: %q", query.ErrUnknownColumn, r.Column)
		}
		if seen[r.Column] {
			return fmt.Errorf("duplicate sort rule for column %q", r.Column)
		}
		seen[r.Column] = true
	}
	s.rules = append([]v1.SortRule(nil), rules...)
	s.recompute()
	return nil
}

func (s *Store) recompute() {
	s.filtered = s.engine.FilterAndSort(s.original, s.query, s.rules)
}

// Get looks a user up by id among the fetched users.
func (s *Store) Get(id v1.ID) (v1.User, bool) {
	for _, u := range s.original {
		if u.ID == id {
			return u, true
		}
	}
	return v1.User{}, false
}

func (s *Store) Original() []v1.User  { return append([]v1.User(nil), s.original...) }
func (s *Store) Filtered() []v1.User  { return append([]v1.User(nil), s.filtered...) }
func (s *Store) Rules() []v1.SortRule { return append([]v1.SortRule(nil), s.rules...) }
func (s *Store) Query() string        { return s.query }
func (s *Store) Len() int             { return len(s.original) }
func (s *Store) FilteredLen() int     { return len(s.filtered) }
