// Package query derives the displayed user list from the fetched one: a name
// search filter followed by a series of column sorts.
package query

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/byxorna/roster/pkg/types/v1"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	ErrUnknownColumn = errors.New("unknown sort column")

	// DefaultLocale is used for collation when no locale is configured
	DefaultLocale = language.English

	defaultEngine = New(DefaultLocale)
)

// Engine filters and sorts users, comparing column values with the collation
// rules of a locale.
type Engine struct {
	Locale language.Tag
}

func New(locale language.Tag) Engine {
	return Engine{Locale: locale}
}

// FilterAndSort runs the default engine.
func FilterAndSort(original []v1.User, query string, rules []v1.SortRule) []v1.User {
	return defaultEngine.FilterAndSort(original, query, rules)
}

// FilterAndSort returns a new slice holding the users of original whose name
// contains query (case insensitive), sorted by rules. Neither input is modified.
//
// Rules are applied one at a time from highest to lowest priority, each one a
// stable sort of the whole list. The lowest priority rule therefore ends up as
// the outermost key, and higher priority rules only break its ties.
func (e Engine) FilterAndSort(original []v1.User, query string, rules []v1.SortRule) []v1.User {
	return e.Sort(Filter(original, query), rules)
}

// Filter keeps users whose name contains query, ignoring case. A blank query
// keeps everything. The result is always a fresh slice.
func Filter(users []v1.User, query string) []v1.User {
	out := make([]v1.User, 0, len(users))
	if strings.TrimSpace(query) == "" {
		return append(out, users...)
	}

	needle := Fold(query)
	for _, u := range users {
		if strings.Contains(Fold(u.Name), needle) {
			out = append(out, u)
		}
	}
	return out
}

// Fold is the case folding used to match names. Anything that highlights
// matches must fold the same way.
func Fold(s string) string {
	return strings.ToLower(s)
}

// Sort returns a sorted copy of users. Rules naming unknown columns are skipped.
func (e Engine) Sort(users []v1.User, rules []v1.SortRule) []v1.User {
	out := make([]v1.User, len(users))
	copy(out, users)

	// collators keep scratch buffers, so each call gets its own
	c := collate.New(e.Locale)
	for _, r := range ByPriority(rules) {
		if !v1.IsColumn(r.Column) {
			continue
		}
		column, desc := r.Column, r.Direction == v1.Descending
		sort.SliceStable(out, func(i, j int) bool {
			a, _ := out[i].Column(column)
			b, _ := out[j].Column(column)
			if desc {
				return c.CompareString(b, a) < 0
			}
			return c.CompareString(a, b) < 0
		})
	}
	return out
}

// ByPriority returns a copy of rules ordered from highest to lowest priority.
// Rules sharing a priority keep their relative order.
func ByPriority(rules []v1.SortRule) []v1.SortRule {
	out := make([]v1.SortRule, len(rules))
	copy(out, rules)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}

// ToggleColumnSort adds an ascending rule for column, or flips the direction of
// the rule that already exists for it. New rules get priority len(rules)+1.
// Rules are never removed. The returned slice is a copy.
func ToggleColumnSort(rules []v1.SortRule, column string) ([]v1.SortRule, error) {
	if !v1.IsColumn(column) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}

	out := make([]v1.SortRule, len(rules), len(rules)+1)
	copy(out, rules)
	for i := range out {
		if out[i].Column == column {
			out[i].Direction = out[i].Direction.Flip()
			return out, nil
		}
	}

	return append(out, v1.SortRule{
		Column:    column,
		Direction: v1.Ascending,
		Priority:  len(rules) + 1,
	}), nil
}

// RuleFor returns the rule for column, if any.
func RuleFor(rules []v1.SortRule, column string) (v1.SortRule, bool) {
	for _, r := range rules {
		if r.Column == column {
			return r, true
		}
	}
	return v1.SortRule{}, false
}
