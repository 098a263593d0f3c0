package v1

import "fmt"

// Sortable columns.
const (
	ColumnName    = "name"
	ColumnEmail   = "email"
	ColumnCity    = "city"
	ColumnCompany = "company"
)

var (
	// Columns lists every sortable column in display order
	Columns = []string{ColumnName, ColumnEmail, ColumnCity, ColumnCompany}
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

func (d Direction) Arrow() string {
	if d == Descending {
		return "▼"
	}
	return "▲"
}

// SortRule orders users by a single column. Rules with a higher priority are
// applied first.
type SortRule struct {
	Column    string    `json:"column" yaml:"column" validate:"required,oneof=name email city company"`
	Direction Direction `json:"direction" yaml:"direction" validate:"required,oneof=asc desc"`
	Priority  int       `json:"priority" yaml:"priority" validate:"gte=1"`
}

func (r SortRule) String() string {
	return fmt.Sprintf("%s %s (%d)", r.Column, r.Direction, r.Priority)
}

// IsColumn reports whether name is a sortable column.
func IsColumn(name string) bool {
	for _, c := range Columns {
		if c == name {
			return true
		}
	}
	return false
}
