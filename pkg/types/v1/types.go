package v1

import (
	"fmt"
	"strings"
)

type ID int

// User is a single directory entry. Users are immutable once fetched.
type User struct {
	ID      ID      `json:"id" yaml:"id"`
	Name    string  `json:"name" yaml:"name"`
	Email   string  `json:"email" yaml:"email"`
	Phone   string  `json:"phone,omitempty" yaml:"phone,omitempty"`
	Address Address `json:"address" yaml:"address"`
	Company string  `json:"company" yaml:"company"`
}

type Address struct {
	Street  string `json:"street" yaml:"street"`
	Suite   string `json:"suite" yaml:"suite"`
	City    string `json:"city" yaml:"city"`
	Zipcode string `json:"zipcode" yaml:"zipcode"`
}

// String formats the address the way the table displays it.
func (a Address) String() string {
	parts := []string{}
	for _, p := range []string{a.Suite, a.Street, a.City, a.Zipcode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Column returns the string value of a sortable column. The second return is
// false when the column is not sortable.
func (u User) Column(name string) (string, bool) {
	switch name {
	case ColumnName:
		return u.Name, true
	case ColumnEmail:
		return u.Email, true
	case ColumnCity:
		return u.Address.City, true
	case ColumnCompany:
		return u.Company, true
	}
	return "", false
}

// Post is a single post authored by a user, shown in the detail view.
type Post struct {
	ID     ID     `json:"id" yaml:"id"`
	UserID ID     `json:"userId" yaml:"userId"`
	Title  string `json:"title" yaml:"title"`
	Body   string `json:"body" yaml:"body"`
}

// AsMarkdown renders a user's posts as a single markdown document.
func AsMarkdown(u User, posts []Post) string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "# %s\n\n", u.Name)
	if u.Email != "" {
		fmt.Fprintf(&b, "* **email:** %s\n", u.Email)
	}
	if u.Phone != "" {
		fmt.Fprintf(&b, "* **phone:** %s\n", u.Phone)
	}
	if addr := u.Address.String(); addr != "" {
		fmt.Fprintf(&b, "* **address:** %s\n", addr)
	}
	if u.Company != "" {
		fmt.Fprintf(&b, "* **company:** %s\n", u.Company)
	}
	fmt.Fprintf(&b, "\n## Posts (%d)\n\n", len(posts))
	for _, p := range posts {
		fmt.Fprintf(&b, "### %s\n\n%s\n\n", p.Title, p.Body)
	}
	return b.String()
}

type SyncStatus string

const (
	StatusUninitialized SyncStatus = "uninitialized"
	StatusOK            SyncStatus = "ok"
	StatusSynchronizing SyncStatus = "synchronizing"
	StatusError         SyncStatus = "error"
)
