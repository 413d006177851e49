// Package filter holds predicates over books and their composition.
//
// Every filter answers false for a nil book.
package filter

import (
	"strings"
	"time"

	"bookshelf/internal/book"
)

// Filter decides whether a book matches.
type Filter interface {
	Apply(b *book.Book) bool
}

// Func adapts a plain function to a Filter.
type Func func(b *book.Book) bool

func (f Func) Apply(b *book.Book) bool {
	return b != nil && f(b)
}

// MatchAll matches every non-nil book.
var MatchAll Filter = Func(func(*book.Book) bool { return true })

// PublishedYear compares a book's publication date against a year boundary.
type PublishedYear struct {
	boundary time.Time
	after    bool
}

// After matches books published strictly later than December 31 of year.
func After(year int) PublishedYear {
	return PublishedYear{
		boundary: time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
		after:    true,
	}
}

// Before matches books published strictly earlier than January 1 of year.
func Before(year int) PublishedYear {
	return PublishedYear{
		boundary: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f PublishedYear) Apply(b *book.Book) bool {
	if b == nil {
		return false
	}
	if f.after {
		return b.PublishedOn().After(f.boundary)
	}
	return b.PublishedOn().Before(f.boundary)
}

// Composite ANDs an ordered list of filters. Apply always evaluates every
// member, even after one has already failed.
type Composite struct {
	filters []Filter
}

func NewComposite(filters ...Filter) *Composite {
	c := &Composite{}
	for _, f := range filters {
		c.Add(f)
	}
	return c
}

// Add appends f. Nil filters are ignored.
func (c *Composite) Add(f Filter) {
	if f == nil {
		return
	}
	c.filters = append(c.filters, f)
}

func (c *Composite) Len() int {
	return len(c.filters)
}

// Apply matches when all members match. An empty composite matches any non-nil book.
func (c *Composite) Apply(b *book.Book) bool {
	matched := true
	for _, f := range c.filters {
		matched = f.Apply(b) && matched
	}
	return matched && b != nil
}

// TitleContains matches books whose lowercased title contains query as given.
// Callers lowercase the query themselves. An empty query matches nothing.
func TitleContains(query string) Filter {
	return Func(func(b *book.Book) bool {
		return query != "" && strings.Contains(strings.ToLower(b.Title()), query)
	})
}

// ByStatus matches books in the given reading status (see book.Status).
func ByStatus(status string) Filter {
	return Func(func(b *book.Book) bool {
		return b.Status() == status
	})
}

// ByAuthor matches the author name, ignoring case.
func ByAuthor(author string) Filter {
	return Func(func(b *book.Book) bool {
		return strings.EqualFold(b.Author(), author)
	})
}
