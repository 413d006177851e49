// Package shelf keeps an ordered, optionally bounded collection of books and
// answers arrangement, grouping, progress and search queries over it.
//
// A Shelf is not safe for concurrent use. Callers that share one across
// goroutines must synchronise access themselves.
package shelf

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"bookshelf/internal/book"
	"bookshelf/internal/filter"
)

// ErrCapacityReached is returned by Add when the shelf is full.
var ErrCapacityReached = errors.New("shelf capacity reached")

// CapacityReachedError carries the configured capacity of the full shelf.
type CapacityReachedError struct {
	Capacity int
}

func (e *CapacityReachedError) Error() string {
	return fmt.Sprintf("shelf capacity of %d is reached, you can't add more books", e.Capacity)
}

func (e *CapacityReachedError) Unwrap() error {
	return ErrCapacityReached
}

// Shelf holds books in insertion order.
type Shelf struct {
	books    []*book.Book
	capacity int
	bounded  bool
}

// New returns a shelf without a capacity limit.
func New() *Shelf {
	return &Shelf{}
}

// WithCapacity returns a shelf that holds at most capacity books.
// A negative capacity is treated as zero.
func WithCapacity(capacity int) *Shelf {
	return &Shelf{capacity: max(capacity, 0), bounded: true}
}

// Capacity returns the limit and whether the shelf is bounded at all.
func (s *Shelf) Capacity() (int, bool) {
	return s.capacity, s.bounded
}

func (s *Shelf) Len() int {
	return len(s.books)
}

// Add appends books in argument order. It stops at the first book that does
// not fit; books added before it stay on the shelf. Nil books are skipped.
func (s *Shelf) Add(books ...*book.Book) error {
	for _, b := range books {
		if b == nil {
			continue
		}
		if s.bounded && len(s.books) == s.capacity {
			return &CapacityReachedError{Capacity: s.capacity}
		}
		s.books = append(s.books, b)
	}
	return nil
}

// Books returns the shelf contents in insertion order. The slice is a copy.
func (s *Shelf) Books() []*book.Book {
	return slices.Clone(s.books)
}

// Arrange returns the books sorted by cmp, or by title when cmp is nil.
// Books that compare equal keep their insertion order.
func (s *Shelf) Arrange(cmp func(a, b *book.Book) int) []*book.Book {
	if cmp == nil {
		cmp = book.Compare
	}
	out := slices.Clone(s.books)
	slices.SortStableFunc(out, cmp)
	return out
}

// FindBooksByTitle returns books whose lowercased title contains query and that
// match f, in insertion order. query is used as given. A nil f matches every
// book; an empty query matches none.
func (s *Shelf) FindBooksByTitle(query string, f filter.Filter) []*book.Book {
	if f == nil {
		f = filter.MatchAll
	}
	out := []*book.Book{}
	if query == "" {
		return out
	}
	for _, b := range s.books {
		if strings.Contains(strings.ToLower(b.Title()), query) && f.Apply(b) {
			out = append(out, b)
		}
	}
	return out
}

// Filter returns the books matching f in insertion order.
func (s *Shelf) Filter(f filter.Filter) []*book.Book {
	out := []*book.Book{}
	if f == nil {
		return out
	}
	for _, b := range s.books {
		if f.Apply(b) {
			out = append(out, b)
		}
	}
	return out
}
