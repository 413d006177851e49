package shelf

import (
	"iter"

	"bookshelf/internal/book"
)

// Groups maps a key to the books sharing it. Keys are kept in the order they
// were first seen and every bucket keeps insertion order.
type Groups[K comparable] struct {
	keys    []K
	buckets map[K][]*book.Book
}

func (g *Groups[K]) add(k K, b *book.Book) {
	if _, ok := g.buckets[k]; !ok {
		g.keys = append(g.keys, k)
	}
	g.buckets[k] = append(g.buckets[k], b)
}

func (g *Groups[K]) Len() int {
	return len(g.keys)
}

func (g *Groups[K]) Keys() []K {
	out := make([]K, len(g.keys))
	copy(out, g.keys)
	return out
}

// Get returns a copy of the bucket for k, or nil when k is absent.
func (g *Groups[K]) Get(k K) []*book.Book {
	bucket, ok := g.buckets[k]
	if !ok {
		return nil
	}
	out := make([]*book.Book, len(bucket))
	copy(out, bucket)
	return out
}

// All yields every key with its bucket in key order.
func (g *Groups[K]) All() iter.Seq2[K, []*book.Book] {
	return func(yield func(K, []*book.Book) bool) {
		for _, k := range g.keys {
			if !yield(k, g.Get(k)) {
				return
			}
		}
	}
}

// GroupBy buckets the books of s by key. A nil shelf or key yields no groups.
func GroupBy[K comparable](s *Shelf, key func(*book.Book) K) *Groups[K] {
	g := &Groups[K]{buckets: make(map[K][]*book.Book)}
	if s == nil || key == nil {
		return g
	}
	for _, b := range s.books {
		g.add(key(b), b)
	}
	return g
}

func (s *Shelf) GroupByPublicationYear() *Groups[int] {
	return GroupBy(s, func(b *book.Book) int {
		return b.PublishedOn().Year()
	})
}

func (s *Shelf) GroupByAuthor() *Groups[string] {
	return GroupBy(s, (*book.Book).Author)
}

func (s *Shelf) GroupByStatus() *Groups[string] {
	return GroupBy(s, (*book.Book).Status)
}
