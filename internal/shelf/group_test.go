package shelf

import (
	"testing"
	"time"

	"bookshelf/internal/book"
	"bookshelf/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShelf_GroupByPublicationYear(t *testing.T) {
	b := testutil.NewBooks()
	s := New()
	require.NoError(t, s.Add(b.EffectiveJava, b.CodeComplete, b.MythicalManMonth, b.CleanCode))

	groups := s.GroupByPublicationYear()

	assert.Equal(t, 3, groups.Len())
	assert.Equal(t, []int{2008, 2004, 1975}, groups.Keys())
	assert.Equal(t, []*book.Book{b.EffectiveJava, b.CleanCode}, groups.Get(2008))
	assert.Equal(t, []*book.Book{b.CodeComplete}, groups.Get(2004))
	assert.Equal(t, []*book.Book{b.MythicalManMonth}, groups.Get(1975))
	assert.Nil(t, groups.Get(1999))
}

func TestShelf_GroupBy(t *testing.T) {
	b := testutil.NewBooks()
	s := New()
	require.NoError(t, s.Add(b.EffectiveJava, b.CodeComplete, b.MythicalManMonth, b.CleanCode))

	t.Run("by author", func(t *testing.T) {
		groups := s.GroupByAuthor()
		assert.Equal(t, 4, groups.Len())
		assert.Equal(t, []*book.Book{b.EffectiveJava}, groups.Get("Joshua Bloch"))
		assert.Equal(t, []*book.Book{b.CodeComplete}, groups.Get("Steve McConnel"))
		assert.Equal(t, []*book.Book{b.MythicalManMonth}, groups.Get("Frederick Phillips Brooks"))
		assert.Equal(t, []*book.Book{b.CleanCode}, groups.Get("Robert C. Martin"))
	})

	t.Run("by caller key", func(t *testing.T) {
		groups := GroupBy(s, func(bk *book.Book) bool {
			return bk.PublishedOn().Year() >= 2000
		})
		assert.Equal(t, []bool{true, false}, groups.Keys())
		assert.Equal(t, []*book.Book{b.EffectiveJava, b.CodeComplete, b.CleanCode}, groups.Get(true))
	})

	t.Run("by status", func(t *testing.T) {
		other := New()
		bb := testutil.NewBooks()
		require.NoError(t, other.Add(bb.EffectiveJava, bb.CleanCode))
		bb.CleanCode.StartReading(testutil.Date(2016, time.September, 1))

		groups := other.GroupByStatus()
		assert.Equal(t, []string{book.StatusToRead, book.StatusReading}, groups.Keys())
	})

	t.Run("empty shelf", func(t *testing.T) {
		groups := New().GroupByPublicationYear()
		assert.Zero(t, groups.Len())
		assert.Empty(t, groups.Keys())
	})

	t.Run("nil key or shelf", func(t *testing.T) {
		groups := GroupBy[string](s, nil)
		assert.Zero(t, groups.Len())
		assert.Nil(t, groups.Get(""))

		groups = GroupBy(nil, (*book.Book).Author)
		assert.Zero(t, groups.Len())
	})

	t.Run("bucket copies do not leak", func(t *testing.T) {
		groups := s.GroupByPublicationYear()
		bucket := groups.Get(2008)
		bucket[0] = nil
		assert.Equal(t, []*book.Book{b.EffectiveJava, b.CleanCode}, groups.Get(2008))
	})

	t.Run("all iterates in key order", func(t *testing.T) {
		var keys []int
		var sizes []int
		for year, books := range s.GroupByPublicationYear().All() {
			keys = append(keys, year)
			sizes = append(sizes, len(books))
		}
		assert.Equal(t, []int{2008, 2004, 1975}, keys)
		assert.Equal(t, []int{2, 1, 1}, sizes)
	})
}
