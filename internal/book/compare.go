package book

import "strings"

// Compare is the natural order of books: by title, byte-wise and case-sensitive.
func Compare(a, b *Book) int {
	return strings.Compare(a.id.Title, b.id.Title)
}

// ComparePublishedOn orders books from the oldest publication date.
func ComparePublishedOn(a, b *Book) int {
	return a.id.PublishedOn.Compare(b.id.PublishedOn)
}

// CompareAuthor orders books by author name.
func CompareAuthor(a, b *Book) int {
	return strings.Compare(a.id.Author, b.id.Author)
}

// Reverse inverts an ordering.
func Reverse(cmp func(a, b *Book) int) func(a, b *Book) int {
	return func(a, b *Book) int {
		return cmp(b, a)
	}
}
