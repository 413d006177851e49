package book

import (
	"fmt"
	"strings"
	"time"
)

// Reading status derived from a book's reading timeline.
const (
	StatusToRead   = "TO_READ"
	StatusReading  = "READING"
	StatusFinished = "FINISHED"
)

// ParseStatus accepts a status name in any case.
func ParseStatus(s string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case StatusToRead, "UNREAD":
		return StatusToRead, nil
	case StatusReading, "IN_PROGRESS":
		return StatusReading, nil
	case StatusFinished, "READ":
		return StatusFinished, nil
	default:
		return "", fmt.Errorf("invalid status: %s", s)
	}
}

// Identity is the comparable part of a book. Two books with the same identity
// are equal regardless of how far they have been read.
type Identity struct {
	Title       string
	Author      string
	PublishedOn time.Time
}

type readingState struct {
	startedOn  *time.Time
	finishedOn *time.Time
}

// Book is a book on a shelf. Its identity never changes after New; the reading
// timeline is owned by the instance and is not shared with copies of the identity.
type Book struct {
	id      Identity
	reading readingState
}

// New creates an unread book. publishedOn is truncated to its calendar date.
func New(title, author string, publishedOn time.Time) *Book {
	return &Book{id: Identity{
		Title:       title,
		Author:      author,
		PublishedOn: Date(publishedOn),
	}}
}

// Date returns t as a calendar date at UTC midnight.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (b *Book) Title() string          { return b.id.Title }
func (b *Book) Author() string         { return b.id.Author }
func (b *Book) PublishedOn() time.Time { return b.id.PublishedOn }
func (b *Book) Identity() Identity     { return b.id }

// Equal reports whether both books share the same identity.
func (b *Book) Equal(other *Book) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.id == other.id
}

// StartReading records the day reading started. Calling it again overwrites the date.
func (b *Book) StartReading(on time.Time) {
	d := Date(on)
	b.reading.startedOn = &d
}

// FinishReading records the day reading finished. No ordering against the
// start date is enforced.
func (b *Book) FinishReading(on time.Time) {
	d := Date(on)
	b.reading.finishedOn = &d
}

func (b *Book) StartedOn() (time.Time, bool) {
	if b.reading.startedOn == nil {
		return time.Time{}, false
	}
	return *b.reading.startedOn, true
}

func (b *Book) FinishedOn() (time.Time, bool) {
	if b.reading.finishedOn == nil {
		return time.Time{}, false
	}
	return *b.reading.finishedOn, true
}

func (b *Book) IsRead() bool {
	return b.reading.startedOn != nil && b.reading.finishedOn != nil
}

func (b *Book) IsInProgress() bool {
	return b.reading.startedOn != nil && b.reading.finishedOn == nil
}

// IsUnread is true when reading never started. A finish date without a start
// date counts as unread.
func (b *Book) IsUnread() bool {
	return !b.IsRead() && !b.IsInProgress()
}

func (b *Book) Status() string {
	switch {
	case b.IsRead():
		return StatusFinished
	case b.IsInProgress():
		return StatusReading
	default:
		return StatusToRead
	}
}

func (b *Book) String() string {
	return fmt.Sprintf("Book{title=%q, author=%q, publishedOn=%s}",
		b.id.Title, b.id.Author, b.id.PublishedOn.Format(time.DateOnly))
}
