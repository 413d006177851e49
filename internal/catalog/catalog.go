// Package catalog describes books coming from outside the shelf and the
// sources they are read from.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookshelf/internal/book"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidRecord is returned when a record fails validation.
var ErrInvalidRecord = errors.New("invalid book record")

// Record is the external form of a book. Dates are YYYY-MM-DD.
type Record struct {
	Title       string `json:"title" yaml:"title" validate:"required"`
	Author      string `json:"author" yaml:"author" validate:"required"`
	PublishedOn string `json:"published_on" yaml:"published_on" validate:"required,datetime=2006-01-02"`
	StartedOn   string `json:"started_on,omitempty" yaml:"started_on,omitempty" validate:"omitempty,datetime=2006-01-02"`
	FinishedOn  string `json:"finished_on,omitempty" yaml:"finished_on,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// View is the outgoing form of a book: its record plus the derived reading
// status. Status is never read back.
type View struct {
	Record
	Status string `json:"status"`
}

// Source yields records from some external system.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]Record, error)
}

var validate = validator.New()

// FieldError describes one invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// trimmed returns r with surrounding blanks removed from title and author.
func (r Record) trimmed() Record {
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
	return r
}

// Validate returns nil for a valid record. Title and author are checked
// after trimming, so blank values count as missing.
func (r Record) Validate() []FieldError {
	r = r.trimmed()
	var out []FieldError
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return []FieldError{{Field: "record", Message: err.Error()}}
		}
		for _, fe := range verrs {
			out = append(out, FieldError{
				Field:   jsonName(fe.Field()),
				Message: message(fe),
			})
		}
	}
	if r.FinishedOn != "" && r.StartedOn == "" {
		out = append(out, FieldError{Field: "started_on", Message: "started_on is required when finished_on is set"})
	}
	return out
}

func message(fe validator.FieldError) string {
	field := jsonName(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "datetime":
		return fmt.Sprintf("%s must be a date formatted as YYYY-MM-DD", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func jsonName(field string) string {
	switch field {
	case "PublishedOn":
		return "published_on"
	case "StartedOn":
		return "started_on"
	case "FinishedOn":
		return "finished_on"
	default:
		return strings.ToLower(field)
	}
}

// Book validates r and converts it into a shelf book.
func (r Record) Book() (*book.Book, error) {
	if errs := r.Validate(); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Message
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidRecord, strings.Join(msgs, "; "))
	}

	r = r.trimmed()
	published, _ := time.Parse(time.DateOnly, r.PublishedOn)
	b := book.New(r.Title, r.Author, published)
	if r.StartedOn != "" {
		started, _ := time.Parse(time.DateOnly, r.StartedOn)
		b.StartReading(started)
	}
	if r.FinishedOn != "" {
		finished, _ := time.Parse(time.DateOnly, r.FinishedOn)
		b.FinishReading(finished)
	}
	return b, nil
}

// FromBook renders b as a record.
func FromBook(b *book.Book) Record {
	r := Record{
		Title:       b.Title(),
		Author:      b.Author(),
		PublishedOn: b.PublishedOn().Format(time.DateOnly),
	}
	if started, ok := b.StartedOn(); ok {
		r.StartedOn = started.Format(time.DateOnly)
	}
	if finished, ok := b.FinishedOn(); ok {
		r.FinishedOn = finished.Format(time.DateOnly)
	}
	return r
}

func NewView(b *book.Book) View {
	return View{Record: FromBook(b), Status: b.Status()}
}

// NewViews renders every book, keeping order.
func NewViews(books []*book.Book) []View {
	out := make([]View, len(books))
	for i, b := range books {
		out[i] = NewView(b)
	}
	return out
}
