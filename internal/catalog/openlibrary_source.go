package catalog

import (
	"context"
	"fmt"
	"strings"

	"bookshelf/internal/platform/openlibrary"
)

type OpenLibraryClient interface {
	SearchBooks(ctx context.Context, subject string, limit int) (*openlibrary.SearchResponse, error)
}

// OpenLibrarySource turns an Open Library subject search into unread
// records. Only the first publication year is known, so books are dated
// January 1 of that year; docs without a year come back without a date and
// fail validation downstream.
type OpenLibrarySource struct {
	client  OpenLibraryClient
	subject string
	limit   int
}

func NewOpenLibrarySource(client OpenLibraryClient, subject string, limit int) *OpenLibrarySource {
	return &OpenLibrarySource{client: client, subject: subject, limit: limit}
}

func (s *OpenLibrarySource) Name() string {
	return "openlibrary:" + s.subject
}

func (s *OpenLibrarySource) Fetch(ctx context.Context) ([]Record, error) {
	res, err := s.client.SearchBooks(ctx, s.subject, s.limit)
	if err != nil {
		return nil, fmt.Errorf("search open library for %s: %w", s.subject, err)
	}

	out := make([]Record, 0, len(res.Docs))
	for _, doc := range res.Docs {
		r := Record{
			Title:  doc.Title,
			Author: strings.Join(doc.AuthorNames, ", "),
		}
		if doc.FirstPublishYear > 0 {
			r.PublishedOn = fmt.Sprintf("%04d-01-01", doc.FirstPublishYear)
		}
		out = append(out, r)
	}
	return out, nil
}
