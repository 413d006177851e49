package catalog

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// Querier is the part of pgxpool.Pool used by PostgresSource.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresQuery narrows what PostgresSource reads.
type PostgresQuery struct {
	// UserID selects whose reading timeline is joined in. Empty means every
	// book comes back unread.
	UserID string
	Limit  uint64
}

// PostgresSource reads books and one user's reading timeline from the
// library database. It never writes. A reading list entry marked READING
// started on its created_at; one marked FINISHED also finished on its
// updated_at.
type PostgresSource struct {
	db      Querier
	query   PostgresQuery
	timeout time.Duration
}

func NewPostgresSource(db Querier, q PostgresQuery, timeout time.Duration) *PostgresSource {
	return &PostgresSource{db: db, query: q, timeout: timeout}
}

func (s *PostgresSource) Name() string {
	return "postgres"
}

func (s *PostgresSource) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// authorsColumn joins the author names kept in the Open Library payload of
// catalog_sources; books without a payload get an empty author.
const authorsColumn = `COALESCE((SELECT string_agg(a->>'name', ', ') FROM jsonb_array_elements(cs.raw_json::jsonb->'authors') a), '')`

func buildQuery(q PostgresQuery) (string, []any, error) {
	builder := sq.Select(
		"b.title",
		authorsColumn,
		"b.published_date::text",
	).
		From("books b").
		LeftJoin("catalog_sources cs ON cs.entity_type = 'BOOK' AND cs.provider = 'OPEN_LIBRARY' AND cs.entity_key = b.isbn").
		OrderBy("b.created_at ASC", "b.title ASC").
		PlaceholderFormat(sq.Dollar)

	if q.UserID != "" {
		builder = builder.
			Columns(
				"CASE WHEN ub.status IN ('READING', 'FINISHED') THEN ub.created_at END",
				"CASE WHEN ub.status = 'FINISHED' THEN ub.updated_at END",
			).
			LeftJoin("user_books ub ON ub.book_id = b.id AND ub.user_id = ?", q.UserID)
	} else {
		builder = builder.Columns("NULL::timestamptz", "NULL::timestamptz")
	}

	if q.Limit > 0 {
		builder = builder.Limit(q.Limit)
	}
	return builder.ToSql()
}

func (s *PostgresSource) Fetch(ctx context.Context) ([]Record, error) {
	query, args, err := buildQuery(s.query)
	if err != nil {
		return nil, fmt.Errorf("build books query: %w", err)
	}

	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	rows, err := s.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			r                   Record
			publishedOn         *string
			startedAt, finishAt *time.Time
		)
		if err := rows.Scan(&r.Title, &r.Author, &publishedOn, &startedAt, &finishAt); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		// A missing date is left empty so validation rejects just this row.
		if publishedOn != nil {
			r.PublishedOn = *publishedOn
		}
		if startedAt != nil {
			r.StartedOn = startedAt.UTC().Format(time.DateOnly)
		}
		if finishAt != nil {
			r.FinishedOn = finishAt.UTC().Format(time.DateOnly)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
