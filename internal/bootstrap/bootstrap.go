// Package bootstrap wires configuration into a loaded shelf. Both the API
// server and the CLI start from here.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"bookshelf/internal/catalog"
	"bookshelf/internal/config"
	"bookshelf/internal/ingest"
	"bookshelf/internal/platform/openlibrary"
	"bookshelf/internal/shelf"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const userAgent = "bookshelf/1.0 (+https://openlibrary.org/developers/api)"

// NewShelf returns an empty shelf sized by cfg.
func NewShelf(cfg *config.Config) *shelf.Shelf {
	if cfg.Capacity == nil {
		return shelf.New()
	}
	return shelf.WithCapacity(*cfg.Capacity)
}

// OpenSource builds the configured catalog source. The returned close func
// releases any connection the source holds and is never nil.
func OpenSource(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (catalog.Source, func(), error) {
	noop := func() {}

	switch cfg.Source {
	case config.SourceFile:
		return catalog.NewFileSource(cfg.File), noop, nil

	case config.SourcePostgres:
		pool, err := OpenDB(ctx, cfg.DatabaseDSN, log)
		if err != nil {
			return nil, noop, err
		}
		src := catalog.NewPostgresSource(pool, catalog.PostgresQuery{UserID: cfg.UserID}, cfg.DBTimeout)
		return src, pool.Close, nil

	case config.SourceOpenLibrary:
		client := openlibrary.NewClient(userAgent, cfg.OpenLibraryRPS, cfg.OpenLibraryRetries)
		return catalog.NewOpenLibrarySource(client, cfg.OpenLibrarySubject, cfg.OpenLibraryLimit), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown source %q", cfg.Source)
	}
}

// OpenDB creates a pgx pool and checks it answers.
func OpenDB(ctx context.Context, dsn string, log logrus.FieldLogger) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot create db pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("cannot ping database (%s): %w", config.RedactDSN(dsn), err)
	}
	log.WithField("dsn", config.RedactDSN(dsn)).Info("database connection OK")
	return pool, nil
}

// LoadShelf opens the configured source and ingests it into a new shelf.
func LoadShelf(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*shelf.Shelf, *ingest.Run, error) {
	src, closeSource, err := OpenSource(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	defer closeSource()

	s := NewShelf(cfg)
	run, err := ingest.NewService(src, log).Run(ctx, s)
	if err != nil {
		return nil, run, fmt.Errorf("load %s: %w", src.Name(), err)
	}
	return s, run, nil
}
