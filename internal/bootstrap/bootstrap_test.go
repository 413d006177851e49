package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"bookshelf/internal/config"
	"bookshelf/internal/ingest"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const booksYAML = `books:
  - title: Effective Java
    author: Joshua Bloch
    published_on: "2008-05-08"
    started_on: "2016-07-01"
    finished_on: "2016-07-31"
  - title: Code Complete
    author: Steve McConnel
    published_on: "2004-06-09"
  - title: Clean Code
    author: Robert C. Martin
    published_on: "2008-08-01"
`

func writeBooks(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "books.yaml")
	require.NoError(t, os.WriteFile(p, []byte(booksYAML), 0o644))
	return p
}

func TestNewShelf(t *testing.T) {
	s := NewShelf(&config.Config{})
	_, bounded := s.Capacity()
	assert.False(t, bounded)

	two := 2
	s = NewShelf(&config.Config{Capacity: &two})
	c, bounded := s.Capacity()
	assert.True(t, bounded)
	assert.Equal(t, 2, c)
}

func TestLoadShelf_File(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	cfg := &config.Config{Source: config.SourceFile, File: writeBooks(t)}

	s, run, err := LoadShelf(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.Equal(t, ingest.StatusCompleted, run.Status)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 33, s.Progress().Completed())
}

func TestLoadShelf_CapacityIsNotAnError(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	one := 1
	cfg := &config.Config{Source: config.SourceFile, File: writeBooks(t), Capacity: &one}

	s, run, err := LoadShelf(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.Equal(t, ingest.StatusCapacityReached, run.Status)
	assert.Equal(t, 1, s.Len())
}

func TestLoadShelf_MissingFile(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	cfg := &config.Config{Source: config.SourceFile, File: filepath.Join(t.TempDir(), "nope.yaml")}

	_, run, err := LoadShelf(context.Background(), cfg, logger)
	assert.Error(t, err)
	require.NotNil(t, run)
	assert.Equal(t, ingest.StatusFailed, run.Status)
}

func TestOpenSource_Unknown(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	_, closeFn, err := OpenSource(context.Background(), &config.Config{Source: "s3"}, logger)
	assert.Error(t, err)
	assert.NotNil(t, closeFn)
}

func TestOpenSource_OpenLibrary(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	cfg := &config.Config{Source: config.SourceOpenLibrary, OpenLibrarySubject: "go", OpenLibraryRPS: 1, OpenLibraryLimit: 5}
	src, closeFn, err := OpenSource(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer closeFn()
	assert.Equal(t, "openlibrary:go", src.Name())
}
