package ingest

import (
	"context"
	"errors"
	"testing"

	"bookshelf/internal/book"
	"bookshelf/internal/catalog"
	"bookshelf/internal/shelf"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) Name() string {
	return "mock"
}

func (m *mockSource) Fetch(ctx context.Context) ([]catalog.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Record), args.Error(1)
}

var records = []catalog.Record{
	{Title: "Effective Java", Author: "Joshua Bloch", PublishedOn: "2008-05-08", StartedOn: "2016-07-01", FinishedOn: "2016-07-31"},
	{Title: "Code Complete", Author: "Steve McConnel", PublishedOn: "2004-06-09", StartedOn: "2016-08-01"},
	{Title: "", Author: "Nobody", PublishedOn: "2004-06-09"},
	{Title: "The Mythical Man-Month", Author: "Frederick Phillips Brooks", PublishedOn: "1975-01-01"},
	{Title: "Clean Code", Author: "Robert C. Martin", PublishedOn: "2008-08-01"},
}

func TestService_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("adds valid records and rejects invalid ones", func(t *testing.T) {
		src := new(mockSource)
		src.On("Fetch", ctx).Return(records, nil)
		logger, hook := logtest.NewNullLogger()

		s := shelf.New()
		run, err := NewService(src, logger).Run(ctx, s)
		require.NoError(t, err)

		assert.Equal(t, StatusCompleted, run.Status)
		assert.Equal(t, "mock", run.Source)
		assert.Equal(t, 5, run.Fetched)
		assert.Equal(t, 4, run.Added)
		require.Len(t, run.Rejected, 1)
		assert.Equal(t, "Nobody", run.Rejected[0].Record.Author)
		assert.NotNil(t, run.FinishedAt)

		assert.Equal(t, 4, s.Len())
		books := s.Books()
		assert.True(t, books[0].IsRead())
		assert.True(t, books[1].IsInProgress())
		assert.Equal(t, book.StatusToRead, books[2].Status())

		assert.Equal(t, "ingest finished", hook.LastEntry().Message)
		assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
		src.AssertExpectations(t)
	})

	t.Run("stops when the shelf is full", func(t *testing.T) {
		src := new(mockSource)
		src.On("Fetch", ctx).Return(records, nil)
		logger, _ := logtest.NewNullLogger()

		s := shelf.WithCapacity(2)
		run, err := NewService(src, logger).Run(ctx, s)
		require.NoError(t, err)

		assert.Equal(t, StatusCapacityReached, run.Status)
		assert.Equal(t, 2, run.Added)
		assert.Equal(t, 2, run.Skipped)
		assert.Len(t, run.Rejected, 1)
		assert.Equal(t, 2, s.Len())
	})

	t.Run("fetch error fails the run", func(t *testing.T) {
		src := new(mockSource)
		src.On("Fetch", ctx).Return(nil, errors.New("db down"))
		logger, _ := logtest.NewNullLogger()

		s := shelf.New()
		run, err := NewService(src, logger).Run(ctx, s)
		assert.EqualError(t, err, "db down")
		assert.Equal(t, StatusFailed, run.Status)
		assert.Equal(t, "db down", run.Error)
		assert.Zero(t, s.Len())
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		src := new(mockSource)
		src.On("Fetch", cctx).Return(records, nil)
		logger, _ := logtest.NewNullLogger()

		run, err := NewService(src, logger).Run(cctx, shelf.New())
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, StatusFailed, run.Status)
	})
}
