package openlibrary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SearchBooks(t *testing.T) {
	t.Run("decodes docs", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search.json", r.URL.Path)
			assert.Equal(t, "subject:software", r.URL.Query().Get("q"))
			assert.Equal(t, "2", r.URL.Query().Get("limit"))
			assert.Equal(t, "bookshelf-test", r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"numFound":2,"docs":[
				{"key":"/works/OL1W","title":"Clean Code","author_name":["Robert C. Martin"],"first_publish_year":2008},
				{"key":"/works/OL2W","title":"Code Complete","author_name":["Steve McConnell"],"first_publish_year":1993}
			]}`))
		}))
		defer srv.Close()

		c := NewClient("bookshelf-test", 100, 0).WithBaseURL(srv.URL)
		res, err := c.SearchBooks(context.Background(), "software", 2)
		require.NoError(t, err)
		require.Len(t, res.Docs, 2)
		assert.Equal(t, "Clean Code", res.Docs[0].Title)
		assert.Equal(t, []string{"Robert C. Martin"}, res.Docs[0].AuthorNames)
		assert.Equal(t, 1993, res.Docs[1].FirstPublishYear)
	})

	t.Run("client errors are not retried", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer srv.Close()

		c := NewClient("bookshelf-test", 100, 3).WithBaseURL(srv.URL)
		_, err := c.SearchBooks(context.Background(), "software", 2)
		assert.Error(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("server errors are retried", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(`{"numFound":0,"docs":[]}`))
		}))
		defer srv.Close()

		c := NewClient("bookshelf-test", 100, 1).WithBaseURL(srv.URL)
		res, err := c.SearchBooks(context.Background(), "software", 2)
		require.NoError(t, err)
		assert.Empty(t, res.Docs)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		c := NewClient("bookshelf-test", 1, 0).WithBaseURL("http://127.0.0.1:0")
		_, err := c.SearchBooks(ctx, "software", 2)
		assert.Error(t, err)
	})
}
