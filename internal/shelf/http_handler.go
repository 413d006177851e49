package shelf

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"bookshelf/internal/book"
	"bookshelf/internal/catalog"
	"bookshelf/internal/filter"
	"bookshelf/internal/httpx"

	"github.com/sirupsen/logrus"
)

// HTTPHandler serves a single shared shelf. Reads take the read lock, adds
// take the write lock.
type HTTPHandler struct {
	mu    sync.RWMutex
	shelf *Shelf
	log   logrus.FieldLogger
}

func NewHTTPHandler(s *Shelf, log logrus.FieldLogger) *HTTPHandler {
	return &HTTPHandler{shelf: s, log: log}
}

// Routes registers the shelf endpoints on mux.
func (h *HTTPHandler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /books", h.List)
	mux.HandleFunc("POST /books", h.Add)
	mux.HandleFunc("GET /books/arranged", h.Arrange)
	mux.HandleFunc("GET /books/groups", h.Groups)
	mux.HandleFunc("GET /books/search", h.Search)
	mux.HandleFunc("GET /progress", h.Progress)
}

type groupResponse struct {
	Key   string         `json:"key"`
	Books []catalog.View `json:"books"`
}

type progressResponse struct {
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
	ToRead     int `json:"to_read"`
}

func (h *HTTPHandler) meta() map[string]interface{} {
	meta := map[string]interface{}{"total": h.shelf.Len()}
	if c, ok := h.shelf.Capacity(); ok {
		meta["capacity"] = c
	}
	return meta
}

// List handles GET /books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	httpx.JSONSuccess(w, r, catalog.NewViews(h.shelf.Books()), h.meta())
}

// Arrange handles GET /books/arranged?sort=title|published&desc=true
func (h *HTTPHandler) Arrange(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var cmp func(a, b *book.Book) int
	switch strings.ToLower(query.Get("sort")) {
	case "", "title":
		cmp = book.Compare
	case "published", "published_on":
		cmp = book.ComparePublishedOn
	case "author":
		cmp = book.CompareAuthor
	default:
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "sort must be title, published or author", nil)
		return
	}
	if query.Get("desc") == "true" {
		cmp = book.Reverse(cmp)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	httpx.JSONSuccess(w, r, catalog.NewViews(h.shelf.Arrange(cmp)), h.meta())
}

// Groups handles GET /books/groups?by=year|author|status
func (h *HTTPHandler) Groups(w http.ResponseWriter, r *http.Request) {
	by := strings.ToLower(r.URL.Query().Get("by"))

	h.mu.RLock()
	defer h.mu.RUnlock()

	var out []groupResponse
	switch by {
	case "", "year":
		out = groupsResponse(h.shelf.GroupByPublicationYear(), strconv.Itoa)
	case "author":
		out = groupsResponse(h.shelf.GroupByAuthor(), func(s string) string { return s })
	case "status":
		out = groupsResponse(h.shelf.GroupByStatus(), func(s string) string { return s })
	default:
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "by must be year, author or status", nil)
		return
	}

	httpx.JSONSuccess(w, r, out, map[string]interface{}{"groups": len(out)})
}

func groupsResponse[K comparable](g *Groups[K], format func(K) string) []groupResponse {
	out := make([]groupResponse, 0, g.Len())
	for k, books := range g.All() {
		out = append(out, groupResponse{Key: format(k), Books: catalog.NewViews(books)})
	}
	return out
}

// Search handles GET /books/search
//
// q matches titles case-insensitively. after, before, status and author
// narrow the result further. Without q every book passing the filters is
// returned.
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	f, details := searchFilter(query.Get("after"), query.Get("before"), query.Get("status"), query.Get("author"))
	if len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid search parameters", details)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	var found []*book.Book
	if q, ok := query["q"]; ok {
		found = h.shelf.FindBooksByTitle(strings.ToLower(strings.Join(q, " ")), f)
	} else {
		found = h.shelf.Filter(f)
	}

	httpx.JSONSuccess(w, r, catalog.NewViews(found), map[string]interface{}{"total": len(found)})
}

func searchFilter(after, before, status, author string) (*filter.Composite, []httpx.ErrorDetail) {
	f := filter.NewComposite()
	var details []httpx.ErrorDetail

	if after != "" {
		if y, err := strconv.Atoi(after); err != nil {
			details = append(details, httpx.ErrorDetail{Field: "after", Message: "after must be a year"})
		} else {
			f.Add(filter.After(y))
		}
	}
	if before != "" {
		if y, err := strconv.Atoi(before); err != nil {
			details = append(details, httpx.ErrorDetail{Field: "before", Message: "before must be a year"})
		} else {
			f.Add(filter.Before(y))
		}
	}
	if status != "" {
		if s, err := book.ParseStatus(status); err != nil {
			details = append(details, httpx.ErrorDetail{Field: "status", Message: err.Error()})
		} else {
			f.Add(filter.ByStatus(s))
		}
	}
	if author != "" {
		f.Add(filter.ByAuthor(author))
	}
	return f, details
}

// Progress handles GET /progress
func (h *HTTPHandler) Progress(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	p := h.shelf.Progress()
	meta := h.meta()
	h.mu.RUnlock()

	httpx.JSONSuccess(w, r, progressResponse{
		Completed:  p.Completed(),
		InProgress: p.InProgress(),
		ToRead:     p.ToRead(),
	}, meta)
}

// Add handles POST /books. The body is a catalog.Record; unknown fields,
// status included, are rejected.
func (h *HTTPHandler) Add(w http.ResponseWriter, r *http.Request) {
	var rec catalog.Record
	dec := json.NewDecoder(r.Body)
	// Status is derived from the reading dates and cannot be sent.
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", nil)
		return
	}

	if errs := rec.Validate(); len(errs) > 0 {
		details := make([]httpx.ErrorDetail, len(errs))
		for i, e := range errs {
			details[i] = httpx.ErrorDetail{Field: e.Field, Message: e.Message}
		}
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid book", details)
		return
	}

	b, err := rec.Book()
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	h.mu.Lock()
	err = h.shelf.Add(b)
	h.mu.Unlock()

	if err != nil {
		if errors.Is(err, ErrCapacityReached) {
			httpx.JSONError(w, r, http.StatusConflict, "CAPACITY_REACHED", err.Error(), nil)
			return
		}
		httpx.Logger(r, h.log).WithError(err).Error("add book")
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.Logger(r, h.log).WithField("title", b.Title()).Info("book added")
	httpx.JSONCreated(w, r, catalog.NewView(b))
}
