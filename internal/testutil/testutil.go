package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"bookshelf/internal/book"
)

// Date builds a UTC calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Books is a fresh set of the classic fixture books. Every call returns new
// instances so reading state never leaks between tests.
type Books struct {
	EffectiveJava    *book.Book
	CodeComplete     *book.Book
	MythicalManMonth *book.Book
	CleanCode        *book.Book
	Refactoring      *book.Book
}

func NewBooks() Books {
	return Books{
		EffectiveJava:    book.New("Effective Java", "Joshua Bloch", Date(2008, time.May, 8)),
		CodeComplete:     book.New("Code Complete", "Steve McConnel", Date(2004, time.June, 9)),
		MythicalManMonth: book.New("The Mythical Man-Month", "Frederick Phillips Brooks", Date(1975, time.January, 1)),
		CleanCode:        book.New("Clean Code", "Robert C. Martin", Date(2008, time.August, 1)),
		Refactoring:      book.New("Refactoring: Improving the Design of Existing Code", "Martin Fowler", Date(2002, time.March, 9)),
	}
}

// All returns the five books in declaration order.
func (b Books) All() []*book.Book {
	return []*book.Book{b.EffectiveJava, b.CodeComplete, b.MythicalManMonth, b.CleanCode, b.Refactoring}
}

// NewRequest creates a new HTTP request for testing
func NewRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	if bodyBytes == nil {
		return httptest.NewRequest(method, path, nil)
	}
	r := httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
}

// RecordHTTPResponse decodes the recorded JSON body.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		_ = json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}

// ErrorCode returns error.code from an error envelope, or "".
func (r RecordResponse) ErrorCode() string {
	e, ok := r.Body["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := e["code"].(string)
	return code
}

// DataList returns the data field as a list, or nil.
func (r RecordResponse) DataList() []interface{} {
	list, _ := r.Body["data"].([]interface{})
	return list
}
