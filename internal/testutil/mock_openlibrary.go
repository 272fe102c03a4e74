// file: internal/testutil/mock_openlibrary.go
// version: 1.1.0
// guid: c3d4e5f6-a7b8-9012-cdef-345678901abc

package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// MockOpenLibraryServer creates an httptest.Server that mimics OpenLibrary API.
// The responses map keys are matched case-insensitively against the request
// URL; unmatched requests get a 404.
// The returned counter reports how many requests reached the server.
func MockOpenLibraryServer(t *testing.T, responses map[string]string) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		target := strings.ToLower(r.URL.String())
		for pattern, body := range responses {
			if strings.Contains(target, strings.ToLower(pattern)) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(body))
				return
			}
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

// OpenLibraryDuneResponse is a search response with one covered and one
// uncovered doc.
const OpenLibraryDuneResponse = `{
	"numFound": 2,
	"start": 0,
	"docs": [{
		"key": "/works/OL893415W",
		"title": "Dune",
		"author_name": ["Frank Herbert"],
		"first_publish_year": 1965,
		"cover_i": 11481354,
		"edition_count": 120,
		"language": ["eng"]
	}, {
		"key": "/works/OL15331214W",
		"title": "Dune Messiah",
		"author_name": ["Frank Herbert"],
		"first_publish_year": 1969
	}]
}`

// OpenLibraryHobbitResponse is a standard search response for "The Hobbit".
const OpenLibraryHobbitResponse = `{
	"numFound": 1,
	"start": 0,
	"docs": [{
		"key": "/works/OL262758W",
		"title": "The Hobbit",
		"author_name": ["J.R.R. Tolkien"],
		"first_publish_year": 1937,
		"cover_i": 14627509,
		"publisher": ["Houghton Mifflin"],
		"language": ["eng"]
	}]
}`

// OpenLibraryEmptyResponse returns no results.
const OpenLibraryEmptyResponse = `{"numFound":0,"start":0,"docs":[]}`
