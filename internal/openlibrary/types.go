// file: internal/openlibrary/types.go
// version: 2.1.0
// guid: 95a53044-6899-47e1-a7a6-48595fe7c587

package openlibrary

// SearchDoc is one raw record from the Open Library search API, limited to
// the fields a BookRecord keeps. Absent numeric fields stay nil so they are
// never confused with zero.
type SearchDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name,omitempty"`
	FirstPublishYear *int     `json:"first_publish_year,omitempty"`
	CoverI           *int     `json:"cover_i,omitempty"`
}

// SearchResponse represents the API response from Open Library search
type SearchResponse struct {
	NumFound int         `json:"numFound"`
	Start    int         `json:"start"`
	Docs     []SearchDoc `json:"docs"`
}
