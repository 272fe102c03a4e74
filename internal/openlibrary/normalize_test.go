// file: internal/openlibrary/normalize_test.go
// version: 1.0.0
// guid: bb5de45e-5c0f-4949-8b05-e50386eba01c

package openlibrary

import (
	"encoding/json"
	"testing"

	"github.com/jdfalk/bookshelf/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestNormalizeCopiesOnlyRecordFields(t *testing.T) {
	var doc SearchDoc
	require.NoError(t, json.Unmarshal([]byte(`{
		"key": "/works/OL893415W",
		"title": "Dune",
		"author_name": ["Frank Herbert"],
		"first_publish_year": 1965,
		"cover_i": 11481354,
		"edition_count": 120,
		"language": ["eng"]
	}`), &doc))
	rec := Normalize(doc)
	assert.Equal(t, models.BookRecord{
		Key:              "/works/OL893415W",
		Title:            "Dune",
		AuthorNames:      []string{"Frank Herbert"},
		FirstPublishYear: intPtr(1965),
		CoverID:          intPtr(11481354),
	}, rec)

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.ElementsMatch(t, []string{"key", "title", "author_name", "first_publish_year", "cover_i"}, mapKeys(fields))
}

func TestNormalizeKeepsAbsentFieldsAbsent(t *testing.T) {
	rec := Normalize(SearchDoc{Key: "/works/OL1W", Title: "Bare"})
	assert.Nil(t, rec.AuthorNames)
	assert.Nil(t, rec.FirstPublishYear)
	assert.Nil(t, rec.CoverID)
}

func TestNormalizeDoesNotAliasAuthors(t *testing.T) {
	doc := SearchDoc{Key: "k", AuthorName: []string{"A"}}
	rec := Normalize(doc)
	doc.AuthorName[0] = "changed"
	assert.Equal(t, []string{"A"}, rec.AuthorNames)
}

func TestNormalizeAll(t *testing.T) {
	recs := NormalizeAll([]SearchDoc{{Key: "a"}, {Key: "b"}})
	assert.Equal(t, "a", recs[0].Key)
	assert.Equal(t, "b", recs[1].Key)
	assert.NotNil(t, NormalizeAll(nil))
}

func TestFilter(t *testing.T) {
	docs := []SearchDoc{
		{Key: "a", CoverI: intPtr(1)},
		{Key: "b"},
		{Key: "c", CoverI: intPtr(0)},
		{Key: "d", CoverI: intPtr(9)},
	}
	assert.Len(t, FilterAll.Apply(docs), 4)

	covered := FilterHasCover.Apply(docs)
	require.Len(t, covered, 2)
	assert.Equal(t, "a", covered[0].Key)
	assert.Equal(t, "d", covered[1].Key)
}

func TestParseFilter(t *testing.T) {
	assert.Equal(t, FilterHasCover, ParseFilter("hasCover"))
	assert.Equal(t, FilterHasCover, ParseFilter(" hascover "))
	assert.Equal(t, FilterAll, ParseFilter("all"))
	assert.Equal(t, FilterAll, ParseFilter(""))
	assert.Equal(t, FilterAll, ParseFilter("bogus"))
}

func TestCoverURL(t *testing.T) {
	assert.Equal(t, "https://covers.openlibrary.org/b/id/240727-M.jpg", CoverURL(240727, CoverMedium))
	assert.Equal(t, "https://covers.openlibrary.org/b/id/240727-L.jpg", CoverURL(240727, "L"))
	assert.Equal(t, "https://covers.openlibrary.org/b/id/240727-M.jpg", CoverURL(240727, "XL"))
}

func mapKeys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
