// file: internal/models/models_test.go
// version: 1.1.0
// guid: f9b2280e-f6e2-41a0-a50b-f8147c36ff92

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestNewProfileTrims(t *testing.T) {
	p, err := NewProfile("  Ann ", "\tfantasy\n")
	require.NoError(t, err)
	assert.Equal(t, Profile{Name: "Ann", Genre: "fantasy"}, p)
}

func TestNewProfileRejectsEmptyFields(t *testing.T) {
	cases := []struct {
		name, genre, field string
	}{
		{"", "fiction", "name"},
		{"   ", "fiction", "name"},
		{"Ann", "", "genre"},
		{"Ann", "  ", "genre"},
	}
	for _, tc := range cases {
		_, err := NewProfile(tc.name, tc.genre)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, tc.field, verr.Field)
	}
}

func TestDuplicateErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("add favorite: %w", &DuplicateError{Key: "/works/OL1W"})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "/works/OL1W")
}

func TestBookRecordJSONFieldNames(t *testing.T) {
	rec := BookRecord{
		Key:              "/works/OL27448W",
		Title:            "The Lord of the Rings",
		AuthorNames:      []string{"J.R.R. Tolkien"},
		FirstPublishYear: intPtr(1954),
		CoverID:          intPtr(14625765),
	}
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"key": "/works/OL27448W",
		"title": "The Lord of the Rings",
		"author_name": ["J.R.R. Tolkien"],
		"first_publish_year": 1954,
		"cover_i": 14625765
	}`, string(data))
}

func TestBookRecordAbsentFields(t *testing.T) {
	var rec BookRecord
	require.NoError(t, json.Unmarshal([]byte(`{"key":"/works/OL1W","title":"Untitled"}`), &rec))
	assert.Nil(t, rec.AuthorNames)
	assert.Nil(t, rec.FirstPublishYear)
	assert.Nil(t, rec.CoverID)
	assert.False(t, rec.HasCover())
	assert.Equal(t, "Unknown author", rec.AuthorLine())
	assert.Equal(t, "", rec.PublishedLine())
}

func TestBookRecordOmitsMissingAuthors(t *testing.T) {
	for _, authors := range [][]string{nil, {}} {
		data, err := json.Marshal(BookRecord{Key: "/works/OL1W", Title: "Anon", AuthorNames: authors})
		require.NoError(t, err)
		assert.JSONEq(t, `{"key":"/works/OL1W","title":"Anon"}`, string(data))
		assert.NotContains(t, string(data), "author_name")
	}
}

func TestBookRecordDisplayLines(t *testing.T) {
	rec := BookRecord{
		Key:              "/works/OL2W",
		AuthorNames:      []string{"Terry Pratchett", "Neil Gaiman"},
		FirstPublishYear: intPtr(1990),
		CoverID:          intPtr(7),
	}
	assert.True(t, rec.HasCover())
	assert.Equal(t, "Terry Pratchett, Neil Gaiman", rec.AuthorLine())
	assert.Equal(t, "First published: 1990", rec.PublishedLine())
}

func TestTermCountString(t *testing.T) {
	assert.Equal(t, "dune (3)", TermCount{Term: "dune", Count: 3}.String())
}
