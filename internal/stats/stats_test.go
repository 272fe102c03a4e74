// file: internal/stats/stats_test.go
// version: 1.0.0
// guid: 415557da-5e59-4341-a486-ae55d207e236

package stats

import (
	"testing"

	"github.com/jdfalk/bookshelf/internal/history"
	"github.com/jdfalk/bookshelf/internal/kvstore"
	"github.com/jdfalk/bookshelf/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticHistory []string

func (h staticHistory) List() []string { return h }

func TestTopTermsCaseInsensitive(t *testing.T) {
	kv := kvstore.New(kvstore.NewMemoryBackend())
	h := history.New(kv)
	e := New(h)

	for _, term := range []string{"Dune", "dune", "Dune"} {
		require.NoError(t, h.Record(term))
	}
	assert.Equal(t, []models.TermCount{{Term: "dune", Count: 3}}, e.TopTerms(1))
}

func TestTopTermsEmptyHistory(t *testing.T) {
	e := New(staticHistory(nil))
	got := e.TopTerms(3)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, "-", e.Summary(3))
}

func TestTopTermsSmallVocabulary(t *testing.T) {
	e := New(staticHistory{"a", "B", "b"})
	got := e.TopTerms(5)
	assert.Equal(t, []models.TermCount{{Term: "b", Count: 2}, {Term: "a", Count: 1}}, got)
}

func TestTopTermsTiesKeepFirstSeenOrder(t *testing.T) {
	entries := []string{"fantasy", "Romance", "history", "FANTASY", "romance", "science", "History"}
	got := TopTerms(entries, 3)
	assert.Equal(t, []models.TermCount{
		{Term: "fantasy", Count: 2},
		{Term: "romance", Count: 2},
		{Term: "history", Count: 2},
	}, got)

	got = TopTerms(entries, 10)
	assert.Equal(t, models.TermCount{Term: "science", Count: 1}, got[3])
}

func TestTopTermsRanking(t *testing.T) {
	entries := []string{"x", "y", "y", "z", "z", "z", "x", "w"}
	got := TopTerms(entries, 3)
	assert.Equal(t, []models.TermCount{
		{Term: "z", Count: 3},
		{Term: "x", Count: 2},
		{Term: "y", Count: 2},
	}, got)
}

func TestTopTermsNonPositiveK(t *testing.T) {
	assert.Empty(t, TopTerms([]string{"a"}, 0))
	assert.Empty(t, TopTerms([]string{"a"}, -1))
}

func TestTopTermsKeepsWhitespaceDistinct(t *testing.T) {
	got := TopTerms([]string{"dune", " dune"}, 5)
	assert.Len(t, got, 2)
}

func TestTopTermsUnicodeLowering(t *testing.T) {
	got := TopTerms([]string{"ÉMILE", "émile", "Émile"}, 1)
	assert.Equal(t, []models.TermCount{{Term: "émile", Count: 3}}, got)
}

func TestTopTermsRecomputedAfterHistoryChange(t *testing.T) {
	h := staticHistory{"a"}
	e := New(&h)
	assert.Equal(t, "a (1)", e.Summary(3))

	h = append(h, "b", "b")
	assert.Equal(t, "b (2), a (1)", e.Summary(3))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "-", Summary(nil))
	assert.Equal(t, "dune (3), tolkien (1)", Summary([]models.TermCount{
		{Term: "dune", Count: 3},
		{Term: "tolkien", Count: 1},
	}))
}
