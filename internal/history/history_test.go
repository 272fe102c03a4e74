// file: internal/history/history_test.go
// version: 1.0.0
// guid: cfa679ee-02a6-4dd7-9b01-f9dfb8513bf6

package history

import (
	"fmt"
	"testing"

	"github.com/jdfalk/bookshelf/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKV() *kvstore.Store {
	return kvstore.New(kvstore.NewMemoryBackend())
}

func TestListEmpty(t *testing.T) {
	s := New(newKV())
	h := s.List()
	assert.NotNil(t, h)
	assert.Empty(t, h)
}

func TestRecordAppendsVerbatim(t *testing.T) {
	s := New(newKV())
	terms := []string{"Dune", "dune", "Dune", "  Dune ", "Tolkien"}
	for i, term := range terms {
		require.NoError(t, s.Record(term))
		assert.Len(t, s.List(), i+1)
	}
	assert.Equal(t, terms, s.List())
}

func TestRecordRepeatsGrowLog(t *testing.T) {
	s := New(newKV())
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Record("same"))
	}
	assert.Equal(t, []string{"same", "same", "same"}, s.List())
}

func TestRecordAfterCorruptHistory(t *testing.T) {
	kv := newKV()
	require.NoError(t, kv.SetRaw(Key, []byte(`{"oops":true}`)))
	s := New(kv)

	assert.Empty(t, s.List())
	require.NoError(t, s.Record("dune"))
	assert.Equal(t, []string{"dune"}, s.List())
}

func TestMaxEntriesKeepsNewest(t *testing.T) {
	s := New(newKV(), WithMaxEntries(3))
	for i := 1; i <= 5; i++ {
		require.NoError(t, s.Record(fmt.Sprintf("t%d", i)))
	}
	assert.Equal(t, []string{"t3", "t4", "t5"}, s.List())
}

func TestZeroMaxEntriesIsUnbounded(t *testing.T) {
	s := New(newKV(), WithMaxEntries(0))
	for i := 0; i < 50; i++ {
		require.NoError(t, s.Record("x"))
	}
	assert.Len(t, s.List(), 50)
}

func TestHistoryPersistsAcrossStoreInstances(t *testing.T) {
	kv := newKV()
	require.NoError(t, New(kv).Record("first"))
	require.NoError(t, New(kv).Record("second"))
	assert.Equal(t, []string{"first", "second"}, New(kv).List())
}
