// file: internal/recommend/recommend_test.go
// version: 1.0.0
// guid: fffc9386-d0ff-4770-bb57-87ce9587c543

package recommend

import (
	"testing"

	"github.com/jdfalk/bookshelf/internal/kvstore"
	"github.com/jdfalk/bookshelf/internal/models"
	"github.com/jdfalk/bookshelf/internal/preferences"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noProfile struct{}

func (noProfile) Get() (*models.Profile, bool) { return nil, false }

func TestTermUsesProfileGenre(t *testing.T) {
	prefs := preferences.New(kvstore.New(kvstore.NewMemoryBackend()))
	_, err := prefs.Set("Ann", "mystery")
	require.NoError(t, err)

	r := New(prefs)
	for i := 0; i < 5; i++ {
		assert.Equal(t, "mystery", r.Term())
	}
}

func TestTermFallsBackToRandomGenre(t *testing.T) {
	r := New(noProfile{})
	for i := 0; i < 50; i++ {
		assert.Contains(t, FallbackGenres, r.Term())
	}
}

func TestTermFallbackIsDrawnFromWholeList(t *testing.T) {
	r := New(noProfile{})
	for i := range FallbackGenres {
		r.intn = func(n int) int {
			assert.Equal(t, len(FallbackGenres), n)
			return i
		}
		assert.Equal(t, FallbackGenres[i], r.Term())
	}
}
