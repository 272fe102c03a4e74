// file: cmd/serve_test.go
// version: 1.0.0
// guid: a4222970-b09b-40b0-abc5-f54aa081e4f2

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jdfalk/bookshelf/internal/kvstore"
	"github.com/jdfalk/bookshelf/internal/library"
	"github.com/jdfalk/bookshelf/internal/server/middleware"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyConfigUpdatesRunningServer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookshelf.yaml")
	write := func(body string) {
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	write("database_type: memory\nstats:\n  top_k: 5\nserver:\n  rate_limit: 60\n  burst: 2\n")

	a := &app{v: viper.New()}
	a.v.SetConfigFile(path)
	require.NoError(t, a.v.ReadInConfig())

	svc := library.New(kvstore.New(kvstore.NewMemoryBackend()), nil, library.Options{})
	limiter := middleware.NewSearchLimiter(30, 10)

	require.NoError(t, a.applyConfig(svc, limiter))
	assert.Equal(t, 5, svc.TopK())
	perMinute, burst := limiter.Limits()
	assert.Equal(t, 60, perMinute)
	assert.Equal(t, 2, burst)

	write("database_type: memory\nserver:\n  rate_limit: 0\n")
	require.NoError(t, a.v.ReadInConfig())
	require.NoError(t, a.applyConfig(svc, limiter))
	assert.Equal(t, 3, svc.TopK())
	perMinute, _ = limiter.Limits()
	assert.Equal(t, 0, perMinute)
}

func TestApplyConfigRejectsInvalidChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookshelf.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database_type: memory\nserver:\n  rate_limit: -1\n"), 0o644))

	a := &app{v: viper.New()}
	a.v.SetConfigFile(path)
	require.NoError(t, a.v.ReadInConfig())

	svc := library.New(kvstore.New(kvstore.NewMemoryBackend()), nil, library.Options{TopK: 4})
	limiter := middleware.NewSearchLimiter(30, 10)

	assert.Error(t, a.applyConfig(svc, limiter))
	assert.Equal(t, 4, svc.TopK())
	perMinute, burst := limiter.Limits()
	assert.Equal(t, 30, perMinute)
	assert.Equal(t, 10, burst)
}
