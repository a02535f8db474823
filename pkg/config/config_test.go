package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hcerrors "github.com/matzehuels/hamcount/pkg/errors"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadTOML(t *testing.T) {
	path := write(t, "config.toml", `
[solver]
stratified = true
encoding = "seqcounter"

[count]
strategy = "pathwidth"
traversal = "bfs"

[cache]
backend = "redis"
redis_addr = "cache:6379"
ttl = "2h"

[results]
backend = "jsonl"
path = "/tmp/counts.jsonl"

[metrics]
textfile = "/tmp/hamcount.prom"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Solver.Stratified)
	assert.Equal(t, "seqcounter", cfg.Solver.Encoding)
	assert.Equal(t, "pathwidth", cfg.Count.Strategy)
	assert.Equal(t, "bfs", cfg.Count.Traversal)
	assert.Equal(t, CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, "cache:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, 2*time.Hour, time.Duration(cfg.Cache.TTL))
	assert.Equal(t, "/tmp/counts.jsonl", cfg.Results.Ledger().Path)
	assert.Equal(t, "hamcount", cfg.Results.Database)
	assert.Equal(t, "/tmp/hamcount.prom", cfg.Metrics.Textfile)

	opts := cfg.Solver.Options()
	assert.True(t, opts.Stratified)
	assert.Equal(t, "seqcounter", opts.Encoding)
}

func TestLoadYAML(t *testing.T) {
	path := write(t, "config.yaml", `
count:
  strategy: decreasing
cache:
  backend: none
  ttl: 30m
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "decreasing", cfg.Count.Strategy)
	assert.Equal(t, CacheNone, cfg.Cache.Backend)
	assert.Equal(t, 30*time.Minute, time.Duration(cfg.Cache.TTL))
	assert.Equal(t, "totalizer", cfg.Solver.Encoding, "defaults survive partial files")
}

func TestLoadEmptyYAML(t *testing.T) {
	cfg, err := Load(write(t, "config.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantCode hcerrors.Code
	}{
		{"UnknownTOMLKey", "c.toml", "[count]\nstrategyy = \"sorted\"\n", hcerrors.ErrCodeInvalidInput},
		{"UnknownYAMLKey", "c.yaml", "count:\n  strategyy: sorted\n", hcerrors.ErrCodeInvalidInput},
		{"BadCacheBackend", "c.toml", "[cache]\nbackend = \"memcached\"\n", hcerrors.ErrCodeInvalidInput},
		{"BadResultsBackend", "c.toml", "[results]\nbackend = \"sqlite\"\n", hcerrors.ErrCodeInvalidInput},
		{"JSONLWithoutPath", "c.toml", "[results]\nbackend = \"jsonl\"\n", hcerrors.ErrCodeInvalidInput},
		{"BadTraversal", "c.toml", "[count]\ntraversal = \"spiral\"\n", hcerrors.ErrCodeInvalidInput},
		{"BadStrategy", "c.toml", "[count]\nstrategy = \"random\"\n", hcerrors.ErrCodeInvalidInput},
		{"BadSyntax", "c.toml", "[count\n", hcerrors.ErrCodeInvalidInput},
		{"BadExtension", "c.ini", "x=1", hcerrors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(write(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, hcerrors.GetCode(err), "got %v", err)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.True(t, hcerrors.Is(err, hcerrors.ErrCodeFileNotFound))

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, AppName), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, AppName, "config.toml"),
		[]byte("[count]\nstrategy = \"bfs\"\n"), 0644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "bfs", cfg.Count.Strategy)
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/xdg/cache")
	dir, err := Default().CacheDir()
	require.NoError(t, err)
	assert.Equal(t, "/xdg/cache/hamcount", dir)

	cfg := Default()
	cfg.Cache.Dir = "/explicit"
	dir, err = cfg.CacheDir()
	require.NoError(t, err)
	assert.Equal(t, "/explicit", dir)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x.jsonl"), expandHome("~/x.jsonl"))
	assert.Equal(t, "/abs", expandHome("/abs"))
	assert.Equal(t, "~user/x", expandHome("~user/x"))
}
