// Package config loads hamcount settings from TOML or YAML.
//
// The format follows the file extension (.toml, .yaml, .yml). A missing
// default file is not an error; a missing explicit file is. Command-line
// flags override file values.
//
//	[solver]
//	stratified = false
//	encoding = "totalizer"
//
//	[count]
//	strategy = "pathwidth"
//	traversal = "as-is"   # unset: follow the strategy
//
//	[cache]
//	backend = "file"      # none, file, redis
//	ttl = "720h"
//	namespace = "bench"
//
//	[results]
//	backend = "jsonl"     # none, jsonl, mongo
//	path = "~/.local/share/hamcount/counts.jsonl"
//
//	[metrics]
//	textfile = "/var/lib/node_exporter/hamcount.prom"
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/hamcount/pkg/cache"
	"github.com/matzehuels/hamcount/pkg/enumerate"
	"github.com/matzehuels/hamcount/pkg/ordering"
	"github.com/matzehuels/hamcount/pkg/results"
	"github.com/matzehuels/hamcount/pkg/separation"

	hcerrors "github.com/matzehuels/hamcount/pkg/errors"
)

// AppName names the config, cache and data directories.
const AppName = "hamcount"

// Config is the full configuration.
type Config struct {
	Solver  Solver  `toml:"solver" yaml:"solver"`
	Count   Count   `toml:"count" yaml:"count"`
	Cache   Cache   `toml:"cache" yaml:"cache"`
	Results Results `toml:"results" yaml:"results"`
	Metrics Metrics `toml:"metrics" yaml:"metrics"`
}

// Solver configures the exact orderer.
type Solver struct {
	Stratified bool   `toml:"stratified" yaml:"stratified"`
	Encoding   string `toml:"encoding" yaml:"encoding"`
}

// Options converts s to separation options.
func (s Solver) Options() separation.Options {
	return separation.Options{Stratified: s.Stratified, Encoding: s.Encoding}
}

// Count holds counting defaults.
type Count struct {
	Strategy string `toml:"strategy" yaml:"strategy"`
	// Traversal overrides the strategy's edge traversal when set.
	Traversal string `toml:"traversal" yaml:"traversal"`
}

// Cache selects the cache backend.
type Cache struct {
	Backend   string   `toml:"backend" yaml:"backend"`
	Dir       string   `toml:"dir" yaml:"dir"`
	RedisAddr string   `toml:"redis_addr" yaml:"redis_addr"`
	RedisDB   int      `toml:"redis_db" yaml:"redis_db"`
	TTL       Duration `toml:"ttl" yaml:"ttl"`

	// Namespace prefixes every cache key; runs with different namespaces
	// never see each other's entries.
	Namespace string `toml:"namespace" yaml:"namespace"`
}

// Results selects the results ledger.
type Results struct {
	Backend    string `toml:"backend" yaml:"backend"`
	Path       string `toml:"path" yaml:"path"`
	MongoURI   string `toml:"mongo_uri" yaml:"mongo_uri"`
	Database   string `toml:"database" yaml:"database"`
	Collection string `toml:"collection" yaml:"collection"`
}

// Ledger converts r to a results.Config.
func (r Results) Ledger() results.Config {
	return results.Config{
		Backend:    r.Backend,
		Path:       r.Path,
		MongoURI:   r.MongoURI,
		Database:   r.Database,
		Collection: r.Collection,
	}
}

// Metrics configures the Prometheus textfile export. An empty path disables
// it.
type Metrics struct {
	Textfile string `toml:"textfile" yaml:"textfile"`
}

// Cache backends.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Solver: Solver{Encoding: string(separation.EncodingTotalizer)},
		Count: Count{
			Strategy: string(ordering.StrategyDefault),
		},
		Cache: Cache{
			Backend:   CacheFile,
			RedisAddr: "localhost:6379",
			TTL:       Duration(cache.TTLOrder),
		},
		Results: Results{
			Backend:    results.BackendNone,
			Database:   results.DefaultDatabase,
			Collection: results.DefaultCollection,
		},
	}
}

// Validate checks backend names, the traversal and the strategy.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case CacheNone, CacheFile, CacheRedis:
	default:
		return hcerrors.New(hcerrors.ErrCodeInvalidInput,
			"cache.backend %q (must be one of: none, file, redis)", c.Cache.Backend)
	}
	switch c.Results.Backend {
	case results.BackendNone, results.BackendJSONL, results.BackendMongo:
	default:
		return hcerrors.New(hcerrors.ErrCodeInvalidInput,
			"results.backend %q (must be one of: none, jsonl, mongo)", c.Results.Backend)
	}
	if c.Results.Backend == results.BackendJSONL && c.Results.Path == "" {
		return hcerrors.New(hcerrors.ErrCodeInvalidInput, "results.path is required for the jsonl backend")
	}
	if _, err := enumerate.ParseTraversal(c.Count.Traversal); err != nil {
		return err
	}
	if _, ok := ordering.ParseStrategy(c.Count.Strategy); !ok {
		return hcerrors.New(hcerrors.ErrCodeInvalidInput, "count.strategy %q is unknown", c.Count.Strategy)
	}
	if c.Cache.TTL < 0 {
		return hcerrors.New(hcerrors.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	return nil
}

// Load reads path over the defaults. With an empty path the default file is
// used when it exists.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, hcerrors.Wrap(hcerrors.ErrCodeFileNotFound, err, "read config")
	}
	if err := Decode(data, filepath.Ext(path), &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	cfg.expand()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses data in the format named by ext into cfg. Unknown keys are
// rejected.
func Decode(data []byte, ext string, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".toml", "":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return hcerrors.Wrap(hcerrors.ErrCodeInvalidInput, err, "parse toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return hcerrors.New(hcerrors.ErrCodeInvalidInput, "unknown key %q", undecoded[0].String())
		}
		return nil
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return hcerrors.Wrap(hcerrors.ErrCodeInvalidInput, err, "parse yaml")
		}
		return nil
	}
	return hcerrors.New(hcerrors.ErrCodeUnsupported, "config format %q (use .toml, .yaml or .yml)", ext)
}

// expand resolves a leading ~ in paths.
func (c *Config) expand() {
	c.Cache.Dir = expandHome(c.Cache.Dir)
	c.Results.Path = expandHome(c.Results.Path)
	c.Metrics.Textfile = expandHome(c.Metrics.Textfile)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// DefaultPath returns $XDG_CONFIG_HOME/hamcount/config.toml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the file cache directory: cfg.Cache.Dir when set,
// otherwise $XDG_CACHE_HOME/hamcount or ~/.cache/hamcount.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Duration is a time.Duration written as a Go duration string ("720h").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}
