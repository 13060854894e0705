// Package config loads the mavenizor configuration file.
//
// The file is TOML and is usually named mavenizor.toml:
//
//	trim_qualifiers = false
//	group_id_prefix = "com.acme"
//	group3_prefixes = ["org.eclipse.jdt"]
//	group_id_mappings = ["org.apache.log4j=log4j"]
//	input_bundles = ["org.eclipse.**"]
//	known_libraries = "libraries.yaml"
//	overrides = "lib.properties"
//
//	[library_mappings]
//	"lib/junit.jar@org.eclipse.**" = "junit:junit:jar:4.12"
//
//	[[requirement_filters]]
//	bundle = "org.eclipse.**"
//	permitted = ["javax.**"]
//	erase = ["org.junit"]
//
//	[options]
//	vendor = "acme"
//
//	[cache]
//	backend = "file"
//	ttl = "24h"
//
// Relative file paths are resolved against the directory of the
// configuration file. A Config converts into the objects a conversion run
// needs: [Config.Strategy], [Config.Classifier], [Config.LoadOverrides] and
// [Config.ConvertOptions].
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/eddi-weiss/mavenizor/pkg/cache"
	"github.com/eddi-weiss/mavenizor/pkg/convert"
	"github.com/eddi-weiss/mavenizor/pkg/embedded"
	"github.com/eddi-weiss/mavenizor/pkg/errors"
	"github.com/eddi-weiss/mavenizor/pkg/gav"
)

// FileName is the configuration file looked up by [Discover].
const FileName = "mavenizor.toml"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the content of a configuration file.
type Config struct {
	TrimQualifiers  bool     `toml:"trim_qualifiers" json:"trim_qualifiers"`
	GroupIDPrefix   string   `toml:"group_id_prefix" json:"group_id_prefix,omitempty"`
	Group3Prefixes  []string `toml:"group3_prefixes" json:"group3_prefixes,omitempty"`
	GroupIDMappings []string `toml:"group_id_mappings" json:"group_id_mappings,omitempty"`

	InputBundles []string `toml:"input_bundles" json:"input_bundles,omitempty"`
	DryRun       bool     `toml:"dry_run" json:"-"`
	Workers      int      `toml:"workers" json:"-"`

	// KnownLibraries is a YAML detection index merged over the built-in one.
	KnownLibraries string `toml:"known_libraries" json:"known_libraries,omitempty"`
	// Overrides is a properties file of per-bundle library directives.
	Overrides string `toml:"overrides" json:"overrides,omitempty"`

	LibraryMappings    map[string]string           `toml:"library_mappings" json:"library_mappings,omitempty"`
	RequirementFilters []convert.RequirementFilter `toml:"requirement_filters" json:"requirement_filters,omitempty"`
	Options            map[string]string           `toml:"options" json:"options,omitempty"`

	Cache CacheConfig `toml:"cache" json:"-"`

	// baseDir resolves relative paths; empty means the working directory.
	baseDir string
}

// CacheConfig selects the result cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
	TTL      string `toml:"ttl"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

// Load reads and validates a configuration file. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}

	var c Config
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	c.baseDir = filepath.Dir(path)
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Discover returns the path of the configuration file in dir, if any.
func Discover(dir string) (string, bool) {
	p := filepath.Join(dir, FileName)
	if info, err := os.Stat(p); err == nil && !info.IsDir() {
		return p, true
	}
	return "", false
}

// SetDefaults fills in unset values.
func (c *Config) SetDefaults() {
	if c.Cache.Backend == "" {
		c.Cache.Backend = BackendFile
	}
	if c.Cache.TTL == "" {
		c.Cache.TTL = cache.DefaultTTL.String()
	}
}

// Validate checks everything that can be checked without reading other
// files.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "workers must not be negative")
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	if _, err := c.Rules(); err != nil {
		return err
	}
	if _, err := embedded.ParseLibraryMappings(c.LibraryMappings); err != nil {
		return err
	}
	opts := c.ConvertOptions()
	return opts.ValidateAndSetDefaults()
}

// CacheTTL parses cache.ttl.
func (c *Config) CacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return cache.DefaultTTL, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "invalid cache.ttl %q", c.Cache.TTL)
	}
	return d, nil
}

// Path resolves p against the configuration directory.
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) || c.baseDir == "" {
		return p
	}
	return filepath.Join(c.baseDir, p)
}

// Rules returns the groupId rules.
func (c *Config) Rules() (gav.Rules, error) {
	mappings, err := gav.ParseGroupIDMappings(c.GroupIDMappings)
	if err != nil {
		return gav.Rules{}, err
	}
	r := gav.Rules{
		Mappings:       mappings,
		Prefix:         c.GroupIDPrefix,
		Group3Prefixes: c.Group3Prefixes,
		TrimQualifier:  c.TrimQualifiers,
	}
	return r, r.Validate()
}

// Strategy builds the GAV strategy.
func (c *Config) Strategy() (*gav.Strategy, error) {
	r, err := c.Rules()
	if err != nil {
		return nil, err
	}
	return gav.NewStrategy(r)
}

// Index returns the built-in detection index merged with known_libraries.
func (c *Config) Index() (*embedded.Index, error) {
	idx := embedded.DefaultIndex()
	if c.KnownLibraries == "" {
		return idx, nil
	}
	f, err := os.Open(c.Path(c.KnownLibraries))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "known_libraries")
	}
	defer f.Close()
	extra, err := embedded.LoadIndex(f)
	if err != nil {
		return nil, err
	}
	return idx.Merge(extra), nil
}

// Classifier builds the embedded-library classifier.
func (c *Config) Classifier() (*embedded.Classifier, error) {
	idx, err := c.Index()
	if err != nil {
		return nil, err
	}
	m, err := embedded.ParseLibraryMappings(c.LibraryMappings)
	if err != nil {
		return nil, err
	}
	return embedded.NewClassifier(embedded.NewIndexDetector(idx), m), nil
}

// LoadOverrides reads the override table. It returns nil when none is
// configured.
func (c *Config) LoadOverrides() (*embedded.Overrides, error) {
	if c.Overrides == "" {
		return nil, nil
	}
	f, err := os.Open(c.Path(c.Overrides))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "overrides")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidOverride, err, "overrides")
	}
	defer f.Close()
	return embedded.ParseOverrides(f)
}

// ConvertOptions returns the conversion options the file describes.
func (c *Config) ConvertOptions() convert.Options {
	return convert.Options{
		Workers:            c.Workers,
		InputBundles:       c.InputBundles,
		RequirementFilters: c.RequirementFilters,
		Settings:           c.Options,
	}
}

// Fingerprint hashes every setting that influences a conversion result,
// including the content of referenced files.
func (c *Config) Fingerprint() (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	parts := []string{string(data)}
	for _, p := range []string{c.KnownLibraries, c.Overrides} {
		if p == "" {
			continue
		}
		content, err := os.ReadFile(c.Path(p))
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "fingerprint %s", p)
		}
		parts = append(parts, cache.Hash(content))
	}
	return cache.Hash([]byte(strings.Join(parts, "\n"))), nil
}
