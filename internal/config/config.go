// Package config loads the harvest configuration: run settings, record defaults and the
// active site catalog.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Top-level YAML keys that are not catalogs.
const (
	settingsKey = "CONFIG"
	defaultsKey = "DEFAULT"
)

// Built-in run settings, used when the CONFIG block omits them.
const (
	DefaultCatalog   = "TestSites"
	DefaultMaxRetry  = 5
	DefaultSleepTime = 1.0
	DefaultTimeout   = 10.0
)

// Config is the fully loaded, immutable configuration for one run.
type Config struct {
	Settings   Settings
	Defaults   Defaults
	CatalogKey string
	// Sites are ordered by catalog key.
	Sites []*Site
}

// Settings is the CONFIG block.
type Settings struct {
	OutputDir   string  `yaml:"OUTPUTDIR" validate:"required"`
	LogFile     string  `yaml:"LOGFILE"`
	DefaultBbox string  `yaml:"DEFAULTBBOX"`
	Catalog     string  `yaml:"CATALOG"`
	MaxRetry    int     `yaml:"MAXRETRY" validate:"gte=1"`
	SleepTime   float64 `yaml:"SLEEPTIME" validate:"gte=0"`
	Timeout     float64 `yaml:"TIMEOUT" validate:"gt=0"`
	Schema      string  `yaml:"SCHEMA" validate:"required"`
	LogLevel    string  `yaml:"LOGLEVEL" validate:"omitempty,oneof=debug info warn warning error"`
}

// RetryDelay is SLEEPTIME as a duration.
func (s Settings) RetryDelay() time.Duration {
	return time.Duration(s.SleepTime * float64(time.Second))
}

// RequestTimeout is TIMEOUT as a duration.
func (s Settings) RequestTimeout() time.Duration {
	return time.Duration(s.Timeout * float64(time.Second))
}

// Site is one portal entry of the active catalog.
type Site struct {
	Key         string     `yaml:"-"`
	SiteName    string     `yaml:"SiteName" validate:"required"`
	SiteURL     string     `yaml:"SiteURL" validate:"required"`
	Spatial     StringList `yaml:"Spatial"`
	CreatedBy   string     `yaml:"CreatedBy"`
	DefaultBbox string     `yaml:"DefaultBbox"`
	SkipList    []UUIDRef  `yaml:"SkipList" validate:"dive"`
	AppList     []UUIDRef  `yaml:"AppList" validate:"dive"`
	MapList     []UUIDRef  `yaml:"MapList" validate:"dive"`

	skip map[string]struct{}
	apps map[string]struct{}
	maps map[string]struct{}
}

// UUIDRef is a single {UUID: ...} list entry.
type UUIDRef struct {
	UUID string `yaml:"UUID" validate:"required"`
}

// Skips reports whether the dataset uuid is on the site's skip-list.
func (s *Site) Skips(uuid string) bool {
	_, ok := s.skip[uuid]
	return ok
}

// IsApp reports whether the dataset uuid is on the site's app-list.
func (s *Site) IsApp(uuid string) bool {
	_, ok := s.apps[uuid]
	return ok
}

// IsMap reports whether the dataset uuid is on the site's map-list.
func (s *Site) IsMap(uuid string) bool {
	_, ok := s.maps[uuid]
	return ok
}

// IsLocalFile reports whether SiteURL points at a file rather than an http(s) endpoint.
func (s *Site) IsLocalFile() bool {
	return IsLocalPath(s.SiteURL)
}

// IsLocalPath reports whether location is a filesystem path or file:// URL.
func IsLocalPath(location string) bool {
	lower := strings.ToLower(location)
	return !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://")
}

// NewSite returns a copy of s with its UUID lists indexed, for sites built outside LoadConfig.
func NewSite(s Site) *Site {
	site := s
	site.index()
	return &site
}

func (s *Site) index() {
	s.skip = uuidSet(s.SkipList)
	s.apps = uuidSet(s.AppList)
	s.maps = uuidSet(s.MapList)
}

func uuidSet(refs []UUIDRef) map[string]struct{} {
	set := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		set[strings.TrimSpace(ref.UUID)] = struct{}{}
	}
	return set
}

// StringList decodes either a YAML scalar or a sequence of scalars.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "" {
			*l = nil
			return nil
		}
		*l = StringList{node.Value}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	default:
		return fmt.Errorf("line %d: expected string or list of strings", node.Line)
	}
}

// LoadConfig reads, decodes and validates the YAML configuration at path.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, &ConfigError{Message: "cannot load", Cause: ErrEmptyPath}
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, &ConfigError{Message: "failed to get current directory", Cause: err}
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Message: fmt.Sprintf("failed to read config file %s", path), Cause: err}
	}

	return Parse(data)
}

// Parse decodes a YAML document into a validated Config.
func Parse(data []byte) (*Config, error) {
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ConfigError{Message: "failed to parse config YAML", Cause: err}
	}

	settingsNode, ok := doc[settingsKey]
	if !ok {
		return nil, &ConfigError{Message: "cannot load", Cause: ErrMissingSettings}
	}

	cfg := &Config{}
	if err := settingsNode.Decode(&cfg.Settings); err != nil {
		return nil, &ConfigError{Message: "failed to decode CONFIG block", Cause: err}
	}
	cfg.Settings.applyDefaults(mappingKeys(&settingsNode))
	applyEnv(&cfg.Settings)

	if defaultsNode, ok := doc[defaultsKey]; ok {
		if err := defaultsNode.Decode(&cfg.Defaults); err != nil {
			return nil, &ConfigError{Message: "failed to decode DEFAULT block", Cause: err}
		}
	}
	cfg.Defaults.applyDefaults()

	cfg.CatalogKey = cfg.Settings.Catalog
	catalogNode, ok := doc[cfg.CatalogKey]
	if !ok {
		return nil, &ConfigError{Message: fmt.Sprintf("catalog %q", cfg.CatalogKey), Cause: ErrMissingCatalog}
	}

	var catalog map[string]*Site
	if err := catalogNode.Decode(&catalog); err != nil {
		return nil, &ConfigError{Message: fmt.Sprintf("failed to decode catalog %q", cfg.CatalogKey), Cause: err}
	}
	if len(catalog) == 0 {
		return nil, &ConfigError{Message: fmt.Sprintf("catalog %q", cfg.CatalogKey), Cause: ErrEmptyCatalog}
	}

	keys := make([]string, 0, len(catalog))
	for key := range catalog {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		site := catalog[key]
		if site == nil {
			return nil, &ConfigError{Message: fmt.Sprintf("site %q is empty", key)}
		}
		site.Key = key
		site.index()
		cfg.Sites = append(cfg.Sites, site)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks required keys and numeric ranges of the settings and every site.
func (c *Config) Validate() error {
	if err := validate.Struct(c.Settings); err != nil {
		return &ConfigError{Message: "invalid CONFIG block", Cause: err}
	}
	for _, site := range c.Sites {
		if err := validate.Struct(site); err != nil {
			return &ConfigError{Message: fmt.Sprintf("invalid site %q", site.Key), Cause: err}
		}
	}
	return nil
}

// applyDefaults fills numeric settings the CONFIG block leaves out. Keys that are present keep
// their value, so an explicit SLEEPTIME of 0 disables the retry delay.
func (s *Settings) applyDefaults(present map[string]bool) {
	if s.Catalog == "" {
		s.Catalog = DefaultCatalog
	}
	if !present["MAXRETRY"] {
		s.MaxRetry = DefaultMaxRetry
	}
	if !present["SLEEPTIME"] {
		s.SleepTime = DefaultSleepTime
	}
	if !present["TIMEOUT"] {
		s.Timeout = DefaultTimeout
	}
}

// mappingKeys lists the keys of a YAML mapping node.
func mappingKeys(node *yaml.Node) map[string]bool {
	keys := map[string]bool{}
	if node.Kind != yaml.MappingNode {
		return keys
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys[node.Content[i].Value] = true
	}
	return keys
}

// applyEnv lets HARVEST_* environment variables (often from .env) override file values.
func applyEnv(s *Settings) {
	if v := os.Getenv("HARVEST_OUTPUTDIR"); v != "" {
		s.OutputDir = v
	}
	if v := os.Getenv("HARVEST_LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}
	if v := os.Getenv("HARVEST_CATALOG"); v != "" {
		s.Catalog = v
	}
}
