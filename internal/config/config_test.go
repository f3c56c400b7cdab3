package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
CONFIG:
  OUTPUTDIR: out
  LOGFILE: out/harvest.log
  DEFAULTBBOX: bbox.csv
  CATALOG: ArcGIS_Sites
  MAXRETRY: 3
  SLEEPTIME: 0.5
  SCHEMA: https://example.com/aardvark.json
DEFAULT:
  MemberOf: [TestHarvest]
  AccessRights: Restricted
ArcGIS_Sites:
  dane:
    SiteName: DaneCounty
    SiteURL: https://data.example.com/data.json
    Spatial: [Wisconsin--Dane County]
    CreatedBy: Dane County
    DefaultBbox: Dane
    SkipList:
      - UUID: skip1
    AppList:
      - UUID: app1
    MapList:
      - UUID: map1
  adams:
    SiteName: AdamsCounty
    SiteURL: ./catalogs/adams.json
    Spatial: Wisconsin--Adams County
    CreatedBy: Adams County
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "out", cfg.Settings.OutputDir)
	assert.Equal(t, 3, cfg.Settings.MaxRetry)
	assert.Equal(t, 500*time.Millisecond, cfg.Settings.RetryDelay())
	assert.Equal(t, 10*time.Second, cfg.Settings.RequestTimeout())
	assert.Equal(t, "ArcGIS_Sites", cfg.CatalogKey)

	require.Len(t, cfg.Sites, 2)
	assert.Equal(t, "adams", cfg.Sites[0].Key, "sites are ordered by key")
	assert.Equal(t, "dane", cfg.Sites[1].Key)

	dane := cfg.Sites[1]
	assert.Equal(t, StringList{"Wisconsin--Dane County"}, dane.Spatial)
	assert.True(t, dane.Skips("skip1"))
	assert.True(t, dane.IsApp("app1"))
	assert.True(t, dane.IsMap("map1"))
	assert.False(t, dane.Skips("app1"))
	assert.False(t, dane.IsLocalFile())

	adams := cfg.Sites[0]
	assert.Equal(t, StringList{"Wisconsin--Adams County"}, adams.Spatial)
	assert.True(t, adams.IsLocalFile())
}

func TestLoadConfig_DefaultsMerged(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, []string{"TestHarvest"}, cfg.Defaults.MemberOf)
	assert.Equal(t, "Restricted", cfg.Defaults.AccessRights)
	assert.Equal(t, DefaultMdVersion, cfg.Defaults.MdVersion)
	assert.Equal(t, []string{DefaultLanguage}, cfg.Defaults.Language)
	assert.Equal(t, DefaultResourceClass, cfg.Defaults.ResourceClass)
	assert.NotEmpty(t, cfg.Defaults.Boilerplate)
}

func TestLoadConfig_BuiltinSettings(t *testing.T) {
	content := `
CONFIG:
  OUTPUTDIR: out
  SCHEMA: https://example.com/aardvark.json
TestSites:
  one:
    SiteName: One
    SiteURL: https://one.example.com/data.json
`
	cfg, err := LoadConfig(writeConfig(t, content))
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalog, cfg.CatalogKey)
	assert.Equal(t, DefaultMaxRetry, cfg.Settings.MaxRetry)
	assert.Equal(t, time.Second, cfg.Settings.RetryDelay())
}

func TestLoadConfig_ExplicitZeroSleepTime(t *testing.T) {
	content := `
CONFIG:
  OUTPUTDIR: out
  SCHEMA: s.json
  SLEEPTIME: 0
TestSites:
  one: {SiteName: One, SiteURL: x.json}
`
	cfg, err := LoadConfig(writeConfig(t, content))
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), cfg.Settings.RetryDelay())
	assert.Equal(t, DefaultMaxRetry, cfg.Settings.MaxRetry)
	assert.Equal(t, 10*time.Second, cfg.Settings.RequestTimeout())
}

func TestLoadConfig_ExplicitZeroMaxRetryIsInvalid(t *testing.T) {
	content := `
CONFIG:
  OUTPUTDIR: out
  SCHEMA: s.json
  MAXRETRY: 0
TestSites:
  one: {SiteName: One, SiteURL: x.json}
`
	_, err := LoadConfig(writeConfig(t, content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid CONFIG block")
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("HARVEST_OUTPUTDIR", "/tmp/elsewhere")
	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/elsewhere", cfg.Settings.OutputDir)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		contains string
		sentinel error
	}{
		{
			name:     "malformed yaml",
			content:  "CONFIG: [unclosed",
			contains: "failed to parse config YAML",
		},
		{
			name:     "missing CONFIG",
			content:  "TestSites: {}",
			sentinel: ErrMissingSettings,
		},
		{
			name: "missing catalog",
			content: `
CONFIG:
  OUTPUTDIR: out
  SCHEMA: s.json
  CATALOG: Nope
`,
			sentinel: ErrMissingCatalog,
		},
		{
			name: "missing schema",
			content: `
CONFIG:
  OUTPUTDIR: out
TestSites:
  one: {SiteName: One, SiteURL: x.json}
`,
			contains: "invalid CONFIG block",
		},
		{
			name: "site without url",
			content: `
CONFIG:
  OUTPUTDIR: out
  SCHEMA: s.json
TestSites:
  one: {SiteName: One}
`,
			contains: `invalid site "one"`,
		},
		{
			name: "skip entry without uuid",
			content: `
CONFIG:
  OUTPUTDIR: out
  SCHEMA: s.json
TestSites:
  one:
    SiteName: One
    SiteURL: x.json
    SkipList:
      - UUID: ""
`,
			contains: `invalid site "one"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Nil(t, cfg)

			var cfgErr *ConfigError
			assert.True(t, errors.As(err, &cfgErr))
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestNewSite_IndexesLists(t *testing.T) {
	site := NewSite(Site{Key: "x", SiteName: "X", SkipList: []UUIDRef{{UUID: " a "}}})
	assert.True(t, site.Skips("a"))
	assert.False(t, site.IsApp("a"))
}

func TestIsLocalPath(t *testing.T) {
	assert.False(t, IsLocalPath("https://example.com/data.json"))
	assert.False(t, IsLocalPath("HTTP://example.com/data.json"))
	assert.True(t, IsLocalPath("file:///tmp/data.json"))
	assert.True(t, IsLocalPath("catalogs/data.json"))
}
