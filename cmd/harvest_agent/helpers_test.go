package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// executeCommand runs rootCmd in-process with fresh flag state and returns its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// writeTestConfig writes a config.yaml harvesting testdata/catalog.json into a temp dir and
// returns the config path and output directory.
func writeTestConfig(t *testing.T, schema string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	outDir := filepath.Join(dir, "records")

	catalog, err := filepath.Abs(filepath.Join("testdata", "catalog.json"))
	require.NoError(t, err)
	bbox, err := filepath.Abs(filepath.Join("testdata", "default_bbox.csv"))
	require.NoError(t, err)

	content := fmt.Sprintf(`
CONFIG:
  OUTPUTDIR: %s
  LOGFILE: %s
  DEFAULTBBOX: %s
  CATALOG: TestSites
  MAXRETRY: 1
  SCHEMA: %s
  LOGLEVEL: error
TestSites:
  sitex:
    SiteName: SiteX
    SiteURL: %s
    Spatial: Wisconsin--Dane County
    CreatedBy: Dane County
    DefaultBbox: Dane
    SkipList:
      - UUID: skip1
`, outDir, filepath.Join(dir, "logs", "harvest.log"), bbox, schema, catalog)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path, outDir
}

func aardvarkSchemaPath(t *testing.T) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("..", "..", "schemas", "geoblacklight-schema-aardvark.json"))
	require.NoError(t, err)
	return path
}
