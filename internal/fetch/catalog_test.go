package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonathan/aardvark-harvest/internal/config"
	"github.com/jonathan/aardvark-harvest/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const catalogBody = `{"dataset":[{"title":"Parks","identifier":"https://hub?id=abc123"}]}`

// flakyServer times out the first failures requests, then serves body.
func flakyServer(t *testing.T, failures int32, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= failures {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func testFetcher(maxRetry int, logger logging.Logger) *Fetcher {
	opts := DefaultOptions()
	opts.Timeout = 50 * time.Millisecond
	return NewFetcher(FetcherConfig{MaxRetry: maxRetry, RetryDelay: time.Millisecond, Options: opts}, logger)
}

func testSite(url string) *config.Site {
	return config.NewSite(config.Site{Key: "dane", SiteName: "SiteX", SiteURL: url})
}

func TestFetchCatalog_RecoversAfterTimeouts(t *testing.T) {
	server, calls := flakyServer(t, 2, catalogBody)
	core, logs := observer.New(zapcore.WarnLevel)

	catalog, err := testFetcher(3, logging.FromZap(zap.New(core))).FetchCatalog(context.Background(), testSite(server.URL))
	require.NoError(t, err)
	require.Len(t, catalog.Datasets, 1)
	assert.Equal(t, "Parks", catalog.Datasets[0].Title)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, 2, logs.FilterMessage("fetch attempt failed, retrying").Len())
}

func TestFetchCatalog_GivesUpAfterMaxRetry(t *testing.T) {
	server, calls := flakyServer(t, 3, catalogBody)

	_, err := testFetcher(3, nil).FetchCatalog(context.Background(), testSite(server.URL))
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, 3, fetchErr.Attempts)
	assert.False(t, fetchErr.Permanent)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchCatalog_MalformedJSONIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	defer server.Close()

	_, err := testFetcher(5, nil).FetchCatalog(context.Background(), testSite(server.URL))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotJSON)
	assert.True(t, IsPermanent(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchCatalog_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(catalogBody))
	}))
	defer server.Close()

	catalog, err := testFetcher(2, nil).FetchCatalog(context.Background(), testSite(server.URL))
	require.NoError(t, err)
	assert.Len(t, catalog.Datasets, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchCatalog_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(catalogBody), 0o644))

	for _, location := range []string{path, "file://" + path} {
		catalog, err := testFetcher(1, nil).FetchCatalog(context.Background(), testSite(location))
		require.NoError(t, err)
		assert.Len(t, catalog.Datasets, 1)
	}

	_, err := testFetcher(3, nil).FetchCatalog(context.Background(), testSite(filepath.Join(t.TempDir(), "missing.json")))
	require.Error(t, err)
	assert.True(t, IsPermanent(err))
}

func TestFetchCatalog_CanceledContext(t *testing.T) {
	server, calls := flakyServer(t, 10, catalogBody)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testFetcher(5, nil).FetchCatalog(ctx, testSite(server.URL))
	require.Error(t, err)
	assert.LessOrEqual(t, calls.Load(), int32(1))
}

func TestFetchDocument(t *testing.T) {
	server, _ := flakyServer(t, 1, `{"type":"object"}`)

	body, err := testFetcher(2, nil).FetchDocument(context.Background(), server.URL)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"object"}`, string(body))
}

func TestFetcherConfigFrom(t *testing.T) {
	cfg := FetcherConfigFrom(config.Settings{MaxRetry: 4, SleepTime: 0.5, Timeout: 2})
	assert.Equal(t, 4, cfg.MaxRetry)
	assert.Equal(t, 500*time.Millisecond, cfg.RetryDelay)
	assert.Equal(t, 2*time.Second, cfg.Options.Timeout)
}

func TestFetchCatalog_BadDatasetDoesNotFailSite(t *testing.T) {
	body := `{"dataset":[
		{"identifier":"https://x/home/item.html?id=aaa","title":"Roads","spatial":{"type":"Polygon","coordinates":[]}},
		{"identifier":"https://x/home/item.html?id=bbb","title":"Parks"},
		{"identifier":"https://x/home/item.html?id=ccc","keyword":["roads",2020]}
	]}`
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	catalog, err := testFetcher(3, nil).FetchCatalog(context.Background(), testSite(server.URL))
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 3, catalog.Len())

	require.Len(t, catalog.Datasets, 1)
	assert.Equal(t, "Parks", catalog.Datasets[0].Title)

	require.Len(t, catalog.Malformed, 2)
	assert.Equal(t, 0, catalog.Malformed[0].Index)
	assert.Equal(t, "Roads", catalog.Malformed[0].Title)
	assert.Equal(t, "https://x/home/item.html?id=ccc", catalog.Malformed[1].Identifier)
	assert.Error(t, catalog.Malformed[1].Err)
}

func TestFetchCatalog_DatasetArrayUnreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"dataset":"none"}`), 0o644))

	_, err := testFetcher(3, nil).FetchCatalog(context.Background(), testSite(path))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCatalogLayout)
	assert.NotErrorIs(t, err, ErrNotJSON)
	assert.True(t, IsPermanent(err))
}
