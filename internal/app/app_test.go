package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, apiURL string) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NASA_API_KEY", "")
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "api_key = \"test-key\"\napi_url = \"" + apiURL + "\"\nspeech_engine = \"none\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRunOnce_SkipsNonImageRecord(t *testing.T) {
	var gotDate string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDate = r.URL.Query().Get("date")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title":"A Video","date":"2012-03-04","explanation":"moving","media_type":"video","url":"https://example.com/v"}`))
	}))
	defer srv.Close()

	var logs bytes.Buffer
	err := Run(context.Background(), Options{
		ConfigPath: writeConfig(t, srv.URL),
		Once:       true,
		Date:       "2012-03-04",
		Stderr:     &logs,
	})
	require.NoError(t, err)
	require.Equal(t, "2012-03-04", gotDate)
	require.Contains(t, logs.String(), "skipping non-image record")
	require.Contains(t, logs.String(), "no speech engine available")
}

func TestRunOnce_ReportsFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":"API_KEY_INVALID","message":"An invalid api_key was supplied."}}`))
	}))
	defer srv.Close()

	var logs bytes.Buffer
	err := Run(context.Background(), Options{
		ConfigPath: writeConfig(t, srv.URL),
		Once:       true,
		Stderr:     &logs,
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "HTTP Error: 403")
	require.Contains(t, logs.String(), "apod request failed")
}

func TestRun_RejectsBadInput(t *testing.T) {
	path := writeConfig(t, "http://127.0.0.1:1")

	err := Run(context.Background(), Options{ConfigPath: path, Once: true, Date: "1990-01-01", Stderr: &bytes.Buffer{}})
	require.ErrorContains(t, err, "invalid --date")

	bad := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(bad, []byte("api_key = ["), 0o600))
	err = Run(context.Background(), Options{ConfigPath: bad, Once: true})
	require.ErrorContains(t, err, "load config")
}

func TestRunHeadless_StopsOnCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"title":"A Video","date":"2012-03-04","media_type":"video"}`))
	}))
	defer srv.Close()

	path := writeConfig(t, srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	var logs syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, Options{ConfigPath: path, Headless: true, Stderr: &logs})
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(logs.String(), "skipping non-image record")
	}, 5*time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
	require.Contains(t, logs.String(), "stargazer stopped")
}

func TestDateSource(t *testing.T) {
	next, err := dateSource("")
	require.NoError(t, err)
	require.Len(t, next(), len("2006-01-02"))

	next, err = dateSource("2001-09-11")
	require.NoError(t, err)
	require.Equal(t, "2001-09-11", next())
	require.Equal(t, "2001-09-11", next())

	_, err = dateSource("tomorrow")
	require.Error(t, err)
}

func TestIsTerminal_NonFileWriter(t *testing.T) {
	require.False(t, isTerminal(&bytes.Buffer{}))
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
