package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/MrSnakeDoc/arbcheck/internal/logger"
	"github.com/MrSnakeDoc/arbcheck/internal/models"
	"github.com/MrSnakeDoc/arbcheck/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleDB = `{"X1":{"device_name":"Example One","versions":{"A.1":{"arb":0,"regions":["GLO"],"status":"stable","md5":null},"A.2":{"arb":1,"regions":["EU"],"status":"stable","md5":"d41d8cd9"}}}}`

func TestMain(m *testing.M) {
	logger.UseTestMode()
	os.Exit(m.Run())
}

func serve(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewTLSServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchDatabase(t *testing.T) {
	var gotPath, gotUA string
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(exampleDB))
	})

	db, err := FetchDatabase(context.Background(), srv.Client(), srv.URL+"/")
	require.NoError(t, err)

	assert.Equal(t, "/database.json", gotPath)
	assert.True(t, strings.HasPrefix(gotUA, "arbcheck/"))
	require.Contains(t, db, "X1")
	assert.Equal(t, "Example One", db["X1"].DeviceName)
	assert.Equal(t, 1, db["X1"].Versions["A.2"].ARB)
	assert.Equal(t, "d41d8cd9", db["X1"].Versions["A.2"].Checksum())
}

func TestFetchDatabase_Gzipped(t *testing.T) {
	gz, err := utils.GzipBytes([]byte(exampleDB))
	require.NoError(t, err)

	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(gz)
	})

	db, err := FetchDatabase(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, db, 1)
}

func TestFetchDatabase_Non200(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := FetchDatabase(context.Background(), srv.Client(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestFetchDatabase_BadJSON(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"X1": [`))
	})

	_, err := FetchDatabase(context.Background(), srv.Client(), srv.URL)
	assert.Error(t, err)
}

func TestFetchDatabase_NegativeARB(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"X1":{"versions":{"A":{"arb":-2}}}}`))
	})

	_, err := FetchDatabase(context.Background(), srv.Client(), srv.URL)
	assert.True(t, errors.Is(err, models.ErrNegativeARB))
}

func TestFetchDatabase_RejectsInsecureURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("plain http server must not be contacted")
	}))
	defer srv.Close()

	_, err := FetchDatabase(context.Background(), srv.Client(), srv.URL)
	assert.True(t, errors.Is(err, ErrInsecureURL))
}

func TestFetchDatabase_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FetchDatabase(ctx, NewHTTPClient(0), "https://example.invalid")
	assert.ErrorIs(t, err, context.Canceled)
}
