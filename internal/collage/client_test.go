package collage

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonshowcase/showcase/pkg/logger"
)

func TestExport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/export/collage", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var req exportRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"https://a.png", "https://b.png"}, req.ImageURLs)

		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("\x89PNG fake"))
	}))
	defer srv.Close()

	rc, err := NewClient(srv.URL+"/", 0).Export(context.Background(), []string{"https://a.png", "https://b.png"})
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG fake", string(data))
}

func TestExportRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"bad image"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0).Export(context.Background(), []string{"https://a.png"})
	assert.ErrorIs(t, err, ErrRejected)
}

func TestExportUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, 0).Export(context.Background(), []string{"https://a.png"})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestExportForwardsRequestID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-42", r.Header.Get("X-Request-ID"))
		_, _ = w.Write([]byte("png"))
	}))
	defer srv.Close()

	ctx := logger.WithRequestID(context.Background(), "req-42")
	rc, err := NewClient(srv.URL, 0).Export(ctx, []string{"https://a.png"})
	require.NoError(t, err)
	_ = rc.Close()
}
