package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchJobDescription_Success(t *testing.T) {
	var userAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.UserAgent()
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><nav>Menu</nav><main><h1>Go Developer</h1><p>Kubernetes   and AWS</p></main></body></html>`))
	}))
	defer server.Close()

	jd, err := FetchJobDescription(context.Background(), server.URL, nil)
	require.NoError(t, err)

	assert.Equal(t, "Go Developer\nKubernetes and AWS", jd.Text)
	assert.Equal(t, server.URL, jd.Source)
	assert.Len(t, jd.Hash, 64)
	assert.Equal(t, DefaultUserAgent, userAgent)
}

func TestFetchJobDescription_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := FetchJobDescription(context.Background(), server.URL, nil)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Contains(t, fetchErr.Message, "404")
}

func TestFetchJobDescription_InvalidURL(t *testing.T) {
	for _, raw := range []string{"not a url", "ftp://example.com/job", "file:///etc/passwd", "http://"} {
		_, err := FetchJobDescription(context.Background(), raw, nil)

		var fetchErr *FetchError
		require.True(t, errors.As(err, &fetchErr), raw)
		assert.Equal(t, "invalid URL", fetchErr.Message)
	}
}

func TestFetchJobDescription_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<p>never read</p>"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FetchJobDescription(ctx, server.URL, &FetchOptions{UserAgent: "test", Client: server.Client()})
	assert.ErrorIs(t, err, context.Canceled)
}
