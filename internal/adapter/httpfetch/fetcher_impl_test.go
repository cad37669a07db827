package httpfetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/travel-deals-service/internal/repository"
)

func TestFetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("<html>deal</html>"))
		default:
			http.Error(w, "forbidden", http.StatusForbidden)
		}
	}))
	defer srv.Close()

	f := NewFetcher(Options{UserAgent: "test-agent", Timeout: 5 * time.Second})

	body, err := f.Fetch(context.Background(), srv.URL+"/ok")
	require.NoError(t, err)
	assert.Equal(t, "<html>deal</html>", string(body))
	assert.Equal(t, "test-agent", gotUA)

	_, err = f.Fetch(context.Background(), srv.URL+"/blocked")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrFetch)
	assert.Contains(t, err.Error(), "403")
}

func TestFetchTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	f := NewFetcher(Options{UserAgent: "test-agent", Timeout: time.Second})
	_, err := f.Fetch(context.Background(), url)
	assert.ErrorIs(t, err, repository.ErrFetch)
}
