package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hostOf(t *testing.T, rawURL string) string {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return u.Hostname()
}

func TestCheck(t *testing.T) {
	f := New([]string{"abc.supabase.co", " CDN.example.com "}, time.Second)

	_, err := f.Check("https://cdn.example.com/x.png")
	assert.NoError(t, err)
	_, err = f.Check("https://evil.example.com/x.png")
	assert.ErrorIs(t, err, ErrHostNotAllowed)
	_, err = f.Check("file:///etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidURL)
	_, err = f.Check("not a url")
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestGet_AllowedHost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("payload"))
	}))
	defer server.Close()

	f := New([]string{hostOf(t, server.URL)}, time.Second)
	data, err := f.Get(context.Background(), server.URL+"/file", 1024)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	_, err = f.Get(context.Background(), server.URL+"/file", 3)
	assert.ErrorContains(t, err, "exceeds")
}

func TestOpen_RefusesRedirectToOtherHost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "http://localhost.invalid/steal", http.StatusFound)
	}))
	defer server.Close()

	f := New([]string{hostOf(t, server.URL)}, time.Second)
	_, err := f.Open(context.Background(), server.URL+"/file")
	assert.ErrorIs(t, err, ErrHostNotAllowed)
}

func TestOpen_UpstreamStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := New([]string{hostOf(t, server.URL)}, time.Second)
	_, err := f.Open(context.Background(), server.URL+"/missing")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}
