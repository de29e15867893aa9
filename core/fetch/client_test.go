package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient() *Client {
	return New(Options{Timeout: 5 * time.Second, UserAgent: "MAG200"}, zap.NewNop())
}

// TestClient_Headers tests that default and per-request headers are sent.
func TestClient_Headers(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	var out struct {
		OK bool `json:"ok"`
	}
	header := http.Header{}
	header.Set("Cookie", "mac=00:1A:79:00:00:01")
	header.Set("User-Agent", "override")

	err := newTestClient().GetJSON(context.Background(), server.URL, header, &out)

	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, "override", got.Get("User-Agent"))
	assert.Equal(t, "*/*", got.Get("Accept"))
	assert.Equal(t, "mac=00:1A:79:00:00:01", got.Get("Cookie"))
}

func TestClient_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := newTestClient().Get(context.Background(), server.URL, nil)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusForbidden, statusErr.Code)
	assert.Equal(t, "API returned HTTP 403", err.Error())
}

func TestClient_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>`))
	}))
	defer server.Close()

	var out map[string]any
	err := newTestClient().GetJSON(context.Background(), server.URL, nil, &out)

	assert.ErrorContains(t, err, "failed to parse JSON")
	assert.ErrorIs(t, err, ErrDecode)
}

func TestClient_Open(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("#EXTM3U\n"))
	}))
	defer server.Close()

	body, err := newTestClient().Open(context.Background(), server.URL, nil)
	require.NoError(t, err)
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	require.NoError(t, body.Close())

	assert.Equal(t, "#EXTM3U\n", string(data))
}

func TestRedact(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://h/player_api.php?action=x&password=p&username=u", "http://h/player_api.php?action=x&password=%2A%2A%2A&username=%2A%2A%2A"},
		{"http://h/live.m3u", "http://h/live.m3u"},
		{"http://user:pw@h/x", "http://%2A%2A%2A@h/x"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Redact(tt.in))
	}
}
