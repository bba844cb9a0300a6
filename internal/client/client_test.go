package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fivetwenty-io/etcd-client/pkg/etcd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := New(nil, testEndpoints(t, "http://127.0.0.1:2379"))
		require.ErrorIs(t, err, etcd.ErrConfigRequired)
	})

	t.Run("no endpoints", func(t *testing.T) {
		t.Parallel()

		_, err := New(&etcd.Config{}, nil)
		require.ErrorIs(t, err, etcd.ErrNoEndpoints)
	})

	t.Run("resource clients initialized", func(t *testing.T) {
		t.Parallel()

		client, err := New(&etcd.Config{}, testEndpoints(t, "http://127.0.0.1:2379"))
		require.NoError(t, err)
		assert.NotNil(t, client.KV())
		assert.NotNil(t, client.Members())
		assert.NotNil(t, client.Stats())
		assert.NotNil(t, client.Auth())
	})

	t.Run("with memory cache", func(t *testing.T) {
		t.Parallel()

		client, err := New(&etcd.Config{
			Cache: &etcd.CacheConfig{Type: etcd.CacheTypeMemory},
		}, testEndpoints(t, "http://127.0.0.1:2379"))
		require.NoError(t, err)
		assert.NotNil(t, client.cache)
		assert.Equal(t, etcd.DefaultCacheOptions().DefaultTTL, client.cacheTTL)
	})

	t.Run("with unsupported cache", func(t *testing.T) {
		t.Parallel()

		_, err := New(&etcd.Config{
			Cache: &etcd.CacheConfig{Type: "redis"},
		}, testEndpoints(t, "http://127.0.0.1:2379"))
		require.ErrorIs(t, err, etcd.ErrUnsupportedCacheType)
	})
}

func TestClient_Endpoints(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "http://a:2379", "http://b:2379")

	assert.Equal(t, []string{"http://a:2379", "http://b:2379"}, client.Endpoints())
}

func TestClient_Health(t *testing.T) {
	t.Parallel()

	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)

		_ = json.NewEncoder(w).Encode(etcd.Health{Health: "true"})
	}))
	defer healthy.Close()

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	downURL := down.URL
	down.Close()

	client := newTestClient(t, healthy.URL, downURL)

	results := client.Health(context.Background())
	require.Len(t, results, 2)

	require.NoError(t, results[0].Err)
	assert.Equal(t, "true", results[0].Response.Data.Health)
	assert.Equal(t, healthy.URL, results[0].Endpoint)

	require.Error(t, results[1].Err)
	assert.Equal(t, downURL, results[1].Endpoint)
}

func TestClient_Versions(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/version", r.URL.Path)

		_ = json.NewEncoder(w).Encode(etcd.VersionInfo{
			ClusterVersion: "2.3.0",
			ServerVersion:  "2.3.8",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	results := client.Versions(context.Background())
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Equal(t, "2.3.0", results[0].Response.Data.ClusterVersion)
	assert.Equal(t, "2.3.8", results[0].Response.Data.ServerVersion)
}

func TestClient_BasicAuthForwarded(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "root", username)
		assert.Equal(t, "secret", password)

		_ = json.NewEncoder(w).Encode(etcd.KeyValueInfo{Action: etcd.ActionGet})
	}))
	defer server.Close()

	client, err := New(&etcd.Config{
		Username: "root",
		Password: "secret",
	}, testEndpoints(t, server.URL))
	require.NoError(t, err)

	_, err = client.KV().Get(context.Background(), "/foo", etcd.GetOptions{})
	require.NoError(t, err)
}
