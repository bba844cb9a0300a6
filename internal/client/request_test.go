package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/fivetwenty-io/etcd-client/pkg/etcd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	etcdhttp "github.com/fivetwenty-io/etcd-client/internal/http"
)

func newTestClient(t *testing.T, rawURLs ...string) *Client {
	t.Helper()

	client := &Client{
		transport: etcdhttp.NewClient(nil),
		endpoints: testEndpoints(t, rawURLs...),
	}
	client.initializeResourceClients()

	return client
}

func TestBuildTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		endpoint string
		spec     requestSpec
		expected string
	}{
		{
			name:     "plain path",
			endpoint: "http://127.0.0.1:2379",
			spec:     requestSpec{path: "/v2/keys/foo"},
			expected: "http://127.0.0.1:2379/v2/keys/foo",
		},
		{
			name:     "trailing slash on endpoint",
			endpoint: "http://127.0.0.1:2379/",
			spec:     requestSpec{path: "/v2/keys/foo"},
			expected: "http://127.0.0.1:2379/v2/keys/foo",
		},
		{
			name:     "query string",
			endpoint: "http://127.0.0.1:2379",
			spec: requestSpec{
				path:  "/v2/keys/foo",
				query: url.Values{"recursive": []string{"true"}},
			},
			expected: "http://127.0.0.1:2379/v2/keys/foo?recursive=true",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			endpoint, err := url.Parse(tt.endpoint)
			require.NoError(t, err)

			target, err := buildTarget(endpoint, tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, target)
		})
	}
}

func TestBuildTarget_InvalidPath(t *testing.T) {
	t.Parallel()

	endpoint, err := url.Parse("http://127.0.0.1:2379")
	require.NoError(t, err)

	_, err = buildTarget(endpoint, requestSpec{path: "/v2/keys/\x7f\x00bad"})
	require.Error(t, err)

	urlErr := &etcd.URLError{}
	require.ErrorAs(t, err, &urlErr)
	assert.Equal(t, "http://127.0.0.1:2379", urlErr.Endpoint)
}

func TestRequest_SuccessDecodesBodyAndHeaders(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Etcd-Cluster-Id", "abc123")
		w.Header().Set("X-Etcd-Index", "42")
		w.Header().Set("X-Raft-Index", "100")
		w.Header().Set("X-Raft-Term", "7")
		_ = json.NewEncoder(w).Encode(etcd.KeyValueInfo{
			Action: etcd.ActionGet,
			Node:   &etcd.Node{Key: "/foo", Value: "bar"},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	endpoint := client.endpoints[0]

	resp, err := request[etcd.KeyValueInfo](context.Background(), client, endpoint, requestSpec{
		method: http.MethodGet,
		path:   "/v2/keys/foo",
	}, []int{http.StatusOK})
	require.NoError(t, err)

	assert.Equal(t, etcd.ActionGet, resp.Data.Action)
	assert.Equal(t, "bar", resp.Data.Node.Value)
	assert.Equal(t, "abc123", resp.ClusterInfo.ClusterID)
	assert.Equal(t, uint64(42), resp.ClusterInfo.EtcdIndex)
	assert.Equal(t, uint64(100), resp.ClusterInfo.RaftIndex)
	assert.Equal(t, uint64(7), resp.ClusterInfo.RaftTerm)
}

func TestRequest_MalformedClusterHeadersAreZero(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Etcd-Index", "not-a-number")
		_ = json.NewEncoder(w).Encode(etcd.KeyValueInfo{Action: etcd.ActionGet})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	resp, err := request[etcd.KeyValueInfo](context.Background(), client, client.endpoints[0], requestSpec{
		method: http.MethodGet,
		path:   "/v2/keys/foo",
	}, []int{http.StatusOK})
	require.NoError(t, err)
	assert.Zero(t, resp.ClusterInfo.EtcdIndex)
	assert.Empty(t, resp.ClusterInfo.ClusterID)
}

func TestRequest_APIErrorPayload(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(etcd.APIError{
			Cause:     "/foo",
			ErrorCode: etcd.ErrorCodeKeyNotFound,
			Index:     42,
			Message:   "Key not found",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := request[etcd.KeyValueInfo](context.Background(), client, client.endpoints[0], requestSpec{
		method: http.MethodGet,
		path:   "/v2/keys/foo",
	}, []int{http.StatusOK})
	require.Error(t, err)

	apiErr := &etcd.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, uint64(etcd.ErrorCodeKeyNotFound), apiErr.ErrorCode)
	assert.Equal(t, "/foo", apiErr.Cause)
	assert.Equal(t, uint64(42), apiErr.Index)
}

func TestRequest_EmptyBodyUnexpectedStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := request[etcd.KeyValueInfo](context.Background(), client, client.endpoints[0], requestSpec{
		method: http.MethodGet,
		path:   "/v2/keys/foo",
	}, []int{http.StatusOK})
	require.Error(t, err)

	statusErr := &etcd.StatusError{}
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
}

func TestRequest_UndecodableErrorBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>gateway error</html>"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := request[etcd.KeyValueInfo](context.Background(), client, client.endpoints[0], requestSpec{
		method: http.MethodGet,
		path:   "/v2/keys/foo",
	}, []int{http.StatusOK})
	require.Error(t, err)

	decodeErr := &etcd.DecodeError{}
	assert.ErrorAs(t, err, &decodeErr)
}

func TestRequest_UndecodableSuccessBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := request[etcd.KeyValueInfo](context.Background(), client, client.endpoints[0], requestSpec{
		method: http.MethodGet,
		path:   "/v2/keys/foo",
	}, []int{http.StatusOK})
	require.Error(t, err)

	decodeErr := &etcd.DecodeError{}
	assert.ErrorAs(t, err, &decodeErr)
}

func TestRequest_TransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close()

	client := newTestClient(t, serverURL)

	_, err := request[etcd.KeyValueInfo](context.Background(), client, client.endpoints[0], requestSpec{
		method: http.MethodGet,
		path:   "/v2/keys/foo",
	}, []int{http.StatusOK})
	require.Error(t, err)

	transportErr := &etcd.TransportError{}
	assert.ErrorAs(t, err, &transportErr)
}

func TestRequestEmpty_ReturnsClusterInfo(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Etcd-Index", "99")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	info, err := requestEmpty(context.Background(), client, client.endpoints[0], requestSpec{
		method: http.MethodDelete,
		path:   "/v2/members/deadbeef",
	}, []int{http.StatusNoContent})
	require.NoError(t, err)
	assert.Equal(t, uint64(99), info.EtcdIndex)
}
