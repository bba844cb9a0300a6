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

func TestStatsClient_Leader(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/stats/leader", r.URL.Path)

		_ = json.NewEncoder(w).Encode(etcd.LeaderStats{
			Leader: "924e2e83e93f2560",
			Followers: map[string]etcd.FollowerStats{
				"6e3bd23ae5f1eae0": {
					Counts:  etcd.CountStats{Success: 745, Fail: 0},
					Latency: etcd.LatencyStats{Average: 0.017039, Current: 0.000138},
				},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	resp, err := client.Stats().Leader(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "924e2e83e93f2560", resp.Data.Leader)
	assert.Equal(t, uint64(745), resp.Data.Followers["6e3bd23ae5f1eae0"].Counts.Success)
}

func TestStatsClient_LeaderFailsOver(t *testing.T) {
	t.Parallel()

	// Followers answer the leader stats endpoint with an error
	follower := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(etcd.APIError{
			ErrorCode: etcd.ErrorCodeRaftInternal,
			Message:   "not current leader",
		})
	}))
	defer follower.Close()

	leader := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(etcd.LeaderStats{Leader: "924e2e83e93f2560"})
	}))
	defer leader.Close()

	client := newTestClient(t, follower.URL, leader.URL)

	resp, err := client.Stats().Leader(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "924e2e83e93f2560", resp.Data.Leader)
}

func TestStatsClient_Self(t *testing.T) {
	t.Parallel()

	memberA := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/stats/self", r.URL.Path)

		_ = json.NewEncoder(w).Encode(etcd.SelfStats{
			ID:    "aaa",
			Name:  "infra1",
			State: "StateLeader",
		})
	}))
	defer memberA.Close()

	memberB := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(etcd.SelfStats{
			ID:    "bbb",
			Name:  "infra2",
			State: "StateFollower",
		})
	}))
	defer memberB.Close()

	client := newTestClient(t, memberA.URL, memberB.URL)

	results := client.Stats().Self(context.Background())
	require.Len(t, results, 2)

	// Results follow endpoint configuration order
	require.NoError(t, results[0].Err)
	assert.Equal(t, "infra1", results[0].Response.Data.Name)
	require.NoError(t, results[1].Err)
	assert.Equal(t, "infra2", results[1].Response.Data.Name)
}

func TestStatsClient_SelfPartialFailure(t *testing.T) {
	t.Parallel()

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	downURL := down.URL
	down.Close()

	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(etcd.SelfStats{ID: "bbb", Name: "infra2"})
	}))
	defer up.Close()

	client := newTestClient(t, downURL, up.URL)

	results := client.Stats().Self(context.Background())
	require.Len(t, results, 2)

	// One member down does not hide the healthy one
	require.Error(t, results[0].Err)
	assert.Nil(t, results[0].Response)
	require.NoError(t, results[1].Err)
	assert.Equal(t, "infra2", results[1].Response.Data.Name)
}

func TestStatsClient_Store(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/stats/store", r.URL.Path)

		_ = json.NewEncoder(w).Encode(etcd.StoreStats{
			GetSuccess: 75,
			SetSuccess: 12,
			Watchers:   3,
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	results := client.Stats().Store(context.Background())
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Equal(t, uint64(75), results[0].Response.Data.GetSuccess)
	assert.Equal(t, uint64(3), results[0].Response.Data.Watchers)
}
