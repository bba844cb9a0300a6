package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fivetwenty-io/etcd-client/pkg/etcd"
)

// StatsClient implements the etcd.StatsClient interface.
type StatsClient struct {
	client *Client
}

// NewStatsClient creates a new statistics client.
func NewStatsClient(client *Client) *StatsClient {
	return &StatsClient{client: client}
}

// Leader implements etcd.StatsClient.Leader. Leader statistics live on the
// leader only, so the request fails over across endpoints like any other
// single-answer operation.
func (s *StatsClient) Leader(ctx context.Context) (*etcd.Response[etcd.LeaderStats], error) {
	spec := requestSpec{
		method: http.MethodGet,
		path:   "/v2/stats/leader",
	}

	return firstOK(ctx, s.client.endpoints, func(ctx context.Context, endpoint *url.URL) (*etcd.Response[etcd.LeaderStats], error) {
		return request[etcd.LeaderStats](ctx, s.client, endpoint, spec, []int{http.StatusOK})
	})
}

// Self implements etcd.StatsClient.Self.
func (s *StatsClient) Self(ctx context.Context) []etcd.EndpointResult[etcd.SelfStats] {
	return fanOut[etcd.SelfStats](ctx, s.client, "/v2/stats/self")
}

// Store implements etcd.StatsClient.Store.
func (s *StatsClient) Store(ctx context.Context) []etcd.EndpointResult[etcd.StoreStats] {
	return fanOut[etcd.StoreStats](ctx, s.client, "/v2/stats/store")
}
