package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fivetwenty-io/etcd-client/pkg/etcd"
)

const membersPrefix = "/v2/members"

// MembersClient implements the etcd.MembersClient interface.
type MembersClient struct {
	client *Client
}

// NewMembersClient creates a new cluster membership client.
func NewMembersClient(client *Client) *MembersClient {
	return &MembersClient{client: client}
}

// listResponse is the wire shape of the member list endpoint.
type listResponse struct {
	Members []etcd.Member `json:"members"`
}

// List implements etcd.MembersClient.List.
func (m *MembersClient) List(ctx context.Context) (*etcd.Response[[]etcd.Member], error) {
	spec := requestSpec{
		method: http.MethodGet,
		path:   membersPrefix,
	}

	resp, err := firstOK(ctx, m.client.endpoints, func(ctx context.Context, endpoint *url.URL) (*etcd.Response[listResponse], error) {
		return request[listResponse](ctx, m.client, endpoint, spec, []int{http.StatusOK})
	})
	if err != nil {
		return nil, err
	}

	return &etcd.Response[[]etcd.Member]{
		ClusterInfo: resp.ClusterInfo,
		Data:        resp.Data.Members,
	}, nil
}

// peerURLsBody is the wire shape of member add and update requests.
type peerURLsBody struct {
	PeerURLs []string `json:"peerURLs"`
}

// Add implements etcd.MembersClient.Add.
func (m *MembersClient) Add(ctx context.Context, peerURLs []string) (*etcd.ClusterInfo, error) {
	spec := requestSpec{
		method: http.MethodPost,
		path:   membersPrefix,
		json:   peerURLsBody{PeerURLs: peerURLs},
	}

	return firstOK(ctx, m.client.endpoints, func(ctx context.Context, endpoint *url.URL) (*etcd.ClusterInfo, error) {
		return requestEmpty(ctx, m.client, endpoint, spec, []int{http.StatusCreated})
	})
}

// Remove implements etcd.MembersClient.Remove.
func (m *MembersClient) Remove(ctx context.Context, id string) (*etcd.ClusterInfo, error) {
	spec := requestSpec{
		method: http.MethodDelete,
		path:   membersPrefix + "/" + id,
	}

	return firstOK(ctx, m.client.endpoints, func(ctx context.Context, endpoint *url.URL) (*etcd.ClusterInfo, error) {
		return requestEmpty(ctx, m.client, endpoint, spec, []int{http.StatusNoContent})
	})
}

// Update implements etcd.MembersClient.Update.
func (m *MembersClient) Update(ctx context.Context, id string, peerURLs []string) (*etcd.ClusterInfo, error) {
	spec := requestSpec{
		method: http.MethodPut,
		path:   membersPrefix + "/" + id,
		json:   peerURLsBody{PeerURLs: peerURLs},
	}

	return firstOK(ctx, m.client.endpoints, func(ctx context.Context, endpoint *url.URL) (*etcd.ClusterInfo, error) {
		return requestEmpty(ctx, m.client, endpoint, spec, []int{http.StatusNoContent})
	})
}
