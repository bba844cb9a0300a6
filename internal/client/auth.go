package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fivetwenty-io/etcd-client/pkg/etcd"
)

const authPath = "/v2/auth/enable"

// AuthClient implements the etcd.AuthClient interface.
type AuthClient struct {
	client *Client
}

// NewAuthClient creates a new auth system client.
func NewAuthClient(client *Client) *AuthClient {
	return &AuthClient{client: client}
}

// authStatusBody is the wire shape of the auth status endpoint.
type authStatusBody struct {
	Enabled bool `json:"enabled"`
}

// Status implements etcd.AuthClient.Status.
func (a *AuthClient) Status(ctx context.Context) (*etcd.Response[bool], error) {
	spec := requestSpec{
		method: http.MethodGet,
		path:   authPath,
	}

	resp, err := firstOK(ctx, a.client.endpoints, func(ctx context.Context, endpoint *url.URL) (*etcd.Response[authStatusBody], error) {
		return request[authStatusBody](ctx, a.client, endpoint, spec, []int{http.StatusOK})
	})
	if err != nil {
		return nil, err
	}

	return &etcd.Response[bool]{
		ClusterInfo: resp.ClusterInfo,
		Data:        resp.Data.Enabled,
	}, nil
}

// Enable implements etcd.AuthClient.Enable. Unlike most operations, the
// non-200 statuses here carry meaning rather than failure: a conflict means
// auth was already on, and a bad request means the root user is missing.
func (a *AuthClient) Enable(ctx context.Context) (*etcd.Response[etcd.AuthStatus], error) {
	spec := requestSpec{
		method: http.MethodPut,
		path:   authPath,
	}

	return firstOK(ctx, a.client.endpoints, func(ctx context.Context, endpoint *url.URL) (*etcd.Response[etcd.AuthStatus], error) {
		resp, err := a.client.send(ctx, endpoint, spec)
		if err != nil {
			return nil, err
		}

		var status etcd.AuthStatus

		switch resp.StatusCode {
		case http.StatusOK:
			status = etcd.AuthEnabled
		case http.StatusBadRequest:
			status = etcd.AuthRootUserRequired
		case http.StatusConflict:
			status = etcd.AuthAlreadyEnabled
		default:
			return nil, classifyFailure(resp)
		}

		return &etcd.Response[etcd.AuthStatus]{
			ClusterInfo: clusterInfoFromHeaders(resp),
			Data:        status,
		}, nil
	})
}

// Disable implements etcd.AuthClient.Disable.
func (a *AuthClient) Disable(ctx context.Context) (*etcd.Response[etcd.AuthStatus], error) {
	spec := requestSpec{
		method: http.MethodDelete,
		path:   authPath,
	}

	return firstOK(ctx, a.client.endpoints, func(ctx context.Context, endpoint *url.URL) (*etcd.Response[etcd.AuthStatus], error) {
		resp, err := a.client.send(ctx, endpoint, spec)
		if err != nil {
			return nil, err
		}

		var status etcd.AuthStatus

		switch resp.StatusCode {
		case http.StatusOK:
			status = etcd.AuthDisabled
		case http.StatusUnauthorized:
			status = etcd.AuthUnauthorized
		case http.StatusConflict:
			status = etcd.AuthAlreadyDisabled
		default:
			return nil, classifyFailure(resp)
		}

		return &etcd.Response[etcd.AuthStatus]{
			ClusterInfo: clusterInfoFromHeaders(resp),
			Data:        status,
		}, nil
	})
}
