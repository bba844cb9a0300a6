package client

import (
	"context"
	"encoding/json"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/etcd-client/pkg/etcd"

	etcdhttp "github.com/fivetwenty-io/etcd-client/internal/http"
)

// requestSpec describes one API request independent of the endpoint it will
// be sent to.
type requestSpec struct {
	method string
	path   string
	query  url.Values
	form   url.Values
	json   interface{}
}

// buildTarget joins an endpoint base URL with the request path and query
// string into an absolute request target.
func buildTarget(endpoint *url.URL, spec requestSpec) (string, error) {
	target := strings.TrimSuffix(endpoint.String(), "/") + spec.path
	if len(spec.query) > 0 {
		target += "?" + spec.query.Encode()
	}

	if _, err := url.Parse(target); err != nil {
		return "", &etcd.URLError{
			Endpoint: endpoint.String(),
			Path:     spec.path,
			Err:      err,
		}
	}

	return target, nil
}

// request performs one attempt of an API call against one endpoint and
// decodes the response body into T on success. The success set is the list of
// status codes whose body carries a T; any other status is classified as an
// *etcd.APIError, *etcd.StatusError, or *etcd.DecodeError.
func request[T any](ctx context.Context, c *Client, endpoint *url.URL, spec requestSpec, success []int) (*etcd.Response[T], error) {
	resp, err := c.send(ctx, endpoint, spec)
	if err != nil {
		return nil, err
	}

	if !slices.Contains(success, resp.StatusCode) {
		return nil, classifyFailure(resp)
	}

	var data T
	if err := json.Unmarshal(resp.Body, &data); err != nil {
		return nil, &etcd.DecodeError{Err: err}
	}

	return &etcd.Response[T]{
		ClusterInfo: clusterInfoFromHeaders(resp),
		Data:        data,
	}, nil
}

// requestEmpty performs one attempt of an API call whose successful responses
// carry no body, returning only the cluster info headers.
func requestEmpty(ctx context.Context, c *Client, endpoint *url.URL, spec requestSpec, success []int) (*etcd.ClusterInfo, error) {
	resp, err := c.send(ctx, endpoint, spec)
	if err != nil {
		return nil, err
	}

	if !slices.Contains(success, resp.StatusCode) {
		return nil, classifyFailure(resp)
	}

	info := clusterInfoFromHeaders(resp)

	return &info, nil
}

// send builds the request target and executes exactly one transport call.
func (c *Client) send(ctx context.Context, endpoint *url.URL, spec requestSpec) (*etcdhttp.Response, error) {
	target, err := buildTarget(endpoint, spec)
	if err != nil {
		return nil, err
	}

	req := &etcdhttp.Request{
		Method: spec.method,
		URL:    target,
		Form:   spec.form,
	}

	if spec.json != nil {
		body, err := json.Marshal(spec.json)
		if err != nil {
			return nil, &etcd.DecodeError{Err: err}
		}

		req.Body = body
	}

	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		return nil, &etcd.TransportError{Err: err}
	}

	return resp, nil
}

// classifyFailure turns a response outside the success set into the most
// specific error the body supports. A decodable etcd error payload wins; an
// empty body or a body with no error structure degrades to a StatusError or
// DecodeError.
func classifyFailure(resp *etcdhttp.Response) error {
	if len(resp.Body) == 0 {
		return &etcd.StatusError{StatusCode: resp.StatusCode}
	}

	apiErr := &etcd.APIError{}
	if err := json.Unmarshal(resp.Body, apiErr); err != nil {
		return &etcd.DecodeError{Err: err}
	}

	if apiErr.Message == "" && apiErr.ErrorCode == 0 {
		return &etcd.StatusError{StatusCode: resp.StatusCode}
	}

	return apiErr
}

// clusterInfoFromHeaders extracts cluster state from the response headers.
// Absent or malformed headers leave the corresponding fields zero.
func clusterInfoFromHeaders(resp *etcdhttp.Response) etcd.ClusterInfo {
	return etcd.ClusterInfo{
		ClusterID: resp.Headers.Get("X-Etcd-Cluster-Id"),
		EtcdIndex: headerUint64(resp, "X-Etcd-Index"),
		RaftIndex: headerUint64(resp, "X-Raft-Index"),
		RaftTerm:  headerUint64(resp, "X-Raft-Term"),
	}
}

func headerUint64(resp *etcdhttp.Response, name string) uint64 {
	value, err := strconv.ParseUint(resp.Headers.Get(name), 10, 64)
	if err != nil {
		return 0
	}

	return value
}
