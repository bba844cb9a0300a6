// Package etcdclient provides the main entry point for creating etcd API clients
package etcdclient

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/etcd-client/internal/client"
	"github.com/fivetwenty-io/etcd-client/pkg/etcd"
)

// New creates a new etcd API client. Endpoints are normalized (a trailing
// slash is trimmed and a missing scheme defaults to http) and validated;
// construction fails fast on an empty endpoint list or an unparseable URL,
// and performs no network activity.
func New(config *etcd.Config) (etcd.Client, error) {
	if config == nil {
		return nil, etcd.ErrConfigRequired
	}

	if len(config.Endpoints) == 0 {
		return nil, etcd.ErrNoEndpoints
	}

	endpoints := make([]*url.URL, len(config.Endpoints))

	for i, endpoint := range config.Endpoints {
		normalized, err := normalizeEndpoint(endpoint)
		if err != nil {
			return nil, err
		}

		endpoints[i] = normalized
	}

	etcdClient, err := client.New(config, endpoints)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return etcdClient, nil
}

// normalizeEndpoint trims the trailing slash, defaults the scheme, and
// validates that the endpoint parses as a URL.
func normalizeEndpoint(endpoint string) (*url.URL, error) {
	normalized := strings.TrimSuffix(endpoint, "/")
	if !strings.HasPrefix(normalized, "http://") && !strings.HasPrefix(normalized, "https://") {
		normalized = "http://" + normalized
	}

	parsed, err := url.Parse(normalized)
	if err != nil {
		return nil, &etcd.URLError{Endpoint: endpoint, Err: err}
	}

	if parsed.Host == "" {
		return nil, &etcd.URLError{Endpoint: endpoint, Err: etcd.ErrInvalidEndpoint}
	}

	return parsed, nil
}

// NewWithEndpoints creates a new client for the given endpoints (no auth).
func NewWithEndpoints(endpoints ...string) (etcd.Client, error) {
	return New(&etcd.Config{
		Endpoints: endpoints,
	})
}

// NewWithBasicAuth creates a new client using HTTP basic authentication.
func NewWithBasicAuth(username, password string, endpoints ...string) (etcd.Client, error) {
	return New(&etcd.Config{
		Endpoints: endpoints,
		Username:  username,
		Password:  password,
	})
}
