// Package client implements the etcd.Client interface: endpoint failover,
// request dispatch, and the resource clients for the key space, membership,
// statistics, and auth APIs.
package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fivetwenty-io/etcd-client/pkg/etcd"

	etcdhttp "github.com/fivetwenty-io/etcd-client/internal/http"
)

// Client implements the etcd.Client interface.
type Client struct {
	transport *etcdhttp.Client
	endpoints []*url.URL
	logger    etcd.Logger
	cache     etcd.Cache
	cacheTTL  time.Duration

	// Resource clients
	kv      etcd.KVClient
	members etcd.MembersClient
	stats   etcd.StatsClient
	auth    etcd.AuthClient
}

// createTransportOptions builds HTTP transport options from config.
func createTransportOptions(config *etcd.Config) []etcdhttp.Option {
	var opts []etcdhttp.Option

	if config.Logger != nil {
		opts = append(opts, etcdhttp.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		opts = append(opts, etcdhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, etcdhttp.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		opts = append(opts, etcdhttp.WithHTTPTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := 1 * time.Second
		retryWaitMax := 30 * time.Second

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		opts = append(opts, etcdhttp.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return opts
}

// New creates a new etcd API client over the given normalized endpoints.
func New(config *etcd.Config, endpoints []*url.URL) (*Client, error) {
	if config == nil {
		return nil, etcd.ErrConfigRequired
	}

	if len(endpoints) == 0 {
		return nil, etcd.ErrNoEndpoints
	}

	var basicAuth *etcdhttp.BasicAuth
	if config.Username != "" && config.Password != "" {
		basicAuth = &etcdhttp.BasicAuth{
			Username: config.Username,
			Password: config.Password,
		}
	}

	client := &Client{
		transport: etcdhttp.NewClient(basicAuth, createTransportOptions(config)...),
		endpoints: endpoints,
		logger:    config.Logger,
	}

	if config.Cache != nil {
		cache, err := etcd.NewCacheFromConfig(config.Cache)
		if err != nil {
			return nil, err
		}

		client.cache = cache
		client.cacheTTL = config.Cache.TTL()
	}

	client.initializeResourceClients()

	return client, nil
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.kv = NewKVClient(c)
	c.members = NewMembersClient(c)
	c.stats = NewStatsClient(c)
	c.auth = NewAuthClient(c)
}

// KV implements etcd.Client.KV.
func (c *Client) KV() etcd.KVClient {
	return c.kv
}

// Members implements etcd.Client.Members.
func (c *Client) Members() etcd.MembersClient {
	return c.members
}

// Stats implements etcd.Client.Stats.
func (c *Client) Stats() etcd.StatsClient {
	return c.stats
}

// Auth implements etcd.Client.Auth.
func (c *Client) Auth() etcd.AuthClient {
	return c.auth
}

// Endpoints implements etcd.Client.Endpoints.
func (c *Client) Endpoints() []string {
	endpoints := make([]string, len(c.endpoints))
	for i, endpoint := range c.endpoints {
		endpoints[i] = endpoint.String()
	}

	return endpoints
}

// Health implements etcd.Client.Health.
func (c *Client) Health(ctx context.Context) []etcd.EndpointResult[etcd.Health] {
	return fanOut[etcd.Health](ctx, c, "/health")
}

// Versions implements etcd.Client.Versions.
func (c *Client) Versions(ctx context.Context) []etcd.EndpointResult[etcd.VersionInfo] {
	return fanOut[etcd.VersionInfo](ctx, c, "/version")
}

// fanOut queries every endpoint concurrently and reports one result per
// endpoint, in configuration order. Per-endpoint failures are recorded in the
// results rather than aborting the other queries.
func fanOut[T any](ctx context.Context, c *Client, path string) []etcd.EndpointResult[T] {
	results := make([]etcd.EndpointResult[T], len(c.endpoints))

	var group errgroup.Group

	for i, endpoint := range c.endpoints {
		i, endpoint := i, endpoint
		group.Go(func() error {
			spec := requestSpec{method: http.MethodGet, path: path}

			resp, err := request[T](ctx, c, endpoint, spec, []int{http.StatusOK})
			results[i] = etcd.EndpointResult[T]{
				Endpoint: endpoint.String(),
				Response: resp,
				Err:      err,
			}

			return nil
		})
	}

	_ = group.Wait()

	return results
}

// loggerAdapter adapts etcd.Logger to the transport's Logger.
type loggerAdapter struct {
	logger etcd.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
