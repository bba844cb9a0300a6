package etcd

import (
	"context"
	"time"
)

// KVClient provides access to etcd's primary key space API.
//
// Every operation is attempted against each configured cluster endpoint in
// order until one succeeds. On total failure the returned error is a
// *ClusterError holding one error per attempted endpoint.
type KVClient interface {
	// Get reads the value of a key. If the key is a directory, options
	// control sorting and recursion into child directories.
	Get(ctx context.Context, key string, opts GetOptions) (*Response[KeyValueInfo], error)
	// Set sets the key to the given value with the given time to live in
	// seconds (zero for no expiration). Any previous value and TTL are
	// replaced. Fails if the key is a directory.
	Set(ctx context.Context, key, value string, ttl uint64) (*Response[KeyValueInfo], error)
	// Create creates a new key-value pair. Fails if the key already exists.
	Create(ctx context.Context, key, value string, ttl uint64) (*Response[KeyValueInfo], error)
	// CreateDir creates a new empty directory. Fails if the key already
	// exists.
	CreateDir(ctx context.Context, key string, ttl uint64) (*Response[KeyValueInfo], error)
	// CreateInOrder creates a key-value pair in the given directory with a
	// key name guaranteed to be greater than all existing keys in the
	// directory.
	CreateInOrder(ctx context.Context, dir, value string, ttl uint64) (*Response[KeyValueInfo], error)
	// Update updates an existing key to the given value and TTL. Fails if
	// the key does not exist.
	Update(ctx context.Context, key, value string, ttl uint64) (*Response[KeyValueInfo], error)
	// UpdateDir updates an existing directory's TTL. If the key was a
	// key-value pair, its value is removed and its TTL is updated.
	UpdateDir(ctx context.Context, key string, ttl uint64) (*Response[KeyValueInfo], error)
	// Delete deletes a key-value pair, or a directory and all of its
	// children when recursive is true.
	Delete(ctx context.Context, key string, recursive bool) (*Response[KeyValueInfo], error)
	// DeleteDir deletes an empty directory or a key-value pair. Fails if
	// the directory is not empty.
	DeleteDir(ctx context.Context, key string) (*Response[KeyValueInfo], error)
	// CompareAndSwap updates the key to the given value only if the given
	// conditions match its current state.
	CompareAndSwap(ctx context.Context, key, value string, ttl uint64, conditions CompareConditions) (*Response[KeyValueInfo], error)
	// CompareAndDelete deletes the key only if the given conditions match
	// its current state.
	CompareAndDelete(ctx context.Context, key string, conditions CompareConditions) (*Response[KeyValueInfo], error)
	// Watch blocks until the key (and its children, when recursive) changes
	// and returns the new state. A WatchOptions.Timeout bounds the wait.
	Watch(ctx context.Context, key string, opts WatchOptions) (*Response[KeyValueInfo], error)
}

// MembersClient provides access to etcd's cluster membership API.
type MembersClient interface {
	// List lists the members of the cluster.
	List(ctx context.Context) (*Response[[]Member], error)
	// Add adds a new member to the cluster with the given peer URLs.
	Add(ctx context.Context, peerURLs []string) (*ClusterInfo, error)
	// Remove removes the member with the given ID from the cluster.
	Remove(ctx context.Context, id string) (*ClusterInfo, error)
	// Update replaces the peer URLs of the member with the given ID.
	Update(ctx context.Context, id string, peerURLs []string) (*ClusterInfo, error)
}

// StatsClient provides access to etcd's statistics API.
type StatsClient interface {
	// Leader returns statistics about the cluster leader and its followers.
	Leader(ctx context.Context) (*Response[LeaderStats], error)
	// Self queries each configured endpoint for statistics about itself.
	// Results are returned in endpoint order.
	Self(ctx context.Context) []EndpointResult[SelfStats]
	// Store queries each configured endpoint for statistics about the
	// operations it has handled. Results are returned in endpoint order.
	Store(ctx context.Context) []EndpointResult[StoreStats]
}

// AuthClient provides access to etcd's authentication and authorization API.
type AuthClient interface {
	// Status reports whether the auth system is enabled.
	Status(ctx context.Context) (*Response[bool], error)
	// Enable attempts to enable the auth system.
	Enable(ctx context.Context) (*Response[AuthStatus], error)
	// Disable attempts to disable the auth system.
	Disable(ctx context.Context) (*Response[AuthStatus], error)
}

// Client is an API client for an etcd cluster. When making an API call, the
// client tries each configured endpoint in order until it receives a
// successful response.
type Client interface {
	// KV returns the key space client.
	KV() KVClient
	// Members returns the cluster membership client.
	Members() MembersClient
	// Stats returns the statistics client.
	Stats() StatsClient
	// Auth returns the auth system client.
	Auth() AuthClient

	// Health runs a basic health check against each configured endpoint.
	// Results are returned in endpoint order.
	Health(ctx context.Context) []EndpointResult[Health]
	// Versions returns version information from each configured endpoint.
	// Results are returned in endpoint order.
	Versions(ctx context.Context) []EndpointResult[VersionInfo]
	// Endpoints returns the normalized endpoint URLs the client was
	// constructed with, in the order they are attempted.
	Endpoints() []string
}

// Logger is the interface for structured logging used by the client.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building an etcd Client.
//
// Endpoints is the only required field: URLs for one or more cluster
// members, tried in order on every API call. Construction fails immediately
// if no endpoints are provided or any entry is not a parseable URL; no
// network activity happens until the first API call.
type Config struct {
	// Endpoints are base URLs for one or more cluster members, e.g.
	// "http://127.0.0.1:2379". A bare host:port gets an "http://" scheme.
	Endpoints []string

	// Username and Password, when both set, are sent as HTTP basic
	// authentication on every request.
	Username string
	Password string

	// HTTPTimeout is an optional per-request timeout applied by the
	// transport. Most callers should rely on context deadlines instead.
	HTTPTimeout time.Duration

	// RetryMax is the maximum number of transport-level retries (connection
	// errors only; never based on a response status). Zero disables
	// retries, preserving exactly one network request per endpoint attempt.
	RetryMax int
	// RetryWaitMin is the minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between retries.
	RetryWaitMax time.Duration

	// Debug enables verbose HTTP request/response logging when a Logger is
	// provided.
	Debug bool
	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Cache optionally configures a response cache for key space reads
	// requested with GetOptions.Cached.
	Cache *CacheConfig
}
