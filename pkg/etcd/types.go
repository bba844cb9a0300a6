package etcd

// Response wraps the primary data of an API call together with information
// about the state of the cluster extracted from the HTTP response headers.
type Response[T any] struct {
	// ClusterInfo describes the cluster at the time of the response.
	ClusterInfo ClusterInfo `json:"cluster_info" yaml:"cluster_info"`
	// Data is the primary data of the response.
	Data T `json:"data"         yaml:"data"`
}

// ClusterInfo holds cluster state reported through the X-Etcd-Cluster-Id,
// X-Etcd-Index, X-Raft-Index, and X-Raft-Term response headers. Fields are
// zero when the corresponding header was absent or malformed.
type ClusterInfo struct {
	// ClusterID is an internal identifier for the cluster.
	ClusterID string `json:"cluster_id,omitempty" yaml:"cluster_id,omitempty"`
	// EtcdIndex is a unique, monotonically-incrementing integer created for
	// each change to etcd.
	EtcdIndex uint64 `json:"etcd_index,omitempty" yaml:"etcd_index,omitempty"`
	// RaftIndex is a unique, monotonically-incrementing integer used by the
	// Raft protocol.
	RaftIndex uint64 `json:"raft_index,omitempty" yaml:"raft_index,omitempty"`
	// RaftTerm is the current Raft election term.
	RaftTerm uint64 `json:"raft_term,omitempty"  yaml:"raft_term,omitempty"`
}

// Action is the type of action that was taken in response to a key space
// API request.
type Action string

// Possible values for Action. "Node" refers to the key or directory being
// acted upon.
const (
	ActionCompareAndDelete Action = "compareAndDelete"
	ActionCompareAndSwap   Action = "compareAndSwap"
	ActionCreate           Action = "create"
	ActionDelete           Action = "delete"
	ActionExpire           Action = "expire"
	ActionGet              Action = "get"
	ActionSet              Action = "set"
	ActionUpdate           Action = "update"
)

// KeyValueInfo describes the result of a successful key space operation.
type KeyValueInfo struct {
	// Action is the action that was taken, e.g. "get" or "set".
	Action Action `json:"action"             yaml:"action"`
	// Node is the etcd node that was operated upon.
	Node *Node `json:"node,omitempty"     yaml:"node,omitempty"`
	// PrevNode is the previous state of the target node.
	PrevNode *Node `json:"prevNode,omitempty" yaml:"prevNode,omitempty"`
}

// Node is an etcd key or directory.
type Node struct {
	// CreatedIndex is the etcd index at which the node was created.
	CreatedIndex uint64 `json:"createdIndex,omitempty"  yaml:"createdIndex,omitempty"`
	// Dir reports whether the node is a directory.
	Dir bool `json:"dir,omitempty"           yaml:"dir,omitempty"`
	// Expiration is an ISO 8601 timestamp for when the key will expire.
	Expiration string `json:"expiration,omitempty"    yaml:"expiration,omitempty"`
	// Key is the name of the key.
	Key string `json:"key,omitempty"           yaml:"key,omitempty"`
	// ModifiedIndex is the etcd index at which the node was last modified.
	ModifiedIndex uint64 `json:"modifiedIndex,omitempty" yaml:"modifiedIndex,omitempty"`
	// Nodes holds the child nodes of a directory.
	Nodes []Node `json:"nodes,omitempty"         yaml:"nodes,omitempty"`
	// TTL is the key's time to live in seconds.
	TTL int64 `json:"ttl,omitempty"           yaml:"ttl,omitempty"`
	// Value is the value of the key. Empty for directories.
	Value string `json:"value,omitempty"         yaml:"value,omitempty"`
}

// Member is an etcd server that is a member of a cluster.
type Member struct {
	// ID is an internal identifier for the cluster member.
	ID string `json:"id"         yaml:"id"`
	// Name is a human-readable name for the cluster member.
	Name string `json:"name"       yaml:"name"`
	// PeerURLs are URLs exposing this cluster member's peer API.
	PeerURLs []string `json:"peerURLs"   yaml:"peerURLs"`
	// ClientURLs are URLs exposing this cluster member's client API.
	ClientURLs []string `json:"clientURLs" yaml:"clientURLs"`
}

// Health is the value returned by the health check endpoint of a healthy
// cluster member.
type Health struct {
	// Health is the health status of the cluster member.
	Health string `json:"health" yaml:"health"`
}

// VersionInfo holds the versions of the etcd cluster and server.
type VersionInfo struct {
	// ClusterVersion is the version of the etcd cluster.
	ClusterVersion string `json:"etcdcluster,omitempty" yaml:"etcdcluster,omitempty"`
	// ServerVersion is the version of the etcd server.
	ServerVersion string `json:"etcdserver,omitempty"  yaml:"etcdserver,omitempty"`
}

// EndpointResult is the outcome of querying one cluster member directly,
// used by operations that fan out to every member instead of failing over.
type EndpointResult[T any] struct {
	// Endpoint is the address of the member that was queried.
	Endpoint string
	// Response is the member's response, nil when Err is set.
	Response *Response[T]
	// Err is the failure reason for this member, nil on success.
	Err error
}

// LeaderStats holds statistics about an etcd cluster leader.
type LeaderStats struct {
	// Leader is the unique identifier of the leader member.
	Leader string `json:"leader"    yaml:"leader"`
	// Followers holds statistics for each peer in the cluster keyed by the
	// peer's unique identifier.
	Followers map[string]FollowerStats `json:"followers" yaml:"followers"`
}

// FollowerStats holds statistics about the health of a single etcd follower.
type FollowerStats struct {
	// Counts holds Raft RPC success and failure counts for this follower.
	Counts CountStats `json:"counts"  yaml:"counts"`
	// Latency holds latency statistics for this follower.
	Latency LatencyStats `json:"latency" yaml:"latency"`
}

// CountStats counts successful and failed Raft RPC requests to an etcd node.
type CountStats struct {
	Fail    uint64 `json:"fail"    yaml:"fail"`
	Success uint64 `json:"success" yaml:"success"`
}

// LatencyStats holds network latency statistics to an etcd node, in seconds.
type LatencyStats struct {
	Average           float64 `json:"average"           yaml:"average"`
	Current           float64 `json:"current"           yaml:"current"`
	Maximum           float64 `json:"maximum"           yaml:"maximum"`
	Minimum           float64 `json:"minimum"           yaml:"minimum"`
	StandardDeviation float64 `json:"standardDeviation" yaml:"standardDeviation"`
}

// SelfStats holds statistics about a single etcd cluster member.
type SelfStats struct {
	// ID is the unique Raft ID of the member.
	ID string `json:"id"                         yaml:"id"`
	// Name is the member's name.
	Name string `json:"name"                       yaml:"name"`
	// LeaderInfo is a small amount of information about the cluster leader.
	LeaderInfo LeaderInfo `json:"leaderInfo"                 yaml:"leaderInfo"`
	// ReceivedAppendRequestCount is the number of received append requests.
	ReceivedAppendRequestCount uint64 `json:"recvAppendRequestCnt"       yaml:"recvAppendRequestCnt"`
	// ReceivedBandwidthRate is the bandwidth rate of received requests.
	ReceivedBandwidthRate float64 `json:"recvBandwidthRate,omitempty" yaml:"recvBandwidthRate,omitempty"`
	// ReceivedPackageRate is the package rate of received requests.
	ReceivedPackageRate float64 `json:"recvPkgRate,omitempty"      yaml:"recvPkgRate,omitempty"`
	// SentAppendRequestCount is the number of sent append requests.
	SentAppendRequestCount uint64 `json:"sendAppendRequestCnt"       yaml:"sendAppendRequestCnt"`
	// SentBandwidthRate is the bandwidth rate of sent requests.
	SentBandwidthRate float64 `json:"sendBandwidthRate,omitempty" yaml:"sendBandwidthRate,omitempty"`
	// SentPackageRate is the package rate of sent requests.
	SentPackageRate float64 `json:"sendPkgRate,omitempty"      yaml:"sendPkgRate,omitempty"`
	// StartTime is the time the member started.
	StartTime string `json:"startTime"                  yaml:"startTime"`
	// State is the Raft state of the member.
	State string `json:"state"                      yaml:"state"`
}

// LeaderInfo is a small amount of information about the cluster leader.
type LeaderInfo struct {
	// ID is the unique Raft ID of the leader.
	ID string `json:"leader"    yaml:"leader"`
	// StartTime is the time the leader started.
	StartTime string `json:"startTime" yaml:"startTime"`
	// Uptime is the amount of time the leader has been up.
	Uptime string `json:"uptime"    yaml:"uptime"`
}

// StoreStats counts the operations handled by an etcd member.
type StoreStats struct {
	CompareAndDeleteFail    uint64 `json:"compareAndDeleteFail"    yaml:"compareAndDeleteFail"`
	CompareAndDeleteSuccess uint64 `json:"compareAndDeleteSuccess" yaml:"compareAndDeleteSuccess"`
	CompareAndSwapFail      uint64 `json:"compareAndSwapFail"      yaml:"compareAndSwapFail"`
	CompareAndSwapSuccess   uint64 `json:"compareAndSwapSuccess"   yaml:"compareAndSwapSuccess"`
	CreateFail              uint64 `json:"createFail"              yaml:"createFail"`
	CreateSuccess           uint64 `json:"createSuccess"           yaml:"createSuccess"`
	DeleteFail              uint64 `json:"deleteFail"              yaml:"deleteFail"`
	DeleteSuccess           uint64 `json:"deleteSuccess"           yaml:"deleteSuccess"`
	ExpireCount             uint64 `json:"expireCount"             yaml:"expireCount"`
	GetFail                 uint64 `json:"getsFail"                yaml:"getsFail"`
	GetSuccess              uint64 `json:"getsSuccess"             yaml:"getsSuccess"`
	SetFail                 uint64 `json:"setsFail"                yaml:"setsFail"`
	SetSuccess              uint64 `json:"setsSuccess"             yaml:"setsSuccess"`
	UpdateFail              uint64 `json:"updateFail"              yaml:"updateFail"`
	UpdateSuccess           uint64 `json:"updateSuccess"           yaml:"updateSuccess"`
	Watchers                uint64 `json:"watchers"                yaml:"watchers"`
}

// AuthStatus is the result of attempting to change the state of the auth
// system.
type AuthStatus string

// Results of attempting to enable the auth system.
const (
	// AuthEnabled means the auth system was successfully enabled.
	AuthEnabled AuthStatus = "enabled"
	// AuthAlreadyEnabled means the auth system was already enabled.
	AuthAlreadyEnabled AuthStatus = "already enabled"
	// AuthRootUserRequired means the auth system could not be enabled
	// because there is no root user.
	AuthRootUserRequired AuthStatus = "root user required"
)

// Results of attempting to disable the auth system.
const (
	// AuthDisabled means the auth system was successfully disabled.
	AuthDisabled AuthStatus = "disabled"
	// AuthAlreadyDisabled means the auth system was already disabled.
	AuthAlreadyDisabled AuthStatus = "already disabled"
	// AuthUnauthorized means the attempt to disable the auth system was not
	// made by a root user.
	AuthUnauthorized AuthStatus = "unauthorized"
)

// IsEnabled reports whether the auth system is enabled after the call that
// produced this status.
func (s AuthStatus) IsEnabled() bool {
	return s == AuthEnabled || s == AuthAlreadyEnabled
}

// IsDisabled reports whether the auth system is disabled after the call that
// produced this status.
func (s AuthStatus) IsDisabled() bool {
	return s == AuthDisabled || s == AuthAlreadyDisabled
}
