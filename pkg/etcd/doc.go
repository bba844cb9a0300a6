// Package etcd provides types, interfaces, and helpers for working with the
// etcd v2 HTTP API.
//
// # Overview
//
// The etcd package defines the domain types (e.g., Node, Member, LeaderStats)
// and the interfaces for the API surface (KVClient, MembersClient,
// StatsClient, AuthClient). A concrete implementation of these clients is
// provided by the etcdclient package, which wires configuration, transport,
// basic authentication, and endpoint failover. Most consumers should import
// etcdclient to construct a client and then interact with the interfaces
// exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/etcd-client/pkg/etcd"
//	  "github.com/fivetwenty-io/etcd-client/pkg/etcdclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := etcdclient.New(&etcd.Config{Endpoints: []string{"http://127.0.0.1:2379"}})
//	  if err != nil { log.Fatal(err) }
//
//	  // Set a key and read it back
//	  _, err = cli.KV().Set(ctx, "/foo", "bar", 0)
//	  if err != nil { log.Fatal(err) }
//
//	  resp, err := cli.KV().Get(ctx, "/foo", etcd.GetOptions{})
//	  if err != nil { log.Fatal(err) }
//	  _ = resp.Data.Node.Value
//	}
//
// # Failover
//
// Every key space, membership, and auth operation is tried against each
// configured endpoint in order. The first success wins; if all endpoints
// fail, the returned error is a *ClusterError carrying one error per
// endpoint, in configuration order. Health, version, and per-member
// statistics queries instead fan out to every endpoint and report an
// EndpointResult per member.
//
// # Errors
//
// Per-endpoint failures are classified as *URLError, *TransportError,
// *APIError, *StatusError, or *DecodeError. ClusterError unwraps to the
// per-endpoint errors, so errors.As and helpers such as IsKeyNotFound work
// directly on the error returned by a failed operation.
//
// # Caching
//
// Plain key reads can be served from a pluggable Cache (in-memory or a
// shared NATS JetStream KV bucket) when requested through GetOptions.Cached.
// Writes through the same client invalidate the affected key.
package etcd
