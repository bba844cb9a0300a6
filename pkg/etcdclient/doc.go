// Package etcdclient creates etcd API clients.
//
// The package wires the configuration from pkg/etcd into a concrete client:
// endpoint normalization and validation, the HTTP transport with optional
// basic authentication, the per-operation endpoint failover, and the optional
// response cache.
//
//	cli, err := etcdclient.NewWithEndpoints("http://127.0.0.1:2379", "http://127.0.0.1:4001")
//	if err != nil {
//	  log.Fatal(err)
//	}
//
//	resp, err := cli.KV().Get(ctx, "/foo", etcd.GetOptions{})
//
// Construction is offline: endpoints are only contacted when the first API
// call is made.
package etcdclient
