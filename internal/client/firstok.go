package client

import (
	"context"
	"net/url"

	"github.com/fivetwenty-io/etcd-client/pkg/etcd"
)

// operation performs one attempt of an API call against a single endpoint
// base URL.
type operation[T any] func(ctx context.Context, endpoint *url.URL) (T, error)

// firstOK runs the operation against each endpoint in order and returns the
// first success. At most one attempt is in flight at a time, and successful
// attempts short-circuit: later endpoints are never contacted. When every
// endpoint fails, the result is a *etcd.ClusterError holding the per-endpoint
// errors in attempt order.
func firstOK[T any](ctx context.Context, endpoints []*url.URL, op operation[T]) (T, error) {
	var zero T

	errs := make([]error, 0, len(endpoints))

	for _, endpoint := range endpoints {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)

			break
		}

		result, err := op(ctx, endpoint)
		if err == nil {
			return result, nil
		}

		errs = append(errs, err)
	}

	return zero, &etcd.ClusterError{Errors: errs}
}
