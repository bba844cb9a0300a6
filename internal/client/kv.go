package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fivetwenty-io/etcd-client/pkg/etcd"
)

const keysPrefix = "/v2/keys"

// KVClient implements the etcd.KVClient interface.
type KVClient struct {
	client *Client
}

// NewKVClient creates a new key space client.
func NewKVClient(client *Client) *KVClient {
	return &KVClient{client: client}
}

// setOptions captures the form fields of the etcd v2 "set" family of
// operations. Nil pointer fields are omitted from the request.
type setOptions struct {
	value      *string
	ttl        *uint64
	dir        bool
	prevExist  *bool
	conditions etcd.CompareConditions
	createDir  bool
}

// deleteOptions captures the query parameters of the etcd v2 "delete" family
// of operations.
type deleteOptions struct {
	recursive  *bool
	dir        *bool
	conditions etcd.CompareConditions
}

// Get implements etcd.KVClient.Get.
func (kv *KVClient) Get(ctx context.Context, key string, opts etcd.GetOptions) (*etcd.Response[etcd.KeyValueInfo], error) {
	cacheable := opts.Cached && kv.client.cache != nil &&
		!opts.Recursive && !opts.Sort && !opts.Quorum

	if cacheable {
		if resp, err := kv.cachedGet(ctx, key); err == nil {
			return resp, nil
		}
	}

	query := url.Values{}
	if opts.Recursive {
		query.Set("recursive", "true")
	}

	if opts.Sort {
		query.Set("sorted", "true")
	}

	if opts.Quorum {
		query.Set("quorum", "true")
	}

	spec := requestSpec{
		method: http.MethodGet,
		path:   keysPrefix + key,
		query:  query,
	}

	resp, err := firstOK(ctx, kv.client.endpoints, func(ctx context.Context, endpoint *url.URL) (*etcd.Response[etcd.KeyValueInfo], error) {
		return request[etcd.KeyValueInfo](ctx, kv.client, endpoint, spec, []int{http.StatusOK})
	})
	if err != nil {
		return nil, err
	}

	if cacheable {
		kv.storeInCache(ctx, key, resp)
	}

	return resp, nil
}

// cachedGet serves a plain get from the response cache.
func (kv *KVClient) cachedGet(ctx context.Context, key string) (*etcd.Response[etcd.KeyValueInfo], error) {
	entry, err := kv.client.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var resp etcd.Response[etcd.KeyValueInfo]
	if err := json.Unmarshal(entry.Data, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// storeInCache records a successful plain get for later cached reads.
func (kv *KVClient) storeInCache(ctx context.Context, key string, resp *etcd.Response[etcd.KeyValueInfo]) {
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}

	_ = kv.client.cache.Set(ctx, key, &etcd.CacheEntry{
		Data:      data,
		ExpiresAt: time.Now().Add(kv.client.cacheTTL),
	})
}

// invalidate drops any cached entry for a key after a write through this
// client.
func (kv *KVClient) invalidate(ctx context.Context, key string) {
	if kv.client.cache != nil {
		_ = kv.client.cache.Delete(ctx, key)
	}
}

// Set implements etcd.KVClient.Set.
func (kv *KVClient) Set(ctx context.Context, key, value string, ttl uint64) (*etcd.Response[etcd.KeyValueInfo], error) {
	return kv.rawSet(ctx, key, setOptions{
		value: &value,
		ttl:   optionalTTL(ttl),
	})
}

// Create implements etcd.KVClient.Create.
func (kv *KVClient) Create(ctx context.Context, key, value string, ttl uint64) (*etcd.Response[etcd.KeyValueInfo], error) {
	prevExist := false

	return kv.rawSet(ctx, key, setOptions{
		value:     &value,
		ttl:       optionalTTL(ttl),
		prevExist: &prevExist,
	})
}

// CreateDir implements etcd.KVClient.CreateDir.
func (kv *KVClient) CreateDir(ctx context.Context, key string, ttl uint64) (*etcd.Response[etcd.KeyValueInfo], error) {
	prevExist := false

	return kv.rawSet(ctx, key, setOptions{
		ttl:       optionalTTL(ttl),
		dir:       true,
		prevExist: &prevExist,
	})
}

// CreateInOrder implements etcd.KVClient.CreateInOrder.
func (kv *KVClient) CreateInOrder(ctx context.Context, dir, value string, ttl uint64) (*etcd.Response[etcd.KeyValueInfo], error) {
	return kv.rawSet(ctx, dir, setOptions{
		value:     &value,
		ttl:       optionalTTL(ttl),
		createDir: true,
	})
}

// Update implements etcd.KVClient.Update.
func (kv *KVClient) Update(ctx context.Context, key, value string, ttl uint64) (*etcd.Response[etcd.KeyValueInfo], error) {
	prevExist := true

	return kv.rawSet(ctx, key, setOptions{
		value:     &value,
		ttl:       optionalTTL(ttl),
		prevExist: &prevExist,
	})
}

// UpdateDir implements etcd.KVClient.UpdateDir.
func (kv *KVClient) UpdateDir(ctx context.Context, key string, ttl uint64) (*etcd.Response[etcd.KeyValueInfo], error) {
	prevExist := true

	return kv.rawSet(ctx, key, setOptions{
		ttl:       optionalTTL(ttl),
		dir:       true,
		prevExist: &prevExist,
	})
}

// CompareAndSwap implements etcd.KVClient.CompareAndSwap.
func (kv *KVClient) CompareAndSwap(ctx context.Context, key, value string, ttl uint64, conditions etcd.CompareConditions) (*etcd.Response[etcd.KeyValueInfo], error) {
	if conditions.IsZero() {
		return nil, &etcd.ClusterError{Errors: []error{etcd.ErrInvalidConditions}}
	}

	return kv.rawSet(ctx, key, setOptions{
		value:      &value,
		ttl:        optionalTTL(ttl),
		conditions: conditions,
	})
}

// CompareAndDelete implements etcd.KVClient.CompareAndDelete.
func (kv *KVClient) CompareAndDelete(ctx context.Context, key string, conditions etcd.CompareConditions) (*etcd.Response[etcd.KeyValueInfo], error) {
	if conditions.IsZero() {
		return nil, &etcd.ClusterError{Errors: []error{etcd.ErrInvalidConditions}}
	}

	return kv.rawDelete(ctx, key, deleteOptions{conditions: conditions})
}

// Delete implements etcd.KVClient.Delete.
func (kv *KVClient) Delete(ctx context.Context, key string, recursive bool) (*etcd.Response[etcd.KeyValueInfo], error) {
	return kv.rawDelete(ctx, key, deleteOptions{recursive: &recursive})
}

// DeleteDir implements etcd.KVClient.DeleteDir.
func (kv *KVClient) DeleteDir(ctx context.Context, key string) (*etcd.Response[etcd.KeyValueInfo], error) {
	dir := true

	return kv.rawDelete(ctx, key, deleteOptions{dir: &dir})
}

// Watch implements etcd.KVClient.Watch.
func (kv *KVClient) Watch(ctx context.Context, key string, opts etcd.WatchOptions) (*etcd.Response[etcd.KeyValueInfo], error) {
	watchCtx := ctx

	if opts.Timeout > 0 {
		var cancel context.CancelFunc

		watchCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	query := url.Values{}
	query.Set("wait", "true")

	if opts.AfterIndex > 0 {
		query.Set("waitIndex", strconv.FormatUint(opts.AfterIndex, 10))
	}

	if opts.Recursive {
		query.Set("recursive", "true")
	}

	spec := requestSpec{
		method: http.MethodGet,
		path:   keysPrefix + key,
		query:  query,
	}

	resp, err := firstOK(watchCtx, kv.client.endpoints, func(ctx context.Context, endpoint *url.URL) (*etcd.Response[etcd.KeyValueInfo], error) {
		return request[etcd.KeyValueInfo](ctx, kv.client, endpoint, spec, []int{http.StatusOK})
	})
	if err != nil {
		if errors.Is(watchCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w: %w", etcd.ErrWatchTimeout, err)
		}

		return nil, err
	}

	return resp, nil
}

// rawSet performs the PUT (or ordered POST) form of a write operation against
// the cluster, invalidating the cache entry for the key on success.
func (kv *KVClient) rawSet(ctx context.Context, key string, opts setOptions) (*etcd.Response[etcd.KeyValueInfo], error) {
	form := url.Values{}
	if opts.value != nil {
		form.Set("value", *opts.value)
	}

	if opts.ttl != nil {
		form.Set("ttl", strconv.FormatUint(*opts.ttl, 10))
	}

	if opts.dir {
		form.Set("dir", "true")
	}

	if opts.prevExist != nil {
		form.Set("prevExist", strconv.FormatBool(*opts.prevExist))
	}

	if opts.conditions.PrevValue != "" {
		form.Set("prevValue", opts.conditions.PrevValue)
	}

	if opts.conditions.PrevIndex > 0 {
		form.Set("prevIndex", strconv.FormatUint(opts.conditions.PrevIndex, 10))
	}

	method := http.MethodPut
	if opts.createDir {
		method = http.MethodPost
	}

	spec := requestSpec{
		method: method,
		path:   keysPrefix + key,
		form:   form,
	}

	resp, err := firstOK(ctx, kv.client.endpoints, func(ctx context.Context, endpoint *url.URL) (*etcd.Response[etcd.KeyValueInfo], error) {
		return request[etcd.KeyValueInfo](ctx, kv.client, endpoint, spec, []int{http.StatusOK, http.StatusCreated})
	})
	if err != nil {
		return nil, err
	}

	kv.invalidate(ctx, key)

	return resp, nil
}

// rawDelete performs the DELETE form of a write operation against the
// cluster, invalidating the cache entry for the key on success.
func (kv *KVClient) rawDelete(ctx context.Context, key string, opts deleteOptions) (*etcd.Response[etcd.KeyValueInfo], error) {
	query := url.Values{}
	if opts.recursive != nil {
		query.Set("recursive", strconv.FormatBool(*opts.recursive))
	}

	if opts.dir != nil {
		query.Set("dir", strconv.FormatBool(*opts.dir))
	}

	if opts.conditions.PrevValue != "" {
		query.Set("prevValue", opts.conditions.PrevValue)
	}

	if opts.conditions.PrevIndex > 0 {
		query.Set("prevIndex", strconv.FormatUint(opts.conditions.PrevIndex, 10))
	}

	spec := requestSpec{
		method: http.MethodDelete,
		path:   keysPrefix + key,
		query:  query,
	}

	resp, err := firstOK(ctx, kv.client.endpoints, func(ctx context.Context, endpoint *url.URL) (*etcd.Response[etcd.KeyValueInfo], error) {
		return request[etcd.KeyValueInfo](ctx, kv.client, endpoint, spec, []int{http.StatusOK})
	})
	if err != nil {
		return nil, err
	}

	kv.invalidate(ctx, key)

	return resp, nil
}

// optionalTTL maps the exported zero-means-none TTL convention onto the
// request form field.
func optionalTTL(ttl uint64) *uint64 {
	if ttl == 0 {
		return nil
	}

	return &ttl
}
