package etcd

import "time"

// GetOptions controls the various different ways a get operation can be
// performed.
type GetOptions struct {
	// Recursive includes the contents of child directories in the response.
	Recursive bool
	// Sort returns the contents of a directory in sorted order.
	Sort bool
	// Quorum makes the responding member synchronize with the quorum before
	// answering. Slower, but avoids possibly stale data.
	Quorum bool
	// Cached serves the response from the configured response cache when a
	// fresh entry exists, falling back to the cluster otherwise. Ignored
	// when no cache is configured or when Recursive, Sort, or Quorum is set.
	Cached bool
}

// CompareConditions are the preconditions for compare-and-swap and
// compare-and-delete operations. At least one of the fields must be set.
type CompareConditions struct {
	// PrevValue is the value the key must currently have. Empty means unset.
	PrevValue string
	// PrevIndex is the modified index the key must currently have. Zero
	// means unset.
	PrevIndex uint64
}

// IsZero reports whether both conditions are unset.
func (c CompareConditions) IsZero() bool {
	return c.PrevValue == "" && c.PrevIndex == 0
}

// WatchOptions controls how a key is watched for changes.
type WatchOptions struct {
	// AfterIndex, when non-zero, is the etcd index to use as a lower bound:
	// the watch returns the first change with that index or greater,
	// allowing changes that happened in the past to be observed.
	AfterIndex uint64
	// Recursive also watches all child keys.
	Recursive bool
	// Timeout, when non-zero, bounds how long the watch waits for a change.
	// On expiry the returned error wraps ErrWatchTimeout.
	Timeout time.Duration
}
