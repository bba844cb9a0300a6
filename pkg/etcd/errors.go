package etcd

import (
	"errors"
	"fmt"
)

// APIError is the structured error payload returned by etcd itself. It is
// the authoritative failure reason when a cluster member rejects a request.
type APIError struct {
	// Cause is the key that was being operated upon or the reason for the
	// failure, if the server reported one.
	Cause string `json:"cause,omitempty"  yaml:"cause,omitempty"`
	// ErrorCode is the etcd error code.
	ErrorCode uint64 `json:"errorCode"        yaml:"errorCode"`
	// Index is the etcd index at the time of the error.
	Index uint64 `json:"index"            yaml:"index"`
	// Message is a human-friendly description of the error.
	Message string `json:"message"          yaml:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Cause != "" {
		return fmt.Sprintf("%s: %s (code: %d)", e.Message, e.Cause, e.ErrorCode)
	}

	return fmt.Sprintf("%s (code: %d)", e.Message, e.ErrorCode)
}

// StatusError reports a response status code that was neither a recognized
// success code nor decodable as a structured API error.
type StatusError struct {
	StatusCode int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected response status %d", e.StatusCode)
}

// DecodeError reports a response body that failed to decode into the
// expected shape, for both success payloads and error payloads.
type DecodeError struct {
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response body: %v", e.Err)
}

// Unwrap returns the underlying decode failure.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// TransportError reports a connection, DNS, TLS, or protocol-level failure
// reaching a cluster member.
type TransportError struct {
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

// Unwrap returns the underlying transport failure.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// URLError reports that an endpoint base address and a request path could
// not be joined into a valid request target.
type URLError struct {
	Endpoint string
	Path     string
	Err      error
}

// Error implements the error interface.
func (e *URLError) Error() string {
	return fmt.Sprintf("building request URL for %s%s: %v", e.Endpoint, e.Path, e.Err)
}

// Unwrap returns the underlying URL parse failure.
func (e *URLError) Unwrap() error {
	return e.Err
}

// ClusterError is returned when an operation failed against every cluster
// member it was attempted on. Errors holds one error per attempted member,
// in the order the endpoints were supplied at client construction.
type ClusterError struct {
	Errors []error
}

// Error implements the error interface.
func (e *ClusterError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "cluster request failed"
	case 1:
		return fmt.Sprintf("cluster request failed on 1 endpoint: %v", e.Errors[0])
	default:
		return fmt.Sprintf("cluster request failed on %d endpoints, first error: %v", len(e.Errors), e.Errors[0])
	}
}

// Unwrap exposes the per-endpoint errors to errors.Is and errors.As.
func (e *ClusterError) Unwrap() []error {
	return e.Errors
}

// etcd v2 error codes.
const (
	ErrorCodeKeyNotFound       = 100
	ErrorCodeTestFailed        = 101
	ErrorCodeNotFile           = 102
	ErrorCodeNotDir            = 104
	ErrorCodeNodeExist         = 105
	ErrorCodeRootReadOnly      = 107
	ErrorCodeDirNotEmpty       = 108
	ErrorCodePrevValueRequired = 201
	ErrorCodeTTLNaN            = 202
	ErrorCodeIndexNaN          = 203
	ErrorCodeRaftInternal      = 300
	ErrorCodeLeaderElect       = 301
	ErrorCodeWatcherCleared    = 400
	ErrorCodeEventIndexCleared = 401
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired       = errors.New("config is required")
	ErrNoEndpoints          = errors.New("no endpoints provided")
	ErrInvalidEndpoint      = errors.New("endpoint has no host")
	ErrInvalidConditions    = errors.New("conditions must include a previous value, a previous index, or both")
	ErrWatchTimeout         = errors.New("watch timed out")
	ErrCacheDisabled        = errors.New("cache disabled")
	ErrCacheKeyNotFound     = errors.New("key not found in cache")
	ErrCacheEntryExpired    = errors.New("cache entry expired")
	ErrNATSConfigRequired   = errors.New("NATS configuration required for NATS cache")
	ErrUnsupportedCacheType = errors.New("unsupported cache type")
)

// IsKeyNotFound checks if the error is etcd's "key not found" error. It sees
// through ClusterError, so it can be used directly on the error returned by
// a failed key space operation.
func IsKeyNotFound(err error) bool {
	return hasErrorCode(err, ErrorCodeKeyNotFound)
}

// IsNodeExist checks if the error is etcd's "node exists" error, returned by
// create operations when the key is already present.
func IsNodeExist(err error) bool {
	return hasErrorCode(err, ErrorCodeNodeExist)
}

// IsTestFailed checks if the error is etcd's "compare failed" error, returned
// when compare-and-swap or compare-and-delete conditions didn't hold.
func IsTestFailed(err error) bool {
	return hasErrorCode(err, ErrorCodeTestFailed)
}

func hasErrorCode(err error, code uint64) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode == code
	}

	return false
}
