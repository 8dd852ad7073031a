package constants

import "time"

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout bounds one HTTP attempt, not a whole call.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 3

	// DefaultRetryWait is the base of the linear backoff between retries.
	DefaultRetryWait = 1 * time.Second
)

// Pagination.
const (
	// DefaultPageSize is the page size for full-collection fetches.
	DefaultPageSize = 2000
)

// Wire limits.
const (
	// MaxErrorBodySize bounds how much of an error response body is read.
	MaxErrorBodySize = 64 * 1024
)

// Request defaults.
const (
	// DefaultUserAgent identifies this client on the wire.
	DefaultUserAgent = "assetdb-client/1.0"

	// APIKeyHeader carries the API key when header authentication is used.
	APIKeyHeader = "X-API-Key"

	// APIKeyQueryParam carries the API key when query authentication is used.
	APIKeyQueryParam = "key"

	// DefaultLoginPath is the sign-in form path for the session flow.
	DefaultLoginPath = "/login"
)
