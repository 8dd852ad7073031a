package assetdb

import (
	"context"
	"time"
)

// EntriesClient is the resource client for database entries.
type EntriesClient interface {
	// Create posts a new entry under the configured project and returns the
	// server-assigned id. The caller's working record is reset on success.
	Create(ctx context.Context, entry *Entry) (ID, error)

	// Get fetches one entry by id.
	Get(ctx context.Context, id ID) (*Entry, error)

	// GetByName fetches the entry with the given name, or NotFoundError.
	GetByName(ctx context.Context, name string) (*Entry, error)

	// GetAll fetches the whole collection via paginated requests. The filter
	// string, when non-empty, is appended to every page request verbatim
	// (for example "status_id=1"). The returned map is owned by the caller.
	GetAll(ctx context.Context, filter string) (map[ID]*Entry, error)

	// Update replaces the remote entry with the full serialized record. The
	// caller's working record is reset on success.
	Update(ctx context.Context, entry *Entry) error

	// Delete removes one entry by id.
	Delete(ctx context.Context, id ID) error
}

// Client is the top-level API client.
type Client interface {
	// Entries returns the database-entry resource client.
	Entries() EntriesClient

	// Search fetches the full collection once and evaluates the filter's
	// field predicate in memory, returning display records sorted by id.
	Search(ctx context.Context, filter SearchFilter) ([]DisplayRecord, error)

	// Validate checks an attribute value against the loaded reference lists
	// and returns the normalized value. Empty input yields ok == false with
	// no error: the attribute is simply omitted.
	Validate(attribute string, value string) (FieldValue, bool, error)

	// Field validates a raw attribute value and resolves it to the numbered
	// custom field the wire format carries.
	Field(attribute string, value string) (CustomField, bool, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// ReferenceProvider supplies the externally managed reference lists used for
// attribute validation. Lists are loaded once at client construction and
// treated as immutable for the process lifetime.
type ReferenceProvider interface {
	ReferenceList(ctx context.Context, name string) ([]string, error)
}

// Config configures a client built with the client package.
//
// # Authentication
//
// Provide either APIKey (sent as a request header, or as a query parameter
// when APIKeyInQuery is set) or Username/Password for the form login flow.
// The form login signs in once at construction time and holds the session
// cookie jar for the client's lifetime; no resource call is issued before
// sign-in completes.
//
// # Retries
//
// RetryMax bounds retries for transient failures (connection errors, 408,
// 429, 5xx). The wait between attempts grows linearly: attempt number times
// RetryWait. HTTPTimeout bounds each attempt, not the whole call.
type Config struct {
	// Endpoint is the base URL of the remote API, e.g. "https://tracker.example.com".
	Endpoint string
	// ProjectID scopes entry creation, e.g. "it-assets" or "412".
	ProjectID string

	// APIKey authenticates every request when set.
	APIKey string
	// APIKeyInQuery sends the key as the "key" query parameter instead of a header.
	APIKeyInQuery bool
	// Username and Password select the form login session flow.
	Username string
	Password string
	// LoginPath overrides the sign-in form path (default "/login").
	LoginPath string

	// RetryMax is the maximum number of retries per request. 0 uses the default.
	RetryMax int
	// RetryWait is the base of the linear backoff. 0 uses the default.
	RetryWait time.Duration
	// HTTPTimeout bounds one attempt. 0 uses the default.
	HTTPTimeout time.Duration

	// PageSize is the GetAll page size. 0 uses the default of 2000.
	PageSize int
	// OmitWildcardStatus omits the status filter entirely for StatusAny
	// instead of sending the literal "status_id=*" the original tooling sent.
	// Verify against the target API before flipping this.
	OmitWildcardStatus bool

	// ReferenceProvider supplies validation reference lists. Required for
	// Validate and for validated writes; optional otherwise.
	ReferenceProvider ReferenceProvider
	// StatusIDs overrides the status-name to id table. Defaults to
	// {"valid": 1, "invalid": 2, "to verify": 0}.
	StatusIDs map[string]int

	// Logger receives structured log output. Nil disables logging.
	Logger Logger
	// Debug enables request/response logging through Logger.
	Debug bool
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}
