package assetdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Static errors that can be wrapped with context.
var (
	ErrEndpointRequired  = errors.New("API endpoint is required")
	ErrProjectRequired   = errors.New("project identifier is required")
	ErrNameRequired      = errors.New("entry name is required")
	ErrIDRequired        = errors.New("entry id is required")
	ErrNoReferenceData   = errors.New("no reference data loaded")
	ErrUnknownAttribute  = errors.New("unknown attribute name")
	ErrUnknownFieldID    = errors.New("unknown custom field id")
	ErrUnknownSearchable = errors.New("field is not searchable")
	ErrUnknownStatus     = errors.New("unknown status name")
	ErrMalformedResponse = errors.New("malformed response body")
)

// ConfigurationError reports caller-side misconfiguration: a malformed
// endpoint URL, an unknown field name, an invalid search pattern. It is never
// retried and surfaces immediately.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Message
}

// NewConfigurationError builds a ConfigurationError from a format string.
func NewConfigurationError(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

// AuthError reports a 401 or 403 from the remote API. It is never retried and
// carries a distinct type so callers can trigger re-authentication.
type AuthError struct {
	StatusCode int
	Detail     string
}

func (e *AuthError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("authentication failed (status %d)", e.StatusCode)
	}

	return fmt.Sprintf("authentication failed (status %d): %s", e.StatusCode, e.Detail)
}

// ClientError reports a non-retryable 4xx other than 401/403/408/429:
// retrying identical bad input cannot succeed.
type ClientError struct {
	StatusCode int
	Detail     string
}

func (e *ClientError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("request rejected (status %d)", e.StatusCode)
	}

	return fmt.Sprintf("request rejected (status %d): %s", e.StatusCode, e.Detail)
}

// NotFoundError reports zero results for a by-id or by-name lookup, distinct
// from transport failures so callers can tell "doesn't exist" from "couldn't
// ask".
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// maxValidDisplay bounds how many valid values an error message enumerates.
// The set used for validation itself is never truncated.
const maxValidDisplay = 15

// ValidationError reports an attribute value that failed schema validation,
// before any network call. It carries the offending value and the valid set.
type ValidationError struct {
	Attribute string
	Value     string
	Valid     []string
}

func (e *ValidationError) Error() string {
	if len(e.Valid) == 0 {
		return fmt.Sprintf("invalid %s value %q", e.Attribute, e.Value)
	}

	shown := e.Valid
	suffix := ""

	if len(shown) > maxValidDisplay {
		suffix = fmt.Sprintf(" (and %d more)", len(shown)-maxValidDisplay)
		shown = shown[:maxValidDisplay]
	}

	return fmt.Sprintf("invalid %s value %q: valid values are %s%s",
		e.Attribute, e.Value, strings.Join(shown, ", "), suffix)
}

// TransportExhaustedError reports that the retry budget ran out. It carries
// the attempt count and the last observed cause.
type TransportExhaustedError struct {
	Attempts int
	Last     error
}

func (e *TransportExhaustedError) Error() string {
	return fmt.Sprintf("giving up after %d attempt(s): %v", e.Attempts, e.Last)
}

func (e *TransportExhaustedError) Unwrap() error {
	return e.Last
}

// APIError is a structured error response from the remote API. The server
// reports failures as {"errors": ["message", ...]}.
type APIError struct {
	StatusCode int      `json:"status_code" yaml:"status_code"`
	Messages   []string `json:"errors"      yaml:"errors"`
}

func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("API error (status %d)", e.StatusCode)
	}

	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, strings.Join(e.Messages, "; "))
}

// ParseAPIError decodes an error response body. A body that is not the
// documented error shape still yields a usable APIError.
func ParseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	var payload struct {
		Errors []string `json:"errors"`
	}

	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Messages = payload.Errors
	}

	return apiErr
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	notFound := &NotFoundError{}

	return errors.As(err, &notFound)
}

// IsAuth checks if the error is an authentication or authorization failure.
func IsAuth(err error) bool {
	authErr := &AuthError{}

	return errors.As(err, &authErr)
}

// IsClientError checks if the error is a non-retryable caller-input error.
func IsClientError(err error) bool {
	clientErr := &ClientError{}

	return errors.As(err, &clientErr)
}

// IsValidation checks if the error is an attribute validation failure.
func IsValidation(err error) bool {
	validationErr := &ValidationError{}

	return errors.As(err, &validationErr)
}

// IsConfiguration checks if the error is a caller-side configuration error.
func IsConfiguration(err error) bool {
	configErr := &ConfigurationError{}

	return errors.As(err, &configErr)
}

// IsExhausted checks if the error is an exhausted retry budget.
func IsExhausted(err error) bool {
	exhausted := &TransportExhaustedError{}

	return errors.As(err, &exhausted)
}
