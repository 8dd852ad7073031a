// Package client builds the concrete assetdb.Client: transport, sign-in,
// one-time reference-data load, the entries resource client and the search
// engine, wired together at construction time. There is no ambient global
// connection; every component holds the client it was built with.
package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/opsinv/assetdb-client/internal/auth"
	"github.com/opsinv/assetdb-client/internal/constants"
	"github.com/opsinv/assetdb-client/internal/schema"
	"github.com/opsinv/assetdb-client/internal/search"
	"github.com/opsinv/assetdb-client/internal/transport"
	"github.com/opsinv/assetdb-client/pkg/assetdb"
)

// Client implements the assetdb.Client interface.
type Client struct {
	httpClient *transport.Client
	entries    *EntriesClient
	engine     *search.Engine
	fields     *schema.Table
	refs       *schema.ReferenceData
	logger     assetdb.Logger
	baseURL    string
}

// New creates a client from config. Construction performs the sign-in step
// for session credentials and loads the reference lists exactly once; no
// resource call is issued before both complete.
func New(ctx context.Context, config *assetdb.Config) (*Client, error) {
	if config.Endpoint == "" {
		return nil, assetdb.ErrEndpointRequired
	}

	credentials, session, err := createCredentials(config)
	if err != nil {
		return nil, err
	}

	opts := createTransportOptions(config)
	if session != nil {
		opts = append(opts, transport.WithCookieJar(session.Jar()))
	}

	httpClient, err := transport.NewClient(config.Endpoint, credentials, opts...)
	if err != nil {
		return nil, err
	}

	if session != nil {
		if err := session.SignIn(ctx, httpClient); err != nil {
			return nil, err
		}
	}

	refs, err := schema.LoadReferenceData(ctx, config.ReferenceProvider)
	if err != nil {
		return nil, err
	}

	fields := schema.NewTable()
	entries := NewEntriesClient(httpClient, config.ProjectID, config.PageSize)

	client := &Client{
		httpClient: httpClient,
		entries:    entries,
		fields:     fields,
		refs:       refs,
		logger:     config.Logger,
		baseURL:    config.Endpoint,
	}

	client.engine = search.New(entries, fields, config.StatusIDs, config.OmitWildcardStatus, config.Logger)

	return client, nil
}

// createCredentials picks the credential flavor: an API key when provided,
// otherwise the form-login session flow.
func createCredentials(config *assetdb.Config) (transport.Credentials, *auth.Session, error) {
	if config.APIKey != "" {
		return &auth.APIKey{Key: config.APIKey, InQuery: config.APIKeyInQuery}, nil, nil
	}

	if config.Username != "" && config.Password != "" {
		session, err := auth.NewSession(config.Username, config.Password, config.LoginPath)
		if err != nil {
			return nil, nil, err
		}

		return session, session, nil
	}

	return nil, nil, nil // unauthenticated
}

// createTransportOptions builds transport options from config.
func createTransportOptions(config *assetdb.Config) []transport.Option {
	var opts []transport.Option

	if config.Logger != nil {
		opts = append(opts, transport.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		opts = append(opts, transport.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, transport.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 || config.RetryWait > 0 {
		retryMax := config.RetryMax
		if retryMax <= 0 {
			retryMax = constants.DefaultRetryMax
		}

		retryWait := config.RetryWait
		if retryWait <= 0 {
			retryWait = constants.DefaultRetryWait
		}

		opts = append(opts, transport.WithRetryConfig(retryMax, retryWait))
	}

	if config.HTTPTimeout > 0 {
		opts = append(opts, transport.WithTimeout(config.HTTPTimeout))
	}

	return opts
}

// Entries implements assetdb.Client.Entries.
func (c *Client) Entries() assetdb.EntriesClient {
	return c.entries
}

// Search implements assetdb.Client.Search.
func (c *Client) Search(ctx context.Context, filter assetdb.SearchFilter) ([]assetdb.DisplayRecord, error) {
	return c.engine.Search(ctx, filter)
}

// Validate implements assetdb.Client.Validate. Program values may be given
// as a comma-separated list; every other attribute is a scalar.
func (c *Client) Validate(attribute string, value string) (assetdb.FieldValue, bool, error) {
	return schema.Validate(attribute, splitValue(attribute, value), c.refs)
}

// Field validates a raw attribute value and resolves it to the {id, value}
// pair the wire format carries. ok is false when the input was empty.
func (c *Client) Field(attribute string, value string) (assetdb.CustomField, bool, error) {
	normalized, ok, err := c.Validate(attribute, value)
	if err != nil || !ok {
		return assetdb.CustomField{}, ok, err
	}

	fieldID, err := c.fields.ID(attribute)
	if err != nil {
		return assetdb.CustomField{}, false, fmt.Errorf("resolving attribute: %w", err)
	}

	return assetdb.CustomField{ID: fieldID, Value: normalized}, true, nil
}

func splitValue(attribute string, value string) assetdb.FieldValue {
	if !strings.EqualFold(attribute, schema.AttrProgram) || !strings.Contains(value, ",") {
		return assetdb.NewFieldValue(value)
	}

	parts := strings.Split(value, ",")
	values := make([]string, 0, len(parts))

	for _, part := range parts {
		values = append(values, strings.TrimSpace(part))
	}

	return assetdb.NewMultiFieldValue(values)
}

// loggerAdapter adapts assetdb.Logger to transport.Logger.
type loggerAdapter struct {
	logger assetdb.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
