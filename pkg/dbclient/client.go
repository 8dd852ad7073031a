// Package dbclient provides the main entry point for creating asset-database clients.
package dbclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/opsinv/assetdb-client/internal/client"
	"github.com/opsinv/assetdb-client/pkg/assetdb"
)

// New creates a new asset-database client from config. The endpoint is
// normalized to an absolute https URL when no scheme is given.
func New(ctx context.Context, config *assetdb.Config) (assetdb.Client, error) {
	if config == nil {
		return nil, assetdb.ErrEndpointRequired
	}

	if config.Endpoint == "" {
		return nil, assetdb.ErrEndpointRequired
	}

	endpoint := strings.TrimSuffix(config.Endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	config.Endpoint = endpoint

	dbClient, err := client.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return dbClient, nil
}

// NewWithAPIKey creates a new client with an endpoint and API key.
func NewWithAPIKey(ctx context.Context, endpoint, apiKey, projectID string) (assetdb.Client, error) {
	return New(ctx, &assetdb.Config{
		Endpoint:  endpoint,
		APIKey:    apiKey,
		ProjectID: projectID,
	})
}

// NewWithPassword creates a new client using the form login session flow.
func NewWithPassword(ctx context.Context, endpoint, username, password, projectID string) (assetdb.Client, error) {
	return New(ctx, &assetdb.Config{
		Endpoint:  endpoint,
		Username:  username,
		Password:  password,
		ProjectID: projectID,
	})
}
