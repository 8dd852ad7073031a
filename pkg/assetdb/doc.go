// Package assetdb provides a typed Go client for the database-entry resource
// of a remote ticketing system used as an asset inventory.
//
// The remote API stores domain attributes (serial number, host name, location,
// lifecycle state, ...) as an untyped array of numbered custom fields. This
// package presents those entries as typed records, translates between domain
// attribute names and numeric field identifiers, validates attribute values
// against reference lists, and searches the full collection in memory, since
// the remote API cannot filter by custom field server side.
//
// # Quick start
//
//	cfg := &assetdb.Config{
//	    Endpoint:  "https://tracker.example.com",
//	    APIKey:    os.Getenv("ASSETDB_API_KEY"),
//	    ProjectID: "it-assets",
//	}
//	cli, err := dbclient.New(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	entry, err := cli.Entries().GetByName(ctx, "SC-300012")
//
// # Searching
//
// Searches fetch the whole collection once (paginated) and evaluate a
// field-specific predicate record by record:
//
//	results, err := cli.Search(ctx, assetdb.SearchFilter{
//	    Field:   assetdb.FieldHostName,
//	    Keyword: "srv-0",
//	    Status:  assetdb.StatusAny,
//	})
//
// # Errors
//
// Failures are classified into distinct types (ConfigurationError, AuthError,
// ClientError, NotFoundError, ValidationError, TransportExhaustedError) so
// callers can distinguish "doesn't exist" from "couldn't ask". See errors.go
// and the Is* helpers.
package assetdb
