package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/opsinv/assetdb-client/internal/constants"
	"github.com/opsinv/assetdb-client/internal/transport"
	"github.com/opsinv/assetdb-client/pkg/assetdb"
)

// EntriesClient implements assetdb.EntriesClient against the db-entry
// endpoints.
type EntriesClient struct {
	httpClient *transport.Client
	projectID  string
	pageSize   int
}

// NewEntriesClient creates an entries client. pageSize 0 uses the default.
func NewEntriesClient(httpClient *transport.Client, projectID string, pageSize int) *EntriesClient {
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}

	return &EntriesClient{
		httpClient: httpClient,
		projectID:  projectID,
		pageSize:   pageSize,
	}
}

// entryEnvelope wraps single-entry responses and request bodies.
type entryEnvelope struct {
	Entry json.RawMessage `json:"db_entry"`
}

// listEnvelope wraps collection responses.
type listEnvelope struct {
	Entries    []json.RawMessage `json:"db_entries"`
	TotalCount int               `json:"total_count"`
	Offset     int               `json:"offset"`
	Limit      int               `json:"limit"`
}

// Create implements assetdb.EntriesClient.Create.
func (c *EntriesClient) Create(ctx context.Context, entry *assetdb.Entry) (assetdb.ID, error) {
	if entry == nil || entry.Name == "" {
		return "", assetdb.ErrNameRequired
	}

	if c.projectID == "" {
		return "", assetdb.ErrProjectRequired
	}

	path := fmt.Sprintf("/projects/%s/db.json", url.PathEscape(c.projectID))

	resp, err := c.httpClient.Post(ctx, path, map[string]interface{}{"db_entry": encodeEntry(entry)})
	if err != nil {
		return "", fmt.Errorf("creating entry: %w", err)
	}

	created, err := decodeEntryResponse(resp.Body)
	if err != nil {
		return "", err
	}

	// Reset the working record so stale state cannot leak into a second create.
	entry.Reset()

	return created.ID, nil
}

// Get implements assetdb.EntriesClient.Get. Unknown wire fields are ignored
// for forward compatibility.
func (c *EntriesClient) Get(ctx context.Context, id assetdb.ID) (*assetdb.Entry, error) {
	if id == "" {
		return nil, assetdb.ErrIDRequired
	}

	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/db/%s.json", url.PathEscape(string(id))), nil)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, &assetdb.NotFoundError{Resource: "entry", Key: string(id)}
		}

		return nil, fmt.Errorf("getting entry: %w", err)
	}

	return decodeEntryResponse(resp.Body)
}

// GetByName implements assetdb.EntriesClient.GetByName.
func (c *EntriesClient) GetByName(ctx context.Context, name string) (*assetdb.Entry, error) {
	if name == "" {
		return nil, assetdb.ErrNameRequired
	}

	query := url.Values{
		"name":  []string{name},
		"limit": []string{"1"},
	}

	resp, err := c.httpClient.Get(ctx, "/db.json", query)
	if err != nil {
		return nil, fmt.Errorf("getting entry by name: %w", err)
	}

	var list listEnvelope
	if err := json.Unmarshal(resp.Body, &list); err != nil {
		return nil, fmt.Errorf("parsing entry list response: %w", err)
	}

	if len(list.Entries) == 0 {
		return nil, &assetdb.NotFoundError{Resource: "entry", Key: name}
	}

	return decodeEntryDocument(list.Entries[0])
}

// GetAll implements assetdb.EntriesClient.GetAll.
//
// Pages are requested in strictly increasing offset order. The loop ends
// when a page returns no entries or the server-reported remaining count
// (total_count minus the next offset) is not positive, so a malformed
// total_count can never cause an infinite loop. Duplicate ids across pages
// resolve last-write-wins.
func (c *EntriesClient) GetAll(ctx context.Context, filter string) (map[assetdb.ID]*assetdb.Entry, error) {
	entries := make(map[assetdb.ID]*assetdb.Entry)
	offset := 0

	for {
		query := url.Values{
			"offset": []string{strconv.Itoa(offset)},
			"limit":  []string{strconv.Itoa(c.pageSize)},
		}

		if filter != "" {
			appendFilter(query, filter)
		}

		resp, err := c.httpClient.Get(ctx, "/db.json", query)
		if err != nil {
			return nil, fmt.Errorf("listing entries at offset %d: %w", offset, err)
		}

		var page listEnvelope
		if err := json.Unmarshal(resp.Body, &page); err != nil {
			return nil, fmt.Errorf("parsing entry list response: %w", err)
		}

		if len(page.Entries) == 0 {
			break
		}

		for _, raw := range page.Entries {
			entry, err := decodeEntryDocument(raw)
			if err != nil {
				return nil, err
			}

			entries[entry.ID] = entry
		}

		offset += len(page.Entries)

		if page.TotalCount-offset <= 0 {
			break
		}
	}

	return entries, nil
}

// Update implements assetdb.EntriesClient.Update. The body is the full
// serialized record, not a partial patch.
func (c *EntriesClient) Update(ctx context.Context, entry *assetdb.Entry) error {
	if entry == nil || entry.ID == "" {
		return assetdb.ErrIDRequired
	}

	path := fmt.Sprintf("/db/%s.json", url.PathEscape(string(entry.ID)))

	_, err := c.httpClient.Put(ctx, path, map[string]interface{}{"db_entry": encodeEntry(entry)})
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return &assetdb.NotFoundError{Resource: "entry", Key: string(entry.ID)}
		}

		return fmt.Errorf("updating entry: %w", err)
	}

	entry.Reset()

	return nil
}

// Delete implements assetdb.EntriesClient.Delete.
func (c *EntriesClient) Delete(ctx context.Context, id assetdb.ID) error {
	if id == "" {
		return assetdb.ErrIDRequired
	}

	_, err := c.httpClient.Delete(ctx, fmt.Sprintf("/db/%s.json", url.PathEscape(string(id))))
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return &assetdb.NotFoundError{Resource: "entry", Key: string(id)}
		}

		return fmt.Errorf("deleting entry: %w", err)
	}

	return nil
}

// appendFilter merges a pre-encoded filter string such as "status_id=1"
// into the page query.
func appendFilter(query url.Values, filter string) {
	parsed, err := url.ParseQuery(filter)
	if err != nil {
		// Opaque filter strings ride along as-is under their own key.
		query.Set("filter", filter)

		return
	}

	for key, values := range parsed {
		for _, value := range values {
			query.Add(key, value)
		}
	}
}

func decodeEntryResponse(body []byte) (*assetdb.Entry, error) {
	var envelope entryEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("parsing entry response: %w", err)
	}

	if len(envelope.Entry) == 0 {
		return nil, fmt.Errorf("parsing entry response: %w", assetdb.ErrMalformedResponse)
	}

	return decodeEntryDocument(envelope.Entry)
}
