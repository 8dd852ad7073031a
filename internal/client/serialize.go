package client

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/opsinv/assetdb-client/pkg/assetdb"
)

// encodeEntry builds the wire body for create and update calls.
//
// Reference attributes are emitted as "<name>_id", not as nested objects,
// and an empty issues list is omitted entirely rather than sent as an empty
// array. Both are compatibility requirements of the remote API.
func encodeEntry(entry *assetdb.Entry) map[string]interface{} {
	body := map[string]interface{}{
		"name": entry.Name,
	}

	if entry.Description != "" {
		body["description"] = entry.Description
	}

	if entry.IsPrivate {
		body["is_private"] = true
	}

	if entry.Project != nil {
		body["project_id"] = entry.Project.ID
	}

	if entry.Status != nil {
		body["status_id"] = entry.Status.ID
	}

	if entry.Type != nil {
		body["type_id"] = entry.Type.ID
	}

	if len(entry.Tags) > 0 {
		tags := make([]string, 0, len(entry.Tags))
		for _, tag := range entry.Tags {
			tags = append(tags, tag.Name)
		}

		body["tags"] = tags
	}

	if len(entry.CustomFields) > 0 {
		body["custom_fields"] = entry.CustomFields
	}

	if len(entry.Issues) > 0 {
		issues := make([]map[string]interface{}, 0, len(entry.Issues))
		for _, issue := range entry.Issues {
			issues = append(issues, map[string]interface{}{"id": issue.ID})
		}

		body["issues"] = issues
	}

	return body
}

// entryDocument is the wire shape of one entry as read back from the API.
// The *_id fields are fallbacks for bodies in this client's own write shape,
// which keeps deserialize(serialize(record)) lossless for references.
type entryDocument struct {
	ID           assetdb.ID            `json:"id"`
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	IsPrivate    bool                  `json:"is_private"`
	Project      *assetdb.Ref          `json:"project"`
	ProjectID    *int                  `json:"project_id"`
	Status       *assetdb.Ref          `json:"status"`
	StatusID     *int                  `json:"status_id"`
	Type         *assetdb.Ref          `json:"type"`
	TypeID       *int                  `json:"type_id"`
	Author       *assetdb.Ref          `json:"author"`
	Tags         []assetdb.Ref         `json:"tags"`
	CustomFields []assetdb.CustomField `json:"custom_fields"`
	Issues       []assetdb.Ref         `json:"issues"`
	CreatedOn    string                `json:"created_on"`
	UpdatedOn    string                `json:"updated_on"`
}

// decodeEntryDocument maps one wire entry to the typed record. Unknown wire
// fields are ignored. The custom-field list replaces any previous state
// wholesale; it is never merged.
func decodeEntryDocument(raw json.RawMessage) (*assetdb.Entry, error) {
	var doc entryDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing entry document: %w", err)
	}

	entry := &assetdb.Entry{
		ID:          doc.ID,
		Name:        doc.Name,
		Description: doc.Description,
		IsPrivate:   doc.IsPrivate,
		Project:     pickRef(doc.Project, doc.ProjectID),
		Status:      pickRef(doc.Status, doc.StatusID),
		Type:        pickRef(doc.Type, doc.TypeID),
		Author:      doc.Author,
		Tags:        doc.Tags,
		Issues:      doc.Issues,
		CreatedOn:   doc.CreatedOn,
		UpdatedOn:   doc.UpdatedOn,
	}

	entry.CustomFields = dedupeFields(doc.CustomFields)

	return entry, nil
}

// pickRef prefers the nested reference object the server sends, falling back
// to a bare id from the write shape.
func pickRef(ref *assetdb.Ref, id *int) *assetdb.Ref {
	if ref != nil {
		return ref
	}

	if id != nil {
		return &assetdb.Ref{ID: *id}
	}

	return nil
}

// dedupeFields enforces the unique-by-id invariant on a wire custom-field
// list, keeping the last occurrence. A server should never send duplicates,
// but a malformed list must not corrupt the record.
func dedupeFields(fields []assetdb.CustomField) []assetdb.CustomField {
	if len(fields) == 0 {
		return fields
	}

	index := make(map[int]int, len(fields))
	deduped := make([]assetdb.CustomField, 0, len(fields))

	for _, field := range fields {
		if at, seen := index[field.ID]; seen {
			deduped[at] = field

			continue
		}

		index[field.ID] = len(deduped)
		deduped = append(deduped, field)
	}

	return deduped
}

// isStatus reports whether err carries the given HTTP status, through either
// a ClientError or an AuthError.
func isStatus(err error, statusCode int) bool {
	clientErr := &assetdb.ClientError{}
	if errors.As(err, &clientErr) {
		return clientErr.StatusCode == statusCode
	}

	authErr := &assetdb.AuthError{}
	if errors.As(err, &authErr) {
		return authErr.StatusCode == statusCode
	}

	return false
}
