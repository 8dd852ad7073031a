package search

import (
	"strconv"

	"github.com/opsinv/assetdb-client/pkg/assetdb"
)

// project flattens matching entries to display records: core attributes plus
// one field per domain attribute present on the entry, multi-valued fields
// joined by ", ".
func (e *Engine) project(entries []*assetdb.Entry) []assetdb.DisplayRecord {
	records := make([]assetdb.DisplayRecord, 0, len(entries))

	for _, entry := range entries {
		record := assetdb.DisplayRecord{
			ID:          entry.ID,
			Name:        entry.Name,
			Description: entry.Description,
			Project:     refName(entry.Project),
			Type:        refName(entry.Type),
			Status:      refName(entry.Status),
			Author:      refName(entry.Author),
			CreatedOn:   entry.CreatedOn,
			UpdatedOn:   entry.UpdatedOn,
			Fields:      make(map[string]string, len(entry.CustomFields)),
		}

		for _, field := range entry.CustomFields {
			name, err := e.fields.Name(field.ID)
			if err != nil {
				// Fields the mapping does not know keep their numeric id as
				// the column name.
				name = strconv.Itoa(field.ID)
			}

			record.Fields[name] = field.Value.String()
		}

		records = append(records, record)
	}

	return records
}

func refName(ref *assetdb.Ref) string {
	if ref == nil {
		return ""
	}

	return ref.Name
}
