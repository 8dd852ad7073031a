package assetdb

import (
	"sort"
	"strings"
)

// Searchable field names. Except for FieldType, which addresses the built-in
// type reference, each resolves to a numeric custom field id.
const (
	FieldType         = "type"
	FieldParent       = "parent"
	FieldSerialNumber = "serialnumber"
	FieldProgram      = "program"
	FieldHostName     = "hostname"
	FieldModel        = "model"
	FieldMAC          = "mac"
)

// Status filter names. StatusAny applies no status restriction.
const (
	StatusValid    = "valid"
	StatusToVerify = "to verify"
	StatusInvalid  = "invalid"
	StatusAny      = "*"
)

// DefaultStatusIDs maps status names to the small integers the remote API
// stores. The authoritative table is a reference list on the server; these
// are the compiled-in defaults.
func DefaultStatusIDs() map[string]int {
	return map[string]int{
		StatusValid:    1,
		StatusInvalid:  2,
		StatusToVerify: 0,
	}
}

// searchableFields enumerates the closed set of search targets.
var searchableFields = map[string]bool{
	FieldType:         true,
	FieldParent:       true,
	FieldSerialNumber: true,
	FieldProgram:      true,
	FieldHostName:     true,
	FieldModel:        true,
	FieldMAC:          true,
}

// NormalizeSearchField lowercases a field name and resolves aliases
// ("macaddress" is an alias for "mac"). Unknown names are a
// ConfigurationError.
func NormalizeSearchField(name string) (string, error) {
	field := strings.ToLower(strings.TrimSpace(name))
	if field == "macaddress" {
		field = FieldMAC
	}

	if !searchableFields[field] {
		return "", NewConfigurationError("%q is not a searchable field", name)
	}

	return field, nil
}

// SearchFilter describes one search call. It is an ephemeral value object.
type SearchFilter struct {
	// Field is one of the Field* constants (or "macaddress").
	Field string
	// Keyword is the value to match. In non-exact mode it is treated as a
	// regular expression.
	Keyword string
	// Status is one of the Status* constants. Empty means StatusAny.
	Status string
	// CaseSensitive selects the case policy for equality and regex matching.
	CaseSensitive bool
	// ExactMatch requires full equality instead of regex matching. The
	// "parent" field always matches exactly regardless of this flag.
	ExactMatch bool
}

// DisplayRecord is the flat projection of one matching entry: core
// attributes plus one column per custom-field name present in the matching
// set, multi-valued fields joined by ", ".
type DisplayRecord struct {
	ID          ID
	Name        string
	Description string
	Project     string
	Type        string
	Status      string
	Author      string
	CreatedOn   string
	UpdatedOn   string

	// Fields maps domain attribute names to display values.
	Fields map[string]string
}

// FieldColumns returns the sorted distinct custom-field names present in a
// result set, for tabular rendering.
func FieldColumns(records []DisplayRecord) []string {
	seen := map[string]bool{}
	for _, record := range records {
		for name := range record.Fields {
			seen[name] = true
		}
	}

	columns := make([]string, 0, len(seen))
	for name := range seen {
		columns = append(columns, name)
	}

	sort.Strings(columns)

	return columns
}
