package assetdb

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID is a server-assigned entry identifier. The wire format is a JSON number,
// but the value is opaque to this library and treated as text everywhere.
type ID string

// UnmarshalJSON accepts both numeric and string identifiers.
func (id *ID) UnmarshalJSON(data []byte) error {
	var number json.Number

	err := json.Unmarshal(data, &number)
	if err == nil {
		*id = ID(number.String())

		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("parsing entry id: %w", err)
	}

	*id = ID(text)

	return nil
}

// MarshalJSON emits numeric identifiers as JSON numbers to match the wire
// format, falling back to a string for non-numeric values.
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}

	return json.Marshal(string(id))
}

// Int returns the numeric value of the identifier, or 0 if it is not numeric.
// Used for deterministic ordering of search results.
func (id ID) Int() int64 {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return 0
	}

	return n
}

// Ref is a reference to another resource (project, status, type, author,
// tag, issue) carried as id plus display name.
type Ref struct {
	ID   int    `json:"id"             yaml:"id"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// UnmarshalJSON accepts either the usual {id, name} object or a bare string,
// which some endpoints use for tag lists.
func (r *Ref) UnmarshalJSON(data []byte) error {
	var name string

	err := json.Unmarshal(data, &name)
	if err == nil {
		r.Name = name

		return nil
	}

	type refAlias Ref

	var alias refAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return fmt.Errorf("parsing reference: %w", err)
	}

	*r = Ref(alias)

	return nil
}

// FieldValue holds a custom field value. The remote API encodes these as
// either a single JSON scalar or an array of scalars for multi-valued fields
// such as "programs".
type FieldValue struct {
	Values []string
	Multi  bool
}

// NewFieldValue builds a single-valued field value.
func NewFieldValue(value string) FieldValue {
	return FieldValue{Values: []string{value}}
}

// NewMultiFieldValue builds a multi-valued field value.
func NewMultiFieldValue(values []string) FieldValue {
	return FieldValue{Values: values, Multi: true}
}

// String joins multi-valued fields with ", " for display.
func (v FieldValue) String() string {
	return strings.Join(v.Values, ", ")
}

// IsEmpty reports whether the value carries no usable content.
func (v FieldValue) IsEmpty() bool {
	for _, value := range v.Values {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}

	return true
}

// UnmarshalJSON accepts a scalar or an array of scalars.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(strings.NewReader(string(data)))
	decoder.UseNumber()

	var raw interface{}
	if err := decoder.Decode(&raw); err != nil {
		return fmt.Errorf("parsing custom field value: %w", err)
	}

	switch value := raw.(type) {
	case nil:
		*v = FieldValue{}
	case []interface{}:
		values := make([]string, 0, len(value))
		for _, element := range value {
			values = append(values, scalarToString(element))
		}

		*v = FieldValue{Values: values, Multi: true}
	default:
		*v = FieldValue{Values: []string{scalarToString(value)}}
	}

	return nil
}

// MarshalJSON emits an array for multi-valued fields and a plain string
// otherwise, matching the wire shape the server produced.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	if v.Multi {
		if v.Values == nil {
			return []byte("[]"), nil
		}

		return json.Marshal(v.Values)
	}

	if len(v.Values) == 0 {
		return json.Marshal("")
	}

	return json.Marshal(v.Values[0])
}

func scalarToString(value interface{}) string {
	switch scalar := value.(type) {
	case string:
		return scalar
	case json.Number:
		return scalar.String()
	case bool:
		return strconv.FormatBool(scalar)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", scalar)
	}
}

// CustomField is one {id, value} pair from an entry's custom-field array.
// Within one entry the ids are unique.
type CustomField struct {
	ID    int        `json:"id"    yaml:"id"`
	Value FieldValue `json:"value" yaml:"value"`
}

// Entry is the typed representation of one remote database entry.
//
// An Entry is constructed empty before a create call and populated by the
// client after any successful read. Responses replace the custom-field list
// wholesale; it is never merged.
type Entry struct {
	ID           ID            `json:"id,omitempty"           yaml:"id,omitempty"`
	Name         string        `json:"name"                   yaml:"name"`
	Description  string        `json:"description,omitempty"  yaml:"description,omitempty"`
	IsPrivate    bool          `json:"is_private,omitempty"   yaml:"is_private,omitempty"`
	Project      *Ref          `json:"project,omitempty"      yaml:"project,omitempty"`
	Status       *Ref          `json:"status,omitempty"       yaml:"status,omitempty"`
	Type         *Ref          `json:"type,omitempty"         yaml:"type,omitempty"`
	Author       *Ref          `json:"author,omitempty"       yaml:"author,omitempty"`
	Tags         []Ref         `json:"tags,omitempty"         yaml:"tags,omitempty"`
	CustomFields []CustomField `json:"custom_fields,omitempty" yaml:"custom_fields,omitempty"`
	Issues       []Ref         `json:"issues,omitempty"       yaml:"issues,omitempty"`
	CreatedOn    string        `json:"created_on,omitempty"   yaml:"created_on,omitempty"`
	UpdatedOn    string        `json:"updated_on,omitempty"   yaml:"updated_on,omitempty"`
}

// CustomField returns the custom field with the given id, or nil.
func (e *Entry) CustomField(fieldID int) *CustomField {
	for i := range e.CustomFields {
		if e.CustomFields[i].ID == fieldID {
			return &e.CustomFields[i]
		}
	}

	return nil
}

// SetCustomField adds or replaces the custom field with the given id,
// preserving the unique-by-id invariant.
func (e *Entry) SetCustomField(fieldID int, value FieldValue) {
	for i := range e.CustomFields {
		if e.CustomFields[i].ID == fieldID {
			e.CustomFields[i].Value = value

			return
		}
	}

	e.CustomFields = append(e.CustomFields, CustomField{ID: fieldID, Value: value})
}

// Reset clears the entry back to its zero state. The client resets a working
// record after a successful create or update so stale state cannot leak into
// a second call.
func (e *Entry) Reset() {
	*e = Entry{}
}
