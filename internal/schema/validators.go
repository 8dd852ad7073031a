package schema

import (
	"regexp"
	"strings"

	"github.com/opsinv/assetdb-client/pkg/assetdb"
)

// Kind selects the comparison policy for one validated attribute. The set is
// closed: one variant per policy, dispatched through Validate.
type Kind int

const (
	// KindMembership tests case-insensitive membership and keeps the
	// caller's casing.
	KindMembership Kind = iota
	// KindCanonical tests case-insensitive membership and substitutes the
	// reference list's canonical casing into the normalized output.
	KindCanonical
	// KindCanonicalList applies KindCanonical to each element of a
	// scalar-or-list value independently.
	KindCanonicalList
	// KindSize matches the free-form size pattern "<number> <unit>".
	KindSize
)

// ValidatorSpec binds one attribute to its reference list and policy.
type ValidatorSpec struct {
	Kind    Kind
	RefList string
}

// validatorSpecs is the closed set of validated attributes. Attributes not
// listed here pass through unvalidated.
var validatorSpecs = map[string]ValidatorSpec{
	AttrState:           {Kind: KindMembership, RefList: assetdb.RefStates},
	AttrBuilding:        {Kind: KindMembership, RefList: assetdb.RefBuildings},
	AttrRoom:            {Kind: KindMembership, RefList: assetdb.RefRooms},
	AttrLifecycle:       {Kind: KindMembership, RefList: assetdb.RefLifecycles},
	AttrGSCStatus:       {Kind: KindCanonical, RefList: assetdb.RefGSCStatuses},
	AttrOperatingSystem: {Kind: KindCanonical, RefList: assetdb.RefOperatingSystems},
	AttrProgram:         {Kind: KindCanonicalList, RefList: assetdb.RefPrograms},
	AttrMemory:          {Kind: KindSize},
	AttrHardDriveSize:   {Kind: KindSize},
}

// sizePattern accepts "<number> <unit>" with a case-sensitive unit, after
// whitespace normalization. "1.5 GB", "512 MB".
var sizePattern = regexp.MustCompile(`^\d+(\.\d+)?[ ](KB|MB|GB|TB)$`)

// Spec returns the validator spec for an attribute, if it has one.
func Spec(attribute string) (ValidatorSpec, bool) {
	spec, ok := validatorSpecs[canonicalAttribute(attribute)]

	return spec, ok
}

// canonicalAttribute resolves a case-insensitive attribute name to the table
// spelling, so callers can say "hostname" as well as "HostName".
func canonicalAttribute(attribute string) string {
	lowered := strings.ToLower(attribute)
	for name := range fieldTable {
		if strings.ToLower(name) == lowered {
			return name
		}
	}

	return attribute
}

// Validate checks a raw attribute value against the reference data and
// returns the normalized value.
//
// An empty or whitespace-only input short-circuits to ok == false with no
// error: the attribute is simply omitted. Attributes without a validator
// spec pass through trimmed.
func Validate(attribute string, value assetdb.FieldValue, refs *ReferenceData) (assetdb.FieldValue, bool, error) {
	if value.IsEmpty() {
		return assetdb.FieldValue{}, false, nil
	}

	name := canonicalAttribute(attribute)

	spec, ok := validatorSpecs[name]
	if !ok {
		return trimValue(value), true, nil
	}

	switch spec.Kind {
	case KindMembership:
		return validateMembership(name, value, refs, spec.RefList, false)
	case KindCanonical:
		return validateMembership(name, value, refs, spec.RefList, true)
	case KindCanonicalList:
		return validateList(name, value, refs, spec.RefList)
	case KindSize:
		return validateSize(name, value)
	default:
		return assetdb.FieldValue{}, false, assetdb.NewConfigurationError("no validator for attribute %q", attribute)
	}
}

func trimValue(value assetdb.FieldValue) assetdb.FieldValue {
	trimmed := make([]string, len(value.Values))
	for i, element := range value.Values {
		trimmed[i] = strings.TrimSpace(element)
	}

	return assetdb.FieldValue{Values: trimmed, Multi: value.Multi}
}

// lookupFold finds value in list ignoring case and returns the list's
// canonical spelling.
func lookupFold(list []string, value string) (string, bool) {
	for _, candidate := range list {
		if strings.EqualFold(candidate, value) {
			return candidate, true
		}
	}

	return "", false
}

func validateMembership(attribute string, value assetdb.FieldValue, refs *ReferenceData, refList string, canonical bool) (assetdb.FieldValue, bool, error) {
	list, err := refs.List(refList)
	if err != nil {
		return assetdb.FieldValue{}, false, err
	}

	raw := strings.TrimSpace(value.String())

	match, ok := lookupFold(list, raw)
	if !ok {
		return assetdb.FieldValue{}, false, &assetdb.ValidationError{Attribute: attribute, Value: raw, Valid: list}
	}

	if canonical {
		return assetdb.NewFieldValue(match), true, nil
	}

	return assetdb.NewFieldValue(raw), true, nil
}

// validateList validates each element independently and substitutes the
// canonical casing. The normalized output is the list of canonical names;
// its display form joins them with ", ".
func validateList(attribute string, value assetdb.FieldValue, refs *ReferenceData, refList string) (assetdb.FieldValue, bool, error) {
	list, err := refs.List(refList)
	if err != nil {
		return assetdb.FieldValue{}, false, err
	}

	normalized := make([]string, 0, len(value.Values))

	for _, element := range value.Values {
		element = strings.TrimSpace(element)
		if element == "" {
			continue
		}

		match, ok := lookupFold(list, element)
		if !ok {
			return assetdb.FieldValue{}, false, &assetdb.ValidationError{Attribute: attribute, Value: element, Valid: list}
		}

		normalized = append(normalized, match)
	}

	if len(normalized) == 0 {
		return assetdb.FieldValue{}, false, nil
	}

	return assetdb.FieldValue{Values: normalized, Multi: value.Multi || len(normalized) > 1}, true, nil
}

// validateSize normalizes internal whitespace runs to one space before
// matching, so "1.5   GB" validates and normalizes to "1.5 GB".
func validateSize(attribute string, value assetdb.FieldValue) (assetdb.FieldValue, bool, error) {
	raw := strings.TrimSpace(value.String())
	collapsed := strings.Join(strings.Fields(raw), " ")

	if !sizePattern.MatchString(collapsed) {
		return assetdb.FieldValue{}, false, &assetdb.ValidationError{
			Attribute: attribute,
			Value:     raw,
			Valid:     []string{"<number> KB", "<number> MB", "<number> GB", "<number> TB"},
		}
	}

	return assetdb.NewFieldValue(collapsed), true, nil
}
