// Package search filters an already-retrieved entry collection in memory.
// The remote API cannot filter by custom field server side, so a search is
// one full-collection fetch followed by per-record predicate evaluation.
package search

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/opsinv/assetdb-client/internal/schema"
	"github.com/opsinv/assetdb-client/pkg/assetdb"
)

// Lister is the slice of the entries client the engine needs.
type Lister interface {
	GetAll(ctx context.Context, filter string) (map[assetdb.ID]*assetdb.Entry, error)
}

// Engine evaluates search filters against the full entry collection.
type Engine struct {
	entries      Lister
	fields       *schema.Table
	statusIDs    map[string]int
	omitWildcard bool
	logger       assetdb.Logger
}

// New creates a search engine. statusIDs nil uses the compiled-in defaults.
func New(entries Lister, fields *schema.Table, statusIDs map[string]int, omitWildcard bool, logger assetdb.Logger) *Engine {
	if statusIDs == nil {
		statusIDs = assetdb.DefaultStatusIDs()
	}

	return &Engine{
		entries:      entries,
		fields:       fields,
		statusIDs:    statusIDs,
		omitWildcard: omitWildcard,
		logger:       logger,
	}
}

// predicate decides whether one entry matches. Evaluation errors are
// per-record: they are logged and the record skipped, so one corrupt entry
// cannot abort a search over thousands.
type predicate func(entry *assetdb.Entry) (bool, error)

// Search implements assetdb.Client.Search. Results are sorted by id before
// return: the backing map's iteration order is not stable, and two searches
// over an unchanged collection must return identical output.
func (e *Engine) Search(ctx context.Context, filter assetdb.SearchFilter) ([]assetdb.DisplayRecord, error) {
	field, err := assetdb.NormalizeSearchField(filter.Field)
	if err != nil {
		return nil, err
	}

	statusFilter, err := e.statusFilter(filter.Status)
	if err != nil {
		return nil, err
	}

	match, err := e.buildPredicate(field, filter)
	if err != nil {
		return nil, err
	}

	entries, err := e.entries.GetAll(ctx, statusFilter)
	if err != nil {
		return nil, fmt.Errorf("fetching collection: %w", err)
	}

	matched := make([]*assetdb.Entry, 0)

	for _, entry := range entries {
		ok, err := match(entry)
		if err != nil {
			if e.logger != nil {
				e.logger.Warn("skipping entry during search", map[string]interface{}{
					"id":    string(entry.ID),
					"error": err.Error(),
				})
			}

			continue
		}

		if ok {
			matched = append(matched, entry)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		left, right := matched[i].ID, matched[j].ID
		if left.Int() != right.Int() {
			return left.Int() < right.Int()
		}

		return left < right
	})

	return e.project(matched), nil
}

// statusFilter resolves a status name to the server-side filter string.
// StatusAny sends the literal "status_id=*" the original tooling sent unless
// the client is configured to omit the parameter instead.
func (e *Engine) statusFilter(status string) (string, error) {
	if status == "" || status == assetdb.StatusAny {
		if e.omitWildcard {
			return "", nil
		}

		return "status_id=*", nil
	}

	id, ok := e.statusIDs[strings.ToLower(status)]
	if !ok {
		return "", assetdb.NewConfigurationError("%q: %v", status, assetdb.ErrUnknownStatus)
	}

	return fmt.Sprintf("status_id=%d", id), nil
}

// buildPredicate constructs the field-specific matcher. An invalid search
// pattern is a ConfigurationError raised here, before any evaluation.
func (e *Engine) buildPredicate(field string, filter assetdb.SearchFilter) (predicate, error) {
	switch field {
	case assetdb.FieldType:
		// Built-in type reference, not a custom field.
		match, err := newValueMatcher(filter)
		if err != nil {
			return nil, err
		}

		return func(entry *assetdb.Entry) (bool, error) {
			if entry.Type == nil {
				return false, nil
			}

			return match(entry.Type.Name), nil
		}, nil

	case assetdb.FieldParent:
		// Parent hardware linkage must never partial-match; a substring hit
		// would fabricate a transitive association. Exact equality always.
		return e.customFieldPredicate(schema.AttrParent, equalityMatcher(filter.Keyword, filter.CaseSensitive))

	case assetdb.FieldProgram:
		return e.programPredicate(filter)

	default:
		attribute, ok := customFieldAttribute(field)
		if !ok {
			return nil, assetdb.NewConfigurationError("%q: %v", field, assetdb.ErrUnknownSearchable)
		}

		match, err := newValueMatcher(filter)
		if err != nil {
			return nil, err
		}

		return e.customFieldPredicate(attribute, match)
	}
}

// customFieldAttribute maps a searchable field name to its domain attribute.
func customFieldAttribute(field string) (string, bool) {
	switch field {
	case assetdb.FieldSerialNumber:
		return schema.AttrSerialNumber, true
	case assetdb.FieldHostName:
		return schema.AttrHostName, true
	case assetdb.FieldModel:
		return schema.AttrModel, true
	case assetdb.FieldMAC:
		return schema.AttrMACAddress, true
	case assetdb.FieldParent:
		return schema.AttrParent, true
	default:
		return "", false
	}
}

// customFieldPredicate matches one scalar custom field. A record missing the
// addressed field never matches.
func (e *Engine) customFieldPredicate(attribute string, match func(string) bool) (predicate, error) {
	fieldID, err := e.fields.ID(attribute)
	if err != nil {
		return nil, assetdb.NewConfigurationError("resolving field %q: %v", attribute, err)
	}

	return func(entry *assetdb.Entry) (bool, error) {
		field := entry.CustomField(fieldID)
		if field == nil {
			return false, nil
		}

		return match(field.Value.String()), nil
	}, nil
}

// programPredicate handles the one multi-valued search field. Exact mode
// tests array-contains (or scalar equality); non-exact mode tests each
// element independently against the keyword as a regex.
func (e *Engine) programPredicate(filter assetdb.SearchFilter) (predicate, error) {
	fieldID, err := e.fields.ID(schema.AttrProgram)
	if err != nil {
		return nil, assetdb.NewConfigurationError("resolving field %q: %v", schema.AttrProgram, err)
	}

	match, err := newValueMatcher(filter)
	if err != nil {
		return nil, err
	}

	return func(entry *assetdb.Entry) (bool, error) {
		field := entry.CustomField(fieldID)
		if field == nil {
			return false, nil
		}

		for _, element := range field.Value.Values {
			if match(element) {
				return true, nil
			}
		}

		return false, nil
	}, nil
}

// newValueMatcher builds the scalar matcher: case-policy-aware equality in
// exact mode, the keyword as a regular expression otherwise.
func newValueMatcher(filter assetdb.SearchFilter) (func(string) bool, error) {
	if filter.ExactMatch {
		return equalityMatcher(filter.Keyword, filter.CaseSensitive), nil
	}

	pattern := filter.Keyword
	if !filter.CaseSensitive {
		pattern = "(?i)" + pattern
	}

	expr, err := regexp.Compile(pattern)
	if err != nil {
		return nil, assetdb.NewConfigurationError("invalid search pattern %q: %v", filter.Keyword, err)
	}

	return expr.MatchString, nil
}

func equalityMatcher(keyword string, caseSensitive bool) func(string) bool {
	return func(value string) bool {
		if caseSensitive {
			return value == keyword
		}

		return strings.EqualFold(value, keyword)
	}
}
