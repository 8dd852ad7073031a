package assetdb

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Reference list names resolved through a ReferenceProvider.
const (
	RefStates           = "states"
	RefBuildings        = "buildings"
	RefRooms            = "rooms"
	RefGSCStatuses      = "gsc_statuses"
	RefOperatingSystems = "operating_systems"
	RefPrograms         = "programs"
	RefLifecycles       = "lifecycles"
)

// StaticReferenceProvider serves reference lists from an in-memory map.
// Useful for tests and for callers that manage reference data themselves.
type StaticReferenceProvider map[string][]string

// ReferenceList implements ReferenceProvider.
func (p StaticReferenceProvider) ReferenceList(_ context.Context, name string) ([]string, error) {
	list, ok := p[name]
	if !ok {
		return nil, fmt.Errorf("reference list %q: %w", name, ErrNoReferenceData)
	}

	return list, nil
}

// fileReferenceProvider serves reference lists from a YAML settings file of
// the shape:
//
//	states: [In Use, In Storage, Retired]
//	buildings: [HQ, Annex]
type fileReferenceProvider struct {
	lists map[string][]string
}

// NewFileReferenceProvider loads a YAML reference-data file once. The lists
// are immutable afterwards.
func NewFileReferenceProvider(path string) (ReferenceProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading reference data: %w", err)
	}

	lists := map[string][]string{}
	if err := yaml.Unmarshal(data, &lists); err != nil {
		return nil, fmt.Errorf("parsing reference data: %w", err)
	}

	return &fileReferenceProvider{lists: lists}, nil
}

// ReferenceList implements ReferenceProvider.
func (p *fileReferenceProvider) ReferenceList(_ context.Context, name string) ([]string, error) {
	list, ok := p.lists[name]
	if !ok {
		return nil, fmt.Errorf("reference list %q: %w", name, ErrNoReferenceData)
	}

	return list, nil
}
