package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/opsinv/assetdb-client/pkg/assetdb"
)

// referenceLists enumerates every list the validators consume.
var referenceLists = []string{
	assetdb.RefStates,
	assetdb.RefBuildings,
	assetdb.RefRooms,
	assetdb.RefGSCStatuses,
	assetdb.RefOperatingSystems,
	assetdb.RefPrograms,
	assetdb.RefLifecycles,
}

// ReferenceData holds the validation reference lists, loaded once at client
// construction and immutable for the process lifetime.
type ReferenceData struct {
	lists map[string][]string
}

// LoadReferenceData pulls every known list from the provider. Lists the
// provider does not serve are simply absent; validating against an absent
// list fails at validation time, not here.
func LoadReferenceData(ctx context.Context, provider assetdb.ReferenceProvider) (*ReferenceData, error) {
	data := &ReferenceData{lists: map[string][]string{}}

	if provider == nil {
		return data, nil
	}

	for _, name := range referenceLists {
		list, err := provider.ReferenceList(ctx, name)
		if errors.Is(err, assetdb.ErrNoReferenceData) {
			// Lists the provider does not manage stay absent.
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("loading reference list %q: %w", name, err)
		}

		copied := make([]string, len(list))
		copy(copied, list)
		data.lists[name] = copied
	}

	return data, nil
}

// List returns one reference list.
func (r *ReferenceData) List(name string) ([]string, error) {
	if r == nil {
		return nil, assetdb.ErrNoReferenceData
	}

	list, ok := r.lists[name]
	if !ok {
		return nil, fmt.Errorf("reference list %q: %w", name, assetdb.ErrNoReferenceData)
	}

	return list, nil
}
