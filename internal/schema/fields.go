// Package schema maps domain attribute names to the numeric custom-field
// identifiers the remote API stores, and validates attribute values against
// externally supplied reference lists.
package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/opsinv/assetdb-client/pkg/assetdb"
)

// Domain attribute names.
const (
	AttrState           = "State"
	AttrBuilding        = "Building"
	AttrRoom            = "Room"
	AttrGSCStatus       = "GSCStatus"
	AttrLifecycle       = "Lifecycle"
	AttrSerialNumber    = "SerialNumber"
	AttrModel           = "Model"
	AttrManufacturer    = "Manufacturer"
	AttrOperatingSystem = "OperatingSystem"
	AttrMemory          = "Memory"
	AttrHardDriveSize   = "HardDriveSize"
	AttrProgram         = "Program"
	AttrParent          = "Parent"
	AttrHostName        = "HostName"
	AttrIPAddress       = "IPAddress"
	AttrAssetTag        = "AssetTag"
	AttrPurchaseDate    = "PurchaseDate"
	AttrWarrantyEnd     = "WarrantyEnd"
	AttrOwner           = "Owner"
	AttrMACAddress      = "MACAddress"
)

// fieldTable is the single source for the attribute-name to custom-field-id
// mapping. Both lookup directions derive from it; it is fixed at compile
// time and never mutated.
var fieldTable = map[string]int{
	AttrState:           101,
	AttrBuilding:        102,
	AttrRoom:            103,
	AttrGSCStatus:       104,
	AttrLifecycle:       105,
	AttrSerialNumber:    106,
	AttrModel:           107,
	AttrManufacturer:    108,
	AttrOperatingSystem: 110,
	AttrMemory:          111,
	AttrHardDriveSize:   112,
	AttrProgram:         113,
	AttrParent:          114,
	AttrHostName:        115,
	AttrIPAddress:       116,
	AttrAssetTag:        120,
	AttrPurchaseDate:    121,
	AttrWarrantyEnd:     122,
	AttrOwner:           123,
	AttrMACAddress:      150,
}

// Table resolves attribute names to custom-field ids and back. Immutable
// after construction.
type Table struct {
	idByName map[string]int
	nameByID map[int]string
}

// NewTable builds both lookup directions from the one source table.
func NewTable() *Table {
	table := &Table{
		idByName: make(map[string]int, len(fieldTable)),
		nameByID: make(map[int]string, len(fieldTable)),
	}

	for name, id := range fieldTable {
		table.idByName[strings.ToLower(name)] = id
		table.nameByID[id] = name
	}

	return table
}

// ID resolves a domain attribute name (case-insensitive) to its field id.
func (t *Table) ID(attribute string) (int, error) {
	id, ok := t.idByName[strings.ToLower(attribute)]
	if !ok {
		return 0, fmt.Errorf("%q: %w", attribute, assetdb.ErrUnknownAttribute)
	}

	return id, nil
}

// Name resolves a field id back to its domain attribute name, used when
// deserializing a wire record for display.
func (t *Table) Name(fieldID int) (string, error) {
	name, ok := t.nameByID[fieldID]
	if !ok {
		return "", fmt.Errorf("%d: %w", fieldID, assetdb.ErrUnknownFieldID)
	}

	return name, nil
}

// Names returns all attribute names in stable order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.nameByID))
	for _, name := range t.nameByID {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
