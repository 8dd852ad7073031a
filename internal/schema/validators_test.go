package schema_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsinv/assetdb-client/internal/schema"
	"github.com/opsinv/assetdb-client/pkg/assetdb"
)

func loadRefs(t *testing.T) *schema.ReferenceData {
	t.Helper()

	provider := assetdb.StaticReferenceProvider{
		assetdb.RefStates:           {"Installed", "Stored", "Retired"},
		assetdb.RefBuildings:        {"HQ", "Annex"},
		assetdb.RefRooms:            {"101", "102", "Server Room"},
		assetdb.RefGSCStatuses:      {"Compliant", "NonCompliant", "Exempt"},
		assetdb.RefOperatingSystems: {"Debian 12", "Windows Server 2022", "RHEL 9"},
		assetdb.RefPrograms:         {"Apollo", "Borealis", "Calypso"},
		assetdb.RefLifecycles:       {"Ordered", "InService", "Disposed"},
	}

	refs, err := schema.LoadReferenceData(context.Background(), provider)
	require.NoError(t, err)

	return refs
}

func scalar(value string) assetdb.FieldValue {
	return assetdb.NewFieldValue(value)
}

func TestValidate_Membership(t *testing.T) {
	t.Parallel()

	refs := loadRefs(t)

	t.Run("accepts a listed value and keeps the caller's casing", func(t *testing.T) {
		t.Parallel()

		value, ok, err := schema.Validate(schema.AttrState, scalar("installed"), refs)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "installed", value.String())
	})

	t.Run("rejects an unlisted value with the valid set", func(t *testing.T) {
		t.Parallel()

		_, _, err := schema.Validate(schema.AttrState, scalar("Teleported"), refs)
		require.Error(t, err)
		assert.True(t, assetdb.IsValidation(err))

		validationErr := &assetdb.ValidationError{}
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, []string{"Installed", "Stored", "Retired"}, validationErr.Valid)
		assert.Contains(t, validationErr.Error(), "Teleported")
	})
}

func TestValidate_Canonical(t *testing.T) {
	t.Parallel()

	refs := loadRefs(t)

	t.Run("substitutes the canonical casing", func(t *testing.T) {
		t.Parallel()

		value, ok, err := schema.Validate(schema.AttrOperatingSystem, scalar("debian 12"), refs)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Debian 12", value.String())
	})

	t.Run("gsc status is canonicalized too", func(t *testing.T) {
		t.Parallel()

		value, ok, err := schema.Validate(schema.AttrGSCStatus, scalar("NONCOMPLIANT"), refs)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "NonCompliant", value.String())
	})
}

func TestValidate_ProgramList(t *testing.T) {
	t.Parallel()

	refs := loadRefs(t)

	t.Run("validates each element and canonicalizes", func(t *testing.T) {
		t.Parallel()

		value, ok, err := schema.Validate(schema.AttrProgram,
			assetdb.NewMultiFieldValue([]string{"apollo", "BOREALIS"}), refs)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []string{"Apollo", "Borealis"}, value.Values)
		assert.Equal(t, "Apollo, Borealis", value.String())
	})

	t.Run("one bad element fails the whole value", func(t *testing.T) {
		t.Parallel()

		_, _, err := schema.Validate(schema.AttrProgram,
			assetdb.NewMultiFieldValue([]string{"Apollo", "Dynamo"}), refs)
		require.Error(t, err)
		assert.True(t, assetdb.IsValidation(err))
	})

	t.Run("blank elements are dropped", func(t *testing.T) {
		t.Parallel()

		value, ok, err := schema.Validate(schema.AttrProgram,
			assetdb.NewMultiFieldValue([]string{" Apollo ", ""}), refs)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []string{"Apollo"}, value.Values)
	})

	t.Run("all-blank list is treated as empty", func(t *testing.T) {
		t.Parallel()

		_, ok, err := schema.Validate(schema.AttrProgram,
			assetdb.NewMultiFieldValue([]string{"  ", ""}), refs)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestValidate_Size(t *testing.T) {
	t.Parallel()

	refs := loadRefs(t)

	tests := []struct {
		input string
		want  string
		valid bool
	}{
		{"512 MB", "512 MB", true},
		{"1.5 GB", "1.5 GB", true},
		{"2 TB", "2 TB", true},
		{"16   GB", "16 GB", true},
		{" 8 GB ", "8 GB", true},
		{"8GB", "", false},
		{"8 gb", "", false},
		{"eight GB", "", false},
		{"8 PB", "", false},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			t.Parallel()

			value, ok, err := schema.Validate(schema.AttrMemory, scalar(test.input), refs)
			if !test.valid {
				require.Error(t, err)
				assert.True(t, assetdb.IsValidation(err))

				return
			}

			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, test.want, value.String())
		})
	}
}

func TestValidate_Passthrough(t *testing.T) {
	t.Parallel()

	refs := loadRefs(t)

	t.Run("unvalidated attributes pass through trimmed", func(t *testing.T) {
		t.Parallel()

		value, ok, err := schema.Validate(schema.AttrSerialNumber, scalar("  SN-998877  "), refs)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "SN-998877", value.String())
	})

	t.Run("empty input is omitted, not an error", func(t *testing.T) {
		t.Parallel()

		_, ok, err := schema.Validate(schema.AttrState, scalar("   "), refs)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestValidate_MissingReferenceList(t *testing.T) {
	t.Parallel()

	// A provider that serves nothing: every validated attribute must fail
	// with the reference-data sentinel, not a validation error.
	refs, err := schema.LoadReferenceData(context.Background(), assetdb.StaticReferenceProvider{})
	require.NoError(t, err)

	_, _, err = schema.Validate(schema.AttrState, scalar("Installed"), refs)
	require.ErrorIs(t, err, assetdb.ErrNoReferenceData)

	// Unvalidated attributes do not need reference data at all.
	value, ok, err := schema.Validate(schema.AttrHostName, scalar("srv-01"), refs)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "srv-01", value.String())
}
