package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsinv/assetdb-client/internal/schema"
	"github.com/opsinv/assetdb-client/pkg/assetdb"
)

func TestTable_Lookups(t *testing.T) {
	t.Parallel()

	table := schema.NewTable()

	t.Run("resolves attribute names case-insensitively", func(t *testing.T) {
		t.Parallel()

		for _, attribute := range []string{"HostName", "hostname", "HOSTNAME"} {
			id, err := table.ID(attribute)
			require.NoError(t, err)
			assert.Equal(t, 115, id)
		}
	})

	t.Run("both directions agree", func(t *testing.T) {
		t.Parallel()

		for _, attribute := range table.Names() {
			id, err := table.ID(attribute)
			require.NoError(t, err)

			name, err := table.Name(id)
			require.NoError(t, err)
			assert.Equal(t, attribute, name)
		}
	})

	t.Run("unknown attribute", func(t *testing.T) {
		t.Parallel()

		_, err := table.ID("FlavorText")
		require.ErrorIs(t, err, assetdb.ErrUnknownAttribute)
	})

	t.Run("unknown field id", func(t *testing.T) {
		t.Parallel()

		_, err := table.Name(99999)
		require.ErrorIs(t, err, assetdb.ErrUnknownFieldID)
	})

	t.Run("names are sorted", func(t *testing.T) {
		t.Parallel()

		names := table.Names()
		require.NotEmpty(t, names)
		assert.IsIncreasing(t, names)
	})
}
