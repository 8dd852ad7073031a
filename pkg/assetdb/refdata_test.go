package assetdb_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsinv/assetdb-client/pkg/assetdb"
)

func TestStaticReferenceProvider(t *testing.T) {
	t.Parallel()

	provider := assetdb.StaticReferenceProvider{
		assetdb.RefStates: {"Installed", "Stored"},
	}

	list, err := provider.ReferenceList(context.Background(), assetdb.RefStates)
	require.NoError(t, err)
	assert.Equal(t, []string{"Installed", "Stored"}, list)

	_, err = provider.ReferenceList(context.Background(), assetdb.RefRooms)
	require.ErrorIs(t, err, assetdb.ErrNoReferenceData)
}

func TestFileReferenceProvider(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "refdata.yml")
	content := `
states: [Installed, Stored, Retired]
programs:
  - Apollo
  - Borealis
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	provider, err := assetdb.NewFileReferenceProvider(path)
	require.NoError(t, err)

	states, err := provider.ReferenceList(context.Background(), assetdb.RefStates)
	require.NoError(t, err)
	assert.Equal(t, []string{"Installed", "Stored", "Retired"}, states)

	programs, err := provider.ReferenceList(context.Background(), assetdb.RefPrograms)
	require.NoError(t, err)
	assert.Len(t, programs, 2)

	_, err = provider.ReferenceList(context.Background(), assetdb.RefRooms)
	require.ErrorIs(t, err, assetdb.ErrNoReferenceData)

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := assetdb.NewFileReferenceProvider(filepath.Join(t.TempDir(), "absent.yml"))
		require.Error(t, err)
	})
}
