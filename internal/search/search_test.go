package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsinv/assetdb-client/internal/schema"
	"github.com/opsinv/assetdb-client/internal/search"
	"github.com/opsinv/assetdb-client/pkg/assetdb"
)

// fakeLister serves a canned collection and records the filter it was asked
// for.
type fakeLister struct {
	entries    map[assetdb.ID]*assetdb.Entry
	lastFilter string
	calls      int
}

func (f *fakeLister) GetAll(ctx context.Context, filter string) (map[assetdb.ID]*assetdb.Entry, error) {
	f.lastFilter = filter
	f.calls++

	return f.entries, nil
}

func entryWithField(id assetdb.ID, name string, fieldID int, value string) *assetdb.Entry {
	entry := &assetdb.Entry{
		ID:     id,
		Name:   name,
		Type:   &assetdb.Ref{ID: 7, Name: "Server"},
		Status: &assetdb.Ref{ID: 1, Name: "valid"},
	}
	entry.SetCustomField(fieldID, assetdb.NewFieldValue(value))

	return entry
}

func newEngine(entries map[assetdb.ID]*assetdb.Entry) (*search.Engine, *fakeLister) {
	lister := &fakeLister{entries: entries}

	return search.New(lister, schema.NewTable(), nil, false, nil), lister
}

func TestEngine_Search(t *testing.T) {
	t.Parallel()
	t.Run("matches a hostname fragment case-insensitively", func(t *testing.T) {
		t.Parallel()

		engine, lister := newEngine(map[assetdb.ID]*assetdb.Entry{
			"18721": entryWithField("18721", "SC-300012", 115, "srv-01"),
			"18722": entryWithField("18722", "SC-300013", 115, "db-01"),
		})

		records, err := engine.Search(context.Background(), assetdb.SearchFilter{
			Field:   assetdb.FieldHostName,
			Keyword: "SRV-0",
		})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "SC-300012", records[0].Name)
		assert.Equal(t, "srv-01", records[0].Fields["HostName"])

		// One full-collection fetch per search, no more.
		assert.Equal(t, 1, lister.calls)
	})

	t.Run("results are sorted by id", func(t *testing.T) {
		t.Parallel()

		engine, _ := newEngine(map[assetdb.ID]*assetdb.Entry{
			"300": entryWithField("300", "c", 115, "srv-3"),
			"2":   entryWithField("2", "a", 115, "srv-1"),
			"41":  entryWithField("41", "b", 115, "srv-2"),
		})

		for range 5 {
			records, err := engine.Search(context.Background(), assetdb.SearchFilter{
				Field:   assetdb.FieldHostName,
				Keyword: "srv",
			})
			require.NoError(t, err)
			require.Len(t, records, 3)
			assert.Equal(t, assetdb.ID("2"), records[0].ID)
			assert.Equal(t, assetdb.ID("41"), records[1].ID)
			assert.Equal(t, assetdb.ID("300"), records[2].ID)
		}
	})

	t.Run("parent never partial-matches", func(t *testing.T) {
		t.Parallel()

		engine, _ := newEngine(map[assetdb.ID]*assetdb.Entry{
			"1": entryWithField("1", "child-a", 114, "12303"),
			"2": entryWithField("2", "child-b", 114, "123031"),
		})

		records, err := engine.Search(context.Background(), assetdb.SearchFilter{
			Field:   assetdb.FieldParent,
			Keyword: "12303",
		})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "child-a", records[0].Name)
	})

	t.Run("program matches any element of the list", func(t *testing.T) {
		t.Parallel()

		apollo := &assetdb.Entry{ID: "1", Name: "box-a"}
		apollo.SetCustomField(113, assetdb.NewMultiFieldValue([]string{"Apollo", "Borealis"}))

		calypso := &assetdb.Entry{ID: "2", Name: "box-b"}
		calypso.SetCustomField(113, assetdb.NewFieldValue("Calypso"))

		engine, _ := newEngine(map[assetdb.ID]*assetdb.Entry{"1": apollo, "2": calypso})

		records, err := engine.Search(context.Background(), assetdb.SearchFilter{
			Field:   assetdb.FieldProgram,
			Keyword: "borealis",
		})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "box-a", records[0].Name)
	})

	t.Run("type searches the built-in type reference", func(t *testing.T) {
		t.Parallel()

		router := &assetdb.Entry{ID: "1", Name: "rt-1", Type: &assetdb.Ref{ID: 8, Name: "Router"}}
		untyped := &assetdb.Entry{ID: "2", Name: "unknown"}

		engine, _ := newEngine(map[assetdb.ID]*assetdb.Entry{"1": router, "2": untyped})

		records, err := engine.Search(context.Background(), assetdb.SearchFilter{
			Field:   assetdb.FieldType,
			Keyword: "rout",
		})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "rt-1", records[0].Name)
	})

	t.Run("records missing the field never match", func(t *testing.T) {
		t.Parallel()

		engine, _ := newEngine(map[assetdb.ID]*assetdb.Entry{
			"1": entryWithField("1", "has-serial", 106, "SN-1"),
		})

		records, err := engine.Search(context.Background(), assetdb.SearchFilter{
			Field:   assetdb.FieldHostName,
			Keyword: ".*",
		})
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("no matches yields an empty list, not an error", func(t *testing.T) {
		t.Parallel()

		engine, _ := newEngine(map[assetdb.ID]*assetdb.Entry{})

		records, err := engine.Search(context.Background(), assetdb.SearchFilter{
			Field:   assetdb.FieldSerialNumber,
			Keyword: "SN",
		})
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("exact match respects case policy", func(t *testing.T) {
		t.Parallel()

		engine, _ := newEngine(map[assetdb.ID]*assetdb.Entry{
			"1": entryWithField("1", "box", 115, "SRV-01"),
		})

		records, err := engine.Search(context.Background(), assetdb.SearchFilter{
			Field:         assetdb.FieldHostName,
			Keyword:       "srv-01",
			ExactMatch:    true,
			CaseSensitive: true,
		})
		require.NoError(t, err)
		assert.Empty(t, records)

		records, err = engine.Search(context.Background(), assetdb.SearchFilter{
			Field:      assetdb.FieldHostName,
			Keyword:    "srv-01",
			ExactMatch: true,
		})
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})
}

func TestEngine_SearchErrors(t *testing.T) {
	t.Parallel()
	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()

		engine, _ := newEngine(nil)

		_, err := engine.Search(context.Background(), assetdb.SearchFilter{
			Field:   "shoe-size",
			Keyword: "42",
		})
		require.Error(t, err)
		assert.True(t, assetdb.IsConfiguration(err))
	})

	t.Run("invalid search pattern", func(t *testing.T) {
		t.Parallel()

		engine, lister := newEngine(nil)

		_, err := engine.Search(context.Background(), assetdb.SearchFilter{
			Field:   assetdb.FieldHostName,
			Keyword: "srv-(",
		})
		require.Error(t, err)
		assert.True(t, assetdb.IsConfiguration(err))

		// Rejected before any fetch.
		assert.Equal(t, 0, lister.calls)
	})

	t.Run("unknown status name", func(t *testing.T) {
		t.Parallel()

		engine, _ := newEngine(nil)

		_, err := engine.Search(context.Background(), assetdb.SearchFilter{
			Field:   assetdb.FieldHostName,
			Keyword: "srv",
			Status:  "half-broken",
		})
		require.Error(t, err)
		assert.True(t, assetdb.IsConfiguration(err))
	})
}

func TestEngine_StatusFilter(t *testing.T) {
	t.Parallel()
	t.Run("named status resolves to its id", func(t *testing.T) {
		t.Parallel()

		engine, lister := newEngine(map[assetdb.ID]*assetdb.Entry{})

		_, err := engine.Search(context.Background(), assetdb.SearchFilter{
			Field:   assetdb.FieldHostName,
			Keyword: "srv",
			Status:  assetdb.StatusValid,
		})
		require.NoError(t, err)
		assert.Equal(t, "status_id=1", lister.lastFilter)
	})

	t.Run("wildcard sends the literal star", func(t *testing.T) {
		t.Parallel()

		engine, lister := newEngine(map[assetdb.ID]*assetdb.Entry{})

		_, err := engine.Search(context.Background(), assetdb.SearchFilter{
			Field:   assetdb.FieldHostName,
			Keyword: "srv",
			Status:  assetdb.StatusAny,
		})
		require.NoError(t, err)
		assert.Equal(t, "status_id=*", lister.lastFilter)
	})

	t.Run("wildcard can be configured away", func(t *testing.T) {
		t.Parallel()

		lister := &fakeLister{entries: map[assetdb.ID]*assetdb.Entry{}}
		engine := search.New(lister, schema.NewTable(), nil, true, nil)

		_, err := engine.Search(context.Background(), assetdb.SearchFilter{
			Field:   assetdb.FieldHostName,
			Keyword: "srv",
		})
		require.NoError(t, err)
		assert.Empty(t, lister.lastFilter)
	})

	t.Run("status names are case-insensitive", func(t *testing.T) {
		t.Parallel()

		engine, lister := newEngine(map[assetdb.ID]*assetdb.Entry{})

		_, err := engine.Search(context.Background(), assetdb.SearchFilter{
			Field:   assetdb.FieldHostName,
			Keyword: "srv",
			Status:  "To Verify",
		})
		require.NoError(t, err)
		assert.Equal(t, "status_id=0", lister.lastFilter)
	})
}
