package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/willrr/ha-toyota-willrr/api"
	"github.com/willrr/ha-toyota-willrr/util"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "stats.db"), util.NewLogger("db"))
	require.NoError(t, err)

	return store
}

func cycle(vin string, distance float64) api.CycleResult {
	return api.CycleResult{{
		Vehicle: api.Vehicle{VIN: vin},
		Statistics: api.Statistics{
			api.PeriodDay:  &api.Summary{Distance: distance, Duration: 3600},
			api.PeriodWeek: &api.Summary{Distance: distance * 7},
		},
	}}
}

func TestPersistAndHistory(t *testing.T) {
	store := testStore(t)

	require.NoError(t, store.Persist(cycle("JT123456789012345", 10)))
	require.NoError(t, store.Persist(cycle("JT123456789012345", 20)))

	records, err := store.History("JT123456789012345", api.PeriodDay, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// most recent first
	assert.Equal(t, 20.0, records[0].Distance)
	assert.Equal(t, 10.0, records[1].Distance)
	assert.Equal(t, "day", records[0].Period)

	// limit applies
	records, err = store.History("JT123456789012345", api.PeriodDay, 1)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	// other periods are kept separately
	records, err = store.History("JT123456789012345", api.PeriodWeek, 10)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	// unknown vehicle
	records, err = store.History("JT000000000000000", api.PeriodDay, 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestPersistSkipsMissingSummaries(t *testing.T) {
	store := testStore(t)

	require.NoError(t, store.Persist(api.CycleResult{{
		Vehicle: api.Vehicle{VIN: "JT123456789012345"},
	}}))

	records, err := store.History("JT123456789012345", api.PeriodDay, 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}
