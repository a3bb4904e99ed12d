package rhtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsDisabledByDefault(t *testing.T) {
	tbl := newIdentityTable(t)
	for i := 0; i < 20; i++ {
		_, _, err := tbl.Insert(i, "v")
		require.NoError(t, err)
	}
	s := tbl.Stats()
	assert.Zero(t, s.Reprobes)
	assert.Zero(t, s.Shifts)
}

func TestStatsEnabledTracksCollisions(t *testing.T) {
	tbl := newIdentityTable(t, WithStatsEnabled[int, string]())
	for i := 0; i < 5; i++ {
		// All five keys collide into bucket 0, forcing shift-inserts.
		_, _, err := tbl.Insert(i*8, "v")
		require.NoError(t, err)
	}
	s := tbl.Stats()
	assert.Greater(t, s.Shifts, uint64(0))
	assert.GreaterOrEqual(t, s.MaxShifts, uint64(1))
}

func TestStatsRecordReprobeOnRepeatedLookup(t *testing.T) {
	tbl := newIdentityTable(t, WithStatsEnabled[int, string]())
	for i := 0; i < 4; i++ {
		_, _, err := tbl.Insert(i*8, "v")
		require.NoError(t, err)
	}
	_, ok := tbl.Find(3 * 8)
	assert.True(t, ok)
	s := tbl.Stats()
	assert.Greater(t, s.Reprobes, uint64(0))
}
