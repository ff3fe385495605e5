package whisper

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestFile(t *testing.T, specs []string, agg AggregationMethod, xff float32) *WhisperFile {
	t.Helper()
	schema, err := NewSchema(specs...)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "metric.wsp")
	wf, err := Create(path, schema, agg, xff)
	require.NoError(t, err)
	t.Cleanup(func() { wf.Close() })
	return wf
}

func Test_Create_Produces_An_Empty_File_That_Reopens_Cleanly(t *testing.T) {
	t.Parallel()

	schema, err := NewSchema("1s:1d")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "metric.wsp")
	wf, err := Create(path, schema, Average, 0.5)
	require.NoError(t, err)
	require.NoError(t, wf.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, Average, reopened.Header().Aggregation)
	assert.EqualValues(t, 86400, reopened.Header().MaxRetention)
	require.Len(t, reopened.Archives(), 1)
	for _, p := range reopened.Archives()[0].all() {
		assert.Zero(t, p.Timestamp)
		assert.Zero(t, p.Value)
	}
}

func Test_Write_Single_Archive_Round_Trips_A_Value(t *testing.T) {
	t.Parallel()

	wf := createTestFile(t, []string{"1s:1d"}, Average, 0.5)

	now := uint32(1_700_000_000)
	ok, err := wf.writeAt(Point{Timestamp: now, Value: 42}, now)
	require.NoError(t, err)
	require.True(t, ok)

	archive := wf.Archives()[0]
	idx := archive.indexForBucket(bucket(now, archive.SecondsPerPoint))
	slots, err := archive.readSlots(idx, 1)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, now, slots[0].Timestamp)
	assert.Equal(t, 42.0, slots[0].Value)
}

func Test_Write_Drops_Points_Outside_The_Retention_Window(t *testing.T) {
	t.Parallel()

	wf := createTestFile(t, []string{"1s:60"}, Average, 0.5)

	now := uint32(1_700_000_000)
	ok, err := wf.writeAt(Point{Timestamp: now - 61, Value: 1}, now)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = wf.writeAt(Point{Timestamp: now + 1, Value: 1}, now)
	require.NoError(t, err)
	assert.False(t, ok)
}

func Test_Write_Cascades_Through_Three_Archives_With_Zero_XFF(t *testing.T) {
	t.Parallel()

	wf := createTestFile(t, []string{"1s:10", "10s:60", "60s:600"}, Average, 0)

	base := uint32(1_700_000_000) - uint32(1_700_000_000)%60
	now := base + 9

	for ts := base; ts < base+10; ts++ {
		ok, err := wf.writeAt(Point{Timestamp: ts, Value: float64(ts - base)}, now)
		require.NoError(t, err)
		require.True(t, ok)
	}

	mid := wf.Archives()[1]
	idx := mid.indexForBucket(bucket(base, mid.SecondsPerPoint))
	slots, err := mid.readSlots(idx, 1)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.InDelta(t, 4.5, slots[0].Value, 1e-9)

	coarse := wf.Archives()[2]
	idxCoarse := coarse.indexForBucket(bucket(base, coarse.SecondsPerPoint))
	slotsCoarse, err := coarse.readSlots(idxCoarse, 1)
	require.NoError(t, err)
	require.Len(t, slotsCoarse, 1)
	assert.InDelta(t, 4.5, slotsCoarse[0].Value, 1e-9)
}

func Test_Write_Cascade_Stalls_When_XFF_Is_Not_Met(t *testing.T) {
	t.Parallel()

	wf := createTestFile(t, []string{"1s:10", "10s:60"}, Average, 0.9)

	base := uint32(1_700_000_000) - uint32(1_700_000_000)%60
	now := base + 9

	for i := 0; i < 5; i++ {
		ts := base + uint32(i)
		ok, err := wf.writeAt(Point{Timestamp: ts, Value: 1}, now)
		require.NoError(t, err)
		require.True(t, ok)
	}

	mid := wf.Archives()[1]
	idx := mid.indexForBucket(bucket(base, mid.SecondsPerPoint))
	slots, err := mid.readSlots(idx, 1)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Zero(t, slots[0].Timestamp, "coarse archive must remain unwritten below xff")
}

func Test_Write_Sum_Aggregation(t *testing.T) {
	t.Parallel()

	wf := createTestFile(t, []string{"1s:10", "10s:60"}, Sum, 0)

	base := uint32(1_700_000_000) - uint32(1_700_000_000)%60
	now := base + 9

	for i := 0; i < 10; i++ {
		ts := base + uint32(i)
		ok, err := wf.writeAt(Point{Timestamp: ts, Value: 2}, now)
		require.NoError(t, err)
		require.True(t, ok)
	}

	mid := wf.Archives()[1]
	idx := mid.indexForBucket(bucket(base, mid.SecondsPerPoint))
	slots, err := mid.readSlots(idx, 1)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.InDelta(t, 20.0, slots[0].Value, 1e-9)
}
