package whisper_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tureus/whisper/whisper"
)

func Test_WhisperCache_Creates_A_File_On_First_Write_And_Reuses_It(t *testing.T) {
	t.Parallel()

	schema, err := whisper.NewSchema("1s:1d")
	require.NoError(t, err)

	cfg := whisper.DefaultCacheConfig(t.TempDir(), schema, 2)
	cache, err := whisper.NewCache(cfg, nil)
	require.NoError(t, err)

	// Write drops points outside the retention window relative to the wall
	// clock, so the timestamps are taken from it.
	now := uint32(time.Now().Unix())
	np := whisper.NamedPoint{
		MetricName: "hosts.a.load",
		Point:      whisper.Point{Timestamp: now - 10, Value: 1.5},
	}
	ok, err := cache.Write(np)
	require.NoError(t, err)
	require.True(t, ok)

	// A second write for the same metric must reuse the cached handle
	// rather than reopening the file.
	ok, err = cache.Write(whisper.NamedPoint{
		MetricName: np.MetricName,
		Point:      whisper.Point{Timestamp: now, Value: 2.5},
	})
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, cache.Close())

	path := filepath.Join(cfg.BaseDir, np.RelPath())
	wf, err := whisper.Open(path)
	require.NoError(t, err)
	defer wf.Close()
}

func Test_WhisperCache_Evicts_Beyond_Capacity(t *testing.T) {
	t.Parallel()

	schema, err := whisper.NewSchema("1s:1d")
	require.NoError(t, err)

	cfg := whisper.DefaultCacheConfig(t.TempDir(), schema, 1)
	cache, err := whisper.NewCache(cfg, nil)
	require.NoError(t, err)
	defer cache.Close()

	now := uint32(time.Now().Unix())
	for _, metric := range []string{"a", "b", "c"} {
		np := whisper.NamedPoint{
			MetricName: metric,
			Point:      whisper.Point{Timestamp: now, Value: 1},
		}
		ok, err := cache.Write(np)
		require.NoError(t, err)
		require.True(t, ok)
	}
}
