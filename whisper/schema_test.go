package whisper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tureus/whisper/whisper"
)

func Test_NewSchema_Rejects_Empty(t *testing.T) {
	t.Parallel()

	_, err := whisper.NewSchema()
	require.ErrorIs(t, err, whisper.ErrInvalidRetentionPolicy)
}

func Test_NewSchema_Rejects_NonDivisiblePrecision(t *testing.T) {
	t.Parallel()

	_, err := whisper.NewSchema("10:60", "25:300")
	require.ErrorIs(t, err, whisper.ErrInvalidRetentionPolicy)
}

func Test_NewSchema_Rejects_NonIncreasingRetention(t *testing.T) {
	t.Parallel()

	_, err := whisper.NewSchema("10:60", "60:10")
	require.ErrorIs(t, err, whisper.ErrInvalidRetentionPolicy)
}

func Test_NewSchema_Accepts_Valid_Cascade(t *testing.T) {
	t.Parallel()

	s, err := whisper.NewSchema("1s:1d", "1m:30d", "1h:1y")
	require.NoError(t, err)
	require.Len(t, s.Policies, 3)

	assert.EqualValues(t, 16+12*3, s.HeaderSize())
	assert.EqualValues(t, 365*86400, s.MaxRetention())

	wantSize := s.HeaderSize() + s.Policies[0].SizeOnDisk() + s.Policies[1].SizeOnDisk() + s.Policies[2].SizeOnDisk()
	assert.Equal(t, wantSize, s.SizeOnDisk())
}
