package whisper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tureus/whisper/whisper"
)

func Test_NamedPoint_RelPath_Converts_Dots_To_Path_Separators(t *testing.T) {
	t.Parallel()

	np := whisper.NamedPoint{MetricName: "servers.web01.cpu.idle"}
	assert.Equal(t, "servers/web01/cpu/idle.wsp", np.RelPath())
}

func Test_ParseDatagramLine_Parses_Carbon_Line_Protocol(t *testing.T) {
	t.Parallel()

	np, err := whisper.ParseDatagramLine("servers.web01.cpu.idle 42.5 1700000000\n")
	require.NoError(t, err)
	assert.Equal(t, "servers.web01.cpu.idle", np.MetricName)
	assert.Equal(t, 42.5, np.Point.Value)
	assert.EqualValues(t, 1700000000, np.Point.Timestamp)
}

func Test_ParseDatagramLine_Rejects_Malformed_Input(t *testing.T) {
	t.Parallel()

	testCases := []string{
		"metric 1.0",
		"metric not-a-float 1700000000",
		"metric 1.0 not-a-timestamp",
		"",
	}

	for _, line := range testCases {
		_, err := whisper.ParseDatagramLine(line)
		require.Error(t, err)
	}
}
