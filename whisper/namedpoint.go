package whisper

import (
	"fmt"
	"strconv"
	"strings"
)

// NamedPoint pairs a dotted metric name with the Point to be written for
// it. It is never persisted; it exists only to carry a write through
// WhisperCache to the right file.
type NamedPoint struct {
	MetricName string
	Point      Point
}

// RelPath turns a dotted metric name ("a.b.c") into the relative on-disk
// path WhisperCache resolves under its base directory ("a/b/c.wsp").
func (np NamedPoint) RelPath() string {
	return strings.ReplaceAll(np.MetricName, ".", "/") + ".wsp"
}

// ParseDatagramLine parses a single Carbon plaintext line-protocol
// datagram: "<metric> <value> <timestamp>\n". This is a thin ingestion
// convenience, not a protocol implementation: framing, batching and
// transport are out of scope.
func ParseDatagramLine(line string) (NamedPoint, error) {
	line = strings.TrimRight(line, "\r\n")
	parts := strings.Fields(line)
	if len(parts) != 3 {
		return NamedPoint{}, fmt.Errorf("whisper: datagram %q does not have 3 fields", line)
	}

	value, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return NamedPoint{}, fmt.Errorf("whisper: datagram value %q is not a float: %w", parts[1], err)
	}
	ts, err := strconv.ParseUint(parts[2], 10, 32)
	if err != nil {
		return NamedPoint{}, fmt.Errorf("whisper: datagram timestamp %q is not a uint32: %w", parts[2], err)
	}

	return NamedPoint{
		MetricName: parts[0],
		Point:      Point{Timestamp: uint32(ts), Value: value},
	}, nil
}
