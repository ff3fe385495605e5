package whisper

import (
	"encoding/binary"
	"math"
)

// pointSize is the on-disk size of a Point: a 4-byte big-endian timestamp
// followed by an 8-byte big-endian float64.
const pointSize = 12

// Point is a single on-disk record. A Timestamp of 0 denotes an empty slot.
type Point struct {
	Timestamp uint32
	Value     float64
}

// decodePoint reads a 12-byte big-endian record from buf[0:12].
func decodePoint(buf []byte) Point {
	_ = buf[11] // bounds check hint
	ts := binary.BigEndian.Uint32(buf[0:4])
	bits := binary.BigEndian.Uint64(buf[4:12])
	return Point{Timestamp: ts, Value: math.Float64frombits(bits)}
}

// encodePoint writes p as a 12-byte big-endian record into buf[0:12].
func encodePoint(buf []byte, p Point) {
	_ = buf[11]
	binary.BigEndian.PutUint32(buf[0:4], p.Timestamp)
	binary.BigEndian.PutUint64(buf[4:12], math.Float64bits(p.Value))
}

// empty reports whether p represents an unwritten slot.
func (p Point) empty() bool { return p.Timestamp == 0 }
