package whisper

import "fmt"

// BucketName is a timestamp normalized down to a multiple of an archive's
// precision.
type BucketName uint32

// bucket rounds t down to the nearest multiple of precision.
func bucket(t uint32, precision uint32) BucketName {
	return BucketName(t - t%precision)
}

// Archive is a bounded view over a contiguous byte region holding
// Points slots of 12 bytes each, backing one resolution level of a
// WhisperFile. It carries no head/tail pointer: the "anchor" — the
// timestamp currently stored in slot 0 — is read fresh on every index
// computation.
type Archive struct {
	SecondsPerPoint uint32
	Points          uint32
	Offset          uint32 // byte offset within the file, for diagnostics only
	data            []byte // len(data) == Points*pointSize, partitioned out of the file's mmap
}

func newArchive(secondsPerPoint, points, offset uint32, data []byte) *Archive {
	return &Archive{SecondsPerPoint: secondsPerPoint, Points: points, Offset: offset, data: data}
}

// Retention is the archive's total time span: SecondsPerPoint * Points.
func (a *Archive) Retention() uint32 { return a.SecondsPerPoint * a.Points }

// Size is the archive's byte footprint.
func (a *Archive) Size() uint32 { return a.Points * pointSize }

// anchor is the timestamp stored in slot 0, or 0 if the archive has never
// been written.
func (a *Archive) anchor() uint32 {
	return decodePoint(a.data[0:pointSize]).Timestamp
}

// indexForBucket maps bucket to a slot index in [0, Points), using the
// current anchor to recover the ring's phase. An empty archive (anchor==0)
// always maps to slot 0. Otherwise the index is the distance in points
// between bucket and the anchor, modulo the ring length, using
// Python-style modulo so past timestamps land in [0, Points) too.
func (a *Archive) indexForBucket(b BucketName) int {
	anchor := a.anchor()
	if anchor == 0 {
		return 0
	}
	distance := int64(b) - int64(anchor)
	pointDistance := distance / int64(a.SecondsPerPoint)
	points := int64(a.Points)
	idx := pointDistance % points
	if idx < 0 {
		idx += points
	}
	return int(idx)
}

// writePoint overwrites the slot for bucket b with (b, value).
func (a *Archive) writePoint(b BucketName, value float64) {
	idx := a.indexForBucket(b)
	encodePoint(a.slot(idx), Point{Timestamp: uint32(b), Value: value})
}

func (a *Archive) slot(idx int) []byte {
	off := idx * pointSize
	return a.data[off : off+pointSize]
}

// readSlots reads n consecutive slots starting at idx, wrapping across the
// end of the buffer as one or two contiguous sub-reads. n must not exceed
// Points.
func (a *Archive) readSlots(idx, n int) ([]Point, error) {
	if n < 0 || n > int(a.Points) {
		return nil, fmt.Errorf("whisper: readSlots: n=%d exceeds archive capacity %d", n, a.Points)
	}
	points := make([]Point, n)
	if idx+n <= int(a.Points) {
		for i := 0; i < n; i++ {
			points[i] = decodePoint(a.slot(idx + i))
		}
		return points, nil
	}
	firstRun := int(a.Points) - idx
	for i := 0; i < firstRun; i++ {
		points[i] = decodePoint(a.slot(idx + i))
	}
	for i := 0; i < n-firstRun; i++ {
		points[firstRun+i] = decodePoint(a.slot(i))
	}
	return points, nil
}

// all reads every slot in physical order (slot 0 first). Used only by the
// diagnostic dump. Note slot 0 is itself the anchor, so there is no
// separate "anchor-relative" ordering to start from here: physical order
// and anchor-relative order coincide by construction.
func (a *Archive) all() []Point {
	points, err := a.readSlots(0, int(a.Points))
	if err != nil {
		// readSlots only rejects n > Points, which cannot happen here.
		panic(err)
	}
	return points
}
