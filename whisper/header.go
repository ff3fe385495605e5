package whisper

import (
	"encoding/binary"
	"math"
)

// AggregationMethod selects how a coarser archive's slot is computed from
// its finer neighbors during the write cascade.
type AggregationMethod uint32

const (
	// Average is the arithmetic mean of the retained finer slots (0 if none
	// are retained).
	Average AggregationMethod = 1
	// Sum is the arithmetic sum of the retained finer slots.
	Sum AggregationMethod = 2

	// AggregationLast, AggregationMax and AggregationMin are recognized
	// on-disk values inherited from upstream Whisper tooling. This engine
	// does not implement them: per the forward-compatibility rule below,
	// any value other than Sum is treated as Average.
	AggregationLast AggregationMethod = 3
	AggregationMax  AggregationMethod = 4
	AggregationMin  AggregationMethod = 5
)

// normalize applies the forward-compatibility rule: any value other than
// Sum (including AggregationLast/Max/Min and genuinely unknown values) is
// treated as Average.
func (m AggregationMethod) normalize() AggregationMethod {
	if m == Sum {
		return Sum
	}
	return Average
}

func (m AggregationMethod) String() string {
	switch m.normalize() {
	case Sum:
		return "sum"
	default:
		return "average"
	}
}

// aggregate reduces values per the aggregation method. An empty Average is 0.
func (m AggregationMethod) aggregate(values []float64) float64 {
	switch m.normalize() {
	case Sum:
		var sum float64
		for _, v := range values {
			sum += v
		}
		return sum
	default:
		if len(values) == 0 {
			return 0
		}
		var sum float64
		for _, v := range values {
			sum += v
		}
		return sum / float64(len(values))
	}
}

// archiveDescriptor is one (offset, precision, points) entry in the header,
// as laid out on disk. The offset is written at create time but never
// consulted on open: archives are partitioned sequentially from the
// header's archive list instead (spec: "not consulted... must be
// consistent with the sequential layout").
type archiveDescriptor struct {
	Offset          uint32
	SecondsPerPoint uint32
	Points          uint32
}

// Header is the file-level metadata preceding the archive data: aggregation
// kind, max retention, x-files-factor, and one descriptor per archive,
// finest first.
type Header struct {
	Aggregation  AggregationMethod
	MaxRetention uint32
	XFilesFactor float32
	archives     []archiveDescriptor
}

// decodeHeader reads the 16-byte fixed prefix and the archive_count
// descriptors that follow it from buf.
func decodeHeader(buf []byte) (Header, error) {
	if len(buf) < headerPrefixSize {
		return Header{}, ioErrorf("decode header", errShortHeader)
	}
	agg := AggregationMethod(binary.BigEndian.Uint32(buf[0:4]))
	maxRetention := binary.BigEndian.Uint32(buf[4:8])
	xffBits := binary.BigEndian.Uint32(buf[8:12])
	xff := math.Float32frombits(xffBits)
	count := binary.BigEndian.Uint32(buf[12:16])

	descStart := headerPrefixSize
	descEnd := descStart + int(count)*archiveDescriptorSize
	if len(buf) < descEnd {
		return Header{}, ioErrorf("decode header", errShortHeader)
	}

	descriptors := make([]archiveDescriptor, count)
	for i := uint32(0); i < count; i++ {
		off := descStart + int(i)*archiveDescriptorSize
		descriptors[i] = archiveDescriptor{
			Offset:          binary.BigEndian.Uint32(buf[off : off+4]),
			SecondsPerPoint: binary.BigEndian.Uint32(buf[off+4 : off+8]),
			Points:          binary.BigEndian.Uint32(buf[off+8 : off+12]),
		}
	}

	return Header{
		Aggregation:  agg,
		MaxRetention: maxRetention,
		XFilesFactor: xff,
		archives:     descriptors,
	}, nil
}

// encodeHeader writes the 16-byte fixed prefix followed by one descriptor
// per policy, with descriptor offsets assigned sequentially starting right
// after the header.
func encodeHeader(w []byte, agg AggregationMethod, maxRetention uint32, xff float32, policies []RetentionPolicy) {
	binary.BigEndian.PutUint32(w[0:4], uint32(agg))
	binary.BigEndian.PutUint32(w[4:8], maxRetention)
	binary.BigEndian.PutUint32(w[8:12], math.Float32bits(xff))
	binary.BigEndian.PutUint32(w[12:16], uint32(len(policies)))

	offset := headerPrefixSize + archiveDescriptorSize*uint32(len(policies))
	for i, p := range policies {
		off := headerPrefixSize + i*archiveDescriptorSize
		binary.BigEndian.PutUint32(w[off:off+4], offset)
		binary.BigEndian.PutUint32(w[off+4:off+8], p.Precision)
		binary.BigEndian.PutUint32(w[off+8:off+12], p.Points())
		offset += p.SizeOnDisk()
	}
}

// partitionArchives consumes the region of mm following the header
// descriptors, splitting it into one disjoint, independently-borrowed byte
// slice per archive, finest first.
func (h Header) partitionArchives(mm []byte) ([]*Archive, error) {
	start := headerPrefixSize + archiveDescriptorSize*len(h.archives)
	if len(mm) < start {
		return nil, ioErrorf("partition archives", errShortHeader)
	}
	rest := mm[start:]

	archives := make([]*Archive, 0, len(h.archives))
	for _, d := range h.archives {
		size := int(d.Points) * pointSize
		if len(rest) < size {
			return nil, ioErrorf("partition archives", errShortHeader)
		}
		archives = append(archives, newArchive(d.SecondsPerPoint, d.Points, d.Offset, rest[:size]))
		rest = rest[size:]
	}
	return archives, nil
}

// ArchiveCount reports how many archive descriptors the header carries.
func (h Header) ArchiveCount() int { return len(h.archives) }
