package whisper

import (
	"os"
	"sync"
	"time"

	"github.com/edsrzf/mmap-go"
)

// WhisperFile owns a memory-mapped Whisper file: its decoded Header and the
// Archives partitioned out of the mapping. All writes funnel through
// Write, which is the only synchronization point — callers must not touch
// Archives concurrently with Write/Close.
type WhisperFile struct {
	path     string
	f        *os.File
	mm       mmap.MMap
	header   Header
	archives []*Archive

	mu sync.Mutex
}

// Create creates a new file at path, sizes it to schema.SizeOnDisk() bytes,
// writes the header in big-endian order, and memory-maps the result. An
// existing file at path is not overwritten: Create returns an error instead.
func Create(path string, schema Schema, agg AggregationMethod, xff float32) (*WhisperFile, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, ioErrorf("create", err)
	}

	size := int64(schema.SizeOnDisk())
	if err := f.Truncate(size); err != nil {
		f.Close()
		os.Remove(path)
		return nil, ioErrorf("truncate", err)
	}

	header := make([]byte, schema.HeaderSize())
	encodeHeader(header, agg, schema.MaxRetention(), xff, schema.Policies)
	if _, err := f.WriteAt(header, 0); err != nil {
		f.Close()
		os.Remove(path)
		return nil, ioErrorf("write header", err)
	}

	return openFile(path, f)
}

// Open opens an existing Whisper file read-write, memory-maps it, decodes
// its header and partitions it into Archives. No consistency validation
// beyond what decoding implies is performed.
func Open(path string) (*WhisperFile, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return nil, ioErrorf("open", err)
	}
	return openFile(path, f)
}

func openFile(path string, f *os.File) (*WhisperFile, error) {
	mm, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		f.Close()
		return nil, ioErrorf("mmap", err)
	}

	header, err := decodeHeader(mm)
	if err != nil {
		mm.Unmap()
		f.Close()
		return nil, err
	}

	archives, err := header.partitionArchives(mm)
	if err != nil {
		mm.Unmap()
		f.Close()
		return nil, err
	}

	return &WhisperFile{
		path:     path,
		f:        f,
		mm:       mm,
		header:   header,
		archives: archives,
	}, nil
}

// Close unmaps the file and releases its file descriptor.
func (wf *WhisperFile) Close() error {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	unmapErr := wf.mm.Unmap()
	closeErr := wf.f.Close()
	if unmapErr != nil {
		return ioErrorf("unmap", unmapErr)
	}
	if closeErr != nil {
		return ioErrorf("close", closeErr)
	}
	return nil
}

// Path is the file's on-disk location.
func (wf *WhisperFile) Path() string { return wf.path }

// Header returns the file's decoded header.
func (wf *WhisperFile) Header() Header { return wf.header }

// Archives returns the file's archives, finest first. Callers must not
// mutate them outside of Write.
func (wf *WhisperFile) Archives() []*Archive { return wf.archives }

// Write cascades a single point from the finest archive into successively
// coarser archives. A point whose timestamp lies outside (now-maxRetention,
// now] is silently dropped, per the fixed-window ring design: the returned
// bool reports whether the point was written at all, and is false only for
// such out-of-window drops — it is not an error.
func (wf *WhisperFile) Write(p Point) (bool, error) {
	return wf.writeAt(p, uint32(time.Now().Unix()))
}

func (wf *WhisperFile) writeAt(p Point, now uint32) (bool, error) {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	elapsed := int64(now) - int64(p.Timestamp)
	if elapsed < 0 || elapsed >= int64(wf.header.MaxRetention) {
		return false, nil
	}

	startIdx := -1
	for i, a := range wf.archives {
		if int64(a.Retention()) <= elapsed {
			continue
		}
		startIdx = i
		break
	}
	if startIdx == -1 {
		return false, nil
	}

	finest := wf.archives[startIdx]
	finest.writePoint(bucket(p.Timestamp, finest.SecondsPerPoint), p.Value)

	lastIdx := startIdx
	for j := startIdx + 1; j < len(wf.archives); j++ {
		lower := wf.archives[lastIdx]
		higher := wf.archives[j]

		ratio := int64(higher.SecondsPerPoint) / int64(lower.SecondsPerPoint)
		candidates := ratio
		if int64(lower.Points) < candidates {
			candidates = int64(lower.Points)
		}

		targetBucket := bucket(p.Timestamp, higher.SecondsPerPoint)
		startSlot := lower.indexForBucket(targetBucket)

		neighbors, err := lower.readSlots(startSlot, int(candidates))
		if err != nil {
			return true, err
		}

		kept := make([]float64, 0, len(neighbors))
		for k, n := range neighbors {
			expected := uint32(targetBucket) + uint32(int64(k)*int64(lower.SecondsPerPoint))
			if n.Timestamp == expected {
				kept = append(kept, n.Value)
			}
		}

		populatedRatio := float64(len(kept)) / float64(candidates)
		if populatedRatio < float64(wf.header.XFilesFactor) {
			break
		}

		aggregated := wf.header.Aggregation.aggregate(kept)
		higher.writePoint(targetBucket, aggregated)
		lastIdx = j
	}

	return true, nil
}
