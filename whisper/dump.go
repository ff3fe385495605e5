package whisper

import (
	"fmt"
	"io"
)

// Dump writes a diagnostic listing of every archive to w: its offset,
// seconds-per-point, points, retention and byte size, followed by every
// slot in physical order (index, timestamp, value). It never mutates the
// file.
func (wf *WhisperFile) Dump(w io.Writer) error {
	for i, a := range wf.archives {
		if _, err := fmt.Fprintf(w, "archive %d: offset=%d secondsPerPoint=%d points=%d retention=%d size=%d\n",
			i, a.Offset, a.SecondsPerPoint, a.Points, a.Retention(), a.Size()); err != nil {
			return err
		}
		for idx, p := range a.all() {
			if _, err := fmt.Fprintf(w, "  %d: timestamp=%d value=%g\n", idx, p.Timestamp, p.Value); err != nil {
				return err
			}
		}
	}
	return nil
}
