// Package whisper implements a fixed-size, round-robin time-series storage
// engine that is on-disk compatible with the Whisper format used by
// Graphite. A file stores one metric across one or more retention archives,
// each at a distinct sampling resolution; writes cascade automatically from
// the finest archive into coarser archives via a configured aggregation
// function, gated by an x-files-factor populated-fraction threshold.
package whisper
