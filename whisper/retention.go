package whisper

import (
	"regexp"
	"strconv"
)

// retentionSpecRegexp matches "<precision>[unit]:<retention>[unit]", e.g.
// "1s:1d", "10:60" (unit-less, see RetentionPolicy parsing rules below).
var retentionSpecRegexp = regexp.MustCompile(`^(\d+)([smhdwy])?:(\d+)([smhdwy])?$`)

// unitSeconds are the retention-spec grammar's unit multipliers.
var unitSeconds = map[byte]uint64{
	's': 1,
	'm': 60,
	'h': 60 * 60,
	'd': 60 * 60 * 24,
	'w': 60 * 60 * 24 * 7,
	'y': 60 * 60 * 24 * 365,
}

// RetentionPolicy is one archive's (precision, retention) pair: precision is
// seconds per point, retention is the total span covered in seconds.
type RetentionPolicy struct {
	Precision uint32
	Retention uint32
}

// ParseRetentionPolicy parses a spec string of the form
// "<precision>[unit]:<retention>[unit]". When the retention operand has no
// unit suffix it is interpreted as a raw point count rather than seconds,
// i.e. retention = count * precision — this preserves on-wire compatibility
// with Graphite's retention configs.
func ParseRetentionPolicy(spec string) (RetentionPolicy, error) {
	m := retentionSpecRegexp.FindStringSubmatch(spec)
	if m == nil {
		return RetentionPolicy{}, schemaErrorf(nil, "%q does not match the retention-spec grammar", spec)
	}

	precision, err := parseSpecField(m[1], m[2], spec, "precision")
	if err != nil {
		return RetentionPolicy{}, err
	}
	if precision == 0 {
		return RetentionPolicy{}, schemaErrorf(nil, "precision in %q must be greater than zero", spec)
	}

	var retention uint64
	if m[4] == "" {
		// No unit on the retention operand: it's a point count, not seconds.
		count, err := strconv.ParseUint(m[3], 10, 32)
		if err != nil {
			return RetentionPolicy{}, schemaErrorf(err, "retention point count %q in %q", m[3], spec)
		}
		retention = count * precision
	} else {
		retention, err = parseSpecField(m[3], m[4], spec, "retention")
		if err != nil {
			return RetentionPolicy{}, err
		}
	}
	if retention == 0 {
		return RetentionPolicy{}, schemaErrorf(nil, "retention in %q must be greater than zero", spec)
	}
	if retention > 1<<32-1 {
		return RetentionPolicy{}, schemaErrorf(nil, "retention in %q overflows a u32", spec)
	}

	return RetentionPolicy{Precision: uint32(precision), Retention: uint32(retention)}, nil
}

func parseSpecField(numeral, unit, spec, field string) (uint64, error) {
	n, err := strconv.ParseUint(numeral, 10, 32)
	if err != nil {
		return 0, schemaErrorf(err, "%s %q in %q", field, numeral, spec)
	}
	mult := uint64(1)
	if unit != "" {
		mult = unitSeconds[unit[0]]
	}
	result := n * mult
	if result > 1<<32-1 {
		return 0, schemaErrorf(nil, "%s in %q overflows a u32", field, spec)
	}
	return result, nil
}

// Points is the number of data points the archive holds: retention / precision.
func (p RetentionPolicy) Points() uint32 { return p.Retention / p.Precision }

// SizeOnDisk is the archive's byte footprint: Points() * 12.
func (p RetentionPolicy) SizeOnDisk() uint32 { return p.Points() * pointSize }
