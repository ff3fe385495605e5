package whisper

// headerPrefixSize is the fixed portion of the header, before any archive
// descriptors: aggregation kind, max retention, x-files-factor, archive count.
const headerPrefixSize = 16

// archiveDescriptorSize is the on-disk size of one (offset, precision,
// points) descriptor in the header.
const archiveDescriptorSize = 12

// Schema is an ordered sequence of RetentionPolicy, finest-precision first.
type Schema struct {
	Policies []RetentionPolicy
}

// NewSchema builds a Schema from retention-spec strings, finest first, and
// validates the precision-multiplicity invariant the cascade algorithm
// relies on.
func NewSchema(specs ...string) (Schema, error) {
	policies := make([]RetentionPolicy, 0, len(specs))
	for _, spec := range specs {
		p, err := ParseRetentionPolicy(spec)
		if err != nil {
			return Schema{}, err
		}
		policies = append(policies, p)
	}
	s := Schema{Policies: policies}
	if err := s.Validate(); err != nil {
		return Schema{}, err
	}
	return s, nil
}

// Validate checks the adjacent-precision-multiplicity invariant the cascade
// algorithm depends on: each archive's precision must evenly divide the
// next coarser archive's precision, and coarser archives must cover a
// longer retention.
func (s Schema) Validate() error {
	if len(s.Policies) == 0 {
		return schemaErrorf(nil, "schema must have at least one retention policy")
	}
	for i := 0; i+1 < len(s.Policies); i++ {
		cur, next := s.Policies[i], s.Policies[i+1]
		if cur.Precision == 0 || next.Precision == 0 {
			return schemaErrorf(nil, "retention policy precision must be greater than zero")
		}
		if next.Precision%cur.Precision != 0 {
			return schemaErrorf(nil, "precision %d does not evenly divide %d", cur.Precision, next.Precision)
		}
		if next.Retention <= cur.Retention {
			return schemaErrorf(nil, "retention %d must exceed the finer archive's retention %d", next.Retention, cur.Retention)
		}
	}
	return nil
}

// HeaderSize is the fixed header's on-disk size: 16 + 12 * len(Policies).
func (s Schema) HeaderSize() uint32 {
	return headerPrefixSize + archiveDescriptorSize*uint32(len(s.Policies))
}

// SizeOnDisk is the total file size: HeaderSize() plus every archive's data
// region.
func (s Schema) SizeOnDisk() uint32 {
	total := s.HeaderSize()
	for _, p := range s.Policies {
		total += p.SizeOnDisk()
	}
	return total
}

// MaxRetention is the maximum retention across all policies, or 0 for an
// empty schema.
func (s Schema) MaxRetention() uint32 {
	var max uint32
	for _, p := range s.Policies {
		if p.Retention > max {
			max = p.Retention
		}
	}
	return max
}
