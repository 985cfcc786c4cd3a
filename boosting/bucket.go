package boosting

// Bucket indexes the three-way partition a candidate split assigns
// examples to.
type Bucket uint8

const (
	// BucketFalse holds examples whose feature value fails the split
	// predicate (value above the threshold).
	BucketFalse Bucket = 0
	// BucketTrue holds examples whose feature value passes the split
	// predicate (value at or below the threshold).
	BucketTrue Bucket = 1
	// BucketMissing holds examples whose feature value is absent.
	BucketMissing Bucket = 2

	// NumBuckets is the number of partitions an accumulator tracks.
	NumBuckets = 3
)

func (b Bucket) String() string {
	switch b {
	case BucketFalse:
		return "false"
	case BucketTrue:
		return "true"
	case BucketMissing:
		return "missing"
	}
	return "invalid"
}

// Label is the scalar regression target attached to one training
// example. Classification instantiations would encode a class index
// here instead; this package only ever reads the raw value.
type Label float64

// Value returns the raw target value.
func (l Label) Value() float64 { return float64(l) }

// UpdateRule identifies which boosting weight-update rule downstream
// training applies to stumps of a given kind. It is pure data carried
// on the winning-split descriptor.
type UpdateRule int

const (
	UpdateNormal UpdateRule = iota
	UpdateProb
	UpdateGentle
)

func (u UpdateRule) String() string {
	switch u {
	case UpdateNormal:
		return "normal"
	case UpdateProb:
		return "prob"
	case UpdateGentle:
		return "gentle"
	}
	return "unknown"
}
