package value_objects

// SLABucket classifies how close an assignment is to its SLA deadline.
type SLABucket string

const (
	SLAGreen    SLABucket = "green"
	SLAWarning  SLABucket = "warning"
	SLABreached SLABucket = "breached"
)

func (b SLABucket) String() string {
	return string(b)
}

// AgingBucket is the coarse queue-age classification used by triage views.
type AgingBucket string

const (
	AgingFresh AgingBucket = "0-2d"
	AgingStale AgingBucket = "3-6d"
	AgingOld   AgingBucket = "7d+"
)

// AgingBucketForDays maps whole days pending to an aging bucket.
func AgingBucketForDays(days int) AgingBucket {
	switch {
	case days <= 2:
		return AgingFresh
	case days <= 6:
		return AgingStale
	default:
		return AgingOld
	}
}

func (b AgingBucket) String() string {
	return string(b)
}
