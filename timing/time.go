package timing

import "time"

// VTimeInMs is a point on the engine timeline, counted in milliseconds from
// the moment the engine was created.
type VTimeInMs uint64

// Duration converts the time into a time.Duration.
func (t VTimeInMs) Duration() time.Duration {
	return time.Duration(t) * time.Millisecond
}

// FromDuration converts a time.Duration into a VTimeInMs, truncating to the
// millisecond. Negative durations become zero.
func FromDuration(d time.Duration) VTimeInMs {
	if d < 0 {
		return 0
	}

	return VTimeInMs(d / time.Millisecond)
}
