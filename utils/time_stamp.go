package utils

import (
	"time"
)

// NowNano returns the current time as nanoseconds since Unix epoch.
func NowNano() int64 {
	return time.Now().UnixNano()
}

// NanoToTime converts a nanosecond Unix timestamp back to time.Time.
func NanoToTime(ns int64) time.Time {
	return time.Unix(0, ns)
}

// SampleTime places a capture row on a wall clock. Capture files carry only
// a sample index, so rows are spaced by the logger's sampling interval from
// start.
func SampleTime(start time.Time, index int, interval time.Duration) time.Time {
	return start.Add(time.Duration(index) * interval)
}
