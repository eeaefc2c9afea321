// Package timestamp provides the timestamp pipeline for transcript lines:
// a registry of input patterns, a line parser, the offset adjuster, and the
// output template formatter.
package timestamp

// Component names one part of an hours/minutes/seconds timestamp.
type Component string

const (
	Hours   Component = "hours"
	Minutes Component = "minutes"
	Seconds Component = "seconds"
)

// Components lists every component in display order.
var Components = []Component{Hours, Minutes, Seconds}

// ParseComponent maps a capture group or placeholder name to a Component.
func ParseComponent(name string) (Component, bool) {
	switch Component(name) {
	case Hours, Minutes, Seconds:
		return Component(name), true
	default:
		return "", false
	}
}

// Timestamp is a non-negative offset from the start of a transcript, in seconds.
type Timestamp int64

// FromComponents builds a Timestamp from an hours/minutes/seconds triple.
// Minutes and seconds are not required to be below 60.
func FromComponents(hours, minutes, seconds int64) Timestamp {
	return Timestamp(hours*3600 + minutes*60 + seconds)
}

// Seconds returns the total number of seconds.
func (t Timestamp) Seconds() int64 {
	return int64(t)
}

// Components splits the timestamp into hours, minutes (0-59) and seconds (0-59).
func (t Timestamp) Components() (hours, minutes, seconds int64) {
	total := int64(t)
	return total / 3600, (total % 3600) / 60, total % 60
}

// value returns a single component of the timestamp.
func (t Timestamp) value(c Component) int64 {
	h, m, s := t.Components()
	switch c {
	case Hours:
		return h
	case Minutes:
		return m
	default:
		return s
	}
}
