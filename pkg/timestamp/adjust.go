package timestamp

// Adjust shifts ts by offset seconds. Results before zero clamp to zero, so a
// timestamp earlier than the start of a shifted transcript becomes 00:00:00.
func Adjust(ts Timestamp, offset int64) Timestamp {
	total := int64(ts) + offset
	if total < 0 {
		return 0
	}
	return Timestamp(total)
}
