package flows

import "time"

const (
	// MillisecondsInMilliseconds holds the time value of one millisecond.
	MillisecondsInMilliseconds DateTimeMilliseconds = 1
	// SecondsInMilliseconds holds the time value of one second.
	SecondsInMilliseconds DateTimeMilliseconds = 1000 * MillisecondsInMilliseconds
	// MinutesInMilliseconds holds the time value of one minute.
	MinutesInMilliseconds DateTimeMilliseconds = 60 * SecondsInMilliseconds
	// HoursInMilliseconds holds the time value of one hour.
	HoursInMilliseconds DateTimeMilliseconds = 60 * MinutesInMilliseconds
)

// ToTime converts a millisecond timestamp into a time.Time in loc.
func ToTime(t DateTimeMilliseconds, loc *time.Location) time.Time {
	ms := int64(t)
	return time.Unix(ms/1000, (ms%1000)*int64(time.Millisecond)).In(loc)
}

// FromTime converts t into a millisecond timestamp.
func FromTime(t time.Time) DateTimeMilliseconds {
	return DateTimeMilliseconds(t.UnixNano() / int64(time.Millisecond))
}

// Span returns the elapsed time between first and last. Spans where last is before first are 0.
func Span(first, last DateTimeMilliseconds) DateTimeMilliseconds {
	if last < first {
		return 0
	}
	return last - first
}
