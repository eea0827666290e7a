package flows

import (
	ipfix "github.com/CN-TU/go-ipfix"
)

// DateTimeSeconds represents time in units of seconds from 00:00 UTC, Januray 1, 1970 according to RFC5102.
type DateTimeSeconds = ipfix.DateTimeSeconds

// DateTimeMilliseconds represents time in units of milliseconds from 00:00 UTC, Januray 1, 1970 according to RFC5102.
type DateTimeMilliseconds = ipfix.DateTimeMilliseconds
