package output

import (
	"strconv"

	units "github.com/docker/go-units"

	"github.com/CN-TU/go-flowfmt/flows"
)

// values below scaleThreshold are always printed in full
const scaleThreshold = 1000000

var scaleUnits = []string{"", "K", "M", "G", "T", "P"}

func appendNumber(dst []byte, v uint64, plain bool) []byte {
	if plain || v < scaleThreshold {
		return strconv.AppendUint(dst, v, 10)
	}
	return append(dst, units.CustomSize("%.1f %s", float64(v), 1000.0, scaleUnits)...)
}

// pad extends dst[start:] with spaces to width. Right aligned values are moved to the end.
func pad(dst []byte, start, width int, right bool) []byte {
	n := len(dst) - start
	if n >= width {
		return dst
	}
	fill := width - n
	for i := 0; i < fill; i++ {
		dst = append(dst, ' ')
	}
	if right {
		copy(dst[start+fill:], dst[start:start+n])
		for i := start; i < start+fill; i++ {
			dst[i] = ' '
		}
	}
	return dst
}

// rates returns packets per second, bits per second, and bytes per packet. Rates with a zero
// denominator are 0.
func rates(rec flows.Record) (pps, bps, bpp uint64) {
	pkts := rec.Packets()
	bytes := rec.Bytes()
	if pkts > 0 {
		bpp = bytes / pkts
	}
	duration := flows.Span(rec.FirstSeen(), rec.LastSeen())
	if duration == 0 {
		return
	}
	ms := float64(duration)
	pps = uint64(float64(pkts) * 1000 / ms)
	bps = uint64(float64(bytes) * 8000 / ms)
	return
}

const tcpFlags = "CEUAPRSF"

// appendFlags writes one character per TCP flag from CWR down to FIN and '.' for unset flags.
func appendFlags(dst []byte, flags uint8) []byte {
	for i := 0; i < len(tcpFlags); i++ {
		if flags&(0x80>>uint(i)) != 0 {
			dst = append(dst, tcpFlags[i])
		} else {
			dst = append(dst, '.')
		}
	}
	return dst
}

var firewallEvents = [...]string{
	0: "IGNORE",
	1: "CREATE",
	2: "DELETE",
	3: "DENIED",
	4: "ALERT",
	5: "UPDATE",
}

var extendedEvents = map[uint16]string{
	1001: "I-ACL",
	1002: "E-ACL",
	1003: "Adap",
	1004: "NoSyn",
}

// IANA natEvent registry
var natEvents = [...]string{
	0:  "INVALID",
	1:  "ADD",
	2:  "DELETE",
	3:  "EXHAUST",
	4:  "ADD44",
	5:  "DEL44",
	6:  "ADD64",
	7:  "DEL64",
	8:  "ADD44BIB",
	9:  "DEL44BIB",
	10: "ADD64BIB",
	11: "DEL64BIB",
	12: "PORTEXH",
	13: "QUOTAEXC",
	14: "ADDBIND",
	15: "DELBIND",
	16: "PBALLOC",
	17: "PBDEALLOC",
	18: "THRESHOLD",
}

func appendFirewallEvent(dst []byte, evt uint8, plain bool) []byte {
	if !plain && int(evt) < len(firewallEvents) {
		return append(dst, firewallEvents[evt]...)
	}
	return strconv.AppendUint(dst, uint64(evt), 10)
}

func appendExtendedEvent(dst []byte, evt uint16, plain bool) []byte {
	if !plain {
		if name, ok := extendedEvents[evt]; ok {
			return append(dst, name...)
		}
	}
	return strconv.AppendUint(dst, uint64(evt), 10)
}

func appendNATEvent(dst []byte, evt uint8, plain bool) []byte {
	if !plain && int(evt) < len(natEvents) {
		return append(dst, natEvents[evt]...)
	}
	return strconv.AppendUint(dst, uint64(evt), 10)
}
