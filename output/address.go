package output

import (
	"net"
	"strconv"
)

const (
	protoICMP   = 1
	protoICMPv6 = 58
	// condensed IPv6 addresses keep this many characters on each side of ".."
	condenseKeep = 7
)

func appendIPv4(dst []byte, ip net.IP) []byte {
	for i := 0; i < net.IPv4len; i++ {
		if i > 0 {
			dst = append(dst, '.')
		}
		dst = strconv.AppendUint(dst, uint64(ip[i]), 10)
	}
	return dst
}

// appendAddress writes ip and returns whether it is an IPv6 address. In ModeV4 IPv6 addresses
// that don't fit into the column are condensed to the first and last characters.
func appendAddress(dst []byte, ip net.IP, mode Mode) ([]byte, bool) {
	if ip == nil {
		return append(dst, '-'), false
	}
	if v4 := ip.To4(); v4 != nil {
		return appendIPv4(dst, v4), false
	}
	s := ip.String()
	if mode == ModeV4 && len(s) > v4Width {
		dst = append(dst, s[:condenseKeep]...)
		dst = append(dst, ".."...)
		return append(dst, s[len(s)-condenseKeep:]...), true
	}
	return append(dst, s...), true
}

// appendAddressColumn writes ip right aligned to the address column width.
func appendAddressColumn(dst []byte, ip net.IP, mode Mode, machine bool) []byte {
	start := len(dst)
	dst, v6 := appendAddress(dst, ip, mode)
	if machine {
		return dst
	}
	return pad(dst, start, mode.widthFor(v6), true)
}

// appendPort writes a port. ICMP destination ports carry type and code, which are written as
// type.code.
func appendPort(dst []byte, port uint16, icmp bool) []byte {
	if icmp {
		dst = strconv.AppendUint(dst, uint64(port>>8), 10)
		dst = append(dst, '.')
		return strconv.AppendUint(dst, uint64(port&0xff), 10)
	}
	return strconv.AppendUint(dst, uint64(port), 10)
}

func isICMP(proto uint8) bool {
	return proto == protoICMP || proto == protoICMPv6
}

// appendSocket writes address, optional country, separator, and port. IPv4 sockets use ':' and
// IPv6 sockets '.' as separator.
func appendSocket(dst []byte, ctx *Context, ip net.IP, port uint16, icmp, geo, machine bool) []byte {
	start := len(dst)
	dst, v6 := appendAddress(dst, ip, ctx.mode)
	if !machine {
		dst = pad(dst, start, ctx.mode.widthFor(v6), true)
	}
	if geo {
		dst = appendCountry(dst, ctx, ip)
	}
	if v6 {
		dst = append(dst, '.')
	} else {
		dst = append(dst, ':')
	}
	start = len(dst)
	dst = appendPort(dst, port, icmp)
	if machine {
		return dst
	}
	return pad(dst, start, portWidth, false)
}

func appendCountry(dst []byte, ctx *Context, ip net.IP) []byte {
	dst = append(dst, '(')
	cc, ok := "", false
	if ctx.Geo != nil && ip != nil {
		cc, ok = ctx.Geo.Country(ip)
	}
	if ok {
		dst = append(dst, cc...)
	} else {
		dst = append(dst, "--"...)
	}
	return append(dst, ')')
}
