package resolve

import (
	"github.com/google/gopacket/layers"
)

// unknownProtocol is the name gopacket uses for protocols it doesn't know
const unknownProtocol = "UnknownIPProtocol"

// Protocols resolves IP protocol numbers with the protocol table of gopacket.
type Protocols struct {
	overrides map[uint8]string
}

// NewProtocols returns a protocol resolver. overrides take precedence over the gopacket names.
func NewProtocols(overrides map[uint8]string) *Protocols {
	o := map[uint8]string{
		uint8(layers.IPProtocolICMPv4): "ICMP",
		uint8(layers.IPProtocolICMPv6): "ICMP6",
	}
	for k, v := range overrides {
		o[k] = v
	}
	return &Protocols{overrides: o}
}

// DefaultProtocols is the resolver used if nothing else is configured.
var DefaultProtocols = NewProtocols(nil)

// ProtocolName returns the name of protocol proto, or false if proto is unknown.
func (p *Protocols) ProtocolName(proto uint8) (string, bool) {
	if name, ok := p.overrides[proto]; ok {
		return name, true
	}
	name := layers.IPProtocol(proto).String()
	if name == unknownProtocol || name == "" {
		return "", false
	}
	return name, true
}
