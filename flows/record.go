package flows

import (
	"fmt"
	"net"
	"strings"
)

// RecordTag identifies the export dialect a record was decoded from. Renderers use it to decide
// whether a field is meaningful for a record.
type RecordTag uint8

const (
	// TagGeneric is a plain NetFlow/IPFIX flow record
	TagGeneric RecordTag = iota
	// TagNSEL is a security event record (NetFlow Security Event Logging)
	TagNSEL
	// TagNEL is a NAT event record (NetFlow Event Logging)
	TagNEL

	tagMax
)

func (t RecordTag) String() string {
	switch t {
	case TagGeneric:
		return "generic"
	case TagNSEL:
		return "nsel"
	case TagNEL:
		return "nel"
	}
	return "<InvalidRecordTag>"
}

// ParseRecordTag returns the RecordTag with the given name.
func ParseRecordTag(s string) (RecordTag, error) {
	for t := TagGeneric; t < tagMax; t++ {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown record dialect %q", s)
}

// RecordTags returns all known record dialects.
func RecordTags() []RecordTag {
	ret := make([]RecordTag, 0, tagMax)
	for t := TagGeneric; t < tagMax; t++ {
		ret = append(ret, t)
	}
	return ret
}

// Record is a decoded flow record. Consumers must treat a record as read-only.
//
// Accessors of attributes that do not exist in the dialect of the record return the zero value.
type Record interface {
	// Tag returns the dialect of this record
	Tag() RecordTag

	FirstSeen() DateTimeMilliseconds
	LastSeen() DateTimeMilliseconds
	Received() DateTimeMilliseconds

	Protocol() uint8
	SourceAddress() net.IP
	DestinationAddress() net.IP
	SourcePort() uint16
	DestinationPort() uint16
	SourceAS() uint32
	DestinationAS() uint32
	InputInterface() uint32
	OutputInterface() uint32
	RouterAddress() net.IP
	NextHop() net.IP

	// Packets and Bytes are the counters of the forward (in) direction
	Packets() uint64
	Bytes() uint64
	// OutPackets and OutBytes are the counters of the reverse (out) direction
	OutPackets() uint64
	OutBytes() uint64
	// Flows returns the number of flows aggregated into this record
	Flows() uint64

	TCPFlags() uint8
	SourceTos() uint8
	DestinationTos() uint8

	FirewallEvent() uint8
	FirewallExtEvent() uint16
	XlateSourceAddress() net.IP
	XlateDestinationAddress() net.IP
	XlateSourcePort() uint16
	XlateDestinationPort() uint16
	NATEvent() uint8
}

// FlowRecord is a Record backed by plain fields. Record sources fill it in.
type FlowRecord struct {
	Dialect RecordTag

	Start, End, Recv DateTimeMilliseconds

	Proto            uint8
	SrcAddr, DstAddr net.IP
	SrcPort, DstPort uint16
	SrcAS, DstAS     uint32
	Input, Output    uint32
	Router, Hop      net.IP

	InPkts, InOctets   uint64
	OutPkts, OutOctets uint64
	FlowCount          uint64

	Flags          uint8
	SrcTos, DstTos uint8

	FwEvent            uint8
	FwXEvent           uint16
	XSrcAddr, XDstAddr net.IP
	XSrcPort, XDstPort uint16
	NatEvent           uint8
}

// Tag implements Record
func (r *FlowRecord) Tag() RecordTag { return r.Dialect }

// FirstSeen implements Record
func (r *FlowRecord) FirstSeen() DateTimeMilliseconds { return r.Start }

// LastSeen implements Record
func (r *FlowRecord) LastSeen() DateTimeMilliseconds { return r.End }

// Received implements Record
func (r *FlowRecord) Received() DateTimeMilliseconds { return r.Recv }

// Protocol implements Record
func (r *FlowRecord) Protocol() uint8 { return r.Proto }

// SourceAddress implements Record
func (r *FlowRecord) SourceAddress() net.IP { return r.SrcAddr }

// DestinationAddress implements Record
func (r *FlowRecord) DestinationAddress() net.IP { return r.DstAddr }

// SourcePort implements Record
func (r *FlowRecord) SourcePort() uint16 { return r.SrcPort }

// DestinationPort implements Record
func (r *FlowRecord) DestinationPort() uint16 { return r.DstPort }

// SourceAS implements Record
func (r *FlowRecord) SourceAS() uint32 { return r.SrcAS }

// DestinationAS implements Record
func (r *FlowRecord) DestinationAS() uint32 { return r.DstAS }

// InputInterface implements Record
func (r *FlowRecord) InputInterface() uint32 { return r.Input }

// OutputInterface implements Record
func (r *FlowRecord) OutputInterface() uint32 { return r.Output }

// RouterAddress implements Record
func (r *FlowRecord) RouterAddress() net.IP { return r.Router }

// NextHop implements Record
func (r *FlowRecord) NextHop() net.IP { return r.Hop }

// Packets implements Record
func (r *FlowRecord) Packets() uint64 { return r.InPkts }

// Bytes implements Record
func (r *FlowRecord) Bytes() uint64 { return r.InOctets }

// OutPackets implements Record
func (r *FlowRecord) OutPackets() uint64 { return r.OutPkts }

// OutBytes implements Record
func (r *FlowRecord) OutBytes() uint64 { return r.OutOctets }

// Flows implements Record
func (r *FlowRecord) Flows() uint64 { return r.FlowCount }

// TCPFlags implements Record
func (r *FlowRecord) TCPFlags() uint8 { return r.Flags }

// SourceTos implements Record
func (r *FlowRecord) SourceTos() uint8 { return r.SrcTos }

// DestinationTos implements Record
func (r *FlowRecord) DestinationTos() uint8 { return r.DstTos }

// FirewallEvent implements Record
func (r *FlowRecord) FirewallEvent() uint8 { return r.FwEvent }

// FirewallExtEvent implements Record
func (r *FlowRecord) FirewallExtEvent() uint16 { return r.FwXEvent }

// XlateSourceAddress implements Record
func (r *FlowRecord) XlateSourceAddress() net.IP { return r.XSrcAddr }

// XlateDestinationAddress implements Record
func (r *FlowRecord) XlateDestinationAddress() net.IP { return r.XDstAddr }

// XlateSourcePort implements Record
func (r *FlowRecord) XlateSourcePort() uint16 { return r.XSrcPort }

// XlateDestinationPort implements Record
func (r *FlowRecord) XlateDestinationPort() uint16 { return r.XDstPort }

// NATEvent implements Record
func (r *FlowRecord) NATEvent() uint8 { return r.NatEvent }
