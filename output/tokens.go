package output

import (
	"fmt"
	"sort"

	"github.com/CN-TU/go-flowfmt/flows"
	ipfix "github.com/CN-TU/go-ipfix"
)

// Field identifies one renderable attribute of a flow record.
type Field uint8

// Fields that can be rendered.
const (
	FieldFirstSeen Field = iota
	FieldLastSeen
	FieldReceived
	FieldDuration
	FieldProtocol
	FieldSrcAddr
	FieldDstAddr
	FieldSrcPort
	FieldDstPort
	FieldSrcSocket
	FieldDstSocket
	FieldGeoSrcSocket
	FieldGeoDstSocket
	FieldSrcAS
	FieldDstAS
	FieldInputInterface
	FieldOutputInterface
	FieldRouter
	FieldNextHop
	FieldPackets
	FieldBytes
	FieldFlows
	FieldInPackets
	FieldOutPackets
	FieldInBytes
	FieldOutBytes
	FieldPPS
	FieldBPS
	FieldBPP
	FieldFlags
	FieldTos
	FieldSrcTos
	FieldDstTos
	FieldEvent
	FieldExtEvent
	FieldXlateSrcAddr
	FieldXlateDstAddr
	FieldXlateSrcPort
	FieldXlateDstPort
	FieldXlateSrcSocket
	FieldXlateDstSocket
	FieldNATEvent
	FieldNATSrcSocket
	FieldNATDstSocket

	fieldMax
)

// column describes how the width of a column is determined
type column uint8

const (
	fixedColumn     column = iota // width field of the token
	addressColumn                 // address width of the addressing mode
	socketColumn                  // address width + separator + port
	geoSocketColumn               // address width + country + separator + port
)

const (
	portWidth    = 5
	countryWidth = 4 // "(CC)"
)

// dialect set
const (
	generic = 1 << flows.TagGeneric
	nsel    = 1 << flows.TagNSEL
	nel     = 1 << flows.TagNEL
	all     = generic | nsel | nel
)

// Token describes one format token.
type Token struct {
	// Name is the token name without the escape character
	Name string
	// Field is the rendered attribute
	Field Field
	// Title is the column title used in the header line
	Title string
	// Description is a short human readable description
	Description string
	// Elements lists the information elements the value originates from
	Elements []ipfix.InformationElement

	width    int
	column   column
	right    bool
	numeric  bool
	dialects uint8
}

// Meaningful reports whether the field of this token exists in records of the given dialect.
func (t *Token) Meaningful(tag flows.RecordTag) bool {
	return t.dialects&(1<<tag) != 0
}

// Dialects returns the record dialects this token is meaningful for.
func (t *Token) Dialects() []flows.RecordTag {
	var ret []flows.RecordTag
	for _, tag := range flows.RecordTags() {
		if t.Meaningful(tag) {
			ret = append(ret, tag)
		}
	}
	return ret
}

// Width returns the column width of this token under the given addressing mode.
func (t *Token) Width(mode Mode) int {
	switch t.column {
	case addressColumn:
		return mode.addressWidth()
	case socketColumn:
		return mode.addressWidth() + 1 + portWidth
	case geoSocketColumn:
		return mode.addressWidth() + countryWidth + 1 + portWidth
	}
	return t.width
}

// placeholder is rendered if the field is not meaningful for a record
func (t *Token) placeholder() string {
	if t.numeric {
		return "0"
	}
	return "-"
}

func (t *Token) String() string {
	return fmt.Sprintf("%%%s<%s>", t.Name, t.Title)
}

var tokens = newTree()
var tokenCount int

// RegisterToken registers a new format token. Token names must be unique and consist of
// lower case letters.
func RegisterToken(t Token) {
	if t.Name == "" {
		panic("Token name must not be empty")
	}
	for i := 0; i < len(t.Name); i++ {
		if t.Name[i] < 'a' || t.Name[i] > 'z' {
			panic(fmt.Sprintf("Token name %q must consist of lower case letters", t.Name))
		}
	}
	if _, ok := tokens.get(t.Name); ok {
		panic(fmt.Sprintf("Token %s already registered", t.Name))
	}
	tok := t
	tokens.insert(t.Name, &tok)
	tokenCount++
}

// LookupToken returns the token registered with exactly this name.
func LookupToken(name string) (*Token, bool) {
	return tokens.get(name)
}

// Tokens returns all registered tokens sorted by name.
func Tokens() []*Token {
	ret := make([]*Token, 0, tokenCount)
	tokens.walk(func(t *Token) {
		ret = append(ret, t)
	})
	sort.Slice(ret, func(i, j int) bool { return ret[i].Name < ret[j].Name })
	return ret
}

func ies(ie ...ipfix.InformationElement) []ipfix.InformationElement {
	return ie
}

func variant(name string) []ipfix.InformationElement {
	v := flows.Variants[name]
	return v[:]
}

func init() {
	for _, t := range []Token{
		{Name: "ts", Field: FieldFirstSeen, Title: "Date first seen", Description: "Start time - first seen", Elements: ies(flows.IEFlowStartMilliseconds), width: 23, dialects: all},
		{Name: "te", Field: FieldLastSeen, Title: "Date last seen", Description: "End time - last seen", Elements: ies(flows.IEFlowEndMilliseconds), width: 23, dialects: all},
		{Name: "tr", Field: FieldReceived, Title: "Date flow received", Description: "Time the flow was received by the collector", Elements: ies(flows.IECollectionTimeMilliseconds), width: 23, dialects: all},
		{Name: "td", Field: FieldDuration, Title: "Duration", Description: "Duration in seconds", Elements: ies(flows.IEFlowStartMilliseconds, flows.IEFlowEndMilliseconds), width: 9, right: true, numeric: true, dialects: all},
		{Name: "pr", Field: FieldProtocol, Title: "Proto", Description: "Protocol", Elements: ies(flows.IEProtocolIdentifier), width: 5, dialects: all},
		{Name: "sa", Field: FieldSrcAddr, Title: "Src IP Addr", Description: "Source Address", Elements: variant(flows.SourceIPAddress), column: addressColumn, right: true, dialects: all},
		{Name: "da", Field: FieldDstAddr, Title: "Dst IP Addr", Description: "Destination Address", Elements: variant(flows.DestinationIPAddress), column: addressColumn, right: true, dialects: all},
		{Name: "sp", Field: FieldSrcPort, Title: "Src Pt", Description: "Source Port", Elements: ies(flows.IESourceTransportPort), width: 6, right: true, numeric: true, dialects: all},
		{Name: "dp", Field: FieldDstPort, Title: "Dst Pt", Description: "Destination Port", Elements: ies(flows.IEDestinationTransportPort), width: 6, right: true, numeric: true, dialects: all},
		{Name: "sap", Field: FieldSrcSocket, Title: "Src IP Addr:Port", Description: "Source Address:Port", Elements: append(variant(flows.SourceIPAddress), flows.IESourceTransportPort), column: socketColumn, dialects: all},
		{Name: "dap", Field: FieldDstSocket, Title: "Dst IP Addr:Port", Description: "Destination Address:Port", Elements: append(variant(flows.DestinationIPAddress), flows.IEDestinationTransportPort), column: socketColumn, dialects: all},
		{Name: "gsap", Field: FieldGeoSrcSocket, Title: "Src IP Addr(CC):Port", Description: "Source Address(Country):Port", Elements: append(variant(flows.SourceIPAddress), flows.IESourceTransportPort), column: geoSocketColumn, dialects: all},
		{Name: "gdap", Field: FieldGeoDstSocket, Title: "Dst IP Addr(CC):Port", Description: "Destination Address(Country):Port", Elements: append(variant(flows.DestinationIPAddress), flows.IEDestinationTransportPort), column: geoSocketColumn, dialects: all},
		{Name: "sas", Field: FieldSrcAS, Title: "Src AS", Description: "Source AS", Elements: ies(flows.IEBgpSourceAsNumber), width: 6, right: true, numeric: true, dialects: generic},
		{Name: "das", Field: FieldDstAS, Title: "Dst AS", Description: "Destination AS", Elements: ies(flows.IEBgpDestinationAsNumber), width: 6, right: true, numeric: true, dialects: generic},
		{Name: "in", Field: FieldInputInterface, Title: "Input", Description: "Input interface number", Elements: ies(flows.IEIngressInterface), width: 5, right: true, numeric: true, dialects: generic},
		{Name: "out", Field: FieldOutputInterface, Title: "Output", Description: "Output interface number", Elements: ies(flows.IEEgressInterface), width: 6, right: true, numeric: true, dialects: generic},
		{Name: "ra", Field: FieldRouter, Title: "Router IP", Description: "Router IP address", Elements: variant(flows.ExporterIPAddress), column: addressColumn, right: true, dialects: all},
		{Name: "nh", Field: FieldNextHop, Title: "Next-hop IP", Description: "Next-hop IP address", Elements: variant(flows.IPNextHopIPAddress), column: addressColumn, right: true, dialects: generic},
		{Name: "pkt", Field: FieldPackets, Title: "Packets", Description: "Packets", Elements: ies(flows.IEPacketDeltaCount), width: 8, right: true, numeric: true, dialects: generic | nsel},
		{Name: "byt", Field: FieldBytes, Title: "Bytes", Description: "Bytes", Elements: ies(flows.IEOctetDeltaCount), width: 8, right: true, numeric: true, dialects: generic | nsel},
		{Name: "fl", Field: FieldFlows, Title: "Flows", Description: "Number of flows", Elements: ies(flows.IEDeltaFlowCount), width: 5, right: true, numeric: true, dialects: generic | nsel},
		{Name: "ipkt", Field: FieldInPackets, Title: "In Pkt", Description: "In Packets", Elements: ies(flows.IEPacketDeltaCount), width: 8, right: true, numeric: true, dialects: generic | nsel},
		{Name: "opkt", Field: FieldOutPackets, Title: "Out Pkt", Description: "Out Packets", Elements: ies(flows.IEPostPacketDeltaCount), width: 8, right: true, numeric: true, dialects: generic | nsel},
		{Name: "ibyt", Field: FieldInBytes, Title: "In Byte", Description: "In Bytes", Elements: ies(flows.IEOctetDeltaCount), width: 8, right: true, numeric: true, dialects: generic | nsel},
		{Name: "obyt", Field: FieldOutBytes, Title: "Out Byte", Description: "Out Bytes", Elements: ies(flows.IEPostOctetDeltaCount), width: 8, right: true, numeric: true, dialects: generic | nsel},
		{Name: "pps", Field: FieldPPS, Title: "pps", Description: "Packets per second", Elements: ies(flows.IEPacketDeltaCount, flows.IEFlowStartMilliseconds, flows.IEFlowEndMilliseconds), width: 8, right: true, numeric: true, dialects: generic | nsel},
		{Name: "bps", Field: FieldBPS, Title: "bps", Description: "Bits per second", Elements: ies(flows.IEOctetDeltaCount, flows.IEFlowStartMilliseconds, flows.IEFlowEndMilliseconds), width: 8, right: true, numeric: true, dialects: generic | nsel},
		{Name: "bpp", Field: FieldBPP, Title: "Bpp", Description: "Bytes per packet", Elements: ies(flows.IEOctetDeltaCount, flows.IEPacketDeltaCount), width: 6, right: true, numeric: true, dialects: generic | nsel},
		{Name: "flg", Field: FieldFlags, Title: "Flags", Description: "TCP Flags", Elements: ies(flows.IETCPControlBits), width: 8, dialects: generic},
		{Name: "tos", Field: FieldTos, Title: "Tos", Description: "Tos - source tos", Elements: ies(flows.IEIPClassOfService), width: 3, right: true, numeric: true, dialects: generic},
		{Name: "stos", Field: FieldSrcTos, Title: "STos", Description: "Source Tos", Elements: ies(flows.IEIPClassOfService), width: 4, right: true, numeric: true, dialects: generic},
		{Name: "dtos", Field: FieldDstTos, Title: "DTos", Description: "Destination Tos", Elements: ies(flows.IEPostIPClassOfService), width: 4, right: true, numeric: true, dialects: generic},
		{Name: "evt", Field: FieldEvent, Title: "Event", Description: "Firewall event", Elements: ies(flows.IEFirewallEvent), width: 6, dialects: nsel},
		{Name: "xevt", Field: FieldExtEvent, Title: "XEvent", Description: "Extended firewall event", Elements: ies(flows.IEFwExtEvent), width: 7, dialects: nsel},
		{Name: "xsa", Field: FieldXlateSrcAddr, Title: "X-Src IP Addr", Description: "Translated source address", Elements: variant(flows.PostNATSourceIPAddress), column: addressColumn, right: true, dialects: nsel},
		{Name: "xda", Field: FieldXlateDstAddr, Title: "X-Dst IP Addr", Description: "Translated destination address", Elements: variant(flows.PostNATDestinationIPAddress), column: addressColumn, right: true, dialects: nsel},
		{Name: "xsp", Field: FieldXlateSrcPort, Title: "XsPort", Description: "Translated source port", Elements: ies(flows.IEPostNAPTSourceTransportPort), width: 6, right: true, numeric: true, dialects: nsel},
		{Name: "xdp", Field: FieldXlateDstPort, Title: "XdPort", Description: "Translated destination port", Elements: ies(flows.IEPostNAPTDestinationTransportPort), width: 6, right: true, numeric: true, dialects: nsel},
		{Name: "xsap", Field: FieldXlateSrcSocket, Title: "X-Src IP Addr:Port", Description: "Translated source address:port", Elements: append(variant(flows.PostNATSourceIPAddress), flows.IEPostNAPTSourceTransportPort), column: socketColumn, dialects: nsel},
		{Name: "xdap", Field: FieldXlateDstSocket, Title: "X-Dst IP Addr:Port", Description: "Translated destination address:port", Elements: append(variant(flows.PostNATDestinationIPAddress), flows.IEPostNAPTDestinationTransportPort), column: socketColumn, dialects: nsel},
		{Name: "nevt", Field: FieldNATEvent, Title: "NAT Event", Description: "NAT event", Elements: ies(flows.IENatEvent), width: 9, dialects: nel},
		{Name: "nsap", Field: FieldNATSrcSocket, Title: "NAT Src IP Addr:Port", Description: "NAT source address:port", Elements: append(variant(flows.PostNATSourceIPAddress), flows.IEPostNAPTSourceTransportPort), column: socketColumn, dialects: nel},
		{Name: "ndap", Field: FieldNATDstSocket, Title: "NAT Dst IP Addr:Port", Description: "NAT destination address:port", Elements: append(variant(flows.PostNATDestinationIPAddress), flows.IEPostNAPTDestinationTransportPort), column: socketColumn, dialects: nel},
	} {
		RegisterToken(t)
	}
}
