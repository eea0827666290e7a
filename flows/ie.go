package flows

import (
	ipfix "github.com/CN-TU/go-ipfix"
)

const ciscoPen uint32 = 9

// Information elements of the record attributes. Record sources use the element names as keys,
// the output token table lists which elements a token renders.
var (
	IEOctetDeltaCount                  = ipfix.NewInformationElement("octetDeltaCount", 0, 1, ipfix.Unsigned64Type, 8)
	IEPacketDeltaCount                 = ipfix.NewInformationElement("packetDeltaCount", 0, 2, ipfix.Unsigned64Type, 8)
	IEDeltaFlowCount                   = ipfix.NewInformationElement("deltaFlowCount", 0, 3, ipfix.Unsigned64Type, 8)
	IEProtocolIdentifier               = ipfix.NewInformationElement("protocolIdentifier", 0, 4, ipfix.Unsigned8Type, 1)
	IEIPClassOfService                 = ipfix.NewInformationElement("ipClassOfService", 0, 5, ipfix.Unsigned8Type, 1)
	IETCPControlBits                   = ipfix.NewInformationElement("tcpControlBits", 0, 6, ipfix.Unsigned8Type, 1)
	IESourceTransportPort              = ipfix.NewInformationElement("sourceTransportPort", 0, 7, ipfix.Unsigned16Type, 2)
	IESourceIPv4Address                = ipfix.NewInformationElement("sourceIPv4Address", 0, 8, ipfix.Ipv4AddressType, 4)
	IEIngressInterface                 = ipfix.NewInformationElement("ingressInterface", 0, 10, ipfix.Unsigned32Type, 4)
	IEDestinationTransportPort         = ipfix.NewInformationElement("destinationTransportPort", 0, 11, ipfix.Unsigned16Type, 2)
	IEDestinationIPv4Address           = ipfix.NewInformationElement("destinationIPv4Address", 0, 12, ipfix.Ipv4AddressType, 4)
	IEEgressInterface                  = ipfix.NewInformationElement("egressInterface", 0, 14, ipfix.Unsigned32Type, 4)
	IEIPNextHopIPv4Address             = ipfix.NewInformationElement("ipNextHopIPv4Address", 0, 15, ipfix.Ipv4AddressType, 4)
	IEBgpSourceAsNumber                = ipfix.NewInformationElement("bgpSourceAsNumber", 0, 16, ipfix.Unsigned32Type, 4)
	IEBgpDestinationAsNumber           = ipfix.NewInformationElement("bgpDestinationAsNumber", 0, 17, ipfix.Unsigned32Type, 4)
	IEPostOctetDeltaCount              = ipfix.NewInformationElement("postOctetDeltaCount", 0, 23, ipfix.Unsigned64Type, 8)
	IEPostPacketDeltaCount             = ipfix.NewInformationElement("postPacketDeltaCount", 0, 24, ipfix.Unsigned64Type, 8)
	IESourceIPv6Address                = ipfix.NewInformationElement("sourceIPv6Address", 0, 27, ipfix.Ipv6AddressType, 16)
	IEDestinationIPv6Address           = ipfix.NewInformationElement("destinationIPv6Address", 0, 28, ipfix.Ipv6AddressType, 16)
	IEPostIPClassOfService             = ipfix.NewInformationElement("postIpClassOfService", 0, 55, ipfix.Unsigned8Type, 1)
	IEIPNextHopIPv6Address             = ipfix.NewInformationElement("ipNextHopIPv6Address", 0, 62, ipfix.Ipv6AddressType, 16)
	IEExporterIPv4Address              = ipfix.NewInformationElement("exporterIPv4Address", 0, 130, ipfix.Ipv4AddressType, 4)
	IEExporterIPv6Address              = ipfix.NewInformationElement("exporterIPv6Address", 0, 131, ipfix.Ipv6AddressType, 16)
	IEFlowStartMilliseconds            = ipfix.NewInformationElement("flowStartMilliseconds", 0, 152, ipfix.DateTimeMillisecondsType, 8)
	IEFlowEndMilliseconds              = ipfix.NewInformationElement("flowEndMilliseconds", 0, 153, ipfix.DateTimeMillisecondsType, 8)
	IEPostNATSourceIPv4Address         = ipfix.NewInformationElement("postNATSourceIPv4Address", 0, 225, ipfix.Ipv4AddressType, 4)
	IEPostNATDestinationIPv4Address    = ipfix.NewInformationElement("postNATDestinationIPv4Address", 0, 226, ipfix.Ipv4AddressType, 4)
	IEPostNAPTSourceTransportPort      = ipfix.NewInformationElement("postNAPTSourceTransportPort", 0, 227, ipfix.Unsigned16Type, 2)
	IEPostNAPTDestinationTransportPort = ipfix.NewInformationElement("postNAPTDestinationTransportPort", 0, 228, ipfix.Unsigned16Type, 2)
	IENatEvent                         = ipfix.NewInformationElement("natEvent", 0, 230, ipfix.Unsigned8Type, 1)
	IEFirewallEvent                    = ipfix.NewInformationElement("firewallEvent", 0, 233, ipfix.Unsigned8Type, 1)
	IECollectionTimeMilliseconds       = ipfix.NewInformationElement("collectionTimeMilliseconds", 0, 258, ipfix.DateTimeMillisecondsType, 8)
	IEPostNATSourceIPv6Address         = ipfix.NewInformationElement("postNATSourceIPv6Address", 0, 281, ipfix.Ipv6AddressType, 16)
	IEPostNATDestinationIPv6Address    = ipfix.NewInformationElement("postNATDestinationIPv6Address", 0, 282, ipfix.Ipv6AddressType, 16)
	IEFwExtEvent                       = ipfix.NewInformationElement("fwExtEvent", ciscoPen, 33002, ipfix.Unsigned16Type, 2)
)

// Variant names cover an IPv4 and an IPv6 element, e.g. sourceIPAddress is either
// sourceIPv4Address or sourceIPv6Address depending on the data.
const (
	SourceIPAddress             = "sourceIPAddress"
	DestinationIPAddress        = "destinationIPAddress"
	ExporterIPAddress           = "exporterIPAddress"
	IPNextHopIPAddress          = "ipNextHopIPAddress"
	PostNATSourceIPAddress      = "postNATSourceIPAddress"
	PostNATDestinationIPAddress = "postNATDestinationIPAddress"
)

// Variants maps a variant name to the IPv4 and IPv6 element it stands for.
var Variants = map[string][2]ipfix.InformationElement{
	SourceIPAddress:             {IESourceIPv4Address, IESourceIPv6Address},
	DestinationIPAddress:        {IEDestinationIPv4Address, IEDestinationIPv6Address},
	ExporterIPAddress:           {IEExporterIPv4Address, IEExporterIPv6Address},
	IPNextHopIPAddress:          {IEIPNextHopIPv4Address, IEIPNextHopIPv6Address},
	PostNATSourceIPAddress:      {IEPostNATSourceIPv4Address, IEPostNATSourceIPv6Address},
	PostNATDestinationIPAddress: {IEPostNATDestinationIPv4Address, IEPostNATDestinationIPv6Address},
}
